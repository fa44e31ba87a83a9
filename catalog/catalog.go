package catalog

import (
	"context"
	"log/slog"

	"github.com/go-playground/validator/v10"
	"github.com/microcosm-cc/bluemonday"

	"github.com/shopsphere/storefront/errors"
	"github.com/shopsphere/storefront/models"
	"github.com/shopsphere/storefront/notify"
)

type API interface {
	ListProducts(ctx context.Context) ([]models.Product, error)
	GetProduct(ctx context.Context, productID string) (*models.Product, error)
	CreateProduct(ctx context.Context, payload *models.ProductPayload) (*models.Product, error)
	UpdateProduct(ctx context.Context, productID string, payload *models.ProductPayload) (*models.Product, error)
	DeleteProduct(ctx context.Context, productID string) error
}

// AdminSource answers whether the current identity may use the editor.
type AdminSource interface {
	IsAdmin() bool
}

// Service owns the catalog reads the view layer issues directly and the
// admin product editor. The catalog is read-only snapshots of server state;
// the editor submits full replacement payloads.
type Service struct {
	api       API
	auth      AdminSource
	notifier  notify.Notifier
	validate  *validator.Validate
	sanitizer *bluemonday.Policy
	logger    *slog.Logger
}

func New(apiClient API, auth AdminSource, notifier notify.Notifier) *Service {
	return &Service{
		api:      apiClient,
		auth:     auth,
		notifier: notifier,
		validate: validator.New(),
		// Product descriptions arrive as remote HTML and are rendered
		// untrusted.
		sanitizer: bluemonday.UGCPolicy(),
		logger:    slog.Default(),
	}
}

func (s *Service) List(ctx context.Context) ([]models.Product, error) {

	products, err := s.api.ListProducts(ctx)
	if err != nil {
		s.notifier.Error("Failed to load products")

		return nil, err
	}

	for i := range products {
		products[i].Description = s.sanitizer.Sanitize(products[i].Description)
	}

	return products, nil
}

func (s *Service) Get(ctx context.Context, productID string) (*models.Product, error) {

	product, err := s.api.GetProduct(ctx, productID)
	if err != nil {
		s.notifier.Error(errors.MessageOr(err, "Failed to load product"))

		return nil, err
	}

	product.Description = s.sanitizer.Sanitize(product.Description)

	return product, nil
}

// Create submits a new product. Admin only; InStock is derived from the
// quantity before send, never taken from the form.
func (s *Service) Create(ctx context.Context, payload *models.ProductPayload) (*models.Product, error) {

	if err := s.authorize(payload); err != nil {
		return nil, err
	}

	product, err := s.api.CreateProduct(ctx, payload)
	if err != nil {
		s.notifier.Error(errors.MessageOr(err, "Error saving product"))

		return nil, err
	}

	s.notifier.Success("Product created successfully")

	return product, nil
}

// Update replaces the product document wholesale with the editor's payload.
func (s *Service) Update(ctx context.Context, productID string, payload *models.ProductPayload) (*models.Product, error) {

	if err := s.authorize(payload); err != nil {
		return nil, err
	}

	product, err := s.api.UpdateProduct(ctx, productID, payload)
	if err != nil {
		s.notifier.Error(errors.MessageOr(err, "Error saving product"))

		return nil, err
	}

	s.notifier.Success("Product updated successfully")

	return product, nil
}

func (s *Service) Delete(ctx context.Context, productID string) error {

	if !s.auth.IsAdmin() {
		return errors.ForbiddenError("product management requires an admin account")
	}

	if err := s.api.DeleteProduct(ctx, productID); err != nil {
		s.notifier.Error(errors.MessageOr(err, "Error deleting product"))

		return err
	}

	s.notifier.Success("Product deleted successfully")

	return nil
}

func (s *Service) authorize(payload *models.ProductPayload) error {

	if !s.auth.IsAdmin() {
		return errors.ForbiddenError("product management requires an admin account")
	}

	if err := s.validate.Struct(payload); err != nil {
		s.notifier.Error("Please fill in all required fields")

		return errors.ValidationError("name, category and a non-negative price are required").WithError(err)
	}

	payload.InStock = payload.Quantity > 0

	return nil
}
