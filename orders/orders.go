package orders

import (
	"context"
	"log/slog"

	"github.com/shopsphere/storefront/errors"
	"github.com/shopsphere/storefront/models"
	"github.com/shopsphere/storefront/notify"
)

type API interface {
	ListOrders(ctx context.Context) ([]models.Order, error)
	GetOrder(ctx context.Context, orderID string) (*models.Order, error)
}

// Service reads order history. Orders are created via checkout and never
// mutated from the client.
type Service struct {
	api      API
	notifier notify.Notifier
	logger   *slog.Logger
}

func New(apiClient API, notifier notify.Notifier) *Service {
	return &Service{
		api:      apiClient,
		notifier: notifier,
		logger:   slog.Default(),
	}
}

func (s *Service) List(ctx context.Context) ([]models.Order, error) {

	orders, err := s.api.ListOrders(ctx)
	if err != nil {
		s.notifier.Error("Failed to load orders")

		return nil, err
	}

	return orders, nil
}

func (s *Service) Get(ctx context.Context, orderID string) (*models.Order, error) {

	order, err := s.api.GetOrder(ctx, orderID)
	if err != nil {
		s.notifier.Error(errors.MessageOr(err, "Failed to load order details"))

		return nil, err
	}

	return order, nil
}
