package checkout

import (
	"context"
	"log/slog"

	"github.com/go-playground/validator/v10"

	"github.com/shopsphere/storefront/errors"
	"github.com/shopsphere/storefront/models"
	"github.com/shopsphere/storefront/notify"
)

type API interface {
	CreateOrder(ctx context.Context, req *models.CreateOrderRequest) (*models.Order, error)
}

// CartSource is the slice of the cart store checkout needs: the snapshot to
// denormalize and the local-only clear applied after a placed order.
type CartSource interface {
	Cart() *models.Cart
	Clear()
}

// Form carries the shipping address fields and the payment method tag. All
// address fields must be non-empty; validation happens locally before any
// network call.
type Form struct {
	Address       string               `validate:"required"`
	City          string               `validate:"required"`
	PostalCode    string               `validate:"required"`
	Country       string               `validate:"required"`
	PaymentMethod models.PaymentMethod `validate:"required,oneof=creditCard paypal cod"`
}

func NewForm() *Form {
	return &Form{PaymentMethod: models.PaymentMethodCreditCard}
}

// Checkout converts the current cart snapshot into one order-creation call.
// Not a store: it holds no state between submissions.
type Checkout struct {
	api      API
	cart     CartSource
	notifier notify.Notifier
	validate *validator.Validate
	logger   *slog.Logger
}

func New(apiClient API, cart CartSource, notifier notify.Notifier) *Checkout {
	return &Checkout{
		api:      apiClient,
		cart:     cart,
		notifier: notifier,
		validate: validator.New(),
		logger:   slog.Default(),
	}
}

// Submit validates the form, builds the order request from the current cart
// snapshot and submits it once. On success the local cart is cleared and the
// new order id returned; on failure nothing is mutated and the form remains
// editable. The operation is a single atomic remote call from the client's
// point of view, so no partial order can be left behind.
func (c *Checkout) Submit(ctx context.Context, form *Form) (string, error) {

	if err := c.validate.Struct(form); err != nil {
		c.notifier.Error("Please fill in all shipping address fields")

		return "", errors.ValidationError("all shipping address fields are required").WithError(err)
	}

	snapshot := c.cart.Cart()

	if len(snapshot.Items) == 0 {
		c.notifier.Error("Your cart is empty")

		return "", errors.ValidationError("cannot place an order from an empty cart")
	}

	req := &models.CreateOrderRequest{
		Items:       make([]models.OrderItemPayload, 0, len(snapshot.Items)),
		TotalAmount: snapshot.TotalAmount,
		ShippingAddress: models.ShippingAddress{
			Address:    form.Address,
			City:       form.City,
			PostalCode: form.PostalCode,
			Country:    form.Country,
		},
		PaymentMethod: form.PaymentMethod,
	}

	for _, item := range snapshot.Items {
		req.Items = append(req.Items, models.OrderItemPayload{
			Product:  item.Product.ID,
			Quantity: item.Quantity,
			Price:    item.Product.Price,
		})
	}

	order, err := c.api.CreateOrder(ctx, req)
	if err != nil {
		c.logger.Warn("failed to place order", slog.String("error", err.Error()))
		c.notifier.Error(errors.MessageOr(err, "Failed to place order. Please try again."))

		return "", err
	}

	c.cart.Clear()
	c.notifier.Success("Order placed successfully!")

	return order.ID, nil
}
