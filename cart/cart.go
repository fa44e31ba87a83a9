package cart

import (
	"context"
	"log/slog"
	"sync"

	"github.com/shopsphere/storefront/errors"
	"github.com/shopsphere/storefront/models"
	"github.com/shopsphere/storefront/notify"
	"github.com/shopsphere/storefront/session"
)

// API is the slice of the remote client the cart store uses. Every mutation
// responds with the full updated cart.
type API interface {
	GetCart(ctx context.Context) (*models.Cart, error)
	AddCartItem(ctx context.Context, productID string, quantity int) (*models.Cart, error)
	UpdateCartItem(ctx context.Context, productID string, quantity int) (*models.Cart, error)
	RemoveCartItem(ctx context.Context, productID string) (*models.Cart, error)
}

// AuthSource is the session store's subscription surface.
type AuthSource interface {
	State() models.AuthState
	Subscribe(listener session.Listener) func()
}

// Store holds the cart snapshot and keeps it in step with the session:
// authenticated fetches fresh, unauthenticated resets to empty without an
// API call. The server is authoritative for totals; every successful
// mutation replaces the held cart with the server's response wholesale.
// Concurrent mutations are neither coalesced nor queued; the last response
// to arrive wins.
type Store struct {
	api      API
	notifier notify.Notifier
	logger   *slog.Logger

	mu   sync.RWMutex
	cart *models.Cart

	unsubscribe func()
}

func New(apiClient API, auth AuthSource, notifier notify.Notifier) *Store {

	s := &Store{
		api:      apiClient,
		notifier: notifier,
		logger:   slog.Default(),
		cart:     models.EmptyCart(),
	}

	s.unsubscribe = auth.Subscribe(s.onAuthChange)

	return s
}

func (s *Store) onAuthChange(state models.AuthState) {

	if !state.Authenticated {
		s.Clear()

		return
	}

	// Refresh already notifies; a failed startup fetch leaves the empty
	// cart in place until the next mutation reconciles it.
	_ = s.Refresh(context.Background())
}

// Refresh fetches the cart from the server and replaces the held snapshot.
func (s *Store) Refresh(ctx context.Context) error {

	cart, err := s.api.GetCart(ctx)
	if err != nil {
		s.logger.Warn("failed to fetch cart", slog.String("error", err.Error()))
		s.notifier.Error("Failed to load cart")

		return err
	}

	s.replace(cart)

	return nil
}

// AddItem puts quantity units of a product in the cart. Quantity is 1 for
// the plain add-to-cart interaction.
func (s *Store) AddItem(ctx context.Context, productID string, quantity int) (*models.Cart, error) {

	cart, err := s.api.AddCartItem(ctx, productID, quantity)
	if err != nil {
		s.notifier.Error(errors.MessageOr(err, "Failed to add item to cart"))

		return nil, err
	}

	s.replace(cart)
	s.notifier.Success("Item added to cart")

	return s.Cart(), nil
}

// UpdateItem sets the quantity of a line. Quantities below 1 are rejected
// locally, without a network call and without touching held state.
func (s *Store) UpdateItem(ctx context.Context, productID string, quantity int) (*models.Cart, error) {

	if quantity < 1 {
		return nil, errors.ValidationError("quantity must be at least 1")
	}

	cart, err := s.api.UpdateCartItem(ctx, productID, quantity)
	if err != nil {
		s.notifier.Error(errors.MessageOr(err, "Failed to update cart"))

		return nil, err
	}

	s.replace(cart)
	s.notifier.Success("Cart updated")

	return s.Cart(), nil
}

func (s *Store) RemoveItem(ctx context.Context, productID string) (*models.Cart, error) {

	cart, err := s.api.RemoveCartItem(ctx, productID)
	if err != nil {
		s.notifier.Error(errors.MessageOr(err, "Failed to remove item from cart"))

		return nil, err
	}

	s.replace(cart)
	s.notifier.Success("Item removed from cart")

	return s.Cart(), nil
}

// Clear resets the held cart to empty without calling the API. Used after an
// order is placed and on logout; the next authenticated fetch reconciles if
// the server disagrees.
func (s *Store) Clear() {
	s.replace(models.EmptyCart())
}

func (s *Store) replace(cart *models.Cart) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cart = cart
}

// Cart returns a copy of the held snapshot.
func (s *Store) Cart() *models.Cart {
	s.mu.RLock()
	defer s.mu.RUnlock()

	cart := &models.Cart{
		Items:       make([]models.CartItem, len(s.cart.Items)),
		TotalAmount: s.cart.TotalAmount,
	}
	copy(cart.Items, s.cart.Items)

	return cart
}

// ItemCount is the sum of quantities across all held lines.
func (s *Store) ItemCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.cart.ItemCount()
}

// Close detaches the store from session transitions.
func (s *Store) Close() {
	if s.unsubscribe != nil {
		s.unsubscribe()
	}
}
