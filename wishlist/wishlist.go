package wishlist

import (
	"context"
	"log/slog"
	"sync"

	"github.com/shopsphere/storefront/errors"
	"github.com/shopsphere/storefront/models"
	"github.com/shopsphere/storefront/notify"
	"github.com/shopsphere/storefront/session"
)

type API interface {
	GetWishlist(ctx context.Context) (*models.Wishlist, error)
	AddWishlistItem(ctx context.Context, productID string) (*models.Wishlist, error)
	RemoveWishlistItem(ctx context.Context, productID string) (*models.Wishlist, error)
}

type AuthSource interface {
	State() models.AuthState
	Subscribe(listener session.Listener) func()
}

// Store holds the wishlist snapshot with the same lifecycle as the cart
// store: fetch on authenticate, reset on unauthenticate, server response
// replaces held state on every mutation.
type Store struct {
	api      API
	notifier notify.Notifier
	logger   *slog.Logger

	mu       sync.RWMutex
	wishlist *models.Wishlist

	unsubscribe func()
}

func New(apiClient API, auth AuthSource, notifier notify.Notifier) *Store {

	s := &Store{
		api:      apiClient,
		notifier: notifier,
		logger:   slog.Default(),
		wishlist: models.EmptyWishlist(),
	}

	s.unsubscribe = auth.Subscribe(s.onAuthChange)

	return s
}

func (s *Store) onAuthChange(state models.AuthState) {

	if !state.Authenticated {
		s.replace(models.EmptyWishlist())

		return
	}

	_ = s.Refresh(context.Background())
}

func (s *Store) Refresh(ctx context.Context) error {

	wishlist, err := s.api.GetWishlist(ctx)
	if err != nil {
		s.logger.Warn("failed to fetch wishlist", slog.String("error", err.Error()))
		s.notifier.Error("Failed to load wishlist")

		return err
	}

	s.replace(wishlist)

	return nil
}

func (s *Store) Add(ctx context.Context, productID string) (*models.Wishlist, error) {

	wishlist, err := s.api.AddWishlistItem(ctx, productID)
	if err != nil {
		s.notifier.Error(errors.MessageOr(err, "Failed to add item to wishlist"))

		return nil, err
	}

	s.replace(wishlist)
	s.notifier.Success("Item added to wishlist")

	return s.Wishlist(), nil
}

func (s *Store) Remove(ctx context.Context, productID string) (*models.Wishlist, error) {

	wishlist, err := s.api.RemoveWishlistItem(ctx, productID)
	if err != nil {
		s.notifier.Error(errors.MessageOr(err, "Failed to remove item from wishlist"))

		return nil, err
	}

	s.replace(wishlist)
	s.notifier.Success("Item removed from wishlist")

	return s.Wishlist(), nil
}

// Contains is a pure local membership check over the held products; it never
// issues an API call.
func (s *Store) Contains(productID string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.wishlist.Contains(productID)
}

func (s *Store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.wishlist.Count()
}

func (s *Store) replace(wishlist *models.Wishlist) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.wishlist = wishlist
}

func (s *Store) Wishlist() *models.Wishlist {
	s.mu.RLock()
	defer s.mu.RUnlock()

	wishlist := &models.Wishlist{
		Products: make([]models.Product, len(s.wishlist.Products)),
	}
	copy(wishlist.Products, s.wishlist.Products)

	return wishlist
}

func (s *Store) Close() {
	if s.unsubscribe != nil {
		s.unsubscribe()
	}
}
