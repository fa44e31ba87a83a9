package wishlist_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	appErrors "github.com/shopsphere/storefront/errors"
	"github.com/shopsphere/storefront/models"
	"github.com/shopsphere/storefront/notify"
	"github.com/shopsphere/storefront/session"
	"github.com/shopsphere/storefront/wishlist"
)

type mockAPI struct {
	mock.Mock
}

func (m *mockAPI) GetWishlist(ctx context.Context) (*models.Wishlist, error) {
	args := m.Called(ctx)
	if w := args.Get(0); w != nil {
		return w.(*models.Wishlist), args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *mockAPI) AddWishlistItem(ctx context.Context, productID string) (*models.Wishlist, error) {
	args := m.Called(ctx, productID)
	if w := args.Get(0); w != nil {
		return w.(*models.Wishlist), args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *mockAPI) RemoveWishlistItem(ctx context.Context, productID string) (*models.Wishlist, error) {
	args := m.Called(ctx, productID)
	if w := args.Get(0); w != nil {
		return w.(*models.Wishlist), args.Error(1)
	}

	return nil, args.Error(1)
}

type fakeAuth struct {
	state     models.AuthState
	listeners []session.Listener
}

func (f *fakeAuth) State() models.AuthState {
	return f.state
}

func (f *fakeAuth) Subscribe(listener session.Listener) func() {
	f.listeners = append(f.listeners, listener)

	return func() {}
}

func (f *fakeAuth) transition(state models.AuthState) {
	f.state = state
	for _, listener := range f.listeners {
		listener(state)
	}
}

func serverWishlist() *models.Wishlist {
	return &models.Wishlist{
		Products: []models.Product{
			{ID: "p1", Name: "Mug", Price: 10},
			{ID: "p2", Name: "Poster", Price: 5},
		},
	}
}

func TestWishlistAuthTransitions(t *testing.T) {
	// Arrange
	apiMock := &mockAPI{}
	auth := &fakeAuth{}
	store := wishlist.New(apiMock, auth, &notify.Recorder{})

	apiMock.On("GetWishlist", mock.Anything).Return(serverWishlist(), nil).Once()

	// Act: authenticate fetches
	auth.transition(models.AuthState{Authenticated: true})

	// Assert
	assert.Equal(t, 2, store.Count())
	assert.True(t, store.Contains("p1"))

	// Act: unauthenticate resets without an API call
	auth.transition(models.AuthState{Authenticated: false})

	// Assert
	assert.Zero(t, store.Count())
	assert.False(t, store.Contains("p1"))
	apiMock.AssertExpectations(t)
}

func TestContainsIsLocal(t *testing.T) {
	// Arrange
	apiMock := &mockAPI{}
	auth := &fakeAuth{}
	store := wishlist.New(apiMock, auth, &notify.Recorder{})
	apiMock.On("GetWishlist", mock.Anything).Return(serverWishlist(), nil).Once()
	auth.transition(models.AuthState{Authenticated: true})

	// Act + Assert: repeated membership checks never touch the API
	for range 10 {
		assert.True(t, store.Contains("p2"))
		assert.False(t, store.Contains("p9"))
	}
	apiMock.AssertExpectations(t)
}

func TestWishlistAdd(t *testing.T) {
	ctx := t.Context()

	t.Run("Success", func(t *testing.T) {
		// Arrange
		apiMock := &mockAPI{}
		recorder := &notify.Recorder{}
		store := wishlist.New(apiMock, &fakeAuth{}, recorder)

		apiMock.On("AddWishlistItem", ctx, "p1").Return(serverWishlist(), nil).Once()

		// Act
		got, err := store.Add(ctx, "p1")

		// Assert
		require.NoError(t, err)
		assert.Len(t, got.Products, 2)
		assert.Equal(t, []string{"Item added to wishlist"}, recorder.Successes)
		apiMock.AssertExpectations(t)
	})

	t.Run("Failure - State Unchanged", func(t *testing.T) {
		// Arrange
		apiMock := &mockAPI{}
		recorder := &notify.Recorder{}
		store := wishlist.New(apiMock, &fakeAuth{}, recorder)

		apiMock.On("AddWishlistItem", ctx, "p1").Return(nil, appErrors.RequestError(409, "Product already in wishlist")).Once()

		// Act
		got, err := store.Add(ctx, "p1")

		// Assert
		assert.Nil(t, got)
		assert.Error(t, err)
		assert.Zero(t, store.Count())
		assert.Equal(t, []string{"Product already in wishlist"}, recorder.Errors)
	})
}

func TestWishlistRemove(t *testing.T) {
	// Arrange
	apiMock := &mockAPI{}
	recorder := &notify.Recorder{}
	store := wishlist.New(apiMock, &fakeAuth{}, recorder)

	remaining := &models.Wishlist{Products: []models.Product{{ID: "p2"}}}
	apiMock.On("RemoveWishlistItem", t.Context(), "p1").Return(remaining, nil).Once()

	// Act
	got, err := store.Remove(t.Context(), "p1")

	// Assert
	require.NoError(t, err)
	assert.False(t, got.Contains("p1"))
	assert.True(t, store.Contains("p2"))
	assert.Equal(t, []string{"Item removed from wishlist"}, recorder.Successes)
	apiMock.AssertExpectations(t)
}
