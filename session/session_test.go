package session_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	appErrors "github.com/shopsphere/storefront/errors"
	"github.com/shopsphere/storefront/models"
	"github.com/shopsphere/storefront/notify"
	"github.com/shopsphere/storefront/session"
)

type mockAPI struct {
	mock.Mock
}

func (m *mockAPI) Register(ctx context.Context, req *models.RegisterRequest) (*models.Identity, error) {
	args := m.Called(ctx, req)
	if identity := args.Get(0); identity != nil {
		return identity.(*models.Identity), args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *mockAPI) Login(ctx context.Context, req *models.LoginRequest) (*models.Identity, error) {
	args := m.Called(ctx, req)
	if identity := args.Get(0); identity != nil {
		return identity.(*models.Identity), args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *mockAPI) Profile(ctx context.Context) (*models.Identity, error) {
	args := m.Called(ctx)
	if identity := args.Get(0); identity != nil {
		return identity.(*models.Identity), args.Error(1)
	}

	return nil, args.Error(1)
}

func signedToken(t *testing.T, expiresAt time.Time) string {
	t.Helper()

	claims := &models.Claims{
		UserID: "u1",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-key"))
	require.NoError(t, err)

	return token
}

func newStore(t *testing.T) (*session.Store, *mockAPI, *session.FileStorage, *notify.Recorder) {
	t.Helper()

	apiMock := &mockAPI{}
	storage := session.NewFileStorage(filepath.Join(t.TempDir(), "session.json"))
	recorder := &notify.Recorder{}

	return session.New(apiMock, storage, recorder), apiMock, storage, recorder
}

func TestBootstrap(t *testing.T) {
	ctx := t.Context()

	t.Run("Success - No Persisted Session", func(t *testing.T) {
		// Arrange
		store, _, _, _ := newStore(t)
		assert.True(t, store.Pending())

		// Act
		err := store.Bootstrap(ctx)

		// Assert
		require.NoError(t, err)
		assert.False(t, store.Pending())
		assert.False(t, store.Authenticated())
		assert.Empty(t, store.Token())
	})

	t.Run("Success - Persisted Identity Restored", func(t *testing.T) {
		// Arrange
		store, _, storage, _ := newStore(t)
		identity := &models.Identity{
			ID:    "u1",
			Name:  "Ada",
			Token: signedToken(t, time.Now().Add(time.Hour)),
		}
		require.NoError(t, storage.Save(ctx, identity))

		var published []models.AuthState
		store.Subscribe(func(state models.AuthState) {
			published = append(published, state)
		})

		// Act
		err := store.Bootstrap(ctx)

		// Assert
		require.NoError(t, err)
		assert.True(t, store.Authenticated())
		assert.Equal(t, identity.Token, store.Token())
		require.Len(t, published, 1)
		assert.True(t, published[0].Authenticated)
		assert.Equal(t, "Ada", published[0].Identity.Name)
	})

	t.Run("Success - Expired Token Discarded", func(t *testing.T) {
		// Arrange
		store, _, storage, _ := newStore(t)
		identity := &models.Identity{
			ID:    "u1",
			Token: signedToken(t, time.Now().Add(-time.Hour)),
		}
		require.NoError(t, storage.Save(ctx, identity))

		// Act
		err := store.Bootstrap(ctx)

		// Assert
		require.NoError(t, err)
		assert.False(t, store.Authenticated())

		stored, err := storage.Load(ctx)
		require.NoError(t, err)
		assert.Nil(t, stored, "expired session should be cleared from storage")
	})

	t.Run("Success - Opaque Token Kept", func(t *testing.T) {
		// Arrange
		store, _, storage, _ := newStore(t)
		require.NoError(t, storage.Save(ctx, &models.Identity{ID: "u1", Token: "opaque-token"}))

		// Act
		require.NoError(t, store.Bootstrap(ctx))

		// Assert
		assert.True(t, store.Authenticated())
	})
}

func TestLogin(t *testing.T) {
	ctx := t.Context()

	t.Run("Success", func(t *testing.T) {
		// Arrange
		store, apiMock, storage, recorder := newStore(t)
		identity := &models.Identity{ID: "u1", Name: "Ada", IsAdmin: true, Token: "tok-1"}
		req := &models.LoginRequest{Email: "ada@example.com", Password: "secret"}
		apiMock.On("Login", ctx, req).Return(identity, nil).Once()

		var published []models.AuthState
		store.Subscribe(func(state models.AuthState) {
			published = append(published, state)
		})

		// Act
		got, err := store.Login(ctx, req)

		// Assert
		require.NoError(t, err)
		assert.Equal(t, identity, got)
		assert.True(t, store.Authenticated())
		assert.True(t, store.IsAdmin())
		assert.Equal(t, "tok-1", store.Token())
		require.Len(t, published, 1)
		assert.True(t, published[0].Authenticated)
		assert.Equal(t, []string{"Logged in"}, recorder.Successes)

		stored, err := storage.Load(ctx)
		require.NoError(t, err)
		require.NotNil(t, stored)
		assert.Equal(t, "tok-1", stored.Token)
		apiMock.AssertExpectations(t)
	})

	t.Run("Failure - Rejected Credentials", func(t *testing.T) {
		// Arrange
		store, apiMock, _, recorder := newStore(t)
		req := &models.LoginRequest{Email: "ada@example.com", Password: "wrong"}
		apiMock.On("Login", ctx, req).Return(nil, appErrors.AuthError("Invalid email or password")).Once()

		// Act
		got, err := store.Login(ctx, req)

		// Assert
		assert.Nil(t, got)
		assert.True(t, appErrors.IsAuthError(err))
		assert.False(t, store.Authenticated())
		assert.Equal(t, []string{"Login failed"}, recorder.Errors)
		apiMock.AssertExpectations(t)
	})

	t.Run("Failure - Transport Error Surfaces As Auth Error", func(t *testing.T) {
		// Arrange
		store, apiMock, _, _ := newStore(t)
		req := &models.LoginRequest{Email: "ada@example.com", Password: "secret"}
		apiMock.On("Login", ctx, req).Return(nil, appErrors.UnavailableError("the storefront API could not be reached")).Once()

		// Act
		_, err := store.Login(ctx, req)

		// Assert
		assert.True(t, appErrors.IsAuthError(err))
		apiMock.AssertExpectations(t)
	})

	t.Run("Failure - Invalid Input Never Calls API", func(t *testing.T) {
		// Arrange
		store, apiMock, _, _ := newStore(t)

		// Act
		_, err := store.Login(ctx, &models.LoginRequest{Email: "not-an-email", Password: ""})

		// Assert
		assert.True(t, appErrors.IsValidationError(err))
		apiMock.AssertNotCalled(t, "Login", mock.Anything, mock.Anything)
	})
}

func TestRegister(t *testing.T) {
	ctx := t.Context()

	t.Run("Success", func(t *testing.T) {
		// Arrange
		store, apiMock, _, recorder := newStore(t)
		identity := &models.Identity{ID: "u2", Name: "Grace", Token: "tok-2"}
		req := &models.RegisterRequest{Name: "Grace", Email: "grace@example.com", Password: "hunter22"}
		apiMock.On("Register", ctx, req).Return(identity, nil).Once()

		// Act
		got, err := store.Register(ctx, req)

		// Assert
		require.NoError(t, err)
		assert.Equal(t, identity, got)
		assert.True(t, store.Authenticated())
		assert.Equal(t, []string{"Account created"}, recorder.Successes)
		apiMock.AssertExpectations(t)
	})

	t.Run("Failure - Short Password Never Calls API", func(t *testing.T) {
		// Arrange
		store, apiMock, _, _ := newStore(t)

		// Act
		_, err := store.Register(ctx, &models.RegisterRequest{Name: "Grace", Email: "grace@example.com", Password: "abc"})

		// Assert
		assert.True(t, appErrors.IsValidationError(err))
		apiMock.AssertNotCalled(t, "Register", mock.Anything, mock.Anything)
	})
}

func TestLogout(t *testing.T) {
	ctx := t.Context()

	// Arrange
	store, apiMock, storage, _ := newStore(t)
	identity := &models.Identity{ID: "u1", Token: "tok-1"}
	req := &models.LoginRequest{Email: "ada@example.com", Password: "secret"}
	apiMock.On("Login", ctx, req).Return(identity, nil).Once()

	_, err := store.Login(ctx, req)
	require.NoError(t, err)

	var published []models.AuthState
	store.Subscribe(func(state models.AuthState) {
		published = append(published, state)
	})

	// Act
	store.Logout(ctx)

	// Assert
	assert.False(t, store.Authenticated())
	assert.Empty(t, store.Token())
	require.Len(t, published, 1)
	assert.False(t, published[0].Authenticated)
	assert.Nil(t, published[0].Identity)

	// a fresh bootstrap over the same storage must come up unauthenticated
	fresh := session.New(apiMock, storage, &notify.Recorder{})
	require.NoError(t, fresh.Bootstrap(ctx))
	assert.False(t, fresh.Authenticated())
}

func TestSubscribe(t *testing.T) {
	ctx := t.Context()

	// Arrange
	store, apiMock, _, _ := newStore(t)
	identity := &models.Identity{ID: "u1", Token: "tok-1"}
	req := &models.LoginRequest{Email: "ada@example.com", Password: "secret"}
	apiMock.On("Login", ctx, req).Return(identity, nil)

	var order []string
	store.Subscribe(func(models.AuthState) { order = append(order, "first") })
	unsubscribe := store.Subscribe(func(models.AuthState) { order = append(order, "second") })

	// Act
	_, err := store.Login(ctx, req)
	require.NoError(t, err)

	unsubscribe()
	store.Logout(ctx)

	// Assert
	assert.Equal(t, []string{"first", "second", "first"}, order)
}
