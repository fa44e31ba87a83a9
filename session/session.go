package session

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"

	"github.com/shopsphere/storefront/errors"
	"github.com/shopsphere/storefront/models"
	"github.com/shopsphere/storefront/notify"
)

// API is the slice of the remote client the session store uses.
type API interface {
	Register(ctx context.Context, req *models.RegisterRequest) (*models.Identity, error)
	Login(ctx context.Context, req *models.LoginRequest) (*models.Identity, error)
	Profile(ctx context.Context) (*models.Identity, error)
}

// Listener observes authentication transitions. The session store is the
// sole cross-store trigger: cart and wishlist subscribe to it and fetch or
// reset on every published state.
type Listener func(state models.AuthState)

// Store holds the authenticated identity and the login/register/logout
// operations around it. No retry logic: every failure is reported once to
// the caller and once through the notifier.
type Store struct {
	api      API
	storage  Storage
	notifier notify.Notifier
	validate *validator.Validate
	logger   *slog.Logger

	mu           sync.RWMutex
	identity     *models.Identity
	bootstrapped bool

	subMu       sync.Mutex
	nextSubID   int
	subscribers map[int]Listener
}

func New(apiClient API, storage Storage, notifier notify.Notifier) *Store {
	return &Store{
		api:         apiClient,
		storage:     storage,
		notifier:    notifier,
		validate:    validator.New(),
		logger:      slog.Default(),
		subscribers: make(map[int]Listener),
	}
}

// Subscribe registers a listener for authentication transitions and returns
// its unsubscribe function. Listeners run synchronously, outside the store's
// lock, in the order they subscribed.
func (s *Store) Subscribe(listener Listener) func() {

	s.subMu.Lock()
	defer s.subMu.Unlock()

	id := s.nextSubID
	s.nextSubID++
	s.subscribers[id] = listener

	return func() {
		s.subMu.Lock()
		defer s.subMu.Unlock()
		delete(s.subscribers, id)
	}
}

func (s *Store) publish(state models.AuthState) {

	s.subMu.Lock()

	listeners := make([]Listener, 0, len(s.subscribers))
	for i := 0; i < s.nextSubID; i++ {
		if l, ok := s.subscribers[i]; ok {
			listeners = append(listeners, l)
		}
	}

	s.subMu.Unlock()

	for _, listener := range listeners {
		listener(state)
	}
}

// Bootstrap reads the persisted identity, once, at process start. A stored
// token that is already expired is discarded so the session starts
// unauthenticated instead of failing its first authenticated call.
func (s *Store) Bootstrap(ctx context.Context) error {

	identity, err := s.storage.Load(ctx)
	if err != nil {
		s.logger.Warn("failed to load persisted session", slog.String("error", err.Error()))
		identity = nil
	}

	if identity != nil && tokenExpired(identity.Token) {
		s.logger.Info("persisted session has expired, discarding")

		if clearErr := s.storage.Clear(ctx); clearErr != nil {
			s.logger.Warn("failed to clear expired session", slog.String("error", clearErr.Error()))
		}

		identity = nil
	}

	s.mu.Lock()
	s.identity = identity
	s.bootstrapped = true
	s.mu.Unlock()

	s.publish(s.State())

	return err
}

func (s *Store) Register(ctx context.Context, req *models.RegisterRequest) (*models.Identity, error) {

	if err := s.validate.Struct(req); err != nil {
		return nil, errors.ValidationError("name, email and a password of at least 6 characters are required").WithError(err)
	}

	identity, err := s.api.Register(ctx, req)
	if err != nil {
		s.notifier.Error("Registration failed")

		return nil, asAuthError(err, "registration failed")
	}

	s.adopt(ctx, identity)
	s.notifier.Success("Account created")

	return identity, nil
}

func (s *Store) Login(ctx context.Context, req *models.LoginRequest) (*models.Identity, error) {

	if err := s.validate.Struct(req); err != nil {
		return nil, errors.ValidationError("email and password are required").WithError(err)
	}

	identity, err := s.api.Login(ctx, req)
	if err != nil {
		s.notifier.Error("Login failed")

		return nil, asAuthError(err, "login failed")
	}

	s.adopt(ctx, identity)
	s.notifier.Success("Logged in")

	return identity, nil
}

// adopt persists and holds a freshly authenticated identity, then signals
// the transition.
func (s *Store) adopt(ctx context.Context, identity *models.Identity) {

	if err := s.storage.Save(ctx, identity); err != nil {
		s.logger.Warn("failed to persist session", slog.String("error", err.Error()))
	}

	s.mu.Lock()
	s.identity = identity
	s.bootstrapped = true
	s.mu.Unlock()

	s.publish(models.AuthState{Authenticated: true, Identity: identity})
}

// Logout clears the persisted and held identity synchronously and signals
// the transition. No API call is involved.
func (s *Store) Logout(ctx context.Context) {

	if err := s.storage.Clear(ctx); err != nil {
		s.logger.Warn("failed to clear persisted session", slog.String("error", err.Error()))
	}

	s.mu.Lock()
	s.identity = nil
	s.mu.Unlock()

	s.publish(models.AuthState{Authenticated: false})
	s.notifier.Success("Logged out")
}

// Profile fetches the identity behind the current token, without mutating
// held state.
func (s *Store) Profile(ctx context.Context) (*models.Identity, error) {

	identity, err := s.api.Profile(ctx)
	if err != nil {
		s.notifier.Error("Failed to load profile")

		return nil, err
	}

	return identity, nil
}

func (s *Store) Authenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.identity != nil
}

func (s *Store) IsAdmin() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.identity != nil && s.identity.IsAdmin
}

// Pending reports whether Bootstrap has not completed yet; the route guard
// renders a loading placeholder while it is true.
func (s *Store) Pending() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return !s.bootstrapped
}

func (s *Store) Identity() *models.Identity {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.identity == nil {
		return nil
	}

	identity := *s.identity

	return &identity
}

func (s *Store) State() models.AuthState {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.identity == nil {
		return models.AuthState{Authenticated: false}
	}

	identity := *s.identity

	return models.AuthState{Authenticated: true, Identity: &identity}
}

// Token implements the API client's token source.
func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.identity == nil {
		return ""
	}

	return s.identity.Token
}

// tokenExpired reads the expiry claim without verifying the signature; the
// client has no signing key. Tokens that do not parse as JWTs are treated as
// opaque and left for the server to reject.
func tokenExpired(token string) bool {

	if token == "" {
		return true
	}

	claims := &models.Claims{}

	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return false
	}

	if claims.ExpiresAt == nil {
		return false
	}

	return claims.ExpiresAt.Before(time.Now())
}

// asAuthError keeps credential rejections as-is and folds transport-level
// failures into the same bucket: the caller asked to authenticate and could
// not, whatever the mechanism.
func asAuthError(err error, message string) error {

	if errors.IsAuthError(err) {
		return err
	}

	if appErr, ok := errors.IsAppError(err); ok && appErr.Code == errors.ErrCodeValidation {
		return err
	}

	return errors.AuthError(message).WithError(err)
}
