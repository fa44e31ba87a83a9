// Package storefront is the headless client engine of an e-commerce
// storefront. All state mutation is delegated to the remote REST API; the
// client holds only a thin snapshot of the last server response per domain
// (session, cart, wishlist) plus the services the view layer calls directly
// (catalog, order history, checkout).
package storefront

import (
	"context"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"github.com/shopsphere/storefront/api"
	"github.com/shopsphere/storefront/cart"
	"github.com/shopsphere/storefront/catalog"
	"github.com/shopsphere/storefront/checkout"
	"github.com/shopsphere/storefront/config"
	"github.com/shopsphere/storefront/guard"
	"github.com/shopsphere/storefront/notify"
	"github.com/shopsphere/storefront/orders"
	"github.com/shopsphere/storefront/session"
	"github.com/shopsphere/storefront/telemetry"
	"github.com/shopsphere/storefront/wishlist"
)

// Client aggregates the API client, the three synchronized stores and the
// view-facing services behind one constructor.
type Client struct {
	Config   *config.Config
	API      *api.Client
	Session  *session.Store
	Cart     *cart.Store
	Wishlist *wishlist.Store
	Checkout *checkout.Checkout
	Catalog  *catalog.Service
	Orders   *orders.Service
	Notifier notify.Notifier

	redisClient     *redis.Client
	shutdownTracing func(context.Context) error
}

type Option func(*options)

type options struct {
	notifier notify.Notifier
	storage  session.Storage
}

// WithNotifier replaces the default log-backed notifier with the embedding
// UI's transient notification surface.
func WithNotifier(notifier notify.Notifier) Option {
	return func(o *options) {
		o.notifier = notifier
	}
}

// WithStorage overrides the session persistence selected by configuration.
func WithStorage(storage session.Storage) Option {
	return func(o *options) {
		o.storage = storage
	}
}

func New(cfg *config.Config, opts ...Option) (*Client, error) {

	o := &options{}
	for _, opt := range opts {
		opt(o)
	}

	if o.notifier == nil {
		o.notifier = notify.NewSlogNotifier(slog.Default())
	}

	client := &Client{
		Config:   cfg,
		Notifier: o.notifier,
	}

	storage := o.storage

	if storage == nil {
		switch cfg.Session.Backend {
		case "redis":
			client.redisClient = redis.NewClient(&redis.Options{
				Addr:     cfg.Redis.Addr,
				Username: cfg.Redis.Username,
				Password: cfg.Redis.Password,
				DB:       cfg.Redis.DB,
			})
			storage = session.NewRedisStorage(client.redisClient, "storefront:session")
		default:
			storage = session.NewFileStorage(cfg.Session.StoragePath)
		}
	}

	shutdownTracing, err := telemetry.Init(context.Background(), &cfg.Tracing)
	if err != nil {
		return nil, err
	}

	client.shutdownTracing = shutdownTracing

	client.API = api.New(&cfg.API)
	client.Session = session.New(client.API, storage, o.notifier)
	// The session store needs the API client for login and the API client
	// needs the session for the bearer token, hence the two-step binding.
	client.API.SetTokenSource(client.Session)

	client.Cart = cart.New(client.API, client.Session, o.notifier)
	client.Wishlist = wishlist.New(client.API, client.Session, o.notifier)
	client.Checkout = checkout.New(client.API, client.Cart, o.notifier)
	client.Catalog = catalog.New(client.API, client.Session, o.notifier)
	client.Orders = orders.New(client.API, o.notifier)

	return client, nil
}

// Bootstrap restores the persisted session, which in turn triggers the
// initial cart and wishlist fetch when an identity was restored.
func (c *Client) Bootstrap(ctx context.Context) error {
	return c.Session.Bootstrap(ctx)
}

// Guard evaluates the authenticated-only navigation predicate.
func (c *Client) Guard() guard.Decision {
	return guard.Protect(c.Session)
}

// GuardAdmin evaluates the admin-only navigation predicate.
func (c *Client) GuardAdmin() guard.Decision {
	return guard.ProtectAdmin(c.Session)
}

func (c *Client) Close(ctx context.Context) error {

	c.Cart.Close()
	c.Wishlist.Close()

	if c.redisClient != nil {
		if err := c.redisClient.Close(); err != nil {
			slog.Warn("failed to close redis client", slog.String("error", err.Error()))
		}
	}

	if c.shutdownTracing != nil {
		return c.shutdownTracing(ctx)
	}

	return nil
}
