// Package app wires the storefront client together: one explicitly
// constructed container with a defined lifecycle instead of ambient
// module-level state.
package app

import (
	"context"
	"errors"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/andreasstove999/storefront-client-go/internal/admin"
	"github.com/andreasstove999/storefront-client-go/internal/api"
	"github.com/andreasstove999/storefront-client-go/internal/cart"
	"github.com/andreasstove999/storefront-client-go/internal/catalog"
	"github.com/andreasstove999/storefront-client-go/internal/checkout"
	"github.com/andreasstove999/storefront-client-go/internal/config"
	"github.com/andreasstove999/storefront-client-go/internal/session"
)

var (
	// ErrLoginRequired gates guarded surfaces for anonymous callers; the
	// CLI answers it by pointing at the login command.
	ErrLoginRequired = errors.New("app: login required")

	// ErrAccessDenied is the wrong-role answer for an authenticated caller.
	ErrAccessDenied = errors.New("app: access denied")
)

type Options struct {
	Logger       *log.Logger
	HTTPClient   *http.Client
	Store        session.Store   // defaults to a FileStore at cfg.CredentialsFile
	CatalogStore catalog.Store   // defaults to memory, or Redis when configured
	Confirm      admin.Confirmer // defaults to auto-approve
}

type App struct {
	cfg    config.Config
	logger *log.Logger

	Session  *session.Manager
	Cart     *cart.Synchronizer
	Catalog  *catalog.Cache
	Checkout *checkout.Flow

	AdminProducts *admin.Products
	AdminUsers    *admin.Users
	AdminOrders   *admin.Orders

	auth *api.AuthClient

	mu     sync.Mutex
	settle *time.Timer
	closed bool
}

func New(cfg config.Config, opts Options) (*App, error) {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(log.Writer(), "[storefront] ", log.LstdFlags|log.Lmicroseconds)
	}

	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.RequestTimeout}
	}

	store := opts.Store
	if store == nil {
		store = session.NewFileStore(cfg.CredentialsFile)
	}

	sess := session.NewManager(store, logger)

	base := api.NewClient(cfg.APIBaseURL, httpClient, sess)
	authClient := api.NewAuthClient(base)
	cartClient := api.NewCartClient(base)
	productsClient := api.NewProductsClient(base)
	ordersClient := api.NewOrdersClient(base)
	adminClient := api.NewAdminClient(base)

	catalogStore := opts.CatalogStore
	if catalogStore == nil && cfg.RedisURL != "" {
		rs, err := catalog.NewRedisStore(cfg.RedisURL, cfg.CatalogCacheTTL)
		if err != nil {
			return nil, err
		}
		catalogStore = rs
	}

	synchronizer := cart.NewSynchronizer(cartClient, sess, logger)

	a := &App{
		cfg:           cfg,
		logger:        logger,
		Session:       sess,
		Cart:          synchronizer,
		Catalog:       catalog.NewCache(productsClient, catalogStore, logger),
		Checkout:      checkout.NewFlow(ordersClient, synchronizer, logger),
		AdminProducts: admin.NewProducts(adminClient, opts.Confirm),
		AdminUsers:    admin.NewUsers(adminClient, opts.Confirm),
		AdminOrders:   admin.NewOrders(adminClient),
		auth:          authClient,
	}

	sess.OnChange(a.handleAuthChange)
	return a, nil
}

// Start rehydrates the session from storage and, when a usable session
// exists, schedules the initial cart load behind the settling delay.
func (a *App) Start() error {
	if err := a.Session.Initialize(); err != nil {
		return err
	}
	if a.Session.IsAuthenticated() {
		a.scheduleCartLoad()
	}
	return nil
}

// Login exchanges credentials for a session. The role used for guard
// decisions comes from the trusted response body.
func (a *App) Login(ctx context.Context, email, password string) (string, error) {
	res, err := a.auth.Login(ctx, email, password)
	if err != nil {
		return "", err
	}
	a.Session.Login(res.AccessToken, res.User.Role)
	return res.User.Role, nil
}

func (a *App) Register(ctx context.Context, email, password string) error {
	return a.auth.Register(ctx, email, password)
}

func (a *App) Logout() {
	a.Session.Logout()
}

// RequireRole is the route-guard analogue: unauthenticated callers are sent
// to login, authenticated callers with the wrong role are denied.
func (a *App) RequireRole(role string) error {
	if !a.Session.IsAuthenticated() {
		return ErrLoginRequired
	}
	if a.Session.Role() != role {
		return ErrAccessDenied
	}
	return nil
}

// Close tears the container down: the pending settling timer is cancelled
// and late cart responses are discarded.
func (a *App) Close() {
	a.mu.Lock()
	a.closed = true
	if a.settle != nil {
		a.settle.Stop()
		a.settle = nil
	}
	a.mu.Unlock()

	a.Cart.Close()
}

func (a *App) handleAuthChange(authenticated bool) {
	if authenticated {
		a.scheduleCartLoad()
		return
	}
	a.cancelCartLoad()
	a.Cart.ResetLocal()
}

// scheduleCartLoad arms the settling delay before the first cart fetch. The
// timer is cancelled if authentication drops or the container closes before
// it fires.
func (a *App) scheduleCartLoad() {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.closed {
		return
	}
	if a.settle != nil {
		a.settle.Stop()
	}
	a.settle = time.AfterFunc(a.cfg.CartSettleDelay, func() {
		ctx, cancel := context.WithTimeout(context.Background(), a.cfg.RequestTimeout)
		defer cancel()
		if err := a.Cart.Refresh(ctx); err != nil && !errors.Is(err, cart.ErrClosed) {
			a.logger.Printf("app: initial cart load: %v", err)
		}
	})
}

func (a *App) cancelCartLoad() {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.settle != nil {
		a.settle.Stop()
		a.settle = nil
	}
}
