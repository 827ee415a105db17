// Package folio is a single-author academic portfolio server built with Go,
// Echo and templ. It serves the public profile pages and a JSON API, and
// lets the signed-in owner edit every section in place.
package folio

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/eringen/folio/internal/logger"
)

// App is the central folio application. It wires together the store,
// services, middleware, handlers and views.
type App struct {
	Config   SiteConfig
	Echo     *echo.Echo
	Store    *Store
	Services *Services
	Tokens   *TokenIssuer
	Log      logger.Logger

	loginLimiter  *LoginLimiter
	customRoutes  []func(*App)
	externalStore bool
	initialized   bool
}

// New creates a folio App with the given configuration.
func New(cfg SiteConfig, opts ...Option) *App {
	cfg.setDefaults()

	a := &App{
		Config: cfg,
		Echo:   echo.New(),
	}
	a.Echo.HideBanner = true
	a.Echo.HidePort = true

	for _, opt := range opts {
		opt(a)
	}
	if a.Log == nil {
		a.Log = logger.Nop()
	}
	return a
}

// Init opens the store, bootstraps the owner account and registers the
// middleware and routes. Start calls it when needed; tests call it directly
// and drive a.Echo with httptest.
func (a *App) Init(ctx context.Context) error {
	if a.initialized {
		return nil
	}
	if err := a.Config.Validate(); err != nil {
		return err
	}

	if a.Store == nil {
		store, err := NewStore(ctx, a.Config.DBDriver, a.Config.DatabaseURL)
		if err != nil {
			return fmt.Errorf("folio: init store: %w", err)
		}
		a.Store = store
	}
	a.Services = NewServices(a.Store, ContextGate)
	a.Tokens = NewTokenIssuer(a.Config.SessionSecret, a.Config.TokenTTL)
	a.loginLimiter = NewLoginLimiter(5, time.Minute)

	if err := a.bootstrapOwner(ctx); err != nil {
		return fmt.Errorf("folio: bootstrap owner: %w", err)
	}

	a.setupMiddleware()
	a.setupRoutes()
	for _, fn := range a.customRoutes {
		fn(a)
	}
	a.initialized = true
	return nil
}

// Start initializes the app and serves HTTP until ctx is cancelled, then
// shuts down gracefully within Config.ShutdownTimeout.
func (a *App) Start(ctx context.Context) error {
	if err := a.Init(ctx); err != nil {
		return err
	}

	errCh := make(chan error, 1)
	go func() {
		a.Log.Info("listening", logger.String("addr", a.Config.Addr), logger.String("db", string(a.Config.DBDriver)))
		if err := a.Echo.Start(a.Config.Addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	a.Log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.Config.ShutdownTimeout)
	defer cancel()
	if err := a.Echo.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("folio: shutdown: %w", err)
	}
	return <-errCh
}

func (a *App) setupRoutes() {
	e := a.Echo

	e.Static("/public", a.Config.StaticDir)
	e.GET("/robots.txt", a.handleRobots)
	e.GET("/sitemap.xml", a.handleSitemap)
	e.GET("/feed.xml", a.handleFeed)

	e.GET("/", a.handleHome)
	e.GET("/publications", a.handlePublications)
	e.GET("/news", a.handleNews)

	e.GET("/login", a.handleLoginForm)
	e.POST("/login", a.handleLogin)
	e.POST("/logout", a.handleLogout)

	edit := e.Group("/edit", a.requireOwnerPage)
	edit.GET("/:kind", a.handleEditForm)
	edit.POST("/:kind", a.handleEditSubmit)
	edit.GET("/:kind/delete", a.handleDeleteConfirm)
	edit.POST("/:kind/delete", a.handleDeleteSubmit)

	a.registerAPI(e.Group("/api"))
}

func (a *App) bootstrapOwner(ctx context.Context) error {
	if a.Config.OwnerEmail == "" || a.Config.OwnerPassword == "" {
		return nil
	}
	n, err := a.Services.Owners.Count(ctx)
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}
	o, err := a.Services.Owners.Create(ctx, a.Config.OwnerName, a.Config.OwnerEmail, a.Config.OwnerPassword)
	if err != nil {
		return err
	}
	a.Log.Info("created owner account", logger.String("email", o.Email))
	return nil
}

// Close stops background work and releases the store unless it was
// supplied with WithStore.
func (a *App) Close() error {
	if a.loginLimiter != nil {
		a.loginLimiter.Close()
	}
	if a.Store != nil && !a.externalStore {
		return a.Store.Close()
	}
	return nil
}
