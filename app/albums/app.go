package albums

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/dmitrymomot/albummanager/app/albums/catalog"
	"github.com/dmitrymomot/albummanager/app/albums/views"
	"github.com/dmitrymomot/albummanager/core/config"
	"github.com/dmitrymomot/albummanager/core/cookie"
	"github.com/dmitrymomot/albummanager/core/logger"
	"github.com/dmitrymomot/albummanager/core/router"
	"github.com/dmitrymomot/albummanager/core/server"
	"github.com/dmitrymomot/albummanager/core/session"
	"github.com/dmitrymomot/albummanager/core/sessiontransport"
	"github.com/dmitrymomot/albummanager/pkg/ratelimiter"
)

type App struct {
	config    Config
	logger    *slog.Logger
	cookies   *cookie.Manager
	transport *sessiontransport.Cookie
	store     *catalog.Store
	attempts  *ratelimiter.MemoryStore
	limiter   *ratelimiter.Bucket
	router    router.Router[*Context]
	server    *server.Server
	paths     views.Paths
	now       func() time.Time

	configSet bool
}

type AppOption func(*App) error

// New builds the application. Without WithConfig the configuration is loaded
// from the environment.
func New(opts ...AppOption) (*App, error) {
	app := &App{now: time.Now}

	for _, opt := range opts {
		if err := opt(app); err != nil {
			return nil, err
		}
	}

	if !app.configSet {
		if err := config.Load(&app.config); err != nil {
			return nil, err
		}
	}

	if app.logger == nil {
		app.logger = NewLogger(app.config)
	}

	if app.cookies == nil {
		cm, err := cookie.NewFromConfig(app.config.Cookie)
		if err != nil {
			return nil, err
		}
		app.cookies = cm
	}
	app.transport = sessiontransport.NewCookieFromConfig(app.config.Transport, app.cookies)

	if app.store == nil {
		var seed []catalog.Album
		if app.config.Catalog.Seed {
			seed = catalog.Seed()
		}
		app.store = catalog.NewStore(seed,
			catalog.WithLatency(app.config.Catalog.Latency),
			catalog.WithLogger(app.logger),
			catalog.WithClock(app.now),
		)
	}

	app.attempts = ratelimiter.NewMemoryStore(
		ratelimiter.WithMemoryStoreLogger(app.logger),
		ratelimiter.WithMemoryStoreClock(app.now),
	)
	limiter, err := ratelimiter.NewBucket(app.attempts, ratelimiter.Config{
		Capacity:       app.config.LoginRate.Attempts,
		RefillRate:     1,
		RefillInterval: app.config.LoginRate.Interval,
	}, ratelimiter.WithClock(app.now))
	if err != nil {
		return nil, err
	}
	app.limiter = limiter

	app.paths = views.Paths{
		Login:   valueOr(app.config.Session.LoginPath, session.DefaultLoginPath),
		Logout:  "/logout",
		Manager: valueOr(app.config.Session.HomePath, session.DefaultHomePath),
	}

	if app.server == nil {
		s, err := server.NewFromConfig(app.config.Server, server.WithLogger(app.logger))
		if err != nil {
			return nil, err
		}
		app.server = s
	}

	app.router = app.routes()
	return app, nil
}

func WithConfig(cfg Config) AppOption {
	return func(app *App) error {
		app.config = cfg
		app.configSet = true
		return nil
	}
}

func WithLogger(l *slog.Logger) AppOption {
	return func(app *App) error {
		if l == nil {
			return errors.New("logger cannot be nil")
		}
		app.logger = l
		return nil
	}
}

func WithCookieManager(cm *cookie.Manager) AppOption {
	return func(app *App) error {
		if cm == nil {
			return errors.New("cookie manager cannot be nil")
		}
		app.cookies = cm
		return nil
	}
}

func WithStore(s *catalog.Store) AppOption {
	return func(app *App) error {
		if s == nil {
			return errors.New("album store cannot be nil")
		}
		app.store = s
		return nil
	}
}

func WithServer(s *server.Server) AppOption {
	return func(app *App) error {
		if s == nil {
			return errors.New("server cannot be nil")
		}
		app.server = s
		return nil
	}
}

// WithClock replaces time.Now for form validation and album timestamps.
func WithClock(now func() time.Time) AppOption {
	return func(app *App) error {
		if now == nil {
			return errors.New("clock cannot be nil")
		}
		app.now = now
		return nil
	}
}

// Handler returns the application HTTP handler.
func (a *App) Handler() http.Handler {
	return a.router
}

func (a *App) Routes() []router.Route {
	return a.router.Routes()
}

func (a *App) Store() *catalog.Store {
	return a.store
}

// Run serves the application until ctx is cancelled.
func (a *App) Run(ctx context.Context) error {
	a.logger.InfoContext(ctx, "starting album manager",
		logger.Component("app"),
		slog.String("addr", a.config.Server.Addr),
		slog.Int("albums", a.store.Len()),
	)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(a.server.Run(ctx, a.router))
	g.Go(a.attempts.Run(ctx))
	return g.Wait()
}

func valueOr(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}
