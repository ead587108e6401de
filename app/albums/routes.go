package albums

import (
	"strings"

	"github.com/dmitrymomot/albummanager/core/health"
	"github.com/dmitrymomot/albummanager/core/router"
	"github.com/dmitrymomot/albummanager/core/session"
	"github.com/dmitrymomot/albummanager/middleware"
)

func (a *App) routes() router.Router[*Context] {
	security := middleware.PageSecurity
	security.IsDevelopment = strings.EqualFold(a.config.Env, "development")

	r := router.New[*Context](
		router.WithContextFactory[*Context](contextFactory(a.transport)),
		router.WithErrorHandler[*Context](a.handleError),
		router.WithLogger[*Context](a.logger),
		router.WithMethodNotAllowed[*Context](a.methodNotAllowed),
		router.WithMiddleware[*Context](
			middleware.RequestID[*Context](),
			middleware.ClientIP[*Context](),
			middleware.SecurityHeadersWithConfig[*Context](security),
			middleware.LoggingWithLogger[*Context](a.logger),
		),
	)

	r.Get("/live", health.Liveness[*Context])
	r.Get("/ready", health.Readiness[*Context](a.logger, a.store.Healthcheck))

	sessionOpts := append(a.config.Session.Options(), session.WithClock(a.now))
	storage := func(ctx *Context) session.Storage { return ctx.Storage() }

	r.Group(func(r router.Router[*Context]) {
		r.Use(middleware.Session[*Context](middleware.SessionConfig[*Context]{
			Storage: storage,
			Options: sessionOpts,
			Logger:  a.logger,
		}))

		r.Get("/", a.index)
		r.Get(a.paths.Login, a.loginPage)
		r.With(middleware.RateLimit[*Context](middleware.RateLimitConfig{
			Limiter: a.limiter,
			Logger:  a.logger,
		})).Post(a.paths.Login, a.login)
		r.Post(a.paths.Logout, a.logout)

		r.Group(func(r router.Router[*Context]) {
			r.Use(middleware.Guard[*Context](middleware.GuardConfig[*Context]{
				Storage: storage,
				Options: sessionOpts,
				Logger:  a.logger,
			}))

			r.Get(a.paths.Manager, a.manager)
			r.Get(a.paths.NewAlbum(), a.newAlbum)
			r.With(middleware.BodyLimitWithSize[*Context](a.config.Catalog.MaxUploadSize)).
				Post(a.paths.Albums(), a.addAlbum)
			r.Get(a.paths.Manager+"/albums/{id}/delete", a.confirmDelete)
			r.Post(a.paths.Manager+"/albums/{id}/delete", a.deleteAlbum)
		})
	})

	r.NotFound(a.notFound)
	return r
}
