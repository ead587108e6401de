package middleware

import (
	"log/slog"

	"github.com/dmitrymomot/albummanager/core/handler"
	"github.com/dmitrymomot/albummanager/core/logger"
	"github.com/dmitrymomot/albummanager/core/response"
	"github.com/dmitrymomot/albummanager/core/session"
)

// GuardConfig configures the route guard middleware.
type GuardConfig[C handler.Context] struct {
	// Storage returns the client storage of the current request. Required.
	Storage func(ctx C) session.Storage
	Options []session.Option
	Logger  *slog.Logger
}

// Guard protects routes behind the session token. Without a token the client is
// redirected to the login path and the wrapped handler never runs. Protected
// responses are marked non-cacheable so the back button cannot show them after logout.
func Guard[C handler.Context](cfg GuardConfig[C]) handler.Middleware[C] {
	if cfg.Storage == nil {
		panic("middleware: GuardConfig.Storage is required")
	}
	if cfg.Logger == nil {
		cfg.Logger = logger.Nop()
	}

	return func(next handler.HandlerFunc[C]) handler.HandlerFunc[C] {
		return func(ctx C) handler.Response {
			g := session.NewGuard(cfg.Storage(ctx), cfg.Options...)
			if !g.CanEnter() {
				cfg.Logger.DebugContext(ctx, "protected route requires login",
					logger.Component("guard"),
					logger.Path(ctx.Request().URL.Path),
				)
				return response.Redirect(g.RedirectPath())
			}

			resp := next(ctx)
			if resp == nil {
				return nil
			}
			return response.WithCache(resp, 0)
		}
	}
}
