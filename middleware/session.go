package middleware

import (
	"context"
	"log/slog"

	"github.com/dmitrymomot/albummanager/core/handler"
	"github.com/dmitrymomot/albummanager/core/logger"
	"github.com/dmitrymomot/albummanager/core/response"
	"github.com/dmitrymomot/albummanager/core/session"
)

type sessionContextKey struct{}

type sessionEntry struct {
	manager *session.Manager
	nav     *session.Recorder
}

// SessionConfig configures the session middleware.
type SessionConfig[C handler.Context] struct {
	Skip func(ctx C) bool
	// Storage returns the client storage of the current request. Required.
	Storage func(ctx C) session.Storage
	// Options are passed to every session.Manager.
	Options []session.Option
	Logger  *slog.Logger
}

// Session creates a session.Manager for every request and runs its startup
// check. When the startup check navigates (an authenticated client opening the
// login page) the middleware redirects right away, before any route guard runs.
// Otherwise the manager is available to handlers through GetSession.
func Session[C handler.Context](cfg SessionConfig[C]) handler.Middleware[C] {
	if cfg.Storage == nil {
		panic("middleware: SessionConfig.Storage is required")
	}
	if cfg.Logger == nil {
		cfg.Logger = logger.Nop()
	}
	opts := append([]session.Option{session.WithLogger(cfg.Logger)}, cfg.Options...)

	return func(next handler.HandlerFunc[C]) handler.HandlerFunc[C] {
		return func(ctx C) handler.Response {
			if cfg.Skip != nil && cfg.Skip(ctx) {
				return next(ctx)
			}

			nav := &session.Recorder{}
			m := session.New(cfg.Storage(ctx), nav, opts...)
			m.Initialize(ctx, ctx.Request().URL.Path)

			if target, ok := nav.Target(); ok {
				return response.Redirect(target)
			}

			ctx.SetValue(sessionContextKey{}, &sessionEntry{manager: m, nav: nav})
			return next(ctx)
		}
	}
}

// GetSession returns the request's session manager.
func GetSession(ctx context.Context) (*session.Manager, bool) {
	e, ok := ctx.Value(sessionContextKey{}).(*sessionEntry)
	if !ok {
		return nil, false
	}
	return e.manager, true
}

// Navigation returns the path the session manager asked to navigate to during
// this request, if any.
func Navigation(ctx context.Context) (string, bool) {
	e, ok := ctx.Value(sessionContextKey{}).(*sessionEntry)
	if !ok {
		return "", false
	}
	return e.nav.Target()
}
