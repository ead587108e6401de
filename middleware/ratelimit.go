package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/dmitrymomot/albummanager/core/handler"
	"github.com/dmitrymomot/albummanager/core/logger"
	"github.com/dmitrymomot/albummanager/core/response"
	"github.com/dmitrymomot/albummanager/pkg/ratelimiter"
)

// Limiter is satisfied by *ratelimiter.Bucket.
type Limiter interface {
	Allow(ctx context.Context, key string) (ratelimiter.Result, error)
}

// RateLimitConfig configures the rate limiting middleware.
type RateLimitConfig struct {
	Skip    func(ctx handler.Context) bool
	Limiter Limiter
	// KeyExtractor defaults to the client IP, then RemoteAddr.
	KeyExtractor func(ctx handler.Context) string
	Logger       *slog.Logger
}

// RateLimit rejects requests over the limit with 429 Too Many Requests.
// X-RateLimit-* headers are set on every limited response.
func RateLimit[C handler.Context](cfg RateLimitConfig) handler.Middleware[C] {
	if cfg.Limiter == nil {
		panic("middleware: RateLimitConfig.Limiter is required")
	}
	if cfg.KeyExtractor == nil {
		cfg.KeyExtractor = func(ctx handler.Context) string {
			if ip, ok := GetClientIP(ctx); ok {
				return ip
			}
			return ctx.Request().RemoteAddr
		}
	}
	if cfg.Logger == nil {
		cfg.Logger = logger.Nop()
	}

	return func(next handler.HandlerFunc[C]) handler.HandlerFunc[C] {
		return func(ctx C) handler.Response {
			if cfg.Skip != nil && cfg.Skip(ctx) {
				return next(ctx)
			}

			key := cfg.KeyExtractor(ctx)
			result, err := cfg.Limiter.Allow(ctx, key)
			if err != nil {
				return response.Error(response.ErrInternalServerError.WithError(err))
			}

			if !result.Allowed() {
				cfg.Logger.WarnContext(ctx, "rate limit exceeded",
					logger.Component("ratelimit"),
					logger.Key("limit_key", key),
					logger.Path(ctx.Request().URL.Path),
				)
				return withRateLimitHeaders(response.Error(response.ErrTooManyRequests.WithMessage(
					"Too many attempts. Please wait and try again.",
				)), result)
			}

			resp := next(ctx)
			if resp == nil {
				return nil
			}
			return withRateLimitHeaders(resp, result)
		}
	}
}

func withRateLimitHeaders(resp handler.Response, result ratelimiter.Result) handler.Response {
	return func(w http.ResponseWriter, r *http.Request) error {
		w.Header().Set("X-RateLimit-Limit", strconv.Itoa(result.Limit))
		w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(max(0, result.Remaining)))
		w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(result.ResetAt.Unix(), 10))
		if retry := result.RetryAfter(); retry > 0 {
			w.Header().Set("Retry-After", strconv.Itoa(int(retry.Seconds())+1))
		}
		return resp(w, r)
	}
}
