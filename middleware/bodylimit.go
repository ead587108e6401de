package middleware

import (
	"net/http"
	"strconv"

	"github.com/dmitrymomot/albummanager/core/handler"
	"github.com/dmitrymomot/albummanager/core/response"
)

// DefaultBodyLimit caps request bodies at 4MB.
const DefaultBodyLimit int64 = 4 << 20

// BodyLimitConfig configures the request body limit middleware.
type BodyLimitConfig struct {
	Skip func(ctx handler.Context) bool
	// MaxSize in bytes (default: DefaultBodyLimit)
	MaxSize int64
}

// BodyLimit limits request bodies to DefaultBodyLimit.
func BodyLimit[C handler.Context]() handler.Middleware[C] {
	return BodyLimitWithConfig[C](BodyLimitConfig{})
}

// BodyLimitWithSize limits request bodies to maxSize bytes.
func BodyLimitWithSize[C handler.Context](maxSize int64) handler.Middleware[C] {
	return BodyLimitWithConfig[C](BodyLimitConfig{MaxSize: maxSize})
}

// BodyLimitWithConfig rejects requests whose Content-Length exceeds the limit and
// caps the body reader for the rest. Reads past the limit fail with *http.MaxBytesError.
func BodyLimitWithConfig[C handler.Context](cfg BodyLimitConfig) handler.Middleware[C] {
	if cfg.MaxSize <= 0 {
		cfg.MaxSize = DefaultBodyLimit
	}

	return func(next handler.HandlerFunc[C]) handler.HandlerFunc[C] {
		return func(ctx C) handler.Response {
			if cfg.Skip != nil && cfg.Skip(ctx) {
				return next(ctx)
			}

			req := ctx.Request()
			if req.ContentLength > cfg.MaxSize {
				return response.Error(response.ErrRequestEntityTooLarge.WithMessage(
					"Request body too large. Maximum allowed: " + strconv.FormatInt(cfg.MaxSize, 10) + " bytes",
				))
			}

			if req.Body != nil && req.Body != http.NoBody {
				req.Body = http.MaxBytesReader(ctx.ResponseWriter(), req.Body, cfg.MaxSize)
			}
			return next(ctx)
		}
	}
}
