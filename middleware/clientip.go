package middleware

import (
	"context"

	"github.com/dmitrymomot/albummanager/core/handler"
	"github.com/dmitrymomot/albummanager/pkg/clientip"
)

type clientIPContextKey struct{}

// ClientIP stores the client IP of every request for GetClientIP.
func ClientIP[C handler.Context]() handler.Middleware[C] {
	return func(next handler.HandlerFunc[C]) handler.HandlerFunc[C] {
		return func(ctx C) handler.Response {
			if ip := clientip.GetIP(ctx.Request()); ip != "" {
				ctx.SetValue(clientIPContextKey{}, ip)
			}
			return next(ctx)
		}
	}
}

// GetClientIP returns the IP stored by ClientIP.
func GetClientIP(ctx context.Context) (string, bool) {
	ip, ok := ctx.Value(clientIPContextKey{}).(string)
	return ip, ok
}
