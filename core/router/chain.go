package router

import "github.com/dmitrymomot/albummanager/core/handler"

// chain builds a single handler from a middleware stack and endpoint.
// The first middleware in the slice is the outermost one.
func chain[C handler.Context](middlewares []handler.Middleware[C], endpoint handler.HandlerFunc[C]) handler.HandlerFunc[C] {
	h := endpoint
	for i := len(middlewares) - 1; i >= 0; i-- {
		h = middlewares[i](h)
	}
	return h
}
