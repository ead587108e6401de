// Package handler defines the request processing contract shared by the router,
// the middleware and the application handlers.
//
// A handler receives a typed request context and returns a Response. The Response
// is a deferred renderer: it runs after the middleware chain has unwound, which lets
// middleware decorate or replace what the handler produced.
//
//	type HandlerFunc[C Context] func(ctx C) Response
//	type Middleware[C Context] func(next HandlerFunc[C]) HandlerFunc[C]
//
// Applications usually define their own context type that satisfies Context and adds
// accessors for request-scoped services:
//
//	func logout(ctx *albums.Context) handler.Response {
//		ctx.Session().Logout(ctx)
//		return response.RedirectSeeOther("/login")
//	}
//
// Errors returned from a Response are passed to the router's ErrorHandler.
package handler
