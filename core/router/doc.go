// Package router provides a generic HTTP router with typed request contexts.
//
// Routing is delegated to github.com/go-chi/chi/v5; this package adapts chi to the
// handler.HandlerFunc contract: it builds the typed context for every request,
// runs the middleware chain, renders the returned handler.Response and funnels
// every failure (unknown route, wrong method, nil response, render error, panic)
// into a single error handler.
//
// Basic usage:
//
//	r := router.New[*router.Context]()
//	r.Use(middleware.RequestID[*router.Context]())
//	r.Get("/albums/{id}", func(ctx *router.Context) handler.Response {
//		return response.String(ctx.Param("id"))
//	})
//	http.ListenAndServe(":8080", r)
//
// Custom contexts need a factory:
//
//	r := router.New[*app.Context](
//		router.WithContextFactory[*app.Context](newAppContext),
//		router.WithErrorHandler[*app.Context](renderErrorPage),
//	)
//
// Unmatched paths go to the NotFound handler. A path that exists for another
// method goes to the WithMethodNotAllowed handler, which defaults to a 405
// through the error handler.
//
// Middleware registered with Use must be added before any route. With and Group
// create inline routers that share the route table but carry extra middleware.
package router
