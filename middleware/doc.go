// Package middleware provides handler.Middleware implementations shared by the
// application: request IDs, client IPs, request logging, body limits, rate
// limiting, the per-request session manager and the route guard for protected pages.
//
// Middlewares are generic over the request context type:
//
//	r := router.New[*albums.Context](router.WithContextFactory(factory))
//	r.Use(
//		middleware.RequestID[*albums.Context](),
//		middleware.LoggingWithLogger[*albums.Context](log),
//		middleware.Session(middleware.SessionConfig[*albums.Context]{Storage: storageOf}),
//	)
//	r.With(middleware.Guard(middleware.GuardConfig[*albums.Context]{Storage: storageOf})).
//		Get("/manager", managerPage)
package middleware
