// Package health provides liveness and readiness handlers.
//
//	r.Get("/live", health.Liveness[*albums.Context])
//	r.Get("/ready", health.Readiness[*albums.Context](log, store.Healthcheck))
package health
