// Package response provides handler.Response constructors.
//
// A Response is rendered after the middleware chain unwinds, so handlers just
// describe what to send:
//
//	func loginPage(ctx *albums.Context) handler.Response {
//		return response.Templ(views.Login(views.LoginData{Paths: views.DefaultPaths}))
//	}
//
// Redirects are htmx aware: when the request carries "HX-Request: true" the
// target is sent in HX-Location with 200 OK so htmx navigates client-side.
//
// Errors returned from a handler with Error, or from a failing Response, reach
// the router error handler. HTTPError values carry their own status code.
package response
