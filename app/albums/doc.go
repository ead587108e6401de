// Package albums wires the Album Manager web application: a login gate backed
// by a signed cookie token in front of an in-memory album catalog.
//
// Routes:
//
//	GET  /                               redirect to the login page
//	GET  /login, POST /login             sign in
//	POST /logout                         sign out
//	GET  /manager                        album table (protected)
//	GET  /manager/albums/new             add form (protected)
//	POST /manager/albums                 add album, multipart (protected)
//	GET  /manager/albums/{id}/delete     delete confirmation (protected)
//	POST /manager/albums/{id}/delete     delete album (protected)
//	GET  /live, GET /ready               health probes
//
// Every other path redirects to the login page, and so does a GET or HEAD on
// a path that only accepts POST. Other method mismatches answer 405.
package albums
