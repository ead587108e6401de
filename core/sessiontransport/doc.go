// Package sessiontransport backs session.Storage with signed HTTP cookies.
//
// Each request gets its own Storage view. Reads come from the request cookies;
// writes emit Set-Cookie headers and are also kept in a request-local overlay so a
// read after a write in the same request sees the new value:
//
//	transport := sessiontransport.NewCookie(cookies)
//	storage := transport.Storage(w, r)
//	_ = storage.Set("authToken", token)
//	token, ok := storage.Get("authToken") // the value just written
//
// Cookies that fail signature verification read as absent.
package sessiontransport
