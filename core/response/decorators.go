package response

import (
	"fmt"
	"net/http"
	"time"

	"github.com/dmitrymomot/albummanager/core/handler"
)

// WithHeaders sets headers before the wrapped response renders.
func WithHeaders(resp handler.Response, headers map[string]string) handler.Response {
	return func(w http.ResponseWriter, r *http.Request) error {
		for k, v := range headers {
			w.Header().Set(k, v)
		}
		return resp(w, r)
	}
}

// WithCookie sets a cookie before the wrapped response renders.
func WithCookie(resp handler.Response, cookie *http.Cookie) handler.Response {
	return func(w http.ResponseWriter, r *http.Request) error {
		if cookie != nil {
			http.SetCookie(w, cookie)
		}
		return resp(w, r)
	}
}

// WithCache sets caching headers. A zero or negative maxAge disables caching.
func WithCache(resp handler.Response, maxAge time.Duration) handler.Response {
	return func(w http.ResponseWriter, r *http.Request) error {
		if seconds := int(maxAge.Seconds()); seconds > 0 {
			w.Header().Set("Cache-Control", fmt.Sprintf("public, max-age=%d", seconds))
			w.Header().Set("Expires", time.Now().Add(maxAge).UTC().Format(http.TimeFormat))
		} else {
			w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
			w.Header().Set("Pragma", "no-cache")
			w.Header().Set("Expires", "0")
		}
		return resp(w, r)
	}
}
