package response

import "net/http"

const (
	// HeaderHXRequest is sent by htmx on every request it issues.
	HeaderHXRequest = "HX-Request"
	// HeaderHXLocation tells htmx to perform a client-side navigation.
	HeaderHXLocation = "HX-Location"
)

// IsHTMX reports whether r was issued by htmx.
func IsHTMX(r *http.Request) bool {
	return r.Header.Get(HeaderHXRequest) == "true"
}
