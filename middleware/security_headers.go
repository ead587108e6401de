package middleware

import (
	"maps"

	"github.com/dmitrymomot/albummanager/core/handler"
)

// SecurityHeadersConfig lists the response headers set by SecurityHeaders.
// Empty values are not sent.
type SecurityHeadersConfig struct {
	Skip func(ctx handler.Context) bool

	ContentTypeOptions      string
	FrameOptions            string
	StrictTransportSecurity string
	ContentSecurityPolicy   string
	ReferrerPolicy          string
	PermissionsPolicy       string
	CrossOriginOpenerPolicy string

	// CustomHeaders are sent as is and override the fields above.
	CustomHeaders map[string]string

	// IsDevelopment drops HSTS so local plain HTTP keeps working.
	IsDevelopment bool
}

// PageSecurity fits server rendered pages that carry their styles and small
// event handlers inline and show images as data URLs. Forms may only post
// back to the same origin and the pages cannot be framed.
var PageSecurity = SecurityHeadersConfig{
	ContentTypeOptions:      "nosniff",
	FrameOptions:            "DENY",
	StrictTransportSecurity: "max-age=31536000; includeSubDomains",
	ContentSecurityPolicy: "default-src 'self'; script-src 'self' 'unsafe-inline'; style-src 'self' 'unsafe-inline'; " +
		"img-src 'self' data:; form-action 'self'; frame-ancestors 'none'; base-uri 'self'",
	ReferrerPolicy:          "same-origin",
	PermissionsPolicy:       "geolocation=(), microphone=(), camera=()",
	CrossOriginOpenerPolicy: "same-origin",
}

// SecurityHeaders sets the PageSecurity headers on every response.
func SecurityHeaders[C handler.Context]() handler.Middleware[C] {
	return SecurityHeadersWithConfig[C](PageSecurity)
}

// SecurityHeadersWithConfig sets the configured headers before the response
// is written, redirects and error pages included.
func SecurityHeadersWithConfig[C handler.Context](cfg SecurityHeadersConfig) handler.Middleware[C] {
	if cfg.IsDevelopment {
		cfg.StrictTransportSecurity = ""
	}

	headers := make(map[string]string)
	for name, value := range map[string]string{
		"X-Content-Type-Options":     cfg.ContentTypeOptions,
		"X-Frame-Options":            cfg.FrameOptions,
		"Strict-Transport-Security":  cfg.StrictTransportSecurity,
		"Content-Security-Policy":    cfg.ContentSecurityPolicy,
		"Referrer-Policy":            cfg.ReferrerPolicy,
		"Permissions-Policy":         cfg.PermissionsPolicy,
		"Cross-Origin-Opener-Policy": cfg.CrossOriginOpenerPolicy,
	} {
		if value != "" {
			headers[name] = value
		}
	}
	maps.Copy(headers, cfg.CustomHeaders)

	return func(next handler.HandlerFunc[C]) handler.HandlerFunc[C] {
		return func(ctx C) handler.Response {
			if cfg.Skip != nil && cfg.Skip(ctx) {
				return next(ctx)
			}

			// Set before next runs so error responses rendered by the router
			// carry the headers too.
			h := ctx.ResponseWriter().Header()
			for name, value := range headers {
				h.Set(name, value)
			}
			return next(ctx)
		}
	}
}
