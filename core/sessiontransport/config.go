package sessiontransport

import (
	"time"

	"github.com/dmitrymomot/albummanager/core/cookie"
)

// CookieConfig is the environment-based configuration of the cookie transport.
type CookieConfig struct {
	// MaxAge keeps stored values across browser restarts. Zero makes them
	// browser-session cookies.
	MaxAge time.Duration `env:"SESSION_COOKIE_MAX_AGE" envDefault:"8760h"`
}

// NewCookieFromConfig creates a cookie transport from configuration.
func NewCookieFromConfig(cfg CookieConfig, cookies *cookie.Manager) *Cookie {
	return NewCookie(cookies, cookie.WithMaxAge(int(cfg.MaxAge.Seconds())))
}
