package albums

import (
	"log/slog"
	"strings"
	"time"

	"github.com/dmitrymomot/albummanager/core/cookie"
	"github.com/dmitrymomot/albummanager/core/logger"
	"github.com/dmitrymomot/albummanager/core/server"
	"github.com/dmitrymomot/albummanager/core/session"
	"github.com/dmitrymomot/albummanager/core/sessiontransport"
)

type Config struct {
	Server    server.Config
	Cookie    cookie.Config
	Transport sessiontransport.CookieConfig
	Session   session.Config
	Catalog   CatalogConfig
	LoginRate LoginRateConfig

	AppName  string `env:"APP_NAME" envDefault:"albummanager"`
	Env      string `env:"APP_ENV" envDefault:"development"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
}

// CatalogConfig configures the album catalog.
type CatalogConfig struct {
	Latency       time.Duration `env:"ALBUM_LATENCY" envDefault:"1s"`
	MaxUploadSize int64         `env:"ALBUM_MAX_UPLOAD_SIZE" envDefault:"4194304"`
	Seed          bool          `env:"ALBUM_SEED" envDefault:"true"`
}

// LoginRateConfig limits sign-in attempts per client IP. Attempts refill one
// at a time every Interval up to Attempts.
type LoginRateConfig struct {
	Attempts int           `env:"LOGIN_RATE_ATTEMPTS" envDefault:"10"`
	Interval time.Duration `env:"LOGIN_RATE_INTERVAL" envDefault:"1m"`
}

// NewLogger builds the application logger for the configured environment.
func NewLogger(cfg Config, opts ...logger.Option) *slog.Logger {
	var base []logger.Option
	switch strings.ToLower(cfg.Env) {
	case "production":
		base = append(base, logger.WithProduction(cfg.AppName))
	case "staging":
		base = append(base, logger.WithStaging(cfg.AppName))
	default:
		base = append(base, logger.WithDevelopment(cfg.AppName))
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.LogLevel)); err == nil {
		base = append(base, logger.WithLevel(level))
	}
	return logger.New(append(base, opts...)...)
}
