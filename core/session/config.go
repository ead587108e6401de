package session

import (
	"log/slog"
	"time"

	"github.com/dmitrymomot/albummanager/core/logger"
)

const (
	DefaultStorageKey = "authToken"
	DefaultLoginPath  = "/login"
	DefaultHomePath   = "/manager"
	DefaultLatency    = time.Second
)

// Config is the environment-based session configuration.
type Config struct {
	Latency    time.Duration `env:"AUTH_LATENCY" envDefault:"1s"`
	Username   string        `env:"AUTH_USERNAME" envDefault:"12345"`
	Password   string        `env:"AUTH_PASSWORD" envDefault:"12345"`
	StorageKey string        `env:"AUTH_STORAGE_KEY" envDefault:"authToken"`
	LoginPath  string        `env:"AUTH_LOGIN_PATH" envDefault:"/login"`
	HomePath   string        `env:"AUTH_HOME_PATH" envDefault:"/manager"`
}

// Options converts the configuration into Manager and Guard options.
func (c Config) Options() []Option {
	opts := []Option{
		WithLatency(c.Latency),
		WithStorageKey(c.StorageKey),
		WithPaths(c.LoginPath, c.HomePath),
	}
	if c.Username != "" || c.Password != "" {
		opts = append(opts, WithVerifier(StaticCredentials{Username: c.Username, Password: c.Password}))
	}
	return opts
}

type options struct {
	storageKey string
	loginPath  string
	homePath   string
	latency    time.Duration
	verifier   CredentialVerifier
	logger     *slog.Logger
	now        func() time.Time
}

func newOptions(opts []Option) options {
	o := options{
		storageKey: DefaultStorageKey,
		loginPath:  DefaultLoginPath,
		homePath:   DefaultHomePath,
		latency:    DefaultLatency,
		verifier:   DefaultCredentials,
		logger:     logger.Nop(),
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Option configures a Manager or a Guard.
type Option func(*options)

// WithLatency sets the simulated verification delay of Login. Zero disables it.
func WithLatency(d time.Duration) Option {
	return func(o *options) {
		if d >= 0 {
			o.latency = d
		}
	}
}

func WithVerifier(v CredentialVerifier) Option {
	return func(o *options) {
		if v != nil {
			o.verifier = v
		}
	}
}

// WithStorageKey sets the storage key of the token.
func WithStorageKey(key string) Option {
	return func(o *options) {
		if key != "" {
			o.storageKey = key
		}
	}
}

// WithPaths sets the login path and the protected landing path.
func WithPaths(login, home string) Option {
	return func(o *options) {
		if login != "" {
			o.loginPath = login
		}
		if home != "" {
			o.homePath = home
		}
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithClock replaces time.Now for token timestamps.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		if now != nil {
			o.now = now
		}
	}
}
