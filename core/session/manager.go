package session

import (
	"context"
	"sync"
	"time"

	"github.com/dmitrymomot/albummanager/core/logger"
	"github.com/dmitrymomot/albummanager/pkg/async"
)

// Manager owns the authentication state of one client.
// It is safe for concurrent use.
type Manager struct {
	storage Storage
	nav     Navigator
	opts    options

	mu          sync.Mutex
	state       State
	busy        bool
	initialized bool
}

// New creates a Manager whose initial state derives from storage.
func New(storage Storage, nav Navigator, opts ...Option) *Manager {
	m := &Manager{
		storage: storage,
		nav:     nav,
		opts:    newOptions(opts),
	}
	if hasToken(storage, m.opts.storageKey) {
		m.state = StateAuthenticated
	}
	return m
}

// Initialize reads the persisted token and, when authenticated on the login
// path, navigates to the protected landing path. Only the first call has effect.
func (m *Manager) Initialize(ctx context.Context, currentPath string) {
	m.mu.Lock()
	if m.initialized {
		m.mu.Unlock()
		return
	}
	m.initialized = true
	authenticated := hasToken(m.storage, m.opts.storageKey)
	if authenticated {
		m.state = StateAuthenticated
	} else {
		m.state = StateAnonymous
	}
	m.mu.Unlock()

	if authenticated && currentPath == m.opts.loginPath {
		m.opts.logger.DebugContext(ctx, "authenticated on login page",
			logger.Component("session"),
			logger.Event("startup_redirect"),
			logger.Path(m.opts.homePath),
		)
		m.nav.Navigate(m.opts.homePath)
	}
}

// Login verifies the credentials after the simulated latency. On success the new
// token replaces any previous one and the client navigates to the landing path.
// A Login started while another is pending returns false immediately.
// The latency is not interrupted by ctx cancellation.
func (m *Manager) Login(ctx context.Context, username, password string) bool {
	m.mu.Lock()
	if m.busy {
		m.mu.Unlock()
		m.opts.logger.WarnContext(ctx, "login already in progress",
			logger.Component("session"),
			logger.Username(username),
		)
		return false
	}
	m.busy = true
	m.mu.Unlock()

	defer func() {
		m.mu.Lock()
		m.busy = false
		m.mu.Unlock()
	}()

	if m.opts.latency > 0 {
		time.Sleep(m.opts.latency)
	}

	ctx = context.WithoutCancel(ctx)
	if !m.opts.verifier.Verify(ctx, username, password) {
		m.opts.logger.InfoContext(ctx, "login rejected",
			logger.Component("session"),
			logger.Username(username),
			logger.Result("failure"),
		)
		return false
	}

	token := NewToken(username, m.opts.now())
	if err := m.storage.Set(m.opts.storageKey, token); err != nil {
		m.opts.logger.ErrorContext(ctx, "failed to persist session token",
			logger.Component("session"),
			logger.Username(username),
			logger.Error(err),
		)
		return false
	}

	m.mu.Lock()
	m.state = StateAuthenticated
	m.mu.Unlock()

	m.opts.logger.InfoContext(ctx, "login succeeded",
		logger.Component("session"),
		logger.Username(username),
		logger.Result("success"),
	)
	m.nav.Navigate(m.opts.homePath)
	return true
}

type credentials struct {
	username string
	password string
}

// LoginAsync runs Login in the background.
func (m *Manager) LoginAsync(ctx context.Context, username, password string) *async.Future[bool] {
	return async.Async(context.WithoutCancel(ctx), credentials{username, password},
		func(ctx context.Context, c credentials) (bool, error) {
			return m.Login(ctx, c.username, c.password), nil
		})
}

// Logout removes the token and navigates to the login path. It never fails:
// storage errors are logged and the session still becomes anonymous.
func (m *Manager) Logout(ctx context.Context) {
	if err := m.storage.Remove(m.opts.storageKey); err != nil {
		m.opts.logger.ErrorContext(ctx, "failed to remove session token",
			logger.Component("session"),
			logger.Error(err),
		)
	}

	m.mu.Lock()
	m.state = StateAnonymous
	m.mu.Unlock()

	m.nav.Navigate(m.opts.loginPath)
}

func (m *Manager) IsAuthenticated() bool {
	return m.State() == StateAuthenticated
}

func (m *Manager) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Busy reports whether a Login is pending.
func (m *Manager) Busy() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.busy
}

// LoginPath returns the configured login path.
func (m *Manager) LoginPath() string { return m.opts.loginPath }

// HomePath returns the configured protected landing path.
func (m *Manager) HomePath() string { return m.opts.homePath }
