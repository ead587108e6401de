package session_test

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"regexp"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/albummanager/core/logger"
	"github.com/dmitrymomot/albummanager/core/session"
)

var base64Token = regexp.MustCompile(`^[A-Za-z0-9+/]+=*$`)

// mockStorage implements session.Storage for failure scenarios.
type mockStorage struct {
	mock.Mock
}

func (m *mockStorage) Get(key string) (string, bool) {
	args := m.Called(key)
	return args.String(0), args.Bool(1)
}

func (m *mockStorage) Set(key, value string) error {
	return m.Called(key, value).Error(0)
}

func (m *mockStorage) Remove(key string) error {
	return m.Called(key).Error(0)
}

func newManager(storage session.Storage, opts ...session.Option) (*session.Manager, *session.Recorder) {
	nav := &session.Recorder{}
	return session.New(storage, nav, append([]session.Option{session.WithLatency(0)}, opts...)...), nav
}

func TestLogin(t *testing.T) {
	t.Parallel()

	t.Run("valid credentials", func(t *testing.T) {
		t.Parallel()

		storage := session.NewMemoryStorage(nil)
		m, nav := newManager(storage)

		ok := m.Login(context.Background(), "12345", "12345")
		require.True(t, ok)

		token, found := storage.Get(session.DefaultStorageKey)
		require.True(t, found)
		assert.NotEmpty(t, token)
		assert.Regexp(t, base64Token, token)
		assert.Equal(t, session.StateAuthenticated, m.State())
		assert.True(t, m.IsAuthenticated())

		target, navigated := nav.Target()
		assert.True(t, navigated)
		assert.Equal(t, "/manager", target)
	})

	t.Run("invalid credentials", func(t *testing.T) {
		t.Parallel()

		pairs := []struct{ username, password string }{
			{"x", "y"},
			{"12345", "wrong"},
			{"wrong", "12345"},
			{"", ""},
			{"12345", ""},
			{" 12345", "12345"},
			{"12345", "12345 "},
			{"123456", "12345"},
		}

		for _, p := range pairs {
			storage := session.NewMemoryStorage(nil)
			m, nav := newManager(storage)

			assert.False(t, m.Login(context.Background(), p.username, p.password), "%q/%q", p.username, p.password)
			_, found := storage.Get(session.DefaultStorageKey)
			assert.False(t, found)
			assert.Equal(t, session.StateAnonymous, m.State())
			assert.Zero(t, nav.Calls())
		}
	})

	t.Run("token encodes username and time", func(t *testing.T) {
		t.Parallel()

		at := time.UnixMilli(1700000000123)
		storage := session.NewMemoryStorage(nil)
		m, _ := newManager(storage, session.WithClock(func() time.Time { return at }))
		require.True(t, m.Login(context.Background(), "12345", "12345"))

		token, _ := storage.Get(session.DefaultStorageKey)
		raw, err := base64.StdEncoding.DecodeString(token)
		require.NoError(t, err)
		assert.Equal(t, "12345:1700000000123", string(raw))
		assert.Equal(t, session.NewToken("12345", at), token)
	})

	t.Run("new login overwrites previous token", func(t *testing.T) {
		t.Parallel()

		storage := session.NewMemoryStorage(map[string]string{session.DefaultStorageKey: "old"})
		m, _ := newManager(storage)
		require.True(t, m.Login(context.Background(), "12345", "12345"))

		token, _ := storage.Get(session.DefaultStorageKey)
		assert.NotEqual(t, "old", token)
	})

	t.Run("custom verifier", func(t *testing.T) {
		t.Parallel()

		m, _ := newManager(session.NewMemoryStorage(nil), session.WithVerifier(
			session.VerifierFunc(func(_ context.Context, u, p string) bool { return u == "admin" && p == "secret" }),
		))

		assert.False(t, m.Login(context.Background(), "12345", "12345"))
		assert.True(t, m.Login(context.Background(), "admin", "secret"))
	})

	t.Run("storage failure reports false and logs", func(t *testing.T) {
		t.Parallel()

		storage := &mockStorage{}
		storage.On("Get", session.DefaultStorageKey).Return("", false)
		storage.On("Set", session.DefaultStorageKey, mock.AnythingOfType("string")).Return(errors.New("quota exceeded"))

		var buf bytes.Buffer
		m, nav := newManager(storage, session.WithLogger(logger.New(logger.WithOutput(&buf))))

		assert.False(t, m.Login(context.Background(), "12345", "12345"))
		assert.Equal(t, session.StateAnonymous, m.State())
		assert.Zero(t, nav.Calls())
		assert.Contains(t, buf.String(), "quota exceeded")
		assert.NotContains(t, buf.String(), "password")
		storage.AssertExpectations(t)
	})

	t.Run("latency delays the result", func(t *testing.T) {
		t.Parallel()

		m, _ := newManager(session.NewMemoryStorage(nil), session.WithLatency(30*time.Millisecond))

		start := time.Now()
		assert.True(t, m.Login(context.Background(), "12345", "12345"))
		assert.GreaterOrEqual(t, time.Since(start), 30*time.Millisecond)
	})

	t.Run("cancelled context does not abort", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		m, _ := newManager(session.NewMemoryStorage(nil), session.WithLatency(5*time.Millisecond))
		assert.True(t, m.Login(ctx, "12345", "12345"))
	})
}

func TestLoginConcurrency(t *testing.T) {
	t.Parallel()

	t.Run("second submission while busy is rejected", func(t *testing.T) {
		t.Parallel()

		m, _ := newManager(session.NewMemoryStorage(nil), session.WithLatency(100*time.Millisecond))

		first := m.LoginAsync(context.Background(), "12345", "12345")
		require.Eventually(t, m.Busy, time.Second, time.Millisecond)

		assert.False(t, m.Login(context.Background(), "12345", "12345"))

		ok, err := first.Await()
		require.NoError(t, err)
		assert.True(t, ok)
		assert.False(t, m.Busy())
	})

	t.Run("parallel logins are safe", func(t *testing.T) {
		t.Parallel()

		m, _ := newManager(session.NewMemoryStorage(nil))

		var wg sync.WaitGroup
		for range 20 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				m.Login(context.Background(), "12345", "12345")
				_ = m.State()
			}()
		}
		wg.Wait()

		assert.True(t, m.IsAuthenticated())
		assert.False(t, m.Busy())
	})
}

func TestLogout(t *testing.T) {
	t.Parallel()

	t.Run("removes token and navigates to login", func(t *testing.T) {
		t.Parallel()

		storage := session.NewMemoryStorage(nil)
		m, nav := newManager(storage)
		require.True(t, m.Login(context.Background(), "12345", "12345"))

		m.Logout(context.Background())

		_, found := storage.Get(session.DefaultStorageKey)
		assert.False(t, found)
		assert.Equal(t, session.StateAnonymous, m.State())
		assert.False(t, session.NewGuard(storage).CanEnter())

		target, _ := nav.Target()
		assert.Equal(t, "/login", target)
	})

	t.Run("anonymous logout is a no-op", func(t *testing.T) {
		t.Parallel()

		storage := session.NewMemoryStorage(nil)
		m, nav := newManager(storage)

		assert.NotPanics(t, func() {
			m.Logout(context.Background())
			m.Logout(context.Background())
		})
		assert.Equal(t, session.StateAnonymous, m.State())
		assert.Equal(t, 2, nav.Calls())
	})

	t.Run("storage failure is logged", func(t *testing.T) {
		t.Parallel()

		storage := &mockStorage{}
		storage.On("Get", session.DefaultStorageKey).Return("tok", true)
		storage.On("Remove", session.DefaultStorageKey).Return(errors.New("unavailable"))

		var buf bytes.Buffer
		m, nav := newManager(storage, session.WithLogger(logger.New(logger.WithOutput(&buf))))
		m.Logout(context.Background())

		assert.Equal(t, session.StateAnonymous, m.State())
		assert.Equal(t, 1, nav.Calls())
		assert.True(t, strings.Contains(buf.String(), "unavailable"))
	})
}

func TestInitialize(t *testing.T) {
	t.Parallel()

	t.Run("restores authenticated state and leaves login page", func(t *testing.T) {
		t.Parallel()

		storage := session.NewMemoryStorage(map[string]string{"authToken": "anything"})
		m, nav := newManager(storage)
		m.Initialize(context.Background(), "/login")

		assert.Equal(t, session.StateAuthenticated, m.State())
		target, navigated := nav.Target()
		assert.True(t, navigated)
		assert.Equal(t, "/manager", target)
	})

	t.Run("authenticated elsewhere does not navigate", func(t *testing.T) {
		t.Parallel()

		m, nav := newManager(session.NewMemoryStorage(map[string]string{"authToken": "t"}))
		m.Initialize(context.Background(), "/manager")

		assert.True(t, m.IsAuthenticated())
		assert.Zero(t, nav.Calls())
	})

	t.Run("anonymous stays put", func(t *testing.T) {
		t.Parallel()

		m, nav := newManager(session.NewMemoryStorage(nil))
		m.Initialize(context.Background(), "/login")

		assert.Equal(t, session.StateAnonymous, m.State())
		assert.Zero(t, nav.Calls())
	})

	t.Run("empty token is anonymous", func(t *testing.T) {
		t.Parallel()

		m, _ := newManager(session.NewMemoryStorage(map[string]string{"authToken": ""}))
		m.Initialize(context.Background(), "/login")
		assert.False(t, m.IsAuthenticated())
	})

	t.Run("runs once", func(t *testing.T) {
		t.Parallel()

		m, nav := newManager(session.NewMemoryStorage(map[string]string{"authToken": "t"}))
		m.Initialize(context.Background(), "/login")
		m.Initialize(context.Background(), "/login")

		assert.Equal(t, 1, nav.Calls())
	})

	t.Run("initial state derives from storage", func(t *testing.T) {
		t.Parallel()

		m, _ := newManager(session.NewMemoryStorage(map[string]string{"authToken": "t"}))
		assert.True(t, m.IsAuthenticated())
	})

	t.Run("custom key and paths", func(t *testing.T) {
		t.Parallel()

		storage := session.NewMemoryStorage(map[string]string{"tok": "t"})
		m, nav := newManager(storage, session.WithStorageKey("tok"), session.WithPaths("/signin", "/home"))
		m.Initialize(context.Background(), "/signin")

		target, _ := nav.Target()
		assert.Equal(t, "/home", target)
		assert.Equal(t, "/signin", m.LoginPath())
		assert.Equal(t, "/home", m.HomePath())
	})
}

func TestLifecycle(t *testing.T) {
	t.Parallel()

	// login, reload with a fresh manager, logout
	storage := session.NewMemoryStorage(nil)
	m, _ := newManager(storage)
	require.True(t, m.Login(context.Background(), "12345", "12345"))

	reloaded, nav := newManager(storage)
	reloaded.Initialize(context.Background(), "/manager")
	assert.True(t, reloaded.IsAuthenticated())
	assert.Zero(t, nav.Calls())
	assert.True(t, session.NewGuard(storage).CanEnter())

	reloaded.Logout(context.Background())
	assert.False(t, session.NewGuard(storage).CanEnter())
}
