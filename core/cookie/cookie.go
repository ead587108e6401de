package cookie

import (
	"crypto/sha256"
	"errors"
	"fmt"
	"net/http"
	"slices"
	"time"

	"github.com/gorilla/securecookie"
)

const (
	// MaxCookieSize is the maximum size of a Set-Cookie header value.
	MaxCookieSize = 4096
	// minSecretLength keeps HMAC keys at 256 bits or more.
	minSecretLength = 32
)

// Manager reads and writes HTTP cookies. Signed values are authenticated with
// gorilla/securecookie; the first secret signs and every secret verifies, which
// allows key rotation.
type Manager struct {
	codecs   []securecookie.Codec
	defaults Options
	maxSize  int
}

// New creates a cookie manager. At least one secret of 32+ characters is required.
func New(secrets []string, opts ...Option) (*Manager, error) {
	secrets = slices.DeleteFunc(slices.Clone(secrets), func(s string) bool { return s == "" })
	if len(secrets) == 0 {
		return nil, ErrNoSecret
	}

	codecs := make([]securecookie.Codec, 0, len(secrets))
	for i, secret := range secrets {
		if len(secret) < minSecretLength {
			return nil, fmt.Errorf("%w: secret %d has %d chars, need at least %d",
				ErrSecretTooShort, i, len(secret), minSecretLength)
		}
		hashKey := sha256.Sum256([]byte(secret))
		codec := securecookie.New(hashKey[:], nil).
			// Expiry is controlled by the cookie attributes, not the signature timestamp.
			MaxAge(0).
			SetSerializer(securecookie.NopEncoder{})
		codecs = append(codecs, codec)
	}

	return &Manager{
		codecs: codecs,
		defaults: applyOptions(Options{
			Path:     "/",
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		}, opts),
		maxSize: MaxCookieSize,
	}, nil
}

// Set writes a plain cookie.
func (m *Manager) Set(w http.ResponseWriter, name, value string, opts ...Option) error {
	options := applyOptions(m.defaults, opts)

	cookie := &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     options.Path,
		Domain:   options.Domain,
		MaxAge:   options.MaxAge,
		Secure:   options.Secure,
		HttpOnly: options.HttpOnly,
		SameSite: options.SameSite,
	}

	if size := len(cookie.String()); size > m.maxSize {
		return ErrCookieTooLarge{Name: name, Size: size, Max: m.maxSize}
	}

	http.SetCookie(w, cookie)
	return nil
}

// Get reads a plain cookie value.
func (m *Manager) Get(r *http.Request, name string) (string, error) {
	cookie, err := r.Cookie(name)
	if err != nil {
		if errors.Is(err, http.ErrNoCookie) {
			return "", ErrCookieNotFound
		}
		return "", err
	}
	return cookie.Value, nil
}

// Delete expires the cookie on the client.
func (m *Manager) Delete(w http.ResponseWriter, name string) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     m.defaults.Path,
		Domain:   m.defaults.Domain,
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		HttpOnly: m.defaults.HttpOnly,
		SameSite: m.defaults.SameSite,
		Secure:   m.defaults.Secure,
	})
}

// SetSigned writes a cookie whose value is bound to its name and signed.
func (m *Manager) SetSigned(w http.ResponseWriter, name, value string, opts ...Option) error {
	encoded, err := securecookie.EncodeMulti(name, []byte(value), m.codecs...)
	if err != nil {
		return fmt.Errorf("encode cookie %q: %w", name, err)
	}
	return m.Set(w, name, encoded, opts...)
}

// GetSigned reads and verifies a signed cookie.
func (m *Manager) GetSigned(r *http.Request, name string) (string, error) {
	encoded, err := m.Get(r, name)
	if err != nil {
		return "", err
	}

	var raw []byte
	if err := securecookie.DecodeMulti(name, encoded, &raw, m.codecs...); err != nil {
		return "", errors.Join(ErrInvalidSignature, err)
	}
	return string(raw), nil
}

// Defaults returns the attributes applied to every cookie.
func (m *Manager) Defaults() Options {
	return m.defaults
}
