package sessiontransport

import (
	"errors"
	"net/http"
	"sync"

	"github.com/dmitrymomot/albummanager/core/cookie"
	"github.com/dmitrymomot/albummanager/core/session"
)

// Cookie creates cookie-backed session.Storage views.
type Cookie struct {
	cookies *cookie.Manager
	opts    []cookie.Option
}

// NewCookie creates a cookie transport. opts apply to every cookie it writes.
func NewCookie(cookies *cookie.Manager, opts ...cookie.Option) *Cookie {
	return &Cookie{cookies: cookies, opts: opts}
}

// Storage returns the storage view of a single request.
func (c *Cookie) Storage(w http.ResponseWriter, r *http.Request) *Storage {
	return &Storage{
		cookies: c.cookies,
		opts:    c.opts,
		w:       w,
		r:       r,
		overlay: make(map[string]entry),
	}
}

type entry struct {
	value   string
	removed bool
}

// Storage is a session.Storage over the cookies of one request/response pair.
type Storage struct {
	cookies *cookie.Manager
	opts    []cookie.Option
	w       http.ResponseWriter
	r       *http.Request

	mu      sync.Mutex
	overlay map[string]entry
}

var _ session.Storage = (*Storage)(nil)

func (s *Storage) Get(key string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if e, ok := s.overlay[key]; ok {
		if e.removed {
			return "", false
		}
		return e.value, true
	}

	value, err := s.cookies.GetSigned(s.r, key)
	if err != nil {
		return "", false
	}
	return value, true
}

func (s *Storage) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.cookies.SetSigned(s.w, key, value, s.opts...); err != nil {
		return errors.Join(ErrWrite, err)
	}
	s.overlay[key] = entry{value: value}
	return nil
}

func (s *Storage) Remove(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cookies.Delete(s.w, key)
	s.overlay[key] = entry{removed: true}
	return nil
}
