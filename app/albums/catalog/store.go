package catalog

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/albummanager/core/logger"
	"github.com/dmitrymomot/albummanager/pkg/async"
)

const DefaultLatency = time.Second

// Store is an in-memory, insertion-ordered album list safe for concurrent use.
type Store struct {
	mu     sync.RWMutex
	albums []Album

	latency time.Duration
	logger  *slog.Logger
	now     func() time.Time
}

// Option configures a Store.
type Option func(*Store)

// WithLatency sets the simulated delay of Add and Delete. Zero disables it.
func WithLatency(d time.Duration) Option {
	return func(s *Store) {
		if d >= 0 {
			s.latency = d
		}
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithClock replaces time.Now for album timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

// NewStore creates a store holding a copy of seed.
func NewStore(seed []Album, opts ...Option) *Store {
	s := &Store{
		albums:  slices.Clone(seed),
		latency: DefaultLatency,
		logger:  logger.Nop(),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// List returns a snapshot of all albums in insertion order.
func (s *Store) List() []Album {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.albums)
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.albums)
}

func (s *Store) Get(id uuid.UUID) (Album, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i := s.index(id); i >= 0 {
		return s.albums[i], nil
	}
	return Album{}, ErrNotFound
}

// Add appends a new album after the simulated latency.
// The delay always runs to completion; ctx is used for logging only.
func (s *Store) Add(ctx context.Context, d Draft) (Album, error) {
	if d.Name == "" || d.Band == "" || d.Image == "" {
		return Album{}, ErrInvalidDraft
	}

	s.wait()

	album := Album{
		ID:        uuid.New(),
		Name:      d.Name,
		Band:      d.Band,
		Year:      d.Year,
		Image:     d.Image,
		CreatedAt: s.now(),
	}

	s.mu.Lock()
	s.albums = append(s.albums, album)
	s.mu.Unlock()

	s.logger.InfoContext(ctx, "album added",
		logger.Component("catalog"),
		logger.AlbumID(album.ID.String()),
		logger.Action("add"),
	)
	return album, nil
}

// Delete removes the album with id after the simulated latency.
func (s *Store) Delete(ctx context.Context, id uuid.UUID) error {
	s.wait()

	s.mu.Lock()
	i := s.index(id)
	if i >= 0 {
		s.albums = slices.Delete(s.albums, i, i+1)
	}
	s.mu.Unlock()

	if i < 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}

	s.logger.InfoContext(ctx, "album deleted",
		logger.Component("catalog"),
		logger.AlbumID(id.String()),
		logger.Action("delete"),
	)
	return nil
}

// AddAsync runs Add in the background.
func (s *Store) AddAsync(ctx context.Context, d Draft) *async.Future[Album] {
	return async.Async(context.WithoutCancel(ctx), d, s.Add)
}

// DeleteAsync runs Delete in the background.
func (s *Store) DeleteAsync(ctx context.Context, id uuid.UUID) *async.Future[struct{}] {
	return async.Exec(context.WithoutCancel(ctx), id, s.Delete)
}

// Healthcheck reports whether the store is usable. It backs the readiness probe.
func (s *Store) Healthcheck(ctx context.Context) error {
	if s == nil {
		return fmt.Errorf("catalog: store is not initialized")
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return ctx.Err()
}

func (s *Store) wait() {
	if s.latency > 0 {
		time.Sleep(s.latency)
	}
}

// index must be called with mu held.
func (s *Store) index(id uuid.UUID) int {
	return slices.IndexFunc(s.albums, func(a Album) bool { return a.ID == id })
}
