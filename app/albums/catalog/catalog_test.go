package catalog_test

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/albummanager/app/albums/catalog"
)

var (
	pngBytes  = append([]byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR"), make([]byte, 32)...)
	jpegBytes = append([]byte{0xFF, 0xD8, 0xFF, 0xE0, 0x00, 0x10, 'J', 'F', 'I', 'F', 0x00}, make([]byte, 32)...)
	gifBytes  = append([]byte("GIF89a"), make([]byte, 32)...)
)

var now = time.Date(2025, time.June, 1, 12, 0, 0, 0, time.UTC)

func validForm() catalog.Form {
	return catalog.Form{Name: "Abbey Road", Band: "The Beatles", Year: "1969", Image: pngBytes}
}

func TestFormValidate(t *testing.T) {
	t.Parallel()

	t.Run("valid form produces draft", func(t *testing.T) {
		t.Parallel()
		f := validForm()
		f.Name = "  Abbey Road "
		draft, errs := f.Validate(now)
		require.Nil(t, errs)
		assert.Equal(t, "Abbey Road", draft.Name)
		assert.Equal(t, "The Beatles", draft.Band)
		assert.Equal(t, 1969, draft.Year)
		assert.True(t, strings.HasPrefix(draft.Image, "data:image/png;base64,"))
	})

	t.Run("jpeg accepted", func(t *testing.T) {
		t.Parallel()
		f := validForm()
		f.Image = jpegBytes
		draft, errs := f.Validate(now)
		require.Nil(t, errs)
		assert.True(t, strings.HasPrefix(draft.Image, "data:image/jpeg;base64,"))
	})

	t.Run("empty form reports every field", func(t *testing.T) {
		t.Parallel()
		_, errs := catalog.Form{Name: "   ", Band: "\t"}.Validate(now)
		require.NotNil(t, errs)
		assert.Equal(t, catalog.MsgNameRequired, errs.Get("name"))
		assert.Equal(t, catalog.MsgBandRequired, errs.Get("band"))
		assert.Equal(t, catalog.MsgYearRequired, errs.Get("year"))
		assert.Equal(t, catalog.MsgImageRequired, errs.Get("image"))
	})

	t.Run("year rules", func(t *testing.T) {
		t.Parallel()
		cases := map[string]string{
			"69":    catalog.MsgYearFormat,
			"19690": catalog.MsgYearFormat,
			"abcd":  catalog.MsgYearFormat,
			" 1969": catalog.MsgYearFormat,
			"1899":  catalog.MsgYearRange,
			"2026":  catalog.MsgYearRange,
			"1900":  "",
			"2025":  "",
		}
		for year, want := range cases {
			f := validForm()
			f.Year = year
			_, errs := f.Validate(now)
			assert.Equal(t, want, errs.Get("year"), "year %q", year)
		}
	})

	t.Run("unsupported image type", func(t *testing.T) {
		t.Parallel()
		f := validForm()
		f.Image = gifBytes
		_, errs := f.Validate(now)
		assert.Equal(t, catalog.MsgImageType, errs.Get("image"))
		assert.Contains(t, errs.Error(), "image: "+catalog.MsgImageType)
	})
}

func TestDetectImageType(t *testing.T) {
	t.Parallel()

	mime, ok := catalog.DetectImageType(pngBytes)
	assert.True(t, ok)
	assert.Equal(t, "image/png", mime)

	mime, ok = catalog.DetectImageType(jpegBytes)
	assert.True(t, ok)
	assert.Equal(t, "image/jpeg", mime)

	_, ok = catalog.DetectImageType(gifBytes)
	assert.False(t, ok)

	_, ok = catalog.DetectImageType(nil)
	assert.False(t, ok)

	assert.Equal(t, "data:image/png;base64,AQI=", catalog.DataURL("image/png", []byte{1, 2}))
}

func TestSeed(t *testing.T) {
	t.Parallel()

	a, b := catalog.Seed(), catalog.Seed()
	require.NotEmpty(t, a)
	assert.Equal(t, a, b)
	for _, album := range a {
		assert.NotEqual(t, uuid.Nil, album.ID)
		assert.True(t, strings.HasPrefix(album.Image, "data:image/svg+xml;base64,"))
	}
}

func TestStore(t *testing.T) {
	t.Parallel()

	draft := catalog.Draft{Name: "Kid A", Band: "Radiohead", Year: 2000, Image: "data:image/png;base64,AA=="}

	t.Run("add appends in order", func(t *testing.T) {
		t.Parallel()
		seed := catalog.Seed()
		s := catalog.NewStore(seed, catalog.WithLatency(0), catalog.WithClock(func() time.Time { return now }))

		album, err := s.Add(context.Background(), draft)
		require.NoError(t, err)
		assert.Equal(t, now, album.CreatedAt)

		list := s.List()
		require.Len(t, list, len(seed)+1)
		assert.Equal(t, album, list[len(list)-1])

		got, err := s.Get(album.ID)
		require.NoError(t, err)
		assert.Equal(t, "Kid A", got.Name)
	})

	t.Run("add rejects incomplete draft", func(t *testing.T) {
		t.Parallel()
		s := catalog.NewStore(nil, catalog.WithLatency(0))
		_, err := s.Add(context.Background(), catalog.Draft{Name: "x"})
		assert.ErrorIs(t, err, catalog.ErrInvalidDraft)
		assert.Zero(t, s.Len())
	})

	t.Run("delete removes album", func(t *testing.T) {
		t.Parallel()
		seed := catalog.Seed()
		s := catalog.NewStore(seed, catalog.WithLatency(0))

		require.NoError(t, s.Delete(context.Background(), seed[1].ID))
		assert.Equal(t, len(seed)-1, s.Len())
		_, err := s.Get(seed[1].ID)
		assert.ErrorIs(t, err, catalog.ErrNotFound)
		assert.Equal(t, seed[0].ID, s.List()[0].ID)
		assert.Equal(t, seed[2].ID, s.List()[1].ID)
	})

	t.Run("delete unknown id", func(t *testing.T) {
		t.Parallel()
		s := catalog.NewStore(catalog.Seed(), catalog.WithLatency(0))
		err := s.Delete(context.Background(), uuid.New())
		assert.ErrorIs(t, err, catalog.ErrNotFound)
	})

	t.Run("list is a snapshot", func(t *testing.T) {
		t.Parallel()
		s := catalog.NewStore(catalog.Seed(), catalog.WithLatency(0))
		list := s.List()
		list[0].Name = "changed"
		assert.NotEqual(t, "changed", s.List()[0].Name)
	})

	t.Run("latency is applied", func(t *testing.T) {
		t.Parallel()
		s := catalog.NewStore(nil, catalog.WithLatency(30*time.Millisecond))
		start := time.Now()
		_, err := s.Add(context.Background(), draft)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, time.Since(start), 30*time.Millisecond)
	})

	t.Run("async add and delete", func(t *testing.T) {
		t.Parallel()
		s := catalog.NewStore(nil, catalog.WithLatency(10*time.Millisecond))

		ctx, cancel := context.WithCancel(context.Background())
		future := s.AddAsync(ctx, draft)
		cancel()
		album, err := future.Await()
		require.NoError(t, err)
		assert.Equal(t, 1, s.Len())

		_, err = s.DeleteAsync(context.Background(), album.ID).Await()
		require.NoError(t, err)
		assert.Zero(t, s.Len())
	})

	t.Run("concurrent adds", func(t *testing.T) {
		t.Parallel()
		s := catalog.NewStore(nil, catalog.WithLatency(0))
		var wg sync.WaitGroup
		for range 20 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, _ = s.Add(context.Background(), draft)
			}()
		}
		wg.Wait()
		assert.Equal(t, 20, s.Len())
	})

	t.Run("healthcheck", func(t *testing.T) {
		t.Parallel()
		s := catalog.NewStore(nil)
		assert.NoError(t, s.Healthcheck(context.Background()))

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		assert.ErrorIs(t, s.Healthcheck(ctx), context.Canceled)
	})
}
