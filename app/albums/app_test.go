package albums_test

import (
	"bytes"
	"encoding/base64"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/albummanager/app/albums"
	"github.com/dmitrymomot/albummanager/app/albums/catalog"
	"github.com/dmitrymomot/albummanager/core/config"
	"github.com/dmitrymomot/albummanager/core/cookie"
	"github.com/dmitrymomot/albummanager/core/logger"
	"github.com/dmitrymomot/albummanager/core/router"
)

const testSecret = "0123456789abcdef0123456789abcdef"

var fixedNow = time.Date(2025, time.June, 1, 12, 0, 0, 0, time.UTC)

var pngBytes = append([]byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR"), make([]byte, 32)...)

type testEnv struct {
	app     *albums.App
	cookies *cookie.Manager
	server  *httptest.Server
	client  *http.Client
	jar     *cookiejar.Jar
}

func newTestEnv(t *testing.T, extra map[string]string) *testEnv {
	t.Helper()

	vars := map[string]string{
		"COOKIE_SECRETS": testSecret,
		"AUTH_LATENCY":   "0s",
		"ALBUM_LATENCY":  "0s",
	}
	for k, v := range extra {
		vars[k] = v
	}

	var cfg albums.Config
	require.NoError(t, config.Parse(&cfg, vars))

	cm, err := cookie.NewFromConfig(cfg.Cookie)
	require.NoError(t, err)

	app, err := albums.New(
		albums.WithConfig(cfg),
		albums.WithLogger(logger.Nop()),
		albums.WithCookieManager(cm),
		albums.WithClock(func() time.Time { return fixedNow }),
	)
	require.NoError(t, err)

	srv := httptest.NewServer(app.Handler())
	t.Cleanup(srv.Close)

	jar, err := cookiejar.New(nil)
	require.NoError(t, err)

	return &testEnv{
		app:     app,
		cookies: cm,
		server:  srv,
		jar:     jar,
		client: &http.Client{
			Jar: jar,
			CheckRedirect: func(*http.Request, []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
	}
}

func (e *testEnv) url(path string) string { return e.server.URL + path }

func (e *testEnv) get(t *testing.T, path string) (*http.Response, string) {
	t.Helper()
	resp, err := e.client.Get(e.url(path))
	require.NoError(t, err)
	return resp, readBody(t, resp)
}

func (e *testEnv) postForm(t *testing.T, path string, form url.Values) (*http.Response, string) {
	t.Helper()
	resp, err := e.client.PostForm(e.url(path), form)
	require.NoError(t, err)
	return resp, readBody(t, resp)
}

func (e *testEnv) login(t *testing.T) {
	t.Helper()
	resp, _ := e.postForm(t, "/login", url.Values{"username": {"12345"}, "password": {"12345"}})
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
}

// token returns the decoded authToken cookie held by the client.
func (e *testEnv) token(t *testing.T) (string, bool) {
	t.Helper()
	u, err := url.Parse(e.server.URL)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range e.jar.Cookies(u) {
		req.AddCookie(c)
	}
	value, err := e.cookies.GetSigned(req, "authToken")
	if err != nil {
		return "", false
	}
	return value, true
}

func readBody(t *testing.T, resp *http.Response) string {
	t.Helper()
	defer resp.Body.Close()
	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(b)
}

func multipartBody(t *testing.T, fields map[string]string, image []byte) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	if image != nil {
		fw, err := mw.CreateFormFile("image", "cover.png")
		require.NoError(t, err)
		_, err = fw.Write(image)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())
	return &buf, mw.FormDataContentType()
}

func (e *testEnv) postAlbum(t *testing.T, fields map[string]string, image []byte) (*http.Response, string) {
	t.Helper()
	body, contentType := multipartBody(t, fields, image)
	resp, err := e.client.Post(e.url("/manager/albums"), contentType, body)
	require.NoError(t, err)
	return resp, readBody(t, resp)
}

func TestAuthFlow(t *testing.T) {
	t.Parallel()

	t.Run("root redirects to login", func(t *testing.T) {
		t.Parallel()
		e := newTestEnv(t, nil)
		resp, _ := e.get(t, "/")
		assert.Equal(t, http.StatusFound, resp.StatusCode)
		assert.Equal(t, "/login", resp.Header.Get("Location"))
	})

	t.Run("unknown path redirects to login", func(t *testing.T) {
		t.Parallel()
		e := newTestEnv(t, nil)
		resp, _ := e.get(t, "/does/not/exist")
		assert.Equal(t, http.StatusFound, resp.StatusCode)
		assert.Equal(t, "/login", resp.Header.Get("Location"))
	})

	t.Run("pages carry security headers", func(t *testing.T) {
		t.Parallel()
		e := newTestEnv(t, nil)
		resp, _ := e.get(t, "/login")
		assert.Equal(t, "DENY", resp.Header.Get("X-Frame-Options"))
		assert.Contains(t, resp.Header.Get("Content-Security-Policy"), "form-action 'self'")
		assert.Empty(t, resp.Header.Get("Strict-Transport-Security"))
	})

	t.Run("navigation to post only path redirects to login", func(t *testing.T) {
		t.Parallel()
		e := newTestEnv(t, nil)
		for _, path := range []string{"/logout", "/manager/albums"} {
			resp, _ := e.get(t, path)
			assert.Equal(t, http.StatusFound, resp.StatusCode, path)
			assert.Equal(t, "/login", resp.Header.Get("Location"), path)
		}

		resp, err := e.client.Head(e.url("/logout"))
		require.NoError(t, err)
		resp.Body.Close()
		assert.Equal(t, http.StatusFound, resp.StatusCode)
	})

	t.Run("other method mismatch stays not allowed", func(t *testing.T) {
		t.Parallel()
		e := newTestEnv(t, nil)
		req, err := http.NewRequest(http.MethodDelete, e.url("/"), nil)
		require.NoError(t, err)
		resp, err := e.client.Do(req)
		require.NoError(t, err)
		readBody(t, resp)
		assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
	})

	t.Run("anonymous client cannot open manager", func(t *testing.T) {
		t.Parallel()
		e := newTestEnv(t, nil)
		resp, body := e.get(t, "/manager")
		assert.Equal(t, http.StatusFound, resp.StatusCode)
		assert.Equal(t, "/login", resp.Header.Get("Location"))
		assert.NotContains(t, body, "albums-table")
	})

	t.Run("login page renders", func(t *testing.T) {
		t.Parallel()
		e := newTestEnv(t, nil)
		resp, body := e.get(t, "/login")
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Contains(t, body, "Sign in to manage your albums")
		assert.NotContains(t, body, "Invalid credentials")
	})

	t.Run("wrong credentials", func(t *testing.T) {
		t.Parallel()
		e := newTestEnv(t, nil)
		resp, body := e.postForm(t, "/login", url.Values{"username": {"12345"}, "password": {"wrong"}})
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		assert.Contains(t, body, "Invalid credentials")
		_, ok := e.token(t)
		assert.False(t, ok)

		resp, _ = e.get(t, "/manager")
		assert.Equal(t, http.StatusFound, resp.StatusCode)
	})

	t.Run("login body must be a form", func(t *testing.T) {
		t.Parallel()
		e := newTestEnv(t, nil)
		resp, err := e.client.Post(e.url("/login"), "text/plain", strings.NewReader("username=12345&password=12345"))
		require.NoError(t, err)
		readBody(t, resp)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		_, ok := e.token(t)
		assert.False(t, ok)
	})

	t.Run("sign-in attempts are rate limited", func(t *testing.T) {
		t.Parallel()
		e := newTestEnv(t, map[string]string{"LOGIN_RATE_ATTEMPTS": "2"})
		wrong := url.Values{"username": {"12345"}, "password": {"nope"}}

		for range 2 {
			resp, _ := e.postForm(t, "/login", wrong)
			assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		}
		resp, body := e.postForm(t, "/login", url.Values{"username": {"12345"}, "password": {"12345"}})
		assert.Equal(t, http.StatusTooManyRequests, resp.StatusCode)
		assert.Contains(t, body, "Too many attempts")
		_, ok := e.token(t)
		assert.False(t, ok)
	})

	t.Run("credentials are not trimmed", func(t *testing.T) {
		t.Parallel()
		e := newTestEnv(t, nil)
		resp, _ := e.postForm(t, "/login", url.Values{"username": {" 12345"}, "password": {"12345"}})
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("successful login persists token", func(t *testing.T) {
		t.Parallel()
		e := newTestEnv(t, nil)
		resp, _ := e.postForm(t, "/login", url.Values{"username": {"12345"}, "password": {"12345"}})
		assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
		assert.Equal(t, "/manager", resp.Header.Get("Location"))

		token, ok := e.token(t)
		require.True(t, ok)
		want := base64.StdEncoding.EncodeToString([]byte("12345:" + strconv.FormatInt(fixedNow.UnixMilli(), 10)))
		assert.Equal(t, want, token)

		resp, body := e.get(t, "/manager")
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Contains(t, body, "albums-table")
		assert.Contains(t, body, "Abbey Road")
		assert.Equal(t, "no-cache, no-store, must-revalidate", resp.Header.Get("Cache-Control"))
	})

	t.Run("authenticated client is sent from login to manager", func(t *testing.T) {
		t.Parallel()
		e := newTestEnv(t, nil)
		e.login(t)

		resp, _ := e.get(t, "/login")
		assert.Equal(t, http.StatusFound, resp.StatusCode)
		assert.Equal(t, "/manager", resp.Header.Get("Location"))
	})

	t.Run("logout removes token", func(t *testing.T) {
		t.Parallel()
		e := newTestEnv(t, nil)
		e.login(t)

		resp, _ := e.postForm(t, "/logout", nil)
		assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
		assert.Equal(t, "/login", resp.Header.Get("Location"))
		_, ok := e.token(t)
		assert.False(t, ok)

		resp, _ = e.get(t, "/manager")
		assert.Equal(t, http.StatusFound, resp.StatusCode)
		assert.Equal(t, "/login", resp.Header.Get("Location"))
	})

	t.Run("logout when anonymous still lands on login", func(t *testing.T) {
		t.Parallel()
		e := newTestEnv(t, nil)
		resp, _ := e.postForm(t, "/logout", nil)
		assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
		assert.Equal(t, "/login", resp.Header.Get("Location"))
	})

	t.Run("forged token is ignored", func(t *testing.T) {
		t.Parallel()
		e := newTestEnv(t, nil)
		req, err := http.NewRequest(http.MethodGet, e.url("/manager"), nil)
		require.NoError(t, err)
		req.AddCookie(&http.Cookie{Name: "authToken", Value: "MTIzNDU6MTcwMDAwMDAwMDAwMA=="})

		resp, err := e.client.Do(req)
		require.NoError(t, err)
		readBody(t, resp)
		assert.Equal(t, http.StatusFound, resp.StatusCode)
		assert.Equal(t, "/login", resp.Header.Get("Location"))
	})

	t.Run("login post while authenticated keeps token", func(t *testing.T) {
		t.Parallel()
		e := newTestEnv(t, nil)
		e.login(t)
		first, ok := e.token(t)
		require.True(t, ok)

		resp, _ := e.postForm(t, "/login", url.Values{"username": {"12345"}, "password": {"12345"}})
		assert.Equal(t, http.StatusFound, resp.StatusCode)
		second, ok := e.token(t)
		require.True(t, ok)
		assert.Equal(t, first, second)
	})
}

func TestAlbums(t *testing.T) {
	t.Parallel()

	validFields := map[string]string{"name": "Kid A", "band": "Radiohead", "year": "2000"}

	t.Run("add form requires login", func(t *testing.T) {
		t.Parallel()
		e := newTestEnv(t, nil)
		resp, _ := e.postAlbum(t, validFields, pngBytes)
		assert.Equal(t, http.StatusFound, resp.StatusCode)
		assert.Equal(t, "/login", resp.Header.Get("Location"))
		assert.Equal(t, len(catalog.Seed()), e.app.Store().Len())
	})

	t.Run("add form renders", func(t *testing.T) {
		t.Parallel()
		e := newTestEnv(t, nil)
		e.login(t)
		resp, body := e.get(t, "/manager/albums/new")
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Contains(t, body, `data-testid="add-modal"`)
	})

	t.Run("add album appends to list", func(t *testing.T) {
		t.Parallel()
		e := newTestEnv(t, nil)
		e.login(t)

		resp, _ := e.postAlbum(t, validFields, pngBytes)
		assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
		assert.Equal(t, "/manager", resp.Header.Get("Location"))

		list := e.app.Store().List()
		require.Len(t, list, len(catalog.Seed())+1)
		last := list[len(list)-1]
		assert.Equal(t, "Kid A", last.Name)
		assert.Equal(t, 2000, last.Year)
		assert.True(t, strings.HasPrefix(last.Image, "data:image/png;base64,"))

		_, body := e.get(t, "/manager")
		assert.Contains(t, body, "Kid A")
	})

	t.Run("invalid album shows field errors", func(t *testing.T) {
		t.Parallel()
		e := newTestEnv(t, nil)
		e.login(t)

		resp, body := e.postAlbum(t, map[string]string{"name": "Kid A", "band": " ", "year": "1899"}, nil)
		assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
		assert.Contains(t, body, catalog.MsgBandRequired)
		assert.Contains(t, body, catalog.MsgYearRange)
		assert.Contains(t, body, catalog.MsgImageRequired)
		assert.Contains(t, body, `value="Kid A"`)
		assert.Equal(t, len(catalog.Seed()), e.app.Store().Len())
	})

	t.Run("non image upload rejected", func(t *testing.T) {
		t.Parallel()
		e := newTestEnv(t, nil)
		e.login(t)

		resp, body := e.postAlbum(t, validFields, []byte("GIF89a not really a png"))
		assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
		assert.Contains(t, body, catalog.MsgImageType)
	})

	t.Run("url encoded album form is validated", func(t *testing.T) {
		t.Parallel()
		e := newTestEnv(t, nil)
		e.login(t)

		resp, body := e.postForm(t, "/manager/albums", url.Values{"name": {"Kid A"}, "band": {"Radiohead"}, "year": {"2000"}})
		assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
		assert.Contains(t, body, catalog.MsgImageRequired)
		assert.NotContains(t, body, catalog.MsgBandRequired)
	})

	t.Run("non form album body rejected", func(t *testing.T) {
		t.Parallel()
		e := newTestEnv(t, nil)
		e.login(t)

		resp, err := e.client.Post(e.url("/manager/albums"), "application/json", strings.NewReader(`{"name":"Kid A"}`))
		require.NoError(t, err)
		readBody(t, resp)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, len(catalog.Seed()), e.app.Store().Len())
	})

	t.Run("upload over limit", func(t *testing.T) {
		t.Parallel()
		e := newTestEnv(t, map[string]string{"ALBUM_MAX_UPLOAD_SIZE": "1024"})
		e.login(t)

		resp, _ := e.postAlbum(t, validFields, append(pngBytes, make([]byte, 4096)...))
		assert.Equal(t, http.StatusRequestEntityTooLarge, resp.StatusCode)
		assert.Equal(t, len(catalog.Seed()), e.app.Store().Len())
	})

	t.Run("delete with confirmation", func(t *testing.T) {
		t.Parallel()
		e := newTestEnv(t, nil)
		e.login(t)
		target := e.app.Store().List()[0]
		path := "/manager/albums/" + target.ID.String() + "/delete"

		resp, body := e.get(t, path)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Contains(t, body, "Are you sure you want to delete &#34;"+target.Name+"&#34;?")
		assert.Equal(t, len(catalog.Seed()), e.app.Store().Len())

		resp, _ = e.postForm(t, path, nil)
		assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
		assert.Equal(t, "/manager", resp.Header.Get("Location"))
		_, err := e.app.Store().Get(target.ID)
		assert.ErrorIs(t, err, catalog.ErrNotFound)
	})

	t.Run("delete unknown album", func(t *testing.T) {
		t.Parallel()
		e := newTestEnv(t, nil)
		e.login(t)

		resp, body := e.postForm(t, "/manager/albums/not-a-uuid/delete", nil)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		assert.Contains(t, body, "Album not found")

		resp, _ = e.get(t, "/manager/albums/7f1b2c3d-0000-4000-8000-000000000000/delete")
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("empty catalog", func(t *testing.T) {
		t.Parallel()
		e := newTestEnv(t, map[string]string{"ALBUM_SEED": "false"})
		e.login(t)
		_, body := e.get(t, "/manager")
		assert.Contains(t, body, "No albums found")
	})
}

func TestHealth(t *testing.T) {
	t.Parallel()

	e := newTestEnv(t, nil)
	resp, body := e.get(t, "/live")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "ALIVE", body)

	resp, body = e.get(t, "/ready")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "READY", body)
	assert.NotEmpty(t, resp.Header.Get("X-Request-ID"))
}

func TestRoutes(t *testing.T) {
	t.Parallel()

	e := newTestEnv(t, nil)
	routes := e.app.Routes()
	for _, want := range []router.Route{
		{Method: http.MethodGet, Pattern: "/"},
		{Method: http.MethodGet, Pattern: "/login"},
		{Method: http.MethodPost, Pattern: "/login"},
		{Method: http.MethodPost, Pattern: "/logout"},
		{Method: http.MethodGet, Pattern: "/manager"},
		{Method: http.MethodPost, Pattern: "/manager/albums"},
		{Method: http.MethodPost, Pattern: "/manager/albums/{id}/delete"},
	} {
		assert.Contains(t, routes, want)
	}
}

func TestNewRequiresCookieSecret(t *testing.T) {
	t.Parallel()

	_, err := albums.New(albums.WithConfig(albums.Config{}), albums.WithLogger(logger.Nop()))
	assert.ErrorIs(t, err, cookie.ErrNoSecret)
}
