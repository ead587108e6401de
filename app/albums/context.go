package albums

import (
	"net/http"

	"github.com/dmitrymomot/albummanager/core/binder"
	"github.com/dmitrymomot/albummanager/core/router"
	"github.com/dmitrymomot/albummanager/core/session"
	"github.com/dmitrymomot/albummanager/core/sessiontransport"
	"github.com/dmitrymomot/albummanager/middleware"
)

// Context is the request context of the application handlers.
type Context struct {
	*router.Context

	transport *sessiontransport.Cookie
	storage   *sessiontransport.Storage
}

func contextFactory(transport *sessiontransport.Cookie) func(http.ResponseWriter, *http.Request, map[string]string) *Context {
	return func(w http.ResponseWriter, r *http.Request, params map[string]string) *Context {
		return &Context{
			Context:   router.NewContext(w, r, params),
			transport: transport,
		}
	}
}

// Storage returns the cookie storage of this request. The same view is
// returned for the whole request, so writes are visible to later reads.
func (c *Context) Storage() session.Storage {
	if c.storage == nil {
		c.storage = c.transport.Storage(c.ResponseWriter(), c.Request())
	}
	return c.storage
}

// Session returns the manager created by the session middleware, or nil on
// routes outside it.
func (c *Context) Session() *session.Manager {
	m, _ := middleware.GetSession(c)
	return m
}

// BindForm decodes the URL-encoded or multipart body into v.
func (c *Context) BindForm(v any) error {
	return binder.Form()(c.Request(), v)
}

// BindPath decodes the route parameters into v.
func (c *Context) BindPath(v any) error {
	return binder.Path(func(_ *http.Request, name string) string {
		return c.Param(name)
	})(c.Request(), v)
}
