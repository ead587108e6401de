package albums

import (
	"errors"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/google/uuid"

	"github.com/dmitrymomot/albummanager/app/albums/catalog"
	"github.com/dmitrymomot/albummanager/app/albums/views"
	"github.com/dmitrymomot/albummanager/core/handler"
	"github.com/dmitrymomot/albummanager/core/logger"
	"github.com/dmitrymomot/albummanager/core/response"
	"github.com/dmitrymomot/albummanager/core/session"
	"github.com/dmitrymomot/albummanager/middleware"
)

type loginForm struct {
	Username string `form:"username"`
	Password string `form:"password"`
}

type albumForm struct {
	Name  string                `form:"name"`
	Band  string                `form:"band"`
	Year  string                `form:"year"`
	Image *multipart.FileHeader `file:"image"`
}

type albumRef struct {
	ID uuid.UUID `path:"id"`
}

func (a *App) index(ctx *Context) handler.Response {
	return response.Redirect(a.paths.Login)
}

func (a *App) notFound(ctx *Context) handler.Response {
	return response.Redirect(a.paths.Login)
}

// methodNotAllowed treats a browser navigation to a form target, such as
// GET /logout, as an unknown page.
func (a *App) methodNotAllowed(ctx *Context) handler.Response {
	switch ctx.Request().Method {
	case http.MethodGet, http.MethodHead:
		return a.notFound(ctx)
	}
	return response.Error(response.ErrMethodNotAllowed)
}

func (a *App) loginPage(ctx *Context) handler.Response {
	return response.Templ(views.Login(views.LoginData{Paths: a.paths}))
}

func (a *App) login(ctx *Context) handler.Response {
	m := ctx.Session()
	if m == nil {
		return response.Error(response.ErrInternalServerError.WithMessage("session is not initialized"))
	}

	var form loginForm
	if err := ctx.BindForm(&form); err != nil {
		return response.Error(requestError(err))
	}

	if !m.Login(ctx, form.Username, form.Password) {
		return response.TemplWithStatus(views.Login(views.LoginData{
			Paths:    a.paths,
			Username: form.Username,
			Error:    session.ErrInvalidCredentials.Error(),
		}), http.StatusUnauthorized)
	}

	return a.navigate(ctx, a.paths.Manager)
}

func (a *App) logout(ctx *Context) handler.Response {
	m := ctx.Session()
	if m == nil {
		return response.Error(response.ErrInternalServerError.WithMessage("session is not initialized"))
	}
	m.Logout(ctx)
	return a.navigate(ctx, a.paths.Login)
}

// navigate redirects to where the session manager navigated during this
// request, or to fallback.
func (a *App) navigate(ctx *Context, fallback string) handler.Response {
	if target, ok := middleware.Navigation(ctx); ok {
		return response.RedirectSeeOther(target)
	}
	return response.RedirectSeeOther(fallback)
}

func (a *App) manager(ctx *Context) handler.Response {
	return response.Templ(views.Manager(views.ManagerData{
		Paths:  a.paths,
		Albums: a.store.List(),
	}))
}

func (a *App) newAlbum(ctx *Context) handler.Response {
	return response.Templ(views.Manager(views.ManagerData{
		Paths:  a.paths,
		Albums: a.store.List(),
		Form:   &views.AlbumFormData{Paths: a.paths},
	}))
}

func (a *App) addAlbum(ctx *Context) handler.Response {
	form, err := a.readAlbumForm(ctx)
	if err != nil {
		return response.Error(err)
	}

	draft, fieldErrs := form.Validate(a.now())
	if fieldErrs != nil {
		a.logger.DebugContext(ctx, "album form rejected",
			logger.Component("albums"),
			logger.Error(fieldErrs),
		)
		return response.TemplWithStatus(views.Manager(views.ManagerData{
			Paths:  a.paths,
			Albums: a.store.List(),
			Form: &views.AlbumFormData{
				Paths:  a.paths,
				Name:   form.Name,
				Band:   form.Band,
				Year:   form.Year,
				Errors: fieldErrs,
			},
		}), http.StatusUnprocessableEntity)
	}

	if _, err := a.store.AddAsync(ctx, draft).Await(); err != nil {
		return response.Error(err)
	}
	return response.RedirectSeeOther(a.paths.Manager)
}

func (a *App) readAlbumForm(ctx *Context) (catalog.Form, error) {
	var in albumForm
	err := ctx.BindForm(&in)
	if mf := ctx.Request().MultipartForm; mf != nil {
		defer func() {
			if err := mf.RemoveAll(); err != nil {
				a.logger.WarnContext(ctx, "failed to remove multipart files", logger.Error(err))
			}
		}()
	}
	if err != nil {
		return catalog.Form{}, requestError(err)
	}

	form := catalog.Form{Name: in.Name, Band: in.Band, Year: in.Year}
	if in.Image != nil {
		if form.Image, err = readUpload(in.Image); err != nil {
			return catalog.Form{}, requestError(err)
		}
	}
	return form, nil
}

func readUpload(fh *multipart.FileHeader) ([]byte, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(f)
}

func requestError(err error) error {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return response.ErrRequestEntityTooLarge.WithError(err)
	}
	return response.ErrBadRequest.WithError(err)
}

func (a *App) confirmDelete(ctx *Context) handler.Response {
	album, err := a.album(ctx)
	if err != nil {
		return response.Error(err)
	}
	return response.Templ(views.Manager(views.ManagerData{
		Paths:  a.paths,
		Albums: a.store.List(),
		Delete: &views.DeleteData{Paths: a.paths, Album: album},
	}))
}

func (a *App) deleteAlbum(ctx *Context) handler.Response {
	album, err := a.album(ctx)
	if err != nil {
		return response.Error(err)
	}
	if _, err := a.store.DeleteAsync(ctx, album.ID).Await(); err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			return response.Error(response.ErrNotFound.WithMessage("Album not found").WithError(err))
		}
		return response.Error(err)
	}
	return response.RedirectSeeOther(a.paths.Manager)
}

func (a *App) album(ctx *Context) (catalog.Album, error) {
	var ref albumRef
	if err := ctx.BindPath(&ref); err != nil {
		return catalog.Album{}, response.ErrNotFound.WithMessage("Album not found").WithError(err)
	}
	album, err := a.store.Get(ref.ID)
	if err != nil {
		return catalog.Album{}, response.ErrNotFound.WithMessage("Album not found").WithError(err)
	}
	return album, nil
}
