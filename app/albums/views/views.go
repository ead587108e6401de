package views

import (
	"embed"
	"html/template"
	"net/http"
	"strings"

	"github.com/a-h/templ"

	"github.com/dmitrymomot/albummanager/app/albums/catalog"
)

//go:embed templates
var files embed.FS

var funcs = template.FuncMap{
	"cover":      cover,
	"fieldError": fieldError,
}

var (
	base    = template.Must(template.New("views").Funcs(funcs).ParseFS(files, "templates/layout.html", "templates/partials/*.html"))
	login   = page("login")
	manager = page("manager")
	errPage = page("error")
)

// page clones the layout and partials so every page can define its own
// "title" and "content".
func page(name string) *template.Template {
	t := template.Must(base.Clone())
	return template.Must(t.ParseFS(files, "templates/"+name+".html")).Lookup("layout")
}

// cover trusts the data URLs built by the catalog; anything else goes through
// the regular URL filter.
func cover(src string) any {
	if strings.HasPrefix(src, "data:image/") {
		return template.URL(src)
	}
	return src
}

type fieldMessage struct {
	Name    string
	Message string
}

func fieldError(name string, errs catalog.FieldErrors) fieldMessage {
	return fieldMessage{Name: name, Message: errs.Get(name)}
}

// LoginData fills the login page. Error is shown above the submit button.
type LoginData struct {
	Paths    Paths
	Username string
	Error    string
}

// Login renders the sign-in page. The password is never echoed back.
func Login(data LoginData) templ.Component {
	return templ.FromGoHTML(login, data)
}

// AlbumFormData fills the add album dialog. Values are echoed back after a failed submit.
type AlbumFormData struct {
	Paths  Paths
	Name   string
	Band   string
	Year   string
	Errors catalog.FieldErrors
}

// DeleteData fills the delete confirmation dialog.
type DeleteData struct {
	Paths Paths
	Album catalog.Album
}

// ManagerData fills the album manager page. At most one of Form and Delete
// is expected to be set; each opens its dialog above the table.
type ManagerData struct {
	Paths  Paths
	Albums []catalog.Album
	Form   *AlbumFormData
	Delete *DeleteData
}

// Manager renders the album table with the logout and add actions.
func Manager(data ManagerData) templ.Component {
	return templ.FromGoHTML(manager, data)
}

type errorData struct {
	Status  int
	Title   string
	Message string
}

// ErrorPage renders a plain error document for status.
func ErrorPage(status int, message string) templ.Component {
	title := http.StatusText(status)
	if title == "" {
		title = "Error"
	}
	return templ.FromGoHTML(errPage, errorData{Status: status, Title: title, Message: message})
}
