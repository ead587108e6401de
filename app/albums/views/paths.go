package views

import "github.com/google/uuid"

// Paths holds the URLs the pages link and post to.
type Paths struct {
	Login   string
	Logout  string
	Manager string
}

var DefaultPaths = Paths{
	Login:   "/login",
	Logout:  "/logout",
	Manager: "/manager",
}

// NewAlbum is the add form URL.
func (p Paths) NewAlbum() string { return p.Manager + "/albums/new" }

// Albums is the add form target.
func (p Paths) Albums() string { return p.Manager + "/albums" }

// DeleteAlbum is the delete confirmation URL of one album.
func (p Paths) DeleteAlbum(id uuid.UUID) string {
	return p.Manager + "/albums/" + id.String() + "/delete"
}
