package catalog

import (
	"encoding/base64"
	"fmt"
	"html"
	"time"

	"github.com/google/uuid"
)

var seedAlbums = []struct {
	name  string
	band  string
	year  int
	color string
}{
	{"Abbey Road", "The Beatles", 1969, "#FFB6C1"},
	{"The Dark Side of the Moon", "Pink Floyd", 1973, "#87CEEB"},
	{"Thriller", "Michael Jackson", 1982, "#98FB98"},
	{"Nevermind", "Nirvana", 1991, "#DDA0DD"},
	{"OK Computer", "Radiohead", 1997, "#F0E68C"},
}

// Seed returns the initial album set. IDs are deterministic per album name.
func Seed() []Album {
	created := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	albums := make([]Album, 0, len(seedAlbums))
	for _, a := range seedAlbums {
		albums = append(albums, Album{
			ID:        uuid.NewSHA1(uuid.NameSpaceOID, []byte(a.band+"/"+a.name)),
			Name:      a.name,
			Band:      a.band,
			Year:      a.year,
			Image:     placeholderImage(a.name, a.color),
			CreatedAt: created,
		})
	}
	return albums
}

// placeholderImage renders a square SVG cover with the album name as a data URL.
func placeholderImage(text, color string) string {
	svg := fmt.Sprintf(
		`<svg xmlns="http://www.w3.org/2000/svg" width="100" height="100">`+
			`<rect width="100" height="100" fill="%s"/>`+
			`<text x="50" y="54" font-size="9" fill="#FFFFFF" text-anchor="middle">%s</text>`+
			`</svg>`,
		color, html.EscapeString(text),
	)
	return "data:image/svg+xml;base64," + base64.StdEncoding.EncodeToString([]byte(svg))
}
