package catalog

import (
	"time"

	"github.com/google/uuid"
)

// Album is a single catalog entry. Image is a data URL.
type Album struct {
	ID        uuid.UUID
	Name      string
	Band      string
	Year      int
	Image     string
	CreatedAt time.Time
}

// Draft is a validated album that has not been stored yet.
type Draft struct {
	Name  string
	Band  string
	Year  int
	Image string
}
