package catalog

import (
	"maps"
	"regexp"
	"slices"
	"strconv"
	"strings"
	"time"
)

const MinYear = 1900

var yearPattern = regexp.MustCompile(`^\d{4}$`)

// Form is the raw add-album submission.
type Form struct {
	Name  string
	Band  string
	Year  string
	Image []byte
}

// FieldErrors maps form field names (name, band, year, image) to messages.
type FieldErrors map[string]string

func (e FieldErrors) Error() string {
	keys := slices.Sorted(maps.Keys(e))
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e[k])
	}
	return strings.Join(parts, "; ")
}

// Get returns the message for field or an empty string.
func (e FieldErrors) Get(field string) string {
	if e == nil {
		return ""
	}
	return e[field]
}

// Validate checks the form against the current year of now.
// It returns nil FieldErrors when the draft is valid.
func (f Form) Validate(now time.Time) (Draft, FieldErrors) {
	errs := FieldErrors{}

	name := strings.TrimSpace(f.Name)
	if name == "" {
		errs["name"] = MsgNameRequired
	}

	band := strings.TrimSpace(f.Band)
	if band == "" {
		errs["band"] = MsgBandRequired
	}

	var year int
	switch {
	case f.Year == "":
		errs["year"] = MsgYearRequired
	case !yearPattern.MatchString(f.Year):
		errs["year"] = MsgYearFormat
	default:
		year, _ = strconv.Atoi(f.Year)
		if year < MinYear || year > now.Year() {
			errs["year"] = MsgYearRange
		}
	}

	var image string
	if len(f.Image) == 0 {
		errs["image"] = MsgImageRequired
	} else if mime, ok := DetectImageType(f.Image); !ok {
		errs["image"] = MsgImageType
	} else {
		image = DataURL(mime, f.Image)
	}

	if len(errs) > 0 {
		return Draft{}, errs
	}
	return Draft{Name: name, Band: band, Year: year, Image: image}, nil
}
