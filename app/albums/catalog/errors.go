package catalog

import "errors"

var (
	ErrNotFound     = errors.New("album not found")
	ErrInvalidDraft = errors.New("invalid album draft")
)

// Validation messages shown next to the add form fields.
const (
	MsgNameRequired  = "Album name is required"
	MsgBandRequired  = "Band name is required"
	MsgYearRequired  = "Year is required"
	MsgYearFormat    = "Year must be a 4-digit number"
	MsgYearRange     = "Year must be between 1900 and current year"
	MsgImageRequired = "Album image is required"
	MsgImageType     = "Please select a PNG or JPEG image"
)
