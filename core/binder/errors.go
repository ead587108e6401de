package binder

import "errors"

var (
	// ErrUnsupportedMediaType is returned by Form for bodies that are neither
	// URL-encoded nor multipart.
	ErrUnsupportedMediaType = errors.New("unsupported media type")

	// ErrMissingContentType is returned by Form when the request has no Content-Type.
	ErrMissingContentType = errors.New("missing content type")

	// ErrFailedToParseForm covers malformed bodies, bad multipart boundaries
	// and values that do not convert to the field type.
	ErrFailedToParseForm = errors.New("failed to parse form data")

	// ErrFailedToParsePath covers route parameters that do not convert to the field type.
	ErrFailedToParsePath = errors.New("failed to parse path parameters")
)
