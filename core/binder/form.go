package binder

import (
	"fmt"
	"mime"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"reflect"
	"strings"
)

// DefaultMaxMemory is the part of a multipart body kept in memory; the rest
// spills to temporary files.
const DefaultMaxMemory = 10 << 20

const maxBoundaryLength = 100

var fileHeaderType = reflect.TypeOf((*multipart.FileHeader)(nil))

// Form returns a binder for URL-encoded and multipart form bodies.
//
// Files stay reachable through the bound headers after the call; the
// multipart form is not removed here.
func Form() Binder {
	return func(r *http.Request, v any) error {
		contentType := r.Header.Get("Content-Type")
		if contentType == "" {
			return fmt.Errorf("%w: expected application/x-www-form-urlencoded or multipart/form-data", ErrMissingContentType)
		}

		mediaType, params, err := mime.ParseMediaType(contentType)
		if err != nil {
			return fmt.Errorf("%w: malformed content type: %w", ErrFailedToParseForm, err)
		}

		var (
			values map[string][]string
			files  map[string][]*multipart.FileHeader
		)

		switch mediaType {
		case "application/x-www-form-urlencoded":
			if err := r.ParseForm(); err != nil {
				return fmt.Errorf("%w: %w", ErrFailedToParseForm, err)
			}
			values = r.PostForm

		case "multipart/form-data":
			if !validBoundary(params["boundary"]) {
				return fmt.Errorf("%w: invalid multipart boundary", ErrFailedToParseForm)
			}
			if err := r.ParseMultipartForm(DefaultMaxMemory); err != nil {
				return fmt.Errorf("%w: %w", ErrFailedToParseForm, err)
			}
			values = r.MultipartForm.Value
			files = r.MultipartForm.File

		default:
			return fmt.Errorf("%w: %s", ErrUnsupportedMediaType, mediaType)
		}

		return bindForm(v, values, files)
	}
}

func bindForm(v any, values map[string][]string, files map[string][]*multipart.FileHeader) error {
	rv, err := structValue(v, ErrFailedToParseForm)
	if err != nil {
		return err
	}
	rt := rv.Type()

	for i := range rv.NumField() {
		field := rv.Field(i)
		sf := rt.Field(i)
		if !field.CanSet() {
			continue
		}

		if name := tagName(sf, "form"); name != "" {
			if vals := values[name]; len(vals) > 0 {
				if err := setFieldValue(field, sf.Type, vals); err != nil {
					return fmt.Errorf("%w: field %s: %w", ErrFailedToParseForm, sf.Name, err)
				}
			}
			continue
		}

		if name := tagName(sf, "file"); name != "" {
			if headers := files[name]; len(headers) > 0 {
				if err := setFileField(field, sf.Type, headers); err != nil {
					return fmt.Errorf("%w: field %s: %w", ErrFailedToParseForm, sf.Name, err)
				}
			}
		}
	}

	return nil
}

func setFileField(field reflect.Value, typ reflect.Type, headers []*multipart.FileHeader) error {
	for _, fh := range headers {
		fh.Filename = sanitizeFilename(fh.Filename)
	}

	switch {
	case typ == fileHeaderType:
		field.Set(reflect.ValueOf(headers[0]))
	case typ.Kind() == reflect.Slice && typ.Elem() == fileHeaderType:
		field.Set(reflect.ValueOf(headers))
	default:
		return fmt.Errorf("unsupported file field type %v", typ)
	}
	return nil
}

// sanitizeFilename keeps only the base name of an uploaded file.
func sanitizeFilename(name string) string {
	name = strings.ReplaceAll(name, "\x00", "")
	name = filepath.Base(strings.ReplaceAll(name, "\\", "/"))
	switch name {
	case "", ".", "..", "/":
		return "unnamed"
	}
	return name
}

func validBoundary(boundary string) bool {
	if boundary == "" || len(boundary) > maxBoundaryLength {
		return false
	}
	return !strings.ContainsAny(boundary, "\x00\r\n")
}
