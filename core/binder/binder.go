package binder

import "net/http"

// Binder decodes part of r into v, which must be a non-nil pointer to a struct.
type Binder func(r *http.Request, v any) error
