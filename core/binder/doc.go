// Package binder maps HTTP request data onto tagged Go structs.
//
// Two binders are provided:
//
//   - Form reads application/x-www-form-urlencoded and multipart/form-data
//     bodies. Fields tagged `form:"name"` receive values, fields tagged
//     `file:"name"` receive *multipart.FileHeader uploads.
//   - Path reads route parameters through an extractor, usually the router
//     context Param method. Fields are tagged `path:"name"`.
//
// Supported field types are strings, integers, floats, bools, slices and
// pointers of those, and any type implementing encoding.TextUnmarshaler
// (uuid.UUID, time.Time).
//
// String values are cleaned of NUL bytes, line breaks and other control
// characters. Surrounding whitespace is kept: callers decide whether to trim.
// Uploaded file names are reduced to their base name.
//
// # Usage
//
//	type loginForm struct {
//		Username string `form:"username"`
//		Password string `form:"password"`
//	}
//
//	var form loginForm
//	if err := binder.Form()(r, &form); err != nil {
//		return response.Error(response.ErrBadRequest.WithError(err))
//	}
//
// Binding errors wrap one of the package sentinel errors together with the
// underlying cause, so errors.As still finds an *http.MaxBytesError raised
// by a body size limit.
package binder
