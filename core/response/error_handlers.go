package response

import (
	"errors"

	"github.com/dmitrymomot/albummanager/core/handler"
	"github.com/dmitrymomot/albummanager/core/router"
)

// AsHTTPError converts any error into an HTTPError. Router errors and errors
// implementing StatusCode() int keep their status; everything else is a 500.
func AsHTTPError(err error) HTTPError {
	var httpErr HTTPError
	if errors.As(err, &httpErr) {
		return httpErr
	}

	base, ok := httpErrorsByStatus[router.StatusFromError(err)]
	if !ok {
		base = ErrInternalServerError
	}
	return base.WithError(err)
}

// ErrorHandler renders errors as plain text.
func ErrorHandler[C handler.Context](ctx C, err error) {
	httpErr := AsHTTPError(err)
	Render(ctx, StringWithStatus(httpErr.Error(), httpErr.Status))
}
