package sessiontransport

import "errors"

// ErrWrite wraps failures to emit a storage cookie.
var ErrWrite = errors.New("sessiontransport: failed to write cookie")
