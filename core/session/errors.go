package session

import "errors"

// ErrInvalidCredentials carries the message shown on a failed login.
var ErrInvalidCredentials = errors.New("Invalid credentials") //nolint:staticcheck // user-facing text
