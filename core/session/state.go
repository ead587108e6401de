package session

import (
	"encoding/base64"
	"strconv"
	"time"
)

// State is the authentication state of a session.
type State int

const (
	StateAnonymous State = iota
	StateAuthenticated
)

func (s State) String() string {
	switch s {
	case StateAuthenticated:
		return "authenticated"
	default:
		return "anonymous"
	}
}

// NewToken builds the opaque session token: standard base64 of "username:<unix millis>".
func NewToken(username string, at time.Time) string {
	raw := username + ":" + strconv.FormatInt(at.UnixMilli(), 10)
	return base64.StdEncoding.EncodeToString([]byte(raw))
}

// hasToken reports whether storage holds a non-empty token under key.
func hasToken(storage Storage, key string) bool {
	token, ok := storage.Get(key)
	return ok && token != ""
}
