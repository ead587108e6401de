package session

import (
	"context"
	"crypto/subtle"
)

// CredentialVerifier decides whether a username/password pair may log in.
type CredentialVerifier interface {
	Verify(ctx context.Context, username, password string) bool
}

// VerifierFunc adapts a function to CredentialVerifier.
type VerifierFunc func(ctx context.Context, username, password string) bool

func (f VerifierFunc) Verify(ctx context.Context, username, password string) bool {
	return f(ctx, username, password)
}

// StaticCredentials accepts exactly one username/password pair.
// Comparison is exact: no trimming, case sensitive.
type StaticCredentials struct {
	Username string
	Password string
}

// DefaultCredentials is the built-in demo account.
var DefaultCredentials = StaticCredentials{Username: "12345", Password: "12345"}

func (c StaticCredentials) Verify(_ context.Context, username, password string) bool {
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(c.Username)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(password), []byte(c.Password)) == 1
	return userOK && passOK
}
