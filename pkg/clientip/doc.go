// Package clientip extracts the client IP address of an HTTP request.
//
// Headers are checked in this order: CF-Connecting-IP, DO-Connecting-IP,
// X-Forwarded-For (leftmost entry), X-Real-IP. The first value that parses as
// an IP other than 0.0.0.0 wins; otherwise the host part of RemoteAddr is used.
// Returned addresses are normalized with net.IP.String.
//
// Headers are trusted as sent. Run the application behind a proxy that
// overwrites them.
package clientip
