// Package cookie wraps net/http cookies with shared defaults and signed values.
//
//	m, err := cookie.New([]string{newSecret, oldSecret})
//	if err != nil {
//		return err
//	}
//	_ = m.SetSigned(w, "authToken", token)
//	token, err := m.GetSigned(r, "authToken")
//
// Signing uses github.com/gorilla/securecookie. Values are HMAC-authenticated
// and bound to the cookie name, so a value copied into another cookie fails
// verification. The first secret signs; all of them verify.
//
// Defaults are Path "/", HttpOnly and SameSite=Lax.
package cookie
