// Package session implements the mock authentication session of the album manager.
//
// The session is nothing more than a token held in client-local storage. A present
// token means authenticated, an absent one means anonymous; tokens are never
// validated, refreshed or expired.
//
// A Manager owns the state transitions:
//
//	nav := &session.Recorder{}
//	m := session.New(storage, nav, session.WithLatency(0))
//	m.Initialize(ctx, r.URL.Path) // may navigate /login -> /manager
//
//	if !m.Login(ctx, username, password) {
//		// show session.ErrInvalidCredentials
//	}
//	m.Logout(ctx) // navigates to /login
//
// A Guard answers the single question asked before a protected page renders:
//
//	if !session.NewGuard(storage).CanEnter() {
//		// redirect to the login path
//	}
//
// Storage and Navigator are interfaces so the HTTP layer can back them with
// cookies and redirects while tests use MemoryStorage and Recorder.
package session
