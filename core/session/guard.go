package session

// Guard decides whether a protected page may render.
type Guard struct {
	storage Storage
	opts    options
}

func NewGuard(storage Storage, opts ...Option) *Guard {
	return &Guard{storage: storage, opts: newOptions(opts)}
}

// CanEnter reports whether a token is persisted. Only presence is checked.
func (g *Guard) CanEnter() bool {
	return hasToken(g.storage, g.opts.storageKey)
}

// RedirectPath is where a rejected client is sent. No return path is kept.
func (g *Guard) RedirectPath() string {
	return g.opts.loginPath
}
