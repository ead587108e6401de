package session

import "sync"

// Navigator moves the client to another path.
type Navigator interface {
	Navigate(path string)
}

// NavigatorFunc adapts a function to Navigator.
type NavigatorFunc func(path string)

func (f NavigatorFunc) Navigate(path string) { f(path) }

// Recorder is a Navigator that remembers the last requested path.
// The HTTP layer turns the recorded target into a redirect.
type Recorder struct {
	mu     sync.Mutex
	target string
	calls  int
}

func (r *Recorder) Navigate(path string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.target = path
	r.calls++
}

// Target returns the last navigation target, if any.
func (r *Recorder) Target() (string, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.target, r.calls > 0
}

// Calls returns how many navigations were requested.
func (r *Recorder) Calls() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.calls
}
