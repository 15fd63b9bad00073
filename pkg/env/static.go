package env

import "net/url"

// Static is the environment used for server-side rendering. It reports a
// fixed URL and ignores history operations.
type Static struct {
	url *url.URL
}

// NewStatic creates a static environment fixed at u.
func NewStatic(u *url.URL) *Static {
	return &Static{url: cloneURL(u)}
}

// CurrentURL returns the fixed URL.
func (s *Static) CurrentURL() *url.URL {
	return cloneURL(s.url)
}

// Origin reports that a static environment is not interactive.
func (s *Static) Origin() (*url.URL, bool) {
	return nil, false
}

// Push is a no-op.
func (s *Static) Push(*url.URL) {}

// Replace is a no-op.
func (s *Static) Replace(*url.URL) {}

// OnPopNavigation never fires.
func (s *Static) OnPopNavigation(func()) func() {
	return func() {}
}
