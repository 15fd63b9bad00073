// Package env abstracts the navigation substrate a router runs on.
//
// An Environment reads the current URL, writes history entries, and reports
// back/forward navigations that happen outside the router. The router never
// asks whether it runs in a browser; that decision is made once, by choosing
// which Environment to construct:
//
//   - Static: server-side rendering and headless use. Fixed URL, no history.
//   - Memory: an in-process history stack with browser semantics.
//   - Browser: window.history under GOOS=js GOARCH=wasm.
//   - live.Environment: history of a browser tab driven over a WebSocket.
package env

import "net/url"

// DefaultBase is the neutral base URL used when no interactive environment
// supplies an origin.
const DefaultBase = "http://localhost/"

// Environment is the capability set a router needs from its host.
type Environment interface {
	// CurrentURL returns the URL the environment is currently showing.
	CurrentURL() *url.URL

	// Origin returns the base for resolving navigation targets. The boolean
	// is false for non-interactive environments, in which case the router
	// resolves against its own current URL.
	Origin() (*url.URL, bool)

	// Push adds a history entry for u.
	Push(u *url.URL)

	// Replace overwrites the current history entry with u.
	Replace(u *url.URL)

	// OnPopNavigation registers fn for back/forward notifications and
	// returns a function that removes it. The returned function is safe to
	// call more than once.
	OnPopNavigation(fn func()) (unsubscribe func())
}

// MustParse parses raw as an absolute URL and panics on error.
// Intended for constants in tests and program setup.
func MustParse(raw string) *url.URL {
	u, err := url.Parse(raw)
	if err != nil {
		panic(err)
	}
	return u
}

// OriginOf returns the scheme://host part of u with a "/" path.
func OriginOf(u *url.URL) *url.URL {
	return &url.URL{Scheme: u.Scheme, Host: u.Host, Path: "/"}
}

func cloneURL(u *url.URL) *url.URL {
	if u == nil {
		return nil
	}
	c := *u
	if u.User != nil {
		user := *u.User
		c.User = &user
	}
	return &c
}
