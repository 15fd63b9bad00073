package router

import (
	"net/url"
	"strings"

	"github.com/vango-dev/vroute/pkg/vdom"
)

// State is the router state visible to views: the current URL and the
// query and path parameters derived from it.
type State struct {
	URL    *url.URL
	Search map[string]string
	Params map[string]string
}

// Snapshot is a complete resolution of a URL against a route table. A
// Snapshot is never modified after it is derived; treat its maps as
// read-only.
type Snapshot struct {
	State

	// Index is the position of the matched route in the table, or -1.
	Index int

	// Route is the matched route. It is the zero Route when unmatched.
	Route Route
}

// Matched reports whether a route matched.
func (s Snapshot) Matched() bool {
	return s.Index >= 0
}

// View returns the matched view, or nil when no route matched.
func (s Snapshot) View() vdom.Component {
	if !s.Matched() {
		return nil
	}
	return s.Route.View
}

// Pattern returns the matched pattern, or "" when no route matched.
func (s Snapshot) Pattern() string {
	if !s.Matched() {
		return ""
	}
	return s.Route.Pattern
}

// DeriveState resolves u against t. It is a pure function of its inputs:
// search and params are always computed together from the same URL, and an
// unmatched URL yields a valid Snapshot with empty params and no view.
func DeriveState(u *url.URL, t *Table) Snapshot {
	u = cloneURL(u)
	if u.Path == "" && u.RawPath == "" {
		u.Path = "/"
	}

	snap := Snapshot{
		State: State{
			URL:    u,
			Search: parseSearch(u),
			Params: map[string]string{},
		},
		Index: -1,
	}

	idx, params := t.Match(u.EscapedPath())
	if idx < 0 {
		return snap
	}
	route, _ := t.Route(idx)
	snap.Index = idx
	snap.Route = route
	snap.Params = params
	return snap
}

// parseSearch flattens the query; the last value wins for repeated keys.
// Pairs are split on '&' only and decoded leniently, the way browsers read
// location.search: a bad escape stays literal instead of dropping the pair.
func parseSearch(u *url.URL) map[string]string {
	search := map[string]string{}
	for _, pair := range strings.Split(u.RawQuery, "&") {
		if pair == "" {
			continue
		}
		key, value, _ := strings.Cut(pair, "=")
		search[unescapeQuery(key)] = unescapeQuery(value)
	}
	return search
}

func unescapeQuery(s string) string {
	if !strings.ContainsAny(s, "%+") {
		return s
	}
	b := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		switch c := s[i]; {
		case c == '+':
			b = append(b, ' ')
		case c == '%' && i+2 < len(s) && isHex(s[i+1]) && isHex(s[i+2]):
			b = append(b, unhex(s[i+1])<<4|unhex(s[i+2]))
			i += 2
		default:
			b = append(b, c)
		}
	}
	return strings.ToValidUTF8(string(b), "\uFFFD")
}

func isHex(c byte) bool {
	return '0' <= c && c <= '9' || 'a' <= c && c <= 'f' || 'A' <= c && c <= 'F'
}

func unhex(c byte) byte {
	switch {
	case c >= 'a':
		return c - 'a' + 10
	case c >= 'A':
		return c - 'A' + 10
	}
	return c - '0'
}

// Clone returns a deep copy of the state.
func (s State) Clone() State {
	out := State{
		URL:    cloneURL(s.URL),
		Search: make(map[string]string, len(s.Search)),
		Params: make(map[string]string, len(s.Params)),
	}
	for k, v := range s.Search {
		out.Search[k] = v
	}
	for k, v := range s.Params {
		out.Params[k] = v
	}
	return out
}

func cloneURL(u *url.URL) *url.URL {
	if u == nil {
		return &url.URL{Path: "/"}
	}
	c := *u
	if u.User != nil {
		user := *u.User
		c.User = &user
	}
	return &c
}
