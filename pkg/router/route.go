package router

import (
	"fmt"

	"github.com/vango-dev/vroute/internal/errors"
	"github.com/vango-dev/vroute/pkg/routepath"
	"github.com/vango-dev/vroute/pkg/vdom"
)

// Route binds a path pattern to the view rendered when it matches.
type Route struct {
	// Pattern is the path pattern, e.g. "/users/:id" or "/users/[id]".
	Pattern string

	// View is rendered when the pattern matches.
	View vdom.Component
}

// Table is an ordered, immutable route table. Patterns are compiled once at
// construction. A Table is safe to share between routers and goroutines.
type Table struct {
	routes   []Route
	patterns []*routepath.Pattern
}

// NewTable compiles routes in declaration order.
func NewTable(routes ...Route) (*Table, error) {
	t := &Table{
		routes:   make([]Route, len(routes)),
		patterns: make([]*routepath.Pattern, len(routes)),
	}
	copy(t.routes, routes)

	for i, route := range t.routes {
		p, err := routepath.Compile(route.Pattern)
		if err != nil {
			return nil, errors.New(errors.CodeInvalidPattern).
				WithDetailf("route %d (%q)", i, route.Pattern).
				Wrap(err)
		}
		t.patterns[i] = p
	}
	return t, nil
}

// MustTable is like NewTable but panics on an invalid pattern.
func MustTable(routes ...Route) *Table {
	t, err := NewTable(routes...)
	if err != nil {
		panic(err)
	}
	return t
}

// Len returns the number of routes.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.routes)
}

// Routes returns a copy of the routes in declaration order.
func (t *Table) Routes() []Route {
	if t == nil {
		return nil
	}
	out := make([]Route, len(t.routes))
	copy(out, t.routes)
	return out
}

// Match returns the index and parameters of the first route whose pattern
// matches the escaped pathname. The index is -1 when nothing matches.
func (t *Table) Match(pathname string) (int, map[string]string) {
	if t == nil {
		return -1, nil
	}
	for i, p := range t.patterns {
		if params, ok := p.Match(pathname); ok {
			return i, params
		}
	}
	return -1, nil
}

// Route returns the route at index i.
func (t *Table) Route(i int) (Route, bool) {
	if t == nil || i < 0 || i >= len(t.routes) {
		return Route{}, false
	}
	return t.routes[i], true
}

// Href builds the path for the first route with the given pattern.
//
//	t.Href("/users/[id]", map[string]string{"id": "42"}) // "/users/42"
func (t *Table) Href(pattern string, params map[string]string) (string, error) {
	if t != nil {
		for i, route := range t.routes {
			if route.Pattern == pattern {
				return t.patterns[i].Build(params)
			}
		}
	}
	return "", fmt.Errorf("router: no route with pattern %q", pattern)
}
