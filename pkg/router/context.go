package router

import (
	"context"

	"github.com/vango-dev/vroute/internal/errors"
)

type scopeKey struct{}

// scope is the value a Router places in the render context. The snapshot is
// captured once per render so every view in the pass sees the same state.
type scope struct {
	router *Router
	snap   Snapshot
}

// WithRouter returns a context carrying r's current state. Render does this
// for its subtree; call it directly to render components outside Render.
func WithRouter(ctx context.Context, r *Router) context.Context {
	return withScope(ctx, &scope{router: r, snap: r.Snapshot()})
}

func withScope(ctx context.Context, s *scope) context.Context {
	return context.WithValue(ctx, scopeKey{}, s)
}

// FromContext returns the router enclosing ctx, if any.
func FromContext(ctx context.Context) (*Router, bool) {
	s, ok := lookup(ctx)
	if !ok {
		return nil, false
	}
	return s.router, true
}

// UseNavigate returns the navigate operation of the enclosing router.
// It panics when called outside a router.
func UseNavigate(ctx context.Context) NavigateFunc {
	s := mustLookup(ctx, "UseNavigate")
	return s.router.Navigate
}

// UseState returns a copy of the enclosing router's state as of the
// current render. It panics when called outside a router.
func UseState(ctx context.Context) State {
	s := mustLookup(ctx, "UseState")
	return s.snap.State.Clone()
}

func lookup(ctx context.Context) (*scope, bool) {
	if ctx == nil {
		return nil, false
	}
	s, ok := ctx.Value(scopeKey{}).(*scope)
	return s, ok && s != nil && s.router != nil
}

func mustLookup(ctx context.Context, accessor string) *scope {
	s, ok := lookup(ctx)
	if !ok {
		panic(errors.New(errors.CodeNoRouter).
			WithDetailf("%s called outside a router", accessor))
	}
	return s
}
