package router

import (
	"context"
	"log/slog"
	"net/url"
	"sync"
	"sync/atomic"

	"github.com/vango-dev/vroute/internal/errors"
	"github.com/vango-dev/vroute/pkg/env"
	"github.com/vango-dev/vroute/pkg/vdom"
)

// Router owns the state of one rendering of a route table. Create one per
// SSR request or interactive session; routers are never shared.
type Router struct {
	table    *Table
	env      env.Environment
	children []any
	logger   *slog.Logger
	observer Observer

	// mu serializes history writes with the state swap that follows them.
	mu   sync.Mutex
	snap atomic.Pointer[Snapshot]
	gen  atomic.Uint64

	subsMu  sync.Mutex
	subsID  uint64
	subs    map[uint64]func(Snapshot)
	subsOrd []uint64
}

// Option configures a Router.
type Option func(*config)

type config struct {
	url      *url.URL
	rawURL   string
	hasRaw   bool
	env      env.Environment
	children []any
	logger   *slog.Logger
	observer Observer
}

// WithURL sets the starting URL explicitly, as SSR entry points do.
func WithURL(u *url.URL) Option {
	return func(c *config) {
		c.url = u
	}
}

// WithURLString sets the starting URL from a string. Relative values resolve
// against the environment origin, or against env.DefaultBase when the
// environment is not interactive.
func WithURLString(raw string) Option {
	return func(c *config) {
		c.rawURL = raw
		c.hasRaw = true
	}
}

// WithEnvironment sets the navigation substrate. Without it the router uses
// a static environment fixed at the starting URL.
func WithEnvironment(e env.Environment) Option {
	return func(c *config) {
		c.env = e
	}
}

// WithChildren sets static content rendered after the matched view.
func WithChildren(children ...any) Option {
	return func(c *config) {
		c.children = children
	}
}

// WithLogger sets the logger. Defaults to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) {
		c.logger = logger
	}
}

// WithObserver registers an observer for published states.
func WithObserver(o Observer) Option {
	return func(c *config) {
		c.observer = o
	}
}

// New creates a router and resolves its initial state before returning.
func New(t *Table, opts ...Option) (*Router, error) {
	var cfg config
	for _, opt := range opts {
		opt(&cfg)
	}

	start, err := startURL(cfg)
	if err != nil {
		return nil, err
	}

	r := &Router{
		table:    t,
		env:      cfg.env,
		children: cfg.children,
		logger:   cfg.logger,
		observer: cfg.observer,
		subs:     make(map[uint64]func(Snapshot)),
	}
	if r.env == nil {
		r.env = env.NewStatic(start)
	}
	if r.logger == nil {
		r.logger = slog.Default()
	}

	snap := DeriveState(start, t)
	r.snap.Store(&snap)
	if r.observer != nil {
		r.observer.Navigated(NavigationInitial, snap)
	}
	return r, nil
}

// startURL picks the initial URL: explicit URL, then explicit string, then
// the environment, then the neutral base.
func startURL(cfg config) (*url.URL, error) {
	switch {
	case cfg.url != nil:
		return cloneURL(cfg.url), nil

	case cfg.hasRaw:
		base := env.MustParse(env.DefaultBase)
		if cfg.env != nil {
			if origin, ok := cfg.env.Origin(); ok {
				base = origin
			}
		}
		ref, err := url.Parse(cfg.rawURL)
		if err != nil {
			return nil, errors.New(errors.CodeInvalidURL).
				WithDetailf("url %q", cfg.rawURL).
				Wrap(err)
		}
		return base.ResolveReference(ref), nil

	case cfg.env != nil:
		return cfg.env.CurrentURL(), nil

	default:
		return env.MustParse(env.DefaultBase), nil
	}
}

// Snapshot returns the current resolution. Its maps must not be modified.
func (r *Router) Snapshot() Snapshot {
	return *r.snap.Load()
}

// State returns a copy of the current state.
func (r *Router) State() State {
	return r.Snapshot().State.Clone()
}

// Table returns the router's route table.
func (r *Router) Table() *Table {
	return r.table
}

// Environment returns the router's environment.
func (r *Router) Environment() env.Environment {
	return r.env
}

// Navigate resolves target, writes history, and publishes the new state.
// Relative targets resolve against the environment origin when it is
// interactive and against the current URL otherwise. When Navigate returns
// without error the new state is visible to the next render.
func (r *Router) Navigate(target string, opts ...NavigateOption) error {
	req := NewNavigationRequest(target, opts...)

	r.mu.Lock()
	base := r.snap.Load().URL
	if origin, ok := r.env.Origin(); ok {
		base = origin
	}
	next, err := req.Resolve(base)
	if err != nil {
		r.mu.Unlock()
		return err
	}

	kind := NavigationPush
	if req.Options.Replace {
		kind = NavigationReplace
		r.env.Replace(next)
	} else {
		r.env.Push(next)
	}
	snap, gen := r.commit(next)
	r.mu.Unlock()

	r.publish(kind, snap, gen)
	return nil
}

// Mount subscribes the router to back/forward notifications from its
// environment. The returned function unsubscribes; it is idempotent, so
// callers should defer it unconditionally.
func (r *Router) Mount() (unmount func()) {
	unsubscribe := r.env.OnPopNavigation(r.syncFromEnvironment)
	var once sync.Once
	return func() {
		once.Do(unsubscribe)
	}
}

// syncFromEnvironment re-derives state from the environment's URL. It is
// the only path by which externally driven URL changes enter the router.
func (r *Router) syncFromEnvironment() {
	r.mu.Lock()
	snap, gen := r.commit(r.env.CurrentURL())
	r.mu.Unlock()

	r.publish(NavigationPop, snap, gen)
}

// commit derives and stores the state for u. Callers hold r.mu.
func (r *Router) commit(u *url.URL) (Snapshot, uint64) {
	snap := DeriveState(u, r.table)
	r.snap.Store(&snap)
	return snap, r.gen.Add(1)
}

// publish notifies the observer and subscribers of snap. A subscriber may
// navigate again; once a newer state has been committed the remaining
// subscribers are skipped, since the newer publish delivers the final state.
func (r *Router) publish(kind NavigationKind, snap Snapshot, gen uint64) {
	r.logger.Debug("router navigated",
		"kind", kind,
		"url", snap.URL.String(),
		"pattern", snap.Pattern(),
		"matched", snap.Matched(),
	)
	if r.observer != nil {
		r.observer.Navigated(kind, snap)
	}

	for _, fn := range r.subscribers() {
		if r.gen.Load() != gen {
			return
		}
		fn(snap)
	}
}

// Subscribe registers fn to receive every published state. Render loops use
// it to re-render after navigation.
func (r *Router) Subscribe(fn func(Snapshot)) (unsubscribe func()) {
	r.subsMu.Lock()
	r.subsID++
	id := r.subsID
	r.subs[id] = fn
	r.subsOrd = append(r.subsOrd, id)
	r.subsMu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			r.subsMu.Lock()
			defer r.subsMu.Unlock()
			delete(r.subs, id)
			for i, v := range r.subsOrd {
				if v == id {
					r.subsOrd = append(r.subsOrd[:i], r.subsOrd[i+1:]...)
					break
				}
			}
		})
	}
}

func (r *Router) subscribers() []func(Snapshot) {
	r.subsMu.Lock()
	defer r.subsMu.Unlock()

	out := make([]func(Snapshot), 0, len(r.subsOrd))
	for _, id := range r.subsOrd {
		out = append(out, r.subs[id])
	}
	return out
}

// Render implements vdom.Component. It renders the matched view, or nothing
// when no route matched, followed by the static children. Everything is
// rendered with the router scope in ctx.
func (r *Router) Render(ctx context.Context) *vdom.VNode {
	snap := r.Snapshot()
	scoped := withScope(ctx, &scope{router: r, snap: snap})

	var view *vdom.VNode
	if c := snap.View(); c != nil {
		view = vdom.ExpandComponent(scoped, c)
	}
	return vdom.Fragment(view, vdom.Expand(scoped, vdom.Fragment(r.children...)))
}
