package live

import (
	"net/url"
	"sync"

	"github.com/vango-dev/vroute/pkg/env"
)

// Environment mirrors the history of one browser tab. History writes are
// forwarded to the tab with send; pop frames from the tab are applied with
// Pop.
type Environment struct {
	mu        sync.Mutex
	current   *url.URL
	send      func(Frame)
	listeners env.Listeners
}

// NewEnvironment creates an environment showing start. send is called for
// every push and replace.
func NewEnvironment(start *url.URL, send func(Frame)) *Environment {
	return &Environment{current: start, send: send}
}

// CurrentURL implements env.Environment.
func (e *Environment) CurrentURL() *url.URL {
	e.mu.Lock()
	defer e.mu.Unlock()
	u := *e.current
	return &u
}

// Origin implements env.Environment. The tab is interactive.
func (e *Environment) Origin() (*url.URL, bool) {
	return env.OriginOf(e.CurrentURL()), true
}

// Push implements env.Environment.
func (e *Environment) Push(u *url.URL) {
	e.set(u)
	e.send(Frame{Type: FramePush, URL: u.String()})
}

// Replace implements env.Environment.
func (e *Environment) Replace(u *url.URL) {
	e.set(u)
	e.send(Frame{Type: FrameReplace, URL: u.String()})
}

// OnPopNavigation implements env.Environment.
func (e *Environment) OnPopNavigation(fn func()) func() {
	return e.listeners.Add(fn)
}

// Pop records a back/forward navigation reported by the tab and notifies
// listeners.
func (e *Environment) Pop(u *url.URL) {
	e.set(u)
	e.listeners.Notify()
}

// Listeners returns the number of pop listeners.
func (e *Environment) Listeners() int {
	return e.listeners.Len()
}

func (e *Environment) set(u *url.URL) {
	c := *u
	e.mu.Lock()
	e.current = &c
	e.mu.Unlock()
}
