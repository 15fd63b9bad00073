package env

import (
	"net/url"
	"sync"
)

// Memory is an interactive environment backed by an in-process history
// stack. It follows browser semantics: Push discards forward entries,
// Replace overwrites the current entry, and Back/Forward/Go move the cursor
// and notify pop listeners.
type Memory struct {
	mu        sync.Mutex
	entries   []*url.URL
	index     int
	listeners Listeners
}

// NewMemory creates a history with a single entry at start.
func NewMemory(start *url.URL) *Memory {
	return &Memory{entries: []*url.URL{cloneURL(start)}}
}

// CurrentURL returns the entry under the cursor.
func (m *Memory) CurrentURL() *url.URL {
	m.mu.Lock()
	defer m.mu.Unlock()
	return cloneURL(m.entries[m.index])
}

// Origin returns the origin of the current entry.
func (m *Memory) Origin() (*url.URL, bool) {
	return OriginOf(m.CurrentURL()), true
}

// Push adds an entry after the cursor, discarding forward entries.
func (m *Memory) Push(u *url.URL) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.entries = append(m.entries[:m.index+1], cloneURL(u))
	m.index = len(m.entries) - 1
}

// Replace overwrites the entry under the cursor.
func (m *Memory) Replace(u *url.URL) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.entries[m.index] = cloneURL(u)
}

// OnPopNavigation registers fn for back/forward notifications.
func (m *Memory) OnPopNavigation(fn func()) func() {
	return m.listeners.Add(fn)
}

// Len returns the number of history entries.
func (m *Memory) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries)
}

// Index returns the cursor position.
func (m *Memory) Index() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.index
}

// Listeners returns the number of registered pop listeners.
func (m *Memory) Listeners() int {
	return m.listeners.Len()
}

// Back moves one entry back. It reports false at the start of history.
func (m *Memory) Back() bool {
	return m.Go(-1)
}

// Forward moves one entry forward. It reports false at the end of history.
func (m *Memory) Forward() bool {
	return m.Go(1)
}

// Go moves the cursor by delta entries and notifies pop listeners. Moves
// outside the history are ignored.
func (m *Memory) Go(delta int) bool {
	m.mu.Lock()
	next := m.index + delta
	if delta == 0 || next < 0 || next >= len(m.entries) {
		m.mu.Unlock()
		return false
	}
	m.index = next
	m.mu.Unlock()

	m.listeners.Notify()
	return true
}

// PushExternal pushes u without involving any router, as a third-party
// script calling history.pushState would. No listener is notified.
func (m *Memory) PushExternal(u *url.URL) {
	m.Push(u)
}

// PopTo pushes u and then notifies pop listeners, mirroring a history write
// followed by a dispatched popstate event.
func (m *Memory) PopTo(u *url.URL) {
	m.Push(u)
	m.listeners.Notify()
}
