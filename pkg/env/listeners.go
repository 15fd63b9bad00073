package env

import "sync"

// Listeners is a registry of back/forward callbacks shared by interactive
// environments. Registration and removal may happen from any goroutine;
// Notify calls a snapshot of the callbacks so a callback may unsubscribe
// itself.
type Listeners struct {
	mu     sync.Mutex
	nextID uint64
	fns    map[uint64]func()
	order  []uint64
}

// Add registers fn and returns its idempotent remover.
func (l *Listeners) Add(fn func()) func() {
	l.mu.Lock()
	if l.fns == nil {
		l.fns = make(map[uint64]func())
	}
	l.nextID++
	id := l.nextID
	l.fns[id] = fn
	l.order = append(l.order, id)
	l.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() { l.remove(id) })
	}
}

func (l *Listeners) remove(id uint64) {
	l.mu.Lock()
	defer l.mu.Unlock()

	delete(l.fns, id)
	for i, v := range l.order {
		if v == id {
			l.order = append(l.order[:i], l.order[i+1:]...)
			break
		}
	}
}

// Len returns the number of registered callbacks.
func (l *Listeners) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.fns)
}

// Notify calls every registered callback in registration order.
func (l *Listeners) Notify() {
	l.mu.Lock()
	fns := make([]func(), 0, len(l.order))
	for _, id := range l.order {
		fns = append(fns, l.fns[id])
	}
	l.mu.Unlock()

	for _, fn := range fns {
		fn()
	}
}
