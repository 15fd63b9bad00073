package router

// NavigationKind identifies what caused a state transition.
type NavigationKind string

const (
	NavigationInitial NavigationKind = "initial"
	NavigationPush    NavigationKind = "push"
	NavigationReplace NavigationKind = "replace"
	NavigationPop     NavigationKind = "pop"
)

// Observer is notified of every state a router publishes, including the
// initial one. Observers run synchronously and must not block.
type Observer interface {
	Navigated(kind NavigationKind, snap Snapshot)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(kind NavigationKind, snap Snapshot)

// Navigated implements Observer.
func (f ObserverFunc) Navigated(kind NavigationKind, snap Snapshot) {
	f(kind, snap)
}
