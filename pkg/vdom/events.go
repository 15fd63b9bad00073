package vdom

// Event is passed to handlers of the form func(*Event).
type Event struct {
	// Type is the DOM event type without the "on" prefix (e.g. "click").
	Type string

	// Target is the HID of the element the event was dispatched to.
	Target string

	defaultPrevented bool
}

// PreventDefault suppresses the browser's default action for the event.
// For anchors this means the client must not perform a full page load.
func (e *Event) PreventDefault() {
	e.defaultPrevented = true
}

// DefaultPrevented reports whether PreventDefault was called.
func (e *Event) DefaultPrevented() bool {
	return e.defaultPrevented
}

// event creates an EventHandler with the given name and handler.
// The name is prefixed with "on" (e.g., "click" becomes "onclick").
func event(name string, handler any) EventHandler {
	return EventHandler{Event: "on" + name, Handler: handler}
}

// OnClick handles click events.
func OnClick(handler any) EventHandler { return event("click", handler) }

// OnSubmit handles submit events.
func OnSubmit(handler any) EventHandler { return event("submit", handler) }

// OnInput handles input events.
func OnInput(handler any) EventHandler { return event("input", handler) }

// Invoke calls handler with ev if it has a supported signature.
// It reports whether the handler was callable.
func Invoke(handler any, ev *Event) bool {
	switch h := handler.(type) {
	case func():
		h()
	case func(*Event):
		h(ev)
	case EventHandler:
		return Invoke(h.Handler, ev)
	default:
		return false
	}
	return true
}
