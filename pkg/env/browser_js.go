//go:build js && wasm

package env

import (
	"net/url"
	"syscall/js"
)

// Browser is the interactive environment for WebAssembly builds. It reads
// window.location and writes window.history.
type Browser struct {
	window    js.Value
	listeners Listeners
	handler   js.Func
	bound     bool
}

// NewBrowser creates an environment bound to the global window.
func NewBrowser() *Browser {
	return &Browser{window: js.Global().Get("window")}
}

// CurrentURL parses window.location.href.
func (b *Browser) CurrentURL() *url.URL {
	href := b.window.Get("location").Get("href").String()
	u, err := url.Parse(href)
	if err != nil {
		return MustParse(DefaultBase)
	}
	return u
}

// Origin returns window.location.origin.
func (b *Browser) Origin() (*url.URL, bool) {
	return OriginOf(b.CurrentURL()), true
}

// Push calls history.pushState.
func (b *Browser) Push(u *url.URL) {
	b.window.Get("history").Call("pushState", js.Null(), "", u.String())
}

// Replace calls history.replaceState.
func (b *Browser) Replace(u *url.URL) {
	b.window.Get("history").Call("replaceState", js.Null(), "", u.String())
}

// OnPopNavigation registers fn for popstate events. A single DOM listener is
// attached while at least one callback is registered.
func (b *Browser) OnPopNavigation(fn func()) func() {
	remove := b.listeners.Add(fn)
	if !b.bound {
		b.handler = js.FuncOf(func(this js.Value, args []js.Value) any {
			b.listeners.Notify()
			return nil
		})
		b.window.Call("addEventListener", "popstate", b.handler)
		b.bound = true
	}

	return func() {
		remove()
		if b.bound && b.listeners.Len() == 0 {
			b.window.Call("removeEventListener", "popstate", b.handler)
			b.handler.Release()
			b.bound = false
		}
	}
}
