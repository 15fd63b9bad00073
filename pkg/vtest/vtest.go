package vtest

import (
	"context"
	"strings"
	"testing"

	"github.com/vango-dev/vroute/pkg/render"
	"github.com/vango-dev/vroute/pkg/vdom"
)

// Screen is the rendered output of a component, with the handlers collected
// during the render so tests can dispatch events to it.
type Screen struct {
	ctx      context.Context
	root     vdom.Component
	html     string
	tree     *vdom.VNode
	handlers map[string]any
}

// Render renders root with ctx and fails the test on a render error.
//
// Example:
//
//	screen := vtest.Render(t, ctx, r)
//	screen.Click(t, "About")
//	screen = screen.Rerender(t)
//	vtest.ExpectContains(t, screen, "About this site")
func Render(t testing.TB, ctx context.Context, root vdom.Component) *Screen {
	t.Helper()

	r := render.NewRenderer(render.RendererConfig{})
	html, err := r.RenderToString(ctx, vdom.Fragment(root))
	if err != nil {
		t.Fatalf("vtest: render failed: %v", err)
	}
	return &Screen{
		ctx:      ctx,
		root:     root,
		html:     html,
		tree:     r.Tree(),
		handlers: r.GetHandlers(),
	}
}

// Rerender renders the same root again with the same context.
func (s *Screen) Rerender(t testing.TB) *Screen {
	t.Helper()
	return Render(t, s.ctx, s.root)
}

// HTML returns the rendered HTML.
func (s *Screen) HTML() string {
	return s.html
}

// Text returns the text content of the rendered tree.
func (s *Screen) Text() string {
	return vdom.TextContent(s.tree)
}

// FindByText returns the innermost element whose text content equals text,
// or nil.
func (s *Screen) FindByText(text string) *vdom.VNode {
	return deepest(s.tree, func(n *vdom.VNode) bool {
		return n.Kind == vdom.KindElement && vdom.TextContent(n) == text
	})
}

// Click dispatches a click to the innermost element with an onclick handler
// whose text content equals text, and returns the dispatched event. The test
// fails when no such element exists.
func (s *Screen) Click(t testing.TB, text string) *vdom.Event {
	t.Helper()
	return s.Dispatch(t, text, "click")
}

// Dispatch is like Click for any event type.
func (s *Screen) Dispatch(t testing.TB, text, eventType string) *vdom.Event {
	t.Helper()

	key := "on" + eventType
	node := deepest(s.tree, func(n *vdom.VNode) bool {
		if n.Kind != vdom.KindElement || vdom.TextContent(n) != text {
			return false
		}
		_, ok := n.Props[key]
		return ok
	})
	if node == nil {
		t.Fatalf("vtest: no element with text %q handles %s", text, eventType)
		return nil
	}

	handler, ok := s.handlers[node.HID+"_"+key]
	if !ok {
		t.Fatalf("vtest: handler %s_%s was not registered", node.HID, key)
		return nil
	}
	ev := &vdom.Event{Type: eventType, Target: node.HID}
	if !vdom.Invoke(handler, ev) {
		t.Fatalf("vtest: handler for %q has unsupported type %T", text, handler)
	}
	return ev
}

func deepest(node *vdom.VNode, match func(*vdom.VNode) bool) *vdom.VNode {
	if node == nil {
		return nil
	}
	for _, child := range node.Children {
		if found := deepest(child, match); found != nil {
			return found
		}
	}
	if match(node) {
		return node
	}
	return nil
}

// RenderToString renders a node with a background context and returns the
// HTML string, or "" on error.
func RenderToString(node *vdom.VNode) string {
	r := render.NewRenderer(render.RendererConfig{})
	html, err := r.RenderToString(context.Background(), node)
	if err != nil {
		return ""
	}
	return html
}

// ExpectContains asserts that the screen's HTML contains expected.
//
// Example:
//
//	vtest.ExpectContains(t, screen, "Welcome")
func ExpectContains(t testing.TB, s *Screen, expected string) {
	t.Helper()
	if !strings.Contains(s.html, expected) {
		t.Errorf("expected rendered output to contain %q, got:\n%s", expected, truncate(s.html, 500))
	}
}

// ExpectNotContains asserts that the screen's HTML does not contain
// unexpected.
func ExpectNotContains(t testing.TB, s *Screen, unexpected string) {
	t.Helper()
	if strings.Contains(s.html, unexpected) {
		t.Errorf("expected rendered output to NOT contain %q, got:\n%s", unexpected, truncate(s.html, 500))
	}
}

// ExpectAttribute asserts that the screen's HTML contains attr="value".
//
// Example:
//
//	vtest.ExpectAttribute(t, screen, "href", "/users/42")
func ExpectAttribute(t testing.TB, s *Screen, attr, value string) {
	t.Helper()
	needle := attr + `="` + value + `"`
	if !strings.Contains(s.html, needle) {
		t.Errorf("expected attribute %s=%q not found, got:\n%s", attr, value, truncate(s.html, 500))
	}
}

// truncate truncates a string to max length with ellipsis.
func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
