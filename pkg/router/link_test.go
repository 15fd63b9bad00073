package router

import (
	"context"
	"testing"

	"github.com/vango-dev/vroute/pkg/env"
	"github.com/vango-dev/vroute/pkg/vdom"
	"github.com/vango-dev/vroute/pkg/vtest"
)

func linkApp(t *testing.T, links ...any) (*Router, *env.Memory) {
	t.Helper()
	mem := env.NewMemory(env.MustParse("http://localhost/"))
	r, err := New(testTable(), WithEnvironment(mem), WithChildren(vdom.Nav(links...)))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return r, mem
}

func TestLinkRendersAnchor(t *testing.T) {
	r, _ := linkApp(t, Link("/users/42", vdom.Class("nav"), "Profile"))

	screen := vtest.Render(t, context.Background(), r)
	vtest.ExpectAttribute(t, screen, "href", "/users/42")
	vtest.ExpectAttribute(t, screen, "class", "nav")
	vtest.ExpectAttribute(t, screen, "data-link", "")
	vtest.ExpectContains(t, screen, ">Profile</a>")
}

func TestLinkClickNavigates(t *testing.T) {
	r, mem := linkApp(t, Link("/users/42", "Profile"))

	screen := vtest.Render(t, context.Background(), r)
	ev := screen.Click(t, "Profile")
	if !ev.DefaultPrevented() {
		t.Error("link click did not prevent the default navigation")
	}
	if mem.Len() != 2 {
		t.Errorf("history length = %d, want 2", mem.Len())
	}

	screen = screen.Rerender(t)
	vtest.ExpectContains(t, screen, `<div id="user">user 42</div>`)
}

func TestLinkReplace(t *testing.T) {
	r, mem := linkApp(t, Link("/about", Replace, "About"))

	vtest.Render(t, context.Background(), r).Click(t, "About")
	if mem.Len() != 1 {
		t.Errorf("history length = %d, want 1", mem.Len())
	}
	if r.Snapshot().Pattern() != "/about" {
		t.Errorf("pattern = %q", r.Snapshot().Pattern())
	}
}

func TestLinkRunsUserClickHandler(t *testing.T) {
	called := false
	r, _ := linkApp(t, Link("/about", vdom.OnClick(func() { called = true }), "About"))

	vtest.Render(t, context.Background(), r).Click(t, "About")
	if !called {
		t.Error("user onclick handler was not called")
	}
	if r.Snapshot().Pattern() != "/about" {
		t.Errorf("pattern = %q", r.Snapshot().Pattern())
	}
}

func TestNavLinkActive(t *testing.T) {
	r, _ := linkApp(t,
		NavLink("/", vdom.Class("nav"), "Home"),
		NavLink("/about", vdom.Class("nav"), "About"),
	)

	screen := vtest.Render(t, context.Background(), r)
	vtest.ExpectContains(t, screen, `<a aria-current="page" class="nav active" data-link="" href="/"`)
	vtest.ExpectContains(t, screen, `<a class="nav" data-link="" href="/about"`)

	screen.Click(t, "About")
	screen = screen.Rerender(t)
	vtest.ExpectContains(t, screen, `<a class="nav" data-link="" href="/"`)
	vtest.ExpectContains(t, screen, `<a aria-current="page" class="nav active" data-link="" href="/about"`)
}
