// Package vtest provides testing helpers for components.
//
// Render a component with a context, inspect its HTML, and dispatch events
// to its handlers by the visible text of the element:
//
//	func TestNavClick(t *testing.T) {
//	    mem := env.NewMemory(env.MustParse("http://localhost/"))
//	    r, _ := router.New(table, router.WithEnvironment(mem))
//
//	    screen := vtest.Render(t, context.Background(), r)
//	    ev := screen.Click(t, "About")
//	    if !ev.DefaultPrevented() {
//	        t.Error("link click was not intercepted")
//	    }
//	    vtest.ExpectContains(t, screen.Rerender(t), "About this site")
//	}
package vtest
