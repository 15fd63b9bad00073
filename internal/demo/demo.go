// Package demo is the sample application served by the vroute command.
package demo

import (
	"context"
	"io"
	"log/slog"

	"github.com/a-h/templ"

	"github.com/vango-dev/vroute/pkg/render"
	"github.com/vango-dev/vroute/pkg/router"
	"github.com/vango-dev/vroute/pkg/vdom"
)

// Title is the document title of the demo.
const Title = "vroute demo"

// Routes returns the demo route definitions.
func Routes() []router.Route {
	return []router.Route{
		{Pattern: "/", View: vdom.Func(home)},
		{Pattern: "/about", View: vdom.Func(about)},
		{Pattern: "/users/[id]", View: vdom.Func(user)},
	}
}

// Table returns the compiled demo route table.
func Table() *router.Table {
	return router.MustTable(Routes()...)
}

// Children returns the siblings rendered after the matched view.
func Children(logger *slog.Logger) func() []any {
	return func() []any {
		return []any{RouterLogger(logger), footer}
	}
}

func home(ctx context.Context) *vdom.VNode {
	return page("Home")
}

func about(ctx context.Context) *vdom.VNode {
	return page("About")
}

func user(ctx context.Context) *vdom.VNode {
	return page("User " + router.UseState(ctx).Params["id"])
}

func page(heading string) *vdom.VNode {
	return vdom.Div(vdom.Class("app"),
		vdom.H1("vroute"),
		vdom.H2(heading),
		Nav(),
	)
}

// Nav links the demo pages.
func Nav() *vdom.VNode {
	return vdom.Nav(
		router.NavLink("/", "Home"), " | ",
		router.NavLink("/about", "About"), " | ",
		router.NavLink("/users/42", "User"),
	)
}

// RouterLogger logs the router state on every render and renders nothing.
func RouterLogger(logger *slog.Logger) vdom.Component {
	return vdom.Func(func(ctx context.Context) *vdom.VNode {
		state := router.UseState(ctx)
		logger.DebugContext(ctx, "router state",
			"url", state.URL.String(),
			"params", state.Params,
			"search", state.Search,
		)
		return nil
	})
}

var footer = render.Templ(templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
	_, err := io.WriteString(w, `<footer class="footer">Served by vroute</footer>`)
	return err
}))
