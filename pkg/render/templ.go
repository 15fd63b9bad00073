package render

import (
	"bytes"
	"context"
	"io"
	"log/slog"

	"github.com/a-h/templ"

	"github.com/vango-dev/vroute/pkg/vdom"
)

// Templ embeds a templ component in a vdom tree. The component is rendered
// with the tree's context, so templ views beneath a router can read its
// state through router.UseState. Its output is inserted as raw HTML and is
// not interactive.
func Templ(c templ.Component) vdom.Component {
	return vdom.Func(func(ctx context.Context) *vdom.VNode {
		var buf bytes.Buffer
		if err := c.Render(ctx, &buf); err != nil {
			slog.ErrorContext(ctx, "templ component failed to render", "error", err)
			return nil
		}
		return vdom.Raw(buf.String())
	})
}

// ToTempl exposes a vdom component as a templ component, for use in templ
// layouts:
//
//	@render.ToTempl(r)
//
// Handlers collected during this render are discarded; mount interactive
// trees through a live session instead.
func ToTempl(c vdom.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		return NewRenderer(RendererConfig{}).RenderToWriter(ctx, w, vdom.Fragment(c))
	})
}
