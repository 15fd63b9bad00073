package render

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/vango-dev/vroute/pkg/vdom"
)

// DefaultClientScript is the path of the live client served by pkg/live.
const DefaultClientScript = "/_vroute/client.js"

// PageData contains all data needed to render a complete HTML page.
type PageData struct {
	// Body is the root VNode for the page content
	Body *vdom.VNode

	// Title is the page title
	Title string

	// Lang is the language attribute for the html element.
	// Defaults to "en".
	Lang string

	// StyleSheets and Scripts are resolved asset paths linked from the head.
	StyleSheets []string
	Scripts     []ScriptTag

	// StateToken is the signed hydration token the live client sends back
	// when it connects. Omitted when empty.
	StateToken string

	// LiveURL is the WebSocket endpoint of the live session.
	// When empty the page is rendered without the client script.
	LiveURL string

	// ClientScript is the path of the live client.
	// Defaults to DefaultClientScript.
	ClientScript string
}

// ScriptTag is an external script linked from the document head.
type ScriptTag struct {
	Src   string
	Defer bool
	Async bool
}

// RenderPage renders a complete HTML document to w. When w is an
// http.Flusher the head is flushed before the body is rendered, and the
// body before the client script.
func (r *Renderer) RenderPage(ctx context.Context, w io.Writer, page PageData) error {
	flusher, _ := w.(http.Flusher)
	flush := func() {
		if flusher != nil {
			flusher.Flush()
		}
	}

	lang := page.Lang
	if lang == "" {
		lang = "en"
	}
	if _, err := fmt.Fprintf(w, "<!DOCTYPE html>\n<html lang=\"%s\">\n", escapeAttr(lang)); err != nil {
		return err
	}
	if _, err := io.WriteString(w, renderHead(page)); err != nil {
		return err
	}
	flush()

	if _, err := io.WriteString(w, "<body>\n"); err != nil {
		return err
	}
	if err := r.RenderToWriter(ctx, w, page.Body); err != nil {
		return err
	}
	flush()

	if _, err := io.WriteString(w, renderClientScript(page)); err != nil {
		return err
	}
	if _, err := io.WriteString(w, "</body>\n</html>\n"); err != nil {
		return err
	}
	flush()
	return nil
}

func renderHead(page PageData) string {
	var b strings.Builder
	b.WriteString("<head>\n")
	b.WriteString(`  <meta charset="utf-8">` + "\n")
	b.WriteString(`  <meta name="viewport" content="width=device-width, initial-scale=1">` + "\n")
	if page.Title != "" {
		fmt.Fprintf(&b, "  <title>%s</title>\n", escapeHTML(page.Title))
	}
	for _, href := range page.StyleSheets {
		fmt.Fprintf(&b, `  <link rel="stylesheet" href="%s">`+"\n", escapeAttr(href))
	}
	for _, script := range page.Scripts {
		fmt.Fprintf(&b, `  <script src="%s"`, escapeAttr(script.Src))
		if script.Defer {
			b.WriteString(" defer")
		}
		if script.Async {
			b.WriteString(" async")
		}
		b.WriteString("></script>\n")
	}
	b.WriteString("</head>\n")
	return b.String()
}

// renderClientScript returns the live client tag and its state token.
func renderClientScript(page PageData) string {
	if page.LiveURL == "" {
		return ""
	}

	var b strings.Builder
	if page.StateToken != "" {
		fmt.Fprintf(&b, `  <script>window.__VROUTE_STATE__="%s";</script>`+"\n", escapeAttr(page.StateToken))
	}
	clientPath := page.ClientScript
	if clientPath == "" {
		clientPath = DefaultClientScript
	}
	fmt.Fprintf(&b, `  <script src="%s" data-live="%s" defer></script>`+"\n",
		escapeAttr(clientPath), escapeAttr(page.LiveURL))
	return b.String()
}
