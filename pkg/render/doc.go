// Package render provides server-side rendering (SSR) of vdom trees.
//
// The render package resolves a tree's components with a context, then
// converts it into HTML strings or streams:
//
//   - HTML5 compliant element rendering
//   - Proper text and attribute escaping (XSS prevention)
//   - Void element handling (input, br, img, etc.)
//   - Boolean attribute handling (disabled, checked, etc.)
//   - Hydration ID generation for interactive elements
//   - Full page rendering with DOCTYPE, head, body
//   - templ interop in both directions
//
// # Basic Usage
//
//	renderer := render.NewRenderer(render.RendererConfig{})
//	html, err := renderer.RenderToString(ctx, node)
//
// Components receive ctx, so a router.Router placed in the tree makes its
// scope visible to every view beneath it.
//
// # Full Page Rendering
//
//	page := render.PageData{
//	    Body:       vdom.Fragment(r),
//	    Title:      "Users",
//	    StateToken: token,
//	    LiveURL:    "/_vroute/live",
//	}
//	err := renderer.RenderPage(ctx, w, page)
//
// # Hydration IDs
//
// Elements with event handlers receive a data-hid attribute and one
// data-on-<event> marker per handler. The handlers are collected during
// rendering and can be retrieved via GetHandlers(). IDs are assigned in
// document order, so the same URL renders the same IDs on every pass.
//
// # Streaming
//
// For large pages, use StreamingRenderer to flush content incrementally:
//
//	sr := render.NewStreamingRenderer(w, config)
//	err := sr.RenderPage(ctx, page)
package render
