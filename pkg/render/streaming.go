package render

import (
	"context"
	"net/http"
)

// StreamingRenderer renders pages straight to an http.ResponseWriter,
// flushing the head before the body so the browser can start fetching
// stylesheets and scripts.
type StreamingRenderer struct {
	*Renderer
	w http.ResponseWriter
}

// NewStreamingRenderer creates a streaming renderer that writes to w.
// Flushing only happens when w implements http.Flusher.
func NewStreamingRenderer(w http.ResponseWriter, config RendererConfig) *StreamingRenderer {
	return &StreamingRenderer{Renderer: NewRenderer(config), w: w}
}

// RenderPage renders a complete HTML document with incremental flushing.
func (s *StreamingRenderer) RenderPage(ctx context.Context, page PageData) error {
	return s.Renderer.RenderPage(ctx, s.w, page)
}
