package server

import (
	"net/http"
	"net/url"

	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/vango-dev/vroute/pkg/env"
	"github.com/vango-dev/vroute/pkg/middleware"
	"github.com/vango-dev/vroute/pkg/render"
	"github.com/vango-dev/vroute/pkg/router"
	"github.com/vango-dev/vroute/pkg/vdom"
)

// servePage renders the document for the request URL. Unmatched URLs still
// render the shell and the static siblings, with a 404 status.
func (s *Server) servePage(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	u := s.requestURL(r)
	logger := s.config.Logger.With("request_id", chimw.GetReqID(ctx))

	opts := []router.Option{
		router.WithEnvironment(env.NewStatic(u)),
		router.WithLogger(logger),
	}
	if s.config.Children != nil {
		opts = append(opts, router.WithChildren(s.config.Children()...))
	}
	if o := s.observer(); o != nil {
		opts = append(opts, router.WithObserver(o))
	}

	rt, err := router.New(s.config.Table, opts...)
	if err != nil {
		middleware.RecordError(ctx, err)
		logger.Error("router init failed", "url", u.String(), "error", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	snap := rt.Snapshot()
	middleware.Annotate(ctx, snap)

	status := http.StatusOK
	if !snap.Matched() {
		status = http.StatusNotFound
	}

	page := s.page(rt, snap)
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if r.Method == http.MethodHead {
		return
	}

	sr := render.NewStreamingRenderer(w, render.RendererConfig{Pretty: s.config.Pretty})
	if err := sr.RenderPage(ctx, page); err != nil {
		middleware.RecordError(ctx, err)
		logger.Error("page render failed", "url", u.String(), "error", err)
	}
}

func (s *Server) page(rt *router.Router, snap router.Snapshot) render.PageData {
	page := render.PageData{
		Body:  vdom.Div(vdom.Data("vroute-root", ""), rt),
		Title: s.config.Title,
		Lang:  s.config.Lang,
	}
	for _, src := range s.config.Scripts {
		page.Scripts = append(page.Scripts, render.ScriptTag{Src: s.config.Assets.Asset(src), Defer: true})
	}
	for _, href := range s.config.StyleSheets {
		page.StyleSheets = append(page.StyleSheets, s.config.Assets.Asset(href))
	}

	if s.live == nil {
		return page
	}
	page.LiveURL = LivePath
	page.ClientScript = ClientPath
	if s.config.Signer != nil {
		token, err := s.config.Signer.Encode(snap)
		if err != nil {
			s.logger.Warn("hydration token encode failed", "error", err)
		} else {
			page.StateToken = token
		}
	}
	return page
}

// requestURL reconstructs the absolute URL the client asked for.
func (s *Server) requestURL(r *http.Request) *url.URL {
	u := &url.URL{
		Scheme:   "http",
		Host:     r.Host,
		Path:     r.URL.Path,
		RawPath:  r.URL.RawPath,
		RawQuery: r.URL.RawQuery,
	}
	if r.TLS != nil || r.Header.Get("X-Forwarded-Proto") == "https" {
		u.Scheme = "https"
	}
	if base := s.config.BaseURL; base != nil {
		u.Scheme = base.Scheme
		u.Host = base.Host
	}
	return u
}
