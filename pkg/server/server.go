package server

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/vango-dev/vroute/pkg/live"
	"github.com/vango-dev/vroute/pkg/middleware"
	"github.com/vango-dev/vroute/pkg/router"
)

// Server renders pages for a route table and hosts the live session
// endpoint. It holds no per-request routing state: every request gets a
// fresh router.
type Server struct {
	config     Config
	mux        chi.Router
	live       *live.Handler
	httpServer *http.Server
	logger     *slog.Logger
}

// New creates a Server.
func New(config Config) (*Server, error) {
	config = config.withDefaults()
	if err := config.Validate(); err != nil {
		return nil, err
	}

	s := &Server{
		config: config,
		logger: config.Logger.With("component", "server"),
	}
	if !config.DisableLive {
		s.live = live.NewHandler(s.liveConfig())
	}
	s.mux = s.routes()
	return s, nil
}

func (s *Server) liveConfig() live.Config {
	lc := live.DefaultConfig(s.config.Table)
	lc.Children = s.config.Children
	lc.Signer = s.config.Signer
	lc.Logger = s.config.Logger
	if s.config.Metrics != nil {
		lc.Observer = s.config.Metrics
		lc.Tracker = s.config.Metrics
	}
	return lc
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)

	if s.live != nil {
		r.Handle(LivePath, s.live)
		r.Handle(ClientPath, live.ClientScript())
	}
	if s.config.Gatherer != nil {
		r.Handle(MetricsPath, promhttp.HandlerFor(s.config.Gatherer, promhttp.HandlerOpts{}))
	}
	if s.config.AssetsDir != "" {
		prefix := "/" + strings.Trim(s.config.AssetPrefix, "/") + "/"
		fs := http.StripPrefix(prefix, http.FileServer(http.Dir(s.config.AssetsDir)))
		r.Handle(prefix+"*", fs)
	}

	r.Group(func(r chi.Router) {
		r.Use(middleware.Tracing(s.config.Tracing...))
		if s.config.Metrics != nil {
			r.Use(s.config.Metrics.Middleware)
		}
		r.Get("/*", s.servePage)
		r.Head("/*", s.servePage)
	})
	return r
}

// Handler returns the HTTP handler, for mounting in another mux.
func (s *Server) Handler() http.Handler {
	return s.mux
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

// observer returns the observer attached to request routers, or nil.
func (s *Server) observer() router.Observer {
	if s.config.Metrics == nil {
		return nil
	}
	return s.config.Metrics
}

// Run listens on the configured address and blocks until ctx is done, then
// shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.config.Address)
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx is done.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	s.httpServer = &http.Server{
		Handler:           s.mux,
		ReadHeaderTimeout: s.config.ReadHeaderTimeout,
		IdleTimeout:       s.config.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server starting", "address", ln.Addr().String())
		errCh <- s.httpServer.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		s.logger.Info("shutting down...")
		return s.Shutdown(context.WithoutCancel(ctx))
	}
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, s.config.ShutdownTimeout)
	defer cancel()

	if s.httpServer != nil {
		if err := s.httpServer.Shutdown(ctx); err != nil {
			s.logger.Error("shutdown error", "error", err)
			return err
		}
	}

	s.logger.Info("server shutdown complete")
	return nil
}
