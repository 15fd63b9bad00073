package server

import (
	"log/slog"
	"net/url"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/vango-dev/vroute/internal/errors"
	"github.com/vango-dev/vroute/pkg/assets"
	"github.com/vango-dev/vroute/pkg/hydrate"
	"github.com/vango-dev/vroute/pkg/middleware"
	"github.com/vango-dev/vroute/pkg/router"
)

// Well-known paths served next to the pages.
const (
	LivePath    = "/_vroute/live"
	ClientPath  = "/_vroute/client.js"
	MetricsPath = "/metrics"
)

// Config configures a Server.
type Config struct {
	// Address is the listen address (default ":3000").
	Address string

	// BaseURL, when set, supplies the scheme and host of every request URL
	// handed to the router. Otherwise they are taken from the request.
	BaseURL *url.URL

	// Table is the route table. Required.
	Table *router.Table

	// Children returns the static siblings rendered after the matched view.
	// It is called once per request and once per live session.
	Children func() []any

	// Title and Lang populate the document shell.
	Title string
	Lang  string

	// Signer signs the hydration token embedded in every page. When nil no
	// token is emitted and live sessions always send their first render.
	Signer *hydrate.Signer

	// DisableLive serves plain SSR pages without the live client.
	DisableLive bool

	// Pretty indents the rendered page body. Live re-renders are unaffected.
	Pretty bool

	// Assets resolves Scripts and StyleSheets to fingerprinted paths.
	// Defaults to a passthrough resolver under AssetPrefix.
	Assets assets.Resolver

	// Scripts and StyleSheets are manifest entry names.
	Scripts     []string
	StyleSheets []string

	// AssetsDir, when set, is served under AssetPrefix.
	AssetsDir   string
	AssetPrefix string

	// Metrics observes every router the server creates. Gatherer, when
	// set, is exposed on MetricsPath.
	Metrics  *middleware.Metrics
	Gatherer prometheus.Gatherer

	// Tracing options; tracing is always on and uses the global provider
	// unless one is given here.
	Tracing []middleware.OTelOption

	// Logger defaults to slog.Default().
	Logger *slog.Logger

	ReadHeaderTimeout time.Duration
	IdleTimeout       time.Duration
	ShutdownTimeout   time.Duration
}

// DefaultConfig returns a Config with sensible timeouts.
func DefaultConfig(table *router.Table) Config {
	return Config{
		Address:           ":3000",
		Table:             table,
		AssetPrefix:       "/assets/",
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       120 * time.Second,
		ShutdownTimeout:   10 * time.Second,
	}
}

func (c Config) withDefaults() Config {
	d := DefaultConfig(c.Table)
	if c.Address == "" {
		c.Address = d.Address
	}
	if c.AssetPrefix == "" {
		c.AssetPrefix = d.AssetPrefix
	}
	if c.Assets == nil {
		c.Assets = assets.NewPassthroughResolver(c.AssetPrefix)
	}
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
	if c.ReadHeaderTimeout <= 0 {
		c.ReadHeaderTimeout = d.ReadHeaderTimeout
	}
	if c.IdleTimeout <= 0 {
		c.IdleTimeout = d.IdleTimeout
	}
	if c.ShutdownTimeout <= 0 {
		c.ShutdownTimeout = d.ShutdownTimeout
	}
	return c
}

// Validate reports configuration errors.
func (c Config) Validate() error {
	if c.Table == nil {
		return errors.New(errors.CodeConfig).WithDetail("server: route table is required")
	}
	if c.BaseURL != nil && (c.BaseURL.Scheme == "" || c.BaseURL.Host == "") {
		return errors.New(errors.CodeConfig).WithDetailf("server: base URL %q must be absolute", c.BaseURL)
	}
	return nil
}
