// Package middleware provides observability for vroute servers.
//
// # Prometheus Metrics
//
// Metrics counts navigations and route resolutions. Attach it to routers as
// an observer and to the live handler as a session tracker:
//
//	m := middleware.NewMetrics()
//	r, _ := router.New(table, router.WithObserver(m))
//	h := live.NewHandler(live.Config{Table: table, Observer: m, Tracker: m})
//
// Then expose the collectors:
//
//	http.Handle("/metrics", promhttp.Handler())
//
// # OpenTelemetry
//
// Tracing starts a server span per request. SSR handlers call Annotate
// with the resolved snapshot so the span carries vroute.pattern and
// vroute.matched.
package middleware
