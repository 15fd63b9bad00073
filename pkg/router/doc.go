// Package router is an isomorphic routing engine for server-rendered,
// hydrated applications.
//
// The router maps a URL to a view, extracts path and query parameters, and
// keeps that state synchronized with navigation history. The same pure
// DeriveState function resolves URLs during server-side rendering and in
// interactive sessions, so a URL always resolves to the same view and
// parameters in both.
//
// # Route Table
//
// Routes are an ordered list of (pattern, view) bindings. The first route
// whose pattern matches the full pathname wins; overlapping patterns are
// resolved by position, not specificity:
//
//	table := router.MustTable(
//	    router.Route{Pattern: "/", View: Home},
//	    router.Route{Pattern: "/users/[id]", View: User},
//	    router.Route{Pattern: "/todos/:id", View: Todo},
//	)
//
// # Rendering
//
// A Router is a vdom.Component. It renders the matched view followed by its
// static children, with the router scope in the context:
//
//	r, err := router.New(table,
//	    router.WithURLString("/users/42"),
//	    router.WithChildren(Footer()),
//	)
//	html, err := render.NewRenderer(render.RendererConfig{}).RenderToString(ctx, vdom.Fragment(r))
//
// Views read the scope with UseState and UseNavigate; both panic when no
// router encloses the caller.
//
// # Navigation
//
// Navigate resolves a target, writes history through the Environment, and
// publishes the new state before returning. Link renders an anchor that does
// the same when clicked:
//
//	router.Link("/about", "About")
//	router.Link("/login", router.Replace, "Log in")
//
// Back/forward navigations reach the router only through the Environment's
// pop notification, subscribed by Mount.
package router
