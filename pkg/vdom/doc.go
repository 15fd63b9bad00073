// Package vdom provides the virtual node tree rendered by vroute.
//
// A VNode represents an element, text, fragment, component, or raw HTML.
// Views bound to routes are Components: they render a VNode tree for a
// context.Context, which is how the router scope reaches nested views
// without threading it through every call.
//
// # Element API
//
// Elements are created using variadic factory functions:
//
//	Div(Class("card"), ID("main"),
//	    H1(Text("Title")),
//	    P(Text("Content")),
//	    OnClick(handler),
//	)
//
// # Components
//
// Components are resolved lazily. Expand walks a tree and replaces every
// component node with its rendered output for a given context.
//
// # Hydration
//
// AssignHIDs walks the tree and assigns hydration IDs to interactive elements
// (those with event handlers). The same tree always receives the same IDs,
// which is what keeps server-rendered markup and live sessions aligned.
package vdom
