package router

import (
	"context"
	"net/url"
	"strings"

	"github.com/vango-dev/vroute/pkg/vdom"
)

type replaceMarker struct{}

// Replace is passed to Link or NavLink to replace the current history entry
// instead of pushing a new one.
//
//	router.Link("/login", router.Replace, "Log in")
var Replace = replaceMarker{}

// Link returns an anchor that navigates within the router when clicked.
//
// The anchor renders with href set to to, so it works without an
// interactive session. On click the default full-page navigation is
// prevented and the enclosing router navigates to to. Any onclick handler in
// args runs first. All other args (attributes, children) are applied to the
// anchor unchanged, after href.
//
// Link must be rendered beneath a Router.
func Link(to string, args ...any) vdom.Component {
	return vdom.Func(func(ctx context.Context) *vdom.VNode {
		s := mustLookup(ctx, "Link")
		return anchor(s, to, args, nil)
	})
}

// NavLink is like Link but marks the anchor as the current page, with the
// "active" class and aria-current="page", when the router's pathname equals
// the pathname of to.
func NavLink(to string, args ...any) vdom.Component {
	return vdom.Func(func(ctx context.Context) *vdom.VNode {
		s := mustLookup(ctx, "NavLink")
		if !isCurrent(s.snap, to) {
			return anchor(s, to, args, nil)
		}
		return anchor(s, to, args, []vdom.Attr{vdom.AriaCurrent("page")})
	})
}

// DataLink returns the marker attribute Link puts on its anchors. The live
// client script intercepts clicks on elements that carry it.
func DataLink() vdom.Attr {
	return vdom.Data("link", "")
}

func anchor(s *scope, to string, args []any, extra []vdom.Attr) *vdom.VNode {
	var (
		replace bool
		user    any
		classes []string
		pass    = make([]any, 0, len(args)+len(extra)+3)
	)
	for _, arg := range args {
		switch v := arg.(type) {
		case replaceMarker:
			replace = true
		case vdom.EventHandler:
			if v.Event == "onclick" {
				user = v.Handler
				continue
			}
			pass = append(pass, v)
		case vdom.Attr:
			if v.Key == "class" && extra != nil {
				if c, ok := v.Value.(string); ok && c != "" {
					classes = append(classes, c)
				}
				continue
			}
			pass = append(pass, v)
		default:
			pass = append(pass, arg)
		}
	}
	if extra != nil {
		classes = append(classes, "active")
		pass = append(pass, vdom.Class(classes...))
		for _, a := range extra {
			pass = append(pass, a)
		}
	}

	r := s.router
	click := func(ev *vdom.Event) {
		if user != nil {
			vdom.Invoke(user, ev)
		}
		ev.PreventDefault()
		if err := r.Navigate(to, WithReplace(replace)); err != nil {
			r.logger.Warn("link navigation failed", "to", to, "error", err)
		}
	}

	return vdom.A(
		vdom.Href(to),
		DataLink(),
		pass,
		vdom.OnClick(click),
	)
}

// isCurrent reports whether to names the page snap is showing.
func isCurrent(snap Snapshot, to string) bool {
	ref, err := url.Parse(to)
	if err != nil {
		return false
	}
	target := snap.URL.ResolveReference(ref)
	return target.Host == snap.URL.Host &&
		strings.TrimSuffix(target.Path, "/") == strings.TrimSuffix(snap.URL.Path, "/")
}
