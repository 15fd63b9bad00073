package router

import (
	"fmt"
	"net/url"

	"github.com/vango-dev/vroute/internal/errors"
)

// ErrMalformedTarget matches (errors.Is) the error returned for navigation
// targets that cannot be parsed as a URL.
var ErrMalformedTarget error = errors.New(errors.CodeMalformedTarget)

// NavigateOptions configures navigation behavior.
type NavigateOptions struct {
	// Replace replaces the current history entry instead of pushing.
	Replace bool

	// Query are query parameters merged into the target URL.
	Query map[string]any
}

// NavigateOption is a functional option for Navigate.
type NavigateOption func(*NavigateOptions)

// NavigateFunc is the bound navigate operation handed to views.
type NavigateFunc func(target string, opts ...NavigateOption) error

// WithReplace sets whether the navigation replaces the current history
// entry. The default pushes a new entry.
func WithReplace(replace bool) NavigateOption {
	return func(o *NavigateOptions) {
		o.Replace = replace
	}
}

// WithQuery merges query parameters into the navigation URL.
func WithQuery(query map[string]any) NavigateOption {
	return func(o *NavigateOptions) {
		o.Query = query
	}
}

// NavigationRequest represents a pending navigation.
type NavigationRequest struct {
	Target  string
	Options NavigateOptions
}

// NewNavigationRequest applies opts to a request for target.
func NewNavigationRequest(target string, opts ...NavigateOption) NavigationRequest {
	req := NavigationRequest{Target: target}
	for _, opt := range opts {
		opt(&req.Options)
	}
	return req
}

// Resolve returns the absolute URL of the request relative to base.
func (nr NavigationRequest) Resolve(base *url.URL) (*url.URL, error) {
	ref, err := url.Parse(nr.Target)
	if err != nil {
		return nil, errors.New(errors.CodeMalformedTarget).WithDetailf("target %q", nr.Target).Wrap(err)
	}

	u := ref
	if base != nil {
		u = base.ResolveReference(ref)
	}
	if !u.IsAbs() {
		return nil, errors.New(errors.CodeMalformedTarget).WithDetailf("target %q has no base to resolve against", nr.Target)
	}

	if len(nr.Options.Query) > 0 {
		q := u.Query()
		for k, v := range nr.Options.Query {
			q.Set(k, fmt.Sprintf("%v", v))
		}
		u.RawQuery = q.Encode()
	}
	return u, nil
}
