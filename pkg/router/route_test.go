package router

import (
	"net/url"
	"reflect"
	"testing"

	"github.com/vango-dev/vroute/internal/errors"
	"github.com/vango-dev/vroute/pkg/vdom"
)

func view(name string) vdom.Component {
	return vdom.Static(vdom.Div(vdom.ID(name), name))
}

func mustURL(t *testing.T, raw string) *url.URL {
	t.Helper()
	u, err := url.Parse(raw)
	if err != nil {
		t.Fatalf("url.Parse(%q): %v", raw, err)
	}
	return u
}

func TestNewTableInvalidPattern(t *testing.T) {
	_, err := NewTable(
		Route{Pattern: "/", View: view("home")},
		Route{Pattern: "/users/:", View: view("user")},
	)
	if err == nil {
		t.Fatal("expected error for empty parameter name")
	}
	if !errors.HasCode(err, errors.CodeInvalidPattern) {
		t.Errorf("error %v does not carry %s", err, errors.CodeInvalidPattern)
	}
}

func TestTableFirstMatchWins(t *testing.T) {
	table := MustTable(
		Route{Pattern: "/todos/:id", View: view("todo")},
		Route{Pattern: "/todos/static", View: view("static")},
	)

	idx, params := table.Match("/todos/static")
	if idx != 0 {
		t.Fatalf("Match index = %d, want 0", idx)
	}
	if params["id"] != "static" {
		t.Errorf("params = %v", params)
	}

	if idx, _ := table.Match("/nowhere"); idx != -1 {
		t.Errorf("unmatched index = %d, want -1", idx)
	}
}

func TestTableHref(t *testing.T) {
	table := MustTable(Route{Pattern: "/users/[id]", View: view("user")})

	href, err := table.Href("/users/[id]", map[string]string{"id": "a b"})
	if err != nil {
		t.Fatalf("Href: %v", err)
	}
	if href != "/users/a%20b" {
		t.Errorf("Href = %q", href)
	}
	if _, err := table.Href("/missing", nil); err == nil {
		t.Error("expected error for unknown pattern")
	}
}

func TestDeriveState(t *testing.T) {
	table := MustTable(
		Route{Pattern: "/", View: view("home")},
		Route{Pattern: "/users/[id]", View: view("user")},
		Route{Pattern: "/todos/:id", View: view("todo")},
		Route{Pattern: "/todos/static", View: view("static")},
	)

	tests := []struct {
		name    string
		url     string
		pattern string
		params  map[string]string
		search  map[string]string
	}{
		{
			name:    "root",
			url:     "http://localhost/",
			pattern: "/",
			params:  map[string]string{},
			search:  map[string]string{},
		},
		{
			name:    "empty path is root",
			url:     "http://localhost",
			pattern: "/",
			params:  map[string]string{},
			search:  map[string]string{},
		},
		{
			name:    "bracket param",
			url:     "http://localhost/users/42",
			pattern: "/users/[id]",
			params:  map[string]string{"id": "42"},
			search:  map[string]string{},
		},
		{
			name:    "colon param",
			url:     "http://localhost/todos/7",
			pattern: "/todos/:id",
			params:  map[string]string{"id": "7"},
			search:  map[string]string{},
		},
		{
			name:    "first match wins over literal",
			url:     "http://localhost/todos/static",
			pattern: "/todos/:id",
			params:  map[string]string{"id": "static"},
			search:  map[string]string{},
		},
		{
			name:    "percent decoded param",
			url:     "http://localhost/users/%E2%9C%93",
			pattern: "/users/[id]",
			params:  map[string]string{"id": "✓"},
			search:  map[string]string{},
		},
		{
			name:    "encoded slash stays in one segment",
			url:     "http://localhost/users/a%2Fb",
			pattern: "/users/[id]",
			params:  map[string]string{"id": "a/b"},
			search:  map[string]string{},
		},
		{
			name:    "search",
			url:     "http://localhost/users/42?foo=bar",
			pattern: "/users/[id]",
			params:  map[string]string{"id": "42"},
			search:  map[string]string{"foo": "bar"},
		},
		{
			name:    "last search value wins",
			url:     "http://localhost/?tab=a&tab=b",
			pattern: "/",
			params:  map[string]string{},
			search:  map[string]string{"tab": "b"},
		},
		{
			name:    "semicolon stays in value",
			url:     "http://localhost/?a=1;b=2",
			pattern: "/",
			params:  map[string]string{},
			search:  map[string]string{"a": "1;b=2"},
		},
		{
			name:    "bad escape kept literally",
			url:     "http://localhost/?q=%zz&r=1&s=a+b%21",
			pattern: "/",
			params:  map[string]string{},
			search:  map[string]string{"q": "%zz", "r": "1", "s": "a b!"},
		},
		{
			name:    "key without value",
			url:     "http://localhost/?flag&&x=",
			pattern: "/",
			params:  map[string]string{},
			search:  map[string]string{"flag": "", "x": ""},
		},
		{
			name:    "unmatched keeps search",
			url:     "http://localhost/missing?q=1",
			pattern: "",
			params:  map[string]string{},
			search:  map[string]string{"q": "1"},
		},
		{
			name:    "extra segment does not match",
			url:     "http://localhost/users/42/edit",
			pattern: "",
			params:  map[string]string{},
			search:  map[string]string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			snap := DeriveState(mustURL(t, tt.url), table)

			if snap.Pattern() != tt.pattern {
				t.Errorf("Pattern() = %q, want %q", snap.Pattern(), tt.pattern)
			}
			if snap.Matched() != (tt.pattern != "") {
				t.Errorf("Matched() = %v", snap.Matched())
			}
			if (snap.View() == nil) == snap.Matched() {
				t.Errorf("View() presence does not follow Matched()")
			}
			if !reflect.DeepEqual(snap.Params, tt.params) {
				t.Errorf("Params = %v, want %v", snap.Params, tt.params)
			}
			if !reflect.DeepEqual(snap.Search, tt.search) {
				t.Errorf("Search = %v, want %v", snap.Search, tt.search)
			}
		})
	}
}

func TestDeriveStateDoesNotAliasInput(t *testing.T) {
	table := MustTable(Route{Pattern: "/", View: view("home")})
	u := mustURL(t, "http://localhost/")

	snap := DeriveState(u, table)
	u.Path = "/changed"
	if snap.URL.Path != "/" {
		t.Errorf("snapshot URL changed with input: %q", snap.URL.Path)
	}
}

func TestDeriveStateMatchesAcrossEnvironments(t *testing.T) {
	table := MustTable(
		Route{Pattern: "/", View: view("home")},
		Route{Pattern: "/users/[id]", View: view("user")},
	)

	// The server sees the request URL; the client reads its location.
	server := DeriveState(mustURL(t, "http://localhost/users/%E2%9C%93?x=1"), table)
	client := DeriveState(mustURL(t, "https://example.com/users/%E2%9C%93?x=1"), table)

	if server.Index != client.Index ||
		!reflect.DeepEqual(server.Params, client.Params) ||
		!reflect.DeepEqual(server.Search, client.Search) {
		t.Errorf("server %+v and client %+v resolutions differ", server, client)
	}
}

func TestStateClone(t *testing.T) {
	table := MustTable(Route{Pattern: "/users/[id]", View: view("user")})
	snap := DeriveState(mustURL(t, "http://localhost/users/1?a=b"), table)

	c := snap.State.Clone()
	c.Params["id"] = "2"
	c.Search["a"] = "z"
	c.URL.Path = "/x"

	if snap.Params["id"] != "1" || snap.Search["a"] != "b" || snap.URL.Path != "/users/1" {
		t.Errorf("clone shares state with original: %+v", snap.State)
	}
}

