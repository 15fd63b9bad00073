package router

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"

	verrors "github.com/vango-dev/vroute/internal/errors"
	"github.com/vango-dev/vroute/pkg/env"
	"github.com/vango-dev/vroute/pkg/render"
	"github.com/vango-dev/vroute/pkg/vdom"
)

func testTable() *Table {
	return MustTable(
		Route{Pattern: "/", View: view("home")},
		Route{Pattern: "/about", View: view("about")},
		Route{Pattern: "/users/[id]", View: vdom.Func(func(ctx context.Context) *vdom.VNode {
			st := UseState(ctx)
			return vdom.Div(vdom.ID("user"), "user ", st.Params["id"])
		})},
	)
}

func renderString(t *testing.T, c vdom.Component) string {
	t.Helper()
	html, err := render.NewRenderer(render.RendererConfig{}).RenderToString(context.Background(), vdom.Fragment(c))
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	return html
}

func TestNewStartURL(t *testing.T) {
	mem := env.NewMemory(env.MustParse("https://app.example/about"))

	tests := []struct {
		name string
		opts []Option
		want string
	}{
		{
			name: "default base",
			want: "http://localhost/",
		},
		{
			name: "explicit url",
			opts: []Option{WithURL(env.MustParse("http://localhost/users/1")), WithEnvironment(mem)},
			want: "http://localhost/users/1",
		},
		{
			name: "relative string against neutral base",
			opts: []Option{WithURLString("/users/2?x=1")},
			want: "http://localhost/users/2?x=1",
		},
		{
			name: "relative string against environment origin",
			opts: []Option{WithURLString("/users/3"), WithEnvironment(mem)},
			want: "https://app.example/users/3",
		},
		{
			name: "environment current url",
			opts: []Option{WithEnvironment(mem)},
			want: "https://app.example/about",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := New(testTable(), tt.opts...)
			if err != nil {
				t.Fatalf("New: %v", err)
			}
			if got := r.State().URL.String(); got != tt.want {
				t.Errorf("URL = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestNewInvalidURLString(t *testing.T) {
	_, err := New(testTable(), WithURLString("http://[::1"))
	if !verrors.HasCode(err, verrors.CodeInvalidURL) {
		t.Fatalf("New error = %v, want %s", err, verrors.CodeInvalidURL)
	}
}

func TestRenderMatchedView(t *testing.T) {
	r, err := New(testTable(), WithURLString("/users/42"))
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	html := renderString(t, r)
	if html != `<div id="user">user 42</div>` {
		t.Errorf("got %q", html)
	}
}

func TestRenderUnmatchedStillRendersChildren(t *testing.T) {
	logger := vdom.Func(func(ctx context.Context) *vdom.VNode {
		return vdom.Pre("path ", UseState(ctx).URL.Path)
	})
	r, err := New(testTable(),
		WithURLString("/missing"),
		WithChildren(vdom.Footer("footer"), logger),
	)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	html := renderString(t, r)
	if html != "<footer>footer</footer><pre>path /missing</pre>" {
		t.Errorf("got %q", html)
	}
	if r.Snapshot().Matched() {
		t.Error("snapshot should be unmatched")
	}
}

func TestNavigateHistory(t *testing.T) {
	mem := env.NewMemory(env.MustParse("http://localhost/"))
	r, err := New(testTable(), WithEnvironment(mem))
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	if err := r.Navigate("/about"); err != nil {
		t.Fatalf("Navigate: %v", err)
	}
	if mem.Len() != 2 || r.Snapshot().Pattern() != "/about" {
		t.Fatalf("after push: len=%d pattern=%q", mem.Len(), r.Snapshot().Pattern())
	}

	if err := r.Navigate("/users/7?tab=posts", WithReplace(true)); err != nil {
		t.Fatalf("Navigate: %v", err)
	}
	if mem.Len() != 2 {
		t.Errorf("replace changed history length to %d", mem.Len())
	}
	if got := mem.CurrentURL().String(); got != "http://localhost/users/7?tab=posts" {
		t.Errorf("environment URL = %q", got)
	}

	st := r.State()
	if st.Params["id"] != "7" || st.Search["tab"] != "posts" {
		t.Errorf("state = %+v", st)
	}
}

func TestNavigateWithQuery(t *testing.T) {
	r, err := New(testTable())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := r.Navigate("/users/1?a=1", WithQuery(map[string]any{"page": 2})); err != nil {
		t.Fatalf("Navigate: %v", err)
	}

	st := r.State()
	if st.Search["a"] != "1" || st.Search["page"] != "2" {
		t.Errorf("search = %v", st.Search)
	}
}

func TestNavigateStaticResolvesAgainstCurrentURL(t *testing.T) {
	r, err := New(testTable(), WithURLString("/users/1"))
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	if err := r.Navigate("?q=2"); err != nil {
		t.Fatalf("Navigate: %v", err)
	}
	if got := r.State().URL.String(); got != "http://localhost/users/1?q=2" {
		t.Errorf("URL = %q", got)
	}

	if err := r.Navigate("../about"); err != nil {
		t.Fatalf("Navigate: %v", err)
	}
	if got := r.Snapshot().Pattern(); got != "/about" {
		t.Errorf("pattern = %q", got)
	}
}

func TestNavigateMalformedTarget(t *testing.T) {
	mem := env.NewMemory(env.MustParse("http://localhost/about"))
	r, err := New(testTable(), WithEnvironment(mem))
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	for _, target := range []string{"http://[::1", "/users/%zz", ":nope"} {
		err := r.Navigate(target)
		if !errors.Is(err, ErrMalformedTarget) {
			t.Errorf("Navigate(%q) = %v, want ErrMalformedTarget", target, err)
		}
	}
	if mem.Len() != 1 || r.Snapshot().Pattern() != "/about" {
		t.Errorf("failed navigation changed state: len=%d pattern=%q", mem.Len(), r.Snapshot().Pattern())
	}
}

func TestMountSyncsPopNavigation(t *testing.T) {
	mem := env.NewMemory(env.MustParse("http://localhost/"))
	r, err := New(testTable(), WithEnvironment(mem))
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	unmount := r.Mount()
	defer unmount()

	if err := r.Navigate("/users/9"); err != nil {
		t.Fatalf("Navigate: %v", err)
	}
	mem.Back()
	if got := r.Snapshot().Pattern(); got != "/" {
		t.Errorf("after back: pattern = %q", got)
	}

	mem.Forward()
	if got := r.State().Params["id"]; got != "9" {
		t.Errorf("after forward: id = %q", got)
	}

	// A third party writing history without a pop event is not observed.
	mem.PushExternal(env.MustParse("http://localhost/about"))
	if got := r.Snapshot().Pattern(); got != "/users/[id]" {
		t.Errorf("external push changed router state to %q", got)
	}

	// The next pop event resynchronizes.
	mem.PopTo(env.MustParse("http://localhost/about"))
	if got := r.Snapshot().Pattern(); got != "/about" {
		t.Errorf("after pop: pattern = %q", got)
	}
}

func TestUnmountRemovesListener(t *testing.T) {
	mem := env.NewMemory(env.MustParse("http://localhost/"))
	r, err := New(testTable(), WithEnvironment(mem))
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	unmount := r.Mount()
	if mem.Listeners() != 1 {
		t.Fatalf("listeners = %d, want 1", mem.Listeners())
	}
	unmount()
	unmount()
	if mem.Listeners() != 0 {
		t.Fatalf("listeners = %d after unmount, want 0", mem.Listeners())
	}

	if err := r.Navigate("/about"); err != nil {
		t.Fatalf("Navigate: %v", err)
	}
	mem.Back()
	if got := r.Snapshot().Pattern(); got != "/about" {
		t.Errorf("unmounted router followed pop to %q", got)
	}
}

func TestReentrantNavigateConverges(t *testing.T) {
	r, err := New(testTable())
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	r.Subscribe(func(s Snapshot) {
		if s.Pattern() == "/about" {
			if err := r.Navigate("/users/5"); err != nil {
				t.Errorf("nested Navigate: %v", err)
			}
		}
	})

	var seen []string
	r.Subscribe(func(s Snapshot) {
		seen = append(seen, s.URL.Path)
	})

	if err := r.Navigate("/about"); err != nil {
		t.Fatalf("Navigate: %v", err)
	}
	if got := strings.Join(seen, ","); got != "/users/5" {
		t.Errorf("second subscriber saw %q, want only the final state", got)
	}
	if got := r.State().Params["id"]; got != "5" {
		t.Errorf("final id = %q", got)
	}
}

func TestSubscribeUnsubscribe(t *testing.T) {
	r, err := New(testTable())
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	calls := 0
	unsubscribe := r.Subscribe(func(Snapshot) { calls++ })
	r.Navigate("/about")
	unsubscribe()
	unsubscribe()
	r.Navigate("/")

	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
}

func TestObserverKinds(t *testing.T) {
	mem := env.NewMemory(env.MustParse("http://localhost/"))

	var kinds []string
	r, err := New(testTable(),
		WithEnvironment(mem),
		WithObserver(ObserverFunc(func(kind NavigationKind, s Snapshot) {
			kinds = append(kinds, fmt.Sprintf("%s:%s", kind, s.URL.Path))
		})),
	)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer r.Mount()()

	r.Navigate("/about")
	r.Navigate("/users/1", WithReplace(true))
	mem.Back()

	want := "initial:/,push:/about,replace:/users/1,pop:/"
	if got := strings.Join(kinds, ","); got != want {
		t.Errorf("kinds = %q, want %q", got, want)
	}
}

func TestConcurrentRoutersAreIsolated(t *testing.T) {
	table := testTable()

	var wg sync.WaitGroup
	errs := make(chan string, 32)
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()

			r, err := New(table, WithURLString(fmt.Sprintf("/users/%d", i)))
			if err != nil {
				errs <- err.Error()
				return
			}
			html, err := render.NewRenderer(render.RendererConfig{}).
				RenderToString(context.Background(), vdom.Fragment(r))
			if err != nil {
				errs <- err.Error()
				return
			}
			if want := fmt.Sprintf("user %d<", i); !strings.Contains(html, want) {
				errs <- fmt.Sprintf("router %d rendered %q", i, html)
			}
		}(i)
	}
	wg.Wait()
	close(errs)

	for msg := range errs {
		t.Error(msg)
	}
}
