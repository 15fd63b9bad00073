package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
	"testing"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		code    string
		wantMsg string
		wantCat Category
	}{
		{
			name:    "no router",
			code:    CodeNoRouter,
			wantMsg: "Router accessor used outside a router",
			wantCat: CategoryUsage,
		},
		{
			name:    "malformed target",
			code:    CodeMalformedTarget,
			wantMsg: "Malformed navigation target",
			wantCat: CategoryUsage,
		},
		{
			name:    "hydration",
			code:    CodeHydration,
			wantMsg: "Hydration mismatch",
			wantCat: CategoryHydration,
		},
		{
			name:    "unknown error code",
			code:    "E999",
			wantMsg: "Unknown error",
			wantCat: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := New(tt.code)
			if err.Message != tt.wantMsg {
				t.Errorf("Message = %q, want %q", err.Message, tt.wantMsg)
			}
			if err.Category != tt.wantCat {
				t.Errorf("Category = %q, want %q", err.Category, tt.wantCat)
			}
			if err.Code != tt.code {
				t.Errorf("Code = %q, want %q", err.Code, tt.code)
			}
		})
	}
}

func TestErrorString(t *testing.T) {
	cause := stderrors.New("parse failure")
	err := New(CodeMalformedTarget).WithDetail(`target "::"`).Wrap(cause)

	want := `E101: Malformed navigation target: target "::": parse failure`
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
	if !stderrors.Is(err, cause) {
		t.Error("errors.Is did not find wrapped cause")
	}
}

func TestHasCode(t *testing.T) {
	inner := New(CodeInvalidPattern)
	outer := fmt.Errorf("building table: %w", New(CodeConfig).Wrap(inner))

	if !HasCode(outer, CodeConfig) {
		t.Error("HasCode missed outer code")
	}
	if !HasCode(outer, CodeInvalidPattern) {
		t.Error("HasCode missed nested code")
	}
	if HasCode(outer, CodeNoRouter) {
		t.Error("HasCode matched absent code")
	}
	if HasCode(stderrors.New("plain"), CodeNoRouter) {
		t.Error("HasCode matched plain error")
	}
}

func TestIsMatchesCode(t *testing.T) {
	sentinel := New(CodeMalformedTarget)
	err := fmt.Errorf("navigate: %w", New(CodeMalformedTarget).WithDetail("x"))

	if !stderrors.Is(err, sentinel) {
		t.Error("errors.Is should match errors with the same code")
	}
	if stderrors.Is(err, New(CodeNoRouter)) {
		t.Error("errors.Is matched a different code")
	}
}

func TestFormat(t *testing.T) {
	DisableColors()
	defer func() { colorEnabled = true }()

	err := New(CodeInvalidURL).
		WithDetail(`"http://[::1" cannot be parsed`).
		Wrap(stderrors.New("missing ']' in host"))

	out := err.Format()
	for _, want := range []string{
		"ERROR E103: Invalid router URL",
		`"http://[::1" cannot be parsed`,
		"Cause: missing ']' in host",
		"Hint: Pass an absolute URL",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("Format() missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "\033[") {
		t.Errorf("Format() kept colors after DisableColors:\n%s", out)
	}
}

func TestFprint(t *testing.T) {
	DisableColors()
	defer func() { colorEnabled = true }()

	tests := []struct {
		name string
		err  error
		want string
	}{
		{"coded", fmt.Errorf("serve: %w", New(CodeConfig).WithDetail("base URL")), "ERROR E106: Invalid configuration"},
		{"plain", stderrors.New("boom"), "ERROR: boom"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var b strings.Builder
			Fprint(&b, tt.err)
			if !strings.Contains(b.String(), tt.want) {
				t.Errorf("Fprint() = %q, want %q", b.String(), tt.want)
			}
		})
	}
}

func TestWrapText(t *testing.T) {
	lines := wrapText("one two three four five six", 10)
	for _, line := range lines {
		if len(line) > 10 {
			t.Errorf("line %q longer than 10", line)
		}
	}
	if wrapText("", 10) != nil {
		t.Error("wrapText(\"\") should be nil")
	}
}
