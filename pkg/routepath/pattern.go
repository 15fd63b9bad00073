package routepath

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"unicode/utf8"

	"github.com/coregx/coregex"
)

var (
	// ErrEmptyParam is returned for parameter segments without a name (":" or "[]").
	ErrEmptyParam = errors.New("parameter segment has no name")

	// ErrMissingParam is returned by Build when a parameter has no value.
	ErrMissingParam = errors.New("missing parameter value")

	// ErrInvalidPercentEscape is returned for malformed percent-encodings.
	ErrInvalidPercentEscape = errors.New("invalid percent escape sequence")
)

// paramCapture matches a single path segment.
const paramCapture = "([^/]+)"

// Segment is one compiled pattern segment.
type Segment struct {
	// Literal is the verbatim text of a literal segment.
	Literal string

	// Param is the parameter name of a parameter segment.
	Param string
}

// IsParam reports whether the segment binds a parameter.
func (s Segment) IsParam() bool {
	return s.Param != ""
}

// Pattern is a compiled path pattern. It is immutable and safe for
// concurrent use.
type Pattern struct {
	source   string
	segments []Segment
	params   []string
	re       *coregex.Regex
}

// Compile parses a pattern into its segments and builds the anchored matcher.
func Compile(pattern string) (*Pattern, error) {
	parts := strings.Split(pattern, "/")
	p := &Pattern{
		source:   pattern,
		segments: make([]Segment, 0, len(parts)),
	}

	exprs := make([]string, 0, len(parts))
	for _, part := range parts {
		name, isParam := paramName(part)
		if !isParam {
			p.segments = append(p.segments, Segment{Literal: part})
			exprs = append(exprs, coregex.QuoteMeta(part))
			continue
		}
		if name == "" {
			return nil, fmt.Errorf("compile %q: %w", pattern, ErrEmptyParam)
		}
		p.segments = append(p.segments, Segment{Param: name})
		p.params = append(p.params, name)
		exprs = append(exprs, paramCapture)
	}

	re, err := coregex.Compile("^" + strings.Join(exprs, "/") + "$")
	if err != nil {
		return nil, fmt.Errorf("compile %q: %w", pattern, err)
	}
	p.re = re
	return p, nil
}

// MustCompile is like Compile but panics if the pattern is invalid.
func MustCompile(pattern string) *Pattern {
	p, err := Compile(pattern)
	if err != nil {
		panic(err)
	}
	return p
}

// paramName reports whether segment declares a parameter and returns its name.
func paramName(segment string) (string, bool) {
	if strings.HasPrefix(segment, ":") {
		return segment[1:], true
	}
	if len(segment) >= 2 && segment[0] == '[' && segment[len(segment)-1] == ']' {
		return segment[1 : len(segment)-1], true
	}
	return "", false
}

// Match matches pathname, which must be in its escaped form (as produced by
// url.URL.EscapedPath), against the pattern. It returns the decoded
// parameters on success. A parameter value with a malformed escape does not
// match.
func (p *Pattern) Match(pathname string) (map[string]string, bool) {
	m := p.re.FindStringSubmatch(pathname)
	if m == nil {
		return nil, false
	}

	params := make(map[string]string, len(p.params))
	for i, name := range p.params {
		value, err := DecodeSegment(m[i+1])
		if err != nil {
			return nil, false
		}
		params[name] = value
	}
	return params, true
}

// Build fills the pattern's parameters and returns the escaped path.
func (p *Pattern) Build(params map[string]string) (string, error) {
	parts := make([]string, len(p.segments))
	for i, seg := range p.segments {
		if !seg.IsParam() {
			parts[i] = seg.Literal
			continue
		}
		value, ok := params[seg.Param]
		if !ok || value == "" {
			return "", fmt.Errorf("build %q: %w: %s", p.source, ErrMissingParam, seg.Param)
		}
		parts[i] = url.PathEscape(value)
	}
	return strings.Join(parts, "/"), nil
}

// String returns the source pattern.
func (p *Pattern) String() string {
	return p.source
}

// Params returns the parameter names in left-to-right order.
func (p *Pattern) Params() []string {
	out := make([]string, len(p.params))
	copy(out, p.params)
	return out
}

// Segments returns the compiled segments.
func (p *Pattern) Segments() []Segment {
	out := make([]Segment, len(p.segments))
	copy(out, p.segments)
	return out
}

// DecodeSegment percent-decodes a single path segment. Encoded slashes are
// decoded like any other byte; the result must be valid UTF-8.
func DecodeSegment(segment string) (string, error) {
	decoded, err := url.PathUnescape(segment)
	if err != nil {
		return "", ErrInvalidPercentEscape
	}
	if !utf8.ValidString(decoded) {
		return "", ErrInvalidPercentEscape
	}
	return decoded, nil
}
