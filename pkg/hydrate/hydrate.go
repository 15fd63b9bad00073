// Package hydrate carries a router resolution from server-side rendering to
// the interactive session that takes the page over.
//
// The server encodes the Snapshot it rendered into a signed token embedded
// in the page. When the live session starts it resolves the same URL again
// and verifies that both sides agree on the route, the path parameters, and
// the query. A disagreement means the page the user sees was not produced by
// the router that will now drive it.
package hydrate

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"maps"
	"strings"

	"github.com/vmihailenco/msgpack/v5"

	verrors "github.com/vango-dev/vroute/internal/errors"
	"github.com/vango-dev/vroute/pkg/router"
)

var (
	// ErrInvalidFormat is returned for tokens that are not payload.signature.
	ErrInvalidFormat = errors.New("hydrate: invalid token format")

	// ErrSignatureInvalid is returned for tokens not signed with the key.
	ErrSignatureInvalid = errors.New("hydrate: signature verification failed")

	// ErrMismatch is returned by Verify when the resolutions differ.
	ErrMismatch = errors.New("hydrate: server and client resolutions differ")
)

// Payload is the serialized part of a Snapshot.
type Payload struct {
	Path    string            `msgpack:"u"`
	Pattern string            `msgpack:"p"`
	Params  map[string]string `msgpack:"a"`
	Search  map[string]string `msgpack:"s"`
}

// PayloadOf extracts the comparable resolution of snap. Host and scheme are
// left out: the server may see a different authority than the browser.
func PayloadOf(snap router.Snapshot) Payload {
	p := Payload{
		Pattern: snap.Pattern(),
		Params:  snap.Params,
		Search:  snap.Search,
	}
	if snap.URL != nil {
		p.Path = snap.URL.EscapedPath()
	}
	return p
}

// Equal reports whether p and o describe the same resolution.
func (p Payload) Equal(o Payload) bool {
	return p.Path == o.Path &&
		p.Pattern == o.Pattern &&
		maps.Equal(p.Params, o.Params) &&
		maps.Equal(p.Search, o.Search)
}

// Signer encodes and verifies tokens with an HMAC key.
type Signer struct {
	key []byte
}

// NewSigner creates a signer. Keys shorter than 32 bytes are stretched with
// SHA-256.
func NewSigner(key []byte) *Signer {
	if len(key) < 32 {
		h := sha256.Sum256(key)
		key = h[:]
	}
	return &Signer{key: key}
}

// Encode returns the signed token for snap.
func (s *Signer) Encode(snap router.Snapshot) (string, error) {
	packed, err := msgpack.Marshal(PayloadOf(snap))
	if err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(packed) + "." + s.sign(packed), nil
}

// Decode verifies the token's signature and returns its payload.
func (s *Signer) Decode(token string) (Payload, error) {
	data, sig, ok := strings.Cut(token, ".")
	if !ok {
		return Payload{}, ErrInvalidFormat
	}

	packed, err := base64.RawURLEncoding.DecodeString(data)
	if err != nil {
		return Payload{}, ErrInvalidFormat
	}
	want, err := base64.RawURLEncoding.DecodeString(sig)
	if err != nil {
		return Payload{}, ErrInvalidFormat
	}

	mac := hmac.New(sha256.New, s.key)
	mac.Write(packed)
	if !hmac.Equal(want, mac.Sum(nil)[:16]) {
		return Payload{}, ErrSignatureInvalid
	}

	var p Payload
	if err := msgpack.Unmarshal(packed, &p); err != nil {
		return Payload{}, ErrInvalidFormat
	}
	return p, nil
}

// Verify checks that token encodes the same resolution as snap. The error
// matches ErrMismatch (errors.Is) and carries code E104 when the resolutions
// differ.
func (s *Signer) Verify(token string, snap router.Snapshot) error {
	server, err := s.Decode(token)
	if err != nil {
		return verrors.New(verrors.CodeHydration).Wrap(err)
	}

	client := PayloadOf(snap)
	if !server.Equal(client) {
		return verrors.New(verrors.CodeHydration).
			WithDetailf("server rendered %s (%q), client resolved %s (%q)",
				server.Path, server.Pattern, client.Path, client.Pattern).
			Wrap(ErrMismatch)
	}
	return nil
}

// sign returns the truncated (128-bit) signature of data.
func (s *Signer) sign(data []byte) string {
	mac := hmac.New(sha256.New, s.key)
	mac.Write(data)
	return base64.RawURLEncoding.EncodeToString(mac.Sum(nil)[:16])
}
