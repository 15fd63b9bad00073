// Package assets resolves fingerprinted asset paths from the build manifest.
//
// The asset pipeline runs outside this module. It writes a manifest.json
// mapping source asset names to their fingerprinted versions:
//
//	{
//	  "app.js": "app.a1b2c3d4.min.js",
//	  "styles.css": "styles.e5f6g7h8.css"
//	}
//
// The manifest is loaded once at startup, from disk or from S3, and is
// read-only afterwards:
//
//	manifest, err := assets.Load("dist/manifest.json")
//	resolver := assets.NewResolver(manifest, "/assets/")
//	resolver.Asset("app.js") // "/assets/app.a1b2c3d4.min.js"
package assets

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// Manifest maps source asset paths to fingerprinted paths. It is immutable
// and safe for concurrent use.
type Manifest struct {
	entries map[string]string
}

// NewManifest creates a manifest from entries. The map is copied.
func NewManifest(entries map[string]string) *Manifest {
	m := &Manifest{entries: make(map[string]string, len(entries))}
	for k, v := range entries {
		m.entries[k] = v
	}
	return m
}

// Parse decodes a manifest from its JSON form: {"source.js": "source.abc123.js"}.
func Parse(data []byte) (*Manifest, error) {
	var entries map[string]string
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("assets: parse manifest: %w", err)
	}
	return &Manifest{entries: entries}, nil
}

// Load reads a manifest file.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// GetObjectAPI is the part of the S3 client LoadS3 uses. *s3.Client
// implements it.
type GetObjectAPI interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// LoadS3 reads a manifest object from S3, for deployments that publish the
// manifest next to the assets in a bucket.
func LoadS3(ctx context.Context, client GetObjectAPI, bucket, key string) (*Manifest, error) {
	out, err := client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, fmt.Errorf("assets: get s3://%s/%s: %w", bucket, key, err)
	}
	defer out.Body.Close()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, fmt.Errorf("assets: read s3://%s/%s: %w", bucket, key, err)
	}
	return Parse(data)
}

// Resolve returns the fingerprinted path for the given source path.
// If not found, returns the original path unchanged.
func (m *Manifest) Resolve(source string) string {
	if resolved, ok := m.entries[source]; ok {
		return resolved
	}
	return source
}

// Has returns true if the manifest contains the given source path.
func (m *Manifest) Has(source string) bool {
	_, ok := m.entries[source]
	return ok
}

// Len returns the number of entries in the manifest.
func (m *Manifest) Len() int {
	return len(m.entries)
}

// All returns a copy of all manifest entries.
func (m *Manifest) All() map[string]string {
	result := make(map[string]string, len(m.entries))
	for k, v := range m.entries {
		result[k] = v
	}
	return result
}
