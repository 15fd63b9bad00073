package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/vango-dev/vroute/internal/errors"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), ConfigFileName)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestNew(t *testing.T) {
	cfg := New()

	if cfg.Addr != DefaultAddr {
		t.Errorf("Addr = %q, want %q", cfg.Addr, DefaultAddr)
	}
	if cfg.Assets.Prefix != DefaultAssetPrefix {
		t.Errorf("Assets.Prefix = %q, want %q", cfg.Assets.Prefix, DefaultAssetPrefix)
	}
	if !cfg.Metrics {
		t.Error("Metrics should default to true")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config invalid: %v", err)
	}
}

func TestLoadFile(t *testing.T) {
	path := writeConfig(t, `{
  "addr": ":8080",
  "baseURL": "https://app.example.com",
  "title": "Demo",
  "metrics": false,
  "assets": {
    "manifest": "dist/manifest.json",
    "scripts": ["app.js"]
  }
}
`)

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if cfg.Addr != ":8080" || cfg.Title != "Demo" || cfg.Metrics {
		t.Errorf("cfg = %+v", cfg)
	}
	if cfg.Assets.Prefix != DefaultAssetPrefix {
		t.Errorf("Assets.Prefix = %q, want default", cfg.Assets.Prefix)
	}
	if len(cfg.Assets.Scripts) != 1 || cfg.Assets.Scripts[0] != "app.js" {
		t.Errorf("Assets.Scripts = %v", cfg.Assets.Scripts)
	}
	if cfg.Path() != path {
		t.Errorf("Path() = %q", cfg.Path())
	}
	if u := cfg.ParsedBaseURL(); u == nil || u.Host != "app.example.com" {
		t.Errorf("ParsedBaseURL() = %v", u)
	}
}

func TestLoadFileErrors(t *testing.T) {
	if _, err := LoadFile(filepath.Join(t.TempDir(), ConfigFileName)); !errors.HasCode(err, errors.CodeConfig) {
		t.Errorf("missing file error = %v, want E106", err)
	}
	if _, err := LoadFile(writeConfig(t, `{"addr":`)); !errors.HasCode(err, errors.CodeConfig) {
		t.Errorf("bad json error = %v, want E106", err)
	}
}

func TestEnvOverridesFile(t *testing.T) {
	path := writeConfig(t, `{"addr": ":8080", "title": "File"}`)
	t.Setenv("VROUTE_ADDR", ":9090")
	t.Setenv("VROUTE_SECRET_KEY", "0123456789abcdef")
	t.Setenv("VROUTE_SCRIPTS", "a.js,b.js")
	t.Setenv("VROUTE_METRICS", "false")
	t.Setenv("VROUTE_PRETTY", "true")
	t.Setenv("VROUTE_MANIFEST_S3_BUCKET", "builds")
	t.Setenv("VROUTE_MANIFEST_S3_KEY", "web/manifest.json")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Addr != ":9090" {
		t.Errorf("Addr = %q, want env value", cfg.Addr)
	}
	if cfg.Title != "File" {
		t.Errorf("Title = %q, want file value", cfg.Title)
	}
	if cfg.SecretKey != "0123456789abcdef" {
		t.Errorf("SecretKey not read from env")
	}
	if len(cfg.Assets.Scripts) != 2 || cfg.Assets.Scripts[1] != "b.js" {
		t.Errorf("Scripts = %v", cfg.Assets.Scripts)
	}
	if cfg.Metrics {
		t.Error("Metrics should be disabled by env")
	}
	if !cfg.Pretty {
		t.Error("Pretty should be enabled by env")
	}
	if !cfg.Assets.S3.Enabled() || cfg.Assets.S3.Region != DefaultS3Region {
		t.Errorf("S3 = %+v", cfg.Assets.S3)
	}
}

func TestLoadWithoutFile(t *testing.T) {
	t.Setenv("VROUTE_LOG_LEVEL", "debug")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	level, err := cfg.Level()
	if err != nil || level != slog.LevelDebug {
		t.Errorf("Level() = %v, %v", level, err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"relative base url", func(c *Config) { c.BaseURL = "/app" }},
		{"bad log level", func(c *Config) { c.LogLevel = "loud" }},
		{"short secret", func(c *Config) { c.SecretKey = "short" }},
		{"bucket without key", func(c *Config) { c.Assets.S3.Bucket = "b" }},
		{"manifest and s3", func(c *Config) {
			c.Assets.Manifest = "m.json"
			c.Assets.S3.Bucket = "b"
			c.Assets.S3.Key = "k"
		}},
		{"half credentials", func(c *Config) { c.Assets.S3.AccessKeyID = "AKID" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := New()
			tt.mutate(cfg)
			if err := cfg.Validate(); !errors.HasCode(err, errors.CodeConfig) {
				t.Errorf("Validate() = %v, want E106", err)
			}
		})
	}
}

func TestS3Client(t *testing.T) {
	cfg := New()
	cfg.Assets.S3 = S3Config{
		Bucket:          "builds",
		Key:             "manifest.json",
		Region:          "eu-west-1",
		Endpoint:        "http://localhost:9000",
		PathStyle:       true,
		AccessKeyID:     "AKID",
		SecretAccessKey: "SECRET",
	}

	opts := cfg.S3Client().Options()
	if opts.Region != "eu-west-1" || !opts.UsePathStyle {
		t.Errorf("options = %+v", opts)
	}
	if opts.BaseEndpoint == nil || *opts.BaseEndpoint != "http://localhost:9000" {
		t.Errorf("BaseEndpoint = %v", opts.BaseEndpoint)
	}
	creds, err := opts.Credentials.Retrieve(t.Context())
	if err != nil || creds.AccessKeyID != "AKID" {
		t.Errorf("credentials = %+v, %v", creds, err)
	}
}

func TestExists(t *testing.T) {
	dir := t.TempDir()
	if Exists(dir) {
		t.Error("Exists on empty dir")
	}
	writeConfigIn(t, dir)
	if !Exists(dir) {
		t.Error("Exists after writing config")
	}
}

func writeConfigIn(t *testing.T, dir string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, ConfigFileName), []byte("{}"), 0o644); err != nil {
		t.Fatal(err)
	}
}
