package config

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/caarlos0/env/v11"

	"github.com/vango-dev/vroute/internal/errors"
)

const (
	// ConfigFileName is the name of the configuration file.
	ConfigFileName = "vroute.json"

	// DefaultAddr is the default listen address.
	DefaultAddr = ":3000"

	// DefaultAssetPrefix is the URL prefix assets are served under.
	DefaultAssetPrefix = "/assets/"

	// DefaultS3Region is used when a manifest bucket is set without a region.
	DefaultS3Region = "us-east-1"

	// minSecretLen is the shortest accepted hydration secret.
	minSecretLen = 16
)

// Config represents the complete vroute.json configuration.
type Config struct {
	// Addr is the listen address.
	Addr string `json:"addr,omitempty" env:"VROUTE_ADDR"`

	// BaseURL, when set, is the public origin of the server. It replaces
	// the scheme and host of incoming requests.
	BaseURL string `json:"baseURL,omitempty" env:"VROUTE_BASE_URL"`

	// Title is the document title.
	Title string `json:"title,omitempty" env:"VROUTE_TITLE"`

	// Lang is the document language.
	Lang string `json:"lang,omitempty" env:"VROUTE_LANG"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `json:"logLevel,omitempty" env:"VROUTE_LOG_LEVEL"`

	// SecretKey signs hydration tokens. Without it pages carry no token.
	SecretKey string `json:"-" env:"VROUTE_SECRET_KEY"`

	// DisableLive serves SSR pages without live sessions.
	DisableLive bool `json:"disableLive,omitempty" env:"VROUTE_DISABLE_LIVE"`

	// Pretty indents server-rendered HTML. Meant for development.
	Pretty bool `json:"pretty,omitempty" env:"VROUTE_PRETTY"`

	// Metrics exposes Prometheus metrics on /metrics.
	Metrics bool `json:"metrics,omitempty" env:"VROUTE_METRICS"`

	// Assets configures static assets and the build manifest.
	Assets AssetsConfig `json:"assets,omitempty"`

	// configPath stores the path where the config was loaded from.
	configPath string
}

// AssetsConfig configures static asset serving.
type AssetsConfig struct {
	// Dir is the directory served under Prefix.
	Dir string `json:"dir,omitempty" env:"VROUTE_ASSETS_DIR"`

	// Prefix is the URL prefix for assets.
	Prefix string `json:"prefix,omitempty" env:"VROUTE_ASSETS_PREFIX"`

	// Manifest is the path of the build manifest on disk.
	Manifest string `json:"manifest,omitempty" env:"VROUTE_MANIFEST"`

	// Scripts and StyleSheets are manifest entries added to every page.
	Scripts     []string `json:"scripts,omitempty" env:"VROUTE_SCRIPTS"`
	StyleSheets []string `json:"styleSheets,omitempty" env:"VROUTE_STYLESHEETS"`

	// S3 loads the manifest from a bucket instead of the local disk.
	S3 S3Config `json:"s3,omitempty"`
}

// S3Config locates a manifest object in S3 or an S3-compatible store.
type S3Config struct {
	Bucket    string `json:"bucket,omitempty" env:"VROUTE_MANIFEST_S3_BUCKET"`
	Key       string `json:"key,omitempty" env:"VROUTE_MANIFEST_S3_KEY"`
	Region    string `json:"region,omitempty" env:"VROUTE_S3_REGION"`
	Endpoint  string `json:"endpoint,omitempty" env:"VROUTE_S3_ENDPOINT"`
	PathStyle bool   `json:"pathStyle,omitempty" env:"VROUTE_S3_PATH_STYLE"`

	AccessKeyID     string `json:"-" env:"VROUTE_S3_ACCESS_KEY_ID"`
	SecretAccessKey string `json:"-" env:"VROUTE_S3_SECRET_ACCESS_KEY"`
	SessionToken    string `json:"-" env:"VROUTE_S3_SESSION_TOKEN"`
}

// Enabled reports whether the manifest comes from S3.
func (c S3Config) Enabled() bool {
	return c.Bucket != ""
}

// New creates a new Config with default values.
func New() *Config {
	return &Config{
		Addr:     DefaultAddr,
		Lang:     "en",
		LogLevel: "info",
		Metrics:  true,
		Assets: AssetsConfig{
			Prefix: DefaultAssetPrefix,
		},
	}
}

// Load builds the configuration from defaults, the file at path and the
// environment, in that order of precedence. An empty path skips the file.
func Load(path string) (*Config, error) {
	cfg := New()
	if path != "" {
		var err error
		if cfg, err = LoadFile(path); err != nil {
			return nil, err
		}
	}
	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFile reads configuration from the specified file path.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.New(errors.CodeConfig).
				WithDetail("No " + ConfigFileName + " found in " + filepath.Dir(path)).
				WithSuggestion("Create " + ConfigFileName + " or pass --config").
				Wrap(err)
		}
		return nil, errors.New(errors.CodeConfig).Wrap(err)
	}

	cfg := New()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, errors.New(errors.CodeConfig).
			WithDetail("Failed to parse " + path + ": " + err.Error()).
			WithSuggestion("Check that " + ConfigFileName + " is valid JSON").
			Wrap(err)
	}

	cfg.configPath = path
	cfg.applyDefaults()
	return cfg, nil
}

// ApplyEnv overrides fields from VROUTE_* environment variables. Unset
// variables leave the current value alone.
func (c *Config) ApplyEnv() error {
	if err := env.Parse(c); err != nil {
		return errors.New(errors.CodeConfig).WithDetail("parse env").Wrap(err)
	}
	return nil
}

// Path returns the path where the config was loaded from.
func (c *Config) Path() string {
	return c.configPath
}

func (c *Config) applyDefaults() {
	if c.Addr == "" {
		c.Addr = DefaultAddr
	}
	if c.Assets.Prefix == "" {
		c.Assets.Prefix = DefaultAssetPrefix
	}
	if c.Assets.S3.Enabled() && c.Assets.S3.Region == "" {
		c.Assets.S3.Region = DefaultS3Region
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if c.BaseURL != "" {
		u, err := url.Parse(c.BaseURL)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return errors.New(errors.CodeConfig).
				WithDetailf("baseURL %q must be an absolute URL", c.BaseURL)
		}
	}
	if _, err := c.Level(); err != nil {
		return errors.New(errors.CodeConfig).WithDetailf("logLevel %q", c.LogLevel).Wrap(err)
	}
	if c.SecretKey != "" && len(c.SecretKey) < minSecretLen {
		return errors.New(errors.CodeConfig).
			WithDetailf("VROUTE_SECRET_KEY must be at least %d bytes", minSecretLen)
	}
	s3c := c.Assets.S3
	if s3c.Enabled() && s3c.Key == "" {
		return errors.New(errors.CodeConfig).WithDetail("assets.s3.bucket is set without assets.s3.key")
	}
	if s3c.Enabled() && c.Assets.Manifest != "" {
		return errors.New(errors.CodeConfig).WithDetail("assets.manifest and assets.s3 are mutually exclusive")
	}
	if (s3c.AccessKeyID == "") != (s3c.SecretAccessKey == "") {
		return errors.New(errors.CodeConfig).WithDetail("S3 access key id and secret must be set together")
	}
	return nil
}

// ParsedBaseURL returns BaseURL parsed, or nil when unset.
func (c *Config) ParsedBaseURL() *url.URL {
	if c.BaseURL == "" {
		return nil
	}
	u, err := url.Parse(c.BaseURL)
	if err != nil {
		return nil
	}
	return u
}

// Level returns the slog level named by LogLevel.
func (c *Config) Level() (slog.Level, error) {
	var level slog.Level
	if c.LogLevel == "" {
		return slog.LevelInfo, nil
	}
	err := level.UnmarshalText([]byte(c.LogLevel))
	return level, err
}

// S3Client builds a client for the manifest bucket. Static credentials are
// used when configured; otherwise requests are sent anonymously.
func (c *Config) S3Client() *s3.Client {
	s3c := c.Assets.S3
	opts := s3.Options{
		Region:       s3c.Region,
		UsePathStyle: s3c.PathStyle,
	}
	if s3c.Endpoint != "" {
		opts.BaseEndpoint = aws.String(s3c.Endpoint)
	}
	if s3c.AccessKeyID != "" {
		opts.Credentials = aws.NewCredentialsCache(aws.CredentialsProviderFunc(
			func(context.Context) (aws.Credentials, error) {
				return aws.Credentials{
					AccessKeyID:     s3c.AccessKeyID,
					SecretAccessKey: s3c.SecretAccessKey,
					SessionToken:    s3c.SessionToken,
					Source:          "vroute-config",
				}, nil
			}))
	} else {
		opts.Credentials = aws.AnonymousCredentials{}
	}
	return s3.New(opts)
}

// Exists checks if a vroute.json file exists in the given directory.
func Exists(dir string) bool {
	_, err := os.Stat(filepath.Join(dir, ConfigFileName))
	return err == nil
}
