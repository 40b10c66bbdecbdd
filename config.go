package comfygraph

import (
	"context"
	"fmt"

	"github.com/viant/afs"
	"gopkg.in/yaml.v3"
)

// Config is a serialisable representation of the service configuration. It
// can be populated from JSON or YAML. The zero-value is useful; all nested
// fields inherit their package defaults.
type Config struct {
	Server  ServerConfig  `json:"server" yaml:"server"`
	Backend BackendConfig `json:"backend" yaml:"backend"`
	Storage StorageConfig `json:"storage" yaml:"storage"`
	Log     LogConfig     `json:"log" yaml:"log"`
	Tracing TracingConfig `json:"tracing" yaml:"tracing"`
}

type ServerConfig struct {
	Addr string `json:"addr" yaml:"addr"`
}

type BackendConfig struct {
	// URL of the ComfyUI instance, e.g. http://localhost:8188.
	URL string `json:"url" yaml:"url"`
	// TemplateDir is the base URL holding named prompt graph templates.
	TemplateDir string `json:"templateDir" yaml:"templateDir"`
	// Secret locates an optional authentication secret resolved via scy.
	Secret SecretConfig `json:"secret" yaml:"secret"`
}

type SecretConfig struct {
	SourceURL string `json:"sourceURL" yaml:"sourceURL"`
	Key       string `json:"key" yaml:"key"`
}

// StorageConfig selects the workflow document store. When PostgresDSN is
// set documents are kept in a JSONB table; otherwise they are files
// addressed by URL.
type StorageConfig struct {
	PostgresDSN string `json:"postgresDSN" yaml:"postgresDSN"`
}

type LogConfig struct {
	Capacity int `json:"capacity" yaml:"capacity"`
}

type TracingConfig struct {
	Enabled    bool   `json:"enabled" yaml:"enabled"`
	OutputFile string `json:"outputFile" yaml:"outputFile"`
}

// DefaultConfig returns a Config populated with the package defaults.
// Callers may modify the returned struct before passing it to New.
func DefaultConfig() *Config {
	return &Config{
		Server:  ServerConfig{Addr: ":8080"},
		Backend: BackendConfig{URL: "http://localhost:8188", TemplateDir: "workflows"},
		Log:     LogConfig{Capacity: 1000},
	}
}

// Validate returns an error describing invalid settings or nil.
func (c *Config) Validate() error {
	if c == nil {
		return nil
	}
	if c.Server.Addr == "" {
		return fmt.Errorf("server.addr must not be empty")
	}
	if c.Log.Capacity < 0 {
		return fmt.Errorf("log.capacity must be >= 0")
	}
	return nil
}

// LoadConfig reads a YAML configuration document from the given URL.
func LoadConfig(ctx context.Context, URL string) (*Config, error) {
	fs := afs.New()
	data, err := fs.DownloadWithURL(ctx, URL)
	if err != nil {
		return nil, fmt.Errorf("failed to load config from %v: %w", URL, err)
	}
	config := DefaultConfig()
	if err = yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("invalid config at %v: %w", URL, err)
	}
	if err = config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}
