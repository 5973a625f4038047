package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Duration is a time.Duration that unmarshals from YAML strings like "10m".
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var raw string
	if err := value.Decode(&raw); err != nil {
		return err
	}

	parsed, err := time.ParseDuration(raw)
	if err != nil {
		return fmt.Errorf("parsing duration %q: %w", raw, err)
	}
	*d = Duration(parsed)

	return nil
}

// Std returns the wrapped time.Duration.
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

// Config holds all runtime settings. Every field has a default so an empty
// or missing optional field still yields a runnable configuration.
type Config struct {
	Port int `yaml:"port"`

	Upstream struct {
		Endpoint string   `yaml:"endpoint"`
		Host     string   `yaml:"host"`
		Timeout  Duration `yaml:"timeout"`
	} `yaml:"upstream"`

	RefreshInterval Duration `yaml:"refresh_interval"`

	// Moderators is the caller allow-list backing the admin authorizer.
	Moderators []string `yaml:"moderators"`

	// AdminToken gates the admin HTTP surface; the ADMIN_TOKEN environment
	// variable overrides the file value.
	AdminToken string `yaml:"admin_token"`

	// MergeOnRefresh preserves moderator overrides across refreshes instead
	// of the historical full replace.
	MergeOnRefresh bool `yaml:"merge_on_refresh"`

	// PinnedFirst orders pinned posts ahead of the rest in list projections.
	PinnedFirst bool `yaml:"pinned_first"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	cfg := &Config{
		Port:            8080,
		RefreshInterval: Duration(10 * time.Minute),
	}
	cfg.Upstream.Endpoint = "https://gql.hashnode.com"
	cfg.Upstream.Timeout = Duration(15 * time.Second)

	return cfg
}

// Load reads the YAML config at path, applying defaults for omitted fields.
// A missing file is not an error; the defaults are returned as-is.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		applyEnvOverrides(cfg)
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	if cfg.Port <= 0 {
		cfg.Port = 8080
	}
	if cfg.RefreshInterval <= 0 {
		cfg.RefreshInterval = Duration(10 * time.Minute)
	}
	if cfg.Upstream.Timeout <= 0 {
		cfg.Upstream.Timeout = Duration(15 * time.Second)
	}
	if cfg.Upstream.Endpoint == "" {
		cfg.Upstream.Endpoint = "https://gql.hashnode.com"
	}

	applyEnvOverrides(cfg)

	return cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	if token := os.Getenv("ADMIN_TOKEN"); token != "" {
		cfg.AdminToken = token
	}
}
