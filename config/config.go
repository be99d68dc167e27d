// Package config loads the service configuration from a yaml or json file,
// with optional environment overrides (HF_API__ADDR=... maps to api.addr).
package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/axelenergy/homeflex/connectors"
	"github.com/axelenergy/homeflex/infra/metrics"
	"github.com/axelenergy/homeflex/infra/mqtt"
)

// APIConfig holds the HTTP API listener settings.
type APIConfig struct {
	Addr string `json:"addr"`
}

// SetDefaults applies sane defaults.
func (c *APIConfig) SetDefaults() {
	if c.Addr == "" {
		c.Addr = ":8080"
	}
}

type Config struct {
	API      APIConfig         `json:"api"`
	Provider connectors.Config `json:"provider"`
	MQTT     mqtt.Config       `json:"mqtt"`
	Metrics  metrics.Config    `json:"metrics"`
}

// SetDefaults applies defaults to every section.
func (c *Config) SetDefaults() {
	c.API.SetDefaults()
	c.Provider.SetDefaults()
	c.MQTT.SetDefaults()
	c.Metrics.SetDefaults()
}

// Validate checks every section.
func (c Config) Validate() error {
	return c.MQTT.Validate()
}

// Default returns a runnable configuration without reading any file. The
// public data sources need no credentials, so the zero config plus defaults
// is enough for one-shot runs.
func Default() *Config {
	var cfg Config
	cfg.SetDefaults()
	return &cfg
}

func Load(path string) (*Config, error) {
	k := koanf.New(".")
	ext := strings.ToLower(filepath.Ext(path))
	var parser koanf.Parser
	switch ext {
	case ".yaml", ".yml":
		parser = yaml.Parser()
	case ".json":
		parser = json.Parser()
	default:
		return nil, fmt.Errorf("unsupported config format: %s", ext)
	}
	if err := k.Load(file.Provider(path), parser); err != nil {
		return nil, err
	}
	// Optional environment overrides: HF_API__ADDR maps to api.addr. The
	// provider delim must match the dotted keys the callback produces.
	if err := k.Load(env.Provider("HF_", ".", func(s string) string {
		s = strings.TrimPrefix(strings.ToLower(s), "hf_")
		return strings.ReplaceAll(s, "__", ".")
	}), nil); err != nil {
		return nil, err
	}
	var cfg Config
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "json"}); err != nil {
		return nil, err
	}
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
