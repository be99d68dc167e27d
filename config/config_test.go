package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	data := `api:
  addr: ":9000"
provider:
  product: "AGILE-24-10-01"
  tariff_code: "E-1R-AGILE-24-10-01-C"
  timeout_seconds: 5
mqtt:
  enabled: true
  broker: "tcp://localhost:1883"
  topic: "home/schedule"
  retain: true
metrics:
  prometheus_enabled: true
  influx_enabled: false
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load error: %v", err)
	}
	checks := []struct {
		name string
		got  any
		want any
	}{
		{"api.addr", cfg.API.Addr, ":9000"},
		{"provider.product", cfg.Provider.Product, "AGILE-24-10-01"},
		{"provider.timeout", cfg.Provider.TimeoutSeconds, 5},
		{"provider.carbon_default", cfg.Provider.CarbonBaseURL, "https://api.carbonintensity.org.uk"},
		{"mqtt.broker", cfg.MQTT.Broker, "tcp://localhost:1883"},
		{"mqtt.topic", cfg.MQTT.Topic, "home/schedule"},
		{"mqtt.retain", cfg.MQTT.Retain, true},
		{"mqtt.client_id_default", cfg.MQTT.ClientID, "homeflex"},
		{"metrics.prometheus", cfg.Metrics.PrometheusEnabled, true},
		{"metrics.prometheus_addr_default", cfg.Metrics.PrometheusAddr, ":9090"},
	}
	for _, c := range checks {
		if c.got != c.want {
			t.Errorf("%s mismatch: %v", c.name, c.got)
		}
	}
}

func TestLoadEnvOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	if err := os.WriteFile(path, []byte(`{"api":{"addr":":9000"}}`), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("HF_API__ADDR", ":7070")
	t.Setenv("HF_PROVIDER__PRODUCT", "AGILE-BESPOKE")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load error: %v", err)
	}
	if cfg.API.Addr != ":7070" {
		t.Errorf("env override not applied: %s", cfg.API.Addr)
	}
	if cfg.Provider.Product != "AGILE-BESPOKE" {
		t.Errorf("nested env override not applied: %s", cfg.Provider.Product)
	}
}

func TestLoadRejectsUnknownFormat(t *testing.T) {
	if _, err := Load("config.toml"); err == nil {
		t.Error("expected error for unsupported format")
	}
}

func TestLoadRejectsEnabledMQTTWithoutBroker(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte("mqtt:\n  enabled: true\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Error("expected validation error")
	}
}

func TestDefaultIsRunnable(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
	if cfg.API.Addr == "" || cfg.Provider.OctopusBaseURL == "" {
		t.Error("defaults not applied")
	}
}
