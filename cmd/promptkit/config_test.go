package main

import (
	"testing"

	"gopkg.in/yaml.v3"
)

func TestConfigYAML(t *testing.T) {
	t.Parallel()

	raw := []byte(`
config_name: openchat_v2
tokenizer_json: /models/tokenizer.json
server_address: 0.0.0.0:9090
requests_per_second: 20
log_level: debug
`)
	var cfg Config
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if cfg.ConfigName != "openchat_v2" {
		t.Fatalf("config_name: got %q", cfg.ConfigName)
	}
	if cfg.ServerAddress != "0.0.0.0:9090" {
		t.Fatalf("server_address: got %q", cfg.ServerAddress)
	}
	if cfg.RequestsPerSecond == nil || *cfg.RequestsPerSecond != 20 {
		t.Fatalf("requests_per_second: got %v", cfg.RequestsPerSecond)
	}
	if cfg.Burst != nil {
		t.Fatalf("burst should stay unset, got %v", cfg.Burst)
	}
	if cfg.LogLevel != "debug" {
		t.Fatalf("log_level: got %q", cfg.LogLevel)
	}
}

func TestMaskString(t *testing.T) {
	t.Parallel()

	got := maskString([]bool{false, false, true, true, false})
	if got != "..##." {
		t.Fatalf("maskString: got %q", got)
	}
	if maskString(nil) != "" {
		t.Fatalf("empty mask should render empty string")
	}
}
