package main

import (
	"os"
	"path/filepath"

	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v3"
)

// Config represents the promptkit configuration file
// (~/.config/promptkit/config.yaml). Pointer fields distinguish "not set"
// from zero values.
type Config struct {
	ConfigName    string `yaml:"config_name"`
	TokenizerJSON string `yaml:"tokenizer_json"`

	// Server
	ServerAddress     string `yaml:"server_address"`
	RequestsPerSecond *int64 `yaml:"requests_per_second"`
	Burst             *int64 `yaml:"burst"`

	// Output
	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"`
}

func configPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "promptkit", "config.yaml")
}

// applyTemplateConfig applies config file defaults to the shared template
// flags when the corresponding CLI flag was not explicitly set.
func applyTemplateConfig(c *cli.Command, cfg Config) {
	if cfg.ConfigName != "" && !c.IsSet("config") {
		configName = cfg.ConfigName
	}
	if cfg.TokenizerJSON != "" && !c.IsSet("tokenizer-json") {
		tokenizerJSONPath = cfg.TokenizerJSON
	}
	applyLogConfig(c, cfg)
}

// applyServeConfig applies config file defaults to serve command variables.
func applyServeConfig(c *cli.Command, cfg Config, addr *string, rps, burst *int64) {
	applyTemplateConfig(c, cfg)
	if cfg.ServerAddress != "" && !c.IsSet("addr") {
		*addr = cfg.ServerAddress
	}
	if cfg.RequestsPerSecond != nil && !c.IsSet("rps") {
		*rps = *cfg.RequestsPerSecond
	}
	if cfg.Burst != nil && !c.IsSet("burst") {
		*burst = *cfg.Burst
	}
}

func applyLogConfig(c *cli.Command, cfg Config) {
	if cfg.LogLevel != "" && !c.IsSet("log-level") {
		logLevel = cfg.LogLevel
	}
	if cfg.LogFormat != "" && !c.IsSet("log-format") {
		logFormat = cfg.LogFormat
	}
}

// LoadConfig reads the config file. Returns a zero Config if the file
// doesn't exist or fails to parse.
func LoadConfig() Config {
	path := configPath()
	if path == "" {
		return Config{}
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}
	}
	return cfg
}
