// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

package config

import (
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths are tried in order when CONFIG_PATH is unset or
// points at a missing file.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/trackmatch/config.yaml",
	"/etc/trackmatch/config.yml",
}

// ConfigPathEnvVar names an explicit YAML config file.
const ConfigPathEnvVar = "CONFIG_PATH"

// DefaultConfig returns the built-in defaults without reading any source.
func DefaultConfig() *Config {
	return defaultConfig()
}

// defaultConfig is the bottom layer of every load.
func defaultConfig() *Config {
	return &Config{
		Dataset: DatasetConfig{
			Path:       "dataset_carreras_sintetico.csv",
			SampleSize: 10,
			SampleSeed: 42,
		},
		Database: DatabaseConfig{
			Path:      ":memory:",
			MaxMemory: "512MB",
			Threads:   0,
		},
		Recommend: RecommendConfig{
			DefaultTopN:     5,
			MaxTopN:         10,
			ExplanationSize: 3,
			BreakdownSize:   6,
			CacheEnabled:    true,
			CacheTTL:        5 * time.Minute,
			CacheMaxEntries: 1000,
		},
		Server: ServerConfig{
			Port:            8501,
			Host:            "0.0.0.0",
			Timeout:         30 * time.Second,
			ShutdownTimeout: 10 * time.Second,
			Environment:     "development",
		},
		Security: SecurityConfig{
			RateLimitReqs:     100,
			RateLimitWindow:   time.Minute,
			RateLimitDisabled: false,
			CORSOrigins:       []string{"*"},
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Caller: false,
		},
	}
}

// LoadWithKoanf builds a Config from three layers, later ones winning:
// built-in defaults, an optional YAML file, then environment variables.
// The merged result must pass Validate.
func LoadWithKoanf() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if path, ok := configFile(); ok {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	for _, path := range listKeys {
		if err := splitList(k, path); err != nil {
			return nil, err
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return &cfg, nil
}

func configFile() (string, bool) {
	candidates := DefaultConfigPaths
	if explicit := os.Getenv(ConfigPathEnvVar); explicit != "" {
		candidates = append([]string{explicit}, candidates...)
	}
	for _, path := range candidates {
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path, true
		}
	}
	return "", false
}

// listKeys are slice settings that arrive from the environment as one
// comma-separated string.
var listKeys = []string{"security.cors_origins"}

func splitList(k *koanf.Koanf, path string) error {
	raw, ok := k.Get(path).(string)
	if !ok {
		return nil
	}
	var items []string
	for _, item := range strings.Split(raw, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	if len(items) == 0 {
		return nil
	}
	if err := k.Set(path, items); err != nil {
		return fmt.Errorf("failed to set %s: %w", path, err)
	}
	return nil
}

// envSections binds every VAR of the form PREFIX_KEY to section.key.
var envSections = []struct {
	prefix  string
	section string
	keys    []string
}{
	{"dataset_", "dataset", []string{"path", "sample_size", "sample_seed", "reload_interval"}},
	{"duckdb_", "database", []string{"path", "max_memory", "threads"}},
	{"recommend_", "recommend", []string{
		"default_top_n", "max_top_n", "explanation_size", "breakdown_size",
		"cache_enabled", "cache_ttl", "cache_max_entries",
	}},
	{"http_", "server", []string{"port", "host", "timeout", "shutdown_timeout"}},
	{"log_", "logging", []string{"level", "format", "caller"}},
}

// envAliases are variables whose names do not follow their section.
var envAliases = map[string]string{
	"environment":         "server.environment",
	"rate_limit_requests": "security.rate_limit_reqs",
	"rate_limit_window":   "security.rate_limit_window",
	"disable_rate_limit":  "security.rate_limit_disabled",
	"cors_origins":        "security.cors_origins",
}

var envPaths = func() map[string]string {
	m := make(map[string]string, len(envAliases)+32)
	for name, path := range envAliases {
		m[name] = path
	}
	for _, s := range envSections {
		for _, key := range s.keys {
			m[s.prefix+key] = s.section + "." + key
		}
	}
	return m
}()

// envTransformFunc maps an environment variable name to its koanf path,
// e.g. RECOMMEND_CACHE_TTL to recommend.cache_ttl. Unknown names map to ""
// and are skipped by the provider.
func envTransformFunc(key string) string {
	return envPaths[strings.ToLower(key)]
}

func joinHostPort(host string, port int) string {
	return net.JoinHostPort(host, strconv.Itoa(port))
}
