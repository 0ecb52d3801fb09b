// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

package recommend

import (
	"fmt"
	"time"

	"github.com/goccy/go-json"
)

// Config contains all configuration for the recommendation engine.
type Config struct {
	// Limits contains request limits.
	Limits LimitsConfig `json:"limits"`

	// Explanation controls how many drivers are reported.
	Explanation ExplanationConfig `json:"explanation"`

	// Cache contains result caching parameters.
	Cache CacheConfig `json:"cache"`
}

// LimitsConfig contains request limits.
type LimitsConfig struct {
	// DefaultTopN is used when a request does not specify top_n.
	// Default: 5.
	DefaultTopN int `json:"default_top_n"`

	// MaxTopN caps top_n before it is clamped to the number of tracks.
	// Default: 10.
	MaxTopN int `json:"max_top_n"`
}

// ExplanationConfig controls explanation sizes.
type ExplanationConfig struct {
	// Size is the number of drivers reported per result.
	// Default: 3.
	Size int `json:"size"`

	// BreakdownSize is the number of contributions reported for the top result.
	// Default: 6.
	BreakdownSize int `json:"breakdown_size"`
}

// CacheConfig contains caching parameters.
type CacheConfig struct {
	// Enabled controls whether result caching is active.
	// Default: true.
	Enabled bool `json:"enabled"`

	// TTL is the cache entry time-to-live.
	// Default: 5m.
	TTL time.Duration `json:"ttl"`

	// MaxEntries is the maximum number of cached results.
	// Default: 1000.
	MaxEntries int `json:"max_entries"`
}

// DefaultConfig returns a Config with production defaults.
func DefaultConfig() *Config {
	return &Config{
		Limits: LimitsConfig{
			DefaultTopN: 5,
			MaxTopN:     10,
		},
		Explanation: ExplanationConfig{
			Size:          DefaultExplanationSize,
			BreakdownSize: DefaultBreakdownSize,
		},
		Cache: CacheConfig{
			Enabled:    true,
			TTL:        5 * time.Minute,
			MaxEntries: 1000,
		},
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if c.Limits.DefaultTopN < 1 {
		return fmt.Errorf("limits.default_top_n must be positive, got %d", c.Limits.DefaultTopN)
	}
	if c.Limits.MaxTopN < 1 {
		return fmt.Errorf("limits.max_top_n must be positive, got %d", c.Limits.MaxTopN)
	}
	if c.Limits.DefaultTopN > c.Limits.MaxTopN {
		return fmt.Errorf("limits.default_top_n (%d) cannot exceed limits.max_top_n (%d)",
			c.Limits.DefaultTopN, c.Limits.MaxTopN)
	}

	if c.Explanation.Size < 1 || c.Explanation.Size > Dimensions {
		return fmt.Errorf("explanation.size must be in [1, %d], got %d", Dimensions, c.Explanation.Size)
	}
	if c.Explanation.BreakdownSize < 1 || c.Explanation.BreakdownSize > Dimensions {
		return fmt.Errorf("explanation.breakdown_size must be in [1, %d], got %d",
			Dimensions, c.Explanation.BreakdownSize)
	}

	if c.Cache.Enabled {
		if c.Cache.TTL <= 0 {
			return fmt.Errorf("cache.ttl must be positive when caching is enabled, got %v", c.Cache.TTL)
		}
		if c.Cache.MaxEntries < 1 {
			return fmt.Errorf("cache.max_entries must be positive when caching is enabled, got %d",
				c.Cache.MaxEntries)
		}
	}

	return nil
}

// Clone returns a deep copy of the configuration.
func (c *Config) Clone() *Config {
	// All nested structs hold value types only
	clone := *c
	return &clone
}

// MarshalJSON renders durations as strings.
func (c *Config) MarshalJSON() ([]byte, error) {
	type Alias Config
	return json.Marshal(&struct {
		*Alias
		Cache struct {
			Enabled    bool   `json:"enabled"`
			TTL        string `json:"ttl"`
			MaxEntries int    `json:"max_entries"`
		} `json:"cache"`
	}{
		Alias: (*Alias)(c),
		Cache: struct {
			Enabled    bool   `json:"enabled"`
			TTL        string `json:"ttl"`
			MaxEntries int    `json:"max_entries"`
		}{
			Enabled:    c.Cache.Enabled,
			TTL:        c.Cache.TTL.String(),
			MaxEntries: c.Cache.MaxEntries,
		},
	})
}
