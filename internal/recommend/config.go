// Conventus - Event Discovery and Engagement Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/conventus

package recommend

import "fmt"

// Config contains the recommendation engine parameters.
type Config struct {
	// MaxResults bounds the length of a recommendation list.
	MaxResults int `json:"max_results" koanf:"max_results"`

	// FavoriteBoost is the score added when an event is in the user's
	// favorites set.
	FavoriteBoost float64 `json:"favorite_boost" koanf:"favorite_boost"`
}

// DefaultConfig returns production defaults.
func DefaultConfig() *Config {
	return &Config{
		MaxResults:    10,
		FavoriteBoost: 10,
	}
}

// Validate checks config invariants.
func (c *Config) Validate() error {
	if c.MaxResults <= 0 {
		return fmt.Errorf("max_results must be positive, got %d", c.MaxResults)
	}
	if c.FavoriteBoost < 0 {
		return fmt.Errorf("favorite_boost must be non-negative, got %f", c.FavoriteBoost)
	}
	return nil
}
