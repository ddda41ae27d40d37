// Copyright 2026 The Kitchen Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/foodhall/kitchen/kitchen"
)

// Config is the complete configuration for a kitchen simulation run.
type Config struct {
	// OrdersSource is the path to the JSONC order record file (one
	// top-level array of records) the customer emitter reads from. May end in .zst or
	// .lz4 for a compressed source.
	OrdersSource string `yaml:"orders-source"`

	// CustomerWaitBetweenOrders is the inter-order delay the driver
	// waits between successive submissions.
	CustomerWaitBetweenOrders time.Duration `yaml:"customer-wait-between-orders"`

	// CourierMinimumWaitTime is the lower bound of courier wait sampling.
	CourierMinimumWaitTime time.Duration `yaml:"courier-minimum-wait-time"`

	// CourierMaximumWaitTime is the upper bound of courier wait sampling.
	CourierMaximumWaitTime time.Duration `yaml:"courier-maximum-wait-time"`

	// ShelfCapacity gives the per-shelf bound for the pick-up area.
	ShelfCapacity kitchen.Capacities `yaml:"shelf-capacity"`
}

// rawConfig mirrors Config but with millisecond integer fields, the
// wire format config files actually use.
type rawConfig struct {
	OrdersSource              string         `yaml:"orders-source"`
	CustomerWaitBetweenOrders int64          `yaml:"customer-wait-between-orders"`
	CourierMinimumWaitTime    int64          `yaml:"courier-minimum-wait-time"`
	CourierMaximumWaitTime    int64          `yaml:"courier-maximum-wait-time"`
	ShelfCapacity             map[string]int `yaml:"shelf-capacity"`
}

// Load loads configuration from the KITCHEN_CONFIG environment
// variable. This is the only way to load configuration without an
// explicit path; if KITCHEN_CONFIG is not set, Load fails.
func Load() (*Config, error) {
	path := os.Getenv("KITCHEN_CONFIG")
	if path == "" {
		return nil, fmt.Errorf("KITCHEN_CONFIG environment variable not set; " +
			"set it to the path of your kitchen.yaml config file, or use --config")
	}
	return LoadFile(path)
}

// LoadFile loads configuration from a specific file path and validates it.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	var raw rawConfig
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, &kitchen.ConfigError{Reason: fmt.Sprintf("parsing %s: %v", path, err)}
	}

	caps := make(kitchen.Capacities, len(raw.ShelfCapacity))
	for key, value := range raw.ShelfCapacity {
		caps[kitchen.ShelfKey(key)] = value
	}

	cfg := &Config{
		OrdersSource:              raw.OrdersSource,
		CustomerWaitBetweenOrders: time.Duration(raw.CustomerWaitBetweenOrders) * time.Millisecond,
		CourierMinimumWaitTime:    time.Duration(raw.CourierMinimumWaitTime) * time.Millisecond,
		CourierMaximumWaitTime:    time.Duration(raw.CourierMaximumWaitTime) * time.Millisecond,
		ShelfCapacity:             caps,
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the configuration invariants: all shelf capacities
// present and non-negative, courier min wait <= max wait, and a
// non-negative customer wait between orders.
func (c *Config) Validate() error {
	if c.OrdersSource == "" {
		return &kitchen.ConfigError{Reason: "orders-source is required"}
	}
	if err := c.ShelfCapacity.Validate(); err != nil {
		return err
	}
	if c.CourierMinimumWaitTime > c.CourierMaximumWaitTime {
		return &kitchen.ConfigError{Reason: "courier-minimum-wait-time exceeds courier-maximum-wait-time"}
	}
	if c.CustomerWaitBetweenOrders < 0 {
		return &kitchen.ConfigError{Reason: "customer-wait-between-orders must not be negative"}
	}
	return nil
}
