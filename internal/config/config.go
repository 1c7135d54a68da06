// Livetrack - Live Adventure Tracking and Visualization
// Copyright 2026 Livetrack contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/livetrack-io/livetrack

// Package config loads Livetrack configuration via Koanf v2 with
// layered sources (highest priority wins):
//
//  1. Environment variables
//  2. Config file (config.yaml)
//  3. Built-in defaults
package config

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// Config is the root configuration.
type Config struct {
	Server ServerConfig `koanf:"server"`
	Log    LogConfig    `koanf:"log"`
	Ingest IngestConfig `koanf:"ingest"`
	Feed   FeedConfig   `koanf:"feed"`
}

// ServerConfig configures the HTTP listener.
type ServerConfig struct {
	Host string `koanf:"host" validate:"required"`
	Port int    `koanf:"port" validate:"min=1,max=65535"`

	// TimeoutSeconds bounds read/write on the HTTP server.
	TimeoutSeconds int `koanf:"timeout_seconds" validate:"min=1"`

	// Environment is development or production; it drives log format
	// defaults and CORS strictness.
	Environment string `koanf:"environment" validate:"oneof=development production"`

	// CORSOrigins lists the allowed browser origins for the view
	// clients. "*" is accepted in development only.
	CORSOrigins []string `koanf:"cors_origins"`
}

// LogConfig configures the zerolog global logger.
type LogConfig struct {
	Level  string `koanf:"level" validate:"oneof=trace debug info warn error fatal panic disabled"`
	Format string `koanf:"format" validate:"oneof=json console"`
	Caller bool   `koanf:"caller"`
}

// IngestConfig bounds the transport-facing ingest endpoints.
type IngestConfig struct {
	// RateLimit is the per-IP request budget per minute on the
	// ingest routes. 0 disables limiting.
	RateLimit int `koanf:"rate_limit" validate:"min=0"`

	// MaxBatch caps the number of records accepted per request.
	MaxBatch int `koanf:"max_batch" validate:"min=1"`

	// MaxBodyBytes caps the request body size.
	MaxBodyBytes int64 `koanf:"max_body_bytes" validate:"min=1"`
}

// FeedConfig configures the development dummy feed.
type FeedConfig struct {
	Enabled bool `koanf:"enabled"`

	// RatePerSecond paces synthetic batch emission.
	RatePerSecond float64 `koanf:"rate_per_second" validate:"min=0"`

	// Subjects is how many synthetic athletes to simulate.
	Subjects int `koanf:"subjects" validate:"min=1"`
}

// defaultConfig returns a Config with all defaults applied. Defaults
// are loaded first, then overridden by config file and env vars.
func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:           "0.0.0.0",
			Port:           8172,
			TimeoutSeconds: 30,
			Environment:    "development",
			CORSOrigins:    []string{"*"},
		},
		Log: LogConfig{
			Level:  "info",
			Format: "json",
			Caller: false,
		},
		Ingest: IngestConfig{
			RateLimit:    600,
			MaxBatch:     1000,
			MaxBodyBytes: 4 << 20, // 4MB
		},
		Feed: FeedConfig{
			Enabled:       false,
			RatePerSecond: 0.5,
			Subjects:      3,
		},
	}
}

// Validate checks the configuration for structural and semantic
// errors. Called by Load; exported for tests and programmatic config.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	if c.Server.Environment == "production" {
		for _, origin := range c.Server.CORSOrigins {
			if origin == "*" {
				return fmt.Errorf("cors_origins: wildcard origin not allowed in production")
			}
		}
	}
	return nil
}
