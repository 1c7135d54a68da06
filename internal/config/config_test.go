// Livetrack - Live Adventure Tracking and Visualization
// Copyright 2026 Livetrack contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/livetrack-io/livetrack

package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Server.Port != 8172 {
		t.Errorf("Port = %d, want 8172", cfg.Server.Port)
	}
	if cfg.Server.Environment != "development" {
		t.Errorf("Environment = %q, want development", cfg.Server.Environment)
	}
	if cfg.Log.Level != "info" || cfg.Log.Format != "json" {
		t.Errorf("log defaults = %q/%q, want info/json", cfg.Log.Level, cfg.Log.Format)
	}
	if cfg.Ingest.MaxBatch != 1000 {
		t.Errorf("MaxBatch = %d, want 1000", cfg.Ingest.MaxBatch)
	}
	if cfg.Feed.Enabled {
		t.Error("dummy feed must default to disabled")
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("HTTP_PORT", "9999")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("DUMMY_FEED", "true")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Server.Port != 9999 {
		t.Errorf("Port = %d, want 9999", cfg.Server.Port)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("Level = %q, want debug", cfg.Log.Level)
	}
	if !cfg.Feed.Enabled {
		t.Error("DUMMY_FEED=true did not enable the feed")
	}
}

func TestLoadIgnoresUnknownEnv(t *testing.T) {
	t.Setenv("PATH_MAX_WEIRDNESS", "yes")

	if _, err := Load(); err != nil {
		t.Fatalf("unrelated env vars must not break loading: %v", err)
	}
}

func TestLoadCORSOriginsCommaSplit(t *testing.T) {
	t.Setenv("CORS_ORIGINS", "https://a.example.com, https://b.example.com")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(cfg.Server.CORSOrigins) != 2 ||
		cfg.Server.CORSOrigins[0] != "https://a.example.com" ||
		cfg.Server.CORSOrigins[1] != "https://b.example.com" {
		t.Errorf("CORSOrigins = %v, want split pair", cfg.Server.CORSOrigins)
	}
}

func TestLoadConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := []byte("server:\n  port: 4242\nlog:\n  level: warn\n")
	if err := os.WriteFile(path, content, 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv(ConfigPathEnvVar, path)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Port != 4242 {
		t.Errorf("Port = %d, want 4242 from file", cfg.Server.Port)
	}
	if cfg.Log.Level != "warn" {
		t.Errorf("Level = %q, want warn from file", cfg.Log.Level)
	}
	// File values still sit under env overrides.
	if cfg.Server.Host != "0.0.0.0" {
		t.Errorf("Host = %q, want default retained", cfg.Server.Host)
	}
}

func TestEnvBeatsConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte("server:\n  port: 4242\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv(ConfigPathEnvVar, path)
	t.Setenv("HTTP_PORT", "5353")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Port != 5353 {
		t.Errorf("Port = %d, want env override 5353", cfg.Server.Port)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{name: "defaults valid", mutate: func(*Config) {}},
		{
			name:    "port out of range",
			mutate:  func(c *Config) { c.Server.Port = 70000 },
			wantErr: true,
		},
		{
			name:    "bad environment",
			mutate:  func(c *Config) { c.Server.Environment = "staging" },
			wantErr: true,
		},
		{
			name:    "bad log level",
			mutate:  func(c *Config) { c.Log.Level = "verbose" },
			wantErr: true,
		},
		{
			name:    "zero max batch",
			mutate:  func(c *Config) { c.Ingest.MaxBatch = 0 },
			wantErr: true,
		},
		{
			name: "wildcard cors in production",
			mutate: func(c *Config) {
				c.Server.Environment = "production"
				c.Server.CORSOrigins = []string{"*"}
			},
			wantErr: true,
		},
		{
			name: "explicit cors in production",
			mutate: func(c *Config) {
				c.Server.Environment = "production"
				c.Server.CORSOrigins = []string{"https://app.example.com"}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := defaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestEnvTransformFunc(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"HTTP_PORT", "server.port"},
		{"http_port", "server.port"},
		{"LOG_LEVEL", "log.level"},
		{"DUMMY_FEED", "feed.enabled"},
		{"HOME", ""},
		{"RANDOM_VAR", ""},
	}
	for _, tt := range tests {
		if got := envTransformFunc(tt.in); got != tt.want {
			t.Errorf("envTransformFunc(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
