// Copyright (c) 2026 Vince Veselosky and contributors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"os"
	"testing"
)

func setEnv(t *testing.T, key, value string) {
	t.Helper()
	if err := os.Setenv(key, value); err != nil {
		t.Fatalf("failed to set %s: %v", key, err)
	}
}

func TestLoad_Defaults(t *testing.T) {
	os.Clearenv()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.DBPath != "./data/commoncontent.db" {
		t.Errorf("DBPath = %q, want %q", cfg.DBPath, "./data/commoncontent.db")
	}
	if cfg.ServerHost != "localhost" {
		t.Errorf("ServerHost = %q, want %q", cfg.ServerHost, "localhost")
	}
	if cfg.ServerPort != 8000 {
		t.Errorf("ServerPort = %d, want %d", cfg.ServerPort, 8000)
	}
	if cfg.Env != "development" {
		t.Errorf("Env = %q, want %q", cfg.Env, "development")
	}
	if cfg.LangCode != "en-us" {
		t.Errorf("LangCode = %q, want %q", cfg.LangCode, "en-us")
	}
	if !cfg.IsDevelopment() {
		t.Error("IsDevelopment() = false, want true")
	}
	if cfg.UseRedisCache() {
		t.Error("UseRedisCache() = true, want false")
	}
	if cfg.RateLimitEnabled() {
		t.Error("RateLimitEnabled() = true, want false")
	}
}

func TestLoad_CustomValues(t *testing.T) {
	os.Clearenv()
	setEnv(t, "COMMONCONTENT_DB_PATH", "/custom/path.db")
	setEnv(t, "COMMONCONTENT_SERVER_HOST", "0.0.0.0")
	setEnv(t, "COMMONCONTENT_SERVER_PORT", "3000")
	setEnv(t, "COMMONCONTENT_ENV", "production")
	setEnv(t, "COMMONCONTENT_SITE_DOMAIN", "example.com")
	setEnv(t, "COMMONCONTENT_REDIS_URL", "redis://localhost:6379/0")
	setEnv(t, "COMMONCONTENT_RATE_LIMIT", "10")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.DBPath != "/custom/path.db" {
		t.Errorf("DBPath = %q", cfg.DBPath)
	}
	if got := cfg.ServerAddr(); got != "0.0.0.0:3000" {
		t.Errorf("ServerAddr() = %q", got)
	}
	if cfg.IsDevelopment() {
		t.Error("IsDevelopment() = true, want false")
	}
	if cfg.SiteDomain != "example.com" {
		t.Errorf("SiteDomain = %q", cfg.SiteDomain)
	}
	if !cfg.UseRedisCache() {
		t.Error("UseRedisCache() = false, want true")
	}
	if !cfg.RateLimitEnabled() {
		t.Error("RateLimitEnabled() = false, want true")
	}
}

func TestLoad_InvalidPort(t *testing.T) {
	os.Clearenv()
	setEnv(t, "COMMONCONTENT_SERVER_PORT", "70000")

	if _, err := Load(); err == nil {
		t.Error("Load() should reject an out-of-range port")
	}
}

func TestLoad_NegativeRateLimit(t *testing.T) {
	os.Clearenv()
	setEnv(t, "COMMONCONTENT_RATE_LIMIT", "-1")

	if _, err := Load(); err == nil {
		t.Error("Load() should reject a negative rate limit")
	}
}
