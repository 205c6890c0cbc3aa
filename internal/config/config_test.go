package config

import (
	"os"
	"testing"
	"time"
)

func validConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:               8080,
			ReadTimeout:        10 * time.Second,
			WriteTimeout:       10 * time.Second,
			IdleTimeout:        120 * time.Second,
			ShutDownTimeout:    5 * time.Second,
			RequestTimeout:     30 * time.Second,
			CORSAllowedOrigins: "*",
		},
		Cache: CacheConfig{
			SystemInfoTTL: 30 * time.Second,
			SweepInterval: 60 * time.Second,
		},
		Runtime: RuntimeConfig{
			Type:            "docker",
			StopTimeoutSecs: 10,
		},
		Misc: MiscConfig{
			GinMode:  "release",
			LogLevel: "info",
		},
	}
}

func TestConfig_Validate_Valid(t *testing.T) {
	cfg := validConfig()
	if err := cfg.validate(); err != nil {
		t.Errorf("expected valid config, got error: %v", err)
	}
}

func TestConfig_Validate_InvalidPort(t *testing.T) {
	tests := []struct {
		name string
		port int
	}{
		{"zero port", 0},
		{"negative port", -1},
		{"too high port", 65536},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			cfg.Server.Port = tt.port
			if err := cfg.validate(); err == nil {
				t.Errorf("expected error for port %d", tt.port)
			}
		})
	}
}

func TestConfig_Validate_NonPositiveTimeouts(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"read timeout", func(c *Config) { c.Server.ReadTimeout = 0 }},
		{"write timeout", func(c *Config) { c.Server.WriteTimeout = 0 }},
		{"idle timeout", func(c *Config) { c.Server.IdleTimeout = -time.Second }},
		{"shutdown timeout", func(c *Config) { c.Server.ShutDownTimeout = 0 }},
		{"request timeout", func(c *Config) { c.Server.RequestTimeout = 0 }},
		{"system info ttl", func(c *Config) { c.Cache.SystemInfoTTL = 0 }},
		{"sweep interval", func(c *Config) { c.Cache.SweepInterval = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)
			if err := cfg.validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestConfig_Validate_NegativeStopTimeout(t *testing.T) {
	cfg := validConfig()
	cfg.Runtime.StopTimeoutSecs = -1
	if err := cfg.validate(); err == nil {
		t.Error("expected error for negative stop timeout")
	}
}

func TestGetEnvOrDefault(t *testing.T) {
	t.Setenv("DOCKHAND_TEST_KEY", "from-env")
	if v := getEnvOrDefault("DOCKHAND_TEST_KEY", "fallback"); v != "from-env" {
		t.Errorf("expected env value, got %q", v)
	}

	os.Unsetenv("DOCKHAND_TEST_KEY")
	if v := getEnvOrDefault("DOCKHAND_TEST_KEY", "fallback"); v != "fallback" {
		t.Errorf("expected fallback, got %q", v)
	}
}

func TestGetEnvOrViperPort_Invalid(t *testing.T) {
	t.Setenv("DOCKHAND_TEST_PORT", "not-a-number")
	if _, err := getEnvOrViperPort("DOCKHAND_TEST_PORT", "server.port"); err == nil {
		t.Error("expected error for non-numeric port")
	}
}

func TestGetEnvOrViperPort_FromEnv(t *testing.T) {
	t.Setenv("DOCKHAND_TEST_PORT", "9090")
	port, err := getEnvOrViperPort("DOCKHAND_TEST_PORT", "server.port")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if port != 9090 {
		t.Errorf("expected 9090, got %d", port)
	}
}
