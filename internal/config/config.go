package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/bassista/dockhand/internal/logger"
	"github.com/fsnotify/fsnotify"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// ServerConfig holds the HTTP server settings.
type ServerConfig struct {
	Port               int
	ReadTimeout        time.Duration
	WriteTimeout       time.Duration
	IdleTimeout        time.Duration
	ShutDownTimeout    time.Duration
	RequestTimeout     time.Duration
	CORSAllowedOrigins string
}

// CacheConfig holds the response cache settings.
type CacheConfig struct {
	SystemInfoTTL time.Duration
	SweepInterval time.Duration
}

// RuntimeConfig holds the container runtime settings.
type RuntimeConfig struct {
	Type            string
	StopTimeoutSecs int
}

// MiscConfig holds settings that don't belong anywhere else.
type MiscConfig struct {
	GinMode  string
	LogLevel string
}

type Config struct {
	Server  ServerConfig
	Cache   CacheConfig
	Runtime RuntimeConfig
	Misc    MiscConfig
}

// LoadConfig reads configuration from .env, config.yaml and environment
// variables (DOCKHAND_ prefix overrides file values). It also starts a
// watcher on the config file so the log level can be adjusted at runtime.
func LoadConfig() (*Config, error) {
	// .env is optional; ignore a missing file
	_ = godotenv.Load()

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(getEnvOrDefault("DOCKHAND_CONFIG_PATH", "./config"))

	// Defaults to allow running without a config file
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.read_timeout", "10s")
	viper.SetDefault("server.write_timeout", "10s")
	viper.SetDefault("server.idle_timeout", "120s")
	viper.SetDefault("server.shutdown_timeout", "5s")
	viper.SetDefault("server.request_timeout", "30s")
	viper.SetDefault("server.cors_allowed_origins", "*")
	viper.SetDefault("cache.system_info_ttl", "30s")
	viper.SetDefault("cache.sweep_interval", "60s")
	viper.SetDefault("runtime.type", "docker")
	viper.SetDefault("runtime.stop_timeout_secs", 10)
	viper.SetDefault("misc.gin_mode", "release")
	viper.SetDefault("misc.log_level", "info")

	viper.AutomaticEnv()
	viper.SetEnvPrefix("DOCKHAND")
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			logger.WithComponent("config").Info("no config file found, using defaults and env vars")
		} else {
			return nil, fmt.Errorf("config file error: %w", err)
		}
	}

	port, err := getEnvOrViperPort("PORT", "server.port")
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:               port,
			ReadTimeout:        viper.GetDuration("server.read_timeout"),
			WriteTimeout:       viper.GetDuration("server.write_timeout"),
			IdleTimeout:        viper.GetDuration("server.idle_timeout"),
			ShutDownTimeout:    viper.GetDuration("server.shutdown_timeout"),
			RequestTimeout:     viper.GetDuration("server.request_timeout"),
			CORSAllowedOrigins: viper.GetString("server.cors_allowed_origins"),
		},
		Cache: CacheConfig{
			SystemInfoTTL: viper.GetDuration("cache.system_info_ttl"),
			SweepInterval: viper.GetDuration("cache.sweep_interval"),
		},
		Runtime: RuntimeConfig{
			Type:            viper.GetString("runtime.type"),
			StopTimeoutSecs: viper.GetInt("runtime.stop_timeout_secs"),
		},
		Misc: MiscConfig{
			GinMode:  viper.GetString("misc.gin_mode"),
			LogLevel: viper.GetString("misc.log_level"),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	// Reload the log level when the config file changes on disk.
	viper.OnConfigChange(func(e fsnotify.Event) {
		level := viper.GetString("misc.log_level")
		applied := logger.SetLevelFromString(level)
		logger.WithComponent("config").Infof("config file %s changed, log level set to %s", e.Name, applied)
	})
	viper.WatchConfig()

	return cfg, nil
}

func (c *Config) validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}
	if c.Server.ReadTimeout <= 0 {
		return fmt.Errorf("read timeout must be positive")
	}
	if c.Server.WriteTimeout <= 0 {
		return fmt.Errorf("write timeout must be positive")
	}
	if c.Server.IdleTimeout <= 0 {
		return fmt.Errorf("idle timeout must be positive")
	}
	if c.Server.ShutDownTimeout <= 0 {
		return fmt.Errorf("shutdown timeout must be positive")
	}
	if c.Server.RequestTimeout <= 0 {
		return fmt.Errorf("request timeout must be positive")
	}
	if c.Cache.SystemInfoTTL <= 0 {
		return fmt.Errorf("system info TTL must be positive")
	}
	if c.Cache.SweepInterval <= 0 {
		return fmt.Errorf("cache sweep interval must be positive")
	}
	if c.Runtime.StopTimeoutSecs < 0 {
		return fmt.Errorf("stop timeout must not be negative")
	}
	return nil
}

// getEnvOrDefault returns the env value if set and non-empty, else the default.
func getEnvOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// getEnvOrViperPort reads a port from the given env var, falling back to
// the viper key when the env var is unset.
func getEnvOrViperPort(envKey, viperKey string) (int, error) {
	if v := os.Getenv(envKey); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return 0, fmt.Errorf("invalid port in %s: %q", envKey, v)
		}
		return port, nil
	}
	return viper.GetInt(viperKey), nil
}
