package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/spf13/viper"
)

const (
	APIBaseURLKey   = "api.base_url"
	StoreBackendKey = "store.backend"
	StorePathKey    = "store.path"
	ProfilesPathKey = "profiles.path"
	ConnectDelayKey = "connect.delay"
	LogLevelKey     = "log.level"
	OTelEndpointKey = "otel.endpoint"

	configDir  = ".compass"
	configName = "config"
	configType = "toml"
)

const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
	BackendFS     = "fs"
)

const (
	DefaultAPIBaseURL   = "http://localhost:8000"
	DefaultConnectDelay = 1500 * time.Millisecond
)

// Config is the resolved client configuration.
type Config struct {
	Dir          string
	APIBaseURL   string
	StoreBackend string
	StorePath    string
	ProfilesPath string
	ConnectDelay time.Duration
	LogLevel     slog.Level
	OTelEndpoint string
}

type envOverrides struct {
	APIBaseURL   string `env:"COMPASS_API_BASE_URL"`
	StoreBackend string `env:"COMPASS_STORE_BACKEND"`
	StorePath    string `env:"COMPASS_STORE_PATH"`
	ProfilesPath string `env:"COMPASS_PROFILES_PATH"`
	ConnectDelay string `env:"COMPASS_CONNECT_DELAY"`
	LogLevel     string `env:"COMPASS_LOG_LEVEL"`
	OTelEndpoint string `env:"COMPASS_OTEL_ENDPOINT"`
}

// ParseEnv populates target from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Load reads ~/.compass/config.toml when it exists and applies COMPASS_*
// environment overrides on top. The returned viper instance carries the
// merged settings for adapters that read their own keys.
func Load() (Config, *viper.Viper, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return Config{}, nil, fmt.Errorf("resolve home directory: %w", err)
	}

	return LoadFrom(filepath.Join(homeDir, configDir))
}

func LoadFrom(dir string) (Config, *viper.Viper, error) {
	v := viper.New()
	v.SetConfigName(configName)
	v.SetConfigType(configType)
	v.AddConfigPath(dir)

	v.SetDefault(APIBaseURLKey, DefaultAPIBaseURL)
	v.SetDefault(StoreBackendKey, BackendFile)
	v.SetDefault(StorePathKey, filepath.Join(dir, "store"))
	v.SetDefault(ProfilesPathKey, filepath.Join(dir, "profiles.toml"))
	v.SetDefault(ConnectDelayKey, DefaultConnectDelay.String())
	v.SetDefault(LogLevelKey, "warn")
	v.SetDefault(OTelEndpointKey, "")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, nil, fmt.Errorf("read config: %w", err)
		}
	}

	var overrides envOverrides
	if err := ParseEnv(&overrides); err != nil {
		return Config{}, nil, err
	}
	applyOverrides(v, overrides)

	cfg, err := resolve(dir, v)
	if err != nil {
		return Config{}, nil, err
	}

	return cfg, v, nil
}

func applyOverrides(v *viper.Viper, o envOverrides) {
	for key, value := range map[string]string{
		APIBaseURLKey:   o.APIBaseURL,
		StoreBackendKey: o.StoreBackend,
		StorePathKey:    o.StorePath,
		ProfilesPathKey: o.ProfilesPath,
		ConnectDelayKey: o.ConnectDelay,
		LogLevelKey:     o.LogLevel,
		OTelEndpointKey: o.OTelEndpoint,
	} {
		if strings.TrimSpace(value) != "" {
			v.Set(key, strings.TrimSpace(value))
		}
	}
}

func resolve(dir string, v *viper.Viper) (Config, error) {
	baseURL := strings.TrimRight(strings.TrimSpace(v.GetString(APIBaseURLKey)), "/")
	if baseURL == "" {
		return Config{}, fmt.Errorf("%s is empty", APIBaseURLKey)
	}

	backend := strings.ToLower(strings.TrimSpace(v.GetString(StoreBackendKey)))
	switch backend {
	case BackendFile, BackendSQLite, BackendFS:
	default:
		return Config{}, fmt.Errorf("unsupported %s %q", StoreBackendKey, backend)
	}

	delay, err := time.ParseDuration(strings.TrimSpace(v.GetString(ConnectDelayKey)))
	if err != nil {
		return Config{}, fmt.Errorf("parse %s: %w", ConnectDelayKey, err)
	}
	if delay < 0 {
		return Config{}, fmt.Errorf("%s must not be negative", ConnectDelayKey)
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(v.GetString(LogLevelKey)))); err != nil {
		return Config{}, fmt.Errorf("parse %s: %w", LogLevelKey, err)
	}

	return Config{
		Dir:          dir,
		APIBaseURL:   baseURL,
		StoreBackend: backend,
		StorePath:    v.GetString(StorePathKey),
		ProfilesPath: v.GetString(ProfilesPathKey),
		ConnectDelay: delay,
		LogLevel:     level,
		OTelEndpoint: strings.TrimSpace(v.GetString(OTelEndpointKey)),
	}, nil
}
