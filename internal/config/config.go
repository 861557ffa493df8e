package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Catalog CatalogConfig `mapstructure:"catalog"`
	Storage StorageConfig `mapstructure:"storage"`
	Redis   RedisConfig   `mapstructure:"redis"`
	UI      UIConfig      `mapstructure:"ui"`
	Log     LogConfig     `mapstructure:"log"`
}

// CatalogConfig holds the remote product API configuration
type CatalogConfig struct {
	BaseURL    string        `mapstructure:"base_url"`
	Timeout    time.Duration `mapstructure:"timeout"`
	RetryCount int           `mapstructure:"retry_count"`
	Proxies    []string      `mapstructure:"proxies"`
}

const (
	StorageBackendFile  = "file"
	StorageBackendRedis = "redis"
)

// StorageConfig selects where cart state is persisted
type StorageConfig struct {
	Backend string `mapstructure:"backend"` // file or redis
	Path    string `mapstructure:"path"`
}

// RedisConfig holds Redis connection details
type RedisConfig struct {
	Host      string `mapstructure:"host"`
	Port      int    `mapstructure:"port"`
	Password  string `mapstructure:"password"`
	Database  int    `mapstructure:"database"`
	KeyPrefix string `mapstructure:"key_prefix"`
}

type UIConfig struct {
	NotificationTTL time.Duration `mapstructure:"notification_ttl"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}

// Load reads configuration from the YAML file at path (or ./config.yaml when
// path is empty) with environment variable overrides. A missing file is not an
// error: defaults apply.
func Load(path string) (*Config, error) {
	v := viper.New()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	setDefaults(v)

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		log.Debug("config.yaml not found, using defaults")
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	if err := config.validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

func (c *Config) validate() error {
	switch c.Storage.Backend {
	case StorageBackendFile, StorageBackendRedis:
	default:
		return fmt.Errorf("unknown storage backend %q", c.Storage.Backend)
	}
	if c.Catalog.BaseURL == "" {
		return errors.New("catalog.base_url must not be empty")
	}
	if c.UI.NotificationTTL <= 0 {
		return errors.New("ui.notification_ttl must be positive")
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("catalog.base_url", "https://fakestoreapi.com")
	v.SetDefault("catalog.timeout", 30*time.Second)
	v.SetDefault("catalog.retry_count", 0)
	v.SetDefault("catalog.proxies", []string{})

	v.SetDefault("storage.backend", StorageBackendFile)
	v.SetDefault("storage.path", "./shop-state.json")

	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.database", 0)
	v.SetDefault("redis.key_prefix", "shop:state:")

	v.SetDefault("ui.notification_ttl", 2*time.Second)

	v.SetDefault("log.level", "info")
}
