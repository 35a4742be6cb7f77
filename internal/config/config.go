package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

type HTTPConfig struct {
	Host string
	Port int
}

type DBConfig struct {
	DSN             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime string
}

type MapsConfig struct {
	Token   string
	BaseURL string
	Timeout time.Duration
}

type AssetsConfig struct {
	StorageRoot string
	Timeout     time.Duration
}

type Config struct {
	Environment string
	HTTP        HTTPConfig
	DB          DBConfig
	Maps        MapsConfig
	Assets      AssetsConfig
}

func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName("app")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("./deploy")
	v.AddConfigPath("./internal/config")
	v.AutomaticEnv()

	_ = v.ReadInConfig()

	cfg := &Config{
		Environment: v.GetString("APP_ENV"),
		HTTP: HTTPConfig{
			Host: v.GetString("HTTP_HOST"),
			Port: v.GetInt("HTTP_PORT"),
		},
		DB: DBConfig{
			DSN:             v.GetString("DB_DSN"),
			MaxOpenConns:    v.GetInt("DB_MAX_OPEN_CONNS"),
			MaxIdleConns:    v.GetInt("DB_MAX_IDLE_CONNS"),
			ConnMaxLifetime: v.GetString("DB_CONN_MAX_LIFETIME"),
		},
		Maps: MapsConfig{
			Token:   v.GetString("MAPS_TOKEN"),
			BaseURL: v.GetString("MAPS_BASE_URL"),
			Timeout: time.Duration(v.GetInt("MAPS_TIMEOUT_SECONDS")) * time.Second,
		},
		Assets: AssetsConfig{
			StorageRoot: v.GetString("ASSETS_STORAGE_ROOT"),
			Timeout:     time.Duration(v.GetInt("ASSETS_TIMEOUT_SECONDS")) * time.Second,
		},
	}

	if cfg.Environment == "" {
		cfg.Environment = "development"
	}
	if cfg.HTTP.Host == "" {
		cfg.HTTP.Host = "0.0.0.0"
	}
	if cfg.HTTP.Port == 0 {
		cfg.HTTP.Port = 7091
	}
	if cfg.Maps.BaseURL == "" {
		cfg.Maps.BaseURL = "https://maps.googleapis.com/maps/api/staticmap"
	}
	if cfg.Maps.Timeout == 0 {
		cfg.Maps.Timeout = 10 * time.Second
	}
	if cfg.Assets.StorageRoot == "" {
		cfg.Assets.StorageRoot = "./storage"
	}
	if cfg.Assets.Timeout == 0 {
		cfg.Assets.Timeout = 15 * time.Second
	}

	if err := validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func validate(cfg *Config) error {
	if cfg.DB.DSN == "" {
		return fmt.Errorf("DB_DSN is required")
	}
	return nil
}
