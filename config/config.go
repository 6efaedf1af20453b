package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Auth     AuthConfig     `mapstructure:"auth"`
	Review   ReviewConfig   `mapstructure:"review"`
	Mastery  MasteryConfig  `mapstructure:"mastery"`
	Writer   WriterConfig   `mapstructure:"writer"`
}

type ServerConfig struct {
	Port           string   `mapstructure:"port" validate:"required"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

type DatabaseConfig struct {
	Driver string `mapstructure:"driver" validate:"oneof=postgres sqlite"`
	URL    string `mapstructure:"url" validate:"required"`
}

type AuthConfig struct {
	JWTSecret string `mapstructure:"jwt_secret" validate:"required"`
	Issuer    string `mapstructure:"issuer" validate:"required"`
	Audience  string `mapstructure:"audience" validate:"required"`
}

type ReviewConfig struct {
	SwipeThreshold float64       `mapstructure:"swipe_threshold" validate:"gt=0"`
	SessionTTL     time.Duration `mapstructure:"session_ttl"`
}

type MasteryConfig struct {
	ReconcileInterval time.Duration `mapstructure:"reconcile_interval"`
}

type WriterConfig struct {
	Workers       int  `mapstructure:"workers" validate:"gte=1"`
	Queue         int  `mapstructure:"queue" validate:"gte=1"`
	RetryAttempts uint `mapstructure:"retry_attempts" validate:"gte=1"`
}

func Load(configFile string) (*Config, error) {
	v := viper.New()

	v.SetConfigType("yaml")

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/flipsnap")
	}

	v.SetDefault("server.port", "8080")
	v.SetDefault("server.allowed_origins", []string{"http://localhost:3000"})
	v.SetDefault("database.driver", "postgres")
	v.SetDefault("auth.issuer", "flipsnap-api")
	v.SetDefault("auth.audience", "flipsnap")
	v.SetDefault("review.swipe_threshold", 120.0)
	v.SetDefault("review.session_ttl", 2*time.Hour)
	v.SetDefault("mastery.reconcile_interval", 10*time.Minute)
	v.SetDefault("writer.workers", 2)
	v.SetDefault("writer.queue", 64)
	v.SetDefault("writer.retry_attempts", 3)

	envBindings := map[string]string{
		"server.port":            "PORT",
		"server.allowed_origins": "ALLOWED_ORIGINS",
		"database.driver":        "DB_DRIVER",
		"database.url":           "DB_URL",
		"auth.jwt_secret":        "JWT_SECRET_KEY",
		"auth.issuer":            "JWT_ISSUER",
		"auth.audience":          "JWT_AUDIENCE",
	}
	for key, env := range envBindings {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("failed to bind %s environment variable: %w", env, err)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("configuration file found but could not be read: %w. Please check the file format and permissions", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration format: %w", err)
	}
	// ALLOWED_ORIGINS arrives as one comma separated string.
	cfg.Server.AllowedOrigins = splitList(strings.Join(cfg.Server.AllowedOrigins, ","))

	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
