package config

import (
	"errors"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type AppCfg struct {
	Env                 string `mapstructure:"env"`
	Port                int    `mapstructure:"port"`
	ReadTimeoutSeconds  int    `mapstructure:"read_timeout_seconds"`
	WriteTimeoutSeconds int    `mapstructure:"write_timeout_seconds"`
}

type MongoCfg struct {
	URI        string `mapstructure:"uri"`
	Database   string `mapstructure:"database"`
	Collection string `mapstructure:"collection"`
}

type JWTCfg struct {
	Secret   string `mapstructure:"secret"`
	TTLHours int    `mapstructure:"ttl_hours"`
}

type SecurityCfg struct {
	PasswordHashCost int `mapstructure:"password_hash_cost"`
}

type Config struct {
	App      AppCfg      `mapstructure:"app"`
	Mongo    MongoCfg    `mapstructure:"mongo"`
	JWT      JWTCfg      `mapstructure:"jwt"`
	Security SecurityCfg `mapstructure:"security"`
	// Derived
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	TokenTTL     time.Duration
}

// Load reads the YAML config at path and applies APP_-prefixed environment
// overrides (APP_JWT_SECRET, APP_MONGO_URI, ...).
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetEnvPrefix("APP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return nil, err
	}
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if cfg.App.Port == 0 {
		cfg.App.Port = 8080
	}
	if cfg.App.ReadTimeoutSeconds == 0 {
		cfg.App.ReadTimeoutSeconds = 15
	}
	if cfg.App.WriteTimeoutSeconds == 0 {
		cfg.App.WriteTimeoutSeconds = 15
	}
	if cfg.Mongo.Collection == "" {
		cfg.Mongo.Collection = "users"
	}
	if cfg.JWT.TTLHours == 0 {
		cfg.JWT.TTLHours = 80
	}
	if cfg.Security.PasswordHashCost == 0 {
		cfg.Security.PasswordHashCost = 12
	}

	if cfg.JWT.Secret == "" {
		return nil, errors.New("jwt secret is required (config jwt.secret or APP_JWT_SECRET)")
	}
	if cfg.Mongo.URI == "" {
		return nil, errors.New("mongo uri is required (config mongo.uri or APP_MONGO_URI)")
	}

	cfg.ReadTimeout = time.Duration(cfg.App.ReadTimeoutSeconds) * time.Second
	cfg.WriteTimeout = time.Duration(cfg.App.WriteTimeoutSeconds) * time.Second
	cfg.TokenTTL = time.Duration(cfg.JWT.TTLHours) * time.Hour
	return &cfg, nil
}
