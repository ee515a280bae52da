package config

import (
	"fmt"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/viper"
	"go.uber.org/fx"
)

const (
	sslModeDisable = "disable"
	sslModeRequire = "require"

	minSecretLen = 16
)

type (
	Config struct {
		Host           string        `mapstructure:"HOST"`
		Port           string        `mapstructure:"PORT"`
		GRPCPort       string        `mapstructure:"GRPC_PORT"`
		DBHost         string        `mapstructure:"DB_HOST"`
		DBPort         string        `mapstructure:"DB_PORT"`
		DBUser         string        `mapstructure:"DB_USER"`
		DBPassword     string        `mapstructure:"DB_PASSWORD"`
		DBName         string        `mapstructure:"DB_NAME"`
		DBSSLMode      string        `mapstructure:"DB_SSL_MODE"`
		DBDSN          string        `mapstructure:"DB_DSN"`
		JWTSecret      string        `mapstructure:"JWT_SECRET"`
		TokenTTL       time.Duration `mapstructure:"TOKEN_TTL"`
		LogLevel       string        `mapstructure:"LOG_LEVEL"`
		LogDevelopment bool          `mapstructure:"LOG_DEVELOPMENT"`
		MigrateOnStart bool          `mapstructure:"MIGRATE_ON_START"`
	}
)

var Module = fx.Provide(NewConfig)

var defaults = map[string]interface{}{
	"HOST":             "0.0.0.0",
	"PORT":             "1323",
	"GRPC_PORT":        "9000",
	"DB_HOST":          "0.0.0.0",
	"DB_PORT":          "5432",
	"DB_USER":          "user",
	"DB_PASSWORD":      "password",
	"DB_NAME":          "db",
	"DB_SSL_MODE":      sslModeDisable,
	"DB_DSN":           "",
	"JWT_SECRET":       "",
	"TOKEN_TTL":        "15m",
	"LOG_LEVEL":        "info",
	"LOG_DEVELOPMENT":  false,
	"MIGRATE_ON_START": true,
}

// NewConfig reads BOOKMARKER_* environment variables on top of the defaults.
func NewConfig() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("BOOKMARKER")

	for key, value := range defaults {
		v.SetDefault(key, value)
		if err := v.BindEnv(key); err != nil {
			return nil, errors.Wrapf(err, "bind env %s", key)
		}
	}

	cfg := Config{}
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(err, "unmarshal config")
	}

	if err := validate(&cfg); err != nil {
		return nil, errors.Wrap(err, "config validation failed")
	}

	return &cfg, nil
}

// DSN returns DB_DSN when set, otherwise a key/value DSN built from the DB_* parts.
func (c *Config) DSN() string {
	if c.DBDSN != "" {
		return c.DBDSN
	}
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		c.DBHost, c.DBUser, c.DBPassword, c.DBName, c.DBPort, c.DBSSLMode)
}

func (c *Config) HTTPAddr() string {
	return c.Host + ":" + c.Port
}

func (c *Config) GRPCAddr() string {
	return c.Host + ":" + c.GRPCPort
}

func validate(cfg *Config) error {
	if err := validateSSLMode(cfg.DBSSLMode); err != nil {
		return err
	}
	if len(cfg.JWTSecret) < minSecretLen {
		return errors.Errorf("JWT secret must be at least %d bytes long", minSecretLen)
	}
	if cfg.TokenTTL <= 0 {
		return errors.Errorf("token TTL must be positive: %s", cfg.TokenTTL)
	}
	return nil
}

func validateSSLMode(mode string) error {
	validSSLValues := []string{sslModeDisable, sslModeRequire}
	for _, validValue := range validSSLValues {
		if mode == validValue {
			return nil
		}
	}
	return errors.New(fmt.Sprintf("DB SSL mode is invalid: %s", mode))
}
