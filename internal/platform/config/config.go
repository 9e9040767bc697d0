// Package config loads the server configuration from defaults, an optional
// YAML file and REGISTRATION_* environment variables.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"
	_ "time/tzdata" // time zones must resolve in minimal containers

	"github.com/spf13/viper"

	"registration/pkg/validation"
)

// EnvPrefix prefixes every environment override, e.g. REGISTRATION_SERVER_ADDR.
const EnvPrefix = "REGISTRATION"

// Config holds all application configuration.
type Config struct {
	Server      Server      `mapstructure:"server"`
	Destination Destination `mapstructure:"destination"`
	Locale      Locale      `mapstructure:"locale"`
	Log         Log         `mapstructure:"log"`
	Tracing     Toggle      `mapstructure:"tracing"`
	Metrics     Toggle      `mapstructure:"metrics"`
}

// Server captures HTTP server level configuration.
type Server struct {
	Addr            string        `mapstructure:"addr" validate:"required"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout" validate:"gte=0"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout" validate:"gte=0"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" validate:"gte=0"`
	RequestTimeout  time.Duration `mapstructure:"request_timeout" validate:"gte=0"`
	MaxBodyBytes    int64         `mapstructure:"max_body_bytes" validate:"gt=0"`
	// TrustedProxies are CIDRs whose forwarding headers are believed.
	TrustedProxies []string `mapstructure:"trusted_proxies" validate:"dive,cidr|ip"`
}

// Destination is the external form that receives the redirect.
type Destination struct {
	BaseURL string `mapstructure:"base_url" validate:"required,http_url"`
}

type Locale struct {
	DefaultLanguage string `mapstructure:"default_language" validate:"required,oneof=he en"`
	TimeZone        string `mapstructure:"time_zone" validate:"required,timezone"`
}

type Log struct {
	Level  string `mapstructure:"level" validate:"required,oneof=debug info warn warning error"`
	Format string `mapstructure:"format" validate:"required,oneof=json text"`
}

type Toggle struct {
	Enabled bool `mapstructure:"enabled"`
}

// Location resolves the configured time zone.
func (l Locale) Location() (*time.Location, error) {
	return time.LoadLocation(l.TimeZone)
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.read_timeout", "10s")
	v.SetDefault("server.write_timeout", "10s")
	v.SetDefault("server.shutdown_timeout", "15s")
	v.SetDefault("server.request_timeout", "5s")
	v.SetDefault("server.max_body_bytes", 64<<10)
	v.SetDefault("server.trusted_proxies", []string{})
	v.SetDefault("destination.base_url", "https://form.jotform.com/YOUR_FORM_ID")
	v.SetDefault("locale.default_language", "he")
	v.SetDefault("locale.time_zone", "Asia/Jerusalem")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("tracing.enabled", false)
	v.SetDefault("metrics.enabled", true)
}

// Load reads configuration. An empty path skips the file; a path that does
// not exist is an error so a typo never silently falls back to defaults.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			var parseErr viper.ConfigParseError
			if errors.As(err, &parseErr) {
				return nil, fmt.Errorf("failed to parse config file: %w", err)
			}
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := validation.Validate(&cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &cfg, nil
}
