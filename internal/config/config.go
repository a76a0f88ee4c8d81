package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"Olson/internal/calc/olson"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config is the main configuration struct combining all sub-configs
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
	Limits    LimitsConfig    `mapstructure:"limits"`
	Logging   LoggingConfig   `mapstructure:"logging"`
	Defaults  Defaults        `mapstructure:"defaults"`
}

type ServerConfig struct {
	Addr            string        `mapstructure:"addr" validate:"required"`
	StaticDir       string        `mapstructure:"static_dir" validate:"required"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout" validate:"gt=0"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout" validate:"gt=0"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" validate:"gt=0"`

	// TLS is used when both are set.
	TLSCert string `mapstructure:"tls_cert" validate:"required_with=TLSKey"`
	TLSKey  string `mapstructure:"tls_key" validate:"required_with=TLSCert"`
}

func (s ServerConfig) TLSEnabled() bool {
	return s.TLSCert != "" && s.TLSKey != ""
}

// RateLimitConfig is a per-IP token bucket for the /api routes.
type RateLimitConfig struct {
	RequestsPerSecond float64 `mapstructure:"requests_per_second" validate:"gt=0"`
	Burst             int     `mapstructure:"burst" validate:"min=1"`
}

// LimitsConfig bounds the work one request can ask for.
type LimitsConfig struct {
	MaxYears int64 `mapstructure:"max_years" validate:"gt=0"`
}

type LoggingConfig struct {
	Debug bool `mapstructure:"debug"`
}

// Defaults are the values the form starts with. They never reach the
// calculation directly; the form text is validated like any user input.
type Defaults struct {
	PreFireFuelLoad float64 `mapstructure:"pre_fire_fuel_load" validate:"gt=0"`
	DecayConstant   float64 `mapstructure:"decay_constant" validate:"gt=0,lt=1"`
	FuelRemaining   float64 `mapstructure:"fuel_remaining" validate:"gt=0,lt=1"`
	YearsSinceFire  int64   `mapstructure:"years_since_fire" validate:"gt=0"`
}

// Form renders the defaults as form text.
func (d Defaults) Form() olson.RawInput {
	return olson.RawInput{
		PreFireFuelLoad: strconv.FormatFloat(d.PreFireFuelLoad, 'f', -1, 64),
		DecayConstant:   strconv.FormatFloat(d.DecayConstant, 'f', -1, 64),
		FuelRemaining:   strconv.FormatFloat(d.FuelRemaining, 'f', -1, 64),
		YearsSinceFire:  strconv.FormatInt(d.YearsSinceFire, 10),
	}
}

// LoadConfig loads configuration from multiple sources with priority:
// 1. Environment variables (OLSON_ prefix)
// 2. Config file (config.yaml)
// 3. Defaults (registered on viper before Unmarshal)
func LoadConfig(configPath string) (*Config, error) {
	// .env is optional
	_ = godotenv.Load()

	v := viper.New()

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./configs")
	}

	v.SetEnvPrefix("OLSON")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	SetDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := ValidateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}
