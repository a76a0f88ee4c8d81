package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// defaultValues seeds viper before Unmarshal, so an explicit zero from a file
// or the environment still reaches validation.
var defaultValues = map[string]interface{}{
	"server.addr":             ":8080",
	"server.static_dir":       "./static/main",
	"server.read_timeout":     10 * time.Second,
	"server.write_timeout":    30 * time.Second,
	"server.shutdown_timeout": 5 * time.Second,
	"server.tls_cert":         "",
	"server.tls_key":          "",

	"rate_limit.requests_per_second": 5.0,
	"rate_limit.burst":               10,

	"limits.max_years": int64(10000),

	"logging.debug": false,

	"defaults.pre_fire_fuel_load": 20.2,
	"defaults.decay_constant":     0.35,
	"defaults.fuel_remaining":     0.5,
	"defaults.years_since_fire":   int64(5),
}

// SetDefaults registers every default on v. Registered keys are also the
// ones AutomaticEnv resolves during Unmarshal.
func SetDefaults(v *viper.Viper) {
	for key, value := range defaultValues {
		v.SetDefault(key, value)
	}
}

// Default returns the configuration with nothing but defaults applied.
func Default() *Config {
	v := viper.New()
	SetDefaults(v)
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		panic(fmt.Sprintf("default configuration does not decode: %v", err))
	}
	return &cfg
}
