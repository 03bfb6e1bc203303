package main

import (
	"github.com/caarlos0/env/v11"
	"github.com/pkg/errors"
)

type Config struct {
	Addr      string `env:"ADDR" envDefault:":8080"`
	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT"`
	LogFile   string `env:"LOG_FILE"`
	// When false, invalid signups still reach the handler, which reports ok=false.
	RejectInvalid bool `env:"REJECT_INVALID" envDefault:"true"`
	// Parallelism for batch validation.
	BatchParallelism int      `env:"BATCH_PARALLELISM" envDefault:"4"`
	CorsOrigins      []string `env:"CORS_ORIGINS" envSeparator:","`
	Debug            bool     `env:"DEBUG"`
}

const envPrefix = "FORMCHECK_"

// LoadConfig reads FORMCHECK_* variables from environ,
// a map of variable names to values.
func LoadConfig(environ map[string]string) (Config, error) {
	var cfg Config
	err := env.ParseWithOptions(&cfg, env.Options{
		Prefix:      envPrefix,
		Environment: environ,
	})
	if err != nil {
		return cfg, errors.Wrap(err, "parsing environment")
	}
	if cfg.BatchParallelism <= 0 {
		return cfg, errors.Errorf("%sBATCH_PARALLELISM must be positive, got %d", envPrefix, cfg.BatchParallelism)
	}
	return cfg, nil
}
