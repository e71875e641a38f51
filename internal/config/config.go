package config

import (
	"time"

	"github.com/caarlos0/env/v10"

	"github.com/copyleftdev/TUNNL/internal/optimization"
)

type Config struct {
	Environment string `env:"ENV" envDefault:"development"`
	HTTP        struct {
		Port            int           `env:"HTTP_PORT" envDefault:"8080"`
		ReadTimeout     time.Duration `env:"HTTP_READ_TIMEOUT" envDefault:"30s"`
		WriteTimeout    time.Duration `env:"HTTP_WRITE_TIMEOUT" envDefault:"30s"`
		IdleTimeout     time.Duration `env:"HTTP_IDLE_TIMEOUT" envDefault:"120s"`
		ShutdownTimeout time.Duration `env:"HTTP_SHUTDOWN_TIMEOUT" envDefault:"30s"`
	}
	Logging struct {
		Level  string `env:"LOG_LEVEL" envDefault:"info"`
		Format string `env:"LOG_FORMAT" envDefault:"json"`
		Output string `env:"LOG_OUTPUT" envDefault:"stderr"`
	}
	Annealing struct {
		Cities            int     `env:"ANNEAL_CITIES" envDefault:"40"`
		MaxIterations     int     `env:"ANNEAL_MAX_ITERATIONS" envDefault:"20000"`
		StartTemperature  float64 `env:"ANNEAL_START_TEMPERATURE" envDefault:"100000.0"`
		Alpha             float64 `env:"ANNEAL_ALPHA" envDefault:"0.9990"`
		TunnelProbability float64 `env:"ANNEAL_TUNNEL_PROBABILITY" envDefault:"0.10"`
		Restarts          int     `env:"ANNEAL_RESTARTS" envDefault:"1"`
	}
}

func Load() (*Config, error) {
	cfg := &Config{}

	// Parse environment variables
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}

	// Surface bad annealing defaults at startup instead of on the first job
	if err := cfg.AnnealingDefaults().Validate(); err != nil {
		return nil, err
	}
	if cfg.Annealing.Restarts < 1 {
		return nil, optimization.NewInvalidConfiguration("restarts must be at least 1")
	}

	// Debug logging by default in development
	if cfg.Environment == "development" && cfg.Logging.Level == "" {
		cfg.Logging.Level = "debug"
	}

	return cfg, nil
}

// AnnealingDefaults returns the solver schedule the server uses for jobs
// that do not override parameters.
func (c *Config) AnnealingDefaults() optimization.Config {
	return optimization.Config{
		Cities:            c.Annealing.Cities,
		MaxIterations:     c.Annealing.MaxIterations,
		StartTemperature:  c.Annealing.StartTemperature,
		Alpha:             c.Annealing.Alpha,
		TunnelProbability: c.Annealing.TunnelProbability,
	}
}
