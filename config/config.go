// backend/config/config.go
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/gewnthar/demandtrends/backend/simulator"
)

type ServerConfig struct {
	Port           string   `yaml:"port"`
	AllowedOrigins []string `yaml:"allowed_origins"`
}

type GeminiConfig struct {
	APIKey            string        `yaml:"-"` // only ever from GEMINI_API_KEY
	Model             string        `yaml:"model"`
	RequestTimeoutStr string        `yaml:"request_timeout"`
	RequestTimeout    time.Duration `yaml:"-"` // Parsed duration, zero = no timeout
}

type GeneratorConfig struct {
	Seed             uint32  `yaml:"seed"`
	MeanBookings     float64 `yaml:"mean_bookings"`
	BasePrice        float64 `yaml:"base_price"`
	PriceStdDev      float64 `yaml:"price_stddev"`
	WeekendSurcharge float64 `yaml:"weekend_surcharge"`
}

type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Gemini    GeminiConfig    `yaml:"gemini"`
	Generator GeneratorConfig `yaml:"generator"`
}

const (
	DefaultPort  = "8000"
	DefaultModel = "gemini-1.5-flash"
)

// Default returns the configuration used when no file is present.
func Default() *Config {
	p := simulator.DefaultParams()
	return &Config{
		Server: ServerConfig{
			Port:           DefaultPort,
			AllowedOrigins: []string{"*"},
		},
		Gemini: GeminiConfig{
			Model: DefaultModel,
		},
		Generator: GeneratorConfig{
			Seed:             p.Seed,
			MeanBookings:     p.MeanBookings,
			BasePrice:        p.BasePrice,
			PriceStdDev:      p.PriceStdDev,
			WeekendSurcharge: p.WeekendSurcharge,
		},
	}
}

// LoadConfig reads configPath (if it exists) over the defaults, then applies
// environment overrides. An empty or missing path just yields defaults.
func LoadConfig(configPath string) (*Config, error) {
	cfg := Default()

	if configPath != "" {
		file, err := os.ReadFile(configPath)
		switch {
		case errors.Is(err, fs.ErrNotExist):
			log.Printf("Config: %s not found, using defaults.\n", configPath)
		case err != nil:
			return nil, fmt.Errorf("failed to read config file: %w", err)
		default:
			if err := yaml.Unmarshal(file, cfg); err != nil {
				return nil, fmt.Errorf("failed to unmarshal config: %w", err)
			}
			log.Printf("Config: Loaded configuration from %s\n", configPath)
		}
	}

	applyEnv(cfg)

	// Parse durations
	if cfg.Gemini.RequestTimeoutStr != "" {
		d, err := time.ParseDuration(cfg.Gemini.RequestTimeoutStr)
		if err != nil {
			return nil, fmt.Errorf("failed to parse gemini.request_timeout: %w", err)
		}
		if d < 0 {
			return nil, fmt.Errorf("gemini.request_timeout must not be negative, got %s", d)
		}
		cfg.Gemini.RequestTimeout = d
	}

	if cfg.Server.Port == "" {
		cfg.Server.Port = DefaultPort
	}
	if cfg.Gemini.Model == "" {
		cfg.Gemini.Model = DefaultModel
	}
	if len(cfg.Server.AllowedOrigins) == 0 {
		cfg.Server.AllowedOrigins = []string{"*"}
	}
	if cfg.Generator.MeanBookings < 0 || cfg.Generator.PriceStdDev < 0 {
		return nil, errors.New("generator.mean_bookings and generator.price_stddev must not be negative")
	}
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("PORT"); v != "" {
		cfg.Server.Port = v
	}
	if v := os.Getenv("GEMINI_MODEL"); v != "" {
		cfg.Gemini.Model = v
	}
	if v := os.Getenv("GEMINI_REQUEST_TIMEOUT"); v != "" {
		cfg.Gemini.RequestTimeoutStr = v
	}
	cfg.Gemini.APIKey = os.Getenv("GEMINI_API_KEY")
}

// SimulatorParams converts the generator section for simulator.Params.Generate.
func (c *Config) SimulatorParams() simulator.Params {
	return simulator.Params{
		Seed:             c.Generator.Seed,
		MeanBookings:     c.Generator.MeanBookings,
		BasePrice:        c.Generator.BasePrice,
		PriceStdDev:      c.Generator.PriceStdDev,
		WeekendSurcharge: c.Generator.WeekendSurcharge,
	}
}
