package config

import (
	"fmt"

	"github.com/spf13/viper"
)

type Config struct {
	Env            string
	Port           int
	DatabaseURL    string
	RateLimitRPS   float64
	RateLimitBurst int
}

// Load reads configuration from the environment. A .env file, if present,
// is loaded by the caller before this runs.
func Load() (Config, error) {
	v := viper.New()
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("PORT", 8080)
	v.SetDefault("RATE_LIMIT_RPS", 5.0)
	v.SetDefault("RATE_LIMIT_BURST", 10)
	v.AutomaticEnv()

	cfg := Config{
		Env:            v.GetString("APP_ENV"),
		Port:           v.GetInt("PORT"),
		DatabaseURL:    v.GetString("DATABASE_URL"),
		RateLimitRPS:   v.GetFloat64("RATE_LIMIT_RPS"),
		RateLimitBurst: v.GetInt("RATE_LIMIT_BURST"),
	}

	if cfg.DatabaseURL == "" {
		return Config{}, fmt.Errorf("environment variable DATABASE_URL not found")
	}
	if cfg.Port <= 0 {
		return Config{}, fmt.Errorf("PORT must be positive, got %d", cfg.Port)
	}
	return cfg, nil
}
