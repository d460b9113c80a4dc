package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Server struct {
		Port               int      `mapstructure:"port"`
		CorsAllowedOrigins []string `mapstructure:"cors_allowed_origins"`
		CorsAllowedMethods []string `mapstructure:"cors_allowed_methods"`
		CorsAllowedHeaders []string `mapstructure:"cors_allowed_headers"`
	} `mapstructure:"server"`

	FuelAPI struct {
		BaseURL         string  `mapstructure:"base_url"`
		TimeoutSeconds  int     `mapstructure:"timeout_seconds"`
		HistoryDays     int     `mapstructure:"history_days"`
		DefaultLocation string  `mapstructure:"default_location"`
		DefaultRate     float64 `mapstructure:"default_rate"`
	} `mapstructure:"fuel_api"`

	Export struct {
		Scale         int `mapstructure:"scale"`
		SettleDelayMs int `mapstructure:"settle_delay_ms"`
	} `mapstructure:"export"`

	Monitoring struct {
		Enabled bool `mapstructure:"enabled"`
		Port    int  `mapstructure:"port"`
	} `mapstructure:"monitoring"`
}

func Load() *Config {
	// Load .env file if exists (ignore error in production)
	godotenv.Load()

	v := viper.New()
	v.SetConfigType("yaml")
	v.SetConfigFile("configs/config.yaml")

	// Auto bind environment variables
	v.AutomaticEnv()

	// Set sensible defaults (binary works without config file)
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.cors_allowed_origins", []string{"*"})
	v.SetDefault("server.cors_allowed_methods", []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"})
	v.SetDefault("server.cors_allowed_headers", []string{"Content-Type", "X-Api-Key"})
	v.SetDefault("fuel_api.base_url", "https://fuel.indianapi.in")
	v.SetDefault("fuel_api.timeout_seconds", 15)
	v.SetDefault("fuel_api.history_days", 400)
	v.SetDefault("fuel_api.default_location", "delhi")
	v.SetDefault("fuel_api.default_rate", 94.72)
	v.SetDefault("export.scale", 2)
	v.SetDefault("export.settle_delay_ms", 150)
	v.SetDefault("monitoring.enabled", true)
	v.SetDefault("monitoring.port", 9090)

	// Config file is optional
	if err := v.ReadInConfig(); err != nil {
		log.Printf("[Config] No config file found, using defaults")
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		log.Fatalf("config unmarshal error: %v", err)
	}

	// Override fuel API settings from FUEL_API_* environment variables
	if base := os.Getenv("FUEL_API_BASE_URL"); base != "" {
		cfg.FuelAPI.BaseURL = base
	}
	if loc := os.Getenv("FUEL_API_LOCATION"); loc != "" {
		cfg.FuelAPI.DefaultLocation = loc
	}
	if rate := os.Getenv("FUEL_API_DEFAULT_RATE"); rate != "" {
		if f, err := strconv.ParseFloat(rate, 64); err == nil && f > 0 {
			cfg.FuelAPI.DefaultRate = f
		}
	}

	return &cfg
}
