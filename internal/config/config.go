package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	// Server
	Port     string `mapstructure:"PORT"`
	Env      string `mapstructure:"ENV"`
	LogLevel string `mapstructure:"LOG_LEVEL"`

	// Player statistics source
	PlayerStatsPath string `mapstructure:"PLAYER_STATS_PATH"`
	DatabaseURL     string `mapstructure:"DATABASE_URL"`

	// Redis
	RedisURL        string `mapstructure:"REDIS_URL"`
	CacheExpiration int    `mapstructure:"CACHE_EXPIRATION"`

	// CORS
	CorsOrigins []string `mapstructure:"CORS_ORIGINS"`

	// Simulation
	MaxSimulations    int `mapstructure:"MAX_SIMULATIONS"`
	SimulationWorkers int `mapstructure:"SIMULATION_WORKERS"`
	HistogramBins     int `mapstructure:"HISTOGRAM_BINS"`

	// Optimization
	SalaryCap  int `mapstructure:"SALARY_CAP"`
	RosterSize int `mapstructure:"ROSTER_SIZE"`
}

func LoadConfig() (*Config, error) {
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")
	viper.AddConfigPath("..")

	// Set defaults
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("ENV", "development")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("PLAYER_STATS_PATH", "data/player_stats.csv")
	viper.SetDefault("DATABASE_URL", "")
	viper.SetDefault("REDIS_URL", "")
	viper.SetDefault("CACHE_EXPIRATION", 3600) // 1 hour in seconds
	viper.SetDefault("CORS_ORIGINS", "http://localhost:5173,http://localhost:3000")
	viper.SetDefault("MAX_SIMULATIONS", 100000)
	viper.SetDefault("SIMULATION_WORKERS", 4)
	viper.SetDefault("HISTOGRAM_BINS", 20)
	viper.SetDefault("SALARY_CAP", 50000)
	viper.SetDefault("ROSTER_SIZE", 6)

	// Read from environment
	viper.AutomaticEnv()

	// Read config file if exists
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	// Parse CORS origins from comma-separated string
	if corsStr := viper.GetString("CORS_ORIGINS"); corsStr != "" {
		config.CorsOrigins = strings.Split(corsStr, ",")
	}

	return &config, nil
}

func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}
