package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	Port                   string   `mapstructure:"PORT"`
	Env                    string   `mapstructure:"ENV"`
	DatabaseURL            string   `mapstructure:"DATABASE_URL"`
	DBMaxConns             int32    `mapstructure:"DB_MAX_CONNS"`
	DBMinConns             int32    `mapstructure:"DB_MIN_CONNS"`
	CORSOrigins            []string `mapstructure:"CORS_ORIGINS"`
	SessionSecret          string   `mapstructure:"SESSION_SECRET"`
	SessionTTLHours        int      `mapstructure:"SESSION_TTL_HOURS"`
	RememberTTLHours       int      `mapstructure:"REMEMBER_TTL_HOURS"`
	DashboardUpcomingLimit int      `mapstructure:"DASHBOARD_UPCOMING_LIMIT"`
	SeedOnStart            bool     `mapstructure:"SEED_ON_START"`
}

func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigFile(".env")
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("PORT", "8000")
	v.SetDefault("ENV", "development")
	v.SetDefault("DB_MAX_CONNS", 20)
	v.SetDefault("DB_MIN_CONNS", 5)
	v.SetDefault("CORS_ORIGINS", "http://localhost:3000")
	v.SetDefault("SESSION_TTL_HOURS", 12)
	v.SetDefault("REMEMBER_TTL_HOURS", 720)
	v.SetDefault("DASHBOARD_UPCOMING_LIMIT", 8)
	v.SetDefault("SEED_ON_START", false)

	// Bind env vars explicitly so Unmarshal picks them up
	v.BindEnv("PORT")
	v.BindEnv("ENV")
	v.BindEnv("DATABASE_URL")
	v.BindEnv("DB_MAX_CONNS")
	v.BindEnv("DB_MIN_CONNS")
	v.BindEnv("CORS_ORIGINS")
	v.BindEnv("SESSION_SECRET")
	v.BindEnv("SESSION_TTL_HOURS")
	v.BindEnv("REMEMBER_TTL_HOURS")
	v.BindEnv("DASHBOARD_UPCOMING_LIMIT")
	v.BindEnv("SEED_ON_START")

	// Try reading .env file, but don't fail if missing
	_ = v.ReadInConfig()

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if cfg.CORSOrigins == nil {
		origins := v.GetString("CORS_ORIGINS")
		if origins != "" {
			cfg.CORSOrigins = strings.Split(origins, ",")
		}
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	return cfg, nil
}

func (c *Config) IsDev() bool {
	return c.Env == "development"
}

// Validate checks that the configuration is safe to run. Outside of
// development a SESSION_SECRET must be configured so that session
// tokens survive restarts and cannot be forged.
func (c *Config) Validate() error {
	if !c.IsDev() && c.SessionSecret == "" {
		return fmt.Errorf("SESSION_SECRET is required when ENV=%q", c.Env)
	}
	if c.SessionTTLHours <= 0 {
		return fmt.Errorf("SESSION_TTL_HOURS must be positive, got %d", c.SessionTTLHours)
	}
	if c.RememberTTLHours < c.SessionTTLHours {
		return fmt.Errorf("REMEMBER_TTL_HOURS must be at least SESSION_TTL_HOURS")
	}
	if c.DashboardUpcomingLimit <= 0 {
		return fmt.Errorf("DASHBOARD_UPCOMING_LIMIT must be positive, got %d", c.DashboardUpcomingLimit)
	}
	return nil
}
