package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Port            string        `mapstructure:"PORT"`
	Env             string        `mapstructure:"ENV"`
	DatabaseURL     string        `mapstructure:"DATABASE_URL"`
	DBMaxConns      int32         `mapstructure:"DB_MAX_CONNS"`
	DBMinConns      int32         `mapstructure:"DB_MIN_CONNS"`
	RedisURL        string        `mapstructure:"REDIS_URL"`
	KafkaBrokers    string        `mapstructure:"KAFKA_BROKERS"`
	AuthIssuer      string        `mapstructure:"AUTH_ISSUER"`
	AuthAudience    string        `mapstructure:"AUTH_AUDIENCE"`
	JWTSigningKey   string        `mapstructure:"JWT_SIGNING_KEY"`
	CORSOrigins     []string      `mapstructure:"CORS_ORIGINS"`
	BookingLeadTime time.Duration `mapstructure:"BOOKING_LEAD_TIME"`
	LockBackend     string        `mapstructure:"LOCK_BACKEND"`
	LockTTL         time.Duration `mapstructure:"LOCK_TTL"`
	MaxBodySize     string        `mapstructure:"MAX_BODY_SIZE"`
	RequestTimeout  time.Duration `mapstructure:"REQUEST_TIMEOUT"`
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
	v.SetDefault("BOOKING_LEAD_TIME", "15m")
	v.SetDefault("LOCK_BACKEND", "local")
	v.SetDefault("LOCK_TTL", "10s")
	v.SetDefault("MAX_BODY_SIZE", "1M")
	v.SetDefault("REQUEST_TIMEOUT", "30s")

	// Bind env vars explicitly so Unmarshal picks them up
	v.BindEnv("PORT")
	v.BindEnv("ENV")
	v.BindEnv("DATABASE_URL")
	v.BindEnv("DB_MAX_CONNS")
	v.BindEnv("DB_MIN_CONNS")
	v.BindEnv("REDIS_URL")
	v.BindEnv("KAFKA_BROKERS")
	v.BindEnv("AUTH_ISSUER")
	v.BindEnv("AUTH_AUDIENCE")
	v.BindEnv("JWT_SIGNING_KEY")
	v.BindEnv("CORS_ORIGINS")
	v.BindEnv("BOOKING_LEAD_TIME")
	v.BindEnv("LOCK_BACKEND")
	v.BindEnv("LOCK_TTL")
	v.BindEnv("MAX_BODY_SIZE")
	v.BindEnv("REQUEST_TIMEOUT")

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

// IsProduction returns true when the server is configured for production mode.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// KafkaBrokerList splits KAFKA_BROKERS into individual broker addresses.
// An empty list disables event publishing.
func (c *Config) KafkaBrokerList() []string {
	var brokers []string
	for _, b := range strings.Split(c.KafkaBrokers, ",") {
		if b = strings.TrimSpace(b); b != "" {
			brokers = append(brokers, b)
		}
	}
	return brokers
}

// Validate checks that the configuration is safe to run. Production requires
// token verification material; the booking lead time must stay positive so the
// lead-time check remains meaningful.
func (c *Config) Validate() error {
	if c.BookingLeadTime <= 0 {
		return fmt.Errorf("BOOKING_LEAD_TIME must be positive, got %s", c.BookingLeadTime)
	}

	if c.RequestTimeout <= 0 {
		return fmt.Errorf("REQUEST_TIMEOUT must be positive, got %s", c.RequestTimeout)
	}

	switch c.LockBackend {
	case "local":
	case "redis":
		if c.RedisURL == "" {
			return fmt.Errorf("REDIS_URL is required when LOCK_BACKEND is \"redis\"")
		}
		if c.LockTTL <= 0 {
			return fmt.Errorf("LOCK_TTL must be positive when LOCK_BACKEND is \"redis\", got %s", c.LockTTL)
		}
	default:
		return fmt.Errorf("LOCK_BACKEND must be \"local\" or \"redis\", got %q", c.LockBackend)
	}

	if c.IsProduction() && c.JWTSigningKey == "" && c.AuthIssuer == "" {
		return fmt.Errorf(
			"JWT_SIGNING_KEY or AUTH_ISSUER must be set in production. " +
				"Refusing to start without token verification material")
	}

	return nil
}
