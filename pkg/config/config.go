package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Auth     AuthConfig
	Log      LogConfig
	Booking  BookingConfig
}

type ServerConfig struct {
	Address      string        `env:"SERVER_ADDRESS" envDefault:":5000"`
	WriteTimeout time.Duration `env:"SERVER_WRITE_TIMEOUT" envDefault:"15s"`
	ReadTimeout  time.Duration `env:"SERVER_READ_TIMEOUT" envDefault:"15s"`
	IdleTimeout  time.Duration `env:"SERVER_IDLE_TIMEOUT" envDefault:"30s"`
}

type DatabaseConfig struct {
	Host         string `env:"POSTGRES_HOST" envDefault:"localhost"`
	Port         string `env:"POSTGRES_PORT" envDefault:"5432"`
	Name         string `env:"POSTGRES_DB" envDefault:"babysitter"`
	User         string `env:"POSTGRES_USER" envDefault:"postgres"`
	Password     string `env:"POSTGRES_PASSWORD"`
	MaxPoolConns int    `env:"MAX_CONNS" envDefault:"99"`
}

type AuthConfig struct {
	JWTSecret string        `env:"JWT_SECRET"`
	Issuer    string        `env:"JWT_ISSUER" envDefault:"babysitter"`
	TokenTTL  time.Duration `env:"JWT_TTL" envDefault:"24h"`
}

type LogConfig struct {
	Level  string `env:"LOG_LEVEL" envDefault:"info"`
	Format string `env:"LOG_FORMAT" envDefault:"json"`
}

type BookingConfig struct {
	NumberAttempts     int  `env:"BOOKING_NUMBER_ATTEMPTS" envDefault:"5"`
	StatusLabelsFromDB bool `env:"STATUS_LABELS_FROM_DB" envDefault:"false"`
}

func (dc *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s dbname=%s user=%s password=%s pool_max_conns=%d",
		dc.Host,
		dc.Port,
		dc.Name,
		dc.User,
		dc.Password,
		dc.MaxPoolConns,
	)
}

func NewConfig() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.Database.MaxPoolConns < 1 {
		return fmt.Errorf("database config error: MAX_CONNS must be positive, got %d", c.Database.MaxPoolConns)
	}
	if c.Booking.NumberAttempts < 1 {
		return fmt.Errorf("booking config error: BOOKING_NUMBER_ATTEMPTS must be positive, got %d", c.Booking.NumberAttempts)
	}
	switch c.Log.Format {
	case "json", "text":
	default:
		return fmt.Errorf("log config error: unknown LOG_FORMAT %q", c.Log.Format)
	}
	return nil
}
