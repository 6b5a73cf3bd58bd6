package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

type Config struct {
	PostgresHost     string `env:"POSTGRES_HOST"     envDefault:"localhost"`
	PostgresPort     string `env:"POSTGRES_PORT"     envDefault:"5432"`
	PostgresUser     string `env:"POSTGRES_USER"     envDefault:"bidwar_user"`
	PostgresPassword string `env:"POSTGRES_PASSWORD" envDefault:"bidwar_password"`
	PostgresDb       string `env:"POSTGRES_DB"       envDefault:"bidwar_db"`

	HttpServerPort uint16 `env:"HTTP_SERVER_PORT" envDefault:"8082" validate:"min=1000,max=65535"`

	// Shared secret used to verify tokens issued by the user service
	JwtSecret string `env:"JWT_SECRET" validate:"required"`

	NatsURL               string        `env:"NATS_URL"                envDefault:"nats://localhost:4222"`
	EventReconnectBackoff time.Duration `env:"EVENT_RECONNECT_BACKOFF" envDefault:"7s"`

	SweepInterval time.Duration `env:"SWEEP_INTERVAL" envDefault:"1m" validate:"min=1s"`
}

func LoadConfig() (*Config, error) {
	// Load environment variables from .env file
	err := godotenv.Load(".env")
	if err != nil {
		zap.L().Debug(".env file not found", zap.Error(err))
	}

	cfg := &Config{}
	if err = env.Parse(cfg); err != nil {
		zap.L().Error("config_load_failed", zap.Error(err))
		return nil, err
	}

	validate := validator.New()
	if err = validate.Struct(cfg); err != nil {
		zap.L().Error("config_validation_failed", zap.Error(err))
		return nil, err
	}
	return cfg, nil
}

// GetDSN returns the PostgreSQL connection string
func (c *Config) GetDSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		c.PostgresHost,
		c.PostgresPort,
		c.PostgresUser,
		c.PostgresPassword,
		c.PostgresDb,
	)
}
