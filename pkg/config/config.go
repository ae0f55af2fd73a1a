package config

import (
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Port         string        `envconfig:"PORT" default:"8080"`
	DBDriver     string        `envconfig:"DB_DRIVER" default:"sqlite"`
	DBDSN        string        `envconfig:"DB_DSN" default:"file:ecommerce.db"`
	JWTSecret    string        `envconfig:"JWT_SECRET" default:"dev-secret-change-me"`
	JWTTTL       time.Duration `envconfig:"JWT_TTL" default:"24h"`
	KafkaBrokers string        `envconfig:"KAFKA_BROKERS" default:""`
	KafkaTopic   string        `envconfig:"KAFKA_TOPIC" default:"order-confirmations"`
	RateLimit    float64       `envconfig:"RATE_LIMIT" default:"20"`
	RateBurst    int           `envconfig:"RATE_BURST" default:"40"`
	LogLevel     string        `envconfig:"LOG_LEVEL" default:"info"`
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
