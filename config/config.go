package config

import (
	"fmt"

	env "github.com/caarlos0/env/v11"
)

// Config holds everything read from the environment. Defaults match the
// development setup in .env.example.
type Config struct {
	HTTPAddr string `env:"HTTP_ADDR" envDefault:":8082"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	MongoURI string `env:"MONGODB_URL" envDefault:"mongodb://localhost:27017"`
	MongoDB  string `env:"MONGODB_NAME" envDefault:"shopcart"`

	JWTSecret           string `env:"JWT_SECRET"`
	JWTAccessExpiryMins int    `env:"JWT_ACCESS_EXPIRATION_MINUTES" envDefault:"30"`

	DefaultWalletMoney float64 `env:"DEFAULT_WALLET_MONEY" envDefault:"500"`
	DefaultAddress     string  `env:"DEFAULT_ADDRESS" envDefault:"ADDRESS_NOT_SET"`
	MinAddressLength   int     `env:"MIN_ADDRESS_LENGTH" envDefault:"20"`

	SendgridAPIKey string `env:"SENDGRID_API_KEY"`
	EmailSender    string `env:"EMAIL_SENDER"`
}

// Load parses the environment into a Config.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, err
	}
	if cfg.JWTSecret == "" {
		return Config{}, fmt.Errorf("jwt secret is empty: set JWT_SECRET")
	}
	return cfg, nil
}
