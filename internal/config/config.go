package config

import (
	"os"
	"strconv"
)

type Config struct {
	HTTP_PORT        string `env:"HTTP_PORT"`
	DB_STRING        string `env:"DB_STRING"`
	KAFKA_BROKERS    string `env:"KAFKA_BROKERS"`
	KAFKA_TOPIC      string `env:"KAFKA_TOPIC"`
	KAFKA_GROUP_ID   string `env:"KAFKA_GROUP_ID"`
	COLLATION_LOCALE string `env:"COLLATION_LOCALE"`
	LOG_LEVEL        string `env:"LOG_LEVEL"`
	SEED_FIXTURES    bool   `env:"SEED_FIXTURES"`
}

func LoadConfig() (*Config, error) {
	cfg := &Config{
		HTTP_PORT:        os.Getenv("HTTP_PORT"),
		DB_STRING:        os.Getenv("DB_STRING"),
		KAFKA_BROKERS:    os.Getenv("KAFKA_BROKERS"),
		KAFKA_TOPIC:      os.Getenv("KAFKA_TOPIC"),
		KAFKA_GROUP_ID:   os.Getenv("KAFKA_GROUP_ID"),
		COLLATION_LOCALE: os.Getenv("COLLATION_LOCALE"),
		LOG_LEVEL:        os.Getenv("LOG_LEVEL"),
		SEED_FIXTURES:    true,
	}

	if cfg.HTTP_PORT == "" {
		cfg.HTTP_PORT = "8080"
	}
	if cfg.KAFKA_TOPIC == "" {
		cfg.KAFKA_TOPIC = "shipments"
	}
	if cfg.KAFKA_GROUP_ID == "" {
		cfg.KAFKA_GROUP_ID = "velocity-shipments"
	}
	if cfg.COLLATION_LOCALE == "" {
		cfg.COLLATION_LOCALE = "id"
	}
	if cfg.LOG_LEVEL == "" {
		cfg.LOG_LEVEL = "info"
	}
	if v := os.Getenv("SEED_FIXTURES"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return nil, err
		}
		cfg.SEED_FIXTURES = b
	}

	return cfg, nil
}

// MemoryMode is true when no database is configured and fixtures are
// served from memory.
func (c *Config) MemoryMode() bool {
	return c.DB_STRING == ""
}

func (c *Config) KafkaEnabled() bool {
	return c.KAFKA_BROKERS != ""
}
