package main

import (
	"fmt"
	"os"
	"strings"
)

// Config holds all environment variables for the storefront service.
type Config struct {
	Port         string
	Env          string
	MongoURL     string
	MongoDB      string
	RedisURL     string
	KafkaBrokers []string
	KafkaTopic   string
	JWTSecret    string
}

// LoadConfig loads environment variables into a Config struct and validates
// them.
func LoadConfig() (*Config, error) {
	cfg := &Config{
		Port:       os.Getenv("PORT"),
		Env:        os.Getenv("APP_ENV"),
		MongoURL:   os.Getenv("MONGO_URL"),
		MongoDB:    os.Getenv("MONGO_DB"),
		RedisURL:   os.Getenv("REDIS_URL"),
		KafkaTopic: os.Getenv("KAFKA_TOPIC"),
		JWTSecret:  os.Getenv("JWT_SECRET"),
	}

	if cfg.Port == "" {
		cfg.Port = "8080"
	}
	if cfg.Env == "" {
		cfg.Env = "development"
	}
	if cfg.MongoDB == "" {
		cfg.MongoDB = "storefront"
	}
	if cfg.RedisURL == "" {
		cfg.RedisURL = "redis://localhost:6379"
	}
	if cfg.KafkaTopic == "" {
		cfg.KafkaTopic = "order-events"
	}

	brokers := os.Getenv("KAFKA_BROKERS")
	if brokers == "" {
		brokers = "localhost:9092"
	}
	cfg.KafkaBrokers = strings.Split(brokers, ",")

	if cfg.MongoURL == "" {
		return nil, fmt.Errorf("MONGO_URL is required")
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}

	return cfg, nil
}
