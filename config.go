package main

import (
	"fmt"
	"os"
)

// Config holds all environment variables for the service.
type Config struct {
	Port      string
	MongoURI  string
	DBName    string
	JWTSecret string
}

// LoadConfig reads the environment into a Config and validates the
// required fields.
func LoadConfig() (*Config, error) {
	cfg := &Config{
		Port:      os.Getenv("PORT"),
		MongoURI:  os.Getenv("MONGO_URI"),
		DBName:    os.Getenv("DB_NAME"),
		JWTSecret: os.Getenv("JWT_SECRET"),
	}

	if cfg.Port == "" {
		cfg.Port = "8080"
	}
	if cfg.DBName == "" {
		cfg.DBName = "product_manager"
	}

	if cfg.MongoURI == "" {
		return nil, fmt.Errorf("MONGO_URI is required")
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}

	return cfg, nil
}
