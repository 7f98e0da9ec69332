package config

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	APIKey       string
	AuthProvider string
	AppEnv       string
	DbUser       string
	DbPassword   string
	DbHost       string
	DbName       string
	DbPort       string
	SSLMode      string
	Port         int
}

func Load() (*Config, error) {
	// Load .env file (only in development)
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	port, _ := strconv.Atoi(os.Getenv("PORT"))
	if port == 0 {
		port = 8080
	}

	apiKey := os.Getenv("API_KEY")
	if apiKey == "" {
		apiKey = "sk_test_123"
	}

	provider := os.Getenv("AUTH_PROVIDER")
	if provider == "" {
		provider = "sandbox"
	}

	return &Config{
		APIKey:       apiKey,
		AuthProvider: provider,
		AppEnv:       os.Getenv("APP_ENV"),
		DbUser:       os.Getenv("DB_USER"),
		DbPassword:   os.Getenv("DB_PASSWORD"),
		DbHost:       os.Getenv("DB_HOST"),
		DbName:       os.Getenv("DB_NAME"),
		DbPort:       os.Getenv("DB_PORT"),
		SSLMode:      os.Getenv("SSL_MODE"),
		Port:         port,
	}, nil
}

func (c *Config) Development() bool {
	return c.AppEnv != "production"
}

func (c *Config) DatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s&connect_timeout=180",
		c.DbUser,
		c.DbPassword,
		c.DbHost,
		c.DbPort,
		c.DbName,
		c.SSLMode,
	)
}
