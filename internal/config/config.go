package config

import (
	"os"
	"strconv"
)

type Config struct {
	Port             string
	DBDriver         string
	DBHost           string
	DBPort           string
	DBUser           string
	DBPassword       string
	DBName           string
	JWTSecret        string
	JWTExpiryMinutes int
	GinMode          string
	OpenAIAPIKey     string
}

func Load() *Config {
	return &Config{
		Port:             getEnv("PORT", "8080"),
		DBDriver:         getEnv("DB_DRIVER", "postgres"),
		DBHost:           getEnv("DB_HOST", "localhost"),
		DBPort:           getEnv("DB_PORT", "5432"),
		DBUser:           getEnv("DB_USER", "todouser"),
		DBPassword:       getEnv("DB_PASSWORD", "todopassword"),
		DBName:           getEnv("DB_NAME", "todos"),
		JWTSecret:        getEnv("JWT_SECRET_KEY", "default-secret-key-change-me"),
		JWTExpiryMinutes: getEnvInt("JWT_EXPIRATION_MINUTES", 1440),
		GinMode:          getEnv("GIN_MODE", "debug"),
		OpenAIAPIKey:     getEnv("OPENAI_API_KEY", ""),
	}
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil || n <= 0 {
		return defaultValue
	}
	return n
}
