package config

import (
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Port        string
	DBUrl       string
	JobSecret   string
	JobSchedule string
	AppEnv      string
	EnableDocs  bool
}

func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	jobSecret := getEnv("JOB_SECRET", "")
	if jobSecret == "" {
		log.Println("JOB_SECRET is not set; the batch trigger endpoint is unprotected")
	}

	return &Config{
		Port:        getEnv("PORT", "8080"),
		DBUrl:       getEnv("DB_URL", ""),
		JobSecret:   jobSecret,
		JobSchedule: getEnv("JOB_SCHEDULE", "30 0 * * *"),
		AppEnv:      normalizeEnv(getEnv("APP_ENV", "production")),
		EnableDocs:  getEnvBool("ENABLE_API_DOCS", false),
	}, nil
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	value, exists := os.LookupEnv(key)
	if !exists || value == "" {
		return fallback
	}

	switch strings.ToLower(strings.TrimSpace(value)) {
	case "1", "true", "yes", "on":
		return true
	case "0", "false", "no", "off":
		return false
	default:
		return fallback
	}
}

func normalizeEnv(value string) string {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "dev", "develop", "development", "local":
		return "development"
	case "prod", "production":
		return "production"
	case "stage", "staging":
		return "staging"
	case "test", "testing":
		return "test"
	default:
		return strings.ToLower(strings.TrimSpace(value))
	}
}

func (c *Config) DocsEnabled() bool {
	return c != nil && c.EnableDocs && c.AppEnv == "development"
}
