package config

import (
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

var (
	PORT        string
	DB_URL      string
	JWT_SECRET  string
	CORS_ORIGIN string

	// APP_URL is the public website (front-end); API_URL is this server as
	// reachable from browsers and the payment processor.
	APP_URL string
	API_URL string

	SESSION_SECRET string
	COOKIE_SECURE  bool

	GOOGLE_CLIENT_ID     string
	GOOGLE_CLIENT_SECRET string
	GOOGLE_REDIRECT_URL  string

	STRIPE_SECRET_KEY     string
	STRIPE_WEBHOOK_SECRET string
	DONATION_CURRENCY     string

	SMTP_HOST     string
	SMTP_PORT     string
	SMTP_USER     string
	SMTP_PASSWORD string
	SMTP_FROM     string

	LOG_MODE  string
	LOG_LEVEL string
	LOG_DIR   string
)

func LoadEnv() {
	err := godotenv.Load()
	if err != nil {
		log.Println("No .env file found. Using system environment variables.")
	}

	PORT = getEnv("PORT", "8080")
	DB_URL = mustEnv("DB_URL")
	JWT_SECRET = mustEnv("JWT_SECRET")
	CORS_ORIGIN = getEnv("CORS_ORIGIN", "http://localhost:5173")

	APP_URL = strings.TrimRight(getEnv("APP_URL", "http://localhost:5173"), "/")
	API_URL = strings.TrimRight(getEnv("API_URL", "http://localhost:8080"), "/")

	SESSION_SECRET = mustEnv("SESSION_SECRET")
	COOKIE_SECURE = getEnv("COOKIE_SECURE", "true") != "false"

	// Google sign-in is off when GOOGLE_CLIENT_ID is empty.
	GOOGLE_CLIENT_ID = getEnv("GOOGLE_CLIENT_ID", "")
	GOOGLE_CLIENT_SECRET = getEnv("GOOGLE_CLIENT_SECRET", "")
	GOOGLE_REDIRECT_URL = getEnv("GOOGLE_REDIRECT_URL", "")

	STRIPE_SECRET_KEY = mustEnv("STRIPE_SECRET_KEY")
	STRIPE_WEBHOOK_SECRET = mustEnv("STRIPE_WEBHOOK_SECRET")
	DONATION_CURRENCY = strings.ToLower(getEnv("DONATION_CURRENCY", "ars"))

	SMTP_HOST = getEnv("SMTP_HOST", "")
	SMTP_PORT = getEnv("SMTP_PORT", "587")
	SMTP_USER = getEnv("SMTP_USER", "")
	SMTP_PASSWORD = getEnv("SMTP_PASSWORD", "")
	SMTP_FROM = getEnv("SMTP_FROM", "")

	LOG_MODE = getEnv("LOG_MODE", "dev")
	LOG_LEVEL = getEnv("LOG_LEVEL", "info")
	LOG_DIR = getEnv("LOG_DIR", "logs")
}

// LoadDBOnly is used by the ops CLI, which only needs the database.
func LoadDBOnly() {
	_ = godotenv.Load()
	DB_URL = mustEnv("DB_URL")
	LOG_MODE = getEnv("LOG_MODE", "dev")
	LOG_LEVEL = getEnv("LOG_LEVEL", "info")
	LOG_DIR = getEnv("LOG_DIR", "logs")
}

func mustEnv(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		log.Fatalf("Missing required environment variable: %s", key)
	}
	return v
}

func getEnv(key string, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}
