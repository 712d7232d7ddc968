package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

var (
	PORT   string
	DB_URL string

	// Separate signing secrets per token audience. A platform token can
	// never verify against the storefront key and vice versa.
	JWT_PLATFORM_SECRET   string
	JWT_STOREFRONT_SECRET string

	CORS_ORIGIN   string
	APP_URL       string
	COOKIE_DOMAIN string
	COOKIE_SECURE bool

	GOOGLE_CLIENT_ID         string
	GOOGLE_CLIENT_SECRET     string
	GOOGLE_REDIRECT_URL      string
	GOOGLE_FRONTEND_REDIRECT string

	STRIPE_SECRET_KEY string
)

func LoadEnv() {
	err := godotenv.Load()
	if err != nil {
		log.Println("No .env file found. Using system environment variables.")
	}

	PORT = getEnv("PORT", "8080")
	DB_URL = mustEnv("DB_URL")

	JWT_PLATFORM_SECRET = mustEnv("JWT_PLATFORM_SECRET")
	JWT_STOREFRONT_SECRET = mustEnv("JWT_STOREFRONT_SECRET")
	if JWT_PLATFORM_SECRET == JWT_STOREFRONT_SECRET {
		log.Fatal("JWT_PLATFORM_SECRET and JWT_STOREFRONT_SECRET must differ")
	}

	CORS_ORIGIN = getEnv("CORS_ORIGIN", "http://localhost:5173")
	APP_URL = getEnv("APP_URL", "http://localhost:5173")
	COOKIE_DOMAIN = getEnv("COOKIE_DOMAIN", "")
	COOKIE_SECURE = getEnv("COOKIE_SECURE", "false") == "true"

	GOOGLE_CLIENT_ID = getEnv("GOOGLE_CLIENT_ID", "")
	GOOGLE_CLIENT_SECRET = getEnv("GOOGLE_CLIENT_SECRET", "")
	GOOGLE_REDIRECT_URL = getEnv("GOOGLE_REDIRECT_URL", "")
	GOOGLE_FRONTEND_REDIRECT = getEnv("GOOGLE_FRONTEND_REDIRECT", "")

	STRIPE_SECRET_KEY = getEnv("STRIPE_SECRET_KEY", "")
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
