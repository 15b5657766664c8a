package config

import (
	"os"

	"github.com/joho/godotenv"
)

// AppConfig collects everything the service reads from the environment.
// It is built once in main and handed to the components that need it;
// nothing else touches os.Getenv.
type AppConfig struct {
	Port              string
	Debug             bool
	DBHost            string
	DBUser            string
	DBPassword        string
	DBName            string
	DBPort            string
	GatewaySecret     string // shared secret for transport relay endpoints; empty disables the check
	JWTSecret         string
	AdminUser         string
	AdminPasswordHash string // bcrypt hash of the operator password
}

func Load() *AppConfig {
	// Missing .env is fine in deployed environments.
	_ = godotenv.Load()

	return &AppConfig{
		Port:              getEnv("PORT", "8080"),
		Debug:             os.Getenv("DEBUG") == "true",
		DBHost:            getEnv("DB_HOST", "localhost"),
		DBUser:            getEnv("DB_USER", "postgres"),
		DBPassword:        os.Getenv("DB_PASSWORD"),
		DBName:            getEnv("DB_NAME", "reliefgrid"),
		DBPort:            getEnv("DB_PORT", "5432"),
		GatewaySecret:     os.Getenv("GATEWAY_SECRET"),
		JWTSecret:         os.Getenv("JWT_SECRET"),
		AdminUser:         getEnv("ADMIN_USER", "admin"),
		AdminPasswordHash: os.Getenv("ADMIN_PASSWORD_HASH"),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
