package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	Port        string
	DatabaseURL string
	JWTSecret   string

	// Receipt extraction (external AI service, best-effort)
	ExtractorURL    string
	ExtractorAPIKey string

	// Email Configuration
	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	FromEmail    string
	FromName     string

	// Budget alerting
	DefaultCurrency     string
	BudgetAlertInterval time.Duration
}

func Load() *Config {
	smtpPort, _ := strconv.Atoi(getEnv("SMTP_PORT", "2525"))
	alertMinutes, _ := strconv.Atoi(getEnv("BUDGET_ALERT_INTERVAL_MINUTES", "60"))

	return &Config{
		Port:        getEnv("PORT", "8080"),
		DatabaseURL: getEnv("DATABASE_URL", "user:password@tcp(localhost:3306)/fuelcosmos?charset=utf8mb4&parseTime=True&loc=Local"),
		JWTSecret:   getEnv("JWT_SECRET", "your-secret-key"),

		ExtractorURL:    getEnv("RECEIPT_EXTRACTOR_URL", "http://localhost:9090/v1/extract"),
		ExtractorAPIKey: getEnv("RECEIPT_EXTRACTOR_API_KEY", ""),

		// Email settings
		SMTPHost:     getEnv("SMTP_HOST", "sandbox.smtp.mailtrap.io"),
		SMTPPort:     smtpPort,
		SMTPUsername: getEnv("SMTP_USERNAME", ""),
		SMTPPassword: getEnv("SMTP_PASSWORD", ""),
		FromEmail:    getEnv("FROM_EMAIL", "noreply@fuelcosmos.com"),
		FromName:     getEnv("FROM_NAME", "FuelCosmos"),

		DefaultCurrency:     getEnv("DEFAULT_CURRENCY", "EUR"),
		BudgetAlertInterval: time.Duration(alertMinutes) * time.Minute,
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
