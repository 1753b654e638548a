package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	Port    string
	LogMode string

	DBDriver   string // postgres, mysql or sqlite
	DBHost     string
	DBUser     string
	DBPassword string
	DBName     string
	DBPort     string

	JWTKey    string
	TokenTTL  time.Duration
	SaltRound int

	AdminEmail    string
	AdminPassword string

	MediaDir     string
	MediaBaseURL string

	PurgeSchedule      string // cron spec for the soft-delete purge
	PurgeRetentionDays int

	// Used by tools that drive the authoring engine against a running API.
	RemoteBaseURL string
	RemoteToken   string
	RemoteTimeout time.Duration
}

// AppConfig is a global variable to access configuration
var AppConfig *Config

// LoadConfig initializes configuration from environment variables or defaults
func LoadConfig() {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found. Using system environment variables.")
	}

	AppConfig = &Config{
		Port:    getEnv("PORT", "3000"),
		LogMode: getEnv("LOG_MODE", "development"),

		DBDriver:   getEnv("DB_DRIVER", "postgres"),
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", ""),
		DBName:     getEnv("DB_NAME", "courses"),
		DBPort:     getEnv("DB_PORT", "5432"),

		JWTKey:    getEnv("JWT_SECRET_KEY", "defaultSecret"),
		TokenTTL:  getEnvDuration("TOKEN_TTL", 24*time.Hour),
		SaltRound: getEnvInt("SALT_ROUND", 10),

		AdminEmail:    getEnv("ADMIN_EMAIL", ""),
		AdminPassword: getEnv("ADMIN_PASSWORD", ""),

		MediaDir:     getEnv("MEDIA_DIR", "./public/media"),
		MediaBaseURL: getEnv("MEDIA_BASE_URL", "/media"),

		PurgeSchedule:      getEnv("PURGE_SCHEDULE", "0 3 * * *"),
		PurgeRetentionDays: getEnvInt("PURGE_RETENTION_DAYS", 30),

		RemoteBaseURL: getEnv("REMOTE_BASE_URL", "http://localhost:3000"),
		RemoteToken:   getEnv("REMOTE_TOKEN", ""),
		RemoteTimeout: getEnvDuration("REMOTE_TIMEOUT", 15*time.Second),
	}

	// Validate critical configuration
	if AppConfig.JWTKey == "defaultSecret" {
		log.Println("Warning: Using default JWT_SECRET_KEY. Update it in your environment.")
	}
	if AppConfig.DBDriver == "sqlite" {
		log.Println("Warning: Using sqlite. Only use it for local development.")
	}
	if AppConfig.AdminEmail == "" || AppConfig.AdminPassword == "" {
		log.Println("Warning: ADMIN_EMAIL or ADMIN_PASSWORD not set. No admin user will be seeded.")
	}
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// getEnvInt retrieves an environment variable as an integer or returns the default integer value
func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	intValue, err := strconv.Atoi(value)
	if err != nil {
		log.Printf("Error converting environment variable %s to int: %v", key, err)
		return defaultValue
	}
	return intValue
}

// getEnvDuration accepts Go durations ("90s", "12h")
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(value)
	if err != nil || d <= 0 {
		log.Printf("Error converting environment variable %s to duration: %v", key, err)
		return defaultValue
	}
	return d
}
