package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	Port   string
	AppEnv string // development, production

	DBDriver   string // postgres, mysql, sqlite
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBDSN      string // Overrides the host/port/user fields when set

	JWTKey    string
	JWTTTL    time.Duration
	SaltRound int // bcrypt cost

	AdminUsername string
	AdminEmail    string
	AdminPassword string
	SeedFile      string

	OpenRouterAPIKey string
	OpenRouterURL    string
	ChatModel        string
	ChatReferer      string
	ChatTitle        string
	ChatTimeout      time.Duration

	SendGridAPIKey   string
	DigestSender     string
	DigestRecipients []string
	DigestSchedule   string
}

// AppConfig is a global variable to access configuration
var AppConfig *Config

// LoadConfig initializes configuration from environment variables or defaults
func LoadConfig() {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found. Using system environment variables.")
	}

	AppConfig = FromEnv()

	// Validate critical configuration
	if AppConfig.JWTKey == "defaultSecret" {
		log.Println("Warning: Using default JWT_SECRET_KEY. Update it in your environment.")
	}
	if AppConfig.AdminPassword == "admin123" {
		log.Println("Warning: Using default ADMIN_PASSWORD. Update it in your environment.")
	}
	if AppConfig.OpenRouterAPIKey == "" {
		log.Println("Warning: OPENROUTER_API_KEY is not set. The chat assistant is disabled.")
	}
}

// FromEnv builds a Config from the current environment without touching .env files
func FromEnv() *Config {
	return &Config{
		Port:   getEnv("PORT", "3000"),
		AppEnv: getEnv("APP_ENV", "development"),

		DBDriver:   strings.ToLower(getEnv("DB_DRIVER", "postgres")),
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", ""),
		DBName:     getEnv("DB_NAME", "academy"),
		DBDSN:      getEnv("DB_DSN", ""),

		JWTKey:    getEnv("JWT_SECRET_KEY", "defaultSecret"),
		JWTTTL:    time.Duration(getEnvInt("JWT_TTL_HOURS", 24)) * time.Hour,
		SaltRound: getEnvInt("SALT_ROUND", 10),

		AdminUsername: getEnv("ADMIN_USERNAME", "admin"),
		AdminEmail:    getEnv("ADMIN_EMAIL", "admin@oguzai.com"),
		AdminPassword: getEnv("ADMIN_PASSWORD", "admin123"),
		SeedFile:      getEnv("SEED_FILE", ""),

		OpenRouterAPIKey: getEnv("OPENROUTER_API_KEY", ""),
		OpenRouterURL:    getEnv("OPENROUTER_URL", "https://openrouter.ai/api/v1/chat/completions"),
		ChatModel:        getEnv("CHAT_MODEL", "deepseek/deepseek-chat"),
		ChatReferer:      getEnv("CHAT_REFERER", "http://localhost:3000"),
		ChatTitle:        getEnv("CHAT_TITLE", "Oguz AI Academy Chatbot"),
		ChatTimeout:      time.Duration(getEnvInt("CHAT_TIMEOUT_SECONDS", 30)) * time.Second,

		SendGridAPIKey:   getEnv("SENDGRID_API_KEY", ""),
		DigestSender:     getEnv("DIGEST_SENDER", "no-reply@oguzai.com"),
		DigestRecipients: getEnvList("DIGEST_RECIPIENTS"),
		DigestSchedule:   getEnv("DIGEST_SCHEDULE", "0 8 * * *"),
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

// getEnvList splits a comma separated variable, dropping blanks
func getEnvList(key string) []string {
	var out []string
	for _, part := range strings.Split(os.Getenv(key), ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
