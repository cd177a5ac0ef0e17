package config

import (
	"errors"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port        string
	Environment string

	DatabaseDriver string
	DatabaseURL    string
	RedisURL       string

	SessionStore string
	SessionTTL   time.Duration

	QuestionSource   string
	QuestionBankPath string
	SettingsPath     string
	ReportsDir       string

	LLMProvider  string
	GeminiAPIKey string
	GeminiModel  string
	OllamaURL    string
	OllamaModel  string
	LLMTimeout   time.Duration

	Events EventConfig
}

// LoadConfig reads the environment, loading .env first when present.
func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}

	return &Config{
		Port:        getEnv("PORT", "8080"),
		Environment: getEnv("ENVIRONMENT", "development"),

		DatabaseDriver: strings.ToLower(getEnv("DATABASE_DRIVER", "postgres")),
		DatabaseURL:    getEnv("DATABASE_URL", ""),
		RedisURL:       getEnv("REDIS_URL", "redis://localhost:6379"),

		SessionStore: strings.ToLower(getEnv("SESSION_STORE", "memory")),
		SessionTTL:   getEnvAsDuration("SESSION_TTL", 2*time.Hour),

		QuestionSource:   strings.ToLower(getEnv("QUESTION_SOURCE", "file")),
		QuestionBankPath: getEnv("QUESTION_BANK_PATH", "config/question_bank.yaml"),
		SettingsPath:     getEnv("SETTINGS_PATH", ""),
		ReportsDir:       getEnv("REPORTS_DIR", "reports"),

		LLMProvider:  strings.ToLower(getEnv("LLM_PROVIDER", "none")),
		GeminiAPIKey: getEnv("GEMINI_API_KEY", ""),
		GeminiModel:  getEnv("GEMINI_MODEL", "gemini-2.5-flash"),
		OllamaURL:    getEnv("OLLAMA_URL", "http://localhost:11434"),
		OllamaModel:  getEnv("OLLAMA_MODEL", "mistral"),
		LLMTimeout:   getEnvAsDuration("LLM_TIMEOUT", 30*time.Second),

		Events: EventConfig{
			Enabled:        getEnvAsBool("EVENTS_ENABLED", false),
			Publisher:      strings.ToLower(getEnv("EVENTS_PUBLISHER", "kafka")),
			KafkaBrokers:   getEnv("KAFKA_BROKERS", "localhost:9092"),
			InterviewTopic: getEnv("INTERVIEW_TOPIC", "interview-events"),
		},
	}, nil
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func (c *Config) UsesDatabase() bool {
	return c.DatabaseURL != ""
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvAsInt(key string, defaultValue int) int {
	if v, err := strconv.Atoi(os.Getenv(key)); err == nil {
		return v
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if v, err := strconv.ParseBool(os.Getenv(key)); err == nil {
		return v
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if v, err := time.ParseDuration(os.Getenv(key)); err == nil {
		return v
	}
	return defaultValue
}
