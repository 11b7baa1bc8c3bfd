package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config is the service configuration, loaded from environment variables.
type Config struct {
	Provider         string
	QuestionsDir     string
	BehavioralPolicy string
	LLMTimeout       time.Duration
	LLMRetries       int
}

// LoadConfig reads and validates configuration from the environment.
func LoadConfig() (*Config, error) {
	config := &Config{
		Provider:         getEnvOrDefault("AI_PROVIDER", "gemini"),
		QuestionsDir:     getEnvOrDefault("QUESTIONS_DIR", "./questions"),
		BehavioralPolicy: getEnvOrDefault("BEHAVIORAL_POLICY", "front"),
		LLMTimeout:       getEnvDuration("LLM_TIMEOUT", 10*time.Second),
		LLMRetries:       getEnvInt("LLM_RETRIES", 2),
	}
	if err := validateConfig(config); err != nil {
		return nil, err
	}
	return config, nil
}

func validateConfig(config *Config) error {
	if config.Provider != "gemini" {
		return errors.New("unsupported AI provider: " + config.Provider + ". Currently supported: gemini")
	}
	switch config.BehavioralPolicy {
	case "front", "back", "interleaved":
	default:
		return errors.New("BEHAVIORAL_POLICY must be one of: front, back, interleaved")
	}
	if config.LLMRetries < 0 || config.LLMRetries > 5 {
		return errors.New("LLM_RETRIES must be between 0 and 5")
	}
	if config.LLMTimeout < time.Second || config.LLMTimeout > time.Minute {
		return fmt.Errorf("LLM_TIMEOUT must be between 1s and 1m, got %s", config.LLMTimeout)
	}
	return nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
