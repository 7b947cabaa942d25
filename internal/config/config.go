package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	TelegramToken  string
	TelegramChatID int64
	OpenAIAPIKey   string
	GitHubToken    string
	StateFile      string
	OffsetFile     string
	ReleaseLimit   int
	FetchTimeout   time.Duration
	SendTimeout    time.Duration
	ParseTimeout   time.Duration
	EnrichTimeout  time.Duration
	ClaudeTimeout  time.Duration
}

func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		TelegramToken:  getEnv("TELEGRAM_BOT_TOKEN", ""),
		TelegramChatID: getEnvAsInt64("TELEGRAM_CHAT_ID", 0),
		OpenAIAPIKey:   getEnv("OPENAI_API_KEY", ""),
		GitHubToken:    getEnv("GITHUB_TOKEN", ""),
		StateFile:      getEnv("DIGEST_STATE_FILE", "digest_state.json"),
		OffsetFile:     getEnv("DIGEST_OFFSET_FILE", ".bot_offset"),
		ReleaseLimit:   getEnvAsInt("RELEASE_LIMIT", 10),
		FetchTimeout:   getEnvAsDuration("FETCH_TIMEOUT", 30*time.Second),
		SendTimeout:    getEnvAsDuration("SEND_TIMEOUT", 10*time.Second),
		ParseTimeout:   getEnvAsDuration("PARSE_TIMEOUT", 60*time.Second),
		EnrichTimeout:  getEnvAsDuration("ENRICH_TIMEOUT", 60*time.Second),
		ClaudeTimeout:  getEnvAsDuration("CLAUDE_TIMEOUT", 300*time.Second),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsInt64(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
