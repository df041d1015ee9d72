package config

import (
	"os"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
)

type Config struct {
	Port       string
	DBPath     string
	CORSOrigin string

	LLMProvider       string
	LLMModel          string
	OpenAIAPIKey      string
	OpenAIBaseURL     string
	AnthropicAPIKey   string
	MaxContextTokens  int
	MaxResponseTokens int

	MessagesPerPage        int
	MaxConversationHistory int
	TypingIndicatorDelay   time.Duration

	MemoryImportanceThreshold float64
	MaxMemoriesInContext      int
}

func getEnv(key, defaultValue string, printEnv bool) string {
	logger := log.Default()
	value := os.Getenv(key)
	if printEnv {
		logger.Info("Env", "key", key, "value", value)
	}
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvInt(key string, defaultValue int, printEnv bool) int {
	value := getEnv(key, "", printEnv)
	if value == "" {
		return defaultValue
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		log.Default().Warn("Invalid integer env, using default", "key", key, "value", value)
		return defaultValue
	}
	return parsed
}

func getEnvFloat(key string, defaultValue float64, printEnv bool) float64 {
	value := getEnv(key, "", printEnv)
	if value == "" {
		return defaultValue
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		log.Default().Warn("Invalid float env, using default", "key", key, "value", value)
		return defaultValue
	}
	return parsed
}

func LoadConfig(printEnv bool) (*Config, error) {
	_ = godotenv.Load()

	conf := &Config{
		Port:       getEnv("PORT", "8000", printEnv),
		DBPath:     getEnv("DB_PATH", "./output/sqlite/disha.db", printEnv),
		CORSOrigin: getEnv("CORS_ORIGIN", "http://localhost:3000", printEnv),

		LLMProvider:       getEnv("LLM_PROVIDER", "openai", printEnv),
		LLMModel:          getEnv("LLM_MODEL", "", printEnv),
		OpenAIAPIKey:      getEnv("OPENAI_API_KEY", "", printEnv),
		OpenAIBaseURL:     getEnv("OPENAI_BASE_URL", "https://api.openai.com/v1", printEnv),
		AnthropicAPIKey:   getEnv("ANTHROPIC_API_KEY", "", printEnv),
		MaxContextTokens:  getEnvInt("MAX_CONTEXT_TOKENS", 8000, printEnv),
		MaxResponseTokens: getEnvInt("MAX_RESPONSE_TOKENS", 1000, printEnv),

		MessagesPerPage:        getEnvInt("MESSAGES_PER_PAGE", 20, printEnv),
		MaxConversationHistory: getEnvInt("MAX_CONVERSATION_HISTORY", 50, printEnv),
		TypingIndicatorDelay:   time.Duration(getEnvFloat("TYPING_INDICATOR_DELAY", 0.5, printEnv) * float64(time.Second)),

		MemoryImportanceThreshold: getEnvFloat("MEMORY_IMPORTANCE_THRESHOLD", 0.7, printEnv),
		MaxMemoriesInContext:      getEnvInt("MAX_MEMORIES_IN_CONTEXT", 5, printEnv),
	}

	return conf, nil
}
