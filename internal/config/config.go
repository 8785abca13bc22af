package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App       AppConfig
	Auth      AuthConfig
	Ai        AIConfig
	Speech    SpeechConfig
	Retrieval RetrievalConfig
	Session   SessionConfig
}

type AppConfig struct {
	Port               string
	BaseURL            string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
	RateLimitPerMinute int
}

type AuthConfig struct {
	JwtSecret    string
	TokenTTL     time.Duration
	SeedUsername string
	SeedPassword string
}

type AIConfig struct {
	LLMProvider   string // "ollama" or "openai"
	LLMModel      string // e.g. "llama3", "gpt-4o-mini"
	OllamaBaseURL string
	OpenAIBaseURL string
	OpenAIAPIKey  string
	Grader        string // "heuristic" or "model"
}

type SpeechConfig struct {
	SttBaseURL     string
	SttFallbackURL string
	SttModel       string
	TtsBaseURL     string
	TtsModel       string
	TtsVoice       string
	APIKey         string
}

type RetrievalConfig struct {
	Mode           string // "lexical" or "vector"
	CorpusPath     string
	TopK           int
	Collection     string
	EmbeddingModel string
}

type SessionConfig struct {
	IdleTTL time.Duration
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			BaseURL:            getEnv("APP_BASE_URL", "http://localhost:3000"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "app.log.csv"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
			RateLimitPerMinute: getEnvAsInt("RATE_LIMIT_PER_MINUTE", 30),
		},
		Auth: AuthConfig{
			JwtSecret:    getEnv("JWT_SECRET", ""),
			TokenTTL:     getEnvAsDuration("JWT_TOKEN_TTL", 30*time.Minute),
			SeedUsername: getEnv("AUTH_SEED_USERNAME", "demo"),
			SeedPassword: getEnv("AUTH_SEED_PASSWORD", "demo1234"),
		},
		Ai: AIConfig{
			LLMProvider:   getEnv("LLM_PROVIDER", "ollama"),
			LLMModel:      getEnv("LLM_MODEL", "llama3"),
			OllamaBaseURL: getEnv("OLLAMA_BASE_URL", "http://localhost:11434"),
			OpenAIBaseURL: getEnv("OPENAI_BASE_URL", "https://api.openai.com/v1"),
			OpenAIAPIKey:  getEnv("OPENAI_API_KEY", ""),
			Grader:        getEnv("GRADER", "heuristic"),
		},
		Speech: SpeechConfig{
			SttBaseURL:     getEnv("STT_BASE_URL", "https://api.openai.com/v1"),
			SttFallbackURL: getEnv("STT_FALLBACK_BASE_URL", ""),
			SttModel:       getEnv("STT_MODEL", "whisper-1"),
			TtsBaseURL:     getEnv("TTS_BASE_URL", "https://api.openai.com/v1"),
			TtsModel:       getEnv("TTS_MODEL", "tts-1"),
			TtsVoice:       getEnv("TTS_VOICE", "alloy"),
			APIKey:         getEnv("SPEECH_API_KEY", ""),
		},
		Retrieval: RetrievalConfig{
			Mode:           getEnv("RETRIEVER", "lexical"),
			CorpusPath:     getEnv("KNOWLEDGE_BASE_PATH", "knowledge_base.json"),
			TopK:           getEnvAsInt("RETRIEVAL_TOP_K", 3),
			Collection:     getEnv("VECTOR_COLLECTION", "concierge-kb"),
			EmbeddingModel: getEnv("OLLAMA_EMBEDDING_MODEL", "nomic-embed-text"),
		},
		Session: SessionConfig{
			IdleTTL: getEnvAsDuration("SESSION_IDLE_TTL", 1*time.Hour),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallback
}

func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	strValue := getEnv(key, "")
	if value, err := time.ParseDuration(strValue); err == nil {
		return value
	}
	return fallback
}
