package config

import (
	"os"
	"strconv"
)

type Config struct {
	Port     string
	LogLevel string

	// Ollama backend
	OllamaBaseURL string
	OllamaModel   string

	// Groq (vision + transcription)
	GroqAPIKey       string
	GroqBaseURL      string
	GroqVisionModel  string
	GroqWhisperModel string

	// ElevenLabs text-to-speech
	ElevenLabsAPIKey  string
	ElevenLabsBaseURL string
	ElevenLabsVoice   string

	// SQLite health library
	DatabasePath string

	// S3 (generated audio artifacts)
	S3Endpoint        string
	S3AccessKeyID     string
	S3SecretAccessKey string
	S3BucketName      string
	S3UseSSL          bool

	// Upload limits
	UploadDir   string
	MaxFileSize int64
}

func Load() (*Config, error) {
	cfg := &Config{
		Port:              getEnv("PORT", "3001"),
		LogLevel:          getEnv("LOG_LEVEL", "info"),
		OllamaBaseURL:     getEnv("OLLAMA_BASE_URL", "http://localhost:11434"),
		OllamaModel:       getEnv("OLLAMA_MODEL", "llama3"),
		GroqAPIKey:        getEnv("GROQ_API_KEY", ""),
		GroqBaseURL:       getEnv("GROQ_BASE_URL", "https://api.groq.com/openai/v1"),
		GroqVisionModel:   getEnv("GROQ_VISION_MODEL", "llama-3.2-90b-vision-preview"),
		GroqWhisperModel:  getEnv("GROQ_WHISPER_MODEL", "whisper-large-v3"),
		ElevenLabsAPIKey:  getEnv("ELEVENLABS_API_KEY", ""),
		ElevenLabsBaseURL: getEnv("ELEVENLABS_BASE_URL", "https://api.elevenlabs.io"),
		ElevenLabsVoice:   getEnv("ELEVENLABS_VOICE", "Aria"),
		DatabasePath:      getEnv("DATABASE_PATH", "data/library.db"),
		S3Endpoint:        getEnv("S3_ENDPOINT", "localhost:9000"),
		S3AccessKeyID:     getEnv("S3_ACCESS_KEY_ID", "minioadmin"),
		S3SecretAccessKey: getEnv("S3_SECRET_ACCESS_KEY", "minioadmin"),
		S3BucketName:      getEnv("S3_BUCKET_NAME", "voice-responses"),
		S3UseSSL:          getEnv("S3_USE_SSL", "false") == "true",
		UploadDir:         getEnv("UPLOAD_DIR", "uploads"),
		MaxFileSize:       getEnvInt64("MAX_FILE_SIZE", 10*1024*1024),
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt64(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.ParseInt(value, 10, 64); err == nil && n > 0 {
			return n
		}
	}
	return defaultValue
}
