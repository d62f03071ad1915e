package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	APIPort  string
	LogLevel string

	GroqBaseURL           string
	GroqAPIKey            string
	GroqAnalysisModel     string
	GroqVisionModel       string
	GroqRequestsPerSecond float64

	MurfBaseURL string
	MurfAPIKey  string

	MaxUploadBytes int64
	MaxPDFPages    int
	URLTextLimit   int

	FetchTimeout    time.Duration
	AnalysisTimeout time.Duration
	SpeechTimeout   time.Duration

	SafetyRulesPath   string
	CORSAllowedOrigin string
}

func Load() Config {
	return Config{
		APIPort:  mustEnv("API_PORT", "8000"),
		LogLevel: mustEnv("LOG_LEVEL", "info"),

		GroqBaseURL:           mustEnv("GROQ_BASE_URL", "https://api.groq.com/openai/v1"),
		GroqAPIKey:            mustEnv("GROQ_API_KEY", ""),
		GroqAnalysisModel:     mustEnv("GROQ_ANALYSIS_MODEL", "llama-3.3-70b-versatile"),
		GroqVisionModel:       mustEnv("GROQ_VISION_MODEL", "llama-3.2-90b-vision-preview"),
		GroqRequestsPerSecond: mustEnvFloat("GROQ_REQUESTS_PER_SECOND", 2),

		MurfBaseURL: mustEnv("MURF_BASE_URL", "https://api.murf.ai"),
		MurfAPIKey:  mustEnv("MURF_API_KEY", ""),

		MaxUploadBytes: mustEnvInt64("MAX_UPLOAD_BYTES", 10*1024*1024),
		MaxPDFPages:    mustEnvInt("MAX_PDF_PAGES", 10),
		URLTextLimit:   mustEnvInt("URL_TEXT_LIMIT", 15000),

		FetchTimeout:    mustEnvDuration("FETCH_TIMEOUT", 10*time.Second),
		AnalysisTimeout: mustEnvDuration("ANALYSIS_TIMEOUT", 30*time.Second),
		SpeechTimeout:   mustEnvDuration("SPEECH_TIMEOUT", 30*time.Second),

		SafetyRulesPath:   mustEnv("SAFETY_RULES_PATH", ""),
		CORSAllowedOrigin: mustEnv("CORS_ALLOWED_ORIGIN", "*"),
	}
}

func mustEnv(key, fallback string) string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	return v
}

func mustEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func mustEnvInt64(key string, fallback int64) int64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return fallback
	}
	return n
}

func mustEnvFloat(key string, fallback float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return fallback
	}
	return f
}

func mustEnvDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}
