package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config carries everything read from the environment at startup. It is
// built once and passed into constructors, so nothing in the core reads
// env vars on its own.
type Config struct {
	GeminiAPIKey      string
	GeminiModel       string
	SalesAPIURL       string
	FetchTimeout      time.Duration
	DBDSN             string
	AllowRegistration bool
}

// Load reads .env (missing file is fine, same as every other deployment of
// this stack) and assembles the process config.
func Load() Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: No .env file found")
	}

	cfg := Config{
		// The summarizer key is optional; without it the agent uses the
		// deterministic fallback text.
		GeminiAPIKey:      firstEnv("GEMINI_API_KEY", "GOOGLE_API_KEY"),
		GeminiModel:       os.Getenv("GEMINI_MODEL"),
		SalesAPIURL:       os.Getenv("SALES_API_URL"),
		FetchTimeout:      10 * time.Second,
		DBDSN:             os.Getenv("DB_DSN"),
		AllowRegistration: os.Getenv("ALLOW_REGISTRATION") == "true",
	}

	if raw := os.Getenv("FETCH_TIMEOUT_SECONDS"); raw != "" {
		if secs, err := strconv.Atoi(raw); err == nil && secs > 0 {
			cfg.FetchTimeout = time.Duration(secs) * time.Second
		} else {
			log.Printf("Warning: ignoring invalid FETCH_TIMEOUT_SECONDS=%q", raw)
		}
	}

	return cfg
}

func firstEnv(keys ...string) string {
	for _, key := range keys {
		if v := os.Getenv(key); v != "" {
			return v
		}
	}
	return ""
}
