package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Load reads the .env file specified by KINDRED_ENV (or .env by default),
// then loads the corresponding .secret file if it exists.
// All config is flat env vars read via os.Getenv after loading.
func Load() error {
	envFile := os.Getenv("KINDRED_ENV")
	if envFile == "" {
		envFile = ".env"
	}

	// Load main env file (ignore error if file doesn't exist)
	_ = godotenv.Load(envFile)

	// Load secret sidecar if it exists
	_ = godotenv.Load(envFile + ".secret")

	return nil
}

func ServerPort() int {
	port, err := strconv.Atoi(os.Getenv("SERVER_PORT"))
	if err != nil {
		return 8080
	}
	return port
}

func ServerAddr() string {
	return fmt.Sprintf(":%d", ServerPort())
}

// DatabaseURL returns the Postgres connection string. When empty the server
// falls back to the local SQLite database at SQLitePath.
func DatabaseURL() string {
	return os.Getenv("DATABASE_URL")
}

// SQLitePath returns the path of the fallback SQLite database.
// Defaults to data/kindred.db.
func SQLitePath() string {
	p := os.Getenv("SQLITE_PATH")
	if p == "" {
		return "data/kindred.db"
	}
	return p
}

// LLMProvider returns the configured LLM provider.
// Defaults to "ollama" if not set.
// Valid values: ollama, openai, mock, none
func LLMProvider() string {
	p := os.Getenv("LLM_PROVIDER")
	if p == "" {
		return "ollama"
	}
	return p
}

// OllamaHost returns the base URL of the local Ollama server.
// Empty means the client default (http://localhost:11434).
func OllamaHost() string {
	return os.Getenv("OLLAMA_HOST")
}

func OpenAIAPIKey() string {
	return os.Getenv("OPENAI_API_KEY")
}

// LLMAPIKey returns the API key for the configured LLM provider.
func LLMAPIKey() string {
	switch LLMProvider() {
	case "openai":
		return OpenAIAPIKey()
	default:
		return ""
	}
}

// AdminToken returns the bearer token protecting the admin surface.
// Empty disables all admin routes.
func AdminToken() string {
	return os.Getenv("ADMIN_TOKEN")
}

// PersonaConfigPath returns the path of the optional persona JSON override.
// Empty means the built-in default persona.
func PersonaConfigPath() string {
	return os.Getenv("PERSONA_CONFIG_PATH")
}

// WisdomPath returns the path of the optional wisdom JSON override.
// Empty means the built-in default wisdom.
func WisdomPath() string {
	return os.Getenv("WISDOM_PATH")
}

func MigrationsPath() string {
	p := os.Getenv("MIGRATIONS_PATH")
	if p == "" {
		return "migrations"
	}
	return p
}

// RateLimitRPS returns requests per second limit.
// Defaults to 100 if not set.
func RateLimitRPS() float64 {
	rps, err := strconv.ParseFloat(os.Getenv("RATE_LIMIT_RPS"), 64)
	if err != nil || rps <= 0 {
		return 100
	}
	return rps
}

// RateLimitBurst returns the burst size for rate limiting.
// Defaults to 20 if not set.
func RateLimitBurst() int {
	burst, err := strconv.Atoi(os.Getenv("RATE_LIMIT_BURST"))
	if err != nil || burst <= 0 {
		return 20
	}
	return burst
}

// LogLevel returns the log level (debug, info, warn, error).
// Defaults to "info" if not set.
func LogLevel() string {
	level := os.Getenv("LOG_LEVEL")
	if level == "" {
		return "info"
	}
	return level
}
