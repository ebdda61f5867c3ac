package config

import (
	"fmt"
	"strings"
	"time"

	env "github.com/Netflix/go-env"
	"github.com/joho/godotenv"
)

type Config struct {
	Port        string `env:"PORT,default=8080"`
	DatabaseURL string `env:"DATABASE_URL"`
	LogLevel    string `env:"LOG_LEVEL,default=info"`

	GeminiAPIKey         string `env:"GEMINI_API_KEY"`
	GoogleAPIKey         string `env:"GOOGLE_API_KEY"`
	GeminiProModel       string `env:"GEMINI_PRO_MODEL,default=gemini-2.5-pro"`
	GeminiFlashModel     string `env:"GEMINI_FLASH_MODEL,default=gemini-2.5-flash"`
	GeminiEmbeddingModel string `env:"GEMINI_EMBEDDING_MODEL,default=models/text-embedding-004"`

	GroqAPIKey  string `env:"GROQ_API_KEY"`
	GroqBaseURL string `env:"GROQ_BASE_URL,default=https://api.groq.com/openai/v1"`
	GroqModel   string `env:"GROQ_MODEL,default=llama3-70b-8192"`

	// Comma separated; go-env splits tag options on commas so the default
	// carries a single origin.
	AllowedOrigins        string        `env:"ALLOWED_ORIGINS,default=http://localhost:3000"`
	RequestTimeout        time.Duration `env:"REQUEST_TIMEOUT,default=30s"`
	MarketSimulateLatency bool          `env:"MARKET_SIMULATE_LATENCY,default=true"`
	RAGTopK               int           `env:"RAG_TOP_K,default=3"`
}

// Load reads .env (when present) and then the process environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if _, err := env.UnmarshalFromEnviron(&cfg); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}

	if cfg.GeminiAPIKey == "" {
		cfg.GeminiAPIKey = cfg.GoogleAPIKey
	}
	if cfg.RAGTopK <= 0 {
		cfg.RAGTopK = 3
	}

	return &cfg, nil
}

// Origins returns the CORS allow-list.
func (c *Config) Origins() []string {
	var out []string
	for _, o := range strings.Split(c.AllowedOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}

// UsePostgres reports whether a database is configured; without one the
// service keeps everything in memory.
func (c *Config) UsePostgres() bool {
	return strings.TrimSpace(c.DatabaseURL) != ""
}
