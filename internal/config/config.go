package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Store backends.
const (
	StoreMemory = "memory"
	StoreSQLite = "sqlite"
)

type Config struct {
	Addr           string
	Store          string
	DBPath         string
	LogLevel       string
	CatalogPath    string
	RegexEngine    string
	MatchTimeout   time.Duration
	RequestTimeout time.Duration
	HighlightOpen  string
	HighlightClose string
}

// Load reads configuration from a .env file (if present) and environment variables,
// applying sensible defaults when values are missing or invalid.
func Load() Config {
	// Ignore error so the app still starts when .env is absent in production.
	_ = godotenv.Load()

	return Config{
		Addr:           envOr("ADDR", ":8080"),
		Store:          envOr("STORE", StoreMemory),
		DBPath:         envOr("DB_PATH", "file:regexplorer.db"),
		LogLevel:       envOr("LOG_LEVEL", "INFO"),
		CatalogPath:    os.Getenv("CATALOG_PATH"),
		RegexEngine:    envOr("REGEX_ENGINE", "ecmascript"),
		MatchTimeout:   envDurationOr("MATCH_TIMEOUT", 250*time.Millisecond),
		RequestTimeout: envDurationOr("REQUEST_TIMEOUT", 30*time.Second),
		HighlightOpen:  envOr("HIGHLIGHT_OPEN", `<mark class="match-highlight">`),
		HighlightClose: envOr("HIGHLIGHT_CLOSE", "</mark>"),
	}
}

// Validate reports every invalid setting at once.
func (c Config) Validate() error {
	var problems []string

	if c.Addr == "" {
		problems = append(problems, "ADDR cannot be empty")
	}
	switch c.Store {
	case StoreMemory:
	case StoreSQLite:
		if c.DBPath == "" {
			problems = append(problems, "DB_PATH cannot be empty when STORE=sqlite")
		}
	default:
		problems = append(problems, fmt.Sprintf("STORE must be %q or %q, got %q", StoreMemory, StoreSQLite, c.Store))
	}
	switch strings.ToUpper(c.LogLevel) {
	case "DEBUG", "INFO", "WARN", "WARNING", "ERROR":
	default:
		problems = append(problems, fmt.Sprintf("LOG_LEVEL must be DEBUG, INFO, WARN or ERROR, got %q", c.LogLevel))
	}
	switch c.RegexEngine {
	case "ecmascript", "re2":
	default:
		problems = append(problems, fmt.Sprintf("REGEX_ENGINE must be ecmascript or re2, got %q", c.RegexEngine))
	}
	if c.MatchTimeout <= 0 {
		problems = append(problems, "MATCH_TIMEOUT must be positive")
	}
	if c.RequestTimeout <= 0 {
		problems = append(problems, "REQUEST_TIMEOUT must be positive")
	}
	if c.HighlightOpen == "" || c.HighlightClose == "" {
		problems = append(problems, "HIGHLIGHT_OPEN and HIGHLIGHT_CLOSE cannot be empty")
	}

	if len(problems) > 0 {
		return fmt.Errorf("invalid configuration: %s", strings.Join(problems, "; "))
	}
	return nil
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// envDurationOr accepts Go duration strings ("250ms") or a bare number of milliseconds.
func envDurationOr(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
		if ms, err := strconv.Atoi(v); err == nil && ms >= 0 {
			return time.Duration(ms) * time.Millisecond
		}
		log.Printf("invalid value for %s=%q, using default %s", key, v, def)
	}
	return def
}
