// Package config provides environment-driven settings and the static
// league catalog injected into the scraper components.
package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Settings holds everything loaded from the environment, with defaults
// that match a local development setup.
type Settings struct {
	// MongoDB
	MongoURI        string
	MongoDBName     string
	MongoCollection string

	// Source site
	BaseURL string

	// Fetcher behaviour
	ScrapeDelay    time.Duration
	RequestTimeout time.Duration
	RequestsPerMin int
	UserAgents     []string

	// Contract-end year validity window: a bare year resolved from page
	// text is accepted only inside [MinContractYear, MaxContractYear].
	MinContractYear int
	MaxContractYear int

	// Bulk scraping
	Workers int

	// Optional per-league squad-sheet PDF URLs, "League=URL" pairs,
	// used as a listing fallback when the stats page cannot be fetched.
	SquadSheetURLs map[string]string

	Debug bool
}

// Load reads settings from the environment, loading a .env file first if
// one is present.
func Load() *Settings {
	_ = godotenv.Load()

	return &Settings{
		MongoURI:        envOr("MONGODB_URI", "mongodb://localhost:27017/"),
		MongoDBName:     envOr("MONGODB_DB_NAME", "ScoutDatabase"),
		MongoCollection: envOr("MONGODB_COLLECTION", "players"),

		BaseURL: envOr("FBREF_BASE_URL", "https://fbref.com"),

		ScrapeDelay:    time.Duration(envInt("SCRAPING_DELAY", 3)) * time.Second,
		RequestTimeout: time.Duration(envInt("REQUEST_TIMEOUT", 30)) * time.Second,
		RequestsPerMin: envInt("REQUESTS_PER_MINUTE", 20),
		UserAgents:     envList("USER_AGENTS", defaultUserAgents),

		MinContractYear: envInt("MIN_CONTRACT_YEAR", 2024),
		MaxContractYear: envInt("MAX_CONTRACT_YEAR", 2035),

		Workers: envInt("SCRAPE_WORKERS", 3),

		SquadSheetURLs: envPairs("SQUAD_SHEET_URLS"),

		Debug: envBool("DEBUG", false),
	}
}

var defaultUserAgents = []string{
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/119.0.0.0 Safari/537.36",
	"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
	"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.1 Safari/605.1.15",
	"Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func envList(key string, fallback []string) []string {
	if v := os.Getenv(key); v != "" {
		var result []string
		for _, p := range strings.Split(v, ",") {
			if trimmed := strings.TrimSpace(p); trimmed != "" {
				result = append(result, trimmed)
			}
		}
		if len(result) > 0 {
			return result
		}
	}
	return fallback
}

// envPairs parses "Key=Value;Key=Value" lists.
func envPairs(key string) map[string]string {
	result := make(map[string]string)
	v := os.Getenv(key)
	if v == "" {
		return result
	}
	for _, pair := range strings.Split(v, ";") {
		parts := strings.SplitN(pair, "=", 2)
		if len(parts) == 2 {
			k := strings.TrimSpace(parts[0])
			val := strings.TrimSpace(parts[1])
			if k != "" && val != "" {
				result[k] = val
			}
		}
	}
	return result
}
