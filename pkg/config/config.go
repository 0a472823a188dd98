package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"ir-research/pkg/db"
	"ir-research/pkg/httpclient"
)

// Default remote endpoints.
const (
	DefaultSubmissionsBaseURL = "https://data.sec.gov"
	DefaultArchivesBaseURL    = "https://www.sec.gov"
	DefaultTranscriptBaseURL  = "https://finance.yahoo.com"
	DefaultEarningsBaseURL    = "https://finance.yahoo.com"
)

// Config holds settings shared by the command line tools.
// Values come from the environment (optionally seeded from a .env file);
// each cmd applies its flags on top.
type Config struct {
	UserAgent string
	OutputDir string
	// EarningsDir is where the earnings tool writes its CSV files.
	EarningsDir string

	// CompaniesFile is a YAML or text list of ticker/CIK pairs; empty means the built-in list.
	CompaniesFile string
	// TickersFile is a YAML or text list of tickers; empty means the built-in list.
	TickersFile string

	Pause time.Duration

	SubmissionsBaseURL string
	ArchivesBaseURL    string
	TranscriptBaseURL  string
	EarningsBaseURL    string

	LogLevel string
	LogDev   bool

	MongoURI        string
	MongoDatabase   string
	MongoCollection string

	PostgresDSN string

	SupabaseURL      string
	SupabaseKey      string
	SupabasePassword string
}

// Load reads .env (if present) and the process environment.
func Load() (Config, error) {
	// A missing .env is fine; anything else is a broken file.
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	pause, err := durationEnv("PAUSE", time.Second)
	if err != nil {
		return Config{}, err
	}

	return Config{
		UserAgent:          stringEnv("CONTACT_USER_AGENT", httpclient.DefaultUserAgent),
		OutputDir:          stringEnv("OUTPUT_DIR", "output"),
		EarningsDir:        stringEnv("EARNINGS_DIR", "."),
		CompaniesFile:      os.Getenv("COMPANIES_FILE"),
		TickersFile:        os.Getenv("TICKERS_FILE"),
		Pause:              pause,
		SubmissionsBaseURL: stringEnv("SEC_DATA_BASE_URL", DefaultSubmissionsBaseURL),
		ArchivesBaseURL:    stringEnv("SEC_ARCHIVES_BASE_URL", DefaultArchivesBaseURL),
		TranscriptBaseURL:  stringEnv("TRANSCRIPT_BASE_URL", DefaultTranscriptBaseURL),
		EarningsBaseURL:    stringEnv("EARNINGS_BASE_URL", DefaultEarningsBaseURL),
		LogLevel:           stringEnv("LOG_LEVEL", "info"),
		LogDev:             boolEnv("LOG_DEV"),
		MongoURI:           os.Getenv("MONGO_URI"),
		MongoDatabase:      stringEnv("MONGO_DB", "irresearch"),
		MongoCollection:    stringEnv("MONGO_COLLECTION", "artifacts"),
		PostgresDSN:        os.Getenv("POSTGRES_DSN"),
		SupabaseURL:        os.Getenv("SUPABASE_URL"),
		SupabaseKey:        os.Getenv("SUPABASE_KEY"),
		SupabasePassword:   os.Getenv("SUPABASE_PASSWORD"),
	}, nil
}

func stringEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func boolEnv(key string) bool {
	switch strings.ToLower(strings.TrimSpace(os.Getenv(key))) {
	case "1", "true", "yes", "on":
		return true
	default:
		return false
	}
}

func durationEnv(key string, fallback time.Duration) (time.Duration, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("parse %s: %w", key, err)
	}
	return d, nil
}

// StoreOptions returns the run-record store settings.
func (c Config) StoreOptions() db.Options {
	return db.Options{
		MongoURI:         c.MongoURI,
		MongoDatabase:    c.MongoDatabase,
		MongoCollection:  c.MongoCollection,
		PostgresDSN:      c.PostgresDSN,
		SupabaseURL:      c.SupabaseURL,
		SupabaseKey:      c.SupabaseKey,
		SupabasePassword: c.SupabasePassword,
	}
}
