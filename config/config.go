package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration loaded from environment variables.
type Config struct {
	// SourceDriver selects where snapshots come from: postgres, sqlite3 or csv.
	SourceDriver string

	PostgresHost     string
	PostgresPort     string
	PostgresUser     string
	PostgresPassword string
	PostgresDB       string
	PostgresSSLMode  string

	SQLitePath   string
	CSVInputPath string

	SnapshotTable      string
	ListingIDColumn    string
	ObservedAtColumn   string
	RoughAddressColumn string

	Timezone        string
	MaxRetries      int
	RetryBaseMs     int
	FieldGroupsFile string

	LogLevel    string
	LogEncoding string
}

// Load reads the .env file and returns a populated Config struct.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("[config] No .env file found, falling back to system env vars")
	}

	return &Config{
		SourceDriver: getEnv("SOURCE_DRIVER", "postgres"),

		PostgresHost:     getEnv("POSTGRES_HOST", "localhost"),
		PostgresPort:     getEnv("POSTGRES_PORT", "5432"),
		PostgresUser:     getEnv("POSTGRES_USER", "rental"),
		PostgresPassword: getEnv("POSTGRES_PASSWORD", ""),
		PostgresDB:       getEnv("POSTGRES_DB", "rental_db"),
		PostgresSSLMode:  getEnv("POSTGRES_SSLMODE", "disable"),

		SQLitePath:   getEnv("SQLITE_PATH", "./rental.sqlite3"),
		CSVInputPath: getEnv("CSV_INPUT_PATH", "./output/house_ts.csv"),

		SnapshotTable:      getEnv("SNAPSHOT_TABLE", "rental_housets"),
		ListingIDColumn:    getEnv("LISTING_ID_COLUMN", "vendor_house_id"),
		ObservedAtColumn:   getEnv("OBSERVED_AT_COLUMN", "created"),
		RoughAddressColumn: getEnv("ROUGH_ADDRESS_COLUMN", "rough_address"),

		Timezone:        getEnv("TIMEZONE", "Asia/Taipei"),
		MaxRetries:      getEnvInt("MAX_RETRIES", 5),
		RetryBaseMs:     getEnvInt("RETRY_BASE_MS", 500),
		FieldGroupsFile: getEnv("FIELD_GROUPS_FILE", ""),

		LogLevel:    getEnv("LOG_LEVEL", "info"),
		LogEncoding: getEnv("LOG_ENCODING", "console"),
	}
}

// DSN returns the PostgreSQL connection string.
func (c *Config) DSN() string {
	return "host=" + c.PostgresHost +
		" port=" + c.PostgresPort +
		" user=" + c.PostgresUser +
		" password=" + c.PostgresPassword +
		" dbname=" + c.PostgresDB +
		" sslmode=" + c.PostgresSSLMode
}

// Location resolves the time zone that date arguments are interpreted in.
func (c *Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("config: load timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}

// RetryBaseDelay is the first back-off interval when connecting to a database.
func (c *Config) RetryBaseDelay() time.Duration {
	return time.Duration(c.RetryBaseMs) * time.Millisecond
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		if n, err := strconv.Atoi(val); err == nil {
			return n
		}
	}
	return fallback
}
