package config

import (
	"log"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
)

// Supported values for DB_DRIVER.
const (
	DriverSQLite    = "sqlite"  // pure Go, modernc.org/sqlite
	DriverSQLiteCGO = "sqlite3" // mattn/go-sqlite3
	DriverPostgres  = "postgres"
)

// Config holds all application configuration loaded from environment variables.
type Config struct {
	DBDriver    string
	DataDir     string
	DatabaseURL string

	PostgresHost     string
	PostgresPort     string
	PostgresUser     string
	PostgresPassword string
	PostgresDB       string
	PostgresSSLMode  string

	HTTPAddr    string
	FrontendURL string
	LogLevel    string
	MaxUploadMB int

	MaxConcurrency int
	RateLimitMs    int
	MaxRetries     int

	CSVOutputPath string
}

// Load reads the .env file and returns a populated Config struct.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("[config] No .env file found, falling back to system env vars")
	}

	return &Config{
		DBDriver:    getEnv("DB_DRIVER", DriverSQLite),
		DataDir:     getEnv("DATA_DIR", "./data"),
		DatabaseURL: getEnv("DATABASE_URL", ""),

		PostgresHost:     getEnv("POSTGRES_HOST", "localhost"),
		PostgresPort:     getEnv("POSTGRES_PORT", "5432"),
		PostgresUser:     getEnv("POSTGRES_USER", "asset"),
		PostgresPassword: getEnv("POSTGRES_PASSWORD", "asset"),
		PostgresDB:       getEnv("POSTGRES_DB", "asset_brain"),
		PostgresSSLMode:  getEnv("POSTGRES_SSLMODE", "disable"),

		HTTPAddr:    getEnv("HTTP_ADDR", ":8000"),
		FrontendURL: getEnv("FRONTEND_URL", "http://localhost:3000"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		MaxUploadMB: getEnvInt("MAX_UPLOAD_MB", 10),

		MaxConcurrency: getEnvInt("MAX_CONCURRENCY", 4),
		RateLimitMs:    getEnvInt("RATE_LIMIT_MS", 0),
		MaxRetries:     getEnvInt("MAX_RETRIES", 5),

		CSVOutputPath: getEnv("CSV_OUTPUT_PATH", "./output/maintenance_issues.csv"),
	}
}

// SQLitePath is the database file used by both sqlite drivers.
func (c *Config) SQLitePath() string {
	return filepath.Join(c.DataDir, "real_estate.db")
}

// DSN returns the connection string for the configured driver.
func (c *Config) DSN() string {
	switch c.DBDriver {
	case DriverPostgres:
		if c.DatabaseURL != "" {
			return c.DatabaseURL
		}
		return "host=" + c.PostgresHost +
			" port=" + c.PostgresPort +
			" user=" + c.PostgresUser +
			" password=" + c.PostgresPassword +
			" dbname=" + c.PostgresDB +
			" sslmode=" + c.PostgresSSLMode
	case DriverSQLiteCGO:
		return c.SQLitePath() + "?_journal_mode=WAL&_busy_timeout=5000"
	default:
		return c.SQLitePath() + "?_pragma=journal_mode(wal)&_pragma=busy_timeout(5000)"
	}
}

// MaxUploadBytes is the multipart body limit for document uploads.
func (c *Config) MaxUploadBytes() int64 {
	return int64(c.MaxUploadMB) << 20
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		n, err := strconv.Atoi(val)
		if err == nil {
			return n
		}
	}
	return fallback
}
