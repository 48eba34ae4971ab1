package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Source drivers supported by the fetch layer.
const (
	DriverClickHouse  = "clickhouse"
	DriverSpreadsheet = "spreadsheet"
	DriverCSV         = "csv"
	DriverRemoteCSV   = "remote-csv"
)

// Config holds application configuration loaded from environment variables.
type Config struct {
	HTTPPort     string
	AppMode      string
	FiberPrefork bool

	SourceDriver    string
	SourceTable     string
	DatabaseURL     string
	SpreadsheetPath string
	SpreadsheetTab  string
	CSVPath         string
	RemoteCSVURL    string
	RemoteTimeout   time.Duration
	FallbackCSVPath string

	AvgVisitValue float64
	MonthlyFee    float64

	RefreshInterval time.Duration
	RefreshTimeout  time.Duration

	DBMaxConns        int
	DBMinConns        int
	DBMaxConnLifetime time.Duration
}

// Load reads configuration from environment variables with sane defaults.
func Load() (*Config, error) {
	cfg := &Config{
		HTTPPort:     getEnv("HTTP_PORT", ":8080"),
		AppMode:      strings.ToLower(getEnv("APP_MODE", "dev")),
		FiberPrefork: parseBoolEnv("FIBER_PREFORK", false),

		SourceDriver:    strings.ToLower(getEnv("SOURCE_DRIVER", DriverCSV)),
		SourceTable:     getEnv("SOURCE_TABLE", "call_attempts"),
		SpreadsheetPath: getEnv("SPREADSHEET_PATH", "calls_data.xlsx"),
		SpreadsheetTab:  os.Getenv("SPREADSHEET_TAB"),
		CSVPath:         getEnv("CSV_PATH", "calls_data.csv"),
		RemoteCSVURL:    os.Getenv("REMOTE_CSV_URL"),
		RemoteTimeout:   parseDurationEnv("REMOTE_TIMEOUT", 12*time.Second),
		FallbackCSVPath: os.Getenv("FALLBACK_CSV_PATH"),

		// Dashboard ROI knobs: value of one booked visit and the flat
		// periodic service fee.
		AvgVisitValue: parseFloatEnv("AVG_VISIT_VALUE", 200),
		MonthlyFee:    parseFloatEnv("MONTHLY_FEE", 100),

		RefreshInterval: parseDurationEnv("REFRESH_INTERVAL", 5*time.Minute),
		RefreshTimeout:  parseDurationEnv("REFRESH_TIMEOUT", 30*time.Second),

		DBMaxConns:        parseIntEnv("DB_MAX_CONNS", 10),
		DBMinConns:        parseIntEnv("DB_MIN_CONNS", 2),
		DBMaxConnLifetime: parseDurationEnv("DB_MAX_CONN_LIFETIME", 30*time.Minute),
	}

	switch cfg.SourceDriver {
	case DriverClickHouse:
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
		if cfg.DatabaseURL == "" {
			return nil, fmt.Errorf("DATABASE_URL is required for the clickhouse driver")
		}
	case DriverRemoteCSV:
		if cfg.RemoteCSVURL == "" {
			return nil, fmt.Errorf("REMOTE_CSV_URL is required for the remote-csv driver")
		}
	case DriverSpreadsheet, DriverCSV:
	default:
		return nil, fmt.Errorf("unsupported SOURCE_DRIVER: %s", cfg.SourceDriver)
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func parseBoolEnv(key string, fallback bool) bool {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(val)
	if err != nil {
		return fallback
	}
	return parsed
}

func parseIntEnv(key string, fallback int) int {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		return fallback
	}
	return parsed
}

func parseFloatEnv(key string, fallback float64) float64 {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.ParseFloat(val, 64)
	if err != nil {
		return fallback
	}
	return parsed
}

func parseDurationEnv(key string, fallback time.Duration) time.Duration {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(val)
	if err != nil {
		return fallback
	}
	return parsed
}
