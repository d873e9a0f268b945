// Package config provides runtime configuration values for the service.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"go-price-checker/pkg/database"
)

const (
	SyncSourceNone      = "none"
	SyncSourceCSV       = "csv"
	SyncSourceWarehouse = "warehouse"
)

// Config holds every knob read from the environment
type Config struct {
	Port           string
	LogLevel       string
	MaxUploadSize  int
	UploadDir      string
	RequestTimeout time.Duration

	SyncSource   string
	SyncInterval time.Duration

	CSVSourceURL string
	GitHubToken  string

	Warehouse               database.Config
	WarehouseProductsTable  string
	WarehouseInventoryTable string

	RedisAddr     string
	RedisPassword string
	SnapshotKey   string
}

func getenv(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func atoienv(key string, def int) int {
	v := getenv(key, "")
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return def
	}
	return n
}

// Load collects configuration from environment with defaults
func Load() Config {
	return Config{
		Port:           getenv("PORT", "5000"),
		LogLevel:       getenv("LOG_LEVEL", "info"),
		MaxUploadSize:  atoienv("MAX_FILE_SIZE", 30*1024*1024),
		UploadDir:      getenv("UPLOAD_DIR", filepath.Join(os.TempDir(), "price-checker-uploads")),
		RequestTimeout: time.Duration(atoienv("REQUEST_TIMEOUT_SECONDS", 60)) * time.Second,

		SyncSource:   strings.ToLower(getenv("SYNC_SOURCE", SyncSourceNone)),
		SyncInterval: time.Duration(atoienv("SYNC_INTERVAL_HOURS", 6)) * time.Hour,

		CSVSourceURL: csvSourceURL(),
		GitHubToken:  getenv("GITHUB_TOKEN", ""),

		Warehouse: database.Config{
			DSN:      getenv("DATABASE_URL", ""),
			Host:     getenv("DB_HOST", ""),
			User:     getenv("DB_USER", ""),
			Password: getenv("DB_PASSWORD", ""),
			Name:     getenv("DB_NAME", ""),
			Port:     getenv("DB_PORT", "5432"),
		},
		WarehouseProductsTable:  getenv("WAREHOUSE_PRODUCTS_TABLE", "dataform.products_all"),
		WarehouseInventoryTable: getenv("WAREHOUSE_INVENTORY_TABLE", "dataform.inventory_on_hand_report"),

		RedisAddr:     getenv("REDIS_ADDR", ""),
		RedisPassword: getenv("REDIS_PASSWORD", ""),
		SnapshotKey:   getenv("SNAPSHOT_KEY", "price-checker:catalog"),
	}
}

// csvSourceURL prefers an explicit URL and otherwise builds a raw GitHub link
func csvSourceURL() string {
	if u := getenv("CSV_SOURCE_URL", ""); u != "" {
		return u
	}
	owner := getenv("GITHUB_REPO_OWNER", "")
	repo := getenv("GITHUB_REPO_NAME", "")
	if owner == "" || repo == "" {
		return ""
	}
	return fmt.Sprintf("https://raw.githubusercontent.com/%s/%s/%s/%s",
		owner, repo, getenv("GITHUB_BRANCH", "main"), getenv("GITHUB_FILE_PATH", "products.csv"))
}
