package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

var validate = validator.New()

type AppConfig struct {
	MetOfficeAPIKey string `validate:"required"`

	// LocationID is the DataPoint site served by /get-forecast. Locations
	// lists every site the JSON API accepts; it always contains LocationID.
	LocationID string   `validate:"required,numeric"`
	Locations  []string `validate:"dive,numeric"`

	// Timezone decides which slots are already in the past.
	Timezone *time.Location `validate:"-"`

	CacheTTL        time.Duration `validate:"gt=0"`
	RefreshInterval time.Duration `validate:"gte=0"` // 0 disables the scheduler
	HTTPTimeout     time.Duration `validate:"gt=0"`

	StoreDriver     string `validate:"oneof=memory sqlite"`
	SQLitePath      string `validate:"required_if=StoreDriver sqlite"`
	StoreMaxHistory int    `validate:"gte=0"` // 0 = unlimited
	StoreMaxAge     time.Duration

	// DebugDumpPath, when set, receives the raw DataPoint payload of every
	// refresh.
	DebugDumpPath string

	Port string `validate:"required,numeric"`
}

// Load reads configuration from environment with sensible defaults.
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("INFO: No .env file found or error loading it: %v", err)
	}
	cfg := &AppConfig{}

	cfg.MetOfficeAPIKey = os.Getenv("MET_OFFICE_API_KEY")
	cfg.LocationID = getenvDefault("LOCATION_ID", "351611")
	cfg.Locations = loadLocations(cfg.LocationID, os.Getenv("EXTRA_LOCATION_IDS"))

	tz, err := time.LoadLocation(getenvDefault("FORECAST_TIMEZONE", "Europe/London"))
	if err != nil {
		return nil, fmt.Errorf("invalid FORECAST_TIMEZONE: %w", err)
	}
	cfg.Timezone = tz

	if cfg.CacheTTL, err = getenvDuration("FORECAST_CACHE_TTL", "30m"); err != nil {
		return nil, err
	}
	if cfg.RefreshInterval, err = getenvDuration("REFRESH_INTERVAL", "0s"); err != nil {
		return nil, err
	}
	if cfg.HTTPTimeout, err = getenvDuration("HTTP_TIMEOUT", "10s"); err != nil {
		return nil, err
	}

	cfg.StoreDriver = getenvDefault("STORE_DRIVER", "memory")
	cfg.SQLitePath = os.Getenv("SQLITE_PATH")
	cfg.StoreMaxHistory = getenvInt("STORE_MAX_HISTORY", 48) // a day at 30-minute refreshes
	if cfg.StoreMaxAge, err = getenvDuration("STORE_MAX_AGE", "24h"); err != nil {
		return nil, err
	}

	cfg.DebugDumpPath = os.Getenv("DEBUG_DUMP_PATH")
	cfg.Port = getenvDefault("PORT", "8080")

	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// HasLocation reports whether id is a configured location.
func (c *AppConfig) HasLocation(id string) bool {
	for _, l := range c.Locations {
		if l == id {
			return true
		}
	}
	return false
}

func loadLocations(primary, extra string) []string {
	locs := []string{primary}
	for _, id := range strings.Split(extra, ",") {
		id = strings.TrimSpace(id)
		if id == "" || id == primary {
			continue
		}
		locs = append(locs, id)
	}
	return locs
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		n, err := strconv.Atoi(v)
		if err == nil {
			return n
		}
	}
	return def
}

func getenvDuration(key, def string) (time.Duration, error) {
	d, err := time.ParseDuration(getenvDefault(key, def))
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}
