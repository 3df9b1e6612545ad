package store

import (
	"fmt"
	"time"

	"github.com/i474232898/soaring-forecast/internal/forecast"
)

// Supported store drivers.
const (
	DriverMemory = "memory"
	DriverSQLite = "sqlite"
)

// Store is a forecast store that holds resources until closed.
type Store interface {
	forecast.Store
	Close() error
}

// Open returns the store selected by driver.
func Open(driver, sqlitePath string, maxHistory int, maxAge time.Duration) (Store, error) {
	switch driver {
	case DriverMemory, "":
		return NewMemoryStore(maxHistory, maxAge), nil
	case DriverSQLite:
		return NewSQLiteStore(sqlitePath, maxHistory)
	default:
		return nil, fmt.Errorf("unknown store driver %q", driver)
	}
}
