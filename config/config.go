package config

import (
	"errors"
	"os"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

// InitDB opens the database connection once at startup. The DSN is a fatal
// requirement; the caller decides how to die.
func InitDB() (*gorm.DB, error) {
	dsn := os.Getenv("DB_DSN")
	if dsn == "" {
		return nil, errors.New("DB_DSN environment variable is required")
	}

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	return db, nil
}

// ReportScope controls whether reports aggregate only paid orders or all
// orders. Default is paid-only for financial accuracy; set REPORT_SCOPE=all
// for operational (throughput) reporting.
func ReportScope() string {
	if os.Getenv("REPORT_SCOPE") == "all" {
		return "all"
	}
	return "paid"
}

// RealtimeEnabled reports whether the websocket notifier should be wired.
// REALTIME_MODE=off degrades to the no-op notifier for poll-only
// deployments.
func RealtimeEnabled() bool {
	return os.Getenv("REALTIME_MODE") != "off"
}

// Port returns the HTTP listen port.
func Port() string {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	return port
}
