package db

import (
	"testing"

	"github.com/budget-tracker/insights/config"
	"github.com/budget-tracker/insights/internal/integration/persistence/model"
)

func TestNewConnection_SQLite(t *testing.T) {
	database, err := NewConnection(&config.DatabaseConfig{
		Driver: config.DriverSQLite,
		URL:    "file::memory:",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer database.Close()

	if !database.HealthCheck() {
		t.Fatal("expected healthy database")
	}
	if err := database.AutoMigrate(&model.PreferenceModel{}); err != nil {
		t.Fatalf("unexpected migration error: %v", err)
	}
	if !database.DB().Migrator().HasTable(&model.PreferenceModel{}) {
		t.Error("expected preferences table to exist")
	}
}

func TestNewConnection_UnsupportedDriver(t *testing.T) {
	_, err := NewConnection(&config.DatabaseConfig{Driver: "mysql", URL: "x"})
	if err == nil {
		t.Fatal("expected error for unsupported driver")
	}
}

func TestHealthCheck_AfterClose(t *testing.T) {
	database, err := NewConnection(&config.DatabaseConfig{
		Driver: config.DriverSQLite,
		URL:    "file::memory:",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := database.Close(); err != nil {
		t.Fatalf("unexpected close error: %v", err)
	}

	if database.HealthCheck() {
		t.Error("expected closed database to be unhealthy")
	}
}
