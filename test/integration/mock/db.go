//go:build integration

package mock

import (
	"fmt"
	"sync"

	"github.com/budget-tracker/insights/config"
	"github.com/budget-tracker/insights/internal/infra/db"
)

var once sync.Once
var database *Db

type Db struct {
	Database *db.Database
	models   map[string]any
}

// NewDb opens a shared in-memory sqlite database and migrates models, keyed by table.
func NewDb(models map[string]any) *Db {
	once.Do(func() {
		database = open(models)
	})
	return database
}

func open(models map[string]any) *Db {
	conn, err := db.NewConnection(&config.DatabaseConfig{
		Driver: config.DriverSQLite,
		URL:    "file::memory:",
	})
	if err != nil {
		panic("failed to connect to database. err: " + err.Error())
	}

	modelList := make([]any, 0, len(models))
	for _, model := range models {
		modelList = append(modelList, model)
	}
	if err := conn.AutoMigrate(modelList...); err != nil {
		panic(fmt.Sprintf("failed to migrate database. err: %s", err.Error()))
	}

	return &Db{
		Database: conn,
		models:   models,
	}
}

// ClearDB deletes every row of every migrated table.
func (d *Db) ClearDB() error {
	for table := range d.models {
		if err := d.Database.DB().Exec(fmt.Sprintf("DELETE FROM %s", table)).Error; err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}
	return nil
}

func (d *Db) GetModel(table string) (any, bool) {
	model, ok := d.models[table]
	return model, ok
}
