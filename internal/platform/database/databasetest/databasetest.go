// Package databasetest provides throwaway in-memory databases for package tests.
package databasetest

import (
	"context"
	"fmt"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/r-meynet/QuaiAntiqueRestaurantBack/internal/platform/database"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

var counter atomic.Int64

// Open returns a migrated in-memory sqlite database private to t.
func Open(t testing.TB, models ...any) *gorm.DB {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared&_fk=1", name, counter.Add(1))

	db, err := database.Open(database.Options{Driver: "sqlite", DSN: dsn, MaxOpenConns: 1})
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}
	db.Logger = db.Logger.LogMode(gormlogger.Silent)
	t.Cleanup(func() { _ = database.Close(db) })

	if err := database.Migrate(context.Background(), db, models...); err != nil {
		t.Fatalf("migrate test database: %v", err)
	}
	return db
}
