package services

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/yeremiapane/gastro-os/floorplan"
	"github.com/yeremiapane/gastro-os/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB opens a private in-memory sqlite database per test.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(
		&models.Restaurant{},
		&models.User{},
		&models.Floor{},
		&models.Table{},
		&models.Label{},
		&models.LayoutChange{},
	))
	return db
}

func tenant(id uint) floorplan.Scope {
	return floorplan.NewScope(context.Background(), id)
}

func mustTable(t *testing.T, svc *SalonService, scope floorplan.Scope, in TableInput) models.Table {
	t.Helper()
	table, err := svc.CreateTable(scope, in)
	require.NoError(t, err)
	return table
}
