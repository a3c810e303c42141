package controllers

import (
	"testing"
	"time"

	"creditbook-backend/config"
	"creditbook-backend/models"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB creates an in-memory SQLite database and points the shared
// handle at it so handlers under test use it.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	// Every connection to :memory: is its own database; keep the pool at one
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to access underlying database: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(
		&models.Customer{},
		&models.Product{},
		&models.Purchase{},
		&models.PurchaseProduct{},
		&models.Payment{},
		&models.Supply{},
	); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	config.DB = db
	return db
}

func testRepaymentDate() time.Time {
	return time.Now().AddDate(0, 1, 0)
}
