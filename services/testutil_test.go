package services

import (
	"testing"
	"time"

	"creditbook-backend/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB creates an in-memory SQLite database for testing.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

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
	); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return db
}

func createTestCustomer(t *testing.T, db *gorm.DB) models.Customer {
	t.Helper()

	customer := models.Customer{
		Name:    "Ayse",
		Surname: "Yilmaz",
		Phone:   "+905551112233",
	}
	if err := db.Create(&customer).Error; err != nil {
		t.Fatalf("failed to create test customer: %v", err)
	}
	return customer
}

func createTestProduct(t *testing.T, db *gorm.DB, name string, price float64) models.Product {
	t.Helper()

	product := models.Product{
		Name:  name,
		Slug:  name,
		Price: price,
	}
	if err := db.Create(&product).Error; err != nil {
		t.Fatalf("failed to create test product: %v", err)
	}
	return product
}

func testRepaymentDate() time.Time {
	return time.Now().AddDate(0, 1, 0)
}
