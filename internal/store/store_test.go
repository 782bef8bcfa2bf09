package store

import (
	"testing"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"inventory-service/internal/model"
)

func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	// An in-memory sqlite database exists per connection; cap the pool so
	// every goroutine in the concurrency tests sees the same database.
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(
		&model.Tenant{},
		&model.User{},
		&model.Category{},
		&model.Supplier{},
		&model.Product{},
		&model.InventoryRecord{},
		&model.Sale{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func seedTenant(t *testing.T, db *gorm.DB, orgName string, active bool) *model.Tenant {
	t.Helper()
	tenant := model.Tenant{OrgName: orgName, Active: active}
	if err := db.Create(&tenant).Error; err != nil {
		t.Fatalf("seed tenant %s: %v", orgName, err)
	}
	return &tenant
}

func seedProduct(t *testing.T, db *gorm.DB, tenantID uint, name, brand string, price float64) *model.Product {
	t.Helper()
	product := model.Product{
		TenantID:      tenantID,
		Name:          name,
		Brand:         brand,
		PurchasePrice: price,
		MRP:           price * 1.5,
	}
	if err := db.Create(&product).Error; err != nil {
		t.Fatalf("seed product %s: %v", name, err)
	}
	return &product
}

func float64Ptr(v float64) *float64 { return &v }
func uintPtr(v uint) *uint          { return &v }
func int64Ptr(v int64) *int64       { return &v }
