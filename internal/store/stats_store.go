package store

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"inventory-service/internal/model"
)

// StatsStore computes the dashboard aggregates. Read-only; every query and
// every join hop carries the tenant filter, so the isolation invariant holds
// transitively through inventory -> product -> category.
//
// Monetary sums are accumulated as decimals and rounded half-up to the cent
// exactly once, at output.
type StatsStore struct {
	db *gorm.DB

	// lowStockThreshold is the exclusive upper bound for the low-stock
	// count; out-of-stock rows are counted separately.
	lowStockThreshold int64
}

func NewStatsStore(db *gorm.DB, lowStockThreshold int64) *StatsStore {
	if lowStockThreshold <= 0 {
		lowStockThreshold = 10
	}
	return &StatsStore{db: db, lowStockThreshold: lowStockThreshold}
}

// DashboardStats is the tenant-wide snapshot the dashboard renders.
type DashboardStats struct {
	TotalProducts   int64   `json:"total_products"`
	TotalQuantity   int64   `json:"total_quantity"`
	LowStock        int64   `json:"low_stock"`
	OutOfStock      int64   `json:"out_of_stock"`
	TotalValue      float64 `json:"total_value"`
	RecentSales     int64   `json:"recent_sales"`
	TotalUsers      int64   `json:"total_users"`
	TotalCategories int64   `json:"total_categories"`
	TotalSuppliers  int64   `json:"total_suppliers"`
}

// TopProduct is one row of the sales-velocity ranking.
type TopProduct struct {
	ProductID uint   `json:"product_id"`
	Name      string `json:"name"`
	Brand     string `json:"brand"`
	TotalSold int64  `json:"total_sold"`
}

// CategoryStats restricts the product count and inventory value to one
// category.
type CategoryStats struct {
	CategoryID   uint    `json:"category_id"`
	ProductCount int64   `json:"product_count"`
	TotalValue   float64 `json:"total_value"`
}

// Dashboard computes the full stats snapshot as of now. The recent-sales
// window is the half-open interval [now-30d, now).
func (s *StatsStore) Dashboard(tenantID uint, now time.Time) (*DashboardStats, error) {
	stats := &DashboardStats{}

	counts := []struct {
		model interface{}
		dest  *int64
	}{
		{&model.Product{}, &stats.TotalProducts},
		{&model.User{}, &stats.TotalUsers},
		{&model.Category{}, &stats.TotalCategories},
		{&model.Supplier{}, &stats.TotalSuppliers},
	}
	for _, c := range counts {
		if err := s.db.Model(c.model).Where("tenant_id = ?", tenantID).Count(c.dest).Error; err != nil {
			return nil, translate(err)
		}
	}

	err := s.db.Model(&model.InventoryRecord{}).
		Where("tenant_id = ?", tenantID).
		Select("COALESCE(SUM(quantity), 0)").
		Scan(&stats.TotalQuantity).Error
	if err != nil {
		return nil, translate(err)
	}

	// Low stock excludes out-of-stock rows; the two buckets never overlap.
	err = s.db.Model(&model.InventoryRecord{}).
		Where("tenant_id = ? AND quantity > 0 AND quantity < ?", tenantID, s.lowStockThreshold).
		Count(&stats.LowStock).Error
	if err != nil {
		return nil, translate(err)
	}
	err = s.db.Model(&model.InventoryRecord{}).
		Where("tenant_id = ? AND quantity = 0", tenantID).
		Count(&stats.OutOfStock).Error
	if err != nil {
		return nil, translate(err)
	}

	value, err := s.inventoryValue(s.db.Model(&model.InventoryRecord{}).
		Joins(inventoryJoin).
		Where("inventory_records.tenant_id = ?", tenantID))
	if err != nil {
		return nil, err
	}
	stats.TotalValue = value

	err = s.db.Model(&model.Sale{}).
		Where("tenant_id = ? AND created_at >= ? AND created_at < ?", tenantID, now.AddDate(0, 0, -30), now).
		Count(&stats.RecentSales).Error
	if err != nil {
		return nil, translate(err)
	}

	return stats, nil
}

// TopProducts ranks products by total quantity sold, descending, ties broken
// by product id ascending so the order is reproducible.
func (s *StatsStore) TopProducts(tenantID uint, n int) ([]TopProduct, error) {
	if n <= 0 {
		n = 5
	}

	var rows []TopProduct
	err := s.db.Model(&model.Sale{}).
		Select("sales.product_id AS product_id, products.name AS name, products.brand AS brand, SUM(sales.quantity) AS total_sold").
		Joins("JOIN products ON products.id = sales.product_id AND products.tenant_id = sales.tenant_id AND products.deleted_at IS NULL").
		Where("sales.tenant_id = ?", tenantID).
		Group("sales.product_id, products.name, products.brand").
		Order("total_sold DESC, product_id ASC").
		Limit(n).
		Scan(&rows).Error
	if err != nil {
		return nil, translate(err)
	}
	return rows, nil
}

// ForCategory reports the product count and inventory value for one category
// of the tenant.
func (s *StatsStore) ForCategory(tenantID, categoryID uint) (*CategoryStats, error) {
	// Resolve the category under the tenant first so a foreign category id
	// reads as absent.
	var category model.Category
	if err := s.db.Where("id = ? AND tenant_id = ?", categoryID, tenantID).First(&category).Error; err != nil {
		return nil, translate(err)
	}

	stats := &CategoryStats{CategoryID: categoryID}
	err := s.db.Model(&model.Product{}).
		Where("tenant_id = ? AND category_id = ?", tenantID, categoryID).
		Count(&stats.ProductCount).Error
	if err != nil {
		return nil, translate(err)
	}

	value, err := s.inventoryValue(s.db.Model(&model.InventoryRecord{}).
		Joins(inventoryJoin).
		Where("inventory_records.tenant_id = ? AND products.category_id = ?", tenantID, categoryID))
	if err != nil {
		return nil, err
	}
	stats.TotalValue = value

	return stats, nil
}

// inventoryValue accumulates sum(quantity * purchase_price) over the given
// inventory query with decimal arithmetic, rounding to cents once at the end.
func (s *StatsStore) inventoryValue(query *gorm.DB) (float64, error) {
	rows, err := query.
		Select("inventory_records.quantity, products.purchase_price").
		Rows()
	if err != nil {
		return 0, translate(err)
	}
	defer rows.Close()

	total := decimal.Zero
	for rows.Next() {
		var quantity int64
		var price float64
		if err := rows.Scan(&quantity, &price); err != nil {
			return 0, translate(err)
		}
		total = total.Add(decimal.NewFromFloat(price).Mul(decimal.NewFromInt(quantity)))
	}
	if err := rows.Err(); err != nil {
		return 0, translate(err)
	}

	return total.Round(2).InexactFloat64(), nil
}
