package store

import (
	"gorm.io/gorm"

	"inventory-service/internal/model"
)

// SaleStore appends sale records. Sales are never updated or deleted; the
// stats queries read them for velocity metrics.
type SaleStore struct {
	db *gorm.DB
}

func NewSaleStore(db *gorm.DB) *SaleStore {
	return &SaleStore{db: db}
}

// SaleInput is one completed sale to record.
type SaleInput struct {
	ProductID    uint    `json:"product_id"`
	Location     string  `json:"location"`
	Quantity     int64   `json:"quantity"`
	SellingPrice float64 `json:"selling_price"`
}

// Record appends the sale and applies the clamped subtraction to the stock
// row for (product, location), both inside one transaction so a failed stock
// update never leaves a dangling sale row.
func (s *SaleStore) Record(tenantID uint, in SaleInput) (*model.Sale, error) {
	if in.Quantity <= 0 {
		return nil, invalidInput("quantity", "must be positive")
	}
	if in.SellingPrice < 0 {
		return nil, invalidInput("selling_price", "must not be negative")
	}
	if in.Location == "" {
		return nil, invalidInput("location", "is required")
	}

	sale := model.Sale{
		TenantID:     tenantID,
		ProductID:    in.ProductID,
		Location:     in.Location,
		Quantity:     in.Quantity,
		SellingPrice: in.SellingPrice,
	}
	err := s.db.Transaction(func(tx *gorm.DB) error {
		ledger := NewInventoryStore(tx)
		if err := ledger.requireProduct(tenantID, in.ProductID); err != nil {
			return err
		}
		if err := tx.Create(&sale).Error; err != nil {
			return translate(err)
		}
		_, err := ledger.MutateQuantity(tenantID, in.ProductID, in.Location, OpSubtract, in.Quantity, nil)
		return err
	})
	if err != nil {
		return nil, err
	}
	return &sale, nil
}

// List returns the tenant's sales, newest first.
func (s *SaleStore) List(tenantID uint, page, pageSize int) (*Page[model.Sale], error) {
	page, pageSize = normalizePaging(page, pageSize)

	query := s.db.Model(&model.Sale{}).Where("tenant_id = ?", tenantID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, translate(err)
	}

	var sales []model.Sale
	err := query.
		Order("created_at desc, id desc").
		Limit(pageSize).
		Offset((page - 1) * pageSize).
		Find(&sales).Error
	if err != nil {
		return nil, translate(err)
	}

	return &Page[model.Sale]{
		Items:      sales,
		Page:       page,
		PageSize:   pageSize,
		Total:      total,
		TotalPages: totalPages(total, pageSize),
	}, nil
}
