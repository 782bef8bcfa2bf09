package store

import (
	"strings"

	"gorm.io/gorm"

	"inventory-service/internal/model"
)

// MutationOp selects how MutateQuantity combines the operand with the stored
// quantity.
type MutationOp string

const (
	// OpSet replaces the quantity. Idempotent, last writer wins.
	OpSet MutationOp = "set"
	// OpAdd increments the quantity server-side.
	OpAdd MutationOp = "add"
	// OpSubtract decrements the quantity server-side, clamped at zero. An
	// over-subtraction is silently absorbed; the shortfall is not recorded.
	OpSubtract MutationOp = "subtract"
)

// InventoryStore is the stock ledger: one row per (tenant, product, location),
// with the quantity as the only contended field.
//
// Add and Subtract are issued as a single UPDATE whose arithmetic runs inside
// the database, so two concurrent mutations on the same key can never read a
// stale quantity and overwrite each other. The quantity is never loaded into
// application memory to decide the new value.
type InventoryStore struct {
	db *gorm.DB
}

func NewInventoryStore(db *gorm.DB) *InventoryStore {
	return &InventoryStore{db: db}
}

// InventoryFilter narrows List. Search matches the location as a
// case-insensitive substring; Location matches exactly.
type InventoryFilter struct {
	Search   string
	Location string
	Page     int
	PageSize int
}

const inventoryJoin = "JOIN products ON products.id = inventory_records.product_id " +
	"AND products.tenant_id = inventory_records.tenant_id AND products.deleted_at IS NULL"

const inventorySelect = "inventory_records.*, products.name AS product_name, " +
	"products.brand AS product_brand, products.purchase_price AS purchase_price"

// CreateRecord inserts a stock row after verifying the product belongs to the
// tenant. The composite unique index rejects a second row for the same
// (tenant, product, location) even when two creates race.
func (s *InventoryStore) CreateRecord(tenantID, productID uint, location string, quantity int64, capacity *int64) (*model.InventoryRecord, error) {
	location = strings.TrimSpace(location)
	if location == "" {
		return nil, invalidInput("location", "is required")
	}
	if quantity < 0 {
		return nil, invalidInput("quantity", "must not be negative")
	}

	if err := s.requireProduct(tenantID, productID); err != nil {
		return nil, err
	}

	record := model.InventoryRecord{
		TenantID:  tenantID,
		ProductID: productID,
		Location:  location,
		Quantity:  quantity,
		Capacity:  capacity,
	}
	if err := s.db.Create(&record).Error; err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicateKey
		}
		return nil, translate(err)
	}
	return &record, nil
}

// MutateQuantity applies one atomic quantity mutation to the (tenant,
// product, location) key.
//
//   - OpSet: quantity := n. Fails ErrNotFound when the record is absent.
//   - OpAdd: quantity := quantity + n; creates the record at n when absent.
//   - OpSubtract: quantity := max(0, quantity-n); creates the record at 0
//     when absent.
//
// capacity, when non-nil, is updated alongside the quantity.
func (s *InventoryStore) MutateQuantity(tenantID, productID uint, location string, op MutationOp, n int64, capacity *int64) (*model.InventoryRecord, error) {
	if n < 0 {
		return nil, invalidInput("quantity", "must not be negative")
	}

	assignments := map[string]interface{}{}
	switch op {
	case OpSet:
		assignments["quantity"] = n
	case OpAdd:
		assignments["quantity"] = gorm.Expr("quantity + ?", n)
	case OpSubtract:
		// Clamp at zero inside the statement; underflow never fails.
		assignments["quantity"] = gorm.Expr("CASE WHEN quantity > ? THEN quantity - ? ELSE 0 END", n, n)
	default:
		return nil, invalidInput("operation", "must be set, add or subtract")
	}
	if capacity != nil {
		assignments["capacity"] = *capacity
	}

	res := s.db.Model(&model.InventoryRecord{}).
		Where("tenant_id = ? AND product_id = ? AND location = ?", tenantID, productID, location).
		Updates(assignments)
	if res.Error != nil {
		return nil, translate(res.Error)
	}

	if res.RowsAffected == 0 {
		if op == OpSet {
			return nil, ErrNotFound
		}
		if created, err := s.createOnFirstWrite(tenantID, productID, location, op, n, capacity); err != nil || created != nil {
			return created, err
		}
		// Insert lost to a concurrent first write; the row exists now, so
		// the original UPDATE applies.
		res = s.db.Model(&model.InventoryRecord{}).
			Where("tenant_id = ? AND product_id = ? AND location = ?", tenantID, productID, location).
			Updates(assignments)
		if res.Error != nil {
			return nil, translate(res.Error)
		}
	}

	return s.getRecord(tenantID, productID, location)
}

// createOnFirstWrite inserts the missing record for an Add/Subtract against a
// key that has never been written. Returns (nil, nil) when the insert lost a
// race to another first write and the caller should re-apply its update.
func (s *InventoryStore) createOnFirstWrite(tenantID, productID uint, location string, op MutationOp, n int64, capacity *int64) (*model.InventoryRecord, error) {
	if err := s.requireProduct(tenantID, productID); err != nil {
		return nil, err
	}

	initial := int64(0)
	if op == OpAdd {
		initial = n
	}
	record := model.InventoryRecord{
		TenantID:  tenantID,
		ProductID: productID,
		Location:  location,
		Quantity:  initial,
		Capacity:  capacity,
	}
	if err := s.db.Create(&record).Error; err != nil {
		if isUniqueViolation(err) {
			return nil, nil
		}
		return nil, translate(err)
	}
	return &record, nil
}

func (s *InventoryStore) DeleteRecord(tenantID, productID uint, location string) error {
	res := s.db.Where("tenant_id = ? AND product_id = ? AND location = ?", tenantID, productID, location).
		Delete(&model.InventoryRecord{})
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *InventoryStore) List(tenantID uint, filter InventoryFilter) (*Page[model.InventoryRow], error) {
	page, pageSize := normalizePaging(filter.Page, filter.PageSize)

	query := s.db.Model(&model.InventoryRecord{}).
		Joins(inventoryJoin).
		Where("inventory_records.tenant_id = ?", tenantID)
	if search := strings.TrimSpace(filter.Search); search != "" {
		query = query.Where("LOWER(inventory_records.location) LIKE ?", "%"+strings.ToLower(search)+"%")
	}
	if filter.Location != "" {
		query = query.Where("inventory_records.location = ?", filter.Location)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, translate(err)
	}

	var rows []model.InventoryRow
	err := query.
		Select(inventorySelect).
		Order("inventory_records.updated_at desc, inventory_records.id desc").
		Limit(pageSize).
		Offset((page - 1) * pageSize).
		Scan(&rows).Error
	if err != nil {
		return nil, translate(err)
	}

	return &Page[model.InventoryRow]{
		Items:      rows,
		Page:       page,
		PageSize:   pageSize,
		Total:      total,
		TotalPages: totalPages(total, pageSize),
	}, nil
}

// ListByProduct returns the stock rows across all locations for one product.
func (s *InventoryStore) ListByProduct(tenantID, productID uint) ([]model.InventoryRow, error) {
	var rows []model.InventoryRow
	err := s.db.Model(&model.InventoryRecord{}).
		Select(inventorySelect).
		Joins(inventoryJoin).
		Where("inventory_records.tenant_id = ? AND inventory_records.product_id = ?", tenantID, productID).
		Order("inventory_records.location asc").
		Scan(&rows).Error
	if err != nil {
		return nil, translate(err)
	}
	return rows, nil
}

// LowStock returns records with quantity below threshold, ascending by
// quantity. A finite, restartable query, not a subscription.
func (s *InventoryStore) LowStock(tenantID uint, threshold int64) ([]model.InventoryRow, error) {
	var rows []model.InventoryRow
	err := s.db.Model(&model.InventoryRecord{}).
		Select(inventorySelect).
		Joins(inventoryJoin).
		Where("inventory_records.tenant_id = ? AND inventory_records.quantity < ?", tenantID, threshold).
		Order("inventory_records.quantity asc, inventory_records.id asc").
		Scan(&rows).Error
	if err != nil {
		return nil, translate(err)
	}
	return rows, nil
}

func (s *InventoryStore) getRecord(tenantID, productID uint, location string) (*model.InventoryRecord, error) {
	var record model.InventoryRecord
	err := s.db.Where("tenant_id = ? AND product_id = ? AND location = ?", tenantID, productID, location).
		First(&record).Error
	if err != nil {
		return nil, translate(err)
	}
	return &record, nil
}

func (s *InventoryStore) requireProduct(tenantID, productID uint) error {
	var count int64
	if err := s.db.Model(&model.Product{}).
		Where("id = ? AND tenant_id = ?", productID, tenantID).
		Count(&count).Error; err != nil {
		return translate(err)
	}
	if count == 0 {
		return ErrNotFound
	}
	return nil
}
