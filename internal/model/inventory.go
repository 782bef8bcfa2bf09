package model

import "time"

// InventoryRecord is the stock row for one product at one location within one
// tenant. Quantity is the only field mutated concurrently; every quantity
// change goes through the ledger's single-statement mutation path.
//
// The composite unique index on (tenant_id, product_id, location) both keys
// the row and guards the create-on-first-write race.
type InventoryRecord struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	TenantID  uint      `json:"tenant_id" gorm:"uniqueIndex:idx_inventory_key;not null"`
	ProductID uint      `json:"product_id" gorm:"uniqueIndex:idx_inventory_key;not null"`
	Location  string    `json:"location" gorm:"type:varchar(100);uniqueIndex:idx_inventory_key;not null"`
	Quantity  int64     `json:"quantity" gorm:"not null;default:0"`
	Capacity  *int64    `json:"capacity,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// InventoryRow is an InventoryRecord joined with the product fields the
// listing and low-stock endpoints surface.
type InventoryRow struct {
	InventoryRecord
	ProductName   string  `json:"product_name"`
	ProductBrand  string  `json:"product_brand"`
	PurchasePrice float64 `json:"purchase_price"`
}
