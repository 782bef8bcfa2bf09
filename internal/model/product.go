package model

import (
	"time"

	"gorm.io/gorm"
)

// Product is the catalog entry for one item a tenant stocks. CategoryID and
// SupplierID, when set, must reference rows of the same tenant.
type Product struct {
	ID            uint           `json:"id" gorm:"primaryKey"`
	TenantID      uint           `json:"tenant_id" gorm:"index;not null"`
	Name          string         `json:"name" gorm:"type:varchar(255);not null"`
	Brand         string         `json:"brand" gorm:"type:varchar(100);not null"`
	PurchasePrice float64        `json:"purchase_price" gorm:"not null"`
	MRP           float64        `json:"mrp" gorm:"column:mrp;not null"`
	CategoryID    *uint          `json:"category_id,omitempty" gorm:"index"`
	SupplierID    *uint          `json:"supplier_id,omitempty" gorm:"index"`
	Dimensions    string         `json:"dimensions,omitempty" gorm:"type:varchar(100)"`
	ImageURL      string         `json:"image_url,omitempty" gorm:"type:text"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `json:"deleted_at,omitempty" gorm:"index"`
}
