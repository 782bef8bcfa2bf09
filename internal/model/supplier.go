package model

import (
	"time"

	"gorm.io/gorm"
)

// Supplier represents a vendor a tenant sources products from. Name is unique
// per tenant, enforced by the composite unique index.
type Supplier struct {
	ID            uint           `json:"id" gorm:"primaryKey"`
	TenantID      uint           `json:"tenant_id" gorm:"uniqueIndex:idx_supplier_tenant_name;not null"`
	Name          string         `json:"name" gorm:"type:varchar(100);uniqueIndex:idx_supplier_tenant_name;not null"`
	ContactPerson string         `json:"contact_person" gorm:"type:varchar(100)"`
	Email         string         `json:"email" gorm:"type:varchar(100)"`
	Phone         string         `json:"phone" gorm:"type:varchar(20)"`
	Address       string         `json:"address" gorm:"type:text"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `json:"deleted_at,omitempty" gorm:"index"`
}
