package model

import (
	"time"

	"gorm.io/gorm"
)

// Category groups products within a tenant. The composite unique index on
// (tenant_id, name) is the authoritative duplicate-name guard; application
// pre-checks only exist to produce a friendly error.
type Category struct {
	ID          uint           `json:"id" gorm:"primaryKey"`
	TenantID    uint           `json:"tenant_id" gorm:"uniqueIndex:idx_category_tenant_name;not null"`
	Name        string         `json:"name" gorm:"type:varchar(100);uniqueIndex:idx_category_tenant_name;not null"`
	Description string         `json:"description" gorm:"type:text"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `json:"deleted_at,omitempty" gorm:"index"`
}
