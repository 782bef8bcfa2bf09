package model

import (
	"time"

	"gorm.io/gorm"
)

// Tenant represents an isolated organization. Tenants are created out of band
// (seeding or an admin process); once active, only the Active flag changes.
type Tenant struct {
	ID        uint           `json:"id" gorm:"primaryKey"`
	OrgName   string         `json:"org_name" gorm:"type:varchar(100);uniqueIndex;not null"`
	Active    bool           `json:"active" gorm:"default:true"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}
