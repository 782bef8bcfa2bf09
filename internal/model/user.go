package model

import (
	"time"

	"gorm.io/gorm"
)

// User is a member of a tenant. This service only reads users (listing and
// dashboard counts); account creation lives upstream.
type User struct {
	ID        uint           `json:"id" gorm:"primaryKey"`
	TenantID  uint           `json:"tenant_id" gorm:"index;not null"`
	Name      string         `json:"name" gorm:"type:varchar(100);not null"`
	Email     string         `json:"email" gorm:"type:varchar(100);index"`
	Role      string         `json:"role" gorm:"type:varchar(50);default:'member'"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}
