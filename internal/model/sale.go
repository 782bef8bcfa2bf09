package model

import "time"

// Sale is an append-only record of a completed sale. Rows are never updated
// or deleted; the aggregation queries read them for velocity metrics.
type Sale struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	TenantID     uint      `json:"tenant_id" gorm:"index;not null"`
	ProductID    uint      `json:"product_id" gorm:"index;not null"`
	Location     string    `json:"location" gorm:"not null"`
	Quantity     int64     `json:"quantity" gorm:"not null"`
	SellingPrice float64   `json:"selling_price" gorm:"not null"`
	CreatedAt    time.Time `json:"created_at" gorm:"index"`
}
