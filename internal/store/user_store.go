package store

import (
	"gorm.io/gorm"

	"inventory-service/internal/model"
)

// UserStore lists tenant members. Account creation and identity live
// upstream; this service only reads.
type UserStore struct {
	db *gorm.DB
}

func NewUserStore(db *gorm.DB) *UserStore {
	return &UserStore{db: db}
}

func (s *UserStore) List(tenantID uint, page, pageSize int) (*Page[model.User], error) {
	page, pageSize = normalizePaging(page, pageSize)

	query := s.db.Model(&model.User{}).Where("tenant_id = ?", tenantID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, translate(err)
	}

	var users []model.User
	err := query.
		Order("created_at desc, id desc").
		Limit(pageSize).
		Offset((page - 1) * pageSize).
		Find(&users).Error
	if err != nil {
		return nil, translate(err)
	}

	return &Page[model.User]{
		Items:      users,
		Page:       page,
		PageSize:   pageSize,
		Total:      total,
		TotalPages: totalPages(total, pageSize),
	}, nil
}
