package store

import (
	"strconv"

	"gorm.io/gorm"

	"inventory-service/internal/model"
)

// TenantStore resolves tenant tokens. It is the gate in front of every other
// store: the gateway resolves the token once per request and passes the
// validated tenant id into each store call.
type TenantStore struct {
	db *gorm.DB
}

func NewTenantStore(db *gorm.DB) *TenantStore {
	return &TenantStore{db: db}
}

// Resolve looks up a tenant by its opaque token (the numeric id from the URL
// segment or X-Tenant-ID header). Returns ErrNotFound for unknown or
// malformed tokens and ErrTenantInactive for deactivated tenants.
func (s *TenantStore) Resolve(token string) (*model.Tenant, error) {
	id, err := strconv.ParseUint(token, 10, 32)
	if err != nil {
		return nil, ErrNotFound
	}

	var tenant model.Tenant
	if err := s.db.First(&tenant, uint(id)).Error; err != nil {
		return nil, translate(err)
	}
	if !tenant.Active {
		return nil, ErrTenantInactive
	}
	return &tenant, nil
}
