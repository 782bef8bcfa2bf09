package store

import (
	"strings"

	"gorm.io/gorm"

	"inventory-service/internal/model"
)

// CatalogStore owns the tenant-scoped Product, Category and Supplier
// entities. Every method takes the validated tenant id as its first argument
// and filters every query by it, joins included.
//
// Name uniqueness for categories and suppliers is "optimistic pre-check plus
// authoritative constraint": the count-based check produces a clean
// ErrDuplicateName in the common case, and the composite unique index on
// (tenant_id, name) catches the race when two creates slip past the check
// concurrently. Both paths surface the same error kind.
type CatalogStore struct {
	db *gorm.DB
}

func NewCatalogStore(db *gorm.DB) *CatalogStore {
	return &CatalogStore{db: db}
}

// --- Categories ---

func (s *CatalogStore) CreateCategory(tenantID uint, name, description string) (*model.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, invalidInput("name", "is required")
	}

	var count int64
	if err := s.db.Model(&model.Category{}).
		Where("tenant_id = ? AND name = ?", tenantID, name).
		Count(&count).Error; err != nil {
		return nil, translate(err)
	}
	if count > 0 {
		return nil, ErrDuplicateName
	}

	category := model.Category{
		TenantID:    tenantID,
		Name:        name,
		Description: description,
	}
	if err := s.db.Create(&category).Error; err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicateName
		}
		return nil, translate(err)
	}
	return &category, nil
}

func (s *CatalogStore) GetCategory(tenantID, id uint) (*model.Category, error) {
	var category model.Category
	err := s.db.Where("id = ? AND tenant_id = ?", id, tenantID).First(&category).Error
	if err != nil {
		return nil, translate(err)
	}
	return &category, nil
}

func (s *CatalogStore) ListCategories(tenantID uint) ([]model.Category, error) {
	var categories []model.Category
	err := s.db.Where("tenant_id = ?", tenantID).Order("name asc").Find(&categories).Error
	if err != nil {
		return nil, translate(err)
	}
	return categories, nil
}

func (s *CatalogStore) UpdateCategory(tenantID, id uint, name, description string) (*model.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, invalidInput("name", "is required")
	}

	category, err := s.GetCategory(tenantID, id)
	if err != nil {
		return nil, err
	}

	if name != category.Name {
		var count int64
		if err := s.db.Model(&model.Category{}).
			Where("tenant_id = ? AND name = ? AND id != ?", tenantID, name, id).
			Count(&count).Error; err != nil {
			return nil, translate(err)
		}
		if count > 0 {
			return nil, ErrDuplicateName
		}
	}

	category.Name = name
	category.Description = description
	if err := s.db.Save(category).Error; err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicateName
		}
		return nil, translate(err)
	}
	return category, nil
}

// DeleteCategory refuses to remove a category that products still reference.
// The InUseError carries the exact reference count.
func (s *CatalogStore) DeleteCategory(tenantID, id uint) error {
	category, err := s.GetCategory(tenantID, id)
	if err != nil {
		return err
	}

	var count int64
	if err := s.db.Model(&model.Product{}).
		Where("category_id = ? AND tenant_id = ?", id, tenantID).
		Count(&count).Error; err != nil {
		return translate(err)
	}
	if count > 0 {
		return &InUseError{Count: count}
	}

	return translate(s.db.Delete(category).Error)
}

// --- Suppliers ---

type SupplierInput struct {
	Name          string `json:"name"`
	ContactPerson string `json:"contact_person"`
	Email         string `json:"email"`
	Phone         string `json:"phone"`
	Address       string `json:"address"`
}

func (s *CatalogStore) CreateSupplier(tenantID uint, in SupplierInput) (*model.Supplier, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, invalidInput("name", "is required")
	}

	var count int64
	if err := s.db.Model(&model.Supplier{}).
		Where("tenant_id = ? AND name = ?", tenantID, name).
		Count(&count).Error; err != nil {
		return nil, translate(err)
	}
	if count > 0 {
		return nil, ErrDuplicateName
	}

	supplier := model.Supplier{
		TenantID:      tenantID,
		Name:          name,
		ContactPerson: in.ContactPerson,
		Email:         in.Email,
		Phone:         in.Phone,
		Address:       in.Address,
	}
	if err := s.db.Create(&supplier).Error; err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicateName
		}
		return nil, translate(err)
	}
	return &supplier, nil
}

func (s *CatalogStore) GetSupplier(tenantID, id uint) (*model.Supplier, error) {
	var supplier model.Supplier
	err := s.db.Where("id = ? AND tenant_id = ?", id, tenantID).First(&supplier).Error
	if err != nil {
		return nil, translate(err)
	}
	return &supplier, nil
}

func (s *CatalogStore) ListSuppliers(tenantID uint) ([]model.Supplier, error) {
	var suppliers []model.Supplier
	err := s.db.Where("tenant_id = ?", tenantID).Order("name asc").Find(&suppliers).Error
	if err != nil {
		return nil, translate(err)
	}
	return suppliers, nil
}

func (s *CatalogStore) UpdateSupplier(tenantID, id uint, in SupplierInput) (*model.Supplier, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, invalidInput("name", "is required")
	}

	supplier, err := s.GetSupplier(tenantID, id)
	if err != nil {
		return nil, err
	}

	if name != supplier.Name {
		var count int64
		if err := s.db.Model(&model.Supplier{}).
			Where("tenant_id = ? AND name = ? AND id != ?", tenantID, name, id).
			Count(&count).Error; err != nil {
			return nil, translate(err)
		}
		if count > 0 {
			return nil, ErrDuplicateName
		}
	}

	supplier.Name = name
	supplier.ContactPerson = in.ContactPerson
	supplier.Email = in.Email
	supplier.Phone = in.Phone
	supplier.Address = in.Address
	if err := s.db.Save(supplier).Error; err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicateName
		}
		return nil, translate(err)
	}
	return supplier, nil
}

func (s *CatalogStore) DeleteSupplier(tenantID, id uint) error {
	supplier, err := s.GetSupplier(tenantID, id)
	if err != nil {
		return err
	}

	var count int64
	if err := s.db.Model(&model.Product{}).
		Where("supplier_id = ? AND tenant_id = ?", id, tenantID).
		Count(&count).Error; err != nil {
		return translate(err)
	}
	if count > 0 {
		return &InUseError{Count: count}
	}

	return translate(s.db.Delete(supplier).Error)
}
