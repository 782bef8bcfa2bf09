package store

import (
	"strings"

	"inventory-service/internal/model"
)

// ProductInput carries the writable product fields. CategoryID and SupplierID
// are optional; when present they must resolve within the same tenant.
type ProductInput struct {
	Name          string   `json:"name"`
	Brand         string   `json:"brand"`
	PurchasePrice *float64 `json:"purchase_price"`
	MRP           *float64 `json:"mrp"`
	CategoryID    *uint    `json:"category_id"`
	SupplierID    *uint    `json:"supplier_id"`
	Dimensions    string   `json:"dimensions"`
	ImageURL      string   `json:"image_url"`
}

// ProductFilter narrows ListProducts. Search matches name or brand
// case-insensitively as a substring.
type ProductFilter struct {
	Search     string
	CategoryID *uint
	Page       int
	PageSize   int
}

// Page is an offset-paginated result. Page numbers are 1-indexed.
type Page[T any] struct {
	Items      []T   `json:"items"`
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
}

func totalPages(total int64, pageSize int) int {
	return int((total + int64(pageSize) - 1) / int64(pageSize))
}

func normalizePaging(page, pageSize int) (int, int) {
	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 || pageSize > 100 {
		pageSize = 10
	}
	return page, pageSize
}

func (s *CatalogStore) validateProductInput(tenantID uint, in ProductInput) error {
	if strings.TrimSpace(in.Name) == "" {
		return invalidInput("name", "is required")
	}
	if strings.TrimSpace(in.Brand) == "" {
		return invalidInput("brand", "is required")
	}
	if in.PurchasePrice == nil {
		return invalidInput("purchase_price", "is required")
	}
	if *in.PurchasePrice < 0 {
		return invalidInput("purchase_price", "must not be negative")
	}
	if in.MRP == nil {
		return invalidInput("mrp", "is required")
	}
	if *in.MRP < 0 {
		return invalidInput("mrp", "must not be negative")
	}

	// Referenced category/supplier must belong to the same tenant. A
	// reference into another tenant reads as absent.
	if in.CategoryID != nil {
		if _, err := s.GetCategory(tenantID, *in.CategoryID); err != nil {
			return invalidInput("category_id", "does not reference a category of this tenant")
		}
	}
	if in.SupplierID != nil {
		if _, err := s.GetSupplier(tenantID, *in.SupplierID); err != nil {
			return invalidInput("supplier_id", "does not reference a supplier of this tenant")
		}
	}
	return nil
}

func (s *CatalogStore) CreateProduct(tenantID uint, in ProductInput) (*model.Product, error) {
	if err := s.validateProductInput(tenantID, in); err != nil {
		return nil, err
	}

	product := model.Product{
		TenantID:      tenantID,
		Name:          strings.TrimSpace(in.Name),
		Brand:         strings.TrimSpace(in.Brand),
		PurchasePrice: *in.PurchasePrice,
		MRP:           *in.MRP,
		CategoryID:    in.CategoryID,
		SupplierID:    in.SupplierID,
		Dimensions:    in.Dimensions,
		ImageURL:      in.ImageURL,
	}
	if err := s.db.Create(&product).Error; err != nil {
		return nil, translate(err)
	}
	return &product, nil
}

func (s *CatalogStore) GetProduct(tenantID, id uint) (*model.Product, error) {
	var product model.Product
	err := s.db.Where("id = ? AND tenant_id = ?", id, tenantID).First(&product).Error
	if err != nil {
		return nil, translate(err)
	}
	return &product, nil
}

func (s *CatalogStore) UpdateProduct(tenantID, id uint, in ProductInput) (*model.Product, error) {
	product, err := s.GetProduct(tenantID, id)
	if err != nil {
		return nil, err
	}
	if err := s.validateProductInput(tenantID, in); err != nil {
		return nil, err
	}

	product.Name = strings.TrimSpace(in.Name)
	product.Brand = strings.TrimSpace(in.Brand)
	product.PurchasePrice = *in.PurchasePrice
	product.MRP = *in.MRP
	product.CategoryID = in.CategoryID
	product.SupplierID = in.SupplierID
	product.Dimensions = in.Dimensions
	product.ImageURL = in.ImageURL
	if err := s.db.Save(product).Error; err != nil {
		return nil, translate(err)
	}
	return product, nil
}

// DeleteProduct refuses to remove a product that still has inventory rows, so
// the ledger never holds records pointing at a missing product. Sale rows are
// historical and never block deletion.
func (s *CatalogStore) DeleteProduct(tenantID, id uint) error {
	product, err := s.GetProduct(tenantID, id)
	if err != nil {
		return err
	}

	var count int64
	if err := s.db.Model(&model.InventoryRecord{}).
		Where("product_id = ? AND tenant_id = ?", id, tenantID).
		Count(&count).Error; err != nil {
		return translate(err)
	}
	if count > 0 {
		return &InUseError{Count: count}
	}

	return translate(s.db.Delete(product).Error)
}

func (s *CatalogStore) ListProducts(tenantID uint, filter ProductFilter) (*Page[model.Product], error) {
	page, pageSize := normalizePaging(filter.Page, filter.PageSize)

	query := s.db.Model(&model.Product{}).Where("tenant_id = ?", tenantID)
	if search := strings.TrimSpace(filter.Search); search != "" {
		pattern := "%" + strings.ToLower(search) + "%"
		query = query.Where("LOWER(name) LIKE ? OR LOWER(brand) LIKE ?", pattern, pattern)
	}
	if filter.CategoryID != nil {
		query = query.Where("category_id = ?", *filter.CategoryID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, translate(err)
	}

	var products []model.Product
	err := query.
		Order("created_at desc, id desc").
		Limit(pageSize).
		Offset((page - 1) * pageSize).
		Find(&products).Error
	if err != nil {
		return nil, translate(err)
	}

	return &Page[model.Product]{
		Items:      products,
		Page:       page,
		PageSize:   pageSize,
		Total:      total,
		TotalPages: totalPages(total, pageSize),
	}, nil
}
