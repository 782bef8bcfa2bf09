package store

import (
	"errors"
	"testing"
)

func TestCatalogStore_CreateCategory(t *testing.T) {
	db := testDB(t)
	catalog := NewCatalogStore(db)
	tenant := seedTenant(t, db, "Acme", true)

	category, err := catalog.CreateCategory(tenant.ID, "  Snacks  ", "munchies")
	if err != nil {
		t.Fatalf("CreateCategory: %v", err)
	}
	if category.Name != "Snacks" {
		t.Errorf("Name = %q, want trimmed Snacks", category.Name)
	}
	if category.TenantID != tenant.ID {
		t.Errorf("TenantID = %d, want %d", category.TenantID, tenant.ID)
	}

	if _, err := catalog.CreateCategory(tenant.ID, "   ", "blank"); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("empty name: err = %v, want ErrInvalidInput", err)
	}
}

func TestCatalogStore_CategoryNameUniquePerTenant(t *testing.T) {
	db := testDB(t)
	catalog := NewCatalogStore(db)
	t1 := seedTenant(t, db, "Acme", true)
	t2 := seedTenant(t, db, "Globex", true)

	if _, err := catalog.CreateCategory(t1.ID, "Snacks", ""); err != nil {
		t.Fatalf("first create: %v", err)
	}
	if _, err := catalog.CreateCategory(t1.ID, "Snacks", ""); !errors.Is(err, ErrDuplicateName) {
		t.Errorf("duplicate same tenant: err = %v, want ErrDuplicateName", err)
	}
	// Trimming collapses onto the existing name
	if _, err := catalog.CreateCategory(t1.ID, " Snacks ", ""); !errors.Is(err, ErrDuplicateName) {
		t.Errorf("duplicate after trim: err = %v, want ErrDuplicateName", err)
	}

	// Same name under a different tenant is fine
	if _, err := catalog.CreateCategory(t2.ID, "Snacks", ""); err != nil {
		t.Errorf("same name different tenant: %v", err)
	}
}

func TestCatalogStore_UpdateCategory(t *testing.T) {
	db := testDB(t)
	catalog := NewCatalogStore(db)
	tenant := seedTenant(t, db, "Acme", true)

	snacks, _ := catalog.CreateCategory(tenant.ID, "Snacks", "")
	drinks, _ := catalog.CreateCategory(tenant.ID, "Drinks", "")

	// Renaming onto another category's name is a duplicate
	if _, err := catalog.UpdateCategory(tenant.ID, drinks.ID, "Snacks", ""); !errors.Is(err, ErrDuplicateName) {
		t.Errorf("rename onto existing: err = %v, want ErrDuplicateName", err)
	}

	// Keeping its own name is not
	updated, err := catalog.UpdateCategory(tenant.ID, snacks.ID, "Snacks", "updated description")
	if err != nil {
		t.Fatalf("same-name update: %v", err)
	}
	if updated.Description != "updated description" {
		t.Errorf("Description = %q", updated.Description)
	}

	if _, err := catalog.UpdateCategory(tenant.ID, 9999, "Sweets", ""); !errors.Is(err, ErrNotFound) {
		t.Errorf("unknown id: err = %v, want ErrNotFound", err)
	}
}

func TestCatalogStore_DeleteCategoryInUse(t *testing.T) {
	db := testDB(t)
	catalog := NewCatalogStore(db)
	tenant := seedTenant(t, db, "Acme", true)

	category, _ := catalog.CreateCategory(tenant.ID, "Snacks", "")

	for i := 0; i < 3; i++ {
		p := seedProduct(t, db, tenant.ID, "Chips", "Crunchy", 10)
		if err := db.Model(p).Update("category_id", category.ID).Error; err != nil {
			t.Fatalf("attach category: %v", err)
		}
	}

	err := catalog.DeleteCategory(tenant.ID, category.ID)
	var inUse *InUseError
	if !errors.As(err, &inUse) {
		t.Fatalf("delete in-use: err = %v, want InUseError", err)
	}
	if inUse.Count != 3 {
		t.Errorf("Count = %d, want 3", inUse.Count)
	}

	// Detach the products; delete must now succeed
	if err := db.Exec("UPDATE products SET category_id = NULL WHERE category_id = ?", category.ID).Error; err != nil {
		t.Fatalf("detach: %v", err)
	}
	if err := catalog.DeleteCategory(tenant.ID, category.ID); err != nil {
		t.Errorf("delete after detach: %v", err)
	}
}

func TestCatalogStore_CategoryTenantIsolation(t *testing.T) {
	db := testDB(t)
	catalog := NewCatalogStore(db)
	t1 := seedTenant(t, db, "Acme", true)
	t2 := seedTenant(t, db, "Globex", true)

	category, _ := catalog.CreateCategory(t1.ID, "Snacks", "")

	// Another tenant cannot see, rename or delete it
	if _, err := catalog.GetCategory(t2.ID, category.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("cross-tenant get: err = %v, want ErrNotFound", err)
	}
	if _, err := catalog.UpdateCategory(t2.ID, category.ID, "Stolen", ""); !errors.Is(err, ErrNotFound) {
		t.Errorf("cross-tenant update: err = %v, want ErrNotFound", err)
	}
	if err := catalog.DeleteCategory(t2.ID, category.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("cross-tenant delete: err = %v, want ErrNotFound", err)
	}

	listed, err := catalog.ListCategories(t2.ID)
	if err != nil {
		t.Fatalf("ListCategories: %v", err)
	}
	if len(listed) != 0 {
		t.Errorf("cross-tenant list leaked %d categories", len(listed))
	}
}

func TestCatalogStore_SupplierUniqueAndInUse(t *testing.T) {
	db := testDB(t)
	catalog := NewCatalogStore(db)
	tenant := seedTenant(t, db, "Acme", true)

	supplier, err := catalog.CreateSupplier(tenant.ID, SupplierInput{Name: "FreshFarm", Email: "sales@freshfarm.example"})
	if err != nil {
		t.Fatalf("CreateSupplier: %v", err)
	}

	if _, err := catalog.CreateSupplier(tenant.ID, SupplierInput{Name: "FreshFarm"}); !errors.Is(err, ErrDuplicateName) {
		t.Errorf("duplicate supplier: err = %v, want ErrDuplicateName", err)
	}
	if _, err := catalog.CreateSupplier(tenant.ID, SupplierInput{Name: ""}); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("empty supplier name: err = %v, want ErrInvalidInput", err)
	}

	p := seedProduct(t, db, tenant.ID, "Milk", "FreshFarm", 2.5)
	if err := db.Model(p).Update("supplier_id", supplier.ID).Error; err != nil {
		t.Fatalf("attach supplier: %v", err)
	}

	err = catalog.DeleteSupplier(tenant.ID, supplier.ID)
	var inUse *InUseError
	if !errors.As(err, &inUse) {
		t.Fatalf("delete in-use supplier: err = %v, want InUseError", err)
	}
	if inUse.Count != 1 {
		t.Errorf("Count = %d, want 1", inUse.Count)
	}

	if err := catalog.DeleteProduct(tenant.ID, p.ID); err != nil {
		t.Fatalf("delete product: %v", err)
	}
	if err := catalog.DeleteSupplier(tenant.ID, supplier.ID); err != nil {
		t.Errorf("delete after product removed: %v", err)
	}
}

// Simulates two pre-checks passing concurrently: the second insert bypasses
// the store's count check and must still be rejected by the unique index,
// surfacing as ErrDuplicateName.
func TestCatalogStore_ConstraintBacksUpPreCheck(t *testing.T) {
	db := testDB(t)
	catalog := NewCatalogStore(db)
	tenant := seedTenant(t, db, "Acme", true)

	if _, err := catalog.CreateCategory(tenant.ID, "Snacks", ""); err != nil {
		t.Fatalf("first create: %v", err)
	}

	err := db.Exec("INSERT INTO categories (tenant_id, name) VALUES (?, ?)", tenant.ID, "Snacks").Error
	if err == nil {
		t.Fatal("raw duplicate insert succeeded; unique index missing")
	}
	if !isUniqueViolation(err) {
		t.Errorf("constraint error not recognized as unique violation: %v", err)
	}
}
