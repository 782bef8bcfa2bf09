package store

import (
	"errors"
	"sync"
	"testing"
)

func TestInventoryStore_CreateRecord(t *testing.T) {
	db := testDB(t)
	ledger := NewInventoryStore(db)
	tenant := seedTenant(t, db, "Acme", true)
	product := seedProduct(t, db, tenant.ID, "Cola", "Fizz", 0.5)

	record, err := ledger.CreateRecord(tenant.ID, product.ID, "warehouse-a", 10, int64Ptr(100))
	if err != nil {
		t.Fatalf("CreateRecord: %v", err)
	}
	if record.Quantity != 10 {
		t.Errorf("Quantity = %d, want 10", record.Quantity)
	}
	if record.Capacity == nil || *record.Capacity != 100 {
		t.Errorf("Capacity = %v, want 100", record.Capacity)
	}

	// Same (tenant, product, location) key collides
	if _, err := ledger.CreateRecord(tenant.ID, product.ID, "warehouse-a", 5, nil); !errors.Is(err, ErrDuplicateKey) {
		t.Errorf("duplicate key: err = %v, want ErrDuplicateKey", err)
	}
	// A second location does not
	if _, err := ledger.CreateRecord(tenant.ID, product.ID, "warehouse-b", 5, nil); err != nil {
		t.Errorf("second location: %v", err)
	}

	if _, err := ledger.CreateRecord(tenant.ID, product.ID, "", 5, nil); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("empty location: err = %v, want ErrInvalidInput", err)
	}
	if _, err := ledger.CreateRecord(tenant.ID, product.ID, "warehouse-c", -5, nil); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("negative quantity: err = %v, want ErrInvalidInput", err)
	}
	if _, err := ledger.CreateRecord(tenant.ID, 9999, "warehouse-a", 5, nil); !errors.Is(err, ErrNotFound) {
		t.Errorf("unknown product: err = %v, want ErrNotFound", err)
	}
}

func TestInventoryStore_CreateRecordCrossTenantProduct(t *testing.T) {
	db := testDB(t)
	ledger := NewInventoryStore(db)
	t1 := seedTenant(t, db, "Acme", true)
	t2 := seedTenant(t, db, "Globex", true)
	product := seedProduct(t, db, t2.ID, "Cola", "Fizz", 0.5)

	// A product of another tenant reads as absent
	if _, err := ledger.CreateRecord(t1.ID, product.ID, "warehouse-a", 5, nil); !errors.Is(err, ErrNotFound) {
		t.Errorf("cross-tenant product: err = %v, want ErrNotFound", err)
	}
}

func TestInventoryStore_MutateSet(t *testing.T) {
	db := testDB(t)
	ledger := NewInventoryStore(db)
	tenant := seedTenant(t, db, "Acme", true)
	product := seedProduct(t, db, tenant.ID, "Cola", "Fizz", 0.5)

	if _, err := ledger.CreateRecord(tenant.ID, product.ID, "warehouse-a", 10, nil); err != nil {
		t.Fatalf("CreateRecord: %v", err)
	}

	record, err := ledger.MutateQuantity(tenant.ID, product.ID, "warehouse-a", OpSet, 42, nil)
	if err != nil {
		t.Fatalf("Set: %v", err)
	}
	if record.Quantity != 42 {
		t.Errorf("Quantity = %d, want 42", record.Quantity)
	}

	// Set does not create missing records
	if _, err := ledger.MutateQuantity(tenant.ID, product.ID, "nowhere", OpSet, 1, nil); !errors.Is(err, ErrNotFound) {
		t.Errorf("Set on missing: err = %v, want ErrNotFound", err)
	}

	if _, err := ledger.MutateQuantity(tenant.ID, product.ID, "warehouse-a", OpSet, -1, nil); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("negative Set: err = %v, want ErrInvalidInput", err)
	}
}

func TestInventoryStore_MutateAddAndSubtract(t *testing.T) {
	db := testDB(t)
	ledger := NewInventoryStore(db)
	tenant := seedTenant(t, db, "Acme", true)
	product := seedProduct(t, db, tenant.ID, "Cola", "Fizz", 0.5)

	if _, err := ledger.CreateRecord(tenant.ID, product.ID, "warehouse-a", 10, nil); err != nil {
		t.Fatalf("CreateRecord: %v", err)
	}

	record, err := ledger.MutateQuantity(tenant.ID, product.ID, "warehouse-a", OpAdd, 5, nil)
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	if record.Quantity != 15 {
		t.Errorf("after Add(5): Quantity = %d, want 15", record.Quantity)
	}

	record, err = ledger.MutateQuantity(tenant.ID, product.ID, "warehouse-a", OpSubtract, 6, nil)
	if err != nil {
		t.Fatalf("Subtract: %v", err)
	}
	if record.Quantity != 9 {
		t.Errorf("after Subtract(6): Quantity = %d, want 9", record.Quantity)
	}

	// Over-subtraction clamps at zero instead of failing
	record, err = ledger.MutateQuantity(tenant.ID, product.ID, "warehouse-a", OpSubtract, 1000, nil)
	if err != nil {
		t.Fatalf("over-Subtract: %v", err)
	}
	if record.Quantity != 0 {
		t.Errorf("after Subtract(1000): Quantity = %d, want 0", record.Quantity)
	}

	// Subtracting from zero stays at zero
	record, err = ledger.MutateQuantity(tenant.ID, product.ID, "warehouse-a", OpSubtract, 3, nil)
	if err != nil {
		t.Fatalf("Subtract at zero: %v", err)
	}
	if record.Quantity != 0 {
		t.Errorf("after Subtract(3) at zero: Quantity = %d, want 0", record.Quantity)
	}

	if _, err := ledger.MutateQuantity(tenant.ID, product.ID, "warehouse-a", OpAdd, -1, nil); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("negative Add: err = %v, want ErrInvalidInput", err)
	}
	if _, err := ledger.MutateQuantity(tenant.ID, product.ID, "warehouse-a", "bogus", 1, nil); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("bogus op: err = %v, want ErrInvalidInput", err)
	}
}

func TestInventoryStore_MutateCreatesOnFirstWrite(t *testing.T) {
	db := testDB(t)
	ledger := NewInventoryStore(db)
	tenant := seedTenant(t, db, "Acme", true)
	product := seedProduct(t, db, tenant.ID, "Cola", "Fizz", 0.5)

	// Add against a never-written key starts from zero
	record, err := ledger.MutateQuantity(tenant.ID, product.ID, "fresh-location", OpAdd, 7, nil)
	if err != nil {
		t.Fatalf("Add on fresh key: %v", err)
	}
	if record.Quantity != 7 {
		t.Errorf("Quantity = %d, want 7", record.Quantity)
	}

	// Subtract against a never-written key clamps to zero
	record, err = ledger.MutateQuantity(tenant.ID, product.ID, "other-location", OpSubtract, 3, nil)
	if err != nil {
		t.Fatalf("Subtract on fresh key: %v", err)
	}
	if record.Quantity != 0 {
		t.Errorf("Quantity = %d, want 0", record.Quantity)
	}

	// But the product must still belong to the tenant
	other := seedTenant(t, db, "Globex", true)
	if _, err := ledger.MutateQuantity(other.ID, product.ID, "fresh-location", OpAdd, 1, nil); !errors.Is(err, ErrNotFound) {
		t.Errorf("cross-tenant first write: err = %v, want ErrNotFound", err)
	}
}

func TestInventoryStore_MutateUpdatesCapacity(t *testing.T) {
	db := testDB(t)
	ledger := NewInventoryStore(db)
	tenant := seedTenant(t, db, "Acme", true)
	product := seedProduct(t, db, tenant.ID, "Cola", "Fizz", 0.5)

	if _, err := ledger.CreateRecord(tenant.ID, product.ID, "warehouse-a", 10, int64Ptr(50)); err != nil {
		t.Fatalf("CreateRecord: %v", err)
	}

	record, err := ledger.MutateQuantity(tenant.ID, product.ID, "warehouse-a", OpAdd, 1, int64Ptr(80))
	if err != nil {
		t.Fatalf("Add with capacity: %v", err)
	}
	if record.Capacity == nil || *record.Capacity != 80 {
		t.Errorf("Capacity = %v, want 80", record.Capacity)
	}
}

// N concurrent Add(1) calls on a fresh key must end at exactly N: the
// server-side arithmetic leaves no window for a lost update.
func TestInventoryStore_ConcurrentAdds(t *testing.T) {
	db := testDB(t)
	ledger := NewInventoryStore(db)
	tenant := seedTenant(t, db, "Acme", true)
	product := seedProduct(t, db, tenant.ID, "Cola", "Fizz", 0.5)

	const n = 50
	var wg sync.WaitGroup
	errs := make(chan error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := ledger.MutateQuantity(tenant.ID, product.ID, "contended", OpAdd, 1, nil); err != nil {
				errs <- err
			}
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Fatalf("concurrent Add: %v", err)
	}

	record, err := ledger.getRecord(tenant.ID, product.ID, "contended")
	if err != nil {
		t.Fatalf("getRecord: %v", err)
	}
	if record.Quantity != n {
		t.Errorf("final quantity = %d, want %d (lost updates)", record.Quantity, n)
	}
}

func TestInventoryStore_LowStock(t *testing.T) {
	db := testDB(t)
	ledger := NewInventoryStore(db)
	tenant := seedTenant(t, db, "Acme", true)
	other := seedTenant(t, db, "Globex", true)

	quantities := []int64{15, 3, 0, 8, 25}
	for i, q := range quantities {
		p := seedProduct(t, db, tenant.ID, "P", "B", float64(i+1))
		if _, err := ledger.CreateRecord(tenant.ID, p.ID, "main", q, nil); err != nil {
			t.Fatalf("CreateRecord: %v", err)
		}
	}
	// Low stock in another tenant must not appear
	foreign := seedProduct(t, db, other.ID, "P", "B", 1)
	if _, err := ledger.CreateRecord(other.ID, foreign.ID, "main", 1, nil); err != nil {
		t.Fatalf("CreateRecord foreign: %v", err)
	}

	rows, err := ledger.LowStock(tenant.ID, 10)
	if err != nil {
		t.Fatalf("LowStock: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("len(rows) = %d, want 3", len(rows))
	}
	// Ascending by quantity
	want := []int64{0, 3, 8}
	for i, row := range rows {
		if row.Quantity != want[i] {
			t.Errorf("rows[%d].Quantity = %d, want %d", i, row.Quantity, want[i])
		}
		if row.TenantID != tenant.ID {
			t.Errorf("rows[%d] leaked tenant %d", i, row.TenantID)
		}
	}
}

func TestInventoryStore_DeleteRecord(t *testing.T) {
	db := testDB(t)
	ledger := NewInventoryStore(db)
	tenant := seedTenant(t, db, "Acme", true)
	product := seedProduct(t, db, tenant.ID, "Cola", "Fizz", 0.5)

	if _, err := ledger.CreateRecord(tenant.ID, product.ID, "warehouse-a", 10, nil); err != nil {
		t.Fatalf("CreateRecord: %v", err)
	}
	if err := ledger.DeleteRecord(tenant.ID, product.ID, "warehouse-a"); err != nil {
		t.Fatalf("DeleteRecord: %v", err)
	}
	if err := ledger.DeleteRecord(tenant.ID, product.ID, "warehouse-a"); !errors.Is(err, ErrNotFound) {
		t.Errorf("second delete: err = %v, want ErrNotFound", err)
	}
}
