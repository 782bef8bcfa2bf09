package store

import (
	"errors"
	"strconv"
	"testing"
)

func TestTenantStore_Resolve(t *testing.T) {
	db := testDB(t)
	tenants := NewTenantStore(db)

	active := seedTenant(t, db, "Acme Traders", true)
	inactive := seedTenant(t, db, "Dormant Corp", false)

	got, err := tenants.Resolve(strconv.FormatUint(uint64(active.ID), 10))
	if err != nil {
		t.Fatalf("Resolve active: %v", err)
	}
	if got.OrgName != "Acme Traders" {
		t.Errorf("OrgName = %q, want Acme Traders", got.OrgName)
	}

	if _, err := tenants.Resolve(strconv.FormatUint(uint64(inactive.ID), 10)); !errors.Is(err, ErrTenantInactive) {
		t.Errorf("Resolve inactive: err = %v, want ErrTenantInactive", err)
	}

	if _, err := tenants.Resolve("99999"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Resolve unknown: err = %v, want ErrNotFound", err)
	}

	if _, err := tenants.Resolve("not-a-number"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Resolve malformed: err = %v, want ErrNotFound", err)
	}
}
