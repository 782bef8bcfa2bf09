package store

import (
	"fmt"
	"testing"

	"inventory-service/internal/model"
)

func TestUserStore_List(t *testing.T) {
	db := testDB(t)
	users := NewUserStore(db)
	tenant := seedTenant(t, db, "Acme", true)
	other := seedTenant(t, db, "Globex", true)

	for i := 0; i < 13; i++ {
		u := model.User{TenantID: tenant.ID, Name: fmt.Sprintf("User %02d", i), Email: fmt.Sprintf("u%d@acme.example", i)}
		if err := db.Create(&u).Error; err != nil {
			t.Fatalf("seed user: %v", err)
		}
	}
	if err := db.Create(&model.User{TenantID: other.ID, Name: "Outsider"}).Error; err != nil {
		t.Fatalf("seed foreign user: %v", err)
	}

	page, err := users.List(tenant.ID, 1, 10)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if page.Total != 13 {
		t.Errorf("Total = %d, want 13", page.Total)
	}
	if len(page.Items) != 10 {
		t.Errorf("len(Items) = %d, want 10", len(page.Items))
	}
	if page.TotalPages != 2 {
		t.Errorf("TotalPages = %d, want 2", page.TotalPages)
	}
	for _, u := range page.Items {
		if u.TenantID != tenant.ID {
			t.Fatalf("leaked user of tenant %d", u.TenantID)
		}
	}
}
