package repository

import (
	"errors"
	"inventory_service/internal/domain"
	"inventory_service/pkg/db"
	"os"
	"testing"
)

func TestBuildSetClause(t *testing.T) {
	t.Run("known fields in sorted key order", func(t *testing.T) {
		setClause, args, skipped := buildSetClause(map[string]interface{}{
			"quantity":       30,
			"expirationDate": "2024-06-01",
		})
		want := "expiration_date = $1, quantity = $2"
		if setClause != want {
			t.Errorf("set clause = %q, want %q", setClause, want)
		}
		if len(args) != 2 || args[0] != "2024-06-01" || args[1] != 30 {
			t.Errorf("unexpected args: %v", args)
		}
		if len(skipped) != 0 {
			t.Errorf("unexpected skipped keys: %v", skipped)
		}
	})

	t.Run("unknown and immutable fields are skipped", func(t *testing.T) {
		setClause, args, skipped := buildSetClause(map[string]interface{}{
			"id":        "p-2",
			"warehouse": "central",
			"name":      "Oat Milk",
		})
		if setClause != "name = $1" {
			t.Errorf("set clause = %q, want %q", setClause, "name = $1")
		}
		if len(args) != 1 || args[0] != "Oat Milk" {
			t.Errorf("unexpected args: %v", args)
		}
		if len(skipped) != 2 {
			t.Errorf("expected 2 skipped keys, got %v", skipped)
		}
	})

	t.Run("empty patch yields empty clause", func(t *testing.T) {
		setClause, args, skipped := buildSetClause(map[string]interface{}{})
		if setClause != "" || len(args) != 0 || len(skipped) != 0 {
			t.Errorf("expected empty result, got %q %v %v", setClause, args, skipped)
		}
	})

	t.Run("every wire field maps to a column", func(t *testing.T) {
		patch := map[string]interface{}{
			"name": "x", "category": "x", "quantity": 1, "unit": "x",
			"expirationDate": "x", "supplier": "x", "price": 1.0,
			"sku": "x", "reorderLevel": 1, "batchNumber": "x",
		}
		_, args, skipped := buildSetClause(patch)
		if len(args) != len(patch) {
			t.Errorf("expected %d args, got %d", len(patch), len(args))
		}
		if len(skipped) != 0 {
			t.Errorf("unexpected skipped keys: %v", skipped)
		}
	})
}

func setupPostgresRepo(t *testing.T) domain.ProductRepository {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set, skipping postgres repository tests")
	}

	sqlDB, err := db.ConnectPostgres(dsn, 5, 2)
	if err != nil {
		t.Skipf("postgres not available: %v", err)
	}
	if err := EnsurePostgresSchema(sqlDB); err != nil {
		t.Fatalf("failed to create schema: %v", err)
	}
	if _, err := sqlDB.Exec("DELETE FROM products"); err != nil {
		t.Fatalf("failed to reset products table: %v", err)
	}

	repo := NewPostgresProductRepository(sqlDB, newTestLogger())
	t.Cleanup(func() {
		_ = repo.Close()
	})
	return repo
}

// Condensed contract pass against a real postgres instance. The full
// behavioral suite runs against the sqlite store; this pins the pieces that
// differ per engine: placeholder SQL, pq error codes, and RowsAffected.
func TestPostgresRepository_Contract(t *testing.T) {
	repo := setupPostgresRepo(t)

	created, err := repo.CreateProduct(sampleProduct("pg-1"))
	if err != nil {
		t.Fatalf("CreateProduct() error = %v", err)
	}
	if created.ID != "pg-1" {
		t.Errorf("expected ID %q, got %q", "pg-1", created.ID)
	}

	if _, err := repo.CreateProduct(sampleProduct("pg-1")); !errors.Is(err, domain.ErrDuplicateID) {
		t.Errorf("expected ErrDuplicateID, got %v", err)
	}

	found, err := repo.GetProductByID("pg-1")
	if err != nil {
		t.Fatalf("GetProductByID() error = %v", err)
	}
	if *found != *sampleProduct("pg-1") {
		t.Errorf("stored record differs: got %+v", found)
	}

	updated, err := repo.UpdateProduct("pg-1", map[string]interface{}{
		"quantity":       30,
		"expirationDate": "2024-06-01",
		"warehouse":      "central",
	})
	if err != nil {
		t.Fatalf("UpdateProduct() error = %v", err)
	}
	if updated.Quantity != 30 || updated.ExpirationDate != "2024-06-01" {
		t.Errorf("merge not applied: %+v", updated)
	}
	if updated.Name != "Whole Milk" {
		t.Errorf("untouched field changed: %+v", updated)
	}

	if _, err := repo.UpdateProduct("pg-missing", map[string]interface{}{"quantity": 1}); !errors.Is(err, domain.ErrProductNotFound) {
		t.Errorf("expected ErrProductNotFound, got %v", err)
	}

	categories, err := repo.ListCategories()
	if err != nil {
		t.Fatalf("ListCategories() error = %v", err)
	}
	if len(categories) != 1 || categories[0] != "Dairy" {
		t.Errorf("unexpected categories: %v", categories)
	}

	if err := repo.DeleteProduct("pg-1"); err != nil {
		t.Fatalf("DeleteProduct() error = %v", err)
	}
	if err := repo.DeleteProduct("pg-1"); !errors.Is(err, domain.ErrProductNotFound) {
		t.Errorf("expected ErrProductNotFound on second delete, got %v", err)
	}

	products, err := repo.ListProducts()
	if err != nil {
		t.Fatalf("ListProducts() error = %v", err)
	}
	if len(products) != 0 {
		t.Errorf("expected empty table after delete, got %d records", len(products))
	}
}
