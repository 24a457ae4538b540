package funnel

import (
	"context"
	"errors"
	"testing"

	"github.com/eleven-am/insight-backend/internal/shared"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	return db
}

func setupTestStore(t *testing.T) *Store {
	store := NewStore(setupTestDB(t))
	if err := store.Migrate(); err != nil {
		t.Fatalf("Migrate() error = %v", err)
	}
	return store
}

func TestStore_Migrate(t *testing.T) {
	db := setupTestDB(t)
	store := NewStore(db)

	if err := store.Migrate(); err != nil {
		t.Errorf("Migrate() error = %v", err)
	}
	if !db.Migrator().HasTable(&Funnel{}) {
		t.Error("expected Funnel table to exist")
	}
}

func TestStore_CreateAndGet(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	f := &Funnel{
		Name:      "Checkout",
		Pages:     shared.StringSlice{"/", "/products", "/cart"},
		StepNames: shared.StringSlice{"Landing", "Browse", "Cart"},
	}
	if err := store.Create(ctx, f); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if len(f.ID) < 5 || f.ID[:4] != "fnl_" {
		t.Errorf("expected generated fnl_ id, got %q", f.ID)
	}

	got, err := store.GetByID(ctx, f.ID)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if got.Name != "Checkout" {
		t.Errorf("Name = %q, want Checkout", got.Name)
	}
	if len(got.Pages) != 3 || got.Pages[2] != "/cart" {
		t.Errorf("Pages = %v", got.Pages)
	}
	if got.StepName(1) != "Browse" {
		t.Errorf("StepName(1) = %q, want Browse", got.StepName(1))
	}
}

func TestStore_GetByID_NotFound(t *testing.T) {
	store := setupTestStore(t)

	_, err := store.GetByID(context.Background(), "fnl_missing")
	if !errors.Is(err, shared.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestStore_List(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	for _, name := range []string{"first", "second"} {
		if err := store.Create(ctx, &Funnel{Name: name, Pages: shared.StringSlice{"/"}}); err != nil {
			t.Fatalf("Create() error = %v", err)
		}
	}

	funnels, err := store.List(ctx)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(funnels) != 2 {
		t.Fatalf("expected 2 funnels, got %d", len(funnels))
	}
}

func TestStore_Delete(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	f := &Funnel{Name: "Signup", Pages: shared.StringSlice{"/pricing", "/signup"}}
	if err := store.Create(ctx, f); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if err := store.Delete(ctx, f.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if err := store.Delete(ctx, f.ID); !errors.Is(err, shared.ErrNotFound) {
		t.Errorf("expected ErrNotFound on second delete, got %v", err)
	}
}
