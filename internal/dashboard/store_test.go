package dashboard

import (
	"context"
	"encoding/json"
	"testing"
	"time"

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

func setupSeededStore(t *testing.T, now time.Time) *Store {
	store := NewStore(setupTestDB(t))
	if err := store.Migrate(); err != nil {
		t.Fatalf("Migrate() error = %v", err)
	}
	metrics, alerts, users := DemoData(now)
	if err := store.Seed(context.Background(), metrics, alerts, users); err != nil {
		t.Fatalf("Seed() error = %v", err)
	}
	return store
}

func TestStore_Migrate(t *testing.T) {
	db := setupTestDB(t)
	store := NewStore(db)

	if err := store.Migrate(); err != nil {
		t.Fatalf("Migrate() error = %v", err)
	}
	for _, model := range []any{&Metric{}, &Alert{}, &User{}} {
		if !db.Migrator().HasTable(model) {
			t.Errorf("expected table for %T", model)
		}
	}
}

func TestStore_ListMetrics(t *testing.T) {
	store := setupSeededStore(t, time.Now())

	metrics, err := store.ListMetrics(context.Background())
	if err != nil {
		t.Fatalf("ListMetrics() error = %v", err)
	}
	if len(metrics) != 6 {
		t.Fatalf("expected 6 metrics, got %d", len(metrics))
	}
	if metrics[0].Name != "Active Sessions" {
		t.Errorf("expected seed order to be kept, first = %q", metrics[0].Name)
	}

	var count float64
	if err := json.Unmarshal(metrics[0].Value, &count); err != nil || count != 1247 {
		t.Errorf("expected numeric value 1247, got %s (%v)", metrics[0].Value, err)
	}
	var text string
	if err := json.Unmarshal(metrics[1].Value, &text); err != nil || text != "3m 24s" {
		t.Errorf("expected text value, got %s (%v)", metrics[1].Value, err)
	}
}

func TestStore_ListAlerts_NewestFirst(t *testing.T) {
	store := setupSeededStore(t, time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))

	alerts, err := store.ListAlerts(context.Background())
	if err != nil {
		t.Fatalf("ListAlerts() error = %v", err)
	}
	if len(alerts) != 3 {
		t.Fatalf("expected 3 alerts, got %d", len(alerts))
	}
	if alerts[0].ID != "alert_1" || alerts[2].ID != "alert_3" {
		t.Errorf("unexpected order: %s, %s, %s", alerts[0].ID, alerts[1].ID, alerts[2].ID)
	}
	if !alerts[2].Resolved {
		t.Error("expected alert_3 to be resolved")
	}
}

func TestStore_SeedIsIdempotent(t *testing.T) {
	now := time.Now()
	store := setupSeededStore(t, now)

	metrics, alerts, users := DemoData(now)
	metrics[0].Change = 99
	if err := store.Seed(context.Background(), metrics, alerts, users); err != nil {
		t.Fatalf("second Seed() error = %v", err)
	}

	got, err := store.ListMetrics(context.Background())
	if err != nil {
		t.Fatalf("ListMetrics() error = %v", err)
	}
	if len(got) != 6 {
		t.Fatalf("expected 6 metrics after reseed, got %d", len(got))
	}
	if got[0].Change != 99 {
		t.Errorf("expected reseed to update change, got %v", got[0].Change)
	}

	list, err := store.ListUsers(context.Background())
	if err != nil {
		t.Fatalf("ListUsers() error = %v", err)
	}
	if len(list) != 1 {
		t.Errorf("expected 1 user, got %d", len(list))
	}
}
