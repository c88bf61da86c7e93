package storage

import (
	"context"
	"errors"
	"os"
	"testing"

	"gamecatalog/backend/internal/database"
	"gamecatalog/backend/internal/models"
)

// Runs against a disposable Postgres database when
// GAMECATALOG_TEST_DATABASE_URL is set.
func TestGormTable(t *testing.T) {
	dsn := os.Getenv("GAMECATALOG_TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("GAMECATALOG_TEST_DATABASE_URL not set")
	}

	db, err := database.Connect(dsn)
	if err != nil {
		t.Fatalf("Connect failed: %v", err)
	}
	if err := db.Exec("TRUNCATE consoles RESTART IDENTITY").Error; err != nil {
		t.Fatalf("Failed to truncate consoles: %v", err)
	}

	ctx := context.Background()
	table := NewGormTable[models.Console](db)

	c := models.Console{Name: "Dreamcast", Manufacturer: "Sega", Active: true}
	if err := table.Insert(ctx, &c); err != nil {
		t.Fatalf("Insert failed: %v", err)
	}
	if c.ID == 0 {
		t.Fatal("Expected an id to be assigned")
	}

	c.Active = false
	if err := table.Save(ctx, c); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	got, err := table.Get(ctx, c.ID)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got.Active {
		t.Error("Expected console to be inactive after save")
	}

	if err := table.Save(ctx, models.Console{ID: c.ID + 100}); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound for unknown id, got %v", err)
	}
	if _, err := table.Get(ctx, c.ID+100); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}

	all, err := table.All(ctx)
	if err != nil || len(all) != 1 {
		t.Fatalf("Expected 1 console, got %d (%v)", len(all), err)
	}
}
