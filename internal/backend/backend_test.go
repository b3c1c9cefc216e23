package backend

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/claude/ironlog/internal/config"
)

// TestOpenSQLite verifies the sqlite driver opens a usable empty store.
func TestOpenSQLite(t *testing.T) {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	cfg := config.DatabaseConfig{Driver: config.DriverSQLite, Path: filepath.Join(t.TempDir(), "ironlog.db")}

	store, closeStore, err := Open(context.Background(), cfg, "migrations", log)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer closeStore()

	plans, err := store.FetchActivePlans(context.Background())
	if err != nil {
		t.Fatalf("FetchActivePlans: %v", err)
	}
	if len(plans) != 0 {
		t.Errorf("plans = %d, want 0", len(plans))
	}
}

// TestOpenUnknownDriver verifies an unsupported driver is rejected.
func TestOpenUnknownDriver(t *testing.T) {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	_, _, err := Open(context.Background(), config.DatabaseConfig{Driver: "mysql"}, "migrations", log)
	if err == nil {
		t.Fatal("expected error for unknown driver")
	}
}
