package storage

import (
	"path/filepath"
	"testing"
)

func TestNewDatabase_SchemaInitialization(t *testing.T) {
	db, err := NewDatabase(":memory:")
	if err != nil {
		t.Fatalf("failed to create database: %v", err)
	}
	defer db.Close()

	var tableName string
	err = db.DB().QueryRow("SELECT name FROM sqlite_master WHERE type='table' AND name='emissions'").Scan(&tableName)
	if err != nil {
		t.Fatalf("emissions table does not exist: %v", err)
	}
	if tableName != "emissions" {
		t.Errorf("expected table name 'emissions', got %s", tableName)
	}
}

func TestNewDatabase_ReopenKeepsRows(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")

	db, err := NewDatabase(path)
	if err != nil {
		t.Fatalf("failed to create database: %v", err)
	}
	_, err = db.DB().Exec(`
		INSERT INTO emissions (id, calendar, mode, format, date, source, created_at)
		VALUES ('e1', 'jalali', 'day', 'yyyy/MM/dd', '1403/02/11', 'cli', 1)
	`)
	if err != nil {
		t.Fatalf("failed to insert: %v", err)
	}
	db.Close()

	db, err = NewDatabase(path)
	if err != nil {
		t.Fatalf("failed to reopen database: %v", err)
	}
	defer db.Close()

	var count int
	if err := db.DB().QueryRow("SELECT COUNT(*) FROM emissions").Scan(&count); err != nil {
		t.Fatalf("failed to count: %v", err)
	}
	if count != 1 {
		t.Errorf("expected 1 row after reopen, got %d", count)
	}
}

func TestBeginTx_Rollback(t *testing.T) {
	db, err := NewDatabase(":memory:")
	if err != nil {
		t.Fatalf("failed to create database: %v", err)
	}
	defer db.Close()

	tx, err := db.BeginTx()
	if err != nil {
		t.Fatalf("failed to begin: %v", err)
	}
	if _, err := tx.Exec(`
		INSERT INTO emissions (id, calendar, mode, format, source, created_at)
		VALUES ('e1', 'gregorian', 'range', 'yyyy/MM/dd', 'tui', 1)
	`); err != nil {
		t.Fatalf("failed to insert: %v", err)
	}
	if err := tx.Rollback(); err != nil {
		t.Fatalf("failed to rollback: %v", err)
	}

	var count int
	if err := db.DB().QueryRow("SELECT COUNT(*) FROM emissions").Scan(&count); err != nil {
		t.Fatalf("failed to count: %v", err)
	}
	if count != 0 {
		t.Errorf("expected rollback to discard the row, got %d rows", count)
	}
}
