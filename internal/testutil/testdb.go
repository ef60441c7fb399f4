package testutil

import (
	"context"
	"database/sql"
	"testing"

	"github.com/alexanderramin/tripplan/internal/db"
	"github.com/alexanderramin/tripplan/internal/domain"
	"github.com/alexanderramin/tripplan/internal/repository"
	"github.com/alexanderramin/tripplan/internal/store"
)

// NewTestDB opens a migrated in-memory database that is closed with the test.
func NewTestDB(t *testing.T) *sql.DB {
	t.Helper()
	database, err := db.OpenDB(db.MemoryPath)
	if err != nil {
		t.Fatalf("opening test database: %v", err)
	}
	t.Cleanup(func() {
		database.Close()
	})
	return database
}

// NewTestUoW creates a UnitOfWork backed by the given test database.
func NewTestUoW(database *sql.DB) db.UnitOfWork {
	return db.NewSQLiteUnitOfWork(database)
}

// NewTestStore returns a task store over a fresh test database. A non-nil
// seed is saved into the task slot first, so an empty seed stores "[]" while
// nil leaves the slot absent.
func NewTestStore(t *testing.T, seed []domain.Task, opts ...store.Option) (*sql.DB, *store.Store) {
	t.Helper()
	database := NewTestDB(t)
	st := store.New(repository.NewSQLitePreferenceRepo(database), opts...)
	if seed != nil {
		if err := st.SaveAll(context.Background(), seed); err != nil {
			t.Fatalf("seeding task store: %v", err)
		}
	}
	return database, st
}
