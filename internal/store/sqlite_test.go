package store_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/agentbazaar/agentbazaar/loader/internal/store"
)

func newSQLiteStore(t *testing.T) store.Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "catalog.db")
	s, err := store.OpenSQLite(path)
	if err != nil {
		t.Fatalf("OpenSQLite() error = %v", err)
	}
	t.Cleanup(func() { s.Close() })
	if err := s.Migrate(context.Background()); err != nil {
		t.Fatalf("Migrate() error = %v", err)
	}
	return s
}

// The SQLite backend runs the same suite as the memory store so SQL
// placeholders, tag encoding and constraint mapping are exercised for real.

func TestSQLiteInsertAndGetAgent(t *testing.T) { runInsertAndGetAgent(t, newSQLiteStore(t)) }
func TestSQLiteGetAgentNotFound(t *testing.T) { runGetAgentNotFound(t, newSQLiteStore(t)) }
func TestSQLiteInsertDuplicateAgent(t *testing.T) { runInsertDuplicateAgent(t, newSQLiteStore(t)) }
func TestSQLiteUpdateAgent(t *testing.T) { runUpdateAgent(t, newSQLiteStore(t)) }
func TestSQLiteListAgentsByCategory(t *testing.T) {
	runListAgentsByCategory(t, newSQLiteStore(t))
}
func TestSQLiteBundleRoundTrip(t *testing.T) { runBundleRoundTrip(t, newSQLiteStore(t)) }
func TestSQLiteBundleMembers(t *testing.T) { runBundleMembers(t, newSQLiteStore(t)) }
func TestSQLiteRollbackDiscardsWrites(t *testing.T) {
	runRollbackDiscardsWrites(t, newSQLiteStore(t))
}
func TestSQLiteDeleteAll(t *testing.T) { runDeleteAll(t, newSQLiteStore(t)) }

func TestSQLitePing(t *testing.T) {
	s := newSQLiteStore(t)
	if err := s.Ping(context.Background()); err != nil {
		t.Fatalf("Ping() error = %v", err)
	}
}
