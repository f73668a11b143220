package store_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/agentbazaar/agentbazaar/loader/internal/store"
)

func TestOpenDispatch(t *testing.T) {
	ctx := context.Background()

	s, err := store.Open(ctx, "", 0)
	if err != nil {
		t.Fatalf("Open(\"\") error = %v", err)
	}
	if _, ok := s.(*store.MemoryStore); !ok {
		t.Errorf("Open(\"\") = %T, want *MemoryStore", s)
	}

	s, err = store.Open(ctx, "memory:", 0)
	if err != nil {
		t.Fatalf("Open(memory:) error = %v", err)
	}
	if _, ok := s.(*store.MemoryStore); !ok {
		t.Errorf("Open(memory:) = %T, want *MemoryStore", s)
	}

	path := filepath.Join(t.TempDir(), "catalog.db")
	s, err = store.Open(ctx, "sqlite:"+path, 4)
	if err != nil {
		t.Fatalf("Open(sqlite:) error = %v", err)
	}
	if _, ok := s.(*store.SQLiteStore); !ok {
		t.Errorf("Open(sqlite:) = %T, want *SQLiteStore", s)
	}
	s.Close()
}

func TestOpenUnsupportedScheme(t *testing.T) {
	if _, err := store.Open(context.Background(), "mysql://host/db", 0); err == nil {
		t.Fatal("Open(mysql://) error = nil, want error")
	}
}
