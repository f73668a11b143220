package store

import (
	"context"
	"fmt"
	"strings"
)

// Open picks a backend from the DSN: "postgres://"/"postgresql://" for
// PostgreSQL, "sqlite:<path>" or a bare file path for SQLite, "memory:"
// for the in-memory store. maxConns caps the PostgreSQL pool; the other
// backends ignore it.
func Open(ctx context.Context, dsn string, maxConns int) (Store, error) {
	switch {
	case dsn == "" || dsn == "memory:":
		return NewMemoryStore(), nil
	case strings.HasPrefix(dsn, "postgres://"), strings.HasPrefix(dsn, "postgresql://"):
		return OpenPostgres(ctx, dsn, maxConns)
	case strings.HasPrefix(dsn, "sqlite:"):
		return OpenSQLite(strings.TrimPrefix(dsn, "sqlite:"))
	default:
		if strings.Contains(dsn, "://") {
			return nil, fmt.Errorf("unsupported store DSN %q", dsn)
		}
		return OpenSQLite(dsn)
	}
}
