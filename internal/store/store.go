// Package store provides the persistence façade for the catalog loader.
// All loader code depends on these interfaces, making it easy to swap
// between in-memory (tests), SQLite (local) and PostgreSQL (production)
// implementations.
package store

import (
	"context"
	"errors"

	"github.com/agentbazaar/agentbazaar/loader/pkg/models"
)

// Store opens transactions against the marketplace tables. A load run is
// exactly one transaction; nothing is written outside of one.
type Store interface {
	// Begin starts a transaction. The loader is the sole writer for its
	// duration; concurrent external writers are out of contract.
	Begin(ctx context.Context) (Tx, error)

	// Ping checks if the backing database is reachable.
	Ping(ctx context.Context) error

	// Migrate creates the three catalog tables if they do not exist.
	Migrate(ctx context.Context) error

	// Close releases all resources held by the store.
	Close() error
}

// Tx is one load-run transaction over agents, bundles and members.
// Commit makes every write visible atomically; Rollback discards all of
// them. Either may be called once; Rollback after Commit is a no-op.
type Tx interface {
	AgentTx
	BundleTx
	MemberTx

	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// ── Agent operations ────────────────────────────────────────

type AgentTx interface {
	// GetAgentByName looks up an agent by its natural key.
	// Returns ErrNotFound if absent.
	GetAgentByName(ctx context.Context, name string) (*models.Agent, error)

	InsertAgent(ctx context.Context, agent *models.Agent) error
	UpdateAgent(ctx context.Context, agent *models.Agent) error

	// ListAgentsByCategory returns active agents in a category ordered by
	// name ascending, at most limit (0 = no limit).
	ListAgentsByCategory(ctx context.Context, category string, limit int) ([]models.Agent, error)

	CountAgents(ctx context.Context) (int, error)

	// DeleteAllAgents wipes the agent table (full-reset only) and returns
	// the number of rows removed.
	DeleteAllAgents(ctx context.Context) (int, error)
}

// ── Bundle operations ───────────────────────────────────────

type BundleTx interface {
	GetBundleByName(ctx context.Context, name string) (*models.Bundle, error)
	InsertBundle(ctx context.Context, bundle *models.Bundle) error
	UpdateBundle(ctx context.Context, bundle *models.Bundle) error
	CountBundles(ctx context.Context) (int, error)
	DeleteAllBundles(ctx context.Context) (int, error)
}

// ── Membership operations ───────────────────────────────────

type MemberTx interface {
	// ListBundleMembers returns the link rows for one bundle, agent name
	// ascending.
	ListBundleMembers(ctx context.Context, bundleName string) ([]models.BundleMember, error)

	InsertBundleMember(ctx context.Context, member *models.BundleMember) error

	// DeleteBundleMembers removes all link rows for one bundle and returns
	// how many were removed.
	DeleteBundleMembers(ctx context.Context, bundleName string) (int, error)

	DeleteAllBundleMembers(ctx context.Context) (int, error)
}

// ── Errors ──────────────────────────────────────────────────

// ErrNotFound is returned when a requested entity does not exist.
type ErrNotFound struct {
	Entity string
	Key    string
}

func (e *ErrNotFound) Error() string {
	return e.Entity + " not found: " + e.Key
}

// errDuplicateKey marks a unique-constraint collision inside IntegrityError.
var errDuplicateKey = errors.New("duplicate key")
