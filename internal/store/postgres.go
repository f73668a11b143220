// Package store — PostgreSQL Store implementation, backed by pgx.
// This is the production backend: the marketplace web application and the
// loader share the same database.
package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/agentbazaar/agentbazaar/loader/pkg/models"
)

// pgUniqueViolation is the PostgreSQL error code for unique_violation.
const pgUniqueViolation = "23505"

const pgSchema = `
CREATE TABLE IF NOT EXISTS agents (
  id                     TEXT PRIMARY KEY,
  name                   TEXT NOT NULL UNIQUE,
  description            TEXT NOT NULL DEFAULT '',
  category               TEXT NOT NULL DEFAULT '',
  base_prompt            TEXT NOT NULL DEFAULT '',
  pricing_tier           TEXT NOT NULL,
  base_price             DOUBLE PRECISION NOT NULL DEFAULT 0,
  monthly_price          DOUBLE PRECISION NOT NULL DEFAULT 0,
  capabilities           TEXT NOT NULL DEFAULT '',
  specialization_tags    TEXT[] NOT NULL DEFAULT '{}',
  default_model          TEXT NOT NULL DEFAULT '',
  model_pricing_modifier DOUBLE PRECISION NOT NULL DEFAULT 1.0,
  expertise_years        INTEGER NOT NULL DEFAULT 0,
  practical_projects     INTEGER NOT NULL DEFAULT 0,
  collaboration_rate     DOUBLE PRECISION NOT NULL DEFAULT 0,
  compliance_frameworks  TEXT[] NOT NULL DEFAULT '{}',
  is_active              BOOLEAN NOT NULL DEFAULT TRUE,
  is_featured            BOOLEAN NOT NULL DEFAULT FALSE,
  approval_status        TEXT NOT NULL DEFAULT 'approved',
  created_at             TIMESTAMPTZ NOT NULL,
  updated_at             TIMESTAMPTZ NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_agents_category ON agents(category, name);

CREATE TABLE IF NOT EXISTS bundles (
  id            TEXT PRIMARY KEY,
  name          TEXT NOT NULL UNIQUE,
  description   TEXT NOT NULL DEFAULT '',
  category      TEXT NOT NULL DEFAULT '',
  pricing_tier  TEXT NOT NULL,
  monthly_price DOUBLE PRECISION NOT NULL DEFAULT 0,
  setup_price   DOUBLE PRECISION NOT NULL DEFAULT 0,
  is_active     BOOLEAN NOT NULL DEFAULT TRUE,
  is_featured   BOOLEAN NOT NULL DEFAULT FALSE,
  created_at    TIMESTAMPTZ NOT NULL,
  updated_at    TIMESTAMPTZ NOT NULL
);

CREATE TABLE IF NOT EXISTS bundle_members (
  bundle_name TEXT NOT NULL REFERENCES bundles(name),
  agent_name  TEXT NOT NULL REFERENCES agents(name),
  created_at  TIMESTAMPTZ NOT NULL,
  PRIMARY KEY (bundle_name, agent_name)
);
`

// PostgresStore implements Store using a pgx connection pool.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// OpenPostgres connects to the database named by url. A maxConns of zero
// keeps the pool's own default.
func OpenPostgres(ctx context.Context, url string, maxConns int) (*PostgresStore, error) {
	cfg, err := pgxpool.ParseConfig(url)
	if err != nil {
		return nil, fmt.Errorf("parsing postgres url: %w", err)
	}
	if maxConns > 0 {
		cfg.MaxConns = int32(maxConns)
	}
	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connecting to postgres: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pinging postgres: %w", err)
	}
	return &PostgresStore{pool: pool}, nil
}

func (s *PostgresStore) Ping(ctx context.Context) error { return s.pool.Ping(ctx) }

func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}

func (s *PostgresStore) Migrate(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, pgSchema)
	return err
}

func (s *PostgresStore) Begin(ctx context.Context) (Tx, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	return &pgTx{tx: tx}, nil
}

type pgTx struct {
	tx pgx.Tx
}

// ── Agent operations ────────────────────────────────────────

func (t *pgTx) GetAgentByName(ctx context.Context, name string) (*models.Agent, error) {
	row := t.tx.QueryRow(ctx,
		`SELECT `+agentColumns+` FROM agents WHERE name = $1`, name)

	var a models.Agent
	err := row.Scan(&a.ID, &a.Name, &a.Description, &a.Category, &a.BasePrompt, &a.PricingTier,
		&a.BasePrice, &a.MonthlyPrice, &a.Capabilities, &a.SpecializationTags, &a.DefaultModel,
		&a.ModelPricingModifier, &a.ExpertiseYears, &a.PracticalProjects, &a.CollaborationRate,
		&a.ComplianceFrameworks, &a.IsActive, &a.IsFeatured, &a.ApprovalStatus,
		&a.CreatedAt, &a.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, &ErrNotFound{Entity: "agent", Key: name}
	}
	if err != nil {
		return nil, fmt.Errorf("get agent %q: %w", name, err)
	}
	return &a, nil
}

func (t *pgTx) InsertAgent(ctx context.Context, a *models.Agent) error {
	_, err := t.tx.Exec(ctx,
		`INSERT INTO agents (`+agentColumns+`)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21)`,
		a.ID, a.Name, a.Description, a.Category, a.BasePrompt, string(a.PricingTier),
		a.BasePrice, a.MonthlyPrice, a.Capabilities, textArray(a.SpecializationTags), a.DefaultModel,
		a.ModelPricingModifier, a.ExpertiseYears, a.PracticalProjects, a.CollaborationRate,
		textArray(a.ComplianceFrameworks), a.IsActive, a.IsFeatured, string(a.ApprovalStatus),
		a.CreatedAt, a.UpdatedAt)
	if err != nil {
		if isPgUnique(err) {
			return &models.IntegrityError{Op: "insert agent " + a.Name, Err: err}
		}
		return fmt.Errorf("insert agent %q: %w", a.Name, err)
	}
	return nil
}

func (t *pgTx) UpdateAgent(ctx context.Context, a *models.Agent) error {
	tag, err := t.tx.Exec(ctx,
		`UPDATE agents SET description = $1, category = $2, base_prompt = $3,
		   pricing_tier = $4, base_price = $5, monthly_price = $6, capabilities = $7,
		   specialization_tags = $8, default_model = $9, model_pricing_modifier = $10,
		   expertise_years = $11, practical_projects = $12, collaboration_rate = $13,
		   compliance_frameworks = $14, is_active = $15, is_featured = $16,
		   approval_status = $17, updated_at = $18
		 WHERE name = $19`,
		a.Description, a.Category, a.BasePrompt,
		string(a.PricingTier), a.BasePrice, a.MonthlyPrice, a.Capabilities,
		textArray(a.SpecializationTags), a.DefaultModel, a.ModelPricingModifier,
		a.ExpertiseYears, a.PracticalProjects, a.CollaborationRate,
		textArray(a.ComplianceFrameworks), a.IsActive, a.IsFeatured,
		string(a.ApprovalStatus), a.UpdatedAt,
		a.Name)
	if err != nil {
		return fmt.Errorf("update agent %q: %w", a.Name, err)
	}
	if tag.RowsAffected() == 0 {
		return &ErrNotFound{Entity: "agent", Key: a.Name}
	}
	return nil
}

func (t *pgTx) ListAgentsByCategory(ctx context.Context, category string, limit int) ([]models.Agent, error) {
	q := `SELECT ` + agentColumns + ` FROM agents
	      WHERE category = $1 AND is_active ORDER BY name ASC`
	args := []any{category}
	if limit > 0 {
		q += ` LIMIT $2`
		args = append(args, limit)
	}
	rows, err := t.tx.Query(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("list agents in %q: %w", category, err)
	}
	defer rows.Close()

	var agents []models.Agent
	for rows.Next() {
		var a models.Agent
		err := rows.Scan(&a.ID, &a.Name, &a.Description, &a.Category, &a.BasePrompt, &a.PricingTier,
			&a.BasePrice, &a.MonthlyPrice, &a.Capabilities, &a.SpecializationTags, &a.DefaultModel,
			&a.ModelPricingModifier, &a.ExpertiseYears, &a.PracticalProjects, &a.CollaborationRate,
			&a.ComplianceFrameworks, &a.IsActive, &a.IsFeatured, &a.ApprovalStatus,
			&a.CreatedAt, &a.UpdatedAt)
		if err != nil {
			return nil, err
		}
		agents = append(agents, a)
	}
	return agents, rows.Err()
}

func (t *pgTx) CountAgents(ctx context.Context) (int, error) {
	var n int
	err := t.tx.QueryRow(ctx, `SELECT COUNT(*) FROM agents`).Scan(&n)
	return n, err
}

func (t *pgTx) DeleteAllAgents(ctx context.Context) (int, error) {
	tag, err := t.tx.Exec(ctx, `DELETE FROM agents`)
	if err != nil {
		return 0, fmt.Errorf("delete agents: %w", err)
	}
	return int(tag.RowsAffected()), nil
}

// ── Bundle operations ───────────────────────────────────────

func (t *pgTx) GetBundleByName(ctx context.Context, name string) (*models.Bundle, error) {
	row := t.tx.QueryRow(ctx,
		`SELECT `+bundleColumns+` FROM bundles WHERE name = $1`, name)

	var b models.Bundle
	err := row.Scan(&b.ID, &b.Name, &b.Description, &b.Category, &b.PricingTier,
		&b.MonthlyPrice, &b.SetupPrice, &b.IsActive, &b.IsFeatured,
		&b.CreatedAt, &b.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, &ErrNotFound{Entity: "bundle", Key: name}
	}
	if err != nil {
		return nil, fmt.Errorf("get bundle %q: %w", name, err)
	}
	return &b, nil
}

func (t *pgTx) InsertBundle(ctx context.Context, b *models.Bundle) error {
	_, err := t.tx.Exec(ctx,
		`INSERT INTO bundles (`+bundleColumns+`)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		b.ID, b.Name, b.Description, b.Category, string(b.PricingTier),
		b.MonthlyPrice, b.SetupPrice, b.IsActive, b.IsFeatured,
		b.CreatedAt, b.UpdatedAt)
	if err != nil {
		if isPgUnique(err) {
			return &models.IntegrityError{Op: "insert bundle " + b.Name, Err: err}
		}
		return fmt.Errorf("insert bundle %q: %w", b.Name, err)
	}
	return nil
}

func (t *pgTx) UpdateBundle(ctx context.Context, b *models.Bundle) error {
	tag, err := t.tx.Exec(ctx,
		`UPDATE bundles SET description = $1, category = $2, pricing_tier = $3,
		   monthly_price = $4, setup_price = $5, is_active = $6, is_featured = $7,
		   updated_at = $8
		 WHERE name = $9`,
		b.Description, b.Category, string(b.PricingTier),
		b.MonthlyPrice, b.SetupPrice, b.IsActive, b.IsFeatured,
		b.UpdatedAt, b.Name)
	if err != nil {
		return fmt.Errorf("update bundle %q: %w", b.Name, err)
	}
	if tag.RowsAffected() == 0 {
		return &ErrNotFound{Entity: "bundle", Key: b.Name}
	}
	return nil
}

func (t *pgTx) CountBundles(ctx context.Context) (int, error) {
	var n int
	err := t.tx.QueryRow(ctx, `SELECT COUNT(*) FROM bundles`).Scan(&n)
	return n, err
}

func (t *pgTx) DeleteAllBundles(ctx context.Context) (int, error) {
	tag, err := t.tx.Exec(ctx, `DELETE FROM bundles`)
	if err != nil {
		return 0, fmt.Errorf("delete bundles: %w", err)
	}
	return int(tag.RowsAffected()), nil
}

// ── Membership operations ───────────────────────────────────

func (t *pgTx) ListBundleMembers(ctx context.Context, bundleName string) ([]models.BundleMember, error) {
	rows, err := t.tx.Query(ctx,
		`SELECT bundle_name, agent_name, created_at FROM bundle_members
		 WHERE bundle_name = $1 ORDER BY agent_name ASC`, bundleName)
	if err != nil {
		return nil, fmt.Errorf("list members of %q: %w", bundleName, err)
	}
	defer rows.Close()

	var members []models.BundleMember
	for rows.Next() {
		var m models.BundleMember
		if err := rows.Scan(&m.BundleName, &m.AgentName, &m.CreatedAt); err != nil {
			return nil, err
		}
		members = append(members, m)
	}
	return members, rows.Err()
}

func (t *pgTx) InsertBundleMember(ctx context.Context, m *models.BundleMember) error {
	_, err := t.tx.Exec(ctx,
		`INSERT INTO bundle_members (bundle_name, agent_name, created_at)
		 VALUES ($1, $2, $3)`,
		m.BundleName, m.AgentName, m.CreatedAt)
	if err != nil {
		if isPgUnique(err) {
			return &models.IntegrityError{
				Op:  "insert member " + m.BundleName + "/" + m.AgentName,
				Err: err,
			}
		}
		return fmt.Errorf("insert member %s/%s: %w", m.BundleName, m.AgentName, err)
	}
	return nil
}

func (t *pgTx) DeleteBundleMembers(ctx context.Context, bundleName string) (int, error) {
	tag, err := t.tx.Exec(ctx,
		`DELETE FROM bundle_members WHERE bundle_name = $1`, bundleName)
	if err != nil {
		return 0, fmt.Errorf("delete members of %q: %w", bundleName, err)
	}
	return int(tag.RowsAffected()), nil
}

func (t *pgTx) DeleteAllBundleMembers(ctx context.Context) (int, error) {
	tag, err := t.tx.Exec(ctx, `DELETE FROM bundle_members`)
	if err != nil {
		return 0, fmt.Errorf("delete members: %w", err)
	}
	return int(tag.RowsAffected()), nil
}

// ── Transaction boundary ────────────────────────────────────

func (t *pgTx) Commit(ctx context.Context) error { return t.tx.Commit(ctx) }

func (t *pgTx) Rollback(ctx context.Context) error {
	if err := t.tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
		return err
	}
	return nil
}

// textArray keeps NOT NULL text[] columns happy when a tag list is nil.
func textArray(v []string) []string {
	if v == nil {
		return []string{}
	}
	return v
}

func isPgUnique(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
}
