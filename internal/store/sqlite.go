// Package store — SQLite Store implementation, backed by modernc.org/sqlite
// through database/sql. Suited to local runs and the store test suite; the
// production marketplace runs on PostgreSQL.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	sqlite "modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/agentbazaar/agentbazaar/loader/pkg/models"
)

// SQLiteStore implements Store on a single SQLite file.
type SQLiteStore struct {
	db *sql.DB
}

// OpenSQLite opens (creating if necessary) the database at path and runs
// the schema migration.
func OpenSQLite(path string) (*SQLiteStore, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating data dir: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	s := &SQLiteStore{db: db}
	if err := s.Migrate(context.Background()); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrating database: %w", err)
	}
	return s, nil
}

func (s *SQLiteStore) Ping(ctx context.Context) error { return s.db.PingContext(ctx) }
func (s *SQLiteStore) Close() error                   { return s.db.Close() }

func (s *SQLiteStore) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, sqliteSchema)
	return err
}

func (s *SQLiteStore) Begin(ctx context.Context) (Tx, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	return &sqliteTx{tx: tx}, nil
}

type sqliteTx struct {
	tx *sql.Tx
}

const agentColumns = `id, name, description, category, base_prompt, pricing_tier,
	base_price, monthly_price, capabilities, specialization_tags, default_model,
	model_pricing_modifier, expertise_years, practical_projects, collaboration_rate,
	compliance_frameworks, is_active, is_featured, approval_status, created_at, updated_at`

// ── Agent operations ────────────────────────────────────────

func (t *sqliteTx) GetAgentByName(ctx context.Context, name string) (*models.Agent, error) {
	row := t.tx.QueryRowContext(ctx,
		`SELECT `+agentColumns+` FROM agents WHERE name = ?`, name)
	a, err := scanAgent(row)
	if err == sql.ErrNoRows {
		return nil, &ErrNotFound{Entity: "agent", Key: name}
	}
	if err != nil {
		return nil, fmt.Errorf("get agent %q: %w", name, err)
	}
	return a, nil
}

func (t *sqliteTx) InsertAgent(ctx context.Context, a *models.Agent) error {
	tags, frameworks := encodeTags(a.SpecializationTags), encodeTags(a.ComplianceFrameworks)
	_, err := t.tx.ExecContext(ctx,
		`INSERT INTO agents (`+agentColumns+`)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		a.ID, a.Name, a.Description, a.Category, a.BasePrompt, string(a.PricingTier),
		a.BasePrice, a.MonthlyPrice, a.Capabilities, tags, a.DefaultModel,
		a.ModelPricingModifier, a.ExpertiseYears, a.PracticalProjects, a.CollaborationRate,
		frameworks, boolInt(a.IsActive), boolInt(a.IsFeatured), string(a.ApprovalStatus),
		a.CreatedAt.UnixMilli(), a.UpdatedAt.UnixMilli())
	if err != nil {
		if isUniqueViolation(err) {
			return &models.IntegrityError{Op: "insert agent " + a.Name, Err: err}
		}
		return fmt.Errorf("insert agent %q: %w", a.Name, err)
	}
	return nil
}

func (t *sqliteTx) UpdateAgent(ctx context.Context, a *models.Agent) error {
	tags, frameworks := encodeTags(a.SpecializationTags), encodeTags(a.ComplianceFrameworks)
	res, err := t.tx.ExecContext(ctx,
		`UPDATE agents SET description = ?, category = ?, base_prompt = ?,
		   pricing_tier = ?, base_price = ?, monthly_price = ?, capabilities = ?,
		   specialization_tags = ?, default_model = ?, model_pricing_modifier = ?,
		   expertise_years = ?, practical_projects = ?, collaboration_rate = ?,
		   compliance_frameworks = ?, is_active = ?, is_featured = ?,
		   approval_status = ?, updated_at = ?
		 WHERE name = ?`,
		a.Description, a.Category, a.BasePrompt,
		string(a.PricingTier), a.BasePrice, a.MonthlyPrice, a.Capabilities,
		tags, a.DefaultModel, a.ModelPricingModifier,
		a.ExpertiseYears, a.PracticalProjects, a.CollaborationRate,
		frameworks, boolInt(a.IsActive), boolInt(a.IsFeatured),
		string(a.ApprovalStatus), a.UpdatedAt.UnixMilli(),
		a.Name)
	if err != nil {
		return fmt.Errorf("update agent %q: %w", a.Name, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return &ErrNotFound{Entity: "agent", Key: a.Name}
	}
	return nil
}

func (t *sqliteTx) ListAgentsByCategory(ctx context.Context, category string, limit int) ([]models.Agent, error) {
	q := `SELECT ` + agentColumns + ` FROM agents
	      WHERE category = ? AND is_active = 1 ORDER BY name ASC`
	args := []any{category}
	if limit > 0 {
		q += ` LIMIT ?`
		args = append(args, limit)
	}
	rows, err := t.tx.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("list agents in %q: %w", category, err)
	}
	defer rows.Close()

	var agents []models.Agent
	for rows.Next() {
		a, err := scanAgent(rows)
		if err != nil {
			return nil, err
		}
		agents = append(agents, *a)
	}
	return agents, rows.Err()
}

func (t *sqliteTx) CountAgents(ctx context.Context) (int, error) {
	var n int
	err := t.tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM agents`).Scan(&n)
	return n, err
}

func (t *sqliteTx) DeleteAllAgents(ctx context.Context) (int, error) {
	res, err := t.tx.ExecContext(ctx, `DELETE FROM agents`)
	if err != nil {
		return 0, fmt.Errorf("delete agents: %w", err)
	}
	n, _ := res.RowsAffected()
	return int(n), nil
}

// ── Bundle operations ───────────────────────────────────────

const bundleColumns = `id, name, description, category, pricing_tier,
	monthly_price, setup_price, is_active, is_featured, created_at, updated_at`

func (t *sqliteTx) GetBundleByName(ctx context.Context, name string) (*models.Bundle, error) {
	row := t.tx.QueryRowContext(ctx,
		`SELECT `+bundleColumns+` FROM bundles WHERE name = ?`, name)
	b, err := scanBundle(row)
	if err == sql.ErrNoRows {
		return nil, &ErrNotFound{Entity: "bundle", Key: name}
	}
	if err != nil {
		return nil, fmt.Errorf("get bundle %q: %w", name, err)
	}
	return b, nil
}

func (t *sqliteTx) InsertBundle(ctx context.Context, b *models.Bundle) error {
	_, err := t.tx.ExecContext(ctx,
		`INSERT INTO bundles (`+bundleColumns+`)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		b.ID, b.Name, b.Description, b.Category, string(b.PricingTier),
		b.MonthlyPrice, b.SetupPrice, boolInt(b.IsActive), boolInt(b.IsFeatured),
		b.CreatedAt.UnixMilli(), b.UpdatedAt.UnixMilli())
	if err != nil {
		if isUniqueViolation(err) {
			return &models.IntegrityError{Op: "insert bundle " + b.Name, Err: err}
		}
		return fmt.Errorf("insert bundle %q: %w", b.Name, err)
	}
	return nil
}

func (t *sqliteTx) UpdateBundle(ctx context.Context, b *models.Bundle) error {
	res, err := t.tx.ExecContext(ctx,
		`UPDATE bundles SET description = ?, category = ?, pricing_tier = ?,
		   monthly_price = ?, setup_price = ?, is_active = ?, is_featured = ?,
		   updated_at = ?
		 WHERE name = ?`,
		b.Description, b.Category, string(b.PricingTier),
		b.MonthlyPrice, b.SetupPrice, boolInt(b.IsActive), boolInt(b.IsFeatured),
		b.UpdatedAt.UnixMilli(), b.Name)
	if err != nil {
		return fmt.Errorf("update bundle %q: %w", b.Name, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return &ErrNotFound{Entity: "bundle", Key: b.Name}
	}
	return nil
}

func (t *sqliteTx) CountBundles(ctx context.Context) (int, error) {
	var n int
	err := t.tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM bundles`).Scan(&n)
	return n, err
}

func (t *sqliteTx) DeleteAllBundles(ctx context.Context) (int, error) {
	res, err := t.tx.ExecContext(ctx, `DELETE FROM bundles`)
	if err != nil {
		return 0, fmt.Errorf("delete bundles: %w", err)
	}
	n, _ := res.RowsAffected()
	return int(n), nil
}

// ── Membership operations ───────────────────────────────────

func (t *sqliteTx) ListBundleMembers(ctx context.Context, bundleName string) ([]models.BundleMember, error) {
	rows, err := t.tx.QueryContext(ctx,
		`SELECT bundle_name, agent_name, created_at FROM bundle_members
		 WHERE bundle_name = ? ORDER BY agent_name ASC`, bundleName)
	if err != nil {
		return nil, fmt.Errorf("list members of %q: %w", bundleName, err)
	}
	defer rows.Close()

	var members []models.BundleMember
	for rows.Next() {
		var m models.BundleMember
		var created int64
		if err := rows.Scan(&m.BundleName, &m.AgentName, &created); err != nil {
			return nil, err
		}
		m.CreatedAt = time.UnixMilli(created).UTC()
		members = append(members, m)
	}
	return members, rows.Err()
}

func (t *sqliteTx) InsertBundleMember(ctx context.Context, m *models.BundleMember) error {
	_, err := t.tx.ExecContext(ctx,
		`INSERT INTO bundle_members (bundle_name, agent_name, created_at)
		 VALUES (?, ?, ?)`,
		m.BundleName, m.AgentName, m.CreatedAt.UnixMilli())
	if err != nil {
		if isUniqueViolation(err) {
			return &models.IntegrityError{
				Op:  "insert member " + m.BundleName + "/" + m.AgentName,
				Err: err,
			}
		}
		return fmt.Errorf("insert member %s/%s: %w", m.BundleName, m.AgentName, err)
	}
	return nil
}

func (t *sqliteTx) DeleteBundleMembers(ctx context.Context, bundleName string) (int, error) {
	res, err := t.tx.ExecContext(ctx,
		`DELETE FROM bundle_members WHERE bundle_name = ?`, bundleName)
	if err != nil {
		return 0, fmt.Errorf("delete members of %q: %w", bundleName, err)
	}
	n, _ := res.RowsAffected()
	return int(n), nil
}

func (t *sqliteTx) DeleteAllBundleMembers(ctx context.Context) (int, error) {
	res, err := t.tx.ExecContext(ctx, `DELETE FROM bundle_members`)
	if err != nil {
		return 0, fmt.Errorf("delete members: %w", err)
	}
	n, _ := res.RowsAffected()
	return int(n), nil
}

// ── Transaction boundary ────────────────────────────────────

func (t *sqliteTx) Commit(ctx context.Context) error { return t.tx.Commit() }

func (t *sqliteTx) Rollback(ctx context.Context) error {
	if err := t.tx.Rollback(); err != nil && err != sql.ErrTxDone {
		return err
	}
	return nil
}

// ── Scan helpers ────────────────────────────────────────────

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAgent(row rowScanner) (*models.Agent, error) {
	var a models.Agent
	var tier, approval, tags, frameworks string
	var active, featured int
	var created, updated int64
	err := row.Scan(&a.ID, &a.Name, &a.Description, &a.Category, &a.BasePrompt, &tier,
		&a.BasePrice, &a.MonthlyPrice, &a.Capabilities, &tags, &a.DefaultModel,
		&a.ModelPricingModifier, &a.ExpertiseYears, &a.PracticalProjects, &a.CollaborationRate,
		&frameworks, &active, &featured, &approval, &created, &updated)
	if err != nil {
		return nil, err
	}
	a.PricingTier = models.PricingTier(tier)
	a.ApprovalStatus = models.ApprovalStatus(approval)
	a.SpecializationTags = decodeTags(tags)
	a.ComplianceFrameworks = decodeTags(frameworks)
	a.IsActive = active != 0
	a.IsFeatured = featured != 0
	a.CreatedAt = time.UnixMilli(created).UTC()
	a.UpdatedAt = time.UnixMilli(updated).UTC()
	return &a, nil
}

func scanBundle(row rowScanner) (*models.Bundle, error) {
	var b models.Bundle
	var tier string
	var active, featured int
	var created, updated int64
	err := row.Scan(&b.ID, &b.Name, &b.Description, &b.Category, &tier,
		&b.MonthlyPrice, &b.SetupPrice, &active, &featured, &created, &updated)
	if err != nil {
		return nil, err
	}
	b.PricingTier = models.PricingTier(tier)
	b.IsActive = active != 0
	b.IsFeatured = featured != 0
	b.CreatedAt = time.UnixMilli(created).UTC()
	b.UpdatedAt = time.UnixMilli(updated).UTC()
	return &b, nil
}

func encodeTags(tags []string) string {
	if len(tags) == 0 {
		return "[]"
	}
	data, _ := json.Marshal(tags)
	return string(data)
}

func decodeTags(data string) []string {
	if data == "" || data == "[]" {
		return nil
	}
	var tags []string
	_ = json.Unmarshal([]byte(data), &tags)
	return tags
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// isUniqueViolation matches the driver's typed constraint errors. Name
// collisions surface as SQLITE_CONSTRAINT_UNIQUE; the composite member key
// reports SQLITE_CONSTRAINT_PRIMARYKEY.
func isUniqueViolation(err error) bool {
	var se *sqlite.Error
	if !errors.As(err, &se) {
		return false
	}
	return se.Code() == sqlite3.SQLITE_CONSTRAINT_UNIQUE ||
		se.Code() == sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY
}
