// Package store — in-memory Store implementation.
// Used when no database is configured (unit tests, --dry-run experiments).
// Transactions copy the maps on Begin and swap them back on Commit, so a
// rollback is simply dropping the copy.
package store

import (
	"context"
	"sort"
	"sync"

	"github.com/agentbazaar/agentbazaar/loader/pkg/models"
)

// MemoryStore implements Store with in-memory maps keyed by natural key.
type MemoryStore struct {
	mu      sync.Mutex
	agents  map[string]*models.Agent        // key: name
	bundles map[string]*models.Bundle       // key: name
	members map[string]*models.BundleMember // key: bundle + "\x00" + agent
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		agents:  make(map[string]*models.Agent),
		bundles: make(map[string]*models.Bundle),
		members: make(map[string]*models.BundleMember),
	}
}

func (m *MemoryStore) Ping(ctx context.Context) error    { return nil }
func (m *MemoryStore) Migrate(ctx context.Context) error { return nil }
func (m *MemoryStore) Close() error                      { return nil }

// Begin snapshots the current state. Writes land on the snapshot; Commit
// swaps it in atomically.
func (m *MemoryStore) Begin(ctx context.Context) (Tx, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	tx := &memTx{
		store:   m,
		agents:  make(map[string]*models.Agent, len(m.agents)),
		bundles: make(map[string]*models.Bundle, len(m.bundles)),
		members: make(map[string]*models.BundleMember, len(m.members)),
	}
	for k, v := range m.agents {
		tx.agents[k] = cloneAgent(v)
	}
	for k, v := range m.bundles {
		tx.bundles[k] = cloneBundle(v)
	}
	for k, v := range m.members {
		cp := *v
		tx.members[k] = &cp
	}
	return tx, nil
}

type memTx struct {
	store   *MemoryStore
	agents  map[string]*models.Agent
	bundles map[string]*models.Bundle
	members map[string]*models.BundleMember
	done    bool
}

func memberKey(bundle, agent string) string { return bundle + "\x00" + agent }

// ── Agent operations ────────────────────────────────────────

func (t *memTx) GetAgentByName(ctx context.Context, name string) (*models.Agent, error) {
	a, ok := t.agents[name]
	if !ok {
		return nil, &ErrNotFound{Entity: "agent", Key: name}
	}
	return cloneAgent(a), nil
}

func (t *memTx) InsertAgent(ctx context.Context, agent *models.Agent) error {
	if _, exists := t.agents[agent.Name]; exists {
		return &models.IntegrityError{Op: "insert agent " + agent.Name, Err: errDuplicateKey}
	}
	t.agents[agent.Name] = cloneAgent(agent)
	return nil
}

func (t *memTx) UpdateAgent(ctx context.Context, agent *models.Agent) error {
	if _, exists := t.agents[agent.Name]; !exists {
		return &ErrNotFound{Entity: "agent", Key: agent.Name}
	}
	t.agents[agent.Name] = cloneAgent(agent)
	return nil
}

func (t *memTx) ListAgentsByCategory(ctx context.Context, category string, limit int) ([]models.Agent, error) {
	var out []models.Agent
	for _, a := range t.agents {
		if a.IsActive && a.Category == category {
			out = append(out, *cloneAgent(a))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (t *memTx) CountAgents(ctx context.Context) (int, error) {
	return len(t.agents), nil
}

func (t *memTx) DeleteAllAgents(ctx context.Context) (int, error) {
	n := len(t.agents)
	t.agents = make(map[string]*models.Agent)
	return n, nil
}

// ── Bundle operations ───────────────────────────────────────

func (t *memTx) GetBundleByName(ctx context.Context, name string) (*models.Bundle, error) {
	b, ok := t.bundles[name]
	if !ok {
		return nil, &ErrNotFound{Entity: "bundle", Key: name}
	}
	return cloneBundle(b), nil
}

func (t *memTx) InsertBundle(ctx context.Context, bundle *models.Bundle) error {
	if _, exists := t.bundles[bundle.Name]; exists {
		return &models.IntegrityError{Op: "insert bundle " + bundle.Name, Err: errDuplicateKey}
	}
	t.bundles[bundle.Name] = cloneBundle(bundle)
	return nil
}

func (t *memTx) UpdateBundle(ctx context.Context, bundle *models.Bundle) error {
	if _, exists := t.bundles[bundle.Name]; !exists {
		return &ErrNotFound{Entity: "bundle", Key: bundle.Name}
	}
	t.bundles[bundle.Name] = cloneBundle(bundle)
	return nil
}

func (t *memTx) CountBundles(ctx context.Context) (int, error) {
	return len(t.bundles), nil
}

func (t *memTx) DeleteAllBundles(ctx context.Context) (int, error) {
	n := len(t.bundles)
	t.bundles = make(map[string]*models.Bundle)
	return n, nil
}

// ── Membership operations ───────────────────────────────────

func (t *memTx) ListBundleMembers(ctx context.Context, bundleName string) ([]models.BundleMember, error) {
	var out []models.BundleMember
	for _, m := range t.members {
		if m.BundleName == bundleName {
			out = append(out, *m)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].AgentName < out[j].AgentName })
	return out, nil
}

func (t *memTx) InsertBundleMember(ctx context.Context, member *models.BundleMember) error {
	key := memberKey(member.BundleName, member.AgentName)
	if _, exists := t.members[key]; exists {
		return &models.IntegrityError{
			Op:  "insert member " + member.BundleName + "/" + member.AgentName,
			Err: errDuplicateKey,
		}
	}
	cp := *member
	t.members[key] = &cp
	return nil
}

func (t *memTx) DeleteBundleMembers(ctx context.Context, bundleName string) (int, error) {
	n := 0
	for k, m := range t.members {
		if m.BundleName == bundleName {
			delete(t.members, k)
			n++
		}
	}
	return n, nil
}

func (t *memTx) DeleteAllBundleMembers(ctx context.Context) (int, error) {
	n := len(t.members)
	t.members = make(map[string]*models.BundleMember)
	return n, nil
}

// ── Transaction boundary ────────────────────────────────────

func (t *memTx) Commit(ctx context.Context) error {
	if t.done {
		return nil
	}
	t.done = true

	t.store.mu.Lock()
	t.store.agents = t.agents
	t.store.bundles = t.bundles
	t.store.members = t.members
	t.store.mu.Unlock()
	return nil
}

func (t *memTx) Rollback(ctx context.Context) error {
	t.done = true
	return nil
}

// ── Clone helpers ───────────────────────────────────────────

func cloneAgent(a *models.Agent) *models.Agent {
	cp := *a
	cp.SpecializationTags = append([]string(nil), a.SpecializationTags...)
	cp.ComplianceFrameworks = append([]string(nil), a.ComplianceFrameworks...)
	return &cp
}

func cloneBundle(b *models.Bundle) *models.Bundle {
	cp := *b
	cp.Selector.Names = append([]string(nil), b.Selector.Names...)
	cp.Selector.Categories = append([]string(nil), b.Selector.Categories...)
	return &cp
}
