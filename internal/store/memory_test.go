package store_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/agentbazaar/agentbazaar/loader/internal/store"
	"github.com/agentbazaar/agentbazaar/loader/pkg/models"
)

func newMemoryStore(t *testing.T) store.Store {
	t.Helper()
	s := store.NewMemoryStore()
	t.Cleanup(func() { s.Close() })
	return s
}

func testAgent(name, category string) *models.Agent {
	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	return &models.Agent{
		ID:                   "id-" + name,
		Name:                 name,
		Description:          "test listing",
		Category:             category,
		PricingTier:          models.TierStandard,
		BasePrice:            49,
		MonthlyPrice:         99,
		SpecializationTags:   []string{"seo", "copywriting"},
		DefaultModel:         "gpt-4o",
		ModelPricingModifier: 1.0,
		CollaborationRate:    0.35,
		IsActive:             true,
		ApprovalStatus:       models.ApprovalApproved,
		CreatedAt:            now,
		UpdatedAt:            now,
	}
}

func testBundle(name string) *models.Bundle {
	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	return &models.Bundle{
		ID:           "id-" + name,
		Name:         name,
		Description:  "test bundle",
		Category:     "content",
		PricingTier:  models.TierStandard,
		MonthlyPrice: 299,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// ─── Agent round trips ───────────────────────────────────────

func TestInsertAndGetAgent(t *testing.T) {
	runInsertAndGetAgent(t, newMemoryStore(t))
}

func runInsertAndGetAgent(t *testing.T, s store.Store) {
	t.Helper()
	ctx := context.Background()

	tx, err := s.Begin(ctx)
	if err != nil {
		t.Fatalf("Begin() error = %v", err)
	}
	agent := testAgent("Blog Writer AI", "content")
	if err := tx.InsertAgent(ctx, agent); err != nil {
		t.Fatalf("InsertAgent() error = %v", err)
	}
	if err := tx.Commit(ctx); err != nil {
		t.Fatalf("Commit() error = %v", err)
	}

	tx, _ = s.Begin(ctx)
	defer tx.Rollback(ctx)
	got, err := tx.GetAgentByName(ctx, "Blog Writer AI")
	if err != nil {
		t.Fatalf("GetAgentByName() error = %v", err)
	}
	if got.ID != agent.ID {
		t.Errorf("ID = %q, want %q", got.ID, agent.ID)
	}
	if got.PricingTier != models.TierStandard {
		t.Errorf("PricingTier = %q, want %q", got.PricingTier, models.TierStandard)
	}
	if len(got.SpecializationTags) != 2 || got.SpecializationTags[0] != "seo" {
		t.Errorf("SpecializationTags = %v, want [seo copywriting]", got.SpecializationTags)
	}
	if !got.CreatedAt.Equal(agent.CreatedAt) {
		t.Errorf("CreatedAt = %v, want %v", got.CreatedAt, agent.CreatedAt)
	}
}

func TestGetAgentNotFound(t *testing.T) {
	runGetAgentNotFound(t, newMemoryStore(t))
}

func runGetAgentNotFound(t *testing.T, s store.Store) {
	t.Helper()
	ctx := context.Background()

	tx, _ := s.Begin(ctx)
	defer tx.Rollback(ctx)

	_, err := tx.GetAgentByName(ctx, "nope")
	var notFound *store.ErrNotFound
	if !errors.As(err, &notFound) {
		t.Fatalf("GetAgentByName() error = %v, want ErrNotFound", err)
	}
	if notFound.Entity != "agent" {
		t.Errorf("Entity = %q, want %q", notFound.Entity, "agent")
	}
}

func TestInsertDuplicateAgent(t *testing.T) {
	runInsertDuplicateAgent(t, newMemoryStore(t))
}

func runInsertDuplicateAgent(t *testing.T, s store.Store) {
	t.Helper()
	ctx := context.Background()

	tx, _ := s.Begin(ctx)
	defer tx.Rollback(ctx)

	if err := tx.InsertAgent(ctx, testAgent("dup", "content")); err != nil {
		t.Fatalf("InsertAgent() first call error = %v", err)
	}
	dup := testAgent("dup", "content")
	dup.ID = "id-other"
	err := tx.InsertAgent(ctx, dup)
	var integrity *models.IntegrityError
	if !errors.As(err, &integrity) {
		t.Fatalf("InsertAgent() second call error = %v, want IntegrityError", err)
	}
}

func TestUpdateAgent(t *testing.T) {
	runUpdateAgent(t, newMemoryStore(t))
}

func runUpdateAgent(t *testing.T, s store.Store) {
	t.Helper()
	ctx := context.Background()

	tx, _ := s.Begin(ctx)
	agent := testAgent("update-me", "content")
	if err := tx.InsertAgent(ctx, agent); err != nil {
		t.Fatalf("InsertAgent() error = %v", err)
	}
	agent.MonthlyPrice = 149
	agent.SpecializationTags = []string{"seo"}
	if err := tx.UpdateAgent(ctx, agent); err != nil {
		t.Fatalf("UpdateAgent() error = %v", err)
	}
	if err := tx.Commit(ctx); err != nil {
		t.Fatalf("Commit() error = %v", err)
	}

	tx, _ = s.Begin(ctx)
	defer tx.Rollback(ctx)
	got, err := tx.GetAgentByName(ctx, "update-me")
	if err != nil {
		t.Fatalf("GetAgentByName() error = %v", err)
	}
	if got.MonthlyPrice != 149 {
		t.Errorf("MonthlyPrice = %v, want 149", got.MonthlyPrice)
	}
	if len(got.SpecializationTags) != 1 {
		t.Errorf("SpecializationTags = %v, want [seo]", got.SpecializationTags)
	}
}

func TestListAgentsByCategory(t *testing.T) {
	runListAgentsByCategory(t, newMemoryStore(t))
}

func runListAgentsByCategory(t *testing.T, s store.Store) {
	t.Helper()
	ctx := context.Background()

	tx, _ := s.Begin(ctx)
	defer tx.Rollback(ctx)

	for _, name := range []string{"Charlie", "Alice", "Bob"} {
		if err := tx.InsertAgent(ctx, testAgent(name, "content")); err != nil {
			t.Fatalf("InsertAgent(%s) error = %v", name, err)
		}
	}
	inactive := testAgent("Aardvark", "content")
	inactive.IsActive = false
	if err := tx.InsertAgent(ctx, inactive); err != nil {
		t.Fatalf("InsertAgent(inactive) error = %v", err)
	}
	if err := tx.InsertAgent(ctx, testAgent("Dana", "sales")); err != nil {
		t.Fatalf("InsertAgent(other category) error = %v", err)
	}

	got, err := tx.ListAgentsByCategory(ctx, "content", 0)
	if err != nil {
		t.Fatalf("ListAgentsByCategory() error = %v", err)
	}
	want := []string{"Alice", "Bob", "Charlie"}
	if len(got) != len(want) {
		t.Fatalf("got %d agents, want %d", len(got), len(want))
	}
	for i, a := range got {
		if a.Name != want[i] {
			t.Errorf("agent[%d] = %q, want %q", i, a.Name, want[i])
		}
	}

	limited, err := tx.ListAgentsByCategory(ctx, "content", 2)
	if err != nil {
		t.Fatalf("ListAgentsByCategory(limit) error = %v", err)
	}
	if len(limited) != 2 || limited[0].Name != "Alice" || limited[1].Name != "Bob" {
		t.Errorf("limited list = %v, want [Alice Bob]", names(limited))
	}

	empty, err := tx.ListAgentsByCategory(ctx, "unknown-category", 0)
	if err != nil {
		t.Fatalf("ListAgentsByCategory(unknown) error = %v", err)
	}
	if len(empty) != 0 {
		t.Errorf("unknown category returned %d agents, want 0", len(empty))
	}
}

func names(agents []models.Agent) []string {
	out := make([]string, len(agents))
	for i, a := range agents {
		out[i] = a.Name
	}
	return out
}

// ─── Bundles and members ─────────────────────────────────────

func TestBundleRoundTrip(t *testing.T) {
	runBundleRoundTrip(t, newMemoryStore(t))
}

func runBundleRoundTrip(t *testing.T, s store.Store) {
	t.Helper()
	ctx := context.Background()

	tx, _ := s.Begin(ctx)
	bundle := testBundle("Content Engine")
	if err := tx.InsertBundle(ctx, bundle); err != nil {
		t.Fatalf("InsertBundle() error = %v", err)
	}
	bundle.MonthlyPrice = 399
	if err := tx.UpdateBundle(ctx, bundle); err != nil {
		t.Fatalf("UpdateBundle() error = %v", err)
	}
	if err := tx.Commit(ctx); err != nil {
		t.Fatalf("Commit() error = %v", err)
	}

	tx, _ = s.Begin(ctx)
	defer tx.Rollback(ctx)
	got, err := tx.GetBundleByName(ctx, "Content Engine")
	if err != nil {
		t.Fatalf("GetBundleByName() error = %v", err)
	}
	if got.MonthlyPrice != 399 {
		t.Errorf("MonthlyPrice = %v, want 399", got.MonthlyPrice)
	}
	n, err := tx.CountBundles(ctx)
	if err != nil || n != 1 {
		t.Errorf("CountBundles() = %d, %v, want 1, nil", n, err)
	}
}

func TestBundleMembers(t *testing.T) {
	runBundleMembers(t, newMemoryStore(t))
}

func runBundleMembers(t *testing.T, s store.Store) {
	t.Helper()
	ctx := context.Background()
	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

	tx, _ := s.Begin(ctx)
	defer tx.Rollback(ctx)

	for _, name := range []string{"Zed", "Amy"} {
		if err := tx.InsertAgent(ctx, testAgent(name, "content")); err != nil {
			t.Fatalf("InsertAgent(%s) error = %v", name, err)
		}
	}
	if err := tx.InsertBundle(ctx, testBundle("Pack")); err != nil {
		t.Fatalf("InsertBundle() error = %v", err)
	}
	for _, agent := range []string{"Zed", "Amy"} {
		m := &models.BundleMember{BundleName: "Pack", AgentName: agent, CreatedAt: now}
		if err := tx.InsertBundleMember(ctx, m); err != nil {
			t.Fatalf("InsertBundleMember(%s) error = %v", agent, err)
		}
	}

	got, err := tx.ListBundleMembers(ctx, "Pack")
	if err != nil {
		t.Fatalf("ListBundleMembers() error = %v", err)
	}
	if len(got) != 2 || got[0].AgentName != "Amy" || got[1].AgentName != "Zed" {
		t.Errorf("members = %v, want [Amy Zed]", got)
	}

	dup := &models.BundleMember{BundleName: "Pack", AgentName: "Amy", CreatedAt: now}
	err = tx.InsertBundleMember(ctx, dup)
	var integrity *models.IntegrityError
	if !errors.As(err, &integrity) {
		t.Fatalf("duplicate member error = %v, want IntegrityError", err)
	}

	n, err := tx.DeleteBundleMembers(ctx, "Pack")
	if err != nil || n != 2 {
		t.Fatalf("DeleteBundleMembers() = %d, %v, want 2, nil", n, err)
	}
	got, _ = tx.ListBundleMembers(ctx, "Pack")
	if len(got) != 0 {
		t.Errorf("members after delete = %v, want none", got)
	}
}

// ─── Transaction boundary ────────────────────────────────────

func TestRollbackDiscardsWrites(t *testing.T) {
	runRollbackDiscardsWrites(t, newMemoryStore(t))
}

func runRollbackDiscardsWrites(t *testing.T, s store.Store) {
	t.Helper()
	ctx := context.Background()

	tx, _ := s.Begin(ctx)
	if err := tx.InsertAgent(ctx, testAgent("ghost", "content")); err != nil {
		t.Fatalf("InsertAgent() error = %v", err)
	}
	if err := tx.Rollback(ctx); err != nil {
		t.Fatalf("Rollback() error = %v", err)
	}

	tx, _ = s.Begin(ctx)
	defer tx.Rollback(ctx)
	n, err := tx.CountAgents(ctx)
	if err != nil {
		t.Fatalf("CountAgents() error = %v", err)
	}
	if n != 0 {
		t.Errorf("CountAgents() after rollback = %d, want 0", n)
	}
}

func TestDeleteAll(t *testing.T) {
	runDeleteAll(t, newMemoryStore(t))
}

func runDeleteAll(t *testing.T, s store.Store) {
	t.Helper()
	ctx := context.Background()
	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

	tx, _ := s.Begin(ctx)
	defer tx.Rollback(ctx)

	tx.InsertAgent(ctx, testAgent("a", "content"))
	tx.InsertAgent(ctx, testAgent("b", "content"))
	tx.InsertBundle(ctx, testBundle("p"))
	tx.InsertBundleMember(ctx, &models.BundleMember{BundleName: "p", AgentName: "a", CreatedAt: now})

	if n, err := tx.DeleteAllBundleMembers(ctx); err != nil || n != 1 {
		t.Errorf("DeleteAllBundleMembers() = %d, %v, want 1, nil", n, err)
	}
	if n, err := tx.DeleteAllBundles(ctx); err != nil || n != 1 {
		t.Errorf("DeleteAllBundles() = %d, %v, want 1, nil", n, err)
	}
	if n, err := tx.DeleteAllAgents(ctx); err != nil || n != 2 {
		t.Errorf("DeleteAllAgents() = %d, %v, want 2, nil", n, err)
	}
}
