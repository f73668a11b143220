package loader_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentbazaar/agentbazaar/loader/internal/catalog"
	"github.com/agentbazaar/agentbazaar/loader/internal/loader"
	"github.com/agentbazaar/agentbazaar/loader/internal/store"
	"github.com/agentbazaar/agentbazaar/loader/pkg/models"
)

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

var (
	t0 = time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)
	t1 = time.Date(2026, 8, 2, 10, 0, 0, 0, time.UTC)
)

func fetchAgent(t *testing.T, s store.Store, name string) *models.Agent {
	t.Helper()
	ctx := context.Background()
	tx, err := s.Begin(ctx)
	require.NoError(t, err)
	defer tx.Rollback(ctx)
	a, err := tx.GetAgentByName(ctx, name)
	require.NoError(t, err)
	return a
}

func fetchMembers(t *testing.T, s store.Store, bundle string) []string {
	t.Helper()
	ctx := context.Background()
	tx, err := s.Begin(ctx)
	require.NoError(t, err)
	defer tx.Rollback(ctx)
	rows, err := tx.ListBundleMembers(ctx, bundle)
	require.NoError(t, err)
	out := make([]string, len(rows))
	for i, m := range rows {
		out[i] = m.AgentName
	}
	return out
}

func countAgents(t *testing.T, s store.Store) int {
	t.Helper()
	ctx := context.Background()
	tx, err := s.Begin(ctx)
	require.NoError(t, err)
	defer tx.Rollback(ctx)
	n, err := tx.CountAgents(ctx)
	require.NoError(t, err)
	return n
}

func TestRunInsertsMinimalAgent(t *testing.T) {
	s := store.NewMemoryStore()
	src := &catalog.Source{Agents: []models.AgentSpec{{Name: "Minimal AI", Category: "content"}}}

	summary, err := loader.Run(context.Background(), s, src, loader.Options{Now: fixedClock(t0)})
	require.NoError(t, err)

	assert.Equal(t, models.ModeIncremental, summary.Mode)
	assert.Equal(t, models.EntityCounts{Inserted: 1}, summary.Agents)
	assert.Equal(t, models.Totals{AgentsAfter: 1}, summary.Totals)
	assert.Empty(t, summary.Warnings)

	got := fetchAgent(t, s, "Minimal AI")
	assert.NotEmpty(t, got.ID)
	assert.Equal(t, models.TierBasic, got.PricingTier)
	assert.Equal(t, "gpt-4o", got.DefaultModel)
	assert.True(t, got.CreatedAt.Equal(t0))
	assert.True(t, got.UpdatedAt.Equal(t0))
}

func TestRunIsIdempotent(t *testing.T) {
	s := store.NewMemoryStore()
	src, err := catalog.Default()
	require.NoError(t, err)

	first, err := loader.Run(context.Background(), s, src, loader.Options{Now: fixedClock(t0)})
	require.NoError(t, err)
	require.Equal(t, len(src.Agents), first.Agents.Inserted)
	require.Equal(t, len(src.Bundles), first.Bundles.Inserted)

	before := fetchAgent(t, s, src.Agents[0].Name)

	second, err := loader.Run(context.Background(), s, src, loader.Options{Now: fixedClock(t1)})
	require.NoError(t, err)
	assert.Zero(t, second.Agents.Inserted)
	assert.Zero(t, second.Agents.Updated)
	assert.Equal(t, len(src.Agents), second.Agents.Unchanged)
	assert.Zero(t, second.Members.Inserted)

	after := fetchAgent(t, s, src.Agents[0].Name)
	if diff := cmp.Diff(before, after); diff != "" {
		t.Errorf("unchanged row was rewritten (-first +second):\n%s", diff)
	}
}

func TestRunUpdatesChangedRecord(t *testing.T) {
	s := store.NewMemoryStore()
	src := &catalog.Source{Agents: []models.AgentSpec{{Name: "Priced AI", MonthlyPrice: 100}}}

	_, err := loader.Run(context.Background(), s, src, loader.Options{Now: fixedClock(t0)})
	require.NoError(t, err)
	created := fetchAgent(t, s, "Priced AI")

	src.Agents[0].MonthlyPrice = 150
	summary, err := loader.Run(context.Background(), s, src, loader.Options{Now: fixedClock(t1)})
	require.NoError(t, err)
	assert.Equal(t, models.EntityCounts{Updated: 1}, summary.Agents)

	got := fetchAgent(t, s, "Priced AI")
	assert.Equal(t, 150.0, got.MonthlyPrice)
	assert.Equal(t, created.ID, got.ID, "surrogate ID survives updates")
	assert.True(t, got.CreatedAt.Equal(t0), "CreatedAt survives updates")
	assert.True(t, got.UpdatedAt.Equal(t1))
}

func TestRunCollectsUpliftWarnings(t *testing.T) {
	s := store.NewMemoryStore()
	src := &catalog.Source{Agents: []models.AgentSpec{
		{Name: "Junior AI", ExpertiseYears: 10, PracticalProjects: 5},
	}}

	summary, err := loader.Run(context.Background(), s, src, loader.Options{Now: fixedClock(t0)})
	require.NoError(t, err)
	assert.Equal(t, []string{
		"quality_uplift:Junior AI:expertise_years",
		"quality_uplift:Junior AI:practical_projects",
	}, summary.Warnings)

	got := fetchAgent(t, s, "Junior AI")
	assert.Equal(t, 50, got.ExpertiseYears)
	assert.Equal(t, 1000, got.PracticalProjects)
}

func TestRunCategorySelector(t *testing.T) {
	s := store.NewMemoryStore()
	inactive := false
	src := &catalog.Source{
		Agents: []models.AgentSpec{
			{Name: "Charlie", Category: "content"},
			{Name: "Alice", Category: "content"},
			{Name: "Bob", Category: "content"},
			{Name: "Quiet", Category: "content", IsActive: &inactive},
			{Name: "Dana", Category: "sales"},
		},
		Bundles: []models.BundleSpec{
			{Name: "Top Content", Categories: []string{"content"}, PerCategory: 2},
		},
	}

	summary, err := loader.Run(context.Background(), s, src, loader.Options{Now: fixedClock(t0)})
	require.NoError(t, err)
	assert.Equal(t, 2, summary.Members.Inserted)
	assert.Equal(t, []string{"Alice", "Bob"}, fetchMembers(t, s, "Top Content"))
}

func TestRunExplicitAndCategoryUnion(t *testing.T) {
	s := store.NewMemoryStore()
	src := &catalog.Source{
		Agents: []models.AgentSpec{
			{Name: "Alice", Category: "content"},
			{Name: "Bob", Category: "content"},
		},
		Bundles: []models.BundleSpec{
			// Alice matches both the explicit list and the selector; the
			// union must not double-link her.
			{Name: "Mixed", Members: []string{"Alice"}, Categories: []string{"content"}},
		},
	}

	summary, err := loader.Run(context.Background(), s, src, loader.Options{Now: fixedClock(t0)})
	require.NoError(t, err)
	assert.Equal(t, 2, summary.Members.Inserted)
	assert.Equal(t, []string{"Alice", "Bob"}, fetchMembers(t, s, "Mixed"))
}

func TestRunUnresolvedMemberAborts(t *testing.T) {
	s := store.NewMemoryStore()
	src := &catalog.Source{
		Agents: []models.AgentSpec{{Name: "Real AI"}},
		Bundles: []models.BundleSpec{
			{Name: "Broken Pack", Members: []string{"Ghost AI"}},
		},
	}

	_, err := loader.Run(context.Background(), s, src, loader.Options{Now: fixedClock(t0)})
	var unresolved *models.UnresolvedMember
	require.ErrorAs(t, err, &unresolved)
	assert.Equal(t, "Broken Pack", unresolved.Bundle)
	assert.Equal(t, "Ghost AI", unresolved.Agent)

	// the whole run rolls back, including the agent upserts
	assert.Zero(t, countAgents(t, s))
}

func TestRunFullResetRemovesStaleMembers(t *testing.T) {
	s := store.NewMemoryStore()
	src := &catalog.Source{
		Agents: []models.AgentSpec{
			{Name: "Alice", Category: "content"},
			{Name: "Bob", Category: "content"},
		},
		Bundles: []models.BundleSpec{
			{Name: "Pack", Members: []string{"Alice", "Bob"}},
		},
	}
	_, err := loader.Run(context.Background(), s, src, loader.Options{Now: fixedClock(t0)})
	require.NoError(t, err)

	// the catalog drops Bob from the bundle
	src.Bundles[0].Members = []string{"Alice"}

	incr, err := loader.Run(context.Background(), s, src, loader.Options{
		Mode: models.ModeIncremental, Now: fixedClock(t1),
	})
	require.NoError(t, err)
	assert.Zero(t, incr.Members.Removed)
	assert.Equal(t, []string{"Alice", "Bob"}, fetchMembers(t, s, "Pack"),
		"incremental keeps stale links")

	reset, err := loader.Run(context.Background(), s, src, loader.Options{
		Mode: models.ModeFullReset, Now: fixedClock(t1),
	})
	require.NoError(t, err)
	assert.Equal(t, 2, reset.Members.Removed)
	assert.Equal(t, 2, reset.Agents.Inserted)
	assert.Equal(t, []string{"Alice"}, fetchMembers(t, s, "Pack"))
}

func TestRunDryRunLeavesStoreUntouched(t *testing.T) {
	s := store.NewMemoryStore()
	src := &catalog.Source{Agents: []models.AgentSpec{{Name: "Phantom AI"}}}

	summary, err := loader.Run(context.Background(), s, src, loader.Options{
		DryRun: true, Now: fixedClock(t0),
	})
	require.NoError(t, err)
	assert.Equal(t, models.ModeDryRun, summary.Mode)
	assert.Equal(t, models.EntityCounts{Inserted: 1}, summary.Agents)
	assert.Equal(t, models.Totals{AgentsAfter: 1}, summary.Totals,
		"dry-run reports what a real run would have committed")

	assert.Zero(t, countAgents(t, s), "nothing persists after a dry run")
}

func TestRunValidationErrorAborts(t *testing.T) {
	s := store.NewMemoryStore()
	src := &catalog.Source{Agents: []models.AgentSpec{
		{Name: "Good AI"},
		{Name: "Bad AI", BasePrice: -1},
	}}

	_, err := loader.Run(context.Background(), s, src, loader.Options{Now: fixedClock(t0)})
	var ve *models.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "Bad AI", ve.Record)
	assert.Zero(t, countAgents(t, s))
}

func TestRunCancelledContext(t *testing.T) {
	s := store.NewMemoryStore()
	src := &catalog.Source{Agents: []models.AgentSpec{{Name: "Late AI"}}}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := loader.Run(ctx, s, src, loader.Options{Now: fixedClock(t0)})
	var se *models.StoreError
	require.ErrorAs(t, err, &se)
	assert.Zero(t, countAgents(t, s))
}

func TestRunEmptyCategorySelectorCommits(t *testing.T) {
	s := store.NewMemoryStore()
	src := &catalog.Source{
		Agents: []models.AgentSpec{{Name: "Alice", Category: "content"}},
		Bundles: []models.BundleSpec{
			{Name: "Empty Pack", Categories: []string{"no-such-category"}},
		},
	}

	summary, err := loader.Run(context.Background(), s, src, loader.Options{Now: fixedClock(t0)})
	require.NoError(t, err, "an empty selection is not an error")
	assert.Equal(t, models.EntityCounts{Inserted: 1}, summary.Bundles)
	assert.Zero(t, summary.Members.Inserted)
	assert.Equal(t, models.Totals{AgentsAfter: 1, BundlesAfter: 1}, summary.Totals)
	assert.Empty(t, fetchMembers(t, s, "Empty Pack"))
}
