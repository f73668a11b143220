package loader

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/agentbazaar/agentbazaar/loader/internal/catalog"
	"github.com/agentbazaar/agentbazaar/loader/internal/normalize"
	"github.com/agentbazaar/agentbazaar/loader/internal/store"
	"github.com/agentbazaar/agentbazaar/loader/pkg/models"
)

const tracerName = "github.com/agentbazaar/agentbazaar/loader/internal/loader"

// Options configures a single load run.
type Options struct {
	Mode   models.Mode
	DryRun bool

	// Now is the clock used for row timestamps. Defaults to time.Now.
	Now func() time.Time
}

// Run executes one catalog load inside a single store transaction.
//
// Phase order: optional full-reset wipe, agent upserts, bundle upserts,
// membership linking, totals. Any error rolls the transaction back and
// leaves the store exactly as it was. Dry-run does all the work and then
// rolls back too, so its summary reflects what a real run would report.
func Run(ctx context.Context, st store.Store, src *catalog.Source, opts Options) (*models.Summary, error) {
	now := time.Now
	if opts.Now != nil {
		now = opts.Now
	}
	mode := opts.Mode
	if mode == "" {
		mode = models.ModeIncremental
	}

	ctx, span := otel.Tracer(tracerName).Start(ctx, "catalog.load",
		trace.WithAttributes(
			attribute.String("load.mode", string(mode)),
			attribute.Bool("load.dry_run", opts.DryRun),
			attribute.Int("load.agents", len(src.Agents)),
			attribute.Int("load.bundles", len(src.Bundles)),
		))
	defer span.End()

	start := now()
	summary := &models.Summary{
		Mode:     mode,
		Warnings: []string{},
	}
	if opts.DryRun {
		summary.Mode = models.ModeDryRun
	}

	agents, bundles, warnings, err := normalizeSource(src)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	summary.Warnings = append(summary.Warnings, warnings...)
	for _, w := range warnings {
		log.Warn().Str("warning", w).Msg("normalization warning")
	}

	tx, err := st.Begin(ctx)
	if err != nil {
		span.RecordError(err)
		return nil, classify("begin", err)
	}

	if err := runPhases(ctx, tx, agents, bundles, mode, now(), summary); err != nil {
		_ = tx.Rollback(ctx)
		span.RecordError(err)
		return nil, err
	}

	if opts.DryRun {
		if err := tx.Rollback(ctx); err != nil {
			span.RecordError(err)
			return nil, classify("rollback", err)
		}
	} else {
		if err := tx.Commit(ctx); err != nil {
			span.RecordError(err)
			return nil, classify("commit", err)
		}
	}

	summary.DurationMs = now().Sub(start).Milliseconds()
	return summary, nil
}

func runPhases(ctx context.Context, tx store.Tx, agents []models.Agent, bundles []models.Bundle, mode models.Mode, now time.Time, summary *models.Summary) error {
	if err := ctx.Err(); err != nil {
		return classify("run", err)
	}

	if mode == models.ModeFullReset {
		removed, err := tx.DeleteAllBundleMembers(ctx)
		if err != nil {
			return classify("reset members", err)
		}
		summary.Members.Removed += removed
		if _, err := tx.DeleteAllBundles(ctx); err != nil {
			return classify("reset bundles", err)
		}
		if _, err := tx.DeleteAllAgents(ctx); err != nil {
			return classify("reset agents", err)
		}
	}

	agentCounts, err := upsertAgents(ctx, tx, agents, now)
	if err != nil {
		return classify("upsert agents", err)
	}
	summary.Agents = agentCounts

	if err := ctx.Err(); err != nil {
		return classify("run", err)
	}

	bundleCounts, err := upsertBundles(ctx, tx, bundles, now)
	if err != nil {
		return classify("upsert bundles", err)
	}
	summary.Bundles = bundleCounts

	memberCounts, err := linkMembers(ctx, tx, bundles, mode, now)
	if err != nil {
		return classify("link members", err)
	}
	summary.Members.Inserted += memberCounts.Inserted
	summary.Members.Removed += memberCounts.Removed

	totalAgents, err := tx.CountAgents(ctx)
	if err != nil {
		return classify("count agents", err)
	}
	totalBundles, err := tx.CountBundles(ctx)
	if err != nil {
		return classify("count bundles", err)
	}
	summary.Totals = models.Totals{AgentsAfter: totalAgents, BundlesAfter: totalBundles}
	return nil
}

// normalizeSource canonicalizes every raw record up front so that a run
// touches the store only with fully validated data.
func normalizeSource(src *catalog.Source) ([]models.Agent, []models.Bundle, []string, error) {
	n := normalize.New()

	agents := make([]models.Agent, 0, len(src.Agents))
	var warnings []string
	for _, spec := range src.Agents {
		agent, w, err := n.Agent(spec)
		if err != nil {
			return nil, nil, nil, err
		}
		agents = append(agents, agent)
		warnings = append(warnings, w...)
	}

	bundles := make([]models.Bundle, 0, len(src.Bundles))
	for _, spec := range src.Bundles {
		bundle, err := n.Bundle(spec)
		if err != nil {
			return nil, nil, nil, err
		}
		bundles = append(bundles, bundle)
	}
	return agents, bundles, warnings, nil
}

// classify wraps errors that are not already one of the loader's typed
// kinds so callers can map every failure to an exit code.
func classify(op string, err error) error {
	var (
		ve *models.ValidationError
		cc *models.CatalogConflict
		um *models.UnresolvedMember
		ie *models.IntegrityError
		se *models.StoreError
	)
	if errors.As(err, &ve) || errors.As(err, &cc) || errors.As(err, &um) ||
		errors.As(err, &ie) || errors.As(err, &se) {
		return err
	}
	return &models.StoreError{Op: op, Err: err}
}
