package loader

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/agentbazaar/agentbazaar/loader/internal/store"
	"github.com/agentbazaar/agentbazaar/loader/pkg/models"
)

// upsertAgents writes each canonical agent by natural key. Records land in
// exactly one of inserted/updated/unchanged; any store error aborts the run.
// ID and CreatedAt are never touched once a row exists.
func upsertAgents(ctx context.Context, tx store.Tx, agents []models.Agent, now time.Time) (models.EntityCounts, error) {
	var counts models.EntityCounts
	for i := range agents {
		a := &agents[i]

		existing, err := tx.GetAgentByName(ctx, a.Name)
		var notFound *store.ErrNotFound
		switch {
		case errors.As(err, &notFound):
			a.ID = uuid.NewString()
			a.CreatedAt = now
			a.UpdatedAt = now
			if err := tx.InsertAgent(ctx, a); err != nil {
				return counts, err
			}
			counts.Add(models.OutcomeInserted)

		case err != nil:
			return counts, err

		case existing.EqualMutable(a):
			counts.Add(models.OutcomeUnchanged)

		default:
			a.ID = existing.ID
			a.CreatedAt = existing.CreatedAt
			a.UpdatedAt = now
			if err := tx.UpdateAgent(ctx, a); err != nil {
				return counts, err
			}
			log.Debug().Str("agent", a.Name).Msg("agent updated")
			counts.Add(models.OutcomeUpdated)
		}
	}
	return counts, nil
}

// upsertBundles is the bundle-side twin of upsertAgents.
func upsertBundles(ctx context.Context, tx store.Tx, bundles []models.Bundle, now time.Time) (models.EntityCounts, error) {
	var counts models.EntityCounts
	for i := range bundles {
		b := &bundles[i]

		existing, err := tx.GetBundleByName(ctx, b.Name)
		var notFound *store.ErrNotFound
		switch {
		case errors.As(err, &notFound):
			b.ID = uuid.NewString()
			b.CreatedAt = now
			b.UpdatedAt = now
			if err := tx.InsertBundle(ctx, b); err != nil {
				return counts, err
			}
			counts.Add(models.OutcomeInserted)

		case err != nil:
			return counts, err

		case existing.EqualMutable(b):
			counts.Add(models.OutcomeUnchanged)

		default:
			b.ID = existing.ID
			b.CreatedAt = existing.CreatedAt
			b.UpdatedAt = now
			if err := tx.UpdateBundle(ctx, b); err != nil {
				return counts, err
			}
			log.Debug().Str("bundle", b.Name).Msg("bundle updated")
			counts.Add(models.OutcomeUpdated)
		}
	}
	return counts, nil
}
