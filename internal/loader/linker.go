package loader

import (
	"context"
	"errors"
	"time"

	"github.com/agentbazaar/agentbazaar/loader/internal/store"
	"github.com/agentbazaar/agentbazaar/loader/pkg/models"
)

// linkMembers resolves every bundle's selector to concrete agents and
// writes the link rows. Explicit names must exist by now (both upsert
// phases have run); a miss is fatal. Category selectors take the first N
// active agents per category in name order and an empty match is fine.
//
// Incremental mode only ever adds rows. Full-reset replaces each bundle's
// membership wholesale.
func linkMembers(ctx context.Context, tx store.Tx, bundles []models.Bundle, mode models.Mode, now time.Time) (models.MemberCounts, error) {
	var counts models.MemberCounts

	for i := range bundles {
		b := &bundles[i]

		if mode == models.ModeFullReset {
			removed, err := tx.DeleteBundleMembers(ctx, b.Name)
			if err != nil {
				return counts, err
			}
			counts.Removed += removed
		}

		resolved, err := resolveSelector(ctx, tx, b)
		if err != nil {
			return counts, err
		}

		present := make(map[string]bool)
		existing, err := tx.ListBundleMembers(ctx, b.Name)
		if err != nil {
			return counts, err
		}
		for _, m := range existing {
			present[m.AgentName] = true
		}

		for _, agentName := range resolved {
			if present[agentName] {
				continue
			}
			member := &models.BundleMember{
				BundleName: b.Name,
				AgentName:  agentName,
				CreatedAt:  now,
			}
			if err := tx.InsertBundleMember(ctx, member); err != nil {
				return counts, err
			}
			counts.Inserted++
		}
	}
	return counts, nil
}

// resolveSelector returns the deduplicated union of explicit members and
// category picks, in resolution order.
func resolveSelector(ctx context.Context, tx store.Tx, b *models.Bundle) ([]string, error) {
	seen := make(map[string]bool)
	var resolved []string
	add := func(name string) {
		if !seen[name] {
			seen[name] = true
			resolved = append(resolved, name)
		}
	}

	for _, name := range b.Selector.Names {
		_, err := tx.GetAgentByName(ctx, name)
		var notFound *store.ErrNotFound
		if errors.As(err, &notFound) {
			return nil, &models.UnresolvedMember{Bundle: b.Name, Agent: name}
		}
		if err != nil {
			return nil, err
		}
		add(name)
	}

	for _, category := range b.Selector.Categories {
		agents, err := tx.ListAgentsByCategory(ctx, category, b.Selector.Limit())
		if err != nil {
			return nil, err
		}
		for _, a := range agents {
			add(a.Name)
		}
	}
	return resolved, nil
}
