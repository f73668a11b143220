// Package catalog is the single source of truth for the marketplace
// listing taxonomy. It holds pure data: hand-authored records, category
// template expansions, and programmatic fills, grouped by category and
// assembled into one Source per run.
//
// The package performs no I/O of its own; the optional TOML overlay file
// is decoded in file.go and merged by the caller.
package catalog

import (
	"github.com/agentbazaar/agentbazaar/loader/pkg/models"
)

// Source is the assembled catalog for one load run.
type Source struct {
	Agents  []models.AgentSpec
	Bundles []models.BundleSpec
}

// Default assembles the built-in catalog: hand-authored entries, template
// expansions, and the synthesized industry specialists, plus the bundle
// declarations. Duplicate names anywhere in the assembly are a
// CatalogConflict.
func Default() (*Source, error) {
	s := &Source{}
	s.Agents = append(s.Agents, builtinAgents...)
	s.Agents = append(s.Agents, expandTemplates()...)
	s.Agents = append(s.Agents, industrySpecialists(synthFirst, synthLast)...)
	s.Bundles = append(s.Bundles, builtinBundles...)

	if err := s.checkConflicts(); err != nil {
		return nil, err
	}
	return s, nil
}

// Merge folds overlay records into the source. Names colliding with
// existing records are a CatalogConflict, same as within the built-ins.
func (s *Source) Merge(agents []models.AgentSpec, bundles []models.BundleSpec) error {
	s.Agents = append(s.Agents, agents...)
	s.Bundles = append(s.Bundles, bundles...)
	return s.checkConflicts()
}

// FilterCategories restricts the agent set to the given category tags.
// Bundles are kept; their selectors resolve against whatever survives.
// An empty filter is a no-op.
func (s *Source) FilterCategories(categories []string) {
	if len(categories) == 0 {
		return
	}
	keep := make(map[string]bool, len(categories))
	for _, c := range categories {
		keep[c] = true
	}
	filtered := s.Agents[:0]
	for _, a := range s.Agents {
		if keep[a.Category] {
			filtered = append(filtered, a)
		}
	}
	s.Agents = filtered
}

func (s *Source) checkConflicts() error {
	agents := make(map[string]bool, len(s.Agents))
	for _, a := range s.Agents {
		if agents[a.Name] {
			return &models.CatalogConflict{Kind: "agent", Name: a.Name}
		}
		agents[a.Name] = true
	}
	bundles := make(map[string]bool, len(s.Bundles))
	for _, b := range s.Bundles {
		if bundles[b.Name] {
			return &models.CatalogConflict{Kind: "bundle", Name: b.Name}
		}
		bundles[b.Name] = true
	}
	return nil
}
