// Package normalize turns raw catalog specs into canonical records ready
// for upsert. Every function here is pure: no store access, no I/O, and
// normalizing an already-canonical record is a no-op.
package normalize

import (
	"math"
	"strings"

	"github.com/agentbazaar/agentbazaar/loader/pkg/models"
)

const (
	// DefaultModelName backs any agent that does not declare its own model.
	// Opaque to the loader; the marketplace runtime interprets it.
	DefaultModelName = "gpt-4o"

	// DefaultCollaborationRate is assigned when a record declares no rate.
	DefaultCollaborationRate = 0.35

	// Catalog quality floor. Declared expertise below these values is
	// silently raised and reported as a quality_uplift warning.
	MinExpertiseYears    = 50
	MinPracticalProjects = 1000
)

// Normalizer applies catalog policy to raw records.
type Normalizer struct {
	// DefaultModel overrides DefaultModelName when set.
	DefaultModel string
}

// New returns a Normalizer with the stock defaults.
func New() *Normalizer {
	return &Normalizer{DefaultModel: DefaultModelName}
}

// Agent produces a canonical agent from a raw spec. The returned warnings
// are quality_uplift notes in "quality_uplift:<name>:<field>" form.
func (n *Normalizer) Agent(spec models.AgentSpec) (models.Agent, []string, error) {
	if strings.TrimSpace(spec.Name) == "" {
		return models.Agent{}, nil, &models.ValidationError{
			Record: "(unnamed)", Field: "name", Reason: "missing agent name",
		}
	}

	if err := checkPrice(spec.Name, "base_price", spec.BasePrice); err != nil {
		return models.Agent{}, nil, err
	}
	if err := checkPrice(spec.Name, "monthly_price", spec.MonthlyPrice); err != nil {
		return models.Agent{}, nil, err
	}

	modifier := spec.ModelPricingModifier
	if modifier == 0 {
		modifier = 1.0
	}
	if modifier <= 0 || math.IsNaN(modifier) || math.IsInf(modifier, 0) {
		return models.Agent{}, nil, &models.ValidationError{
			Record: spec.Name, Field: "model_pricing_modifier",
			Reason: "must be a positive finite number",
		}
	}

	var warnings []string

	years := spec.ExpertiseYears
	if years > 0 && years < MinExpertiseYears {
		years = MinExpertiseYears
		warnings = append(warnings, "quality_uplift:"+spec.Name+":expertise_years")
	}
	projects := spec.PracticalProjects
	if projects > 0 && projects < MinPracticalProjects {
		projects = MinPracticalProjects
		warnings = append(warnings, "quality_uplift:"+spec.Name+":practical_projects")
	}

	rate := DefaultCollaborationRate
	if spec.CollaborationRate != nil {
		rate = *spec.CollaborationRate
		if rate < 0 || rate > 1 || math.IsNaN(rate) {
			return models.Agent{}, nil, &models.ValidationError{
				Record: spec.Name, Field: "collaboration_rate",
				Reason: "must be a fraction in [0,1]",
			}
		}
	}

	// Explicit tier wins; otherwise derive from the (uplifted) experience.
	tier := models.PricingTier(spec.PricingTier)
	if spec.PricingTier == "" {
		tier = TierForExperience(years)
	} else if !tier.Valid() {
		return models.Agent{}, nil, &models.ValidationError{
			Record: spec.Name, Field: "pricing_tier",
			Reason: "unknown tier " + spec.PricingTier,
		}
	}

	approval := models.ApprovalApproved
	if spec.ApprovalStatus != "" {
		approval = models.ApprovalStatus(spec.ApprovalStatus)
		if !approval.Valid() {
			return models.Agent{}, nil, &models.ValidationError{
				Record: spec.Name, Field: "approval_status",
				Reason: "unknown status " + spec.ApprovalStatus,
			}
		}
	}

	active := true
	if spec.IsActive != nil {
		active = *spec.IsActive
	}

	model := spec.DefaultModel
	if model == "" {
		model = n.DefaultModel
		if model == "" {
			model = DefaultModelName
		}
	}

	return models.Agent{
		Name:                 spec.Name,
		Description:          strings.TrimSpace(spec.Description),
		Category:             strings.TrimSpace(spec.Category),
		BasePrompt:           spec.BasePrompt,
		PricingTier:          tier,
		BasePrice:            spec.BasePrice,
		MonthlyPrice:         spec.MonthlyPrice,
		Capabilities:         capabilitiesString(spec.Capabilities, spec.CapabilitiesText),
		SpecializationTags:   CanonicalTags(spec.SpecializationTags),
		DefaultModel:         model,
		ModelPricingModifier: modifier,
		ExpertiseYears:       years,
		PracticalProjects:    projects,
		CollaborationRate:    rate,
		ComplianceFrameworks: CanonicalTags(spec.ComplianceFrameworks),
		IsActive:             active,
		IsFeatured:           spec.IsFeatured,
		ApprovalStatus:       approval,
	}, warnings, nil
}

// Bundle produces a canonical bundle from a raw spec.
func (n *Normalizer) Bundle(spec models.BundleSpec) (models.Bundle, error) {
	if strings.TrimSpace(spec.Name) == "" {
		return models.Bundle{}, &models.ValidationError{
			Record: "(unnamed)", Field: "name", Reason: "missing bundle name",
		}
	}
	if err := checkPrice(spec.Name, "monthly_price", spec.MonthlyPrice); err != nil {
		return models.Bundle{}, err
	}
	if err := checkPrice(spec.Name, "setup_price", spec.SetupPrice); err != nil {
		return models.Bundle{}, err
	}
	if spec.PerCategory < 0 {
		return models.Bundle{}, &models.ValidationError{
			Record: spec.Name, Field: "per_category", Reason: "must not be negative",
		}
	}

	tier := models.PricingTier(spec.PricingTier)
	if spec.PricingTier == "" {
		tier = models.TierStandard
	} else if !tier.Valid() {
		return models.Bundle{}, &models.ValidationError{
			Record: spec.Name, Field: "pricing_tier",
			Reason: "unknown tier " + spec.PricingTier,
		}
	}

	active := true
	if spec.IsActive != nil {
		active = *spec.IsActive
	}

	return models.Bundle{
		Name:         spec.Name,
		Description:  strings.TrimSpace(spec.Description),
		Category:     strings.TrimSpace(spec.Category),
		PricingTier:  tier,
		MonthlyPrice: spec.MonthlyPrice,
		SetupPrice:   spec.SetupPrice,
		IsActive:     active,
		IsFeatured:   spec.IsFeatured,
		Selector: models.MemberSelector{
			Names:       CanonicalTags(spec.Members),
			Categories:  CanonicalTags(spec.Categories),
			PerCategory: spec.PerCategory,
		},
	}, nil
}

// TierForExperience maps declared expertise years to a pricing tier.
// The step function is monotone; zero (undeclared) lands on basic.
func TierForExperience(years int) models.PricingTier {
	switch {
	case years < 50:
		return models.TierBasic
	case years < 60:
		return models.TierStandard
	case years < 70:
		return models.TierProfessional
	case years < 80:
		return models.TierPremium
	case years < 90:
		return models.TierEnterprise
	case years < 100:
		return models.TierExpert
	default:
		return models.TierExecutive
	}
}

// CanonicalTags flattens, trims and deduplicates a tag list while keeping
// first-seen order. Elements may themselves be comma-separated strings, so
// both authoring forms collapse to the same canonical list.
func CanonicalTags(raw []string) []string {
	if len(raw) == 0 {
		return nil
	}
	seen := make(map[string]bool, len(raw))
	var out []string
	for _, chunk := range raw {
		for _, tok := range strings.Split(chunk, ",") {
			tok = strings.TrimSpace(tok)
			if tok == "" || seen[tok] {
				continue
			}
			seen[tok] = true
			out = append(out, tok)
		}
	}
	return out
}

func capabilitiesString(list []string, text string) string {
	if text != "" {
		return strings.TrimSpace(text)
	}
	trimmed := make([]string, 0, len(list))
	for _, c := range list {
		if c = strings.TrimSpace(c); c != "" {
			trimmed = append(trimmed, c)
		}
	}
	return strings.Join(trimmed, ", ")
}

func checkPrice(record, field string, v float64) error {
	if v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
		return &models.ValidationError{
			Record: record, Field: field,
			Reason: "must be a finite non-negative number",
		}
	}
	return nil
}
