// Package models defines the persisted record shapes for the AgentBazaar
// catalog: agents, bundles, and bundle membership links, plus the raw
// declarative specs the catalog source is written in.
package models

import (
	"math"
	"time"
)

// ── Pricing Tiers ────────────────────────────────────────────

// PricingTier classifies an agent or bundle for billing. The set is closed;
// anything outside it is rejected during normalization.
type PricingTier string

const (
	TierBasic                PricingTier = "basic"
	TierStandard             PricingTier = "standard"
	TierProfessional         PricingTier = "professional"
	TierPremium              PricingTier = "premium"
	TierEnterprise           PricingTier = "enterprise"
	TierExpert               PricingTier = "expert"
	TierExecutive            PricingTier = "executive"
	TierUltimate             PricingTier = "ultimate"
	TierCuttingEdge          PricingTier = "cutting_edge"
	TierWhiteLabel           PricingTier = "white_label"
	TierWhiteLabelPremium    PricingTier = "white_label_premium"
	TierWhiteLabelEnterprise PricingTier = "white_label_enterprise"
)

var validTiers = map[PricingTier]bool{
	TierBasic: true, TierStandard: true, TierProfessional: true,
	TierPremium: true, TierEnterprise: true, TierExpert: true,
	TierExecutive: true, TierUltimate: true, TierCuttingEdge: true,
	TierWhiteLabel: true, TierWhiteLabelPremium: true, TierWhiteLabelEnterprise: true,
}

// Valid reports whether t is a member of the closed tier set.
func (t PricingTier) Valid() bool { return validTiers[t] }

// ── Approval Status ──────────────────────────────────────────

type ApprovalStatus string

const (
	ApprovalPending  ApprovalStatus = "pending"
	ApprovalApproved ApprovalStatus = "approved"
	ApprovalRejected ApprovalStatus = "rejected"
)

func (s ApprovalStatus) Valid() bool {
	return s == ApprovalPending || s == ApprovalApproved || s == ApprovalRejected
}

// ── Agent ────────────────────────────────────────────────────

// Agent is a persisted marketplace listing. Name is the natural key and
// compares byte-exact; ID is a surrogate assigned at insert.
type Agent struct {
	ID          string `json:"id" db:"id"`
	Name        string `json:"name" db:"name"`
	Description string `json:"description" db:"description"`
	Category    string `json:"category" db:"category"`
	BasePrompt  string `json:"base_prompt" db:"base_prompt"`

	// Commercial
	PricingTier  PricingTier `json:"pricing_tier" db:"pricing_tier"`
	BasePrice    float64     `json:"base_price" db:"base_price"`
	MonthlyPrice float64     `json:"monthly_price" db:"monthly_price"`

	// Capability
	Capabilities         string   `json:"capabilities,omitempty" db:"capabilities"`
	SpecializationTags   []string `json:"specialization_tags,omitempty"`
	DefaultModel         string   `json:"default_model" db:"default_model"`
	ModelPricingModifier float64  `json:"model_pricing_modifier" db:"model_pricing_modifier"`

	// Expertise profile. Zero means "not declared"; when declared, the
	// normalizer enforces the catalog quality floor (years ≥ 50,
	// projects ≥ 1000).
	ExpertiseYears       int      `json:"expertise_years,omitempty" db:"expertise_years"`
	PracticalProjects    int      `json:"practical_projects,omitempty" db:"practical_projects"`
	CollaborationRate    float64  `json:"collaboration_rate" db:"collaboration_rate"`
	ComplianceFrameworks []string `json:"compliance_frameworks,omitempty"`

	// Status
	IsActive       bool           `json:"is_active" db:"is_active"`
	IsFeatured     bool           `json:"is_featured" db:"is_featured"`
	ApprovalStatus ApprovalStatus `json:"approval_status" db:"approval_status"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// EqualMutable reports whether every mutable field of a and b matches.
// Name, ID and CreatedAt are excluded; the upsert engine never touches them.
// Prices and rates compare to six significant figures so a float that
// round-tripped through the store does not register as a change.
func (a *Agent) EqualMutable(b *Agent) bool {
	return a.Description == b.Description &&
		a.Category == b.Category &&
		a.BasePrompt == b.BasePrompt &&
		a.PricingTier == b.PricingTier &&
		FloatEqual(a.BasePrice, b.BasePrice) &&
		FloatEqual(a.MonthlyPrice, b.MonthlyPrice) &&
		a.Capabilities == b.Capabilities &&
		stringsEqual(a.SpecializationTags, b.SpecializationTags) &&
		a.DefaultModel == b.DefaultModel &&
		FloatEqual(a.ModelPricingModifier, b.ModelPricingModifier) &&
		a.ExpertiseYears == b.ExpertiseYears &&
		a.PracticalProjects == b.PracticalProjects &&
		FloatEqual(a.CollaborationRate, b.CollaborationRate) &&
		stringsEqual(a.ComplianceFrameworks, b.ComplianceFrameworks) &&
		a.IsActive == b.IsActive &&
		a.IsFeatured == b.IsFeatured &&
		a.ApprovalStatus == b.ApprovalStatus
}

// ── Bundle ───────────────────────────────────────────────────

// Bundle is a named grouping of agents sold as a package.
type Bundle struct {
	ID          string `json:"id" db:"id"`
	Name        string `json:"name" db:"name"`
	Description string `json:"description" db:"description"`
	Category    string `json:"category" db:"category"`

	PricingTier  PricingTier `json:"pricing_tier" db:"pricing_tier"`
	MonthlyPrice float64     `json:"monthly_price" db:"monthly_price"`
	SetupPrice   float64     `json:"setup_price" db:"setup_price"`

	IsActive   bool `json:"is_active" db:"is_active"`
	IsFeatured bool `json:"is_featured" db:"is_featured"`

	// Selector is the declarative member spec. Resolved by the linker after
	// both upsert phases; not persisted as a column. Same convention as the
	// non-persisted control fields elsewhere in this package.
	Selector MemberSelector `json:"-" db:"-"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// EqualMutable reports whether every mutable persisted field matches.
func (b *Bundle) EqualMutable(o *Bundle) bool {
	return b.Description == o.Description &&
		b.Category == o.Category &&
		b.PricingTier == o.PricingTier &&
		FloatEqual(b.MonthlyPrice, o.MonthlyPrice) &&
		FloatEqual(b.SetupPrice, o.SetupPrice) &&
		b.IsActive == o.IsActive &&
		b.IsFeatured == o.IsFeatured
}

// DefaultPerCategory is how many agents a category selector picks when the
// bundle does not set its own limit.
const DefaultPerCategory = 8

// MemberSelector declares how a bundle's members are resolved: an explicit
// name list, a set of category selectors (up to PerCategory agents each,
// name-ascending), or the union of both.
type MemberSelector struct {
	Names       []string `json:"names,omitempty" toml:"members"`
	Categories  []string `json:"categories,omitempty" toml:"categories"`
	PerCategory int      `json:"per_category,omitempty" toml:"per_category"`
}

// Limit returns the effective per-category cap.
func (s MemberSelector) Limit() int {
	if s.PerCategory > 0 {
		return s.PerCategory
	}
	return DefaultPerCategory
}

// ── Bundle Member ────────────────────────────────────────────

// BundleMember links one agent into one bundle. The (bundle_name, agent_name)
// pair is the composite natural key.
type BundleMember struct {
	BundleName string    `json:"bundle_name" db:"bundle_name"`
	AgentName  string    `json:"agent_name" db:"agent_name"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
}

// ── Raw Catalog Specs ────────────────────────────────────────

// AgentSpec is a raw catalog record before normalization. All fields except
// Name are optional; the normalizer fills defaults and validates ranges.
// The same shape is decoded from operator-supplied TOML overlay files.
type AgentSpec struct {
	Name        string `toml:"name" json:"name"`
	Description string `toml:"description" json:"description"`
	Category    string `toml:"category" json:"category"`
	BasePrompt  string `toml:"base_prompt" json:"base_prompt"`

	PricingTier  string  `toml:"pricing_tier" json:"pricing_tier,omitempty"`
	BasePrice    float64 `toml:"base_price" json:"base_price"`
	MonthlyPrice float64 `toml:"monthly_price" json:"monthly_price"`

	// Capabilities may be authored as a list or as one comma-separated
	// string; the string form wins when both are present.
	Capabilities     []string `toml:"capabilities" json:"capabilities,omitempty"`
	CapabilitiesText string   `toml:"capabilities_text" json:"capabilities_text,omitempty"`

	SpecializationTags   []string `toml:"specialization_tags" json:"specialization_tags,omitempty"`
	DefaultModel         string   `toml:"default_model" json:"default_model,omitempty"`
	ModelPricingModifier float64  `toml:"model_pricing_modifier" json:"model_pricing_modifier,omitempty"`

	ExpertiseYears       int      `toml:"expertise_years" json:"expertise_years,omitempty"`
	PracticalProjects    int      `toml:"practical_projects" json:"practical_projects,omitempty"`
	CollaborationRate    *float64 `toml:"collaboration_rate" json:"collaboration_rate,omitempty"`
	ComplianceFrameworks []string `toml:"compliance_frameworks" json:"compliance_frameworks,omitempty"`

	IsActive       *bool  `toml:"is_active" json:"is_active,omitempty"`
	IsFeatured     bool   `toml:"is_featured" json:"is_featured,omitempty"`
	ApprovalStatus string `toml:"approval_status" json:"approval_status,omitempty"`
}

// BundleSpec is a raw bundle declaration before normalization.
type BundleSpec struct {
	Name        string `toml:"name" json:"name"`
	Description string `toml:"description" json:"description"`
	Category    string `toml:"category" json:"category"`

	PricingTier  string  `toml:"pricing_tier" json:"pricing_tier,omitempty"`
	MonthlyPrice float64 `toml:"monthly_price" json:"monthly_price"`
	SetupPrice   float64 `toml:"setup_price" json:"setup_price"`

	IsActive   *bool `toml:"is_active" json:"is_active,omitempty"`
	IsFeatured bool  `toml:"is_featured" json:"is_featured,omitempty"`

	Members     []string `toml:"members" json:"members,omitempty"`
	Categories  []string `toml:"categories" json:"categories,omitempty"`
	PerCategory int      `toml:"per_category" json:"per_category,omitempty"`
}

// ── Run Modes & Outcomes ─────────────────────────────────────

// Mode selects how a load run treats pre-existing rows.
type Mode string

const (
	// ModeIncremental adds and updates rows but never deletes.
	ModeIncremental Mode = "incremental"
	// ModeFullReset wipes members, bundles, then agents before reloading.
	ModeFullReset Mode = "full-reset"
	// ModeDryRun validates and resolves everything, then rolls back.
	ModeDryRun Mode = "dry-run"
)

func (m Mode) Valid() bool {
	return m == ModeIncremental || m == ModeFullReset || m == ModeDryRun
}

// Outcome is the per-record result of an upsert.
type Outcome string

const (
	OutcomeInserted  Outcome = "inserted"
	OutcomeUpdated   Outcome = "updated"
	OutcomeUnchanged Outcome = "unchanged"
)

// ── Run Summary ──────────────────────────────────────────────

// EntityCounts tallies upsert outcomes for one entity type.
type EntityCounts struct {
	Inserted  int `json:"inserted"`
	Updated   int `json:"updated"`
	Unchanged int `json:"unchanged"`
}

// Add folds one outcome into the tally.
func (c *EntityCounts) Add(o Outcome) {
	switch o {
	case OutcomeInserted:
		c.Inserted++
	case OutcomeUpdated:
		c.Updated++
	case OutcomeUnchanged:
		c.Unchanged++
	}
}

// MemberCounts tallies membership link writes.
type MemberCounts struct {
	Inserted int `json:"inserted"`
	Removed  int `json:"removed"`
}

// Totals is the post-commit table sizes.
type Totals struct {
	AgentsAfter  int `json:"agents_after"`
	BundlesAfter int `json:"bundles_after"`
}

// Summary is the machine-parseable report emitted after every run,
// committed or not.
type Summary struct {
	Mode       Mode         `json:"mode"`
	Agents     EntityCounts `json:"agents"`
	Bundles    EntityCounts `json:"bundles"`
	Members    MemberCounts `json:"members"`
	Totals     Totals       `json:"totals"`
	Warnings   []string     `json:"warnings"`
	DurationMs int64        `json:"duration_ms"`
}

// ── Helpers ──────────────────────────────────────────────────

// FloatEqual compares two floats to six significant figures.
func FloatEqual(a, b float64) bool {
	if a == b {
		return true
	}
	scale := math.Max(math.Abs(a), math.Abs(b))
	return math.Abs(a-b) <= scale*1e-6
}

func stringsEqual(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
