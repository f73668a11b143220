package catalog

import "github.com/agentbazaar/agentbazaar/loader/pkg/models"

// builtinBundles are the packaged offerings. Members resolve after the
// agent upsert phase: explicit names must exist, category selectors take
// the first N active agents per category in name order.
var builtinBundles = []models.BundleSpec{
	{
		Name:         "Content Engine",
		Description:  "Everything needed to run a content operation end to end.",
		Category:     "content",
		PricingTier:  "professional",
		MonthlyPrice: 199,
		SetupPrice:   499,
		Categories:   []string{"content"},
		IsFeatured:   true,
	},
	{
		Name:         "Revenue Stack",
		Description:  "Outbound, proposals and deal desk in one package.",
		Category:     "sales",
		PricingTier:  "enterprise",
		MonthlyPrice: 449,
		SetupPrice:   1299,
		Members:      []string{"Outbound SDR AI", "Proposal Writer AI", "Deal Desk AI"},
	},
	{
		Name:         "Healthcare Suite",
		Description:  "The full clinical back-office lineup, HIPAA-aware out of the box.",
		Category:     "healthcare",
		PricingTier:  "white_label_enterprise",
		MonthlyPrice: 1499,
		SetupPrice:   4999,
		Categories:   []string{"healthcare"},
		IsFeatured:   true,
	},
	{
		Name:         "Back Office Bundle",
		Description:  "Finance, legal and HR specialists for lean operations teams.",
		Category:     "operations",
		PricingTier:  "premium",
		MonthlyPrice: 899,
		SetupPrice:   2499,
		Categories:   []string{"finance", "legal", "hr"},
		PerCategory:  3,
	},
	{
		Name:         "Growth Bundle",
		Description:  "Marketing strategy plus the content muscle to execute it.",
		Category:     "marketing",
		PricingTier:  "premium",
		MonthlyPrice: 549,
		SetupPrice:   999,
		Members:      []string{"Growth Marketing AI", "SEO Strategist AI"},
		Categories:   []string{"content"},
		PerCategory:  2,
	},
	{
		Name:         "Industry Vertical Pack",
		Description:  "A rotating selection of vertical specialists for agencies.",
		Category:     "industry",
		PricingTier:  "white_label",
		MonthlyPrice: 1999,
		SetupPrice:   2999,
		Categories:   []string{"industry"},
		PerCategory:  12,
	},
}
