package catalog

import "github.com/agentbazaar/agentbazaar/loader/pkg/models"

// builtinAgents are the hand-authored flagship listings. Every field is
// explicit; the normalizer only fills what a record leaves out.
var builtinAgents = []models.AgentSpec{
	// ── Content ─────────────────────────────────────────────
	{
		Name:        "Copywriter Pro AI",
		Description: "Long-form articles, landing pages and ad copy tuned to your brand voice.",
		Category:    "content",
		BasePrompt: "You are a senior copywriter. Write persuasive, on-brand copy. " +
			"Always ask for the target audience and tone before drafting.",
		PricingTier:        "professional",
		BasePrice:          299,
		MonthlyPrice:       79,
		Capabilities:       []string{"blog posts", "landing pages", "ad copy", "email sequences"},
		SpecializationTags: []string{"copywriting", "seo", "brand-voice"},
		IsFeatured:         true,
	},
	{
		Name:        "Social Media Manager AI",
		Description: "Plans, writes and schedules platform-native posts across channels.",
		Category:    "content",
		BasePrompt: "You are a social media strategist. Produce platform-native posts " +
			"with hooks, hashtags and a posting cadence.",
		PricingTier:        "standard",
		BasePrice:          199,
		MonthlyPrice:       59,
		Capabilities:       []string{"content calendars", "post drafts", "hashtag research"},
		SpecializationTags: []string{"social", "scheduling", "engagement"},
	},
	{
		Name:         "Technical Writer AI",
		Description:  "API references, developer guides and release notes from raw engineering notes.",
		Category:     "content",
		BasePrompt:   "You are a technical writer. Turn engineering notes into clear, accurate documentation.",
		PricingTier:  "premium",
		BasePrice:    449,
		MonthlyPrice: 129,
		Capabilities: []string{"api docs", "tutorials", "release notes", "style guides"},
		SpecializationTags: []string{
			"documentation", "developer-experience", "markdown",
		},
	},
	{
		Name:         "Video Script AI",
		Description:  "Scripts for shorts, explainers and product demos with shot-by-shot notes.",
		Category:     "content",
		BasePrompt:   "You are a video scriptwriter. Deliver scripts with hooks, beats and CTA placement.",
		PricingTier:  "standard",
		BasePrice:    179,
		MonthlyPrice: 49,
		Capabilities: []string{"short-form scripts", "explainers", "storyboards"},
	},

	// ── Marketing ───────────────────────────────────────────
	{
		Name:        "Growth Marketing AI",
		Description: "Full-funnel campaign design: channel mix, budget splits, experiment backlog.",
		Category:    "marketing",
		BasePrompt: "You are a growth marketer. Design experiments with hypotheses, " +
			"success metrics and a prioritized backlog.",
		PricingTier:        "enterprise",
		BasePrice:          899,
		MonthlyPrice:       249,
		Capabilities:       []string{"funnel design", "a/b testing", "budget allocation", "attribution"},
		SpecializationTags: []string{"growth", "experimentation", "paid-media"},
		ExpertiseYears:     82,
		PracticalProjects:  2400,
		IsFeatured:         true,
	},
	{
		Name:         "SEO Strategist AI",
		Description:  "Keyword clusters, content briefs and technical audits that move rankings.",
		Category:     "marketing",
		BasePrompt:   "You are an SEO strategist. Produce keyword clusters, briefs and prioritized fixes.",
		PricingTier:  "professional",
		BasePrice:    349,
		MonthlyPrice: 99,
		Capabilities: []string{"keyword research", "content briefs", "technical audits"},
		SpecializationTags: []string{
			"seo", "serp-analysis", "link-building",
		},
	},
	{
		Name:         "Email Campaign AI",
		Description:  "Lifecycle email flows: welcome, winback, cart abandonment, upsell.",
		Category:     "marketing",
		BasePrompt:   "You are an email marketer. Draft lifecycle flows with subject line variants.",
		PricingTier:  "standard",
		BasePrice:    229,
		MonthlyPrice: 69,
		Capabilities: []string{"drip campaigns", "subject line testing", "segmentation"},
	},
	{
		Name:        "Brand Strategist AI",
		Description: "Positioning, messaging hierarchies and competitor narratives for rebrands.",
		Category:    "marketing",
		BasePrompt: "You are a brand strategist. Develop positioning statements and " +
			"messaging pillars backed by competitor analysis.",
		PricingTier:          "white_label",
		BasePrice:            1299,
		MonthlyPrice:         399,
		Capabilities:         []string{"positioning", "messaging", "competitive analysis"},
		SpecializationTags:   []string{"branding", "positioning", "agencies"},
		ModelPricingModifier: 1.25,
	},

	// ── Sales ───────────────────────────────────────────────
	{
		Name:        "Outbound SDR AI",
		Description: "Personalized cold outreach sequences with objection-handling branches.",
		Category:    "sales",
		BasePrompt: "You are a sales development rep. Write personalized multi-touch " +
			"sequences and handle objections.",
		PricingTier:        "professional",
		BasePrice:          399,
		MonthlyPrice:       119,
		Capabilities:       []string{"cold email", "call scripts", "objection handling", "crm notes"},
		SpecializationTags: []string{"outbound", "prospecting", "b2b"},
		IsFeatured:         true,
	},
	{
		Name:         "Proposal Writer AI",
		Description:  "RFP responses and sales proposals assembled from your case-study library.",
		Category:     "sales",
		BasePrompt:   "You are a proposal writer. Assemble compliant, persuasive responses to RFPs.",
		PricingTier:  "premium",
		BasePrice:    549,
		MonthlyPrice: 149,
		Capabilities: []string{"rfp responses", "pricing tables", "executive summaries"},
	},
	{
		Name:         "Deal Desk AI",
		Description:  "Quote configuration, discount guardrails and approval-ready deal summaries.",
		Category:     "sales",
		BasePrompt:   "You are a deal desk analyst. Validate quotes against discount policy.",
		PricingTier:  "enterprise",
		BasePrice:    799,
		MonthlyPrice: 229,
		Capabilities: []string{"cpq", "discount analysis", "approval packets"},
		SpecializationTags: []string{
			"deal-desk", "pricing", "revops",
		},
	},

	// ── Support ─────────────────────────────────────────────
	{
		Name:        "Helpdesk Triage AI",
		Description: "Classifies, prioritizes and drafts first responses for inbound tickets.",
		Category:    "support",
		BasePrompt: "You are a support triage specialist. Classify tickets, set priority " +
			"and draft a first response.",
		PricingTier:        "standard",
		BasePrice:          249,
		MonthlyPrice:       79,
		Capabilities:       []string{"ticket triage", "canned responses", "escalation rules"},
		SpecializationTags: []string{"support", "triage", "zendesk"},
	},
	{
		Name:         "Knowledge Base AI",
		Description:  "Turns resolved tickets into searchable help-center articles.",
		Category:     "support",
		BasePrompt:   "You are a knowledge-base editor. Convert ticket resolutions into help articles.",
		PricingTier:  "professional",
		BasePrice:    329,
		MonthlyPrice: 89,
		Capabilities: []string{"article drafting", "faq generation", "gap analysis"},
	},

	// ── E-commerce ──────────────────────────────────────────
	{
		Name:        "Product Listing AI",
		Description: "Marketplace-ready titles, bullets and descriptions that convert.",
		Category:    "ecommerce",
		BasePrompt: "You are an e-commerce listing specialist. Write titles, bullets and " +
			"descriptions optimized for marketplace search.",
		PricingTier:        "standard",
		BasePrice:          189,
		MonthlyPrice:       59,
		Capabilities:       []string{"product titles", "bullet points", "a+ content"},
		SpecializationTags: []string{"amazon", "shopify", "listings"},
	},
	{
		Name:         "Pricing Analyst AI",
		Description:  "Competitor price tracking summaries and repricing recommendations.",
		Category:     "ecommerce",
		BasePrompt:   "You are a pricing analyst. Recommend price moves with margin impact.",
		PricingTier:  "premium",
		BasePrice:    499,
		MonthlyPrice: 139,
		Capabilities: []string{"price monitoring", "margin analysis", "promotion planning"},
	},
	{
		Name:        "Storefront Concierge AI",
		Description: "White-label shopping assistant embedded in your storefront.",
		Category:    "ecommerce",
		BasePrompt: "You are a shopping concierge. Guide customers to products and answer " +
			"sizing, shipping and return questions.",
		PricingTier:          "white_label_premium",
		BasePrice:            1599,
		MonthlyPrice:         499,
		Capabilities:         []string{"product discovery", "order faq", "returns"},
		SpecializationTags:   []string{"white-label", "conversational-commerce"},
		ModelPricingModifier: 1.4,
		IsFeatured:           true,
	},
}
