package catalog

import (
	"fmt"

	"github.com/agentbazaar/agentbazaar/loader/pkg/models"
)

// categoryTemplate expands terse (name, description, years) tuples into
// full agent specs. The template supplies the prompt pattern, prices,
// capabilities and compliance tags; the tier is left blank so the
// normalizer derives it from the declared experience.
type categoryTemplate struct {
	category     string
	promptFmt    string // receives the entry name
	basePrice    float64
	monthlyPrice float64
	capabilities []string
	frameworks   []string
	tags         []string
}

type templateEntry struct {
	name        string
	description string
	years       int
}

var specialistTemplates = []struct {
	tpl     categoryTemplate
	entries []templateEntry
}{
	{
		tpl: categoryTemplate{
			category: "healthcare",
			promptFmt: "You are %s, a healthcare domain specialist. Answer with clinical " +
				"accuracy and always flag when a licensed professional must review.",
			basePrice:    1199,
			monthlyPrice: 349,
			capabilities: []string{"clinical documentation", "coding support", "patient communication"},
			frameworks:   []string{"HIPAA", "HITECH"},
			tags:         []string{"healthcare", "clinical"},
		},
		entries: []templateEntry{
			{"Clinical Notes AI", "Structured SOAP notes from visit transcripts.", 72},
			{"Medical Coding AI", "ICD-10 and CPT code suggestions with audit trails.", 85},
			{"Patient Intake AI", "Pre-visit questionnaires and history summaries.", 61},
			{"Care Plan AI", "Draft care plans aligned to clinical guidelines.", 93},
			{"Claims Review AI", "Claim scrubbing and denial-risk flags before submission.", 78},
		},
	},
	{
		tpl: categoryTemplate{
			category: "finance",
			promptFmt: "You are %s, a financial analysis specialist. Show your working, " +
				"cite assumptions, and never present projections as guarantees.",
			basePrice:    1399,
			monthlyPrice: 399,
			capabilities: []string{"financial modeling", "variance analysis", "board reporting"},
			frameworks:   []string{"SOX", "GAAP"},
			tags:         []string{"finance", "fp&a"},
		},
		entries: []templateEntry{
			{"FP&A Analyst AI", "Budget vs. actuals narratives and driver analysis.", 76},
			{"Treasury AI", "Cash-flow forecasting and covenant monitoring.", 88},
			{"Audit Prep AI", "PBC list management and evidence summarization.", 69},
			{"Investor Relations AI", "Earnings call prep and shareholder Q&A drafts.", 95},
			{"Credit Memo AI", "Underwriting memos from financial statements.", 82},
		},
	},
	{
		tpl: categoryTemplate{
			category: "legal",
			promptFmt: "You are %s, a legal operations specialist. You do not give legal " +
				"advice; you prepare drafts for attorney review.",
			basePrice:    1499,
			monthlyPrice: 449,
			capabilities: []string{"contract review", "clause extraction", "redline summaries"},
			frameworks:   []string{"GDPR", "CCPA"},
			tags:         []string{"legal", "contracts"},
		},
		entries: []templateEntry{
			{"Contract Review AI", "Clause-level risk flags against your playbook.", 84},
			{"NDA Turnaround AI", "Standard NDA markup in minutes, not days.", 58},
			{"Privacy Compliance AI", "Data-processing inventory and DPIA drafts.", 91},
			{"Litigation Summary AI", "Deposition and discovery document summaries.", 73},
		},
	},
	{
		tpl: categoryTemplate{
			category: "hr",
			promptFmt: "You are %s, a people-operations specialist. Keep every output " +
				"bias-aware and compliant with employment law basics.",
			basePrice:    899,
			monthlyPrice: 249,
			capabilities: []string{"job descriptions", "policy drafting", "interview kits"},
			frameworks:   []string{"EEOC"},
			tags:         []string{"hr", "people-ops"},
		},
		entries: []templateEntry{
			{"Recruiting Screen AI", "Structured phone-screen guides and scorecards.", 64},
			{"Onboarding AI", "Role-specific 30-60-90 onboarding plans.", 55},
			{"Policy Handbook AI", "Employee handbook sections kept current.", 77},
			{"Performance Review AI", "Calibrated review drafts from manager notes.", 68},
		},
	},
	{
		tpl: categoryTemplate{
			category: "data",
			promptFmt: "You are %s, a data specialist. Prefer reproducible queries and " +
				"state confidence intervals where relevant.",
			basePrice:    1099,
			monthlyPrice: 329,
			capabilities: []string{"sql generation", "dashboard specs", "metric definitions"},
			frameworks:   []string{"SOC2"},
			tags:         []string{"data", "analytics"},
		},
		entries: []templateEntry{
			{"SQL Copilot AI", "Warehouse-dialect SQL from natural language.", 71},
			{"Metrics Layer AI", "Canonical metric definitions and lineage docs.", 86},
			{"Dashboard Spec AI", "BI dashboard specs with owner and refresh SLAs.", 59},
			{"Data Quality AI", "Anomaly triage and data-contract drafts.", 94},
		},
	},
}

// expandTemplates materializes every template entry into a full spec.
func expandTemplates() []models.AgentSpec {
	var specs []models.AgentSpec
	for _, group := range specialistTemplates {
		tpl := group.tpl
		for _, e := range group.entries {
			specs = append(specs, models.AgentSpec{
				Name:                 e.name,
				Description:          e.description,
				Category:             tpl.category,
				BasePrompt:           fmt.Sprintf(tpl.promptFmt, e.name),
				BasePrice:            tpl.basePrice,
				MonthlyPrice:         tpl.monthlyPrice,
				Capabilities:         tpl.capabilities,
				SpecializationTags:   tpl.tags,
				ComplianceFrameworks: tpl.frameworks,
				ExpertiseYears:       e.years,
				PracticalProjects:    e.years * 30,
			})
		}
	}
	return specs
}
