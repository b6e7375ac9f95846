package appointment

import (
	"log"
	"slices"

	"github.com/BruksfildServices01/groom-scheduler/internal/models"
)

// Matcher decides whether a groomer's specialties cover a service category.
type Matcher interface {
	Allows(specialties []string, category models.ServiceCategory) bool
}

// MatcherFunc adapts a plain function to Matcher.
type MatcherFunc func(specialties []string, category models.ServiceCategory) bool

func (f MatcherFunc) Allows(specialties []string, category models.ServiceCategory) bool {
	return f(specialties, category)
}

var DefaultBaseline = []string{string(models.CategoryBath), string(models.CategoryNails)}

// CapabilityTable maps specialty tags to the categories they unlock. Baseline
// categories are open to every groomer.
type CapabilityTable struct {
	Specialties map[string][]string
	Baseline    []string
}

// CapabilityFromOrganization builds the table from the organization's
// configuration. An organization that configured neither table nor baseline
// gets no filtering at all; one whose configuration does not decode is
// restricted to the default baseline.
func CapabilityFromOrganization(org *models.Organization) Matcher {
	table, baseline, err := org.CapabilityConfig()
	if err != nil {
		log.Printf("organization %s: invalid capability config: %v", org.ID, err)
		return CapabilityTable{Baseline: DefaultBaseline}
	}

	if len(table) == 0 && len(baseline) == 0 {
		return MatcherFunc(func([]string, models.ServiceCategory) bool { return true })
	}
	if len(baseline) == 0 {
		baseline = DefaultBaseline
	}
	return CapabilityTable{Specialties: table, Baseline: baseline}
}

func (t CapabilityTable) Allows(specialties []string, category models.ServiceCategory) bool {
	c := string(category)
	if slices.Contains(t.Baseline, c) {
		return true
	}
	for _, s := range specialties {
		if slices.Contains(t.Specialties[s], c) {
			return true
		}
	}
	return false
}

// EligibleGroomers keeps active groomers whose capabilities cover every
// category of the booking, preserving input order.
func EligibleGroomers(m Matcher, groomers []models.Groomer, categories []models.ServiceCategory) []models.Groomer {
	out := make([]models.Groomer, 0, len(groomers))
	for _, g := range groomers {
		if !g.Active {
			continue
		}
		tags := g.SpecialtyTags()
		ok := true
		for _, c := range categories {
			if !m.Allows(tags, c) {
				ok = false
				break
			}
		}
		if ok {
			out = append(out, g)
		}
	}
	return out
}
