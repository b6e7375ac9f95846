package featuregate

import (
	"slices"

	"github.com/BruksfildServices01/groom-scheduler/internal/httperr"
	"github.com/BruksfildServices01/groom-scheduler/internal/models"
)

const FeatureMultiGroomer = "multi_groomer"

// Gate is a read-only lookup of what an organization's plan allows.
type Gate interface {
	Enabled(org *models.Organization, feature string) bool
}

type PlanGate struct {
	features map[string][]string
}

func NewPlanGate() *PlanGate {
	return &PlanGate{
		features: map[string][]string{
			models.PlanBasic:    {},
			models.PlanPro:      {FeatureMultiGroomer},
			models.PlanBusiness: {FeatureMultiGroomer},
		},
	}
}

func (g *PlanGate) Enabled(org *models.Organization, feature string) bool {
	if org == nil {
		return false
	}
	plan := org.Plan
	if plan == "" {
		plan = models.PlanBasic
	}
	return slices.Contains(g.features[plan], feature)
}

// Require returns feature_not_available when the plan lacks the feature.
func Require(g Gate, org *models.Organization, feature string) error {
	if g == nil || g.Enabled(org, feature) {
		return nil
	}
	return httperr.ErrBusiness("feature_not_available")
}

var _ Gate = (*PlanGate)(nil)
