package appointment

import (
	"context"
	"time"

	"github.com/google/uuid"

	domain "github.com/BruksfildServices01/groom-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/groom-scheduler/internal/domain/pricing"
	"github.com/BruksfildServices01/groom-scheduler/internal/httperr"
	"github.com/BruksfildServices01/groom-scheduler/internal/models"
)

// priceSelection reloads the active catalog for the selected services and
// prices the booking against it.
func priceSelection(
	ctx context.Context,
	repo domain.Repository,
	organizationID uuid.UUID,
	pets []pricing.PetSelection,
) (pricing.AppointmentTotal, error) {

	var ids []uuid.UUID
	for _, pet := range pets {
		for _, sel := range pet.Services {
			ids = append(ids, sel.ServiceID)
		}
	}

	services, err := repo.ListActiveServices(ctx, organizationID, ids)
	if err != nil {
		return pricing.AppointmentTotal{}, err
	}

	return pricing.ComputeAppointmentTotal(pricing.NewCatalog(services), pets)
}

// candidateGroomers returns the groomers a booking may land on, in resolution
// order. A specific groomer is returned alone (or not at all when inactive);
// otherwise the pool is narrowed by capability.
func candidateGroomers(
	ctx context.Context,
	repo domain.Repository,
	org *models.Organization,
	groomerID *uuid.UUID,
	categories []models.ServiceCategory,
) ([]models.Groomer, error) {

	if groomerID != nil {
		g, err := repo.GetGroomer(ctx, org.ID, *groomerID)
		if err != nil {
			return nil, err
		}
		if !g.Active {
			return []models.Groomer{}, nil
		}
		return []models.Groomer{*g}, nil
	}

	groomers, err := repo.ListActiveGroomers(ctx, org.ID)
	if err != nil {
		return nil, err
	}

	return domain.EligibleGroomers(domain.CapabilityFromOrganization(org), groomers, categories), nil
}

func groomerIDs(groomers []models.Groomer) []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(groomers))
	for _, g := range groomers {
		ids = append(ids, g.ID)
	}
	return ids
}

func granularity(org *models.Organization) time.Duration {
	if org.SlotGranularityMin <= 0 {
		return domain.DefaultGranularity
	}
	return time.Duration(org.SlotGranularityMin) * time.Minute
}

func parseDate(date string, loc *time.Location) (time.Time, error) {
	d, err := time.ParseInLocation("2006-01-02", date, loc)
	if err != nil {
		return time.Time{}, httperr.Invalid("invalid_date", "date must be YYYY-MM-DD")
	}
	return d, nil
}
