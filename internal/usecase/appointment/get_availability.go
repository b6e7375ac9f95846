package appointment

import (
	"context"
	"time"

	"github.com/google/uuid"

	domain "github.com/BruksfildServices01/groom-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/groom-scheduler/internal/domain/policy"
	"github.com/BruksfildServices01/groom-scheduler/internal/domain/pricing"
	"github.com/BruksfildServices01/groom-scheduler/internal/models"
	"github.com/BruksfildServices01/groom-scheduler/internal/timezone"
)

const maxRangeDays = 31

type GetAvailabilityInput struct {
	OrganizationID uuid.UUID
	// nil means any capable groomer
	GroomerID *uuid.UUID

	// YYYY-MM-DD in the organization's timezone
	Date string
	Days int

	// Pets is priced against the catalog; without it DurationMin and
	// Categories are used as given.
	Pets        []pricing.PetSelection
	DurationMin int
	Categories  []models.ServiceCategory

	IncludeUnavailable bool
}

type GetAvailability struct {
	repo domain.Repository
	now  func() time.Time
}

func NewGetAvailability(repo domain.Repository) *GetAvailability {
	return &GetAvailability{repo: repo, now: time.Now}
}

// Execute returns the slots of a single day.
func (uc *GetAvailability) Execute(
	ctx context.Context,
	in GetAvailabilityInput,
) ([]domain.TimeSlot, error) {
	in.Days = 1
	return uc.ExecuteRange(ctx, in)
}

// ExecuteRange applies the per-day generation to each of in.Days dates
// independently.
func (uc *GetAvailability) ExecuteRange(
	ctx context.Context,
	in GetAvailabilityInput,
) ([]domain.TimeSlot, error) {

	org, err := uc.repo.GetOrganizationByID(ctx, in.OrganizationID)
	if err != nil {
		return nil, err
	}
	loc := timezone.Location(org.Timezone)

	first, err := parseDate(in.Date, loc)
	if err != nil {
		return nil, err
	}

	days := in.Days
	if days <= 0 {
		days = 1
	}
	if days > maxRangeDays {
		days = maxRangeDays
	}

	durationMin, categories := in.DurationMin, in.Categories
	if len(in.Pets) > 0 {
		total, err := priceSelection(ctx, uc.repo, org.ID, in.Pets)
		if err != nil {
			return nil, err
		}
		durationMin, categories = total.DurationMin, total.Categories()
	}

	slots := []domain.TimeSlot{}
	if durationMin <= 0 {
		return slots, nil
	}

	groomers, err := candidateGroomers(ctx, uc.repo, org, in.GroomerID, categories)
	if err != nil {
		return nil, err
	}
	ids := groomerIDs(groomers)

	p, err := uc.repo.GetBookingPolicies(ctx, org.ID)
	if err != nil {
		return nil, err
	}
	notBefore, notAfter := policy.AdvanceBounds(uc.now(), p)

	for i := 0; i < days; i++ {
		date := time.Date(first.Year(), first.Month(), first.Day()+i, 0, 0, 0, 0, loc)

		wh, err := uc.repo.GetBusinessHours(ctx, org.ID, int(date.Weekday()))
		if err != nil {
			return nil, err
		}

		day, ok := domain.BusinessDayFor(wh, date, loc)
		if !ok {
			continue
		}

		appointments, err := uc.repo.ListBlockingAppointments(ctx, ids, day.Open, day.Close)
		if err != nil {
			return nil, err
		}

		daySlots := domain.GenerateSlots(domain.SlotQuery{
			Day:         day,
			Duration:    time.Duration(durationMin) * time.Minute,
			Granularity: granularity(org),
			Groomers:    ids,
			Busy:        domain.BusyByGroomer(appointments),
			NotBefore:   notBefore,
			NotAfter:    notAfter,
		})

		if !in.IncludeUnavailable {
			daySlots = domain.OnlyAvailable(daySlots)
		}
		slots = append(slots, daySlots...)
	}

	return slots, nil
}
