package appointment

import (
	"context"
	"time"

	"github.com/google/uuid"

	domain "github.com/BruksfildServices01/groom-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/groom-scheduler/internal/dto"
	"github.com/BruksfildServices01/groom-scheduler/internal/timezone"
)

type ListAppointmentsByDate struct {
	repo domain.Repository
}

func NewListAppointmentsByDate(
	repo domain.Repository,
) *ListAppointmentsByDate {
	return &ListAppointmentsByDate{
		repo: repo,
	}
}

// Execute lists the organization's appointments starting on date (YYYY-MM-DD,
// organization timezone), optionally for one groomer.
func (uc *ListAppointmentsByDate) Execute(
	ctx context.Context,
	organizationID uuid.UUID,
	groomerID *uuid.UUID,
	date string,
) ([]dto.AppointmentListDTO, error) {

	org, err := uc.repo.GetOrganizationByID(ctx, organizationID)
	if err != nil {
		return nil, err
	}

	loc := timezone.Location(org.Timezone)

	day, err := parseDate(date, loc)
	if err != nil {
		return nil, err
	}

	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, loc)
	end := start.AddDate(0, 0, 1)

	appointments, err := uc.repo.ListAppointmentsForPeriod(
		ctx,
		organizationID,
		groomerID,
		start,
		end,
	)
	if err != nil {
		return nil, err
	}

	out := make([]dto.AppointmentListDTO, 0, len(appointments))
	for _, ap := range appointments {
		out = append(out, dto.FromAppointment(ap, loc))
	}

	return out, nil
}
