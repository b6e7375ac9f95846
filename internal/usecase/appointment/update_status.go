package appointment

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/groom-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/groom-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/groom-scheduler/internal/domain/policy"
	"github.com/BruksfildServices01/groom-scheduler/internal/httperr"
	"github.com/BruksfildServices01/groom-scheduler/internal/models"
)

type UpdateAppointmentStatusInput struct {
	OrganizationID uuid.UUID
	AppointmentID  uuid.UUID
	Status         string
	Notes          string
	ActorID        *uuid.UUID
}

type UpdateAppointmentStatus struct {
	repo  domain.Repository
	audit *audit.Dispatcher
	now   func() time.Time
}

func NewUpdateAppointmentStatus(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *UpdateAppointmentStatus {
	return &UpdateAppointmentStatus{
		repo:  repo,
		audit: audit,
		now:   time.Now,
	}
}

// Execute applies one state-machine step. Cancelling inside the policy
// window or marking a no-show records the matching fee.
func (uc *UpdateAppointmentStatus) Execute(
	ctx context.Context,
	in UpdateAppointmentStatusInput,
) (*models.Appointment, error) {

	to, ok := domain.ParseStatus(in.Status)
	if !ok {
		return nil, httperr.Invalid("invalid_status", "unknown status "+in.Status)
	}

	p, err := uc.repo.GetBookingPolicies(ctx, in.OrganizationID)
	if err != nil {
		return nil, err
	}

	now := uc.now().UTC()
	var from string

	ap, err := uc.repo.UpdateAppointmentLocked(
		ctx,
		in.OrganizationID,
		in.AppointmentID,
		func(ap *models.Appointment) error {
			from = ap.Status

			if err := domain.Transition(ap, to, in.Notes, now); err != nil {
				return err
			}

			switch to {
			case domain.StatusCancelled:
				hours := ap.StartTime.Sub(now).Hours()
				ap.CancellationFee = policy.ComputeCancellationFee(ap.TotalAmount, hours, p)
			case domain.StatusNoShow:
				ap.NoShowFee = policy.ComputeNoShowFee(ap.TotalAmount, p)
			}
			return nil
		},
	)
	if err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		OrganizationID: in.OrganizationID,
		UserID:         in.ActorID,
		Action:         audit.ActionAppointmentStatusChanged,
		Entity:         audit.EntityAppointment,
		EntityID:       &ap.ID,
		Metadata: map[string]any{
			"from":  from,
			"to":    ap.Status,
			"notes": in.Notes,
		},
	})

	return ap, nil
}
