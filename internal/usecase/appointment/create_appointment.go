package appointment

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"

	"github.com/BruksfildServices01/groom-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/groom-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/groom-scheduler/internal/domain/policy"
	"github.com/BruksfildServices01/groom-scheduler/internal/domain/pricing"
	"github.com/BruksfildServices01/groom-scheduler/internal/featuregate"
	"github.com/BruksfildServices01/groom-scheduler/internal/httperr"
	"github.com/BruksfildServices01/groom-scheduler/internal/infra/lock"
	"github.com/BruksfildServices01/groom-scheduler/internal/models"
	"github.com/BruksfildServices01/groom-scheduler/internal/notify"
	"github.com/BruksfildServices01/groom-scheduler/internal/timezone"
)

// ======================================================
// INPUT
// ======================================================

type CreateAppointmentInput struct {
	OrganizationID uuid.UUID
	ClientID       uuid.UUID
	// used only for the booking notification
	ClientPhone string

	// nil books any capable groomer
	GroomerID *uuid.UUID
	Start     time.Time
	Pets      []pricing.PetSelection

	// set by the staff API
	ActorID *uuid.UUID
}

// ======================================================
// USE CASE
// ======================================================

type CreateAppointment struct {
	repo     domain.Repository
	locker   lock.Locker
	gate     featuregate.Gate
	audit    *audit.Dispatcher
	notifier *notify.Dispatcher
	now      func() time.Time
}

func NewCreateAppointment(
	repo domain.Repository,
	locker lock.Locker,
	gate featuregate.Gate,
	audit *audit.Dispatcher,
	notifier *notify.Dispatcher,
) *CreateAppointment {
	return &CreateAppointment{
		repo:     repo,
		locker:   locker,
		gate:     gate,
		audit:    audit,
		notifier: notifier,
		now:      time.Now,
	}
}

// ======================================================
// EXECUTE
// ======================================================

// Execute prices the booking from the current catalog, then commits it to the
// first candidate groomer that is still free. No total or availability
// computed earlier by the caller is trusted.
func (uc *CreateAppointment) Execute(
	ctx context.Context,
	in CreateAppointmentInput,
) (*models.Appointment, error) {

	// --------------------------------------------------
	// 1. Input
	// --------------------------------------------------
	if in.ClientID == uuid.Nil {
		return nil, httperr.Invalid("client_required", "client_id is required")
	}
	if in.Start.IsZero() {
		return nil, httperr.Invalid("invalid_start", "start time is required")
	}

	org, err := uc.repo.GetOrganizationByID(ctx, in.OrganizationID)
	if err != nil {
		return nil, err
	}
	loc := timezone.Location(org.Timezone)

	p, err := uc.repo.GetBookingPolicies(ctx, org.ID)
	if err != nil {
		return nil, err
	}

	if err := policy.CheckPetCount(len(in.Pets), p); err != nil {
		return nil, err
	}

	now := uc.now().UTC()
	start := in.Start.UTC().Truncate(time.Minute)

	if err := policy.CheckAdvanceWindow(start, now, p); err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 2. Staff-only features
	// --------------------------------------------------
	if in.ActorID != nil && in.GroomerID != nil {
		if err := featuregate.Require(uc.gate, org, featuregate.FeatureMultiGroomer); err != nil {
			return nil, err
		}
	}

	// --------------------------------------------------
	// 3. Price from the live catalog
	// --------------------------------------------------
	total, err := priceSelection(ctx, uc.repo, org.ID, in.Pets)
	if err != nil {
		return nil, err
	}

	end := start.Add(time.Duration(total.DurationMin) * time.Minute)

	// --------------------------------------------------
	// 4. Business hours + lunch
	// --------------------------------------------------
	localStart := start.In(loc)
	wh, err := uc.repo.GetBusinessHours(ctx, org.ID, int(localStart.Weekday()))
	if err != nil {
		return nil, err
	}
	day, ok := domain.BusinessDayFor(wh, localStart, loc)
	if !ok || !day.Fits(start, end) {
		return nil, httperr.Invalid("outside_business_hours", "appointment does not fit the business hours")
	}

	// --------------------------------------------------
	// 5. Candidates
	// --------------------------------------------------
	groomers, err := candidateGroomers(ctx, uc.repo, org, in.GroomerID, total.Categories())
	if err != nil {
		return nil, err
	}
	if len(groomers) == 0 {
		if in.GroomerID != nil {
			return nil, httperr.Invalid("groomer_inactive", "groomer is not bookable")
		}
		return nil, httperr.Invalid("no_capable_groomer", "no groomer offers the selected services")
	}

	// --------------------------------------------------
	// 6. Policies
	// --------------------------------------------------
	seen, err := uc.repo.CountClientAppointments(ctx, org.ID, in.ClientID)
	if err != nil {
		return nil, err
	}
	mode := policy.ResolveConfirmationMode(seen == 0, p)
	status := domain.InitialStatus(mode)
	deposit := policy.ComputeDeposit(total.Price, p)

	// --------------------------------------------------
	// 7. Commit to the first free groomer
	// --------------------------------------------------
	var (
		ap       *models.Appointment
		assigned models.Groomer
		lastErr  error
	)

	for _, g := range groomers {
		candidate := buildAppointment(org.ID, in.ClientID, g.ID, status, start, end, total, deposit, now)

		err := uc.commit(ctx, candidate)
		if err == nil {
			ap = candidate
			assigned = g
			break
		}
		if !httperr.IsSlotConflict(err) {
			return nil, err
		}
		lastErr = err
	}

	if ap == nil {
		uc.audit.Dispatch(audit.Event{
			OrganizationID: org.ID,
			UserID:         in.ActorID,
			Action:         audit.ActionAppointmentConflict,
			Entity:         audit.EntityAppointment,
			Metadata: map[string]any{
				"groomer_id": in.GroomerID,
				"start":      start,
				"end":        end,
			},
		})

		if in.GroomerID != nil {
			return nil, lastErr
		}
		return nil, httperr.SlotConflictError{Start: start, End: end}
	}

	// --------------------------------------------------
	// 8. Audit + notifications
	// --------------------------------------------------
	uc.audit.Dispatch(audit.Event{
		OrganizationID: org.ID,
		UserID:         in.ActorID,
		Action:         audit.ActionAppointmentCreated,
		Entity:         audit.EntityAppointment,
		EntityID:       &ap.ID,
		Metadata: map[string]any{
			"groomer_id":     ap.GroomerID,
			"status":         ap.Status,
			"total_amount":   ap.TotalAmount,
			"deposit_amount": ap.DepositAmount,
		},
	})

	uc.notifier.Dispatch(notify.ClientMessage(org, ap, in.ClientPhone, loc))
	uc.notifier.Dispatch(notify.StaffAlert(org, ap, &assigned, loc))

	return ap, nil
}

// commit holds the groomer's lock across the check-and-insert.
func (uc *CreateAppointment) commit(ctx context.Context, ap *models.Appointment) error {
	unlock, err := uc.locker.Lock(ctx, "groomer:"+ap.GroomerID.String())
	if err != nil {
		return err
	}
	defer unlock()

	return uc.repo.CreateAppointmentIfFree(ctx, ap)
}

func buildAppointment(
	organizationID uuid.UUID,
	clientID uuid.UUID,
	groomerID uuid.UUID,
	status domain.Status,
	start time.Time,
	end time.Time,
	total pricing.AppointmentTotal,
	deposit decimal.Decimal,
	now time.Time,
) *models.Appointment {

	ap := &models.Appointment{
		OrganizationID: organizationID,
		ClientID:       clientID,
		GroomerID:      groomerID,
		Status:         string(status),
		StartTime:      start,
		EndTime:        end,
		DurationMin:    total.DurationMin,
		TotalAmount:    total.Price,
		DepositAmount:  deposit,
		TipAmount:      decimal.Zero,
		PaymentStatus:  models.PaymentUnpaid,
		Pets:           make([]models.AppointmentPet, 0, len(total.Pets)),
	}
	if status == domain.StatusConfirmed {
		ap.ConfirmedAt = &now
	}

	for _, pet := range total.Pets {
		row := models.AppointmentPet{
			PetID:    pet.PetID,
			PetName:  pet.PetName,
			Services: make([]models.AppointmentService, 0, len(pet.Services)),
		}
		for _, line := range pet.Services {
			mods, _ := json.Marshal(line.ModifierIDs)
			row.Services = append(row.Services, models.AppointmentService{
				ServiceID:     line.ServiceID,
				ServiceName:   line.ServiceName,
				ModifierIDs:   datatypes.JSON(mods),
				FinalDuration: line.DurationMin,
				FinalPrice:    line.Price,
			})
		}
		ap.Pets = append(ap.Pets, row)
	}

	return ap
}
