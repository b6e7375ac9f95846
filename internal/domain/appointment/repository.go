package appointment

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/groom-scheduler/internal/models"
)

type Repository interface {
	// -------- Organization --------
	GetOrganizationByID(
		ctx context.Context,
		id uuid.UUID,
	) (*models.Organization, error)

	GetOrganizationBySlug(
		ctx context.Context,
		slug string,
	) (*models.Organization, error)

	GetBookingPolicies(
		ctx context.Context,
		organizationID uuid.UUID,
	) (*models.BookingPolicies, error)

	GetBusinessHours(
		ctx context.Context,
		organizationID uuid.UUID,
		weekday int,
	) (*models.BusinessHours, error)

	// -------- Catalog --------
	ListActiveServices(
		ctx context.Context,
		organizationID uuid.UUID,
		ids []uuid.UUID,
	) ([]models.Service, error)

	// -------- Groomers --------
	ListActiveGroomers(
		ctx context.Context,
		organizationID uuid.UUID,
	) ([]models.Groomer, error)

	GetGroomer(
		ctx context.Context,
		organizationID uuid.UUID,
		groomerID uuid.UUID,
	) (*models.Groomer, error)

	// -------- Availability --------
	ListBlockingAppointments(
		ctx context.Context,
		groomerIDs []uuid.UUID,
		start time.Time,
		end time.Time,
	) ([]models.Appointment, error)

	// -------- Clients --------
	CountClientAppointments(
		ctx context.Context,
		organizationID uuid.UUID,
		clientID uuid.UUID,
	) (int64, error)

	// -------- Appointment (create / conflict) --------

	// CreateAppointmentIfFree inserts ap only if no slot-blocking appointment
	// of the same groomer overlaps it; otherwise it returns SlotConflictError
	// and writes nothing.
	CreateAppointmentIfFree(
		ctx context.Context,
		ap *models.Appointment,
	) error

	// -------- Appointment (state change) --------
	GetAppointment(
		ctx context.Context,
		organizationID uuid.UUID,
		appointmentID uuid.UUID,
	) (*models.Appointment, error)

	// UpdateAppointmentLocked loads the row for update, applies fn and saves
	// it in one transaction. Nothing is written when fn fails.
	UpdateAppointmentLocked(
		ctx context.Context,
		organizationID uuid.UUID,
		appointmentID uuid.UUID,
		fn func(ap *models.Appointment) error,
	) (*models.Appointment, error)

	ListAppointmentsForPeriod(
		ctx context.Context,
		organizationID uuid.UUID,
		groomerID *uuid.UUID,
		start time.Time,
		end time.Time,
	) ([]models.Appointment, error)
}
