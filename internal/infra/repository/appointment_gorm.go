package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/BruksfildServices01/groom-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/groom-scheduler/internal/httperr"
	"github.com/BruksfildServices01/groom-scheduler/internal/models"
)

type AppointmentGormRepository struct {
	db *gorm.DB
}

func NewAppointmentGormRepository(db *gorm.DB) *AppointmentGormRepository {
	return &AppointmentGormRepository{db: db}
}

func notFound(err error, code string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return httperr.ErrBusiness(code)
	}
	return err
}

// --------------------------------------------------
// Organization
// --------------------------------------------------

func (r *AppointmentGormRepository) GetOrganizationByID(
	ctx context.Context,
	id uuid.UUID,
) (*models.Organization, error) {

	var org models.Organization
	if err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&org).Error; err != nil {
		return nil, notFound(err, "organization_not_found")
	}
	return &org, nil
}

func (r *AppointmentGormRepository) GetOrganizationBySlug(
	ctx context.Context,
	slug string,
) (*models.Organization, error) {

	var org models.Organization
	if err := r.db.WithContext(ctx).
		Where("slug = ?", slug).
		First(&org).Error; err != nil {
		return nil, notFound(err, "organization_not_found")
	}
	return &org, nil
}

// GetBookingPolicies falls back to the defaults when the organization never
// saved its own.
func (r *AppointmentGormRepository) GetBookingPolicies(
	ctx context.Context,
	organizationID uuid.UUID,
) (*models.BookingPolicies, error) {

	var p models.BookingPolicies
	res := r.db.WithContext(ctx).
		Where("organization_id = ?", organizationID).
		Limit(1).
		Find(&p)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return models.DefaultBookingPolicies(organizationID), nil
	}
	return &p, nil
}

// GetBusinessHours returns nil without error for a weekday with no row.
func (r *AppointmentGormRepository) GetBusinessHours(
	ctx context.Context,
	organizationID uuid.UUID,
	weekday int,
) (*models.BusinessHours, error) {

	var wh models.BusinessHours
	res := r.db.WithContext(ctx).
		Where("organization_id = ? AND weekday = ?", organizationID, weekday).
		Limit(1).
		Find(&wh)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, nil
	}
	return &wh, nil
}

// --------------------------------------------------
// Catalog
// --------------------------------------------------

func (r *AppointmentGormRepository) ListActiveServices(
	ctx context.Context,
	organizationID uuid.UUID,
	ids []uuid.UUID,
) ([]models.Service, error) {

	var services []models.Service
	if len(ids) == 0 {
		return services, nil
	}

	if err := r.db.WithContext(ctx).
		Preload("Modifiers").
		Where("organization_id = ? AND active = ? AND id IN ?", organizationID, true, ids).
		Find(&services).Error; err != nil {
		return nil, err
	}
	return services, nil
}

// --------------------------------------------------
// Groomers
// --------------------------------------------------

func (r *AppointmentGormRepository) ListActiveGroomers(
	ctx context.Context,
	organizationID uuid.UUID,
) ([]models.Groomer, error) {

	var groomers []models.Groomer
	if err := r.db.WithContext(ctx).
		Where("organization_id = ? AND active = ?", organizationID, true).
		Order("created_at ASC, id ASC").
		Find(&groomers).Error; err != nil {
		return nil, err
	}
	return groomers, nil
}

func (r *AppointmentGormRepository) GetGroomer(
	ctx context.Context,
	organizationID uuid.UUID,
	groomerID uuid.UUID,
) (*models.Groomer, error) {

	var g models.Groomer
	if err := r.db.WithContext(ctx).
		Where("id = ? AND organization_id = ?", groomerID, organizationID).
		First(&g).Error; err != nil {
		return nil, notFound(err, "groomer_not_found")
	}
	return &g, nil
}

// --------------------------------------------------
// Availability
// --------------------------------------------------

func (r *AppointmentGormRepository) ListBlockingAppointments(
	ctx context.Context,
	groomerIDs []uuid.UUID,
	start time.Time,
	end time.Time,
) ([]models.Appointment, error) {

	var apps []models.Appointment
	if len(groomerIDs) == 0 {
		return apps, nil
	}

	if err := r.db.WithContext(ctx).
		Select("id", "groomer_id", "status", "start_time", "end_time").
		Where(
			"groomer_id IN ? AND status NOT IN ? AND start_time < ? AND end_time > ?",
			groomerIDs,
			domain.NonBlockingStatuses(),
			end.UTC(),
			start.UTC(),
		).
		Order("start_time ASC").
		Find(&apps).Error; err != nil {
		return nil, err
	}

	return apps, nil
}

// --------------------------------------------------
// Clients
// --------------------------------------------------

func (r *AppointmentGormRepository) CountClientAppointments(
	ctx context.Context,
	organizationID uuid.UUID,
	clientID uuid.UUID,
) (int64, error) {

	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Where(
			"organization_id = ? AND client_id = ? AND status <> ?",
			organizationID,
			clientID,
			string(domain.StatusCancelled),
		).
		Count(&count).Error
	return count, err
}

// --------------------------------------------------
// Appointment (create / conflict)
// --------------------------------------------------

// CreateAppointmentIfFree runs the overlap check and the insert in one
// transaction. Callers serialize per groomer around it; on postgres the
// appointments_no_overlap constraint backs it up.
func (r *AppointmentGormRepository) CreateAppointmentIfFree(
	ctx context.Context,
	ap *models.Appointment,
) error {

	ap.StartTime = ap.StartTime.UTC()
	ap.EndTime = ap.EndTime.UTC()

	conflict := httperr.SlotConflictError{
		GroomerID: ap.GroomerID,
		Start:     ap.StartTime,
		End:       ap.EndTime,
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var ids []uuid.UUID
		if err := tx.
			Model(&models.Appointment{}).
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where(
				"groomer_id = ? AND status NOT IN ? AND start_time < ? AND end_time > ?",
				ap.GroomerID,
				domain.NonBlockingStatuses(),
				ap.EndTime,
				ap.StartTime,
			).
			Pluck("id", &ids).Error; err != nil {
			return err
		}

		if len(ids) > 0 {
			return conflict
		}

		if err := tx.Create(ap).Error; err != nil {
			if httperr.IsExclusionConflict(err) {
				return conflict
			}
			return err
		}
		return nil
	})
}

// --------------------------------------------------
// Appointment (state change)
// --------------------------------------------------

func (r *AppointmentGormRepository) GetAppointment(
	ctx context.Context,
	organizationID uuid.UUID,
	appointmentID uuid.UUID,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := r.db.WithContext(ctx).
		Preload("Pets.Services").
		Where("id = ? AND organization_id = ?", appointmentID, organizationID).
		First(&ap).Error; err != nil {
		return nil, notFound(err, "appointment_not_found")
	}
	return &ap, nil
}

func (r *AppointmentGormRepository) UpdateAppointmentLocked(
	ctx context.Context,
	organizationID uuid.UUID,
	appointmentID uuid.UUID,
	fn func(ap *models.Appointment) error,
) (*models.Appointment, error) {

	var ap models.Appointment

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ? AND organization_id = ?", appointmentID, organizationID).
			First(&ap).Error; err != nil {
			return notFound(err, "appointment_not_found")
		}

		if err := fn(&ap); err != nil {
			return err
		}

		return tx.Omit(clause.Associations).Save(&ap).Error
	})
	if err != nil {
		return nil, err
	}

	return &ap, nil
}

func (r *AppointmentGormRepository) ListAppointmentsForPeriod(
	ctx context.Context,
	organizationID uuid.UUID,
	groomerID *uuid.UUID,
	start time.Time,
	end time.Time,
) ([]models.Appointment, error) {

	var apps []models.Appointment

	q := r.db.WithContext(ctx).
		Preload("Pets.Services").
		Where(
			"organization_id = ? AND start_time >= ? AND start_time < ?",
			organizationID,
			start.UTC(),
			end.UTC(),
		)
	if groomerID != nil {
		q = q.Where("groomer_id = ?", *groomerID)
	}

	if err := q.Order("start_time ASC").Find(&apps).Error; err != nil {
		return nil, err
	}

	return apps, nil
}

// Compile-time check
var _ domain.Repository = (*AppointmentGormRepository)(nil)
