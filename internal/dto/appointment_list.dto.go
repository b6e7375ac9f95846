package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/BruksfildServices01/groom-scheduler/internal/models"
)

type AppointmentListDTO struct {
	ID        uuid.UUID `json:"id"`
	ClientID  uuid.UUID `json:"client_id"`
	GroomerID uuid.UUID `json:"groomer_id"`
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
	Status    string    `json:"status"`

	PetNames     []string        `json:"pet_names"`
	ServiceNames []string        `json:"service_names"`
	TotalAmount  decimal.Decimal `json:"total_amount"`
	DepositPaid  bool            `json:"deposit_paid"`
}

// FromAppointment flattens an appointment for the staff day view, with times
// in the organization's timezone.
func FromAppointment(ap models.Appointment, loc *time.Location) AppointmentListDTO {
	out := AppointmentListDTO{
		ID:           ap.ID,
		ClientID:     ap.ClientID,
		GroomerID:    ap.GroomerID,
		StartTime:    ap.StartTime.In(loc),
		EndTime:      ap.EndTime.In(loc),
		Status:       ap.Status,
		PetNames:     []string{},
		ServiceNames: []string{},
		TotalAmount:  ap.TotalAmount,
		DepositPaid:  ap.DepositPaid,
	}
	for _, pet := range ap.Pets {
		out.PetNames = append(out.PetNames, pet.PetName)
		for _, svc := range pet.Services {
			out.ServiceNames = append(out.ServiceNames, svc.ServiceName)
		}
	}
	return out
}
