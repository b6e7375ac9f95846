package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	PaymentUnpaid      = "unpaid"
	PaymentDepositPaid = "deposit_paid"
	PaymentPaid        = "paid"
	PaymentRefunded    = "refunded"
)

type Appointment struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`

	OrganizationID uuid.UUID `gorm:"type:uuid;index;not null" json:"organization_id"`
	ClientID       uuid.UUID `gorm:"type:uuid;index;not null" json:"client_id"`
	// always a concrete groomer once persisted
	GroomerID uuid.UUID `gorm:"type:uuid;index;not null" json:"groomer_id"`

	Status string `gorm:"size:20;index" json:"status"`

	StartTime   time.Time `gorm:"index" json:"start_time"`
	EndTime     time.Time `json:"end_time"`
	DurationMin int       `json:"duration_min"`

	Pets []AppointmentPet `gorm:"foreignKey:AppointmentID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"pets"`

	TotalAmount     decimal.Decimal `gorm:"type:numeric(12,2)" json:"total_amount"`
	DepositAmount   decimal.Decimal `gorm:"type:numeric(12,2)" json:"deposit_amount"`
	DepositPaid     bool            `json:"deposit_paid"`
	TipAmount       decimal.Decimal `gorm:"type:numeric(12,2)" json:"tip_amount"`
	PaymentStatus   string          `gorm:"size:20" json:"payment_status"`
	CancellationFee decimal.Decimal `gorm:"type:numeric(12,2)" json:"cancellation_fee"`
	NoShowFee       decimal.Decimal `gorm:"type:numeric(12,2)" json:"no_show_fee"`

	StatusNotes string `gorm:"size:255" json:"status_notes"`

	ConfirmedAt *time.Time `json:"confirmed_at"`
	CheckedInAt *time.Time `json:"checked_in_at"`
	StartedAt   *time.Time `json:"started_at"`
	CompletedAt *time.Time `json:"completed_at"`
	CancelledAt *time.Time `json:"cancelled_at"`
	NoShowAt    *time.Time `json:"no_show_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (a *Appointment) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}

type AppointmentPet struct {
	ID            uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	AppointmentID uuid.UUID  `gorm:"type:uuid;index;not null" json:"appointment_id"`
	PetID         *uuid.UUID `gorm:"type:uuid" json:"pet_id,omitempty"`
	PetName       string     `gorm:"size:100" json:"pet_name,omitempty"`

	Services []AppointmentService `gorm:"foreignKey:AppointmentPetID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"services"`
}

func (p *AppointmentPet) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// AppointmentService snapshots the priced line at commit time; it is never
// recomputed when the catalog changes later.
type AppointmentService struct {
	ID               uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	AppointmentPetID uuid.UUID `gorm:"type:uuid;index;not null" json:"appointment_pet_id"`

	ServiceID     uuid.UUID       `gorm:"type:uuid;not null" json:"service_id"`
	ServiceName   string          `gorm:"size:100" json:"service_name"`
	ModifierIDs   datatypes.JSON  `json:"modifier_ids"`
	FinalDuration int             `json:"final_duration"`
	FinalPrice    decimal.Decimal `gorm:"type:numeric(12,2)" json:"final_price"`
}

func (s *AppointmentService) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}
