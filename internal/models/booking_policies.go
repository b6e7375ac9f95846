package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type ConfirmationMode string

const (
	ModeAutoConfirm ConfirmationMode = "auto_confirm"
	ModeRequestOnly ConfirmationMode = "request_only"
)

type BookingPolicies struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	OrganizationID uuid.UUID `gorm:"type:uuid;uniqueIndex;not null" json:"organization_id"`

	DepositRequired   bool            `json:"deposit_required"`
	DepositPercentage decimal.Decimal `gorm:"type:numeric(5,2)" json:"deposit_percentage"`
	DepositMinimum    decimal.Decimal `gorm:"type:numeric(12,2)" json:"deposit_minimum"`

	CancellationWindowHours       int             `json:"cancellation_window_hours"`
	LateCancellationFeePercentage decimal.Decimal `gorm:"type:numeric(5,2)" json:"late_cancellation_fee_percentage"`
	NoShowFeePercentage           decimal.Decimal `gorm:"type:numeric(5,2)" json:"no_show_fee_percentage"`

	NewClientMode      ConfirmationMode `gorm:"size:20" json:"new_client_mode"`
	ExistingClientMode ConfirmationMode `gorm:"size:20" json:"existing_client_mode"`

	MinAdvanceMinutes     int `json:"min_advance_minutes"`
	MaxAdvanceDays        int `json:"max_advance_days"`
	MaxPetsPerAppointment int `json:"max_pets_per_appointment"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (p *BookingPolicies) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// DefaultBookingPolicies is used for organizations that never saved their own.
func DefaultBookingPolicies(orgID uuid.UUID) *BookingPolicies {
	return &BookingPolicies{
		OrganizationID:                orgID,
		DepositRequired:               false,
		DepositPercentage:             decimal.Zero,
		DepositMinimum:                decimal.Zero,
		CancellationWindowHours:       24,
		LateCancellationFeePercentage: decimal.Zero,
		NoShowFeePercentage:           decimal.Zero,
		NewClientMode:                 ModeAutoConfirm,
		ExistingClientMode:            ModeAutoConfirm,
		MinAdvanceMinutes:             0,
		MaxAdvanceDays:                0,
		MaxPetsPerAppointment:         3,
	}
}
