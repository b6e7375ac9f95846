package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type ServiceCategory string

const (
	CategoryBath       ServiceCategory = "bath"
	CategoryHaircut    ServiceCategory = "haircut"
	CategoryFullGroom  ServiceCategory = "full_groom"
	CategoryNails      ServiceCategory = "nails"
	CategoryDeshedding ServiceCategory = "deshedding"
	CategoryHandStrip  ServiceCategory = "hand_strip"
	CategorySpa        ServiceCategory = "spa"
)

func (c ServiceCategory) Valid() bool {
	switch c {
	case CategoryBath, CategoryHaircut, CategoryFullGroom, CategoryNails,
		CategoryDeshedding, CategoryHandStrip, CategorySpa:
		return true
	}
	return false
}

type Service struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	OrganizationID uuid.UUID `gorm:"type:uuid;index;not null" json:"organization_id"`

	Name        string          `gorm:"size:100;not null" json:"name"`
	Description string          `gorm:"size:255" json:"description"`
	DurationMin int             `json:"duration_min"`
	BasePrice   decimal.Decimal `gorm:"type:numeric(12,2)" json:"base_price"`
	Category    ServiceCategory `gorm:"size:30" json:"category"`
	Active      bool            `json:"active"`

	Modifiers []Modifier `gorm:"foreignKey:ServiceID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"modifiers"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (s *Service) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

type ModifierType string

const (
	ModifierWeight ModifierType = "weight"
	ModifierCoat   ModifierType = "coat"
	ModifierBreed  ModifierType = "breed"
	ModifierAddon  ModifierType = "addon"
)

type Modifier struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	ServiceID uuid.UUID `gorm:"type:uuid;index;not null" json:"service_id"`

	Name            string          `gorm:"size:100" json:"name"`
	Type            ModifierType    `gorm:"size:20" json:"type"`
	DurationDelta   int             `json:"duration_delta"`
	PriceAdjustment decimal.Decimal `gorm:"type:numeric(12,2)" json:"price_adjustment"`
	// percentage of the service base price, never of a running total
	IsPercentage bool `json:"is_percentage"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (m *Modifier) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}
