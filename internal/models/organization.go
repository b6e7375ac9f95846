package models

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	PlanBasic    = "basic"
	PlanPro      = "pro"
	PlanBusiness = "business"
)

type Organization struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name     string    `gorm:"size:100;not null" json:"name"`
	Slug     string    `gorm:"size:100;uniqueIndex;not null" json:"slug"`
	Timezone string    `gorm:"size:64" json:"timezone"`

	SlotGranularityMin int    `gorm:"default:30" json:"slot_granularity_min"`
	StaffPhone         string `gorm:"size:20" json:"staff_phone"`
	Plan               string `gorm:"size:20;default:'basic'" json:"plan"`

	// {"specialty": ["category", ...]}
	SpecialtyCategories datatypes.JSON `json:"specialty_categories"`
	// categories every active groomer may take regardless of specialties
	BaselineCategories datatypes.JSON `json:"baseline_categories"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (o *Organization) BeforeCreate(tx *gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	return nil
}

// BeforeSave rejects capability columns that do not decode.
func (o *Organization) BeforeSave(tx *gorm.DB) error {
	_, _, err := o.CapabilityConfig()
	return err
}

// CapabilityConfig decodes the specialty table and baseline categories.
// Empty columns decode to empty values.
func (o *Organization) CapabilityConfig() (map[string][]string, []string, error) {
	table := map[string][]string{}
	var baseline []string

	if len(o.SpecialtyCategories) > 0 {
		if err := json.Unmarshal(o.SpecialtyCategories, &table); err != nil {
			return nil, nil, fmt.Errorf("specialty_categories: %w", err)
		}
	}
	if len(o.BaselineCategories) > 0 {
		if err := json.Unmarshal(o.BaselineCategories, &baseline); err != nil {
			return nil, nil, fmt.Errorf("baseline_categories: %w", err)
		}
	}
	return table, baseline, nil
}

type BusinessHours struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	OrganizationID uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_business_hours_org_weekday;not null" json:"organization_id"`

	Weekday int `gorm:"uniqueIndex:idx_business_hours_org_weekday" json:"weekday"`

	OpenTime   string `gorm:"size:5" json:"open_time"`
	CloseTime  string `gorm:"size:5" json:"close_time"`
	LunchStart string `gorm:"size:5" json:"lunch_start"`
	LunchEnd   string `gorm:"size:5" json:"lunch_end"`
	Active     bool   `json:"active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (b *BusinessHours) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}
