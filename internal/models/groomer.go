package models

import (
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Groomer struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	OrganizationID uuid.UUID `gorm:"type:uuid;index;not null" json:"organization_id"`

	Name   string `gorm:"size:100;not null" json:"name"`
	Phone  string `gorm:"size:20" json:"phone"`
	Active bool   `json:"active"`

	// ["specialty", ...]
	Specialties datatypes.JSON `json:"specialties"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (g *Groomer) BeforeCreate(tx *gorm.DB) error {
	if g.ID == uuid.Nil {
		g.ID = uuid.New()
	}
	return nil
}

// BeforeSave rejects a specialties column that is not a JSON string list.
func (g *Groomer) BeforeSave(tx *gorm.DB) error {
	if len(g.Specialties) == 0 {
		return nil
	}
	var tags []string
	if err := json.Unmarshal(g.Specialties, &tags); err != nil {
		return fmt.Errorf("specialties: %w", err)
	}
	return nil
}

// SpecialtyTags returns nil for a malformed column, so the groomer only
// qualifies through baseline categories.
func (g *Groomer) SpecialtyTags() []string {
	var out []string
	if len(g.Specialties) == 0 {
		return out
	}
	if err := json.Unmarshal(g.Specialties, &out); err != nil {
		log.Printf("groomer %s: invalid specialties: %v", g.ID, err)
		return nil
	}
	return out
}
