// Package pricing computes effective price and duration of services under
// their selected modifiers. Everything here is pure: no state, no I/O.
package pricing

import (
	"slices"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/BruksfildServices01/groom-scheduler/internal/httperr"
	"github.com/BruksfildServices01/groom-scheduler/internal/models"
)

var hundred = decimal.NewFromInt(100)

type Total struct {
	DurationMin int             `json:"duration_min"`
	Price       decimal.Decimal `json:"price"`
}

// Selection is one service picked for a pet, with its modifiers.
type Selection struct {
	ServiceID   uuid.UUID   `json:"service_id"`
	ModifierIDs []uuid.UUID `json:"modifier_ids"`
}

type PetSelection struct {
	PetID    *uuid.UUID  `json:"pet_id,omitempty"`
	PetName  string      `json:"pet_name,omitempty"`
	Services []Selection `json:"services"`
}

type ServiceLine struct {
	ServiceID   uuid.UUID              `json:"service_id"`
	ServiceName string                 `json:"service_name"`
	Category    models.ServiceCategory `json:"category"`
	ModifierIDs []uuid.UUID            `json:"modifier_ids"`
	DurationMin int                    `json:"duration_min"`
	Price       decimal.Decimal        `json:"price"`
}

type PetBreakdown struct {
	PetID       *uuid.UUID      `json:"pet_id,omitempty"`
	PetName     string          `json:"pet_name,omitempty"`
	Services    []ServiceLine   `json:"services"`
	DurationMin int             `json:"duration_min"`
	Price       decimal.Decimal `json:"price"`
}

type AppointmentTotal struct {
	DurationMin int             `json:"duration_min"`
	Price       decimal.Decimal `json:"price"`
	Pets        []PetBreakdown  `json:"pets"`
}

// Categories returns the distinct service categories of the booking, in
// first-seen order.
func (t AppointmentTotal) Categories() []models.ServiceCategory {
	var out []models.ServiceCategory
	for _, pet := range t.Pets {
		for _, line := range pet.Services {
			if !slices.Contains(out, line.Category) {
				out = append(out, line.Category)
			}
		}
	}
	return out
}

// Catalog is the organization's active services, keyed by id.
type Catalog map[uuid.UUID]*models.Service

func NewCatalog(services []models.Service) Catalog {
	c := make(Catalog, len(services))
	for i := range services {
		c[services[i].ID] = &services[i]
	}
	return c
}

// ComputeServiceTotal applies modifiers to a service. Percentage modifiers are
// always taken from the base price, so two 10% modifiers add exactly 20%.
// Repeated modifier ids count once.
func ComputeServiceTotal(svc *models.Service, modifierIDs []uuid.UUID) (Total, error) {
	if svc == nil || !svc.Active {
		id := uuid.Nil
		if svc != nil {
			id = svc.ID
		}
		return Total{}, httperr.UnknownServiceError{ServiceID: id}
	}

	byID := make(map[uuid.UUID]*models.Modifier, len(svc.Modifiers))
	for i := range svc.Modifiers {
		byID[svc.Modifiers[i].ID] = &svc.Modifiers[i]
	}

	duration := svc.DurationMin
	price := svc.BasePrice

	seen := make(map[uuid.UUID]struct{}, len(modifierIDs))
	for _, id := range modifierIDs {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}

		m, ok := byID[id]
		if !ok {
			return Total{}, httperr.UnknownModifierError{ServiceID: svc.ID, ModifierID: id}
		}

		duration += m.DurationDelta
		if m.IsPercentage {
			price = price.Add(svc.BasePrice.Mul(m.PriceAdjustment).Div(hundred))
		} else {
			price = price.Add(m.PriceAdjustment)
		}
	}

	if duration <= 0 {
		return Total{}, httperr.Invalid("invalid_duration", "service duration must be positive")
	}

	return Total{DurationMin: duration, Price: price}, nil
}

// ComputeAppointmentTotal sums every (service, modifiers) pair across every pet.
func ComputeAppointmentTotal(catalog Catalog, pets []PetSelection) (AppointmentTotal, error) {
	if len(pets) == 0 {
		return AppointmentTotal{}, httperr.Invalid("no_pets", "at least one pet is required")
	}

	out := AppointmentTotal{Price: decimal.Zero, Pets: make([]PetBreakdown, 0, len(pets))}

	for _, pet := range pets {
		if len(pet.Services) == 0 {
			return AppointmentTotal{}, httperr.Invalid("no_services", "every pet needs at least one service")
		}

		pb := PetBreakdown{PetID: pet.PetID, PetName: pet.PetName, Price: decimal.Zero}
		chosen := make(map[uuid.UUID][]uuid.UUID, len(pet.Services))

		for _, sel := range pet.Services {
			mods := dedupe(sel.ModifierIDs)

			if prev, dup := chosen[sel.ServiceID]; dup {
				if !sameSet(prev, mods) {
					return AppointmentTotal{}, httperr.Invalid("duplicate_service", "service selected twice for the same pet with different modifiers")
				}
				continue
			}
			chosen[sel.ServiceID] = mods

			svc, ok := catalog[sel.ServiceID]
			if !ok {
				return AppointmentTotal{}, httperr.UnknownServiceError{ServiceID: sel.ServiceID}
			}

			total, err := ComputeServiceTotal(svc, mods)
			if err != nil {
				return AppointmentTotal{}, err
			}

			pb.Services = append(pb.Services, ServiceLine{
				ServiceID:   svc.ID,
				ServiceName: svc.Name,
				Category:    svc.Category,
				ModifierIDs: mods,
				DurationMin: total.DurationMin,
				Price:       total.Price,
			})
			pb.DurationMin += total.DurationMin
			pb.Price = pb.Price.Add(total.Price)
		}

		out.DurationMin += pb.DurationMin
		out.Price = out.Price.Add(pb.Price)
		out.Pets = append(out.Pets, pb)
	}

	return out, nil
}

func dedupe(ids []uuid.UUID) []uuid.UUID {
	out := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if !slices.Contains(out, id) {
			out = append(out, id)
		}
	}
	return out
}

func sameSet(a, b []uuid.UUID) bool {
	if len(a) != len(b) {
		return false
	}
	for _, id := range a {
		if !slices.Contains(b, id) {
			return false
		}
	}
	return true
}
