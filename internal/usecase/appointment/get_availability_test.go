package appointment

import (
	"context"
	"reflect"
	"testing"

	domain "github.com/BruksfildServices01/groom-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/groom-scheduler/internal/domain/pricing"
	"github.com/BruksfildServices01/groom-scheduler/internal/models"
)

func starts(slots []domain.TimeSlot) map[string]bool {
	out := map[string]bool{}
	for _, s := range slots {
		out[s.Start.Format("15:04")] = true
	}
	return out
}

func TestGetAvailabilityForSpecificGroomer(t *testing.T) {
	f := newFixture(t)
	f.seedAppointment(t, f.ana, tuesday(10, 0), 60, "confirmed")
	f.seedAppointment(t, f.ana, tuesday(14, 0), 60, "cancelled")

	slots, err := f.availabilityUC().Execute(context.Background(), GetAvailabilityInput{
		OrganizationID: f.org.ID,
		GroomerID:      &f.ana.ID,
		Date:           "2026-03-10",
		DurationMin:    60,
	})
	if err != nil {
		t.Fatalf("availability: %v", err)
	}

	got := starts(slots)
	for _, s := range []string{"09:30", "10:00", "10:30"} {
		if got[s] {
			t.Fatalf("%s overlaps the 10:00 appointment", s)
		}
	}
	for _, s := range []string{"08:00", "08:30", "09:00", "11:00", "14:00", "17:00"} {
		if !got[s] {
			t.Fatalf("expected %s to be offered", s)
		}
	}
	if len(slots) != 16 {
		t.Fatalf("expected 16 slots, got %d", len(slots))
	}
	for _, s := range slots {
		if s.End.After(tuesday(18, 0)) {
			t.Fatalf("slot past close: %v", s.Start)
		}
	}
}

func TestGetAvailabilityPoolUsesCapability(t *testing.T) {
	f := newFixture(t)
	f.seedAppointment(t, f.ana, tuesday(10, 0), 60, "confirmed")

	uc := f.availabilityUC()

	bath, err := uc.Execute(context.Background(), GetAvailabilityInput{
		OrganizationID: f.org.ID, Date: "2026-03-10", Pets: f.bathFor("Rex"),
	})
	if err != nil {
		t.Fatalf("bath: %v", err)
	}
	if !starts(bath)["10:00"] {
		t.Fatalf("bia can take the 10:00 bath")
	}
	for _, s := range bath {
		if s.Start.Equal(tuesday(10, 0)) && *s.GroomerID != f.bia.ID {
			t.Fatalf("10:00 should resolve to bia")
		}
	}

	haircut := []pricing.PetSelection{{PetName: "Rex", Services: []pricing.Selection{{ServiceID: f.cut.ID}}}}
	cut, err := uc.Execute(context.Background(), GetAvailabilityInput{
		OrganizationID: f.org.ID, Date: "2026-03-10", Pets: haircut,
	})
	if err != nil {
		t.Fatalf("haircut: %v", err)
	}
	if starts(cut)["10:00"] {
		t.Fatalf("only ana cuts and she is busy at 10:00")
	}
}

func TestGetAvailabilityRangeAndClosedDay(t *testing.T) {
	f := newFixture(t)
	// Wednesday closed
	f.db.Model(&models.BusinessHours{}).
		Where("organization_id = ? AND weekday = ?", f.org.ID, 3).
		Update("active", false)

	slots, err := f.availabilityUC().ExecuteRange(context.Background(), GetAvailabilityInput{
		OrganizationID:     f.org.ID,
		GroomerID:          &f.bia.ID,
		Date:               "2026-03-10",
		Days:               3,
		DurationMin:        60,
		IncludeUnavailable: true,
	})
	if err != nil {
		t.Fatalf("range: %v", err)
	}

	perDay := map[string]int{}
	for _, s := range slots {
		perDay[s.Date]++
	}
	if perDay["2026-03-10"] != 19 || perDay["2026-03-11"] != 0 || perDay["2026-03-12"] != 19 {
		t.Fatalf("unexpected per-day counts %v", perDay)
	}
}

func TestGetAvailabilityEdgeCases(t *testing.T) {
	f := newFixture(t)
	uc := f.availabilityUC()

	slots, err := uc.Execute(context.Background(), GetAvailabilityInput{
		OrganizationID: f.org.ID, Date: "2026-03-10", DurationMin: 0,
	})
	if err != nil || len(slots) != 0 {
		t.Fatalf("zero duration should give empty list, got %v %v", slots, err)
	}

	slots, err = uc.Execute(context.Background(), GetAvailabilityInput{
		OrganizationID: f.org.ID, Date: "2026-03-10", DurationMin: 11 * 60,
	})
	if err != nil || len(slots) != 0 {
		t.Fatalf("over-long duration should give empty list, got %v %v", slots, err)
	}

	if _, err := uc.Execute(context.Background(), GetAvailabilityInput{
		OrganizationID: f.org.ID, Date: "10/03/2026", DurationMin: 60,
	}); err == nil {
		t.Fatalf("expected invalid_date")
	}

	// Monday 08:00 is "now": earlier slots that day are not offered
	slots, err = uc.Execute(context.Background(), GetAvailabilityInput{
		OrganizationID: f.org.ID, GroomerID: &f.ana.ID, Date: "2026-03-09", DurationMin: 60,
	})
	if err != nil || len(slots) != 19 {
		t.Fatalf("expected all 19 slots from 08:00, got %d %v", len(slots), err)
	}
}

func TestGetAvailabilityIsIdempotent(t *testing.T) {
	f := newFixture(t)
	f.seedAppointment(t, f.bia, tuesday(12, 0), 90, "in_progress")
	uc := f.availabilityUC()

	in := GetAvailabilityInput{OrganizationID: f.org.ID, Date: "2026-03-10", Pets: f.bathFor("Rex"), IncludeUnavailable: true}
	a, err := uc.Execute(context.Background(), in)
	if err != nil {
		t.Fatalf("first: %v", err)
	}
	b, err := uc.Execute(context.Background(), in)
	if err != nil {
		t.Fatalf("second: %v", err)
	}
	if !reflect.DeepEqual(a, b) {
		t.Fatalf("results differ")
	}
}
