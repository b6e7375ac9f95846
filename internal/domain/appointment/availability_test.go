package appointment

import (
	"reflect"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/groom-scheduler/internal/models"
)

func at(h, m int) time.Time {
	return time.Date(2026, 3, 10, h, m, 0, 0, time.UTC)
}

func fullDay() BusinessDay {
	return BusinessDay{Open: at(8, 0), Close: at(18, 0)}
}

func startsOf(slots []TimeSlot, available bool) map[string]bool {
	out := map[string]bool{}
	for _, s := range slots {
		if s.Available == available {
			out[s.Start.Format("15:04")] = true
		}
	}
	return out
}

func TestGenerateSlotsExcludesOverlapWithExistingAppointment(t *testing.T) {
	g := uuid.New()

	slots := GenerateSlots(SlotQuery{
		Day:      fullDay(),
		Duration: 60 * time.Minute,
		Groomers: []uuid.UUID{g},
		Busy: map[uuid.UUID][]Interval{
			g: {{Start: at(10, 0), End: at(11, 0)}},
		},
	})

	// 08:00 .. 17:00 in 30 minute steps
	if len(slots) != 19 {
		t.Fatalf("expected 19 candidates, got %d", len(slots))
	}

	free := startsOf(slots, true)
	busy := startsOf(slots, false)

	for _, s := range []string{"09:30", "10:00", "10:30"} {
		if !busy[s] {
			t.Fatalf("expected %s to be unavailable", s)
		}
	}
	for _, s := range []string{"08:00", "08:30", "09:00", "11:00", "11:30", "16:30", "17:00"} {
		if !free[s] {
			t.Fatalf("expected %s to be available", s)
		}
	}
	if len(busy) != 3 {
		t.Fatalf("expected exactly 3 unavailable, got %v", busy)
	}

	last := slots[len(slots)-1]
	if !last.Start.Equal(at(17, 0)) || !last.End.Equal(at(18, 0)) {
		t.Fatalf("unexpected last slot %v-%v", last.Start, last.End)
	}
	if last.GroomerID == nil || *last.GroomerID != g {
		t.Fatalf("expected slot resolved to groomer")
	}
}

func TestGenerateSlotsNeverPastClose(t *testing.T) {
	for _, d := range []int{15, 45, 60, 90, 125, 600} {
		slots := GenerateSlots(SlotQuery{
			Day:      fullDay(),
			Duration: time.Duration(d) * time.Minute,
			Groomers: []uuid.UUID{uuid.New()},
		})
		if len(slots) == 0 {
			t.Fatalf("duration %d: expected slots", d)
		}
		for _, s := range slots {
			if s.End.After(at(18, 0)) {
				t.Fatalf("duration %d: slot %v ends after close", d, s.Start)
			}
			if s.End.Sub(s.Start) != time.Duration(d)*time.Minute {
				t.Fatalf("duration %d: truncated slot %v", d, s.Start)
			}
		}
	}
}

func TestGenerateSlotsTouchingIntervalsDoNotConflict(t *testing.T) {
	g := uuid.New()
	slots := GenerateSlots(SlotQuery{
		Day:      fullDay(),
		Duration: 60 * time.Minute,
		Groomers: []uuid.UUID{g},
		Busy:     map[uuid.UUID][]Interval{g: {{Start: at(9, 0), End: at(10, 0)}}},
	})
	free := startsOf(slots, true)
	if !free["08:00"] || !free["10:00"] {
		t.Fatalf("touching slots must be free: %v", free)
	}
}

func TestGenerateSlotsEmptyCases(t *testing.T) {
	cases := []struct {
		name string
		dur  time.Duration
	}{
		{"zero", 0},
		{"negative", -30 * time.Minute},
		{"longer than day", 11 * time.Hour},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			slots := GenerateSlots(SlotQuery{
				Day:      fullDay(),
				Duration: tc.dur,
				Groomers: []uuid.UUID{uuid.New()},
			})
			if slots == nil || len(slots) != 0 {
				t.Fatalf("expected empty non-nil list, got %v", slots)
			}
		})
	}

	slots := GenerateSlots(SlotQuery{Day: fullDay(), Duration: 10 * time.Hour, Groomers: []uuid.UUID{uuid.New()}})
	if len(slots) != 1 {
		t.Fatalf("a duration equal to the day span fits once, got %d", len(slots))
	}
}

func TestGenerateSlotsIsIdempotent(t *testing.T) {
	g := uuid.New()
	q := SlotQuery{
		Day:      fullDay(),
		Duration: 45 * time.Minute,
		Groomers: []uuid.UUID{g},
		Busy:     map[uuid.UUID][]Interval{g: {{Start: at(13, 15), End: at(14, 0)}}},
	}
	a := GenerateSlots(q)
	b := GenerateSlots(q)
	if !reflect.DeepEqual(a, b) {
		t.Fatalf("results differ between calls")
	}
}

func TestGenerateSlotsLunchAndWindow(t *testing.T) {
	day := fullDay()
	day.HasLunch = true
	day.LunchStart = at(12, 0)
	day.LunchEnd = at(13, 0)

	slots := GenerateSlots(SlotQuery{
		Day:       day,
		Duration:  60 * time.Minute,
		Groomers:  []uuid.UUID{uuid.New()},
		NotBefore: at(9, 0),
		NotAfter:  at(16, 0),
	})

	busy := startsOf(slots, false)
	for _, s := range []string{"08:00", "08:30", "11:30", "12:00", "12:30", "16:30", "17:00"} {
		if !busy[s] {
			t.Fatalf("expected %s unavailable", s)
		}
	}
	free := startsOf(slots, true)
	for _, s := range []string{"09:00", "11:00", "13:00", "16:00"} {
		if !free[s] {
			t.Fatalf("expected %s available", s)
		}
	}
}

func TestGenerateSlotsPoolResolvesFirstFreeGroomer(t *testing.T) {
	g1, g2 := uuid.New(), uuid.New()
	slots := GenerateSlots(SlotQuery{
		Day:      fullDay(),
		Duration: 60 * time.Minute,
		Groomers: []uuid.UUID{g1, g2},
		Busy: map[uuid.UUID][]Interval{
			g1: {{Start: at(10, 0), End: at(11, 0)}},
			g2: {{Start: at(10, 0), End: at(12, 0)}},
		},
	})

	for _, s := range slots {
		switch s.Start.Format("15:04") {
		case "08:00":
			if *s.GroomerID != g1 {
				t.Fatalf("08:00 should resolve to first groomer")
			}
		case "11:00":
			if !s.Available || *s.GroomerID != g1 {
				t.Fatalf("11:00 should resolve to first groomer")
			}
		case "10:00":
			if s.Available {
				t.Fatalf("10:00 is busy for the whole pool")
			}
		}
	}
}

func TestGenerateSlotsEmptyPool(t *testing.T) {
	slots := GenerateSlots(SlotQuery{Day: fullDay(), Duration: time.Hour})
	if len(OnlyAvailable(slots)) != 0 {
		t.Fatalf("no groomer means nothing available")
	}
}

func TestBusyByGroomerSkipsNonBlocking(t *testing.T) {
	g := uuid.New()
	aps := []models.Appointment{
		{GroomerID: g, Status: string(StatusConfirmed), StartTime: at(9, 0), EndTime: at(10, 0)},
		{GroomerID: g, Status: string(StatusCancelled), StartTime: at(11, 0), EndTime: at(12, 0)},
		{GroomerID: g, Status: string(StatusNoShow), StartTime: at(13, 0), EndTime: at(14, 0)},
	}
	busy := BusyByGroomer(aps)
	if len(busy[g]) != 1 {
		t.Fatalf("expected one blocking interval, got %d", len(busy[g]))
	}
}

func TestBusinessDayFor(t *testing.T) {
	loc, err := time.LoadLocation("America/Sao_Paulo")
	if err != nil {
		t.Skip("tzdata not available")
	}
	date := time.Date(2026, 3, 10, 0, 0, 0, 0, loc)

	wh := &models.BusinessHours{OpenTime: "08:00", CloseTime: "18:00", LunchStart: "12:00", LunchEnd: "13:00", Active: true}
	day, ok := BusinessDayFor(wh, date, loc)
	if !ok || !day.HasLunch {
		t.Fatalf("expected open day with lunch")
	}
	if day.Open.Hour() != 8 || day.Open.Location() != loc {
		t.Fatalf("unexpected open %v", day.Open)
	}

	if _, ok := BusinessDayFor(&models.BusinessHours{OpenTime: "08:00", CloseTime: "18:00"}, date, loc); ok {
		t.Fatalf("inactive day must be closed")
	}
	if _, ok := BusinessDayFor(nil, date, loc); ok {
		t.Fatalf("missing hours must be closed")
	}
	if _, ok := BusinessDayFor(&models.BusinessHours{OpenTime: "18:00", CloseTime: "08:00", Active: true}, date, loc); ok {
		t.Fatalf("inverted hours must be closed")
	}
}
