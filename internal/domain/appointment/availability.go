package appointment

import (
	"time"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/groom-scheduler/internal/models"
)

const DefaultGranularity = 30 * time.Minute

// TimeSlot is derived on demand and never stored.
type TimeSlot struct {
	Date      string     `json:"date"`
	Start     time.Time  `json:"start"`
	End       time.Time  `json:"end"`
	Available bool       `json:"available"`
	GroomerID *uuid.UUID `json:"groomer_id,omitempty"`
}

type Interval struct {
	Start time.Time
	End   time.Time
}

// Overlaps uses half-open intervals: touching ends do not conflict.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && aEnd.After(bStart)
}

func Conflicts(busy []Interval, start, end time.Time) bool {
	for _, iv := range busy {
		if Overlaps(start, end, iv.Start, iv.End) {
			return true
		}
	}
	return false
}

// BusyByGroomer groups slot-blocking appointments per groomer.
func BusyByGroomer(aps []models.Appointment) map[uuid.UUID][]Interval {
	out := make(map[uuid.UUID][]Interval)
	for _, ap := range aps {
		if !Status(ap.Status).BlocksSlot() {
			continue
		}
		out[ap.GroomerID] = append(out[ap.GroomerID], Interval{Start: ap.StartTime, End: ap.EndTime})
	}
	return out
}

// FirstFree returns the first groomer, in the given order, with nothing
// overlapping [start,end).
func FirstFree(groomers []uuid.UUID, busy map[uuid.UUID][]Interval, start, end time.Time) (uuid.UUID, bool) {
	for _, id := range groomers {
		if !Conflicts(busy[id], start, end) {
			return id, true
		}
	}
	return uuid.Nil, false
}

type SlotQuery struct {
	Day         BusinessDay
	Duration    time.Duration
	Granularity time.Duration

	// candidates in resolution order; a single entry for a specific groomer
	Groomers []uuid.UUID
	Busy     map[uuid.UUID][]Interval

	// slots starting outside [NotBefore, NotAfter] are unavailable; zero is unbounded
	NotBefore time.Time
	NotAfter  time.Time
}

// GenerateSlots walks the day from opening time in Granularity steps. A
// candidate whose end passes closing time ends the walk; slots are never
// truncated. Every retained candidate is returned with its Available flag.
func GenerateSlots(q SlotQuery) []TimeSlot {
	slots := []TimeSlot{}

	if q.Duration <= 0 || q.Duration > q.Day.Close.Sub(q.Day.Open) {
		return slots
	}

	gran := q.Granularity
	if gran <= 0 {
		gran = DefaultGranularity
	}

	for cur := q.Day.Open; !cur.Add(q.Duration).After(q.Day.Close); cur = cur.Add(gran) {
		slotStart := cur
		slotEnd := cur.Add(q.Duration)

		slot := TimeSlot{
			Date:  slotStart.Format("2006-01-02"),
			Start: slotStart,
			End:   slotEnd,
		}

		if q.Day.HasLunch && Overlaps(slotStart, slotEnd, q.Day.LunchStart, q.Day.LunchEnd) {
			slots = append(slots, slot)
			continue
		}

		if (!q.NotBefore.IsZero() && slotStart.Before(q.NotBefore)) ||
			(!q.NotAfter.IsZero() && slotStart.After(q.NotAfter)) {
			slots = append(slots, slot)
			continue
		}

		if id, ok := FirstFree(q.Groomers, q.Busy, slotStart, slotEnd); ok {
			slot.Available = true
			slot.GroomerID = &id
		}

		slots = append(slots, slot)
	}

	return slots
}

func OnlyAvailable(slots []TimeSlot) []TimeSlot {
	out := make([]TimeSlot, 0, len(slots))
	for _, s := range slots {
		if s.Available {
			out = append(out, s)
		}
	}
	return out
}
