package appointment

import (
	"time"

	"github.com/BruksfildServices01/groom-scheduler/internal/models"
)

// BusinessDay is one concrete working day in the organization's timezone.
type BusinessDay struct {
	Open  time.Time
	Close time.Time

	HasLunch   bool
	LunchStart time.Time
	LunchEnd   time.Time
}

// BusinessDayFor resolves the weekly hours row onto a calendar date. ok is
// false when the organization is closed that day.
func BusinessDayFor(wh *models.BusinessHours, date time.Time, loc *time.Location) (BusinessDay, bool) {
	if wh == nil || !wh.Active || wh.OpenTime == "" || wh.CloseTime == "" {
		return BusinessDay{}, false
	}

	parseHM := func(hm string) (time.Time, bool) {
		t, err := time.Parse("15:04", hm)
		if err != nil {
			return time.Time{}, false
		}
		return time.Date(
			date.Year(), date.Month(), date.Day(),
			t.Hour(), t.Minute(), 0, 0,
			loc,
		), true
	}

	open, ok1 := parseHM(wh.OpenTime)
	closing, ok2 := parseHM(wh.CloseTime)
	if !ok1 || !ok2 || !closing.After(open) {
		return BusinessDay{}, false
	}

	day := BusinessDay{Open: open, Close: closing}

	if wh.LunchStart != "" && wh.LunchEnd != "" {
		ls, ok3 := parseHM(wh.LunchStart)
		le, ok4 := parseHM(wh.LunchEnd)
		if ok3 && ok4 && le.After(ls) {
			day.HasLunch = true
			day.LunchStart = ls
			day.LunchEnd = le
		}
	}

	return day, true
}

// Fits reports whether [start,end) lies inside opening hours and clear of lunch.
func (d BusinessDay) Fits(start, end time.Time) bool {
	if start.Before(d.Open) || end.After(d.Close) {
		return false
	}
	if d.HasLunch && Overlaps(start, end, d.LunchStart, d.LunchEnd) {
		return false
	}
	return true
}
