// Package policy derives deposits, fees and confirmation mode from an
// organization's booking policies.
package policy

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/BruksfildServices01/groom-scheduler/internal/httperr"
	"github.com/BruksfildServices01/groom-scheduler/internal/models"
)

var hundred = decimal.NewFromInt(100)

func percentOf(total, pct decimal.Decimal) decimal.Decimal {
	return total.Mul(pct).Div(hundred).Round(2)
}

// ComputeDeposit returns max(total*pct/100, minimum), capped at total.
func ComputeDeposit(total decimal.Decimal, p *models.BookingPolicies) decimal.Decimal {
	if p == nil || !p.DepositRequired || !total.IsPositive() {
		return decimal.Zero
	}

	amount := decimal.Max(percentOf(total, p.DepositPercentage), p.DepositMinimum)
	return decimal.Min(amount, total)
}

func ResolveConfirmationMode(isNewClient bool, p *models.BookingPolicies) models.ConfirmationMode {
	if p == nil {
		return models.ModeAutoConfirm
	}

	mode := p.ExistingClientMode
	if isNewClient {
		mode = p.NewClientMode
	}
	if mode == models.ModeRequestOnly {
		return models.ModeRequestOnly
	}
	return models.ModeAutoConfirm
}

// ComputeCancellationFee is zero when cancelled at least
// CancellationWindowHours ahead of the appointment.
func ComputeCancellationFee(total decimal.Decimal, hoursUntilAppointment float64, p *models.BookingPolicies) decimal.Decimal {
	if p == nil || hoursUntilAppointment >= float64(p.CancellationWindowHours) {
		return decimal.Zero
	}
	return percentOf(total, p.LateCancellationFeePercentage)
}

func ComputeNoShowFee(total decimal.Decimal, p *models.BookingPolicies) decimal.Decimal {
	if p == nil {
		return decimal.Zero
	}
	return percentOf(total, p.NoShowFeePercentage)
}

// CheckAdvanceWindow enforces min/max advance booking bounds. Zero bounds are
// not enforced, except that a start in the past is always rejected.
func CheckAdvanceWindow(start, now time.Time, p *models.BookingPolicies) error {
	if start.Before(now) {
		return httperr.Invalid("in_the_past", "appointment start is in the past")
	}
	if p == nil {
		return nil
	}

	if p.MinAdvanceMinutes > 0 && start.Before(now.Add(time.Duration(p.MinAdvanceMinutes)*time.Minute)) {
		return httperr.Invalid("too_soon", "appointment is earlier than the minimum advance notice")
	}
	if p.MaxAdvanceDays > 0 && start.After(now.AddDate(0, 0, p.MaxAdvanceDays)) {
		return httperr.Invalid("too_far", "appointment is beyond the booking horizon")
	}
	return nil
}

func CheckPetCount(n int, p *models.BookingPolicies) error {
	if n <= 0 {
		return httperr.Invalid("no_pets", "at least one pet is required")
	}
	if p != nil && p.MaxPetsPerAppointment > 0 && n > p.MaxPetsPerAppointment {
		return httperr.Invalid("too_many_pets", "too many pets for one appointment")
	}
	return nil
}

// AdvanceBounds is the [earliest, latest] start allowed at now. A zero latest
// means no horizon.
func AdvanceBounds(now time.Time, p *models.BookingPolicies) (time.Time, time.Time) {
	earliest := now
	var latest time.Time
	if p == nil {
		return earliest, latest
	}
	if p.MinAdvanceMinutes > 0 {
		earliest = now.Add(time.Duration(p.MinAdvanceMinutes) * time.Minute)
	}
	if p.MaxAdvanceDays > 0 {
		latest = now.AddDate(0, 0, p.MaxAdvanceDays)
	}
	return earliest, latest
}
