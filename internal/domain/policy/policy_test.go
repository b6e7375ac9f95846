package policy

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/BruksfildServices01/groom-scheduler/internal/httperr"
	"github.com/BruksfildServices01/groom-scheduler/internal/models"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func depositPolicies() *models.BookingPolicies {
	p := models.DefaultBookingPolicies(uuid.New())
	p.DepositRequired = true
	p.DepositPercentage = dec("25")
	p.DepositMinimum = dec("15")
	return p
}

func TestComputeDeposit(t *testing.T) {
	p := depositPolicies()

	cases := []struct {
		total    string
		expected string
	}{
		{"40", "15"},
		{"200", "50"},
		{"60", "15"},
		{"61", "15.25"},
		{"10", "10"}, // minimum above total is capped
	}

	for _, c := range cases {
		got := ComputeDeposit(dec(c.total), p)
		if !got.Equal(dec(c.expected)) {
			t.Fatalf("total %s: expected deposit %s, got %s", c.total, c.expected, got)
		}
	}
}

func TestComputeDeposit_NotRequired(t *testing.T) {
	p := depositPolicies()
	p.DepositRequired = false

	if got := ComputeDeposit(dec("500"), p); !got.IsZero() {
		t.Fatalf("expected zero deposit, got %s", got)
	}
	if got := ComputeDeposit(dec("500"), nil); !got.IsZero() {
		t.Fatalf("expected zero deposit for nil policies, got %s", got)
	}
}

func TestComputeDeposit_BoundsAndMonotonic(t *testing.T) {
	p := depositPolicies()

	prev := decimal.Zero
	for total := 15; total <= 400; total += 5 {
		tot := decimal.NewFromInt(int64(total))
		got := ComputeDeposit(tot, p)

		if got.LessThan(p.DepositMinimum) || got.GreaterThan(tot) {
			t.Fatalf("total %s: deposit %s outside [%s, %s]", tot, got, p.DepositMinimum, tot)
		}
		if got.LessThan(prev) {
			t.Fatalf("deposit decreased at total %s: %s < %s", tot, got, prev)
		}
		prev = got
	}
}

func TestResolveConfirmationMode(t *testing.T) {
	p := models.DefaultBookingPolicies(uuid.New())
	p.NewClientMode = models.ModeRequestOnly
	p.ExistingClientMode = models.ModeAutoConfirm

	if got := ResolveConfirmationMode(true, p); got != models.ModeRequestOnly {
		t.Fatalf("new client: expected request_only, got %s", got)
	}
	if got := ResolveConfirmationMode(false, p); got != models.ModeAutoConfirm {
		t.Fatalf("existing client: expected auto_confirm, got %s", got)
	}

	p.ExistingClientMode = ""
	if got := ResolveConfirmationMode(false, p); got != models.ModeAutoConfirm {
		t.Fatalf("empty mode: expected auto_confirm, got %s", got)
	}
}

func TestComputeCancellationFee(t *testing.T) {
	p := models.DefaultBookingPolicies(uuid.New())
	p.CancellationWindowHours = 24
	p.LateCancellationFeePercentage = dec("50")
	p.NoShowFeePercentage = dec("100")

	if got := ComputeCancellationFee(dec("80"), 24, p); !got.IsZero() {
		t.Fatalf("at window boundary: expected 0, got %s", got)
	}
	if got := ComputeCancellationFee(dec("80"), 48, p); !got.IsZero() {
		t.Fatalf("outside window: expected 0, got %s", got)
	}
	if got := ComputeCancellationFee(dec("80"), 23.5, p); !got.Equal(dec("40")) {
		t.Fatalf("late cancel: expected 40, got %s", got)
	}
	if got := ComputeNoShowFee(dec("80"), p); !got.Equal(dec("80")) {
		t.Fatalf("no-show: expected 80, got %s", got)
	}
}

func TestCheckAdvanceWindow(t *testing.T) {
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	p := models.DefaultBookingPolicies(uuid.New())
	p.MinAdvanceMinutes = 120
	p.MaxAdvanceDays = 30

	cases := []struct {
		name  string
		start time.Time
		code  string
	}{
		{"past", now.Add(-time.Minute), "in_the_past"},
		{"too soon", now.Add(time.Hour), "too_soon"},
		{"ok", now.Add(3 * time.Hour), ""},
		{"too far", now.AddDate(0, 0, 31), "too_far"},
	}

	for _, c := range cases {
		err := CheckAdvanceWindow(c.start, now, p)
		if c.code == "" {
			if err != nil {
				t.Fatalf("%s: unexpected error %v", c.name, err)
			}
			continue
		}
		ve, ok := err.(httperr.ValidationError)
		if !ok || ve.Code != c.code {
			t.Fatalf("%s: expected %s, got %v", c.name, c.code, err)
		}
	}
}

func TestCheckPetCount(t *testing.T) {
	p := models.DefaultBookingPolicies(uuid.New())
	p.MaxPetsPerAppointment = 2

	if err := CheckPetCount(0, p); !httperr.IsValidation(err) {
		t.Fatalf("expected validation error for 0 pets, got %v", err)
	}
	if err := CheckPetCount(2, p); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := CheckPetCount(3, p); !httperr.IsValidation(err) {
		t.Fatalf("expected validation error for 3 pets, got %v", err)
	}
}
