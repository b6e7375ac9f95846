package appointment

import (
	"errors"
	"testing"
	"time"

	"github.com/BruksfildServices01/groom-scheduler/internal/httperr"
	"github.com/BruksfildServices01/groom-scheduler/internal/models"
)

var allStatuses = []Status{
	StatusRequested, StatusConfirmed, StatusCheckedIn, StatusInProgress,
	StatusCompleted, StatusCancelled, StatusNoShow,
}

func TestTerminalStatesRejectEveryTransition(t *testing.T) {
	for _, from := range []Status{StatusCompleted, StatusCancelled, StatusNoShow} {
		for _, to := range allStatuses {
			err := CanTransition(from, to)
			var ite httperr.InvalidTransitionError
			if !errors.As(err, &ite) {
				t.Fatalf("%s -> %s: expected InvalidTransitionError, got %v", from, to, err)
			}
		}
	}
}

func TestForwardChain(t *testing.T) {
	valid := []struct{ from, to Status }{
		{StatusRequested, StatusConfirmed},
		{StatusConfirmed, StatusCheckedIn},
		{StatusCheckedIn, StatusInProgress},
		{StatusInProgress, StatusCompleted},
		{StatusRequested, StatusCancelled},
		{StatusInProgress, StatusNoShow},
		{StatusConfirmed, StatusNoShow},
	}
	for _, tc := range valid {
		if err := CanTransition(tc.from, tc.to); err != nil {
			t.Fatalf("%s -> %s: unexpected %v", tc.from, tc.to, err)
		}
	}

	invalid := []struct{ from, to Status }{
		{StatusRequested, StatusCheckedIn},
		{StatusConfirmed, StatusCompleted},
		{StatusCheckedIn, StatusConfirmed},
		{StatusConfirmed, StatusConfirmed},
		{StatusConfirmed, StatusRequested},
	}
	for _, tc := range invalid {
		if !httperr.IsInvalidTransition(CanTransition(tc.from, tc.to)) {
			t.Fatalf("%s -> %s should fail", tc.from, tc.to)
		}
	}
}

func TestTransitionStampsTimestamps(t *testing.T) {
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	ap := &models.Appointment{Status: string(StatusConfirmed)}

	if err := Transition(ap, StatusCheckedIn, "arrived", now); err != nil {
		t.Fatalf("unexpected %v", err)
	}
	if ap.CheckedInAt == nil || !ap.CheckedInAt.Equal(now) || ap.StatusNotes != "arrived" {
		t.Fatalf("check-in not recorded: %+v", ap)
	}

	if err := Transition(ap, StatusCancelled, "", now); err != nil {
		t.Fatalf("unexpected %v", err)
	}
	if ap.CancelledAt == nil || ap.StatusNotes != "arrived" {
		t.Fatalf("cancel not recorded")
	}

	if err := Transition(ap, StatusConfirmed, "", now); err == nil {
		t.Fatalf("expected error from terminal state")
	}
	if ap.Status != string(StatusCancelled) {
		t.Fatalf("failed transition must not change status")
	}
}

func TestInitialStatus(t *testing.T) {
	if InitialStatus(models.ModeRequestOnly) != StatusRequested {
		t.Fatalf("request_only starts at requested")
	}
	if InitialStatus(models.ModeAutoConfirm) != StatusConfirmed {
		t.Fatalf("auto_confirm starts at confirmed")
	}
}

func TestParseStatus(t *testing.T) {
	if _, ok := ParseStatus("checked_in"); !ok {
		t.Fatalf("checked_in should parse")
	}
	if _, ok := ParseStatus("done"); ok {
		t.Fatalf("unknown status should not parse")
	}
}
