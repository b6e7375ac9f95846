package appointment

import (
	"time"

	"github.com/BruksfildServices01/groom-scheduler/internal/models"
)

// ===============================
// Domain Actions
// ===============================

// Transition moves ap to status `to`, stamping the matching timestamp. Fees
// for cancelled/no_show are set by the caller from the booking policies.
func Transition(ap *models.Appointment, to Status, notes string, now time.Time) error {
	if err := CanTransition(Status(ap.Status), to); err != nil {
		return err
	}

	ap.Status = string(to)
	if notes != "" {
		ap.StatusNotes = notes
	}

	switch to {
	case StatusConfirmed:
		ap.ConfirmedAt = &now
	case StatusCheckedIn:
		ap.CheckedInAt = &now
	case StatusInProgress:
		ap.StartedAt = &now
	case StatusCompleted:
		ap.CompletedAt = &now
	case StatusCancelled:
		ap.CancelledAt = &now
	case StatusNoShow:
		ap.NoShowAt = &now
	}
	return nil
}
