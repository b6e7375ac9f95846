package appointment

import (
	"github.com/BruksfildServices01/groom-scheduler/internal/httperr"
	"github.com/BruksfildServices01/groom-scheduler/internal/models"
)

// ===============================
// Appointment Status
// ===============================

type Status string

const (
	StatusRequested  Status = "requested"
	StatusConfirmed  Status = "confirmed"
	StatusCheckedIn  Status = "checked_in"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
	StatusCancelled  Status = "cancelled"
	StatusNoShow     Status = "no_show"
)

// forward chain; cancelled and no_show are reachable from any non-terminal state
var next = map[Status]Status{
	StatusRequested:  StatusConfirmed,
	StatusConfirmed:  StatusCheckedIn,
	StatusCheckedIn:  StatusInProgress,
	StatusInProgress: StatusCompleted,
}

func ParseStatus(s string) (Status, bool) {
	st := Status(s)
	switch st {
	case StatusRequested, StatusConfirmed, StatusCheckedIn, StatusInProgress,
		StatusCompleted, StatusCancelled, StatusNoShow:
		return st, true
	}
	return "", false
}

func (s Status) IsTerminal() bool {
	return s == StatusCompleted || s == StatusCancelled || s == StatusNoShow
}

// BlocksSlot reports whether an appointment in this status occupies its groomer.
func (s Status) BlocksSlot() bool {
	return s != StatusCancelled && s != StatusNoShow
}

// NonBlockingStatuses are excluded from every overlap check.
func NonBlockingStatuses() []string {
	return []string{string(StatusCancelled), string(StatusNoShow)}
}

// ===============================
// Validations
// ===============================

func CanTransition(from, to Status) error {
	if from.IsTerminal() {
		return httperr.InvalidTransitionError{From: string(from), To: string(to)}
	}
	if to == StatusCancelled || to == StatusNoShow {
		return nil
	}
	if n, ok := next[from]; ok && n == to {
		return nil
	}
	return httperr.InvalidTransitionError{From: string(from), To: string(to)}
}

// InitialStatus maps the confirmation mode to the first status.
func InitialStatus(mode models.ConfirmationMode) Status {
	if mode == models.ModeRequestOnly {
		return StatusRequested
	}
	return StatusConfirmed
}
