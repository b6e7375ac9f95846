package httperr

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
)

type BusinessError struct {
	Code string
}

func (e BusinessError) Error() string {
	return e.Code
}

func ErrBusiness(code string) error {
	return BusinessError{Code: code}
}

func IsBusiness(err error, code string) bool {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code == code
	}
	return false
}

// ValidationError is malformed input, rejected before any availability work.
type ValidationError struct {
	Code    string
	Message string
}

func (e ValidationError) Error() string {
	if e.Message == "" {
		return e.Code
	}
	return e.Code + ": " + e.Message
}

func Invalid(code, message string) error {
	return ValidationError{Code: code, Message: message}
}

type UnknownServiceError struct {
	ServiceID uuid.UUID
}

func (e UnknownServiceError) Error() string {
	return fmt.Sprintf("unknown service %s", e.ServiceID)
}

type UnknownModifierError struct {
	ServiceID  uuid.UUID
	ModifierID uuid.UUID
}

func (e UnknownModifierError) Error() string {
	return fmt.Sprintf("unknown modifier %s for service %s", e.ModifierID, e.ServiceID)
}

// SlotConflictError means another booking won the interval; callers re-query
// availability.
type SlotConflictError struct {
	GroomerID uuid.UUID
	Start     time.Time
	End       time.Time
}

func (e SlotConflictError) Error() string {
	if e.GroomerID == uuid.Nil {
		return fmt.Sprintf("no groomer free for %s - %s", e.Start.Format(time.RFC3339), e.End.Format(time.RFC3339))
	}
	return fmt.Sprintf("groomer %s already booked for %s - %s", e.GroomerID, e.Start.Format(time.RFC3339), e.End.Format(time.RFC3339))
}

type InvalidTransitionError struct {
	From string
	To   string
}

func (e InvalidTransitionError) Error() string {
	return fmt.Sprintf("invalid status transition %s -> %s", e.From, e.To)
}

func IsValidation(err error) bool {
	var ve ValidationError
	return errors.As(err, &ve)
}

func IsSlotConflict(err error) bool {
	var se SlotConflictError
	return errors.As(err, &se)
}

func IsInvalidTransition(err error) bool {
	var te InvalidTransitionError
	return errors.As(err, &te)
}

func IsUnknownCatalog(err error) bool {
	var us UnknownServiceError
	var um UnknownModifierError
	return errors.As(err, &us) || errors.As(err, &um)
}

// IsExclusionConflict reports a violation of the appointments_no_overlap
// exclusion constraint (postgres only).
func IsExclusionConflict(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23P01"
	}
	return false
}
