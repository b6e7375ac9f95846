package audit

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/groom-scheduler/internal/models"
)

// Query selects one organization's audit rows, newest first. A zero From or
// To leaves that side of the [From, To) range open.
type Query struct {
	OrganizationID uuid.UUID
	Actions        []string
	EntityID       *uuid.UUID
	From           time.Time
	To             time.Time
	Limit          int
	Offset         int
}

type Reader interface {
	List(ctx context.Context, q Query) ([]models.AuditLog, int64, error)
}
