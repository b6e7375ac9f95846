package dto

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/groom-scheduler/internal/models"
)

type AuditLogDTO struct {
	ID        uuid.UUID       `json:"id"`
	Action    string          `json:"action"`
	Entity    string          `json:"entity"`
	EntityID  *uuid.UUID      `json:"entity_id,omitempty"`
	UserID    *uuid.UUID      `json:"user_id,omitempty"`
	Metadata  json.RawMessage `json:"metadata,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
}

// FromAuditLog exposes the stored metadata as a JSON object rather than a
// string.
func FromAuditLog(l models.AuditLog, loc *time.Location) AuditLogDTO {
	out := AuditLogDTO{
		ID:        l.ID,
		Action:    l.Action,
		Entity:    l.Entity,
		EntityID:  l.EntityID,
		UserID:    l.UserID,
		CreatedAt: l.CreatedAt.In(loc),
	}
	if json.Valid([]byte(l.Metadata)) {
		out.Metadata = json.RawMessage(l.Metadata)
	}
	return out
}
