package audit

import (
	"testing"

	"github.com/google/uuid"

	dbpkg "github.com/BruksfildServices01/groom-scheduler/internal/db"
	"github.com/BruksfildServices01/groom-scheduler/internal/models"
)

func TestDispatcherPersistsOnClose(t *testing.T) {
	db, err := dbpkg.OpenInMemory("audit_" + t.Name())
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	orgID := uuid.New()
	apID := uuid.New()

	d := NewDispatcher(New(db))
	for _, action := range []string{"appointment_created", "appointment_status_changed"} {
		d.Dispatch(Event{
			OrganizationID: orgID,
			Action:         action,
			Entity:         "appointment",
			EntityID:       &apID,
			Metadata:       map[string]any{"status": "confirmed"},
		})
	}
	d.Close()

	var logs []models.AuditLog
	if err := db.Where("organization_id = ?", orgID).Order("action ASC").Find(&logs).Error; err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(logs) != 2 {
		t.Fatalf("expected 2 audit rows, got %d", len(logs))
	}
	if logs[0].EntityID == nil || *logs[0].EntityID != apID {
		t.Fatalf("entity id not stored: %+v", logs[0])
	}
	if logs[0].Metadata != `{"status":"confirmed"}` {
		t.Fatalf("unexpected metadata %q", logs[0].Metadata)
	}
}

func TestNilDispatcherIsNoop(t *testing.T) {
	var d *Dispatcher
	d.Dispatch(Event{Action: "ignored"})
}
