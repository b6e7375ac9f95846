package audit

const EntityAppointment = "appointment"

const (
	ActionAppointmentCreated       = "appointment_created"
	ActionAppointmentConflict      = "appointment_conflict"
	ActionAppointmentStatusChanged = "appointment_status_changed"
)

// KnownAction reports whether action is one the scheduler records.
func KnownAction(action string) bool {
	switch action {
	case ActionAppointmentCreated, ActionAppointmentConflict, ActionAppointmentStatusChanged:
		return true
	}
	return false
}
