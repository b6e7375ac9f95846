package notify

import (
	"fmt"
	"time"

	domain "github.com/BruksfildServices01/groom-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/groom-scheduler/internal/models"
)

const whenLayout = "Mon 02 Jan 15:04"

// ClientMessage confirms the booking, or acknowledges a request that still
// needs staff approval.
func ClientMessage(org *models.Organization, ap *models.Appointment, to string, loc *time.Location) Message {
	when := ap.StartTime.In(loc).Format(whenLayout)

	if domain.Status(ap.Status) == domain.StatusRequested {
		return Message{
			Kind: KindBookingRequested,
			To:   to,
			Body: fmt.Sprintf("%s received your request for %s. We will confirm shortly.", org.Name, when),
		}
	}

	body := fmt.Sprintf("%s: your appointment on %s is confirmed. Total %s.", org.Name, when, ap.TotalAmount.StringFixed(2))
	if ap.DepositAmount.IsPositive() {
		body += fmt.Sprintf(" Deposit due %s.", ap.DepositAmount.StringFixed(2))
	}
	return Message{Kind: KindBookingConfirmed, To: to, Body: body}
}

func StaffAlert(org *models.Organization, ap *models.Appointment, groomer *models.Groomer, loc *time.Location) Message {
	return Message{
		Kind: KindStaffAlert,
		To:   org.StaffPhone,
		Body: fmt.Sprintf(
			"New %s booking with %s on %s (%d min, %d pet(s)).",
			ap.Status,
			groomer.Name,
			ap.StartTime.In(loc).Format(whenLayout),
			ap.DurationMin,
			len(ap.Pets),
		),
	}
}
