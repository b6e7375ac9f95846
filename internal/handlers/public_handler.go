package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/groom-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/groom-scheduler/internal/domain/pricing"
	"github.com/BruksfildServices01/groom-scheduler/internal/httperr"
	"github.com/BruksfildServices01/groom-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/groom-scheduler/internal/models"
	"github.com/BruksfildServices01/groom-scheduler/internal/timezone"
	ucAppointment "github.com/BruksfildServices01/groom-scheduler/internal/usecase/appointment"
	"github.com/BruksfildServices01/groom-scheduler/internal/validators"
)

////////////////////////////////////////////////////////
// HANDLER
////////////////////////////////////////////////////////

type PublicHandler struct {
	db           *gorm.DB
	repo         domain.Repository
	quote        *ucAppointment.Quote
	availability *ucAppointment.GetAvailability
	create       *ucAppointment.CreateAppointment
}

func NewPublicHandler(
	db *gorm.DB,
	repo domain.Repository,
	quote *ucAppointment.Quote,
	availability *ucAppointment.GetAvailability,
	create *ucAppointment.CreateAppointment,
) *PublicHandler {
	return &PublicHandler{
		db:           db,
		repo:         repo,
		quote:        quote,
		availability: availability,
		create:       create,
	}
}

////////////////////////////////////////////////////////
// DTOs
////////////////////////////////////////////////////////

type QuoteRequest struct {
	ClientID *uuid.UUID             `json:"client_id"`
	Pets     []pricing.PetSelection `json:"pets"`
}

type AvailabilityRequest struct {
	Date               string                 `json:"date" binding:"required"` // YYYY-MM-DD
	Days               int                    `json:"days"`
	GroomerID          *uuid.UUID             `json:"groomer_id"`
	Pets               []pricing.PetSelection `json:"pets"`
	IncludeUnavailable bool                   `json:"include_unavailable"`
}

type PublicCreateAppointmentRequest struct {
	ClientID    uuid.UUID              `json:"client_id"`
	ClientPhone string                 `json:"client_phone"`
	GroomerID   *uuid.UUID             `json:"groomer_id"`
	Date        string                 `json:"date" binding:"required"` // YYYY-MM-DD
	Time        string                 `json:"time" binding:"required"` // HH:mm
	Pets        []pricing.PetSelection `json:"pets"`
}

func (h *PublicHandler) organization(c *gin.Context) (*models.Organization, bool) {
	org, err := h.repo.GetOrganizationBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		httperr.Respond(c, err)
		return nil, false
	}
	return org, true
}

////////////////////////////////////////////////////////
// SERVICES
////////////////////////////////////////////////////////

func (h *PublicHandler) ListServices(c *gin.Context) {
	org, ok := h.organization(c)
	if !ok {
		return
	}

	category := strings.TrimSpace(strings.ToLower(c.Query("category")))
	query := strings.TrimSpace(strings.ToLower(c.Query("query")))

	q := h.db.
		Preload("Modifiers").
		Where("organization_id = ? AND active = ?", org.ID, true)

	if category != "" {
		q = q.Where("category = ?", category)
	}

	if query != "" {
		like := "%" + query + "%"
		q = q.Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ?", like, like)
	}

	var services []models.Service
	if err := q.Order("name ASC").Find(&services).Error; err != nil {
		httperr.Internal(c, "failed_to_list_services", "Could not list services.")
		return
	}

	httpresp.List(c, services)
}

////////////////////////////////////////////////////////
// QUOTE
////////////////////////////////////////////////////////

func (h *PublicHandler) Quote(c *gin.Context) {
	org, ok := h.organization(c)
	if !ok {
		return
	}

	var req QuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	out, err := h.quote.Execute(c.Request.Context(), ucAppointment.QuoteInput{
		OrganizationID: org.ID,
		ClientID:       req.ClientID,
		Pets:           req.Pets,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, out)
}

////////////////////////////////////////////////////////
// AVAILABILITY
////////////////////////////////////////////////////////

func (h *PublicHandler) Availability(c *gin.Context) {
	org, ok := h.organization(c)
	if !ok {
		return
	}

	var req AvailabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}
	if len(req.Pets) == 0 {
		httperr.BadRequest(c, "no_pets", "at least one pet is required")
		return
	}

	slots, err := h.availability.ExecuteRange(c.Request.Context(), ucAppointment.GetAvailabilityInput{
		OrganizationID:     org.ID,
		GroomerID:          req.GroomerID,
		Date:               req.Date,
		Days:               req.Days,
		Pets:               req.Pets,
		IncludeUnavailable: req.IncludeUnavailable,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.List(c, slots)
}

////////////////////////////////////////////////////////
// CREATE
////////////////////////////////////////////////////////

func (h *PublicHandler) CreateAppointment(c *gin.Context) {
	org, ok := h.organization(c)
	if !ok {
		return
	}

	var req PublicCreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	start, err := timezone.ParseDateTime(req.Date, req.Time, org.Timezone)
	if err != nil {
		httperr.BadRequest(c, "invalid_date_or_time", "date must be YYYY-MM-DD and time HH:mm")
		return
	}

	phone := ""
	if req.ClientPhone != "" {
		p, ok := validators.NormalizePhone(req.ClientPhone)
		if !ok {
			httperr.BadRequest(c, "invalid_phone", "phone must include the country code")
			return
		}
		phone = p
	}

	ap, err := h.create.Execute(c.Request.Context(), ucAppointment.CreateAppointmentInput{
		OrganizationID: org.ID,
		ClientID:       req.ClientID,
		ClientPhone:    phone,
		GroomerID:      req.GroomerID,
		Start:          start,
		Pets:           req.Pets,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusCreated, ap)
}
