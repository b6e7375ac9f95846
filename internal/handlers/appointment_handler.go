package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	domain "github.com/BruksfildServices01/groom-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/groom-scheduler/internal/domain/pricing"
	"github.com/BruksfildServices01/groom-scheduler/internal/httperr"
	"github.com/BruksfildServices01/groom-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/groom-scheduler/internal/middleware"
	"github.com/BruksfildServices01/groom-scheduler/internal/models"
	"github.com/BruksfildServices01/groom-scheduler/internal/timezone"
	ucAppointment "github.com/BruksfildServices01/groom-scheduler/internal/usecase/appointment"
	"github.com/BruksfildServices01/groom-scheduler/internal/validators"
)

// ======================================================
// HANDLER
// ======================================================

type AppointmentHandler struct {
	repo         domain.Repository
	create       *ucAppointment.CreateAppointment
	updateStatus *ucAppointment.UpdateAppointmentStatus
	listByDate   *ucAppointment.ListAppointmentsByDate
	availability *ucAppointment.GetAvailability
}

func NewAppointmentHandler(
	repo domain.Repository,
	create *ucAppointment.CreateAppointment,
	updateStatus *ucAppointment.UpdateAppointmentStatus,
	listByDate *ucAppointment.ListAppointmentsByDate,
	availability *ucAppointment.GetAvailability,
) *AppointmentHandler {
	return &AppointmentHandler{
		repo:         repo,
		create:       create,
		updateStatus: updateStatus,
		listByDate:   listByDate,
		availability: availability,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateAppointmentRequest struct {
	ClientID    uuid.UUID              `json:"client_id"`
	ClientPhone string                 `json:"client_phone"`
	GroomerID   *uuid.UUID             `json:"groomer_id"`
	Date        string                 `json:"date" binding:"required"`
	Time        string                 `json:"time" binding:"required"`
	Pets        []pricing.PetSelection `json:"pets"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
	Notes  string `json:"notes"`
}

// ======================================================
// HELPERS
// ======================================================

func optionalUUID(c *gin.Context, key string) (*uuid.UUID, bool) {
	raw := c.Query(key)
	if raw == "" {
		return nil, true
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		httperr.BadRequest(c, "invalid_"+key, key+" must be a uuid")
		return nil, false
	}
	return &id, true
}

// ======================================================
// CREATE
// ======================================================

func (h *AppointmentHandler) Create(c *gin.Context) {
	userID, organizationID := middleware.Identity(c)

	var req CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	org, err := h.repo.GetOrganizationByID(c.Request.Context(), organizationID)
	if err != nil {
		httperr.Respond(c, err)
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
		OrganizationID: organizationID,
		ClientID:       req.ClientID,
		ClientPhone:    phone,
		GroomerID:      req.GroomerID,
		Start:          start,
		Pets:           req.Pets,
		ActorID:        &userID,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusCreated, ap)
}

// ======================================================
// STATUS
// ======================================================

func (h *AppointmentHandler) UpdateStatus(c *gin.Context) {
	userID, organizationID := middleware.Identity(c)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "id must be a uuid")
		return
	}

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	ap, err := h.updateStatus.Execute(c.Request.Context(), ucAppointment.UpdateAppointmentStatusInput{
		OrganizationID: organizationID,
		AppointmentID:  id,
		Status:         req.Status,
		Notes:          req.Notes,
		ActorID:        &userID,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, ap)
}

// ======================================================
// LIST BY DATE
// ======================================================

func (h *AppointmentHandler) ListByDate(c *gin.Context) {
	_, organizationID := middleware.Identity(c)

	date := c.Query("date")
	if date == "" {
		httperr.BadRequest(c, "missing_date", "date is required")
		return
	}

	groomerID, ok := optionalUUID(c, "groomer_id")
	if !ok {
		return
	}

	out, err := h.listByDate.Execute(c.Request.Context(), organizationID, groomerID, date)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.List(c, out)
}

// ======================================================
// AVAILABILITY (week view)
// ======================================================

func (h *AppointmentHandler) Availability(c *gin.Context) {
	_, organizationID := middleware.Identity(c)

	date := c.Query("date")
	if date == "" {
		httperr.BadRequest(c, "missing_date", "date is required")
		return
	}

	durationMin, err := strconv.Atoi(c.DefaultQuery("duration_min", "0"))
	if err != nil {
		httperr.BadRequest(c, "invalid_duration", "duration_min must be an integer")
		return
	}

	days, err := strconv.Atoi(c.DefaultQuery("days", "7"))
	if err != nil {
		httperr.BadRequest(c, "invalid_days", "days must be an integer")
		return
	}

	groomerID, ok := optionalUUID(c, "groomer_id")
	if !ok {
		return
	}

	var categories []models.ServiceCategory
	for _, raw := range c.QueryArray("category") {
		cat := models.ServiceCategory(raw)
		if !cat.Valid() {
			httperr.BadRequest(c, "unknown_category", "unknown category "+raw)
			return
		}
		categories = append(categories, cat)
	}

	slots, err := h.availability.ExecuteRange(c.Request.Context(), ucAppointment.GetAvailabilityInput{
		OrganizationID:     organizationID,
		GroomerID:          groomerID,
		Date:               date,
		Days:               days,
		DurationMin:        durationMin,
		Categories:         categories,
		IncludeUnavailable: c.Query("include_unavailable") == "true",
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.List(c, slots)
}
