package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/groom-scheduler/internal/httperr"
	"github.com/BruksfildServices01/groom-scheduler/internal/middleware"
	"github.com/BruksfildServices01/groom-scheduler/internal/models"
)

type ServiceHandler struct {
	db *gorm.DB
}

func NewServiceHandler(db *gorm.DB) *ServiceHandler {
	return &ServiceHandler{db: db}
}

// --------- Requests ---------

type ModifierRequest struct {
	Name            string          `json:"name" binding:"required"`
	Type            string          `json:"type" binding:"required,oneof=weight coat breed addon"`
	DurationDelta   int             `json:"duration_delta"`
	PriceAdjustment decimal.Decimal `json:"price_adjustment"`
	IsPercentage    bool            `json:"is_percentage"`
}

type CreateServiceRequest struct {
	Name        string            `json:"name" binding:"required"`
	Description string            `json:"description"`
	DurationMin int               `json:"duration_min" binding:"required,min=1"`
	BasePrice   decimal.Decimal   `json:"base_price"`
	Category    string            `json:"category" binding:"required"`
	Modifiers   []ModifierRequest `json:"modifiers" binding:"dive"`
}

// Modifiers, when present, replace the existing set.
type UpdateServiceRequest struct {
	Name        *string            `json:"name,omitempty"`
	Description *string            `json:"description,omitempty"`
	DurationMin *int               `json:"duration_min,omitempty"`
	BasePrice   *decimal.Decimal   `json:"base_price,omitempty"`
	Active      *bool              `json:"active,omitempty"`
	Modifiers   *[]ModifierRequest `json:"modifiers,omitempty"`
}

func toModifiers(reqs []ModifierRequest) []models.Modifier {
	out := make([]models.Modifier, 0, len(reqs))
	for _, m := range reqs {
		out = append(out, models.Modifier{
			Name:            m.Name,
			Type:            models.ModifierType(m.Type),
			DurationDelta:   m.DurationDelta,
			PriceAdjustment: m.PriceAdjustment,
			IsPercentage:    m.IsPercentage,
		})
	}
	return out
}

// --------- Handlers ---------

func (h *ServiceHandler) List(c *gin.Context) {
	_, organizationID := middleware.Identity(c)

	category := strings.ToLower(strings.TrimSpace(c.Query("category")))
	activeStr := strings.TrimSpace(c.Query("active"))

	q := h.db.Preload("Modifiers").Where("organization_id = ?", organizationID)

	if category != "" {
		q = q.Where("category = ?", category)
	}

	switch activeStr {
	case "true":
		q = q.Where("active = ?", true)
	case "false":
		q = q.Where("active = ?", false)
	}

	var services []models.Service
	if err := q.Order("name ASC").Find(&services).Error; err != nil {
		httperr.Internal(c, "failed_to_list_services", "Could not list services.")
		return
	}

	c.JSON(http.StatusOK, services)
}

func (h *ServiceHandler) Create(c *gin.Context) {
	_, organizationID := middleware.Identity(c)

	var req CreateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	category := models.ServiceCategory(strings.ToLower(req.Category))
	if !category.Valid() {
		httperr.BadRequest(c, "unknown_category", "unknown category "+req.Category)
		return
	}
	if req.BasePrice.IsNegative() {
		httperr.BadRequest(c, "invalid_price", "base_price must not be negative")
		return
	}

	svc := models.Service{
		OrganizationID: organizationID,
		Name:           req.Name,
		Description:    req.Description,
		DurationMin:    req.DurationMin,
		BasePrice:      req.BasePrice,
		Category:       category,
		Active:         true,
		Modifiers:      toModifiers(req.Modifiers),
	}

	if err := h.db.Create(&svc).Error; err != nil {
		httperr.Internal(c, "failed_to_create_service", "Could not create service.")
		return
	}

	c.JSON(http.StatusCreated, svc)
}

// Update edits a service in place. Appointments already booked keep their
// snapshotted durations and prices.
func (h *ServiceHandler) Update(c *gin.Context) {
	_, organizationID := middleware.Identity(c)

	var svc models.Service
	if err := h.db.
		Where("id = ? AND organization_id = ?", c.Param("id"), organizationID).
		First(&svc).Error; err != nil {

		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.NotFound(c, "service_not_found", "Service not found.")
			return
		}
		httperr.Internal(c, "failed_to_get_service", "Could not load service.")
		return
	}

	var req UpdateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	if req.Name != nil {
		svc.Name = *req.Name
	}
	if req.Description != nil {
		svc.Description = *req.Description
	}
	if req.DurationMin != nil {
		if *req.DurationMin <= 0 {
			httperr.BadRequest(c, "invalid_duration", "duration_min must be positive")
			return
		}
		svc.DurationMin = *req.DurationMin
	}
	if req.BasePrice != nil {
		if req.BasePrice.IsNegative() {
			httperr.BadRequest(c, "invalid_price", "base_price must not be negative")
			return
		}
		svc.BasePrice = *req.BasePrice
	}
	if req.Active != nil {
		svc.Active = *req.Active
	}

	err := h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Modifiers").Save(&svc).Error; err != nil {
			return err
		}
		if req.Modifiers == nil {
			return nil
		}
		if err := tx.Where("service_id = ?", svc.ID).Delete(&models.Modifier{}).Error; err != nil {
			return err
		}
		mods := toModifiers(*req.Modifiers)
		for i := range mods {
			mods[i].ServiceID = svc.ID
		}
		if len(mods) > 0 {
			return tx.Create(&mods).Error
		}
		return nil
	})
	if err != nil {
		httperr.Internal(c, "failed_to_update_service", "Could not update service.")
		return
	}

	h.db.Preload("Modifiers").First(&svc, "id = ?", svc.ID)
	c.JSON(http.StatusOK, svc)
}
