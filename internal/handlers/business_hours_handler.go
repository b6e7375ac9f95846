package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/groom-scheduler/internal/httperr"
	"github.com/BruksfildServices01/groom-scheduler/internal/middleware"
	"github.com/BruksfildServices01/groom-scheduler/internal/models"
)

type BusinessHoursHandler struct {
	db *gorm.DB
}

func NewBusinessHoursHandler(db *gorm.DB) *BusinessHoursHandler {
	return &BusinessHoursHandler{db: db}
}

type BusinessDayConfig struct {
	Weekday    int    `json:"weekday" binding:"min=0,max=6"`
	Active     bool   `json:"active"`
	OpenTime   string `json:"open_time"`
	CloseTime  string `json:"close_time"`
	LunchStart string `json:"lunch_start"`
	LunchEnd   string `json:"lunch_end"`
}

type BusinessHoursUpdateRequest struct {
	Days []BusinessDayConfig `json:"days" binding:"required,dive"`
}

func validHM(hm string) bool {
	_, err := time.Parse("15:04", hm)
	return err == nil
}

func (h *BusinessHoursHandler) Get(c *gin.Context) {
	_, organizationID := middleware.Identity(c)

	var hours []models.BusinessHours
	if err := h.db.
		Where("organization_id = ?", organizationID).
		Order("weekday ASC").
		Find(&hours).Error; err != nil {

		httperr.Internal(c, "failed_to_get_business_hours", "Could not load business hours.")
		return
	}

	c.JSON(http.StatusOK, hours)
}

// Update replaces the whole weekly schedule.
func (h *BusinessHoursHandler) Update(c *gin.Context) {
	_, organizationID := middleware.Identity(c)

	var req BusinessHoursUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	toCreate := make([]models.BusinessHours, 0, len(req.Days))
	seen := map[int]bool{}
	for _, d := range req.Days {
		if seen[d.Weekday] {
			httperr.BadRequest(c, "duplicate_weekday", "each weekday may appear only once")
			return
		}
		seen[d.Weekday] = true

		if d.Active && (!validHM(d.OpenTime) || !validHM(d.CloseTime) || d.CloseTime <= d.OpenTime) {
			httperr.BadRequest(c, "invalid_hours", "open_time and close_time must be HH:mm with open before close")
			return
		}
		if (d.LunchStart != "" || d.LunchEnd != "") && (!validHM(d.LunchStart) || !validHM(d.LunchEnd) || d.LunchEnd <= d.LunchStart) {
			httperr.BadRequest(c, "invalid_lunch", "lunch_start and lunch_end must be HH:mm with start before end")
			return
		}

		toCreate = append(toCreate, models.BusinessHours{
			OrganizationID: organizationID,
			Weekday:        d.Weekday,
			Active:         d.Active,
			OpenTime:       d.OpenTime,
			CloseTime:      d.CloseTime,
			LunchStart:     d.LunchStart,
			LunchEnd:       d.LunchEnd,
		})
	}

	err := h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("organization_id = ?", organizationID).Delete(&models.BusinessHours{}).Error; err != nil {
			return err
		}
		if len(toCreate) > 0 {
			return tx.Create(&toCreate).Error
		}
		return nil
	})
	if err != nil {
		httperr.Internal(c, "failed_to_save_business_hours", "Could not save business hours.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
