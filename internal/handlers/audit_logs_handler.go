package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/groom-scheduler/internal/httperr"
	"github.com/BruksfildServices01/groom-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/groom-scheduler/internal/middleware"
	ucAuditLog "github.com/BruksfildServices01/groom-scheduler/internal/usecase/auditlog"
)

type AuditLogsHandler struct {
	list *ucAuditLog.ListAuditLogs
}

func NewAuditLogsHandler(list *ucAuditLog.ListAuditLogs) *AuditLogsHandler {
	return &AuditLogsHandler{list: list}
}

func queryInt(c *gin.Context, key string) (int, bool) {
	raw := c.Query(key)
	if raw == "" {
		return 0, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		httperr.BadRequest(c, "invalid_"+key, key+" must be a non-negative integer")
		return 0, false
	}
	return n, true
}

// List pages through the booking trail. Query: action (repeatable),
// entity_id, from, to (YYYY-MM-DD), page, limit.
func (h *AuditLogsHandler) List(c *gin.Context) {
	_, organizationID := middleware.Identity(c)

	entityID, ok := optionalUUID(c, "entity_id")
	if !ok {
		return
	}
	page, ok := queryInt(c, "page")
	if !ok {
		return
	}
	limit, ok := queryInt(c, "limit")
	if !ok {
		return
	}

	out, err := h.list.Execute(c.Request.Context(), ucAuditLog.ListAuditLogsInput{
		OrganizationID: organizationID,
		Actions:        c.QueryArray("action"),
		EntityID:       entityID,
		From:           c.Query("from"),
		To:             c.Query("to"),
		Page:           page,
		Limit:          limit,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, out)
}
