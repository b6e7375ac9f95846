package auditlog

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/groom-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/groom-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/groom-scheduler/internal/dto"
	"github.com/BruksfildServices01/groom-scheduler/internal/httperr"
	"github.com/BruksfildServices01/groom-scheduler/internal/timezone"
)

const (
	defaultLimit = 50
	maxLimit     = 200
)

type ListAuditLogsInput struct {
	OrganizationID uuid.UUID
	// empty means every action
	Actions  []string
	EntityID *uuid.UUID

	// YYYY-MM-DD in the organization's timezone, both inclusive
	From string
	To   string

	Page  int
	Limit int
}

type ListAuditLogsOutput struct {
	Page  int               `json:"page"`
	Limit int               `json:"limit"`
	Total int64             `json:"total"`
	Logs  []dto.AuditLogDTO `json:"logs"`
}

type ListAuditLogs struct {
	repo domain.Repository
	logs audit.Reader
}

func NewListAuditLogs(repo domain.Repository, logs audit.Reader) *ListAuditLogs {
	return &ListAuditLogs{repo: repo, logs: logs}
}

func (uc *ListAuditLogs) Execute(
	ctx context.Context,
	in ListAuditLogsInput,
) (*ListAuditLogsOutput, error) {

	for _, a := range in.Actions {
		if !audit.KnownAction(a) {
			return nil, httperr.Invalid("unknown_action", "unknown audit action "+a)
		}
	}

	page := in.Page
	if page <= 0 {
		page = 1
	}
	limit := in.Limit
	if limit <= 0 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}

	org, err := uc.repo.GetOrganizationByID(ctx, in.OrganizationID)
	if err != nil {
		return nil, err
	}
	loc := timezone.Location(org.Timezone)

	q := audit.Query{
		OrganizationID: org.ID,
		Actions:        in.Actions,
		EntityID:       in.EntityID,
		Limit:          limit,
		Offset:         (page - 1) * limit,
	}

	if in.From != "" {
		if q.From, err = time.ParseInLocation("2006-01-02", in.From, loc); err != nil {
			return nil, httperr.Invalid("invalid_date", "from must be YYYY-MM-DD")
		}
	}
	if in.To != "" {
		to, err := time.ParseInLocation("2006-01-02", in.To, loc)
		if err != nil {
			return nil, httperr.Invalid("invalid_date", "to must be YYYY-MM-DD")
		}
		q.To = to.AddDate(0, 0, 1)
	}
	if !q.From.IsZero() && !q.To.IsZero() && !q.From.Before(q.To) {
		return nil, httperr.Invalid("invalid_range", "from must not be after to")
	}

	rows, total, err := uc.logs.List(ctx, q)
	if err != nil {
		return nil, err
	}

	out := &ListAuditLogsOutput{
		Page:  page,
		Limit: limit,
		Total: total,
		Logs:  make([]dto.AuditLogDTO, 0, len(rows)),
	}
	for _, l := range rows {
		out.Logs = append(out.Logs, dto.FromAuditLog(l, loc))
	}
	return out, nil
}
