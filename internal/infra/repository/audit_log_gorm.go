package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/groom-scheduler/internal/audit"
	"github.com/BruksfildServices01/groom-scheduler/internal/models"
)

type AuditLogGormRepository struct {
	db *gorm.DB
}

func NewAuditLogGormRepository(db *gorm.DB) *AuditLogGormRepository {
	return &AuditLogGormRepository{db: db}
}

// List returns one page of matching rows and the total match count.
func (r *AuditLogGormRepository) List(
	ctx context.Context,
	q audit.Query,
) ([]models.AuditLog, int64, error) {

	tx := r.db.WithContext(ctx).
		Model(&models.AuditLog{}).
		Where("organization_id = ?", q.OrganizationID)

	if len(q.Actions) > 0 {
		tx = tx.Where("action IN ?", q.Actions)
	}
	if q.EntityID != nil {
		tx = tx.Where("entity_id = ?", *q.EntityID)
	}
	if !q.From.IsZero() {
		tx = tx.Where("created_at >= ?", q.From.UTC())
	}
	if !q.To.IsZero() {
		tx = tx.Where("created_at < ?", q.To.UTC())
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var logs []models.AuditLog
	if err := tx.
		Order("created_at DESC").
		Limit(q.Limit).
		Offset(q.Offset).
		Find(&logs).Error; err != nil {
		return nil, 0, err
	}

	return logs, total, nil
}

// Compile-time check
var _ audit.Reader = (*AuditLogGormRepository)(nil)
