package service

import (
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"jobboard-backend/internal/apperror"
	"jobboard-backend/internal/model"
)

// AuditLogger appends records of privileged mutations. It has no update or delete path.
type AuditLogger struct {
	db *gorm.DB
}

// NewAuditLogger returns a logger writing to db
func NewAuditLogger(db *gorm.DB) *AuditLogger {
	return &AuditLogger{db: db}
}

// Record appends one entry. Pass the surrounding transaction as tx so the
// entry commits or rolls back together with the mutation it describes.
func (l *AuditLogger) Record(tx *gorm.DB, entityType string, entityID any, action string, performedBy uuid.UUID) error {
	if tx == nil {
		tx = l.db
	}
	entry := model.AuditLog{
		EntityType:  entityType,
		EntityID:    fmt.Sprint(entityID),
		Action:      action,
		PerformedBy: performedBy,
	}
	if err := tx.Create(&entry).Error; err != nil {
		return apperror.Internal(err, "failed to write audit log")
	}
	return nil
}

// List returns one page of entries, newest first.
func (l *AuditLogger) List(page, size int) (model.Page[model.AuditLog], error) {
	out := model.Page[model.AuditLog]{Page: page, Size: size, Items: []model.AuditLog{}}
	if err := l.db.Model(&model.AuditLog{}).Count(&out.Total).Error; err != nil {
		return out, apperror.Internal(err, "failed to count audit logs")
	}
	if err := l.db.Scopes(paginate(page, size)).Order("created_at DESC, id DESC").Find(&out.Items).Error; err != nil {
		return out, apperror.Internal(err, "failed to list audit logs")
	}
	return out, nil
}

// ForEntity returns every entry recorded for one entity, oldest first.
func (l *AuditLogger) ForEntity(entityType string, entityID any) ([]model.AuditLog, error) {
	var entries []model.AuditLog
	err := l.db.Where("entity_type = ? AND entity_id = ?", entityType, fmt.Sprint(entityID)).
		Order("id ASC").Find(&entries).Error
	if err != nil {
		return nil, apperror.Internal(err, "failed to list audit logs")
	}
	return entries, nil
}
