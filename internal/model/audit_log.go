package model

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Audited entity types
const (
	AuditEntityUser         = "USER"
	AuditEntityOrganization = "ORGANIZATION"
	AuditEntityJob          = "JOB"
	AuditEntityApplication  = "APPLICATION"
)

// Audited actions
const (
	AuditActionRoleChanged   = "ROLE_CHANGED"
	AuditActionActivated     = "ACTIVATED"
	AuditActionDeactivated   = "DEACTIVATED"
	AuditActionVerified      = "VERIFIED"
	AuditActionUnverified    = "UNVERIFIED"
	AuditActionDeleted       = "DELETED"
	AuditActionRestored      = "RESTORED"
	AuditActionStatusChanged = "STATUS_CHANGED"
)

// ErrAuditLogImmutable is returned when something tries to change a stored audit entry.
var ErrAuditLogImmutable = errors.New("audit log entries are append-only")

// AuditLog is one record of a privileged mutation
type AuditLog struct {
	ID          uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	EntityType  string    `gorm:"not null;index:idx_audit_entity" json:"entity_type"`
	EntityID    string    `gorm:"not null;index:idx_audit_entity" json:"entity_id"`
	Action      string    `gorm:"not null" json:"action"`
	PerformedBy uuid.UUID `gorm:"type:uuid;not null" json:"performed_by"`
	CreatedAt   time.Time `gorm:"<-:create;index" json:"timestamp"`
}

// BeforeUpdate rejects every update of an audit entry.
func (*AuditLog) BeforeUpdate(*gorm.DB) error { return ErrAuditLogImmutable }

// BeforeDelete rejects every delete of an audit entry.
func (*AuditLog) BeforeDelete(*gorm.DB) error { return ErrAuditLogImmutable }
