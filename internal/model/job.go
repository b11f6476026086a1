package model

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Range validation errors
var (
	ErrSalaryRange     = errors.New("salary_min must not exceed salary_max")
	ErrExperienceRange = errors.New("experience_min must not exceed experience_max")
)

// EditableJobInfo contains job fields that can be set on create and replaced on update
type EditableJobInfo struct {
	Title         string     `gorm:"type:text;not null" json:"title" binding:"required"`
	Description   string     `gorm:"type:text" json:"description"`
	Location      string     `gorm:"type:text" json:"location"`
	SalaryMin     *int       `json:"salary_min" binding:"omitempty,gte=0"`
	SalaryMax     *int       `json:"salary_max" binding:"omitempty,gte=0"`
	ExperienceMin *int       `json:"experience_min" binding:"omitempty,gte=0"`
	ExperienceMax *int       `json:"experience_max" binding:"omitempty,gte=0"`
	JobType       string     `gorm:"type:text" json:"job_type"`
	Deadline      *time.Time `json:"deadline,omitempty"`
}

// Validate checks that both ranges are ordered when both bounds are present.
func (e EditableJobInfo) Validate() error {
	if e.SalaryMin != nil && e.SalaryMax != nil && *e.SalaryMin > *e.SalaryMax {
		return ErrSalaryRange
	}
	if e.ExperienceMin != nil && e.ExperienceMax != nil && *e.ExperienceMin > *e.ExperienceMax {
		return ErrExperienceRange
	}
	return nil
}

// Job is gorm model for a job posting
type Job struct {
	ID              uint `gorm:"primaryKey;autoIncrement" json:"id"`
	EditableJobInfo `gorm:"embedded"`

	OrganizationID  uint         `gorm:"not null;index" json:"organization_id"`
	Organization    Organization `gorm:"foreignKey:OrganizationID;references:ID" json:"organization,omitempty"`
	RecruiterUserID uuid.UUID    `gorm:"type:uuid;not null;index" json:"recruiter_user_id"`

	IsActive  bool           `gorm:"not null;index" json:"is_active"`
	PostedAt  time.Time      `json:"posted_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
	UpdatedAt time.Time      `json:"updated_at"`

	Skills []Skill `gorm:"many2many:job_skills;" json:"skills"`
}
