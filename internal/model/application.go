package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ApplicationStatus is a normalized, upper-case application status
type ApplicationStatus string

// Every accepted application status. PENDING is kept as a valid value
// with no transition rules attached to it.
const (
	StatusPending     ApplicationStatus = "PENDING"
	StatusApplied     ApplicationStatus = "APPLIED"
	StatusUnderReview ApplicationStatus = "UNDER_REVIEW"
	StatusInterviewed ApplicationStatus = "INTERVIEWED"
	StatusShortlisted ApplicationStatus = "SHORTLISTED"
	StatusRejected    ApplicationStatus = "REJECTED"
	StatusHired       ApplicationStatus = "HIRED"
)

// ApplicationStatuses lists every status in recommended lifecycle order.
var ApplicationStatuses = []ApplicationStatus{
	StatusPending,
	StatusApplied,
	StatusUnderReview,
	StatusInterviewed,
	StatusShortlisted,
	StatusRejected,
	StatusHired,
}

// ParseApplicationStatus normalizes s and matches it against the closed set.
func ParseApplicationStatus(s string) (ApplicationStatus, bool) {
	norm := ApplicationStatus(strings.ToUpper(strings.TrimSpace(s)))
	for _, st := range ApplicationStatuses {
		if st == norm {
			return st, true
		}
	}
	return "", false
}

// IsTerminal reports whether no further transition is expected from s.
func (s ApplicationStatus) IsTerminal() bool {
	return s == StatusHired || s == StatusRejected
}

// ApplicationDetails is what the applicant submits when applying
type ApplicationDetails struct {
	Resume          string `gorm:"type:text" json:"resume"`
	CoverLetter     string `gorm:"type:text" json:"cover_letter"`
	PortfolioURL    string `gorm:"type:text" json:"portfolio_url"`
	LinkedinURL     string `gorm:"type:text" json:"linkedin_url"`
	GithubURL       string `gorm:"type:text" json:"github_url"`
	AdditionalNotes string `gorm:"type:text" json:"additional_notes"`
}

// Application represents a job application record.
// Uniqueness of live (job, applicant) pairs is enforced by a partial index
// created in database migration.
type Application struct {
	ID uint `gorm:"primaryKey;autoIncrement" json:"id"`

	ApplicantID uuid.UUID `gorm:"type:uuid;not null;index" json:"applicant_id"`
	Applicant   User      `gorm:"foreignKey:ApplicantID;references:ID" json:"-"`

	JobID uint `gorm:"not null;index" json:"job_id"`
	Job   Job  `gorm:"foreignKey:JobID;references:ID" json:"-"`

	Status             ApplicationStatus `gorm:"type:text;not null" json:"status"`
	ApplicationDetails `gorm:"embedded"`
	RecruiterNotes     string `gorm:"type:text" json:"recruiter_notes"`

	AppliedAt   time.Time      `gorm:"<-:create" json:"applied_at"`
	CompletedAt *time.Time     `json:"completed_at,omitempty"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
	UpdatedAt   time.Time      `json:"updated_at"`
}
