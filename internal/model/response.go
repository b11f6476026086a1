package model

import (
	"time"

	"github.com/google/uuid"
)

// AppliedDateLayout is how application dates are formatted in candidate projections
const AppliedDateLayout = "2006-01-02"

// LoginResponse is returned after a successful login
type LoginResponse struct {
	AccessToken string    `json:"accessToken"`
	UserID      uuid.UUID `json:"userId"`
	RoleID      Role      `json:"roleId"`
}

// CandidateApplication is an application as its applicant sees it
type CandidateApplication struct {
	ID               uint              `json:"id"`
	JobID            uint              `json:"job_id"`
	JobTitle         string            `json:"job_title"`
	OrganizationName string            `json:"organization_name"`
	Status           ApplicationStatus `json:"status"`
	AppliedDate      string            `json:"applied_date"`
	CompletedAt      *time.Time        `json:"completed_at,omitempty"`
}

// ApplicantSkill is a skill name with the claimed proficiency
type ApplicantSkill struct {
	Name        string      `json:"name"`
	Proficiency Proficiency `json:"proficiency"`
}

// RecruiterApplication is an application as the managing recruiter sees it
type RecruiterApplication struct {
	ID             uint              `json:"id"`
	JobID          uint              `json:"job_id"`
	ApplicantID    uuid.UUID         `json:"applicant_id"`
	ApplicantName  string            `json:"applicant_name"`
	ApplicantEmail string            `json:"applicant_email"`
	Skills         []ApplicantSkill  `json:"skills"`
	Status         ApplicationStatus `json:"status"`
	ApplicationDetails
	RecruiterNotes string     `json:"recruiter_notes"`
	AppliedAt      time.Time  `json:"applied_at"`
	CompletedAt    *time.Time `json:"completed_at,omitempty"`
}

// NewCandidateApplication projects an application with its job and organization preloaded
func NewCandidateApplication(a Application) CandidateApplication {
	return CandidateApplication{
		ID:               a.ID,
		JobID:            a.JobID,
		JobTitle:         a.Job.Title,
		OrganizationName: a.Job.Organization.Name,
		Status:           a.Status,
		AppliedDate:      a.AppliedAt.Format(AppliedDateLayout),
		CompletedAt:      a.CompletedAt,
	}
}

// NewRecruiterApplication projects an application with its applicant preloaded
func NewRecruiterApplication(a Application) RecruiterApplication {
	skills := []ApplicantSkill{}
	if a.Applicant.Profile != nil {
		for _, s := range a.Applicant.Profile.Skills {
			skills = append(skills, ApplicantSkill{Name: s.Skill.Name, Proficiency: s.Proficiency})
		}
	}
	return RecruiterApplication{
		ID:                 a.ID,
		JobID:              a.JobID,
		ApplicantID:        a.ApplicantID,
		ApplicantName:      a.Applicant.FullName,
		ApplicantEmail:     a.Applicant.Email,
		Skills:             skills,
		Status:             a.Status,
		ApplicationDetails: a.ApplicationDetails,
		RecruiterNotes:     a.RecruiterNotes,
		AppliedAt:          a.AppliedAt,
		CompletedAt:        a.CompletedAt,
	}
}
