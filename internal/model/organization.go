package model

import (
	"time"

	"github.com/google/uuid"
)

// EditableOrganizationInfo contains organization fields the owning recruiter may change
type EditableOrganizationInfo struct {
	Name         string `gorm:"not null" json:"name"`
	Website      string `json:"website"`
	City         string `json:"city"`
	ContactEmail string `json:"contact_email"`
}

// Organization is the company profile owned by exactly one recruiter.
type Organization struct {
	ID                       uint `gorm:"primaryKey;autoIncrement" json:"id"`
	EditableOrganizationInfo `gorm:"embedded"`
	Verified                 bool      `gorm:"not null;default:false" json:"verified"`
	RecruiterUserID          uuid.UUID `gorm:"type:uuid;not null;uniqueIndex" json:"recruiter_user_id"`
	Recruiter                User      `gorm:"foreignKey:RecruiterUserID;references:ID;constraint:OnDelete:CASCADE" json:"-"`
	CreatedAt                time.Time `json:"created_at"`
	UpdatedAt                time.Time `json:"updated_at"`
}
