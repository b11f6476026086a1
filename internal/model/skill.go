package model

import (
	"strings"

	"github.com/google/uuid"
)

// Proficiency is the level a job seeker claims for a skill
type Proficiency string

// Accepted proficiency levels
const (
	ProficiencyBeginner     Proficiency = "BEGINNER"
	ProficiencyIntermediate Proficiency = "INTERMEDIATE"
	ProficiencyExpert       Proficiency = "EXPERT"
)

// ParseProficiency normalizes s and matches it against the accepted levels.
func ParseProficiency(s string) (Proficiency, bool) {
	switch p := Proficiency(strings.ToUpper(strings.TrimSpace(s))); p {
	case ProficiencyBeginner, ProficiencyIntermediate, ProficiencyExpert:
		return p, true
	}
	return "", false
}

// Skill is a named skill shared by jobs and job seeker profiles
type Skill struct {
	ID   uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Name string `gorm:"uniqueIndex;not null" json:"name"`
}

// JobSeekerProfile holds the job seeker side of a user
type JobSeekerProfile struct {
	ID       uint             `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID   uuid.UUID        `gorm:"type:uuid;not null;uniqueIndex" json:"user_id"`
	Headline string           `json:"headline"`
	Skills   []JobSeekerSkill `gorm:"foreignKey:ProfileID;constraint:OnDelete:CASCADE" json:"skills"`
}

// JobSeekerSkill is the association between a profile and a skill
type JobSeekerSkill struct {
	ProfileID   uint        `gorm:"primaryKey" json:"-"`
	SkillID     uint        `gorm:"primaryKey" json:"skill_id"`
	Skill       Skill       `gorm:"foreignKey:SkillID;references:ID" json:"skill"`
	Proficiency Proficiency `gorm:"type:text;not null" json:"proficiency"`
}
