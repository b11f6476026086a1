package model

import (
	"strconv"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Role is the numeric role id carried by users and tokens.
type Role int

// Known roles
const (
	RoleAdmin     Role = 1
	RoleRecruiter Role = 2
	RoleJobSeeker Role = 3
)

// String return the role label
func (r Role) String() string {
	switch r {
	case RoleAdmin:
		return "ADMIN"
	case RoleRecruiter:
		return "RECRUITER"
	case RoleJobSeeker:
		return "JOB_SEEKER"
	}
	return "UNKNOWN(" + strconv.Itoa(int(r)) + ")"
}

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleRecruiter || r == RoleJobSeeker
}

// ParseRole turns a numeric role id into a Role.
func ParseRole(id int) (Role, bool) {
	r := Role(id)
	return r, r.Valid()
}

// User is gorm model for every account regardless of role
type User struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Username  string    `gorm:"uniqueIndex;not null" json:"username"`
	Email     string    `gorm:"uniqueIndex;not null" json:"email"`
	Password  string    `json:"-"`
	GoogleID  *string   `gorm:"uniqueIndex" json:"-"`
	Role      Role      `gorm:"not null;index" json:"role_id"`
	FullName  string    `json:"fullname"`
	Active    bool      `gorm:"not null" json:"active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Profile *JobSeekerProfile `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"profile,omitempty"`
}

// BeforeCreate assigns a fresh uuid when the caller did not.
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}
