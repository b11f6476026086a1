package model

import "github.com/google/uuid"

// Actor is the authenticated identity performing an operation.
// Services receive it explicitly instead of reading it from request state.
type Actor struct {
	UserID uuid.UUID
	Role   Role
}

// IsAdmin reports whether the actor holds the admin role
func (a Actor) IsAdmin() bool { return a.Role == RoleAdmin }

// IsRecruiter reports whether the actor holds the recruiter role
func (a Actor) IsRecruiter() bool { return a.Role == RoleRecruiter }

// IsJobSeeker reports whether the actor holds the job seeker role
func (a Actor) IsJobSeeker() bool { return a.Role == RoleJobSeeker }
