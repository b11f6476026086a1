// Package authz answers whether an actor may act on a stored entity.
//
// Every predicate resolves the minimal data it needs from the store and
// returns false for ids that do not exist. Store failures are logged and
// also answered with false, so callers only ever deal with a boolean.
package authz

import (
	"errors"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"jobboard-backend/internal/model"
)

// Engine evaluates authorization predicates against a store handle
type Engine struct {
	db *gorm.DB
}

// New returns an Engine reading from db
func New(db *gorm.DB) *Engine {
	return &Engine{db: db}
}

// WithTx returns an Engine that reads inside tx
func (e *Engine) WithTx(tx *gorm.DB) *Engine {
	return &Engine{db: tx}
}

func (e *Engine) exists(predicate string, q *gorm.DB) bool {
	var count int64
	if err := q.Count(&count).Error; err != nil {
		log.WithFields(log.Fields{
			"error_type": "db",
			"predicate":  predicate,
		}).Errorf("authorization lookup failed: %v", err)
		return false
	}
	return count > 0
}

// CanManageJob reports whether the job exists, is not deleted and was posted by recruiterID.
func (e *Engine) CanManageJob(recruiterID uuid.UUID, jobID uint) bool {
	return e.exists("canManageJob", e.db.Model(&model.Job{}).
		Where("id = ? AND recruiter_user_id = ?", jobID, recruiterID))
}

// IsJobOwner is CanManageJob without the deletion filter.
// It lets owners address a deleted job so they can be told it is already deleted.
func (e *Engine) IsJobOwner(recruiterID uuid.UUID, jobID uint) bool {
	return e.exists("isJobOwner", e.db.Unscoped().Model(&model.Job{}).
		Where("id = ? AND recruiter_user_id = ?", jobID, recruiterID))
}

// CanManageApplication reports whether the application exists and recruiterID can manage its job.
func (e *Engine) CanManageApplication(recruiterID uuid.UUID, applicationID uint) bool {
	var app model.Application
	err := e.db.Select("id", "job_id").Take(&app, applicationID).Error
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.WithFields(log.Fields{
				"error_type": "db",
				"predicate":  "canManageApplication",
			}).Errorf("authorization lookup failed: %v", err)
		}
		return false
	}
	return e.CanManageJob(recruiterID, app.JobID)
}

// OwnsApplication reports whether userID submitted the application.
func (e *Engine) OwnsApplication(userID uuid.UUID, applicationID uint) bool {
	return e.exists("ownsApplication", e.db.Model(&model.Application{}).
		Where("id = ? AND applicant_id = ?", applicationID, userID))
}

// IsOrganizationVerified reports whether the organization exists and is verified.
func (e *Engine) IsOrganizationVerified(orgID uint) bool {
	return e.exists("isOrganizationVerified", e.db.Model(&model.Organization{}).
		Where("id = ? AND verified = ?", orgID, true))
}

// CanActAsVerifiedRecruiterForOrg reports whether recruiterID owns the organization and it is verified.
func (e *Engine) CanActAsVerifiedRecruiterForOrg(recruiterID uuid.UUID, orgID uint) bool {
	return e.exists("canActAsVerifiedRecruiterForOrg", e.db.Model(&model.Organization{}).
		Where("id = ? AND recruiter_user_id = ? AND verified = ?", orgID, recruiterID, true))
}

// CanViewApplication applies the visibility rule for a single application:
// admins see any live application, recruiters the ones they manage, job seekers their own.
func (e *Engine) CanViewApplication(actor model.Actor, applicationID uint) bool {
	switch actor.Role {
	case model.RoleAdmin:
		return e.exists("canViewApplication", e.db.Model(&model.Application{}).Where("id = ?", applicationID))
	case model.RoleRecruiter:
		return e.CanManageApplication(actor.UserID, applicationID)
	case model.RoleJobSeeker:
		return e.OwnsApplication(actor.UserID, applicationID)
	}
	return false
}
