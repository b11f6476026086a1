package service

import (
	"errors"

	"gorm.io/gorm"

	"jobboard-backend/internal/apperror"
	"jobboard-backend/internal/database"
	"jobboard-backend/internal/model"
	"jobboard-backend/internal/utilities"
)

// OrganizationService manages recruiter organizations and their verification
type OrganizationService struct {
	db    *gorm.DB
	audit *AuditLogger
	// bypassVerification creates organizations already verified
	bypassVerification bool
}

// NewOrganizationService wires an OrganizationService
func NewOrganizationService(db *gorm.DB, audit *AuditLogger, bypassVerification bool) *OrganizationService {
	return &OrganizationService{db: db, audit: audit, bypassVerification: bypassVerification}
}

func errOrganizationExists() error {
	return apperror.Conflict("you already have an organization")
}

// Create registers the acting recruiter's organization. A recruiter may own one.
func (s *OrganizationService) Create(actor model.Actor, info model.EditableOrganizationInfo) (model.Organization, error) {
	if err := requireRole(actor, model.RoleRecruiter); err != nil {
		return model.Organization{}, err
	}
	if info.Name == "" {
		return model.Organization{}, apperror.Validation("name", "name is required")
	}

	var count int64
	if err := s.db.Model(&model.Organization{}).Where("recruiter_user_id = ?", actor.UserID).Count(&count).Error; err != nil {
		return model.Organization{}, apperror.Internal(err, "failed to check organization")
	}
	if count > 0 {
		return model.Organization{}, errOrganizationExists()
	}

	org := model.Organization{
		EditableOrganizationInfo: info,
		Verified:                 s.bypassVerification,
		RecruiterUserID:          actor.UserID,
	}
	if err := s.db.Omit("Recruiter").Create(&org).Error; err != nil {
		if database.IsUniqueViolation(err) {
			return model.Organization{}, errOrganizationExists()
		}
		return model.Organization{}, apperror.Internal(err, "failed to create organization")
	}
	return org, nil
}

// Mine returns the acting recruiter's organization
func (s *OrganizationService) Mine(actor model.Actor) (model.Organization, error) {
	var org model.Organization
	if err := s.db.Take(&org, "recruiter_user_id = ?", actor.UserID).Error; err != nil {
		return org, storeError(err, "you do not have an organization yet")
	}
	return org, nil
}

// UpdateMine merges the non-empty fields of info into the acting recruiter's organization.
func (s *OrganizationService) UpdateMine(actor model.Actor, info model.EditableOrganizationInfo) (model.Organization, error) {
	if err := requireRole(actor, model.RoleRecruiter); err != nil {
		return model.Organization{}, err
	}
	org, err := s.Mine(actor)
	if err != nil {
		return org, err
	}

	utilities.MergeNonEmpty(&org.EditableOrganizationInfo, &info)
	err = s.db.Model(&org).
		Select("name", "website", "city", "contact_email").
		Updates(model.Organization{EditableOrganizationInfo: org.EditableOrganizationInfo}).Error
	if err != nil {
		return org, apperror.Internal(err, "failed to update organization")
	}
	return org, nil
}

// Get returns an organization by id
func (s *OrganizationService) Get(id uint) (model.Organization, error) {
	var org model.Organization
	if err := s.db.Take(&org, id).Error; err != nil {
		return org, storeError(err, "organization %d not found", id)
	}
	return org, nil
}

// SetVerified sets the verified flag. Admin only, audited.
func (s *OrganizationService) SetVerified(actor model.Actor, id uint, verified bool) (model.Organization, error) {
	if err := requireRole(actor, model.RoleAdmin); err != nil {
		return model.Organization{}, err
	}

	action := model.AuditActionUnverified
	if verified {
		action = model.AuditActionVerified
	}

	var org model.Organization
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Take(&org, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperror.NotFound("organization %d not found", id)
			}
			return apperror.Internal(err, "failed to load organization")
		}
		if err := tx.Model(&org).Update("verified", verified).Error; err != nil {
			return apperror.Internal(err, "failed to update organization")
		}
		org.Verified = verified
		return s.audit.Record(tx, model.AuditEntityOrganization, id, action, actor.UserID)
	})
	return org, err
}
