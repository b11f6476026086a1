package service

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"jobboard-backend/internal/apperror"
	"jobboard-backend/internal/authz"
	"jobboard-backend/internal/model"
)

// editableJobColumns are replaced wholesale by Update
var editableJobColumns = []string{
	"title", "description", "location",
	"salary_min", "salary_max",
	"experience_min", "experience_max",
	"job_type", "deadline",
}

// JobFilter narrows ListActive
type JobFilter struct {
	Search   string
	Location string
	JobType  string
	// Oldest lists oldest postings first
	Oldest bool
}

// JobService manages job postings
type JobService struct {
	db    *gorm.DB
	authz *authz.Engine
	audit *AuditLogger
	now   func() time.Time
}

// NewJobService wires a JobService
func NewJobService(db *gorm.DB, engine *authz.Engine, audit *AuditLogger) *JobService {
	return &JobService{db: db, authz: engine, audit: audit, now: utcNow}
}

// Create posts a job for the acting recruiter's verified organization, then
// tries to attach skills. Skill failures are logged and never undo the job.
func (s *JobService) Create(actor model.Actor, info model.EditableJobInfo, skillIDs []uint) (model.Job, error) {
	if err := requireRole(actor, model.RoleRecruiter); err != nil {
		return model.Job{}, err
	}
	if err := validateJobInfo(info); err != nil {
		return model.Job{}, err
	}

	var org model.Organization
	if err := s.db.Select("id").Take(&org, "recruiter_user_id = ?", actor.UserID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return model.Job{}, apperror.Forbidden("create an organization before posting jobs")
		}
		return model.Job{}, apperror.Internal(err, "failed to load organization")
	}
	if !s.authz.CanActAsVerifiedRecruiterForOrg(actor.UserID, org.ID) {
		return model.Job{}, apperror.Forbidden("your organization is not verified yet")
	}

	job := model.Job{
		EditableJobInfo: info,
		OrganizationID:  org.ID,
		RecruiterUserID: actor.UserID,
		IsActive:        true,
		PostedAt:        s.now(),
	}
	if err := s.db.Omit(clause.Associations).Create(&job).Error; err != nil {
		return model.Job{}, apperror.Internal(err, "failed to create job")
	}

	job.Skills = s.attachSkills(&job, skillIDs)
	return job, nil
}

// attachSkills appends whichever of skillIDs exist and returns what was attached.
func (s *JobService) attachSkills(job *model.Job, skillIDs []uint) []model.Skill {
	if len(skillIDs) == 0 {
		return []model.Skill{}
	}
	logger := log.WithFields(log.Fields{"job_id": job.ID, "skill_ids": skillIDs})

	var skills []model.Skill
	if err := s.db.Where("id IN ?", lo.Uniq(skillIDs)).Find(&skills).Error; err != nil {
		logger.WithField("error_type", "db").Errorf("failed to resolve skills for job: %v", err)
		return []model.Skill{}
	}
	if missing := len(lo.Uniq(skillIDs)) - len(skills); missing > 0 {
		logger.Warnf("%d skill(s) not found, attaching the rest", missing)
	}
	if len(skills) == 0 {
		return []model.Skill{}
	}
	if err := s.db.Model(job).Association("Skills").Append(skills); err != nil {
		logger.WithField("error_type", "db").Errorf("failed to attach skills to job: %v", err)
		return []model.Skill{}
	}
	return skills
}

// Update replaces the editable fields of a live job. A nil skillIDs leaves
// skills untouched; an empty one clears them.
func (s *JobService) Update(actor model.Actor, jobID uint, info model.EditableJobInfo, skillIDs []uint) (model.Job, error) {
	if err := requireRole(actor, model.RoleAdmin, model.RoleRecruiter); err != nil {
		return model.Job{}, err
	}
	if err := validateJobInfo(info); err != nil {
		return model.Job{}, err
	}

	job, err := s.Get(jobID)
	if err != nil {
		return model.Job{}, err
	}
	if actor.IsRecruiter() && !s.authz.CanManageJob(actor.UserID, jobID) {
		return model.Job{}, apperror.Forbidden("you cannot manage this job")
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&job).Select(editableJobColumns).Updates(model.Job{EditableJobInfo: info}).Error; err != nil {
			return apperror.Internal(err, "failed to update job")
		}
		if skillIDs == nil {
			return nil
		}
		if len(skillIDs) == 0 {
			if err := tx.Model(&job).Association("Skills").Clear(); err != nil {
				return apperror.Internal(err, "failed to clear job skills")
			}
			return nil
		}

		ids := lo.Uniq(skillIDs)
		var skills []model.Skill
		if err := tx.Where("id IN ?", ids).Find(&skills).Error; err != nil {
			return apperror.Internal(err, "failed to resolve skills")
		}
		if len(skills) != len(ids) {
			found := lo.Map(skills, func(sk model.Skill, _ int) uint { return sk.ID })
			missing, _ := lo.Difference(ids, found)
			return apperror.Validation("skill_ids", "unknown skill ids %v", missing)
		}
		if err := tx.Model(&job).Association("Skills").Replace(skills); err != nil {
			return apperror.Internal(err, "failed to replace job skills")
		}
		return nil
	})
	if err != nil {
		return model.Job{}, err
	}
	return s.Get(jobID)
}

// SoftDelete marks a job deleted and inactive in one statement. The owner or
// an admin may do it; a second call fails with Conflict.
func (s *JobService) SoftDelete(actor model.Actor, jobID uint) error {
	if err := requireRole(actor, model.RoleAdmin, model.RoleRecruiter); err != nil {
		return err
	}

	var job model.Job
	if err := s.db.Unscoped().Select("id", "deleted_at").Take(&job, jobID).Error; err != nil {
		return storeError(err, "job %d not found", jobID)
	}
	if actor.IsRecruiter() && !s.authz.IsJobOwner(actor.UserID, jobID) {
		return apperror.Forbidden("you cannot manage this job")
	}
	if job.DeletedAt.Valid {
		return apperror.Conflict("job %d is already deleted", jobID)
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Unscoped().Model(&model.Job{}).
			Where("id = ? AND deleted_at IS NULL", jobID).
			Updates(map[string]any{"deleted_at": s.now(), "is_active": false})
		if res.Error != nil {
			return apperror.Internal(res.Error, "failed to delete job")
		}
		if res.RowsAffected == 0 {
			return apperror.Conflict("job %d is already deleted", jobID)
		}
		return s.audit.Record(tx, model.AuditEntityJob, jobID, model.AuditActionDeleted, actor.UserID)
	})
}

// Restore clears the deletion mark and reactivates a job. Admin only.
func (s *JobService) Restore(actor model.Actor, jobID uint) (model.Job, error) {
	if err := requireRole(actor, model.RoleAdmin); err != nil {
		return model.Job{}, err
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Unscoped().Model(&model.Job{}).
			Where("id = ?", jobID).
			Updates(map[string]any{"deleted_at": nil, "is_active": true})
		if res.Error != nil {
			return apperror.Internal(res.Error, "failed to restore job")
		}
		if res.RowsAffected == 0 {
			return apperror.NotFound("job %d not found", jobID)
		}
		return s.audit.Record(tx, model.AuditEntityJob, jobID, model.AuditActionRestored, actor.UserID)
	})
	if err != nil {
		return model.Job{}, err
	}
	return s.Get(jobID)
}

// Get returns a live job with its organization and skills.
func (s *JobService) Get(jobID uint) (model.Job, error) {
	var job model.Job
	if err := s.db.Preload("Organization").Preload("Skills").Take(&job, jobID).Error; err != nil {
		return job, storeError(err, "job %d not found", jobID)
	}
	return job, nil
}

// ListActive returns live, active jobs, newest first unless f.Oldest is set.
func (s *JobService) ListActive(f JobFilter) ([]model.Job, error) {
	q := s.db.Preload("Organization").Preload("Skills").Where("is_active = ?", true)

	if term := strings.ToLower(strings.TrimSpace(f.Search)); term != "" {
		like := "%" + term + "%"
		q = q.Where("LOWER(title) LIKE ? OR LOWER(description) LIKE ?", like, like)
	}
	if loc := strings.ToLower(strings.TrimSpace(f.Location)); loc != "" {
		q = q.Where("LOWER(location) LIKE ?", "%"+loc+"%")
	}
	if typ := strings.TrimSpace(f.JobType); typ != "" {
		q = q.Where("UPPER(job_type) = ?", strings.ToUpper(typ))
	}

	var jobs []model.Job
	err := q.Order(clause.OrderByColumn{Column: clause.Column{Name: "posted_at"}, Desc: !f.Oldest}).
		Order("id").
		Find(&jobs).Error
	if err != nil {
		return nil, apperror.Internal(err, "failed to list jobs")
	}
	return jobs, nil
}

// ListByRecruiter returns the live jobs posted by recruiterID, active or not.
func (s *JobService) ListByRecruiter(recruiterID uuid.UUID) ([]model.Job, error) {
	var jobs []model.Job
	err := s.db.Preload("Skills").
		Where("recruiter_user_id = ?", recruiterID).
		Order("posted_at DESC, id DESC").
		Find(&jobs).Error
	if err != nil {
		return nil, apperror.Internal(err, "failed to list jobs")
	}
	return jobs, nil
}

// SweepExpired deactivates live jobs whose deadline is before now and
// returns how many were changed.
func (s *JobService) SweepExpired(now time.Time) (int64, error) {
	res := s.db.Model(&model.Job{}).
		Where("is_active = ? AND deadline IS NOT NULL AND deadline < ?", true, now).
		Update("is_active", false)
	if res.Error != nil {
		return 0, apperror.Internal(res.Error, "failed to deactivate expired jobs")
	}
	return res.RowsAffected, nil
}

func validateJobInfo(info model.EditableJobInfo) error {
	if strings.TrimSpace(info.Title) == "" {
		return apperror.Validation("title", "title is required")
	}
	switch info.Validate() {
	case model.ErrSalaryRange:
		return apperror.Validation("salary_min", model.ErrSalaryRange.Error())
	case model.ErrExperienceRange:
		return apperror.Validation("experience_min", model.ErrExperienceRange.Error())
	}
	return nil
}
