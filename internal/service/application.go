package service

import (
	"errors"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"jobboard-backend/internal/apperror"
	"jobboard-backend/internal/authz"
	"jobboard-backend/internal/database"
	"jobboard-backend/internal/metrics"
	"jobboard-backend/internal/model"
	"jobboard-backend/internal/notification"
)

// ApplicationService runs the application lifecycle: apply, review, soft delete.
type ApplicationService struct {
	db       *gorm.DB
	authz    *authz.Engine
	audit    *AuditLogger
	notifier Notifier
	now      func() time.Time
}

// NewApplicationService wires an ApplicationService. A nil notifier drops notifications.
func NewApplicationService(db *gorm.DB, engine *authz.Engine, audit *AuditLogger, notifier Notifier) *ApplicationService {
	if notifier == nil {
		notifier = NopNotifier{}
	}
	return &ApplicationService{db: db, authz: engine, audit: audit, notifier: notifier, now: utcNow}
}

func errDuplicateApplication() error {
	return apperror.Conflict("you have already applied to this job")
}

// Apply creates an APPLIED application for the acting job seeker.
// A live application for the same pair is rejected with Conflict, first by
// lookup and then by the storage uniqueness index for concurrent requests.
func (s *ApplicationService) Apply(actor model.Actor, jobID uint, details model.ApplicationDetails) (model.Application, error) {
	if err := requireRole(actor, model.RoleJobSeeker); err != nil {
		return model.Application{}, err
	}

	app := model.Application{
		ApplicantID:        actor.UserID,
		JobID:              jobID,
		Status:             model.StatusApplied,
		ApplicationDetails: details,
		AppliedAt:          s.now(),
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var job model.Job
		if err := tx.Select("id").Take(&job, jobID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperror.Validation("job_id", "job %d does not exist", jobID)
			}
			return apperror.Internal(err, "failed to load job")
		}

		var user model.User
		if err := tx.Select("id").Take(&user, "id = ?", actor.UserID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperror.Validation("applicant_id", "applicant does not exist")
			}
			return apperror.Internal(err, "failed to load applicant")
		}

		var existing int64
		if err := tx.Model(&model.Application{}).
			Where("job_id = ? AND applicant_id = ?", jobID, actor.UserID).
			Count(&existing).Error; err != nil {
			return apperror.Internal(err, "failed to check existing application")
		}
		if existing > 0 {
			metrics.DuplicateApplications.WithLabelValues("service").Inc()
			return errDuplicateApplication()
		}

		return createApplication(tx, &app)
	})
	if err != nil {
		return model.Application{}, err
	}

	metrics.ApplicationsCreated.Inc()
	return app, nil
}

// createApplication inserts app and reports a uniqueness violation as Conflict.
func createApplication(tx *gorm.DB, app *model.Application) error {
	if err := tx.Create(app).Error; err != nil {
		if database.IsUniqueViolation(err) {
			metrics.DuplicateApplications.WithLabelValues("storage").Inc()
			return errDuplicateApplication()
		}
		return apperror.Internal(err, "failed to create application")
	}
	return nil
}

// ListForApplicant returns the user's live applications, most recent first.
func (s *ApplicationService) ListForApplicant(userID uuid.UUID) ([]model.CandidateApplication, error) {
	var apps []model.Application
	err := s.db.
		Preload("Job", func(db *gorm.DB) *gorm.DB { return db.Unscoped() }).
		Preload("Job.Organization").
		Where("applicant_id = ?", userID).
		Order("applied_at DESC, id DESC").
		Find(&apps).Error
	if err != nil {
		return nil, apperror.Internal(err, "failed to list applications")
	}

	out := make([]model.CandidateApplication, 0, len(apps))
	for _, a := range apps {
		out = append(out, model.NewCandidateApplication(a))
	}
	return out, nil
}

// ListForJob returns the live applications of a job for its recruiter or an admin.
func (s *ApplicationService) ListForJob(actor model.Actor, jobID uint) ([]model.RecruiterApplication, error) {
	switch actor.Role {
	case model.RoleAdmin:
		var count int64
		if err := s.db.Unscoped().Model(&model.Job{}).Where("id = ?", jobID).Count(&count).Error; err != nil {
			return nil, apperror.Internal(err, "failed to load job")
		}
		if count == 0 {
			return nil, apperror.NotFound("job %d not found", jobID)
		}
	case model.RoleRecruiter:
		if !s.authz.CanManageJob(actor.UserID, jobID) {
			return nil, apperror.Forbidden("you cannot view applications for this job")
		}
	default:
		return nil, apperror.Forbidden("you cannot view applications for this job")
	}

	var apps []model.Application
	err := s.db.
		Preload("Applicant.Profile.Skills.Skill").
		Where("job_id = ?", jobID).
		Order("applied_at DESC, id DESC").
		Find(&apps).Error
	if err != nil {
		return nil, apperror.Internal(err, "failed to list applications")
	}

	out := make([]model.RecruiterApplication, 0, len(apps))
	for _, a := range apps {
		out = append(out, model.NewRecruiterApplication(a))
	}
	return out, nil
}

// Get returns one live application if the actor may see it, with its job,
// organization and applicant preloaded.
func (s *ApplicationService) Get(actor model.Actor, id uint) (model.Application, error) {
	if !s.authz.CanViewApplication(actor, id) {
		if actor.IsAdmin() {
			return model.Application{}, apperror.NotFound("application %d not found", id)
		}
		return model.Application{}, apperror.Forbidden("you cannot view this application")
	}
	return s.load(s.db, id)
}

func (s *ApplicationService) load(db *gorm.DB, id uint) (model.Application, error) {
	var app model.Application
	err := db.
		Preload("Job", func(db *gorm.DB) *gorm.DB { return db.Unscoped() }).
		Preload("Job.Organization").
		Preload("Applicant.Profile.Skills.Skill").
		Take(&app, id).Error
	if err != nil {
		return app, storeError(err, "application %d not found", id)
	}
	return app, nil
}

// UpdateStatus sets any enumerated status on a live application. Terminal
// statuses stamp the completion time and other statuses clear it. The
// applicant is notified after commit without waiting for delivery.
func (s *ApplicationService) UpdateStatus(actor model.Actor, id uint, rawStatus string, recruiterNotes *string) (model.RecruiterApplication, error) {
	status, ok := model.ParseApplicationStatus(rawStatus)
	if !ok {
		return model.RecruiterApplication{}, apperror.Validation("status", "unknown application status %q", rawStatus)
	}
	if err := requireRole(actor, model.RoleAdmin, model.RoleRecruiter); err != nil {
		return model.RecruiterApplication{}, err
	}

	app, err := s.load(s.db, id)
	if err != nil {
		return model.RecruiterApplication{}, err
	}
	if actor.IsRecruiter() && !s.authz.CanManageApplication(actor.UserID, id) {
		return model.RecruiterApplication{}, apperror.Forbidden("you cannot manage this application")
	}

	now := s.now()
	var completedAt *time.Time
	if status.IsTerminal() {
		completedAt = &now
	}
	updates := map[string]any{
		"status":       status,
		"completed_at": completedAt,
		"updated_at":   now,
	}
	if recruiterNotes != nil {
		updates["recruiter_notes"] = *recruiterNotes
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&model.Application{}).Where("id = ?", id).Updates(updates)
		if res.Error != nil {
			return apperror.Internal(res.Error, "failed to update application status")
		}
		if res.RowsAffected == 0 {
			return apperror.NotFound("application %d not found", id)
		}
		return s.audit.Record(tx, model.AuditEntityApplication, id, model.AuditActionStatusChanged, actor.UserID)
	})
	if err != nil {
		return model.RecruiterApplication{}, err
	}

	app.Status = status
	app.CompletedAt = completedAt
	app.UpdatedAt = now
	if recruiterNotes != nil {
		app.RecruiterNotes = *recruiterNotes
	}

	metrics.StatusChanges.WithLabelValues(string(status)).Inc()
	s.notify(app, now)

	return model.NewRecruiterApplication(app), nil
}

func (s *ApplicationService) notify(app model.Application, changedAt time.Time) {
	defer func() {
		if r := recover(); r != nil {
			log.WithField("error_type", "notification").Errorf("notifier panicked: %v", r)
		}
	}()
	s.notifier.NotifyStatusChanged(notification.StatusChanged{
		ApplicationID:  app.ID,
		ApplicantID:    app.ApplicantID,
		ApplicantEmail: app.Applicant.Email,
		ApplicantName:  app.Applicant.FullName,
		JobID:          app.JobID,
		JobTitle:       app.Job.Title,
		Status:         app.Status,
		ChangedAt:      changedAt,
	})
}

// SoftDelete marks a live application deleted. Admin only. A second call
// on the same application fails with Conflict.
func (s *ApplicationService) SoftDelete(actor model.Actor, id uint) error {
	if err := requireRole(actor, model.RoleAdmin); err != nil {
		return err
	}

	var app model.Application
	if err := s.db.Unscoped().Select("id", "deleted_at").Take(&app, id).Error; err != nil {
		return storeError(err, "application %d not found", id)
	}
	if app.DeletedAt.Valid {
		return apperror.Conflict("application %d is already deleted", id)
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Unscoped().Model(&model.Application{}).
			Where("id = ? AND deleted_at IS NULL", id).
			Update("deleted_at", s.now())
		if res.Error != nil {
			return apperror.Internal(res.Error, "failed to delete application")
		}
		if res.RowsAffected == 0 {
			return apperror.Conflict("application %d is already deleted", id)
		}
		return s.audit.Record(tx, model.AuditEntityApplication, id, model.AuditActionDeleted, actor.UserID)
	})
}
