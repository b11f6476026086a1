package service

import (
	"strings"
	"time"

	"github.com/google/uuid"
	gocache "github.com/patrickmn/go-cache"
	"github.com/samber/lo"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"jobboard-backend/internal/apperror"
	"jobboard-backend/internal/database"
	"jobboard-backend/internal/model"
)

// SkillLevel is one requested entry of a job seeker's skill set
type SkillLevel struct {
	SkillID     uint   `json:"skill_id" binding:"required"`
	Proficiency string `json:"proficiency" binding:"required"`
}

const catalogueKey = "skills"

// SkillService manages the skill catalogue and job seeker skill sets
type SkillService struct {
	db    *gorm.DB
	cache *gocache.Cache
}

// NewSkillService wires a SkillService. The catalogue is cached for a few
// minutes and dropped whenever a skill is added.
func NewSkillService(db *gorm.DB) *SkillService {
	return &SkillService{db: db, cache: gocache.New(5*time.Minute, 10*time.Minute)}
}

// List returns every skill ordered by name
func (s *SkillService) List() ([]model.Skill, error) {
	if cached, found := s.cache.Get(catalogueKey); found {
		return append([]model.Skill(nil), cached.([]model.Skill)...), nil
	}

	var skills []model.Skill
	if err := s.db.Order("name").Find(&skills).Error; err != nil {
		return nil, apperror.Internal(err, "failed to list skills")
	}
	if err := s.cache.Add(catalogueKey, skills, gocache.DefaultExpiration); err != nil {
		log.Debugf("skill catalogue already cached: %v", err)
	}
	return append([]model.Skill(nil), skills...), nil
}

// Create adds a skill. Admin only; names are unique ignoring case.
func (s *SkillService) Create(actor model.Actor, name string) (model.Skill, error) {
	if err := requireRole(actor, model.RoleAdmin); err != nil {
		return model.Skill{}, err
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return model.Skill{}, apperror.Validation("name", "name is required")
	}

	var count int64
	if err := s.db.Model(&model.Skill{}).Where("LOWER(name) = ?", strings.ToLower(name)).Count(&count).Error; err != nil {
		return model.Skill{}, apperror.Internal(err, "failed to check skill")
	}
	if count > 0 {
		return model.Skill{}, apperror.Conflict("skill %q already exists", name)
	}

	skill := model.Skill{Name: name}
	if err := s.db.Create(&skill).Error; err != nil {
		if database.IsUniqueViolation(err) {
			return model.Skill{}, apperror.Conflict("skill %q already exists", name)
		}
		return model.Skill{}, apperror.Internal(err, "failed to create skill")
	}
	s.cache.Delete(catalogueKey)
	return skill, nil
}

// GetProfile returns a job seeker profile with its skills
func (s *SkillService) GetProfile(userID uuid.UUID) (model.JobSeekerProfile, error) {
	var profile model.JobSeekerProfile
	if err := s.db.Preload("Skills.Skill").Take(&profile, "user_id = ?", userID).Error; err != nil {
		return profile, storeError(err, "profile not found")
	}
	return profile, nil
}

// ReplaceProfileSkills replaces the acting job seeker's whole skill set.
func (s *SkillService) ReplaceProfileSkills(actor model.Actor, levels []SkillLevel) (model.JobSeekerProfile, error) {
	if err := requireRole(actor, model.RoleJobSeeker); err != nil {
		return model.JobSeekerProfile{}, err
	}

	entries := make([]model.JobSeekerSkill, 0, len(levels))
	for _, l := range levels {
		p, ok := model.ParseProficiency(l.Proficiency)
		if !ok {
			return model.JobSeekerProfile{}, apperror.Validation("proficiency", "unknown proficiency %q", l.Proficiency)
		}
		entries = append(entries, model.JobSeekerSkill{SkillID: l.SkillID, Proficiency: p})
	}
	entries = lo.UniqBy(entries, func(e model.JobSeekerSkill) uint { return e.SkillID })
	ids := lo.Map(entries, func(e model.JobSeekerSkill, _ int) uint { return e.SkillID })

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if len(ids) > 0 {
			var found int64
			if err := tx.Model(&model.Skill{}).Where("id IN ?", ids).Count(&found).Error; err != nil {
				return apperror.Internal(err, "failed to resolve skills")
			}
			if int(found) != len(ids) {
				return apperror.Validation("skill_id", "unknown skill id in request")
			}
		}

		profile := model.JobSeekerProfile{UserID: actor.UserID}
		if err := tx.Where(model.JobSeekerProfile{UserID: actor.UserID}).FirstOrCreate(&profile).Error; err != nil {
			return apperror.Internal(err, "failed to load profile")
		}
		if err := tx.Where("profile_id = ?", profile.ID).Delete(&model.JobSeekerSkill{}).Error; err != nil {
			return apperror.Internal(err, "failed to clear skills")
		}
		if len(entries) == 0 {
			return nil
		}
		for i := range entries {
			entries[i].ProfileID = profile.ID
		}
		if err := tx.Omit("Skill").Create(&entries).Error; err != nil {
			return apperror.Internal(err, "failed to save skills")
		}
		return nil
	})
	if err != nil {
		return model.JobSeekerProfile{}, err
	}
	return s.GetProfile(actor.UserID)
}
