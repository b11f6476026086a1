package service

import (
	"sort"

	"github.com/samber/lo"
	"gorm.io/gorm"

	"jobboard-backend/internal/apperror"
	"jobboard-backend/internal/model"
)

// AdminService computes read-only statistics and listings for admin dashboards.
// Collections are read in full and reduced in memory.
type AdminService struct {
	db    *gorm.DB
	audit *AuditLogger
}

// NewAdminService wires an AdminService
func NewAdminService(db *gorm.DB, audit *AuditLogger) *AdminService {
	return &AdminService{db: db, audit: audit}
}

type snapshot struct {
	users []model.User
	jobs  []model.Job
	orgs  []model.Organization
	apps  []model.Application
}

func (s *AdminService) load() (snapshot, error) {
	var snap snapshot
	if err := s.db.Select("id", "role", "active").Find(&snap.users).Error; err != nil {
		return snap, apperror.Internal(err, "failed to load users")
	}
	if err := s.db.Unscoped().Select("id", "organization_id", "is_active", "deleted_at").Find(&snap.jobs).Error; err != nil {
		return snap, apperror.Internal(err, "failed to load jobs")
	}
	if err := s.db.Select("id", "name", "verified").Order("id").Find(&snap.orgs).Error; err != nil {
		return snap, apperror.Internal(err, "failed to load organizations")
	}
	if err := s.db.Select("id", "job_id", "status").Find(&snap.apps).Error; err != nil {
		return snap, apperror.Internal(err, "failed to load applications")
	}
	return snap, nil
}

func ratio(n, d int64) float64 {
	if d == 0 {
		return 0
	}
	return float64(n) / float64(d)
}

func split[T any](items []T, active func(T) bool) model.ActiveSplit {
	n := int64(lo.CountBy(items, active))
	return model.ActiveSplit{Total: int64(len(items)), Active: n, Inactive: int64(len(items)) - n}
}

// liveJobs drops soft-deleted jobs
func (snap snapshot) liveJobs() []model.Job {
	return lo.Filter(snap.jobs, func(j model.Job, _ int) bool { return !j.DeletedAt.Valid })
}

// appsOnLiveJobs counts live applications per live job id
func (snap snapshot) appsOnLiveJobs() map[uint]int64 {
	live := lo.SliceToMap(snap.liveJobs(), func(j model.Job) (uint, struct{}) { return j.ID, struct{}{} })
	counts := map[uint]int64{}
	for _, a := range snap.apps {
		if _, ok := live[a.JobID]; ok {
			counts[a.JobID]++
		}
	}
	return counts
}

func (snap snapshot) stats() model.SystemStats {
	live := snap.liveJobs()
	activeOrgIDs := lo.SliceToMap(
		lo.Filter(live, func(j model.Job, _ int) bool { return j.IsActive }),
		func(j model.Job) (uint, struct{}) { return j.OrganizationID, struct{}{} },
	)

	byStatus := make(map[model.ApplicationStatus]int64, len(model.ApplicationStatuses))
	for _, st := range model.ApplicationStatuses {
		byStatus[st] = 0
	}
	for st, n := range lo.CountValuesBy(snap.apps, func(a model.Application) model.ApplicationStatus { return a.Status }) {
		byStatus[st] = int64(n)
	}

	byRole := map[string]int64{
		model.RoleAdmin.String():     0,
		model.RoleRecruiter.String(): 0,
		model.RoleJobSeeker.String(): 0,
	}
	for r, n := range lo.CountValuesBy(snap.users, func(u model.User) model.Role { return u.Role }) {
		byRole[r.String()] = int64(n)
	}

	verified := int64(lo.CountBy(snap.orgs, func(o model.Organization) bool { return o.Verified }))

	return model.SystemStats{
		Users:       split(snap.users, func(u model.User) bool { return u.Active }),
		Jobs:        split(live, func(j model.Job) bool { return j.IsActive }),
		DeletedJobs: int64(len(snap.jobs) - len(live)),
		Organizations: split(snap.orgs, func(o model.Organization) bool {
			_, ok := activeOrgIDs[o.ID]
			return ok
		}),
		VerifiedOrganizations: verified,
		UnverifiedOrgs:        int64(len(snap.orgs)) - verified,
		Applications:          int64(len(snap.apps)),
		ApplicationsByStatus:  byStatus,
		UsersByRole:           byRole,
	}
}

// Stats returns entity counts with active, verified, role and status breakdowns.
// Every status and role is present, zero when unused.
func (s *AdminService) Stats() (model.SystemStats, error) {
	snap, err := s.load()
	if err != nil {
		return model.SystemStats{}, err
	}
	return s.statsOf(snap)
}

func (s *AdminService) statsOf(snap snapshot) (model.SystemStats, error) {
	stats := snap.stats()
	if err := s.db.Model(&model.Skill{}).Count(&stats.Skills).Error; err != nil {
		return model.SystemStats{}, apperror.Internal(err, "failed to count skills")
	}
	return stats, nil
}

// Summary adds system-wide averages to Stats, both computed from one read.
// Averages are 0 when the divisor is 0.
func (s *AdminService) Summary() (model.SummaryReport, error) {
	snap, err := s.load()
	if err != nil {
		return model.SummaryReport{}, err
	}
	stats, err := s.statsOf(snap)
	if err != nil {
		return model.SummaryReport{}, err
	}

	liveJobs := int64(len(snap.liveJobs()))
	apps := lo.Sum(lo.Values(snap.appsOnLiveJobs()))
	return model.SummaryReport{
		SystemStats:           stats,
		AvgApplicationsPerJob: ratio(apps, liveJobs),
		AvgJobsPerOrg:         ratio(liveJobs, int64(len(snap.orgs))),
	}, nil
}

// Matrix returns one row per organization with its live job and application counts.
func (s *AdminService) Matrix() ([]model.OrganizationReportRow, error) {
	snap, err := s.load()
	if err != nil {
		return nil, err
	}

	jobsByOrg := lo.GroupBy(snap.liveJobs(), func(j model.Job) uint { return j.OrganizationID })
	appsByJob := snap.appsOnLiveJobs()

	rows := make([]model.OrganizationReportRow, 0, len(snap.orgs))
	for _, o := range snap.orgs {
		jobs := jobsByOrg[o.ID]
		jobCount := int64(len(jobs))
		appCount := lo.SumBy(jobs, func(j model.Job) int64 { return appsByJob[j.ID] })
		rows = append(rows, model.OrganizationReportRow{
			OrganizationID:        o.ID,
			OrganizationName:      o.Name,
			Verified:              o.Verified,
			JobCount:              jobCount,
			ActiveJobCount:        int64(lo.CountBy(jobs, func(j model.Job) bool { return j.IsActive })),
			ApplicationCount:      appCount,
			AvgApplicationsPerJob: ratio(appCount, jobCount),
		})
	}
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].OrganizationID < rows[j].OrganizationID })
	return rows, nil
}

// listPage counts and fetches one page of T. scope applies to both queries,
// preloads only to the fetch.
func listPage[T any](db *gorm.DB, page, size int, order string, scope func(*gorm.DB) *gorm.DB, preloads ...string) (model.Page[T], error) {
	out := model.Page[T]{Page: page, Size: size, Items: []T{}}
	if err := db.Model(new(T)).Scopes(scope).Count(&out.Total).Error; err != nil {
		return out, apperror.Internal(err, "failed to count records")
	}
	q := db.Scopes(scope, paginate(page, size)).Order(order)
	for _, p := range preloads {
		q = q.Preload(p)
	}
	if err := q.Find(&out.Items).Error; err != nil {
		return out, apperror.Internal(err, "failed to list records")
	}
	return out, nil
}

func scoped(db *gorm.DB) *gorm.DB { return db }

func unscoped(db *gorm.DB) *gorm.DB { return db.Unscoped() }

// Users lists accounts, newest first
func (s *AdminService) Users(page, size int) (model.Page[model.User], error) {
	return listPage[model.User](s.db, page, size, "created_at DESC, id", scoped)
}

// Jobs lists every job including soft-deleted ones
func (s *AdminService) Jobs(page, size int) (model.Page[model.Job], error) {
	return listPage[model.Job](s.db, page, size, "id DESC", unscoped, "Organization")
}

// Organizations lists organizations by id
func (s *AdminService) Organizations(page, size int) (model.Page[model.Organization], error) {
	return listPage[model.Organization](s.db, page, size, "id", scoped)
}

// AuditLogs lists audit entries, newest first
func (s *AdminService) AuditLogs(page, size int) (model.Page[model.AuditLog], error) {
	return s.audit.List(page, size)
}
