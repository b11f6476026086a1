package service

import (
	"testing"
	"time"

	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobboard-backend/internal/apperror"
	"jobboard-backend/internal/database"
	"jobboard-backend/internal/model"
)

func intPtr(v int) *int { return &v }

func createTestJob(t *testing.T, svc *JobService, title string, skillIDs []uint) model.Job {
	t.Helper()
	job, err := svc.Create(recruiter1(), model.EditableJobInfo{Title: title, Location: "Bangkok", JobType: "FULL_TIME"}, skillIDs)
	require.NoError(t, err)
	cleanupJob(t, &job)
	return job
}

func jobIDs(jobs []model.Job) []uint {
	return lo.Map(jobs, func(j model.Job, _ int) uint { return j.ID })
}

func TestCreateJobRequiresVerifiedOrganization(t *testing.T) {
	svc := newJobService()
	info := model.EditableJobInfo{Title: "Platform Engineer"}

	_, err := svc.Create(recruiter2(), info, nil)
	requireKind(t, err, apperror.KindForbidden)

	_, err = svc.Create(recruiter3(), info, nil)
	requireKind(t, err, apperror.KindForbidden)

	_, err = svc.Create(seeker1(), info, nil)
	requireKind(t, err, apperror.KindForbidden)
}

func TestCreateJobValidation(t *testing.T) {
	svc := newJobService()

	_, err := svc.Create(recruiter1(), model.EditableJobInfo{Title: "  "}, nil)
	requireKind(t, err, apperror.KindValidation)

	_, err = svc.Create(recruiter1(), model.EditableJobInfo{
		Title:     "Backwards salary",
		SalaryMin: intPtr(90000),
		SalaryMax: intPtr(10000),
	}, nil)
	requireKind(t, err, apperror.KindValidation)
	assert.Equal(t, "salary_min", err.(*apperror.Error).Field)
}

func TestCreateJobAttachesKnownSkillsOnly(t *testing.T) {
	svc := newJobService()

	job := createTestJob(t, svc, "SRE", []uint{database.TestSkillGo.ID, 999999})
	assert.True(t, job.IsActive)
	assert.Equal(t, database.TestOrganization1.ID, job.OrganizationID)
	require.Len(t, job.Skills, 1)
	assert.Equal(t, database.TestSkillGo.ID, job.Skills[0].ID)

	stored, err := svc.Get(job.ID)
	require.NoError(t, err)
	assert.Len(t, stored.Skills, 1)
}

func TestUpdateJobSkills(t *testing.T) {
	svc := newJobService()
	job := createTestJob(t, svc, "Data Engineer", []uint{database.TestSkillGo.ID})
	info := job.EditableJobInfo

	t.Run("nil leaves skills untouched", func(t *testing.T) {
		info.Title = "Senior Data Engineer"
		out, err := svc.Update(recruiter1(), job.ID, info, nil)
		require.NoError(t, err)
		assert.Equal(t, "Senior Data Engineer", out.Title)
		assert.Len(t, out.Skills, 1)
	})

	t.Run("replace", func(t *testing.T) {
		out, err := svc.Update(recruiter1(), job.ID, info, []uint{database.TestSkillSQL.ID, database.TestSkillReact.ID})
		require.NoError(t, err)
		assert.ElementsMatch(t,
			[]uint{database.TestSkillSQL.ID, database.TestSkillReact.ID},
			lo.Map(out.Skills, func(s model.Skill, _ int) uint { return s.ID }))
	})

	t.Run("unknown skill fails without changes", func(t *testing.T) {
		_, err := svc.Update(recruiter1(), job.ID, info, []uint{database.TestSkillGo.ID, 999999})
		requireKind(t, err, apperror.KindValidation)

		stored, err := svc.Get(job.ID)
		require.NoError(t, err)
		assert.Len(t, stored.Skills, 2)
	})

	t.Run("empty clears", func(t *testing.T) {
		out, err := svc.Update(recruiter1(), job.ID, info, []uint{})
		require.NoError(t, err)
		assert.Empty(t, out.Skills)
	})

	t.Run("other recruiter is forbidden", func(t *testing.T) {
		_, err := svc.Update(recruiter2(), job.ID, info, nil)
		requireKind(t, err, apperror.KindForbidden)
	})
}

func TestListActiveNeverReturnsDeletedJobs(t *testing.T) {
	svc := newJobService()
	job := createTestJob(t, svc, "Soft delete target", nil)

	active, err := svc.ListActive(JobFilter{})
	require.NoError(t, err)
	assert.Contains(t, jobIDs(active), job.ID)

	requireKind(t, svc.SoftDelete(recruiter2(), job.ID), apperror.KindForbidden)
	require.NoError(t, svc.SoftDelete(recruiter1(), job.ID))

	active, err = svc.ListActive(JobFilter{})
	require.NoError(t, err)
	assert.NotContains(t, jobIDs(active), job.ID)

	mine, err := svc.ListByRecruiter(database.TestRecruiter1.ID)
	require.NoError(t, err)
	assert.NotContains(t, jobIDs(mine), job.ID)

	_, err = svc.Get(job.ID)
	requireKind(t, err, apperror.KindNotFound)

	requireKind(t, svc.SoftDelete(recruiter1(), job.ID), apperror.KindConflict)

	var raw model.Job
	require.NoError(t, testDB.Unscoped().Take(&raw, job.ID).Error)
	assert.True(t, raw.DeletedAt.Valid)
	assert.False(t, raw.IsActive)

	_, err = svc.Restore(recruiter1(), job.ID)
	requireKind(t, err, apperror.KindForbidden)

	restored, err := svc.Restore(adminActor(), job.ID)
	require.NoError(t, err)
	assert.True(t, restored.IsActive)

	active, err = svc.ListActive(JobFilter{})
	require.NoError(t, err)
	assert.Contains(t, jobIDs(active), job.ID)

	entries := auditEntries(t, model.AuditEntityJob, job.ID)
	require.GreaterOrEqual(t, len(entries), 2)
	assert.Equal(t, model.AuditActionDeleted, entries[len(entries)-2].Action)
	assert.Equal(t, model.AuditActionRestored, entries[len(entries)-1].Action)
}

func TestListActiveFilters(t *testing.T) {
	svc := newJobService()

	jobs, err := svc.ListActive(JobFilter{Search: "backend"})
	require.NoError(t, err)
	assert.Contains(t, jobIDs(jobs), database.TestJob1.ID)
	assert.NotContains(t, jobIDs(jobs), database.TestJob3.ID)

	jobs, err = svc.ListActive(JobFilter{Location: "chiang"})
	require.NoError(t, err)
	assert.Equal(t, []uint{database.TestJob3.ID}, jobIDs(jobs))

	jobs, err = svc.ListActive(JobFilter{JobType: "internship"})
	require.NoError(t, err)
	assert.Equal(t, []uint{database.TestJob2.ID}, jobIDs(jobs))

	newest, err := svc.ListActive(JobFilter{})
	require.NoError(t, err)
	oldest, err := svc.ListActive(JobFilter{Oldest: true})
	require.NoError(t, err)
	require.NotEmpty(t, newest)
	assert.Equal(t, newest[0].ID, oldest[len(oldest)-1].ID)
}

func TestSweepExpired(t *testing.T) {
	svc := newJobService()
	job := createTestJob(t, svc, "Expired posting", nil)

	past := time.Now().UTC().Add(-time.Hour)
	require.NoError(t, testDB.Model(&model.Job{}).Where("id = ?", job.ID).Update("deadline", past).Error)

	n, err := svc.SweepExpired(time.Now().UTC())
	require.NoError(t, err)
	assert.GreaterOrEqual(t, n, int64(1))

	stored, err := svc.Get(job.ID)
	require.NoError(t, err)
	assert.False(t, stored.IsActive)

	seeded, err := svc.Get(database.TestJob1.ID)
	require.NoError(t, err)
	assert.True(t, seeded.IsActive)
}
