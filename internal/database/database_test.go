package database

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"gorm.io/gorm"

	m "jobboard-backend/internal/model"
)

var testDB *DBinstanceStruct

// container teardown must fit the signature GetTestDB hands out
var _ func(*testcontainers.DockerContainer, context.Context, ...testcontainers.TerminateOption) error = (*testcontainers.DockerContainer).Terminate

func TestMain(mt *testing.M) {
	td, db, err := GetTestDB()
	if err != nil {
		log.Fatalf("could not start test database: %v", err)
	}
	testDB = db

	mt.Run()

	if td != nil && td(context.Background()) != nil {
		log.Fatalf("could not teardown test database")
	}
}

func TestHealth(t *testing.T) {
	stats := testDB.Health()

	assert.Equal(t, "up", stats["status"])
	assert.NotContains(t, stats, "error")
	assert.Equal(t, "It's healthy", stats["message"])
}

func TestClose(t *testing.T) {
	td, db, err := GetEmptyTestDB()
	require.NoError(t, err)
	assert.NoError(t, td(context.Background()))

	stats := db.Health()
	assert.Equal(t, "down", stats["status"])
}

func TestSQLDBAndRawQueries(t *testing.T) {
	sqlDB, err := testDB.SQLDB()
	require.NoError(t, err)
	assert.NoError(t, sqlDB.Ping())

	again, err := testDB.SQLDB()
	require.NoError(t, err)
	assert.Same(t, sqlDB, again)

	// gorm's Raw stays reachable through the embedded *gorm.DB
	var names []string
	require.NoError(t, testDB.Raw("SELECT email FROM users WHERE id = ?", TestAdminUser.ID).Scan(&names).Error)
	assert.Equal(t, []string{TestAdminUser.Email}, names)
}

func TestSeededData(t *testing.T) {
	var org m.Organization
	require.NoError(t, testDB.First(&org, TestOrganization1.ID).Error)
	assert.True(t, org.Verified)
	assert.Equal(t, TestRecruiter1.ID, org.RecruiterUserID)

	var job m.Job
	require.NoError(t, testDB.Preload("Skills").First(&job, TestJob1.ID).Error)
	assert.Len(t, job.Skills, 2)

	var inactive m.User
	require.NoError(t, testDB.First(&inactive, "id = ?", TestInactiveUser.ID).Error)
	assert.False(t, inactive.Active)
}

func TestLiveApplicationIndex(t *testing.T) {
	_, db, err := GetEmptyTestDB()
	require.NoError(t, err)
	defer db.Close()

	user := m.User{Username: "u", Email: "u@example.com", Role: m.RoleJobSeeker, Active: true}
	recruiter := m.User{Username: "r", Email: "r@example.com", Role: m.RoleRecruiter, Active: true}
	require.NoError(t, db.Create(&user).Error)
	require.NoError(t, db.Create(&recruiter).Error)
	org := m.Organization{EditableOrganizationInfo: m.EditableOrganizationInfo{Name: "o"}, RecruiterUserID: recruiter.ID}
	require.NoError(t, db.Create(&org).Error)
	job := m.Job{EditableJobInfo: m.EditableJobInfo{Title: "j"}, OrganizationID: org.ID, RecruiterUserID: recruiter.ID, IsActive: true}
	require.NoError(t, db.Omit("Skills").Create(&job).Error)

	first := m.Application{ApplicantID: user.ID, JobID: job.ID, Status: m.StatusApplied, AppliedAt: time.Now()}
	require.NoError(t, db.Create(&first).Error)

	dup := m.Application{ApplicantID: user.ID, JobID: job.ID, Status: m.StatusApplied, AppliedAt: time.Now()}
	err = db.Create(&dup).Error
	require.Error(t, err)
	assert.True(t, IsUniqueViolation(err))

	// a soft-deleted application frees the pair
	require.NoError(t, db.Delete(&first).Error)
	again := m.Application{ApplicantID: user.ID, JobID: job.ID, Status: m.StatusApplied, AppliedAt: time.Now()}
	assert.NoError(t, db.Create(&again).Error)
}

func TestIsUniqueViolation(t *testing.T) {
	assert.False(t, IsUniqueViolation(nil))
	assert.True(t, IsUniqueViolation(gorm.ErrDuplicatedKey))
	assert.True(t, IsUniqueViolation(&pgconn.PgError{Code: "23505"}))
	assert.False(t, IsUniqueViolation(&pgconn.PgError{Code: "23503"}))
	assert.True(t, IsUniqueViolation(errors.New("constraint failed: UNIQUE constraint failed: users.email (2067)")))
	assert.False(t, IsUniqueViolation(errors.New("disk I/O error")))
}

func TestIsForeignKeyViolation(t *testing.T) {
	assert.True(t, IsForeignKeyViolation(&pgconn.PgError{Code: "23503"}))
	assert.False(t, IsForeignKeyViolation(gorm.ErrRecordNotFound))
}
