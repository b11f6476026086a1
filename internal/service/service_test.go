package service

import (
	"context"
	"fmt"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"jobboard-backend/internal/apperror"
	"jobboard-backend/internal/authz"
	"jobboard-backend/internal/database"
	"jobboard-backend/internal/model"
	"jobboard-backend/internal/notification"
	"jobboard-backend/internal/utilities"
)

var testDB *database.DBinstanceStruct

func TestMain(m *testing.M) {
	td, db, err := database.GetTestDB()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to start test db: %v\n", err)
		os.Exit(1)
	}
	testDB = db

	code := m.Run()

	if err := td(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "teardown error: %v\n", err)
	}
	os.Exit(code)
}

type mockNotifier struct {
	mock.Mock
}

func (n *mockNotifier) NotifyStatusChanged(e notification.StatusChanged) {
	n.Called(e)
}

type stubTokens struct{}

func (stubTokens) Issue(user model.User) (string, error) {
	return "token-" + user.ID.String(), nil
}

func actorOf(u model.User) model.Actor {
	return model.Actor{UserID: u.ID, Role: u.Role}
}

func adminActor() model.Actor { return actorOf(database.TestAdminUser) }
func recruiter1() model.Actor { return actorOf(database.TestRecruiter1) }
func recruiter2() model.Actor { return actorOf(database.TestRecruiter2) }
func recruiter3() model.Actor { return actorOf(database.TestRecruiter3) }
func seeker1() model.Actor    { return actorOf(database.TestJobSeeker1) }
func seeker2() model.Actor    { return actorOf(database.TestJobSeeker2) }

func newApplicationService(n Notifier) *ApplicationService {
	return NewApplicationService(testDB.DB, authz.New(testDB.DB), NewAuditLogger(testDB.DB), n)
}

func newJobService() *JobService {
	return NewJobService(testDB.DB, authz.New(testDB.DB), NewAuditLogger(testDB.DB))
}

func newUserService() *UserService {
	return NewUserService(testDB.DB, NewAuditLogger(testDB.DB), utilities.BcryptHasher{}, stubTokens{})
}

func requireKind(t *testing.T, err error, kind apperror.Kind) {
	t.Helper()
	require.Error(t, err)
	assert.Equal(t, kind, apperror.KindOf(err), "unexpected error: %v", err)
}

// cleanupApplications hard-deletes every application of applicant on job when the test ends.
func cleanupApplications(t *testing.T, applicant uuid.UUID, jobID uint) {
	t.Helper()
	t.Cleanup(func() {
		testDB.Unscoped().Where("job_id = ? AND applicant_id = ?", jobID, applicant).Delete(&model.Application{})
	})
}

func cleanupJob(t *testing.T, job *model.Job) {
	t.Helper()
	t.Cleanup(func() {
		testDB.Where("job_id = ?", job.ID).Unscoped().Delete(&model.Application{})
		_ = testDB.Model(job).Association("Skills").Clear()
		testDB.Unscoped().Delete(job)
	})
}

func auditEntries(t *testing.T, entityType string, id any) []model.AuditLog {
	t.Helper()
	entries, err := NewAuditLogger(testDB.DB).ForEntity(entityType, id)
	require.NoError(t, err)
	return entries
}
