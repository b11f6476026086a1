package job

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"

	"jobboard-backend/internal/auth"
	"jobboard-backend/internal/authz"
	"jobboard-backend/internal/database"
	"jobboard-backend/internal/middleware"
	"jobboard-backend/internal/model"
	"jobboard-backend/internal/service"
	"jobboard-backend/internal/testutil"
)

var testDB *database.DBinstanceStruct

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	var err error
	var midTeardown func(context.Context, ...testcontainers.TerminateOption) error
	midTeardown, testDB, err = database.GetTestDB()
	if err != nil {
		os.Exit(1)
	}
	code := m.Run()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if midTeardown != nil {
		_ = midTeardown(ctx)
	}
	os.Exit(code)
}

func newRouter() *gin.Engine {
	db := testDB.DB
	jc := NewJobController(service.NewJobService(db, authz.New(db), service.NewAuditLogger(db)))
	needAuth := middleware.RequireAuth(db, auth.NewTokenManager(auth.TestAuthConfig))

	r := gin.New()
	jobs := r.Group("/jobs", needAuth)
	jobs.GET("", jc.GetJobsHandler)
	jobs.GET("/mine", middleware.CheckRole(model.RoleRecruiter), jc.MyJobsHandler)
	jobs.GET("/:id", jc.GetJobByIDHandler)
	jobs.POST("", middleware.CheckRole(model.RoleRecruiter), jc.CreateJobHandler)
	jobs.PATCH("/:id", middleware.CheckRole(model.RoleRecruiter, model.RoleAdmin), jc.UpdateJobHandler)
	jobs.DELETE("/:id", middleware.CheckRole(model.RoleRecruiter, model.RoleAdmin), jc.DeleteJobHandler)
	r.POST("/admin/jobs/:id/restore", needAuth, middleware.CheckRole(model.RoleAdmin), jc.RestoreJobHandler)
	return r
}

func tokenOf(t *testing.T, u model.User) string {
	t.Helper()
	token, err := auth.GetAccessToken(t, testDB, u.Email, database.TestSeedPassword)
	require.NoError(t, err)
	return token
}

func get(r *gin.Engine, token, url string) []map[string]interface{} {
	req, _ := http.NewRequest(http.MethodGet, url, nil)
	req.Header.Set("Authorization", "Bearer "+token)
	return testutil.DecodeList(testutil.Serve(r, req))
}

func titles(jobs []map[string]interface{}) []string {
	out := make([]string, 0, len(jobs))
	for _, j := range jobs {
		out = append(out, j["title"].(string))
	}
	return out
}

func TestGetJobs(t *testing.T) {
	r := newRouter()
	token := tokenOf(t, database.TestJobSeeker1)

	assert.Equal(t, []string{database.TestJob2.Title}, titles(get(r, token, "/jobs?type=internship")))
	assert.Equal(t, []string{database.TestJob3.Title}, titles(get(r, token, "/jobs?location=chiang")))

	newest := titles(get(r, token, "/jobs"))
	oldest := titles(get(r, token, "/jobs?desc=false"))
	require.NotEmpty(t, newest)
	assert.Equal(t, newest[0], oldest[len(oldest)-1])

	rec, resp := testutil.MakeJSONRequest(nil, token, r, "/jobs?desc=maybe", http.MethodGet)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "desc", resp["field"])

	rec, resp = testutil.MakeJSONRequest(nil, token, r, fmt.Sprintf("/jobs/%d", database.TestJob1.ID), http.MethodGet)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, resp["skills"], 2)

	rec, _ = testutil.MakeJSONRequest(nil, token, r, "/jobs/999999", http.MethodGet)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestJobLifecycle(t *testing.T) {
	r := newRouter()
	owner := tokenOf(t, database.TestRecruiter1)
	admin := tokenOf(t, database.TestAdminUser)

	rec, _ := testutil.MakeJSONRequest(gin.H{"title": "Nope"}, tokenOf(t, database.TestRecruiter2), r, "/jobs", http.MethodPost)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec, resp := testutil.MakeJSONRequest(gin.H{"title": "Bad", "salary_min": 10, "salary_max": 1}, owner, r, "/jobs", http.MethodPost)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "salary_min", resp["field"])

	rec, resp = testutil.MakeJSONRequest(gin.H{
		"title":     "Platform Engineer",
		"location":  "Bangkok",
		"job_type":  "FULL_TIME",
		"skill_ids": []uint{database.TestSkillGo.ID},
	}, owner, r, "/jobs", http.MethodPost)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	id := uint(resp["id"].(float64))
	t.Cleanup(func() {
		testDB.Unscoped().Model(&model.Job{ID: id}).Association("Skills").Clear()
		testDB.Unscoped().Delete(&model.Job{}, id)
	})
	jobURL := fmt.Sprintf("/jobs/%d", id)

	assert.Contains(t, titles(get(r, owner, "/jobs/mine")), "Platform Engineer")

	rec, resp = testutil.MakeJSONRequest(gin.H{"title": "Staff Platform Engineer", "skill_ids": []uint{}}, owner, r, jobURL, http.MethodPatch)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Staff Platform Engineer", resp["title"])
	assert.Empty(t, resp["skills"])

	rec, _ = testutil.MakeJSONRequest(nil, owner, r, jobURL, http.MethodDelete)
	require.Equal(t, http.StatusOK, rec.Code)

	rec, _ = testutil.MakeJSONRequest(nil, owner, r, jobURL, http.MethodDelete)
	assert.Equal(t, http.StatusConflict, rec.Code)

	assert.NotContains(t, titles(get(r, owner, "/jobs")), "Staff Platform Engineer")

	restoreURL := fmt.Sprintf("/admin/jobs/%d/restore", id)
	rec, _ = testutil.MakeJSONRequest(nil, owner, r, restoreURL, http.MethodPost)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec, resp = testutil.MakeJSONRequest(nil, admin, r, restoreURL, http.MethodPost)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, resp["is_active"])
}
