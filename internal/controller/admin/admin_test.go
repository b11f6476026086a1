package admin

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
	users, tokens := auth.NewTestUserService(testDB)
	audit := service.NewAuditLogger(testDB.DB)
	ac := NewAdminController(service.NewAdminService(testDB.DB, audit), users)

	r := gin.New()
	admin := r.Group("/admin", middleware.RequireAuth(testDB.DB, tokens), middleware.CheckRole(model.RoleAdmin))
	admin.GET("/stats", ac.GetStatsHandler)
	admin.GET("/users", ac.GetUsersHandler)
	admin.GET("/jobs", ac.GetJobsHandler)
	admin.GET("/companies", ac.GetCompaniesHandler)
	admin.GET("/logs", ac.GetLogsHandler)
	admin.GET("/reports/summary", ac.GetSummaryHandler)
	admin.GET("/reports/matrix", ac.GetMatrixHandler)
	admin.PATCH("/users/:id/role", ac.UpdateRoleHandler)
	admin.PATCH("/users/:id/active", ac.SetActiveHandler)
	return r
}

func adminToken(t *testing.T) string {
	t.Helper()
	token, err := auth.GetAccessToken(t, testDB, database.TestAdminUser.Email, database.TestSeedPassword)
	require.NoError(t, err)
	return token
}

func TestGetStats(t *testing.T) {
	r := newRouter()
	rec, resp := testutil.MakeJSONRequest(nil, adminToken(t), r, "/admin/stats", http.MethodGet)
	require.Equal(t, http.StatusOK, rec.Code)

	users := resp["users"].(map[string]interface{})
	assert.GreaterOrEqual(t, users["total"], float64(7))
	assert.GreaterOrEqual(t, users["inactive"], float64(1))
	assert.Contains(t, resp, "applications_by_status")
}

func TestAdminRoutesRequireAdmin(t *testing.T) {
	r := newRouter()
	token, err := auth.GetAccessToken(t, testDB, database.TestRecruiter1.Email, database.TestSeedPassword)
	require.NoError(t, err)

	for _, path := range []string{"/admin/stats", "/admin/users", "/admin/logs", "/admin/reports/matrix"} {
		rec, _ := testutil.MakeJSONRequest(nil, token, r, path, http.MethodGet)
		assert.Equal(t, http.StatusForbidden, rec.Code, path)
	}
}

func TestPagination(t *testing.T) {
	r := newRouter()
	token := adminToken(t)

	rec, resp := testutil.MakeJSONRequest(nil, token, r, "/admin/users?page=1&size=2", http.MethodGet)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, resp["items"], 2)
	assert.Equal(t, float64(2), resp["size"])

	rec, resp = testutil.MakeJSONRequest(nil, token, r, "/admin/users?size=101", http.MethodGet)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "size", resp["field"])

	rec, resp = testutil.MakeJSONRequest(nil, token, r, "/admin/jobs?page=0", http.MethodGet)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "page", resp["field"])

	rec, _ = testutil.MakeJSONRequest(nil, token, r, "/admin/companies", http.MethodGet)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestReports(t *testing.T) {
	r := newRouter()
	token := adminToken(t)

	rec, resp := testutil.MakeJSONRequest(nil, token, r, "/admin/reports/summary", http.MethodGet)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, resp, "avg_applications_per_job")
	assert.Contains(t, resp, "users")

	req, _ := http.NewRequest(http.MethodGet, "/admin/reports/matrix", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec = testutil.Serve(r, req)
	require.Equal(t, http.StatusOK, rec.Code)
	rows := testutil.DecodeList(rec)
	require.GreaterOrEqual(t, len(rows), 2)
	assert.Equal(t, database.TestOrganization1.Name, rows[0]["organization_name"])
}

func TestUserManagement(t *testing.T) {
	r := newRouter()
	token := adminToken(t)
	target := database.TestRecruiter3
	t.Cleanup(func() {
		testDB.Model(&model.User{}).Where("id = ?", target.ID).Updates(map[string]any{"role": target.Role, "active": true})
	})

	roleURL := fmt.Sprintf("/admin/users/%s/role", target.ID)
	activeURL := fmt.Sprintf("/admin/users/%s/active", target.ID)

	rec, resp := testutil.MakeJSONRequest(gin.H{"roleId": 9}, token, r, roleURL, http.MethodPatch)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "roleId", resp["field"])

	rec, _ = testutil.MakeJSONRequest(gin.H{"roleId": 3}, token, r, "/admin/users/not-a-uuid/role", http.MethodPatch)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, resp = testutil.MakeJSONRequest(gin.H{"roleId": 3}, token, r, roleURL, http.MethodPatch)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, float64(model.RoleJobSeeker), resp["role_id"])

	rec, _ = testutil.MakeJSONRequest(gin.H{}, token, r, activeURL, http.MethodPatch)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, resp = testutil.MakeJSONRequest(gin.H{"active": false}, token, r, activeURL, http.MethodPatch)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, false, resp["active"])

	selfURL := fmt.Sprintf("/admin/users/%s/active", database.TestAdminUser.ID)
	rec, _ = testutil.MakeJSONRequest(gin.H{"active": false}, token, r, selfURL, http.MethodPatch)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	req, _ := http.NewRequest(http.MethodGet, "/admin/logs?size=100", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec = testutil.Serve(r, req)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), model.AuditActionRoleChanged)
	assert.Contains(t, rec.Body.String(), model.AuditActionDeactivated)
}
