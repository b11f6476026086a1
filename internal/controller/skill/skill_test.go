package skill

import (
	"context"
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
	sc := NewSkillController(service.NewSkillService(testDB.DB))
	needAuth := middleware.RequireAuth(testDB.DB, auth.NewTokenManager(auth.TestAuthConfig))

	r := gin.New()
	r.GET("/skills", needAuth, sc.GetSkillsHandler)
	r.POST("/skills", needAuth, middleware.CheckRole(model.RoleAdmin), sc.CreateSkillHandler)
	r.PUT("/profile/skills", needAuth, middleware.CheckRole(model.RoleJobSeeker), sc.ReplaceProfileSkillsHandler)
	return r
}

func tokenOf(t *testing.T, u model.User) string {
	t.Helper()
	token, err := auth.GetAccessToken(t, testDB, u.Email, database.TestSeedPassword)
	require.NoError(t, err)
	return token
}

func TestSkillCatalogue(t *testing.T) {
	r := newRouter()
	admin := tokenOf(t, database.TestAdminUser)

	rec, _ := testutil.MakeJSONRequest(gin.H{"name": "go"}, admin, r, "/skills", http.MethodPost)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec, resp := testutil.MakeJSONRequest(gin.H{}, admin, r, "/skills", http.MethodPost)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Name", resp["field"])

	rec, resp = testutil.MakeJSONRequest(gin.H{"name": "Kotlin"}, admin, r, "/skills", http.MethodPost)
	require.Equal(t, http.StatusCreated, rec.Code)
	t.Cleanup(func() { testDB.Delete(&model.Skill{}, uint(resp["id"].(float64))) })

	req, _ := http.NewRequest(http.MethodGet, "/skills", nil)
	req.Header.Set("Authorization", "Bearer "+tokenOf(t, database.TestJobSeeker1))
	rec = testutil.Serve(r, req)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, testutil.DecodeList(rec), 4)
}

func TestReplaceProfileSkills(t *testing.T) {
	r := newRouter()
	seeker := tokenOf(t, database.TestJobSeeker2)
	t.Cleanup(func() {
		testDB.Where("user_id = ?", database.TestJobSeeker2.ID).Delete(&model.JobSeekerProfile{})
	})

	rec, resp := testutil.MakeJSONRequest(gin.H{"skills": []gin.H{{"skill_id": database.TestSkillGo.ID, "proficiency": "wizard"}}}, seeker, r, "/profile/skills", http.MethodPut)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "proficiency", resp["field"])

	rec, resp = testutil.MakeJSONRequest(gin.H{"skills": []gin.H{
		{"skill_id": database.TestSkillGo.ID, "proficiency": "intermediate"},
		{"skill_id": database.TestSkillReact.ID, "proficiency": "BEGINNER"},
	}}, seeker, r, "/profile/skills", http.MethodPut)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Len(t, resp["skills"], 2)

	rec, _ = testutil.MakeJSONRequest(gin.H{"skills": []gin.H{}}, tokenOf(t, database.TestRecruiter1), r, "/profile/skills", http.MethodPut)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}
