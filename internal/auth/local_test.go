package auth

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

	"jobboard-backend/internal/database"
	"jobboard-backend/internal/model"
	"jobboard-backend/internal/utilities"
)

var testDB *database.DBinstanceStruct
var testTeardown func(context.Context, ...testcontainers.TerminateOption) error

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)

	var err error
	testTeardown, testDB, err = database.GetTestDB()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to start test db: %v\n", err)
		os.Exit(1)
	}

	code := m.Run()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := testTeardown(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "teardown error: %v\n", err)
	}
	os.Exit(code)
}

// Helper: validate access token in response and return claims.
func assertValidAccessToken(t *testing.T, tokens *TokenManager, resp map[string]interface{}) *Claims {
	t.Helper()
	tokenStr, ok := resp["accessToken"].(string)
	require.True(t, ok, "accessToken not a string")
	claims, err := tokens.Validate(tokenStr)
	require.NoError(t, err)
	assert.NotEmpty(t, claims.Subject, "token subject empty")
	assert.Equal(t, resp["userId"], claims.Subject)
	return claims
}

func deleteUserByEmail(t *testing.T, email string) {
	t.Helper()
	t.Cleanup(func() {
		var u model.User
		if err := testDB.Take(&u, "email = ?", email).Error; err != nil {
			return
		}
		testDB.Where("user_id = ?", u.ID).Delete(&model.JobSeekerProfile{})
		testDB.Delete(&u)
	})
}

func TestRegisterThenLogin(t *testing.T) {
	users, tokens := NewTestUserService(testDB)
	handler := NewLocalAuthHandler(users)
	deleteUserByEmail(t, "register.me@example.com")

	payload := map[string]interface{}{
		"email":    "register.me@example.com",
		"password": "password123",
		"roleId":   3,
		"fullname": "Register Me",
	}
	rec, resp, err := utilities.SimulateAPICall(handler.LocalRegisterHandler, "/auth/register", http.MethodPost, payload)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, rec.Code, "unexpected status, body: %s", rec.Body.String())
	assert.Equal(t, "User registered successfully", resp["message"])
	assert.NotEmpty(t, resp["userId"])

	rec, resp, err = utilities.SimulateAPICall(handler.LocalLoginHandler, "/auth/login", http.MethodPost, map[string]string{
		"email":    "register.me@example.com",
		"password": "password123",
	})
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, rec.Code, "unexpected status, body: %s", rec.Body.String())
	claims := assertValidAccessToken(t, tokens, resp)
	assert.Equal(t, model.RoleJobSeeker, claims.Role)
	assert.EqualValues(t, model.RoleJobSeeker, resp["roleId"])
}

func TestRegisterDuplicateEmail(t *testing.T) {
	users, _ := NewTestUserService(testDB)
	handler := NewLocalAuthHandler(users)

	rec, resp, err := utilities.SimulateAPICall(handler.LocalRegisterHandler, "/auth/register", http.MethodPost, map[string]interface{}{
		"email":    database.TestJobSeeker1.Email,
		"password": "password123",
		"roleId":   3,
	})
	require.NoError(t, err)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.NotEmpty(t, resp["error"])
}

func TestRegisterValidation(t *testing.T) {
	users, _ := NewTestUserService(testDB)
	handler := NewLocalAuthHandler(users)

	cases := []struct {
		name    string
		payload map[string]interface{}
		field   string
	}{
		{"missing email", map[string]interface{}{"password": "password123", "roleId": 3}, "Email"},
		{"short password", map[string]interface{}{"email": "short@example.com", "password": "short", "roleId": 3}, "password"},
		{"admin role", map[string]interface{}{"email": "admin2@example.com", "password": "password123", "roleId": 1}, "roleId"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec, resp, err := utilities.SimulateAPICall(handler.LocalRegisterHandler, "/auth/register", http.MethodPost, tc.payload)
			require.NoError(t, err)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, tc.field, resp["field"])
		})
	}
}

func TestLoginRejections(t *testing.T) {
	users, _ := NewTestUserService(testDB)
	handler := NewLocalAuthHandler(users)

	cases := []struct {
		name     string
		email    string
		password string
	}{
		{"wrong password", database.TestJobSeeker1.Email, "wrong-password"},
		{"unknown email", "ghost@example.com", database.TestSeedPassword},
		{"inactive account", database.TestInactiveUser.Email, database.TestSeedPassword},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec, resp, err := utilities.SimulateAPICall(handler.LocalLoginHandler, "/auth/login", http.MethodPost, map[string]string{
				"email":    tc.email,
				"password": tc.password,
			})
			require.NoError(t, err)
			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.Equal(t, "email or password is incorrect", resp["error"])
		})
	}

	rec, _, err := utilities.SimulateAPICall(handler.LocalLoginHandler, "/auth/login", http.MethodPost, map[string]string{})
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetAccessToken(t *testing.T) {
	token, err := GetAccessToken(t, testDB, database.TestRecruiter1.Email, database.TestSeedPassword)
	require.NoError(t, err)
	assert.NotEmpty(t, token)
}
