package auth

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobboard-backend/internal/database"
	"jobboard-backend/internal/utilities"
)

func newLogoutContext(t *testing.T, accessToken string) (*httptest.ResponseRecorder, *gin.Context) {
	t.Helper()
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	req, err := http.NewRequest(http.MethodPost, "/auth/logout", nil)
	require.NoError(t, err)
	if accessToken != "" {
		req.Header.Set("Authorization", "Bearer "+accessToken)
	}
	c.Request = req
	return rec, c
}

func TestLogoutSuccess(t *testing.T) {
	accessToken, err := GetAccessToken(t, testDB, database.TestJobSeeker1.Email, database.TestSeedPassword)
	require.NoError(t, err)

	blacklistStore := NewInMemoryBlacklistStore()
	logoutController := NewLogoutController(blacklistStore)

	rec, c := newLogoutContext(t, accessToken)

	// simulate the authentication middleware
	claims, err := NewTokenManager(TestAuthConfig).Validate(accessToken)
	require.NoError(t, err)
	c.Set(utilities.ClaimsKey, claims)

	logoutController.LogoutHandler(c)

	assert.Equal(t, http.StatusOK, rec.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Successfully logged out", resp["message"])

	isBlacklisted, err := blacklistStore.IsBlacklisted(claims.ID)
	assert.NoError(t, err)
	assert.True(t, isBlacklisted, "Token should be blacklisted after logout")
}

func TestLogoutMissingToken(t *testing.T) {
	logoutController := NewLogoutController(NewInMemoryBlacklistStore())
	rec, c := newLogoutContext(t, "")

	logoutController.LogoutHandler(c)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Contains(t, resp["error"], "authorization header")
}

func TestLogoutMissingClaims(t *testing.T) {
	logoutController := NewLogoutController(NewInMemoryBlacklistStore())
	rec, c := newLogoutContext(t, "some.token.value")

	logoutController.LogoutHandler(c)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestLogoutWrongClaimsType(t *testing.T) {
	logoutController := NewLogoutController(NewInMemoryBlacklistStore())
	rec, c := newLogoutContext(t, "some.token.value")
	c.Set(utilities.ClaimsKey, "not-claims")

	logoutController.LogoutHandler(c)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
