package auth

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"jobboard-backend/internal/config"
	"jobboard-backend/internal/database"
	"jobboard-backend/internal/service"
	"jobboard-backend/internal/utilities"
)

// TestAuthConfig is the auth configuration used by tests across packages
var TestAuthConfig = config.AuthConfig{
	SecretKey: "test-secret-key",
	TokenTTL:  time.Hour,
	Issuer:    "jobboard-backend-test",
}

// NewTestUserService wires a UserService over db that signs tokens with TestAuthConfig.
func NewTestUserService(db *database.DBinstanceStruct) (*service.UserService, *TokenManager) {
	tokens := NewTokenManager(TestAuthConfig)
	return service.NewUserService(db.DB, service.NewAuditLogger(db.DB), utilities.BcryptHasher{}, tokens), tokens
}

// GetAccessToken is a helper function to obtain an access token for a user by simulating a login API call.
// It takes the testing object, database connection, email, and password as parameters.
// It returns the access token as a string and any error encountered during the process.
func GetAccessToken(
	t *testing.T,
	db *database.DBinstanceStruct,
	email string,
	password string,
) (string, error) {
	t.Helper()
	users, _ := NewTestUserService(db)
	handler := NewLocalAuthHandler(users)
	rec, resp, err := utilities.SimulateAPICall(handler.LocalLoginHandler, "/login", http.MethodPost, map[string]string{
		"email":    email,
		"password": password,
	})
	if err != nil {
		return "", err
	}
	if rec.Code != http.StatusOK {
		return "", fmt.Errorf("login Failed: status %d, body: %s", rec.Code, rec.Body.String())
	}
	token, ok := resp["accessToken"].(string)
	if !ok {
		return "", fmt.Errorf("login Failed: no accessToken in response: %s", rec.Body.String())
	}
	return token, nil
}
