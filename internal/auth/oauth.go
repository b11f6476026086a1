package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"jobboard-backend/internal/apperror"
	"jobboard-backend/internal/config"
	"jobboard-backend/internal/service"
	"jobboard-backend/internal/utilities"
)

// GoogleUserInfoEndpoint returns the signed-in Google account
const GoogleUserInfoEndpoint = "https://www.googleapis.com/oauth2/v2/userinfo"

const oauthTimeout = 10 * time.Second

// NewGoogleOauthConfig builds the Google OAuth client configuration
func NewGoogleOauthConfig(cfg config.AuthConfig) *oauth2.Config {
	return &oauth2.Config{
		ClientID:     cfg.GoogleClientID,
		ClientSecret: cfg.GoogleSecret,
		Scopes: []string{
			"https://www.googleapis.com/auth/userinfo.email",
			"https://www.googleapis.com/auth/userinfo.profile",
		},
		Endpoint:    google.Endpoint,
		RedirectURL: cfg.OAuthRedirectURL,
	}
}

// OauthLoginHandler struct holds the user service and OAuth2 configuration for handling OAuth login.
type OauthLoginHandler struct {
	Users            *service.UserService
	OauthConfig      *oauth2.Config
	UserInfoEndpoint string
}

type code struct {
	Code string `json:"code" binding:"required"`
}

// NewOauthLoginHandler creates a new instance of OauthLoginHandler.
func NewOauthLoginHandler(users *service.UserService, oauthConfig *oauth2.Config, userInfoEndpoint string) *OauthLoginHandler {
	return &OauthLoginHandler{
		Users:            users,
		OauthConfig:      oauthConfig,
		UserInfoEndpoint: userInfoEndpoint,
	}
}

// getUserInfo exchanges the authorization code in the request body and fetches the Google account.
func (h *OauthLoginHandler) getUserInfo(c *gin.Context) (service.GoogleUserInfo, error) {
	var body code
	var uInfo service.GoogleUserInfo

	if err := c.ShouldBindJSON(&body); err != nil {
		return uInfo, apperror.Validation("code", "no authorization code provided")
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), oauthTimeout)
	defer cancel()

	token, err := h.OauthConfig.Exchange(ctx, body.Code)
	if err != nil {
		return uInfo, apperror.Validation("code", "failed to receive token: %v", err)
	}

	resp, err := h.OauthConfig.Client(ctx, token).Get(h.UserInfoEndpoint)
	if err != nil {
		return uInfo, apperror.Validation("code", "failed to fetch user information: %v", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return uInfo, apperror.Validation("code", "failed to fetch user information: status=%d body=%s", resp.StatusCode, string(bodyBytes))
	}

	if err := json.NewDecoder(resp.Body).Decode(&uInfo); err != nil {
		return uInfo, apperror.Validation("code", "failed to decode user info: %v", err)
	}
	return uInfo, nil
}

// GoogleLoginHandler handles Google sign-in. It exchanges the code for user info,
// links or creates the account and returns an access token.
// @Summary Log in or register a job seeker with Google
// @Description Existing accounts are matched by Google id, then by email
// @Tags Auth
// @Accept json
// @Produce json
// @Param Code body code true "Authentication code from google"
// @Success 200 {object} model.LoginResponse "Login success"
// @Success 201 {object} model.LoginResponse "Register success"
// @Failure 400 {object} utilities.ErrorResponse "Fail to receive token or fetch user info"
// @Failure 401 {object} utilities.ErrorResponse "Account deactivated"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /auth/google [post]
func (h *OauthLoginHandler) GoogleLoginHandler(c *gin.Context) {
	uInfo, err := h.getUserInfo(c)
	if err != nil {
		LogAuthAttempt(log.WarnLevel, "Google", AuthFail, "", err.Error())
		utilities.RespondError(c, err)
		return
	}

	resp, created, err := h.Users.GoogleLogin(uInfo)
	if err != nil {
		LogAuthAttempt(log.WarnLevel, "Google", AuthFail, uInfo.Email, err.Error())
		utilities.RespondError(c, err)
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	LogAuthAttempt(log.InfoLevel, "Google", AuthSuccess, resp.UserID.String(), fmt.Sprintf("created=%t", created))
	c.JSON(status, resp)
}

// Callback retrieves a query parameter named "code" from the request and returns it
// in a JSON response.
// @Summary Retrieves a query parameter named "code" from the request and returns it in a JSON response
// @Tags Auth
// @Produce json
// @Param Code query string false "Authentication code from google"
// @Success 200 {object} code
// @Router /auth/google/callback [get]
func (h *OauthLoginHandler) Callback(c *gin.Context) {
	c.JSON(http.StatusOK, code{
		Code: c.Query("code"),
	})
}
