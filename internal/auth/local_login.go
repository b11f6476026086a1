// Package auth contains handlers related to logging in and creating user accounts
package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"jobboard-backend/internal/apperror"
	"jobboard-backend/internal/service"
	"jobboard-backend/internal/utilities"
)

// LocalAuthHandler serves email and password registration and login.
type LocalAuthHandler struct {
	Users *service.UserService
}

// NewLocalAuthHandler creates a new instance of LocalAuthHandler backed by users.
func NewLocalAuthHandler(users *service.UserService) *LocalAuthHandler {
	return &LocalAuthHandler{
		Users: users,
	}
}

type registerInfo struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
	RoleID   int    `json:"roleId" binding:"required"`
	FullName string `json:"fullname"`
	Username string `json:"username"`
}

type loginInfo struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// RegisterResponse confirms a new account
type RegisterResponse struct {
	Message string    `json:"message"`
	UserID  uuid.UUID `json:"userId"`
}

// LocalRegisterHandler handles local registration.
// @Summary Register a recruiter or job seeker account
// @Description Email must be unused and password at least 8 characters. roleId is 2 (recruiter) or 3 (job seeker).
// @Tags Auth
// @Accept json
// @Produce json
// @Param Info body registerInfo true "Account details"
// @Success 200 {object} RegisterResponse "Account created"
// @Failure 400 {object} utilities.ErrorResponse "Info provided not met the condition"
// @Failure 409 {object} utilities.ErrorResponse "Email or username already exists"
// @Failure 500 {object} utilities.ErrorResponse "Database or password hashing error"
// @Router /auth/register [post]
func (h *LocalAuthHandler) LocalRegisterHandler(c *gin.Context) {
	var info registerInfo
	if err := c.ShouldBindJSON(&info); err != nil {
		utilities.RespondBindError(c, err)
		return
	}

	user, err := h.Users.Register(service.RegisterInput{
		Email:    info.Email,
		Password: info.Password,
		RoleID:   info.RoleID,
		FullName: info.FullName,
		Username: info.Username,
	})
	if err != nil {
		LogAuthAttempt(log.WarnLevel, "Local", AuthFail, info.Email, "registration rejected: "+err.Error())
		utilities.RespondError(c, err)
		return
	}

	LogAuthAttempt(log.InfoLevel, "Local", AuthSuccess, user.ID.String(), "account registered")
	c.JSON(http.StatusOK, RegisterResponse{
		Message: "User registered successfully",
		UserID:  user.ID,
	})
}

// LocalLoginHandler handles local login by email and password.
// @Summary Log in with email and password
// @Description Unknown email, wrong password and deactivated account all answer 401
// @Tags Auth
// @Accept json
// @Produce json
// @Param Info body loginInfo true "Credentials for login"
// @Success 200 {object} model.LoginResponse
// @Failure 400 {object} utilities.ErrorResponse "Email or password not provided"
// @Failure 401 {object} utilities.ErrorResponse "Email or password is incorrect"
// @Failure 500 {object} utilities.ErrorResponse "Database or token error"
// @Router /auth/login [post]
func (h *LocalAuthHandler) LocalLoginHandler(c *gin.Context) {
	var info loginInfo
	if err := c.ShouldBindJSON(&info); err != nil {
		utilities.RespondBindError(c, err)
		return
	}

	resp, err := h.Users.Login(info.Email, info.Password)
	if err != nil {
		level := log.WarnLevel
		if !apperror.Is(err, apperror.KindUnauthenticated) {
			level = log.ErrorLevel
		}
		LogAuthAttempt(level, "Local", AuthFail, info.Email, err.Error())
		utilities.RespondError(c, err)
		return
	}

	LogAuthAttempt(log.InfoLevel, "Local", AuthSuccess, resp.UserID.String(), "")
	c.JSON(http.StatusOK, resp)
}
