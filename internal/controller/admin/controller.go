// Package admin provides HTTP handlers for administrator dashboards and user management.
package admin

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"jobboard-backend/internal/service"
	"jobboard-backend/internal/utilities"
)

// AdminController handles admin-only endpoints
type AdminController struct {
	Admin *service.AdminService
	Users *service.UserService
}

// NewAdminController creates a new instance of AdminController
func NewAdminController(admin *service.AdminService, users *service.UserService) *AdminController {
	return &AdminController{
		Admin: admin,
		Users: users,
	}
}

type roleRequest struct {
	RoleID int `json:"roleId" binding:"required"`
}

type activeRequest struct {
	Active *bool `json:"active" binding:"required"`
}

// GetStatsHandler returns the system overview.
// @Summary Get system statistics
// @Description Only admin can access this endpoint
// @Tags Admin
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Success 200 {object} model.SystemStats
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 403 {object} utilities.ErrorResponse "Not logged in as admin"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /admin/stats [get]
func (ac *AdminController) GetStatsHandler(c *gin.Context) {
	stats, err := ac.Admin.Stats()
	if err != nil {
		utilities.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

// GetSummaryHandler returns the overview with system-wide averages.
// @Summary Get summary report
// @Tags Admin
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Success 200 {object} model.SummaryReport
// @Router /admin/reports/summary [get]
func (ac *AdminController) GetSummaryHandler(c *gin.Context) {
	summary, err := ac.Admin.Summary()
	if err != nil {
		utilities.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

// GetMatrixHandler returns one report row per organization.
// @Summary Get organization matrix report
// @Tags Admin
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Success 200 {array} model.OrganizationReportRow
// @Router /admin/reports/matrix [get]
func (ac *AdminController) GetMatrixHandler(c *gin.Context) {
	rows, err := ac.Admin.Matrix()
	if err != nil {
		utilities.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, rows)
}

// paged runs list with the page and size query parameters
func paged[T any](c *gin.Context, list func(page, size int) (T, error)) {
	page, size, err := utilities.ParsePage(c)
	if err != nil {
		utilities.RespondError(c, err)
		return
	}

	result, err := list(page, size)
	if err != nil {
		utilities.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// GetUsersHandler lists users.
// @Summary Get users
// @Tags Admin
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param page query int false "Page number, starting at 1" default(1)
// @Param size query int false "Page size, 1 to 100" default(20)
// @Success 200 {object} model.Page[model.User]
// @Failure 400 {object} utilities.ErrorResponse "Invalid page or size"
// @Router /admin/users [get]
func (ac *AdminController) GetUsersHandler(c *gin.Context) {
	paged(c, ac.Admin.Users)
}

// GetJobsHandler lists every job including deleted ones.
// @Summary Get all jobs
// @Tags Admin
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param page query int false "Page number, starting at 1" default(1)
// @Param size query int false "Page size, 1 to 100" default(20)
// @Success 200 {object} model.Page[model.Job]
// @Failure 400 {object} utilities.ErrorResponse "Invalid page or size"
// @Router /admin/jobs [get]
func (ac *AdminController) GetJobsHandler(c *gin.Context) {
	paged(c, ac.Admin.Jobs)
}

// GetCompaniesHandler lists organizations.
// @Summary Get organizations
// @Tags Admin
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param page query int false "Page number, starting at 1" default(1)
// @Param size query int false "Page size, 1 to 100" default(20)
// @Success 200 {object} model.Page[model.Organization]
// @Failure 400 {object} utilities.ErrorResponse "Invalid page or size"
// @Router /admin/companies [get]
func (ac *AdminController) GetCompaniesHandler(c *gin.Context) {
	paged(c, ac.Admin.Organizations)
}

// GetLogsHandler lists audit entries, newest first.
// @Summary Get audit logs
// @Tags Admin
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param page query int false "Page number, starting at 1" default(1)
// @Param size query int false "Page size, 1 to 100" default(20)
// @Success 200 {object} model.Page[model.AuditLog]
// @Failure 400 {object} utilities.ErrorResponse "Invalid page or size"
// @Router /admin/logs [get]
func (ac *AdminController) GetLogsHandler(c *gin.Context) {
	paged(c, ac.Admin.AuditLogs)
}

// UpdateRoleHandler changes a user's role.
// @Summary Change user role
// @Description Admins cannot change their own role
// @Tags Admin
// @Accept json
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param id path string true "User ID"
// @Param role body roleRequest true "New role id"
// @Success 200 {object} model.User
// @Failure 400 {object} utilities.ErrorResponse "Unknown role or own account"
// @Failure 404 {object} utilities.ErrorResponse "User not found"
// @Router /admin/users/{id}/role [patch]
func (ac *AdminController) UpdateRoleHandler(c *gin.Context) {
	actor, err := utilities.ExtractActor(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: err.Error()})
		return
	}

	id, err := utilities.ParseUUIDParam(c, "id")
	if err != nil {
		utilities.RespondError(c, err)
		return
	}

	req := roleRequest{}
	if err := c.ShouldBindJSON(&req); err != nil {
		utilities.RespondBindError(c, err)
		return
	}

	user, err := ac.Users.UpdateRole(actor, id, req.RoleID)
	if err != nil {
		utilities.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// SetActiveHandler activates or deactivates a user.
// @Summary Activate or deactivate user
// @Description Admins cannot deactivate themselves
// @Tags Admin
// @Accept json
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param id path string true "User ID"
// @Param active body activeRequest true "Target state"
// @Success 200 {object} model.User
// @Failure 400 {object} utilities.ErrorResponse "Missing active or own account"
// @Failure 404 {object} utilities.ErrorResponse "User not found"
// @Router /admin/users/{id}/active [patch]
func (ac *AdminController) SetActiveHandler(c *gin.Context) {
	actor, err := utilities.ExtractActor(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: err.Error()})
		return
	}

	id, err := utilities.ParseUUIDParam(c, "id")
	if err != nil {
		utilities.RespondError(c, err)
		return
	}

	req := activeRequest{}
	if err := c.ShouldBindJSON(&req); err != nil {
		utilities.RespondBindError(c, err)
		return
	}

	user, err := ac.Users.SetActive(actor, id, *req.Active)
	if err != nil {
		utilities.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}
