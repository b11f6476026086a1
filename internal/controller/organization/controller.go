// Package organization provides HTTP handlers for recruiter organizations.
package organization

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"jobboard-backend/internal/apperror"
	"jobboard-backend/internal/model"
	"jobboard-backend/internal/service"
	"jobboard-backend/internal/utilities"
)

// OrganizationController handles organization related endpoints
type OrganizationController struct {
	Organizations *service.OrganizationService
}

// NewOrganizationController creates a new instance of OrganizationController
func NewOrganizationController(organizations *service.OrganizationService) *OrganizationController {
	return &OrganizationController{
		Organizations: organizations,
	}
}

// CreateOrganizationHandler registers the recruiter's organization.
// @Summary Create organization
// @Description Only recruiters can access this endpoint. A recruiter owns at most one organization
// @Tags Organization
// @Accept json
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param organization body model.EditableOrganizationInfo true "Organization information"
// @Success 201 {object} model.Organization
// @Failure 400 {object} utilities.ErrorResponse "Missing name"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 403 {object} utilities.ErrorResponse "Not logged in as recruiter"
// @Failure 409 {object} utilities.ErrorResponse "Organization already exists"
// @Router /organizations [post]
func (oc *OrganizationController) CreateOrganizationHandler(c *gin.Context) {
	actor, err := utilities.ExtractActor(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: err.Error()})
		return
	}

	info := model.EditableOrganizationInfo{}
	if err := c.ShouldBindJSON(&info); err != nil {
		utilities.RespondBindError(c, err)
		return
	}

	org, err := oc.Organizations.Create(actor, info)
	if err != nil {
		utilities.RespondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, org)
}

// GetMyOrganizationHandler returns the recruiter's organization.
// @Summary Get my organization
// @Tags Organization
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Success 200 {object} model.Organization
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 404 {object} utilities.ErrorResponse "No organization yet"
// @Router /organizations/me [get]
func (oc *OrganizationController) GetMyOrganizationHandler(c *gin.Context) {
	actor, err := utilities.ExtractActor(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: err.Error()})
		return
	}

	org, err := oc.Organizations.Mine(actor)
	if err != nil {
		utilities.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, org)
}

// EditMyOrganizationHandler merges the given fields into the recruiter's organization.
// @Summary Edit my organization
// @Description Empty fields are left unchanged. Verified status can't be overwritten
// @Tags Organization
// @Accept json
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param organization body model.EditableOrganizationInfo true "Fields to change"
// @Success 200 {object} model.Organization
// @Failure 400 {object} utilities.ErrorResponse "Invalid body"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 404 {object} utilities.ErrorResponse "No organization yet"
// @Router /organizations/me [patch]
func (oc *OrganizationController) EditMyOrganizationHandler(c *gin.Context) {
	actor, err := utilities.ExtractActor(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: err.Error()})
		return
	}

	info := model.EditableOrganizationInfo{}
	if err := c.ShouldBindJSON(&info); err != nil {
		utilities.RespondBindError(c, err)
		return
	}

	org, err := oc.Organizations.UpdateMine(actor, info)
	if err != nil {
		utilities.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, org)
}

// GetOrganizationByIDHandler returns an organization.
// @Summary Get organization by id
// @Tags Organization
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param id path int true "Organization ID"
// @Success 200 {object} model.Organization
// @Failure 400 {object} utilities.ErrorResponse "Invalid id"
// @Failure 404 {object} utilities.ErrorResponse "Organization not found"
// @Router /organizations/{id} [get]
func (oc *OrganizationController) GetOrganizationByIDHandler(c *gin.Context) {
	id, err := utilities.ParseUintParam(c, "id")
	if err != nil {
		utilities.RespondError(c, err)
		return
	}

	org, err := oc.Organizations.Get(id)
	if err != nil {
		utilities.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, org)
}

// VerifyOrganizationHandler sets the verified status of an organization.
// @Summary Verify or unverify organization
// @Description Only admin can access this endpoint
// @Tags Admin
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param id path int true "Organization ID"
// @Param status query string false "verified or unverified, case insensitive" default(verified)
// @Success 200 {object} model.Organization
// @Failure 400 {object} utilities.ErrorResponse "Unknown status"
// @Failure 403 {object} utilities.ErrorResponse "Not logged in as admin"
// @Failure 404 {object} utilities.ErrorResponse "Organization not found"
// @Router /admin/companies/{id}/verify [patch]
func (oc *OrganizationController) VerifyOrganizationHandler(c *gin.Context) {
	actor, err := utilities.ExtractActor(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: err.Error()})
		return
	}

	id, err := utilities.ParseUintParam(c, "id")
	if err != nil {
		utilities.RespondError(c, err)
		return
	}

	var verified bool
	switch status := strings.ToLower(c.DefaultQuery("status", "verified")); status {
	case "verified":
		verified = true
	case "unverified":
		verified = false
	default:
		utilities.RespondError(c, apperror.Validation("status", "unknown status: %s", status))
		return
	}

	org, err := oc.Organizations.SetVerified(actor, id, verified)
	if err != nil {
		utilities.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, org)
}
