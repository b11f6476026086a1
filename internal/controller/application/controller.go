// Package application provides HTTP handlers for job application operations.
package application

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"jobboard-backend/internal/model"
	"jobboard-backend/internal/service"
	"jobboard-backend/internal/utilities"
)

// ApplicationController handles job application related endpoints
type ApplicationController struct {
	Applications *service.ApplicationService
}

// NewApplicationController creates a new instance of ApplicationController.
func NewApplicationController(applications *service.ApplicationService) *ApplicationController {
	return &ApplicationController{
		Applications: applications,
	}
}

// applyRequest is the body of an application submission
type applyRequest struct {
	Resume          string `json:"resume"`
	CoverLetter     string `json:"coverLetter"`
	PortfolioURL    string `json:"portfolioUrl"`
	LinkedinURL     string `json:"linkedinUrl"`
	GithubURL       string `json:"githubUrl"`
	AdditionalNotes string `json:"additionalNotes"`
}

func (r applyRequest) details() model.ApplicationDetails {
	return model.ApplicationDetails{
		Resume:          r.Resume,
		CoverLetter:     r.CoverLetter,
		PortfolioURL:    r.PortfolioURL,
		LinkedinURL:     r.LinkedinURL,
		GithubURL:       r.GithubURL,
		AdditionalNotes: r.AdditionalNotes,
	}
}

// statusRequest is the body of a status update
type statusRequest struct {
	Status         string  `json:"status" binding:"required"`
	RecruiterNotes *string `json:"recruiterNotes"`
}

// ApplyHandler creates an application of the current job seeker to a job.
// @Summary Apply to a job
// @Description Only job seekers can access this endpoint
// @Tags Application
// @Accept json
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param jobId path int true "Job ID"
// @Param application body applyRequest true "Application details"
// @Success 200 {object} model.Application "Successfully applied"
// @Failure 400 {object} utilities.ErrorResponse "Invalid job id, request body, or job does not exist"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 403 {object} utilities.ErrorResponse "Not logged in as job seeker"
// @Failure 409 {object} utilities.ErrorResponse "Already applied to this job"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /applications/{jobId} [post]
func (ac *ApplicationController) ApplyHandler(c *gin.Context) {
	actor, err := utilities.ExtractActor(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: err.Error()})
		return
	}

	jobID, err := utilities.ParseUintParam(c, "jobId")
	if err != nil {
		utilities.RespondError(c, err)
		return
	}

	req := applyRequest{}
	if err := c.ShouldBindJSON(&req); err != nil {
		utilities.RespondBindError(c, err)
		return
	}

	app, err := ac.Applications.Apply(actor, jobID, req.details())
	if err != nil {
		utilities.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, app)
}

// MyApplicationsHandler lists the current user's applications.
// @Summary Get my applications
// @Tags Application
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Success 200 {array} model.CandidateApplication
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /applications/me [get]
func (ac *ApplicationController) MyApplicationsHandler(c *gin.Context) {
	actor, err := utilities.ExtractActor(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: err.Error()})
		return
	}

	apps, err := ac.Applications.ListForApplicant(actor.UserID)
	if err != nil {
		utilities.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, apps)
}

// JobApplicationsHandler lists the applications of a job.
// @Summary Get applications of a job
// @Description Only the recruiter managing the job or an admin can access this endpoint
// @Tags Application
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param jobId path int true "Job ID"
// @Success 200 {array} model.RecruiterApplication
// @Success 204 "No application for this job"
// @Failure 400 {object} utilities.ErrorResponse "Invalid job id"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 403 {object} utilities.ErrorResponse "Not managing this job"
// @Failure 404 {object} utilities.ErrorResponse "Job not found"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /applications/manage/{jobId} [get]
func (ac *ApplicationController) JobApplicationsHandler(c *gin.Context) {
	actor, err := utilities.ExtractActor(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: err.Error()})
		return
	}

	jobID, err := utilities.ParseUintParam(c, "jobId")
	if err != nil {
		utilities.RespondError(c, err)
		return
	}

	apps, err := ac.Applications.ListForJob(actor, jobID)
	if err != nil {
		utilities.RespondError(c, err)
		return
	}

	if len(apps) == 0 {
		c.Status(http.StatusNoContent)
		return
	}
	c.JSON(http.StatusOK, apps)
}

// UpdateStatusHandler changes the status of an application.
// @Summary Update application status
// @Description Status is case-insensitive and must be one of the known statuses
// @Tags Application
// @Accept json
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param id path int true "Application ID"
// @Param status body statusRequest true "New status and optional notes"
// @Success 200 {object} model.RecruiterApplication
// @Failure 400 {object} utilities.ErrorResponse "Unknown status or invalid id"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 403 {object} utilities.ErrorResponse "Not managing this application"
// @Failure 404 {object} utilities.ErrorResponse "Application not found"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /applications/manage/{id} [patch]
func (ac *ApplicationController) UpdateStatusHandler(c *gin.Context) {
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

	req := statusRequest{}
	if err := c.ShouldBindJSON(&req); err != nil {
		utilities.RespondBindError(c, err)
		return
	}

	updated, err := ac.Applications.UpdateStatus(actor, id, req.Status, req.RecruiterNotes)
	if err != nil {
		utilities.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, updated)
}

// GetApplicationHandler returns one application. Applicants get the
// candidate view, recruiters and admins the full view.
// @Summary Get application by id
// @Tags Application
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param id path int true "Application ID"
// @Success 200 {object} model.RecruiterApplication
// @Failure 400 {object} utilities.ErrorResponse "Invalid id"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 403 {object} utilities.ErrorResponse "Not allowed to view this application"
// @Failure 404 {object} utilities.ErrorResponse "Application not found"
// @Router /applications/{id} [get]
func (ac *ApplicationController) GetApplicationHandler(c *gin.Context) {
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

	app, err := ac.Applications.Get(actor, id)
	if err != nil {
		utilities.RespondError(c, err)
		return
	}

	if app.ApplicantID == actor.UserID {
		c.JSON(http.StatusOK, model.NewCandidateApplication(app))
		return
	}
	c.JSON(http.StatusOK, model.NewRecruiterApplication(app))
}

// DeleteApplicationHandler soft-deletes an application.
// @Summary Delete application
// @Description Only admin can access this endpoint
// @Tags Admin
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param id path int true "Application ID"
// @Success 200 {object} utilities.MessageResponse
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 403 {object} utilities.ErrorResponse "Not logged in as admin"
// @Failure 404 {object} utilities.ErrorResponse "Application not found"
// @Failure 409 {object} utilities.ErrorResponse "Application already deleted"
// @Router /admin/applications/{id} [delete]
func (ac *ApplicationController) DeleteApplicationHandler(c *gin.Context) {
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

	if err := ac.Applications.SoftDelete(actor, id); err != nil {
		utilities.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, utilities.MessageResponse{Message: "Application deleted"})
}
