// Package job provides HTTP handlers for job posting operations.
package job

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"jobboard-backend/internal/apperror"
	"jobboard-backend/internal/model"
	"jobboard-backend/internal/service"
	"jobboard-backend/internal/utilities"
)

// JobController handles job posting related endpoints
type JobController struct {
	Jobs *service.JobService
}

// NewJobController creates a new instance of JobController
func NewJobController(jobs *service.JobService) *JobController {
	return &JobController{
		Jobs: jobs,
	}
}

// jobRequest is the body of job create and update. An absent skill_ids
// leaves skills untouched on update, an empty list clears them.
type jobRequest struct {
	model.EditableJobInfo
	SkillIDs []uint `json:"skill_ids"`
}

// CreateJobHandler posts a new job for the recruiter's organization.
// @Summary Create job posting
// @Description Only recruiters of a verified organization have access to this endpoint
// @Tags Job
// @Accept json
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param job body jobRequest true "Job information"
// @Success 201 {object} model.Job "Successfully create job"
// @Failure 400 {object} utilities.ErrorResponse "Invalid job information"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 403 {object} utilities.ErrorResponse "Not a recruiter of a verified organization"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /jobs [post]
func (jc *JobController) CreateJobHandler(c *gin.Context) {
	actor, err := utilities.ExtractActor(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: err.Error()})
		return
	}

	req := jobRequest{}
	if err := c.ShouldBindJSON(&req); err != nil {
		utilities.RespondBindError(c, err)
		return
	}

	job, err := jc.Jobs.Create(actor, req.EditableJobInfo, req.SkillIDs)
	if err != nil {
		utilities.RespondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, job)
}

// GetJobsHandler lists active jobs matching the query.
// @Summary Get active jobs based on query
// @Description Every query is optional
// @Tags Job
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param search query string false "Substring of title or description, case insensitive"
// @Param location query string false "Substring of location, case insensitive"
// @Param type query string false "Job type, case insensitive"
// @Param desc query boolean false "Newest first when true (default), oldest first when false"
// @Success 200 {array} model.Job
// @Failure 400 {object} utilities.ErrorResponse "Invalid query"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /jobs [get]
func (jc *JobController) GetJobsHandler(c *gin.Context) {
	filter := service.JobFilter{
		Search:   c.Query("search"),
		Location: c.Query("location"),
		JobType:  c.Query("type"),
	}
	if raw, ok := c.GetQuery("desc"); ok {
		desc, err := strconv.ParseBool(raw)
		if err != nil {
			utilities.RespondError(c, apperror.Validation("desc", "desc must be a boolean"))
			return
		}
		filter.Oldest = !desc
	}

	jobs, err := jc.Jobs.ListActive(filter)
	if err != nil {
		utilities.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, jobs)
}

// GetJobByIDHandler returns one job.
// @Summary Get job by id
// @Tags Job
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param id path int true "Job ID"
// @Success 200 {object} model.Job
// @Failure 400 {object} utilities.ErrorResponse "Invalid id"
// @Failure 404 {object} utilities.ErrorResponse "Job not found"
// @Router /jobs/{id} [get]
func (jc *JobController) GetJobByIDHandler(c *gin.Context) {
	id, err := utilities.ParseUintParam(c, "id")
	if err != nil {
		utilities.RespondError(c, err)
		return
	}

	job, err := jc.Jobs.Get(id)
	if err != nil {
		utilities.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, job)
}

// MyJobsHandler lists the current recruiter's jobs.
// @Summary Get my jobs
// @Description Only recruiters can access this endpoint
// @Tags Job
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Success 200 {array} model.Job
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 403 {object} utilities.ErrorResponse "Not logged in as recruiter"
// @Router /jobs/mine [get]
func (jc *JobController) MyJobsHandler(c *gin.Context) {
	actor, err := utilities.ExtractActor(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: err.Error()})
		return
	}

	jobs, err := jc.Jobs.ListByRecruiter(actor.UserID)
	if err != nil {
		utilities.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, jobs)
}

// UpdateJobHandler replaces the editable fields of a job.
// @Summary Edit job
// @Description Only the owning recruiter or an admin can access this endpoint
// @Tags Job
// @Accept json
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param id path int true "Job ID"
// @Param job body jobRequest true "Job information"
// @Success 200 {object} model.Job
// @Failure 400 {object} utilities.ErrorResponse "Invalid job information or unknown skill"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 403 {object} utilities.ErrorResponse "Not the owner"
// @Failure 404 {object} utilities.ErrorResponse "Job not found"
// @Router /jobs/{id} [patch]
func (jc *JobController) UpdateJobHandler(c *gin.Context) {
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

	req := jobRequest{}
	if err := c.ShouldBindJSON(&req); err != nil {
		utilities.RespondBindError(c, err)
		return
	}

	job, err := jc.Jobs.Update(actor, id, req.EditableJobInfo, req.SkillIDs)
	if err != nil {
		utilities.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, job)
}

// DeleteJobHandler soft-deletes a job.
// @Summary Delete job
// @Description Only the owning recruiter or an admin can access this endpoint
// @Tags Job
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param id path int true "Job ID"
// @Success 200 {object} utilities.MessageResponse
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 403 {object} utilities.ErrorResponse "Not the owner"
// @Failure 404 {object} utilities.ErrorResponse "Job not found"
// @Failure 409 {object} utilities.ErrorResponse "Job already deleted"
// @Router /jobs/{id} [delete]
func (jc *JobController) DeleteJobHandler(c *gin.Context) {
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

	if err := jc.Jobs.SoftDelete(actor, id); err != nil {
		utilities.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, utilities.MessageResponse{Message: "Job deleted"})
}

// RestoreJobHandler brings a soft-deleted job back.
// @Summary Restore job
// @Description Only admin can access this endpoint
// @Tags Admin
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param id path int true "Job ID"
// @Success 200 {object} model.Job
// @Failure 403 {object} utilities.ErrorResponse "Not logged in as admin"
// @Failure 404 {object} utilities.ErrorResponse "Job not found"
// @Router /admin/jobs/{id}/restore [post]
func (jc *JobController) RestoreJobHandler(c *gin.Context) {
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

	job, err := jc.Jobs.Restore(actor, id)
	if err != nil {
		utilities.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, job)
}
