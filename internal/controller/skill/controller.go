// Package skill provides HTTP handlers for the skill catalogue and job seeker skill sets.
package skill

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"jobboard-backend/internal/service"
	"jobboard-backend/internal/utilities"
)

// SkillController handles skill related endpoints
type SkillController struct {
	Skills *service.SkillService
}

// NewSkillController creates a new instance of SkillController
func NewSkillController(skills *service.SkillService) *SkillController {
	return &SkillController{Skills: skills}
}

type createSkillRequest struct {
	Name string `json:"name" binding:"required"`
}

type profileSkillsRequest struct {
	Skills []service.SkillLevel `json:"skills" binding:"dive"`
}

// GetSkillsHandler lists the skill catalogue.
// @Summary Get all skills
// @Tags Skill
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Success 200 {array} model.Skill
// @Router /skills [get]
func (sc *SkillController) GetSkillsHandler(c *gin.Context) {
	skills, err := sc.Skills.List()
	if err != nil {
		utilities.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, skills)
}

// CreateSkillHandler adds a skill to the catalogue.
// @Summary Create skill
// @Description Only admin can access this endpoint
// @Tags Skill
// @Accept json
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param skill body createSkillRequest true "Skill name"
// @Success 201 {object} model.Skill
// @Failure 400 {object} utilities.ErrorResponse "Missing name"
// @Failure 403 {object} utilities.ErrorResponse "Not logged in as admin"
// @Failure 409 {object} utilities.ErrorResponse "Skill already exists"
// @Router /skills [post]
func (sc *SkillController) CreateSkillHandler(c *gin.Context) {
	actor, err := utilities.ExtractActor(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: err.Error()})
		return
	}

	req := createSkillRequest{}
	if err := c.ShouldBindJSON(&req); err != nil {
		utilities.RespondBindError(c, err)
		return
	}

	skill, err := sc.Skills.Create(actor, req.Name)
	if err != nil {
		utilities.RespondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, skill)
}

// ReplaceProfileSkillsHandler replaces the job seeker's skill set.
// @Summary Replace my skills
// @Description Only job seekers can access this endpoint. An empty list clears every skill
// @Tags Skill
// @Accept json
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param skills body profileSkillsRequest true "Skills with proficiency"
// @Success 200 {object} model.JobSeekerProfile
// @Failure 400 {object} utilities.ErrorResponse "Unknown skill or proficiency"
// @Failure 403 {object} utilities.ErrorResponse "Not logged in as job seeker"
// @Router /profile/skills [put]
func (sc *SkillController) ReplaceProfileSkillsHandler(c *gin.Context) {
	actor, err := utilities.ExtractActor(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: err.Error()})
		return
	}

	req := profileSkillsRequest{}
	if err := c.ShouldBindJSON(&req); err != nil {
		utilities.RespondBindError(c, err)
		return
	}

	profile, err := sc.Skills.ReplaceProfileSkills(actor, req.Skills)
	if err != nil {
		utilities.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, profile)
}
