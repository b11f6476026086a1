package utilities

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"jobboard-backend/internal/model"
)

// RegisterValidators installs the struct-level range rule for job payloads
// on gin's binding engine.
func RegisterValidators() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterStructValidation(jobRangeValidation, model.EditableJobInfo{})
	}
}

func jobRangeValidation(sl validator.StructLevel) {
	info := sl.Current().Interface().(model.EditableJobInfo)
	switch info.Validate() {
	case model.ErrSalaryRange:
		sl.ReportError(info.SalaryMin, "salary_min", "SalaryMin", "ltefield", "SalaryMax")
	case model.ErrExperienceRange:
		sl.ReportError(info.ExperienceMin, "experience_min", "ExperienceMin", "ltefield", "ExperienceMax")
	}
}
