package utilities

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	log "github.com/sirupsen/logrus"

	"jobboard-backend/internal/apperror"
)

var statusByKind = map[apperror.Kind]int{
	apperror.KindValidation:      http.StatusBadRequest,
	apperror.KindNotFound:        http.StatusNotFound,
	apperror.KindConflict:        http.StatusConflict,
	apperror.KindForbidden:       http.StatusForbidden,
	apperror.KindUnauthenticated: http.StatusUnauthorized,
	apperror.KindInternal:        http.StatusInternalServerError,
}

// StatusFor returns the HTTP status an error is answered with
func StatusFor(err error) int {
	return statusByKind[apperror.KindOf(err)]
}

// RespondError aborts the request with the status and body matching err.
// Internal errors are logged and answered with a generic message.
func RespondError(c *gin.Context, err error) {
	var appErr *apperror.Error
	if !errors.As(err, &appErr) || appErr.Kind == apperror.KindInternal {
		log.WithFields(log.Fields{
			"error_type": "http",
			"method":     c.Request.Method,
			"path":       c.FullPath(),
		}).Errorf("%+v", err)
		c.AbortWithStatusJSON(http.StatusInternalServerError, ErrorResponse{Error: "Internal server error"})
		return
	}

	c.AbortWithStatusJSON(statusByKind[appErr.Kind], ErrorResponse{
		Error: appErr.Message,
		Field: appErr.Field,
	})
}

// RespondBindError answers a request whose body or query failed to bind with 400.
func RespondBindError(c *gin.Context, err error) {
	resp := ErrorResponse{Error: err.Error()}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		resp.Field = verrs[0].Field()
		resp.Error = verrs[0].Error()
	}
	c.AbortWithStatusJSON(http.StatusBadRequest, resp)
}
