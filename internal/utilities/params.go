package utilities

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"jobboard-backend/internal/apperror"
)

// Pagination bounds for admin listings
const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// ParseUintParam reads a positive integer path parameter.
func ParseUintParam(c *gin.Context, name string) (uint, error) {
	v, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || v == 0 {
		return 0, apperror.Validation(name, "%s must be a positive integer", name)
	}
	return uint(v), nil
}

// ParseUUIDParam reads a uuid path parameter.
func ParseUUIDParam(c *gin.Context, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		return uuid.Nil, apperror.Validation(name, "%s must be a valid uuid", name)
	}
	return id, nil
}

// ParsePage reads page (>= 1, default 1) and size (1..MaxPageSize) query parameters.
func ParsePage(c *gin.Context) (page, size int, err error) {
	page, size = 1, DefaultPageSize

	if raw, ok := c.GetQuery("page"); ok {
		page, err = strconv.Atoi(raw)
		if err != nil || page < 1 {
			return 0, 0, apperror.Validation("page", "page must be an integer >= 1")
		}
	}
	if raw, ok := c.GetQuery("size"); ok {
		size, err = strconv.Atoi(raw)
		if err != nil || size < 1 || size > MaxPageSize {
			return 0, 0, apperror.Validation("size", "size must be an integer between 1 and %d", MaxPageSize)
		}
	}
	return page, size, nil
}
