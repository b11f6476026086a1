package utilities

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
)

// ErrInvalidAuthHeader is returned when the Authorization header is not a bearer token
var ErrInvalidAuthHeader = errors.New("invalid authorization header")

// ExtractBearerToken returns the token part of a "Bearer <token>" Authorization header.
func ExtractBearerToken(c *gin.Context) (string, error) {
	const bearerSchema = "Bearer "
	authHeader := c.GetHeader("Authorization")

	if len(authHeader) <= len(bearerSchema) || !strings.EqualFold(authHeader[:len(bearerSchema)], bearerSchema) {
		return "", ErrInvalidAuthHeader
	}

	return strings.TrimSpace(authHeader[len(bearerSchema):]), nil
}
