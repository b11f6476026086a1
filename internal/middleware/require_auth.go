// Package middleware contain utilities middleware code
package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"jobboard-backend/internal/auth"
	"jobboard-backend/internal/model"
	"jobboard-backend/internal/utilities"
)

// TokenValidator verifies an encoded access token
type TokenValidator interface {
	Validate(encoded string) (*auth.Claims, error)
}

// RequireAuth validates the Bearer token in the Authorization header and
// loads the user it belongs to. The claims, user and actor are stored on the
// context for later handlers. Deactivated users are refused with 403.
func RequireAuth(db *gorm.DB, tokens TokenValidator) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		tokenString, err := utilities.ExtractBearerToken(ctx)
		if err != nil {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, utilities.ErrorResponse{
				Error: err.Error(),
			})
			return
		}

		claims, err := tokens.Validate(tokenString)
		if err != nil {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, utilities.ErrorResponse{
				Error: "Invalid or expired access token",
			})
			return
		}

		userID, _ := claims.UserID()

		var foundUser model.User
		if err := db.Take(&foundUser, "id = ?", userID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				ctx.AbortWithStatusJSON(http.StatusUnauthorized, utilities.ErrorResponse{
					Error: "User not exist",
				})
				return
			}

			log.WithField("error_type", "db").Errorf("failed to load user %s: %v", userID, err)
			ctx.AbortWithStatusJSON(http.StatusInternalServerError, utilities.ErrorResponse{
				Error: "Failed to retrieve user data",
			})
			return
		}

		if !foundUser.Active {
			ctx.AbortWithStatusJSON(http.StatusForbidden, utilities.ErrorResponse{
				Error: "Account is deactivated",
			})
			return
		}

		// role comes from the stored user, not the token claim
		ctx.Set(utilities.ClaimsKey, claims)
		ctx.Set(utilities.UserKey, foundUser)
		ctx.Set(utilities.ActorKey, model.Actor{UserID: foundUser.ID, Role: foundUser.Role})
		ctx.Next()
	}
}
