// Package utilities contain utility code that use across the package
package utilities

import (
	"errors"
	"reflect"

	"github.com/gin-gonic/gin"

	"jobboard-backend/internal/model"
)

// Context keys set by the authentication middleware
const (
	UserKey   = "user"
	ClaimsKey = "claims"
	ActorKey  = "actor"
)

// ErrorResponse is the body of every failed request
type ErrorResponse struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
}

// MessageResponse is the body of requests that only confirm something
type MessageResponse struct {
	Message string `json:"message"`
}

// ExtractUser extracts the user model from Gin context.
// It does not abort the request; instead returns an error when missing/invalid.
func ExtractUser(c *gin.Context) (model.User, error) {
	u, _ := c.Get(UserKey)
	if u == nil {
		return model.User{}, errors.New("user information not provided")
	}

	user, ok := u.(model.User)
	if !ok {
		return model.User{}, errors.New("failed to assert type")
	}
	return user, nil
}

// ExtractActor returns the authenticated actor stored by the authentication middleware.
func ExtractActor(c *gin.Context) (model.Actor, error) {
	a, ok := c.Get(ActorKey)
	if !ok {
		return model.Actor{}, errors.New("actor not provided")
	}
	actor, ok := a.(model.Actor)
	if !ok {
		return model.Actor{}, errors.New("failed to assert type")
	}
	return actor, nil
}

// MergeNonEmpty help merge struct with non-empty field
func MergeNonEmpty(dst, src interface{}) {
	dv := reflect.ValueOf(dst).Elem()
	sv := reflect.ValueOf(src).Elem()

	for i := 0; i < sv.NumField(); i++ {
		sf := sv.Field(i)
		if !sf.IsZero() {
			df := dv.FieldByName(sv.Type().Field(i).Name)
			if df.IsValid() && df.CanSet() {
				df.Set(sf)
			}
		}
	}
}
