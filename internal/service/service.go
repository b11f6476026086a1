// Package service holds the business operations behind the HTTP handlers.
//
// Every operation receives the acting user explicitly as a model.Actor and
// returns either nil or an *apperror.Error.
package service

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"jobboard-backend/internal/apperror"
	"jobboard-backend/internal/model"
	"jobboard-backend/internal/notification"
)

// Notifier receives status changes after they are committed. Implementations
// must return without waiting for delivery.
type Notifier interface {
	NotifyStatusChanged(event notification.StatusChanged)
}

// NopNotifier drops every notification
type NopNotifier struct{}

// NotifyStatusChanged implements Notifier
func (NopNotifier) NotifyStatusChanged(notification.StatusChanged) {}

// TokenIssuer signs access tokens for authenticated users
type TokenIssuer interface {
	Issue(user model.User) (string, error)
}

// PasswordHasher is the credential hashing primitive
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(hash, password string) bool
}

func utcNow() time.Time { return time.Now().UTC() }

// storeError turns a store failure into an apperror, mapping missing rows to NotFound.
func storeError(err error, notFound string, args ...any) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperror.NotFound(notFound, args...)
	}
	return apperror.Internal(err, "database error")
}

func paginate(page, size int) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Offset((page - 1) * size).Limit(size)
	}
}

func requireRole(actor model.Actor, roles ...model.Role) error {
	for _, r := range roles {
		if actor.Role == r {
			return nil
		}
	}
	return apperror.Forbidden("role %s is not allowed to perform this action", actor.Role)
}
