package auth

import (
	log "github.com/sirupsen/logrus"
)

// Authentication attempt outcomes
const (
	AuthSuccess = "Success"
	AuthFail    = "Fail"
)

// LogAuthAttempt records one authentication attempt.
// authType: Local|Google|Logout
// identifier: email, user id, etc. (optional)
func LogAuthAttempt(level log.Level, authType, status, identifier, message string) {
	entry := log.WithFields(log.Fields{
		"auth_type": authType,
		"status":    status,
	})
	if identifier != "" {
		entry = entry.WithField("identifier", identifier)
	}
	if level <= log.ErrorLevel {
		entry = entry.WithField("error_type", "auth")
	}
	if message == "" {
		message = "authentication attempt"
	}
	entry.Log(level, message)
}
