// Package notification delivers application status changes to applicants
// on a background path that never reports back to the caller.
package notification

import (
	"time"

	"github.com/google/uuid"

	"jobboard-backend/internal/model"
)

// StatusChangedTopic is the bus topic status changes are published on
var StatusChangedTopic = "ApplicationStatusChangedEvent"

// StatusChanged carries everything a sender needs, so delivery never reads the store.
type StatusChanged struct {
	ApplicationID  uint                    `json:"applicationId"`
	ApplicantID    uuid.UUID               `json:"applicantId"`
	ApplicantEmail string                  `json:"applicantEmail"`
	ApplicantName  string                  `json:"applicantName"`
	JobID          uint                    `json:"jobId"`
	JobTitle       string                  `json:"jobTitle"`
	Status         model.ApplicationStatus `json:"status"`
	ChangedAt      time.Time               `json:"changedAt"`
}
