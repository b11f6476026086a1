// Package metrics declares the Prometheus collectors exported at /metrics.
package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	// ErrorsCounter counts error level log entries by error type
	ErrorsCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "jobboard_errors_total",
			Help: "Total number of occurred errors.",
		},
		[]string{"type"},
	)
	ApplicationsCreated = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "jobboard_applications_created_total",
			Help: "Total number of accepted job applications.",
		},
	)
	DuplicateApplications = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "jobboard_applications_duplicate_total",
			Help: "Total number of rejected duplicate applications by the layer that caught them.",
		},
		[]string{"layer"},
	)
	StatusChanges = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "jobboard_application_status_changes_total",
			Help: "Total number of application status changes by new status.",
		},
		[]string{"status"},
	)
	NotificationsSent = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "jobboard_notifications_total",
			Help: "Total number of status-change notification attempts by outcome.",
		},
		[]string{"sender", "outcome"},
	)
	DeadlineSweepDeactivated = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "jobboard_jobs_deadline_deactivated_total",
			Help: "Total number of jobs deactivated after their deadline passed.",
		},
	)
)

var registerOnce sync.Once

// Register adds every collector to the default registry. Safe to call more than once.
func Register() {
	registerOnce.Do(func() {
		prometheus.MustRegister(
			ErrorsCounter,
			ApplicationsCreated,
			DuplicateApplications,
			StatusChanges,
			NotificationsSent,
			DeadlineSweepDeactivated,
		)
	})
}
