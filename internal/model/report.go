package model

// ActiveSplit is an active/inactive breakdown
type ActiveSplit struct {
	Total    int64 `json:"total"`
	Active   int64 `json:"active"`
	Inactive int64 `json:"inactive"`
}

// SystemStats is the admin dashboard overview
type SystemStats struct {
	Users                 ActiveSplit                 `json:"users"`
	Jobs                  ActiveSplit                 `json:"jobs"`
	DeletedJobs           int64                       `json:"deleted_jobs"`
	Organizations         ActiveSplit                 `json:"organizations"`
	VerifiedOrganizations int64                       `json:"verified_organizations"`
	UnverifiedOrgs        int64                       `json:"unverified_organizations"`
	Applications          int64                       `json:"applications"`
	ApplicationsByStatus  map[ApplicationStatus]int64 `json:"applications_by_status"`
	UsersByRole           map[string]int64            `json:"users_by_role"`
	Skills                int64                       `json:"skills"`
}

// SummaryReport adds system-wide averages to the overview
type SummaryReport struct {
	SystemStats
	AvgApplicationsPerJob float64 `json:"avg_applications_per_job"`
	AvgJobsPerOrg         float64 `json:"avg_jobs_per_organization"`
}

// OrganizationReportRow is one row of the per-organization matrix
type OrganizationReportRow struct {
	OrganizationID        uint    `json:"organization_id"`
	OrganizationName      string  `json:"organization_name"`
	Verified              bool    `json:"verified"`
	JobCount              int64   `json:"job_count"`
	ActiveJobCount        int64   `json:"active_job_count"`
	ApplicationCount      int64   `json:"application_count"`
	AvgApplicationsPerJob float64 `json:"avg_applications_per_job"`
}

// Page wraps one page of a paginated admin listing
type Page[T any] struct {
	Items []T   `json:"items"`
	Page  int   `json:"page"`
	Size  int   `json:"size"`
	Total int64 `json:"total"`
}
