package domain

import "time"

// Status is an application's position in the hiring lifecycle.
type Status string

const (
	StatusApplied     Status = "APPLIED"
	StatusUnderReview Status = "UNDER_REVIEW"
	StatusShortlisted Status = "SHORTLISTED"
	StatusInterviewed Status = "INTERVIEWED"
	StatusOffered     Status = "OFFERED"
	StatusAccepted    Status = "ACCEPTED"
	StatusRejected    Status = "REJECTED"
	StatusWithdrawn   Status = "WITHDRAWN"

	// StatusPending is a legacy wire alias of APPLIED that the backend still
	// emits for older rows. It only participates in the seeker withdraw rule;
	// the backend owns its normalization.
	StatusPending Status = "PENDING"
)

// Terminal reports whether s has no valid outgoing transition.
func (s Status) Terminal() bool {
	return s == StatusAccepted || s == StatusRejected || s == StatusWithdrawn
}

// Valid reports whether s is a known status value.
func (s Status) Valid() bool {
	switch s {
	case StatusApplied, StatusPending, StatusUnderReview, StatusShortlisted,
		StatusInterviewed, StatusOffered, StatusAccepted, StatusRejected, StatusWithdrawn:
		return true
	}
	return false
}

// StatusGroup is a derived bucket used by triage views. Grouping is a
// stateless projection; it never feeds back into transition rules.
type StatusGroup string

const (
	GroupNew       StatusGroup = "new"
	GroupReviewing StatusGroup = "reviewing"
	GroupAccepted  StatusGroup = "accepted"
	GroupRejected  StatusGroup = "rejected"
	GroupWithdrawn StatusGroup = "withdrawn"
)

// Group returns the triage bucket for s.
func (s Status) Group() StatusGroup {
	switch s {
	case StatusApplied, StatusPending:
		return GroupNew
	case StatusUnderReview, StatusShortlisted, StatusInterviewed:
		return GroupReviewing
	case StatusAccepted, StatusOffered:
		return GroupAccepted
	case StatusRejected:
		return GroupRejected
	default:
		return GroupWithdrawn
	}
}

// Application is a seeker's application to a single job. Created exactly once
// per (JobID, ApplicantID) pair; never deleted, only transitioned. Status is
// the only mutable field after creation, aside from UpdatedAt which changes
// on every status change.
type Application struct {
	ID             string    `json:"id"`
	JobID          string    `json:"jobId"`
	ApplicantID    string    `json:"applicantId"`
	ApplicantName  string    `json:"applicantName"`
	ApplicantEmail string    `json:"applicantEmail"`
	CoverLetter    string    `json:"coverLetter,omitempty"`
	ResumeURL      string    `json:"resumeUrl,omitempty"`
	Status         Status    `json:"status"`
	AppliedAt      time.Time `json:"appliedAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// Key returns the reconciliation key for the application.
func (a Application) Key() string { return a.ID }
