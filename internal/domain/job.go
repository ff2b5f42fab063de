package domain

import "time"

// Job is a posting owned by exactly one provider identity. Immutable except
// through explicit update by that owner.
type Job struct {
	ID              string    `json:"id"`
	Title           string    `json:"title"`
	Company         string    `json:"company"`
	Location        string    `json:"location"`
	Category        string    `json:"category"`
	Type            string    `json:"type"`
	Salary          string    `json:"salary"`
	ExperienceLevel string    `json:"experienceLevel"`
	Description     string    `json:"description"`
	Requirements    string    `json:"requirements"`
	Responsibilities string   `json:"responsibilities"`
	CreatedAt       time.Time `json:"createdAt"`
	OwnerProviderID string    `json:"ownerProviderId"`
}

// Key returns the reconciliation key for the job.
func (j Job) Key() string { return j.ID }
