package domain

import "context"

// AuthResult is the backend's answer to a successful signin or signup.
type AuthResult struct {
	Token    string
	Identity Identity
}

// SignUpRequest carries the registration profile. Role is fixed at signup and
// cannot be changed afterwards through this client.
type SignUpRequest struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Role      Role   `json:"role"`
}

// AuthGateway is the backend authentication collaborator.
type AuthGateway interface {
	SignIn(ctx context.Context, email, password string) (*AuthResult, error)
	SignUp(ctx context.Context, req SignUpRequest) (*AuthResult, error)
	CurrentIdentity(ctx context.Context) (*Identity, error)
}

// JobGateway is the backend job collaborator.
type JobGateway interface {
	AllJobs(ctx context.Context) ([]Job, error)
	FeaturedJobs(ctx context.Context) ([]Job, error)
	JobByID(ctx context.Context, id string) (*Job, error)
	SearchJobs(ctx context.Context, keyword string) ([]Job, error)

	// Provider-only operations

	CreateJob(ctx context.Context, job Job) (*Job, error)
	UpdateJob(ctx context.Context, id string, job Job) (*Job, error)
	DeleteJob(ctx context.Context, id string) error
	MyJobs(ctx context.Context) ([]Job, error)
}

// ApplyRequest creates a new application. The backend is authoritative on
// duplicate (JobID, applicant) rejection; the client performs no local check.
type ApplyRequest struct {
	JobID       string `json:"jobId"`
	CoverLetter string `json:"coverLetter,omitempty"`
	ResumeURL   string `json:"resumeUrl,omitempty"`
}

// ApplicationGateway is the backend application collaborator. Withdraw and
// UpdateStatus return the authoritative application after the transition.
type ApplicationGateway interface {
	// Seeker operations

	Apply(ctx context.Context, req ApplyRequest) (*Application, error)
	MyApplications(ctx context.Context) ([]Application, error)
	ApplicationByID(ctx context.Context, id string) (*Application, error)
	MyApplicationsCount(ctx context.Context) (int, error)
	Withdraw(ctx context.Context, id string) (*Application, error)

	// Provider operations

	ProviderApplications(ctx context.Context) ([]Application, error)
	ApplicationsForJob(ctx context.Context, jobID string) ([]Application, error)
	UpdateStatus(ctx context.Context, id string, status Status) (*Application, error)
}
