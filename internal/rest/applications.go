package rest

import (
	"context"
	"net/http"
	"net/url"

	"github.com/pakkurthi/jobquest-client/internal/domain"
)

// ApplicationsAPI implements domain.ApplicationGateway over the
// /api/job-seeker and /api/provider routes.
type ApplicationsAPI struct {
	c *Client
}

// NewApplicationsAPI creates the applications gateway.
func NewApplicationsAPI(c *Client) *ApplicationsAPI {
	return &ApplicationsAPI{c: c}
}

func (a *ApplicationsAPI) Apply(ctx context.Context, req domain.ApplyRequest) (*domain.Application, error) {
	var created domain.Application
	if err := a.c.send(ctx, http.MethodPost, "/api/job-seeker/apply", "seeker_apply", req, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (a *ApplicationsAPI) MyApplications(ctx context.Context) ([]domain.Application, error) {
	var apps []domain.Application
	if err := a.c.get(ctx, "/api/job-seeker/applications", "seeker_applications", &apps); err != nil {
		return nil, err
	}
	return apps, nil
}

func (a *ApplicationsAPI) ApplicationByID(ctx context.Context, id string) (*domain.Application, error) {
	var app domain.Application
	path := "/api/job-seeker/applications/" + url.PathEscape(id)
	if err := a.c.get(ctx, path, "seeker_application_by_id", &app); err != nil {
		return nil, err
	}
	return &app, nil
}

func (a *ApplicationsAPI) MyApplicationsCount(ctx context.Context) (int, error) {
	var count int
	if err := a.c.get(ctx, "/api/job-seeker/applications/count", "seeker_applications_count", &count); err != nil {
		return 0, err
	}
	return count, nil
}

// Withdraw returns the authoritative application when the backend includes
// one in the response, nil otherwise.
func (a *ApplicationsAPI) Withdraw(ctx context.Context, id string) (*domain.Application, error) {
	var updated domain.Application
	path := "/api/job-seeker/applications/" + url.PathEscape(id) + "/withdraw"
	if err := a.c.send(ctx, http.MethodPut, path, "seeker_withdraw", nil, &updated); err != nil {
		return nil, err
	}
	if updated.ID == "" {
		return nil, nil
	}
	return &updated, nil
}

func (a *ApplicationsAPI) ProviderApplications(ctx context.Context) ([]domain.Application, error) {
	var apps []domain.Application
	if err := a.c.get(ctx, "/api/provider/applications", "provider_applications", &apps); err != nil {
		return nil, err
	}
	return apps, nil
}

func (a *ApplicationsAPI) ApplicationsForJob(ctx context.Context, jobID string) ([]domain.Application, error) {
	var apps []domain.Application
	path := "/api/provider/jobs/" + url.PathEscape(jobID) + "/applications"
	if err := a.c.get(ctx, path, "provider_job_applications", &apps); err != nil {
		return nil, err
	}
	return apps, nil
}

type statusUpdateRequest struct {
	Status domain.Status `json:"status"`
}

// UpdateStatus returns the authoritative application when the backend
// includes one in the response, nil otherwise.
func (a *ApplicationsAPI) UpdateStatus(ctx context.Context, id string, status domain.Status) (*domain.Application, error) {
	var updated domain.Application
	path := "/api/provider/applications/" + url.PathEscape(id) + "/status"
	if err := a.c.send(ctx, http.MethodPut, path, "provider_update_status", statusUpdateRequest{Status: status}, &updated); err != nil {
		return nil, err
	}
	if updated.ID == "" {
		return nil, nil
	}
	return &updated, nil
}
