package rest

import (
	"context"
	"net/http"
	"net/url"

	"github.com/pakkurthi/jobquest-client/internal/domain"
)

// JobsAPI implements domain.JobGateway over the /api/jobs routes.
type JobsAPI struct {
	c *Client
}

// NewJobsAPI creates the jobs gateway.
func NewJobsAPI(c *Client) *JobsAPI {
	return &JobsAPI{c: c}
}

func (j *JobsAPI) AllJobs(ctx context.Context) ([]domain.Job, error) {
	var jobs []domain.Job
	if err := j.c.get(ctx, "/api/jobs/public/all", "jobs_all", &jobs); err != nil {
		return nil, err
	}
	return jobs, nil
}

func (j *JobsAPI) FeaturedJobs(ctx context.Context) ([]domain.Job, error) {
	var jobs []domain.Job
	if err := j.c.get(ctx, "/api/jobs/public/featured", "jobs_featured", &jobs); err != nil {
		return nil, err
	}
	return jobs, nil
}

func (j *JobsAPI) JobByID(ctx context.Context, id string) (*domain.Job, error) {
	var job domain.Job
	if err := j.c.get(ctx, "/api/jobs/public/"+url.PathEscape(id), "jobs_by_id", &job); err != nil {
		return nil, err
	}
	return &job, nil
}

func (j *JobsAPI) SearchJobs(ctx context.Context, keyword string) ([]domain.Job, error) {
	var jobs []domain.Job
	path := "/api/jobs/public/search?keyword=" + url.QueryEscape(keyword)
	if err := j.c.get(ctx, path, "jobs_search", &jobs); err != nil {
		return nil, err
	}
	return jobs, nil
}

func (j *JobsAPI) CreateJob(ctx context.Context, job domain.Job) (*domain.Job, error) {
	var created domain.Job
	if err := j.c.send(ctx, http.MethodPost, "/api/jobs/create", "jobs_create", job, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (j *JobsAPI) UpdateJob(ctx context.Context, id string, job domain.Job) (*domain.Job, error) {
	var updated domain.Job
	if err := j.c.send(ctx, http.MethodPut, "/api/jobs/"+url.PathEscape(id), "jobs_update", job, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (j *JobsAPI) DeleteJob(ctx context.Context, id string) error {
	return j.c.send(ctx, http.MethodDelete, "/api/jobs/"+url.PathEscape(id), "jobs_delete", nil, nil)
}

func (j *JobsAPI) MyJobs(ctx context.Context) ([]domain.Job, error) {
	var jobs []domain.Job
	if err := j.c.get(ctx, "/api/jobs/my-jobs", "jobs_mine", &jobs); err != nil {
		return nil, err
	}
	return jobs, nil
}
