package app

import (
	"context"
	"log/slog"

	"github.com/pakkurthi/jobquest-client/internal/authz"
	"github.com/pakkurthi/jobquest-client/internal/domain"
	"github.com/pakkurthi/jobquest-client/internal/lifecycle"
	"github.com/pakkurthi/jobquest-client/internal/metrics"
	"github.com/pakkurthi/jobquest-client/internal/reconcile"
	"github.com/pakkurthi/jobquest-client/internal/session"
)

// Service is the application layer. It owns the reconciled collections and
// applies the three-phase optimistic protocol (mark in-flight, await the
// backend, commit or roll back) to every mutation of them.
type Service struct {
	session *session.Store
	engine  *lifecycle.Engine
	jobs    domain.JobGateway
	gateway domain.ApplicationGateway

	applications *reconcile.List[domain.Application]
	myJobs       *reconcile.List[domain.Job]
}

// NewService creates the application layer service.
func NewService(sess *session.Store, engine *lifecycle.Engine, jobs domain.JobGateway, apps domain.ApplicationGateway) *Service {
	return &Service{
		session:      sess,
		engine:       engine,
		jobs:         jobs,
		gateway:      apps,
		applications: reconcile.NewList[domain.Application](),
		myJobs:       reconcile.NewList[domain.Job](),
	}
}

// --- Session ---

// Resolve establishes the session from stored credentials.
func (s *Service) Resolve(ctx context.Context) (domain.Session, error) {
	return s.session.Resolve(ctx)
}

// Login signs the session in.
func (s *Service) Login(ctx context.Context, email, password string) (*domain.Identity, error) {
	return s.session.Login(ctx, email, password)
}

// Register creates an account and signs the session in.
func (s *Service) Register(ctx context.Context, req domain.SignUpRequest) (*domain.Identity, error) {
	return s.session.Register(ctx, req)
}

// Logout clears the session and the reconciled collections.
func (s *Service) Logout(ctx context.Context) {
	s.session.Logout(ctx)
	s.applications.Replace(nil)
	s.myJobs.Replace(nil)
}

// Session returns the current session snapshot.
func (s *Service) Session() domain.Session {
	return s.session.Snapshot()
}

// Authorize evaluates the guard for a protected view against the live
// session state.
func (s *Service) Authorize(required authz.Capability) authz.Decision {
	return authz.Evaluate(s.session.Snapshot(), required)
}

func (s *Service) actorRole() (domain.Role, error) {
	snap := s.session.Snapshot()
	if snap.Identity == nil {
		return "", domain.ErrNotAuthenticated
	}
	return snap.Identity.Role, nil
}

// --- Job browsing (public) ---

func (s *Service) BrowseJobs(ctx context.Context) ([]domain.Job, error) {
	return s.jobs.AllJobs(ctx)
}

func (s *Service) FeaturedJobs(ctx context.Context) ([]domain.Job, error) {
	return s.jobs.FeaturedJobs(ctx)
}

func (s *Service) SearchJobs(ctx context.Context, keyword string) ([]domain.Job, error) {
	return s.jobs.SearchJobs(ctx, keyword)
}

func (s *Service) JobByID(ctx context.Context, id string) (*domain.Job, error) {
	return s.jobs.JobByID(ctx, id)
}

// --- Job management (provider) ---

// LoadMyJobs refreshes the provider's posted jobs from the backend.
func (s *Service) LoadMyJobs(ctx context.Context) ([]domain.Job, error) {
	jobs, err := s.jobs.MyJobs(ctx)
	if err != nil {
		return nil, err
	}
	s.myJobs.Replace(jobs)
	return s.myJobs.Items(), nil
}

// MyJobs returns the cached posted jobs.
func (s *Service) MyJobs() []domain.Job {
	return s.myJobs.Items()
}

func (s *Service) CreateJob(ctx context.Context, job domain.Job) (*domain.Job, error) {
	return s.jobs.CreateJob(ctx, job)
}

// UpdateJob updates a posting and reconciles the cached copy when present.
func (s *Service) UpdateJob(ctx context.Context, id string, job domain.Job) (*domain.Job, error) {
	updated, err := s.jobs.UpdateJob(ctx, id, job)
	if err != nil {
		return nil, err
	}
	if updated != nil {
		s.myJobs.Commit(id, *updated)
	}
	return updated, nil
}

// DeleteJob removes a posting with the optimistic protocol: the delete
// control goes unavailable while the request is in flight, and the posting
// reappears untouched if the backend refuses.
func (s *Service) DeleteJob(ctx context.Context, id string) error {
	if !s.myJobs.Begin(id) {
		slog.Debug("Ignoring delete for job with request in flight", "job_id", id)
		return nil
	}

	if err := s.jobs.DeleteJob(ctx, id); err != nil {
		s.myJobs.Rollback(id)
		metrics.OptimisticRollbacks.WithLabelValues("job_delete").Inc()
		return err
	}

	s.myJobs.CommitRemove(id)
	return nil
}

// JobInFlight reports whether a posting has an outstanding request.
func (s *Service) JobInFlight(id string) bool {
	return s.myJobs.InFlight(id)
}

// --- Applications ---

// ApplyToJob submits a new application. The backend is authoritative on
// duplicate rejection; its refusal surfaces as a validation error.
func (s *Service) ApplyToJob(ctx context.Context, req domain.ApplyRequest) (*domain.Application, error) {
	return s.engine.Apply(ctx, req)
}

// LoadMyApplications refreshes the seeker's applications from the backend.
func (s *Service) LoadMyApplications(ctx context.Context) ([]domain.Application, error) {
	apps, err := s.gateway.MyApplications(ctx)
	if err != nil {
		return nil, err
	}
	s.applications.Replace(apps)
	return s.applications.Items(), nil
}

// LoadProviderApplications refreshes the provider's incoming applications.
func (s *Service) LoadProviderApplications(ctx context.Context) ([]domain.Application, error) {
	apps, err := s.gateway.ProviderApplications(ctx)
	if err != nil {
		return nil, err
	}
	s.applications.Replace(apps)
	return s.applications.Items(), nil
}

// LoadApplicationsForJob refreshes the applications for one posting.
func (s *Service) LoadApplicationsForJob(ctx context.Context, jobID string) ([]domain.Application, error) {
	apps, err := s.gateway.ApplicationsForJob(ctx, jobID)
	if err != nil {
		return nil, err
	}
	s.applications.Replace(apps)
	return s.applications.Items(), nil
}

// Applications returns the cached collection.
func (s *Service) Applications() []domain.Application {
	return s.applications.Items()
}

// ApplicationInFlight reports whether an application has an outstanding
// transition request.
func (s *Service) ApplicationInFlight(id string) bool {
	return s.applications.InFlight(id)
}

// ApplicationsByGroup projects the cached collection onto one triage bucket.
// The projection never mutates or reorders the collection.
func (s *Service) ApplicationsByGroup(group domain.StatusGroup) []domain.Application {
	return s.applications.Filter(func(a domain.Application) bool {
		return a.Status.Group() == group
	})
}

// GroupCounts tallies the cached collection per triage bucket.
func (s *Service) GroupCounts() map[domain.StatusGroup]int {
	counts := make(map[domain.StatusGroup]int)
	for _, a := range s.applications.Items() {
		counts[a.Status.Group()]++
	}
	return counts
}

// MyApplicationsCount returns the seeker's application count.
func (s *Service) MyApplicationsCount(ctx context.Context) (int, error) {
	return s.gateway.MyApplicationsCount(ctx)
}

// CanWithdraw reports whether the withdraw control is offered for the cached
// application.
func (s *Service) CanWithdraw(id string) bool {
	a, ok := s.applications.Get(id)
	return ok && lifecycle.CanWithdraw(a.Status)
}

// Withdraw runs the seeker withdraw edge through the lifecycle engine with
// the optimistic protocol. A second invocation while the first is in flight
// is a no-op.
func (s *Service) Withdraw(ctx context.Context, id string) (*domain.Application, error) {
	return s.transition(ctx, id, domain.StatusWithdrawn, "withdraw")
}

// UpdateApplicationStatus runs a provider transition through the lifecycle
// engine with the optimistic protocol.
func (s *Service) UpdateApplicationStatus(ctx context.Context, id string, to domain.Status) (*domain.Application, error) {
	return s.transition(ctx, id, to, "status_update")
}

func (s *Service) transition(ctx context.Context, id string, to domain.Status, operation string) (*domain.Application, error) {
	current, ok := s.applications.Get(id)
	if !ok {
		return nil, domain.ErrApplicationNotFound
	}

	actor, err := s.actorRole()
	if err != nil {
		return nil, err
	}

	// Validate before marking in-flight: a locally rejected request must not
	// disable the control.
	if err := lifecycle.Validate(current.Status, to, actor); err != nil {
		return nil, err
	}

	if !s.applications.Begin(id) {
		slog.Debug("Ignoring transition for application with request in flight",
			"application_id", id, "to", to)
		return nil, nil
	}

	updated, err := s.engine.Transition(ctx, current, to, actor)
	if err != nil {
		s.applications.Rollback(id)
		metrics.OptimisticRollbacks.WithLabelValues(operation).Inc()
		return nil, err
	}

	s.applications.Commit(id, *updated)
	return updated, nil
}
