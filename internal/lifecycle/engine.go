package lifecycle

import (
	"context"
	"log/slog"
	"slices"

	"github.com/jonboulle/clockwork"
	"github.com/pakkurthi/jobquest-client/internal/domain"
	"github.com/pakkurthi/jobquest-client/internal/errors"
	"github.com/pakkurthi/jobquest-client/internal/metrics"
)

// transitions is the legal-edge set keyed by (status, role). Terminal
// statuses (ACCEPTED, REJECTED, WITHDRAWN) have no entry: nothing leaves them.
// WITHDRAWN is the only seeker-initiated edge and exists only from APPLIED
// and its legacy wire alias PENDING.
var transitions = map[domain.Status]map[domain.Role][]domain.Status{
	domain.StatusApplied: {
		domain.RoleJobProvider: {domain.StatusUnderReview, domain.StatusAccepted, domain.StatusRejected},
		domain.RoleJobSeeker:   {domain.StatusWithdrawn},
	},
	domain.StatusPending: {
		domain.RoleJobSeeker: {domain.StatusWithdrawn},
	},
	domain.StatusUnderReview: {
		domain.RoleJobProvider: {domain.StatusShortlisted, domain.StatusAccepted, domain.StatusRejected},
	},
	domain.StatusShortlisted: {
		domain.RoleJobProvider: {domain.StatusInterviewed, domain.StatusAccepted, domain.StatusRejected},
	},
	domain.StatusInterviewed: {
		domain.RoleJobProvider: {domain.StatusOffered, domain.StatusAccepted, domain.StatusRejected},
	},
	domain.StatusOffered: {
		domain.RoleJobProvider: {domain.StatusAccepted, domain.StatusRejected},
	},
}

// Validate checks a requested transition against the edge set. It returns an
// invalid-transition error carrying the (from, to, actor) triple when the
// current status is terminal, the actor's role cannot perform the edge, or
// the target is not in the allowed set. A nil return means the request may be
// sent to the backend.
func Validate(from, to domain.Status, actor domain.Role) error {
	if slices.Contains(AllowedTargets(from, actor), to) {
		return nil
	}
	return errors.InvalidTransition(string(from), string(to), string(actor))
}

// AllowedTargets returns the statuses actor may move an application to from
// the given status. Empty for terminal statuses and for edges the actor's
// role does not own.
func AllowedTargets(from domain.Status, actor domain.Role) []domain.Status {
	byRole, ok := transitions[from]
	if !ok {
		return nil
	}
	return byRole[actor]
}

// CanWithdraw reports whether the withdraw control is offered for an
// application in the given status. Withdrawal is exposed only while the
// provider has not progressed the application: APPLIED or PENDING.
func CanWithdraw(status domain.Status) bool {
	return Validate(status, domain.StatusWithdrawn, domain.RoleJobSeeker) == nil
}

// Engine is the single choke point for application status changes. It
// validates locally, delegates persistence to the backend gateway, and
// returns the authoritative application state.
type Engine struct {
	apps  domain.ApplicationGateway
	clock clockwork.Clock
}

// NewEngine creates a lifecycle engine over the given backend gateway.
func NewEngine(apps domain.ApplicationGateway, clock clockwork.Clock) *Engine {
	return &Engine{apps: apps, clock: clock}
}

// Transition moves app to the target status on behalf of actor. Locally
// invalid requests are rejected before any network call. On success the
// returned application reflects the backend's authoritative state; when the
// backend returns no body the engine stamps UpdatedAt from its clock.
func (e *Engine) Transition(ctx context.Context, app domain.Application, to domain.Status, actor domain.Role) (*domain.Application, error) {
	if err := Validate(app.Status, to, actor); err != nil {
		slog.Debug("Transition rejected locally",
			"application_id", app.ID,
			"from", app.Status,
			"to", to,
			"actor", actor)
		metrics.ApplicationTransitions.WithLabelValues(string(app.Status), string(to), "rejected_local").Inc()
		return nil, err
	}

	var (
		updated *domain.Application
		err     error
	)
	if to == domain.StatusWithdrawn {
		updated, err = e.apps.Withdraw(ctx, app.ID)
	} else {
		updated, err = e.apps.UpdateStatus(ctx, app.ID, to)
	}
	if err != nil {
		metrics.ApplicationTransitions.WithLabelValues(string(app.Status), string(to), "failed").Inc()
		return nil, err
	}

	if updated == nil {
		stamped := app
		stamped.Status = to
		stamped.UpdatedAt = e.clock.Now()
		updated = &stamped
	}

	metrics.ApplicationTransitions.WithLabelValues(string(app.Status), string(to), "ok").Inc()
	return updated, nil
}

// Withdraw is the seeker-initiated edge to WITHDRAWN.
func (e *Engine) Withdraw(ctx context.Context, app domain.Application) (*domain.Application, error) {
	return e.Transition(ctx, app, domain.StatusWithdrawn, domain.RoleJobSeeker)
}

// Apply creates a new application. Creation is a distinct operation, not a
// transition: no pre-existing application is required, and the backend is
// authoritative on rejecting duplicates for the same (job, applicant) pair.
func (e *Engine) Apply(ctx context.Context, req domain.ApplyRequest) (*domain.Application, error) {
	created, err := e.apps.Apply(ctx, req)
	if err != nil {
		return nil, err
	}
	return created, nil
}
