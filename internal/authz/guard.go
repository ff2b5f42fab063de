// Package authz decides whether a protected view may render for the current
// session, without a flash of disallowed content.
package authz

import "github.com/pakkurthi/jobquest-client/internal/domain"

// Capability is the access requirement a protected view declares.
type Capability string

const (
	Authenticated Capability = "authenticated"
	JobProvider   Capability = "job-provider"
	JobSeeker     Capability = "job-seeker"
)

// DecisionKind is the outcome of a guard evaluation.
type DecisionKind int

const (
	// Pending means identity resolution is still in flight: render a neutral
	// loading state, never the protected view and never a redirect.
	Pending DecisionKind = iota
	// Allow means the session meets the requirement.
	Allow
	// Deny means the requirement is not met; redirect to RedirectTo.
	Deny
)

func (k DecisionKind) String() string {
	switch k {
	case Pending:
		return "PENDING"
	case Allow:
		return "ALLOW"
	default:
		return "DENY"
	}
}

// loginPath is where denied visitors are sent.
const loginPath = "/login"

// Decision is the guard's answer for one render of a protected boundary.
type Decision struct {
	Kind       DecisionKind
	RedirectTo string
}

// Evaluate is a pure function of (session, required capability). It must be
// re-evaluated on every render: identity or role may change between renders,
// so decisions are never cached apart from the session state itself.
func Evaluate(s domain.Session, required Capability) Decision {
	if s.Resolving {
		return Decision{Kind: Pending}
	}

	if !s.Authenticated() {
		return Decision{Kind: Deny, RedirectTo: loginPath}
	}

	switch required {
	case Authenticated:
		return Decision{Kind: Allow}
	case JobProvider:
		if s.Identity.Role == domain.RoleJobProvider {
			return Decision{Kind: Allow}
		}
	case JobSeeker:
		if s.Identity.Role == domain.RoleJobSeeker {
			return Decision{Kind: Allow}
		}
	}

	return Decision{Kind: Deny, RedirectTo: loginPath}
}
