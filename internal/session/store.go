// Package session owns the authenticated identity for the client process.
//
// The store is the single writer of session state; every other component
// reads it through Snapshot or the role predicates. An internal epoch counter
// guards against late network completions: any resolve or sign-in that
// finishes after an intervening logout or invalidation is discarded, so a
// stale identity response can never resurrect a cleared session.
package session

import (
	"context"
	"log/slog"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/pakkurthi/jobquest-client/internal/domain"
	"github.com/pakkurthi/jobquest-client/internal/errors"
	"github.com/pakkurthi/jobquest-client/internal/metrics"
)

// Store is the single source of truth for who is using this client.
type Store struct {
	auth  domain.AuthGateway
	creds domain.CredentialStore

	mu        sync.Mutex
	identity  *domain.Identity
	token     string
	resolving bool
	resolved  bool
	epoch     uint64

	resolveGroup singleflight.Group
}

// NewStore creates a session store over the given auth gateway and
// credential store.
func NewStore(auth domain.AuthGateway, creds domain.CredentialStore) *Store {
	return &Store{auth: auth, creds: creds}
}

// Snapshot returns a point-in-time copy of the session state.
func (s *Store) Snapshot() domain.Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *Store) snapshotLocked() domain.Session {
	snap := domain.Session{Resolving: s.resolving}
	if s.identity != nil {
		identity := *s.identity
		snap.Identity = &identity
	}
	return snap
}

// Token returns the current bearer token, empty when signed out. Used by the
// transport as its token source.
func (s *Store) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token
}

// IsJobProvider reports whether the current identity is a job provider.
// False when no identity is resolved.
func (s *Store) IsJobProvider() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.identity != nil && s.identity.Role == domain.RoleJobProvider
}

// IsJobSeeker reports whether the current identity is a job seeker.
// False when no identity is resolved.
func (s *Store) IsJobSeeker() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.identity != nil && s.identity.Role == domain.RoleJobSeeker
}

// Resolve establishes the session from stored credentials. Idempotent: once a
// resolution has completed, further calls return the cached state without
// re-issuing the identity fetch, until Logout. Concurrent calls collapse into
// a single backend request.
func (s *Store) Resolve(ctx context.Context) (domain.Session, error) {
	s.mu.Lock()
	if s.resolved {
		snap := s.snapshotLocked()
		s.mu.Unlock()
		metrics.SessionResolutions.WithLabelValues("cached").Inc()
		return snap, nil
	}
	epoch := s.epoch
	s.resolving = true
	s.mu.Unlock()

	_, err, _ := s.resolveGroup.Do("resolve", func() (any, error) {
		return nil, s.resolveOnce(ctx, epoch)
	})

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.epoch == epoch {
		s.resolving = false
	}
	return s.snapshotLocked(), err
}

func (s *Store) resolveOnce(ctx context.Context, epoch uint64) error {
	creds, err := s.creds.Load(ctx)
	if err != nil {
		slog.Warn("Credential store unreadable, starting signed out", "error", err)
		creds = nil
	}

	if creds == nil || creds.Token == "" {
		s.completeResolve(epoch, nil, "")
		metrics.SessionResolutions.WithLabelValues("absent").Inc()
		return nil
	}

	// The token must be visible to the transport before the identity fetch.
	s.mu.Lock()
	if s.epoch == epoch {
		s.token = creds.Token
	}
	s.mu.Unlock()

	identity, err := s.auth.CurrentIdentity(ctx)
	if err != nil {
		if errors.IsAuthentication(err) {
			// Expired or invalid token: discard it and finish signed out.
			if clearErr := s.creds.Clear(ctx); clearErr != nil {
				slog.Warn("Failed to clear stale credentials", "error", clearErr)
			}
			s.completeResolve(epoch, nil, "")
			metrics.SessionResolutions.WithLabelValues("expired").Inc()
			return nil
		}
		metrics.SessionResolutions.WithLabelValues("error").Inc()
		return err
	}

	s.completeResolve(epoch, identity, creds.Token)
	metrics.SessionResolutions.WithLabelValues("resolved").Inc()
	return nil
}

// completeResolve commits the resolution result unless the session epoch has
// moved on, in which case the late result is dropped.
func (s *Store) completeResolve(epoch uint64, identity *domain.Identity, token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.epoch != epoch {
		slog.Debug("Discarding stale session resolution")
		return
	}
	s.identity = identity
	s.token = token
	s.resolved = true
	s.resolving = false
}

// Login authenticates with the backend and persists the returned credentials.
// On failure the session state is left unchanged.
func (s *Store) Login(ctx context.Context, email, password string) (*domain.Identity, error) {
	return s.signIn(ctx, func() (*domain.AuthResult, error) {
		return s.auth.SignIn(ctx, email, password)
	})
}

// Register creates a new account carrying the requested role and signs the
// session in. Role cannot be changed post-registration by this client.
func (s *Store) Register(ctx context.Context, req domain.SignUpRequest) (*domain.Identity, error) {
	if !req.Role.Valid() {
		return nil, errors.ValidationError("role must be JOB_SEEKER or JOB_PROVIDER")
	}
	return s.signIn(ctx, func() (*domain.AuthResult, error) {
		return s.auth.SignUp(ctx, req)
	})
}

func (s *Store) signIn(ctx context.Context, call func() (*domain.AuthResult, error)) (*domain.Identity, error) {
	s.mu.Lock()
	epoch := s.epoch
	s.resolving = true
	s.mu.Unlock()

	result, err := call()

	s.mu.Lock()
	stale := s.epoch != epoch
	if !stale {
		s.resolving = false
	}
	if err != nil {
		s.mu.Unlock()
		return nil, err
	}
	if stale {
		s.mu.Unlock()
		return nil, errors.AuthenticationError("session was cleared while signing in")
	}

	identity := result.Identity
	s.identity = &identity
	s.token = result.Token
	s.resolved = true
	s.mu.Unlock()

	if err := s.creds.Save(ctx, domain.Credentials{Token: result.Token, Identity: &identity}); err != nil {
		slog.Warn("Failed to persist credentials", "error", err)
	}
	return &identity, nil
}

// Logout clears the session and stored credentials unconditionally. It never
// blocks on the network: credential store failures are logged, not returned.
func (s *Store) Logout(ctx context.Context) {
	s.clear(ctx)
	slog.Info("Signed out")
}

// Invalidate is the global authentication-invalid signal: wired as the
// transport's 401 hook. It clears the session exactly like Logout regardless
// of which call observed the rejection.
func (s *Store) Invalidate() {
	s.clear(context.Background())
	metrics.SessionInvalidations.Inc()
	slog.Warn("Session invalidated by authentication failure")
}

func (s *Store) clear(ctx context.Context) {
	s.mu.Lock()
	s.epoch++
	s.identity = nil
	s.token = ""
	s.resolved = false
	s.resolving = false
	s.mu.Unlock()

	if err := s.creds.Clear(ctx); err != nil {
		slog.Warn("Failed to clear stored credentials", "error", err)
	}
}
