package session

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pakkurthi/jobquest-client/internal/credstore"
	"github.com/pakkurthi/jobquest-client/internal/domain"
	"github.com/pakkurthi/jobquest-client/internal/errors"
)

// --- Mock auth gateway ---

type mockAuthGateway struct {
	mu                   sync.Mutex
	signInCalls          int
	signUpCalls          int
	currentIdentityCalls int

	signInFn          func(ctx context.Context, email, password string) (*domain.AuthResult, error)
	signUpFn          func(ctx context.Context, req domain.SignUpRequest) (*domain.AuthResult, error)
	currentIdentityFn func(ctx context.Context) (*domain.Identity, error)
}

func (m *mockAuthGateway) SignIn(ctx context.Context, email, password string) (*domain.AuthResult, error) {
	m.mu.Lock()
	m.signInCalls++
	m.mu.Unlock()
	if m.signInFn != nil {
		return m.signInFn(ctx, email, password)
	}
	return nil, errors.AuthenticationError("bad credentials")
}

func (m *mockAuthGateway) SignUp(ctx context.Context, req domain.SignUpRequest) (*domain.AuthResult, error) {
	m.mu.Lock()
	m.signUpCalls++
	m.mu.Unlock()
	if m.signUpFn != nil {
		return m.signUpFn(ctx, req)
	}
	return nil, errors.ValidationError("email taken")
}

func (m *mockAuthGateway) CurrentIdentity(ctx context.Context) (*domain.Identity, error) {
	m.mu.Lock()
	m.currentIdentityCalls++
	m.mu.Unlock()
	if m.currentIdentityFn != nil {
		return m.currentIdentityFn(ctx)
	}
	return nil, errors.AuthenticationError("token invalid")
}

func (m *mockAuthGateway) identityCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.currentIdentityCalls
}

func seekerIdentity() *domain.Identity {
	return &domain.Identity{
		ID:        "u1",
		Email:     "jane@example.com",
		FirstName: "Jane",
		LastName:  "Doe",
		Role:      domain.RoleJobSeeker,
	}
}

// --- Resolve ---

func TestResolve_NoStoredToken(t *testing.T) {
	store := NewStore(&mockAuthGateway{}, credstore.NewMemoryStore())

	snap, err := store.Resolve(context.Background())

	require.NoError(t, err)
	assert.False(t, snap.Resolving)
	assert.Nil(t, snap.Identity)
}

func TestResolve_StoredTokenFetchesIdentity(t *testing.T) {
	ctx := context.Background()
	creds := credstore.NewMemoryStore()
	require.NoError(t, creds.Save(ctx, domain.Credentials{Token: "tok-1"}))

	auth := &mockAuthGateway{
		currentIdentityFn: func(context.Context) (*domain.Identity, error) {
			return seekerIdentity(), nil
		},
	}
	store := NewStore(auth, creds)

	snap, err := store.Resolve(ctx)

	require.NoError(t, err)
	assert.False(t, snap.Resolving)
	require.NotNil(t, snap.Identity)
	assert.Equal(t, "u1", snap.Identity.ID)
	assert.Equal(t, "tok-1", store.Token())
	assert.True(t, store.IsJobSeeker())
	assert.False(t, store.IsJobProvider())
}

func TestResolve_IsIdempotent(t *testing.T) {
	ctx := context.Background()
	creds := credstore.NewMemoryStore()
	require.NoError(t, creds.Save(ctx, domain.Credentials{Token: "tok-1"}))

	auth := &mockAuthGateway{
		currentIdentityFn: func(context.Context) (*domain.Identity, error) {
			return seekerIdentity(), nil
		},
	}
	store := NewStore(auth, creds)

	first, err := store.Resolve(ctx)
	require.NoError(t, err)
	second, err := store.Resolve(ctx)
	require.NoError(t, err)

	assert.Equal(t, first.Identity, second.Identity)
	assert.Equal(t, 1, auth.identityCalls(), "second resolve must not re-fetch the identity")
}

func TestResolve_ExpiredTokenClearsCredentials(t *testing.T) {
	ctx := context.Background()
	creds := credstore.NewMemoryStore()
	require.NoError(t, creds.Save(ctx, domain.Credentials{Token: "stale"}))

	store := NewStore(&mockAuthGateway{}, creds) // CurrentIdentity fails with auth error

	snap, err := store.Resolve(ctx)

	require.NoError(t, err)
	assert.Nil(t, snap.Identity)
	assert.False(t, snap.Resolving)
	assert.Empty(t, store.Token())

	stored, err := creds.Load(ctx)
	require.NoError(t, err)
	assert.Nil(t, stored, "stale token must be discarded")
}

func TestResolve_NetworkFailureStaysUnresolved(t *testing.T) {
	ctx := context.Background()
	creds := credstore.NewMemoryStore()
	require.NoError(t, creds.Save(ctx, domain.Credentials{Token: "tok-1"}))

	failing := true
	auth := &mockAuthGateway{
		currentIdentityFn: func(context.Context) (*domain.Identity, error) {
			if failing {
				return nil, errors.NetworkError("backend unreachable", nil)
			}
			return seekerIdentity(), nil
		},
	}
	store := NewStore(auth, creds)

	snap, err := store.Resolve(ctx)
	assert.True(t, errors.IsNetwork(err))
	assert.Nil(t, snap.Identity)
	assert.False(t, snap.Resolving, "resolving flag must clear even on failure")

	// A later resolve retries and succeeds.
	failing = false
	snap, err = store.Resolve(ctx)
	require.NoError(t, err)
	require.NotNil(t, snap.Identity)
}

func TestResolve_ConcurrentCallsCollapse(t *testing.T) {
	ctx := context.Background()
	creds := credstore.NewMemoryStore()
	require.NoError(t, creds.Save(ctx, domain.Credentials{Token: "tok-1"}))

	gate := make(chan struct{})
	auth := &mockAuthGateway{
		currentIdentityFn: func(context.Context) (*domain.Identity, error) {
			<-gate
			return seekerIdentity(), nil
		},
	}
	store := NewStore(auth, creds)

	var wg sync.WaitGroup
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = store.Resolve(ctx)
		}()
	}
	close(gate)
	wg.Wait()

	assert.Equal(t, 1, auth.identityCalls(), "concurrent resolves must share one identity fetch")
	assert.True(t, store.IsJobSeeker())
}

// --- Login / Register ---

func TestLogin_Success(t *testing.T) {
	ctx := context.Background()
	creds := credstore.NewMemoryStore()
	auth := &mockAuthGateway{
		signInFn: func(_ context.Context, email, password string) (*domain.AuthResult, error) {
			assert.Equal(t, "jane@example.com", email)
			assert.Equal(t, "secret", password)
			return &domain.AuthResult{Token: "tok-9", Identity: *seekerIdentity()}, nil
		},
	}
	store := NewStore(auth, creds)

	identity, err := store.Login(ctx, "jane@example.com", "secret")

	require.NoError(t, err)
	assert.Equal(t, "u1", identity.ID)
	assert.Equal(t, "tok-9", store.Token())

	stored, err := creds.Load(ctx)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, "tok-9", stored.Token)
	require.NotNil(t, stored.Identity)
	assert.Equal(t, domain.RoleJobSeeker, stored.Identity.Role)

	// A resolved login makes resolve a no-op.
	snap, err := store.Resolve(ctx)
	require.NoError(t, err)
	require.NotNil(t, snap.Identity)
	assert.Zero(t, auth.identityCalls())
}

func TestLogin_FailureLeavesSessionUnchanged(t *testing.T) {
	store := NewStore(&mockAuthGateway{}, credstore.NewMemoryStore())

	_, err := store.Login(context.Background(), "jane@example.com", "wrong")

	assert.True(t, errors.IsAuthentication(err))
	snap := store.Snapshot()
	assert.Nil(t, snap.Identity)
	assert.False(t, snap.Resolving)
	assert.Empty(t, store.Token())
}

func TestRegister_CarriesRole(t *testing.T) {
	var gotRole domain.Role
	auth := &mockAuthGateway{
		signUpFn: func(_ context.Context, req domain.SignUpRequest) (*domain.AuthResult, error) {
			gotRole = req.Role
			identity := *seekerIdentity()
			identity.Role = req.Role
			return &domain.AuthResult{Token: "tok-2", Identity: identity}, nil
		},
	}
	store := NewStore(auth, credstore.NewMemoryStore())

	identity, err := store.Register(context.Background(), domain.SignUpRequest{
		Email:     "p@example.com",
		Password:  "secret",
		FirstName: "Pat",
		LastName:  "Lee",
		Role:      domain.RoleJobProvider,
	})

	require.NoError(t, err)
	assert.Equal(t, domain.RoleJobProvider, gotRole)
	assert.Equal(t, domain.RoleJobProvider, identity.Role)
	assert.True(t, store.IsJobProvider())
}

func TestRegister_RejectsUnknownRole(t *testing.T) {
	auth := &mockAuthGateway{}
	store := NewStore(auth, credstore.NewMemoryStore())

	_, err := store.Register(context.Background(), domain.SignUpRequest{Role: "ADMIN"})

	assert.True(t, errors.IsValidation(err))
	assert.Zero(t, auth.signUpCalls)
}

// --- Logout / Invalidate ---

func TestLogout_ClearsEverything(t *testing.T) {
	ctx := context.Background()
	creds := credstore.NewMemoryStore()
	auth := &mockAuthGateway{
		signInFn: func(context.Context, string, string) (*domain.AuthResult, error) {
			return &domain.AuthResult{Token: "tok", Identity: *seekerIdentity()}, nil
		},
		currentIdentityFn: func(context.Context) (*domain.Identity, error) {
			return seekerIdentity(), nil
		},
	}
	store := NewStore(auth, creds)

	_, err := store.Login(ctx, "jane@example.com", "secret")
	require.NoError(t, err)

	store.Logout(ctx)

	snap := store.Snapshot()
	assert.Nil(t, snap.Identity)
	assert.Empty(t, store.Token())
	assert.False(t, store.IsJobSeeker())

	stored, err := creds.Load(ctx)
	require.NoError(t, err)
	assert.Nil(t, stored)

	// Logout resets the resolution latch: the next resolve runs again and,
	// with no stored token, ends signed out without a network call.
	snap, err = store.Resolve(ctx)
	require.NoError(t, err)
	assert.Nil(t, snap.Identity)
	assert.Zero(t, auth.identityCalls())
}

func TestInvalidate_ClearsSession(t *testing.T) {
	ctx := context.Background()
	creds := credstore.NewMemoryStore()
	auth := &mockAuthGateway{
		signInFn: func(context.Context, string, string) (*domain.AuthResult, error) {
			return &domain.AuthResult{Token: "tok", Identity: *seekerIdentity()}, nil
		},
	}
	store := NewStore(auth, creds)

	_, err := store.Login(ctx, "jane@example.com", "secret")
	require.NoError(t, err)

	store.Invalidate()

	assert.Nil(t, store.Snapshot().Identity)
	assert.Empty(t, store.Token())
	stored, err := creds.Load(ctx)
	require.NoError(t, err)
	assert.Nil(t, stored)
}

func TestLateResolveCannotResurrectSession(t *testing.T) {
	ctx := context.Background()
	creds := credstore.NewMemoryStore()
	require.NoError(t, creds.Save(ctx, domain.Credentials{Token: "tok-1"}))

	fetchStarted := make(chan struct{})
	release := make(chan struct{})
	auth := &mockAuthGateway{
		currentIdentityFn: func(context.Context) (*domain.Identity, error) {
			close(fetchStarted)
			<-release
			return seekerIdentity(), nil
		},
	}
	store := NewStore(auth, creds)

	done := make(chan struct{})
	go func() {
		defer close(done)
		_, _ = store.Resolve(ctx)
	}()

	<-fetchStarted
	store.Logout(ctx) // user signs out while the identity fetch is in flight
	close(release)
	<-done

	snap := store.Snapshot()
	assert.Nil(t, snap.Identity, "late identity response must not resurrect the session")
	assert.Empty(t, store.Token())
}

func TestLateLoginCannotResurrectSession(t *testing.T) {
	ctx := context.Background()
	signInStarted := make(chan struct{})
	release := make(chan struct{})
	auth := &mockAuthGateway{
		signInFn: func(context.Context, string, string) (*domain.AuthResult, error) {
			close(signInStarted)
			<-release
			return &domain.AuthResult{Token: "tok", Identity: *seekerIdentity()}, nil
		},
	}
	store := NewStore(auth, credstore.NewMemoryStore())

	errCh := make(chan error, 1)
	go func() {
		_, err := store.Login(ctx, "jane@example.com", "secret")
		errCh <- err
	}()

	<-signInStarted
	store.Logout(ctx)
	close(release)

	err := <-errCh
	assert.True(t, errors.IsAuthentication(err))
	assert.Nil(t, store.Snapshot().Identity)
}

func TestPredicates_FalseWhenSignedOut(t *testing.T) {
	store := NewStore(&mockAuthGateway{}, credstore.NewMemoryStore())

	assert.False(t, store.IsJobSeeker())
	assert.False(t, store.IsJobProvider())
}
