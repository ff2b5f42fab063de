package domain

import "context"

// Credentials is the durable client-side state: the bearer token plus a
// cached identity snapshot, stored under fixed names. Cleared entirely on
// logout and on an authentication-invalid response.
type Credentials struct {
	Token    string    `json:"token"`
	Identity *Identity `json:"identity,omitempty"`
}

// CredentialStore persists credentials between client sessions.
type CredentialStore interface {
	// Load returns the stored credentials, or (nil, nil) when none exist.
	Load(ctx context.Context) (*Credentials, error)
	Save(ctx context.Context, creds Credentials) error
	Clear(ctx context.Context) error
}
