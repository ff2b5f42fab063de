package domain

// Role is the closed set of actor roles. The backend owns role assignment;
// a role is fixed at registration and immutable for a session's lifetime.
type Role string

const (
	RoleJobSeeker   Role = "JOB_SEEKER"
	RoleJobProvider Role = "JOB_PROVIDER"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	return r == RoleJobSeeker || r == RoleJobProvider
}

// Identity is the authenticated actor using the client.
type Identity struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Role      Role   `json:"role"`
}

// Session is a point-in-time snapshot of the session store.
// Resolving == false implies Identity is terminal: present or absent.
type Session struct {
	Identity  *Identity
	Resolving bool
}

// Authenticated reports whether an identity has been resolved.
func (s Session) Authenticated() bool {
	return s.Identity != nil
}
