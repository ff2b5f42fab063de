package rest

import (
	"context"
	"net/http"

	"github.com/pakkurthi/jobquest-client/internal/domain"
)

// AuthAPI implements domain.AuthGateway over the /api/auth routes.
type AuthAPI struct {
	c *Client
}

// NewAuthAPI creates the auth gateway.
func NewAuthAPI(c *Client) *AuthAPI {
	return &AuthAPI{c: c}
}

type signInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// authResponse is the backend's flat signin/signup payload: the token plus
// the identity fields at the top level.
type authResponse struct {
	Token     string      `json:"token"`
	ID        string      `json:"id"`
	Email     string      `json:"email"`
	FirstName string      `json:"firstName"`
	LastName  string      `json:"lastName"`
	Role      domain.Role `json:"role"`
}

func (r authResponse) toResult() *domain.AuthResult {
	return &domain.AuthResult{
		Token: r.Token,
		Identity: domain.Identity{
			ID:        r.ID,
			Email:     r.Email,
			FirstName: r.FirstName,
			LastName:  r.LastName,
			Role:      r.Role,
		},
	}
}

func (a *AuthAPI) SignIn(ctx context.Context, email, password string) (*domain.AuthResult, error) {
	var resp authResponse
	err := a.c.send(ctx, http.MethodPost, "/api/auth/signin", "auth_signin", signInRequest{Email: email, Password: password}, &resp)
	if err != nil {
		return nil, err
	}
	return resp.toResult(), nil
}

func (a *AuthAPI) SignUp(ctx context.Context, req domain.SignUpRequest) (*domain.AuthResult, error) {
	var resp authResponse
	err := a.c.send(ctx, http.MethodPost, "/api/auth/signup", "auth_signup", req, &resp)
	if err != nil {
		return nil, err
	}
	return resp.toResult(), nil
}

func (a *AuthAPI) CurrentIdentity(ctx context.Context) (*domain.Identity, error) {
	var identity domain.Identity
	if err := a.c.get(ctx, "/api/auth/me", "auth_me", &identity); err != nil {
		return nil, err
	}
	return &identity, nil
}
