package backend

import (
	"context"
	"net/http"

	domuser "example.com/brewery-admin/internal/domain/user"
)

const (
	loginPath  = "/api/auth/login"
	logoutPath = "/api/auth/logout"
)

type loginBody struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type AuthService struct {
	client *Client
}

func NewAuthService(c *Client) *AuthService {
	return &AuthService{client: c}
}

// Login verifies credentials against the backend and returns the user with
// the backend session cookies later calls must carry. A rejection surfaces
// as an *APIError with the backend status.
func (a *AuthService) Login(ctx context.Context, username, password string) (*domuser.User, []*http.Cookie, error) {
	var u domuser.User
	cookies, err := a.client.PostForCookies(ctx, loginPath, loginBody{Username: username, Password: password}, &u)
	if err != nil {
		return nil, nil, err
	}
	if u.Username == "" {
		u.Username = username
	}
	return &u, cookies, nil
}

func (a *AuthService) Logout(ctx context.Context, cookies []*http.Cookie) error {
	_, err := Post[struct{}](WithCredentials(ctx, cookies), a.client, logoutPath, nil)
	return err
}
