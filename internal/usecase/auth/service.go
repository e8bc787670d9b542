package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/google/uuid"

	domuser "example.com/brewery-admin/internal/domain/user"
	"example.com/brewery-admin/internal/infra/session"
)

// Authenticator is the backend side of sign-in.
type Authenticator interface {
	Login(ctx context.Context, username, password string) (*domuser.User, []*http.Cookie, error)
	Logout(ctx context.Context, cookies []*http.Cookie) error
}

// Claims identify the browser session and the signed-in user.
type Claims struct {
	SessionID string
	UserID    int64
	Username  string
	Name      string
	Roles     []domuser.RoleCode
}

type TokenService interface {
	GenerateToken(c Claims) (string, error)
	ParseToken(token string) (*Claims, error)
}

type Service struct {
	backend  Authenticator
	tokens   TokenService
	sessions session.Store
	newID    func() string
}

func NewService(
	backend Authenticator,
	tokens TokenService,
	sessions session.Store,
) *Service {
	return &Service{
		backend:  backend,
		tokens:   tokens,
		sessions: sessions,
		newID:    uuid.NewString,
	}
}

type LoginInput struct {
	Username string
	Password string
}

type LoginResult struct {
	Token  string
	Claims Claims
}

type storedCookie struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

func (s *Service) Login(ctx context.Context, in LoginInput) (*LoginResult, error) {
	username := strings.TrimSpace(in.Username)
	if username == "" || in.Password == "" {
		return nil, domuser.ErrInvalidCredential
	}

	u, cookies, err := s.backend.Login(ctx, username, in.Password)
	if err != nil {
		return nil, err
	}

	claims := Claims{
		SessionID: s.newID(),
		UserID:    u.ID,
		Username:  u.Username,
		Name:      u.Name,
		Roles:     u.Roles,
	}

	stored := make([]storedCookie, 0, len(cookies))
	for _, ck := range cookies {
		stored = append(stored, storedCookie{Name: ck.Name, Value: ck.Value})
	}
	if err := session.Save(ctx, s.sessions, claims.SessionID, session.KeyBackendCookies, stored); err != nil {
		return nil, fmt.Errorf("store backend credentials: %w", err)
	}

	token, err := s.tokens.GenerateToken(claims)
	if err != nil {
		return nil, err
	}

	return &LoginResult{
		Token:  token,
		Claims: claims,
	}, nil
}

// Authenticate resolves a session cookie into its claims and the backend
// credentials held for it. A session whose credentials are gone is
// unauthorized even when the token is still valid.
func (s *Service) Authenticate(ctx context.Context, token string) (*Claims, []*http.Cookie, error) {
	if strings.TrimSpace(token) == "" {
		return nil, nil, domuser.ErrUnauthorized
	}
	claims, err := s.tokens.ParseToken(token)
	if err != nil {
		return nil, nil, errors.Join(domuser.ErrUnauthorized, err)
	}
	cookies, err := s.Credentials(ctx, claims.SessionID)
	if err != nil {
		return nil, nil, err
	}
	return claims, cookies, nil
}

func (s *Service) Credentials(ctx context.Context, sid string) ([]*http.Cookie, error) {
	stored, ok, err := session.Load[[]storedCookie](ctx, s.sessions, sid, session.KeyBackendCookies)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domuser.ErrUnauthorized
	}
	cookies := make([]*http.Cookie, 0, len(stored))
	for _, sc := range stored {
		cookies = append(cookies, &http.Cookie{Name: sc.Name, Value: sc.Value})
	}
	return cookies, nil
}

// Logout ends the backend session best effort and always forgets the local
// one.
func (s *Service) Logout(ctx context.Context, sid string) error {
	if cookies, err := s.Credentials(ctx, sid); err == nil {
		_ = s.backend.Logout(ctx, cookies)
	}
	return s.Drop(ctx, sid)
}

// Drop forgets everything held for the session.
func (s *Service) Drop(ctx context.Context, sid string) error {
	if sid == "" {
		return nil
	}
	return s.sessions.Clear(ctx, sid)
}
