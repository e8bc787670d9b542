package auth

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	domuser "example.com/brewery-admin/internal/domain/user"
	"example.com/brewery-admin/internal/infra/session"
)

type mockAuthenticator struct {
	user      *domuser.User
	cookies   []*http.Cookie
	loginErr  error
	loggedOut [][]*http.Cookie
}

func (m *mockAuthenticator) Login(ctx context.Context, username, password string) (*domuser.User, []*http.Cookie, error) {
	if m.loginErr != nil {
		return nil, nil, m.loginErr
	}
	u := *m.user
	u.Username = username
	return &u, m.cookies, nil
}

func (m *mockAuthenticator) Logout(ctx context.Context, cookies []*http.Cookie) error {
	m.loggedOut = append(m.loggedOut, cookies)
	return errors.New("backend already closed the session")
}

type mockTokenService struct {
	issued   map[string]Claims
	parseErr error
}

func newMockTokenService() *mockTokenService {
	return &mockTokenService{issued: make(map[string]Claims)}
}

func (m *mockTokenService) GenerateToken(c Claims) (string, error) {
	token := "token-" + c.SessionID
	m.issued[token] = c
	return token, nil
}

func (m *mockTokenService) ParseToken(token string) (*Claims, error) {
	if m.parseErr != nil {
		return nil, m.parseErr
	}
	c, ok := m.issued[token]
	if !ok {
		return nil, errors.New("unknown token")
	}
	return &c, nil
}

func newTestService(backend *mockAuthenticator) (*Service, *session.MemoryStore) {
	store := session.NewMemoryStore(time.Hour)
	svc := NewService(backend, newMockTokenService(), store)
	svc.newID = func() string { return "sid-1" }
	return svc, store
}

func TestLogin_Success_StoresCredentials(t *testing.T) {
	backend := &mockAuthenticator{
		user:    &domuser.User{ID: 3, Name: "Ana", Roles: []domuser.RoleCode{domuser.RoleAdmin}},
		cookies: []*http.Cookie{{Name: "JSESSIONID", Value: "b1"}},
	}
	svc, _ := newTestService(backend)

	res, err := svc.Login(context.Background(), LoginInput{Username: "  ana ", Password: "pw"})
	require.NoError(t, err)
	require.Equal(t, "token-sid-1", res.Token)
	require.Equal(t, "ana", res.Claims.Username)
	require.Equal(t, []domuser.RoleCode{domuser.RoleAdmin}, res.Claims.Roles)

	claims, cookies, err := svc.Authenticate(context.Background(), res.Token)
	require.NoError(t, err)
	require.Equal(t, "sid-1", claims.SessionID)
	require.Len(t, cookies, 1)
	require.Equal(t, "b1", cookies[0].Value)
}

func TestLogin_EmptyCredential(t *testing.T) {
	svc, _ := newTestService(&mockAuthenticator{})

	_, err := svc.Login(context.Background(), LoginInput{Username: " ", Password: "pw"})
	require.ErrorIs(t, err, domuser.ErrInvalidCredential)

	_, err = svc.Login(context.Background(), LoginInput{Username: "ana"})
	require.ErrorIs(t, err, domuser.ErrInvalidCredential)
}

func TestLogin_BackendRejects(t *testing.T) {
	rejected := errors.New("401 bad credentials")
	svc, _ := newTestService(&mockAuthenticator{loginErr: rejected})

	_, err := svc.Login(context.Background(), LoginInput{Username: "ana", Password: "bad"})
	require.ErrorIs(t, err, rejected)
}

func TestAuthenticate_MissingCredentialsIsUnauthorized(t *testing.T) {
	backend := &mockAuthenticator{user: &domuser.User{ID: 1}}
	svc, store := newTestService(backend)

	res, err := svc.Login(context.Background(), LoginInput{Username: "ana", Password: "pw"})
	require.NoError(t, err)
	require.NoError(t, store.Clear(context.Background(), res.Claims.SessionID))

	_, _, err = svc.Authenticate(context.Background(), res.Token)
	require.ErrorIs(t, err, domuser.ErrUnauthorized)
}

func TestAuthenticate_BadToken(t *testing.T) {
	svc, _ := newTestService(&mockAuthenticator{})

	_, _, err := svc.Authenticate(context.Background(), "")
	require.ErrorIs(t, err, domuser.ErrUnauthorized)

	_, _, err = svc.Authenticate(context.Background(), "forged")
	require.ErrorIs(t, err, domuser.ErrUnauthorized)
}

func TestLogout_ClearsSessionEvenWhenBackendFails(t *testing.T) {
	backend := &mockAuthenticator{
		user:    &domuser.User{ID: 1},
		cookies: []*http.Cookie{{Name: "JSESSIONID", Value: "b1"}},
	}
	svc, _ := newTestService(backend)

	res, err := svc.Login(context.Background(), LoginInput{Username: "ana", Password: "pw"})
	require.NoError(t, err)

	require.NoError(t, svc.Logout(context.Background(), res.Claims.SessionID))
	require.Len(t, backend.loggedOut, 1)

	_, _, err = svc.Authenticate(context.Background(), res.Token)
	require.ErrorIs(t, err, domuser.ErrUnauthorized)
}
