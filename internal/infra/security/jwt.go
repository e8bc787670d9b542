package security

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	domuser "example.com/brewery-admin/internal/domain/user"
	authuc "example.com/brewery-admin/internal/usecase/auth"
)

var ErrInvalidSession = errors.New("invalid session token")

// JWTService signs the dashboard session cookie.
type JWTService struct {
	secret     []byte
	expiration time.Duration
	now        func() time.Time
}

func NewJWTService(secret string, expiration time.Duration) *JWTService {
	return &JWTService{
		secret:     []byte(secret),
		expiration: expiration,
		now:        time.Now,
	}
}

type jwtClaims struct {
	UserID   int64    `json:"uid"`
	Username string   `json:"usr"`
	Name     string   `json:"name"`
	Roles    []string `json:"roles"`
	jwt.RegisteredClaims
}

func (s *JWTService) Expiration() time.Duration { return s.expiration }

func (s *JWTService) GenerateToken(c authuc.Claims) (string, error) {
	if c.SessionID == "" {
		return "", ErrInvalidSession
	}
	roles := make([]string, 0, len(c.Roles))
	for _, r := range c.Roles {
		roles = append(roles, string(r))
	}

	now := s.now()
	claims := jwtClaims{
		UserID:   c.UserID,
		Username: c.Username,
		Name:     c.Name,
		Roles:    roles,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        c.SessionID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.expiration)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

func (s *JWTService) ParseToken(token string) (*authuc.Claims, error) {
	parsed, err := jwt.ParseWithClaims(token, &jwtClaims{}, func(t *jwt.Token) (interface{}, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return nil, errors.Join(ErrInvalidSession, err)
	}

	claims, ok := parsed.Claims.(*jwtClaims)
	if !ok || !parsed.Valid || claims.ID == "" {
		return nil, ErrInvalidSession
	}

	roles, err := domuser.ParseRoleCodes(claims.Roles)
	if err != nil {
		return nil, errors.Join(ErrInvalidSession, err)
	}

	return &authuc.Claims{
		SessionID: claims.ID,
		UserID:    claims.UserID,
		Username:  claims.Username,
		Name:      claims.Name,
		Roles:     roles,
	}, nil
}
