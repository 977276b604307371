package service

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/ManuelTrajcev/SQAT-Project/internal/core/domain"
)

// accessClaims is the JWT payload: identity plus the workspace→role snapshot
// taken at login time.
type accessClaims struct {
	UserID     string            `json:"uid"`
	Username   string            `json:"username"`
	Workspaces map[string]string `json:"workspaces"`
	jwt.RegisteredClaims
}

// TokenManager signs and verifies access tokens with a process-wide HS256
// key fixed at startup.
type TokenManager struct {
	secret []byte
	ttl    time.Duration
}

func NewTokenManager(secret string, ttl time.Duration) *TokenManager {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &TokenManager{secret: []byte(secret), ttl: ttl}
}

// Issue builds a signed token embedding the user's current role assignments.
// The snapshot is immutable; grants made afterwards require a re-login.
func (m *TokenManager) Issue(user *domain.User, assignments []domain.RoleAssignment) (string, error) {
	workspaces := make(map[string]string, len(assignments))
	for _, a := range assignments {
		workspaces[a.WorkspaceID] = string(a.Role)
	}

	now := time.Now().UTC()
	claims := accessClaims{
		UserID:     user.ID,
		Username:   user.Username,
		Workspaces: workspaces,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(m.secret)
}

// Verify parses and validates a token string. Any malformed, expired or
// badly signed token yields domain.ErrUnauthenticated; the concrete cause
// is never surfaced to the caller.
func (m *TokenManager) Verify(tokenString string) (*domain.Claims, error) {
	if tokenString == "" {
		return nil, domain.ErrUnauthenticated
	}

	parsed := &accessClaims{}
	tkn, err := jwt.ParseWithClaims(tokenString, parsed, func(token *jwt.Token) (interface{}, error) {
		if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return m.secret, nil
	})
	if err != nil || !tkn.Valid {
		return nil, domain.ErrUnauthenticated
	}

	workspaces := make(map[string]domain.Role, len(parsed.Workspaces))
	for id, raw := range parsed.Workspaces {
		role, err := domain.ParseRole(raw)
		if err != nil {
			return nil, domain.ErrUnauthenticated
		}
		workspaces[id] = role
	}

	claims := &domain.Claims{
		UserID:     parsed.UserID,
		Username:   parsed.Username,
		Workspaces: workspaces,
	}
	if parsed.IssuedAt != nil {
		claims.IssuedAt = parsed.IssuedAt.Time
	}
	if parsed.ExpiresAt == nil {
		return nil, domain.ErrUnauthenticated
	}
	claims.ExpiresAt = parsed.ExpiresAt.Time

	return claims, nil
}
