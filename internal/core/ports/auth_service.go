package ports

import (
	"context"

	"github.com/ManuelTrajcev/SQAT-Project/internal/core/domain"
)

// AuthService covers registration, credential verification and token issuance.
type AuthService interface {
	Register(ctx context.Context, username, email, password, repeatPassword string) (*domain.User, error)
	Login(ctx context.Context, username, password string) (string, *domain.User, error)
	DeleteUser(ctx context.Context, username string) error
}

// TokenVerifier turns a bearer token string back into claims, failing with
// domain.ErrUnauthenticated on anything malformed, expired or tampered.
type TokenVerifier interface {
	Verify(tokenString string) (*domain.Claims, error)
}

// LoginThrottle limits repeated failed logins per username.
type LoginThrottle interface {
	Allow(ctx context.Context, username string) (bool, error)
	RecordFailure(ctx context.Context, username string) error
	Reset(ctx context.Context, username string) error
}
