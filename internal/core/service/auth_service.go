package service

import (
	"context"
	"errors"
	"net/mail"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/ManuelTrajcev/SQAT-Project/internal/core/domain"
	"github.com/ManuelTrajcev/SQAT-Project/internal/core/ports"
)

// dummyHash is compared against when the username is unknown so that the
// unknown-user and wrong-password paths take comparable time.
var dummyHash, _ = bcrypt.GenerateFromPassword([]byte("password-placeholder"), bcrypt.DefaultCost)

// AuthService implements registration, login and account deletion.
type AuthService struct {
	users       ports.UserRepository
	assignments ports.AssignmentRepository
	tokens      *TokenManager
	throttle    ports.LoginThrottle
	logger      zerolog.Logger
}

func NewAuthService(users ports.UserRepository, assignments ports.AssignmentRepository, tokens *TokenManager, throttle ports.LoginThrottle, logger zerolog.Logger) *AuthService {
	return &AuthService{
		users:       users,
		assignments: assignments,
		tokens:      tokens,
		throttle:    throttle,
		logger:      logger,
	}
}

// Register creates a new account with no workspace access. The password
// mismatch check runs before any store access so a mismatch can never leave
// partial state behind.
func (s *AuthService) Register(ctx context.Context, username, email, password, repeatPassword string) (*domain.User, error) {
	if password != repeatPassword {
		return nil, domain.ErrPasswordMismatch
	}
	if username == "" || password == "" {
		return nil, domain.ErrInvalidArguments
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, domain.ErrInvalidArguments
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user := &domain.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.users.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("username", created.Username).Msg("user registered")
	return created, nil
}

// Login verifies the credentials and returns a signed token embedding the
// user's workspace roles at this moment. Unknown username and wrong password
// produce the identical ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, *domain.User, error) {
	if username == "" || password == "" {
		return "", nil, domain.ErrInvalidCredentials
	}

	if s.throttle != nil {
		allowed, err := s.throttle.Allow(ctx, username)
		if err != nil {
			s.logger.Warn().Err(err).Msg("login throttle unavailable")
		} else if !allowed {
			return "", nil, domain.ErrTooManyAttempts
		}
	}

	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
			s.recordFailure(ctx, username)
			return "", nil, domain.ErrInvalidCredentials
		}
		return "", nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		s.recordFailure(ctx, username)
		return "", nil, domain.ErrInvalidCredentials
	}

	assignments, err := s.assignments.FindForUser(ctx, user.ID)
	if err != nil {
		return "", nil, err
	}

	token, err := s.tokens.Issue(user, assignments)
	if err != nil {
		return "", nil, err
	}

	if s.throttle != nil {
		if err := s.throttle.Reset(ctx, username); err != nil {
			s.logger.Warn().Err(err).Msg("login throttle reset failed")
		}
	}

	s.logger.Info().Str("username", user.Username).Int("workspaces", len(assignments)).Msg("user logged in")
	return token, user, nil
}

// DeleteUser removes the account and all of its role assignments.
func (s *AuthService) DeleteUser(ctx context.Context, username string) error {
	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		return err
	}
	if err := s.assignments.DeleteForUser(ctx, user.ID); err != nil {
		return err
	}
	if err := s.users.DeleteByUsername(ctx, username); err != nil {
		return err
	}
	s.logger.Info().Str("username", username).Msg("user deleted")
	return nil
}

func (s *AuthService) recordFailure(ctx context.Context, username string) {
	if s.throttle == nil {
		return
	}
	if err := s.throttle.RecordFailure(ctx, username); err != nil {
		s.logger.Warn().Err(err).Msg("login throttle record failed")
	}
}
