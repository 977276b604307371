package service

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/rs/zerolog"

	"github.com/ManuelTrajcev/SQAT-Project/internal/core/domain"
	"github.com/ManuelTrajcev/SQAT-Project/internal/core/ports"
)

// WorkspaceService implements workspace CRUD and membership management on
// top of the token claims carried by each request.
type WorkspaceService struct {
	workspaces  ports.WorkspaceRepository
	assignments ports.AssignmentRepository
	users       ports.UserRepository
	logger      zerolog.Logger
}

func NewWorkspaceService(workspaces ports.WorkspaceRepository, assignments ports.AssignmentRepository, users ports.UserRepository, logger zerolog.Logger) *WorkspaceService {
	return &WorkspaceService{
		workspaces:  workspaces,
		assignments: assignments,
		users:       users,
		logger:      logger,
	}
}

// FindAll lists every workspace. The listing carries no per-workspace data
// beyond name and description, so it requires no authentication.
func (s *WorkspaceService) FindAll(ctx context.Context) ([]domain.Workspace, error) {
	return s.workspaces.FindAll(ctx)
}

// MyWorkspaces resolves the caller's claim set to full workspace records.
// Workspaces deleted since the token was issued are silently skipped.
func (s *WorkspaceService) MyWorkspaces(ctx context.Context, claims *domain.Claims) ([]ports.WorkspaceWithRole, error) {
	if claims == nil {
		return nil, domain.ErrUnauthenticated
	}

	ids := make([]string, 0, len(claims.Workspaces))
	for id := range claims.Workspaces {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	result := make([]ports.WorkspaceWithRole, 0, len(ids))
	for _, id := range ids {
		ws, err := s.workspaces.FindByID(ctx, id)
		if err != nil {
			if errors.Is(err, domain.ErrWorkspaceNotFound) {
				continue
			}
			return nil, err
		}
		result = append(result, ports.WorkspaceWithRole{Workspace: *ws, Role: claims.Workspaces[id]})
	}
	return result, nil
}

// Open returns a workspace the caller holds any role on. Callers without a
// claim get ErrUnauthorized regardless of whether the workspace exists;
// once authorized, a missing document is reported as not found.
func (s *WorkspaceService) Open(ctx context.Context, claims *domain.Claims, workspaceID string) (*domain.Workspace, domain.Role, error) {
	role, err := domain.Authorize(claims, workspaceID, domain.RoleVisitor)
	if err != nil {
		return nil, "", err
	}

	ws, err := s.workspaces.FindByID(ctx, workspaceID)
	if err != nil {
		return nil, "", err
	}
	return ws, role, nil
}

// Create stores a new workspace and grants the creator ADMIN on it.
func (s *WorkspaceService) Create(ctx context.Context, claims *domain.Claims, input ports.EditWorkspaceInput) (*domain.Workspace, error) {
	if claims == nil {
		return nil, domain.ErrUnauthenticated
	}
	if input.Name == "" {
		return nil, domain.ErrInvalidArguments
	}

	now := time.Now().UTC()
	ws, err := s.workspaces.Create(ctx, &domain.Workspace{
		Name:        input.Name,
		Description: input.Description,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	if err != nil {
		return nil, err
	}

	err = s.assignments.Upsert(ctx, &domain.RoleAssignment{
		UserID:      claims.UserID,
		WorkspaceID: ws.ID,
		Role:        domain.RoleAdmin,
		CreatedAt:   now,
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("workspace_id", ws.ID).Str("owner", claims.Username).Msg("workspace created")
	return ws, nil
}

// Edit updates name and description. ADMIN only.
func (s *WorkspaceService) Edit(ctx context.Context, claims *domain.Claims, workspaceID string, input ports.EditWorkspaceInput) (*domain.Workspace, error) {
	if _, err := domain.Authorize(claims, workspaceID, domain.RoleAdmin); err != nil {
		return nil, err
	}
	if input.Name == "" {
		return nil, domain.ErrInvalidArguments
	}

	ws, err := s.workspaces.FindByID(ctx, workspaceID)
	if err != nil {
		return nil, err
	}

	ws.Name = input.Name
	ws.Description = input.Description
	ws.UpdatedAt = time.Now().UTC()

	updated, err := s.workspaces.Update(ctx, ws)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("workspace_id", workspaceID).Str("editor", claims.Username).Msg("workspace edited")
	return updated, nil
}

// GrantRole gives username the given role on the workspace, replacing any
// existing assignment for that pair. ADMIN only. The grant is not visible
// to tokens issued before it; the grantee sees it on next login.
func (s *WorkspaceService) GrantRole(ctx context.Context, claims *domain.Claims, workspaceID, username string, role domain.Role) error {
	if _, err := domain.Authorize(claims, workspaceID, domain.RoleAdmin); err != nil {
		return err
	}
	if !role.IsValid() {
		return domain.ErrInvalidArguments
	}

	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		return err
	}

	err = s.assignments.Upsert(ctx, &domain.RoleAssignment{
		UserID:      user.ID,
		WorkspaceID: workspaceID,
		Role:        role,
		CreatedAt:   time.Now().UTC(),
	})
	if err != nil {
		return err
	}

	s.logger.Info().
		Str("workspace_id", workspaceID).
		Str("username", username).
		Str("role", string(role)).
		Str("granted_by", claims.Username).
		Msg("role granted")
	return nil
}

// RevokeRole removes username's assignment on the workspace. ADMIN only.
func (s *WorkspaceService) RevokeRole(ctx context.Context, claims *domain.Claims, workspaceID, username string) error {
	if _, err := domain.Authorize(claims, workspaceID, domain.RoleAdmin); err != nil {
		return err
	}

	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		return err
	}

	if err := s.assignments.Delete(ctx, workspaceID, user.ID); err != nil {
		return err
	}

	s.logger.Info().
		Str("workspace_id", workspaceID).
		Str("username", username).
		Str("revoked_by", claims.Username).
		Msg("role revoked")
	return nil
}
