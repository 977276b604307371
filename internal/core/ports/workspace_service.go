package ports

import (
	"context"

	"github.com/ManuelTrajcev/SQAT-Project/internal/core/domain"
)

// WorkspaceWithRole pairs a workspace with the role the caller holds on it.
type WorkspaceWithRole struct {
	Workspace domain.Workspace `json:"workspace"`
	Role      domain.Role      `json:"role"`
}

// EditWorkspaceInput carries the mutable workspace fields.
type EditWorkspaceInput struct {
	Name        string
	Description string
}

// WorkspaceService covers workspace CRUD and membership management. Every
// operation that takes claims performs its own access decision.
type WorkspaceService interface {
	FindAll(ctx context.Context) ([]domain.Workspace, error)
	MyWorkspaces(ctx context.Context, claims *domain.Claims) ([]WorkspaceWithRole, error)
	Open(ctx context.Context, claims *domain.Claims, workspaceID string) (*domain.Workspace, domain.Role, error)
	Create(ctx context.Context, claims *domain.Claims, input EditWorkspaceInput) (*domain.Workspace, error)
	Edit(ctx context.Context, claims *domain.Claims, workspaceID string, input EditWorkspaceInput) (*domain.Workspace, error)
	GrantRole(ctx context.Context, claims *domain.Claims, workspaceID, username string, role domain.Role) error
	RevokeRole(ctx context.Context, claims *domain.Claims, workspaceID, username string) error
}
