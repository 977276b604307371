package ports

import (
	"context"

	"github.com/ManuelTrajcev/SQAT-Project/internal/core/domain"
)

// WorkspaceRepository defines the persistence interface for workspaces.
type WorkspaceRepository interface {
	FindAll(ctx context.Context) ([]domain.Workspace, error)
	FindByID(ctx context.Context, id string) (*domain.Workspace, error)
	Create(ctx context.Context, ws *domain.Workspace) (*domain.Workspace, error)
	Update(ctx context.Context, ws *domain.Workspace) (*domain.Workspace, error)
}

// AssignmentRepository defines the persistence interface for the
// user-workspace role edges. Create upserts: a second grant for the same
// (user, workspace) pair replaces the stored role.
type AssignmentRepository interface {
	FindForUser(ctx context.Context, userID string) ([]domain.RoleAssignment, error)
	Find(ctx context.Context, workspaceID, userID string) (*domain.RoleAssignment, error)
	Upsert(ctx context.Context, assignment *domain.RoleAssignment) error
	Delete(ctx context.Context, workspaceID, userID string) error
	DeleteForUser(ctx context.Context, userID string) error
}
