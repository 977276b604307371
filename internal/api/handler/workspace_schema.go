package handler

import (
	"time"

	"github.com/ManuelTrajcev/SQAT-Project/internal/core/domain"
)

type editWorkspaceRequest struct {
	Name        string `json:"name"        validate:"required"`
	Description string `json:"description"`
}

type grantRoleRequest struct {
	Username string `json:"username" validate:"required"`
	Role     string `json:"role"     validate:"required,oneof=ROLE_ADMIN ROLE_VISITOR"`
}

// Response-only types owned by the transport layer. These are intentionally
// separate from domain types so the JSON contract is not coupled to internal
// changes.

type workspaceResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type workspaceWithRoleResponse struct {
	workspaceResponse
	Role string `json:"role"`
}

type openWorkspaceResponse struct {
	workspaceResponse
	Role                string `json:"role"`
	HasPermissionToEdit bool   `json:"has_permission_to_edit"`
}

func toWorkspaceResponse(ws *domain.Workspace) workspaceResponse {
	return workspaceResponse{
		ID:          ws.ID,
		Name:        ws.Name,
		Description: ws.Description,
		CreatedAt:   ws.CreatedAt,
		UpdatedAt:   ws.UpdatedAt,
	}
}
