package domain

import "time"

// Workspace is a shared tenant that users hold roles on.
type Workspace struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// RoleAssignment is the edge granting one user one role on one workspace.
// At most one assignment exists per (UserID, WorkspaceID) pair; granting
// again replaces the role.
type RoleAssignment struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	WorkspaceID string    `json:"workspace_id"`
	Role        Role      `json:"role"`
	CreatedAt   time.Time `json:"created_at"`
}
