package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ManuelTrajcev/SQAT-Project/internal/api/middleware"
	"github.com/ManuelTrajcev/SQAT-Project/internal/core/domain"
	"github.com/ManuelTrajcev/SQAT-Project/internal/core/ports"
)

// WorkspaceHandler handles HTTP requests for workspace operations.
type WorkspaceHandler struct {
	service ports.WorkspaceService
}

func NewWorkspaceHandler(service ports.WorkspaceService) *WorkspaceHandler {
	return &WorkspaceHandler{service: service}
}

// List handles GET /api/workspace.
//
// @Summary      List all workspaces
// @Tags         workspace
// @Produce      json
// @Success      200  {array}  workspaceResponse
// @Router       /api/workspace [get]
func (h *WorkspaceHandler) List(c echo.Context) error {
	workspaces, err := h.service.FindAll(c.Request().Context())
	if err != nil {
		return err
	}

	resp := make([]workspaceResponse, 0, len(workspaces))
	for i := range workspaces {
		resp = append(resp, toWorkspaceResponse(&workspaces[i]))
	}
	return c.JSON(http.StatusOK, resp)
}

// MyWorkspaces handles GET /api/workspace/my-workspaces.
//
// @Summary      List the caller's workspaces with roles
// @Tags         workspace
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   workspaceWithRoleResponse
// @Failure      401  {object}  errorResponse
// @Router       /api/workspace/my-workspaces [get]
func (h *WorkspaceHandler) MyWorkspaces(c echo.Context) error {
	claims := middleware.GetClaims(c)

	result, err := h.service.MyWorkspaces(c.Request().Context(), claims)
	if err != nil {
		return err
	}

	resp := make([]workspaceWithRoleResponse, 0, len(result))
	for i := range result {
		resp = append(resp, workspaceWithRoleResponse{
			workspaceResponse: toWorkspaceResponse(&result[i].Workspace),
			Role:              string(result[i].Role),
		})
	}
	return c.JSON(http.StatusOK, resp)
}

// Open handles GET /api/workspace/:id.
//
// @Summary      Open a workspace the caller has access to
// @Tags         workspace
// @Produce      json
// @Security     BearerAuth
// @Param        id  path      string  true  "Workspace id"
// @Success      200  {object}  openWorkspaceResponse
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/workspace/{id} [get]
func (h *WorkspaceHandler) Open(c echo.Context) error {
	claims := middleware.GetClaims(c)

	ws, role, err := h.service.Open(c.Request().Context(), claims, c.Param("id"))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, openWorkspaceResponse{
		workspaceResponse:   toWorkspaceResponse(ws),
		Role:                string(role),
		HasPermissionToEdit: role.Satisfies(domain.RoleAdmin),
	})
}

// Create handles POST /api/workspace. The creator is granted ADMIN.
//
// @Summary      Create a workspace
// @Tags         workspace
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      editWorkspaceRequest  true  "Workspace fields"
// @Success      201   {object}  workspaceResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Router       /api/workspace [post]
func (h *WorkspaceHandler) Create(c echo.Context) error {
	var req editWorkspaceRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	ws, err := h.service.Create(c.Request().Context(), middleware.GetClaims(c), ports.EditWorkspaceInput{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, toWorkspaceResponse(ws))
}

// Edit handles POST /api/workspace/edit/:id. ADMIN only.
//
// @Summary      Edit workspace name and description
// @Tags         workspace
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                true  "Workspace id"
// @Param        body  body      editWorkspaceRequest  true  "Updated fields"
// @Success      200   {object}  workspaceResponse
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /api/workspace/edit/{id} [post]
func (h *WorkspaceHandler) Edit(c echo.Context) error {
	var req editWorkspaceRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	ws, err := h.service.Edit(c.Request().Context(), middleware.GetClaims(c), c.Param("id"), ports.EditWorkspaceInput{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toWorkspaceResponse(ws))
}

// GrantRole handles POST /api/workspace/:id/members. ADMIN only. Granting a
// role to a user who already holds one on the workspace replaces it. The
// grantee's existing tokens do not see the change until they log in again.
//
// @Summary      Grant a role on a workspace
// @Tags         workspace
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string            true  "Workspace id"
// @Param        body  body      grantRoleRequest  true  "Grant details"
// @Success      200   {object}  map[string]string
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /api/workspace/{id}/members [post]
func (h *WorkspaceHandler) GrantRole(c echo.Context) error {
	var req grantRoleRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	role, err := domain.ParseRole(req.Role)
	if err != nil {
		return err
	}

	err = h.service.GrantRole(c.Request().Context(), middleware.GetClaims(c), c.Param("id"), req.Username, role)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]string{"status": "role granted"})
}

// RevokeRole handles DELETE /api/workspace/:id/members/:username. ADMIN only.
//
// @Summary      Revoke a user's role on a workspace
// @Tags         workspace
// @Produce      json
// @Security     BearerAuth
// @Param        id        path      string  true  "Workspace id"
// @Param        username  path      string  true  "Username"
// @Success      200       {object}  map[string]string
// @Failure      403       {object}  errorResponse
// @Failure      404       {object}  errorResponse
// @Router       /api/workspace/{id}/members/{username} [delete]
func (h *WorkspaceHandler) RevokeRole(c echo.Context) error {
	err := h.service.RevokeRole(c.Request().Context(), middleware.GetClaims(c), c.Param("id"), c.Param("username"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]string{"status": "role revoked"})
}
