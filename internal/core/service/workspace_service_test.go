package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/rs/zerolog"

	"github.com/ManuelTrajcev/SQAT-Project/internal/core/domain"
	"github.com/ManuelTrajcev/SQAT-Project/internal/core/ports"
)

type stubWorkspaceRepo struct {
	workspaces map[string]*domain.Workspace
	nextID     int
}

func newStubWorkspaceRepo() *stubWorkspaceRepo {
	return &stubWorkspaceRepo{workspaces: make(map[string]*domain.Workspace)}
}

func (r *stubWorkspaceRepo) FindAll(_ context.Context) ([]domain.Workspace, error) {
	var result []domain.Workspace
	for _, ws := range r.workspaces {
		result = append(result, *ws)
	}
	return result, nil
}

func (r *stubWorkspaceRepo) FindByID(_ context.Context, id string) (*domain.Workspace, error) {
	ws, ok := r.workspaces[id]
	if !ok {
		return nil, domain.ErrWorkspaceNotFound
	}
	clone := *ws
	return &clone, nil
}

func (r *stubWorkspaceRepo) Create(_ context.Context, ws *domain.Workspace) (*domain.Workspace, error) {
	r.nextID++
	clone := *ws
	clone.ID = fmt.Sprintf("w%d", r.nextID)
	r.workspaces[clone.ID] = &clone
	created := clone
	return &created, nil
}

func (r *stubWorkspaceRepo) Update(_ context.Context, ws *domain.Workspace) (*domain.Workspace, error) {
	if _, ok := r.workspaces[ws.ID]; !ok {
		return nil, domain.ErrWorkspaceNotFound
	}
	clone := *ws
	r.workspaces[ws.ID] = &clone
	return ws, nil
}

func adminClaims(userID, workspaceID string) *domain.Claims {
	return &domain.Claims{
		UserID:     userID,
		Username:   "admin-user",
		Workspaces: map[string]domain.Role{workspaceID: domain.RoleAdmin},
	}
}

func newWorkspaceFixture(t *testing.T) (*WorkspaceService, *stubWorkspaceRepo, *stubAssignmentRepo, *stubUserRepo) {
	t.Helper()
	workspaces := newStubWorkspaceRepo()
	assignments := &stubAssignmentRepo{}
	users := newStubUserRepo()
	svc := NewWorkspaceService(workspaces, assignments, users, zerolog.Nop())
	return svc, workspaces, assignments, users
}

func TestWorkspaceService_Create_GrantsCreatorAdmin(t *testing.T) {
	svc, _, assignments, _ := newWorkspaceFixture(t)
	claims := &domain.Claims{UserID: "u1", Username: "alice", Workspaces: map[string]domain.Role{}}

	ws, err := svc.Create(context.Background(), claims, ports.EditWorkspaceInput{Name: "Team", Description: "desc"})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if ws.ID == "" || ws.Name != "Team" {
		t.Fatalf("unexpected workspace: %+v", ws)
	}

	edge, err := assignments.Find(context.Background(), ws.ID, "u1")
	if err != nil {
		t.Fatalf("creator has no assignment: %v", err)
	}
	if edge.Role != domain.RoleAdmin {
		t.Fatalf("expected creator ADMIN, got %s", edge.Role)
	}
}

func TestWorkspaceService_Create_Validation(t *testing.T) {
	svc, _, _, _ := newWorkspaceFixture(t)

	if _, err := svc.Create(context.Background(), nil, ports.EditWorkspaceInput{Name: "x"}); err != domain.ErrUnauthenticated {
		t.Fatalf("expected ErrUnauthenticated, got %v", err)
	}

	claims := &domain.Claims{UserID: "u1", Workspaces: map[string]domain.Role{}}
	if _, err := svc.Create(context.Background(), claims, ports.EditWorkspaceInput{}); err != domain.ErrInvalidArguments {
		t.Fatalf("expected ErrInvalidArguments for empty name, got %v", err)
	}
}

func TestWorkspaceService_Open(t *testing.T) {
	svc, workspaces, _, _ := newWorkspaceFixture(t)
	ws, _ := workspaces.Create(context.Background(), &domain.Workspace{Name: "Team"})

	visitor := &domain.Claims{
		UserID:     "u2",
		Workspaces: map[string]domain.Role{ws.ID: domain.RoleVisitor},
	}

	got, role, err := svc.Open(context.Background(), visitor, ws.ID)
	if err != nil {
		t.Fatalf("open failed: %v", err)
	}
	if got.ID != ws.ID || role != domain.RoleVisitor {
		t.Fatalf("unexpected result: %+v role=%s", got, role)
	}
}

func TestWorkspaceService_Open_NoClaimHidesExistence(t *testing.T) {
	svc, workspaces, _, _ := newWorkspaceFixture(t)
	ws, _ := workspaces.Create(context.Background(), &domain.Workspace{Name: "Team"})

	stranger := &domain.Claims{UserID: "u9", Workspaces: map[string]domain.Role{}}

	// Same failure whether or not the workspace exists.
	if _, _, err := svc.Open(context.Background(), stranger, ws.ID); err != domain.ErrUnauthorized {
		t.Fatalf("expected ErrUnauthorized for existing workspace, got %v", err)
	}
	if _, _, err := svc.Open(context.Background(), stranger, "missing"); err != domain.ErrUnauthorized {
		t.Fatalf("expected ErrUnauthorized for missing workspace, got %v", err)
	}
}

func TestWorkspaceService_Open_AuthorizedButDeleted(t *testing.T) {
	svc, _, _, _ := newWorkspaceFixture(t)

	// Claim refers to a workspace that no longer exists: genuine not-found.
	claims := &domain.Claims{
		UserID:     "u1",
		Workspaces: map[string]domain.Role{"gone": domain.RoleAdmin},
	}
	if _, _, err := svc.Open(context.Background(), claims, "gone"); err != domain.ErrWorkspaceNotFound {
		t.Fatalf("expected ErrWorkspaceNotFound, got %v", err)
	}
}

func TestWorkspaceService_Edit_RequiresAdmin(t *testing.T) {
	svc, workspaces, _, _ := newWorkspaceFixture(t)
	ws, _ := workspaces.Create(context.Background(), &domain.Workspace{Name: "Team", Description: "old"})

	visitor := &domain.Claims{
		UserID:     "u2",
		Workspaces: map[string]domain.Role{ws.ID: domain.RoleVisitor},
	}
	if _, err := svc.Edit(context.Background(), visitor, ws.ID, ports.EditWorkspaceInput{Name: "New"}); err != domain.ErrUnauthorized {
		t.Fatalf("expected ErrUnauthorized for visitor, got %v", err)
	}

	updated, err := svc.Edit(context.Background(), adminClaims("u1", ws.ID), ws.ID, ports.EditWorkspaceInput{
		Name:        "Updated Workspace Name",
		Description: "Updated Description",
	})
	if err != nil {
		t.Fatalf("edit failed: %v", err)
	}
	if updated.Name != "Updated Workspace Name" || updated.Description != "Updated Description" {
		t.Fatalf("unexpected update: %+v", updated)
	}
}

func TestWorkspaceService_MyWorkspaces(t *testing.T) {
	svc, workspaces, _, _ := newWorkspaceFixture(t)
	w1, _ := workspaces.Create(context.Background(), &domain.Workspace{Name: "One"})
	w2, _ := workspaces.Create(context.Background(), &domain.Workspace{Name: "Two"})

	claims := &domain.Claims{
		UserID: "u1",
		Workspaces: map[string]domain.Role{
			w1.ID:    domain.RoleAdmin,
			w2.ID:    domain.RoleVisitor,
			"stale1": domain.RoleVisitor, // deleted since the token was issued
		},
	}

	result, err := svc.MyWorkspaces(context.Background(), claims)
	if err != nil {
		t.Fatalf("my-workspaces failed: %v", err)
	}
	if len(result) != 2 {
		t.Fatalf("expected 2 workspaces, got %d", len(result))
	}

	roles := make(map[string]domain.Role)
	for _, item := range result {
		roles[item.Workspace.ID] = item.Role
	}
	if roles[w1.ID] != domain.RoleAdmin || roles[w2.ID] != domain.RoleVisitor {
		t.Fatalf("unexpected roles: %+v", roles)
	}
}

func TestWorkspaceService_GrantRole_UpsertsEdge(t *testing.T) {
	svc, workspaces, assignments, users := newWorkspaceFixture(t)
	ws, _ := workspaces.Create(context.Background(), &domain.Workspace{Name: "Team"})
	bob, _ := users.Create(context.Background(), &domain.User{Username: "bob"})

	admin := adminClaims("u1", ws.ID)

	if err := svc.GrantRole(context.Background(), admin, ws.ID, "bob", domain.RoleVisitor); err != nil {
		t.Fatalf("grant failed: %v", err)
	}
	edge, err := assignments.Find(context.Background(), ws.ID, bob.ID)
	if err != nil || edge.Role != domain.RoleVisitor {
		t.Fatalf("expected VISITOR edge, got %+v (%v)", edge, err)
	}

	// Re-granting replaces the role; the pair stays unique.
	if err := svc.GrantRole(context.Background(), admin, ws.ID, "bob", domain.RoleAdmin); err != nil {
		t.Fatalf("re-grant failed: %v", err)
	}
	all, _ := assignments.FindForUser(context.Background(), bob.ID)
	if len(all) != 1 || all[0].Role != domain.RoleAdmin {
		t.Fatalf("expected single ADMIN edge, got %+v", all)
	}
}

func TestWorkspaceService_GrantRole_Checks(t *testing.T) {
	svc, workspaces, _, users := newWorkspaceFixture(t)
	ws, _ := workspaces.Create(context.Background(), &domain.Workspace{Name: "Team"})
	_, _ = users.Create(context.Background(), &domain.User{Username: "bob"})

	visitor := &domain.Claims{
		UserID:     "u2",
		Workspaces: map[string]domain.Role{ws.ID: domain.RoleVisitor},
	}
	if err := svc.GrantRole(context.Background(), visitor, ws.ID, "bob", domain.RoleVisitor); err != domain.ErrUnauthorized {
		t.Fatalf("expected ErrUnauthorized for visitor grantor, got %v", err)
	}

	admin := adminClaims("u1", ws.ID)
	if err := svc.GrantRole(context.Background(), admin, ws.ID, "bob", domain.Role("ROLE_OWNER")); err != domain.ErrInvalidArguments {
		t.Fatalf("expected ErrInvalidArguments for unknown role, got %v", err)
	}
	if err := svc.GrantRole(context.Background(), admin, ws.ID, "ghost", domain.RoleVisitor); err != domain.ErrUserNotFound {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestWorkspaceService_RevokeRole(t *testing.T) {
	svc, workspaces, assignments, users := newWorkspaceFixture(t)
	ws, _ := workspaces.Create(context.Background(), &domain.Workspace{Name: "Team"})
	bob, _ := users.Create(context.Background(), &domain.User{Username: "bob"})

	admin := adminClaims("u1", ws.ID)
	if err := svc.GrantRole(context.Background(), admin, ws.ID, "bob", domain.RoleVisitor); err != nil {
		t.Fatalf("grant failed: %v", err)
	}

	if err := svc.RevokeRole(context.Background(), admin, ws.ID, "bob"); err != nil {
		t.Fatalf("revoke failed: %v", err)
	}
	if _, err := assignments.Find(context.Background(), ws.ID, bob.ID); err != domain.ErrUnauthorized {
		t.Fatalf("expected edge removed, got %v", err)
	}
}
