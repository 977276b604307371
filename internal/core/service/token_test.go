package service

import (
	"strings"
	"testing"
	"time"

	"github.com/ManuelTrajcev/SQAT-Project/internal/core/domain"
)

func testUser() *domain.User {
	return &domain.User{ID: "u1", Username: "alice"}
}

func TestTokenManager_IssueAndVerify(t *testing.T) {
	m := NewTokenManager("secret", time.Hour)

	token, err := m.Issue(testUser(), []domain.RoleAssignment{
		{UserID: "u1", WorkspaceID: "w1", Role: domain.RoleAdmin},
		{UserID: "u1", WorkspaceID: "w2", Role: domain.RoleVisitor},
	})
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}

	claims, err := m.Verify(token)
	if err != nil {
		t.Fatalf("verify failed: %v", err)
	}
	if claims.UserID != "u1" || claims.Username != "alice" {
		t.Fatalf("unexpected identity: %+v", claims)
	}
	if claims.Workspaces["w1"] != domain.RoleAdmin || claims.Workspaces["w2"] != domain.RoleVisitor {
		t.Fatalf("unexpected workspace claims: %+v", claims.Workspaces)
	}
	if !claims.ExpiresAt.After(time.Now()) {
		t.Fatalf("expected future expiry, got %v", claims.ExpiresAt)
	}
}

func TestTokenManager_Verify_Expired(t *testing.T) {
	m := NewTokenManager("secret", time.Hour)
	m.ttl = -time.Minute

	token, err := m.Issue(testUser(), nil)
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}

	if _, err := m.Verify(token); err != domain.ErrUnauthenticated {
		t.Fatalf("expected ErrUnauthenticated for expired token, got %v", err)
	}
}

func TestTokenManager_Verify_WrongKey(t *testing.T) {
	issuer := NewTokenManager("secret", time.Hour)
	verifier := NewTokenManager("other-secret", time.Hour)

	token, err := issuer.Issue(testUser(), nil)
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}

	if _, err := verifier.Verify(token); err != domain.ErrUnauthenticated {
		t.Fatalf("expected ErrUnauthenticated for wrong key, got %v", err)
	}
}

func TestTokenManager_Verify_Tampered(t *testing.T) {
	m := NewTokenManager("secret", time.Hour)

	token, err := m.Issue(testUser(), []domain.RoleAssignment{
		{UserID: "u1", WorkspaceID: "w1", Role: domain.RoleVisitor},
	})
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}

	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		t.Fatalf("unexpected token shape: %q", token)
	}
	tampered := parts[0] + "." + parts[1] + "x." + parts[2]

	if _, err := m.Verify(tampered); err != domain.ErrUnauthenticated {
		t.Fatalf("expected ErrUnauthenticated for tampered payload, got %v", err)
	}
}

func TestTokenManager_Verify_MalformedAndMissing(t *testing.T) {
	m := NewTokenManager("secret", time.Hour)

	for _, raw := range []string{"", "not-a-token", "a.b.c"} {
		if _, err := m.Verify(raw); err != domain.ErrUnauthenticated {
			t.Fatalf("Verify(%q): expected ErrUnauthenticated, got %v", raw, err)
		}
	}
}
