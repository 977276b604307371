package domain

import "time"

// Claims is the immutable fact set carried inside a signed token: who the
// caller is and which role they held on each workspace at login time.
// Role grants made after issuance are not visible until re-authentication.
type Claims struct {
	UserID     string
	Username   string
	Workspaces map[string]Role
	IssuedAt   time.Time
	ExpiresAt  time.Time
}

// Authorize is the access decision point: given token claims, a target
// workspace and a minimum role, it returns the caller's role on that
// workspace or ErrUnauthorized. Whether the workspace exists at all is
// deliberately not revealed to callers without a claim on it.
func Authorize(claims *Claims, workspaceID string, required Role) (Role, error) {
	if claims == nil {
		return "", ErrUnauthenticated
	}
	role, ok := claims.Workspaces[workspaceID]
	if !ok {
		return "", ErrUnauthorized
	}
	if !role.Satisfies(required) {
		return "", ErrUnauthorized
	}
	return role, nil
}
