package domain

// Role is the closed set of per-workspace access levels.
type Role string

const (
	RoleAdmin   Role = "ROLE_ADMIN"
	RoleVisitor Role = "ROLE_VISITOR"
)

// rank defines the total order over roles: ADMIN > VISITOR.
var rank = map[Role]int{
	RoleVisitor: 1,
	RoleAdmin:   2,
}

// IsValid reports whether r is one of the known roles.
func (r Role) IsValid() bool {
	_, ok := rank[r]
	return ok
}

// Satisfies reports whether r meets the required access level.
// An ADMIN satisfies a VISITOR requirement; the reverse does not hold.
func (r Role) Satisfies(required Role) bool {
	return rank[r] >= rank[required] && rank[r] > 0
}

// ParseRole converts a raw string into a Role, rejecting unknown values.
func ParseRole(s string) (Role, error) {
	r := Role(s)
	if !r.IsValid() {
		return "", ErrInvalidArguments
	}
	return r, nil
}
