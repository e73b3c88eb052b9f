package auth

// Role represents a user role.
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleManager Role = "manager"
)

// NormalizeRole validates and normalizes a role string.
func NormalizeRole(value string) (Role, bool) {
	switch Role(value) {
	case RoleAdmin, RoleManager:
		return Role(value), true
	default:
		return "", false
	}
}

// Identity is the decoded, verified role context attached to a request.
// StationID is the primary key of the manager's station; zero for admins.
type Identity struct {
	UserID    int64
	Role      Role
	StationID int64
}

// IsAdmin reports whether the identity carries the admin role.
func (id Identity) IsAdmin() bool {
	return id.Role == RoleAdmin
}
