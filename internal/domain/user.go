package domain

// Role enumerates moderation privilege levels.
type Role string

const (
	RoleModerator Role = "moderator"
	RoleAdmin     Role = "admin"
	RoleSuperuser Role = "superuser"
)

// AtLeast reports whether the role grants the privileges of min.
func (r Role) AtLeast(min Role) bool {
	return rank(r) >= rank(min)
}

func rank(r Role) int {
	switch r {
	case RoleModerator:
		return 1
	case RoleAdmin:
		return 2
	case RoleSuperuser:
		return 3
	default:
		return 0
	}
}

// User is the authenticated moderator operating the console.
type User struct {
	ID   string
	Name string
	Role Role
}
