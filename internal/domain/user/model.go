package user

type Role string

const (
	RoleAdmin   Role = "admin"
	RoleManager Role = "manager"
	RoleReader  Role = "reader"
)

// Principal is the authenticated caller attached to a request context.
type Principal struct {
	UserID string
	Name   string
	Role   Role
}

// CanManage reports whether the principal may mutate league data.
func (p Principal) CanManage() bool {
	return p.Role == RoleAdmin || p.Role == RoleManager
}

// CanAdminister reports whether the principal may perform destructive
// operations such as deletes and schedule regeneration.
func (p Principal) CanAdminister() bool {
	return p.Role == RoleAdmin
}

func ParseRole(v string) (Role, bool) {
	switch Role(v) {
	case RoleAdmin, RoleManager, RoleReader:
		return Role(v), true
	default:
		return "", false
	}
}
