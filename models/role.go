package models

// Role is the closed set of account roles. Authorization checks compare
// against these constants only, never against raw strings from a request.
type Role string

const (
	RoleUser     Role = "user"
	RoleEmployee Role = "employee"
	RoleAdmin    Role = "admin"
)

func (r Role) Valid() bool {
	switch r {
	case RoleUser, RoleEmployee, RoleAdmin:
		return true
	}
	return false
}

// Staff covers the roles allowed to see and update every order.
func (r Role) Staff() bool {
	return r == RoleAdmin || r == RoleEmployee
}
