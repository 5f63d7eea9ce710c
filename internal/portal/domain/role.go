package domain

import "errors"

// Role is the closed set of principal kinds. It is embedded in access
// tokens and drives every authorization decision.
type Role string

const (
	RoleAdmin   Role = "Admin"
	RoleCompany Role = "Company"
	RoleStudent Role = "Student"
)

var ErrUnknownRole = errors.New("domain: unknown role")

// ParseRole validates a wire-level role string.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleAdmin, RoleCompany, RoleStudent:
		return Role(s), nil
	default:
		return "", ErrUnknownRole
	}
}

// SignupRole validates a role chosen at registration. Admin accounts are
// only ever created by the bootstrap seeding, never via signup. An empty
// choice defaults to Student.
func SignupRole(s string) (Role, error) {
	switch Role(s) {
	case "":
		return RoleStudent, nil
	case RoleCompany, RoleStudent:
		return Role(s), nil
	default:
		return "", ErrUnknownRole
	}
}

func (r Role) String() string { return string(r) }
