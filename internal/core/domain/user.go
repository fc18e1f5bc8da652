package domain

import "time"

// Role is the closed set of actor kinds in the system.
type Role string

const (
	RoleManager  Role = "manager"
	RoleEmployee Role = "employee"
)

// ParseRole converts raw input into a Role, rejecting unknown values.
func ParseRole(s string) (Role, error) {
	switch r := Role(s); r {
	case RoleManager, RoleEmployee:
		return r, nil
	default:
		return "", Invalid("role must be one of: manager, employee")
	}
}

// User models an authenticated actor in the system.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	FullName     string    `json:"full_name"`
	Role         Role      `json:"role"`
	ManagerID    string    `json:"manager_id,omitempty"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// HasManager reports whether the user reports to someone.
func (u *User) HasManager() bool {
	return u.ManagerID != ""
}

// UserPatch lists the only user fields that may change after registration.
// A nil field is left untouched. A ManagerID pointing at "" clears the manager.
type UserPatch struct {
	FullName  *string
	Email     *string
	ManagerID *string
}

// IsEmpty reports whether the patch carries no changes.
func (p UserPatch) IsEmpty() bool {
	return p.FullName == nil && p.Email == nil && p.ManagerID == nil
}
