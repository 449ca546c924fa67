package entity

import "time"

// Role is the global role of a user. Role and the per-department team-leader
// flag are independent axes of authority: a global member can still be a team
// leader inside one department.
type Role string

const (
	RoleSuperAdmin Role = "super_admin"
	RolePresident  Role = "president"
	RoleAccountant Role = "accountant"
	RoleTeamLeader Role = "team_leader"
	RoleMember     Role = "member"
	RolePastor     Role = "pastor"
	RoleManager    Role = "manager"
)

var validRoles = map[Role]bool{
	RoleSuperAdmin: true,
	RolePresident:  true,
	RoleAccountant: true,
	RoleTeamLeader: true,
	RoleMember:     true,
	RolePastor:     true,
	RoleManager:    true,
}

// IsValid returns true if the role is one of the defined roles
func (r Role) IsValid() bool {
	return validRoles[r]
}

// String returns the string representation of the role
func (r Role) String() string {
	return string(r)
}

// User represents an actor with exactly one global role and zero or more
// department memberships
type User struct {
	ID          int64                  `json:"id"`
	Name        string                 `json:"name"`
	Role        Role                   `json:"role"`
	Memberships []DepartmentMembership `json:"memberships,omitempty"`
	CreatedAt   time.Time              `json:"created_at"`
}

// DepartmentMembership links a user to a department. IsTeamLeader grants
// department-wide report visibility and write access.
type DepartmentMembership struct {
	UserID       int64 `json:"user_id"`
	DepartmentID int64 `json:"department_id"`
	IsTeamLeader bool  `json:"is_team_leader"`
}

// MembershipIn returns the user's membership in the given department, or nil
func (u *User) MembershipIn(departmentID int64) *DepartmentMembership {
	if u == nil {
		return nil
	}
	for i := range u.Memberships {
		if u.Memberships[i].DepartmentID == departmentID {
			return &u.Memberships[i]
		}
	}
	return nil
}

// IsTeamLeaderOf returns true if the user holds the team-leader flag in the
// given department
func (u *User) IsTeamLeaderOf(departmentID int64) bool {
	m := u.MembershipIn(departmentID)
	return m != nil && m.IsTeamLeader
}
