// Package permission resolves a user's role and department memberships into
// capability answers. All functions are pure and total: a nil user or report
// short-circuits to the most restrictive answer.
package permission

import (
	"github.com/tlsdygks1992-dotcom/church-management-sub001/internal/domain/entity"
	"github.com/tlsdygks1992-dotcom/church-management-sub001/internal/domain/workflow"
)

// IsAdmin returns true for roles with administrative authority
func IsAdmin(role entity.Role) bool {
	return role == entity.RoleSuperAdmin || role == entity.RolePresident
}

// CanAccessAllDepartments returns true for roles that see every department
func CanAccessAllDepartments(role entity.Role) bool {
	switch role {
	case entity.RoleSuperAdmin, entity.RoleAccountant, entity.RolePresident:
		return true
	}
	return false
}

// CanApprove returns true for roles that participate in the approval chain
func CanApprove(role entity.Role) bool {
	switch role {
	case entity.RoleSuperAdmin, entity.RolePresident, entity.RoleAccountant:
		return true
	}
	return false
}

// CanWriteReport returns true if the user is an admin or holds the
// team-leader flag in any department
func CanWriteReport(user *entity.User) bool {
	if user == nil {
		return false
	}
	if IsAdmin(user.Role) {
		return true
	}
	for _, m := range user.Memberships {
		if m.IsTeamLeader {
			return true
		}
	}
	return false
}

// CanEditMembers delegates to CanWriteReport
func CanEditMembers(user *entity.User) bool {
	return CanWriteReport(user)
}

// CanDeleteMembers delegates to CanWriteReport
func CanDeleteMembers(user *entity.User) bool {
	return CanWriteReport(user)
}

// AccessibleDepartmentIDs returns the department ids from the user's
// memberships; empty for a nil user
func AccessibleDepartmentIDs(user *entity.User) []int64 {
	if user == nil {
		return []int64{}
	}
	ids := make([]int64, 0, len(user.Memberships))
	for _, m := range user.Memberships {
		ids = append(ids, m.DepartmentID)
	}
	return ids
}

// CanViewReport decides report visibility. The rules are evaluated in
// precedence order and the first match wins; authorIsTeamLeader refers to the
// report author's team-leader flag in the report's department.
//
// Rule 6 is the cell-leader case: a user whose global role is team_leader but
// whose membership flag is false sees only reports by peer non-team-leader
// authors, not those of department team leaders. This visibility ceiling is
// intentional.
func CanViewReport(user *entity.User, report *entity.Report, authorIsTeamLeader bool) bool {
	if user == nil || report == nil {
		return false
	}

	// 1. Authors always see their own reports
	if user.ID == report.AuthorID {
		return true
	}

	// 2. Drafts are invisible to everyone but the author
	if workflow.Status(report.Status) == workflow.StatusDraft {
		return false
	}

	// 3. All-department roles see everything past draft
	if CanAccessAllDepartments(user.Role) {
		return true
	}

	// 4. No membership in the report's department: not visible
	m := user.MembershipIn(report.DepartmentID)
	if m == nil {
		return false
	}

	// 5. Department team leaders see department-wide
	if m.IsTeamLeader {
		return true
	}

	// 6. Cell leaders see peer-level reports only
	if user.Role == entity.RoleTeamLeader {
		return !authorIsTeamLeader
	}

	// 7. Default deny
	return false
}
