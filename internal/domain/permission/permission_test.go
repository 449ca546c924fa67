package permission

import (
	"testing"

	"github.com/tlsdygks1992-dotcom/church-management-sub001/internal/domain/entity"
	"github.com/tlsdygks1992-dotcom/church-management-sub001/internal/domain/workflow"
)

func makeUser(id int64, role entity.Role, memberships ...entity.DepartmentMembership) *entity.User {
	return &entity.User{ID: id, Name: "user", Role: role, Memberships: memberships}
}

func makeReport(id, authorID, departmentID int64, status workflow.Status) *entity.Report {
	return &entity.Report{ID: id, AuthorID: authorID, DepartmentID: departmentID, Status: status.String()}
}

func TestIsAdmin(t *testing.T) {
	admins := map[entity.Role]bool{
		entity.RoleSuperAdmin: true,
		entity.RolePresident:  true,
	}

	for _, role := range []entity.Role{
		entity.RoleSuperAdmin, entity.RolePresident, entity.RoleAccountant,
		entity.RoleTeamLeader, entity.RoleMember, entity.RolePastor, entity.RoleManager,
	} {
		if got := IsAdmin(role); got != admins[role] {
			t.Errorf("IsAdmin(%s) = %v, want %v", role, got, admins[role])
		}
	}
}

func TestCanAccessAllDepartments(t *testing.T) {
	tests := []struct {
		role entity.Role
		want bool
	}{
		{entity.RoleSuperAdmin, true},
		{entity.RolePresident, true},
		{entity.RoleAccountant, true},
		{entity.RoleTeamLeader, false},
		{entity.RoleMember, false},
		{entity.RolePastor, false},
		{entity.RoleManager, false},
	}

	for _, tt := range tests {
		if got := CanAccessAllDepartments(tt.role); got != tt.want {
			t.Errorf("CanAccessAllDepartments(%s) = %v, want %v", tt.role, got, tt.want)
		}
	}
}

func TestCanApprove(t *testing.T) {
	approvers := map[entity.Role]bool{
		entity.RoleSuperAdmin: true,
		entity.RolePresident:  true,
		entity.RoleAccountant: true,
	}

	for _, role := range []entity.Role{
		entity.RoleSuperAdmin, entity.RolePresident, entity.RoleAccountant,
		entity.RoleTeamLeader, entity.RoleMember, entity.RolePastor, entity.RoleManager,
	} {
		if got := CanApprove(role); got != approvers[role] {
			t.Errorf("CanApprove(%s) = %v, want %v", role, got, approvers[role])
		}
	}
}

func TestCanWriteReport(t *testing.T) {
	tests := []struct {
		name string
		user *entity.User
		want bool
	}{
		{
			name: "nil user cannot write",
			user: nil,
			want: false,
		},
		{
			name: "super_admin writes without membership",
			user: makeUser(1, entity.RoleSuperAdmin),
			want: true,
		},
		{
			name: "president writes without membership",
			user: makeUser(2, entity.RolePresident),
			want: true,
		},
		{
			name: "team-leader-flagged membership writes",
			user: makeUser(3, entity.RoleTeamLeader, entity.DepartmentMembership{UserID: 3, DepartmentID: 10, IsTeamLeader: true}),
			want: true,
		},
		{
			name: "member with plain membership cannot write",
			user: makeUser(4, entity.RoleMember, entity.DepartmentMembership{UserID: 4, DepartmentID: 10}),
			want: false,
		},
		{
			name: "team_leader role without flagged membership cannot write",
			user: makeUser(5, entity.RoleTeamLeader, entity.DepartmentMembership{UserID: 5, DepartmentID: 10}),
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CanWriteReport(tt.user); got != tt.want {
				t.Errorf("CanWriteReport() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestMemberManagementDelegates(t *testing.T) {
	leader := makeUser(1, entity.RoleMember, entity.DepartmentMembership{UserID: 1, DepartmentID: 10, IsTeamLeader: true})
	member := makeUser(2, entity.RoleMember, entity.DepartmentMembership{UserID: 2, DepartmentID: 10})

	assert := func(name string, got, want bool) {
		if got != want {
			t.Errorf("%s = %v, want %v", name, got, want)
		}
	}

	assert("CanEditMembers(leader)", CanEditMembers(leader), true)
	assert("CanDeleteMembers(leader)", CanDeleteMembers(leader), true)
	assert("CanEditMembers(member)", CanEditMembers(member), false)
	assert("CanDeleteMembers(nil)", CanDeleteMembers(nil), false)
}

func TestAccessibleDepartmentIDs(t *testing.T) {
	if ids := AccessibleDepartmentIDs(nil); ids == nil || len(ids) != 0 {
		t.Errorf("AccessibleDepartmentIDs(nil) = %v, want empty non-nil slice", ids)
	}

	user := makeUser(1, entity.RoleMember,
		entity.DepartmentMembership{UserID: 1, DepartmentID: 10},
		entity.DepartmentMembership{UserID: 1, DepartmentID: 20},
	)
	ids := AccessibleDepartmentIDs(user)
	if len(ids) != 2 || ids[0] != 10 || ids[1] != 20 {
		t.Errorf("AccessibleDepartmentIDs() = %v, want [10 20]", ids)
	}
}

func TestCanViewReport(t *testing.T) {
	tests := []struct {
		name               string
		user               *entity.User
		report             *entity.Report
		authorIsTeamLeader bool
		want               bool
	}{
		{
			name:   "nil user denied",
			user:   nil,
			report: makeReport(1, 2, 10, workflow.StatusSubmitted),
			want:   false,
		},
		{
			name:   "nil report denied",
			user:   makeUser(1, entity.RoleSuperAdmin),
			report: nil,
			want:   false,
		},
		{
			name:   "author sees own draft",
			user:   makeUser(2, entity.RoleMember),
			report: makeReport(1, 2, 10, workflow.StatusDraft),
			want:   true,
		},
		{
			name:   "draft hidden from super_admin",
			user:   makeUser(1, entity.RoleSuperAdmin),
			report: makeReport(1, 2, 10, workflow.StatusDraft),
			want:   false,
		},
		{
			name:   "super_admin sees submitted anywhere",
			user:   makeUser(1, entity.RoleSuperAdmin),
			report: makeReport(1, 2, 10, workflow.StatusSubmitted),
			want:   true,
		},
		{
			name:   "accountant sees submitted anywhere",
			user:   makeUser(3, entity.RoleAccountant),
			report: makeReport(1, 2, 10, workflow.StatusSubmitted),
			want:   true,
		},
		{
			name:   "no membership in department denied",
			user:   makeUser(4, entity.RoleMember, entity.DepartmentMembership{UserID: 4, DepartmentID: 20}),
			report: makeReport(1, 2, 10, workflow.StatusSubmitted),
			want:   false,
		},
		{
			name: "department team leader sees department-wide",
			user: makeUser(5, entity.RoleMember,
				entity.DepartmentMembership{UserID: 5, DepartmentID: 10, IsTeamLeader: true}),
			report:             makeReport(1, 2, 10, workflow.StatusSubmitted),
			authorIsTeamLeader: true,
			want:               true,
		},
		{
			name: "cell leader sees peer report",
			user: makeUser(6, entity.RoleTeamLeader,
				entity.DepartmentMembership{UserID: 6, DepartmentID: 10}),
			report:             makeReport(1, 2, 10, workflow.StatusSubmitted),
			authorIsTeamLeader: false,
			want:               true,
		},
		{
			name: "cell leader cannot see team leader report",
			user: makeUser(6, entity.RoleTeamLeader,
				entity.DepartmentMembership{UserID: 6, DepartmentID: 10}),
			report:             makeReport(1, 2, 10, workflow.StatusSubmitted),
			authorIsTeamLeader: true,
			want:               false,
		},
		{
			name: "plain member denied by default",
			user: makeUser(7, entity.RoleMember,
				entity.DepartmentMembership{UserID: 7, DepartmentID: 10}),
			report: makeReport(1, 2, 10, workflow.StatusSubmitted),
			want:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CanViewReport(tt.user, tt.report, tt.authorIsTeamLeader)
			if got != tt.want {
				t.Errorf("CanViewReport() = %v, want %v", got, tt.want)
			}
		})
	}
}
