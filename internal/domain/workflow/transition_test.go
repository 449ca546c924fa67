package workflow

import (
	"testing"

	"github.com/tlsdygks1992-dotcom/church-management-sub001/internal/domain/entity"
)

func TestNextForward(t *testing.T) {
	tests := []struct {
		name   string
		from   Status
		want   Status
		wantOK bool
	}{
		{
			name:   "submitted advances to coordinator_reviewed",
			from:   StatusSubmitted,
			want:   StatusCoordinatorReviewed,
			wantOK: true,
		},
		{
			name:   "coordinator_reviewed advances to manager_approved",
			from:   StatusCoordinatorReviewed,
			want:   StatusManagerApproved,
			wantOK: true,
		},
		{
			name:   "manager_approved advances to final_approved",
			from:   StatusManagerApproved,
			want:   StatusFinalApproved,
			wantOK: true,
		},
		{
			name:   "draft has no forward stage",
			from:   StatusDraft,
			wantOK: false,
		},
		{
			name:   "final_approved has no forward stage",
			from:   StatusFinalApproved,
			wantOK: false,
		},
		{
			name:   "rejected has no forward stage",
			from:   StatusRejected,
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := NextForward(tt.from)
			if ok != tt.wantOK {
				t.Fatalf("NextForward(%s) ok = %v, want %v", tt.from, ok, tt.wantOK)
			}
			if ok && got != tt.want {
				t.Errorf("NextForward(%s) = %s, want %s", tt.from, got, tt.want)
			}
		})
	}
}

func TestStageOwner(t *testing.T) {
	tests := []struct {
		from   Status
		want   entity.Role
		wantOK bool
	}{
		{StatusSubmitted, entity.RolePresident, true},
		{StatusCoordinatorReviewed, entity.RoleAccountant, true},
		{StatusManagerApproved, entity.RolePastor, true},
		{StatusDraft, "", false},
		{StatusFinalApproved, "", false},
		{StatusRevisionRequested, "", false},
	}

	for _, tt := range tests {
		got, ok := StageOwner(tt.from)
		if ok != tt.wantOK {
			t.Errorf("StageOwner(%s) ok = %v, want %v", tt.from, ok, tt.wantOK)
			continue
		}
		if ok && got != tt.want {
			t.Errorf("StageOwner(%s) = %s, want %s", tt.from, got, tt.want)
		}
	}
}

func TestRequiresComment(t *testing.T) {
	if !RequiresComment(StatusRejected) {
		t.Error("rejection must require a reason")
	}
	if !RequiresComment(StatusRevisionRequested) {
		t.Error("revision request must require a reason")
	}
	for _, st := range []Status{StatusSubmitted, StatusCoordinatorReviewed, StatusManagerApproved, StatusFinalApproved} {
		if RequiresComment(st) {
			t.Errorf("%s must not require a comment", st)
		}
	}
}

func TestAuthorizeForwardChain(t *testing.T) {
	tests := []struct {
		name string
		from Status
		to   Status
		role entity.Role
	}{
		{"president reviews submitted", StatusSubmitted, StatusCoordinatorReviewed, entity.RolePresident},
		{"accountant approves reviewed", StatusCoordinatorReviewed, StatusManagerApproved, entity.RoleAccountant},
		{"pastor confirms approved", StatusManagerApproved, StatusFinalApproved, entity.RolePastor},
		{"super_admin reviews submitted", StatusSubmitted, StatusCoordinatorReviewed, entity.RoleSuperAdmin},
		{"super_admin approves reviewed", StatusCoordinatorReviewed, StatusManagerApproved, entity.RoleSuperAdmin},
		{"super_admin confirms approved", StatusManagerApproved, StatusFinalApproved, entity.RoleSuperAdmin},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := Authorize(tt.from, tt.to, tt.role, false); err != nil {
				t.Errorf("Authorize(%s -> %s, %s) = %v, want nil", tt.from, tt.to, tt.role, err)
			}
		})
	}
}

// TestAuthorizeDeniesWrongRole walks every pending stage with every role that
// does not own it and expects a role denial on the forward edge.
func TestAuthorizeDeniesWrongRole(t *testing.T) {
	allRoles := []entity.Role{
		entity.RoleSuperAdmin, entity.RolePresident, entity.RoleAccountant,
		entity.RoleTeamLeader, entity.RoleMember, entity.RolePastor, entity.RoleManager,
	}

	for from, toRole := range map[Status]entity.Role{
		StatusSubmitted:           entity.RolePresident,
		StatusCoordinatorReviewed: entity.RoleAccountant,
		StatusManagerApproved:     entity.RolePastor,
	} {
		next, _ := NextForward(from)
		for _, role := range allRoles {
			if role == toRole || role == entity.RoleSuperAdmin {
				continue
			}
			err := Authorize(from, next, role, false)
			if err != ErrRoleNotAllowed {
				t.Errorf("Authorize(%s -> %s, %s) = %v, want ErrRoleNotAllowed", from, next, role, err)
			}
		}
	}
}

func TestAuthorizeSubmission(t *testing.T) {
	tests := []struct {
		name     string
		from     Status
		isAuthor bool
		wantErr  error
	}{
		{"author submits draft", StatusDraft, true, nil},
		{"author resubmits rejected", StatusRejected, true, nil},
		{"author resubmits after revision request", StatusRevisionRequested, true, nil},
		{"non-author cannot submit", StatusDraft, false, ErrRoleNotAllowed},
		{"cannot submit a submitted report", StatusSubmitted, true, ErrInvalidTransition},
		{"cannot submit a final report", StatusFinalApproved, true, ErrInvalidTransition},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Authorize(tt.from, StatusSubmitted, entity.RoleTeamLeader, tt.isAuthor)
			if err != tt.wantErr {
				t.Errorf("Authorize(%s -> submitted) = %v, want %v", tt.from, err, tt.wantErr)
			}
		})
	}
}

func TestAuthorizeRejectAndRevision(t *testing.T) {
	for from, owner := range map[Status]entity.Role{
		StatusSubmitted:           entity.RolePresident,
		StatusCoordinatorReviewed: entity.RoleAccountant,
		StatusManagerApproved:     entity.RolePastor,
	} {
		for _, target := range []Status{StatusRejected, StatusRevisionRequested} {
			if err := Authorize(from, target, owner, false); err != nil {
				t.Errorf("Authorize(%s -> %s, %s) = %v, want nil", from, target, owner, err)
			}
			if err := Authorize(from, target, entity.RoleSuperAdmin, false); err != nil {
				t.Errorf("Authorize(%s -> %s, super_admin) = %v, want nil", from, target, err)
			}
			if err := Authorize(from, target, entity.RoleMember, false); err != ErrRoleNotAllowed {
				t.Errorf("Authorize(%s -> %s, member) = %v, want ErrRoleNotAllowed", from, target, err)
			}
		}
	}
}

func TestAuthorizeNoEdgesOutOfTerminalOrDraft(t *testing.T) {
	// No role may reject, revise or advance a draft or a final report
	for _, from := range []Status{StatusDraft, StatusFinalApproved, StatusRejected, StatusRevisionRequested} {
		for _, target := range []Status{StatusCoordinatorReviewed, StatusManagerApproved, StatusFinalApproved, StatusRejected, StatusRevisionRequested} {
			err := Authorize(from, target, entity.RoleSuperAdmin, false)
			if err != ErrInvalidTransition {
				t.Errorf("Authorize(%s -> %s, super_admin) = %v, want ErrInvalidTransition", from, target, err)
			}
		}
	}
}

func TestAuthorizeInvalidStatus(t *testing.T) {
	if err := Authorize(Status("nonsense"), StatusSubmitted, entity.RoleSuperAdmin, true); err != ErrInvalidStatus {
		t.Errorf("Authorize with invalid from = %v, want ErrInvalidStatus", err)
	}
	if err := Authorize(StatusSubmitted, Status("nonsense"), entity.RoleSuperAdmin, false); err != ErrInvalidStatus {
		t.Errorf("Authorize with invalid target = %v, want ErrInvalidStatus", err)
	}
}

func TestAuthorizeSkippingStagesDenied(t *testing.T) {
	tests := []struct {
		from Status
		to   Status
	}{
		{StatusSubmitted, StatusManagerApproved},
		{StatusSubmitted, StatusFinalApproved},
		{StatusCoordinatorReviewed, StatusFinalApproved},
	}

	for _, tt := range tests {
		err := Authorize(tt.from, tt.to, entity.RoleSuperAdmin, false)
		if err != ErrInvalidTransition {
			t.Errorf("Authorize(%s -> %s, super_admin) = %v, want ErrInvalidTransition", tt.from, tt.to, err)
		}
	}
}

func TestPendingStatuses(t *testing.T) {
	tests := []struct {
		role entity.Role
		want []Status
	}{
		{entity.RolePresident, []Status{StatusSubmitted}},
		{entity.RoleAccountant, []Status{StatusCoordinatorReviewed}},
		{entity.RolePastor, []Status{StatusManagerApproved}},
		{entity.RoleSuperAdmin, []Status{StatusSubmitted, StatusCoordinatorReviewed, StatusManagerApproved}},
		{entity.RoleTeamLeader, nil},
		{entity.RoleMember, nil},
		{entity.RoleManager, nil},
	}

	for _, tt := range tests {
		got := PendingStatuses(tt.role)
		if len(got) != len(tt.want) {
			t.Errorf("PendingStatuses(%s) = %v, want %v", tt.role, got, tt.want)
			continue
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Errorf("PendingStatuses(%s)[%d] = %s, want %s", tt.role, i, got[i], tt.want[i])
			}
		}
	}
}

func TestStatusPredicates(t *testing.T) {
	// Rejected and revision_requested end the pipeline even though the
	// author may edit and resubmit
	for _, st := range []Status{StatusFinalApproved, StatusRejected, StatusRevisionRequested} {
		if !st.IsTerminal() {
			t.Errorf("%s must be terminal", st)
		}
	}
	for _, st := range []Status{StatusDraft, StatusSubmitted, StatusCoordinatorReviewed, StatusManagerApproved} {
		if st.IsTerminal() {
			t.Errorf("%s must not be terminal", st)
		}
	}

	for _, st := range []Status{StatusDraft, StatusRejected, StatusRevisionRequested} {
		if !st.IsEditable() {
			t.Errorf("%s must be editable", st)
		}
	}
	for _, st := range []Status{StatusSubmitted, StatusCoordinatorReviewed, StatusManagerApproved, StatusFinalApproved} {
		if st.IsEditable() {
			t.Errorf("%s must not be editable", st)
		}
	}

	if Status("unknown").IsValid() {
		t.Error("unknown status must not be valid")
	}
}
