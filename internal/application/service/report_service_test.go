package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tlsdygks1992-dotcom/church-management-sub001/internal/application/port"
	"github.com/tlsdygks1992-dotcom/church-management-sub001/internal/domain/entity"
)

type fakeDepartmentRepo struct {
	departments map[int64]*entity.Department
}

func newFakeDepartmentRepo(ids ...int64) *fakeDepartmentRepo {
	m := make(map[int64]*entity.Department)
	for _, id := range ids {
		m[id] = &entity.Department{ID: id, Name: "dept"}
	}
	return &fakeDepartmentRepo{departments: m}
}

func (f *fakeDepartmentRepo) GetByID(ctx context.Context, id int64) (*entity.Department, error) {
	return f.departments[id], nil
}

func (f *fakeDepartmentRepo) List(ctx context.Context) ([]*entity.Department, error) {
	var out []*entity.Department
	for _, d := range f.departments {
		out = append(out, d)
	}
	return out, nil
}

type fakeUserRepo struct {
	users map[int64]*entity.User
}

func newFakeUserRepo(users ...*entity.User) *fakeUserRepo {
	m := make(map[int64]*entity.User)
	for _, u := range users {
		m[u.ID] = u
	}
	return &fakeUserRepo{users: m}
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id int64) (*entity.User, error) {
	return f.users[id], nil
}

func (f *fakeUserRepo) ListByRole(ctx context.Context, role entity.Role) ([]*entity.User, error) {
	var out []*entity.User
	for _, u := range f.users {
		if u.Role == role {
			out = append(out, u)
		}
	}
	return out, nil
}

func teamLeaderUser(id, departmentID int64) *entity.User {
	return &entity.User{
		ID:   id,
		Role: entity.RoleMember,
		Memberships: []entity.DepartmentMembership{
			{UserID: id, DepartmentID: departmentID, IsTeamLeader: true},
		},
	}
}

func TestCreateDraft(t *testing.T) {
	leader := teamLeaderUser(1, 10)
	reportRepo := newFakeReportRepo()

	svc := NewReportService(reportRepo, &fakeHistoryRepo{}, newFakeUserRepo(leader), newFakeDepartmentRepo(10), nopLogger{})

	report, err := svc.CreateDraft(context.Background(), leader, CreateReportInput{
		DepartmentID:    10,
		ReportDate:      time.Date(2025, 3, 2, 0, 0, 0, 0, time.UTC),
		Content:         "weekly summary",
		AttendanceCount: 42,
		OfferingAmount:  150.5,
	})
	require.NoError(t, err)
	assert.NotZero(t, report.ID)
	assert.Equal(t, entity.StatusDraft, report.Status)
	assert.Equal(t, int64(1), report.AuthorID)
}

func TestCreateDraftPermission(t *testing.T) {
	tests := []struct {
		name         string
		actor        *entity.User
		departmentID int64
		wantErr      error
	}{
		{
			name:         "plain member denied",
			actor:        &entity.User{ID: 2, Role: entity.RoleMember, Memberships: []entity.DepartmentMembership{{UserID: 2, DepartmentID: 10}}},
			departmentID: 10,
			wantErr:      ErrPermissionDenied,
		},
		{
			name:         "team leader of another department denied",
			actor:        teamLeaderUser(3, 20),
			departmentID: 10,
			wantErr:      ErrPermissionDenied,
		},
		{
			name:         "super_admin writes anywhere",
			actor:        &entity.User{ID: 4, Role: entity.RoleSuperAdmin},
			departmentID: 10,
			wantErr:      nil,
		},
		{
			name:    "nil actor denied",
			actor:   nil,
			wantErr: ErrPermissionDenied,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewReportService(newFakeReportRepo(), &fakeHistoryRepo{}, newFakeUserRepo(), newFakeDepartmentRepo(10), nopLogger{})
			_, err := svc.CreateDraft(context.Background(), tt.actor, CreateReportInput{
				DepartmentID: tt.departmentID,
				ReportDate:   time.Now(),
			})
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestCreateDraftUnknownDepartment(t *testing.T) {
	admin := &entity.User{ID: 1, Role: entity.RoleSuperAdmin}
	svc := NewReportService(newFakeReportRepo(), &fakeHistoryRepo{}, newFakeUserRepo(admin), newFakeDepartmentRepo(10), nopLogger{})

	_, err := svc.CreateDraft(context.Background(), admin, CreateReportInput{
		DepartmentID: 999,
		ReportDate:   time.Now(),
	})
	assert.ErrorIs(t, err, ErrDepartmentNotFound)
}

func TestUpdateDraft(t *testing.T) {
	author := teamLeaderUser(1, 10)
	report := draftReport(100, author.ID)
	reportRepo := newFakeReportRepo(report)

	svc := NewReportService(reportRepo, &fakeHistoryRepo{}, newFakeUserRepo(author), newFakeDepartmentRepo(10), nopLogger{})

	updated, err := svc.UpdateDraft(context.Background(), 100, author, UpdateReportInput{
		ReportDate:      time.Date(2025, 3, 9, 0, 0, 0, 0, time.UTC),
		Content:         "revised",
		AttendanceCount: 50,
	})
	require.NoError(t, err)
	assert.Equal(t, "revised", updated.Content)
	assert.Equal(t, 50, updated.AttendanceCount)
}

func TestUpdateDraftGuards(t *testing.T) {
	author := teamLeaderUser(1, 10)
	stranger := teamLeaderUser(2, 10)

	submitted := draftReport(101, author.ID)
	submitted.Status = entity.StatusSubmitted

	reportRepo := newFakeReportRepo(draftReport(100, author.ID), submitted)
	svc := NewReportService(reportRepo, &fakeHistoryRepo{}, newFakeUserRepo(author, stranger), newFakeDepartmentRepo(10), nopLogger{})
	ctx := context.Background()

	_, err := svc.UpdateDraft(ctx, 100, stranger, UpdateReportInput{ReportDate: time.Now()})
	assert.ErrorIs(t, err, ErrPermissionDenied)

	_, err = svc.UpdateDraft(ctx, 101, author, UpdateReportInput{ReportDate: time.Now()})
	assert.ErrorIs(t, err, ErrNotEditable)

	_, err = svc.UpdateDraft(ctx, 404, author, UpdateReportInput{ReportDate: time.Now()})
	assert.ErrorIs(t, err, ErrReportNotFound)
}

func TestUpdateRejectedReport(t *testing.T) {
	author := teamLeaderUser(1, 10)
	rejected := draftReport(100, author.ID)
	rejected.Status = entity.StatusRejected

	svc := NewReportService(newFakeReportRepo(rejected), &fakeHistoryRepo{}, newFakeUserRepo(author), newFakeDepartmentRepo(10), nopLogger{})

	updated, err := svc.UpdateDraft(context.Background(), 100, author, UpdateReportInput{
		ReportDate: time.Now(),
		Content:    "fixed the totals",
	})
	require.NoError(t, err)
	assert.Equal(t, "fixed the totals", updated.Content)
}

func TestGetReportVisibility(t *testing.T) {
	author := teamLeaderUser(1, 10)
	admin := &entity.User{ID: 2, Role: entity.RoleSuperAdmin}
	outsider := &entity.User{ID: 3, Role: entity.RoleMember}

	draft := draftReport(100, author.ID)
	submitted := draftReport(101, author.ID)
	submitted.Status = entity.StatusSubmitted

	reportRepo := newFakeReportRepo(draft, submitted)
	svc := NewReportService(reportRepo, &fakeHistoryRepo{}, newFakeUserRepo(author, admin, outsider), newFakeDepartmentRepo(10), nopLogger{})
	ctx := context.Background()

	got, err := svc.GetReport(ctx, 100, author)
	require.NoError(t, err)
	assert.Equal(t, int64(100), got.ID)

	// Drafts stay private to the author
	_, err = svc.GetReport(ctx, 100, admin)
	assert.ErrorIs(t, err, ErrPermissionDenied)

	_, err = svc.GetReport(ctx, 101, admin)
	assert.NoError(t, err)

	_, err = svc.GetReport(ctx, 101, outsider)
	assert.ErrorIs(t, err, ErrPermissionDenied)

	_, err = svc.GetReport(ctx, 404, author)
	assert.ErrorIs(t, err, ErrReportNotFound)
}

func TestListVisibleScopesToMemberships(t *testing.T) {
	leader := teamLeaderUser(1, 10)
	otherAuthor := teamLeaderUser(2, 20)

	inDept := draftReport(100, leader.ID)
	inDept.Status = entity.StatusSubmitted
	outOfDept := &entity.Report{ID: 101, DepartmentID: 20, AuthorID: otherAuthor.ID, Status: entity.StatusSubmitted}

	reportRepo := newFakeReportRepo(inDept, outOfDept)
	svc := NewReportService(reportRepo, &fakeHistoryRepo{}, newFakeUserRepo(leader, otherAuthor), newFakeDepartmentRepo(10, 20), nopLogger{})

	_, err := svc.ListVisible(context.Background(), leader, port.ReportFilter{})
	require.NoError(t, err)

	// Non-admin queries are scoped to the actor's departments at the
	// repository level
	assert.Equal(t, []int64{10}, reportRepo.lastFilter.DepartmentIDs)
}

func TestListVisibleCellLeaderCeiling(t *testing.T) {
	// Cell leader: team_leader role, unflagged membership
	cellLeader := &entity.User{
		ID:   1,
		Role: entity.RoleTeamLeader,
		Memberships: []entity.DepartmentMembership{
			{UserID: 1, DepartmentID: 10},
		},
	}
	peer := &entity.User{
		ID:   2,
		Role: entity.RoleMember,
		Memberships: []entity.DepartmentMembership{
			{UserID: 2, DepartmentID: 10},
		},
	}
	deptLeader := teamLeaderUser(3, 10)

	peerReport := &entity.Report{ID: 100, DepartmentID: 10, AuthorID: peer.ID, Status: entity.StatusSubmitted}
	leaderReport := &entity.Report{ID: 101, DepartmentID: 10, AuthorID: deptLeader.ID, Status: entity.StatusSubmitted}

	reportRepo := newFakeReportRepo(peerReport, leaderReport)
	svc := NewReportService(reportRepo, &fakeHistoryRepo{}, newFakeUserRepo(cellLeader, peer, deptLeader), newFakeDepartmentRepo(10), nopLogger{})

	visible, err := svc.ListVisible(context.Background(), cellLeader, port.ReportFilter{})
	require.NoError(t, err)
	require.Len(t, visible, 1)
	assert.Equal(t, int64(100), visible[0].ID)
}

func TestHistoryRequiresVisibility(t *testing.T) {
	author := teamLeaderUser(1, 10)
	outsider := &entity.User{ID: 3, Role: entity.RoleMember}

	report := draftReport(100, author.ID)
	report.Status = entity.StatusSubmitted

	historyRepo := &fakeHistoryRepo{}
	_ = historyRepo.Create(context.Background(), &entity.ApprovalHistory{
		ReportID:   100,
		ActorID:    author.ID,
		FromStatus: entity.StatusDraft,
		ToStatus:   entity.StatusSubmitted,
	})

	svc := NewReportService(newFakeReportRepo(report), historyRepo, newFakeUserRepo(author, outsider), newFakeDepartmentRepo(10), nopLogger{})
	ctx := context.Background()

	entries, err := svc.History(ctx, 100, author)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, entity.StatusSubmitted, entries[0].ToStatus)

	_, err = svc.History(ctx, 100, outsider)
	assert.ErrorIs(t, err, ErrPermissionDenied)
}
