package services

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/attendtrack/attendtrack/internal/app/models"
	"github.com/attendtrack/attendtrack/internal/app/models/dto"
	"github.com/attendtrack/attendtrack/internal/pkg/apperrors"
)

func newTestLeaveService() (*LeaveService, *fakeUserRepo) {
	users := newFakeUserRepo()
	return NewLeaveService(newFakeLeaveRepo(users), users, zerolog.Nop()), users
}

func seedAccount(t *testing.T, users *fakeUserRepo, email string, role models.RoleType, department string) int64 {
	t.Helper()
	u := &models.User{
		Name:       "Test Account",
		Email:      email,
		Password:   "hash",
		Role:       role,
		Department: department,
	}
	require.NoError(t, users.Create(context.Background(), u))
	return u.ID
}

func TestApplyLeave(t *testing.T) {
	svc, _ := newTestLeaveService()

	resp, err := svc.Apply(context.Background(), 1, &dto.ApplyLeaveRequest{
		StartDate: "2026-09-01",
		EndDate:   "2026-09-03",
		Reason:    "family function at home",
	})
	require.NoError(t, err)
	assert.Equal(t, string(models.LeavePending), resp.Status)
	assert.Equal(t, 3, resp.Duration, "duration is inclusive of both ends")
}

func TestApplyLeaveValidation(t *testing.T) {
	svc, _ := newTestLeaveService()
	ctx := context.Background()

	tests := []struct {
		name string
		req  dto.ApplyLeaveRequest
	}{
		{"bad start date", dto.ApplyLeaveRequest{StartDate: "01/09/2026", EndDate: "2026-09-03", Reason: "family function at home"}},
		{"bad end date", dto.ApplyLeaveRequest{StartDate: "2026-09-01", EndDate: "soon", Reason: "family function at home"}},
		{"end before start", dto.ApplyLeaveRequest{StartDate: "2026-09-03", EndDate: "2026-09-01", Reason: "family function at home"}},
		{"short reason", dto.ApplyLeaveRequest{StartDate: "2026-09-01", EndDate: "2026-09-03", Reason: "sick"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Apply(ctx, 1, &tt.req)
			assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
		})
	}
}

func TestReviewLeave(t *testing.T) {
	svc, _ := newTestLeaveService()
	ctx := context.Background()

	filed, err := svc.Apply(ctx, 1, &dto.ApplyLeaveRequest{
		StartDate: "2026-09-01", EndDate: "2026-09-01", Reason: "medical appointment",
	})
	require.NoError(t, err)

	reviewed, err := svc.Review(ctx, filed.ID, 9, &dto.ReviewLeaveRequest{
		Status: models.LeaveApproved, AdminRemarks: "ok",
	})
	require.NoError(t, err)
	assert.Equal(t, string(models.LeaveApproved), reviewed.Status)
	require.NotNil(t, reviewed.ApprovedBy)
	assert.Equal(t, int64(9), *reviewed.ApprovedBy)
	assert.NotNil(t, reviewed.ApprovedAt)

	// A decided request cannot be reviewed again
	_, err = svc.Review(ctx, filed.ID, 9, &dto.ReviewLeaveRequest{Status: models.LeaveRejected})
	assert.ErrorIs(t, err, apperrors.ErrConflict)
}

func TestReviewLeaveInvalidStatus(t *testing.T) {
	svc, _ := newTestLeaveService()
	ctx := context.Background()

	filed, err := svc.Apply(ctx, 1, &dto.ApplyLeaveRequest{
		StartDate: "2026-09-01", EndDate: "2026-09-01", Reason: "medical appointment",
	})
	require.NoError(t, err)

	_, err = svc.Review(ctx, filed.ID, 9, &dto.ReviewLeaveRequest{Status: models.LeavePending})
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
}

func TestCancelLeave(t *testing.T) {
	svc, _ := newTestLeaveService()
	ctx := context.Background()

	filed, err := svc.Apply(ctx, 1, &dto.ApplyLeaveRequest{
		StartDate: "2026-09-01", EndDate: "2026-09-01", Reason: "medical appointment",
	})
	require.NoError(t, err)

	require.NoError(t, svc.Cancel(ctx, filed.ID))
	_, err = svc.GetByID(ctx, filed.ID)
	assert.ErrorIs(t, err, apperrors.ErrResourceNotFound)
}

func TestCancelDecidedLeave(t *testing.T) {
	svc, _ := newTestLeaveService()
	ctx := context.Background()

	filed, err := svc.Apply(ctx, 1, &dto.ApplyLeaveRequest{
		StartDate: "2026-09-01", EndDate: "2026-09-01", Reason: "medical appointment",
	})
	require.NoError(t, err)

	_, err = svc.Review(ctx, filed.ID, 9, &dto.ReviewLeaveRequest{Status: models.LeaveApproved})
	require.NoError(t, err)

	err = svc.Cancel(ctx, filed.ID)
	assert.ErrorIs(t, err, apperrors.ErrConflict)
}

func TestListLeavesByRole(t *testing.T) {
	svc, users := newTestLeaveService()
	ctx := context.Background()

	csStudent := seedAccount(t, users, "cs.student@example.edu", models.RoleStudent, "Computer Science")
	mecStudent := seedAccount(t, users, "mec.student@example.edu", models.RoleStudent, "Mechanical")
	csHead := seedAccount(t, users, "cs.head@example.edu", models.RoleHead, "Computer Science")

	_, err := svc.Apply(ctx, csStudent, &dto.ApplyLeaveRequest{
		StartDate: "2026-09-01", EndDate: "2026-09-01", Reason: "medical appointment",
	})
	require.NoError(t, err)
	_, err = svc.Apply(ctx, mecStudent, &dto.ApplyLeaveRequest{
		StartDate: "2026-09-02", EndDate: "2026-09-02", Reason: "family function at home",
	})
	require.NoError(t, err)

	own, err := svc.List(ctx, csStudent, models.RoleStudent, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, own.Count)

	// A head only sees requests filed within their own department
	scoped, err := svc.List(ctx, csHead, models.RoleHead, nil)
	require.NoError(t, err)
	require.Equal(t, 1, scoped.Count)
	assert.Equal(t, csStudent, scoped.Leaves[0].UserID)
}

func TestListLeavesStatusFilter(t *testing.T) {
	svc, users := newTestLeaveService()
	ctx := context.Background()

	student := seedAccount(t, users, "student@example.edu", models.RoleStudent, "Computer Science")
	head := seedAccount(t, users, "head@example.edu", models.RoleHead, "Computer Science")

	first, err := svc.Apply(ctx, student, &dto.ApplyLeaveRequest{
		StartDate: "2026-09-01", EndDate: "2026-09-01", Reason: "medical appointment",
	})
	require.NoError(t, err)
	_, err = svc.Apply(ctx, student, &dto.ApplyLeaveRequest{
		StartDate: "2026-09-02", EndDate: "2026-09-02", Reason: "family function at home",
	})
	require.NoError(t, err)

	_, err = svc.Review(ctx, first.ID, head, &dto.ReviewLeaveRequest{Status: models.LeaveApproved})
	require.NoError(t, err)

	approved, err := svc.List(ctx, student, models.RoleStudent, &dto.ListLeavesQuery{Status: "approved"})
	require.NoError(t, err)
	require.Equal(t, 1, approved.Count)
	assert.Equal(t, string(models.LeaveApproved), approved.Leaves[0].Status)

	pending, err := svc.List(ctx, head, models.RoleHead, &dto.ListLeavesQuery{Status: "pending"})
	require.NoError(t, err)
	require.Equal(t, 1, pending.Count)
	assert.Equal(t, string(models.LeavePending), pending.Leaves[0].Status)

	_, err = svc.List(ctx, student, models.RoleStudent, &dto.ListLeavesQuery{Status: "maybe"})
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
}

func TestListLeavesPagination(t *testing.T) {
	svc, users := newTestLeaveService()
	ctx := context.Background()

	student := seedAccount(t, users, "student@example.edu", models.RoleStudent, "Computer Science")

	dates := []string{"2026-09-01", "2026-09-02", "2026-09-03"}
	for _, d := range dates {
		_, err := svc.Apply(ctx, student, &dto.ApplyLeaveRequest{
			StartDate: d, EndDate: d, Reason: "medical appointment",
		})
		require.NoError(t, err)
	}

	page1, err := svc.List(ctx, student, models.RoleStudent, &dto.ListLeavesQuery{Limit: 2, Page: 1})
	require.NoError(t, err)
	assert.Equal(t, 2, page1.Count)

	page2, err := svc.List(ctx, student, models.RoleStudent, &dto.ListLeavesQuery{Limit: 2, Page: 2})
	require.NoError(t, err)
	require.Equal(t, 1, page2.Count)

	// Newest first: the last page holds the earliest request
	assert.Equal(t, "2026-09-01", page2.Leaves[0].StartDate)
}
