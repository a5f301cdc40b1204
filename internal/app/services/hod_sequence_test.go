package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/attendtrack/attendtrack/internal/app/models"
)

func TestDepartmentAbbreviation(t *testing.T) {
	tests := []struct {
		department string
		want       string
	}{
		{"Computer Science", "COM"},
		{"cse", "CSE"},
		{"IT", "IT"},
		{"a b", "AB"},
		{"1-2", "GEN"},
		{"", "GEN"},
		{"  Maths ", "MAT"},
	}

	for _, tt := range tests {
		t.Run(tt.department, func(t *testing.T) {
			assert.Equal(t, tt.want, departmentAbbreviation(tt.department))
		})
	}
}

func TestNextSequence(t *testing.T) {
	tests := []struct {
		lastHodID string
		want      int
	}{
		{"HOD_CSE_001", 2},
		{"HOD_CSE_009", 10},
		{"HOD_CSE_999", 1000},
		{"HOD_CSE_", 1},
		{"garbage", 1},
		{"HOD_CSE_abc", 1},
	}

	for _, tt := range tests {
		t.Run(tt.lastHodID, func(t *testing.T) {
			assert.Equal(t, tt.want, nextSequence(tt.lastHodID))
		})
	}
}

func TestNextHeadID(t *testing.T) {
	ctx := context.Background()
	userRepo := newFakeUserRepo()

	id, err := NextHeadID(ctx, userRepo, "Computer Science")
	require.NoError(t, err)
	assert.Equal(t, "HOD_COM_001", id, "first head in a department starts at 1")

	hodID := "HOD_COM_001"
	require.NoError(t, userRepo.Create(ctx, &models.User{
		Name: "Dr. Rao", Email: "rao@example.com", Password: "x",
		Role: models.RoleHead, HodID: &hodID, Department: "Computer Science",
	}))

	id, err = NextHeadID(ctx, userRepo, "Computer Science")
	require.NoError(t, err)
	assert.Equal(t, "HOD_COM_002", id)

	// Other departments keep their own sequences
	id, err = NextHeadID(ctx, userRepo, "Mechanical")
	require.NoError(t, err)
	assert.Equal(t, "HOD_MEC_001", id)
}
