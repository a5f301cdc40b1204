package routes

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/attendtrack/attendtrack/internal/app/controllers"
	"github.com/attendtrack/attendtrack/internal/app/models"
	"github.com/attendtrack/attendtrack/internal/app/repositories"
	"github.com/attendtrack/attendtrack/internal/app/services"
	"github.com/attendtrack/attendtrack/internal/middleware"
	"github.com/attendtrack/attendtrack/internal/pkg/apperrors"
	pkgAuth "github.com/attendtrack/attendtrack/internal/pkg/auth"
)

// stubUserRepo backs JWTAuth's live-account lookup with a fixed account set.
type stubUserRepo struct {
	users map[int64]*models.User
}

func (s *stubUserRepo) Create(context.Context, *models.User) error { return nil }

func (s *stubUserRepo) GetByID(_ context.Context, id int64) (*models.User, error) {
	u, ok := s.users[id]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	return u, nil
}

func (s *stubUserRepo) GetByEmailAndRole(context.Context, string, models.RoleType) (*models.User, error) {
	return nil, apperrors.ErrUserNotFound
}

func (s *stubUserRepo) GetHeadByHodID(context.Context, string) (*models.User, error) {
	return nil, apperrors.ErrUserNotFound
}

func (s *stubUserRepo) EmailExists(context.Context, string) (bool, error)      { return false, nil }
func (s *stubUserRepo) RollNumberExists(context.Context, string) (bool, error) { return false, nil }

func (s *stubUserRepo) LastHeadInDepartment(context.Context, string) (*models.User, error) {
	return nil, apperrors.ErrUserNotFound
}

func (s *stubUserRepo) ListHeads(context.Context) ([]*models.User, error) { return nil, nil }

func (s *stubUserRepo) UpdateProfile(context.Context, int64, string, string, string) error {
	return nil
}

func (s *stubUserRepo) UpdatePassword(context.Context, int64, string) error { return nil }
func (s *stubUserRepo) Delete(context.Context, int64) error                 { return nil }

type stubIdentityRepo struct{}

func (s *stubIdentityRepo) Create(context.Context, *models.HeadIdentity) error { return nil }

func (s *stubIdentityRepo) GetByHodID(context.Context, string) (*models.HeadIdentity, error) {
	return nil, apperrors.ErrResourceNotFound
}

func (s *stubIdentityRepo) RegisterIdentity(context.Context, string, *models.User) error {
	return nil
}

func (s *stubIdentityRepo) SyncPasswords(context.Context, int64, string, string) error {
	return nil
}

type stubAttendanceRepo struct{}

func (s *stubAttendanceRepo) Create(_ context.Context, a *models.Attendance) error {
	a.ID = 1
	return nil
}

func (s *stubAttendanceRepo) GetByID(context.Context, int64) (*models.Attendance, error) {
	return nil, apperrors.ErrResourceNotFound
}

func (s *stubAttendanceRepo) GetOwnerID(context.Context, int64) (int64, error) {
	return 0, apperrors.ErrResourceNotFound
}

func (s *stubAttendanceRepo) ListByUser(context.Context, int64) ([]*models.Attendance, error) {
	return nil, nil
}

func (s *stubAttendanceRepo) ListByDepartment(context.Context, string) ([]*models.Attendance, error) {
	return nil, nil
}

type stubLeaveRepo struct{}

func (s *stubLeaveRepo) Create(_ context.Context, l *models.Leave) error {
	l.ID = 1
	return nil
}

func (s *stubLeaveRepo) GetByID(context.Context, int64) (*models.Leave, error) {
	return nil, apperrors.ErrResourceNotFound
}

func (s *stubLeaveRepo) GetOwnerID(context.Context, int64) (int64, error) {
	return 0, apperrors.ErrResourceNotFound
}

func (s *stubLeaveRepo) ListByUser(context.Context, int64, repositories.LeaveFilter) ([]*models.Leave, error) {
	return nil, nil
}

func (s *stubLeaveRepo) ListByDepartment(context.Context, string, repositories.LeaveFilter) ([]*models.Leave, error) {
	return nil, nil
}

func (s *stubLeaveRepo) Review(context.Context, int64, models.LeaveStatus, string, int64) error {
	return nil
}

func (s *stubLeaveRepo) Delete(context.Context, int64) error { return nil }

func setupTestRouter(t *testing.T) (*gin.Engine, *pkgAuth.JWTService) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	jwtService := pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:   "route-test-secret",
		TokenExp:    time.Hour,
		TokenIssuer: "attendtrack-test",
	})

	userRepo := &stubUserRepo{users: map[int64]*models.User{
		1: {ID: 1, Email: "student@example.edu", Role: models.RoleStudent, Department: "Computer Science"},
		2: {ID: 2, Email: "head@example.edu", Role: models.RoleHead, Department: "Computer Science"},
	}}
	identityRepo := &stubIdentityRepo{}

	lgr := zerolog.Nop()
	authService := services.NewAuthService(userRepo, identityRepo, jwtService, lgr)
	hodService := services.NewHodService(userRepo, identityRepo, lgr)
	attendanceService := services.NewAttendanceService(&stubAttendanceRepo{}, userRepo, lgr)
	leaveService := services.NewLeaveService(&stubLeaveRepo{}, userRepo, lgr)

	router := gin.New()
	SetupRouter(
		router,
		controllers.NewAuthController(authService, lgr),
		controllers.NewHodController(hodService, lgr),
		controllers.NewAttendanceController(attendanceService, lgr),
		controllers.NewLeaveController(leaveService, lgr),
		middleware.NewAuthMiddleware(jwtService, userRepo),
		&repositories.Repositories{},
	)
	return router, jwtService
}

func doRequest(router *gin.Engine, method, path, token, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Authorization", "Bearer "+token)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestStudentOnlyRoutesRejectHeads(t *testing.T) {
	router, jwtService := setupTestRouter(t)

	headToken, _, err := jwtService.GenerateToken(2, string(models.RoleHead))
	require.NoError(t, err)

	tests := []struct {
		name   string
		method string
		path   string
		body   string
	}{
		{"mark attendance", http.MethodPost, "/api/v1/attendance", `{}`},
		{"apply for leave", http.MethodPost, "/api/v1/leaves", `{"startDate":"2026-09-01","endDate":"2026-09-01","reason":"medical appointment"}`},
		{"cancel leave", http.MethodDelete, "/api/v1/leaves/1", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doRequest(router, tt.method, tt.path, headToken, tt.body)
			assert.Equal(t, http.StatusForbidden, w.Code)
		})
	}
}

func TestStudentOnlyRoutesAcceptStudents(t *testing.T) {
	router, jwtService := setupTestRouter(t)

	studentToken, _, err := jwtService.GenerateToken(1, string(models.RoleStudent))
	require.NoError(t, err)

	w := doRequest(router, http.MethodPost, "/api/v1/attendance", studentToken, `{}`)
	assert.Equal(t, http.StatusCreated, w.Code)

	w = doRequest(router, http.MethodPost, "/api/v1/leaves", studentToken,
		`{"startDate":"2026-09-01","endDate":"2026-09-01","reason":"medical appointment"}`)
	assert.Equal(t, http.StatusCreated, w.Code)
}
