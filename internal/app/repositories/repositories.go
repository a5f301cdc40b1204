package repositories

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/attendtrack/attendtrack/internal/app/models"
)

// IUserRepository defines the interface for account-record database operations
type IUserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id int64) (*models.User, error)
	GetByEmailAndRole(ctx context.Context, email string, role models.RoleType) (*models.User, error)
	GetHeadByHodID(ctx context.Context, hodID string) (*models.User, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	RollNumberExists(ctx context.Context, rollNumber string) (bool, error)
	LastHeadInDepartment(ctx context.Context, department string) (*models.User, error)
	ListHeads(ctx context.Context) ([]*models.User, error)
	UpdateProfile(ctx context.Context, id int64, name, email, department string) error
	UpdatePassword(ctx context.Context, id int64, passwordHash string) error
	Delete(ctx context.Context, id int64) error
}

// IHeadIdentityRepository defines the interface for pre-provisioned
// department-head identity operations
type IHeadIdentityRepository interface {
	Create(ctx context.Context, identity *models.HeadIdentity) error
	GetByHodID(ctx context.Context, hodID string) (*models.HeadIdentity, error)
	RegisterIdentity(ctx context.Context, hodID string, account *models.User) error
	SyncPasswords(ctx context.Context, userID int64, hodID string, passwordHash string) error
}

// IAttendanceRepository defines the interface for attendance entries
type IAttendanceRepository interface {
	Create(ctx context.Context, attendance *models.Attendance) error
	GetByID(ctx context.Context, id int64) (*models.Attendance, error)
	GetOwnerID(ctx context.Context, id int64) (int64, error)
	ListByUser(ctx context.Context, userID int64) ([]*models.Attendance, error)
	ListByDepartment(ctx context.Context, department string) ([]*models.Attendance, error)
}

// LeaveFilter narrows leave listings. A zero Status means any status; Limit
// and Offset page the result.
type LeaveFilter struct {
	Status models.LeaveStatus
	Limit  int
	Offset int
}

// ILeaveRepository defines the interface for leave requests
type ILeaveRepository interface {
	Create(ctx context.Context, leave *models.Leave) error
	GetByID(ctx context.Context, id int64) (*models.Leave, error)
	GetOwnerID(ctx context.Context, id int64) (int64, error)
	ListByUser(ctx context.Context, userID int64, filter LeaveFilter) ([]*models.Leave, error)
	ListByDepartment(ctx context.Context, department string, filter LeaveFilter) ([]*models.Leave, error)
	Review(ctx context.Context, id int64, status models.LeaveStatus, remarks string, approvedBy int64) error
	Delete(ctx context.Context, id int64) error
}

// Repositories bundles all concrete repositories over one pool
type Repositories struct {
	UserRepository         *UserRepository
	HeadIdentityRepository *HeadIdentityRepository
	AttendanceRepository   *AttendanceRepository
	LeaveRepository        *LeaveRepository
}

// NewRepositories creates all repositories
func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		UserRepository:         NewUserRepository(db),
		HeadIdentityRepository: NewHeadIdentityRepository(db),
		AttendanceRepository:   NewAttendanceRepository(db),
		LeaveRepository:        NewLeaveRepository(db),
	}
}
