package services

import (
	"context"
	"sync"
	"time"

	"github.com/attendtrack/attendtrack/internal/app/models"
	"github.com/attendtrack/attendtrack/internal/app/repositories"
	"github.com/attendtrack/attendtrack/internal/pkg/apperrors"
)

// fakeUserRepo is an in-memory IUserRepository enforcing the same uniqueness
// rules as the database schema.
type fakeUserRepo struct {
	mu     sync.Mutex
	users  map[int64]*models.User
	nextID int64
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[int64]*models.User), nextID: 1}
}

func (f *fakeUserRepo) Create(_ context.Context, user *models.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.createLocked(user)
}

func (f *fakeUserRepo) createLocked(user *models.User) error {
	for _, u := range f.users {
		if u.Email == user.Email {
			return apperrors.ErrEmailAlreadyExists
		}
		if user.HodID != nil && u.HodID != nil && *u.HodID == *user.HodID {
			return apperrors.NewConflictError("head identifier already in use")
		}
		if user.Role == models.RoleStudent && u.Role == models.RoleStudent &&
			user.RollNumber != nil && u.RollNumber != nil && *u.RollNumber == *user.RollNumber {
			return apperrors.ErrRollNumberExists
		}
	}

	user.ID = f.nextID
	f.nextID++
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	cp := *user
	f.users[user.ID] = &cp
	return nil
}

func (f *fakeUserRepo) GetByID(_ context.Context, id int64) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUserRepo) GetByEmailAndRole(_ context.Context, email string, role models.RoleType) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Email == email && u.Role == role {
			cp := *u
			return &cp, nil
		}
	}
	return nil, apperrors.ErrUserNotFound
}

func (f *fakeUserRepo) GetHeadByHodID(_ context.Context, hodID string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Role == models.RoleHead && u.HodID != nil && *u.HodID == hodID {
			cp := *u
			return &cp, nil
		}
	}
	return nil, apperrors.ErrUserNotFound
}

func (f *fakeUserRepo) EmailExists(_ context.Context, email string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeUserRepo) RollNumberExists(_ context.Context, rollNumber string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Role == models.RoleStudent && u.RollNumber != nil && *u.RollNumber == rollNumber {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeUserRepo) LastHeadInDepartment(_ context.Context, department string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var last *models.User
	for _, u := range f.users {
		if u.Role != models.RoleHead || u.Department != department {
			continue
		}
		if last == nil || u.ID > last.ID {
			last = u
		}
	}
	if last == nil {
		return nil, apperrors.ErrUserNotFound
	}
	cp := *last
	return &cp, nil
}

func (f *fakeUserRepo) ListHeads(_ context.Context) ([]*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var heads []*models.User
	for id := int64(1); id < f.nextID; id++ {
		if u, ok := f.users[id]; ok && u.Role == models.RoleHead {
			cp := *u
			heads = append(heads, &cp)
		}
	}
	return heads, nil
}

func (f *fakeUserRepo) UpdateProfile(_ context.Context, id int64, name, email, department string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return apperrors.ErrUserNotFound
	}
	u.Name = name
	u.Email = email
	u.Department = department
	return nil
}

func (f *fakeUserRepo) UpdatePassword(_ context.Context, id int64, passwordHash string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return apperrors.ErrUserNotFound
	}
	u.Password = passwordHash
	return nil
}

func (f *fakeUserRepo) Delete(_ context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.users[id]; !ok {
		return apperrors.ErrUserNotFound
	}
	delete(f.users, id)
	return nil
}

// fakeIdentityRepo is an in-memory IHeadIdentityRepository. RegisterIdentity
// and SyncPasswords write to the linked fakeUserRepo the way the real
// transactions do.
type fakeIdentityRepo struct {
	mu       sync.Mutex
	slots    map[string]*models.HeadIdentity
	userRepo *fakeUserRepo
	nextID   int64
}

func newFakeIdentityRepo(userRepo *fakeUserRepo) *fakeIdentityRepo {
	return &fakeIdentityRepo{
		slots:    make(map[string]*models.HeadIdentity),
		userRepo: userRepo,
		nextID:   1,
	}
}

func (f *fakeIdentityRepo) Create(_ context.Context, identity *models.HeadIdentity) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.slots[identity.HodID]; ok {
		return apperrors.NewConflictError("head identifier already provisioned")
	}
	identity.ID = f.nextID
	f.nextID++
	identity.CreatedAt = time.Now()
	cp := *identity
	f.slots[identity.HodID] = &cp
	return nil
}

func (f *fakeIdentityRepo) GetByHodID(_ context.Context, hodID string) (*models.HeadIdentity, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	slot, ok := f.slots[hodID]
	if !ok {
		return nil, apperrors.ErrResourceNotFound
	}
	cp := *slot
	return &cp, nil
}

func (f *fakeIdentityRepo) RegisterIdentity(_ context.Context, hodID string, account *models.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	slot, ok := f.slots[hodID]
	if !ok || slot.IsRegistered {
		return apperrors.ErrAlreadyRegistered
	}

	f.userRepo.mu.Lock()
	err := f.userRepo.createLocked(account)
	f.userRepo.mu.Unlock()
	if err != nil {
		return err
	}

	hash := account.Password
	slot.Password = &hash
	slot.IsRegistered = true
	slot.RegisteredUserID = &account.ID
	return nil
}

func (f *fakeIdentityRepo) SyncPasswords(ctx context.Context, userID int64, hodID string, passwordHash string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	slot, ok := f.slots[hodID]
	if !ok || !slot.IsRegistered {
		return apperrors.NewIntegrityError("registered head account has no registered identity slot")
	}

	if err := f.userRepo.UpdatePassword(ctx, userID, passwordHash); err != nil {
		return err
	}

	hash := passwordHash
	slot.Password = &hash
	return nil
}

// fakeAttendanceRepo is an in-memory IAttendanceRepository enforcing one entry
// per account per day. Department scoping consults the linked fakeUserRepo
// the way the real query joins users.
type fakeAttendanceRepo struct {
	mu       sync.Mutex
	entries  map[int64]*models.Attendance
	userRepo *fakeUserRepo
	nextID   int64
}

func newFakeAttendanceRepo(userRepo *fakeUserRepo) *fakeAttendanceRepo {
	return &fakeAttendanceRepo{
		entries:  make(map[int64]*models.Attendance),
		userRepo: userRepo,
		nextID:   1,
	}
}

func (f *fakeAttendanceRepo) Create(_ context.Context, attendance *models.Attendance) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, e := range f.entries {
		if e.UserID == attendance.UserID && e.Date.Equal(attendance.Date) {
			return apperrors.NewConflictError("attendance already marked for this date")
		}
	}
	attendance.ID = f.nextID
	f.nextID++
	attendance.CreatedAt = time.Now()
	cp := *attendance
	f.entries[attendance.ID] = &cp
	return nil
}

func (f *fakeAttendanceRepo) GetByID(_ context.Context, id int64) (*models.Attendance, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	e, ok := f.entries[id]
	if !ok {
		return nil, apperrors.ErrResourceNotFound
	}
	cp := *e
	return &cp, nil
}

func (f *fakeAttendanceRepo) GetOwnerID(_ context.Context, id int64) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	e, ok := f.entries[id]
	if !ok {
		return 0, apperrors.ErrResourceNotFound
	}
	return e.UserID, nil
}

func (f *fakeAttendanceRepo) ListByUser(_ context.Context, userID int64) ([]*models.Attendance, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*models.Attendance
	for id := int64(1); id < f.nextID; id++ {
		if e, ok := f.entries[id]; ok && e.UserID == userID {
			cp := *e
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (f *fakeAttendanceRepo) ListByDepartment(_ context.Context, department string) ([]*models.Attendance, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.userRepo.mu.Lock()
	defer f.userRepo.mu.Unlock()
	var out []*models.Attendance
	for id := int64(1); id < f.nextID; id++ {
		e, ok := f.entries[id]
		if !ok {
			continue
		}
		if u, ok := f.userRepo.users[e.UserID]; ok && u.Department == department {
			cp := *e
			out = append(out, &cp)
		}
	}
	return out, nil
}

// fakeLeaveRepo is an in-memory ILeaveRepository. Department scoping consults
// the linked fakeUserRepo the way the real query joins users.
type fakeLeaveRepo struct {
	mu       sync.Mutex
	leaves   map[int64]*models.Leave
	userRepo *fakeUserRepo
	nextID   int64
}

func newFakeLeaveRepo(userRepo *fakeUserRepo) *fakeLeaveRepo {
	return &fakeLeaveRepo{
		leaves:   make(map[int64]*models.Leave),
		userRepo: userRepo,
		nextID:   1,
	}
}

func (f *fakeLeaveRepo) Create(_ context.Context, leave *models.Leave) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	leave.ID = f.nextID
	f.nextID++
	leave.CreatedAt = time.Now()
	leave.UpdatedAt = leave.CreatedAt
	cp := *leave
	f.leaves[leave.ID] = &cp
	return nil
}

func (f *fakeLeaveRepo) GetByID(_ context.Context, id int64) (*models.Leave, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	l, ok := f.leaves[id]
	if !ok {
		return nil, apperrors.ErrResourceNotFound
	}
	cp := *l
	return &cp, nil
}

func (f *fakeLeaveRepo) GetOwnerID(_ context.Context, id int64) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	l, ok := f.leaves[id]
	if !ok {
		return 0, apperrors.ErrResourceNotFound
	}
	return l.UserID, nil
}

func (f *fakeLeaveRepo) ListByUser(_ context.Context, userID int64, filter repositories.LeaveFilter) ([]*models.Leave, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*models.Leave
	for id := f.nextID - 1; id >= 1; id-- {
		if l, ok := f.leaves[id]; ok && l.UserID == userID {
			cp := *l
			out = append(out, &cp)
		}
	}
	return applyLeaveFilter(out, filter), nil
}

func (f *fakeLeaveRepo) ListByDepartment(_ context.Context, department string, filter repositories.LeaveFilter) ([]*models.Leave, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.userRepo.mu.Lock()
	defer f.userRepo.mu.Unlock()
	var out []*models.Leave
	for id := f.nextID - 1; id >= 1; id-- {
		l, ok := f.leaves[id]
		if !ok {
			continue
		}
		if u, ok := f.userRepo.users[l.UserID]; ok && u.Department == department {
			cp := *l
			out = append(out, &cp)
		}
	}
	return applyLeaveFilter(out, filter), nil
}

func applyLeaveFilter(leaves []*models.Leave, filter repositories.LeaveFilter) []*models.Leave {
	var out []*models.Leave
	for _, l := range leaves {
		if filter.Status != "" && l.Status != filter.Status {
			continue
		}
		out = append(out, l)
	}
	if filter.Offset > 0 {
		if filter.Offset >= len(out) {
			return nil
		}
		out = out[filter.Offset:]
	}
	if filter.Limit > 0 && len(out) > filter.Limit {
		out = out[:filter.Limit]
	}
	return out
}

func (f *fakeLeaveRepo) Review(_ context.Context, id int64, status models.LeaveStatus, remarks string, approvedBy int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	l, ok := f.leaves[id]
	if !ok || l.Status != models.LeavePending {
		return apperrors.NewConflictError("leave request is not pending")
	}
	now := time.Now()
	l.Status = status
	l.AdminRemarks = remarks
	l.ApprovedBy = &approvedBy
	l.ApprovedAt = &now
	l.UpdatedAt = now
	return nil
}

func (f *fakeLeaveRepo) Delete(_ context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.leaves[id]; !ok {
		return apperrors.ErrResourceNotFound
	}
	delete(f.leaves, id)
	return nil
}
