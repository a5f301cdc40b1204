package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/attendtrack/attendtrack/internal/app/models"
	"github.com/attendtrack/attendtrack/internal/app/models/dto"
	"github.com/attendtrack/attendtrack/internal/app/repositories"
	"github.com/attendtrack/attendtrack/internal/pkg/apperrors"
	"github.com/attendtrack/attendtrack/internal/pkg/auth"
)

// idAssignRetries bounds the retry loop when a generated identifier collides
// with a concurrent insert. The unique index on users.hod_id is the backstop;
// the per-department lock makes collisions rare in a single process.
const idAssignRetries = 3

// HodService handles administrative head account management
type HodService struct {
	userRepo     repositories.IUserRepository
	identityRepo repositories.IHeadIdentityRepository
	deptLocks    *departmentLocks
	logger       zerolog.Logger
}

// NewHodService creates a new HodService
func NewHodService(
	userRepo repositories.IUserRepository,
	identityRepo repositories.IHeadIdentityRepository,
	logger zerolog.Logger,
) *HodService {
	return &HodService{
		userRepo:     userRepo,
		identityRepo: identityRepo,
		deptLocks:    newDepartmentLocks(),
		logger:       logger,
	}
}

// CreateHead creates a head account directly, without a pre-provisioned
// identity slot. When no identifier is supplied one is assigned from the
// department sequence, holding the department lock across the whole
// read-generate-insert window.
func (s *HodService) CreateHead(ctx context.Context, req *dto.CreateHodRequest) (*dto.UserResponse, error) {
	if err := validateEmail(req.Email); err != nil {
		return nil, err
	}
	if err := validatePassword(req.Password); err != nil {
		return nil, err
	}
	if strings.TrimSpace(req.Name) == "" {
		return nil, apperrors.NewValidationError("name is required")
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	exists, err := s.userRepo.EmailExists(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("error checking email: %w", err)
	}
	if exists {
		return nil, apperrors.ErrEmailAlreadyExists
	}

	hashedPassword, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	department := strings.TrimSpace(req.Department)
	user := &models.User{
		Name:       strings.TrimSpace(req.Name),
		Email:      email,
		Password:   hashedPassword,
		Role:       models.RoleHead,
		Department: department,
	}

	if hodID := strings.TrimSpace(req.HodID); hodID != "" {
		user.HodID = &hodID
		if err := s.userRepo.Create(ctx, user); err != nil {
			return nil, err
		}
	} else if err := s.createWithGeneratedID(ctx, user, department); err != nil {
		return nil, err
	}

	s.logger.Info().Int64("userID", user.ID).Str("hodId", *user.HodID).Msg("Head account created")
	return dto.NewUserResponse(user), nil
}

func (s *HodService) createWithGeneratedID(ctx context.Context, user *models.User, department string) error {
	unlock := s.deptLocks.lock(department)
	defer unlock()

	for attempt := 0; attempt < idAssignRetries; attempt++ {
		hodID, err := NextHeadID(ctx, s.userRepo, department)
		if err != nil {
			return err
		}

		user.HodID = &hodID
		err = s.userRepo.Create(ctx, user)
		if err == nil {
			return nil
		}

		// Another writer (outside this process) took the identifier;
		// re-read the sequence and try the next one.
		var custom *apperrors.CustomError
		if errors.As(err, &custom) && errors.Is(err, apperrors.ErrConflict) &&
			strings.Contains(custom.Message, "head identifier") {
			continue
		}
		return err
	}

	return apperrors.NewConflictError("could not assign a head identifier, try again")
}

// ListHeads retrieves all head accounts
func (s *HodService) ListHeads(ctx context.Context) (*dto.HodListResponse, error) {
	heads, err := s.userRepo.ListHeads(ctx)
	if err != nil {
		return nil, err
	}

	resp := &dto.HodListResponse{
		Count: len(heads),
		Hods:  make([]*dto.UserResponse, 0, len(heads)),
	}
	for _, h := range heads {
		resp.Hods = append(resp.Hods, dto.NewUserResponse(h))
	}
	return resp, nil
}

// GetHead retrieves one head account
func (s *HodService) GetHead(ctx context.Context, id int64) (*dto.UserResponse, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !user.IsHead() {
		return nil, apperrors.ErrUserNotFound
	}
	return dto.NewUserResponse(user), nil
}

// UpdateHead updates a head account's profile fields
func (s *HodService) UpdateHead(ctx context.Context, id int64, req *dto.UpdateHodRequest) (*dto.UserResponse, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !user.IsHead() {
		return nil, apperrors.ErrUserNotFound
	}

	name := user.Name
	if strings.TrimSpace(req.Name) != "" {
		name = strings.TrimSpace(req.Name)
	}

	email := user.Email
	if strings.TrimSpace(req.Email) != "" {
		newEmail := strings.ToLower(strings.TrimSpace(req.Email))
		if err := validateEmail(newEmail); err != nil {
			return nil, err
		}
		if newEmail != user.Email {
			exists, err := s.userRepo.EmailExists(ctx, newEmail)
			if err != nil {
				return nil, fmt.Errorf("error checking email: %w", err)
			}
			if exists {
				return nil, apperrors.ErrEmailAlreadyExists
			}
		}
		email = newEmail
	}

	department := user.Department
	if strings.TrimSpace(req.Department) != "" {
		department = strings.TrimSpace(req.Department)
	}

	if err := s.userRepo.UpdateProfile(ctx, id, name, email, department); err != nil {
		return nil, err
	}

	user.Name = name
	user.Email = email
	user.Department = department
	return dto.NewUserResponse(user), nil
}

// ResetPassword sets a new password for a head account without knowing the
// current one. When the account came from a pre-provisioned identity slot the
// slot's hash is rewritten too, so head login keeps working.
func (s *HodService) ResetPassword(ctx context.Context, id int64, req *dto.ResetHodPasswordRequest) error {
	if err := validatePassword(req.NewPassword); err != nil {
		return err
	}

	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !user.IsHead() {
		return apperrors.ErrUserNotFound
	}

	hashedPassword, err := auth.HashPassword(req.NewPassword)
	if err != nil {
		return fmt.Errorf("error hashing password: %w", err)
	}

	if user.HodID != nil {
		if _, err := s.identityRepo.GetByHodID(ctx, *user.HodID); err == nil {
			return s.identityRepo.SyncPasswords(ctx, id, *user.HodID, hashedPassword)
		} else if !errors.Is(err, apperrors.ErrResourceNotFound) {
			return err
		}
		// Directly-created heads have no identity slot; only the account
		// hash exists.
	}

	return s.userRepo.UpdatePassword(ctx, id, hashedPassword)
}

// DeleteHead removes a head account. Tokens it issued die with it because
// every authenticated request resolves the live account.
func (s *HodService) DeleteHead(ctx context.Context, id int64) error {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !user.IsHead() {
		return apperrors.ErrUserNotFound
	}

	if err := s.userRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info().Int64("userID", id).Msg("Head account deleted")
	return nil
}
