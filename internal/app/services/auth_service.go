package services

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/rs/zerolog"

	"github.com/attendtrack/attendtrack/internal/app/models"
	"github.com/attendtrack/attendtrack/internal/app/models/dto"
	"github.com/attendtrack/attendtrack/internal/app/repositories"
	"github.com/attendtrack/attendtrack/internal/pkg/apperrors"
	"github.com/attendtrack/attendtrack/internal/pkg/auth"
)

// MinPasswordLength is the shortest accepted password.
const MinPasswordLength = 6

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// AuthService handles registration, login and profile operations
type AuthService struct {
	userRepo     repositories.IUserRepository
	identityRepo repositories.IHeadIdentityRepository
	jwtService   *auth.JWTService
	logger       zerolog.Logger
}

// NewAuthService creates a new AuthService
func NewAuthService(
	userRepo repositories.IUserRepository,
	identityRepo repositories.IHeadIdentityRepository,
	jwtService *auth.JWTService,
	logger zerolog.Logger,
) *AuthService {
	return &AuthService{
		userRepo:     userRepo,
		identityRepo: identityRepo,
		jwtService:   jwtService,
		logger:       logger,
	}
}

func validateEmail(email string) error {
	if strings.TrimSpace(email) == "" {
		return apperrors.NewValidationError("email is required")
	}
	if !emailRegex.MatchString(email) {
		return apperrors.NewValidationError("invalid email format")
	}
	return nil
}

func validatePassword(password string) error {
	if password == "" {
		return apperrors.NewValidationError("password is required")
	}
	if len(password) < MinPasswordLength {
		return apperrors.NewValidationError(
			fmt.Sprintf("password must be at least %d characters", MinPasswordLength))
	}
	return nil
}

// ValidateHeadIdentity checks the state of a pre-provisioned head identifier.
// The slot can be read any number of times; only registration mutates it.
func (s *AuthService) ValidateHeadIdentity(ctx context.Context, hodID string) (*dto.ValidateHodIDResponse, error) {
	hodID = strings.TrimSpace(hodID)
	if hodID == "" {
		return nil, apperrors.NewValidationError("head identifier is required")
	}

	identity, err := s.identityRepo.GetByHodID(ctx, hodID)
	if err != nil {
		if errors.Is(err, apperrors.ErrResourceNotFound) {
			return nil, apperrors.NewNotFoundError("head identifier not found")
		}
		return nil, err
	}

	if identity.IsRegistered {
		return &dto.ValidateHodIDResponse{
			Valid:             false,
			Department:        identity.Department,
			AlreadyRegistered: true,
		}, nil
	}

	return &dto.ValidateHodIDResponse{
		Valid:             true,
		Department:        identity.Department,
		AlreadyRegistered: false,
	}, nil
}

// RegisterStudent creates a student account. The checks run as an explicit
// pipeline: input validation, then uniqueness, then hashing, then persist.
func (s *AuthService) RegisterStudent(ctx context.Context, req *dto.RegisterStudentRequest) (*dto.AuthResponse, error) {
	if err := validateEmail(req.Email); err != nil {
		return nil, err
	}
	if err := validatePassword(req.Password); err != nil {
		return nil, err
	}
	if strings.TrimSpace(req.Name) == "" {
		return nil, apperrors.NewValidationError("name is required for student registration")
	}
	if strings.TrimSpace(req.RollNumber) == "" {
		return nil, apperrors.NewValidationError("roll number is required for student registration")
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	exists, err := s.userRepo.EmailExists(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("error checking email: %w", err)
	}
	if exists {
		return nil, apperrors.ErrEmailAlreadyExists
	}

	// Roll-number uniqueness only consults other students
	exists, err = s.userRepo.RollNumberExists(ctx, req.RollNumber)
	if err != nil {
		return nil, fmt.Errorf("error checking roll number: %w", err)
	}
	if exists {
		return nil, apperrors.ErrRollNumberExists
	}

	hashedPassword, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	rollNumber := strings.TrimSpace(req.RollNumber)
	user := &models.User{
		Name:       strings.TrimSpace(req.Name),
		Email:      email,
		Password:   hashedPassword,
		Role:       models.RoleStudent,
		RollNumber: &rollNumber,
		Department: strings.TrimSpace(req.Department),
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info().Int64("userID", user.ID).Str("email", user.Email).Msg("Student registered")

	return s.generateAuthResponse(user)
}

// RegisterHead registers an account against a pre-provisioned identity slot.
// The account insert and the slot transition commit atomically; the slot can
// only go unregistered -> registered once.
func (s *AuthService) RegisterHead(ctx context.Context, req *dto.RegisterHeadRequest) (*dto.AuthResponse, error) {
	if err := validateEmail(req.Email); err != nil {
		return nil, err
	}
	if err := validatePassword(req.Password); err != nil {
		return nil, err
	}
	hodID := strings.TrimSpace(req.HodID)
	if hodID == "" {
		return nil, apperrors.NewValidationError("head identifier is required for head registration")
	}
	if strings.TrimSpace(req.Department) == "" {
		return nil, apperrors.NewValidationError("department is required for head registration")
	}

	identity, err := s.identityRepo.GetByHodID(ctx, hodID)
	if err != nil {
		if errors.Is(err, apperrors.ErrResourceNotFound) {
			return nil, apperrors.NewNotFoundError("head identifier not found")
		}
		return nil, err
	}

	if identity.IsRegistered {
		return nil, apperrors.ErrAlreadyRegistered
	}

	if identity.Department != strings.TrimSpace(req.Department) {
		return nil, apperrors.ErrDepartmentMismatch
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

	// The slot's provisioned name wins over anything submitted
	name := identity.Name
	if name == "" {
		name = strings.TrimSpace(req.Name)
	}
	if name == "" {
		name = "HOD"
	}

	user := &models.User{
		Name:       name,
		Email:      email,
		Password:   hashedPassword,
		Role:       models.RoleHead,
		HodID:      &identity.HodID,
		Department: identity.Department,
	}

	if err := s.identityRepo.RegisterIdentity(ctx, hodID, user); err != nil {
		return nil, err
	}

	s.logger.Info().Int64("userID", user.ID).Str("hodId", hodID).Msg("Head registered")

	return s.generateAuthResponse(user)
}

// Login authenticates either role. Students authenticate by email against
// the account record; heads authenticate by head identifier against the
// identity slot's hash. Every failure reads the same to the caller.
func (s *AuthService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error) {
	identifier := strings.TrimSpace(req.Identifier)
	if identifier == "" || req.Password == "" {
		return nil, apperrors.NewValidationError("identifier and password are required")
	}

	if req.Role == models.RoleHead {
		return s.loginHead(ctx, identifier, req.Password)
	}
	return s.loginStudent(ctx, identifier, req.Password)
}

func (s *AuthService) loginStudent(ctx context.Context, email, password string) (*dto.AuthResponse, error) {
	user, err := s.userRepo.GetByEmailAndRole(ctx, strings.ToLower(email), models.RoleStudent)
	if err != nil {
		return nil, apperrors.ErrInvalidCredentials
	}

	if !auth.CheckPassword(user.Password, password) {
		return nil, apperrors.ErrInvalidCredentials
	}

	return s.generateAuthResponse(user)
}

func (s *AuthService) loginHead(ctx context.Context, hodID, password string) (*dto.AuthResponse, error) {
	identity, err := s.identityRepo.GetByHodID(ctx, hodID)
	if err != nil {
		return nil, apperrors.ErrInvalidCredentials
	}

	// Unregistered slots have no hash and cannot log in
	if identity.Password == nil {
		return nil, apperrors.ErrInvalidCredentials
	}

	// The identity slot's hash is authoritative for head login
	if !auth.CheckPassword(*identity.Password, password) {
		return nil, apperrors.ErrInvalidCredentials
	}

	user, err := s.userRepo.GetHeadByHodID(ctx, hodID)
	if err != nil {
		// A registered slot without its linked account is a broken invariant
		s.logger.Error().Str("hodId", hodID).Msg("Registered head identity has no linked account")
		return nil, apperrors.ErrInvalidCredentials
	}

	return s.generateAuthResponse(user)
}

// GetProfile retrieves the account for the given id
func (s *AuthService) GetProfile(ctx context.Context, userID int64) (*dto.UserResponse, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return dto.NewUserResponse(user), nil
}

// UpdateProfile updates name, email and department of the calling account.
// Empty fields keep their current values.
func (s *AuthService) UpdateProfile(ctx context.Context, userID int64, req *dto.UpdateProfileRequest) (*dto.UserResponse, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
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

	if err := s.userRepo.UpdateProfile(ctx, userID, name, email, department); err != nil {
		return nil, err
	}

	user.Name = name
	user.Email = email
	user.Department = department
	return dto.NewUserResponse(user), nil
}

// ChangePassword replaces the caller's password after verifying the current
// one. For heads the identity slot's hash is rewritten in the same commit,
// because head login checks the slot, not the account.
func (s *AuthService) ChangePassword(ctx context.Context, userID int64, req *dto.ChangePasswordRequest) error {
	if req.CurrentPassword == "" || req.NewPassword == "" {
		return apperrors.NewValidationError("current and new password are required")
	}
	if err := validatePassword(req.NewPassword); err != nil {
		return err
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}

	if !auth.CheckPassword(user.Password, req.CurrentPassword) {
		return apperrors.ErrInvalidCredentials
	}

	hashedPassword, err := auth.HashPassword(req.NewPassword)
	if err != nil {
		return fmt.Errorf("error hashing password: %w", err)
	}

	if user.IsHead() && user.HodID != nil {
		return s.identityRepo.SyncPasswords(ctx, userID, *user.HodID, hashedPassword)
	}

	return s.userRepo.UpdatePassword(ctx, userID, hashedPassword)
}

func (s *AuthService) generateAuthResponse(user *models.User) (*dto.AuthResponse, error) {
	token, expiresIn, err := s.jwtService.GenerateToken(user.ID, string(user.Role))
	if err != nil {
		return nil, fmt.Errorf("token generation error: %w", err)
	}

	return &dto.AuthResponse{
		User: dto.NewUserResponse(user),
		Token: dto.TokenResponse{
			Token:     token,
			TokenType: "Bearer",
			ExpiresIn: expiresIn,
		},
	}, nil
}
