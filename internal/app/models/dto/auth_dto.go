package dto

import "github.com/attendtrack/attendtrack/internal/app/models"

// RegisterRequest is the wire envelope for registration. The role selects
// which typed registration the service actually runs; controllers split it
// into RegisterStudentRequest or RegisterHeadRequest.
type RegisterRequest struct {
	Role       models.RoleType `json:"role"`
	Name       string          `json:"name"`
	Email      string          `json:"email" binding:"required"`
	Password   string          `json:"password" binding:"required"`
	RollNumber string          `json:"rollNumber"`
	Department string          `json:"department"`
	HodID      string          `json:"hodId"`
}

// RegisterStudentRequest carries the fields student registration requires.
type RegisterStudentRequest struct {
	Name       string
	Email      string
	Password   string
	RollNumber string
	Department string
}

// RegisterHeadRequest carries the fields head registration requires.
type RegisterHeadRequest struct {
	Name       string
	Email      string
	Password   string
	Department string
	HodID      string
}

// LoginRequest represents login credentials. Identifier is an email for
// students and a head identifier for heads.
type LoginRequest struct {
	Role       models.RoleType `json:"role"`
	Identifier string          `json:"identifier" binding:"required"`
	Password   string          `json:"password" binding:"required"`
}

// ValidateHodIDRequest asks whether a pre-provisioned head identifier exists.
type ValidateHodIDRequest struct {
	HodID string `json:"hodId" binding:"required"`
}

// ValidateHodIDResponse reports the state of a pre-provisioned head identifier.
type ValidateHodIDResponse struct {
	Valid             bool   `json:"valid"`
	Department        string `json:"department,omitempty"`
	AlreadyRegistered bool   `json:"alreadyRegistered"`
}

// TokenResponse represents an issued bearer token
type TokenResponse struct {
	Token     string `json:"token"`
	TokenType string `json:"tokenType" example:"Bearer"`
	ExpiresIn int64  `json:"expiresIn"`
}

// AuthResponse represents a successful registration or login
type AuthResponse struct {
	User  *UserResponse `json:"user"`
	Token TokenResponse `json:"token"`
}

// UserResponse represents account information without credentials
type UserResponse struct {
	ID         int64   `json:"id"`
	Name       string  `json:"name"`
	Email      string  `json:"email"`
	Role       string  `json:"role"`
	HodID      *string `json:"hodId,omitempty"`
	RollNumber *string `json:"rollNumber,omitempty"`
	Department string  `json:"department,omitempty"`
}

// NewUserResponse maps an account record to its outward representation.
func NewUserResponse(user *models.User) *UserResponse {
	if user == nil {
		return nil
	}
	return &UserResponse{
		ID:         user.ID,
		Name:       user.Name,
		Email:      user.Email,
		Role:       string(user.Role),
		HodID:      user.HodID,
		RollNumber: user.RollNumber,
		Department: user.Department,
	}
}

// UpdateProfileRequest represents profile update data
type UpdateProfileRequest struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Department string `json:"department"`
}

// ChangePasswordRequest represents a password change for the logged-in account
type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" binding:"required"`
	NewPassword     string `json:"newPassword" binding:"required"`
}
