// Package controllers handles HTTP request handling
package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/attendtrack/attendtrack/internal/app/models"
	"github.com/attendtrack/attendtrack/internal/app/models/dto"
	"github.com/attendtrack/attendtrack/internal/app/services"
	"github.com/attendtrack/attendtrack/internal/middleware"
)

// AuthController handles authentication related operations
type AuthController struct {
	authService *services.AuthService
	logger      zerolog.Logger
}

// NewAuthController creates a new AuthController
func NewAuthController(authService *services.AuthService, logger zerolog.Logger) *AuthController {
	return &AuthController{
		authService: authService,
		logger:      logger,
	}
}

// ValidateHodID checks a pre-provisioned head identifier
// @Summary Validate a head identifier
// @Description Reports whether a head identifier exists, which department it belongs to, and whether it has already been claimed. Reading never changes the identifier's state.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.ValidateHodIDRequest true "Head identifier to check"
// @Success 200 {object} dto.APIResponse{data=dto.ValidateHodIDResponse}
// @Failure 400 {object} dto.APIResponse "Missing identifier"
// @Failure 404 {object} dto.APIResponse "Unknown identifier"
// @Router /auth/validate-hod-id [post]
func (c *AuthController) ValidateHodID(ctx *gin.Context) {
	var req dto.ValidateHodIDRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		bindError(ctx, err)
		return
	}

	resp, err := c.authService.ValidateHeadIdentity(ctx.Request.Context(), req.HodID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resp, ""))
}

// Register handles account registration for both roles
// @Summary Register a new account
// @Description Creates a student account, or claims a pre-provisioned head identifier when role is hod. The role field selects which registration runs.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.RegisterRequest true "Registration information"
// @Success 201 {object} dto.APIResponse{data=dto.AuthResponse}
// @Failure 400 {object} dto.APIResponse "Validation failure"
// @Failure 404 {object} dto.APIResponse "Unknown head identifier"
// @Failure 409 {object} dto.APIResponse "Email, roll number or identifier already taken"
// @Router /auth/register [post]
func (c *AuthController) Register(ctx *gin.Context) {
	var req dto.RegisterRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		bindError(ctx, err)
		return
	}

	if !req.Role.Valid() {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.NewErrorDetail(
			dto.ErrorCodeValidationFailed, "role must be student or hod")))
		return
	}

	var (
		resp *dto.AuthResponse
		err  error
	)
	if req.Role == models.RoleHead {
		resp, err = c.authService.RegisterHead(ctx.Request.Context(), &dto.RegisterHeadRequest{
			Name:       req.Name,
			Email:      req.Email,
			Password:   req.Password,
			Department: req.Department,
			HodID:      req.HodID,
		})
	} else {
		resp, err = c.authService.RegisterStudent(ctx.Request.Context(), &dto.RegisterStudentRequest{
			Name:       req.Name,
			Email:      req.Email,
			Password:   req.Password,
			RollNumber: req.RollNumber,
			Department: req.Department,
		})
	}
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(resp, "Registration successful"))
}

// Login handles authentication for both roles
// @Summary Log in
// @Description Authenticates a student by email or a head by head identifier and returns a bearer token.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "Login credentials"
// @Success 200 {object} dto.APIResponse{data=dto.AuthResponse}
// @Failure 401 {object} dto.APIResponse "Invalid credentials"
// @Router /auth/login [post]
func (c *AuthController) Login(ctx *gin.Context) {
	var req dto.LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		bindError(ctx, err)
		return
	}

	if !req.Role.Valid() {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.NewErrorDetail(
			dto.ErrorCodeValidationFailed, "role must be student or hod")))
		return
	}

	resp, err := c.authService.Login(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resp, "Login successful"))
}

// Me returns the calling account
// @Summary Get current account
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.UserResponse}
// @Failure 401 {object} dto.APIResponse
// @Router /auth/me [get]
func (c *AuthController) Me(ctx *gin.Context) {
	userID := mustUserID(ctx)
	resp, err := c.authService.GetProfile(ctx.Request.Context(), userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resp, ""))
}

// UpdateProfile updates the calling account's profile
// @Summary Update profile
// @Tags auth
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.UpdateProfileRequest true "Fields to update; empty fields are kept"
// @Success 200 {object} dto.APIResponse{data=dto.UserResponse}
// @Failure 409 {object} dto.APIResponse "Email already in use"
// @Router /auth/profile [put]
func (c *AuthController) UpdateProfile(ctx *gin.Context) {
	var req dto.UpdateProfileRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		bindError(ctx, err)
		return
	}

	userID := mustUserID(ctx)
	resp, err := c.authService.UpdateProfile(ctx.Request.Context(), userID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resp, "Profile updated"))
}

// ChangePassword changes the calling account's password
// @Summary Change password
// @Description Replaces the password after verifying the current one. For heads the change reaches the login identity as well.
// @Tags auth
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.ChangePasswordRequest true "Current and new password"
// @Success 200 {object} dto.APIResponse
// @Failure 401 {object} dto.APIResponse "Current password is wrong"
// @Router /auth/change-password [post]
func (c *AuthController) ChangePassword(ctx *gin.Context) {
	var req dto.ChangePasswordRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		bindError(ctx, err)
		return
	}

	userID := mustUserID(ctx)
	if err := c.authService.ChangePassword(ctx.Request.Context(), userID, &req); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(nil, "Password changed"))
}
