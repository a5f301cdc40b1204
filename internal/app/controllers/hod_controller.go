package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/attendtrack/attendtrack/internal/app/models/dto"
	"github.com/attendtrack/attendtrack/internal/app/services"
	"github.com/attendtrack/attendtrack/internal/middleware"
)

// HodController handles administrative head account management
type HodController struct {
	hodService *services.HodService
	logger     zerolog.Logger
}

// NewHodController creates a new HodController
func NewHodController(hodService *services.HodService, logger zerolog.Logger) *HodController {
	return &HodController{
		hodService: hodService,
		logger:     logger,
	}
}

// Create creates a head account directly
// @Summary Create a head account
// @Description Creates a head account without a pre-provisioned identity. When hodId is omitted the next identifier in the department sequence is assigned.
// @Tags hods
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateHodRequest true "Head account information"
// @Success 201 {object} dto.APIResponse{data=dto.UserResponse}
// @Failure 409 {object} dto.APIResponse "Email or identifier already taken"
// @Router /hods [post]
func (c *HodController) Create(ctx *gin.Context) {
	var req dto.CreateHodRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		bindError(ctx, err)
		return
	}

	resp, err := c.hodService.CreateHead(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(resp, "Head account created"))
}

// List retrieves all head accounts
// @Summary List head accounts
// @Tags hods
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.HodListResponse}
// @Router /hods [get]
func (c *HodController) List(ctx *gin.Context) {
	resp, err := c.hodService.ListHeads(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resp, ""))
}

// Get retrieves one head account
// @Summary Get a head account
// @Tags hods
// @Produce json
// @Security BearerAuth
// @Param id path int true "Account ID"
// @Success 200 {object} dto.APIResponse{data=dto.UserResponse}
// @Failure 404 {object} dto.APIResponse
// @Router /hods/{id} [get]
func (c *HodController) Get(ctx *gin.Context) {
	id, ok := pathID(ctx)
	if !ok {
		return
	}

	resp, err := c.hodService.GetHead(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resp, ""))
}

// Update updates a head account's profile
// @Summary Update a head account
// @Tags hods
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Account ID"
// @Param request body dto.UpdateHodRequest true "Fields to update"
// @Success 200 {object} dto.APIResponse{data=dto.UserResponse}
// @Failure 404 {object} dto.APIResponse
// @Router /hods/{id} [put]
func (c *HodController) Update(ctx *gin.Context) {
	id, ok := pathID(ctx)
	if !ok {
		return
	}

	var req dto.UpdateHodRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		bindError(ctx, err)
		return
	}

	resp, err := c.hodService.UpdateHead(ctx.Request.Context(), id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resp, "Head account updated"))
}

// ResetPassword sets a new password on a head account
// @Summary Reset a head account's password
// @Tags hods
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Account ID"
// @Param request body dto.ResetHodPasswordRequest true "New password"
// @Success 200 {object} dto.APIResponse
// @Failure 404 {object} dto.APIResponse
// @Router /hods/{id}/reset-password [post]
func (c *HodController) ResetPassword(ctx *gin.Context) {
	id, ok := pathID(ctx)
	if !ok {
		return
	}

	var req dto.ResetHodPasswordRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		bindError(ctx, err)
		return
	}

	if err := c.hodService.ResetPassword(ctx.Request.Context(), id, &req); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(nil, "Password reset"))
}

// Delete removes a head account
// @Summary Delete a head account
// @Tags hods
// @Produce json
// @Security BearerAuth
// @Param id path int true "Account ID"
// @Success 200 {object} dto.APIResponse
// @Failure 404 {object} dto.APIResponse
// @Router /hods/{id} [delete]
func (c *HodController) Delete(ctx *gin.Context) {
	id, ok := pathID(ctx)
	if !ok {
		return
	}

	if err := c.hodService.DeleteHead(ctx.Request.Context(), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(nil, "Head account deleted"))
}
