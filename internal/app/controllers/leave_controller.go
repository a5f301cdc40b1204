package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/attendtrack/attendtrack/internal/app/models/dto"
	"github.com/attendtrack/attendtrack/internal/app/services"
	"github.com/attendtrack/attendtrack/internal/middleware"
)

// LeaveController handles leave request endpoints
type LeaveController struct {
	leaveService *services.LeaveService
	logger       zerolog.Logger
}

// NewLeaveController creates a new LeaveController
func NewLeaveController(leaveService *services.LeaveService, logger zerolog.Logger) *LeaveController {
	return &LeaveController{
		leaveService: leaveService,
		logger:       logger,
	}
}

// Apply files a new leave request
// @Summary Apply for leave
// @Tags leaves
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.ApplyLeaveRequest true "Leave dates and reason"
// @Success 201 {object} dto.APIResponse{data=dto.LeaveResponse}
// @Failure 400 {object} dto.APIResponse "Bad dates or reason too short"
// @Router /leaves [post]
func (c *LeaveController) Apply(ctx *gin.Context) {
	var req dto.ApplyLeaveRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		bindError(ctx, err)
		return
	}

	resp, err := c.leaveService.Apply(ctx.Request.Context(), mustUserID(ctx), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(resp, "Leave request filed"))
}

// List retrieves leave requests, scoped by role
// @Summary List leave requests
// @Description Students get their own requests; heads get their department's.
// @Tags leaves
// @Produce json
// @Security BearerAuth
// @Param status query string false "Filter by status (pending, approved, rejected)"
// @Param limit query int false "Page size (default 50, max 200)"
// @Param page query int false "Page number, starting at 1"
// @Success 200 {object} dto.APIResponse{data=dto.LeaveListResponse}
// @Failure 400 {object} dto.APIResponse "Unknown status"
// @Router /leaves [get]
func (c *LeaveController) List(ctx *gin.Context) {
	var query dto.ListLeavesQuery
	if err := ctx.ShouldBindQuery(&query); err != nil {
		bindError(ctx, err)
		return
	}

	resp, err := c.leaveService.List(ctx.Request.Context(), mustUserID(ctx), mustRole(ctx), &query)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resp, ""))
}

// Get retrieves one leave request
// @Summary Get a leave request
// @Tags leaves
// @Produce json
// @Security BearerAuth
// @Param id path int true "Leave request ID"
// @Success 200 {object} dto.APIResponse{data=dto.LeaveResponse}
// @Failure 403 {object} dto.APIResponse "Not the owner"
// @Failure 404 {object} dto.APIResponse
// @Router /leaves/{id} [get]
func (c *LeaveController) Get(ctx *gin.Context) {
	id, ok := pathID(ctx)
	if !ok {
		return
	}

	resp, err := c.leaveService.GetByID(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resp, ""))
}

// Review approves or rejects a pending leave request
// @Summary Review a leave request
// @Tags leaves
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Leave request ID"
// @Param request body dto.ReviewLeaveRequest true "Decision and remarks"
// @Success 200 {object} dto.APIResponse{data=dto.LeaveResponse}
// @Failure 409 {object} dto.APIResponse "Request is not pending"
// @Router /leaves/{id}/review [post]
func (c *LeaveController) Review(ctx *gin.Context) {
	id, ok := pathID(ctx)
	if !ok {
		return
	}

	var req dto.ReviewLeaveRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		bindError(ctx, err)
		return
	}

	resp, err := c.leaveService.Review(ctx.Request.Context(), id, mustUserID(ctx), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resp, "Leave request reviewed"))
}

// Cancel withdraws a pending leave request
// @Summary Cancel a leave request
// @Tags leaves
// @Produce json
// @Security BearerAuth
// @Param id path int true "Leave request ID"
// @Success 200 {object} dto.APIResponse
// @Failure 409 {object} dto.APIResponse "Request already decided"
// @Router /leaves/{id} [delete]
func (c *LeaveController) Cancel(ctx *gin.Context) {
	id, ok := pathID(ctx)
	if !ok {
		return
	}

	if err := c.leaveService.Cancel(ctx.Request.Context(), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(nil, "Leave request cancelled"))
}
