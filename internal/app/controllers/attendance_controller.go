package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/attendtrack/attendtrack/internal/app/models/dto"
	"github.com/attendtrack/attendtrack/internal/app/services"
	"github.com/attendtrack/attendtrack/internal/middleware"
)

// AttendanceController handles daily attendance endpoints
type AttendanceController struct {
	attendanceService *services.AttendanceService
	logger            zerolog.Logger
}

// NewAttendanceController creates a new AttendanceController
func NewAttendanceController(attendanceService *services.AttendanceService, logger zerolog.Logger) *AttendanceController {
	return &AttendanceController{
		attendanceService: attendanceService,
		logger:            logger,
	}
}

// Mark records today's attendance for the caller
// @Summary Mark attendance
// @Tags attendance
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.MarkAttendanceRequest true "Attendance status"
// @Success 201 {object} dto.APIResponse{data=dto.AttendanceResponse}
// @Failure 409 {object} dto.APIResponse "Already marked today"
// @Router /attendance [post]
func (c *AttendanceController) Mark(ctx *gin.Context) {
	var req dto.MarkAttendanceRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		bindError(ctx, err)
		return
	}

	resp, err := c.attendanceService.Mark(ctx.Request.Context(), mustUserID(ctx), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(resp, "Attendance marked"))
}

// List retrieves attendance entries, scoped by role
// @Summary List attendance entries
// @Description Students get their own entries; heads get their department's entries.
// @Tags attendance
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.AttendanceListResponse}
// @Router /attendance [get]
func (c *AttendanceController) List(ctx *gin.Context) {
	resp, err := c.attendanceService.List(ctx.Request.Context(), mustUserID(ctx), mustRole(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resp, ""))
}

// Get retrieves one attendance entry
// @Summary Get an attendance entry
// @Tags attendance
// @Produce json
// @Security BearerAuth
// @Param id path int true "Entry ID"
// @Success 200 {object} dto.APIResponse{data=dto.AttendanceResponse}
// @Failure 403 {object} dto.APIResponse "Not the owner"
// @Failure 404 {object} dto.APIResponse
// @Router /attendance/{id} [get]
func (c *AttendanceController) Get(ctx *gin.Context) {
	id, ok := pathID(ctx)
	if !ok {
		return
	}

	resp, err := c.attendanceService.GetByID(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resp, ""))
}
