package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/attendtrack/attendtrack/internal/app/models"
	"github.com/attendtrack/attendtrack/internal/app/models/dto"
	"github.com/attendtrack/attendtrack/internal/middleware"
)

func bindError(ctx *gin.Context, err error) {
	ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.NewErrorDetail(
		dto.ErrorCodeValidationFailed, "Invalid request payload: "+err.Error())))
}

// mustUserID reads the account id set by the auth middleware. Routes using it
// always run behind JWTAuth, so a missing value is a wiring bug.
func mustUserID(ctx *gin.Context) int64 {
	v, _ := ctx.Get(middleware.ContextUserID)
	id, _ := v.(int64)
	return id
}

func mustRole(ctx *gin.Context) models.RoleType {
	v, _ := ctx.Get(middleware.ContextRole)
	role, _ := v.(models.RoleType)
	return role
}

func pathID(ctx *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.NewErrorDetail(
			dto.ErrorCodeValidationFailed, "Invalid id parameter")))
		return 0, false
	}
	return id, true
}
