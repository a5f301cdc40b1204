package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/attendtrack/attendtrack/internal/app/controllers"
	"github.com/attendtrack/attendtrack/internal/app/models"
	"github.com/attendtrack/attendtrack/internal/app/repositories"
	"github.com/attendtrack/attendtrack/internal/middleware"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	authController *controllers.AuthController,
	hodController *controllers.HodController,
	attendanceController *controllers.AttendanceController,
	leaveController *controllers.LeaveController,
	authMiddleware *middleware.AuthMiddleware,
	repos *repositories.Repositories,
) {
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := router.Group("/api/v1")

	// --- Public auth routes ---
	auth := v1.Group("/auth")
	{
		auth.POST("/validate-hod-id", authController.ValidateHodID)
		auth.POST("/register", authController.Register)
		auth.POST("/login", authController.Login)
	}

	// --- Authenticated routes ---
	authenticated := v1.Group("")
	authenticated.Use(authMiddleware.JWTAuth())
	{
		authenticated.GET("/auth/me", authController.Me)
		authenticated.PUT("/auth/profile", authController.UpdateProfile)
		authenticated.POST("/auth/change-password", authController.ChangePassword)

		// Attendance: marking is student-only and self-scoped; reads of a
		// single entry go through the ownership gate.
		attendance := authenticated.Group("/attendance")
		{
			attendance.POST("",
				authMiddleware.RoleRequired(models.RoleStudent),
				attendanceController.Mark)
			attendance.GET("", attendanceController.List)
			attendance.GET("/:id",
				authMiddleware.ResourceOwnership(repos.AttendanceRepository.GetOwnerID),
				attendanceController.Get)
		}

		// Leaves: filing and cancelling are student-only; cancelling is
		// further restricted to the owner.
		leaves := authenticated.Group("/leaves")
		{
			leaves.POST("",
				authMiddleware.RoleRequired(models.RoleStudent),
				leaveController.Apply)
			leaves.GET("", leaveController.List)
			leaves.GET("/:id",
				authMiddleware.ResourceOwnership(repos.LeaveRepository.GetOwnerID),
				leaveController.Get)
			leaves.DELETE("/:id",
				authMiddleware.RoleRequired(models.RoleStudent),
				authMiddleware.ResourceOwnership(repos.LeaveRepository.GetOwnerID),
				leaveController.Cancel)

			// Reviewing is a head-only action
			leaves.POST("/:id/review",
				authMiddleware.RoleRequired(models.RoleHead),
				leaveController.Review)
		}

		// Head account management is head-only
		hods := authenticated.Group("/hods")
		hods.Use(authMiddleware.RoleRequired(models.RoleHead))
		{
			hods.POST("", hodController.Create)
			hods.GET("", hodController.List)
			hods.GET("/:id", hodController.Get)
			hods.PUT("/:id", hodController.Update)
			hods.POST("/:id/reset-password", hodController.ResetPassword)
			hods.DELETE("/:id", hodController.Delete)
		}
	}
}
