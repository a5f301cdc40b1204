package middleware

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	appauth "github.com/attendtrack/attendtrack/internal/app/auth"
	"github.com/attendtrack/attendtrack/internal/app/models"
	"github.com/attendtrack/attendtrack/internal/app/models/dto"
	"github.com/attendtrack/attendtrack/internal/app/repositories"
	"github.com/attendtrack/attendtrack/internal/pkg/auth"
)

// Context keys set by JWTAuth for downstream handlers
const (
	ContextUserID = "userID"
	ContextRole   = "roleType"
)

// AuthMiddleware for authentication and authorization
type AuthMiddleware struct {
	jwtService *auth.JWTService
	userRepo   repositories.IUserRepository
	authzSvc   *appauth.AuthorizationService
}

// NewAuthMiddleware creates a new AuthMiddleware
func NewAuthMiddleware(jwtService *auth.JWTService, userRepo repositories.IUserRepository) *AuthMiddleware {
	return &AuthMiddleware{
		jwtService: jwtService,
		userRepo:   userRepo,
		authzSvc:   appauth.NewAuthorizationService(),
	}
}

// JWTAuth validates the bearer token and resolves the live account. A valid
// signature is not enough: tokens for deleted accounts are rejected here, so
// deletion revokes everything the account ever issued.
func (m *AuthMiddleware) JWTAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			abortWithError(c, http.StatusUnauthorized, dto.ErrorCodeUnauthorized, "Authentication required")
			return
		}

		tokenString, err := auth.ExtractBearerToken(authHeader)
		if err != nil {
			abortWithError(c, http.StatusUnauthorized, dto.ErrorCodeInvalidToken, "Invalid authorization header format")
			return
		}

		claims, err := m.jwtService.ValidateToken(tokenString)
		if err != nil {
			if errors.Is(err, auth.ErrExpiredToken) {
				abortWithError(c, http.StatusUnauthorized, dto.ErrorCodeExpiredToken, "Token has expired")
				return
			}
			abortWithError(c, http.StatusUnauthorized, dto.ErrorCodeInvalidToken, "Invalid token")
			return
		}

		user, err := m.userRepo.GetByID(c.Request.Context(), claims.AccountID)
		if err != nil {
			abortWithError(c, http.StatusUnauthorized, dto.ErrorCodeInvalidToken, "Account no longer exists")
			return
		}

		// The stored role wins over the token's claim if they ever diverge
		c.Set(ContextUserID, user.ID)
		c.Set(ContextRole, user.Role)

		c.Next()
	}
}

// RoleRequired gates a route to accounts holding one of the given roles.
// Must run after JWTAuth.
func (m *AuthMiddleware) RoleRequired(roles ...models.RoleType) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, ok := currentRole(c)
		if !ok {
			abortWithError(c, http.StatusUnauthorized, dto.ErrorCodeUnauthorized, "Authentication required")
			return
		}

		if err := appauth.RequireRole(role, roles...); err != nil {
			names := make([]string, 0, len(roles))
			for _, r := range roles {
				names = append(names, string(r))
			}
			abortWithError(c, http.StatusForbidden, dto.ErrorCodeForbidden,
				"This operation requires role: "+strings.Join(names, " or "))
			return
		}

		c.Next()
	}
}

// ResourceOwnership gates a route on ownership of the resource named by the
// :id path parameter. Heads pass unconditionally; a student only reaches the
// handler for resources they own.
func (m *AuthMiddleware) ResourceOwnership(lookup appauth.ResourceLookup) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, uok := currentUserID(c)
		role, rok := currentRole(c)
		if !uok || !rok {
			abortWithError(c, http.StatusUnauthorized, dto.ErrorCodeUnauthorized, "Authentication required")
			return
		}

		resourceID, err := strconv.ParseInt(c.Param("id"), 10, 64)
		if err != nil {
			abortWithError(c, http.StatusBadRequest, dto.ErrorCodeValidationFailed, "Invalid resource id")
			return
		}

		if err := m.authzSvc.VerifyOwnership(c.Request.Context(), userID, role, resourceID, lookup); err != nil {
			HandleAPIError(c, err)
			c.Abort()
			return
		}

		c.Next()
	}
}

func currentUserID(c *gin.Context) (int64, bool) {
	v, exists := c.Get(ContextUserID)
	if !exists {
		return 0, false
	}
	id, ok := v.(int64)
	return id, ok
}

func currentRole(c *gin.Context) (models.RoleType, bool) {
	v, exists := c.Get(ContextRole)
	if !exists {
		return "", false
	}
	role, ok := v.(models.RoleType)
	return role, ok
}

func abortWithError(c *gin.Context, status int, code dto.ErrorCode, message string) {
	c.AbortWithStatusJSON(status, dto.NewErrorResponse(dto.NewErrorDetail(code, message)))
}
