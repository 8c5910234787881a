package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	domainerrors "network-registry.backend/internal/domain/errors"
	"network-registry.backend/internal/interfaces/http/response"
	"network-registry.backend/pkg/jwt"
)

const (
	// AuthorizationHeader is the header key for authorization
	AuthorizationHeader = "Authorization"
	// BearerPrefix is the prefix for bearer tokens
	BearerPrefix = "Bearer "
	// SubjectKey is the context key for the token subject
	SubjectKey = "subject"
	// EmailKey is the context key for the token email
	EmailKey = "email"
	// RoleKey is the context key for the token role
	RoleKey = "role"
)

// AuthMiddleware validates the bearer token and stores its claims in the
// gin context. The registry core receives no identity information.
func AuthMiddleware(jwtService *jwt.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader(AuthorizationHeader)
		if authHeader == "" {
			response.AbortError(c, domainerrors.Unauthorized("authorization header is required"))
			return
		}

		if !strings.HasPrefix(authHeader, BearerPrefix) {
			response.AbortError(c, domainerrors.Unauthorized("invalid authorization format, use: Bearer <token>"))
			return
		}

		tokenString := strings.TrimPrefix(authHeader, BearerPrefix)
		claims, err := jwtService.ValidateToken(tokenString)
		if err != nil {
			if err == jwt.ErrExpiredToken {
				response.AbortError(c, domainerrors.Unauthorized("token has expired"))
				return
			}
			response.AbortError(c, domainerrors.Unauthorized("invalid token"))
			return
		}

		c.Set(SubjectKey, claims.Subject)
		c.Set(EmailKey, claims.Email)
		c.Set(RoleKey, claims.Role)

		c.Next()
	}
}

// RequireRole requires one of the given roles on the authenticated token
func RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := c.GetString(RoleKey)
		if role == "" {
			response.AbortError(c, domainerrors.Unauthorized("role not found"))
			return
		}

		for _, r := range roles {
			if role == r {
				c.Next()
				return
			}
		}

		response.AbortError(c, domainerrors.Forbidden("insufficient permissions"))
	}
}

// RequireAdmin requires the admin role
func RequireAdmin() gin.HandlerFunc {
	return RequireRole("admin")
}
