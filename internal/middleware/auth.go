// Package middleware provides HTTP middleware components for the application.
// It includes authentication, authorization, and other request processing middleware
// that can be used with the fiber web framework.
package middleware

import (
	"context"
	"log"
	"strings"

	"wealthcheck/internal/config"
	"wealthcheck/internal/models"
	"wealthcheck/internal/utils"
	"wealthcheck/internal/utils/response"

	"github.com/gofiber/fiber/v2"
)

// AccountLookup resolves the account named by a token.
type AccountLookup interface {
	FindByID(ctx context.Context, id uint) (*models.Account, error)
}

// AuthMiddleware handles JWT token validation and user authentication.
// It extracts the JWT token from the Authorization header, validates it,
// and adds the user claims to the request context.
type AuthMiddleware struct {
	accounts AccountLookup
	jwt      config.JWTConfig
}

func NewAuthMiddleware(accounts AccountLookup, jwtCfg config.JWTConfig) *AuthMiddleware {
	return &AuthMiddleware{
		accounts: accounts,
		jwt:      jwtCfg,
	}
}

// Handler validates the Bearer token and checks that its account still
// exists and is active.
func (m *AuthMiddleware) Handler(c *fiber.Ctx) error {
	authHeader := c.Get(fiber.HeaderAuthorization)
	if authHeader == "" {
		return response.Error(c, fiber.StatusUnauthorized, "missing authorization header")
	}

	if !strings.HasPrefix(authHeader, "Bearer ") {
		return response.Error(c, fiber.StatusUnauthorized, "invalid authorization format")
	}
	tokenString := strings.TrimPrefix(authHeader, "Bearer ")

	claims, err := utils.ParseToken(m.jwt, tokenString)
	if err != nil {
		log.Printf("Token validation error: %v", err)
		return response.Error(c, fiber.StatusUnauthorized, "invalid token")
	}

	account, err := m.accounts.FindByID(c.UserContext(), claims.UserID)
	if err != nil {
		log.Printf("Account %d from token not found: %v", claims.UserID, err)
		return response.Error(c, fiber.StatusUnauthorized, "invalid token")
	}
	if !account.IsActive {
		return response.Error(c, fiber.StatusUnauthorized, "account disabled")
	}

	c.Locals("claims", claims)
	c.Locals("userID", claims.UserID)

	return c.Next()
}

// HasPermission returns a middleware that checks for a specific permission.
func HasPermission(permission string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims, err := utils.GetUserClaims(c)
		if err != nil {
			return response.Unauthorized(c)
		}
		if claims.HasPermission(permission) {
			return c.Next()
		}
		return response.Error(c, fiber.StatusForbidden, "Insufficient permissions")
	}
}
