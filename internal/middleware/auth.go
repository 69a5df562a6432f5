package middleware

import (
	"context"
	"net/http"
	"strings"

	"lexihub/internal/models"
	"lexihub/internal/repository"
	"lexihub/internal/service"

	"github.com/gin-gonic/gin"
)

const currentUserKey = "currentUser"

// RequireAuth validates the bearer token and loads the account into the
// context. Every failure path returns the same 401 body so callers cannot
// distinguish a bad token from a deleted account.
func RequireAuth(authService service.AuthService, userRepo repository.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := resolveUser(c, authService, userRepo)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"detail": "Could not validate credentials"})
			c.Abort()
			return
		}
		c.Set(currentUserKey, user)
		c.Next()
	}
}

// OptionalAuth loads the account when a valid token is present and continues
// anonymously otherwise. Used by read endpoints that personalize output.
func OptionalAuth(authService service.AuthService, userRepo repository.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		if user, ok := resolveUser(c, authService, userRepo); ok {
			c.Set(currentUserKey, user)
		}
		c.Next()
	}
}

func resolveUser(c *gin.Context, authService service.AuthService, userRepo repository.UserRepository) (*models.User, bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return nil, false
	}
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return nil, false
	}

	userID, err := authService.ValidateToken(parts[1])
	if err != nil {
		return nil, false
	}
	user, err := userRepo.GetByID(contextOf(c), userID)
	if err != nil {
		return nil, false
	}
	return user, true
}

// RequireRole checks the loaded user's role. Must run after RequireAuth.
func RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := CurrentUser(c)
		if user == nil {
			c.JSON(http.StatusUnauthorized, gin.H{"detail": "Could not validate credentials"})
			c.Abort()
			return
		}
		for _, role := range roles {
			if user.Role == role {
				c.Next()
				return
			}
		}
		c.JSON(http.StatusForbidden, gin.H{"detail": "Not enough permissions"})
		c.Abort()
	}
}

// RequireAdmin restricts the route to admins.
func RequireAdmin() gin.HandlerFunc {
	return RequireRole(models.RoleAdmin)
}

// RequireElevated restricts the route to admins and verified translators.
func RequireElevated() gin.HandlerFunc {
	return RequireRole(models.RoleAdmin, models.RoleVerifiedTranslator)
}

// CurrentUser returns the account loaded by RequireAuth/OptionalAuth, or nil.
func CurrentUser(c *gin.Context) *models.User {
	value, exists := c.Get(currentUserKey)
	if !exists {
		return nil
	}
	user, ok := value.(*models.User)
	if !ok {
		return nil
	}
	return user
}

func contextOf(c *gin.Context) context.Context {
	return c.Request.Context()
}
