package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"reviewhub/internal/policy"
	"reviewhub/internal/repository"
	"reviewhub/internal/service"
)

const identityKey = "identity"

// AuthRequired validates the bearer token and resolves the caller to a
// live user row. Role comes from the database, not the token, so an
// admin-driven role change takes effect on the next request.
func AuthRequired(authService service.AuthService, userRepo repository.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := resolveIdentity(c, authService, userRepo)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid or missing token"})
			c.Abort()
			return
		}
		c.Set(identityKey, id)
		c.Next()
	}
}

// AuthOptional resolves the caller when a valid token is present and lets
// the request through as anonymous otherwise. Read paths use this so the
// object-level policies can still see who is asking.
func AuthOptional(authService service.AuthService, userRepo repository.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		if id, ok := resolveIdentity(c, authService, userRepo); ok {
			c.Set(identityKey, id)
		}
		c.Next()
	}
}

// AdminOrReadOnly gates the catalog routes: safe methods pass for anyone,
// anything that mutates requires the admin role. Runs after the auth
// middleware that resolved the identity.
func AdminOrReadOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !policy.AdminOrReadOnly(GetIdentity(c), c.Request.Method) {
			c.JSON(http.StatusForbidden, gin.H{"error": service.ErrForbidden.Error()})
			c.Abort()
			return
		}
		c.Next()
	}
}

// GetIdentity returns the caller resolved by the auth middleware, or the
// anonymous identity.
func GetIdentity(c *gin.Context) policy.Identity {
	if v, exists := c.Get(identityKey); exists {
		if id, ok := v.(policy.Identity); ok {
			return id
		}
	}
	return policy.Anonymous
}

func resolveIdentity(c *gin.Context, authService service.AuthService, userRepo repository.UserRepository) (policy.Identity, bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return policy.Anonymous, false
	}

	// Expected format: "Bearer <token>"
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return policy.Anonymous, false
	}

	userID, err := authService.ValidateToken(parts[1])
	if err != nil {
		return policy.Anonymous, false
	}

	user, err := userRepo.FindByID(userID)
	if err != nil {
		// Token subject no longer exists (deleted account).
		return policy.Anonymous, false
	}

	return policy.Identity{
		ID:            user.ID,
		Username:      user.Username,
		Role:          user.Role,
		Authenticated: true,
	}, true
}
