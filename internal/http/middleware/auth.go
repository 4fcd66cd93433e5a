package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/tebarek94/ethiotourandtravelagency-sub000/internal/domain"
	"github.com/tebarek94/ethiotourandtravelagency-sub000/internal/domain/models"
	"github.com/tebarek94/ethiotourandtravelagency-sub000/internal/http/response"
)

const (
	userIDKey    = "userID"
	userEmailKey = "userEmail"
	userRoleKey  = "userRole"
)

// Authenticator resolves a bearer token to a user.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (models.User, error)
}

func bearerToken(c *gin.Context) string {
	h := strings.TrimSpace(c.GetHeader("Authorization"))
	if len(h) < 7 || !strings.EqualFold(h[:7], "bearer ") {
		return ""
	}
	return strings.TrimSpace(h[7:])
}

func setUser(c *gin.Context, u models.User) {
	c.Set(userIDKey, u.ID)
	c.Set(userEmailKey, u.Email)
	c.Set(userRoleKey, strings.ToLower(u.Role))
}

// Authenticate requires a valid bearer token.
func Authenticate(auth Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			response.Fail(c, http.StatusUnauthorized, "authentication required")
			return
		}
		user, err := auth.Authenticate(c.Request.Context(), token)
		if err != nil {
			if domain.IsUnauthorized(err) {
				response.Fail(c, http.StatusUnauthorized, err.Error())
				return
			}
			response.Error(c, err)
			return
		}
		setUser(c, user)
		c.Next()
	}
}

// AuthOptional identifies the caller when a valid token is sent and lets
// anonymous requests through otherwise.
func AuthOptional(auth Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		if token := bearerToken(c); token != "" {
			if user, err := auth.Authenticate(c.Request.Context(), token); err == nil {
				setUser(c, user)
			}
		}
		c.Next()
	}
}

// RequireRoles only lets requests through whose role is one of allowedRoles.
// Authenticate must run first.
func RequireRoles(allowedRoles ...string) gin.HandlerFunc {
	allowed := make(map[string]struct{}, len(allowedRoles))
	for _, r := range allowedRoles {
		allowed[strings.ToLower(strings.TrimSpace(r))] = struct{}{}
	}

	return func(c *gin.Context) {
		role := c.GetString(userRoleKey)
		if role == "" {
			response.Fail(c, http.StatusUnauthorized, "authentication required")
			return
		}
		if _, ok := allowed[role]; !ok {
			response.Fail(c, http.StatusForbidden, "insufficient role")
			return
		}
		c.Next()
	}
}

// UserID returns the authenticated user's id, 0 when anonymous.
func UserID(c *gin.Context) int64 {
	return c.GetInt64(userIDKey)
}

// Access is the caller's capability for owner-scoped records.
func Access(c *gin.Context) domain.Access {
	return domain.AccessFor(UserID(c), c.GetString(userRoleKey))
}
