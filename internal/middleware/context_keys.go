package middleware

import (
	"context"

	"github.com/clubtreasury/treasury/internal/core/domain"
	"github.com/gin-gonic/gin"
)

const (
	// memberIDKey stores the authenticated member's ID.
	memberIDKey = contextKey("memberID")
	// roleKey stores the authenticated member's role.
	roleKey = contextKey("role")
)

// WithIdentity returns a copy of ctx carrying the authenticated member.
func WithIdentity(ctx context.Context, memberID string, role domain.Role) context.Context {
	ctx = context.WithValue(ctx, memberIDKey, memberID)
	return context.WithValue(ctx, roleKey, role)
}

// GetUserIDFromContext retrieves the authenticated member ID.
// It returns the ID and a boolean indicating if it was found.
func GetUserIDFromContext(c *gin.Context) (string, bool) {
	if v, exists := c.Get(string(memberIDKey)); exists {
		id, ok := v.(string)
		return id, ok && id != ""
	}
	id, ok := c.Request.Context().Value(memberIDKey).(string)
	return id, ok && id != ""
}

// GetRoleFromContext retrieves the authenticated member's role.
func GetRoleFromContext(c *gin.Context) (domain.Role, bool) {
	if v, exists := c.Get(string(roleKey)); exists {
		role, ok := v.(domain.Role)
		return role, ok
	}
	role, ok := c.Request.Context().Value(roleKey).(domain.Role)
	return role, ok
}
