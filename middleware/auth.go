package middleware

import (
	"context"
	"net/http"
	"strings"
	"time"

	userRepo "github.com/DDismyname28/home-portal/database/repository/user"
	"github.com/DDismyname28/home-portal/utils"

	"github.com/gin-gonic/gin"
)

// Context keys set for authenticated callers.
const (
	CtxCallerID   = "callerID"
	CtxCallerRole = "callerRole"
)

// AuthRequired rejects anonymous calls. It validates the bearer token,
// checks it has not been revoked, and stores the caller's id and role in the
// request context.
func AuthRequired(users userRepo.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"message": "Insufficient authorization",
			})
			return
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		callerID, role, err := utils.ExtractIDFromToken(tokenString)
		if err != nil || callerID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"message": "Insufficient authorization",
			})
			return
		}

		// Revocation check: the token hash must still be the one on
		// record. The auth cache answers first; Mongo is the fallback.
		tokenHash := utils.HashToken(tokenString)
		if !sessionCached(tokenHash) {
			u, err := users.GetByID(callerID)
			if err != nil || u == nil || u.TokenHash != tokenHash {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
					"success": false,
					"message": "Session expired, please sign in again",
				})
				return
			}
			if role == "" {
				role = u.Role
			}
		}

		c.Set(CtxCallerID, callerID)
		c.Set(CtxCallerRole, role)
		c.Next()
	}
}

func sessionCached(tokenHash string) bool {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	n, err := utils.GetAuthCacheClient().Exists(ctx, "session:"+tokenHash).Result()
	return err == nil && n > 0
}

// CallerID returns the authenticated caller's account ID.
func CallerID(c *gin.Context) string {
	return c.GetString(CtxCallerID)
}

// CallerRole returns the authenticated caller's role.
func CallerRole(c *gin.Context) string {
	return c.GetString(CtxCallerRole)
}
