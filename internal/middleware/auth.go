// internal/middleware/auth.go
package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/nexsy/nexsy-backend/internal/auth"
	"github.com/nexsy/nexsy-backend/internal/utils"
)

// AuthRequired verifies the bearer token on every request and stores
// the caller's identity in the request context. Everything downstream
// trusts these keys instead of re-reading the token.
func AuthRequired(verifier auth.TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			utils.UnauthorizedResponse(c, "Authorization header required")
			c.Abort()
			return
		}

		// Extract token from "Bearer <token>"
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			utils.UnauthorizedResponse(c, "Invalid authorization header")
			c.Abort()
			return
		}

		identity, err := verifier.Verify(c.Request.Context(), parts[1])
		if err != nil {
			utils.UnauthorizedResponse(c, "Invalid or expired token")
			c.Abort()
			return
		}

		c.Set("user_id", identity.SubjectID)
		c.Set("email", identity.Email)
		c.Set("email_verified", identity.EmailVerified)
		c.Set("display_name", identity.DisplayName)
		c.Next()
	}
}
