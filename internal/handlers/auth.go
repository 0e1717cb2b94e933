// internal/handlers/auth.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/nexsy/nexsy-backend/internal/utils"
)

// AuthHandler exposes the verified identity the middleware placed in
// the request context.
type AuthHandler struct{}

func NewAuthHandler() *AuthHandler {
	return &AuthHandler{}
}

// GET /api/auth/me
func (h *AuthHandler) Me(c *gin.Context) {
	userID, exists := utils.GetUserIDFromContext(c)
	if !exists {
		utils.UnauthorizedResponse(c, "")
		return
	}

	utils.SuccessResponse(c, gin.H{
		"uid":            userID,
		"email":          c.GetString("email"),
		"display_name":   c.GetString("display_name"),
		"email_verified": c.GetBool("email_verified"),
	})
}

// POST /api/auth/verify-token
func (h *AuthHandler) VerifyToken(c *gin.Context) {
	userID, exists := utils.GetUserIDFromContext(c)
	if !exists {
		utils.UnauthorizedResponse(c, "")
		return
	}

	utils.SuccessResponse(c, gin.H{
		"valid": true,
		"uid":   userID,
		"email": c.GetString("email"),
	})
}
