// internal/handlers/ai.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/nexsy/nexsy-backend/internal/services"
	"github.com/nexsy/nexsy-backend/internal/utils"
)

type AIHandler struct {
	ai *services.AIService
}

func NewAIHandler(ai *services.AIService) *AIHandler {
	return &AIHandler{ai: ai}
}

// POST /api/ai/autofill-product
func (h *AIHandler) AutofillProduct(c *gin.Context) {
	if _, exists := utils.GetUserIDFromContext(c); !exists {
		utils.UnauthorizedResponse(c, "")
		return
	}

	var req services.AutofillInput
	if err := utils.BindStrict(c, &req); err != nil {
		utils.BadRequestResponse(c, err.Error(), nil)
		return
	}
	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	result, err := h.ai.AutofillProduct(c.Request.Context(), req)
	if err != nil {
		utils.RespondError(c, err, "Product")
		return
	}
	utils.SuccessResponse(c, result)
}

// POST /api/ai/generate-marketing-strategy/:product_id
func (h *AIHandler) GenerateMarketingStrategy(c *gin.Context) {
	userID, exists := utils.GetUserIDFromContext(c)
	if !exists {
		utils.UnauthorizedResponse(c, "")
		return
	}

	strategy, err := h.ai.GenerateMarketingStrategy(c.Request.Context(), userID, c.Param("product_id"))
	if err != nil {
		utils.RespondError(c, err, "Product")
		return
	}
	utils.SuccessResponse(c, strategy)
}

type GenerateAdCopiesRequest struct {
	ProductID     string `json:"product_id" validate:"required"`
	Tone          string `json:"tone"`
	NumVariations int    `json:"num_variations" validate:"omitempty,min=1,max=5"`
}

// POST /api/ai/generate-ad-copies
func (h *AIHandler) GenerateAdCopies(c *gin.Context) {
	userID, exists := utils.GetUserIDFromContext(c)
	if !exists {
		utils.UnauthorizedResponse(c, "")
		return
	}

	var req GenerateAdCopiesRequest
	if err := utils.BindStrict(c, &req); err != nil {
		utils.BadRequestResponse(c, err.Error(), nil)
		return
	}
	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	output, err := h.ai.GenerateAdCopies(c.Request.Context(), userID, req.ProductID, req.Tone, req.NumVariations)
	if err != nil {
		utils.RespondError(c, err, "Product")
		return
	}
	utils.SuccessResponse(c, output)
}

// POST /api/ai/enhance-product/:product_id
func (h *AIHandler) EnhanceProduct(c *gin.Context) {
	userID, exists := utils.GetUserIDFromContext(c)
	if !exists {
		utils.UnauthorizedResponse(c, "")
		return
	}

	product, err := h.ai.EnhanceProduct(c.Request.Context(), userID, c.Param("product_id"))
	if err != nil {
		utils.RespondError(c, err, "Product")
		return
	}
	utils.SuccessResponse(c, product)
}

// GET /api/ai/health
func (h *AIHandler) Health(c *gin.Context) {
	if !h.ai.Configured() {
		utils.SuccessResponse(c, gin.H{
			"status":     "warning",
			"message":    "Generation provider not configured",
			"ai_enabled": false,
		})
		return
	}

	utils.SuccessResponse(c, gin.H{
		"status":     "healthy",
		"message":    "AI service is ready",
		"ai_enabled": true,
		"model":      h.ai.ModelName(),
	})
}
