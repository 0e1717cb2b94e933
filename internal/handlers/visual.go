// internal/handlers/visual.go
package handlers

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/nexsy/nexsy-backend/internal/docstore"
	"github.com/nexsy/nexsy-backend/internal/models"
	"github.com/nexsy/nexsy-backend/internal/services"
	"github.com/nexsy/nexsy-backend/internal/stores"
	"github.com/nexsy/nexsy-backend/internal/utils"
)

type VisualHandler struct {
	visuals *stores.VisualStore
	storage *services.StorageService
}

func NewVisualHandler(visuals *stores.VisualStore, storage *services.StorageService) *VisualHandler {
	return &VisualHandler{visuals: visuals, storage: storage}
}

type UpdateVisualRequest struct {
	Title                      *string            `json:"title" validate:"omitempty,max=200"`
	AssociatedCreativeOutputID *string            `json:"associated_creative_output_id"`
	AssociatedAdCopyIndex      *int               `json:"associated_ad_copy_index"`
	GeneratedVideoScript       *map[string]string `json:"generated_video_script"`
	PreviewImageURL            *string            `json:"preview_image_url"`
}

func (r *UpdateVisualRequest) fields() docstore.Document {
	fields := docstore.Document{}
	if r.Title != nil {
		fields["title"] = *r.Title
	}
	if r.AssociatedCreativeOutputID != nil {
		fields["associated_creative_output_id"] = *r.AssociatedCreativeOutputID
	}
	if r.AssociatedAdCopyIndex != nil {
		fields["associated_ad_copy_index"] = *r.AssociatedAdCopyIndex
	}
	if r.GeneratedVideoScript != nil {
		fields["generated_video_script"] = *r.GeneratedVideoScript
	}
	if r.PreviewImageURL != nil {
		fields["preview_image_url"] = *r.PreviewImageURL
	}
	return fields
}

// GET /api/visuals
func (h *VisualHandler) ListVisuals(c *gin.Context) {
	userID, exists := utils.GetUserIDFromContext(c)
	if !exists {
		utils.UnauthorizedResponse(c, "")
		return
	}

	mediaType := c.Query("media_type")
	if mediaType != "" && mediaType != models.MediaTypeImage && mediaType != models.MediaTypeVideo {
		utils.BadRequestResponse(c, "media_type must be 'image' or 'video'", nil)
		return
	}

	var (
		visuals []models.VisualAsset
		err     error
	)
	if outputID := c.Query("creative_output_id"); outputID != "" {
		var adCopyIndex *int
		if raw := c.Query("ad_copy_index"); raw != "" {
			idx, convErr := strconv.Atoi(raw)
			if convErr != nil {
				utils.BadRequestResponse(c, "ad_copy_index must be an integer", nil)
				return
			}
			adCopyIndex = &idx
		}
		visuals, err = h.visuals.ListByCreativeOutput(c.Request.Context(), userID, outputID, adCopyIndex)
	} else {
		limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))
		visuals, err = h.visuals.ListForOwner(c.Request.Context(), userID, mediaType, limit)
	}
	if err != nil {
		utils.RespondError(c, err, "Visual")
		return
	}
	utils.SuccessResponse(c, gin.H{"visuals": visuals})
}

// GET /api/visuals/:id
func (h *VisualHandler) GetVisual(c *gin.Context) {
	userID, exists := utils.GetUserIDFromContext(c)
	if !exists {
		utils.UnauthorizedResponse(c, "")
		return
	}

	visual, err := h.visuals.Get(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		utils.RespondError(c, err, "Visual")
		return
	}
	utils.SuccessResponse(c, visual)
}

// PUT /api/visuals/:id
func (h *VisualHandler) UpdateVisual(c *gin.Context) {
	userID, exists := utils.GetUserIDFromContext(c)
	if !exists {
		utils.UnauthorizedResponse(c, "")
		return
	}

	var req UpdateVisualRequest
	if err := utils.BindStrict(c, &req); err != nil {
		utils.BadRequestResponse(c, err.Error(), nil)
		return
	}
	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	fields := req.fields()
	if len(fields) == 0 {
		utils.BadRequestResponse(c, "No valid update data provided", nil)
		return
	}

	visual, err := h.visuals.Update(c.Request.Context(), userID, c.Param("id"), fields)
	if err != nil {
		utils.RespondError(c, err, "Visual")
		return
	}
	utils.SuccessResponse(c, visual)
}

// DELETE /api/visuals/:id
//
// The record is removed first; the backing object is deleted best
// effort, so a storage failure never resurrects the record.
func (h *VisualHandler) DeleteVisual(c *gin.Context) {
	userID, exists := utils.GetUserIDFromContext(c)
	if !exists {
		utils.UnauthorizedResponse(c, "")
		return
	}

	visualID := c.Param("id")
	visual, err := h.visuals.Get(c.Request.Context(), userID, visualID)
	if err != nil {
		utils.RespondError(c, err, "Visual")
		return
	}

	deleted, err := h.visuals.Delete(c.Request.Context(), userID, visualID)
	if err != nil {
		utils.RespondError(c, err, "Visual")
		return
	}
	if !deleted {
		utils.NotFoundResponse(c, "Visual")
		return
	}

	if path := objectPathFromAssetURL(visual.AssetURL, userID); path != "" {
		if err := h.storage.Delete(userID, path); err != nil {
			logrus.WithError(err).WithFields(logrus.Fields{
				"visual_id": visualID,
				"path":      path,
			}).Warn("Failed to delete backing file for visual")
		}
	}

	utils.SuccessResponse(c, gin.H{"message": "Visual deleted"})
}

// objectPathFromAssetURL recovers the storage key from a stored asset
// URL: either an s3://bucket/key reference or a signed URL whose path
// contains the owner's prefix.
func objectPathFromAssetURL(assetURL, userID string) string {
	if assetURL == "" {
		return ""
	}

	if strings.HasPrefix(assetURL, "s3://") {
		parts := strings.SplitN(strings.TrimPrefix(assetURL, "s3://"), "/", 2)
		if len(parts) == 2 {
			return parts[1]
		}
		return ""
	}

	parsed, err := url.Parse(assetURL)
	if err != nil {
		return ""
	}
	segments := strings.Split(strings.TrimPrefix(parsed.Path, "/"), "/")
	for i := 0; i+1 < len(segments); i++ {
		if segments[i] == "users" && segments[i+1] == userID {
			return strings.Join(segments[i:], "/")
		}
	}
	return ""
}
