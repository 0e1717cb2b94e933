// internal/handlers/upload.go
package handlers

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/nexsy/nexsy-backend/internal/services"
	"github.com/nexsy/nexsy-backend/internal/utils"
)

type UploadHandler struct {
	storage *services.StorageService
}

func NewUploadHandler(storage *services.StorageService) *UploadHandler {
	return &UploadHandler{storage: storage}
}

// POST /api/upload
func (h *UploadHandler) UploadFile(c *gin.Context) {
	userID, exists := utils.GetUserIDFromContext(c)
	if !exists {
		utils.UnauthorizedResponse(c, "")
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		utils.BadRequestResponse(c, "File is required", nil)
		return
	}

	fileType := c.DefaultPostForm("file_type", services.FileKindImage)
	switch fileType {
	case services.FileKindImage, services.FileKindVideo, services.FileKindDocument:
	default:
		utils.BadRequestResponse(c, "Invalid file_type. Must be one of: image, video, document", nil)
		return
	}

	bucketType := c.DefaultPostForm("bucket_type", services.BucketAssets)
	switch bucketType {
	case services.BucketAssets, services.BucketGenerated, services.BucketTemplates, services.BucketReports:
	default:
		utils.BadRequestResponse(c, "Invalid bucket_type. Must be one of: assets, generated, templates, reports", nil)
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		utils.InternalErrorResponse(c, "")
		return
	}
	defer file.Close()

	info, err := h.storage.Upload(userID, services.UploadInput{
		Body:        file,
		Filename:    fileHeader.Filename,
		ContentType: fileHeader.Header.Get("Content-Type"),
		Size:        fileHeader.Size,
		Kind:        fileType,
		ProductID:   c.PostForm("product_id"),
		Bucket:      bucketType,
	})
	if err != nil {
		utils.RespondError(c, err, "File")
		return
	}
	utils.CreatedResponse(c, info)
}

type SignedURLRequest struct {
	FilePath        string `json:"file_path" validate:"required"`
	ExpirationHours int    `json:"expiration_hours" validate:"omitempty,min=1,max=168"`
}

// POST /api/files/signed-url
func (h *UploadHandler) SignedURL(c *gin.Context) {
	userID, exists := utils.GetUserIDFromContext(c)
	if !exists {
		utils.UnauthorizedResponse(c, "")
		return
	}

	var req SignedURLRequest
	if err := utils.BindStrict(c, &req); err != nil {
		utils.BadRequestResponse(c, err.Error(), nil)
		return
	}
	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}
	if req.ExpirationHours == 0 {
		req.ExpirationHours = 24
	}

	url, err := h.storage.SignedURL(userID, req.FilePath, time.Duration(req.ExpirationHours)*time.Hour)
	if err != nil {
		utils.RespondError(c, err, "File")
		return
	}
	utils.SuccessResponse(c, gin.H{"signed_url": url})
}

// DELETE /api/files
func (h *UploadHandler) DeleteFile(c *gin.Context) {
	userID, exists := utils.GetUserIDFromContext(c)
	if !exists {
		utils.UnauthorizedResponse(c, "")
		return
	}

	filePath := c.Query("file_path")
	if filePath == "" {
		utils.BadRequestResponse(c, "Query parameter file_path is required", nil)
		return
	}

	if err := h.storage.Delete(userID, filePath); err != nil {
		utils.RespondError(c, err, "File")
		return
	}
	utils.SuccessResponse(c, gin.H{"message": "File deleted successfully"})
}

// GET /api/files
func (h *UploadHandler) ListFiles(c *gin.Context) {
	userID, exists := utils.GetUserIDFromContext(c)
	if !exists {
		utils.UnauthorizedResponse(c, "")
		return
	}

	bucketType := c.DefaultQuery("bucket_type", services.BucketAssets)
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))

	files, err := h.storage.ListUserFiles(userID, bucketType, c.Query("prefix"), int64(limit))
	if err != nil {
		utils.RespondError(c, err, "File")
		return
	}
	utils.SuccessResponse(c, gin.H{"files": files})
}
