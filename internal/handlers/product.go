// internal/handlers/product.go
package handlers

import (
	"fmt"
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

type ProductHandler struct {
	products   *stores.ProductStore
	visuals    *stores.VisualStore
	creatives  *stores.CreativeOutputStore
	strategies *stores.StrategyStore
	storage    *services.StorageService
}

func NewProductHandler(products *stores.ProductStore, visuals *stores.VisualStore, creatives *stores.CreativeOutputStore, strategies *stores.StrategyStore, storage *services.StorageService) *ProductHandler {
	return &ProductHandler{
		products:   products,
		visuals:    visuals,
		creatives:  creatives,
		strategies: strategies,
		storage:    storage,
	}
}

type CreateProductRequest struct {
	ProductName       string  `json:"product_name" validate:"required,max=200"`
	WhatIsIt          string  `json:"what_is_it" validate:"required,max=500"`
	Price             float64 `json:"price" validate:"required,gt=0"`
	Currency          string  `json:"currency" validate:"omitempty,len=3"`
	TargetCountry     string  `json:"target_country" validate:"required"`
	TargetCountryCode string  `json:"target_country_code" validate:"omitempty,len=2"`
	MainGoal          string  `json:"main_goal" validate:"required"`

	ProductImageURL    string `json:"product_image_url"`
	ProductLink        string `json:"product_link"`
	ProductDescription string `json:"product_description"`
	ProblemItSolves    string `json:"problem_it_solves"`
	TargetCustomers    string `json:"target_customers"`
}

// UpdateProductRequest lists every mutable field. Pointer fields
// distinguish "absent" from "set to zero"; anything not named here is
// rejected by the strict decoder.
type UpdateProductRequest struct {
	ProductName       *string  `json:"product_name" validate:"omitempty,max=200"`
	WhatIsIt          *string  `json:"what_is_it" validate:"omitempty,max=500"`
	Price             *float64 `json:"price" validate:"omitempty,gt=0"`
	Currency          *string  `json:"currency" validate:"omitempty,len=3"`
	TargetCountry     *string  `json:"target_country"`
	TargetCountryCode *string  `json:"target_country_code" validate:"omitempty,len=2"`
	MainGoal          *string  `json:"main_goal"`

	ProductImageURL    *string `json:"product_image_url"`
	ProductLink        *string `json:"product_link"`
	ProductDescription *string `json:"product_description"`
	ProblemItSolves    *string `json:"problem_it_solves"`
	TargetCustomers    *string `json:"target_customers"`

	SetupCompleted          *bool     `json:"setup_completed"`
	AIAnalysisSummary       *string   `json:"ai_analysis_summary"`
	AITargetAudienceProfile *string   `json:"ai_target_audience_profile"`
	AIKeySellingPoints      *[]string `json:"ai_key_selling_points"`
}

func (r *UpdateProductRequest) fields() docstore.Document {
	fields := docstore.Document{}
	set := func(key string, value interface{}) {
		fields[key] = value
	}

	if r.ProductName != nil {
		set("product_name", *r.ProductName)
	}
	if r.WhatIsIt != nil {
		set("what_is_it", *r.WhatIsIt)
	}
	if r.Price != nil {
		set("price", *r.Price)
	}
	if r.Currency != nil {
		set("currency", *r.Currency)
	}
	if r.TargetCountry != nil {
		set("target_country", *r.TargetCountry)
	}
	if r.TargetCountryCode != nil {
		set("target_country_code", *r.TargetCountryCode)
	}
	if r.MainGoal != nil {
		set("main_goal", *r.MainGoal)
	}
	if r.ProductImageURL != nil {
		set("product_image_url", *r.ProductImageURL)
	}
	if r.ProductLink != nil {
		set("product_link", *r.ProductLink)
	}
	if r.ProductDescription != nil {
		set("product_description", *r.ProductDescription)
	}
	if r.ProblemItSolves != nil {
		set("problem_it_solves", *r.ProblemItSolves)
	}
	if r.TargetCustomers != nil {
		set("target_customers", *r.TargetCustomers)
	}
	if r.SetupCompleted != nil {
		set("setup_completed", *r.SetupCompleted)
	}
	if r.AIAnalysisSummary != nil {
		set("ai_analysis_summary", *r.AIAnalysisSummary)
	}
	if r.AITargetAudienceProfile != nil {
		set("ai_target_audience_profile", *r.AITargetAudienceProfile)
	}
	if r.AIKeySellingPoints != nil {
		set("ai_key_selling_points", *r.AIKeySellingPoints)
	}
	return fields
}

// POST /api/products
func (h *ProductHandler) CreateProduct(c *gin.Context) {
	userID, exists := utils.GetUserIDFromContext(c)
	if !exists {
		utils.UnauthorizedResponse(c, "")
		return
	}

	var req CreateProductRequest
	if err := utils.BindStrict(c, &req); err != nil {
		utils.BadRequestResponse(c, err.Error(), nil)
		return
	}
	if req.Currency == "" {
		req.Currency = "USD"
	}
	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	product := &models.Product{
		ProductName:        req.ProductName,
		WhatIsIt:           req.WhatIsIt,
		Price:              req.Price,
		Currency:           req.Currency,
		TargetCountry:      req.TargetCountry,
		TargetCountryCode:  req.TargetCountryCode,
		MainGoal:           req.MainGoal,
		ProductImageURL:    req.ProductImageURL,
		ProductLink:        req.ProductLink,
		ProductDescription: req.ProductDescription,
		ProblemItSolves:    req.ProblemItSolves,
		TargetCustomers:    req.TargetCustomers,
	}

	created, err := h.products.Create(c.Request.Context(), userID, product)
	if err != nil {
		utils.RespondError(c, err, "Product")
		return
	}
	utils.CreatedResponse(c, created)
}

// GET /api/products
func (h *ProductHandler) ListProducts(c *gin.Context) {
	userID, exists := utils.GetUserIDFromContext(c)
	if !exists {
		utils.UnauthorizedResponse(c, "")
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	products, err := h.products.List(c.Request.Context(), userID, limit)
	if err != nil {
		utils.RespondError(c, err, "Product")
		return
	}
	utils.SuccessResponse(c, gin.H{"products": products})
}

// GET /api/products/search
func (h *ProductHandler) SearchProducts(c *gin.Context) {
	userID, exists := utils.GetUserIDFromContext(c)
	if !exists {
		utils.UnauthorizedResponse(c, "")
		return
	}

	term := strings.TrimSpace(c.Query("q"))
	if term == "" {
		utils.BadRequestResponse(c, "Query parameter q is required", nil)
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	products, err := h.products.Search(c.Request.Context(), userID, term, limit)
	if err != nil {
		utils.RespondError(c, err, "Product")
		return
	}
	utils.SuccessResponse(c, gin.H{"products": products})
}

// GET /api/products/:id
func (h *ProductHandler) GetProduct(c *gin.Context) {
	userID, exists := utils.GetUserIDFromContext(c)
	if !exists {
		utils.UnauthorizedResponse(c, "")
		return
	}

	product, err := h.products.Get(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		utils.RespondError(c, err, "Product")
		return
	}
	utils.SuccessResponse(c, product)
}

// PUT /api/products/:id
func (h *ProductHandler) UpdateProduct(c *gin.Context) {
	userID, exists := utils.GetUserIDFromContext(c)
	if !exists {
		utils.UnauthorizedResponse(c, "")
		return
	}

	var req UpdateProductRequest
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

	product, err := h.products.Update(c.Request.Context(), userID, c.Param("id"), fields)
	if err != nil {
		utils.RespondError(c, err, "Product")
		return
	}
	utils.SuccessResponse(c, product)
}

// DELETE /api/products/:id
func (h *ProductHandler) DeleteProduct(c *gin.Context) {
	userID, exists := utils.GetUserIDFromContext(c)
	if !exists {
		utils.UnauthorizedResponse(c, "")
		return
	}

	deleted, err := h.products.Delete(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		utils.RespondError(c, err, "Product")
		return
	}
	if !deleted {
		utils.NotFoundResponse(c, "Product")
		return
	}
	utils.SuccessResponse(c, gin.H{"message": "Product deleted"})
}

// POST /api/products/:id/visuals
func (h *ProductHandler) UploadVisual(c *gin.Context) {
	userID, exists := utils.GetUserIDFromContext(c)
	if !exists {
		utils.UnauthorizedResponse(c, "")
		return
	}

	productID := c.Param("id")
	if _, err := h.products.Get(c.Request.Context(), userID, productID); err != nil {
		utils.RespondError(c, err, "Product")
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		utils.BadRequestResponse(c, "File is required", nil)
		return
	}

	contentType := fileHeader.Header.Get("Content-Type")
	var kind string
	switch {
	case strings.HasPrefix(contentType, "image/"):
		kind = services.FileKindImage
	case strings.HasPrefix(contentType, "video/"):
		kind = services.FileKindVideo
	default:
		utils.BadRequestResponse(c, "Only image and video files are allowed", nil)
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
		ContentType: contentType,
		Size:        fileHeader.Size,
		Kind:        kind,
		ProductID:   productID,
		Bucket:      services.BucketAssets,
	})
	if err != nil {
		utils.RespondError(c, err, "File")
		return
	}

	title := c.PostForm("title")
	if title == "" {
		title = fileHeader.Filename
	}
	if title == "" {
		title = "Uploaded visual"
	}

	visual, err := h.visuals.Create(c.Request.Context(), userID, &models.VisualAsset{
		ProductID:  productID,
		Title:      title,
		AssetURL:   fmt.Sprintf("s3://%s/%s", info.BucketName, info.FilePath),
		MediaType:  kind,
		SourceType: models.SourceTypeUploaded,
	})
	if err != nil {
		utils.RespondError(c, err, "Visual")
		return
	}
	utils.CreatedResponse(c, visual)
}

// GET /api/products/:id/visuals
func (h *ProductHandler) ListProductVisuals(c *gin.Context) {
	userID, exists := utils.GetUserIDFromContext(c)
	if !exists {
		utils.UnauthorizedResponse(c, "")
		return
	}

	productID := c.Param("id")
	if _, err := h.products.Get(c.Request.Context(), userID, productID); err != nil {
		utils.RespondError(c, err, "Product")
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))
	visuals, err := h.visuals.ListForProduct(c.Request.Context(), userID, productID, limit)
	if err != nil {
		utils.RespondError(c, err, "Visual")
		return
	}
	utils.SuccessResponse(c, gin.H{"visuals": visuals})
}

// GET /api/products/:id/creative-outputs
func (h *ProductHandler) ListProductCreativeOutputs(c *gin.Context) {
	userID, exists := utils.GetUserIDFromContext(c)
	if !exists {
		utils.UnauthorizedResponse(c, "")
		return
	}

	productID := c.Param("id")
	if _, err := h.products.Get(c.Request.Context(), userID, productID); err != nil {
		utils.RespondError(c, err, "Product")
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	outputs, err := h.creatives.ListForProduct(c.Request.Context(), userID, productID, limit)
	if err != nil {
		utils.RespondError(c, err, "Creative output")
		return
	}
	utils.SuccessResponse(c, gin.H{"creative_outputs": outputs})
}

// GET /api/products/:id/marketing-strategy
func (h *ProductHandler) GetMarketingStrategy(c *gin.Context) {
	userID, exists := utils.GetUserIDFromContext(c)
	if !exists {
		utils.UnauthorizedResponse(c, "")
		return
	}

	productID := c.Param("id")
	if _, err := h.products.Get(c.Request.Context(), userID, productID); err != nil {
		utils.RespondError(c, err, "Product")
		return
	}

	strategy, err := h.strategies.GetForProduct(c.Request.Context(), userID, productID)
	if err != nil {
		utils.RespondError(c, err, "Marketing strategy")
		return
	}
	utils.SuccessResponse(c, strategy)
}

// PUT /api/creative-outputs/:id/ad-copies
func (h *ProductHandler) UpdateAdCopies(c *gin.Context) {
	userID, exists := utils.GetUserIDFromContext(c)
	if !exists {
		utils.UnauthorizedResponse(c, "")
		return
	}

	var req struct {
		AdCopies []models.AdCopy `json:"ad_copies"`
	}
	if err := utils.BindStrict(c, &req); err != nil {
		utils.BadRequestResponse(c, err.Error(), nil)
		return
	}

	output, err := h.creatives.UpdateAdCopies(c.Request.Context(), userID, c.Param("id"), req.AdCopies)
	if err != nil {
		utils.RespondError(c, err, "Creative output")
		return
	}

	logrus.WithFields(logrus.Fields{
		"owner_id":  userID,
		"output_id": output.ID,
	}).Info("Updated ad copies")
	utils.SuccessResponse(c, output)
}
