// internal/router/router.go
package router

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nexsy/nexsy-backend/internal/auth"
	"github.com/nexsy/nexsy-backend/internal/config"
	"github.com/nexsy/nexsy-backend/internal/docstore"
	"github.com/nexsy/nexsy-backend/internal/handlers"
	"github.com/nexsy/nexsy-backend/internal/middleware"
	"github.com/nexsy/nexsy-backend/internal/services"
	"github.com/nexsy/nexsy-backend/internal/stores"
)

// Dependencies holds everything the router wires together. All of them
// are constructed at startup; nothing is created lazily on the request
// path.
type Dependencies struct {
	Config   *config.Config
	Docs     docstore.Store
	Verifier auth.TokenVerifier
	Storage  *services.StorageService
	AIClient services.ChatCompleter
}

func Initialize(deps Dependencies) *gin.Engine {
	// Entity stores
	productStore := stores.NewProductStore(deps.Docs)
	strategyStore := stores.NewStrategyStore(deps.Docs)
	creativeStore := stores.NewCreativeOutputStore(deps.Docs)
	visualStore := stores.NewVisualStore(deps.Docs)

	aiService := services.NewAIService(deps.Config, deps.AIClient, productStore, strategyStore, creativeStore)

	// Handlers
	authHandler := handlers.NewAuthHandler()
	productHandler := handlers.NewProductHandler(productStore, visualStore, creativeStore, strategyStore, deps.Storage)
	visualHandler := handlers.NewVisualHandler(visualStore, deps.Storage)
	uploadHandler := handlers.NewUploadHandler(deps.Storage)
	aiHandler := handlers.NewAIHandler(aiService)

	r := gin.New()

	// Global middleware
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.CORS(deps.Config.CORS.AllowedOrigins))

	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "Nexsy API is running"})
	})
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"service": "nexsy-api",
		})
	})

	api := r.Group("/api")
	api.Use(middleware.AuthRequired(deps.Verifier))
	{
		authRoutes := api.Group("/auth")
		{
			authRoutes.GET("/me", authHandler.Me)
			authRoutes.POST("/verify-token", authHandler.VerifyToken)
		}

		products := api.Group("/products")
		{
			products.POST("", productHandler.CreateProduct)
			products.GET("", productHandler.ListProducts)
			products.GET("/search", productHandler.SearchProducts)
			products.GET("/:id", productHandler.GetProduct)
			products.PUT("/:id", productHandler.UpdateProduct)
			products.DELETE("/:id", productHandler.DeleteProduct)
			products.POST("/:id/visuals", productHandler.UploadVisual)
			products.GET("/:id/visuals", productHandler.ListProductVisuals)
			products.GET("/:id/creative-outputs", productHandler.ListProductCreativeOutputs)
			products.GET("/:id/marketing-strategy", productHandler.GetMarketingStrategy)
		}

		api.PUT("/creative-outputs/:id/ad-copies", productHandler.UpdateAdCopies)

		visuals := api.Group("/visuals")
		{
			visuals.GET("", visualHandler.ListVisuals)
			visuals.GET("/:id", visualHandler.GetVisual)
			visuals.PUT("/:id", visualHandler.UpdateVisual)
			visuals.DELETE("/:id", visualHandler.DeleteVisual)
		}

		ai := api.Group("/ai")
		{
			ai.POST("/autofill-product", aiHandler.AutofillProduct)
			ai.POST("/generate-marketing-strategy/:product_id", aiHandler.GenerateMarketingStrategy)
			ai.POST("/generate-ad-copies", aiHandler.GenerateAdCopies)
			ai.POST("/enhance-product/:product_id", aiHandler.EnhanceProduct)
			ai.GET("/health", aiHandler.Health)
		}

		api.POST("/upload", uploadHandler.UploadFile)
		api.POST("/files/signed-url", uploadHandler.SignedURL)
		api.DELETE("/files", uploadHandler.DeleteFile)
		api.GET("/files", uploadHandler.ListFiles)
	}

	return r
}
