// cmd/server/main.go
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	openai "github.com/sashabaranov/go-openai"
	"github.com/sirupsen/logrus"

	"github.com/nexsy/nexsy-backend/internal/auth"
	"github.com/nexsy/nexsy-backend/internal/config"
	"github.com/nexsy/nexsy-backend/internal/docstore"
	"github.com/nexsy/nexsy-backend/internal/router"
	"github.com/nexsy/nexsy-backend/internal/services"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("Failed to load configuration")
	}

	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
		logrus.SetFormatter(&logrus.JSONFormatter{})
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// Document store: Mongo when configured, in-memory otherwise.
	var docs docstore.Store
	if cfg.Mongo.URI != "" {
		mongoStore, err := docstore.NewMongoStore(ctx, cfg.Mongo)
		if err != nil {
			logrus.WithError(err).Fatal("Failed to connect to MongoDB")
		}
		docs = mongoStore
	} else {
		logrus.Warn("MONGO_URI not set, using in-memory document store")
		docs = docstore.NewMemoryStore()
	}
	defer func() {
		closeCtx, closeCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer closeCancel()
		if err := docs.Close(closeCtx); err != nil {
			logrus.WithError(err).Error("Failed to close document store")
		}
	}()

	// The provider keeps this context for later key refreshes, so it
	// must outlive startup.
	verifier, err := auth.NewOIDCVerifier(context.Background(), cfg.Auth)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to initialize token verifier")
	}

	storage, err := services.NewStorageService(cfg)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to initialize storage service")
	}
	if !storage.Available() {
		logrus.Warn("AWS credentials not set, file endpoints will be unavailable")
	}

	var aiClient services.ChatCompleter
	if cfg.OpenAI.APIKey != "" {
		aiClient = openai.NewClient(cfg.OpenAI.APIKey)
	} else {
		logrus.Warn("OPENAI_API_KEY not set, generation endpoints will be unavailable")
	}

	r := router.Initialize(router.Dependencies{
		Config:   cfg,
		Docs:     docs,
		Verifier: verifier,
		Storage:  storage,
		AIClient: aiClient,
	})

	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port),
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	go func() {
		logrus.WithField("port", cfg.Server.Port).Info("Starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.WithError(err).Fatal("Failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logrus.Info("Shutting down server")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logrus.WithError(err).Fatal("Server forced to shutdown")
	}

	logrus.Info("Server exited")
}
