package api

import (
	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"resumade/internal/api/middleware"
	"resumade/internal/auth"
	"resumade/internal/config"
	"resumade/internal/service"
	"resumade/internal/storage"
)

// RegisterRoutes 注册 API 路由。
func RegisterRoutes(
	router *gin.Engine,
	cfg *config.Config,
	db *gorm.DB,
	tokens *auth.TokenService,
	asynqClient *asynq.Client,
	redisClient redis.UniversalClient,
	storageClient *storage.Client,
	logger *slog.Logger,
) {
	hasher := auth.NewHasher(cfg.Auth.BcryptCost)
	users := service.NewUserService(db, hasher, tokens)
	resumes := service.NewResumeService(db)
	guard := service.NewGuard(resumes)

	authHandler := NewAuthHandler(users, redisClient, logger,
		cfg.Login.RateLimitPerHour, cfg.Login.LockThreshold, cfg.Login.LockTTL())
	resumeHandler := NewResumeHandler(resumes, guard, asynqClient, storageClient, logger)
	photoHandler := NewPhotoHandler(storageClient, logger, cfg.Clamd.Addr)
	authMiddleware := middleware.AuthMiddleware(tokens)

	v1 := router.Group("/v1")
	{
		authGroup := v1.Group("/auth")
		{
			authGroup.POST("/register", authHandler.Register)
			authGroup.POST("/login", authHandler.Login)
			authGroup.GET("/me", authMiddleware, authHandler.Me)
			authGroup.PUT("/me", authMiddleware, authHandler.UpdateMe)
		}

		resumeGroup := v1.Group("/resumes")
		resumeGroup.Use(authMiddleware)
		{
			resumeGroup.POST("", resumeHandler.CreateResume)
			resumeGroup.GET("", resumeHandler.ListResumes)
			resumeGroup.GET("/:id", resumeHandler.GetResume)
			resumeGroup.PUT("/:id", resumeHandler.UpdateResume)
			resumeGroup.DELETE("/:id", resumeHandler.DeleteResume)
			resumeGroup.POST("/:id/export", resumeHandler.ExportResume)
			resumeGroup.GET("/:id/export-link", resumeHandler.GetExportLink)
		}

		photoGroup := v1.Group("/assets")
		photoGroup.Use(authMiddleware)
		{
			photoGroup.POST("/photo", photoHandler.UploadPhoto)
			photoGroup.GET("/photo/view", photoHandler.GetPhotoURL)
		}
	}
}
