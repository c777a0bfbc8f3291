package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"resumade/internal/api/middleware"
	"resumade/internal/config"
	"resumade/internal/metrics"
)

// NewRouter 构建 Gin 路由引擎：恢复兜底、CORS、日志、指标与健康检查。
func NewRouter(cfg *config.Config, logger *slog.Logger) *gin.Engine {
	if cfg.API.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// 未捕获的 panic 统一收敛为 500 响应包，不把内部细节带给客户端。
	router.Use(gin.CustomRecovery(func(c *gin.Context, recovered any) {
		middleware.LoggerFromContext(c).Error("panic recovered", slog.Any("panic", recovered))
		c.AbortWithStatusJSON(http.StatusInternalServerError, Envelope{
			Success: false,
			Error:   CodeInternal,
			Message: "internal error",
		})
	}))

	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORS.Origins(),
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Correlation-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	router.Use(middleware.CorrelationIDMiddleware())
	router.Use(middleware.SlogLoggerMiddleware(logger))
	router.Use(metrics.GinMiddleware())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "ok",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return router
}
