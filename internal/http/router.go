package http

import (
	"github.com/gin-gonic/gin"
	httpH "github.com/venturematch/backend/internal/http/handlers"
	httpMW "github.com/venturematch/backend/internal/http/middleware"
	"github.com/venturematch/backend/internal/pkg/logger"
)

type RouterConfig struct {
	AuthMiddleware *httpMW.AuthMiddleware

	FeedHandler    *httpH.FeedHandler
	LikesHandler   *httpH.LikesHandler
	ProfileHandler *httpH.ProfileHandler

	HealthHandler *httpH.HealthHandler

	Log *logger.Logger
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	if cfg.Log != nil {
		r.Use(httpMW.RequestLogger(cfg.Log))
	}
	r.Use(httpMW.CORS())

	// Health
	if cfg.HealthHandler != nil {
		r.GET("/healthcheck", cfg.HealthHandler.HealthCheck)
	}

	api := r.Group("/api")
	{
		if cfg.AuthMiddleware != nil {
			api.Use(cfg.AuthMiddleware.RequireAuth())
		}

		// Discovery feed
		if cfg.FeedHandler != nil {
			api.GET("/feed/discover", cfg.FeedHandler.Discover)
			api.GET("/feed/likes-queue", cfg.FeedHandler.LikesQueue)
			api.GET("/feed/standouts", cfg.FeedHandler.Standouts)
		}

		// Likes & matches
		if cfg.LikesHandler != nil {
			api.POST("/likes", cfg.LikesHandler.RecordLike)
			api.GET("/matches", cfg.LikesHandler.ListMatches)
		}

		// Profiles
		if cfg.ProfileHandler != nil {
			api.GET("/profiles/:id", cfg.ProfileHandler.GetProfile)
			api.PATCH("/profiles/:id/attributes", cfg.ProfileHandler.UpdateAttributes)
		}
	}

	return r
}
