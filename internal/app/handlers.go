package app

import (
	httpH "github.com/venturematch/backend/internal/http/handlers"
	httpMW "github.com/venturematch/backend/internal/http/middleware"
	"github.com/venturematch/backend/internal/pkg/logger"
)

type Handlers struct {
	Feed    *httpH.FeedHandler
	Likes   *httpH.LikesHandler
	Profile *httpH.ProfileHandler
	Health  *httpH.HealthHandler
}

func wireHandlers(log *logger.Logger, serviceset Services) Handlers {
	log.Info("Wiring handlers...")
	return Handlers{
		Feed:    httpH.NewFeedHandler(serviceset.Feed, serviceset.LikesQueue, serviceset.Standouts),
		Likes:   httpH.NewLikesHandler(serviceset.Matching),
		Profile: httpH.NewProfileHandler(serviceset.Profile),
		Health:  httpH.NewHealthHandler(),
	}
}

func wireMiddleware(log *logger.Logger, cfg Config) *httpMW.AuthMiddleware {
	if !cfg.AuthRequired {
		return nil
	}
	return httpMW.NewAuthMiddleware(log, cfg.JWTSecretKey)
}
