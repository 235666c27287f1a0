package app

import (
	"gorm.io/gorm"

	"github.com/venturematch/backend/internal/pkg/logger"
	"github.com/venturematch/backend/internal/services"
)

type Services struct {
	Compat     services.CompatService
	Exclusion  services.ExclusionService
	Feed       services.FeedService
	LikesQueue services.LikesQueueService
	Standouts  services.StandoutsService
	Matching   services.MatchingService
	Profile    services.ProfileService
}

func wireServices(db *gorm.DB, log *logger.Logger, cfg Config, clients Clients, reposet Repos) Services {
	log.Info("Wiring services...")

	compat := services.NewCompatService(log, clients.Cache)
	exclusion := services.NewExclusionService(log, reposet.Like, reposet.Match, cfg.StoreTimeout)
	feed := services.NewFeedService(log, clients.Cache, reposet.Profile, reposet.Like, exclusion, compat, cfg.StoreTimeout)
	likesQueue := services.NewLikesQueueService(log, clients.Cache, reposet.Like, reposet.Profile, cfg.StoreTimeout)
	standouts := services.NewStandoutsService(log, reposet.Profile, exclusion, compat, cfg.StoreTimeout)
	matching := services.NewMatchingService(db, log, reposet.Profile, reposet.Like, reposet.Match, feed, likesQueue, cfg.StoreTimeout)
	profileSvc := services.NewProfileService(log, reposet.Profile, feed, cfg.StoreTimeout)

	return Services{
		Compat:     compat,
		Exclusion:  exclusion,
		Feed:       feed,
		LikesQueue: likesQueue,
		Standouts:  standouts,
		Matching:   matching,
		Profile:    profileSvc,
	}
}
