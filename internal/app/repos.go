package app

import (
	"gorm.io/gorm"

	"github.com/venturematch/backend/internal/data/repos"
	"github.com/venturematch/backend/internal/data/repos/interaction"
	"github.com/venturematch/backend/internal/data/repos/profile"
	"github.com/venturematch/backend/internal/pkg/logger"
)

type Repos struct {
	Profile repos.ProfileRepo
	Like    repos.LikeRepo
	Match   repos.MatchRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	log.Info("Wiring repos...")
	return Repos{
		Profile: profile.NewProfileRepo(db, log),
		Like:    interaction.NewLikeRepo(db, log),
		Match:   interaction.NewMatchRepo(db, log),
	}
}
