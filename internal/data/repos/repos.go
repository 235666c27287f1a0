package repos

import (
	"github.com/venturematch/backend/internal/data/repos/interaction"
	"github.com/venturematch/backend/internal/data/repos/profile"
)

type ProfileRepo = profile.ProfileRepo

type LikeRepo = interaction.LikeRepo
type MatchRepo = interaction.MatchRepo
