package services

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/venturematch/backend/internal/data/repos"
	types "github.com/venturematch/backend/internal/domain"
	pkgerrors "github.com/venturematch/backend/internal/pkg/errors"
	"github.com/venturematch/backend/internal/pkg/logger"
)

const (
	// Candidates below the threshold are excluded entirely, not just
	// ranked lower.
	standoutThreshold     = 70.0
	defaultStandoutsLimit = 10
)

type Standout struct {
	Profile            *types.Profile `json:"profile"`
	CompatibilityScore float64        `json:"compatibility_score"`
	MatchReasons       []string       `json:"match_reasons"`
}

type StandoutsService interface {
	Standouts(ctx context.Context, viewerID uuid.UUID, limit int) ([]*Standout, error)
}

type standoutsService struct {
	log          *logger.Logger
	profileRepo  repos.ProfileRepo
	exclusion    ExclusionService
	compat       CompatService
	storeTimeout time.Duration
}

func NewStandoutsService(
	baseLog *logger.Logger,
	profileRepo repos.ProfileRepo,
	exclusion ExclusionService,
	compat CompatService,
	storeTimeout time.Duration,
) StandoutsService {
	serviceLog := baseLog.With("service", "StandoutsService")
	return &standoutsService{
		log:          serviceLog,
		profileRepo:  profileRepo,
		exclusion:    exclusion,
		compat:       compat,
		storeTimeout: storeTimeout,
	}
}

func (ss *standoutsService) Standouts(ctx context.Context, viewerID uuid.UUID, limit int) ([]*Standout, error) {
	if limit <= 0 {
		limit = defaultStandoutsLimit
	}

	storeCtx, cancel := withStoreTimeout(ctx, ss.storeTimeout)
	defer cancel()

	viewer, err := ss.profileRepo.GetByID(storeCtx, nil, viewerID)
	if err != nil {
		return nil, storeErr("get viewer profile", err)
	}
	targetRole, err := viewer.Role.Opposite()
	if err != nil {
		return nil, fmt.Errorf("%v: %w", err, pkgerrors.ErrInvalidArgument)
	}

	excluded, err := ss.exclusion.Resolve(ctx, viewerID)
	if err != nil {
		return nil, err
	}
	excludeIDs := make([]uuid.UUID, 0, len(excluded))
	for id := range excluded {
		excludeIDs = append(excludeIDs, id)
	}

	candidates, err := ss.profileRepo.ListByRole(storeCtx, nil, targetRole, excludeIDs)
	if err != nil {
		return nil, storeErr("list candidates", err)
	}

	standouts := make([]*Standout, 0, len(candidates))
	for _, candidate := range candidates {
		score := ss.compat.Score(ctx, viewer, candidate)
		if score < standoutThreshold {
			continue
		}
		standouts = append(standouts, &Standout{
			Profile:            candidate,
			CompatibilityScore: score,
			MatchReasons:       ss.compat.Reasons(viewer, candidate),
		})
	}

	sort.SliceStable(standouts, func(a, b int) bool {
		return standouts[a].CompatibilityScore > standouts[b].CompatibilityScore
	})
	if len(standouts) > limit {
		standouts = standouts[:limit]
	}
	return standouts, nil
}
