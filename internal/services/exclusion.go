package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/venturematch/backend/internal/data/repos"
	"github.com/venturematch/backend/internal/pkg/logger"
)

// ExclusionService computes the ids that must never surface in a viewer's
// discovery feed: the viewer itself, every matched counterparty regardless
// of match status, and both directions of any existing like. The set
// changes on every like, so it is recomputed fresh on each ranking pass
// and never cached.
type ExclusionService interface {
	Resolve(ctx context.Context, viewerID uuid.UUID) (map[uuid.UUID]struct{}, error)
}

type exclusionService struct {
	log          *logger.Logger
	likeRepo     repos.LikeRepo
	matchRepo    repos.MatchRepo
	storeTimeout time.Duration
}

func NewExclusionService(baseLog *logger.Logger, likeRepo repos.LikeRepo, matchRepo repos.MatchRepo, storeTimeout time.Duration) ExclusionService {
	serviceLog := baseLog.With("service", "ExclusionService")
	return &exclusionService{
		log:          serviceLog,
		likeRepo:     likeRepo,
		matchRepo:    matchRepo,
		storeTimeout: storeTimeout,
	}
}

func (es *exclusionService) Resolve(ctx context.Context, viewerID uuid.UUID) (map[uuid.UUID]struct{}, error) {
	ctx, cancel := withStoreTimeout(ctx, es.storeTimeout)
	defer cancel()

	excluded := map[uuid.UUID]struct{}{
		viewerID: {},
	}

	sent, err := es.likeRepo.ListBySender(ctx, nil, viewerID)
	if err != nil {
		return nil, storeErr("list sent likes", err)
	}
	for _, like := range sent {
		excluded[like.RecipientID] = struct{}{}
	}

	received, err := es.likeRepo.ListByRecipient(ctx, nil, viewerID, 0)
	if err != nil {
		return nil, storeErr("list received likes", err)
	}
	for _, like := range received {
		excluded[like.SenderID] = struct{}{}
	}

	matches, err := es.matchRepo.ListByProfile(ctx, nil, viewerID)
	if err != nil {
		return nil, storeErr("list matches", err)
	}
	for _, match := range matches {
		excluded[match.OtherParty(viewerID)] = struct{}{}
	}

	return excluded, nil
}
