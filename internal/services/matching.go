package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/venturematch/backend/internal/data/repos"
	types "github.com/venturematch/backend/internal/domain"
	pkgerrors "github.com/venturematch/backend/internal/pkg/errors"
	"github.com/venturematch/backend/internal/pkg/logger"
)

const (
	LikeStatusMatched = "matched"
	LikeStatusPending = "pending"
)

type LikeResult struct {
	Status string       `json:"status"`
	Match  *types.Match `json:"match"`
}

// MatchingService records likes, detects reciprocity and creates matches.
// Duplicate likes and re-likes of an already matched pair are no-ops
// returning the existing state. The like table's unique (sender,
// recipient) index serializes concurrent duplicate submissions.
type MatchingService interface {
	RecordLike(ctx context.Context, senderID, recipientID uuid.UUID, note *string) (*LikeResult, error)
	ListMatches(ctx context.Context, profileID uuid.UUID) ([]*types.Match, error)
}

type matchingService struct {
	db           *gorm.DB
	log          *logger.Logger
	profileRepo  repos.ProfileRepo
	likeRepo     repos.LikeRepo
	matchRepo    repos.MatchRepo
	feed         FeedService
	likesQueue   LikesQueueService
	storeTimeout time.Duration
}

func NewMatchingService(
	db *gorm.DB,
	baseLog *logger.Logger,
	profileRepo repos.ProfileRepo,
	likeRepo repos.LikeRepo,
	matchRepo repos.MatchRepo,
	feed FeedService,
	likesQueue LikesQueueService,
	storeTimeout time.Duration,
) MatchingService {
	serviceLog := baseLog.With("service", "MatchingService")
	return &matchingService{
		db:           db,
		log:          serviceLog,
		profileRepo:  profileRepo,
		likeRepo:     likeRepo,
		matchRepo:    matchRepo,
		feed:         feed,
		likesQueue:   likesQueue,
		storeTimeout: storeTimeout,
	}
}

func (ms *matchingService) RecordLike(ctx context.Context, senderID, recipientID uuid.UUID, note *string) (*LikeResult, error) {
	if senderID == recipientID {
		return nil, fmt.Errorf("cannot like own profile: %w", pkgerrors.ErrInvalidArgument)
	}

	storeCtx, cancel := withStoreTimeout(ctx, ms.storeTimeout)
	defer cancel()

	sender, err := ms.profileRepo.GetByID(storeCtx, nil, senderID)
	if err != nil {
		return nil, storeErr("get sender profile", err)
	}
	recipient, err := ms.profileRepo.GetByID(storeCtx, nil, recipientID)
	if err != nil {
		return nil, storeErr("get recipient profile", err)
	}

	var result *LikeResult
	var createdLike *types.Like

	txErr := ms.db.WithContext(storeCtx).Transaction(func(tx *gorm.DB) error {
		// Already matched pair: idempotent no-op returning existing state.
		existing, err := ms.matchRepo.FindForPair(storeCtx, tx, senderID, recipientID)
		if err != nil {
			return err
		}
		if existing != nil {
			result = &LikeResult{Status: LikeStatusMatched, Match: existing}
			return nil
		}

		like, created, err := ms.likeRepo.Create(storeCtx, tx, &types.Like{
			SenderID:    senderID,
			RecipientID: recipientID,
			Note:        note,
		})
		if err != nil {
			return err
		}
		if created {
			createdLike = like
		}

		reciprocal, err := ms.likeRepo.Find(storeCtx, tx, recipientID, senderID)
		if err != nil {
			return err
		}
		if reciprocal == nil {
			result = &LikeResult{Status: LikeStatusPending}
			return nil
		}

		founderID, investorID, err := resolveMatchRoles(sender, recipient)
		if err != nil {
			return err
		}
		match, err := ms.matchRepo.Create(storeCtx, tx, &types.Match{
			FounderID:  founderID,
			InvestorID: investorID,
			Status:     types.MatchStatusActive,
		})
		if err != nil {
			// A concurrent request may have won the pair-unique index.
			if concurrent, ferr := ms.matchRepo.FindForPair(storeCtx, tx, senderID, recipientID); ferr == nil && concurrent != nil {
				result = &LikeResult{Status: LikeStatusMatched, Match: concurrent}
				return nil
			}
			return err
		}
		result = &LikeResult{Status: LikeStatusMatched, Match: match}
		return nil
	})
	if txErr != nil {
		return nil, storeErr("record like", txErr)
	}

	// Side effects after commit: the exclusion sets of both parties
	// changed, so both feeds are stale; the recipient gained a queued like.
	if createdLike != nil {
		ms.likesQueue.Push(ctx, createdLike)
		ms.feed.InvalidateViewer(ctx, senderID)
		ms.feed.InvalidateViewer(ctx, recipientID)
	} else if result.Status == LikeStatusMatched {
		ms.feed.InvalidateViewer(ctx, senderID)
		ms.feed.InvalidateViewer(ctx, recipientID)
	}

	return result, nil
}

func (ms *matchingService) ListMatches(ctx context.Context, profileID uuid.UUID) ([]*types.Match, error) {
	storeCtx, cancel := withStoreTimeout(ctx, ms.storeTimeout)
	defer cancel()

	if _, err := ms.profileRepo.GetByID(storeCtx, nil, profileID); err != nil {
		return nil, storeErr("get profile", err)
	}
	matches, err := ms.matchRepo.ListByProfile(storeCtx, nil, profileID)
	if err != nil {
		return nil, storeErr("list matches", err)
	}
	return matches, nil
}

// resolveMatchRoles maps the liking pair onto the match's founder/investor
// slots. A same-role pair cannot match.
func resolveMatchRoles(a, b *types.Profile) (founderID, investorID uuid.UUID, err error) {
	switch {
	case a.Role == types.RoleFounder && b.Role == types.RoleInvestor:
		return a.ID, b.ID, nil
	case a.Role == types.RoleInvestor && b.Role == types.RoleFounder:
		return b.ID, a.ID, nil
	default:
		return uuid.Nil, uuid.Nil, fmt.Errorf("match requires one founder and one investor: %w", pkgerrors.ErrInvalidArgument)
	}
}
