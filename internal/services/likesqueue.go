package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/venturematch/backend/internal/cache"
	"github.com/venturematch/backend/internal/data/repos"
	types "github.com/venturematch/backend/internal/domain"
	"github.com/venturematch/backend/internal/pkg/logger"
)

const (
	likesQueueCap     = 200
	likesQueueTTL     = 24 * time.Hour
	defaultQueueLimit = 50
)

type LikesQueueEntry struct {
	Profile *types.Profile `json:"profile"`
	LikeID  uuid.UUID      `json:"like_id"`
	Note    *string        `json:"note,omitempty"`
	LikedAt time.Time      `json:"liked_at"`
}

// LikesQueueService serves a recipient's inbound likes most-recent-first.
// A capped Redis list accelerates the read; the Interaction Store stays the
// source of truth, so an empty or failed list read falls through to it and
// never hides real likes.
type LikesQueueService interface {
	Queue(ctx context.Context, recipientID uuid.UUID, limit int) ([]*LikesQueueEntry, error)
	// Push records a freshly created like on the accelerator; best-effort.
	Push(ctx context.Context, like *types.Like)
}

type likesQueueService struct {
	log          *logger.Logger
	cache        cache.Cache
	likeRepo     repos.LikeRepo
	profileRepo  repos.ProfileRepo
	storeTimeout time.Duration
}

func NewLikesQueueService(
	baseLog *logger.Logger,
	c cache.Cache,
	likeRepo repos.LikeRepo,
	profileRepo repos.ProfileRepo,
	storeTimeout time.Duration,
) LikesQueueService {
	serviceLog := baseLog.With("service", "LikesQueueService")
	return &likesQueueService{
		log:          serviceLog,
		cache:        c,
		likeRepo:     likeRepo,
		profileRepo:  profileRepo,
		storeTimeout: storeTimeout,
	}
}

func (ls *likesQueueService) Queue(ctx context.Context, recipientID uuid.UUID, limit int) ([]*LikesQueueEntry, error) {
	if limit <= 0 {
		limit = defaultQueueLimit
	}

	storeCtx, cancel := withStoreTimeout(ctx, ls.storeTimeout)
	defer cancel()

	// Recipient must exist before we report an empty queue.
	if _, err := ls.profileRepo.GetByID(storeCtx, nil, recipientID); err != nil {
		return nil, storeErr("get recipient profile", err)
	}

	likes, err := ls.fromAccelerator(ctx, storeCtx, recipientID, limit)
	if err != nil {
		return nil, err
	}
	if len(likes) == 0 {
		likes, err = ls.likeRepo.ListByRecipient(storeCtx, nil, recipientID, limit)
		if err != nil {
			return nil, storeErr("list likes", err)
		}
	}
	if len(likes) == 0 {
		return []*LikesQueueEntry{}, nil
	}

	senderIDs := make([]uuid.UUID, len(likes))
	for i, like := range likes {
		senderIDs[i] = like.SenderID
	}
	senders, err := ls.profileRepo.GetByIDs(storeCtx, nil, senderIDs)
	if err != nil {
		return nil, storeErr("load sender profiles", err)
	}
	byID := make(map[uuid.UUID]*types.Profile, len(senders))
	for _, p := range senders {
		byID[p.ID] = p
	}

	entries := make([]*LikesQueueEntry, 0, len(likes))
	for _, like := range likes {
		sender, ok := byID[like.SenderID]
		if !ok {
			continue
		}
		entries = append(entries, &LikesQueueEntry{
			Profile: sender,
			LikeID:  like.ID,
			Note:    like.Note,
			LikedAt: like.CreatedAt,
		})
	}
	return entries, nil
}

func (ls *likesQueueService) Push(ctx context.Context, like *types.Like) {
	key := cache.LikesQueueKey(like.RecipientID.String())
	if err := ls.cache.PushFront(ctx, key, like.ID.String(), likesQueueCap, likesQueueTTL); err != nil {
		ls.log.Warn("likes queue push failed", "key", key, "error", err)
	}
}

// fromAccelerator reads the cached like-id window. Any cache failure or
// unparsable entry degrades to the fallback path; store failures while
// resolving cached ids are real dependency errors.
func (ls *likesQueueService) fromAccelerator(ctx, storeCtx context.Context, recipientID uuid.UUID, limit int) ([]*types.Like, error) {
	key := cache.LikesQueueKey(recipientID.String())
	raw, err := ls.cache.Range(ctx, key, 0, int64(limit)-1)
	if err != nil {
		ls.log.Warn("likes queue read failed, falling back to store", "key", key, "error", err)
		return nil, nil
	}
	if len(raw) == 0 {
		return nil, nil
	}

	ids := make([]uuid.UUID, 0, len(raw))
	for _, s := range raw {
		id, perr := uuid.Parse(s)
		if perr != nil {
			ls.log.Warn("likes queue entry malformed, falling back to store", "key", key, "error", perr)
			return nil, nil
		}
		ids = append(ids, id)
	}

	rows, err := ls.likeRepo.GetByIDs(storeCtx, nil, ids)
	if err != nil {
		return nil, storeErr("load queued likes", err)
	}
	byID := make(map[uuid.UUID]*types.Like, len(rows))
	for _, like := range rows {
		byID[like.ID] = like
	}

	ordered := make([]*types.Like, 0, len(ids))
	for _, id := range ids {
		if like, ok := byID[id]; ok {
			ordered = append(ordered, like)
		}
	}
	return ordered, nil
}
