package services

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/venturematch/backend/internal/cache"
	"github.com/venturematch/backend/internal/data/repos"
	types "github.com/venturematch/backend/internal/domain"
	pkgerrors "github.com/venturematch/backend/internal/pkg/errors"
	"github.com/venturematch/backend/internal/pkg/logger"
)

const (
	feedTTL          = 5 * time.Minute
	defaultFeedLimit = 20
	maxFeedLimit     = 50
	scoreConcurrency = 8
)

// FeedCard is a ranked profile enriched with interaction-derived fields.
type FeedCard struct {
	Profile     *types.Profile `json:"profile"`
	LikeCount   int64          `json:"like_count"`
	HasLikedYou bool           `json:"has_liked_you"`
}

type FeedPage struct {
	Profiles []*FeedCard `json:"profiles"`
	Cursor   *string     `json:"cursor"`
	HasMore  bool        `json:"has_more"`
}

// FeedService ranks candidates for a viewer and serves paginated pages
// from a short-TTL cached id list. The cached list is derived state: a
// lost or expired entry only costs a re-rank, never data.
type FeedService interface {
	GetPage(ctx context.Context, viewerID uuid.UUID, targetRole *types.Role, cursor, limit int) (*FeedPage, error)
	Rank(ctx context.Context, viewer *types.Profile, targetRole types.Role) ([]uuid.UUID, error)
	// InvalidateViewer drops the viewer's cached feeds after a like/match
	// write changed their exclusion set.
	InvalidateViewer(ctx context.Context, profileID uuid.UUID)
	// InvalidateProfile drops a profile's own feeds and every cached
	// compatibility pair involving it, after an attribute update.
	InvalidateProfile(ctx context.Context, profileID uuid.UUID)
}

type feedService struct {
	log          *logger.Logger
	cache        cache.Cache
	profileRepo  repos.ProfileRepo
	likeRepo     repos.LikeRepo
	exclusion    ExclusionService
	compat       CompatService
	storeTimeout time.Duration
}

func NewFeedService(
	baseLog *logger.Logger,
	c cache.Cache,
	profileRepo repos.ProfileRepo,
	likeRepo repos.LikeRepo,
	exclusion ExclusionService,
	compat CompatService,
	storeTimeout time.Duration,
) FeedService {
	serviceLog := baseLog.With("service", "FeedService")
	return &feedService{
		log:          serviceLog,
		cache:        c,
		profileRepo:  profileRepo,
		likeRepo:     likeRepo,
		exclusion:    exclusion,
		compat:       compat,
		storeTimeout: storeTimeout,
	}
}

func (fs *feedService) GetPage(ctx context.Context, viewerID uuid.UUID, targetRole *types.Role, cursor, limit int) (*FeedPage, error) {
	if cursor < 0 {
		return nil, fmt.Errorf("cursor must not be negative: %w", pkgerrors.ErrInvalidArgument)
	}
	if limit <= 0 {
		limit = defaultFeedLimit
	}
	if limit > maxFeedLimit {
		limit = maxFeedLimit
	}

	storeCtx, cancel := withStoreTimeout(ctx, fs.storeTimeout)
	defer cancel()

	viewer, err := fs.profileRepo.GetByID(storeCtx, nil, viewerID)
	if err != nil {
		return nil, storeErr("get viewer profile", err)
	}

	role, err := resolveTargetRole(viewer, targetRole)
	if err != nil {
		return nil, err
	}

	key := cache.FeedKey(viewer.ID.String(), string(role))
	ids := fs.cachedIDs(ctx, key)
	if ids == nil {
		ids, err = fs.Rank(ctx, viewer, role)
		if err != nil {
			return nil, err
		}
		fs.storeIDs(ctx, key, ids)
	}

	start := cursor
	if start > len(ids) {
		start = len(ids)
	}
	end := start + limit
	hasMore := end < len(ids)
	if end > len(ids) {
		end = len(ids)
	}

	cards, err := fs.enrich(storeCtx, viewer.ID, ids[start:end])
	if err != nil {
		return nil, err
	}

	page := &FeedPage{Profiles: cards, HasMore: hasMore}
	if hasMore {
		next := strconv.Itoa(end)
		page.Cursor = &next
	}
	return page, nil
}

func (fs *feedService) Rank(ctx context.Context, viewer *types.Profile, targetRole types.Role) ([]uuid.UUID, error) {
	excluded, err := fs.exclusion.Resolve(ctx, viewer.ID)
	if err != nil {
		return nil, err
	}
	excludeIDs := make([]uuid.UUID, 0, len(excluded))
	for id := range excluded {
		excludeIDs = append(excludeIDs, id)
	}

	storeCtx, cancel := withStoreTimeout(ctx, fs.storeTimeout)
	defer cancel()

	candidates, err := fs.profileRepo.ListByRole(storeCtx, nil, targetRole, excludeIDs)
	if err != nil {
		return nil, storeErr("list candidates", err)
	}

	scores := make([]float64, len(candidates))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(scoreConcurrency)
	for i, candidate := range candidates {
		i, candidate := i, candidate
		g.Go(func() error {
			scores[i] = fs.compat.Score(gctx, viewer, candidate)
			return nil
		})
	}
	_ = g.Wait()

	// Stable sort keeps retrieval order for ties; no randomization.
	order := make([]int, len(candidates))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return scores[order[a]] > scores[order[b]]
	})

	ids := make([]uuid.UUID, len(order))
	for i, idx := range order {
		ids[i] = candidates[idx].ID
	}
	return ids, nil
}

func (fs *feedService) InvalidateViewer(ctx context.Context, profileID uuid.UUID) {
	pattern := cache.FeedPattern(profileID.String())
	if err := fs.cache.DeletePattern(ctx, pattern); err != nil {
		fs.log.Warn("feed cache invalidation failed", "pattern", pattern, "error", err)
	}
}

func (fs *feedService) InvalidateProfile(ctx context.Context, profileID uuid.UUID) {
	fs.InvalidateViewer(ctx, profileID)
	fs.compat.InvalidateProfile(ctx, profileID)
}

func (fs *feedService) cachedIDs(ctx context.Context, key string) []uuid.UUID {
	raw, ok, err := fs.cache.Get(ctx, key)
	if err != nil {
		fs.log.Warn("feed cache read failed, re-ranking", "key", key, "error", err)
		return nil
	}
	if !ok {
		return nil
	}
	var idStrings []string
	if err := json.Unmarshal([]byte(raw), &idStrings); err != nil {
		fs.log.Warn("feed cache entry malformed, re-ranking", "key", key, "error", err)
		return nil
	}
	ids := make([]uuid.UUID, 0, len(idStrings))
	for _, s := range idStrings {
		id, perr := uuid.Parse(s)
		if perr != nil {
			fs.log.Warn("feed cache entry malformed, re-ranking", "key", key, "error", perr)
			return nil
		}
		ids = append(ids, id)
	}
	return ids
}

func (fs *feedService) storeIDs(ctx context.Context, key string, ids []uuid.UUID) {
	idStrings := make([]string, len(ids))
	for i, id := range ids {
		idStrings[i] = id.String()
	}
	raw, err := json.Marshal(idStrings)
	if err != nil {
		return
	}
	if err := fs.cache.Set(ctx, key, string(raw), feedTTL); err != nil {
		fs.log.Warn("feed cache write failed", "key", key, "error", err)
	}
}

func (fs *feedService) enrich(ctx context.Context, viewerID uuid.UUID, ids []uuid.UUID) ([]*FeedCard, error) {
	if len(ids) == 0 {
		return []*FeedCard{}, nil
	}

	profiles, err := fs.profileRepo.GetByIDs(ctx, nil, ids)
	if err != nil {
		return nil, storeErr("load feed profiles", err)
	}
	byID := make(map[uuid.UUID]*types.Profile, len(profiles))
	for _, p := range profiles {
		byID[p.ID] = p
	}

	counts, err := fs.likeRepo.CountForRecipients(ctx, nil, ids)
	if err != nil {
		return nil, storeErr("count likes", err)
	}

	inbound, err := fs.likeRepo.ListByRecipient(ctx, nil, viewerID, 0)
	if err != nil {
		return nil, storeErr("list inbound likes", err)
	}
	likedYou := make(map[uuid.UUID]struct{}, len(inbound))
	for _, like := range inbound {
		likedYou[like.SenderID] = struct{}{}
	}

	cards := make([]*FeedCard, 0, len(ids))
	for _, id := range ids {
		p, ok := byID[id]
		if !ok {
			// Profile deleted since the list was cached; drop the card.
			continue
		}
		_, hasLiked := likedYou[id]
		cards = append(cards, &FeedCard{
			Profile:     p,
			LikeCount:   counts[id],
			HasLikedYou: hasLiked,
		})
	}
	return cards, nil
}

func resolveTargetRole(viewer *types.Profile, targetRole *types.Role) (types.Role, error) {
	if targetRole != nil {
		if !targetRole.Valid() {
			return "", fmt.Errorf("unknown role %q: %w", string(*targetRole), pkgerrors.ErrInvalidArgument)
		}
		return *targetRole, nil
	}
	opposite, err := viewer.Role.Opposite()
	if err != nil {
		return "", fmt.Errorf("%v: %w", err, pkgerrors.ErrInvalidArgument)
	}
	return opposite, nil
}
