package services

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/venturematch/backend/internal/cache"
	types "github.com/venturematch/backend/internal/domain"
	"github.com/venturematch/backend/internal/pkg/logger"
)

const compatScoreTTL = 1 * time.Hour

// Scoring weights. Additive, clamped to [0,100].
const (
	weightSectorOverlap = 30.0
	weightStageAligned  = 25.0
	weightCheckSizeFit  = 25.0
	weightLocationMatch = 10.0
	weightVerification  = 10.0
)

// CompatService scores viewer/candidate pairs. Scores are pure functions
// of the two profiles' declared attributes, cached per ordered pair: the
// verification term reads the candidate only, so the reversed pair is a
// distinct cache entry.
type CompatService interface {
	Score(ctx context.Context, viewer, candidate *types.Profile) float64
	Reasons(viewer, candidate *types.Profile) []string
	InvalidateProfile(ctx context.Context, profileID uuid.UUID)
}

type compatService struct {
	log   *logger.Logger
	cache cache.Cache
}

func NewCompatService(baseLog *logger.Logger, c cache.Cache) CompatService {
	serviceLog := baseLog.With("service", "CompatService")
	return &compatService{log: serviceLog, cache: c}
}

func (cs *compatService) Score(ctx context.Context, viewer, candidate *types.Profile) float64 {
	key := cache.CompatKey(viewer.ID.String(), candidate.ID.String())

	raw, ok, err := cs.cache.Get(ctx, key)
	if err != nil {
		cs.log.Warn("score cache read failed, recomputing", "error", err)
	} else if ok {
		if v, perr := strconv.ParseFloat(raw, 64); perr == nil {
			return v
		}
	}

	score := ComputeScore(viewer, candidate)

	if err := cs.cache.Set(ctx, key, strconv.FormatFloat(score, 'f', -1, 64), compatScoreTTL); err != nil {
		cs.log.Warn("score cache write failed", "error", err)
	}
	return score
}

func (cs *compatService) Reasons(viewer, candidate *types.Profile) []string {
	reasons := make([]string, 0, 3)

	if shared := sharedValues(viewer.FocusSectors(), candidate.FocusSectors()); len(shared) > 0 {
		reasons = append(reasons, fmt.Sprintf("Shared focus in %s", shared[0]))
	}
	if loc, ok := sharedLocation(viewer, candidate); ok {
		reasons = append(reasons, fmt.Sprintf("Both based in %s", loc))
	}
	if candidate.Verified() {
		reasons = append(reasons, "Verified profile")
	}
	if viewer.Role != candidate.Role {
		if shared := sharedValues(viewer.FocusStages(), candidate.FocusStages()); len(shared) > 0 {
			reasons = append(reasons, fmt.Sprintf("Aligned on %s stage", shared[0]))
		}
	}

	if len(reasons) > 3 {
		reasons = reasons[:3]
	}
	return reasons
}

func (cs *compatService) InvalidateProfile(ctx context.Context, profileID uuid.UUID) {
	for _, pattern := range cache.CompatPatterns(profileID.String()) {
		if err := cs.cache.DeletePattern(ctx, pattern); err != nil {
			cs.log.Warn("score cache invalidation failed", "pattern", pattern, "error", err)
		}
	}
}

// ComputeScore is the deterministic scoring function. Missing attributes
// contribute zero; the result is clamped to [0,100].
func ComputeScore(viewer, candidate *types.Profile) float64 {
	score := 0.0

	viewerSectors := normalizeSet(viewer.FocusSectors())
	candidateSectors := normalizeSet(candidate.FocusSectors())
	if len(viewerSectors) > 0 && len(candidateSectors) > 0 {
		intersection, union := overlap(viewerSectors, candidateSectors)
		if union > 0 {
			score += weightSectorOverlap * float64(intersection) / float64(union)
		}
	}

	if viewer.Role != candidate.Role {
		viewerStages := normalizeSet(viewer.FocusStages())
		candidateStages := normalizeSet(candidate.FocusStages())
		if intersection, _ := overlap(viewerStages, candidateStages); intersection > 0 {
			score += weightStageAligned
		}
	}

	if checkSizeFits(viewer, candidate) {
		score += weightCheckSizeFit
	}

	if _, ok := sharedLocation(viewer, candidate); ok {
		score += weightLocationMatch
	}

	if candidate.Verified() {
		score += weightVerification
	}

	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}
	return score
}

// checkSizeFits reports whether the founder's annualized run rate falls
// inside the investor's check-size range, whichever side of the pair each
// party is on. An absent max is open-ended.
func checkSizeFits(a, b *types.Profile) bool {
	var investor, founder *types.Profile
	switch {
	case a.Role == types.RoleInvestor && b.Role == types.RoleFounder:
		investor, founder = a, b
	case a.Role == types.RoleFounder && b.Role == types.RoleInvestor:
		investor, founder = b, a
	default:
		return false
	}

	sizeMin, sizeMax := investor.CheckSizeRange()
	if sizeMin == nil && sizeMax == nil {
		return false
	}
	rate := founder.RevenueRunRate()
	if rate == nil {
		return false
	}

	annualized := *rate * 12
	lower := 0.0
	if sizeMin != nil {
		lower = float64(*sizeMin)
	}
	if annualized < lower {
		return false
	}
	if sizeMax != nil && annualized > float64(*sizeMax) {
		return false
	}
	return true
}

func sharedLocation(a, b *types.Profile) (string, bool) {
	if a.Location == nil || b.Location == nil {
		return "", false
	}
	locA := strings.TrimSpace(*a.Location)
	locB := strings.TrimSpace(*b.Location)
	if locA == "" || locB == "" {
		return "", false
	}
	if !strings.EqualFold(locA, locB) {
		return "", false
	}
	return locB, true
}

func normalizeSet(values []string) map[string]struct{} {
	out := make(map[string]struct{}, len(values))
	for _, v := range values {
		k := strings.TrimSpace(strings.ToLower(v))
		if k == "" {
			continue
		}
		out[k] = struct{}{}
	}
	return out
}

func overlap(a, b map[string]struct{}) (intersection, union int) {
	for k := range a {
		if _, ok := b[k]; ok {
			intersection++
		}
	}
	union = len(a) + len(b) - intersection
	return intersection, union
}

// sharedValues returns b's spellings of the values both sides declare,
// preserving b's declaration order.
func sharedValues(a, b []string) []string {
	aSet := normalizeSet(a)
	var out []string
	seen := map[string]bool{}
	for _, v := range b {
		k := strings.TrimSpace(strings.ToLower(v))
		if k == "" || seen[k] {
			continue
		}
		if _, ok := aSet[k]; ok {
			seen[k] = true
			out = append(out, strings.TrimSpace(v))
		}
	}
	return out
}
