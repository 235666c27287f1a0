package interaction

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/venturematch/backend/internal/data/repos/testutil"
	types "github.com/venturematch/backend/internal/domain"
)

func TestMatchRepoFindForPairBothOrientations(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	repo := NewMatchRepo(tx, testutil.Logger(t))
	ctx := context.Background()

	founder, investor := seedPair(t, tx)

	if got, err := repo.FindForPair(ctx, nil, founder.ID, investor.ID); err != nil || got != nil {
		t.Fatalf("empty FindForPair: got=%v err=%v", got, err)
	}

	created, err := repo.Create(ctx, nil, &types.Match{
		FounderID:  founder.ID,
		InvestorID: investor.ID,
		Status:     types.MatchStatusActive,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	for _, pair := range [][2]uuid.UUID{
		{founder.ID, investor.ID},
		{investor.ID, founder.ID},
	} {
		got, err := repo.FindForPair(ctx, nil, pair[0], pair[1])
		if err != nil {
			t.Fatalf("FindForPair(%s, %s): %v", pair[0], pair[1], err)
		}
		if got == nil || got.ID != created.ID {
			t.Fatalf("FindForPair(%s, %s): got=%v", pair[0], pair[1], got)
		}
	}
}

func TestMatchRepoPairUniqueness(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	repo := NewMatchRepo(tx, testutil.Logger(t))
	ctx := context.Background()

	founder, investor := seedPair(t, tx)

	if _, err := repo.Create(ctx, nil, &types.Match{
		FounderID:  founder.ID,
		InvestorID: investor.ID,
		Status:     types.MatchStatusActive,
	}); err != nil {
		t.Fatalf("Create: %v", err)
	}

	if _, err := repo.Create(ctx, nil, &types.Match{
		FounderID:  founder.ID,
		InvestorID: investor.ID,
		Status:     types.MatchStatusActive,
	}); err == nil {
		t.Fatalf("duplicate pair accepted")
	}
}

func TestMatchRepoListByProfile(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	repo := NewMatchRepo(tx, testutil.Logger(t))
	ctx := context.Background()

	founder, investor := seedPair(t, tx)
	other, _ := seedPair(t, tx)

	created, err := repo.Create(ctx, nil, &types.Match{
		FounderID:  founder.ID,
		InvestorID: investor.ID,
		Status:     types.MatchStatusActive,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	for _, id := range []uuid.UUID{founder.ID, investor.ID} {
		matches, err := repo.ListByProfile(ctx, nil, id)
		if err != nil {
			t.Fatalf("ListByProfile(%s): %v", id, err)
		}
		if len(matches) != 1 || matches[0].ID != created.ID {
			t.Fatalf("ListByProfile(%s): %+v", id, matches)
		}
	}

	empty, err := repo.ListByProfile(ctx, nil, other.ID)
	if err != nil {
		t.Fatalf("ListByProfile(other): %v", err)
	}
	if len(empty) != 0 {
		t.Fatalf("uninvolved profile has matches: %+v", empty)
	}

	if created.OtherParty(founder.ID) != investor.ID || created.OtherParty(investor.ID) != founder.ID {
		t.Fatalf("OtherParty mismatch")
	}
}
