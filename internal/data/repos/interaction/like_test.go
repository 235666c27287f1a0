package interaction

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/venturematch/backend/internal/data/repos/profile"
	"github.com/venturematch/backend/internal/data/repos/testutil"
	types "github.com/venturematch/backend/internal/domain"
)

func seedPair(t *testing.T, tx *gorm.DB) (*types.Profile, *types.Profile) {
	t.Helper()
	repo := profile.NewProfileRepo(tx, testutil.Logger(t))
	founder := &types.Profile{ID: uuid.New(), Role: types.RoleFounder, DisplayName: "fred"}
	investor := &types.Profile{ID: uuid.New(), Role: types.RoleInvestor, DisplayName: "ivy"}
	if _, err := repo.Create(context.Background(), nil, []*types.Profile{founder, investor}); err != nil {
		t.Fatalf("seed pair: %v", err)
	}
	return founder, investor
}

func TestLikeRepoCreateIdempotent(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	repo := NewLikeRepo(tx, testutil.Logger(t))
	ctx := context.Background()

	founder, investor := seedPair(t, tx)

	first, created, err := repo.Create(ctx, nil, &types.Like{
		SenderID:    founder.ID,
		RecipientID: investor.ID,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if !created {
		t.Fatalf("first insert not reported as created")
	}

	second, created, err := repo.Create(ctx, nil, &types.Like{
		SenderID:    founder.ID,
		RecipientID: investor.ID,
	})
	if err != nil {
		t.Fatalf("duplicate Create: %v", err)
	}
	if created {
		t.Fatalf("duplicate insert reported as created")
	}
	if second.ID != first.ID {
		t.Fatalf("duplicate returned a different row: %s vs %s", second.ID, first.ID)
	}

	// The unique index covers the ordered pair only; the reverse direction
	// is a distinct like.
	_, created, err = repo.Create(ctx, nil, &types.Like{
		SenderID:    investor.ID,
		RecipientID: founder.ID,
	})
	if err != nil {
		t.Fatalf("reverse Create: %v", err)
	}
	if !created {
		t.Fatalf("reverse direction treated as duplicate")
	}
}

func TestLikeRepoFind(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	repo := NewLikeRepo(tx, testutil.Logger(t))
	ctx := context.Background()

	founder, investor := seedPair(t, tx)

	got, err := repo.Find(ctx, nil, founder.ID, investor.ID)
	if err != nil {
		t.Fatalf("Find on empty table: %v", err)
	}
	if got != nil {
		t.Fatalf("expected nil for absent like, got %+v", got)
	}

	if _, _, err := repo.Create(ctx, nil, &types.Like{SenderID: founder.ID, RecipientID: investor.ID}); err != nil {
		t.Fatalf("Create: %v", err)
	}

	got, err = repo.Find(ctx, nil, founder.ID, investor.ID)
	if err != nil {
		t.Fatalf("Find: %v", err)
	}
	if got == nil || got.SenderID != founder.ID {
		t.Fatalf("Find mismatch: %+v", got)
	}

	// Direction matters.
	reverse, err := repo.Find(ctx, nil, investor.ID, founder.ID)
	if err != nil {
		t.Fatalf("reverse Find: %v", err)
	}
	if reverse != nil {
		t.Fatalf("reverse direction matched: %+v", reverse)
	}
}

func TestLikeRepoListByRecipientOrderAndLimit(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	repo := NewLikeRepo(tx, testutil.Logger(t))
	profileRepo := profile.NewProfileRepo(tx, testutil.Logger(t))
	ctx := context.Background()

	recipient := &types.Profile{ID: uuid.New(), Role: types.RoleFounder, DisplayName: "fred"}
	if _, err := profileRepo.Create(ctx, nil, []*types.Profile{recipient}); err != nil {
		t.Fatalf("seed recipient: %v", err)
	}

	senders := make([]uuid.UUID, 3)
	for i := range senders {
		sender := &types.Profile{ID: uuid.New(), Role: types.RoleInvestor, DisplayName: "ivy"}
		if _, err := profileRepo.Create(ctx, nil, []*types.Profile{sender}); err != nil {
			t.Fatalf("seed sender: %v", err)
		}
		senders[i] = sender.ID
		if _, _, err := repo.Create(ctx, nil, &types.Like{SenderID: sender.ID, RecipientID: recipient.ID}); err != nil {
			t.Fatalf("Create like %d: %v", i, err)
		}
	}

	all, err := repo.ListByRecipient(ctx, nil, recipient.ID, 0)
	if err != nil {
		t.Fatalf("ListByRecipient: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("likes: want=3 got=%d", len(all))
	}
	for i := 1; i < len(all); i++ {
		if all[i].CreatedAt.After(all[i-1].CreatedAt) {
			t.Fatalf("likes not newest-first at position %d", i)
		}
	}

	limited, err := repo.ListByRecipient(ctx, nil, recipient.ID, 2)
	if err != nil {
		t.Fatalf("ListByRecipient with limit: %v", err)
	}
	if len(limited) != 2 {
		t.Fatalf("limited likes: want=2 got=%d", len(limited))
	}
}

func TestLikeRepoCountForRecipients(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	repo := NewLikeRepo(tx, testutil.Logger(t))
	profileRepo := profile.NewProfileRepo(tx, testutil.Logger(t))
	ctx := context.Background()

	popular := &types.Profile{ID: uuid.New(), Role: types.RoleFounder, DisplayName: "popular"}
	quiet := &types.Profile{ID: uuid.New(), Role: types.RoleFounder, DisplayName: "quiet"}
	if _, err := profileRepo.Create(ctx, nil, []*types.Profile{popular, quiet}); err != nil {
		t.Fatalf("seed recipients: %v", err)
	}

	for i := 0; i < 2; i++ {
		sender := &types.Profile{ID: uuid.New(), Role: types.RoleInvestor, DisplayName: "ivy"}
		if _, err := profileRepo.Create(ctx, nil, []*types.Profile{sender}); err != nil {
			t.Fatalf("seed sender: %v", err)
		}
		if _, _, err := repo.Create(ctx, nil, &types.Like{SenderID: sender.ID, RecipientID: popular.ID}); err != nil {
			t.Fatalf("Create like: %v", err)
		}
	}

	counts, err := repo.CountForRecipients(ctx, nil, []uuid.UUID{popular.ID, quiet.ID})
	if err != nil {
		t.Fatalf("CountForRecipients: %v", err)
	}
	if counts[popular.ID] != 2 {
		t.Fatalf("popular count: want=2 got=%d", counts[popular.ID])
	}
	if counts[quiet.ID] != 0 {
		t.Fatalf("quiet count: want=0 got=%d", counts[quiet.ID])
	}
}
