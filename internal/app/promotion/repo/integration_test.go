//go:build integration

package repo_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/light-bringer/promo-engine/internal/app/promotion/contracts"
	"github.com/light-bringer/promo-engine/internal/app/promotion/domain"
	"github.com/light-bringer/promo-engine/internal/app/promotion/queries/list_events"
	"github.com/light-bringer/promo-engine/internal/app/promotion/repo"
	"github.com/light-bringer/promo-engine/internal/app/promotion/testutil"
	"github.com/light-bringer/promo-engine/internal/pkg/committer"
)

func TestIntegration_PromotionRoundTrip(t *testing.T) {
	client := testutil.SetupSpanner(t)
	ctx := context.Background()
	promotions := repo.NewPromotionRepo(client)

	drafts := map[string]domain.Draft{
		"promo-discount": testutil.DiscountDraft(),
		"promo-bundle":   testutil.BundleDraft(),
		"promo-bxgy":     testutil.BuyXGetYDraft(),
	}
	for id, draft := range drafts {
		testutil.InsertPromotion(t, client, testutil.StoredPromotion(id, draft))
	}

	for id, draft := range drafts {
		t.Run(id, func(t *testing.T) {
			got, err := promotions.GetByID(ctx, id)
			require.NoError(t, err)

			assert.Equal(t, id, got.ID)
			assert.Equal(t, draft.Nama, got.Nama)
			assert.Equal(t, int64(1), got.Version)
			assert.Equal(t, domain.FormatDate(draft.TanggalMulai), domain.FormatDate(got.TanggalMulai))
			wantKind := draft.Variant.Kind()
			gotKind, err := got.Kind()
			require.NoError(t, err)
			assert.Equal(t, wantKind, gotKind)
			assert.Equal(t, draft.Variant.ProductIDs(), got.ProductIDs())
		})
	}

	_, err := promotions.GetByID(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrPromotionNotFound)
}

func TestIntegration_VersionCheck(t *testing.T) {
	client := testutil.SetupSpanner(t)
	ctx := context.Background()
	promotions := repo.NewPromotionRepo(client)
	comm := committer.NewCommitter(client)

	promo := testutil.StoredPromotion("promo-1", testutil.DiscountDraft())
	testutil.InsertPromotion(t, client, promo)

	// Switch the variant: the old links must be replaced.
	promo.ApplyDraft(testutil.BuyXGetYDraft())
	promo.Version = 2
	muts, err := promotions.UpdateMuts(promo)
	require.NoError(t, err)
	plan := committer.NewPlan()
	plan.AddMultiple(muts)
	require.NoError(t, comm.ApplyWithVersionCheck(ctx, promotions.VersionCheck(promo.ID, 1), plan))

	got, err := promotions.GetByID(ctx, promo.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), got.Version)
	assert.Equal(t, []string{"p-sabun"}, got.ProductIDs())

	// A writer holding version 1 loses.
	stale := committer.NewPlan()
	stale.Add(promotions.StatusMut(promo))
	err = comm.ApplyWithVersionCheck(ctx, promotions.VersionCheck(promo.ID, 1), stale)
	assert.ErrorIs(t, err, committer.ErrOptimisticLockConflict)

	del := committer.NewPlan()
	del.Add(promotions.DeleteMut(promo.ID))
	require.NoError(t, comm.ApplyWithVersionCheck(ctx, promotions.VersionCheck(promo.ID, 2), del))

	err = comm.ApplyWithVersionCheck(ctx, promotions.VersionCheck(promo.ID, 2), del)
	assert.ErrorIs(t, err, committer.ErrRowNotFound)
}

func TestIntegration_ReadModel(t *testing.T) {
	client := testutil.SetupSpanner(t)
	ctx := context.Background()
	readModel := repo.NewReadModel(client)

	upcoming := testutil.DiscountDraft()
	upcoming.TanggalMulai = testutil.Date(2026, 12, 1)
	disabled := testutil.StoredPromotion("promo-off", testutil.BundleDraft())
	disabled.Status = domain.StatusNonaktif

	testutil.InsertPromotion(t, client, testutil.StoredPromotion("promo-live", testutil.DiscountDraft()))
	testutil.InsertPromotion(t, client, testutil.StoredPromotion("promo-soon", upcoming))
	testutil.InsertPromotion(t, client, disabled)

	t.Run("phase filter", func(t *testing.T) {
		result, err := readModel.ListPromotions(ctx, &contracts.ListFilter{
			Phase: domain.PhaseAkanDatang,
			Today: testutil.Now,
		})
		require.NoError(t, err)
		require.Len(t, result.Promotions, 1)
		assert.Equal(t, "promo-soon", result.Promotions[0].ID)
		assert.Equal(t, int64(1), result.TotalCount)
	})

	t.Run("paging", func(t *testing.T) {
		first, err := readModel.ListPromotions(ctx, &contracts.ListFilter{PageSize: 2})
		require.NoError(t, err)
		assert.Len(t, first.Promotions, 2)
		assert.Equal(t, int64(3), first.TotalCount)
		require.NotEmpty(t, first.NextPageToken)

		second, err := readModel.ListPromotions(ctx, &contracts.ListFilter{PageSize: 2, PageToken: first.NextPageToken})
		require.NoError(t, err)
		assert.Len(t, second.Promotions, 1)
		assert.Empty(t, second.NextPageToken)
	})

	t.Run("products for promotion", func(t *testing.T) {
		products, err := readModel.GetProductsForPromo(ctx, "promo-live")
		require.NoError(t, err)
		require.Len(t, products, 2)
		assert.Equal(t, "p-beras", products[0].ID)
		assert.Equal(t, int64(15000), products[0].HargaJual)

		_, err = readModel.GetProductsForPromo(ctx, "missing")
		assert.ErrorIs(t, err, domain.ErrPromotionNotFound)
	})
}

func TestIntegration_CatalogAndEvents(t *testing.T) {
	client := testutil.SetupSpanner(t)
	ctx := context.Background()

	products, err := repo.NewSpannerCatalog(client).GetProductsByIDs(ctx, []string{"p-sabun", "p-unknown", "p-beras"})
	require.NoError(t, err)
	require.Len(t, products, 2)
	assert.Equal(t, "p-sabun", products[0].ID)

	testutil.InsertPromotion(t, client, testutil.StoredPromotion("promo-1", testutil.BundleDraft()))

	aggregate := "promo-1"
	events, total, err := repo.NewEventsReadModel(client).ListEvents(ctx, &list_events.Request{AggregateID: &aggregate, Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, events, 1)
	assert.Equal(t, "promotion.created", events[0].EventType)
	assert.True(t, events[0].Payload.Valid)
}
