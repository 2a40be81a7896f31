//go:build integration

package testutil

import (
	"context"
	"os"
	"testing"

	"cloud.google.com/go/spanner"
	"github.com/stretchr/testify/require"

	"github.com/light-bringer/promo-engine/internal/app/promotion/domain"
	"github.com/light-bringer/promo-engine/internal/app/promotion/repo"
	"github.com/light-bringer/promo-engine/internal/models/m_product"
	"github.com/light-bringer/promo-engine/internal/pkg/committer"
	"github.com/light-bringer/promo-engine/internal/pkg/config"
)

// SetupSpanner connects to the emulator database named by the PROMO_SPANNER_*
// variables, which cmd/migrate must have created. Every table is emptied and
// the fixture products are seeded.
func SetupSpanner(t *testing.T) *spanner.Client {
	t.Helper()

	if os.Getenv("SPANNER_EMULATOR_HOST") == "" {
		t.Skip("SPANNER_EMULATOR_HOST is not set")
	}

	cfg, err := config.Load()
	require.NoError(t, err)

	ctx := context.Background()
	client, err := spanner.NewClient(ctx, cfg.Spanner.Database())
	require.NoError(t, err, "failed to create Spanner client")

	cleanDatabase(t, client)
	t.Cleanup(func() {
		cleanDatabase(t, client)
		client.Close()
	})

	model := m_product.NewModel()
	var muts []*spanner.Mutation
	for _, p := range Products() {
		muts = append(muts, model.UpsertMut(&m_product.Data{
			ProductID: p.ID,
			Nama:      p.Nama,
			SKU:       p.SKU,
			HargaJual: p.HargaJual,
			Tipe:      string(p.Tipe),
		}))
	}
	_, err = client.Apply(ctx, muts)
	require.NoError(t, err, "failed to seed products")

	return client
}

// cleanDatabase truncates all tables. promotion_products is removed with its
// parent rows.
func cleanDatabase(t *testing.T, client *spanner.Client) {
	t.Helper()

	_, err := client.Apply(context.Background(), []*spanner.Mutation{
		spanner.Delete("outbox_events", spanner.AllKeys()),
		spanner.Delete("promotions", spanner.AllKeys()),
		spanner.Delete("products", spanner.AllKeys()),
	})
	require.NoError(t, err, "failed to clean database")
}

// InsertPromotion stores promo with a created event in one commit.
func InsertPromotion(t *testing.T, client *spanner.Client, promo *domain.Promotion) {
	t.Helper()

	promotions := repo.NewPromotionRepo(client)
	outbox := repo.NewOutboxRepo()

	muts, err := promotions.InsertMuts(promo)
	require.NoError(t, err)

	event, err := outbox.EnrichEvent(&domain.PromotionCreatedEvent{PromotionID: promo.ID, Nama: promo.Nama})
	require.NoError(t, err)

	plan := committer.NewPlan()
	plan.AddMultiple(muts)
	plan.Add(outbox.InsertMut(event))
	require.NoError(t, committer.NewCommitter(client).Apply(context.Background(), plan))
}
