package get_promotion_products

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/light-bringer/promo-engine/internal/app/promotion/contracts"
	"github.com/light-bringer/promo-engine/internal/app/promotion/domain"
)

type fakeReadModel struct {
	products map[string][]domain.Product
}

func (f *fakeReadModel) ListPromotions(context.Context, *contracts.ListFilter) (*contracts.ListResult, error) {
	return &contracts.ListResult{}, nil
}

func (f *fakeReadModel) GetProductsForPromo(_ context.Context, id string) ([]domain.Product, error) {
	products, ok := f.products[id]
	if !ok {
		return nil, domain.ErrPromotionNotFound
	}
	return products, nil
}

func TestGetPromotionProducts(t *testing.T) {
	q := NewQuery(&fakeReadModel{products: map[string][]domain.Product{
		"promo-1": {{ID: "p-beras"}, {ID: "p-gula"}},
	}})

	products, err := q.Execute(context.Background(), &Request{PromotionID: "promo-1"})
	require.NoError(t, err)
	assert.Len(t, products, 2)

	_, err = q.Execute(context.Background(), &Request{PromotionID: "nope"})
	assert.ErrorIs(t, err, domain.ErrPromotionNotFound)

	_, err = q.Execute(context.Background(), &Request{})
	assert.ErrorIs(t, err, domain.ErrEmptyPromotionID)
}
