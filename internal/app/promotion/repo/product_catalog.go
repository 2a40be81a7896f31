package repo

import (
	"context"
	"fmt"

	"cloud.google.com/go/spanner"
	"google.golang.org/api/iterator"

	"github.com/light-bringer/promo-engine/internal/app/promotion/contracts"
	"github.com/light-bringer/promo-engine/internal/app/promotion/domain"
	"github.com/light-bringer/promo-engine/internal/models/m_product"
	"github.com/light-bringer/promo-engine/internal/pkg/query"
)

// SpannerCatalog reads catalog products from the products table.
type SpannerCatalog struct {
	client *spanner.Client
}

// NewSpannerCatalog creates a catalog backed by Spanner.
func NewSpannerCatalog(client *spanner.Client) contracts.ProductCatalog {
	return &SpannerCatalog{client: client}
}

// GetProductsByIDs returns the existing products in request order.
func (c *SpannerCatalog) GetProductsByIDs(ctx context.Context, ids []string) ([]domain.Product, error) {
	ids = uniqueIDs(ids)
	if len(ids) == 0 {
		return nil, nil
	}

	stmt := query.From(m_product.TableName).
		Select(m_product.Columns...).
		Where(query.In(m_product.ProductID, ids)).
		Build()

	iter := c.client.Single().Query(ctx, stmt)
	defer iter.Stop()

	found := make(map[string]domain.Product, len(ids))
	for {
		row, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to iterate products: %w", err)
		}

		var data m_product.Data
		if err := row.ToStruct(&data); err != nil {
			return nil, fmt.Errorf("failed to parse product: %w", err)
		}
		found[data.ProductID] = dataToProduct(&data)
	}

	return inRequestOrder(ids, found), nil
}

// uniqueIDs drops blanks and repeats, keeping the first occurrence.
func uniqueIDs(ids []string) []string {
	seen := make(map[string]bool, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}

func inRequestOrder(ids []string, found map[string]domain.Product) []domain.Product {
	products := make([]domain.Product, 0, len(found))
	for _, id := range ids {
		if p, ok := found[id]; ok {
			products = append(products, p)
		}
	}
	return products
}
