package repo

import (
	"context"
	"fmt"

	"cloud.google.com/go/spanner"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"

	"github.com/light-bringer/promo-engine/internal/app/promotion/contracts"
	"github.com/light-bringer/promo-engine/internal/app/promotion/domain"
	"github.com/light-bringer/promo-engine/internal/models/m_promotion"
	"github.com/light-bringer/promo-engine/internal/models/m_promotion_product"
	"github.com/light-bringer/promo-engine/internal/pkg/committer"
	"github.com/light-bringer/promo-engine/internal/pkg/query"
)

// PromotionRepo implements PromotionRepository for Spanner.
type PromotionRepo struct {
	client *spanner.Client
	model  *m_promotion.Model
	links  *m_promotion_product.Model
}

// NewPromotionRepo creates a new PromotionRepo.
func NewPromotionRepo(client *spanner.Client) contracts.PromotionRepository {
	return &PromotionRepo{
		client: client,
		model:  m_promotion.NewModel(),
		links:  m_promotion_product.NewModel(),
	}
}

// InsertMuts creates mutations for the promotion row followed by its links.
func (r *PromotionRepo) InsertMuts(promo *domain.Promotion) ([]*spanner.Mutation, error) {
	data, links, err := promotionToData(promo)
	if err != nil {
		return nil, err
	}

	muts := make([]*spanner.Mutation, 0, len(links)+1)
	muts = append(muts, r.model.InsertMut(data))
	for _, link := range links {
		muts = append(muts, r.links.InsertMut(link))
	}
	return muts, nil
}

// UpdateMuts rewrites the promotion row and replaces all links.
// Mutations in one commit apply in order, so the prefix delete runs first.
func (r *PromotionRepo) UpdateMuts(promo *domain.Promotion) ([]*spanner.Mutation, error) {
	data, links, err := promotionToData(promo)
	if err != nil {
		return nil, err
	}

	muts := make([]*spanner.Mutation, 0, len(links)+2)
	muts = append(muts, r.model.ReplaceMut(data), r.links.DeleteAllMut(promo.ID))
	for _, link := range links {
		muts = append(muts, r.links.InsertMut(link))
	}
	return muts, nil
}

// StatusMut stores the status flag and version.
func (r *PromotionRepo) StatusMut(promo *domain.Promotion) *spanner.Mutation {
	return r.model.StatusMut(promo.ID, string(promo.Status), promo.Version)
}

// DeleteMut removes a promotion; links cascade.
func (r *PromotionRepo) DeleteMut(promotionID string) *spanner.Mutation {
	return r.model.DeleteMut(promotionID)
}

// VersionCheck guards a write on the promotion's version column.
func (r *PromotionRepo) VersionCheck(promotionID string, expected int64) committer.VersionCheck {
	return committer.VersionCheck{
		Table:    m_promotion.TableName,
		Key:      spanner.Key{promotionID},
		Column:   m_promotion.Version,
		Expected: expected,
	}
}

// GetByID reads the promotion row and its links from one snapshot.
func (r *PromotionRepo) GetByID(ctx context.Context, promotionID string) (*domain.Promotion, error) {
	if promotionID == "" {
		return nil, domain.ErrEmptyPromotionID
	}

	txn := r.client.ReadOnlyTransaction()
	defer txn.Close()

	row, err := txn.ReadRow(ctx, m_promotion.TableName, spanner.Key{promotionID}, m_promotion.Columns)
	if err != nil {
		if spanner.ErrCode(err) == codes.NotFound {
			return nil, domain.ErrPromotionNotFound
		}
		return nil, fmt.Errorf("failed to read promotion: %w", err)
	}

	var data m_promotion.Data
	if err := row.ToStruct(&data); err != nil {
		return nil, fmt.Errorf("failed to parse promotion: %w", err)
	}

	links, err := loadLinks(ctx, txn, []string{promotionID})
	if err != nil {
		return nil, err
	}

	return dataToPromotion(&data, links[promotionID])
}

// querier is satisfied by both single-use and multi-use read-only transactions.
type querier interface {
	Query(ctx context.Context, stmt spanner.Statement) *spanner.RowIterator
}

// loadLinks returns the product links of the given promotions, grouped by
// promotion and ordered by position.
func loadLinks(ctx context.Context, q querier, promotionIDs []string) (map[string][]*m_promotion_product.Data, error) {
	grouped := make(map[string][]*m_promotion_product.Data, len(promotionIDs))
	if len(promotionIDs) == 0 {
		return grouped, nil
	}

	stmt := query.From(m_promotion_product.TableName).
		Select(m_promotion_product.PromotionID, m_promotion_product.Position, m_promotion_product.ProductID, m_promotion_product.Role).
		Where(query.In(m_promotion_product.PromotionID, promotionIDs)).
		OrderBy(m_promotion_product.PromotionID, query.Asc).
		ThenBy(m_promotion_product.Position, query.Asc).
		Build()

	iter := q.Query(ctx, stmt)
	defer iter.Stop()

	for {
		row, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to iterate promotion products: %w", err)
		}

		var link m_promotion_product.Data
		if err := row.ToStruct(&link); err != nil {
			return nil, fmt.Errorf("failed to parse promotion product: %w", err)
		}
		grouped[link.PromotionID] = append(grouped[link.PromotionID], &link)
	}

	return grouped, nil
}
