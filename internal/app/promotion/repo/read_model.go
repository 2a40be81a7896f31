package repo

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"cloud.google.com/go/civil"
	"cloud.google.com/go/spanner"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"

	"github.com/light-bringer/promo-engine/internal/app/promotion/contracts"
	"github.com/light-bringer/promo-engine/internal/app/promotion/domain"
	"github.com/light-bringer/promo-engine/internal/models/m_product"
	"github.com/light-bringer/promo-engine/internal/models/m_promotion"
	"github.com/light-bringer/promo-engine/internal/models/m_promotion_product"
	"github.com/light-bringer/promo-engine/internal/pkg/query"
)

const (
	defaultPageSize = 50
	maxPageSize     = 100
)

// ReadModelImpl implements ReadModel for Spanner.
type ReadModelImpl struct {
	client *spanner.Client
}

// NewReadModel creates a new ReadModel implementation.
func NewReadModel(client *spanner.Client) contracts.ReadModel {
	return &ReadModelImpl{
		client: client,
	}
}

// ListPromotions retrieves one page of promotions, newest first.
// The page token is the offset of the next page.
func (rm *ReadModelImpl) ListPromotions(ctx context.Context, filter *contracts.ListFilter) (*contracts.ListResult, error) {
	if filter == nil {
		filter = &contracts.ListFilter{}
	}

	offset, err := decodePageToken(filter.PageToken)
	if err != nil {
		return nil, err
	}
	pageSize := clampPageSize(filter.PageSize)

	base := listQuery(filter)

	txn := rm.client.ReadOnlyTransaction()
	defer txn.Close()

	var total int64
	countIter := txn.Query(ctx, base.Count().Build())
	err = countIter.Do(func(row *spanner.Row) error {
		return row.Column(0, &total)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to count promotions: %w", err)
	}

	stmt := base.Select(m_promotion.Columns...).
		OrderBy(m_promotion.CreatedAt, query.Desc).
		ThenBy(m_promotion.PromotionID, query.Asc).
		Limit(int64(pageSize)).
		Offset(offset).
		Build()

	iter := txn.Query(ctx, stmt)
	defer iter.Stop()

	var rows []*m_promotion.Data
	for {
		row, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to iterate promotions: %w", err)
		}

		var data m_promotion.Data
		if err := row.ToStruct(&data); err != nil {
			return nil, fmt.Errorf("failed to parse promotion: %w", err)
		}
		rows = append(rows, &data)
	}

	ids := make([]string, len(rows))
	for i, data := range rows {
		ids[i] = data.PromotionID
	}
	links, err := loadLinks(ctx, txn, ids)
	if err != nil {
		return nil, err
	}

	promotions := make([]*domain.Promotion, 0, len(rows))
	for _, data := range rows {
		promo, err := dataToPromotion(data, links[data.PromotionID])
		if err != nil {
			return nil, err
		}
		promotions = append(promotions, promo)
	}

	result := &contracts.ListResult{
		Promotions: promotions,
		TotalCount: total,
	}
	if next := offset + int64(len(rows)); len(rows) == pageSize && next < total {
		result.NextPageToken = strconv.FormatInt(next, 10)
	}
	return result, nil
}

// GetProductsForPromo joins a promotion's links with the catalog.
// Links to products the catalog no longer has are skipped.
func (rm *ReadModelImpl) GetProductsForPromo(ctx context.Context, promotionID string) ([]domain.Product, error) {
	txn := rm.client.ReadOnlyTransaction()
	defer txn.Close()

	_, err := txn.ReadRow(ctx, m_promotion.TableName, spanner.Key{promotionID}, []string{m_promotion.PromotionID})
	if err != nil {
		if spanner.ErrCode(err) == codes.NotFound {
			return nil, domain.ErrPromotionNotFound
		}
		return nil, fmt.Errorf("failed to read promotion: %w", err)
	}

	stmt := query.From("promotion_products pp JOIN products p ON p.product_id = pp.product_id").
		Select("p.product_id", "p.nama", "p.sku", "p.harga_jual", "p.tipe").
		Where(query.Eq("pp."+m_promotion_product.PromotionID, promotionID)).
		OrderBy("pp."+m_promotion_product.Position, query.Asc).
		Build()

	iter := txn.Query(ctx, stmt)
	defer iter.Stop()

	var products []domain.Product
	seen := make(map[string]bool)
	for {
		row, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to iterate promotion products: %w", err)
		}

		var data m_product.Data
		if err := row.ToStruct(&data); err != nil {
			return nil, fmt.Errorf("failed to parse product: %w", err)
		}
		if seen[data.ProductID] {
			continue
		}
		seen[data.ProductID] = true
		products = append(products, dataToProduct(&data))
	}

	return products, nil
}

// listQuery applies the filter conditions shared by the page and count queries.
func listQuery(filter *contracts.ListFilter) *query.Builder {
	b := query.From(m_promotion.TableName)
	if filter.Status != "" {
		b = b.Where(query.Eq(m_promotion.Status, string(filter.Status)))
	}
	if filter.Variant != "" {
		b = b.Where(query.Eq(m_promotion.Variant, string(filter.Variant)))
	}
	if filter.Phase != "" {
		today := filter.Today
		if today.IsZero() {
			today = time.Now()
		}
		b = b.Where(phaseCondition(filter.Phase, civil.DateOf(today)))
	}
	return b
}

// phaseCondition expresses the lifecycle phase of a promotion as of today
// in SQL. It matches the in-memory status resolver: start and end dates
// are inclusive calendar days and nonaktif overrides the dates.
func phaseCondition(phase domain.LifecyclePhase, today civil.Date) query.Condition {
	aktif := query.Eq(m_promotion.Status, string(domain.StatusAktif))
	started := query.Or(query.IsNull(m_promotion.StartDate), query.Lte(m_promotion.StartDate, today))

	switch phase {
	case domain.PhaseNonaktif:
		return query.Eq(m_promotion.Status, string(domain.StatusNonaktif))
	case domain.PhaseAkanDatang:
		return query.And(aktif, query.Gt(m_promotion.StartDate, today))
	case domain.PhaseBerakhir:
		return query.And(aktif, started, query.Lt(m_promotion.EndDate, today))
	case domain.PhaseBerlangsung:
		return query.And(aktif, started,
			query.Or(query.IsNull(m_promotion.EndDate), query.Gte(m_promotion.EndDate, today)))
	}
	return nil
}

func clampPageSize(size int) int {
	if size <= 0 {
		return defaultPageSize
	}
	if size > maxPageSize {
		return maxPageSize
	}
	return size
}

func decodePageToken(token string) (int64, error) {
	if token == "" {
		return 0, nil
	}
	offset, err := strconv.ParseInt(token, 10, 64)
	if err != nil || offset < 0 {
		return 0, domain.ErrInvalidPageToken
	}
	return offset, nil
}
