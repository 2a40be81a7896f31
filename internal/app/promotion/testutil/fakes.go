// Package testutil holds in-memory fakes of the promotion contracts for
// use case, query and handler tests.
package testutil

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/light-bringer/promo-engine/internal/app/promotion/contracts"
	"github.com/light-bringer/promo-engine/internal/app/promotion/domain"
	"github.com/light-bringer/promo-engine/internal/app/promotion/repo"
	"github.com/light-bringer/promo-engine/internal/pkg/committer"
)

// Now is the fixed instant the fixtures are built around.
var Now = time.Date(2026, 10, 19, 9, 0, 0, 0, time.UTC)

// Catalog is an in-memory ProductCatalog.
type Catalog struct {
	Products map[string]domain.Product
	Err      error
}

// NewCatalog returns a catalog holding the standard fixture products.
func NewCatalog() *Catalog {
	return &Catalog{Products: domain.ProductIndex(Products())}
}

// Products returns the fixture products.
func Products() []domain.Product {
	return []domain.Product{
		{ID: "p-beras", Nama: "Beras 1kg", SKU: "BRS-1", HargaJual: 15000, Tipe: domain.ProductTypeCurah},
		{ID: "p-gula", Nama: "Gula 1kg", SKU: "GL-1", HargaJual: 10000, Tipe: domain.ProductTypeCurah},
		{ID: "p-sabun", Nama: "Sabun Mandi", SKU: "SB-1", HargaJual: 5000, Tipe: domain.ProductTypeSatuan},
		{ID: "p-sikat", Nama: "Sikat Gigi", SKU: "SK-1", HargaJual: 3000, Tipe: domain.ProductTypeSatuan},
	}
}

func (c *Catalog) GetProductsByIDs(_ context.Context, ids []string) ([]domain.Product, error) {
	if c.Err != nil {
		return nil, c.Err
	}
	var out []domain.Product
	seen := map[string]bool{}
	for _, id := range ids {
		if p, ok := c.Products[id]; ok && !seen[id] {
			seen[id] = true
			out = append(out, p)
		}
	}
	return out, nil
}

// Repo builds real mutations and serves GetByID from memory.
type Repo struct {
	contracts.PromotionRepository

	mu         sync.Mutex
	promotions map[string]*domain.Promotion
	GetErr     error
}

// NewRepo returns a Repo seeded with promos.
func NewRepo(promos ...*domain.Promotion) *Repo {
	r := &Repo{
		PromotionRepository: repo.NewPromotionRepo(nil),
		promotions:          map[string]*domain.Promotion{},
	}
	for _, p := range promos {
		r.Put(p)
	}
	return r
}

// Put stores a copy of promo.
func (r *Repo) Put(promo *domain.Promotion) {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *promo
	r.promotions[promo.ID] = &cp
}

func (r *Repo) GetByID(_ context.Context, promotionID string) (*domain.Promotion, error) {
	if r.GetErr != nil {
		return nil, r.GetErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.promotions[promotionID]
	if !ok {
		return nil, domain.ErrPromotionNotFound
	}
	cp := *p
	return &cp, nil
}

// Outbox records every event it enriches.
type Outbox struct {
	contracts.OutboxRepository

	mu     sync.Mutex
	Events []domain.DomainEvent
}

// NewOutbox wraps the Spanner outbox repository.
func NewOutbox() *Outbox {
	return &Outbox{OutboxRepository: repo.NewOutboxRepo()}
}

func (o *Outbox) EnrichEvent(event domain.DomainEvent) (*contracts.OutboxEvent, error) {
	o.mu.Lock()
	o.Events = append(o.Events, event)
	o.mu.Unlock()
	return o.OutboxRepository.EnrichEvent(event)
}

// Applier captures applied plans instead of writing them.
type Applier struct {
	mu     sync.Mutex
	Plans  []*committer.CommitPlan
	Checks []committer.VersionCheck
	Err    error
}

var _ committer.Applier = (*Applier)(nil)

func (a *Applier) Apply(_ context.Context, plan *committer.CommitPlan) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.Err != nil {
		return a.Err
	}
	a.Plans = append(a.Plans, plan)
	return nil
}

func (a *Applier) ApplyWithVersionCheck(_ context.Context, check committer.VersionCheck, plan *committer.CommitPlan) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.Err != nil {
		return a.Err
	}
	a.Checks = append(a.Checks, check)
	a.Plans = append(a.Plans, plan)
	return nil
}

// LastPlan returns the most recent plan or nil.
func (a *Applier) LastPlan() *committer.CommitPlan {
	a.mu.Lock()
	defer a.mu.Unlock()
	if len(a.Plans) == 0 {
		return nil
	}
	return a.Plans[len(a.Plans)-1]
}

// ReadModel serves list and product queries from a Repo and a Catalog.
// Filters on status and variant are honoured; paging is not.
type ReadModel struct {
	Repo    *Repo
	Catalog *Catalog
	Err     error

	LastFilter *contracts.ListFilter
}

var _ contracts.ReadModel = (*ReadModel)(nil)

func (m *ReadModel) ListPromotions(_ context.Context, filter *contracts.ListFilter) (*contracts.ListResult, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	m.LastFilter = filter

	m.Repo.mu.Lock()
	defer m.Repo.mu.Unlock()
	result := &contracts.ListResult{}
	for _, p := range m.Repo.promotions {
		if filter.Status != "" && p.Status != filter.Status {
			continue
		}
		if kind, _ := p.Kind(); filter.Variant != "" && kind != filter.Variant {
			continue
		}
		cp := *p
		result.Promotions = append(result.Promotions, &cp)
	}
	sort.Slice(result.Promotions, func(i, j int) bool {
		return result.Promotions[i].ID < result.Promotions[j].ID
	})
	result.TotalCount = int64(len(result.Promotions))
	return result, nil
}

func (m *ReadModel) GetProductsForPromo(ctx context.Context, promotionID string) ([]domain.Product, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	promo, err := m.Repo.GetByID(ctx, promotionID)
	if err != nil {
		return nil, err
	}
	return m.Catalog.GetProductsByIDs(ctx, promo.ProductIDs())
}
