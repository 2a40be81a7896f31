package services

import (
	"context"
	"fmt"
	"net/http"

	"cloud.google.com/go/spanner"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/light-bringer/promo-engine/internal/app/promotion/contracts"
	"github.com/light-bringer/promo-engine/internal/app/promotion/domain/services"
	"github.com/light-bringer/promo-engine/internal/app/promotion/queries/get_promotion"
	"github.com/light-bringer/promo-engine/internal/app/promotion/queries/get_promotion_products"
	"github.com/light-bringer/promo-engine/internal/app/promotion/queries/list_events"
	"github.com/light-bringer/promo-engine/internal/app/promotion/queries/list_promotions"
	"github.com/light-bringer/promo-engine/internal/app/promotion/queries/preview_promotion"
	"github.com/light-bringer/promo-engine/internal/app/promotion/queries/validate_promotion"
	"github.com/light-bringer/promo-engine/internal/app/promotion/repo"
	"github.com/light-bringer/promo-engine/internal/app/promotion/usecases/create_promotion"
	"github.com/light-bringer/promo-engine/internal/app/promotion/usecases/delete_promotion"
	"github.com/light-bringer/promo-engine/internal/app/promotion/usecases/set_promotion_status"
	"github.com/light-bringer/promo-engine/internal/app/promotion/usecases/update_promotion"
	"github.com/light-bringer/promo-engine/internal/pkg/cache"
	"github.com/light-bringer/promo-engine/internal/pkg/clock"
	"github.com/light-bringer/promo-engine/internal/pkg/committer"
	"github.com/light-bringer/promo-engine/internal/pkg/config"
	"github.com/light-bringer/promo-engine/internal/pkg/logger"
	"github.com/light-bringer/promo-engine/internal/pkg/metrics"
	httptransport "github.com/light-bringer/promo-engine/internal/transport/http"
	"github.com/light-bringer/promo-engine/internal/transport/http/promotion"
)

// ServiceOptions holds all dependencies for the application.
type ServiceOptions struct {
	SpannerClient *spanner.Client
	Cache         *cache.Client
	Router        http.Handler
}

// NewServiceOptions creates and wires up all application dependencies.
func NewServiceOptions(ctx context.Context, cfg *config.Config, log *logger.Logger) (*ServiceOptions, error) {
	// 1. Initialize Spanner client
	spannerClient, err := spanner.NewClient(ctx, cfg.Spanner.Database())
	if err != nil {
		return nil, fmt.Errorf("failed to create Spanner client: %w", err)
	}
	opts := &ServiceOptions{SpannerClient: spannerClient}

	// 2. Create infrastructure components
	loc, err := cfg.App.Location()
	if err != nil {
		opts.Close()
		return nil, err
	}
	clk := clock.NewRealClockIn(loc)
	comm := committer.NewCommitter(spannerClient)

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(registry)

	// 3. Create repositories
	promotionRepo := repo.NewPromotionRepo(spannerClient)
	outboxRepo := repo.NewOutboxRepo()
	readModel := repo.NewReadModel(spannerClient)
	eventsReadModel := repo.NewEventsReadModel(spannerClient)

	var catalog contracts.ProductCatalog = repo.NewSpannerCatalog(spannerClient)
	if cfg.Redis.Enabled() {
		redisClient, err := cache.New(ctx, cfg.Redis)
		if err != nil {
			opts.Close()
			return nil, fmt.Errorf("failed to connect to Redis: %w", err)
		}
		opts.Cache = redisClient
		catalog = repo.NewCachedCatalog(catalog, redisClient, cfg.Redis.ProductTTL, log, m)
		log.Info(ctx, "catalog cache enabled")
	}

	engine := services.NewPromoEngine()

	// 4. Create command use cases (write operations)
	createPromotion := create_promotion.NewInteractor(promotionRepo, outboxRepo, catalog, engine, comm, clk, m)
	updatePromotion := update_promotion.NewInteractor(promotionRepo, outboxRepo, catalog, engine, comm, clk, m)
	deletePromotion := delete_promotion.NewInteractor(promotionRepo, outboxRepo, comm, clk)
	setStatus := set_promotion_status.NewInteractor(promotionRepo, outboxRepo, comm, clk)

	// 5. Create query use cases (read operations)
	getPromotion := get_promotion.NewQuery(promotionRepo, engine, clk)
	listPromotions := list_promotions.NewQuery(readModel, engine, clk)
	getProducts := get_promotion_products.NewQuery(readModel)
	validateDraft := validate_promotion.NewQuery(catalog, engine, clk, m)
	preview := preview_promotion.NewQuery(promotionRepo, catalog, engine, cfg.Preview.SampleQuantity, m)
	listEvents := list_events.NewQuery(eventsReadModel)

	// 6. Create HTTP handlers
	promotionHandler := promotion.NewHandler(
		log,
		createPromotion,
		updatePromotion,
		deletePromotion,
		setStatus,
		getPromotion,
		listPromotions,
		getProducts,
		validateDraft,
		preview,
	)

	opts.Router = httptransport.NewRouter(httptransport.RouterDeps{
		Log:        log,
		Metrics:    m,
		Gatherer:   registry,
		Promotions: promotionHandler,
		Events:     httptransport.NewEventsHandler(listEvents, log),
	})

	return opts, nil
}

// Close closes all resources.
func (s *ServiceOptions) Close() {
	if s.Cache != nil {
		_ = s.Cache.Close()
	}
	if s.SpannerClient != nil {
		s.SpannerClient.Close()
	}
}
