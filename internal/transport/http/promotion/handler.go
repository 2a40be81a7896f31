package promotion

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/light-bringer/promo-engine/internal/app/promotion/domain"
	"github.com/light-bringer/promo-engine/internal/app/promotion/queries/get_promotion"
	"github.com/light-bringer/promo-engine/internal/app/promotion/queries/get_promotion_products"
	"github.com/light-bringer/promo-engine/internal/app/promotion/queries/list_promotions"
	"github.com/light-bringer/promo-engine/internal/app/promotion/queries/preview_promotion"
	"github.com/light-bringer/promo-engine/internal/app/promotion/queries/validate_promotion"
	"github.com/light-bringer/promo-engine/internal/app/promotion/usecases/create_promotion"
	"github.com/light-bringer/promo-engine/internal/app/promotion/usecases/delete_promotion"
	"github.com/light-bringer/promo-engine/internal/app/promotion/usecases/set_promotion_status"
	"github.com/light-bringer/promo-engine/internal/app/promotion/usecases/update_promotion"
	"github.com/light-bringer/promo-engine/internal/pkg/logger"
	"github.com/light-bringer/promo-engine/internal/transport/http/responses"
)

// Handler serves the promotion HTTP API.
// It's a thin coordinator that delegates to use cases and queries.
type Handler struct {
	log *logger.Logger

	// Commands
	createPromotion *create_promotion.Interactor
	updatePromotion *update_promotion.Interactor
	deletePromotion *delete_promotion.Interactor
	setStatus       *set_promotion_status.Interactor

	// Queries
	getPromotion   *get_promotion.Query
	listPromotions *list_promotions.Query
	getProducts    *get_promotion_products.Query
	validateDraft  *validate_promotion.Query
	preview        *preview_promotion.Query
}

// NewHandler creates a new promotion HTTP handler.
func NewHandler(
	log *logger.Logger,
	createPromotion *create_promotion.Interactor,
	updatePromotion *update_promotion.Interactor,
	deletePromotion *delete_promotion.Interactor,
	setStatus *set_promotion_status.Interactor,
	getPromotion *get_promotion.Query,
	listPromotions *list_promotions.Query,
	getProducts *get_promotion_products.Query,
	validateDraft *validate_promotion.Query,
	preview *preview_promotion.Query,
) *Handler {
	return &Handler{
		log:             log,
		createPromotion: createPromotion,
		updatePromotion: updatePromotion,
		deletePromotion: deletePromotion,
		setStatus:       setStatus,
		getPromotion:    getPromotion,
		listPromotions:  listPromotions,
		getProducts:     getProducts,
		validateDraft:   validateDraft,
		preview:         preview,
	}
}

// Routes mounts the promotion endpoints on r.
func (h *Handler) Routes(r chi.Router) {
	r.Route("/promotions", func(r chi.Router) {
		r.Post("/", h.Create)
		r.Get("/", h.List)
		r.Post("/validate", h.Validate)
		r.Post("/preview", h.PreviewDraft)

		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", h.Get)
			r.Put("/", h.Update)
			r.Delete("/", h.Delete)
			r.Patch("/status", h.SetStatus)
			r.Get("/products", h.Products)
			r.Get("/preview", h.PreviewStored)
		})
	})
}

// Create stores a new promotion.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	// 1. Validate request shape
	var body PromotionRequest
	if err := decodeJSONBody(w, r, &body); err != nil {
		h.fail(w, r, err)
		return
	}

	// 2. Map wire -> application request
	draft, err := toDraft(&body)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	// 3. Call usecase (usecase applies plan)
	promo, err := h.createPromotion.Execute(ctx, &create_promotion.Request{
		Draft:  draft,
		Status: domain.PromotionStatus(body.Status),
	})
	if err != nil {
		h.fail(w, r, err)
		return
	}

	// 4. Return response
	ctx = h.log.WithPromotionID(ctx, promo.ID)
	h.log.InfoFields(ctx, "promotion.created", map[string]any{"variant": body.Variant})
	responses.WriteSuccessStatus(w, http.StatusCreated, toPromotionResponse(promo, nil))
}

// Update replaces a stored promotion.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	ctx := h.log.WithPromotionID(r.Context(), chi.URLParam(r, "id"))

	var body UpdatePromotionRequest
	if err := decodeJSONBody(w, r, &body); err != nil {
		h.fail(w, r, err)
		return
	}

	draft, err := toDraft(&body.PromotionRequest)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	promo, err := h.updatePromotion.Execute(ctx, &update_promotion.Request{
		PromotionID:     chi.URLParam(r, "id"),
		Draft:           draft,
		ExpectedVersion: body.Version,
	})
	if err != nil {
		h.fail(w, r, err)
		return
	}

	h.log.InfoFields(ctx, "promotion.updated", map[string]any{"version": promo.Version})
	responses.WriteSuccess(w, toPromotionResponse(promo, nil))
}

// Delete removes a promotion. An optional ?version= guards the delete.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx := h.log.WithPromotionID(r.Context(), chi.URLParam(r, "id"))

	version, err := queryInt(r, "version")
	if err != nil {
		h.fail(w, r, err)
		return
	}

	if err := h.deletePromotion.Execute(ctx, &delete_promotion.Request{
		PromotionID:     chi.URLParam(r, "id"),
		ExpectedVersion: version,
	}); err != nil {
		h.fail(w, r, err)
		return
	}

	h.log.Info(ctx, "promotion.deleted")
	responses.WriteNoContent(w)
}

// SetStatus enables or disables a promotion.
func (h *Handler) SetStatus(w http.ResponseWriter, r *http.Request) {
	ctx := h.log.WithPromotionID(r.Context(), chi.URLParam(r, "id"))

	var body SetStatusRequest
	if err := decodeJSONBody(w, r, &body); err != nil {
		h.fail(w, r, err)
		return
	}

	promo, err := h.setStatus.Execute(ctx, &set_promotion_status.Request{
		PromotionID: chi.URLParam(r, "id"),
		Status:      domain.PromotionStatus(body.Status),
	})
	if err != nil {
		h.fail(w, r, err)
		return
	}

	h.log.InfoFields(ctx, "promotion.status_changed", map[string]any{"status": body.Status})
	responses.WriteSuccess(w, toPromotionResponse(promo, nil))
}

// Get returns a promotion with its lifecycle status.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	resp, err := h.getPromotion.Execute(r.Context(), &get_promotion.Request{PromotionID: chi.URLParam(r, "id")})
	if err != nil {
		h.fail(w, r, err)
		return
	}
	responses.WriteSuccess(w, toPromotionResponse(resp.Promotion, &resp.Status))
}

// List returns one page of promotions.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	pageSize, err := queryInt(r, "page_size")
	if err != nil {
		h.fail(w, r, err)
		return
	}

	q := r.URL.Query()
	resp, err := h.listPromotions.Execute(r.Context(), &list_promotions.Request{
		Status:    q.Get("status"),
		Variant:   q.Get("variant"),
		Phase:     q.Get("phase"),
		PageSize:  int(pageSize),
		PageToken: q.Get("page_token"),
	})
	if err != nil {
		h.fail(w, r, err)
		return
	}

	out := ListPromotionsResponse{
		Promotions:    make([]PromotionResponse, 0, len(resp.Items)),
		NextPageToken: resp.NextPageToken,
		TotalCount:    resp.TotalCount,
	}
	for _, item := range resp.Items {
		out.Promotions = append(out.Promotions, toPromotionResponse(item.Promotion, &item.Status))
	}
	responses.WriteSuccess(w, out)
}

// Products lists the catalog products a promotion references.
func (h *Handler) Products(w http.ResponseWriter, r *http.Request) {
	products, err := h.getProducts.Execute(r.Context(), &get_promotion_products.Request{PromotionID: chi.URLParam(r, "id")})
	if err != nil {
		h.fail(w, r, err)
		return
	}
	responses.WriteSuccess(w, toProductResponses(products))
}

// Validate runs the business rules against a draft without storing it.
func (h *Handler) Validate(w http.ResponseWriter, r *http.Request) {
	var body PromotionRequest
	if err := decodeJSONBody(w, r, &body); err != nil {
		h.fail(w, r, err)
		return
	}

	draft, err := toDraft(&body)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	result, err := h.validateDraft.Execute(r.Context(), &validate_promotion.Request{
		Draft:  draft,
		Status: domain.PromotionStatus(body.Status),
	})
	if err != nil {
		h.fail(w, r, err)
		return
	}
	responses.WriteSuccess(w, toValidationResponse(result))
}

// PreviewDraft prices an unsaved draft.
func (h *Handler) PreviewDraft(w http.ResponseWriter, r *http.Request) {
	sample, err := queryInt(r, "sample_quantity")
	if err != nil {
		h.fail(w, r, err)
		return
	}

	var body PromotionRequest
	if err := decodeJSONBody(w, r, &body); err != nil {
		h.fail(w, r, err)
		return
	}

	draft, err := toDraft(&body)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	h.writePreview(w, r, &preview_promotion.Request{Draft: &draft, SampleQuantity: sample})
}

// PreviewStored prices a stored promotion.
func (h *Handler) PreviewStored(w http.ResponseWriter, r *http.Request) {
	sample, err := queryInt(r, "sample_quantity")
	if err != nil {
		h.fail(w, r, err)
		return
	}

	h.writePreview(w, r, &preview_promotion.Request{PromotionID: chi.URLParam(r, "id"), SampleQuantity: sample})
}

func (h *Handler) writePreview(w http.ResponseWriter, r *http.Request, req *preview_promotion.Request) {
	resp, err := h.preview.Execute(r.Context(), req)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	responses.WriteSuccess(w, toPreviewResponse(resp.Preview, resp.Products, resp.SampleQuantity))
}

func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error) {
	responses.WriteError(r.Context(), h.log, w, mapDomainError(err))
}
