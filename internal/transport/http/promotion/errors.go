package promotion

import (
	"errors"
	"net/http"

	"github.com/light-bringer/promo-engine/internal/app/promotion/domain"
	"github.com/light-bringer/promo-engine/internal/app/promotion/queries/preview_promotion"
	"github.com/light-bringer/promo-engine/internal/transport/http/responses"
)

// mapDomainError converts domain errors to HTTP errors.
func mapDomainError(err error) error {
	if err == nil {
		return nil
	}

	var apiErr *responses.APIError
	if errors.As(err, &apiErr) {
		return apiErr
	}

	if vf, ok := domain.AsValidationFailed(err); ok {
		e := responses.NewError(http.StatusUnprocessableEntity, responses.CodeValidationFailed, "promotion is invalid")
		e.Details = toValidationEntries(vf.Errors)
		return e
	}

	switch {
	case errors.Is(err, domain.ErrPromotionNotFound):
		return responses.NewError(http.StatusNotFound, responses.CodeNotFound, "promotion not found")

	case errors.Is(err, domain.ErrConcurrentUpdate):
		return responses.NewError(http.StatusConflict, responses.CodeConflict, "promotion was modified by another request")

	case errors.Is(err, domain.ErrStatusUnchanged):
		return responses.NewError(http.StatusConflict, responses.CodeConflict, "promotion already has the requested status")

	case errors.Is(err, domain.ErrInvalidVariant),
		errors.Is(err, domain.ErrInvalidStatus),
		errors.Is(err, domain.ErrInvalidDate),
		errors.Is(err, domain.ErrInvalidPhase),
		errors.Is(err, domain.ErrInvalidPageToken),
		errors.Is(err, domain.ErrEmptyPromotionID),
		errors.Is(err, preview_promotion.ErrNothingToPreview):
		return responses.BadRequest(err, nil)

	default:
		return responses.Internal(err)
	}
}
