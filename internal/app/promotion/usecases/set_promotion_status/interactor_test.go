package set_promotion_status

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/light-bringer/promo-engine/internal/app/promotion/domain"
	"github.com/light-bringer/promo-engine/internal/app/promotion/testutil"
	"github.com/light-bringer/promo-engine/internal/pkg/clock"
	"github.com/light-bringer/promo-engine/internal/pkg/committer"
)

func newInteractor(applier *testutil.Applier, outbox *testutil.Outbox) *Interactor {
	repo := testutil.NewRepo(testutil.StoredPromotion("promo-1", testutil.DiscountDraft()))
	return NewInteractor(repo, outbox, applier, clock.NewMockClock(testutil.Now))
}

func TestSetPromotionStatus_Disable(t *testing.T) {
	applier := &testutil.Applier{}
	outbox := testutil.NewOutbox()

	promo, err := newInteractor(applier, outbox).Execute(context.Background(), &Request{PromotionID: "promo-1", Status: domain.StatusNonaktif})
	require.NoError(t, err)

	assert.Equal(t, domain.StatusNonaktif, promo.Status)
	assert.Equal(t, int64(2), promo.Version)
	assert.Equal(t, 2, applier.LastPlan().Count())
	assert.Equal(t, int64(1), applier.Checks[0].Expected)

	require.Len(t, outbox.Events, 1)
	changed := outbox.Events[0].(*domain.PromotionStatusChangedEvent)
	assert.Equal(t, domain.StatusAktif, changed.OldStatus)
	assert.Equal(t, domain.StatusNonaktif, changed.NewStatus)
}

func TestSetPromotionStatus_Errors(t *testing.T) {
	tests := []struct {
		name      string
		req       *Request
		commitErr error
		wantErr   error
	}{
		{name: "empty id", req: &Request{Status: domain.StatusAktif}, wantErr: domain.ErrEmptyPromotionID},
		{name: "unknown status", req: &Request{PromotionID: "promo-1", Status: "arsip"}, wantErr: domain.ErrInvalidStatus},
		{name: "unchanged", req: &Request{PromotionID: "promo-1", Status: domain.StatusAktif}, wantErr: domain.ErrStatusUnchanged},
		{name: "not found", req: &Request{PromotionID: "nope", Status: domain.StatusNonaktif}, wantErr: domain.ErrPromotionNotFound},
		{name: "concurrent", req: &Request{PromotionID: "promo-1", Status: domain.StatusNonaktif}, commitErr: committer.ErrOptimisticLockConflict, wantErr: domain.ErrConcurrentUpdate},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			applier := &testutil.Applier{Err: tt.commitErr}
			outbox := testutil.NewOutbox()

			_, err := newInteractor(applier, outbox).Execute(context.Background(), tt.req)

			assert.ErrorIs(t, err, tt.wantErr)
			assert.Nil(t, applier.LastPlan())
		})
	}
}
