package settlements

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	settlementRepo "github.com/m04kA/SMC-SalonBooking/internal/infra/storage/settlement"
	shopRepo "github.com/m04kA/SMC-SalonBooking/internal/infra/storage/shop"
	"github.com/m04kA/SMC-SalonBooking/internal/integrations/events"
	"github.com/m04kA/SMC-SalonBooking/pkg/logger"
)

type memSettlements struct {
	items map[int64]*domain.Settlement
}

func (m *memSettlements) GetByID(_ context.Context, id int64) (*domain.Settlement, error) {
	s, ok := m.items[id]
	if !ok {
		return nil, settlementRepo.ErrSettlementNotFound
	}
	cp := *s
	return &cp, nil
}

func (m *memSettlements) GetByShop(_ context.Context, shopID int64) ([]*domain.Settlement, error) {
	out := make([]*domain.Settlement, 0)
	for _, s := range m.items {
		if s.ShopID == shopID {
			cp := *s
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (m *memSettlements) Complete(ctx context.Context, id int64, at time.Time) (*domain.Settlement, error) {
	s, ok := m.items[id]
	if !ok {
		return nil, settlementRepo.ErrSettlementNotFound
	}
	if s.Status != domain.SettlementStatePending {
		return nil, settlementRepo.ErrNotPending
	}
	s.Status = domain.SettlementStateCompleted
	s.CompletedAt = &at
	return m.GetByID(ctx, id)
}

type stubShops struct{}

func (stubShops) GetShopByID(_ context.Context, id int64) (*domain.Shop, error) {
	if id == 1 {
		return &domain.Shop{ID: 1}, nil
	}
	return nil, shopRepo.ErrShopNotFound
}

type passthroughTx struct{}

func (passthroughTx) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func newService() *Service {
	repo := &memSettlements{items: map[int64]*domain.Settlement{
		5: {
			ID:         5,
			ShopID:     1,
			Type:       domain.SettlementPayout,
			Amount:     decimal.NewFromInt(220),
			BookingIDs: []int64{1, 2},
			Status:     domain.SettlementStatePending,
		},
	}}
	return NewService(repo, stubShops{}, passthroughTx{}, events.NopPublisher{}, logger.NewNop())
}

func TestConfirm_OnceOnly(t *testing.T) {
	svc := newService()

	resp, err := svc.Confirm(context.Background(), 5)
	require.NoError(t, err)
	assert.Equal(t, "COMPLETED", resp.Status)
	assert.NotNil(t, resp.CompletedAt)

	_, err = svc.Confirm(context.Background(), 5)
	assert.ErrorIs(t, err, ErrAlreadyCompleted)
	assert.ErrorIs(t, err, domain.ErrState)
}

func TestConfirm_NotFound(t *testing.T) {
	svc := newService()

	_, err := svc.Confirm(context.Background(), 6)
	assert.ErrorIs(t, err, ErrSettlementNotFound)
}

func TestListByShop(t *testing.T) {
	svc := newService()

	resp, err := svc.ListByShop(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, resp.Settlements, 1)
	assert.Equal(t, []int64{1, 2}, resp.Settlements[0].BookingIDs)

	_, err = svc.ListByShop(context.Background(), 2)
	assert.ErrorIs(t, err, ErrShopNotFound)
}
