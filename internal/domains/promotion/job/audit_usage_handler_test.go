package job

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"hotel-backend/internal/domains/promotion/model"
	"hotel-backend/internal/shared"
	"hotel-backend/pkg/clock"
)

type mockPromotionRepo struct {
	mock.Mock
}

func (m *mockPromotionRepo) ListActive(ctx context.Context) ([]*model.Promotion, error) {
	args := m.Called(ctx)
	return args.Get(0).([]*model.Promotion), args.Error(1)
}

func (m *mockPromotionRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Promotion, error) {
	args := m.Called(ctx, id)
	if p := args.Get(0); p != nil {
		return p.(*model.Promotion), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockPromotionRepo) CreateUsage(ctx context.Context, tx pgx.Tx, usage *model.PromotionUsage) error {
	return m.Called(ctx, tx, usage).Error(0)
}

func (m *mockPromotionRepo) CountUsagesSince(ctx context.Context, customerID, promotionID uuid.UUID, since time.Time) (int, error) {
	args := m.Called(ctx, customerID, promotionID, since)
	return args.Int(0), args.Error(1)
}

func auditTask(t *testing.T, customerID, promotionID uuid.UUID) *asynq.Task {
	t.Helper()
	payload, err := json.Marshal(shared.AuditUsagePayload{
		UsageID:     uuid.NewString(),
		CustomerID:  customerID.String(),
		PromotionID: promotionID.String(),
		OrderID:     uuid.NewString(),
	})
	require.NoError(t, err)
	return asynq.NewTask(shared.TypeAuditPromotionUsage, payload)
}

func TestAuditUsage_CountsTrailingYear(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, time.March, 10, 9, 0, 0, 0, time.UTC)
	repo := new(mockPromotionRepo)
	customerID := uuid.New()
	promo := &model.Promotion{ID: uuid.New(), Kind: model.NewBirthday(3), IsActive: true}

	repo.On("FindByID", ctx, promo.ID).Return(promo, nil)
	repo.On("CountUsagesSince", ctx, customerID, promo.ID, now.Add(-auditWindow)).Return(2, nil).Once()

	h := NewAuditUsageHandler(repo, clock.NewFixedClock(now), 1)
	require.NoError(t, h.ProcessTask(ctx, auditTask(t, customerID, promo.ID)))

	repo.AssertExpectations(t)
}

func TestAuditUsage_SkipsMembership(t *testing.T) {
	ctx := context.Background()
	repo := new(mockPromotionRepo)
	gold, _ := model.NewMembership("gold")
	promo := &model.Promotion{ID: uuid.New(), Kind: gold, IsActive: true}
	repo.On("FindByID", ctx, promo.ID).Return(promo, nil)

	h := NewAuditUsageHandler(repo, clock.NewRealClock(), 1)
	require.NoError(t, h.ProcessTask(ctx, auditTask(t, uuid.New(), promo.ID)))

	repo.AssertNotCalled(t, "CountUsagesSince", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestAuditUsage_DeletedPromotionIsNotRetried(t *testing.T) {
	ctx := context.Background()
	repo := new(mockPromotionRepo)
	promoID := uuid.New()
	repo.On("FindByID", ctx, promoID).Return(nil, model.ErrPromotionNotFound)

	h := NewAuditUsageHandler(repo, clock.NewRealClock(), 1)
	assert.NoError(t, h.ProcessTask(ctx, auditTask(t, uuid.New(), promoID)))
}

func TestAuditUsage_RepositoryErrorRetries(t *testing.T) {
	ctx := context.Background()
	repo := new(mockPromotionRepo)
	promo := &model.Promotion{ID: uuid.New(), Kind: model.NewEvent(), IsActive: true}
	repo.On("FindByID", ctx, promo.ID).Return(promo, nil)
	repo.On("CountUsagesSince", ctx, mock.Anything, promo.ID, mock.Anything).Return(0, errors.New("timeout"))

	h := NewAuditUsageHandler(repo, clock.NewRealClock(), 1)
	err := h.ProcessTask(ctx, auditTask(t, uuid.New(), promo.ID))

	require.Error(t, err)
	assert.False(t, errors.Is(err, asynq.SkipRetry))
}

func TestAuditUsage_MalformedPayload(t *testing.T) {
	h := NewAuditUsageHandler(new(mockPromotionRepo), clock.NewRealClock(), 1)

	err := h.ProcessTask(context.Background(), asynq.NewTask(shared.TypeAuditPromotionUsage, []byte(`{"customer_id":"nope"}`)))

	require.Error(t, err)
	assert.True(t, errors.Is(err, asynq.SkipRetry))
}
