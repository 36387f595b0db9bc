package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"hotel-backend/internal/domains/order/model"
	"hotel-backend/internal/shared/apperror"
	"hotel-backend/internal/shared/response"
)

type mockOrderService struct {
	mock.Mock
}

func (m *mockOrderService) result(args mock.Arguments) (*model.OrderResponse, error) {
	if r := args.Get(0); r != nil {
		return r.(*model.OrderResponse), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockOrderService) PriceAndApplyOrder(ctx context.Context, req *model.PriceOrderRequest) (*model.OrderResponse, error) {
	return m.result(m.Called(ctx, req))
}

func (m *mockOrderService) QuoteOrder(ctx context.Context, req *model.PriceOrderRequest) (*model.OrderResponse, error) {
	return m.result(m.Called(ctx, req))
}

func (m *mockOrderService) GetOrder(ctx context.Context, id uuid.UUID) (*model.OrderResponse, error) {
	return m.result(m.Called(ctx, id))
}

func (m *mockOrderService) MarkPaid(ctx context.Context, id uuid.UUID) (*model.OrderResponse, error) {
	return m.result(m.Called(ctx, id))
}

func (m *mockOrderService) Cancel(ctx context.Context, id uuid.UUID) (*model.OrderResponse, error) {
	return m.result(m.Called(ctx, id))
}

func newRouter(svc *mockOrderService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	NewOrderHandler(svc).RegisterRoutes(r.Group("/api/v1"))
	return r
}

func do(r *gin.Engine, method, path string, body interface{}) (*httptest.ResponseRecorder, response.Response) {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var env response.Response
	_ = json.Unmarshal(w.Body.Bytes(), &env)
	return w, env
}

func TestCreateOrder_Created(t *testing.T) {
	svc := new(mockOrderService)
	r := newRouter(svc)

	body := model.PriceOrderRequest{
		CustomerID: uuid.NewString(),
		Lines:      []model.OrderLineRequest{{ServiceID: uuid.NewString()}},
	}
	svc.On("PriceAndApplyOrder", mock.Anything, mock.Anything).Return(&model.OrderResponse{
		OrderID:    uuid.NewString(),
		Status:     model.StatusPending,
		GrandTotal: decimal.NewFromInt(212500),
	}, nil)

	w, env := do(r, http.MethodPost, "/api/v1/orders", body)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.True(t, env.Success)
}

func TestCreateOrder_InvalidBodyNeverReachesService(t *testing.T) {
	svc := new(mockOrderService)
	r := newRouter(svc)

	w, env := do(r, http.MethodPost, "/api/v1/orders", model.PriceOrderRequest{CustomerID: "nope"})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	require.NotNil(t, env.Error)
	assert.Equal(t, apperror.CodeValidationFailed, env.Error.Code)
	svc.AssertNotCalled(t, "PriceAndApplyOrder", mock.Anything, mock.Anything)
}

func TestCreateOrder_IneligibleIsConflict(t *testing.T) {
	svc := new(mockOrderService)
	r := newRouter(svc)

	body := model.PriceOrderRequest{
		CustomerID:        uuid.NewString(),
		Lines:             []model.OrderLineRequest{{ServiceID: uuid.NewString()}},
		ChosenPromotionID: uuid.NewString(),
	}
	svc.On("PriceAndApplyOrder", mock.Anything, mock.Anything).
		Return(nil, apperror.IneligiblePromotion("chosen promotion does not apply to this order", nil))

	w, env := do(r, http.MethodPost, "/api/v1/orders", body)

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, apperror.CodeIneligiblePromotion, env.Error.Code)
}

func TestQuoteOrder_MissingSelection(t *testing.T) {
	svc := new(mockOrderService)
	r := newRouter(svc)

	body := model.PriceOrderRequest{
		CustomerID: uuid.NewString(),
		Lines:      []model.OrderLineRequest{{ServiceID: uuid.NewString()}},
	}
	svc.On("QuoteOrder", mock.Anything, mock.Anything).
		Return(nil, apperror.MissingSelection("an option must be selected for this service"))

	w, _ := do(r, http.MethodPost, "/api/v1/orders/quote", body)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestGetOrder_BadID(t *testing.T) {
	svc := new(mockOrderService)
	r := newRouter(svc)

	w, _ := do(r, http.MethodGet, "/api/v1/orders/not-a-uuid", nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	svc.AssertNotCalled(t, "GetOrder", mock.Anything, mock.Anything)
}

func TestCancelOrder_InvalidTransition(t *testing.T) {
	svc := new(mockOrderService)
	r := newRouter(svc)
	id := uuid.New()

	svc.On("Cancel", mock.Anything, id).Return(nil, model.NewTransitionError(model.StatusPaid, model.StatusCancelled))

	w, env := do(r, http.MethodPatch, "/api/v1/orders/"+id.String()+"/cancel", nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, apperror.CodeInvalidTransition, env.Error.Code)
}

func TestMarkPaid_OK(t *testing.T) {
	svc := new(mockOrderService)
	r := newRouter(svc)
	id := uuid.New()

	svc.On("MarkPaid", mock.Anything, id).Return(&model.OrderResponse{OrderID: id.String(), Status: model.StatusPaid}, nil)

	w, env := do(r, http.MethodPatch, "/api/v1/orders/"+id.String()+"/pay", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, env.Success)
}
