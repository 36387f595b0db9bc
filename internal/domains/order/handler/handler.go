package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"hotel-backend/internal/domains/order/model"
	"hotel-backend/internal/domains/order/service"
	"hotel-backend/internal/shared/response"
)

type OrderHandler struct {
	orderService service.OrderService
}

func NewOrderHandler(orderService service.OrderService) *OrderHandler {
	return &OrderHandler{
		orderService: orderService,
	}
}

func (h *OrderHandler) RegisterRoutes(router *gin.RouterGroup) {
	orders := router.Group("/orders")
	{
		orders.POST("", h.CreateOrder)             // POST /v1/orders
		orders.POST("/quote", h.QuoteOrder)        // POST /v1/orders/quote
		orders.GET("/:id", h.GetOrder)             // GET /v1/orders/:id
		orders.PATCH("/:id/pay", h.MarkPaid)       // PATCH /v1/orders/:id/pay
		orders.PATCH("/:id/cancel", h.CancelOrder) // PATCH /v1/orders/:id/cancel
	}
}

// CreateOrder godoc
// @Summary Price and place an order
// @Description Prices every line, re-checks the chosen promotion and stores the order with its promotion usage
// @Tags Orders
// @Accept json
// @Produce json
// @Param request body model.PriceOrderRequest true "Order lines and optional promotion"
// @Success 201 {object} response.Response{data=model.OrderResponse}
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Failure 422 {object} response.Response
// @Router /v1/orders [post]
func (h *OrderHandler) CreateOrder(c *gin.Context) {
	req, ok := bindPriceRequest(c)
	if !ok {
		return
	}

	result, err := h.orderService.PriceAndApplyOrder(c.Request.Context(), req)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, result)
}

// QuoteOrder godoc
// @Summary Quote an order without placing it
// @Tags Orders
// @Accept json
// @Produce json
// @Param request body model.PriceOrderRequest true "Order lines and optional promotion"
// @Success 200 {object} response.Response{data=model.OrderResponse}
// @Router /v1/orders/quote [post]
func (h *OrderHandler) QuoteOrder(c *gin.Context) {
	req, ok := bindPriceRequest(c)
	if !ok {
		return
	}

	result, err := h.orderService.QuoteOrder(c.Request.Context(), req)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, result)
}

// GetOrder godoc
// @Summary Get a placed order
// @Tags Orders
// @Produce json
// @Param id path string true "Order ID"
// @Success 200 {object} response.Response{data=model.OrderResponse}
// @Failure 404 {object} response.Response
// @Router /v1/orders/{id} [get]
func (h *OrderHandler) GetOrder(c *gin.Context) {
	orderID, ok := parseOrderID(c)
	if !ok {
		return
	}

	result, err := h.orderService.GetOrder(c.Request.Context(), orderID)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, result)
}

// MarkPaid godoc
// @Summary Mark a pending order as paid
// @Tags Orders
// @Produce json
// @Param id path string true "Order ID"
// @Success 200 {object} response.Response{data=model.OrderResponse}
// @Failure 400 {object} response.Response
// @Router /v1/orders/{id}/pay [patch]
func (h *OrderHandler) MarkPaid(c *gin.Context) {
	orderID, ok := parseOrderID(c)
	if !ok {
		return
	}

	result, err := h.orderService.MarkPaid(c.Request.Context(), orderID)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, result)
}

// CancelOrder godoc
// @Summary Cancel a pending order
// @Tags Orders
// @Produce json
// @Param id path string true "Order ID"
// @Success 200 {object} response.Response{data=model.OrderResponse}
// @Failure 400 {object} response.Response
// @Router /v1/orders/{id}/cancel [patch]
func (h *OrderHandler) CancelOrder(c *gin.Context) {
	orderID, ok := parseOrderID(c)
	if !ok {
		return
	}

	result, err := h.orderService.Cancel(c.Request.Context(), orderID)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, result)
}

func bindPriceRequest(c *gin.Context) (*model.PriceOrderRequest, bool) {
	var req model.PriceOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return nil, false
	}
	if err := req.Validate(); err != nil {
		response.FromError(c, err)
		return nil, false
	}
	return &req, true
}

func parseOrderID(c *gin.Context) (uuid.UUID, bool) {
	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid order ID format")
		return uuid.Nil, false
	}
	return orderID, true
}
