package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/talhaustundag/ecommerce-api/internal/service"
)

type OrderHandler struct {
	orderService *service.OrderService
	logger       *zap.Logger
}

func NewOrderHandler(orderService *service.OrderService, logger *zap.Logger) *OrderHandler {
	return &OrderHandler{
		orderService: orderService,
		logger:       logger,
	}
}

// CreateOrder places an order from the authenticated user's cart. The cart
// is the only input; an empty or missing cart is a 400.
func (h *OrderHandler) CreateOrder(c *gin.Context) {
	requestID := c.GetString("request_id")

	order, err := h.orderService.PlaceOrder(c.Request.Context(), userID(c), requestID)
	if err != nil {
		respondError(c, err)
		return
	}

	respond(c, http.StatusCreated, "order created", order)
}

func (h *OrderHandler) ListOrders(c *gin.Context) {
	orders, err := h.orderService.ListOrders(c.Request.Context(), userID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, strconv.Itoa(len(orders))+" orders listed", orders)
}

func (h *OrderHandler) GetOrder(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		respond(c, http.StatusBadRequest, "invalid order id", nil)
		return
	}

	order, err := h.orderService.GetOrder(c.Request.Context(), userID(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, "order details", order)
}

type updateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// UpdateStatus moves an order within the status enumeration. Admin only;
// any enumerated value is accepted from any current status.
func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		respond(c, http.StatusBadRequest, "invalid order id", nil)
		return
	}

	var req updateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidation(c, err.Error())
		return
	}

	if err := h.orderService.UpdateStatus(c.Request.Context(), id, req.Status); err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, "order status updated", gin.H{"id": id, "status": req.Status})
}
