package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/talhaustundag/ecommerce-api/internal/service"
)

type CartHandler struct {
	cartService *service.CartService
	logger      *zap.Logger
}

func NewCartHandler(cartService *service.CartService, logger *zap.Logger) *CartHandler {
	return &CartHandler{cartService: cartService, logger: logger}
}

func (h *CartHandler) GetCart(c *gin.Context) {
	cart, err := h.cartService.GetCart(c.Request.Context(), userID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, "cart", cart)
}

type addToCartRequest struct {
	ProductID int64 `json:"product_id" binding:"required"`
	Quantity  int   `json:"quantity" binding:"omitempty,min=1"`
}

func (h *CartHandler) AddItem(c *gin.Context) {
	var req addToCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidation(c, err.Error())
		return
	}

	item, err := h.cartService.AddItem(c.Request.Context(), userID(c), req.ProductID, req.Quantity)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusCreated, "product added to cart", item)
}

type updateCartRequest struct {
	ProductID int64 `json:"product_id" binding:"required"`
	Quantity  int   `json:"quantity" binding:"required,min=1"`
}

func (h *CartHandler) UpdateItem(c *gin.Context) {
	var req updateCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidation(c, err.Error())
		return
	}

	item, err := h.cartService.UpdateItem(c.Request.Context(), userID(c), req.ProductID, req.Quantity)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, "cart item updated", item)
}

func (h *CartHandler) RemoveItem(c *gin.Context) {
	productID, err := strconv.ParseInt(c.Param("product_id"), 10, 64)
	if err != nil {
		respond(c, http.StatusBadRequest, "invalid product id", nil)
		return
	}

	remaining, err := h.cartService.RemoveItem(c.Request.Context(), userID(c), productID)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, "product removed from cart", gin.H{
		"product_id":         productID,
		"remaining_quantity": remaining,
	})
}

func (h *CartHandler) ClearCart(c *gin.Context) {
	if err := h.cartService.ClearCart(c.Request.Context(), userID(c)); err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, "cart cleared", []string{})
}
