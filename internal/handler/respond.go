package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/talhaustundag/ecommerce-api/internal/domain"
)

// envelope is the uniform response body: success flag, human message,
// payload, and a validation error list.
type envelope struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data"`
	Errors  []string    `json:"errors"`
}

func respond(c *gin.Context, status int, message string, data interface{}) {
	c.JSON(status, envelope{
		Success: status < http.StatusBadRequest,
		Message: message,
		Data:    data,
		Errors:  []string{},
	})
}

func respondValidation(c *gin.Context, errs ...string) {
	c.JSON(http.StatusUnprocessableEntity, envelope{
		Success: false,
		Message: "validation failed",
		Data:    nil,
		Errors:  errs,
	})
}

// respondError maps a domain error onto its HTTP status. Storage detail
// leaks only as the persistence diagnostic string.
func respondError(c *gin.Context, err error) {
	var stockErr *domain.InsufficientStockError
	var persistErr *domain.PersistenceError

	switch {
	case errors.Is(err, domain.ErrEmptyCart):
		respond(c, http.StatusBadRequest, "cart is empty", nil)
	case errors.As(err, &stockErr):
		respond(c, http.StatusBadRequest, "insufficient stock for "+stockErr.ProductName, nil)
	case errors.Is(err, domain.ErrInvalidStatus):
		respond(c, http.StatusBadRequest, "invalid order status", nil)
	case errors.Is(err, domain.ErrInvalidCredentials):
		respond(c, http.StatusNotFound, "wrong email or password", nil)
	case errors.Is(err, domain.ErrEmailTaken):
		respondValidation(c, "email already registered")
	case errors.Is(err, domain.ErrOrderNotFound),
		errors.Is(err, domain.ErrProductNotFound),
		errors.Is(err, domain.ErrCategoryNotFound),
		errors.Is(err, domain.ErrCartNotFound),
		errors.Is(err, domain.ErrCartItemNotFound),
		errors.Is(err, domain.ErrUserNotFound):
		respond(c, http.StatusNotFound, err.Error(), nil)
	case errors.As(err, &persistErr):
		respond(c, http.StatusInternalServerError, persistErr.Error(), nil)
	default:
		respond(c, http.StatusInternalServerError, "internal error", nil)
	}
}

// userID reads the authenticated identity set by the auth middleware.
func userID(c *gin.Context) int64 {
	return c.GetInt64("user_id")
}
