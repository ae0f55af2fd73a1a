package events

import (
	"context"
	"time"

	"github.com/talhaustundag/ecommerce-api/internal/domain"
)

// OrderConfirmationEvent is the payload sent to the notification sink after
// an order commits. Items carry the frozen purchase prices.
type OrderConfirmationEvent struct {
	EventID     string             `json:"event_id"`
	OrderID     int64              `json:"order_id"`
	UserID      int64              `json:"user_id"`
	TotalAmount float64            `json:"total_amount"`
	Items       []domain.OrderItem `json:"items"`
	Status      string             `json:"status"`
	Timestamp   time.Time          `json:"timestamp"`
	RequestID   string             `json:"request_id"`
}

// Producer delivers order confirmations. Delivery is best effort; callers
// log failures and never roll back the committed order.
type Producer interface {
	PublishOrderConfirmation(ctx context.Context, event OrderConfirmationEvent) error
	Close() error
}
