package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/talhaustundag/ecommerce-api/internal/domain"
	"github.com/talhaustundag/ecommerce-api/internal/events"
	"github.com/talhaustundag/ecommerce-api/internal/repository"
)

type OrderService struct {
	orderRepo *repository.OrderRepository
	producer  events.Producer
	logger    *zap.Logger
}

func NewOrderService(orderRepo *repository.OrderRepository, producer events.Producer, logger *zap.Logger) *OrderService {
	return &OrderService{
		orderRepo: orderRepo,
		producer:  producer,
		logger:    logger,
	}
}

// PlaceOrder converts the user's cart into a committed order. The
// repository owns the atomic unit; this layer adds logging and the
// post-commit confirmation dispatch.
func (s *OrderService) PlaceOrder(ctx context.Context, userID int64, requestID string) (*domain.Order, error) {
	order, err := s.orderRepo.PlaceOrder(ctx, userID)
	if err != nil {
		s.logger.Warn("Order placement failed",
			zap.Int64("user_id", userID),
			zap.String("request_id", requestID),
			zap.Error(err))
		return nil, err
	}

	s.logger.Info("Order created successfully",
		zap.Int64("order_id", order.ID),
		zap.Int64("user_id", order.UserID),
		zap.Float64("total_amount", order.TotalAmount))

	// The order is already committed and authoritative; confirmation
	// delivery is best effort and must not fail the placement.
	event := events.OrderConfirmationEvent{
		EventID:     uuid.New().String(),
		OrderID:     order.ID,
		UserID:      order.UserID,
		TotalAmount: order.TotalAmount,
		Items:       order.Items,
		Status:      string(order.Status),
		Timestamp:   time.Now().UTC(),
		RequestID:   requestID,
	}
	go func() {
		if err := s.producer.PublishOrderConfirmation(context.Background(), event); err != nil {
			s.logger.Error("Failed to publish order confirmation",
				zap.Int64("order_id", event.OrderID),
				zap.Error(err))
		}
	}()

	return order, nil
}

// ListOrders returns the user's orders, newest first.
func (s *OrderService) ListOrders(ctx context.Context, userID int64) ([]domain.Order, error) {
	return s.orderRepo.ListByUser(ctx, userID)
}

// GetOrder loads one of the user's orders; other users' orders stay hidden.
func (s *OrderService) GetOrder(ctx context.Context, userID, orderID int64) (*domain.Order, error) {
	order, err := s.orderRepo.Get(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.UserID != userID {
		return nil, domain.ErrOrderNotFound
	}
	return order, nil
}

// UpdateStatus moves an order to any value inside the status enumeration.
// Transitions are deliberately permissive (admin override); only values
// outside the enumeration are rejected.
func (s *OrderService) UpdateStatus(ctx context.Context, orderID int64, rawStatus string) error {
	status, err := domain.ParseOrderStatus(rawStatus)
	if err != nil {
		return err
	}
	if err := s.orderRepo.UpdateStatus(ctx, orderID, status); err != nil {
		return err
	}
	s.logger.Info("Order status updated",
		zap.Int64("order_id", orderID),
		zap.String("status", rawStatus))
	return nil
}
