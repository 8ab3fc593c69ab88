package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"partshop/internal/model"
	"partshop/internal/repository"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

const (
	defaultOrderLimit = 50
	maxOrderLimit     = 100
)

var tracer = otel.Tracer("partshop/service")

// OrderOptions configures order placement.
type OrderOptions struct {
	// TxTimeout bounds the placement transaction.
	TxTimeout time.Duration

	// PublishEvents writes an order.placed outbox message with every order.
	PublishEvents bool
}

// orderService implements OrderService.
type orderService struct {
	orderRepo  repository.OrderRepository
	cartRepo   repository.CartRepository
	outboxRepo repository.OutboxRepository
	opts       OrderOptions
	logger     zerolog.Logger
}

// NewOrderService creates a new order service.
func NewOrderService(
	orderRepo repository.OrderRepository,
	cartRepo repository.CartRepository,
	outboxRepo repository.OutboxRepository,
	opts OrderOptions,
	logger zerolog.Logger,
) OrderService {
	if opts.TxTimeout <= 0 {
		opts.TxTimeout = 10 * time.Second
	}
	return &orderService{
		orderRepo:  orderRepo,
		cartRepo:   cartRepo,
		outboxRepo: outboxRepo,
		opts:       opts,
		logger:     logger.With().Str("service", "order").Logger(),
	}
}

// PlaceOrder validates req and creates the order atomically.
func (s *orderService) PlaceOrder(ctx context.Context, req *model.PlaceOrderRequest) (*model.Order, bool, error) {
	if err := req.Validate(); err != nil {
		s.logger.Warn().Ctx(ctx).Err(err).Msg("invalid order request")
		return nil, false, err
	}

	if req.IdempotencyKey != nil {
		existing, err := s.existingOrder(ctx, req)
		if err != nil || existing != nil {
			return existing, false, err
		}
	}

	return s.placeOrder(ctx, req, nil)
}

// Checkout turns the customer's cart into an order.
func (s *orderService) Checkout(ctx context.Context, p model.Principal, req *model.CheckoutRequest) (*model.Order, error) {
	if req.CustomerID <= 0 {
		req.CustomerID = p.ID
	}
	if err := authorize(p, req.CustomerID); err != nil {
		return nil, err
	}

	lines, err := s.cartRepo.ListByCustomer(ctx, req.CustomerID)
	if err != nil {
		s.logger.Error().Ctx(ctx).Err(err).Int64("customer_id", req.CustomerID).Msg("failed to load cart")
		return nil, fmt.Errorf("failed to load cart: %w", err)
	}
	if len(lines) == 0 {
		return nil, model.ErrEmptyCart
	}

	placeReq := &model.PlaceOrderRequest{
		CustomerID:      req.CustomerID,
		PaymentMethodID: req.PaymentMethodID,
		Items:           make([]model.OrderItemRequest, len(lines)),
	}
	if p.IsStaff() {
		placeReq.EmployeeID = &p.ID
	}
	for i, line := range lines {
		placeReq.Items[i] = model.OrderItemRequest{
			PartID:    line.PartID,
			Quantity:  line.Quantity,
			UnitPrice: line.Price,
		}
	}
	if err := placeReq.Validate(); err != nil {
		return nil, err
	}

	order, _, err := s.placeOrder(ctx, placeReq, func(ctx context.Context, tx pgx.Tx) error {
		return s.cartRepo.ClearTx(ctx, tx, req.CustomerID)
	})
	return order, err
}

// placeOrder runs the placement transaction. inTx, when set, runs after the
// items are written and before commit.
func (s *orderService) placeOrder(
	ctx context.Context,
	req *model.PlaceOrderRequest,
	inTx func(ctx context.Context, tx pgx.Tx) error,
) (order *model.Order, created bool, err error) {
	ctx, span := tracer.Start(ctx, "OrderService.PlaceOrder")
	defer span.End()
	span.SetAttributes(
		attribute.Int64("customer_id", req.CustomerID),
		attribute.Int("item_count", len(req.Items)),
	)

	txCtx, cancel := context.WithTimeout(ctx, s.opts.TxTimeout)
	defer cancel()

	defer func() {
		if err == nil {
			return
		}
		if errors.Is(txCtx.Err(), context.DeadlineExceeded) && !errors.Is(err, model.ErrOrderTimeout) {
			err = fmt.Errorf("%w: %w", model.ErrOrderTimeout, err)
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}()

	tx, err := s.orderRepo.BeginTx(txCtx)
	if err != nil {
		s.logger.Error().Ctx(ctx).Err(err).Msg("failed to begin transaction")
		return nil, false, fmt.Errorf("failed to place order: %w", err)
	}

	// Rollback must run even when txCtx has expired.
	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(context.WithoutCancel(ctx)); rbErr != nil && !errors.Is(rbErr, pgx.ErrTxClosed) {
				s.logger.Error().Ctx(ctx).Err(rbErr).Msg("failed to rollback transaction")
			}
		}
	}()

	order = &model.Order{
		CustomerID:      req.CustomerID,
		PaymentMethodID: req.PaymentMethodID,
		EmployeeID:      req.EmployeeID,
		TotalAmount:     req.TotalAmount(),
		Status:          model.OrderStatusPending,
		IdempotencyKey:  req.IdempotencyKey,
	}

	created, err = s.orderRepo.CreateOrder(txCtx, tx, order)
	if err != nil {
		s.logger.Error().Ctx(ctx).Err(err).Int64("customer_id", req.CustomerID).Msg("failed to create order")
		return nil, false, fmt.Errorf("failed to create order: %w", err)
	}
	if !created {
		// A concurrent request with the same key committed first.
		if rbErr := tx.Rollback(txCtx); rbErr != nil {
			s.logger.Warn().Ctx(ctx).Err(rbErr).Msg("failed to rollback duplicate order")
		}
		existing, err := s.existingOrder(ctx, req)
		if err != nil {
			return nil, false, err
		}
		if existing == nil {
			return nil, false, fmt.Errorf("order with idempotency key %s vanished", req.IdempotencyKey)
		}
		return existing, false, nil
	}

	items := make([]model.OrderItem, len(req.Items))
	for i, item := range req.Items {
		items[i] = model.OrderItem{
			OrderID:   order.ID,
			PartID:    item.PartID,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
			Subtotal:  item.Subtotal(),
		}
	}

	if err = s.orderRepo.CreateOrderItems(txCtx, tx, items); err != nil {
		s.logger.Error().
			Ctx(ctx).
			Err(err).
			Int64("order_id", order.ID).
			Int("item_count", len(items)).
			Msg("failed to create order items")
		return nil, false, fmt.Errorf("failed to create order items: %w", err)
	}
	order.Items = items

	if s.opts.PublishEvents {
		if err = s.enqueuePlaced(txCtx, tx, order); err != nil {
			return nil, false, err
		}
	}

	if inTx != nil {
		if err = inTx(txCtx, tx); err != nil {
			return nil, false, err
		}
	}

	if err = tx.Commit(txCtx); err != nil {
		s.logger.Error().Ctx(ctx).Err(err).Int64("order_id", order.ID).Msg("failed to commit transaction")
		return nil, false, fmt.Errorf("failed to place order: %w", err)
	}

	span.SetAttributes(attribute.Int64("order_id", order.ID))
	s.logger.Info().
		Ctx(ctx).
		Int64("order_id", order.ID).
		Int64("customer_id", order.CustomerID).
		Str("total_amount", order.TotalAmount.StringFixed(2)).
		Int("item_count", len(items)).
		Msg("order placed successfully")

	return order, true, nil
}

func (s *orderService) enqueuePlaced(ctx context.Context, tx pgx.Tx, order *model.Order) error {
	payload, err := json.Marshal(model.OrderPlacedEvent{
		OrderID:     order.ID,
		CustomerID:  order.CustomerID,
		TotalAmount: order.TotalAmount,
		ItemCount:   len(order.Items),
		PlacedAt:    order.OrderDate,
	})
	if err != nil {
		return fmt.Errorf("failed to encode order event: %w", err)
	}

	err = s.outboxRepo.Insert(ctx, tx, model.OutboxMessage{
		RoutingKey: model.RoutingKeyOrderPlaced,
		Payload:    payload,
	})
	if err != nil {
		s.logger.Error().Ctx(ctx).Err(err).Int64("order_id", order.ID).Msg("failed to enqueue order event")
		return fmt.Errorf("failed to enqueue order event: %w", err)
	}
	return nil
}

// existingOrder returns the order already placed with req's idempotency key.
func (s *orderService) existingOrder(ctx context.Context, req *model.PlaceOrderRequest) (*model.Order, error) {
	existing, err := s.orderRepo.GetByIdempotencyKey(ctx, *req.IdempotencyKey)
	if err != nil {
		return nil, fmt.Errorf("failed to look up idempotency key: %w", err)
	}
	if existing == nil {
		return nil, nil
	}
	if existing.CustomerID != req.CustomerID {
		s.logger.Warn().
			Ctx(ctx).
			Stringer("idempotency_key", req.IdempotencyKey).
			Msg("idempotency key reused by another customer")
		return nil, model.ErrDuplicate
	}

	s.logger.Info().
		Ctx(ctx).
		Int64("order_id", existing.ID).
		Msg("returning order for repeated idempotency key")
	return existing, nil
}

// GetByID retrieves an order visible to p.
func (s *orderService) GetByID(ctx context.Context, p model.Principal, id int64) (*model.Order, error) {
	order, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error().Ctx(ctx).Err(err).Int64("order_id", id).Msg("failed to get order")
		return nil, fmt.Errorf("failed to get order: %w", err)
	}
	if order == nil {
		return nil, model.ErrNotFound
	}
	if err := authorize(p, order.CustomerID); err != nil {
		return nil, err
	}
	return order, nil
}

// ListByCustomer retrieves a customer's orders newest first.
func (s *orderService) ListByCustomer(ctx context.Context, customerID int64) ([]model.Order, error) {
	orders, err := s.orderRepo.List(ctx, model.OrderFilter{CustomerID: &customerID})
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	return orders, nil
}

// List retrieves all orders with pagination.
func (s *orderService) List(ctx context.Context, filter model.OrderFilter) ([]model.Order, error) {
	if filter.Limit <= 0 {
		filter.Limit = defaultOrderLimit
	}
	if filter.Limit > maxOrderLimit {
		filter.Limit = maxOrderLimit
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}

	orders, err := s.orderRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	return orders, nil
}

// UpdateStatus moves an order to status.
func (s *orderService) UpdateStatus(ctx context.Context, id int64, status string) (*model.Order, error) {
	next, err := model.ParseOrderStatus(status)
	if err != nil {
		return nil, err
	}

	order, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get order: %w", err)
	}
	if order == nil {
		return nil, model.ErrNotFound
	}

	if !order.Status.CanTransitionTo(next) {
		s.logger.Warn().
			Ctx(ctx).
			Int64("order_id", id).
			Str("from", string(order.Status)).
			Str("to", string(next)).
			Msg("rejected status transition")
		return nil, model.ErrInvalidStatusTransition
	}

	updated, err := s.orderRepo.UpdateStatus(ctx, id, order.Status, next)
	if err != nil {
		return nil, fmt.Errorf("failed to update order status: %w", err)
	}
	return updated, nil
}
