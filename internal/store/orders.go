package store

import (
	"context"
	"database/sql"
	"errors"

	"reclaim-market/internal/apperr"
	"reclaim-market/internal/models"
)

// CreateOrder inserts a new order in its initial state.
func (s *Store) CreateOrder(ctx context.Context, order *models.Order) error {
	query := `
		INSERT INTO orders (buyer_id, seller_id, material_id, quantity, logistics_mode, order_status, payment_status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at`

	return s.db.GetContext(ctx, order, query,
		order.BuyerID, order.SellerID, order.MaterialID, order.Quantity,
		order.LogisticsMode, order.OrderStatus, order.PaymentStatus)
}

// GetOrderByID retrieves an order by ID
func (s *Store) GetOrderByID(ctx context.Context, id int64) (*models.Order, error) {
	var order models.Order
	err := s.db.GetContext(ctx, &order, "SELECT * FROM orders WHERE id = $1", id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.NotFound("order not found: %d", id)
	}
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// ApproveOrder moves a PLACED order to APPROVED. The current state is
// part of the WHERE clause, so a concurrent duplicate request loses the
// race instead of double-applying.
func (s *Store) ApproveOrder(ctx context.Context, orderID int64) error {
	query := `
		UPDATE orders
		SET order_status = $1, approved_at = NOW(), updated_at = NOW()
		WHERE id = $2 AND order_status = $3`

	return s.transition(ctx, query, models.OrderApproved, orderID, models.OrderPlaced)
}

// RejectOrder cancels a PLACED order on the seller's behalf.
func (s *Store) RejectOrder(ctx context.Context, orderID int64) error {
	query := `
		UPDATE orders
		SET order_status = $1, cancelled_by = 'SELLER', cancelled_at = NOW(), updated_at = NOW()
		WHERE id = $2 AND order_status = $3`

	return s.transition(ctx, query, models.OrderCancelled, orderID, models.OrderPlaced)
}

// MarkOrderPickedUp flags the order as shipped. The only gate here is a
// verified payment; the lifecycle state is checked by the caller.
func (s *Store) MarkOrderPickedUp(ctx context.Context, orderID int64) error {
	query := `
		UPDATE orders
		SET order_status = $1, updated_at = NOW()
		WHERE id = $2 AND payment_status = $3`

	return s.transition(ctx, query, models.OrderPickedUp, orderID, models.PaymentPaid)
}

// CompleteOrder moves a PICKED_UP order to COMPLETED.
func (s *Store) CompleteOrder(ctx context.Context, orderID int64) error {
	query := `
		UPDATE orders
		SET order_status = $1, completed_at = NOW(), updated_at = NOW()
		WHERE id = $2 AND order_status = $3`

	return s.transition(ctx, query, models.OrderCompleted, orderID, models.OrderPickedUp)
}

// AdminCancelOrder force-cancels an order from any non-terminal state.
func (s *Store) AdminCancelOrder(ctx context.Context, orderID int64) error {
	query := `
		UPDATE orders
		SET order_status = $1, cancelled_by = 'ADMIN', cancelled_at = NOW(), updated_at = NOW()
		WHERE id = $2 AND order_status NOT IN ($3, $4)`

	res, err := s.db.ExecContext(ctx, query,
		models.OrderCancelled, orderID, models.OrderCompleted, models.OrderCancelled)
	if err != nil {
		return err
	}
	return rowsOrInvalidState(res)
}

// MarkOrderPaid records the gateway confirmation and flips the payment
// status to PAID at most once.
func (s *Store) MarkOrderPaid(ctx context.Context, orderID int64, gatewayOrderID, gatewayPaymentID, signature string) error {
	query := `
		UPDATE orders
		SET payment_status = $1, gateway_order_id = $2, gateway_payment_id = $3,
		    gateway_signature = $4, updated_at = NOW()
		WHERE id = $5 AND payment_status <> $1`

	res, err := s.db.ExecContext(ctx, query,
		models.PaymentPaid, gatewayOrderID, gatewayPaymentID, signature, orderID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return apperr.AlreadyPaid()
	}
	return nil
}

// ListOrdersByBuyer retrieves a buyer's orders, newest first.
func (s *Store) ListOrdersByBuyer(ctx context.Context, buyerID int64) ([]models.Order, error) {
	var orders []models.Order
	err := s.db.SelectContext(ctx, &orders,
		"SELECT * FROM orders WHERE buyer_id = $1 ORDER BY created_at DESC", buyerID)
	return orders, err
}

// ListOrdersBySeller retrieves a seller's orders, newest first.
func (s *Store) ListOrdersBySeller(ctx context.Context, sellerID int64) ([]models.Order, error) {
	var orders []models.Order
	err := s.db.SelectContext(ctx, &orders,
		"SELECT * FROM orders WHERE seller_id = $1 ORDER BY created_at DESC", sellerID)
	return orders, err
}

// ListAllOrders retrieves every order, newest first.
func (s *Store) ListAllOrders(ctx context.Context) ([]models.Order, error) {
	var orders []models.Order
	err := s.db.SelectContext(ctx, &orders, "SELECT * FROM orders ORDER BY created_at DESC")
	return orders, err
}

func (s *Store) transition(ctx context.Context, query string, args ...interface{}) error {
	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}
	return rowsOrInvalidState(res)
}

func rowsOrInvalidState(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return apperr.InvalidState("order is not in a state that allows this operation")
	}
	return nil
}
