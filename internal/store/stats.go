package store

import (
	"context"

	"github.com/shopspring/decimal"

	"reclaim-market/internal/models"
)

// OrderStatusCounts maps lifecycle states to order counts.
type OrderStatusCounts map[models.OrderStatus]int

// InProgress sums the non-terminal states.
func (c OrderStatusCounts) InProgress() int {
	return c[models.OrderPlaced] + c[models.OrderApproved] + c[models.OrderPickedUp]
}

// Total sums every state.
func (c OrderStatusCounts) Total() int {
	var total int
	for _, n := range c {
		total += n
	}
	return total
}

// CountOrdersByStatusForSeller aggregates a seller's orders per state.
func (s *Store) CountOrdersByStatusForSeller(ctx context.Context, sellerID int64) (OrderStatusCounts, error) {
	return s.countOrders(ctx,
		"SELECT order_status, COUNT(*) AS n FROM orders WHERE seller_id = $1 GROUP BY order_status",
		sellerID)
}

// CountOrdersByStatusForBuyer aggregates a buyer's orders per state.
func (s *Store) CountOrdersByStatusForBuyer(ctx context.Context, buyerID int64) (OrderStatusCounts, error) {
	return s.countOrders(ctx,
		"SELECT order_status, COUNT(*) AS n FROM orders WHERE buyer_id = $1 GROUP BY order_status",
		buyerID)
}

// CountAllOrdersByStatus aggregates every order per state.
func (s *Store) CountAllOrdersByStatus(ctx context.Context) (OrderStatusCounts, error) {
	return s.countOrders(ctx,
		"SELECT order_status, COUNT(*) AS n FROM orders GROUP BY order_status")
}

func (s *Store) countOrders(ctx context.Context, query string, args ...interface{}) (OrderStatusCounts, error) {
	rows, err := s.db.QueryxContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(OrderStatusCounts)
	for rows.Next() {
		var status models.OrderStatus
		var n int
		if err := rows.Scan(&status, &n); err != nil {
			return nil, err
		}
		counts[status] = n
	}
	return counts, rows.Err()
}

// CountUsersByRole aggregates users per role.
func (s *Store) CountUsersByRole(ctx context.Context) (map[models.Role]int, error) {
	rows, err := s.db.QueryxContext(ctx,
		"SELECT role, COUNT(*) AS n FROM users GROUP BY role")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[models.Role]int)
	for rows.Next() {
		var role models.Role
		var n int
		if err := rows.Scan(&role, &n); err != nil {
			return nil, err
		}
		counts[role] = n
	}
	return counts, rows.Err()
}

// PaidRevenue sums base_price * quantity over all paid orders. Orders
// whose material was hard-deleted no longer contribute.
func (s *Store) PaidRevenue(ctx context.Context) (decimal.Decimal, error) {
	var revenue decimal.Decimal
	err := s.db.GetContext(ctx, &revenue, `
		SELECT COALESCE(SUM(m.base_price * o.quantity), 0)
		FROM orders o
		JOIN materials m ON m.id = o.material_id
		WHERE o.payment_status = $1`,
		models.PaymentPaid)
	return revenue, err
}
