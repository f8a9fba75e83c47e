package service

import (
	"context"

	"github.com/shopspring/decimal"

	"reclaim-market/internal/models"
	"reclaim-market/internal/store"
)

// StatsStore is the aggregation surface the stats service needs.
type StatsStore interface {
	CountOrdersByStatusForSeller(ctx context.Context, sellerID int64) (store.OrderStatusCounts, error)
	CountOrdersByStatusForBuyer(ctx context.Context, buyerID int64) (store.OrderStatusCounts, error)
	CountAllOrdersByStatus(ctx context.Context) (store.OrderStatusCounts, error)
	CountUsersByRole(ctx context.Context) (map[models.Role]int, error)
	CountMaterials(ctx context.Context) (int, error)
	PaidRevenue(ctx context.Context) (decimal.Decimal, error)
}

// StatsService serves the dashboard aggregate counts.
type StatsService struct {
	store StatsStore
}

// NewStatsService creates a new stats service
func NewStatsService(store StatsStore) *StatsService {
	return &StatsService{store: store}
}

// SellerStats is the seller dashboard payload. Rejected counts every
// cancellation, matching the historical dashboard shape.
type SellerStats struct {
	Total      int `json:"total"`
	Approved   int `json:"approved"`
	Rejected   int `json:"rejected"`
	Completed  int `json:"completed"`
	InProgress int `json:"inProgress"`
}

// BuyerStats is the buyer dashboard payload.
type BuyerStats struct {
	Total      int `json:"total"`
	Completed  int `json:"completed"`
	Rejected   int `json:"rejected"`
	InProgress int `json:"inProgress"`
}

// AdminStats is the admin dashboard payload.
type AdminStats struct {
	Users struct {
		Total   int `json:"total"`
		Buyers  int `json:"buyers"`
		Sellers int `json:"sellers"`
		Admins  int `json:"admins"`
	} `json:"users"`
	Orders struct {
		Total     int `json:"total"`
		Placed    int `json:"placed"`
		Approved  int `json:"approved"`
		PickedUp  int `json:"pickedUp"`
		Completed int `json:"completed"`
		Cancelled int `json:"cancelled"`
	} `json:"orders"`
	Materials struct {
		Total int `json:"total"`
	} `json:"materials"`
	Revenue decimal.Decimal `json:"revenue"`
}

// Seller aggregates the seller's order counts.
func (s *StatsService) Seller(ctx context.Context, seller *models.User) (*SellerStats, error) {
	counts, err := s.store.CountOrdersByStatusForSeller(ctx, seller.ID)
	if err != nil {
		return nil, err
	}
	return &SellerStats{
		Total:      counts.Total(),
		Approved:   counts[models.OrderApproved],
		Rejected:   counts[models.OrderCancelled],
		Completed:  counts[models.OrderCompleted],
		InProgress: counts.InProgress(),
	}, nil
}

// Buyer aggregates the buyer's order counts.
func (s *StatsService) Buyer(ctx context.Context, buyer *models.User) (*BuyerStats, error) {
	counts, err := s.store.CountOrdersByStatusForBuyer(ctx, buyer.ID)
	if err != nil {
		return nil, err
	}
	return &BuyerStats{
		Total:      counts.Total(),
		Completed:  counts[models.OrderCompleted],
		Rejected:   counts[models.OrderCancelled],
		InProgress: counts.InProgress(),
	}, nil
}

// Admin aggregates platform-wide counts and paid revenue.
func (s *StatsService) Admin(ctx context.Context) (*AdminStats, error) {
	stats := &AdminStats{}

	roles, err := s.store.CountUsersByRole(ctx)
	if err != nil {
		return nil, err
	}
	stats.Users.Buyers = roles[models.RoleBuyer]
	stats.Users.Sellers = roles[models.RoleSeller]
	stats.Users.Admins = roles[models.RoleAdmin]
	stats.Users.Total = stats.Users.Buyers + stats.Users.Sellers + stats.Users.Admins

	orders, err := s.store.CountAllOrdersByStatus(ctx)
	if err != nil {
		return nil, err
	}
	stats.Orders.Total = orders.Total()
	stats.Orders.Placed = orders[models.OrderPlaced]
	stats.Orders.Approved = orders[models.OrderApproved]
	stats.Orders.PickedUp = orders[models.OrderPickedUp]
	stats.Orders.Completed = orders[models.OrderCompleted]
	stats.Orders.Cancelled = orders[models.OrderCancelled]

	materials, err := s.store.CountMaterials(ctx)
	if err != nil {
		return nil, err
	}
	stats.Materials.Total = materials

	revenue, err := s.store.PaidRevenue(ctx)
	if err != nil {
		return nil, err
	}
	stats.Revenue = revenue

	return stats, nil
}
