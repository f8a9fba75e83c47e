package service

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"reclaim-market/internal/models"
	"reclaim-market/internal/store"
)

// fakeStatsStore returns canned aggregates.
type fakeStatsStore struct {
	seller  store.OrderStatusCounts
	buyer   store.OrderStatusCounts
	all     store.OrderStatusCounts
	roles   map[models.Role]int
	mats    int
	revenue decimal.Decimal
}

func (f *fakeStatsStore) CountOrdersByStatusForSeller(ctx context.Context, sellerID int64) (store.OrderStatusCounts, error) {
	return f.seller, nil
}

func (f *fakeStatsStore) CountOrdersByStatusForBuyer(ctx context.Context, buyerID int64) (store.OrderStatusCounts, error) {
	return f.buyer, nil
}

func (f *fakeStatsStore) CountAllOrdersByStatus(ctx context.Context) (store.OrderStatusCounts, error) {
	return f.all, nil
}

func (f *fakeStatsStore) CountUsersByRole(ctx context.Context) (map[models.Role]int, error) {
	return f.roles, nil
}

func (f *fakeStatsStore) CountMaterials(ctx context.Context) (int, error) {
	return f.mats, nil
}

func (f *fakeStatsStore) PaidRevenue(ctx context.Context) (decimal.Decimal, error) {
	return f.revenue, nil
}

func TestSellerStats(t *testing.T) {
	svc := NewStatsService(&fakeStatsStore{
		seller: store.OrderStatusCounts{
			models.OrderPlaced:    2,
			models.OrderApproved:  3,
			models.OrderPickedUp:  1,
			models.OrderCompleted: 4,
			models.OrderCancelled: 5,
		},
	})

	stats, err := svc.Seller(context.Background(), &models.User{ID: 1})
	require.NoError(t, err)
	assert.Equal(t, 15, stats.Total)
	assert.Equal(t, 3, stats.Approved)
	assert.Equal(t, 5, stats.Rejected)
	assert.Equal(t, 4, stats.Completed)
	assert.Equal(t, 6, stats.InProgress)
}

func TestBuyerStats(t *testing.T) {
	svc := NewStatsService(&fakeStatsStore{
		buyer: store.OrderStatusCounts{
			models.OrderPlaced:    1,
			models.OrderCompleted: 2,
		},
	})

	stats, err := svc.Buyer(context.Background(), &models.User{ID: 1})
	require.NoError(t, err)
	assert.Equal(t, 3, stats.Total)
	assert.Equal(t, 2, stats.Completed)
	assert.Equal(t, 0, stats.Rejected)
	assert.Equal(t, 1, stats.InProgress)
}

func TestAdminStats(t *testing.T) {
	svc := NewStatsService(&fakeStatsStore{
		all: store.OrderStatusCounts{
			models.OrderPlaced:   1,
			models.OrderApproved: 2,
		},
		roles:   map[models.Role]int{models.RoleBuyer: 10, models.RoleSeller: 4, models.RoleAdmin: 1},
		mats:    7,
		revenue: decimal.RequireFromString("1234.50"),
	})

	stats, err := svc.Admin(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 15, stats.Users.Total)
	assert.Equal(t, 10, stats.Users.Buyers)
	assert.Equal(t, 3, stats.Orders.Total)
	assert.Equal(t, 7, stats.Materials.Total)
	assert.True(t, stats.Revenue.Equal(decimal.RequireFromString("1234.50")))
}
