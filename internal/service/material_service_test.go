package service

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"reclaim-market/internal/apperr"
	"reclaim-market/internal/models"
)

func newTestMaterialService(store *fakeStore) (*MaterialService, *fakeCache) {
	cache := &fakeCache{}
	return NewMaterialService(store, cache, time.Minute), cache
}

func validMaterialRequest() *MaterialRequest {
	return &MaterialRequest{
		Name:      "Fly Ash",
		Type:      "aggregate",
		Quantity:  50,
		Unit:      "ton",
		BasePrice: decimal.NewFromInt(30),
		Location:  "Nagpur",
	}
}

func TestCreateMaterial(t *testing.T) {
	store := newFakeStore()
	svc, cache := newTestMaterialService(store)
	ctx := context.Background()
	seller := store.addUser(&models.User{Name: "S", Email: "s@example.com", Role: models.RoleSeller})

	m, err := svc.Create(ctx, seller, validMaterialRequest())
	require.NoError(t, err)
	assert.Equal(t, models.MaterialActive, m.Status)
	assert.Equal(t, seller.ID, m.SellerID)
	assert.Equal(t, 1, cache.invalidated)
}

func TestCreateMaterialZeroQuantityIsInactive(t *testing.T) {
	store := newFakeStore()
	svc, _ := newTestMaterialService(store)
	ctx := context.Background()
	seller := store.addUser(&models.User{Name: "S", Email: "s@example.com", Role: models.RoleSeller})

	req := validMaterialRequest()
	req.Quantity = 0
	m, err := svc.Create(ctx, seller, req)
	require.NoError(t, err)
	assert.Equal(t, models.MaterialInactive, m.Status)

	listing, err := svc.Marketplace(ctx)
	require.NoError(t, err)
	assert.Empty(t, listing)
}

func TestCreateMaterialValidation(t *testing.T) {
	store := newFakeStore()
	svc, _ := newTestMaterialService(store)
	ctx := context.Background()
	seller := store.addUser(&models.User{Name: "S", Email: "s@example.com", Role: models.RoleSeller})

	req := validMaterialRequest()
	req.Name = ""
	_, err := svc.Create(ctx, seller, req)
	assert.Equal(t, apperr.CodeValidation, apperr.CodeOf(err))

	req = validMaterialRequest()
	req.BasePrice = decimal.Zero
	_, err = svc.Create(ctx, seller, req)
	assert.Equal(t, apperr.CodeValidation, apperr.CodeOf(err))

	req = validMaterialRequest()
	req.Quantity = -1
	_, err = svc.Create(ctx, seller, req)
	assert.Equal(t, apperr.CodeValidation, apperr.CodeOf(err))
}

func TestUpdateMaterialOwnership(t *testing.T) {
	store := newFakeStore()
	svc, _ := newTestMaterialService(store)
	ctx := context.Background()
	owner := store.addUser(&models.User{Name: "S", Email: "s@example.com", Role: models.RoleSeller})
	other := store.addUser(&models.User{Name: "O", Email: "o@example.com", Role: models.RoleSeller})

	m, err := svc.Create(ctx, owner, validMaterialRequest())
	require.NoError(t, err)

	req := validMaterialRequest()
	req.Quantity = 0
	_, err = svc.Update(ctx, other, m.ID, req)
	assert.Equal(t, apperr.CodeForbidden, apperr.CodeOf(err))

	updated, err := svc.Update(ctx, owner, m.ID, req)
	require.NoError(t, err)
	assert.Equal(t, models.MaterialInactive, updated.Status)

	// Restocking via update reactivates the listing.
	req.Quantity = 5
	updated, err = svc.Update(ctx, owner, m.ID, req)
	require.NoError(t, err)
	assert.Equal(t, models.MaterialActive, updated.Status)
}

func TestDeleteMaterialOwnership(t *testing.T) {
	store := newFakeStore()
	svc, _ := newTestMaterialService(store)
	ctx := context.Background()
	owner := store.addUser(&models.User{Name: "S", Email: "s@example.com", Role: models.RoleSeller})
	other := store.addUser(&models.User{Name: "O", Email: "o@example.com", Role: models.RoleSeller})

	m, err := svc.Create(ctx, owner, validMaterialRequest())
	require.NoError(t, err)

	err = svc.Delete(ctx, other, m.ID)
	assert.Equal(t, apperr.CodeForbidden, apperr.CodeOf(err))

	require.NoError(t, svc.Delete(ctx, owner, m.ID))

	_, err = svc.Get(ctx, m.ID)
	assert.Equal(t, apperr.CodeNotFound, apperr.CodeOf(err))
}

func TestMarketplaceUsesCache(t *testing.T) {
	store := newFakeStore()
	svc, cache := newTestMaterialService(store)
	ctx := context.Background()
	seller := store.addUser(&models.User{Name: "S", Email: "s@example.com", Role: models.RoleSeller})

	_, err := svc.Create(ctx, seller, validMaterialRequest())
	require.NoError(t, err)

	first, err := svc.Marketplace(ctx)
	require.NoError(t, err)
	require.Len(t, first, 1)
	require.NotNil(t, cache.listing)

	// A write behind the cache is not visible until invalidation.
	store.addMaterial(&models.Material{
		SellerID:  seller.ID,
		Name:      "Slag",
		Type:      "aggregate",
		Quantity:  10,
		Unit:      "ton",
		BasePrice: decimal.NewFromInt(10),
		Location:  "Pune",
		Status:    models.MaterialActive,
	})

	second, err := svc.Marketplace(ctx)
	require.NoError(t, err)
	assert.Len(t, second, 1)

	require.NoError(t, cache.InvalidateListing(ctx))

	third, err := svc.Marketplace(ctx)
	require.NoError(t, err)
	assert.Len(t, third, 2)
}
