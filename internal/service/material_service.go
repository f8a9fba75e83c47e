package service

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"reclaim-market/internal/apperr"
	"reclaim-market/internal/models"
	"reclaim-market/internal/util"
)

// MaterialStore is the persistence surface the material service needs.
type MaterialStore interface {
	CreateMaterial(ctx context.Context, m *models.Material) error
	GetMaterialByID(ctx context.Context, id int64) (*models.Material, error)
	UpdateMaterial(ctx context.Context, m *models.Material) error
	DeleteMaterial(ctx context.Context, id int64) error
	ListActiveMaterials(ctx context.Context) ([]models.Material, error)
	ListMaterialsBySeller(ctx context.Context, sellerID int64) ([]models.Material, error)
}

// MaterialService handles seller listing CRUD and the marketplace view.
type MaterialService struct {
	store    MaterialStore
	cache    ListingCache
	cacheTTL time.Duration
	logger   *zap.Logger
}

// NewMaterialService creates a new material service
func NewMaterialService(store MaterialStore, cache ListingCache, cacheTTL time.Duration) *MaterialService {
	return &MaterialService{
		store:    store,
		cache:    cache,
		cacheTTL: cacheTTL,
		logger:   util.GetLogger(),
	}
}

// MaterialRequest carries the fields a seller may set on a listing.
type MaterialRequest struct {
	Name        string          `json:"name"`
	Type        string          `json:"type"`
	Description string          `json:"description"`
	Quantity    int             `json:"quantity"`
	Unit        string          `json:"unit"`
	BasePrice   decimal.Decimal `json:"base_price"`
	Location    string          `json:"location"`
	Co2Savings  decimal.Decimal `json:"co2_savings"`
}

func (r *MaterialRequest) validate() error {
	if r.Name == "" || r.Type == "" || r.Unit == "" || r.Location == "" {
		return apperr.Validation("name, type, unit and location are required")
	}
	if r.Quantity < 0 {
		return apperr.Validation("quantity must not be negative")
	}
	if !r.BasePrice.IsPositive() {
		return apperr.Validation("base price must be positive")
	}
	return nil
}

// Create adds a new listing owned by the seller.
func (s *MaterialService) Create(ctx context.Context, seller *models.User, req *MaterialRequest) (*models.Material, error) {
	ctx, span := util.StartSpan(ctx, "MaterialService.Create")
	defer span.End()

	if err := req.validate(); err != nil {
		return nil, err
	}

	status := models.MaterialActive
	if req.Quantity == 0 {
		status = models.MaterialInactive
	}

	m := &models.Material{
		SellerID:    seller.ID,
		Name:        req.Name,
		Type:        req.Type,
		Description: req.Description,
		Quantity:    req.Quantity,
		Unit:        req.Unit,
		BasePrice:   req.BasePrice,
		Location:    req.Location,
		Co2Savings:  req.Co2Savings,
		Status:      status,
	}

	if err := s.store.CreateMaterial(ctx, m); err != nil {
		return nil, err
	}

	s.invalidateListing(ctx)
	s.logger.Info("Material created",
		zap.Int64("material_id", m.ID),
		zap.Int64("seller_id", seller.ID))

	return m, nil
}

// Update edits a listing. Only the owning seller may edit, and the
// active flag is recomputed from the new quantity.
func (s *MaterialService) Update(ctx context.Context, actor *models.User, materialID int64, req *MaterialRequest) (*models.Material, error) {
	ctx, span := util.StartSpan(ctx, "MaterialService.Update")
	defer span.End()

	if err := req.validate(); err != nil {
		return nil, err
	}

	m, err := s.store.GetMaterialByID(ctx, materialID)
	if err != nil {
		return nil, err
	}
	if m.SellerID != actor.ID {
		return nil, apperr.Forbidden("not the owner of this material")
	}

	m.Name = req.Name
	m.Type = req.Type
	m.Description = req.Description
	m.Quantity = req.Quantity
	m.Unit = req.Unit
	m.BasePrice = req.BasePrice
	m.Location = req.Location
	m.Co2Savings = req.Co2Savings
	if m.Quantity > 0 {
		m.Status = models.MaterialActive
	} else {
		m.Status = models.MaterialInactive
	}

	if err := s.store.UpdateMaterial(ctx, m); err != nil {
		return nil, err
	}

	s.invalidateListing(ctx)
	return m, nil
}

// Delete hard-deletes a listing. Only the owning seller may delete.
func (s *MaterialService) Delete(ctx context.Context, actor *models.User, materialID int64) error {
	ctx, span := util.StartSpan(ctx, "MaterialService.Delete")
	defer span.End()

	m, err := s.store.GetMaterialByID(ctx, materialID)
	if err != nil {
		return err
	}
	if m.SellerID != actor.ID {
		return apperr.Forbidden("not the owner of this material")
	}

	if err := s.store.DeleteMaterial(ctx, materialID); err != nil {
		return err
	}

	s.invalidateListing(ctx)
	return nil
}

// Marketplace returns the public listing of active materials, served
// from cache when fresh.
func (s *MaterialService) Marketplace(ctx context.Context) ([]models.Material, error) {
	ctx, span := util.StartSpan(ctx, "MaterialService.Marketplace")
	defer span.End()

	if cached, err := s.cache.GetListing(ctx); err != nil {
		s.logger.Warn("Listing cache read failed", zap.Error(err))
	} else if cached != nil {
		return cached, nil
	}

	materials, err := s.store.ListActiveMaterials(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.cache.SetListing(ctx, materials, s.cacheTTL); err != nil {
		s.logger.Warn("Listing cache write failed", zap.Error(err))
	}
	return materials, nil
}

// Mine returns every listing a seller owns, including inactive ones.
func (s *MaterialService) Mine(ctx context.Context, seller *models.User) ([]models.Material, error) {
	return s.store.ListMaterialsBySeller(ctx, seller.ID)
}

// Get returns a single listing.
func (s *MaterialService) Get(ctx context.Context, materialID int64) (*models.Material, error) {
	return s.store.GetMaterialByID(ctx, materialID)
}

func (s *MaterialService) invalidateListing(ctx context.Context) {
	if err := s.cache.InvalidateListing(ctx); err != nil {
		s.logger.Warn("Listing cache invalidation failed", zap.Error(err))
	}
}
