package store

import (
	"context"
	"database/sql"
	"errors"

	"reclaim-market/internal/apperr"
	"reclaim-market/internal/models"
)

// CreateMaterial inserts a new listing.
func (s *Store) CreateMaterial(ctx context.Context, m *models.Material) error {
	query := `
		INSERT INTO materials (seller_id, name, type, description, quantity, unit, base_price, location, co2_savings, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, created_at, updated_at`

	return s.db.GetContext(ctx, m, query,
		m.SellerID, m.Name, m.Type, m.Description, m.Quantity, m.Unit,
		m.BasePrice, m.Location, m.Co2Savings, m.Status)
}

// GetMaterialByID retrieves a material by ID
func (s *Store) GetMaterialByID(ctx context.Context, id int64) (*models.Material, error) {
	var m models.Material
	err := s.db.GetContext(ctx, &m, "SELECT * FROM materials WHERE id = $1", id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.NotFound("material not found: %d", id)
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// UpdateMaterial overwrites the editable fields of a listing.
func (s *Store) UpdateMaterial(ctx context.Context, m *models.Material) error {
	query := `
		UPDATE materials
		SET name = $1, type = $2, description = $3, quantity = $4, unit = $5,
		    base_price = $6, location = $7, co2_savings = $8, status = $9, updated_at = NOW()
		WHERE id = $10
		RETURNING updated_at`

	err := s.db.GetContext(ctx, &m.UpdatedAt, query,
		m.Name, m.Type, m.Description, m.Quantity, m.Unit,
		m.BasePrice, m.Location, m.Co2Savings, m.Status, m.ID)
	if errors.Is(err, sql.ErrNoRows) {
		return apperr.NotFound("material not found: %d", m.ID)
	}
	return err
}

// DeleteMaterial hard-deletes a listing.
func (s *Store) DeleteMaterial(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM materials WHERE id = $1", id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return apperr.NotFound("material not found: %d", id)
	}
	return nil
}

// ListActiveMaterials retrieves the public marketplace view.
func (s *Store) ListActiveMaterials(ctx context.Context) ([]models.Material, error) {
	var materials []models.Material
	err := s.db.SelectContext(ctx, &materials,
		"SELECT * FROM materials WHERE status = $1 ORDER BY created_at DESC",
		models.MaterialActive)
	return materials, err
}

// ListMaterialsBySeller retrieves every listing owned by a seller,
// including inactive and sold-out ones.
func (s *Store) ListMaterialsBySeller(ctx context.Context, sellerID int64) ([]models.Material, error) {
	var materials []models.Material
	err := s.db.SelectContext(ctx, &materials,
		"SELECT * FROM materials WHERE seller_id = $1 ORDER BY created_at DESC", sellerID)
	return materials, err
}

// DecrementStock atomically takes qty units off an active listing. The
// quantity check and the decrement are a single conditional UPDATE so two
// concurrent buyers cannot both pass a read-then-write check. A listing
// that hits zero flips to inactive in the same statement.
func (s *Store) DecrementStock(ctx context.Context, materialID int64, qty int) error {
	query := `
		UPDATE materials
		SET quantity = quantity - $1,
		    status = CASE WHEN quantity - $1 <= 0 THEN 'inactive' ELSE status END,
		    updated_at = NOW()
		WHERE id = $2 AND status = 'active' AND quantity >= $1`

	res, err := s.db.ExecContext(ctx, query, qty, materialID)
	if err != nil {
		if isCheckViolation(err) {
			return apperr.InsufficientStock()
		}
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return apperr.InsufficientStock()
	}
	return nil
}

// RestockMaterial returns qty units to a listing and reactivates it if
// the earlier decrement deactivated it. Removed listings stay removed.
func (s *Store) RestockMaterial(ctx context.Context, materialID int64, qty int) error {
	query := `
		UPDATE materials
		SET quantity = quantity + $1,
		    status = CASE WHEN status = 'inactive' THEN 'active' ELSE status END,
		    updated_at = NOW()
		WHERE id = $2 AND status <> 'removed'`

	_, err := s.db.ExecContext(ctx, query, qty, materialID)
	return err
}

// CountMaterials returns the total number of listings.
func (s *Store) CountMaterials(ctx context.Context) (int, error) {
	var n int
	err := s.db.GetContext(ctx, &n, "SELECT COUNT(*) FROM materials")
	return n, err
}
