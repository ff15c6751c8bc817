package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/inmoview/explorer-backend/internal/admin/importer"
	"github.com/inmoview/explorer-backend/internal/explorer/domain"
)

// UnitTypeRepository provides persistence operations for unit types.
type UnitTypeRepository struct {
	db *sql.DB
}

// NewUnitTypeRepository creates a new unit type repository.
func NewUnitTypeRepository(db *sql.DB) *UnitTypeRepository {
	return &UnitTypeRepository{db: db}
}

// Create inserts a new unit type for the given project. Slug collisions
// within the project retry with a fresh id-free suffix is not needed here:
// the unique violation is surfaced so the admin picks another name.
func (r *UnitTypeRepository) Create(ctx context.Context, projectID string, u *domain.UnitType) (*domain.UnitType, error) {
	if u.Name == "" {
		return nil, fmt.Errorf("name required")
	}
	if u.Slug == "" {
		u.Slug = importer.Slugify(u.Name)
	}

	const q = `
INSERT INTO unit_types (id, project_id, name, slug, area, area_unit, bedrooms, bathrooms, description)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
RETURNING id, project_id, name, slug, area, area_unit, bedrooms, bathrooms, description;
`
	var out domain.UnitType
	err := r.db.QueryRowContext(ctx, q,
		uuid.New().String(), projectID, u.Name, u.Slug,
		u.Area, u.AreaUnit, u.Bedrooms, u.Bathrooms, u.Description,
	).Scan(&out.ID, &out.ProjectID, &out.Name, &out.Slug, &out.Area, &out.AreaUnit,
		&out.Bedrooms, &out.Bathrooms, &out.Description)
	if err != nil {
		var pgErr *pq.Error
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, fmt.Errorf("unit type slug %q already exists in project", u.Slug)
		}
		return nil, err
	}
	return &out, nil
}

// ByID loads a single unit type. Delete uses it to resolve the owning
// project for cache invalidation.
func (r *UnitTypeRepository) ByID(ctx context.Context, id string) (*domain.UnitType, error) {
	const q = `
SELECT id, project_id, name, slug, area, area_unit, bedrooms, bathrooms, description
FROM unit_types
WHERE id = $1;
`
	var u domain.UnitType
	err := r.db.QueryRowContext(ctx, q, id).Scan(&u.ID, &u.ProjectID, &u.Name, &u.Slug,
		&u.Area, &u.AreaUnit, &u.Bedrooms, &u.Bathrooms, &u.Description)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrUnitTypeNotFound
		}
		return nil, err
	}
	return &u, nil
}

// List returns all unit types for the given project.
func (r *UnitTypeRepository) List(ctx context.Context, projectID string) ([]domain.UnitType, error) {
	const q = `
SELECT id, project_id, name, slug, area, area_unit, bedrooms, bathrooms, description
FROM unit_types
WHERE project_id = $1
ORDER BY name, id;
`
	rows, err := r.db.QueryContext(ctx, q, projectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]domain.UnitType, 0, 8)
	for rows.Next() {
		var u domain.UnitType
		if err := rows.Scan(&u.ID, &u.ProjectID, &u.Name, &u.Slug, &u.Area, &u.AreaUnit,
			&u.Bedrooms, &u.Bathrooms, &u.Description); err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Update rewrites the editable fields of a unit type.
func (r *UnitTypeRepository) Update(ctx context.Context, id string, u *domain.UnitType) (*domain.UnitType, error) {
	const q = `
UPDATE unit_types
SET name = $2, area = $3, area_unit = $4, bedrooms = $5, bathrooms = $6, description = $7
WHERE id = $1
RETURNING id, project_id, name, slug, area, area_unit, bedrooms, bathrooms, description;
`
	var out domain.UnitType
	err := r.db.QueryRowContext(ctx, q, id,
		u.Name, u.Area, u.AreaUnit, u.Bedrooms, u.Bathrooms, u.Description,
	).Scan(&out.ID, &out.ProjectID, &out.Name, &out.Slug, &out.Area, &out.AreaUnit,
		&out.Bedrooms, &out.Bathrooms, &out.Description)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrUnitTypeNotFound
		}
		return nil, err
	}
	return &out, nil
}

// Delete removes a unit type. Unit layers referencing it keep a dangling
// unit_type_id set to null by the schema (on delete set null).
func (r *UnitTypeRepository) Delete(ctx context.Context, id string) (bool, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM unit_types WHERE id = $1;`, id)
	if err != nil {
		return false, err
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return rowsAffected > 0, nil
}
