package media

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/inmoview/explorer-backend/internal/explorer/domain"
)

var ErrMediaNotFound = errors.New("media not found")

// Repo provides admin persistence for media rows.
type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{db: db}
}

func (r *Repo) Create(ctx context.Context, m *domain.Media) error {
	if m.ID == "" {
		m.ID = uuid.New().String()
	}

	const q = `
insert into media (id, project_id, layer_id, unit_type_id, purpose, type, url, storage_path, sort_order, metadata)
values ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
returning created_at;
`
	return r.db.QueryRow(ctx, q,
		m.ID, m.ProjectID, m.LayerID, m.UnitTypeID, m.Purpose, m.Type,
		m.URL, m.StoragePath, m.SortOrder, m.Metadata,
	).Scan(&m.CreatedAt)
}

func (r *Repo) ByID(ctx context.Context, id string) (*domain.Media, error) {
	const q = `
select id, project_id, layer_id, unit_type_id, purpose, type, url,
       coalesce(storage_path, ''), sort_order, coalesce(metadata, '{}'::jsonb), created_at
from media
where id = $1;
`
	var m domain.Media
	err := r.db.QueryRow(ctx, q, id).Scan(
		&m.ID, &m.ProjectID, &m.LayerID, &m.UnitTypeID, &m.Purpose, &m.Type,
		&m.URL, &m.StoragePath, &m.SortOrder, &m.Metadata, &m.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrMediaNotFound
		}
		return nil, err
	}
	return &m, nil
}

func (r *Repo) Delete(ctx context.Context, id string) (bool, error) {
	ct, err := r.db.Exec(ctx, `delete from media where id = $1;`, id)
	if err != nil {
		return false, err
	}
	return ct.RowsAffected() > 0, nil
}

// NextSortOrder returns the next free sort_order within an owner scope so
// uploads append after existing media.
func (r *Repo) NextSortOrder(ctx context.Context, projectID string, layerID, unitTypeID *string) (int, error) {
	const q = `
select coalesce(max(sort_order) + 1, 0)
from media
where project_id = $1
  and layer_id is not distinct from $2
  and unit_type_id is not distinct from $3;
`
	var next int
	if err := r.db.QueryRow(ctx, q, projectID, layerID, unitTypeID).Scan(&next); err != nil {
		return 0, err
	}
	return next, nil
}
