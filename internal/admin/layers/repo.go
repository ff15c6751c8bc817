package layers

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/inmoview/explorer-backend/internal/admin/importer"
	"github.com/inmoview/explorer-backend/internal/explorer/domain"
)

// Repo provides the admin persistence operations for layers. Subtree
// deletion cascades in the schema (layers.parent_id references layers(id)
// on delete cascade), so Delete only removes the target row here.
type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{db: db}
}

func (r *Repo) ByID(ctx context.Context, id string) (*domain.Layer, error) {
	const q = `
select id, project_id, parent_id, type, depth, sort_order, slug, name,
       coalesce(label, ''), coalesce(svg_element_id, ''), coalesce(status, 'available'),
       is_corner, created_at, updated_at
from layers
where id = $1;
`
	var l domain.Layer
	err := r.db.QueryRow(ctx, q, id).Scan(
		&l.ID, &l.ProjectID, &l.ParentID, &l.Type, &l.Depth, &l.SortOrder, &l.Slug, &l.Name, &l.Label,
		&l.SVGElementID, &l.Status, &l.IsCorner, &l.CreatedAt, &l.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrLayerNotFound
		}
		return nil, err
	}
	return &l, nil
}

// ChildState returns the current children slugs and the next free
// sort_order under a parent, used to seed a CSV import.
func (r *Repo) ChildState(ctx context.Context, parentID string) (slugs []string, nextSort int, err error) {
	const q = `
select slug, sort_order
from layers
where parent_id = $1
order by sort_order, id;
`
	rows, err := r.db.Query(ctx, q, parentID)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	for rows.Next() {
		var slug string
		var sort int
		if err := rows.Scan(&slug, &sort); err != nil {
			return nil, 0, err
		}
		slugs = append(slugs, slug)
		if sort >= nextSort {
			nextSort = sort + 1
		}
	}
	return slugs, nextSort, rows.Err()
}

type CreateLayerRequest struct {
	ProjectID    string            `json:"project_id"`
	ParentID     *string           `json:"parent_id,omitempty"`
	Type         domain.LayerType  `json:"type"`
	Depth        int               `json:"depth"`
	SortOrder    int               `json:"sort_order"`
	Slug         string            `json:"slug"`
	Name         string            `json:"name"`
	Label        string            `json:"label"`
	SVGElementID string            `json:"svg_element_id"`
	Status       domain.LayerStatus `json:"status"`
}

func (r *Repo) Create(ctx context.Context, req CreateLayerRequest) (*domain.Layer, error) {
	if req.Name == "" {
		return nil, fmt.Errorf("name required")
	}
	if req.Slug == "" {
		req.Slug = importer.Slugify(req.Name)
	}
	if req.Status == "" {
		req.Status = domain.StatusAvailable
	}

	const q = `
insert into layers (id, project_id, parent_id, type, depth, sort_order, slug, name, label, svg_element_id, status)
values ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
returning id, project_id, parent_id, type, depth, sort_order, slug, name, label, svg_element_id, status, created_at, updated_at;
`
	var l domain.Layer
	err := r.db.QueryRow(ctx, q,
		uuid.New().String(), req.ProjectID, req.ParentID, req.Type, req.Depth, req.SortOrder,
		req.Slug, req.Name, req.Label, req.SVGElementID, req.Status,
	).Scan(
		&l.ID, &l.ProjectID, &l.ParentID, &l.Type, &l.Depth, &l.SortOrder,
		&l.Slug, &l.Name, &l.Label, &l.SVGElementID, &l.Status, &l.CreatedAt, &l.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, fmt.Errorf("layer slug %q already exists under this parent", req.Slug)
		}
		return nil, err
	}
	return &l, nil
}

// ByProject lists a project's layers ordered the way the explorer consumes
// them, for the admin tree view.
func (r *Repo) ByProject(ctx context.Context, projectID string) ([]domain.Layer, error) {
	const q = `
select id, project_id, parent_id, type, depth, sort_order, slug, name,
       coalesce(label, ''), coalesce(svg_element_id, ''), coalesce(status, 'available'),
       area, price, is_corner, created_at, updated_at
from layers
where project_id = $1
order by depth, sort_order, id;
`
	rows, err := r.db.Query(ctx, q, projectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]domain.Layer, 0, 64)
	for rows.Next() {
		var l domain.Layer
		if err := rows.Scan(
			&l.ID, &l.ProjectID, &l.ParentID, &l.Type, &l.Depth, &l.SortOrder, &l.Slug, &l.Name,
			&l.Label, &l.SVGElementID, &l.Status, &l.Area, &l.Price, &l.IsCorner, &l.CreatedAt, &l.UpdatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

type UpdateLayerRequest struct {
	Name         *string             `json:"name,omitempty"`
	Label        *string             `json:"label,omitempty"`
	SVGElementID *string             `json:"svg_element_id,omitempty"`
	Status       *domain.LayerStatus `json:"status,omitempty"`
	SortOrder    *int                `json:"sort_order,omitempty"`
	Price        *float64            `json:"price,omitempty"`
	Area         *float64            `json:"area,omitempty"`
}

func (r *Repo) Update(ctx context.Context, id string, req UpdateLayerRequest) (*domain.Layer, error) {
	const q = `
update layers
set name           = coalesce($2, name),
    label          = coalesce($3, label),
    svg_element_id = coalesce($4, svg_element_id),
    status         = coalesce($5, status),
    sort_order     = coalesce($6, sort_order),
    price          = coalesce($7, price),
    area           = coalesce($8, area),
    updated_at     = now()
where id = $1
returning id, project_id, parent_id, type, depth, sort_order, slug, name,
          coalesce(label, ''), coalesce(svg_element_id, ''), coalesce(status, 'available'),
          is_corner, created_at, updated_at;
`
	var l domain.Layer
	err := r.db.QueryRow(ctx, q, id,
		req.Name, req.Label, req.SVGElementID, req.Status, req.SortOrder, req.Price, req.Area,
	).Scan(
		&l.ID, &l.ProjectID, &l.ParentID, &l.Type, &l.Depth, &l.SortOrder,
		&l.Slug, &l.Name, &l.Label, &l.SVGElementID, &l.Status, &l.IsCorner, &l.CreatedAt, &l.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrLayerNotFound
		}
		return nil, err
	}
	return &l, nil
}

func (r *Repo) Delete(ctx context.Context, id string) (bool, error) {
	ct, err := r.db.Exec(ctx, `delete from layers where id = $1;`, id)
	if err != nil {
		return false, err
	}
	return ct.RowsAffected() > 0, nil
}

// BulkInsertLots writes the parsed CSV rows under their parent in one
// transaction. The batch either fully lands or not at all; per-row
// validation already happened in the parser.
func (r *Repo) BulkInsertLots(ctx context.Context, parent *domain.Layer, reqs []importer.LotRequest) error {
	if len(reqs) == 0 {
		return nil
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	const q = `
insert into layers (id, project_id, parent_id, type, depth, sort_order, slug, name, label,
                    svg_element_id, status, area, front_length, depth_length, price, currency,
                    is_corner, properties)
values ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18);
`
	for _, lot := range reqs {
		props := map[string]any{}
		if lot.Dimensions != "" {
			props["dimensions"] = lot.Dimensions
		}
		_, err := tx.Exec(ctx, q,
			uuid.New().String(), parent.ProjectID, parent.ID, domain.LayerLot,
			lot.Depth, lot.SortOrder, lot.Slug, lot.Name, lot.Label,
			lot.SVGElementID, lot.Status, lot.Area, lot.FrontLength, lot.DepthLength,
			lot.Price, lot.Currency, lot.IsCorner, props,
		)
		if err != nil {
			return fmt.Errorf("insert lot %q: %w", lot.Slug, err)
		}
	}

	return tx.Commit(ctx)
}
