package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/inmoview/explorer-backend/internal/explorer/domain"
)

// Repo reads a project's flat row sets from Postgres. The explorer core
// gets everything in one ProjectSnapshot call per request; it never issues
// follow-up queries.
type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{db: db}
}

// ProjectSnapshot fetches the project by slug plus its layers, media and
// unit types. Layers come back ordered by (depth, sort_order) and media by
// sort_order, as the core expects.
func (r *Repo) ProjectSnapshot(ctx context.Context, slug string) (*domain.Snapshot, error) {
	project, err := r.ProjectBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}

	snap := &domain.Snapshot{Project: *project}

	if snap.Layers, err = r.LayersByProject(ctx, project.ID); err != nil {
		return nil, fmt.Errorf("load layers: %w", err)
	}
	if snap.Media, err = r.MediaByProject(ctx, project.ID); err != nil {
		return nil, fmt.Errorf("load media: %w", err)
	}
	if snap.UnitTypes, err = r.UnitTypesByProject(ctx, project.ID); err != nil {
		return nil, fmt.Errorf("load unit types: %w", err)
	}
	return snap, nil
}

func (r *Repo) ProjectBySlug(ctx context.Context, slug string) (*domain.Project, error) {
	const q = `
select id, slug, name, type, status, coalesce(scale, ''), max_depth,
       coalesce(layer_labels, '{}'),
       coalesce(contact_phone, ''), coalesce(contact_email, ''), coalesce(contact_whatsapp, ''),
       show_prices, show_gallery, show_tour, show_contact,
       coalesce(hotspot_element_ids, '{}'), created_at, updated_at
from projects
where slug = $1;
`
	var p domain.Project
	err := r.db.QueryRow(ctx, q, slug).Scan(
		&p.ID, &p.Slug, &p.Name, &p.Type, &p.Status, &p.Scale, &p.MaxDepth, &p.LayerLabels,
		&p.ContactPhone, &p.ContactEmail, &p.ContactWhatsApp,
		&p.ShowPrices, &p.ShowGallery, &p.ShowTour, &p.ShowContact,
		&p.HotspotElementIDs, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrProjectNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *Repo) LayersByProject(ctx context.Context, projectID string) ([]domain.Layer, error) {
	const q = `
select id, project_id, parent_id, type, depth, sort_order, slug, name,
       coalesce(label, ''), coalesce(svg_element_id, ''), coalesce(status, 'available'),
       area, price, coalesce(currency, ''), front_length, depth_length,
       is_corner, unit_type_id, coalesce(features, '[]'::jsonb), coalesce(properties, '{}'::jsonb),
       coalesce(background_url, ''), coalesce(background_mobile_url, ''),
       coalesce(overlay_url, ''), coalesce(overlay_mobile_url, ''),
       created_at, updated_at
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
			&l.ID, &l.ProjectID, &l.ParentID, &l.Type, &l.Depth, &l.SortOrder, &l.Slug, &l.Name, &l.Label,
			&l.SVGElementID, &l.Status, &l.Area, &l.Price, &l.Currency, &l.FrontLength, &l.DepthLength,
			&l.IsCorner, &l.UnitTypeID, &l.Features, &l.Properties,
			&l.BackgroundURL, &l.BackgroundMobileURL, &l.OverlayURL, &l.OverlayMobileURL,
			&l.CreatedAt, &l.UpdatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

func (r *Repo) MediaByProject(ctx context.Context, projectID string) ([]domain.Media, error) {
	const q = `
select id, project_id, layer_id, unit_type_id, purpose, type, url,
       coalesce(storage_path, ''), sort_order, coalesce(metadata, '{}'::jsonb), created_at
from media
where project_id = $1
order by sort_order, id;
`
	rows, err := r.db.Query(ctx, q, projectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]domain.Media, 0, 64)
	for rows.Next() {
		var m domain.Media
		if err := rows.Scan(
			&m.ID, &m.ProjectID, &m.LayerID, &m.UnitTypeID, &m.Purpose, &m.Type, &m.URL,
			&m.StoragePath, &m.SortOrder, &m.Metadata, &m.CreatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func (r *Repo) UnitTypesByProject(ctx context.Context, projectID string) ([]domain.UnitType, error) {
	const q = `
select id, project_id, name, slug, area, coalesce(area_unit, 'm2'),
       bedrooms, bathrooms, coalesce(description, '')
from unit_types
where project_id = $1
order by name, id;
`
	rows, err := r.db.Query(ctx, q, projectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]domain.UnitType, 0, 8)
	for rows.Next() {
		var u domain.UnitType
		if err := rows.Scan(
			&u.ID, &u.ProjectID, &u.Name, &u.Slug, &u.Area, &u.AreaUnit,
			&u.Bedrooms, &u.Bathrooms, &u.Description,
		); err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

// ProjectSlugByID resolves a project's slug, used to key cache
// invalidation from admin writes that only know the project id.
func (r *Repo) ProjectSlugByID(ctx context.Context, id string) (string, error) {
	var slug string
	err := r.db.QueryRow(ctx, `select slug from projects where id = $1;`, id).Scan(&slug)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", domain.ErrProjectNotFound
		}
		return "", err
	}
	return slug, nil
}

// ActiveProjectSlugs lists the slugs of publicly visible projects, used by
// the cache warmer.
func (r *Repo) ActiveProjectSlugs(ctx context.Context) ([]string, error) {
	const q = `select slug from projects where status = 'active' order by slug;`

	rows, err := r.db.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]string, 0, 16)
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}
