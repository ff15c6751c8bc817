package service

import (
	"context"
	"log"

	"github.com/inmoview/explorer-backend/internal/explorer/domain"
	binder "github.com/inmoview/explorer-backend/internal/explorer/media"
	"github.com/inmoview/explorer-backend/internal/explorer/tour"
	"github.com/inmoview/explorer-backend/internal/explorer/tree"
)

// SnapshotSource loads the complete row set for a project. The concrete
// implementation lives in the repository layer (optionally behind the redis
// cache); the service never issues more than one load per request.
type SnapshotSource interface {
	ProjectSnapshot(ctx context.Context, slug string) (*domain.Snapshot, error)
}

// ExplorerService composes page data, sibling bundles and tour graphs from
// a single project snapshot.
type ExplorerService struct {
	source SnapshotSource
}

// NewExplorerService creates a new ExplorerService.
func NewExplorerService(source SnapshotSource) *ExplorerService {
	return &ExplorerService{source: source}
}

// Page resolves the slug path against the project's layer forest and binds
// the media for the resulting node. An empty path yields the splash page
// (nil current layer, project-scoped media, roots as siblings).
func (s *ExplorerService) Page(ctx context.Context, projectSlug string, segments []string) (*domain.ExplorerPageData, error) {
	snap, err := s.source.ProjectSnapshot(ctx, projectSlug)
	if err != nil {
		return nil, err
	}
	forest := tree.Build(snap.Layers)
	return buildPage(snap, forest, segments)
}

// SiblingBundle resolves the current page plus one full page per sibling at
// the same depth, all against one snapshot, so lots-type clients switch
// siblings without a server round trip. For non-lots projects (and at the
// splash) the bundle carries only the current page: those experiences
// re-navigate on sibling switch.
func (s *ExplorerService) SiblingBundle(ctx context.Context, projectSlug string, segments []string) (*domain.SiblingExplorerBundle, error) {
	snap, err := s.source.ProjectSnapshot(ctx, projectSlug)
	if err != nil {
		return nil, err
	}
	forest := tree.Build(snap.Layers)

	current, err := buildPage(snap, forest, segments)
	if err != nil {
		return nil, err
	}

	bundle := &domain.SiblingExplorerBundle{
		Current:     current,
		SiblingData: map[string]*domain.ExplorerPageData{},
	}

	if snap.Project.Type != domain.ProjectLots || current.CurrentLayer == nil {
		if current.CurrentLayer != nil {
			bundle.SiblingData[current.CurrentLayer.ID] = current
		}
		return bundle, nil
	}

	parentPath := segments[:len(segments)-1]
	for _, sib := range current.Siblings {
		path := append(append([]string{}, parentPath...), sib.Slug)
		page, err := buildPage(snap, forest, path)
		if err != nil {
			// Sibling lists come from the same forest the paths are
			// resolved against, so this only fires on duplicate sibling
			// slugs shadowing each other.
			log.Printf("[warn] operation=sibling_bundle project=%s sibling=%s error=%v", projectSlug, sib.Slug, err)
			continue
		}
		bundle.SiblingData[sib.ID] = page
	}
	bundle.SiblingData[current.CurrentLayer.ID] = current
	return bundle, nil
}

// TourGraph derives the viewpoint/transition graph from the media of the
// project's tour layer.
func (s *ExplorerService) TourGraph(ctx context.Context, projectSlug string) (*tour.Graph, error) {
	snap, err := s.source.ProjectSnapshot(ctx, projectSlug)
	if err != nil {
		return nil, err
	}
	forest := tree.Build(snap.Layers)
	tourRoot := forest.TourRoot()
	if tourRoot == nil {
		return nil, domain.ErrNoTourLayer
	}
	return tour.Resolve(binder.ForLayer(snap.Media, tourRoot.ID)), nil
}

func buildPage(snap *domain.Snapshot, forest *tree.Forest, segments []string) (*domain.ExplorerPageData, error) {
	res, err := forest.Resolve(segments)
	if err != nil {
		return nil, err
	}

	page := &domain.ExplorerPageData{
		Project:     &snap.Project,
		CurrentPath: res.Path,
		Children:    layers(res.Children),
		Siblings:    layers(res.Siblings),
		RootLayers:  layers(forest.Roots),
	}

	var currentLayerID *string
	if res.Current != nil {
		page.CurrentLayer = res.Current.Layer
		currentLayerID = &res.Current.ID
		if res.Current.Depth != len(res.Path)-1 {
			log.Printf("[warn] operation=resolve_path layer=%s stored_depth=%d path_depth=%d",
				res.Current.ID, res.Current.Depth, len(res.Path)-1)
		}
	}

	childIDs := make([]string, 0, len(res.Children))
	for _, c := range res.Children {
		childIDs = append(childIDs, c.ID)
	}
	bound := binder.Bind(snap.Media, currentLayerID, childIDs)
	page.Media = bound.Current
	page.ChildrenMedia = bound.ByChild

	if page.CurrentLayer != nil && page.CurrentLayer.UnitTypeID != nil {
		for i := range snap.UnitTypes {
			if snap.UnitTypes[i].ID == *page.CurrentLayer.UnitTypeID {
				page.UnitType = &snap.UnitTypes[i]
				page.UnitTypeMedia = binder.ForUnitType(snap.Media, snap.UnitTypes[i].ID)
				break
			}
		}
	}

	return page, nil
}

func layers(nodes []*tree.Node) []*domain.Layer {
	out := make([]*domain.Layer, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, n.Layer)
	}
	return out
}
