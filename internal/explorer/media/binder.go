// Package media partitions a project's flat media rows by owner scope and
// purpose. All functions are pure transforms over the pre-fetched row set.
package media

import (
	"sort"

	"github.com/inmoview/explorer-backend/internal/explorer/domain"
)

// Bound is the per-page media view: rows owned by the current scope plus a
// map from each child layer id to that child's own rows (used for hover
// preload and lazy detail sheets without extra fetches).
type Bound struct {
	Current []domain.Media
	ByChild map[string][]domain.Media
}

// Bind partitions all media rows of a project. currentLayerID nil selects
// the project-root scope (rows with neither layer nor unit type owner).
// Lists come out sorted by sort_order ascending, ties by id, so purpose
// lookups are deterministic.
func Bind(all []domain.Media, currentLayerID *string, childIDs []string) Bound {
	b := Bound{
		Current: []domain.Media{},
		ByChild: make(map[string][]domain.Media, len(childIDs)),
	}
	for _, id := range childIDs {
		b.ByChild[id] = []domain.Media{}
	}

	for _, m := range all {
		switch {
		case currentLayerID == nil && m.IsProjectScoped():
			b.Current = append(b.Current, m)
		case currentLayerID != nil && m.LayerID != nil && *m.LayerID == *currentLayerID:
			b.Current = append(b.Current, m)
		}
		if m.LayerID != nil {
			if _, ok := b.ByChild[*m.LayerID]; ok {
				b.ByChild[*m.LayerID] = append(b.ByChild[*m.LayerID], m)
			}
		}
	}

	sortMedia(b.Current)
	for id := range b.ByChild {
		sortMedia(b.ByChild[id])
	}
	return b
}

// ForLayer returns the rows owned by one layer, sorted.
func ForLayer(all []domain.Media, layerID string) []domain.Media {
	out := []domain.Media{}
	for _, m := range all {
		if m.LayerID != nil && *m.LayerID == layerID {
			out = append(out, m)
		}
	}
	sortMedia(out)
	return out
}

// ForUnitType returns the rows owned by one unit type, sorted. Used for
// ficha/detail sheets of units referencing a shared template.
func ForUnitType(all []domain.Media, unitTypeID string) []domain.Media {
	out := []domain.Media{}
	for _, m := range all {
		if m.UnitTypeID != nil && *m.UnitTypeID == unitTypeID {
			out = append(out, m)
		}
	}
	sortMedia(out)
	return out
}

// FirstByPurpose returns the single row selected for a purpose within a
// scope, or nil. Duplicate purposes are legal in the data; the tie-break is
// lowest sort_order, then id, so repeated resolutions always pick the same
// row.
func FirstByPurpose(list []domain.Media, purpose domain.MediaPurpose) *domain.Media {
	var best *domain.Media
	for i := range list {
		m := &list[i]
		if m.Purpose != purpose {
			continue
		}
		if best == nil || less(m, best) {
			best = m
		}
	}
	if best == nil {
		return nil
	}
	out := *best
	return &out
}

func less(a, b *domain.Media) bool {
	if a.SortOrder != b.SortOrder {
		return a.SortOrder < b.SortOrder
	}
	return a.ID < b.ID
}

func sortMedia(list []domain.Media) {
	sort.SliceStable(list, func(i, j int) bool {
		return less(&list[i], &list[j])
	})
}
