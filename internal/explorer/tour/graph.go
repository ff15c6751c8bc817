// Package tour derives the 360° viewpoint graph of a tour layer from its
// flat media rows. Stops and transitions have no backing rows of their own:
// they materialize from media metadata and de-materialize when the last
// matching row is deleted, so the derivation is always recomputable from
// the snapshot.
package tour

import (
	"fmt"
	"sort"

	"github.com/inmoview/explorer-backend/internal/explorer/domain"
)

// Stop is the derived bundle for one viewpoint: the panorama and hotspot
// media sharing its viewpoint id. Index is 1-based in sorted order. Either
// media pointer may be nil while content is being authored.
type Stop struct {
	Index     int           `json:"index"`
	Viewpoint string        `json:"viewpoint"`
	Name      string        `json:"name"`
	Panorama  *domain.Media `json:"panorama,omitempty"`
	Hotspot   *domain.Media `json:"hotspot,omitempty"`
}

// TransitionPair joins two viewpoints. Key is the lexically sorted pair, so
// it is identical regardless of which direction's row exists. Forward plays
// low→high, Reverse the opposite; either clip may be absent.
type TransitionPair struct {
	Key     string        `json:"key"`
	From    string        `json:"from"`
	To      string        `json:"to"`
	Forward *domain.Media `json:"forward,omitempty"`
	Reverse *domain.Media `json:"reverse,omitempty"`
}

// Graph is the resolved tour: ordered stops plus the transition pairs
// between them.
type Graph struct {
	Stops []Stop           `json:"stops"`
	Pairs []TransitionPair `json:"pairs"`

	byViewpoint map[string]int
}

// Resolve derives the graph from the media rows of a single tour layer.
// Viewpoints come from gallery and hotspot rows; identifiers are formatted
// so lexical sort matches logical order (stop-01, stop-02, …). Transition
// rows missing either endpoint in metadata, or referencing a viewpoint with
// no stop, are skipped: tour content is progressively authored and partial
// states are expected.
func Resolve(rows []domain.Media) *Graph {
	viewpoints := map[string]bool{}
	for _, m := range rows {
		switch m.Purpose {
		case domain.PurposeGallery:
			if meta, ok := m.Metadata.Gallery(); ok {
				viewpoints[meta.Viewpoint] = true
			}
		case domain.PurposeHotspot:
			if meta, ok := m.Metadata.Hotspot(); ok {
				viewpoints[meta.Viewpoint] = true
			}
		}
	}

	ordered := make([]string, 0, len(viewpoints))
	for vp := range viewpoints {
		ordered = append(ordered, vp)
	}
	sort.Strings(ordered)

	g := &Graph{
		Stops:       make([]Stop, 0, len(ordered)),
		Pairs:       []TransitionPair{},
		byViewpoint: make(map[string]int, len(ordered)),
	}

	for i, vp := range ordered {
		stop := Stop{
			Index:     i + 1,
			Viewpoint: vp,
			Panorama:  firstForViewpoint(rows, domain.PurposeGallery, vp),
			Hotspot:   firstForViewpoint(rows, domain.PurposeHotspot, vp),
		}
		if stop.Panorama != nil {
			if meta, ok := stop.Panorama.Metadata.Gallery(); ok && meta.Name != "" {
				stop.Name = meta.Name
			}
		}
		if stop.Name == "" {
			stop.Name = fmt.Sprintf("Stop %d", stop.Index)
		}
		g.byViewpoint[vp] = i
		g.Stops = append(g.Stops, stop)
	}

	pairs := map[string]*TransitionPair{}
	var keys []string
	for i := range rows {
		m := rows[i]
		if m.Purpose != domain.PurposeTransition {
			continue
		}
		meta, ok := m.Metadata.Transition()
		if !ok {
			continue
		}
		if !viewpoints[meta.FromViewpoint] || !viewpoints[meta.ToViewpoint] {
			continue
		}
		if meta.FromViewpoint == meta.ToViewpoint {
			continue
		}

		from, to := meta.FromViewpoint, meta.ToViewpoint
		if to < from {
			from, to = to, from
		}
		key := from + "|" + to

		pair, exists := pairs[key]
		if !exists {
			pair = &TransitionPair{Key: key, From: from, To: to}
			pairs[key] = pair
			keys = append(keys, key)
		}
		clip := m
		if meta.FromViewpoint == from {
			if pair.Forward == nil || mediaLess(&clip, pair.Forward) {
				pair.Forward = &clip
			}
		} else {
			if pair.Reverse == nil || mediaLess(&clip, pair.Reverse) {
				pair.Reverse = &clip
			}
		}
	}

	sort.Strings(keys)
	for _, k := range keys {
		g.Pairs = append(g.Pairs, *pairs[k])
	}
	return g
}

// Next returns the viewpoint after the given one, wrapping around.
func (g *Graph) Next(viewpoint string) (string, bool) {
	return g.step(viewpoint, 1)
}

// Prev returns the viewpoint before the given one, wrapping around.
func (g *Graph) Prev(viewpoint string) (string, bool) {
	return g.step(viewpoint, -1)
}

func (g *Graph) step(viewpoint string, delta int) (string, bool) {
	i, ok := g.byViewpoint[viewpoint]
	if !ok || len(g.Stops) == 0 {
		return "", false
	}
	n := len(g.Stops)
	return g.Stops[(i+delta+n)%n].Viewpoint, true
}

// Pair returns the transition pair between two viewpoints, if any row links
// them in either direction.
func (g *Graph) Pair(a, b string) (TransitionPair, bool) {
	if b < a {
		a, b = b, a
	}
	key := a + "|" + b
	for _, p := range g.Pairs {
		if p.Key == key {
			return p, true
		}
	}
	return TransitionPair{}, false
}

func firstForViewpoint(rows []domain.Media, purpose domain.MediaPurpose, viewpoint string) *domain.Media {
	var best *domain.Media
	for i := range rows {
		m := &rows[i]
		if m.Purpose != purpose {
			continue
		}
		var vp string
		switch purpose {
		case domain.PurposeGallery:
			meta, ok := m.Metadata.Gallery()
			if !ok {
				continue
			}
			vp = meta.Viewpoint
		case domain.PurposeHotspot:
			meta, ok := m.Metadata.Hotspot()
			if !ok {
				continue
			}
			vp = meta.Viewpoint
		default:
			continue
		}
		if vp != viewpoint {
			continue
		}
		if best == nil || mediaLess(m, best) {
			best = m
		}
	}
	if best == nil {
		return nil
	}
	out := *best
	return &out
}

func mediaLess(a, b *domain.Media) bool {
	if a.SortOrder != b.SortOrder {
		return a.SortOrder < b.SortOrder
	}
	return a.ID < b.ID
}
