package tree

import (
	"github.com/inmoview/explorer-backend/internal/explorer/domain"
)

// Resolution is the outcome of walking a slug path down the forest.
// Current is nil for the empty path (project splash); Siblings then holds
// the root list.
type Resolution struct {
	Current  *Node
	Path     []string
	Children []*Node
	Siblings []*Node
}

// Resolve walks the slug segments from the implicit root. Each segment must
// match a child's slug of the previously resolved node; a failed match
// returns ErrLayerNotFound. At the first level, non-tour roots are matched
// first so a tour layer sharing a slug with a navigable root never shadows
// it; a tour root is still selected when it is the only match (explicit
// deep link into the tour).
func (f *Forest) Resolve(segments []string) (*Resolution, error) {
	res := &Resolution{
		Path:     []string{},
		Children: f.Roots,
		Siblings: f.Roots,
	}
	if len(segments) == 0 {
		return res, nil
	}

	current := matchRoot(f.Roots, segments[0])
	if current == nil {
		return nil, domain.ErrLayerNotFound
	}
	path := []string{current.Slug}
	siblings := f.Roots

	for _, seg := range segments[1:] {
		next := matchChild(current.Children, seg)
		if next == nil {
			return nil, domain.ErrLayerNotFound
		}
		siblings = current.Children
		current = next
		path = append(path, current.Slug)
	}

	res.Current = current
	res.Path = path
	res.Children = current.Children
	res.Siblings = siblings
	return res, nil
}

func matchRoot(roots []*Node, slug string) *Node {
	var tourMatch *Node
	for _, r := range roots {
		if r.Slug != slug {
			continue
		}
		if r.Type == domain.LayerTour {
			if tourMatch == nil {
				tourMatch = r
			}
			continue
		}
		return r
	}
	return tourMatch
}

func matchChild(children []*Node, slug string) *Node {
	for _, c := range children {
		if c.Slug == slug {
			return c
		}
	}
	return nil
}
