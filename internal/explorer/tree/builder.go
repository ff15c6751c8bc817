package tree

import (
	"sort"

	"github.com/inmoview/explorer-backend/internal/explorer/domain"
)

// Node wraps a layer row with its linked, ordered children. The builder
// owns the Node values; input rows are never mutated.
type Node struct {
	*domain.Layer
	Children []*Node
}

// Forest is the rooted, ordered view over a project's flat layer rows.
type Forest struct {
	Roots []*Node
	byID  map[string]*Node
}

// Build reconstructs the forest from the complete flat row set of one
// project. First pass loads every row into an id-addressable arena, second
// pass links children to parents. A row whose parent_id does not resolve
// within the set is treated as a root (graceful degradation, not an error).
// Children and root lists are sorted by sort_order ascending; ties keep
// input order.
func Build(rows []domain.Layer) *Forest {
	f := &Forest{byID: make(map[string]*Node, len(rows))}

	arena := make([]Node, len(rows))
	for i := range rows {
		layer := rows[i]
		arena[i] = Node{Layer: &layer}
		f.byID[layer.ID] = &arena[i]
	}

	for i := range arena {
		n := &arena[i]
		if n.ParentID != nil {
			if parent, ok := f.byID[*n.ParentID]; ok && parent != n {
				parent.Children = append(parent.Children, n)
				continue
			}
		}
		f.Roots = append(f.Roots, n)
	}

	sort.SliceStable(f.Roots, func(i, j int) bool {
		return f.Roots[i].SortOrder < f.Roots[j].SortOrder
	})
	for i := range arena {
		children := arena[i].Children
		sort.SliceStable(children, func(a, b int) bool {
			return children[a].SortOrder < children[b].SortOrder
		})
	}

	return f
}

// Node returns the node for the given layer id, or nil.
func (f *Forest) Node(id string) *Node {
	return f.byID[id]
}

// Len returns the number of rows loaded into the forest.
func (f *Forest) Len() int {
	return len(f.byID)
}

// Flatten returns every node in depth-first order starting from the roots.
// A visited set guards against corrupted parent chains forming cycles: a
// node is emitted at most once, so traversal always terminates.
func (f *Forest) Flatten() []*Node {
	return f.FlattenRoots(f.Roots)
}

// FlattenRoots returns the given roots and their descendants in depth-first
// order, with the same cycle guard as Flatten. Used with NavigableRoots to
// flatten the forest minus the tour subtrees.
func (f *Forest) FlattenRoots(roots []*Node) []*Node {
	out := make([]*Node, 0, len(f.byID))
	visited := make(map[string]bool, len(f.byID))
	for _, r := range roots {
		out = appendSubtree(out, r, visited)
	}
	return out
}

func appendSubtree(out []*Node, n *Node, visited map[string]bool) []*Node {
	if visited[n.ID] {
		return out
	}
	visited[n.ID] = true
	out = append(out, n)
	for _, c := range n.Children {
		out = appendSubtree(out, c, visited)
	}
	return out
}

// Walk calls fn for every node in depth-first order with its computed
// distance from the root. The same cycle guard as Flatten applies.
func (f *Forest) Walk(fn func(n *Node, depth int)) {
	visited := make(map[string]bool, len(f.byID))
	var walk func(n *Node, depth int)
	walk = func(n *Node, depth int) {
		if visited[n.ID] {
			return
		}
		visited[n.ID] = true
		fn(n, depth)
		for _, c := range n.Children {
			walk(c, depth+1)
		}
	}
	for _, r := range f.Roots {
		walk(r, 0)
	}
}

// NavigableRoots returns the root list with tour layers filtered out, for
// contexts that present the editable/navigable hierarchy only.
func (f *Forest) NavigableRoots() []*Node {
	out := make([]*Node, 0, len(f.Roots))
	for _, r := range f.Roots {
		if r.Type != domain.LayerTour {
			out = append(out, r)
		}
	}
	return out
}

// TourRoot returns the first tour-type root by sort order, or nil. Extra
// tour roots are ignored (first one wins).
func (f *Forest) TourRoot() *Node {
	for _, r := range f.Roots {
		if r.Type == domain.LayerTour {
			return r
		}
	}
	return nil
}
