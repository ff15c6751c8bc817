// Package navigation derives the home/back URL affordances from resolved
// page data. The UX contract is fixed: "Home" always returns to the first
// root layer (the introductory tour/splash), "Back" is depth-local one-step
// traversal, so deep links and reloads behave exactly like interactive
// navigation.
package navigation

import (
	"strings"

	"github.com/inmoview/explorer-backend/internal/explorer/domain"
)

// SplashURL is the bare project URL, /p/{projectSlug}.
func SplashURL(projectSlug string) string {
	return "/p/" + projectSlug
}

// LayerURL addresses a layer by its full slug path.
func LayerURL(projectSlug string, path []string) string {
	if len(path) == 0 {
		return SplashURL(projectSlug)
	}
	return SplashURL(projectSlug) + "/" + strings.Join(path, "/")
}

// HomeURL returns the first root layer's URL (lowest sort_order among
// depth-0 layers), or the bare project URL when the project has no layers.
func HomeURL(page *domain.ExplorerPageData) string {
	if len(page.RootLayers) == 0 {
		return SplashURL(page.Project.Slug)
	}
	return LayerURL(page.Project.Slug, []string{page.RootLayers[0].Slug})
}

// BackURL computes one-step-up navigation:
//   - no current layer: already at the splash, stays there;
//   - depth 0: the previous root sibling by sort_order, or the splash when
//     current is the first root;
//   - deeper: the parent (current path minus its last segment).
func BackURL(page *domain.ExplorerPageData) string {
	slug := page.Project.Slug
	if page.CurrentLayer == nil {
		return SplashURL(slug)
	}

	if page.CurrentLayer.Depth == 0 {
		prev := previousRoot(page.RootLayers, page.CurrentLayer.ID)
		if prev == nil {
			return SplashURL(slug)
		}
		return LayerURL(slug, []string{prev.Slug})
	}

	return LayerURL(slug, page.CurrentPath[:len(page.CurrentPath)-1])
}

func previousRoot(roots []*domain.Layer, currentID string) *domain.Layer {
	var prev *domain.Layer
	for _, r := range roots {
		if r.ID == currentID {
			return prev
		}
		prev = r
	}
	return nil
}
