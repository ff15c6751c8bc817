package tour

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inmoview/explorer-backend/internal/explorer/domain"
)

func galleryRow(id, viewpoint, name string, sortOrder int) domain.Media {
	return domain.Media{
		ID:        id,
		ProjectID: "proj-1",
		Purpose:   domain.PurposeGallery,
		Type:      domain.MediaImage,
		URL:       "https://cdn.example.com/" + id,
		SortOrder: sortOrder,
		Metadata:  domain.NewGalleryMetadata(viewpoint, name),
	}
}

func hotspotRow(id, viewpoint string) domain.Media {
	return domain.Media{
		ID:        id,
		ProjectID: "proj-1",
		Purpose:   domain.PurposeHotspot,
		Type:      domain.MediaSVG,
		URL:       "https://cdn.example.com/" + id,
		Metadata:  domain.NewHotspotMetadata(viewpoint),
	}
}

func transitionRow(id, from, to string) domain.Media {
	return domain.Media{
		ID:        id,
		ProjectID: "proj-1",
		Purpose:   domain.PurposeTransition,
		Type:      domain.MediaVideo,
		URL:       "https://cdn.example.com/" + id,
		Metadata:  domain.NewTransitionMetadata(from, to),
	}
}

func TestResolve_StopsSortedLexically(t *testing.T) {
	g := Resolve([]domain.Media{
		galleryRow("p3", "stop-03", "", 0),
		galleryRow("p1", "stop-01", "Entrada", 0),
		hotspotRow("h2", "stop-02"),
		hotspotRow("h1", "stop-01"),
	})

	require.Len(t, g.Stops, 3)

	assert.Equal(t, 1, g.Stops[0].Index)
	assert.Equal(t, "stop-01", g.Stops[0].Viewpoint)
	assert.Equal(t, "Entrada", g.Stops[0].Name)
	require.NotNil(t, g.Stops[0].Panorama)
	require.NotNil(t, g.Stops[0].Hotspot)

	// stop-02 exists only through its hotspot row; name falls back.
	assert.Equal(t, 2, g.Stops[1].Index)
	assert.Equal(t, "Stop 2", g.Stops[1].Name)
	assert.Nil(t, g.Stops[1].Panorama)

	assert.Equal(t, "Stop 3", g.Stops[2].Name)
	assert.Nil(t, g.Stops[2].Hotspot)
}

func TestResolve_DuplicatePanoramaPicksLowestSortOrder(t *testing.T) {
	g := Resolve([]domain.Media{
		galleryRow("p-late", "stop-01", "", 2),
		galleryRow("p-early", "stop-01", "", 1),
	})

	require.Len(t, g.Stops, 1)
	require.NotNil(t, g.Stops[0].Panorama)
	assert.Equal(t, "p-early", g.Stops[0].Panorama.ID)
}

func TestResolve_TransitionPairs(t *testing.T) {
	g := Resolve([]domain.Media{
		galleryRow("p1", "stop-01", "", 0),
		galleryRow("p2", "stop-02", "", 0),
		transitionRow("fwd", "stop-01", "stop-02"),
		transitionRow("rev", "stop-02", "stop-01"),
	})

	require.Len(t, g.Pairs, 1)
	pair := g.Pairs[0]
	assert.Equal(t, "stop-01|stop-02", pair.Key)
	assert.Equal(t, "stop-01", pair.From)
	assert.Equal(t, "stop-02", pair.To)
	require.NotNil(t, pair.Forward)
	assert.Equal(t, "fwd", pair.Forward.ID)
	require.NotNil(t, pair.Reverse)
	assert.Equal(t, "rev", pair.Reverse.ID)
}

func TestResolve_PairKeySymmetric(t *testing.T) {
	// Only the high→low row exists; the pair still keys low|high with the
	// clip on the reverse side.
	g := Resolve([]domain.Media{
		galleryRow("p1", "stop-01", "", 0),
		galleryRow("p2", "stop-02", "", 0),
		transitionRow("only", "stop-02", "stop-01"),
	})

	require.Len(t, g.Pairs, 1)
	assert.Equal(t, "stop-01|stop-02", g.Pairs[0].Key)
	assert.Nil(t, g.Pairs[0].Forward)
	require.NotNil(t, g.Pairs[0].Reverse)
	assert.Equal(t, "only", g.Pairs[0].Reverse.ID)

	pair, ok := g.Pair("stop-02", "stop-01")
	require.True(t, ok)
	assert.Equal(t, "stop-01|stop-02", pair.Key)
}

func TestResolve_SkipsMalformedTransitions(t *testing.T) {
	dangling := transitionRow("dangling", "stop-01", "stop-99")
	selfLoop := transitionRow("self", "stop-01", "stop-01")
	missing := domain.Media{
		ID: "missing", ProjectID: "proj-1",
		Purpose: domain.PurposeTransition, Type: domain.MediaVideo,
		Metadata: domain.Metadata{"from_viewpoint": "stop-01"},
	}

	g := Resolve([]domain.Media{
		galleryRow("p1", "stop-01", "", 0),
		galleryRow("p2", "stop-02", "", 0),
		dangling, selfLoop, missing,
	})

	assert.Empty(t, g.Pairs)
	assert.Len(t, g.Stops, 2)
}

func TestNextPrev_Circular(t *testing.T) {
	g := Resolve([]domain.Media{
		galleryRow("p1", "stop-01", "", 0),
		galleryRow("p2", "stop-02", "", 0),
		galleryRow("p3", "stop-03", "", 0),
	})

	next, ok := g.Next("stop-03")
	require.True(t, ok)
	assert.Equal(t, "stop-01", next)

	prev, ok := g.Prev("stop-01")
	require.True(t, ok)
	assert.Equal(t, "stop-03", prev)

	next, ok = g.Next("stop-01")
	require.True(t, ok)
	assert.Equal(t, "stop-02", next)

	_, ok = g.Next("no-such-viewpoint")
	assert.False(t, ok)
}

func TestResolve_EmptyRows(t *testing.T) {
	g := Resolve(nil)

	assert.Empty(t, g.Stops)
	assert.Empty(t, g.Pairs)
	_, ok := g.Next("anything")
	assert.False(t, ok)
}
