package layers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inmoview/explorer-backend/internal/explorer/domain"
)

func strptr(s string) *string { return &s }

func TestNavigableRows_ExcludesTourSubtree(t *testing.T) {
	rows := []domain.Layer{
		{ID: "tour", ProjectID: "proj-1", Type: domain.LayerTour, Depth: 0, SortOrder: 0, Slug: "tour"},
		{ID: "zone", ProjectID: "proj-1", Type: domain.LayerZone, Depth: 0, SortOrder: 1, Slug: "lotes"},
		{ID: "lot-1", ProjectID: "proj-1", ParentID: strptr("zone"), Type: domain.LayerLot, Depth: 1, SortOrder: 1, Slug: "lote-01"},
		{ID: "lot-2", ProjectID: "proj-1", ParentID: strptr("zone"), Type: domain.LayerLot, Depth: 1, SortOrder: 2, Slug: "lote-02"},
	}

	out := navigableRows(rows)

	require.Len(t, out, 3)
	assert.Equal(t, "zone", out[0].ID)
	assert.Equal(t, "lot-1", out[1].ID)
	assert.Equal(t, "lot-2", out[2].ID)
	for _, l := range out {
		assert.NotEqual(t, domain.LayerTour, l.Type)
	}
}

func TestNavigableRows_EmptyInput(t *testing.T) {
	assert.Empty(t, navigableRows(nil))
}
