package importer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inmoview/explorer-backend/internal/explorer/domain"
)

const csvHeader = "name,label,svg_element_id,area,front_length,depth_length,price,currency,status,is_corner,dimensions\n"

func parent() *domain.Layer {
	return &domain.Layer{ID: "zone-1", Type: domain.LayerZone, Depth: 0, Slug: "lotes"}
}

func TestParse_PartialSuccess(t *testing.T) {
	body := csvHeader +
		"Lote 1,L-1,svg-1,120.5,10,12,85000,USD,available,false,10x12\n" +
		"Lote 2,L-2,svg-2,118,10,11.8,82000,USD,reserved,true,10x11.8\n" +
		",L-3,svg-3,120,10,12,85000,USD,available,false,10x12\n" +
		"Lote 4,L-4,svg-4,,,,,,sold,no,\n" +
		"Lote 5,L-5,svg-5,abc,10,12,85000,USD,weird,si,10x12\n"

	res, err := Parse(strings.NewReader(body), parent(), nil, 0)
	require.NoError(t, err)

	assert.Equal(t, 4, res.Imported)
	assert.Equal(t, 1, res.Failed)
	assert.Equal(t, "row 3: name is required", res.FirstError)
	require.Len(t, res.RowErrors, 1)
	assert.Equal(t, 3, res.RowErrors[0].Row)

	require.Len(t, res.Requests, 4)

	first := res.Requests[0]
	assert.Equal(t, "Lote 1", first.Name)
	assert.Equal(t, "lote-1", first.Slug)
	assert.Equal(t, 1, first.Depth)
	assert.Equal(t, 0, first.SortOrder)
	require.NotNil(t, first.Area)
	assert.Equal(t, 120.5, *first.Area)
	assert.Equal(t, domain.StatusAvailable, first.Status)
	assert.False(t, first.IsCorner)
	assert.Equal(t, "10x12", first.Dimensions)

	second := res.Requests[1]
	assert.Equal(t, domain.StatusReserved, second.Status)
	assert.True(t, second.IsCorner)
	assert.Equal(t, 1, second.SortOrder)

	// Empty and unparseable numerics become null, never zero.
	fourth := res.Requests[2]
	assert.Equal(t, "Lote 4", fourth.Name)
	assert.Nil(t, fourth.Area)
	assert.Equal(t, domain.StatusSold, fourth.Status)
	assert.False(t, fourth.IsCorner)

	fifth := res.Requests[3]
	assert.Nil(t, fifth.Area)
	assert.Equal(t, domain.StatusAvailable, fifth.Status, "unknown status defaults to available")
	assert.True(t, fifth.IsCorner, "spanish affirmative is truthy")
}

func TestParse_SlugCollisions(t *testing.T) {
	body := csvHeader +
		"Lote 7,,,,,,,,,,\n" +
		"Lote 7,,,,,,,,,,\n" +
		"Lote 7,,,,,,,,,,\n"

	res, err := Parse(strings.NewReader(body), parent(), []string{"lote-7"}, 3)
	require.NoError(t, err)

	require.Len(t, res.Requests, 3)
	assert.Equal(t, "lote-7-2", res.Requests[0].Slug)
	assert.Equal(t, "lote-7-3", res.Requests[1].Slug)
	assert.Equal(t, "lote-7-4", res.Requests[2].Slug)
	assert.Equal(t, 3, res.Requests[0].SortOrder)
	assert.Equal(t, 5, res.Requests[2].SortOrder)
}

func TestParse_MissingHeader(t *testing.T) {
	body := "name,label\nLote 1,L-1\n"

	_, err := Parse(strings.NewReader(body), parent(), nil, 0)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "svg_element_id")
}

func TestParse_HeaderOrderIrrelevant(t *testing.T) {
	body := "status,name,label,svg_element_id,area,front_length,depth_length,price,currency,is_corner,dimensions\n" +
		"sold,Lote 9,,,100,,,,,,\n"

	res, err := Parse(strings.NewReader(body), parent(), nil, 0)
	require.NoError(t, err)

	require.Len(t, res.Requests, 1)
	assert.Equal(t, "Lote 9", res.Requests[0].Name)
	assert.Equal(t, domain.StatusSold, res.Requests[0].Status)
}

func TestSlugify(t *testing.T) {
	cases := map[string]string{
		"Lote 17":          "lote-17",
		"  Manzana  Árbol ": "manzana-arbol",
		"Peñón #3":         "penon-3",
		"ÚNICO":            "unico",
		"---":              "",
	}
	for in, want := range cases {
		assert.Equal(t, want, Slugify(in), "input %q", in)
	}
}

func TestUniqueSlug_EmptyBaseFallsBack(t *testing.T) {
	res, err := Parse(strings.NewReader(csvHeader+"###,,,,,,,,,,\n"), parent(), nil, 0)
	require.NoError(t, err)

	require.Len(t, res.Requests, 1)
	assert.Equal(t, "lote", res.Requests[0].Slug)
}
