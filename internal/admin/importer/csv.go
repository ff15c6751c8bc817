// Package importer parses admin CSV uploads of lot rows into layer
// creation requests. Parsing is total per batch: a bad row is recorded and
// skipped, the rest of the file still imports.
package importer

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/inmoview/explorer-backend/internal/explorer/domain"
)

// ExpectedHeader is the fixed column set of a lot import file, in order.
var ExpectedHeader = []string{
	"name", "label", "svg_element_id", "area", "front_length", "depth_length",
	"price", "currency", "status", "is_corner", "dimensions",
}

// LotRequest is one parsed row, ready to become a lot-type layer under the
// target parent.
type LotRequest struct {
	Name         string
	Label        string
	SVGElementID string
	Slug         string
	Depth        int
	SortOrder    int
	Area         *float64
	FrontLength  *float64
	DepthLength  *float64
	Price        *float64
	Currency     string
	Status       domain.LayerStatus
	IsCorner     bool
	Dimensions   string
}

// RowError records a per-row failure (1-based data row number, header not
// counted).
type RowError struct {
	Row     int    `json:"row"`
	Message string `json:"message"`
}

// Result aggregates a partial-success import.
type Result struct {
	Requests []LotRequest `json:"-"`
	Imported int          `json:"imported"`
	Failed   int          `json:"failed"`
	// FirstError surfaces the earliest failure message to the admin UI.
	FirstError string     `json:"first_error,omitempty"`
	RowErrors  []RowError `json:"row_errors,omitempty"`
}

// Parse reads the CSV and produces creation requests for lots under the
// given parent. existingSlugs are the parent's current children slugs
// (collision disambiguation); startSort continues sort_order after them.
// Only a missing/empty name fails a row; numeric fields fall back to null
// and unknown statuses to available.
func Parse(r io.Reader, parent *domain.Layer, existingSlugs []string, startSort int) (*Result, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}
	idx, err := mapHeaderIndices(header, ExpectedHeader)
	if err != nil {
		return nil, err
	}

	taken := make(map[string]bool, len(existingSlugs))
	for _, s := range existingSlugs {
		taken[s] = true
	}

	res := &Result{Requests: []LotRequest{}}
	sortOrder := startSort
	row := 0
	for {
		rec, err := reader.Read()
		if err == io.EOF {
			break
		}
		row++
		if err != nil {
			res.fail(row, fmt.Sprintf("csv read error: %v", err))
			continue
		}

		name := strings.TrimSpace(rec[idx["name"]])
		if name == "" {
			res.fail(row, "name is required")
			continue
		}

		slug := uniqueSlug(Slugify(name), taken)
		taken[slug] = true

		req := LotRequest{
			Name:         name,
			Label:        strings.TrimSpace(rec[idx["label"]]),
			SVGElementID: strings.TrimSpace(rec[idx["svg_element_id"]]),
			Slug:         slug,
			Depth:        parent.Depth + 1,
			SortOrder:    sortOrder,
			Area:         parseNullableFloat(rec[idx["area"]]),
			FrontLength:  parseNullableFloat(rec[idx["front_length"]]),
			DepthLength:  parseNullableFloat(rec[idx["depth_length"]]),
			Price:        parseNullableFloat(rec[idx["price"]]),
			Currency:     strings.TrimSpace(rec[idx["currency"]]),
			Status:       parseStatus(rec[idx["status"]]),
			IsCorner:     parseTruthy(rec[idx["is_corner"]]),
			Dimensions:   strings.TrimSpace(rec[idx["dimensions"]]),
		}
		sortOrder++
		res.Requests = append(res.Requests, req)
		res.Imported++
	}

	return res, nil
}

func (r *Result) fail(row int, msg string) {
	r.Failed++
	if r.FirstError == "" {
		r.FirstError = fmt.Sprintf("row %d: %s", row, msg)
	}
	r.RowErrors = append(r.RowErrors, RowError{Row: row, Message: msg})
}

func mapHeaderIndices(header, want []string) (map[string]int, error) {
	idx := make(map[string]int, len(header))
	for i, h := range header {
		idx[strings.ToLower(strings.TrimSpace(h))] = i
	}
	for _, w := range want {
		if _, ok := idx[w]; !ok {
			return nil, fmt.Errorf("expected header %q not found, got: %v", w, header)
		}
	}
	return idx, nil
}

func parseNullableFloat(s string) *float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &f
}

func parseStatus(s string) domain.LayerStatus {
	switch domain.LayerStatus(strings.ToLower(strings.TrimSpace(s))) {
	case domain.StatusReserved:
		return domain.StatusReserved
	case domain.StatusSold:
		return domain.StatusSold
	case domain.StatusNotAvailable:
		return domain.StatusNotAvailable
	default:
		return domain.StatusAvailable
	}
}

func parseTruthy(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "1", "yes", "y", "si", "sí":
		return true
	default:
		return false
	}
}

// Slugify lowercases, strips accents common in Spanish lot names and
// collapses everything else to single hyphens.
func Slugify(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))

	replacer := strings.NewReplacer(
		"á", "a", "é", "e", "í", "i", "ó", "o", "ú", "u", "ü", "u", "ñ", "n",
	)
	s = replacer.Replace(s)

	var b strings.Builder
	lastHyphen := true
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastHyphen = false
		default:
			if !lastHyphen {
				b.WriteByte('-')
				lastHyphen = true
			}
		}
	}
	return strings.TrimRight(b.String(), "-")
}

func uniqueSlug(base string, taken map[string]bool) string {
	if base == "" {
		base = "lote"
	}
	if !taken[base] {
		return base
	}
	for i := 2; ; i++ {
		candidate := fmt.Sprintf("%s-%d", base, i)
		if !taken[candidate] {
			return candidate
		}
	}
}
