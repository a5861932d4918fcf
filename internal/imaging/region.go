package imaging

import (
	"encoding/json"
	"fmt"
	"image"
	"os"
	"strings"
)

// Region is a rectangular digit window in image pixel coordinates.
//
// X1 < X2 and Y1 < Y2 are expected but not enforced: an inverted or degenerate
// region produces an empty crop and is skipped during extraction.
type Region struct {
	X1 int `json:"x1"` // Left edge (inclusive)
	Y1 int `json:"y1"` // Top edge (inclusive)
	X2 int `json:"x2"` // Right edge (exclusive)
	Y2 int `json:"y2"` // Bottom edge (exclusive)
}

// Rect converts the region to a standard image.Rectangle.
func (r Region) Rect() image.Rectangle {
	return image.Rect(r.X1, r.Y1, r.X2, r.Y2)
}

func (r Region) String() string {
	return fmt.Sprintf("[%d,%d,%d,%d]", r.X1, r.Y1, r.X2, r.Y2)
}

// ParseRegions loads an ordered digit-region list from a JSON file or a
// literal JSON list such as "[[10,10,50,50],[60,10,100,50]]".
//
// If source names an existing file, its contents are parsed; otherwise source
// itself is parsed after stripping surrounding quotes. Each entry must be a
// list of exactly four integers (x1, y1, x2, y2); entries with any other
// arity are silently dropped. The order of the returned regions matches the
// input order.
func ParseRegions(source string) ([]Region, error) {
	var data []byte
	if _, err := os.Stat(source); err == nil {
		data, err = os.ReadFile(source)
		if err != nil {
			return nil, fmt.Errorf("failed to read regions file %s: %w", source, err)
		}
	} else {
		literal := strings.TrimSpace(source)
		literal = strings.Trim(literal, `"'`)
		data = []byte(literal)
	}

	var rows [][]int
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, fmt.Errorf("failed to parse regions: %w", err)
	}

	regions := make([]Region, 0, len(rows))
	for _, row := range rows {
		if len(row) != 4 {
			continue
		}
		regions = append(regions, Region{X1: row[0], Y1: row[1], X2: row[2], Y2: row[3]})
	}
	return regions, nil
}
