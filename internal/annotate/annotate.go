// Package annotate draws digit regions and their readings onto a meter image
// for visual inspection. It is purely presentational: the source image and
// the reading data are never modified.
package annotate

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"strconv"

	dimaging "github.com/disintegration/imaging"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/SybexX/meter-reader/internal/assemble"
	"github.com/SybexX/meter-reader/internal/imaging"
)

// Mode selects which form of the reading is rendered next to each region.
type Mode int

const (
	// ModeRaw renders the raw float reading to two decimal places in a
	// small face, just above the region.
	ModeRaw Mode = iota

	// ModeProcessed renders the rounded integer digit in a larger face,
	// offset into the region.
	ModeProcessed
)

// Style is the fixed visual style used for all annotations.
type Style struct {
	Accent    color.NRGBA // outline and label color
	Thickness int         // rectangle line weight in pixels
}

// DefaultStyle returns the standard green annotation style.
func DefaultStyle() Style {
	return Style{
		Accent:    color.NRGBA{G: 255, A: 255},
		Thickness: 2,
	}
}

// ParseAccent parses a hex color like "#00ff00" into an annotation color.
func ParseAccent(hex string) (color.NRGBA, error) {
	c, err := colorful.Hex(hex)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("invalid accent color %q: %w", hex, err)
	}
	r, g, b := c.RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: 255}, nil
}

// Annotate draws a rectangle outline and a reading label for each
// (region, reading) pair onto a copy of the source image.
//
// Regions and readings are paired by position; extra entries on either side
// are ignored. The source image is cloned first and never mutated.
func Annotate(img image.Image, regions []imaging.Region, readings []float64, mode Mode, style Style) *image.NRGBA {
	out := dimaging.Clone(img)

	n := len(regions)
	if len(readings) < n {
		n = len(readings)
	}

	for i := 0; i < n; i++ {
		r := regions[i]
		drawRect(out, r, style.Accent, style.Thickness)

		switch mode {
		case ModeProcessed:
			label := strconv.Itoa(assemble.Normalize(readings[i]))
			drawLabel(out, r.X1+10, r.Y1-10, label, style.Accent, 2)
		default:
			label := fmt.Sprintf("%.2f", readings[i])
			drawLabel(out, r.X1, r.Y1-10, label, style.Accent, 1)
		}
	}

	return out
}

// drawRect draws a rectangle outline of the given thickness, clipped to the
// image bounds. The outline grows inward from the region edges.
func drawRect(img *image.NRGBA, r imaging.Region, col color.NRGBA, thickness int) {
	if thickness < 1 {
		thickness = 1
	}
	bounds := img.Bounds()

	fill := func(x1, y1, x2, y2 int) {
		rect := image.Rect(x1, y1, x2, y2).Intersect(bounds)
		draw.Draw(img, rect, image.NewUniform(col), image.Point{}, draw.Src)
	}

	fill(r.X1, r.Y1, r.X2, r.Y1+thickness) // top
	fill(r.X1, r.Y2-thickness, r.X2, r.Y2) // bottom
	fill(r.X1, r.Y1, r.X1+thickness, r.Y2) // left
	fill(r.X2-thickness, r.Y1, r.X2, r.Y2) // right
}
