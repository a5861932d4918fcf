package annotate

import (
	"fmt"
	"image"
	"image/color"

	dimaging "github.com/disintegration/imaging"
)

// GridOverlay draws a coordinate grid onto a copy of the image.
//
// The overlay is a setup aid for finding digit region coordinates: grid lines
// are drawn every spacing pixels and, when showCoordinates is set, each
// intersection is labeled with its "x,y" position. The source image is not
// mutated.
func GridOverlay(img image.Image, spacing int, showCoordinates bool, accent color.NRGBA) *image.NRGBA {
	if spacing < 1 {
		spacing = 50
	}

	out := dimaging.Clone(img)
	bounds := out.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()

	for x := spacing; x < width; x += spacing {
		for y := 0; y < height; y++ {
			out.SetNRGBA(x, y, accent)
		}
	}
	for y := spacing; y < height; y += spacing {
		for x := 0; x < width; x++ {
			out.SetNRGBA(x, y, accent)
		}
	}

	if showCoordinates {
		labelColor := color.NRGBA{R: 255, G: 255, B: 255, A: 255}
		for y := spacing; y < height; y += spacing {
			for x := spacing; x < width; x += spacing {
				drawLabel(out, x+2, y+2, fmt.Sprintf("%d,%d", x, y), labelColor, 1)
			}
		}
	}

	return out
}
