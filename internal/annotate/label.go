package annotate

import (
	"image"
	"image/color"
	"image/draw"

	dimaging "github.com/disintegration/imaging"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// basicfont.Face7x13 metrics: 7px advance, 13px line height, 11px ascent.
const (
	glyphWidth  = 7
	glyphHeight = 13
	glyphAscent = 11
)

// drawLabel renders text with its top-left corner at (x, y). scale > 1 draws
// the text at an integer multiple of the base face size using nearest-neighbor
// upscaling. Labels partially outside the image are clipped.
func drawLabel(dst *image.NRGBA, x, y int, text string, col color.NRGBA, scale int) {
	if text == "" {
		return
	}
	if scale < 1 {
		scale = 1
	}

	w := len(text) * glyphWidth
	h := glyphHeight

	label := image.NewNRGBA(image.Rect(0, 0, w, h))
	d := &font.Drawer{
		Dst:  label,
		Src:  image.NewUniform(col),
		Face: basicfont.Face7x13,
		Dot:  fixed.Point26_6{X: fixed.I(0), Y: fixed.I(glyphAscent)},
	}
	d.DrawString(text)

	src := label
	if scale > 1 {
		src = dimaging.Resize(label, w*scale, h*scale, dimaging.NearestNeighbor)
		w *= scale
		h *= scale
	}

	rect := image.Rect(x, y, x+w, y+h).Intersect(dst.Bounds())
	if rect.Empty() {
		return
	}
	sp := image.Point{X: rect.Min.X - x, Y: rect.Min.Y - y}
	draw.Draw(dst, rect, src, sp, draw.Over)
}
