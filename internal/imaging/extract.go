package imaging

import (
	"errors"
	"fmt"
	"image"
	"log"

	"github.com/disintegration/imaging"
)

// ErrEmptyResult indicates that no valid regions survived filtering, so no
// reading can be produced.
var ErrEmptyResult = errors.New("no valid regions to process")

// Crop is a digit region cut out of a source image.
//
// The pixel data is an independent copy; mutating the source image after
// extraction does not affect existing crops. Index is the region's position
// in the original input list, which callers use to report skipped regions.
type Crop struct {
	Index  int
	Region Region
	Image  *image.NRGBA
}

// Extract crops each region out of the source image, skipping invalid ones.
//
// A region is rejected (logged, never fatal on its own) when any edge falls
// outside the image bounds or when the resulting crop would have zero area,
// which also covers inverted coordinates. Accepted crops preserve pixel
// values unchanged and keep their relative input order.
//
// If every region is rejected, Extract returns an error wrapping
// ErrEmptyResult and the pipeline must not proceed to classification.
//
// A nil logger falls back to the process default.
func Extract(img image.Image, regions []Region, logger *log.Logger) ([]Crop, error) {
	if logger == nil {
		logger = log.Default()
	}
	if img == nil {
		return nil, fmt.Errorf("no source image: %w", ErrEmptyResult)
	}

	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()

	crops := make([]Crop, 0, len(regions))
	for i, r := range regions {
		if r.X1 < 0 || r.Y1 < 0 || r.X2 > width || r.Y2 > height {
			logger.Printf("region %d %v is outside the image bounds (%dx%d), skipping", i, r, width, height)
			continue
		}
		if r.X2-r.X1 <= 0 || r.Y2-r.Y1 <= 0 {
			logger.Printf("region %d %v is empty, skipping", i, r)
			continue
		}
		sub := imaging.Crop(img, r.Rect())
		crops = append(crops, Crop{Index: i, Region: r, Image: sub})
	}

	if len(crops) == 0 {
		return nil, fmt.Errorf("all %d region(s) rejected: %w", len(regions), ErrEmptyResult)
	}
	return crops, nil
}
