// Package imaging provides image loading and digit-region extraction for the
// meter reading pipeline.
//
// This package implements the input side of the pipeline: decoding images from
// local files or remote URLs (with caching), parsing digit-region lists, and
// cropping validated regions out of a source image. All operations work with
// standard Go image.Image types and use a coordinate system where (0,0) is at
// the top-left corner, X increases rightward, and Y increases downward.
//
// # Coordinate System
//
// All pixel coordinates in this package are 0-based:
//   - X: horizontal position (0 = leftmost pixel)
//   - Y: vertical position (0 = topmost pixel)
//   - For regions, (X1,Y1) is inclusive (top-left), (X2,Y2) is exclusive
//     (bottom-right)
//
// The ordering of a region list is significant: it defines digit place order
// in the assembled reading, most significant digit first.
//
// # Thread Safety
//
// The ImageCache type is safe for concurrent use. Extract and ParseRegions are
// stateless and never mutate the source image; crops are independent copies.
//
// # Error Handling
//
// Individual invalid regions (out of bounds, zero area, inverted coordinates)
// are logged and skipped, never fatal. Only an empty surviving set escalates,
// as ErrEmptyResult, because no reading can be produced from it.
package imaging
