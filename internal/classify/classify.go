package classify

import (
	"errors"
	"fmt"
	"image"

	"github.com/anthonynsimon/bild/transform"
)

// NumClasses is the number of digit classes the engine must score (0-9).
const NumClasses = 10

// ErrInvalidInput indicates a nil or zero-area crop that cannot be classified.
var ErrInvalidInput = errors.New("invalid or empty crop")

// Tensor is a batched NHWC float32 image tensor with a batch size of 1.
type Tensor struct {
	Data     []float32
	Height   int
	Width    int
	Channels int
}

// Shape returns the tensor dimensions as (1, height, width, channels).
func (t *Tensor) Shape() [4]int64 {
	return [4]int64{1, int64(t.Height), int64(t.Width), int64(t.Channels)}
}

// Engine is the opaque inference boundary: one call per crop, returning a
// score vector of length NumClasses. Implementations document whether Infer
// may be called concurrently.
type Engine interface {
	Infer(t *Tensor) ([]float32, error)
}

// EngineFunc adapts a plain function to the Engine interface.
type EngineFunc func(t *Tensor) ([]float32, error)

func (f EngineFunc) Infer(t *Tensor) ([]float32, error) { return f(t) }

// ScaleFunc maps an 8-bit pixel channel value into the range the bound model
// was trained with. It is a configuration point, not a fixed rule.
type ScaleFunc func(v uint8) float32

var (
	// ScaleIdentity passes pixel values through unchanged (0-255).
	ScaleIdentity ScaleFunc = func(v uint8) float32 { return float32(v) }

	// ScaleUnit normalizes pixel values to [0, 1].
	ScaleUnit ScaleFunc = func(v uint8) float32 { return float32(v) / 255.0 }
)

// Classifier preprocesses crops to the engine's expected input shape and
// derives a raw reading from the engine's score vector.
type Classifier struct {
	Engine Engine
	Height int // model input height in pixels
	Width  int // model input width in pixels

	// Scale is the pixel scaling policy applied during preprocessing.
	// nil means ScaleIdentity.
	Scale ScaleFunc
}

// New creates a classifier bound to an engine with a fixed input size.
func New(engine Engine, height, width int) *Classifier {
	return &Classifier{
		Engine: engine,
		Height: height,
		Width:  width,
		Scale:  ScaleIdentity,
	}
}

// Classify runs one crop through the engine and returns the raw reading:
// the index of the highest-scoring digit class divided by 10.
//
// A nil or zero-area crop fails with ErrInvalidInput before any resize.
func (c *Classifier) Classify(crop image.Image) (float64, error) {
	tensor, err := c.Preprocess(crop)
	if err != nil {
		return 0, err
	}

	scores, err := c.Engine.Infer(tensor)
	if err != nil {
		return 0, fmt.Errorf("inference failed: %w", err)
	}
	if len(scores) != NumClasses {
		return 0, fmt.Errorf("engine returned %d scores, want %d", len(scores), NumClasses)
	}

	return float64(argmax(scores)) / 10.0, nil
}

// Preprocess resizes a crop to the model input size and converts it to a
// float32 NHWC tensor with a leading batch dimension of 1, applying the
// configured pixel scaling policy.
func (c *Classifier) Preprocess(crop image.Image) (*Tensor, error) {
	if crop == nil {
		return nil, fmt.Errorf("nil crop: %w", ErrInvalidInput)
	}
	b := crop.Bounds()
	if b.Dx() <= 0 || b.Dy() <= 0 {
		return nil, fmt.Errorf("zero-area crop: %w", ErrInvalidInput)
	}

	scale := c.Scale
	if scale == nil {
		scale = ScaleIdentity
	}

	resized := transform.Resize(crop, c.Width, c.Height, transform.Linear)

	data := make([]float32, 0, c.Height*c.Width*3)
	for y := 0; y < c.Height; y++ {
		for x := 0; x < c.Width; x++ {
			r, g, bl, _ := resized.At(x, y).RGBA()
			data = append(data,
				scale(uint8(r>>8)),
				scale(uint8(g>>8)),
				scale(uint8(bl>>8)))
		}
	}

	return &Tensor{Data: data, Height: c.Height, Width: c.Width, Channels: 3}, nil
}

func argmax(scores []float32) int {
	best := 0
	for i, s := range scores {
		if s > scores[best] {
			best = i
		}
	}
	return best
}
