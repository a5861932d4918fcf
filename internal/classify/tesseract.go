package classify

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"

	"github.com/otiai10/gosseract/v2"
)

// TesseractEngine is a model-free fallback backend that reads the digit in a
// crop with OCR instead of a pretrained classifier.
//
// It reconstructs the crop from the preprocessed tensor, runs Tesseract in
// single-character mode with a 0-9 whitelist, and reports the recognized
// digit as a one-hot score vector. A fresh Tesseract client is created per
// call because the underlying client is not reentrant.
type TesseractEngine struct{}

// NewTesseractEngine creates the OCR fallback backend. Tesseract and its
// language data must be installed on the system.
func NewTesseractEngine() *TesseractEngine {
	return &TesseractEngine{}
}

// Infer recognizes the digit in the tensor's image and returns a one-hot
// score vector. An unrecognized crop is an inference failure, not a guess.
func (e *TesseractEngine) Infer(t *Tensor) ([]float32, error) {
	img, err := tensorImage(t)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("failed to encode crop: %w", err)
	}

	client := gosseract.NewClient()
	defer client.Close()

	if err := client.SetWhitelist("0123456789"); err != nil {
		return nil, fmt.Errorf("failed to set digit whitelist: %w", err)
	}
	if err := client.SetPageSegMode(gosseract.PSM_SINGLE_CHAR); err != nil {
		return nil, fmt.Errorf("failed to set page segmentation mode: %w", err)
	}
	if err := client.SetImageFromBytes(buf.Bytes()); err != nil {
		return nil, fmt.Errorf("failed to set image: %w", err)
	}

	text, err := client.Text()
	if err != nil {
		return nil, fmt.Errorf("OCR failed: %w", err)
	}

	digit := -1
	for _, r := range text {
		if r >= '0' && r <= '9' {
			digit = int(r - '0')
			break
		}
	}
	if digit < 0 {
		return nil, fmt.Errorf("no digit recognized in crop (got %q)", text)
	}

	scores := make([]float32, NumClasses)
	scores[digit] = 1
	return scores, nil
}

// tensorImage reconstructs an image from a preprocessed tensor. Unit-scaled
// tensors (every value at most 1) are mapped back to the 0-255 range so the
// backend works with either pixel scaling policy.
func tensorImage(t *Tensor) (*image.NRGBA, error) {
	if t == nil || t.Channels != 3 || len(t.Data) != t.Height*t.Width*t.Channels {
		return nil, fmt.Errorf("malformed tensor: %w", ErrInvalidInput)
	}

	var max float32
	for _, v := range t.Data {
		if v > max {
			max = v
		}
	}
	mult := float32(1)
	if max <= 1.0 {
		mult = 255
	}

	img := image.NewNRGBA(image.Rect(0, 0, t.Width, t.Height))
	i := 0
	for y := 0; y < t.Height; y++ {
		for x := 0; x < t.Width; x++ {
			r := clamp8(t.Data[i] * mult)
			g := clamp8(t.Data[i+1] * mult)
			b := clamp8(t.Data[i+2] * mult)
			i += 3
			img.SetNRGBA(x, y, color.NRGBA{R: r, G: g, B: b, A: 255})
		}
	}
	return img, nil
}

func clamp8(v float32) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}
