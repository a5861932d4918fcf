package classify

import (
	"errors"
	"testing"
)

func TestTensorImage_IdentityScaled(t *testing.T) {
	tensor := &Tensor{
		Data:     []float32{255, 0, 0, 0, 255, 0, 0, 0, 255, 128, 128, 128},
		Height:   2,
		Width:    2,
		Channels: 3,
	}

	img, err := tensorImage(tensor)
	if err != nil {
		t.Fatalf("tensorImage failed: %v", err)
	}

	px := img.NRGBAAt(0, 0)
	if px.R != 255 || px.G != 0 || px.B != 0 {
		t.Errorf("pixel (0,0): got (%d,%d,%d), want (255,0,0)", px.R, px.G, px.B)
	}
	px = img.NRGBAAt(1, 1)
	if px.R != 128 || px.G != 128 || px.B != 128 {
		t.Errorf("pixel (1,1): got (%d,%d,%d), want (128,128,128)", px.R, px.G, px.B)
	}
}

func TestTensorImage_UnitScaled(t *testing.T) {
	tensor := &Tensor{
		Data:     []float32{1, 1, 1, 0, 0, 0, 0.5, 0.5, 0.5, 1, 0, 0},
		Height:   2,
		Width:    2,
		Channels: 3,
	}

	img, err := tensorImage(tensor)
	if err != nil {
		t.Fatalf("tensorImage failed: %v", err)
	}

	px := img.NRGBAAt(0, 0)
	if px.R != 255 || px.G != 255 || px.B != 255 {
		t.Errorf("pixel (0,0): got (%d,%d,%d), want (255,255,255)", px.R, px.G, px.B)
	}
	px = img.NRGBAAt(0, 1)
	if px.R != 127 {
		t.Errorf("pixel (0,1).R = %d, want 127", px.R)
	}
}

func TestTensorImage_Malformed(t *testing.T) {
	tests := []struct {
		name   string
		tensor *Tensor
	}{
		{"nil tensor", nil},
		{"wrong channels", &Tensor{Data: make([]float32, 4), Height: 2, Width: 2, Channels: 1}},
		{"short data", &Tensor{Data: make([]float32, 3), Height: 2, Width: 2, Channels: 3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tensorImage(tt.tensor)
			if !errors.Is(err, ErrInvalidInput) {
				t.Errorf("error = %v, want ErrInvalidInput", err)
			}
		})
	}
}

func TestClamp8(t *testing.T) {
	tests := []struct {
		in   float32
		want uint8
	}{
		{-10, 0},
		{0, 0},
		{127.9, 127},
		{255, 255},
		{300, 255},
	}
	for _, tt := range tests {
		if got := clamp8(tt.in); got != tt.want {
			t.Errorf("clamp8(%v) = %d, want %d", tt.in, got, tt.want)
		}
	}
}
