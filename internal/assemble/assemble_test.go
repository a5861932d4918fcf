package assemble

import (
	"errors"
	"fmt"
	"testing"
)

func TestNormalize_RecoversClassIndex(t *testing.T) {
	for k := 0; k <= 9; k++ {
		raw := float64(k) / 10.0
		if got := Normalize(raw); got != k {
			t.Errorf("Normalize(%v) = %d, want %d", raw, got, k)
		}
	}
}

func TestNormalize_Wraparound(t *testing.T) {
	// Values in 0.95..1.0 round to 10, which wraps to 0.
	for _, raw := range []float64{0.95, 0.97, 0.99, 1.0} {
		if got := Normalize(raw); got != 0 {
			t.Errorf("Normalize(%v) = %d, want 0 (wraparound)", raw, got)
		}
	}
}

func TestNormalize_Rounding(t *testing.T) {
	tests := []struct {
		raw  float64
		want int
	}{
		{0.04, 0},
		{0.05, 1}, // half rounds away from zero
		{0.14, 1},
		{0.68, 7},
		{0.72, 7},
		{0.94, 9},
	}
	for _, tt := range tests {
		if got := Normalize(tt.raw); got != tt.want {
			t.Errorf("Normalize(%v) = %d, want %d", tt.raw, got, tt.want)
		}
	}
}

func TestAssemble(t *testing.T) {
	tests := []struct {
		raws         []float64
		wantDigits   []int
		wantSequence string
		wantValue    int64
	}{
		{[]float64{0.7}, []int{7}, "7", 7},
		{[]float64{0.9, 0.95}, []int{9, 0}, "90", 90},
		{[]float64{0.1, 0.2, 0.3}, []int{1, 2, 3}, "123", 123},
		{[]float64{0, 0, 0.7}, []int{0, 0, 7}, "007", 7},
		{[]float64{0, 0, 0, 0}, []int{0, 0, 0, 0}, "0000", 0},
	}

	for _, tt := range tests {
		t.Run(tt.wantSequence, func(t *testing.T) {
			result, err := Assemble(tt.raws)
			if err != nil {
				t.Fatalf("Assemble failed: %v", err)
			}

			if len(result.Digits) != len(tt.wantDigits) {
				t.Fatalf("digits: got %v, want %v", result.Digits, tt.wantDigits)
			}
			for i, d := range result.Digits {
				if d != tt.wantDigits[i] {
					t.Errorf("digit %d: got %d, want %d", i, d, tt.wantDigits[i])
				}
			}
			if result.Sequence != tt.wantSequence {
				t.Errorf("sequence: got %q, want %q", result.Sequence, tt.wantSequence)
			}
			if result.Value != tt.wantValue {
				t.Errorf("value: got %d, want %d", result.Value, tt.wantValue)
			}
		})
	}
}

func TestAssemble_LeadingZerosPreservedInSequence(t *testing.T) {
	result, err := Assemble([]float64{0, 0, 0.7})
	if err != nil {
		t.Fatalf("Assemble failed: %v", err)
	}
	if result.Sequence != "007" {
		t.Errorf("sequence: got %q, want %q", result.Sequence, "007")
	}
	if result.Value != 7 {
		t.Errorf("value: got %d, want 7", result.Value)
	}
}

func TestAssemble_Empty(t *testing.T) {
	_, err := Assemble(nil)
	if !errors.Is(err, ErrEmptyResult) {
		t.Errorf("error = %v, want ErrEmptyResult", err)
	}

	_, err = Assemble([]float64{})
	if !errors.Is(err, ErrEmptyResult) {
		t.Errorf("error = %v, want ErrEmptyResult", err)
	}
}

func TestAssemble_Idempotent(t *testing.T) {
	raws := []float64{0.3, 0.1, 0.4, 0.1, 0.5}

	first, err := Assemble(raws)
	if err != nil {
		t.Fatalf("Assemble failed: %v", err)
	}

	for i := 0; i < 5; i++ {
		again, err := Assemble(raws)
		if err != nil {
			t.Fatalf("Assemble failed on repeat %d: %v", i, err)
		}
		if again.Sequence != first.Sequence || again.Value != first.Value {
			t.Fatalf("repeat %d: got %q/%d, want %q/%d",
				i, again.Sequence, again.Value, first.Sequence, first.Value)
		}
	}
}

func TestAssemble_DoesNotMutateInput(t *testing.T) {
	raws := []float64{0.9, 0.95, 0.1}
	want := fmt.Sprintf("%v", raws)

	if _, err := Assemble(raws); err != nil {
		t.Fatalf("Assemble failed: %v", err)
	}
	if got := fmt.Sprintf("%v", raws); got != want {
		t.Errorf("input mutated: got %s, want %s", got, want)
	}
}
