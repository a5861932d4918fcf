// Package assemble normalizes raw per-region readings into digits and
// concatenates them into a single meter reading.
package assemble

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ErrEmptyResult indicates there were no readings to assemble.
var ErrEmptyResult = errors.New("no readings to assemble")

// Normalize converts a raw reading (class index / 10) back to an integer
// digit by multiplying by 10 and rounding half away from zero.
//
// The multiply-and-round is deliberate: raw values may come from sources
// other than the classifier (for example averaging across frames), so the
// class index must not simply be re-derived. A result of exactly 10, which
// only arises from raw values near 0.95-1.0 rounding upward, wraps to 0.
// No other wraparound is applied.
func Normalize(raw float64) int {
	digit := int(math.Round(raw * 10))
	if digit == 10 {
		digit = 0
	}
	return digit
}

// Result is an assembled meter reading.
//
// Sequence preserves leading zeros and is the authoritative form of the
// reading; Value is the base-10 parsed convenience integer, which drops any
// leading zeros.
type Result struct {
	Digits   []int  `json:"digits"`
	Sequence string `json:"sequence"`
	Value    int64  `json:"value"`
}

// Assemble normalizes each raw reading in order and concatenates the digits
// into one reading. Assembly is a pure function of its input: the same
// ordered readings always produce the same result.
//
// An empty input returns ErrEmptyResult.
func Assemble(raws []float64) (*Result, error) {
	if len(raws) == 0 {
		return nil, ErrEmptyResult
	}

	digits := make([]int, len(raws))
	var sb strings.Builder
	for i, raw := range raws {
		digits[i] = Normalize(raw)
		sb.WriteString(strconv.Itoa(digits[i]))
	}

	sequence := sb.String()
	value, err := strconv.ParseInt(sequence, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("failed to parse digit sequence %q: %w", sequence, err)
	}

	return &Result{Digits: digits, Sequence: sequence, Value: value}, nil
}
