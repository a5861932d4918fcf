// Package pipeline runs the full meter reading sequence: extract digit
// regions, classify each crop, and assemble the digits into one reading.
//
// Region-level and crop-level failures are recovered locally: a bad region or
// a failed classification is logged and skipped so partial results survive.
// The only fatal condition is an empty result, when no region produces a
// usable reading; callers can detect it with errors.Is against
// imaging.ErrEmptyResult or assemble.ErrEmptyResult. A missing digit is never
// rendered as a placeholder; it is dropped from the sequence, which shortens
// the final reading, and its original region index is reported.
package pipeline

import (
	"fmt"
	"image"
	"log"

	"github.com/SybexX/meter-reader/internal/assemble"
	"github.com/SybexX/meter-reader/internal/classify"
	"github.com/SybexX/meter-reader/internal/imaging"
)

// Pipeline ties a classifier to the extraction and assembly stages.
//
// The pipeline is single-threaded and synchronous: regions are processed
// strictly in sequence and the run either completes or fails fast. A fresh
// logger can be injected per run site so repeated invocations have isolated
// diagnostics.
type Pipeline struct {
	Classifier *classify.Classifier
	Logger     *log.Logger
}

// New creates a pipeline around a classifier. A nil logger falls back to the
// process default.
func New(classifier *classify.Classifier, logger *log.Logger) *Pipeline {
	return &Pipeline{Classifier: classifier, Logger: logger}
}

// Reading is the outcome of one pipeline run.
//
// Regions, Raw and Digits are index-aligned and ordered like the surviving
// input regions. Sequence preserves leading zeros; Value is the parsed
// integer convenience form. Rejected lists original region indices discarded
// during extraction, Dropped those whose classification failed.
type Reading struct {
	Regions  []imaging.Region
	Raw      []float64
	Digits   []int
	Sequence string
	Value    int64
	Rejected []int
	Dropped  []int
}

// Run reads the meter: crops every valid region, classifies each crop, and
// assembles the surviving digits in their original relative order.
//
// Per-crop classification failures are logged and recorded in
// Reading.Dropped rather than aborting the run. Run returns an error only
// when no reading can be produced at all.
func (p *Pipeline) Run(img image.Image, regions []imaging.Region) (*Reading, error) {
	logger := p.Logger
	if logger == nil {
		logger = log.Default()
	}

	crops, err := imaging.Extract(img, regions, logger)
	if err != nil {
		return nil, err
	}

	reading := &Reading{
		Rejected: rejectedIndices(len(regions), crops),
	}

	for _, crop := range crops {
		raw, err := p.Classifier.Classify(crop.Image)
		if err != nil {
			logger.Printf("region %d %v: classification failed: %v", crop.Index, crop.Region, err)
			reading.Dropped = append(reading.Dropped, crop.Index)
			continue
		}
		reading.Regions = append(reading.Regions, crop.Region)
		reading.Raw = append(reading.Raw, raw)
	}

	result, err := assemble.Assemble(reading.Raw)
	if err != nil {
		return nil, fmt.Errorf("no region produced a usable reading: %w", err)
	}
	reading.Digits = result.Digits
	reading.Sequence = result.Sequence
	reading.Value = result.Value

	return reading, nil
}

// rejectedIndices returns the original indices absent from the crop list.
func rejectedIndices(total int, crops []imaging.Crop) []int {
	accepted := make(map[int]bool, len(crops))
	for _, c := range crops {
		accepted[c.Index] = true
	}
	var rejected []int
	for i := 0; i < total; i++ {
		if !accepted[i] {
			rejected = append(rejected, i)
		}
	}
	return rejected
}
