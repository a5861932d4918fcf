package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/SybexX/meter-reader/internal/annotate"
	"github.com/SybexX/meter-reader/internal/classify"
	"github.com/SybexX/meter-reader/internal/config"
	"github.com/SybexX/meter-reader/internal/imaging"
	"github.com/SybexX/meter-reader/internal/pipeline"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "--version", "-v", "version":
			fmt.Printf("meter-reader %s\n", Version)
			fmt.Printf("  Build time: %s\n", BuildTime)
			fmt.Printf("  Git commit: %s\n", GitCommit)
			return
		}
	}

	var (
		configPath  = flag.String("config", "", "path to a YAML config file")
		modelPath   = flag.String("model", "", "path to the pretrained classifier model")
		engineName  = flag.String("engine", "", "inference engine: onnx or tesseract")
		regionsSrc  = flag.String("regions", "", "JSON file or literal list of digit regions, e.g. \"[[10,10,50,50],[60,10,100,50]]\"")
		imageSource = flag.String("image-source", "", "local image path or URL")
		output      = flag.String("output", "", "annotated output image path")
		noOutput    = flag.Bool("no-output-image", false, "do not save the annotated image")
		processed   = flag.Bool("processed", false, "annotate with rounded digits instead of raw readings")
		grid        = flag.Bool("grid", false, "write a coordinate grid overlay instead of reading the meter")
	)
	flag.Usage = printUsage
	flag.Parse()

	logger := log.New(os.Stderr, "", log.Ldate|log.Ltime)

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Fatalf("Config error: %v", err)
	}

	// Flags override the config file.
	if *modelPath != "" {
		cfg.Model = *modelPath
	}
	if *engineName != "" {
		cfg.Engine = *engineName
	}
	if *regionsSrc != "" {
		cfg.Regions = *regionsSrc
	}
	if *imageSource != "" {
		cfg.ImageSource = *imageSource
	}
	if *output != "" {
		cfg.Output = *output
	}

	cache := imaging.NewImageCache()
	cache.FetchTimeout = time.Duration(cfg.FetchTimeoutSeconds) * time.Second

	img, err := cache.LoadSource(cfg.ImageSource)
	if err != nil {
		logger.Fatalf("Unable to load image from %s: %v", cfg.ImageSource, err)
	}

	accent, err := annotate.ParseAccent(cfg.AccentColor)
	if err != nil {
		logger.Printf("%v, using default", err)
		accent = annotate.DefaultStyle().Accent
	}

	if *grid {
		overlay := annotate.GridOverlay(img, cfg.GridSpacing, true, accent)
		if err := imaging.Save(overlay, cfg.Output); err != nil {
			logger.Fatalf("Failed to write grid overlay: %v", err)
		}
		logger.Printf("Grid overlay written to %s", cfg.Output)
		return
	}

	if cfg.Regions == "" {
		logger.Println("No regions provided (use --regions or the config file).")
		printUsage()
		os.Exit(1)
	}
	regions, err := imaging.ParseRegions(cfg.Regions)
	if err != nil {
		logger.Fatalf("Error loading regions: %v", err)
	}
	if len(regions) == 0 {
		logger.Fatal("No valid regions provided.")
	}

	height, width := cfg.InputHeight, cfg.InputWidth
	var engine classify.Engine
	switch cfg.Engine {
	case "tesseract":
		engine = classify.NewTesseractEngine()
	case "onnx", "":
		onnx, err := classify.NewONNXEngine(cfg.Model)
		if err != nil {
			logger.Fatalf("Failed to load model %s: %v", cfg.Model, err)
		}
		defer onnx.Close()
		if h, w, _, ok := onnx.InputShape(); ok {
			height, width = h, w
		}
		engine = onnx
	default:
		logger.Fatalf("Unknown engine %q (want onnx or tesseract)", cfg.Engine)
	}

	classifier := classify.New(engine, height, width)
	if cfg.PixelScale == "unit" {
		classifier.Scale = classify.ScaleUnit
	}

	reading, err := pipeline.New(classifier, logger).Run(img, regions)
	if err != nil {
		logger.Fatalf("Cannot produce a reading: %v", err)
	}

	logger.Printf("Raw meter readings: %v", reading.Raw)
	logger.Printf("Processed meter readings: %v", reading.Digits)
	if len(reading.Rejected) > 0 {
		logger.Printf("Rejected regions (invalid bounds): %v", reading.Rejected)
	}
	if len(reading.Dropped) > 0 {
		logger.Printf("Dropped regions (classification failed): %v", reading.Dropped)
	}
	logger.Printf("Final meter reading: %s (%d)", reading.Sequence, reading.Value)

	if !*noOutput {
		mode := annotate.ModeRaw
		if *processed {
			mode = annotate.ModeProcessed
		}
		style := annotate.Style{Accent: accent, Thickness: 2}
		result := annotate.Annotate(img, reading.Regions, reading.Raw, mode, style)
		if err := imaging.Save(result, cfg.Output); err != nil {
			logger.Fatalf("Failed to write output image: %v", err)
		}
		logger.Printf("Annotated image written to %s", cfg.Output)
	}
}

func printUsage() {
	fmt.Fprintln(os.Stderr, "meter-reader - read a multi-digit meter from an image")
	fmt.Fprintln(os.Stderr)
	fmt.Fprintln(os.Stderr, "Usage: meter-reader [options]")
	fmt.Fprintln(os.Stderr)
	fmt.Fprintln(os.Stderr, "Options:")
	flag.PrintDefaults()
	fmt.Fprintln(os.Stderr)
	fmt.Fprintln(os.Stderr, "Examples:")
	fmt.Fprintln(os.Stderr, "  meter-reader --model model.onnx --regions regions.json --image-source http://192.168.1.113/img_tmp/alg.jpg")
	fmt.Fprintln(os.Stderr, "  meter-reader --model model.onnx --regions \"[[10,10,50,50],[60,60,100,100]]\" --image-source sample.jpg")
}
