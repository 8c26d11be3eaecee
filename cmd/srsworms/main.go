package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"gocv.io/x/gocv"

	"srsworms/internal/models"
	"srsworms/pkg/config"
	"srsworms/pkg/imgio"
	"srsworms/pkg/morphology"
)

func main() {
	maskPath := flag.String("mask", "", "Whole-body binary mask of the worm")
	antPath := flag.String("anterior", "", "Anterior-reference mask")
	outDir := flag.String("out-dir", "worm_masks", "Directory for the anterior/posterior masks")
	configPath := flag.String("config", "", "Configuration file (default: $SRSWORMS_CONFIG or config.yaml)")
	quantile := flag.Float64("quantile", 0, "Override the cut quantile from the config")
	flag.Parse()

	if *maskPath == "" || *antPath == "" {
		flag.Usage()
		os.Exit(1)
	}

	var cfg *config.Config
	var err error
	if *configPath != "" {
		cfg, err = config.LoadConfig(*configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	params := cfg.SegmentationParams()
	if *quantile != 0 {
		params.Quantile = *quantile
	}

	specimen := models.Specimen{
		ID:              stem(*maskPath),
		MaskPath:        *maskPath,
		AnteriorRefPath: *antPath,
	}

	mask, err := imgio.ReadGray(specimen.MaskPath)
	if err != nil {
		log.Fatalf("Failed to load mask: %v", err)
	}
	defer mask.Close()

	antMask, err := imgio.ReadGray(specimen.AnteriorRefPath)
	if err != nil {
		log.Fatalf("Failed to load anterior-reference mask: %v", err)
	}
	defer antMask.Close()

	if cfg.Output.Verbose {
		fmt.Printf("Segmenting specimen %s (%dx%d, quantile %.2f)...\n",
			specimen.ID, mask.Cols(), mask.Rows(), params.Quantile)
	}

	anterior, posterior, err := morphology.GetWormMasks(mask, antMask, params)
	if err != nil {
		log.Fatalf("Segmentation of %s failed: %v", specimen.ID, err)
	}
	defer anterior.Close()
	defer posterior.Close()

	if err := os.MkdirAll(*outDir, 0755); err != nil {
		log.Fatalf("Failed to create output directory: %v", err)
	}

	for name, m := range map[string]gocv.Mat{"anterior": anterior, "posterior": posterior} {
		// Labeled regions carry their component label value; write them
		// back as plain binary masks.
		bin := gocv.NewMat()
		m.ConvertTo(&bin, gocv.MatTypeCV8U)
		gocv.Threshold(bin, &bin, 0, 255, gocv.ThresholdBinary)

		out := filepath.Join(*outDir, fmt.Sprintf("%s_%s.png", specimen.ID, name))
		if err := imgio.WriteGray(out, bin); err != nil {
			bin.Close()
			log.Fatalf("Failed to write %s: %v", out, err)
		}

		if cfg.Output.Verbose {
			fmt.Printf("  %s: %d px -> %s\n", name, gocv.CountNonZero(bin), out)
		}
		bin.Close()
	}
}

// stem returns the filename without directory or extension.
func stem(path string) string {
	base := filepath.Base(path)
	return base[:len(base)-len(filepath.Ext(base))]
}
