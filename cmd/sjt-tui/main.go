package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/handiism/sjt-catalog/internal/config"
	"github.com/handiism/sjt-catalog/internal/tui"
)

func main() {
	var (
		configFlag        = flag.String("config", "", "Path to config file (json, yaml or toml)")
		dataFlag          = flag.String("data", "", "Catalog dataset path or URL (overrides config)")
		intervalFlag      = flag.Int("interval", -1, "Carousel interval in milliseconds, 0 disables autoplay (overrides config)")
		reducedMotionFlag = flag.Bool("reduced-motion", false, "Never advance the carousel automatically")
	)

	flag.Parse()

	settings, err := config.Load(*configFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	if *dataFlag != "" {
		settings.DataSource = *dataFlag
	}
	if *intervalFlag >= 0 {
		settings.CarouselIntervalMS = *intervalFlag
	}
	if *reducedMotionFlag {
		settings.ReducedMotion = true
	}

	logger, closer, err := settings.FileLogger()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening log file: %v\n", err)
		os.Exit(1)
	}
	defer closer.Close()

	logger.Info("starting", "data_source", settings.DataSource, "interval_ms", settings.CarouselIntervalMS, "reduced_motion", settings.ReducedMotion)

	if err := tui.Run(settings, logger); err != nil {
		closer.Close()
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
