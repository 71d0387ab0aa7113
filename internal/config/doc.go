// Package config provides configuration management for the SJT catalog
// front-end and contact relay.
//
// This package handles:
//   - Loading settings from JSON, YAML or TOML files through viper
//   - SJT_ environment overrides
//   - Default configuration values
//   - Conversion to carousel slides
//
// # Default Settings
//
//	settings := config.DefaultSettings()
//	// Dataset at assets/data/productos.json
//	// Carousel advances every 8000 ms
//	// Relay listens on :8080
//
// # Loading from File
//
//	settings, err := config.Load("/path/to/sjt.json")
//	if err != nil {
//	    // Malformed file; a missing file just yields defaults
//	}
//
// # Environment
//
//	SJT_CAROUSEL_INTERVAL_MS=0   disable autoplay
//	SJT_DATA_SOURCE=http://...   load the dataset over HTTP
//	REDUCED_MOTION=1             same as reduced_motion: true
//
// # Saving Settings
//
//	settings.CarouselIntervalMS = 5000
//	err := settings.Save("/path/to/sjt.json")
package config
