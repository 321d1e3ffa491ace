// Package config handles loading and validating Skyfire Core configuration.
//
// This package manages:
//   - Loading configuration from YAML files
//   - Overriding with environment variables
//   - Validation of required fields
//   - Default value handling
//   - Translation of the string-keyed YAML show plan into the engine's
//     typed configuration (ShowConfig / Options)
//
// Performance Characteristics:
//   - Configuration is loaded once at startup
//   - No runtime overhead after initial load
//
// Usage:
//
//	cfg, err := config.Load("configs/config.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	gen := show.NewGeneratorWithOptions(cfg.ShowConfig(), rng, logger, cfg.Options())
package config
