// Package config provides configuration management for poddl.
//
// This package handles:
//   - Loading settings from a file and PODDL_* environment variables (viper)
//   - Saving settings as JSON
//   - Default configuration values and validation
//   - Conversion of flag-style settings to feed ordering and naming modes
//
// # Loading
//
//	settings, err := config.Load("/path/to/poddl.yaml")
//	if err != nil {
//	    // errors.Is(err, config.ErrInvalidConfig)
//	}
//
// A missing file is not an error: defaults are used. Every key can be
// overridden from the environment:
//
//	PODDL_NEWEST_FIRST=true PODDL_ZERO_PAD=4 poddl https://example.com/feed.xml ./out
//
// # Validation
//
// Validate reports the first unusable setting as a *ConfigError, e.g. a
// missing feed URL or a missing output path outside list-only mode.
package config
