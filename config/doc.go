// Package config loads, normalizes, and validates simplereplay configuration.
//
// It supplies defaults, expands user paths (including tilde shortcuts), reads
// TOML files, and applies SIMPLEREPLAY_* environment overrides, so commands
// receive one sanitized Config.
package config
