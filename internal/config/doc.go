// Package config loads videofilter settings from a TOML (or YAML) file,
// VIDEOFILTER_* environment variables and defaults.
package config
