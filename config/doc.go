// Package config loads, normalizes, and validates ultraspin configuration.
//
// Defaults describe a HyperSpin install in the working directory at the
// 1024x768 reference resolution. A TOML file may override any field, and
// ULTRASPIN_* environment variables override the file.
package config
