// Package settings reads the per-system HyperSpin settings files,
// Settings/<system>.ini, as raw section/key/value text. Interpreting the
// values is left to callers.
package settings
