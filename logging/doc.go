// Package logging assembles the slog loggers used across ultraspin.
//
// New builds a console or JSON handler from Options; NewNop gives components a
// logger that cannot fail when the caller did not supply one. The attribute
// helpers keep field names consistent between the asset, theme and transition
// packages.
package logging
