// Package main hosts the ultraspin CLI.
//
// The cobra command tree exposes the library's pieces one at a time:
// extracting theme members, resolving media paths, dumping theme
// descriptors and compiled transitions, reading system settings, and
// playing a theme in an ebiten window. Configuration and logging are set up
// once in commandContext so subcommands only wire the packages together.
package main
