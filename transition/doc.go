// Package transition compiles theme transition descriptions into keyframe
// plans.
//
// A transition is described by a start edge and an effect type. Compilation
// runs two passes over a component's placed geometry. The entry pass,
// selected by start, produces the off-screen or effect-specific starting
// keyframes. The exit pass, selected by type, appends to or replaces those
// keyframes and adjusts timing. The result is a Plan: keyframes, timing,
// auxiliary effects to start alongside, and an optional placement override.
//
// Geometry is authored against a 1024x768 reference canvas. Compile resolves
// every length to screen pixels using the Screen it is given, so a Plan is
// ready to play without further scaling.
//
// Unsupported start/type combinations return ErrUnsupported. Callers are
// expected to log it and leave the component at rest.
package transition
