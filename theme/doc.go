// Package theme parses HyperSpin theme descriptors.
//
// A descriptor is an XML document whose <Theme> element holds one child per
// component (artwork1, video, ...). Every attribute of a component is coerced
// to a number when it looks like one and kept as text otherwise.
package theme
