// Package media maps logical theme assets onto a HyperSpin directory tree.
//
// The tree is rooted at the HyperSpin directory:
//
//	Media/<system>/Themes/<game>.zip
//	Media/<system>/Images/Wheel/<name>.png
//	Media/<system>/Images/Special/<name>.{swf,png}
//	Media/<system>/Video/<name>.{flv,mp4}
//	Media/Frontend/Images/<name>.png
//	Settings/<system>.ini
//	Databases/<system>/<system>.xml
//
// Filesystem lookups return "" when nothing exists. Archive-backed lookups
// fall back to the "default" game identity at most once.
package media
