// Package probe reads the intrinsic size of theme media without fully
// decoding it.
//
// Key entry points:
//   - ImageSize: raster images (png, jpeg, gif, bmp, webp) via image.DecodeConfig
//   - SWFSize: the stage rectangle from a Flash file header (FWS or zlib CWS)
//   - VideoSize: the first video stream's dimensions reported by ffprobe
package probe
