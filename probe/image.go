package probe

import (
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
)

// Size is a width and height in pixels.
type Size struct {
	Width, Height float64
}

// Aspect returns Width/Height, or 0 for an empty size.
func (s Size) Aspect() float64 {
	if s.Height == 0 {
		return 0
	}
	return s.Width / s.Height
}

// ImageSize returns the pixel dimensions of the raster image at path.
func ImageSize(path string) (Size, error) {
	f, err := os.Open(path)
	if err != nil {
		return Size{}, fmt.Errorf("probe image: %w", err)
	}
	defer f.Close()
	cfg, format, err := image.DecodeConfig(f)
	if err != nil {
		return Size{}, fmt.Errorf("probe image %s: %w", path, err)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return Size{}, fmt.Errorf("probe image %s: empty %s", path, format)
	}
	return Size{Width: float64(cfg.Width), Height: float64(cfg.Height)}, nil
}
