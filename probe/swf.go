package probe

import (
	"bufio"
	"compress/zlib"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
)

// twipsPerPixel is the SWF length unit.
const twipsPerPixel = 20

// ErrNotSWF reports a file without a recognised SWF signature.
var ErrNotSWF = errors.New("probe: not a swf file")

// ErrUnsupportedSWF reports a SWF compression scheme that cannot be read.
var ErrUnsupportedSWF = errors.New("probe: unsupported swf compression")

// SWFHeader is the fixed part of a Flash file.
type SWFHeader struct {
	Version    uint8
	Compressed bool
	// Size is the stage size in pixels.
	Size Size
	// World is the extent from the stage origin to the far corner of the
	// frame rectangle. It equals Size when the frame starts at 0,0.
	World      Size
	FrameRate  float64
	FrameCount uint16
}

// SWFSize reads the header of the Flash file at path.
func SWFSize(path string) (SWFHeader, error) {
	f, err := os.Open(path)
	if err != nil {
		return SWFHeader{}, fmt.Errorf("probe swf: %w", err)
	}
	defer f.Close()
	h, err := ReadSWFHeader(f)
	if err != nil {
		return SWFHeader{}, fmt.Errorf("probe swf %s: %w", path, err)
	}
	return h, nil
}

// ReadSWFHeader parses a SWF header from r.
func ReadSWFHeader(r io.Reader) (SWFHeader, error) {
	var sig [8]byte
	if _, err := io.ReadFull(r, sig[:]); err != nil {
		return SWFHeader{}, fmt.Errorf("read signature: %w", err)
	}
	if sig[1] != 'W' || sig[2] != 'S' {
		return SWFHeader{}, ErrNotSWF
	}

	h := SWFHeader{Version: sig[3]}
	body := r
	switch sig[0] {
	case 'F':
	case 'C':
		zr, err := zlib.NewReader(r)
		if err != nil {
			return SWFHeader{}, fmt.Errorf("open zlib body: %w", err)
		}
		defer zr.Close()
		body = zr
		h.Compressed = true
	case 'Z':
		return SWFHeader{}, ErrUnsupportedSWF
	default:
		return SWFHeader{}, ErrNotSWF
	}

	br := &bitReader{r: bufio.NewReader(body)}
	nbits, err := br.bits(5)
	if err != nil {
		return SWFHeader{}, err
	}
	var rect [4]int64 // xmin, xmax, ymin, ymax
	for i := range rect {
		v, err := br.signed(uint(nbits))
		if err != nil {
			return SWFHeader{}, err
		}
		rect[i] = v
	}
	h.Size = Size{
		Width:  float64(rect[1]-rect[0]) / twipsPerPixel,
		Height: float64(rect[3]-rect[2]) / twipsPerPixel,
	}
	h.World = Size{
		Width:  float64(rect[1]) / twipsPerPixel,
		Height: float64(rect[3]) / twipsPerPixel,
	}

	// The rectangle is padded to a byte boundary; rate and count follow.
	var tail [4]byte
	if _, err := io.ReadFull(br.r, tail[:]); err != nil {
		return SWFHeader{}, fmt.Errorf("read frame info: %w", err)
	}
	// Frame rate is 8.8 fixed point, little endian.
	h.FrameRate = float64(tail[1]) + float64(tail[0])/256
	h.FrameCount = binary.LittleEndian.Uint16(tail[2:])
	return h, nil
}

// bitReader reads big-endian bit fields.
type bitReader struct {
	r    *bufio.Reader
	cur  byte
	left uint
}

func (b *bitReader) bits(n uint) (uint64, error) {
	var v uint64
	for i := uint(0); i < n; i++ {
		if b.left == 0 {
			c, err := b.r.ReadByte()
			if err != nil {
				return 0, fmt.Errorf("read rect: %w", err)
			}
			b.cur, b.left = c, 8
		}
		b.left--
		v = v<<1 | uint64(b.cur>>b.left&1)
	}
	return v, nil
}

func (b *bitReader) signed(n uint) (int64, error) {
	if n == 0 {
		return 0, nil
	}
	v, err := b.bits(n)
	if err != nil {
		return 0, err
	}
	if v&(1<<(n-1)) != 0 {
		return int64(v) - int64(1)<<n, nil
	}
	return int64(v), nil
}
