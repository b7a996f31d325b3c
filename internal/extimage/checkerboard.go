package extimage

import "fmt"

// Checkerboard intensities.
const (
	LightLevel = 191
	DarkLevel  = 63
)

// BlockSize is the checkerboard cell edge for an image dimension: a sixteenth
// of it, or a single pixel when the dimension is 16 or less.
func BlockSize(dim int) int {
	if dim > 16 {
		return dim / 16
	}
	return 1
}

// CheckerLevel is the intensity of pixel (x, y) for the given block sizes.
func CheckerLevel(x, y, blockW, blockH int) uint8 {
	if ((x/blockW)&1)^((y/blockH)&1) == 0 {
		return LightLevel
	}
	return DarkLevel
}

// FillCheckerboard writes a two-level checkerboard into every plane of a
// YV12 image. The chroma planes take the level of the full resolution pixel
// they cover, so the pattern has the same phase in all three planes.
func FillCheckerboard(buf []byte, l Layout) error {
	if l.Format != YV12 || len(l.Planes) != 3 {
		return fmt.Errorf("checkerboard needs a YV12 layout, got %s", l.Format)
	}
	if len(buf) < l.Size {
		return fmt.Errorf("buffer too small for layout: %d < %d", len(buf), l.Size)
	}

	bw, bh := BlockSize(l.Width), BlockSize(l.Height)

	luma := l.Planes[0]
	for y := 0; y < l.Height; y++ {
		row := buf[luma.Offset+y*luma.Pitch:]
		for x := 0; x < l.Width; x++ {
			row[x] = CheckerLevel(x, y, bw, bh)
		}
	}

	cw, ch := (l.Width+1)/2, (l.Height+1)/2
	for _, p := range l.Planes[1:] {
		for cy := 0; cy < ch; cy++ {
			row := buf[p.Offset+cy*p.Pitch:]
			for cx := 0; cx < cw; cx++ {
				row[cx] = CheckerLevel(2*cx, 2*cy, bw, bh)
			}
		}
	}
	return nil
}
