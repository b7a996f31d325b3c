// Package extimage produces CPU-written buffers that the GPU samples through
// an EGLImage bound to an external texture.
package extimage

import "fmt"

// Format is a DRM fourcc pixel format.
type Format uint32

const (
	// RGB565 is DRM_FORMAT_RGB565 ('RG16').
	RGB565 Format = 0x36314752
	// XRGB8888 is DRM_FORMAT_XRGB8888 ('XR24').
	XRGB8888 Format = 0x34325258
	// YV12 is DRM_FORMAT_YVU420 ('YV12'): a full resolution Y plane followed
	// by quarter resolution V then U planes.
	YV12 Format = 0x32315659
)

func (f Format) String() string {
	switch f {
	case RGB565:
		return "RGB565"
	case XRGB8888:
		return "XRGB8888"
	case YV12:
		return "YV12"
	}
	return fmt.Sprintf("fourcc(%c%c%c%c)", byte(f), byte(f>>8), byte(f>>16), byte(f>>24))
}

// ForDepth picks the packed RGB format matching a framebuffer depth.
func ForDepth(bitsPerPixel int) (Format, error) {
	switch bitsPerPixel {
	case 16:
		return RGB565, nil
	case 32:
		return XRGB8888, nil
	}
	return 0, fmt.Errorf("no packed format for %d bits per pixel", bitsPerPixel)
}

// Plane is one plane of a buffer.
type Plane struct {
	Offset int
	Pitch  int
}

// Layout describes where each plane of a width x height image lives.
type Layout struct {
	Format Format
	Width  int
	Height int
	Planes []Plane
	Size   int
}

// NewLayout returns the layout of a w x h image in format f.
func NewLayout(f Format, w, h int) (Layout, error) {
	if w <= 0 || h <= 0 {
		return Layout{}, fmt.Errorf("invalid image size: %dx%d", w, h)
	}
	switch f {
	case RGB565:
		return packedLayout(f, w, h, 2), nil
	case XRGB8888:
		return packedLayout(f, w, h, 4), nil
	case YV12:
		return YV12Layout(w, h), nil
	}
	return Layout{}, fmt.Errorf("unsupported format %s", f)
}

func packedLayout(f Format, w, h, bpp int) Layout {
	pitch := w * bpp
	return Layout{
		Format: f,
		Width:  w,
		Height: h,
		Planes: []Plane{{Offset: 0, Pitch: pitch}},
		Size:   pitch * h,
	}
}

// YV12Layout lays out a w x h YV12 image: the luma stride is w rounded up to
// 16, the chroma stride is half the luma stride rounded up to 16, V follows
// the luma plane and U follows V. Each chroma plane has h/2 rows, rounded up
// so odd heights keep their last row.
func YV12Layout(w, h int) Layout {
	yStride := align16(w)
	cStride := align16(yStride / 2)
	cRows := (h + 1) / 2
	vOffset := yStride * h
	uOffset := vOffset + cStride*cRows
	return Layout{
		Format: YV12,
		Width:  w,
		Height: h,
		Planes: []Plane{
			{Offset: 0, Pitch: yStride},
			{Offset: vOffset, Pitch: cStride},
			{Offset: uOffset, Pitch: cStride},
		},
		Size: uOffset + cStride*cRows,
	}
}

func align16(v int) int {
	return (v + 15) &^ 15
}
