// Package fbdev reads the Linux system framebuffer (/dev/fbN).
package fbdev

import "bytes"

// DefaultDevice is the primary framebuffer.
const DefaultDevice = "/dev/fb0"

// Linux framebuffer IOCTL commands
const (
	FBIOGET_VSCREENINFO = 0x4600
	FBIOGET_FSCREENINFO = 0x4602
)

// VarScreenInfo mirrors struct fb_var_screeninfo.
type VarScreenInfo struct {
	XRes         uint32
	YRes         uint32
	XResVirtual  uint32
	YResVirtual  uint32
	XOffset      uint32
	YOffset      uint32
	BitsPerPixel uint32
	Grayscale    uint32
	Red          Bitfield
	Green        Bitfield
	Blue         Bitfield
	Transp       Bitfield
	Nonstd       uint32
	Activate     uint32
	Height       uint32
	Width        uint32
	AccelFlags   uint32
	Pixclock     uint32
	LeftMargin   uint32
	RightMargin  uint32
	UpperMargin  uint32
	LowerMargin  uint32
	HSyncLen     uint32
	VSyncLen     uint32
	Sync         uint32
	Vmode        uint32
	Rotate       uint32
	Colorspace   uint32
	Reserved     [4]uint32
}

// Bitfield mirrors struct fb_bitfield.
type Bitfield struct {
	Offset uint32
	Length uint32
	Msb    uint32
}

// FixScreenInfo mirrors struct fb_fix_screeninfo.
type FixScreenInfo struct {
	ID           [16]byte
	SmemStart    uint64
	SmemLen      uint32
	Type         uint32
	TypeAux      uint32
	Visual       uint32
	XPanStep     uint16
	YPanStep     uint16
	YWrapStep    uint16
	_            uint16
	LineLength   uint32
	MmioStart    uint64
	MmioLen      uint32
	Accel        uint32
	Capabilities uint16
	Reserved     [2]uint16
}

// Name returns the driver identification string.
func (f *FixScreenInfo) Name() string {
	id := f.ID[:]
	if i := bytes.IndexByte(id, 0); i >= 0 {
		id = id[:i]
	}
	return string(id)
}

// BytesPerPixel rounds the pixel depth up to whole bytes.
func (v *VarScreenInfo) BytesPerPixel() int {
	return int(v.BitsPerPixel+7) / 8
}

// CopyVisible copies the visible region described by v out of the mapped
// framebuffer mem into dst, one row at a time. Rows are clipped to both
// buffers; the number of rows copied is returned.
func CopyVisible(dst []byte, dstStride int, mem []byte, lineLength int, v VarScreenInfo) int {
	if dstStride <= 0 || lineLength <= 0 {
		return 0
	}
	bpp := v.BytesPerPixel()
	rowBytes := min(int(v.XRes)*bpp, lineLength-int(v.XOffset)*bpp, dstStride)
	if rowBytes <= 0 {
		return 0
	}

	rows := min(int(v.YRes), len(dst)/dstStride)
	base := int(v.YOffset)*lineLength + int(v.XOffset)*bpp
	for y := 0; y < rows; y++ {
		src := base + y*lineLength
		if src+rowBytes > len(mem) {
			return y
		}
		copy(dst[y*dstStride:y*dstStride+rowBytes], mem[src:src+rowBytes])
	}
	return rows
}
