//go:build linux

package fbdev

import (
	"fmt"
	"os"
	"unsafe"

	"golang.org/x/sys/unix"

	"github.com/tinyrange/glcube/internal/logging"
)

// Device is a read-only mapping of a framebuffer device.
type Device struct {
	file *os.File
	mem  []byte
	fix  FixScreenInfo
	info VarScreenInfo
}

// Open maps the framebuffer at path read-only and logs its geometry.
func Open(path string) (*Device, error) {
	f, err := os.OpenFile(path, os.O_RDONLY, 0)
	if err != nil {
		return nil, fmt.Errorf("open framebuffer: %w", err)
	}

	d := &Device{file: f}
	if err := d.ioctl(FBIOGET_FSCREENINFO, unsafe.Pointer(&d.fix)); err != nil {
		f.Close()
		return nil, fmt.Errorf("FBIOGET_FSCREENINFO: %w", err)
	}
	if err := d.ioctl(FBIOGET_VSCREENINFO, unsafe.Pointer(&d.info)); err != nil {
		f.Close()
		return nil, fmt.Errorf("FBIOGET_VSCREENINFO: %w", err)
	}

	// The whole virtual screen so any pan offset stays in range.
	size := int(d.fix.LineLength) * int(d.info.YResVirtual)
	if d.fix.SmemLen != 0 && size > int(d.fix.SmemLen) {
		size = int(d.fix.SmemLen)
	}
	if size <= 0 {
		f.Close()
		return nil, fmt.Errorf("framebuffer %s reports no memory", path)
	}
	mem, err := unix.Mmap(int(f.Fd()), 0, size, unix.PROT_READ, unix.MAP_SHARED)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("mmap framebuffer: %w", err)
	}
	d.mem = mem

	v := &d.info
	logging.Logger().Info("framebuffer",
		"device", path,
		"id", d.fix.Name(),
		"visible", fmt.Sprintf("%dx%d", v.XRes, v.YRes),
		"virtual", fmt.Sprintf("%dx%d", v.XResVirtual, v.YResVirtual),
		"offset", fmt.Sprintf("%dx%d", v.XOffset, v.YOffset),
		"bpp", v.BitsPerPixel,
		"red", fmt.Sprintf("%d(%d)", v.Red.Offset, v.Red.Length),
		"green", fmt.Sprintf("%d(%d)", v.Green.Offset, v.Green.Length),
		"blue", fmt.Sprintf("%d(%d)", v.Blue.Offset, v.Blue.Length),
		"alpha", fmt.Sprintf("%d(%d)", v.Transp.Offset, v.Transp.Length),
		"lineLength", d.fix.LineLength,
	)
	return d, nil
}

func (d *Device) ioctl(req uintptr, arg unsafe.Pointer) error {
	_, _, errno := unix.Syscall(unix.SYS_IOCTL, d.file.Fd(), req, uintptr(arg))
	if errno != 0 {
		return errno
	}
	return nil
}

// Fixed returns the fixed screen info read at open.
func (d *Device) Fixed() FixScreenInfo { return d.fix }

// VarScreenInfo re-reads the variable screen info so the current pan offset
// is picked up. On failure the last known info is returned with the error.
func (d *Device) VarScreenInfo() (VarScreenInfo, error) {
	var v VarScreenInfo
	if err := d.ioctl(FBIOGET_VSCREENINFO, unsafe.Pointer(&v)); err != nil {
		return d.info, fmt.Errorf("FBIOGET_VSCREENINFO: %w", err)
	}
	d.info = v
	return v, nil
}

// CopyVisible copies the currently displayed region into dst and returns the
// number of rows copied. A failed pan offset query is logged and the last
// known offset used.
func (d *Device) CopyVisible(dst []byte, dstStride int) int {
	v, err := d.VarScreenInfo()
	if err != nil {
		logging.Logger().Warn("reading framebuffer pan offset", "error", err)
	}
	return CopyVisible(dst, dstStride, d.mem, int(d.fix.LineLength), v)
}

func (d *Device) Close() error {
	if d.mem != nil {
		unix.Munmap(d.mem)
		d.mem = nil
	}
	return d.file.Close()
}
