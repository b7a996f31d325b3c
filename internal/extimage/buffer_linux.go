//go:build linux

package extimage

import (
	"fmt"
	"os"
	"unsafe"

	"golang.org/x/sys/unix"
)

// UdmabufDevice exposes memfd pages as dma-bufs.
const UdmabufDevice = "/dev/udmabuf"

const (
	// _IOW('u', 0x42, struct udmabuf_create)
	udmabufCreate  = 0x40187542
	udmabufCloexec = 0x01

	// _IOW('b', 0, struct dma_buf_sync)
	dmaBufIoctlSync = 0x40086200
	dmaBufSyncWrite = 2 << 0
	dmaBufSyncStart = 0 << 2
	dmaBufSyncEnd   = 1 << 2
)

type udmabufCreateArgs struct {
	Memfd  uint32
	Flags  uint32
	Offset uint64
	Size   uint64
}

type dmaBufSync struct {
	Flags uint64
}

// Buffer is a dma-buf backed by anonymous memory, mapped for CPU writes and
// importable by EGL_EXT_image_dma_buf_import.
type Buffer struct {
	layout Layout
	fd     int
	mem    []byte
}

var _ Image = (*Buffer)(nil)

// NewBuffer allocates a dma-buf large enough for l.
func NewBuffer(l Layout) (*Buffer, error) {
	page := unix.Getpagesize()
	size := (l.Size + page - 1) / page * page
	if size == 0 {
		return nil, fmt.Errorf("empty %s layout", l.Format)
	}

	memfd, err := unix.MemfdCreate("glcube-"+l.Format.String(), unix.MFD_ALLOW_SEALING|unix.MFD_CLOEXEC)
	if err != nil {
		return nil, fmt.Errorf("memfd_create: %w", err)
	}
	defer unix.Close(memfd)

	if err := unix.Ftruncate(memfd, int64(size)); err != nil {
		return nil, fmt.Errorf("ftruncate memfd: %w", err)
	}
	// udmabuf refuses memfds that could shrink under it.
	if _, err := unix.FcntlInt(uintptr(memfd), unix.F_ADD_SEALS, unix.F_SEAL_SHRINK); err != nil {
		return nil, fmt.Errorf("seal memfd: %w", err)
	}

	dev, err := os.OpenFile(UdmabufDevice, os.O_RDWR, 0)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", UdmabufDevice, err)
	}
	defer dev.Close()

	args := udmabufCreateArgs{
		Memfd: uint32(memfd),
		Flags: udmabufCloexec,
		Size:  uint64(size),
	}
	r, _, errno := unix.Syscall(unix.SYS_IOCTL, dev.Fd(), udmabufCreate, uintptr(unsafe.Pointer(&args)))
	if errno != 0 {
		return nil, fmt.Errorf("UDMABUF_CREATE: %w", errno)
	}
	fd := int(r)

	mem, err := unix.Mmap(fd, 0, size, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_SHARED)
	if err != nil {
		unix.Close(fd)
		return nil, fmt.Errorf("mmap dma-buf: %w", err)
	}

	return &Buffer{layout: l, fd: fd, mem: mem}, nil
}

func (b *Buffer) Layout() Layout { return b.layout }
func (b *Buffer) FD() int        { return b.fd }

// Bytes returns the CPU mapping. Writes must happen between Lock and Unlock.
func (b *Buffer) Bytes() []byte { return b.mem }

// Lock starts a CPU write access.
func (b *Buffer) Lock() error {
	return b.sync(dmaBufSyncStart | dmaBufSyncWrite)
}

// Unlock ends the CPU write access and makes the contents visible to the GPU.
func (b *Buffer) Unlock() error {
	return b.sync(dmaBufSyncEnd | dmaBufSyncWrite)
}

func (b *Buffer) sync(flags uint64) error {
	arg := dmaBufSync{Flags: flags}
	_, _, errno := unix.Syscall(unix.SYS_IOCTL, uintptr(b.fd), dmaBufIoctlSync, uintptr(unsafe.Pointer(&arg)))
	if errno != 0 {
		return fmt.Errorf("DMA_BUF_IOCTL_SYNC(0x%x): %w", flags, errno)
	}
	return nil
}

func (b *Buffer) Close() error {
	if b.mem != nil {
		unix.Munmap(b.mem)
		b.mem = nil
	}
	if b.fd >= 0 {
		err := unix.Close(b.fd)
		b.fd = -1
		return err
	}
	return nil
}
