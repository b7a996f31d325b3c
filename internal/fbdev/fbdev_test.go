package fbdev

import (
	"os"
	"testing"
	"unsafe"
)

func TestScreenInfoLayout(t *testing.T) {
	// Sizes from linux/fb.h on 64-bit targets.
	if got := unsafe.Sizeof(VarScreenInfo{}); got != 160 {
		t.Fatalf("sizeof(fb_var_screeninfo) = %d, want 160", got)
	}
	if got := unsafe.Sizeof(FixScreenInfo{}); got != 80 {
		t.Fatalf("sizeof(fb_fix_screeninfo) = %d, want 80", got)
	}
}

// fakeScreen fills a virtual screen where every byte encodes its row.
func fakeScreen(lineLength, rows int) []byte {
	mem := make([]byte, lineLength*rows)
	for y := 0; y < rows; y++ {
		for x := 0; x < lineLength; x++ {
			mem[y*lineLength+x] = byte(y)
		}
	}
	return mem
}

func TestCopyVisible(t *testing.T) {
	tests := []struct {
		name       string
		info       VarScreenInfo
		lineLength int
		memRows    int
		dstStride  int
		dstRows    int
		wantRows   int
		wantFirst  byte
		wantBytes  int
	}{
		{
			name:       "unpanned",
			info:       VarScreenInfo{XRes: 4, YRes: 3, BitsPerPixel: 16},
			lineLength: 8,
			memRows:    6,
			dstStride:  8,
			dstRows:    3,
			wantRows:   3,
			wantFirst:  0,
			wantBytes:  8,
		},
		{
			name:       "panned to second page",
			info:       VarScreenInfo{XRes: 4, YRes: 3, YOffset: 3, BitsPerPixel: 16},
			lineLength: 8,
			memRows:    6,
			dstStride:  8,
			dstRows:    3,
			wantRows:   3,
			wantFirst:  3,
			wantBytes:  8,
		},
		{
			name:       "destination smaller than screen",
			info:       VarScreenInfo{XRes: 8, YRes: 6, BitsPerPixel: 16},
			lineLength: 16,
			memRows:    6,
			dstStride:  6,
			dstRows:    2,
			wantRows:   2,
			wantFirst:  0,
			wantBytes:  6,
		},
		{
			name:       "padded source lines",
			info:       VarScreenInfo{XRes: 2, YRes: 2, BitsPerPixel: 32},
			lineLength: 16,
			memRows:    2,
			dstStride:  12,
			dstRows:    2,
			wantRows:   2,
			wantFirst:  0,
			wantBytes:  8,
		},
		{
			name:       "pan past mapped memory",
			info:       VarScreenInfo{XRes: 4, YRes: 3, YOffset: 5, BitsPerPixel: 16},
			lineLength: 8,
			memRows:    6,
			dstStride:  8,
			dstRows:    3,
			wantRows:   1,
			wantFirst:  5,
			wantBytes:  8,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mem := fakeScreen(tt.lineLength, tt.memRows)
			dst := make([]byte, tt.dstStride*tt.dstRows)
			for i := range dst {
				dst[i] = 0xEE
			}

			rows := CopyVisible(dst, tt.dstStride, mem, tt.lineLength, tt.info)
			if rows != tt.wantRows {
				t.Fatalf("rows = %d, want %d", rows, tt.wantRows)
			}
			for y := 0; y < rows; y++ {
				line := dst[y*tt.dstStride : (y+1)*tt.dstStride]
				for x, b := range line {
					switch {
					case x < tt.wantBytes && b != tt.wantFirst+byte(y):
						t.Fatalf("row %d byte %d = %d, want %d", y, x, b, tt.wantFirst+byte(y))
					case x >= tt.wantBytes && b != 0xEE:
						t.Fatalf("row %d byte %d written past the row", y, x)
					}
				}
			}
		})
	}
}

func TestCopyVisibleDegenerate(t *testing.T) {
	info := VarScreenInfo{XRes: 4, YRes: 4, BitsPerPixel: 16}
	if n := CopyVisible(make([]byte, 16), 0, make([]byte, 32), 8, info); n != 0 {
		t.Fatalf("zero stride copied %d rows", n)
	}
	if n := CopyVisible(make([]byte, 16), 8, make([]byte, 32), 0, info); n != 0 {
		t.Fatalf("zero line length copied %d rows", n)
	}
}

func TestFixName(t *testing.T) {
	var f FixScreenInfo
	copy(f.ID[:], "virtio_gpudrmfb")
	if f.Name() != "virtio_gpudrmfb" {
		t.Fatalf("Name() = %q", f.Name())
	}
}

func TestOpenDevice(t *testing.T) {
	if _, err := os.Stat(DefaultDevice); err != nil {
		t.Skipf("no framebuffer device: %v", err)
	}
	d, err := Open(DefaultDevice)
	if err != nil {
		t.Skipf("open %s: %v", DefaultDevice, err)
	}
	defer d.Close()

	v, err := d.VarScreenInfo()
	if err != nil {
		t.Fatalf("VarScreenInfo: %v", err)
	}
	fix := d.Fixed()
	t.Logf("framebuffer %s: %dx%d %dbpp", fix.Name(), v.XRes, v.YRes, v.BitsPerPixel)

	stride := int(v.XRes) * v.BytesPerPixel()
	dst := make([]byte, stride*int(v.YRes))
	if rows := d.CopyVisible(dst, stride); rows == 0 {
		t.Fatal("copied no rows from the framebuffer")
	}
}
