package extimage

import (
	"errors"
	"fmt"

	"github.com/tinyrange/glcube/internal/egl"
	"github.com/tinyrange/glcube/internal/gl"
)

// Image is a CPU-writable buffer the GPU can import.
type Image interface {
	Layout() Layout
	// FD is the dma-buf file descriptor backing every plane.
	FD() int
	Bytes() []byte
	Lock() error
	Unlock() error
}

// Importer turns an image into a texture sampled on TextureExternalOES.
type Importer interface {
	Import(img Image) (uint32, error)
}

// EGLImporter imports dma-bufs through EGL_EXT_image_dma_buf_import.
type EGLImporter struct {
	EGL     egl.Binding
	GL      gl.OpenGL
	Display egl.Display
}

var planeAttribs = [3][3]int32{
	{egl.DmaBufPlane0FD, egl.DmaBufPlane0Offset, egl.DmaBufPlane0Pitch},
	{egl.DmaBufPlane1FD, egl.DmaBufPlane1Offset, egl.DmaBufPlane1Pitch},
	{egl.DmaBufPlane2FD, egl.DmaBufPlane2Offset, egl.DmaBufPlane2Pitch},
}

// ImageAttribs returns the eglCreateImageKHR attribute list describing img.
func ImageAttribs(img Image) ([]int32, error) {
	l := img.Layout()
	if len(l.Planes) == 0 || len(l.Planes) > len(planeAttribs) {
		return nil, fmt.Errorf("cannot import %d planes", len(l.Planes))
	}
	attribs := []int32{
		egl.Width, int32(l.Width),
		egl.Height, int32(l.Height),
		egl.LinuxDrmFourCC, int32(l.Format),
	}
	for i, p := range l.Planes {
		a := planeAttribs[i]
		attribs = append(attribs,
			a[0], int32(img.FD()),
			a[1], int32(p.Offset),
			a[2], int32(p.Pitch),
		)
	}
	return append(attribs, egl.None), nil
}

// Import creates an EGLImage over img, binds it as the storage of a new
// external texture and destroys the image. The texture keeps the buffer
// alive.
func (im *EGLImporter) Import(img Image) (uint32, error) {
	attribs, err := ImageAttribs(img)
	if err != nil {
		return 0, err
	}

	// dma-buf imports take no client buffer and no context.
	eimg := im.EGL.CreateImageKHR(im.Display, egl.NoContext, egl.LinuxDmaBuf, 0, attribs)
	if code := im.EGL.GetError(); code != egl.Success || eimg == egl.NoImage {
		if eimg != egl.NoImage {
			im.EGL.DestroyImageKHR(im.Display, eimg)
		}
		return 0, fmt.Errorf("eglCreateImageKHR(%s %dx%d): %s",
			img.Layout().Format, img.Layout().Width, img.Layout().Height, egl.ErrorString(code))
	}

	g := im.GL
	var tex uint32
	g.GenTextures(1, &tex)
	g.BindTexture(gl.TextureExternalOES, tex)
	g.TexParameteri(gl.TextureExternalOES, gl.TextureMinFilter, gl.Linear)
	g.TexParameteri(gl.TextureExternalOES, gl.TextureMagFilter, gl.Linear)
	g.TexParameteri(gl.TextureExternalOES, gl.TextureWrapS, gl.ClampToEdge)
	g.TexParameteri(gl.TextureExternalOES, gl.TextureWrapT, gl.ClampToEdge)
	bound := g.EGLImageTargetTexture2DOES(gl.TextureExternalOES, uintptr(eimg))
	glErr := g.GetError()

	if !im.EGL.DestroyImageKHR(im.Display, eimg) {
		im.EGL.GetError()
	}

	if !bound {
		g.DeleteTextures(1, &tex)
		return 0, errors.New("glEGLImageTargetTexture2DOES is not available")
	}
	if glErr != gl.NoError {
		g.DeleteTextures(1, &tex)
		return 0, errors.New("glEGLImageTargetTexture2DOES: " + gl.ErrorString(glErr))
	}
	return tex, nil
}
