package extimage

import (
	"github.com/tinyrange/glcube/internal/logging"
)

// Source supplies the external texture sampled by the main pass.
type Source interface {
	// Refresh updates the image contents for the next frame.
	Refresh()
	// Texture is the external texture name, 0 until an import succeeded.
	Texture() uint32
}

// Screen is a framebuffer whose visible region can be copied out.
type Screen interface {
	CopyVisible(dst []byte, dstStride int) int
}

// CaptureSource mirrors a live framebuffer into an image every frame.
//
// The image is imported once, after the first successful copy; later
// refreshes only rewrite its contents. Every failure is logged and leaves the
// previous contents and texture in place.
type CaptureSource struct {
	img      Image
	screen   Screen
	importer Importer

	tex       uint32
	attempted bool
}

// NewCaptureSource captures screen into img. screen may be nil when the
// framebuffer could not be opened; the image is then imported unfilled.
func NewCaptureSource(img Image, screen Screen, importer Importer) *CaptureSource {
	return &CaptureSource{img: img, screen: screen, importer: importer}
}

func (s *CaptureSource) Refresh() {
	log := logging.Logger()

	if err := s.img.Lock(); err != nil {
		log.Warn("locking capture buffer", "error", err)
		return
	}
	if s.screen != nil {
		s.screen.CopyVisible(s.img.Bytes(), s.img.Layout().Planes[0].Pitch)
	}
	if err := s.img.Unlock(); err != nil {
		log.Warn("unlocking capture buffer", "error", err)
		return
	}

	if s.attempted {
		return
	}
	s.attempted = true
	tex, err := s.importer.Import(s.img)
	if err != nil {
		log.Warn("importing capture buffer", "error", err)
		return
	}
	s.tex = tex
}

func (s *CaptureSource) Texture() uint32 { return s.tex }

// PatternSource is a YV12 checkerboard written and imported once.
type PatternSource struct {
	tex uint32
}

// NewPatternSource fills img with the checkerboard and imports it. Failures
// are logged and leave the source without a texture.
func NewPatternSource(img Image, importer Importer) *PatternSource {
	log := logging.Logger()
	s := &PatternSource{}

	if err := img.Lock(); err != nil {
		log.Warn("locking pattern buffer", "error", err)
		return s
	}
	if err := FillCheckerboard(img.Bytes(), img.Layout()); err != nil {
		log.Warn("filling pattern buffer", "error", err)
	}
	if err := img.Unlock(); err != nil {
		log.Warn("unlocking pattern buffer", "error", err)
		return s
	}

	tex, err := importer.Import(img)
	if err != nil {
		log.Warn("importing pattern buffer", "error", err)
		return s
	}
	s.tex = tex
	return s
}

// Refresh does nothing; the pattern never changes.
func (s *PatternSource) Refresh() {}

func (s *PatternSource) Texture() uint32 { return s.tex }
