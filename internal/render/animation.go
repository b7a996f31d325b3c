package render

import "github.com/chewxy/math32"

// Increments are the per-frame rotation steps in degrees.
type Increments struct {
	X float32 `yaml:"x"`
	Y float32 `yaml:"y"`
	Z float32 `yaml:"z"`
}

// AnimationState holds the current rotation angles in degrees, each kept in
// [0, 360).
type AnimationState struct {
	X, Y, Z float32
}

// Advance adds inc to the angles and wraps each one back into [0, 360).
// Negative increments wrap through zero.
func (a *AnimationState) Advance(inc Increments) {
	a.X = wrapDegrees(a.X + inc.X)
	a.Y = wrapDegrees(a.Y + inc.Y)
	a.Z = wrapDegrees(a.Z + inc.Z)
}

func wrapDegrees(v float32) float32 {
	v = math32.Mod(v, 360)
	if v < 0 {
		v += 360
	}
	// -tiny + 360 rounds to 360 in float32.
	if v >= 360 {
		v -= 360
	}
	return v
}
