package marionette

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Transform is the decomposed form of a node's local transform: translation,
// rotation, scale. It serves both as interpolation state during sampling and
// as an accumulation entry in a mixer's blend buffer.
type Transform struct {
	Translation mgl32.Vec3
	Rotation    mgl32.Quat
	Scale       mgl32.Vec3
}

// identityTransform is the rest value a pooled Transform is reset to.
var identityTransform = Transform{
	Rotation: mgl32.QuatIdent(),
	Scale:    mgl32.Vec3{1, 1, 1},
}

// SetIdentity resets the transform to zero translation, identity rotation,
// and unit scale.
func (t *Transform) SetIdentity() {
	*t = identityTransform
}

// Set copies all three components from other.
func (t *Transform) Set(other Transform) {
	*t = other
}

// SetTRS sets the three components individually.
func (t *Transform) SetTRS(translation mgl32.Vec3, rotation mgl32.Quat, scale mgl32.Vec3) {
	t.Translation = translation
	t.Rotation = rotation
	t.Scale = scale
}

// Lerp interpolates this transform toward target by alpha in place.
// Translation and scale interpolate componentwise; rotation takes the
// shortest arc.
func (t *Transform) Lerp(target Transform, alpha float32) {
	t.LerpTRS(target.Translation, target.Rotation, target.Scale, alpha)
}

// LerpTRS interpolates this transform toward the given components by alpha
// in place.
func (t *Transform) LerpTRS(translation mgl32.Vec3, rotation mgl32.Quat, scale mgl32.Vec3, alpha float32) {
	t.Translation = lerpVec3(t.Translation, translation, alpha)
	t.Rotation = slerp(t.Rotation, rotation, alpha)
	t.Scale = lerpVec3(t.Scale, scale, alpha)
}

// Mat4 composes the transform into a single local-transform matrix:
// translate * rotate * scale.
func (t *Transform) Mat4() mgl32.Mat4 {
	m := t.Rotation.Mat4()
	// Fold scale into the rotation columns and translation into the fourth,
	// avoiding two full 4x4 multiplies per node per frame.
	for row := 0; row < 3; row++ {
		m[row] *= t.Scale[0]
		m[4+row] *= t.Scale[1]
		m[8+row] *= t.Scale[2]
		m[12+row] = t.Translation[row]
	}
	return m
}

// lerpVec3 returns the componentwise interpolation from a toward b by alpha.
func lerpVec3(a, b mgl32.Vec3, alpha float32) mgl32.Vec3 {
	return mgl32.Vec3{
		a[0] + (b[0]-a[0])*alpha,
		a[1] + (b[1]-a[1])*alpha,
		a[2] + (b[2]-a[2])*alpha,
	}
}

// slerp returns the spherical interpolation from a toward b by alpha, always
// along the shorter arc. mgl32.QuatSlerp does not negate on opposite
// hemispheres, so the arc selection lives here.
func slerp(a, b mgl32.Quat, alpha float32) mgl32.Quat {
	dot := a.Dot(b)
	if dot < 0 {
		b = b.Scale(-1)
		dot = -dot
	}
	// Nearly parallel: sin(theta) underflows, fall back to a normalized lerp.
	if dot > 0.9995 {
		return a.Scale(1 - alpha).Add(b.Scale(alpha)).Normalize()
	}
	if dot > 1 {
		dot = 1
	}
	theta := float32(math.Acos(float64(dot)))
	sinTheta := float32(math.Sin(float64(theta)))
	wa := float32(math.Sin(float64((1-alpha)*theta))) / sinTheta
	wb := float32(math.Sin(float64(alpha*theta))) / sinTheta
	return a.Scale(wa).Add(b.Scale(wb))
}
