// Package vector3d provides the 3-d vector algebra used by the cartesian and
// n-vector packages.
package vector3d

import (
	"fmt"
	"math"

	"github.com/golang/geo/r3"
)

// Vector3d is a vector in a 3-d cartesian space. It shares its layout with
// r3.Vector and converts to it freely.
type Vector3d r3.Vector

// New returns the vector (x, y, z).
func New(x, y, z float64) Vector3d {
	return Vector3d{X: x, Y: y, Z: z}
}

func (v Vector3d) r3() r3.Vector { return r3.Vector(v) }

// Vector returns v as an r3.Vector.
func (v Vector3d) Vector() r3.Vector { return r3.Vector(v) }

// Length is the magnitude (norm) of the vector.
func (v Vector3d) Length() float64 { return v.r3().Norm() }

// Plus returns v + o.
func (v Vector3d) Plus(o Vector3d) Vector3d { return Vector3d(v.r3().Add(o.r3())) }

// Minus returns v − o.
func (v Vector3d) Minus(o Vector3d) Vector3d { return Vector3d(v.r3().Sub(o.r3())) }

// Times returns v scaled by s.
func (v Vector3d) Times(s float64) Vector3d { return Vector3d(v.r3().Mul(s)) }

// DividedBy returns v scaled by 1/s.
func (v Vector3d) DividedBy(s float64) Vector3d {
	return Vector3d{X: v.X / s, Y: v.Y / s, Z: v.Z / s}
}

// Dot is the scalar product v·o.
func (v Vector3d) Dot(o Vector3d) float64 { return v.r3().Dot(o.r3()) }

// Cross is the vector product v×o.
func (v Vector3d) Cross(o Vector3d) Vector3d { return Vector3d(v.r3().Cross(o.r3())) }

// Negate returns −v.
func (v Vector3d) Negate() Vector3d { return Vector3d{X: -v.X, Y: -v.Y, Z: -v.Z} }

// Unit returns v normalised to length 1. A zero vector, or one already of
// unit length, is returned unchanged.
func (v Vector3d) Unit() Vector3d {
	norm := v.Length()
	if norm == 1 || norm == 0 {
		return v
	}
	return v.DividedBy(norm)
}

// AngleTo returns the unsigned angle between v and o in radians, in the
// range 0..π.
func (v Vector3d) AngleTo(o Vector3d) float64 {
	return math.Atan2(v.Cross(o).Length(), v.Dot(o))
}

// SignedAngleTo returns the angle between v and o in radians, in the range
// −π..+π. The angle is positive when v×o points to the same side of the
// plane as the normal n.
func (v Vector3d) SignedAngleTo(o, n Vector3d) float64 {
	cross := v.Cross(o)
	sinθ := cross.Length()
	if cross.Dot(n) < 0 {
		sinθ = -sinθ
	}
	return math.Atan2(sinθ, v.Dot(o))
}

// RotateAround rotates v (normalised) by angle radians around axis.
func (v Vector3d) RotateAround(axis Vector3d, angle float64) Vector3d {
	p := v.Unit()
	a := axis.Unit()
	s, c := math.Sincos(angle)
	t := 1 - c
	x, y, z := a.X, a.Y, a.Z

	// axis-angle rotation matrix
	q := [3][3]float64{
		{t*x*x + c, t*x*y - s*z, t*x*z + s*y},
		{t*x*y + s*z, t*y*y + c, t*y*z - s*x},
		{t*x*z - s*y, t*y*z + s*x, t*z*z + c},
	}
	return Vector3d{
		X: q[0][0]*p.X + q[0][1]*p.Y + q[0][2]*p.Z,
		Y: q[1][0]*p.X + q[1][1]*p.Y + q[1][2]*p.Z,
		Z: q[2][0]*p.X + q[2][1]*p.Y + q[2][2]*p.Z,
	}
}

// String formats the vector as [x,y,z] with three decimal places.
func (v Vector3d) String() string {
	return fmt.Sprintf("[%.3f,%.3f,%.3f]", v.X, v.Y, v.Z)
}
