package ned

import (
	"fmt"
	"math"

	"github.com/golang/geo/s2"
	"github.com/tzneal/geodesy/datum"
	"github.com/tzneal/geodesy/vector3d"
)

// Nvector is the unit normal to a datum's ellipsoid at a position,
// together with the height above the ellipsoid.
type Nvector struct {
	vector3d.Vector3d
	height float64
	datum  datum.Datum
}

// NewNvector returns the n-vector in the direction (x, y, z) at height on d.
func NewNvector(x, y, z, height float64, d datum.Datum) Nvector {
	return Nvector{Vector3d: vector3d.New(x, y, z).Unit(), height: height, datum: d}
}

// Height is the height above the ellipsoid in metres.
func (n Nvector) Height() float64 { return n.height }

// Datum is the datum n is expressed on.
func (n Nvector) Datum() datum.Datum { return n.datum }

// ToLatLon returns the geodetic position of n.
func (n Nvector) ToLatLon() LatLon {
	ll := s2.LatLngFromPoint(s2.Point{Vector: n.Vector()})
	return New(ll.Lat.Degrees(), ll.Lng.Degrees(), n.height, n.datum)
}

// ToCartesian returns the earth-centred earth-fixed position of n.
func (n Nvector) ToCartesian() datum.Cartesian {
	b, f := n.datum.Ellipsoid.B, n.datum.Ellipsoid.F
	x, y, z, h := n.X, n.Y, n.Z, n.height

	m := (1 - f) * (1 - f) // b²/a²
	k := b / math.Sqrt(x*x/m+y*y/m+z*z)

	return datum.NewCartesian(k*x/m+x*h, k*y/m+y*h, k*z+z*h, n.datum)
}

// FromCartesian returns the n-vector of c by Gade's closed-form
// (non-iterative) solution.
func FromCartesian(c datum.Cartesian) Nvector {
	x, y, z := c.X, c.Y, c.Z
	a, f := c.Datum().Ellipsoid.A, c.Datum().Ellipsoid.F

	e2 := 2*f - f*f
	e4 := e2 * e2

	p := (x*x + y*y) / (a * a)
	q := z * z * (1 - e2) / (a * a)
	r := (p + q - e4) / 6
	s := (e4 * p * q) / (4 * r * r * r)
	t := math.Cbrt(1 + s + math.Sqrt(2*s+s*s))
	u := r * (1 + t + 1/t)
	v := math.Sqrt(u*u + e4*q)
	w := e2 * (u + v - q) / (2 * v)
	k := math.Sqrt(u+v+w*w) - w
	d := k * math.Sqrt(x*x+y*y) / (k + e2)

	tmp := 1 / math.Sqrt(d*d+z*z)
	return Nvector{
		Vector3d: vector3d.New(tmp*k/(k+e2)*x, tmp*k/(k+e2)*y, tmp*z),
		height:   (k + e2 - 1) / k * math.Sqrt(d*d+z*z),
		datum:    c.Datum(),
	}
}

// String renders n as "[x,y,z]" to three decimal places, followed by the
// height.
func (n Nvector) String() string {
	return fmt.Sprintf("[%.3f,%.3f,%.3f,%.3fm]", n.X, n.Y, n.Z, n.height)
}
