// Package nvector solves great-circle problems on a spherical earth using
// n-vectors: unit vectors normal to the earth's surface. Vector algebra
// avoids the singularities of latitude and longitude at the poles and the
// antimeridian, and makes several problems (path intersections, polygon
// enclosure, nearest points) simpler than their trigonometric forms in
// package spherical.
//
// Distances take the sphere radius explicitly; spherical.EarthRadius is the
// usual choice.
package nvector

import (
	"math"

	"github.com/golang/geo/s1"
	"github.com/golang/geo/s2"
	"github.com/tzneal/geodesy/dms"
	"github.com/tzneal/geodesy/literal"
	"github.com/tzneal/geodesy/vector3d"
)

// northPole is the n-vector of the north pole.
var northPole = vector3d.New(0, 0, 1)

// Nvector is a unit vector normal to the surface of the sphere.
type Nvector struct {
	vector3d.Vector3d
}

// NewNvector returns the n-vector in the direction (x, y, z).
func NewNvector(x, y, z float64) Nvector {
	return Nvector{vector3d.New(x, y, z).Unit()}
}

// ToLatLon returns the point n represents.
func (n Nvector) ToLatLon() LatLon {
	return FromLatLng(s2.LatLngFromPoint(s2.Point{Vector: n.Vector()}))
}

// LatLon is a position on the sphere in degrees.
type LatLon struct {
	lat, lon float64
}

// New returns the point (lat, lon), wrapping both into range.
func New(lat, lon float64) LatLon {
	return LatLon{lat: dms.Wrap90(lat), lon: dms.Wrap180(lon)}
}

// FromLatLng returns the point at ll.
func FromLatLng(ll s2.LatLng) LatLon {
	return New(ll.Lat.Degrees(), ll.Lng.Degrees())
}

// Parse decodes a point literal. Any height is discarded.
func Parse(l literal.Literal) (LatLon, error) {
	c, err := literal.Decode(l)
	if err != nil {
		return LatLon{}, err
	}
	return New(c.Lat, c.Lon), nil
}

// Lat is the latitude in degrees.
func (p LatLon) Lat() float64 { return p.lat }

// Lon is the longitude in degrees.
func (p LatLon) Lon() float64 { return p.lon }

// LatLng returns p as an s2.LatLng.
func (p LatLon) LatLng() s2.LatLng {
	return s2.LatLng{Lat: s1.Angle(p.lat) * s1.Degree, Lng: s1.Angle(p.lon) * s1.Degree}
}

// ToNvector returns the n-vector of p.
func (p LatLon) ToNvector() Nvector {
	return Nvector{vector3d.Vector3d(s2.PointFromLatLng(p.LatLng()).Vector)}
}

func (p LatLon) v() vector3d.Vector3d { return p.ToNvector().Vector3d }

// Equals reports whether p and o are the same point to within machine
// precision.
func (p LatLon) Equals(o LatLon) bool {
	const eps = 2.220446049250313e-16
	return math.Abs(p.lat-o.lat) <= eps && math.Abs(p.lon-o.lon) <= eps
}

// GeoJSON returns p as a GeoJSON Point.
func (p LatLon) GeoJSON() literal.GeoJSON {
	return literal.NewGeoJSON(p.lat, p.lon, 0)
}

// FormatString renders p as "lat, lon" in the given format.
func (p LatLon) FormatString(format dms.Format, dp int) (string, error) {
	return dms.Default().LatLon(p.lat, p.lon, format, dp)
}

func (p LatLon) String() string {
	s, _ := p.FormatString(dms.FormatD, dms.DefaultPrecision)
	return s
}

func fromVector(v vector3d.Vector3d) LatLon {
	return Nvector{v}.ToLatLon()
}

func toRadians(d float64) float64 { return d * math.Pi / 180 }
func toDegrees(r float64) float64 { return r * 180 / math.Pi }
