// Package spherical computes distances, bearings and related quantities on
// a spherical earth model, along great circles and along rhumb lines. The
// formulae trade the ellipsoidal accuracy of package vincenty (about 0.3%
// error) for simplicity and speed.
package spherical

import (
	"math"

	"github.com/golang/geo/s1"
	"github.com/golang/geo/s2"
	"github.com/tzneal/geodesy/dms"
	"github.com/tzneal/geodesy/literal"
)

// LatLon is a position on the sphere in degrees, latitude kept in
// −90..+90 and longitude in −180..+180.
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

// WithLat returns p with its latitude replaced.
func (p LatLon) WithLat(lat float64) LatLon { return New(lat, p.lon) }

// WithLon returns p with its longitude replaced.
func (p LatLon) WithLon(lon float64) LatLon { return New(p.lat, lon) }

// LatLng returns p as an s2.LatLng.
func (p LatLon) LatLng() s2.LatLng {
	return s2.LatLng{Lat: s1.Angle(p.lat) * s1.Degree, Lng: s1.Angle(p.lon) * s1.Degree}
}

// Equals reports whether p and o are the same point to within machine
// precision.
func (p LatLon) Equals(o LatLon) bool {
	return math.Abs(p.lat-o.lat) <= epsilon && math.Abs(p.lon-o.lon) <= epsilon
}

// GeoJSON returns p as a GeoJSON Point.
func (p LatLon) GeoJSON() literal.GeoJSON {
	return literal.NewGeoJSON(p.lat, p.lon, 0)
}

// FormatString renders p as "lat, lon" in the given format with dp decimal
// places, or the format's default for dms.DefaultPrecision.
func (p LatLon) FormatString(format dms.Format, dp int) (string, error) {
	return dms.Default().LatLon(p.lat, p.lon, format, dp)
}

func (p LatLon) String() string {
	s, _ := p.FormatString(dms.FormatD, dms.DefaultPrecision)
	return s
}

const epsilon = 2.220446049250313e-16

func (p LatLon) φ() float64 { return p.lat * math.Pi / 180 }
func (p LatLon) λ() float64 { return p.lon * math.Pi / 180 }

func toDegrees(r float64) float64 { return r * 180 / math.Pi }
func toRadians(d float64) float64 { return d * math.Pi / 180 }
