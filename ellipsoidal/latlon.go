package ellipsoidal

import (
	"math"

	"github.com/golang/geo/s1"
	"github.com/golang/geo/s2"
	"github.com/tzneal/geodesy/dms"
	"github.com/tzneal/geodesy/literal"
)

// LatLon is a geodetic position: latitude and longitude in degrees and
// height above the ellipsoid in metres. Latitude is kept in −90..+90 and
// longitude in −180..+180; the ellipsoid is supplied by the caller or by
// the datum or reference frame of a wrapping type.
type LatLon struct {
	lat, lon, height float64
}

// New returns the point (lat, lon, height), wrapping lat and lon into
// range. Invalid values (NaN) are carried through; see IsValid.
func New(lat, lon, height float64) LatLon {
	return LatLon{lat: dms.Wrap90(lat), lon: dms.Wrap180(lon), height: height}
}

// FromLatLng returns the point at ll with the given height.
func FromLatLng(ll s2.LatLng, height float64) LatLon {
	return New(ll.Lat.Degrees(), ll.Lng.Degrees(), height)
}

// Parse decodes a point literal.
func Parse(l literal.Literal) (LatLon, error) {
	c, err := literal.Decode(l)
	if err != nil {
		return LatLon{}, err
	}
	return New(c.Lat, c.Lon, c.Height), nil
}

// Lat is the geodetic latitude in degrees.
func (p LatLon) Lat() float64 { return p.lat }

// Lon is the longitude in degrees.
func (p LatLon) Lon() float64 { return p.lon }

// Height is the height above the ellipsoid in metres.
func (p LatLon) Height() float64 { return p.height }

// WithLat returns p with its latitude replaced.
func (p LatLon) WithLat(lat float64) LatLon { return New(lat, p.lon, p.height) }

// WithLon returns p with its longitude replaced.
func (p LatLon) WithLon(lon float64) LatLon { return New(p.lat, lon, p.height) }

// WithHeight returns p with its height replaced.
func (p LatLon) WithHeight(height float64) LatLon { return New(p.lat, p.lon, height) }

// IsValid reports whether all three components are finite.
func (p LatLon) IsValid() bool {
	for _, v := range []float64{p.lat, p.lon, p.height} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// LatLng returns the horizontal position as an s2.LatLng.
func (p LatLon) LatLng() s2.LatLng {
	return s2.LatLng{Lat: s1.Angle(p.lat) * s1.Degree, Lng: s1.Angle(p.lon) * s1.Degree}
}

// Equals reports whether p and o are the same position to within machine
// precision.
func (p LatLon) Equals(o LatLon) bool {
	const eps = 2.220446049250313e-16
	return math.Abs(p.lat-o.lat) <= eps &&
		math.Abs(p.lon-o.lon) <= eps &&
		math.Abs(p.height-o.height) <= eps
}

// ToCartesian converts p to earth-centred earth-fixed coordinates on e.
func (p LatLon) ToCartesian(e Ellipsoid) Cartesian {
	φ := p.lat * math.Pi / 180
	λ := p.lon * math.Pi / 180
	h := p.height

	sinφ, cosφ := math.Sincos(φ)
	sinλ, cosλ := math.Sincos(λ)

	e2 := e.E2()
	ν := e.A / math.Sqrt(1-e2*sinφ*sinφ) // radius of curvature in prime vertical

	return NewCartesian(
		(ν+h)*cosφ*cosλ,
		(ν+h)*cosφ*sinλ,
		(ν*(1-e2)+h)*sinφ,
	)
}

// GeoJSON returns p as a GeoJSON Point.
func (p LatLon) GeoJSON() literal.GeoJSON {
	return literal.NewGeoJSON(p.lat, p.lon, p.height)
}

// FormatString renders p as "lat, lon" in the given format with dp decimal
// places (dms.DefaultPrecision for the format's default), followed by the
// height with dph decimal places if dph is not negative.
func (p LatLon) FormatString(format dms.Format, dp, dph int) (string, error) {
	s, err := dms.Default().LatLon(p.lat, p.lon, format, dp)
	if err != nil {
		return "", err
	}
	return s + dms.HeightSuffix(p.height, dph), nil
}

// String renders p in degrees to four decimal places.
func (p LatLon) String() string {
	s, _ := p.FormatString(dms.FormatD, dms.DefaultPrecision, -1)
	return s
}
