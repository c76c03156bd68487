// Package ned works with positions on an ellipsoid through n-vectors and
// local north-east-down (NED) frames: the delta from one point to another as
// seen by an observer at the first, and the point reached by applying such a
// delta.
package ned

import (
	"fmt"
	"math"

	"github.com/tzneal/geodesy/datum"
	"github.com/tzneal/geodesy/dms"
	"github.com/tzneal/geodesy/vector3d"
)

// Delta is a vector in the local tangent plane of an observer: metres
// north, east and down.
type Delta struct {
	North, East, Down float64
}

// DeltaFromDistanceBearingElevation returns the delta of a target at the
// given slant distance in metres, bearing from north and elevation above
// the horizontal in degrees.
func DeltaFromDistanceBearingElevation(distance, bearing, elevation float64) Delta {
	θ := bearing * math.Pi / 180
	α := elevation * math.Pi / 180

	sinθ, cosθ := math.Sincos(θ)
	sinα, cosα := math.Sincos(α)

	return Delta{
		North: cosθ * cosα * distance,
		East:  sinθ * cosα * distance,
		Down:  -sinα * distance,
	}
}

// Length is the slant distance in metres.
func (d Delta) Length() float64 {
	return math.Sqrt(d.North*d.North + d.East*d.East + d.Down*d.Down)
}

// Bearing is the horizontal direction in degrees from north, 0..360.
func (d Delta) Bearing() float64 {
	return dms.Wrap360(math.Atan2(d.East, d.North) * 180 / math.Pi)
}

// Elevation is the angle in degrees above the horizontal.
func (d Delta) Elevation() float64 {
	return -math.Asin(d.Down/d.Length()) * 180 / math.Pi
}

// Format renders d as "[N:n,E:e,D:d]" with dp decimal places.
func (d Delta) Format(dp int) string {
	return fmt.Sprintf("[N:%.*f,E:%.*f,D:%.*f]", dp, d.North, dp, d.East, dp, d.Down)
}

func (d Delta) String() string { return d.Format(0) }

// frame returns the north, east and down unit vectors at the n-vector n.
func frame(n vector3d.Vector3d) (north, east, down vector3d.Vector3d) {
	down = n.Negate()
	east = vector3d.New(0, 0, 1).Cross(n).Unit()
	north = east.Cross(down)
	return north, east, down
}

// LatLon is a geodetic position on a datum, with the n-vector and NED
// operations.
type LatLon struct {
	datum.LatLon
}

// New returns the position (lat, lon, height) on d.
func New(lat, lon, height float64, d datum.Datum) LatLon {
	return LatLon{datum.New(lat, lon, height, d)}
}

// ToNvector returns the n-vector of p: the unit normal to the ellipsoid,
// with p's height and datum.
func (p LatLon) ToNvector() Nvector {
	φ := p.Lat() * math.Pi / 180
	λ := p.Lon() * math.Pi / 180
	sinφ, cosφ := math.Sincos(φ)
	sinλ, cosλ := math.Sincos(λ)
	return Nvector{
		Vector3d: vector3d.New(cosφ*cosλ, cosφ*sinλ, sinφ),
		height:   p.Height(),
		datum:    p.Datum(),
	}
}

// DeltaTo returns the NED delta from p to q as seen by an observer at p.
// q is first converted to p's datum if they differ.
func (p LatLon) DeltaTo(q LatLon) (Delta, error) {
	if q.Datum() != p.Datum() {
		c, err := q.LatLon.ConvertDatum(p.Datum())
		if err != nil {
			return Delta{}, err
		}
		q = LatLon{c}
	}
	c1 := p.ToCartesian()
	c2 := q.ToCartesian()
	δc := c2.Minus(c1.Vector3d)

	// rotate δc into the observer's frame; the rows are the frame's axes
	n, e, d := frame(p.ToNvector().Vector3d)
	return Delta{
		North: n.Dot(δc),
		East:  e.Dot(δc),
		Down:  d.Dot(δc),
	}, nil
}

// DestinationPoint returns the point reached by applying delta at p.
func (p LatLon) DestinationPoint(delta Delta) LatLon {
	n, e, d := frame(p.ToNvector().Vector3d)

	// the frame's axes are the columns of the rotation back to earth-fixed
	δc := n.Times(delta.North).Plus(e.Times(delta.East)).Plus(d.Times(delta.Down))

	start := p.ToCartesian()
	end := datum.NewCartesian(start.X+δc.X, start.Y+δc.Y, start.Z+δc.Z, p.Datum())
	return LatLon{end.ToLatLon()}
}
