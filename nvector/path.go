package nvector

import (
	"math"

	"github.com/tzneal/geodesy/dms"
	"github.com/tzneal/geodesy/vector3d"
)

// PathEnd fixes a great-circle path leaving a known start: either a
// destination LatLon or an initial Bearing.
type PathEnd interface {
	greatCircle(start LatLon) vector3d.Vector3d
	isBearing() bool
}

// Bearing is an initial bearing in degrees.
type Bearing float64

func (b Bearing) greatCircle(start LatLon) vector3d.Vector3d { return start.GreatCircle(float64(b)) }
func (Bearing) isBearing() bool { return true }

func (p LatLon) greatCircle(start LatLon) vector3d.Vector3d { return start.v().Cross(p.v()) }
func (LatLon) isBearing() bool { return false }

// GreatCircle returns the normal of the great circle leaving p on bearing.
func (p LatLon) GreatCircle(bearing float64) vector3d.Vector3d {
	φ, λ := toRadians(p.lat), toRadians(p.lon)
	θ := toRadians(bearing)

	return vector3d.New(
		math.Sin(λ)*math.Cos(θ)-math.Sin(φ)*math.Cos(λ)*math.Sin(θ),
		-math.Cos(λ)*math.Cos(θ)-math.Sin(φ)*math.Sin(λ)*math.Sin(θ),
		math.Cos(φ)*math.Sin(θ),
	)
}

// AngularDistanceTo returns the angle in radians between p and q.
func (p LatLon) AngularDistanceTo(q LatLon) float64 {
	return p.v().AngleTo(q.v())
}

// DistanceTo returns the great-circle distance from p to q on a sphere of
// the given radius.
func (p LatLon) DistanceTo(q LatLon, radius float64) float64 {
	return p.AngularDistanceTo(q) * radius
}

// InitialBearingTo returns the bearing in degrees from p along the great
// circle to q, or NaN if they coincide.
func (p LatLon) InitialBearingTo(q LatLon) float64 {
	if p.Equals(q) {
		return math.NaN()
	}
	p1, p2 := p.v(), q.v()
	c1 := p1.Cross(p2)        // great circle p→q
	c2 := p1.Cross(northPole) // great circle p→north pole
	return dms.Wrap360(toDegrees(c1.SignedAngleTo(c2, p1)))
}

// FinalBearingTo returns the bearing in degrees on arrival at q along the
// great circle from p, or NaN if they coincide.
func (p LatLon) FinalBearingTo(q LatLon) float64 {
	return dms.Wrap360(q.InitialBearingTo(p) + 180)
}

// MidpointTo returns the point half way along the great circle from p to q.
func (p LatLon) MidpointTo(q LatLon) LatLon {
	return fromVector(p.v().Plus(q.v()))
}

// IntermediatePointTo returns the point at fraction of the great circle
// from p to q, where 0 is p and 1 is q.
func (p LatLon) IntermediatePointTo(q LatLon, fraction float64) LatLon {
	n1, n2 := p.v(), q.v()
	δ := n1.AngleTo(n2) * fraction

	// unit vector along the path at p
	d := n1.Cross(n2).Unit().Cross(n1)
	return fromVector(n1.Times(math.Cos(δ)).Plus(d.Times(math.Sin(δ))))
}

// IntermediatePointOnChordTo returns the point at fraction of the straight
// chord from p to q, projected onto the sphere. It is cheaper than
// IntermediatePointTo and not evenly spaced along the great circle.
func (p LatLon) IntermediatePointOnChordTo(q LatLon, fraction float64) LatLon {
	n1, n2 := p.v(), q.v()
	return fromVector(n1.Plus(n2.Minus(n1).Times(fraction)))
}

// direction returns the unit vector at n pointing along bearing θ.
func direction(n vector3d.Vector3d, θ float64) vector3d.Vector3d {
	de := northPole.Cross(n).Unit() // east
	dn := n.Cross(de)               // north
	return dn.Times(math.Cos(θ)).Plus(de.Times(math.Sin(θ)))
}

// DestinationPoint returns the point reached by travelling distance from p
// along the great circle with the given initial bearing, on a sphere of the
// given radius.
func (p LatLon) DestinationPoint(distance, bearing, radius float64) LatLon {
	n1 := p.v()
	δ := distance / radius
	d := direction(n1, toRadians(bearing))
	return fromVector(n1.Times(math.Cos(δ)).Plus(d.Times(math.Sin(δ))))
}

// Intersection returns the point where two paths meet. Each path is
// defined by its start and either an end point or an initial bearing. Of
// the two antipodal intersections of the great circles, the one ahead on
// the paths is returned. It reports false when the paths lie on the same
// great circle.
func Intersection(start1 LatLon, end1 PathEnd, start2 LatLon, end2 PathEnd) (LatLon, bool) {
	if start1.Equals(start2) {
		return start1, true
	}
	p1, p2 := start1.v(), start2.v()
	c1 := end1.greatCircle(start1)
	c2 := end2.greatCircle(start2)

	i1 := c1.Cross(c2)
	i2 := c2.Cross(c1)
	if i1.Length() < 1e-12 {
		return LatLon{}, false
	}

	// c×p points along the path
	ahead := func(c, p vector3d.Vector3d) float64 { return sign(c.Cross(p).Dot(i1)) }

	var i vector3d.Vector3d
	switch {
	case end1.isBearing() && end2.isBearing():
		switch ahead(c1, p1) + ahead(c2, p2) {
		case 2: // both ahead
			i = i1
		case -2: // both behind
			i = i2
		default: // reciprocal bearings
			if p1.Plus(p2).Dot(i1) > 0 {
				i = i2
			} else {
				i = i1
			}
		}
	case end1.isBearing():
		if ahead(c1, p1) > 0 {
			i = i1
		} else {
			i = i2
		}
	case end2.isBearing():
		if ahead(c2, p2) > 0 {
			i = i1
		} else {
			i = i2
		}
	default:
		// both segments: take the intersection nearer their mid-point
		mid := p1.Plus(p2).Plus(end1.(LatLon).v()).Plus(end2.(LatLon).v())
		if mid.Dot(i1) > 0 {
			i = i1
		} else {
			i = i2
		}
	}
	return fromVector(i), true
}

// CrossTrackDistanceTo returns the signed distance of p from the path
// leaving start towards end: negative to the left, positive to the right.
func (p LatLon) CrossTrackDistanceTo(start LatLon, end PathEnd, radius float64) float64 {
	gc := end.greatCircle(start)
	α := gc.AngleTo(p.v()) - math.Pi/2
	return α * radius
}

// AlongTrackDistanceTo returns how far from start, along the path towards
// end, the closest point to p lies. It is negative if that point is behind
// start.
func (p LatLon) AlongTrackDistanceTo(start LatLon, end PathEnd, radius float64) float64 {
	gc := end.greatCircle(start)
	at := gc.Cross(p.v()).Cross(gc) // along-track point c×p×c
	return start.v().SignedAngleTo(at, gc) * radius
}

// IsWithinExtent reports whether p lies between the perpendiculars through
// p1 and p2 to the segment between them. If it does, NearestPointOnSegment
// is its projection onto the segment.
func (p LatLon) IsWithinExtent(p1, p2 LatLon) bool {
	if p1.Equals(p2) {
		return p.Equals(p1)
	}
	n0, n1, n2 := p.v(), p1.v(), p2.v()

	extent1 := n0.Minus(n1).Dot(n2.Minus(n1))
	extent2 := n0.Minus(n2).Dot(n1.Minus(n2))
	sameHemisphere := n0.Dot(n1) >= 0 && n0.Dot(n2) >= 0

	return extent1 >= 0 && extent2 >= 0 && sameHemisphere
}

// NearestPointOnSegment returns the point on the great-circle segment from
// p1 to p2 closest to p: its projection if within extent, otherwise the
// nearer end point.
func (p LatLon) NearestPointOnSegment(p1, p2 LatLon) LatLon {
	if p.IsWithinExtent(p1, p2) && !p1.Equals(p2) {
		n0, n1, n2 := p.v(), p1.v(), p2.v()
		c1 := n1.Cross(n2) // segment's great circle
		c2 := n0.Cross(c1) // great circle through p perpendicular to it
		return fromVector(c1.Cross(c2))
	}
	if p.AngularDistanceTo(p1) < p.AngularDistanceTo(p2) {
		return p1
	}
	return p2
}

// Triangulate locates a point from the bearings to it observed at two known
// points. It reports false if the bearings define the same great circle.
func Triangulate(p1 LatLon, bearing1 float64, p2 LatLon, bearing2 float64) (LatLon, bool) {
	n1, n2 := p1.v(), p2.v()
	d1 := direction(n1, toRadians(bearing1))
	d2 := direction(n2, toRadians(bearing2))
	c1 := n1.Cross(d1)
	c2 := n2.Cross(d2)

	n := c1.Cross(c2)
	if n.Length() < 1e-12 {
		return LatLon{}, false
	}
	// the candidate in front of the first observer
	if d1.Dot(n) < 0 {
		n = n.Negate()
	}
	return fromVector(n), true
}

// Trilaterate locates a point from its distances to three known points, on
// a sphere of the given radius. The solution works in the plane of the
// three n-vectors and assumes the distances are small relative to the
// radius. It reports false when the known points are coincident or
// collinear.
func Trilaterate(p1 LatLon, distance1 float64, p2 LatLon, distance2 float64, p3 LatLon, distance3 float64, radius float64) (LatLon, bool) {
	n1, δ1 := p1.v(), distance1/radius
	n2, δ2 := p2.v(), distance2/radius
	n3, δ3 := p3.v(), distance3/radius

	eX := n2.Minus(n1).Unit()                    // unit vector in x direction n1→n2
	i := eX.Dot(n3.Minus(n1))                    // x component of n1→n3
	eY := n3.Minus(n1).Minus(eX.Times(i)).Unit() // unit vector in y direction
	d := n2.Minus(n1).Length()                   // distance n1→n2
	j := eY.Dot(n3.Minus(n1))                    // y component of n1→n3

	x := (δ1*δ1 - δ2*δ2 + d*d) / (2 * d)
	y := (δ1*δ1-δ3*δ3+i*i+j*j)/(2*j) - x*i/j
	if math.IsNaN(x) || math.IsInf(x, 0) || math.IsNaN(y) || math.IsInf(y, 0) {
		return LatLon{}, false
	}

	return fromVector(n1.Plus(eX.Times(x)).Plus(eY.Times(y))), true
}

func sign(x float64) float64 {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	}
	return 0
}
