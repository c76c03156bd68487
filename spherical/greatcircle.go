package spherical

import (
	"math"

	"github.com/tzneal/geodesy/dms"
)

// AngularDistanceTo returns the great-circle angle in radians between p
// and q, by the haversine formula.
func (p LatLon) AngularDistanceTo(q LatLon) float64 {
	φ1, φ2 := p.φ(), q.φ()
	Δφ := φ2 - φ1
	Δλ := q.λ() - p.λ()

	a := math.Sin(Δφ/2)*math.Sin(Δφ/2) + math.Cos(φ1)*math.Cos(φ2)*math.Sin(Δλ/2)*math.Sin(Δλ/2)
	return 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
}

// Distance returns the great-circle distance between p and q.
func (s Sphere) Distance(p, q LatLon) float64 {
	return s.Radius * p.AngularDistanceTo(q)
}

// DistanceTo returns the great-circle distance in metres from p to q on
// the Earth sphere.
func (p LatLon) DistanceTo(q LatLon) float64 { return Earth.Distance(p, q) }

// InitialBearingTo returns the bearing in degrees from p along the great
// circle to q, or NaN if they coincide.
func (p LatLon) InitialBearingTo(q LatLon) float64 {
	if p.Equals(q) {
		return math.NaN()
	}
	φ1, φ2 := p.φ(), q.φ()
	Δλ := q.λ() - p.λ()

	x := math.Cos(φ1)*math.Sin(φ2) - math.Sin(φ1)*math.Cos(φ2)*math.Cos(Δλ)
	y := math.Sin(Δλ) * math.Cos(φ2)
	return dms.Wrap360(toDegrees(math.Atan2(y, x)))
}

// FinalBearingTo returns the bearing in degrees on arrival at q along the
// great circle from p, or NaN if they coincide.
func (p LatLon) FinalBearingTo(q LatLon) float64 {
	return dms.Wrap360(q.InitialBearingTo(p) + 180)
}

// MidpointTo returns the point half way along the great circle from p to q.
func (p LatLon) MidpointTo(q LatLon) LatLon {
	φ1, λ1 := p.φ(), p.λ()
	φ2 := q.φ()
	Δλ := q.λ() - λ1

	// p and q as unit vectors with p on the prime meridian
	ax, az := math.Cos(φ1), math.Sin(φ1)
	bx, by, bz := math.Cos(φ2)*math.Cos(Δλ), math.Cos(φ2)*math.Sin(Δλ), math.Sin(φ2)
	cx, cy, cz := ax+bx, by, az+bz

	φm := math.Atan2(cz, math.Sqrt(cx*cx+cy*cy))
	λm := λ1 + math.Atan2(cy, cx)
	return New(toDegrees(φm), toDegrees(λm))
}

// IntermediatePointTo returns the point at fraction of the great circle
// from p to q, where 0 is p and 1 is q.
func (p LatLon) IntermediatePointTo(q LatLon, fraction float64) LatLon {
	if p.Equals(q) {
		return p
	}
	φ1, λ1 := p.φ(), p.λ()
	φ2, λ2 := q.φ(), q.λ()

	δ := p.AngularDistanceTo(q)
	A := math.Sin((1-fraction)*δ) / math.Sin(δ)
	B := math.Sin(fraction*δ) / math.Sin(δ)

	x := A*math.Cos(φ1)*math.Cos(λ1) + B*math.Cos(φ2)*math.Cos(λ2)
	y := A*math.Cos(φ1)*math.Sin(λ1) + B*math.Cos(φ2)*math.Sin(λ2)
	z := A*math.Sin(φ1) + B*math.Sin(φ2)

	return New(toDegrees(math.Atan2(z, math.Sqrt(x*x+y*y))), toDegrees(math.Atan2(y, x)))
}

// DestinationPoint returns the point reached by travelling distance from p
// along the great circle with the given initial bearing in degrees.
func (s Sphere) DestinationPoint(p LatLon, distance, bearing float64) LatLon {
	φ1, λ1 := p.φ(), p.λ()
	δ := distance / s.Radius
	θ := toRadians(bearing)

	sinφ2 := math.Sin(φ1)*math.Cos(δ) + math.Cos(φ1)*math.Sin(δ)*math.Cos(θ)
	φ2 := math.Asin(sinφ2)
	y := math.Sin(θ) * math.Sin(δ) * math.Cos(φ1)
	x := math.Cos(δ) - math.Sin(φ1)*sinφ2
	λ2 := λ1 + math.Atan2(y, x)

	return New(toDegrees(φ2), toDegrees(λ2))
}

// DestinationPoint is Earth.DestinationPoint with distance in metres.
func (p LatLon) DestinationPoint(distance, bearing float64) LatLon {
	return Earth.DestinationPoint(p, distance, bearing)
}

// Intersection returns the point where the great circle leaving p1 on
// bearing1 meets the one leaving p2 on bearing2. It reports false when the
// paths coincide or when their intersection is ambiguous.
func Intersection(p1 LatLon, bearing1 float64, p2 LatLon, bearing2 float64) (LatLon, bool) {
	if p1.Equals(p2) {
		return p1, true
	}
	φ1, λ1 := p1.φ(), p1.λ()
	φ2, λ2 := p2.φ(), p2.λ()
	θ13, θ23 := toRadians(bearing1), toRadians(bearing2)

	δ12 := p1.AngularDistanceTo(p2)
	if math.Abs(δ12) < epsilon {
		return p1, true
	}

	// initial and final bearings between p1 and p2
	cosθa := (math.Sin(φ2) - math.Sin(φ1)*math.Cos(δ12)) / (math.Sin(δ12) * math.Cos(φ1))
	cosθb := (math.Sin(φ1) - math.Sin(φ2)*math.Cos(δ12)) / (math.Sin(δ12) * math.Cos(φ2))
	θa := math.Acos(clamp(cosθa))
	θb := math.Acos(clamp(cosθb))

	θ12, θ21 := 2*math.Pi-θa, θb
	if math.Sin(λ2-λ1) > 0 {
		θ12, θ21 = θa, 2*math.Pi-θb
	}

	α1 := θ13 - θ12 // angle p2-p1-p3
	α2 := θ21 - θ23 // angle p1-p2-p3

	if math.Sin(α1) == 0 && math.Sin(α2) == 0 {
		return LatLon{}, false // infinite intersections
	}
	if math.Sin(α1)*math.Sin(α2) < 0 {
		return LatLon{}, false // ambiguous intersection
	}

	cosα3 := -math.Cos(α1)*math.Cos(α2) + math.Sin(α1)*math.Sin(α2)*math.Cos(δ12)
	δ13 := math.Atan2(math.Sin(δ12)*math.Sin(α1)*math.Sin(α2), math.Cos(α2)+math.Cos(α1)*cosα3)

	φ3 := math.Asin(clamp(math.Sin(φ1)*math.Cos(δ13) + math.Cos(φ1)*math.Sin(δ13)*math.Cos(θ13)))
	Δλ13 := math.Atan2(math.Sin(θ13)*math.Sin(δ13)*math.Cos(φ1), math.Cos(δ13)-math.Sin(φ1)*math.Sin(φ3))
	λ3 := λ1 + Δλ13

	return New(toDegrees(φ3), toDegrees(λ3)), true
}

// CrossTrackDistance returns the signed distance of p from the great
// circle through start and end: negative to the left of the path,
// positive to the right.
func (s Sphere) CrossTrackDistance(p, start, end LatLon) float64 {
	if p.Equals(start) {
		return 0
	}
	δ13 := start.AngularDistanceTo(p)
	θ13 := toRadians(start.InitialBearingTo(p))
	θ12 := toRadians(start.InitialBearingTo(end))

	δxt := math.Asin(math.Sin(δ13) * math.Sin(θ13-θ12))
	return δxt * s.Radius
}

// CrossTrackDistanceTo is Earth.CrossTrackDistance in metres.
func (p LatLon) CrossTrackDistanceTo(start, end LatLon) float64 {
	return Earth.CrossTrackDistance(p, start, end)
}

// AlongTrackDistance returns how far from start, along the great circle to
// end, the closest point to p lies. It is negative if that point is behind
// start.
func (s Sphere) AlongTrackDistance(p, start, end LatLon) float64 {
	if p.Equals(start) {
		return 0
	}
	δ13 := start.AngularDistanceTo(p)
	θ13 := toRadians(start.InitialBearingTo(p))
	θ12 := toRadians(start.InitialBearingTo(end))

	δxt := math.Asin(math.Sin(δ13) * math.Sin(θ13-θ12))
	δat := math.Acos(clamp(math.Cos(δ13) / math.Abs(math.Cos(δxt))))

	return δat * sign(math.Cos(θ12-θ13)) * s.Radius
}

// AlongTrackDistanceTo is Earth.AlongTrackDistance in metres.
func (p LatLon) AlongTrackDistanceTo(start, end LatLon) float64 {
	return Earth.AlongTrackDistance(p, start, end)
}

// MaxLatitude returns the most northerly latitude reached by the great
// circle leaving p on bearing, by Clairaut's formula. The most southerly
// is its negation.
func (p LatLon) MaxLatitude(bearing float64) float64 {
	θ := toRadians(bearing)
	return toDegrees(math.Acos(math.Abs(math.Sin(θ) * math.Cos(p.φ()))))
}

// CrossingParallels returns the two longitudes at which the great circle
// through p1 and p2 crosses the parallel at lat. It reports false if the
// great circle does not reach lat or the points coincide.
func CrossingParallels(p1, p2 LatLon, lat float64) (lon1, lon2 float64, ok bool) {
	if p1.Equals(p2) {
		return 0, 0, false
	}
	φ := toRadians(lat)
	φ1, λ1 := p1.φ(), p1.λ()
	φ2 := p2.φ()
	Δλ := p2.λ() - λ1

	x := math.Sin(φ1) * math.Cos(φ2) * math.Cos(φ) * math.Sin(Δλ)
	y := math.Sin(φ1)*math.Cos(φ2)*math.Cos(φ)*math.Cos(Δλ) - math.Cos(φ1)*math.Sin(φ2)*math.Cos(φ)
	z := math.Cos(φ1) * math.Cos(φ2) * math.Sin(φ) * math.Sin(Δλ)

	if z*z > x*x+y*y {
		return 0, 0, false
	}

	λm := math.Atan2(-y, x)                  // longitude at max latitude
	Δλi := math.Acos(z / math.Sqrt(x*x+y*y)) // Δλ from λm to intersection points

	return dms.Wrap180(toDegrees(λ1 + λm - Δλi)), dms.Wrap180(toDegrees(λ1 + λm + Δλi)), true
}

func clamp(x float64) float64 { return math.Max(-1, math.Min(1, x)) }

func sign(x float64) float64 {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	}
	return 0
}
