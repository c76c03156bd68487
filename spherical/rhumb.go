package spherical

import (
	"math"

	"github.com/tzneal/geodesy/dms"
)

// projected latitude difference on the Mercator projection
func stretch(φ1, φ2 float64) float64 {
	return math.Log(math.Tan(φ2/2+math.Pi/4) / math.Tan(φ1/2+math.Pi/4))
}

// take the shorter way round for |Δλ| > 180°
func foldLongitude(Δλ float64) float64 {
	if math.Abs(Δλ) > math.Pi {
		if Δλ > 0 {
			return -(2*math.Pi - Δλ)
		}
		return 2*math.Pi + Δλ
	}
	return Δλ
}

// RhumbDistance returns the distance along the rhumb line from p to q.
func (s Sphere) RhumbDistance(p, q LatLon) float64 {
	φ1, φ2 := p.φ(), q.φ()
	Δφ := φ2 - φ1
	Δλ := foldLongitude(math.Abs(q.λ() - p.λ()))

	Δψ := stretch(φ1, φ2)
	// E-W course becomes ill-conditioned with 0/0
	qq := math.Cos(φ1)
	if math.Abs(Δψ) > 10e-12 {
		qq = Δφ / Δψ
	}

	δ := math.Sqrt(Δφ*Δφ + qq*qq*Δλ*Δλ)
	return δ * s.Radius
}

// RhumbDistanceTo is Earth.RhumbDistance in metres.
func (p LatLon) RhumbDistanceTo(q LatLon) float64 { return Earth.RhumbDistance(p, q) }

// RhumbBearingTo returns the constant bearing in degrees of the rhumb line
// from p to q, or NaN if they coincide.
func (p LatLon) RhumbBearingTo(q LatLon) float64 {
	if p.Equals(q) {
		return math.NaN()
	}
	Δλ := foldLongitude(q.λ() - p.λ())
	Δψ := stretch(p.φ(), q.φ())
	return dms.Wrap360(toDegrees(math.Atan2(Δλ, Δψ)))
}

// RhumbDestinationPoint returns the point reached by travelling distance
// from p along the rhumb line on bearing.
func (s Sphere) RhumbDestinationPoint(p LatLon, distance, bearing float64) LatLon {
	φ1, λ1 := p.φ(), p.λ()
	θ := toRadians(bearing)
	δ := distance / s.Radius

	Δφ := δ * math.Cos(θ)
	φ2 := φ1 + Δφ
	// a course past the pole continues on the far side
	if math.Abs(φ2) > math.Pi/2 {
		if φ2 > 0 {
			φ2 = math.Pi - φ2
		} else {
			φ2 = -math.Pi - φ2
		}
	}

	Δψ := stretch(φ1, φ2)
	qq := math.Cos(φ1)
	if math.Abs(Δψ) > 10e-12 {
		qq = Δφ / Δψ
	}
	Δλ := δ * math.Sin(θ) / qq
	λ2 := λ1 + Δλ

	return New(toDegrees(φ2), toDegrees(λ2))
}

// RhumbDestinationPoint is Earth.RhumbDestinationPoint with distance in
// metres.
func (p LatLon) RhumbDestinationPoint(distance, bearing float64) LatLon {
	return Earth.RhumbDestinationPoint(p, distance, bearing)
}

// RhumbMidpointTo returns the point half way along the rhumb line from p
// to q.
func (p LatLon) RhumbMidpointTo(q LatLon) LatLon {
	φ1, λ1 := p.φ(), p.λ()
	φ2, λ2 := q.φ(), q.λ()

	if math.Abs(λ2-λ1) > math.Pi {
		λ1 += 2 * math.Pi // crossing anti-meridian
	}

	φ3 := (φ1 + φ2) / 2
	f1 := math.Tan(math.Pi/4 + φ1/2)
	f2 := math.Tan(math.Pi/4 + φ2/2)
	f3 := math.Tan(math.Pi/4 + φ3/2)
	λ3 := ((λ2-λ1)*math.Log(f3) + λ1*math.Log(f2) - λ2*math.Log(f1)) / math.Log(f2/f1)

	if math.IsNaN(λ3) || math.IsInf(λ3, 0) {
		λ3 = (λ1 + λ2) / 2 // parallel of latitude
	}

	return New(toDegrees(φ3), toDegrees(λ3))
}
