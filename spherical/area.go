package spherical

import "math"

// Area returns the area of the polygon with the given vertices, which are
// joined by great circles. The polygon may be given closed (first vertex
// repeated) or open. The result is in the square of Radius units.
//
// The area is the sum of the spherical excesses of the trapezia each edge
// forms with the equator, following Karney, and is correct for polygons
// enclosing a pole.
func (s Sphere) Area(polygon []LatLon) float64 {
	if len(polygon) == 0 {
		return 0
	}
	if !polygon[0].Equals(polygon[len(polygon)-1]) {
		polygon = append(append([]LatLon(nil), polygon...), polygon[0])
	}
	if len(polygon) < 4 {
		return 0
	}

	S := 0.0
	for v := 0; v < len(polygon)-1; v++ {
		φ1, φ2 := polygon[v].φ(), polygon[v+1].φ()
		Δλ := polygon[v+1].λ() - polygon[v].λ()
		E := 2 * math.Atan(math.Tan(Δλ/2)*(math.Tan(φ1/2)+math.Tan(φ2/2))/(1+math.Tan(φ1/2)*math.Tan(φ2/2)))
		S += E
	}

	if isPoleEnclosedBy(polygon) {
		S = math.Abs(S) - 2*math.Pi
	}

	return math.Abs(S * s.Radius * s.Radius)
}

// AreaOf is Earth.Area in square metres.
func AreaOf(polygon []LatLon) float64 { return Earth.Area(polygon) }

// isPoleEnclosedBy sums the course changes around a closed polygon: they
// total ±360° for an ordinary polygon but about 0° for one round a pole.
func isPoleEnclosedBy(polygon []LatLon) bool {
	turn := func(from, to float64) float64 {
		return math.Mod(to-from+540, 360) - 180
	}

	ΣΔ := 0.0
	prev := polygon[0].InitialBearingTo(polygon[1])
	for v := 0; v < len(polygon)-1; v++ {
		initial := polygon[v].InitialBearingTo(polygon[v+1])
		final := polygon[v].FinalBearingTo(polygon[v+1])
		ΣΔ += turn(prev, initial)
		ΣΔ += turn(initial, final)
		prev = final
	}
	initial := polygon[0].InitialBearingTo(polygon[1])
	ΣΔ += turn(prev, initial)

	return math.Abs(ΣΔ) < 90
}
