package nvector

import (
	"math"

	"github.com/tzneal/geodesy/vector3d"
)

// open drops a repeated closing vertex.
func open(polygon []LatLon) []LatLon {
	if n := len(polygon); n > 1 && polygon[0].Equals(polygon[n-1]) {
		return polygon[:n-1]
	}
	return polygon
}

// IsEnclosedBy reports whether p lies inside the polygon, which may be
// concave and may enclose a pole. The angles the edges subtend at p sum to
// ±2π for an enclosed point and to 0 otherwise.
func (p LatLon) IsEnclosedBy(polygon []LatLon) bool {
	polygon = open(polygon)
	if len(polygon) < 3 {
		return false
	}
	n0 := p.v()

	toVertex := make([]vector3d.Vector3d, len(polygon)+1)
	for i, q := range polygon {
		toVertex[i] = q.v().Minus(n0)
	}
	toVertex[len(polygon)] = toVertex[0]

	Σθ := 0.0
	for i := 0; i < len(polygon); i++ {
		Σθ += toVertex[i].SignedAngleTo(toVertex[i+1], n0)
	}
	return math.Abs(Σθ) > math.Pi
}

// AreaOf returns the area of the polygon on a sphere of the given radius,
// from the spherical excess of its interior angles (Girard's theorem). The
// polygon may be given closed or open.
func AreaOf(polygon []LatLon, radius float64) float64 {
	polygon = open(polygon)
	n := len(polygon)
	if n < 3 {
		return 0
	}

	// great-circle normals of the edges
	c := make([]vector3d.Vector3d, n+1)
	for v := 0; v < n; v++ {
		c[v] = polygon[v].v().Cross(polygon[(v+1)%n].v())
	}
	c[n] = c[0]

	// sum of exterior angles, signed by the winding
	n1 := polygon[0].v()
	Σα := 0.0
	for v := 0; v < n; v++ {
		Σα += c[v].SignedAngleTo(c[v+1], n1)
	}

	Σθ := float64(n)*math.Pi - math.Abs(Σα) // interior angles
	E := Σθ - float64(n-2)*math.Pi          // spherical excess in steradians

	return E * radius * radius
}

// CentreOf returns the centroid of the polygon's surface, weighting each
// edge's great-circle normal by its length.
func CentreOf(polygon []LatLon) LatLon {
	polygon = open(polygon)
	n := len(polygon)

	var centre vector3d.Vector3d
	for v := 0; v < n; v++ {
		a := polygon[v].v()
		b := polygon[(v+1)%n].v()
		m := a.Cross(b).Unit()
		θ := a.AngleTo(b)
		centre = centre.Plus(m.Times(θ / 2))
	}

	// a clockwise polygon yields the antipode
	if n > 0 && centre.Dot(polygon[0].v()) < 0 {
		centre = centre.Negate()
	}
	return fromVector(centre)
}

// MeanOf returns the geographic mean of the points: their n-vectors summed
// and normalised.
func MeanOf(points []LatLon) LatLon {
	var sum vector3d.Vector3d
	for _, p := range points {
		sum = sum.Plus(p.v())
	}
	return fromVector(sum.Unit())
}
