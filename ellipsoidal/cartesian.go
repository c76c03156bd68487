package ellipsoidal

import (
	"math"

	"github.com/tzneal/geodesy/vector3d"
)

// Cartesian is an earth-centred earth-fixed position in metres: x towards
// 0°N 0°E, y towards 0°N 90°E and z towards the north pole.
type Cartesian struct {
	vector3d.Vector3d
}

// NewCartesian returns the position (x, y, z).
func NewCartesian(x, y, z float64) Cartesian {
	return Cartesian{vector3d.New(x, y, z)}
}

// ToLatLon converts c to geodetic coordinates on e using Bowring's
// closed form, accurate to about 1µm on the Earth ellipsoid.
func (c Cartesian) ToLatLon(e Ellipsoid) LatLon {
	x, y, z := c.X, c.Y, c.Z
	a, b := e.A, e.B

	e2 := e.E2()
	ε2 := e2 / (1 - e2)
	p := math.Sqrt(x*x + y*y)
	R := math.Sqrt(p*p + z*z)

	// parametric latitude
	tanβ := (b * z) / (a * p) * (1 + ε2*b/R)
	sinβ := tanβ / math.Sqrt(1+tanβ*tanβ)
	cosβ := sinβ / tanβ

	// geodetic latitude; on the polar axis the parametric form degenerates to NaN
	var φ float64
	if !math.IsNaN(cosβ) {
		φ = math.Atan2(z+ε2*b*sinβ*sinβ*sinβ, p-e2*a*cosβ*cosβ*cosβ)
	}
	λ := math.Atan2(y, x)

	sinφ, cosφ := math.Sincos(φ)
	ν := a / math.Sqrt(1-e2*sinφ*sinφ)
	h := p*cosφ + z*sinφ - (a * a / ν)

	return New(φ*180/math.Pi, λ*180/math.Pi, h)
}
