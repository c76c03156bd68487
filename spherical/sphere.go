package spherical

import (
	"math"

	"github.com/pkg/errors"
	"github.com/tzneal/geodesy"
)

// Sphere is a spherical earth model. Distances are returned in the units
// of Radius.
type Sphere struct {
	Radius float64
}

// EarthRadius is the mean radius of the earth in metres.
const EarthRadius = 6371e3

// Earth is the sphere used by the distance methods on LatLon.
var Earth = Sphere{Radius: EarthRadius}

// NewSphere returns a sphere with the given radius.
func NewSphere(radius float64) (Sphere, error) {
	if !(radius > 0) || math.IsInf(radius, 0) {
		return Sphere{}, errors.Wrapf(geodesy.ErrInvalidArgument, "Radius must be greater than zero, got %g", radius)
	}
	return Sphere{Radius: radius}, nil
}
