package vincenty

import (
	"math"

	"github.com/pkg/errors"
	"github.com/tzneal/geodesy"
	"github.com/tzneal/geodesy/ellipsoidal"
)

// Distance returns the geodesic distance in metres between p1 and p2.
func (s *Solver) Distance(p1, p2 ellipsoidal.LatLon) (float64, error) {
	r, err := s.Inverse(p1, p2)
	if err != nil {
		return math.NaN(), err
	}
	return r.Distance, nil
}

// InitialBearing returns the bearing in degrees at p1 of the geodesic to p2.
func (s *Solver) InitialBearing(p1, p2 ellipsoidal.LatLon) (float64, error) {
	r, err := s.Inverse(p1, p2)
	if err != nil {
		return math.NaN(), err
	}
	return r.InitialBearing, nil
}

// FinalBearing returns the bearing in degrees on arrival at p2 of the
// geodesic from p1.
func (s *Solver) FinalBearing(p1, p2 ellipsoidal.LatLon) (float64, error) {
	r, err := s.Inverse(p1, p2)
	if err != nil {
		return math.NaN(), err
	}
	return r.FinalBearing, nil
}

// DestinationPoint returns the point distance metres from p along the
// geodesic with the given initial bearing.
func (s *Solver) DestinationPoint(p ellipsoidal.LatLon, distance, bearing float64) (ellipsoidal.LatLon, error) {
	r, err := s.Direct(p, distance, bearing)
	if err != nil {
		return ellipsoidal.LatLon{}, err
	}
	return r.Point, nil
}

// FinalBearingOn returns the bearing on arrival after travelling distance
// metres from p with the given initial bearing.
func (s *Solver) FinalBearingOn(p ellipsoidal.LatLon, distance, bearing float64) (float64, error) {
	r, err := s.Direct(p, distance, bearing)
	if err != nil {
		return math.NaN(), err
	}
	return r.FinalBearing, nil
}

// IntermediatePoint returns the point at fraction of the geodesic from
// p1 to p2, where 0 is p1 and 1 is p2.
func (s *Solver) IntermediatePoint(p1, p2 ellipsoidal.LatLon, fraction float64) (ellipsoidal.LatLon, error) {
	if math.IsNaN(fraction) {
		return ellipsoidal.LatLon{}, errors.Wrap(geodesy.ErrInvalidArgument, "fraction is NaN")
	}
	switch fraction {
	case 0:
		return p1, nil
	case 1:
		return p2, nil
	}
	r, err := s.Inverse(p1, p2)
	if err != nil {
		return ellipsoidal.LatLon{}, err
	}
	if math.IsNaN(r.InitialBearing) {
		return p1, nil
	}
	return s.DestinationPoint(p1.WithHeight(0), r.Distance*fraction, r.InitialBearing)
}
