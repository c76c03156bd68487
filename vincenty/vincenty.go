// Package vincenty solves the direct and inverse geodesic problems on an
// ellipsoid with Vincenty's iterative formulae, accurate to within 0.5mm
// on the Earth ellipsoid.
package vincenty

import (
	"fmt"
	"math"

	"github.com/pkg/errors"
	"github.com/tzneal/geodesy"
	"github.com/tzneal/geodesy/dms"
	"github.com/tzneal/geodesy/ellipsoidal"
)

// Options tune the iteration of a Solver.
type Options struct {
	// MaxIterations caps the number of iterations of either solution.
	MaxIterations int
	// Tolerance is the change in λ (inverse) or σ (direct), in radians,
	// below which the iteration has converged.
	Tolerance float64
	// MaxStall is the number of consecutive iterations the residual may
	// fail to decrease before the iteration is abandoned. Zero disables
	// the check.
	MaxStall int
}

// DefaultOptions are used when New is given nil options.
var DefaultOptions = Options{
	MaxIterations: 200,
	Tolerance:     1e-12,
	MaxStall:      20,
}

// Solver solves geodesic problems on a single ellipsoid.
type Solver struct {
	e    ellipsoidal.Ellipsoid
	opts Options
}

// WGS84 is a solver on the WGS84 ellipsoid with the default options.
var WGS84 *Solver

func init() {
	var err error
	WGS84, err = New(ellipsoidal.WGS84, nil)
	if err != nil {
		panic(fmt.Sprintf("error constructing WGS84 solver: %s", err))
	}
}

// New constructs a solver for e. nil opts selects DefaultOptions.
func New(e ellipsoidal.Ellipsoid, opts *Options) (*Solver, error) {
	if e.A <= 0 || e.B <= 0 {
		return nil, errors.Wrap(geodesy.ErrInvalidArgument, "Semi-major and semi-minor axes must be greater than zero")
	}
	if e.F <= 0 || e.F >= 1 {
		return nil, errors.Wrap(geodesy.ErrInvalidArgument, "Flattening must be between 0 and 1")
	}
	o := DefaultOptions
	if opts != nil {
		o = *opts
	}
	if o.MaxIterations <= 0 {
		return nil, errors.Wrap(geodesy.ErrInvalidArgument, "Iteration limit must be greater than zero")
	}
	if o.Tolerance <= 0 {
		return nil, errors.Wrap(geodesy.ErrInvalidArgument, "Tolerance must be greater than zero")
	}
	if o.MaxStall < 0 {
		return nil, errors.Wrap(geodesy.ErrInvalidArgument, "Stall limit must not be negative")
	}
	return &Solver{e: e, opts: o}, nil
}

// Ellipsoid returns the ellipsoid the solver works on.
func (s *Solver) Ellipsoid() ellipsoidal.Ellipsoid { return s.e }

// InverseResult is the solution of the inverse problem.
type InverseResult struct {
	// Distance is the geodesic length in metres, rounded to the millimetre.
	Distance float64
	// InitialBearing and FinalBearing are in degrees in [0,360), or NaN
	// for coincident points.
	InitialBearing float64
	FinalBearing   float64
	Iterations     int
}

// DirectResult is the solution of the direct problem.
type DirectResult struct {
	Point        ellipsoidal.LatLon
	FinalBearing float64
	Iterations   int
}

// convergence tracks the residual of an iteration against the solver's
// limits.
type convergence struct {
	opts  Options
	best  float64
	stall int
	n     int
}

func (c *convergence) converged(residual float64) (bool, error) {
	c.n++
	if residual <= c.opts.Tolerance {
		return true, nil
	}
	if residual < c.best {
		c.best = residual
		c.stall = 0
	} else {
		c.stall++
	}
	if c.opts.MaxStall > 0 && c.stall >= c.opts.MaxStall {
		return false, errors.Wrapf(geodesy.ErrNotConverged, "residual stalled at %g after %d iterations", c.best, c.n)
	}
	if c.n >= c.opts.MaxIterations {
		return false, errors.Wrapf(geodesy.ErrNotConverged, "no convergence after %d iterations", c.n)
	}
	return false, nil
}

// Inverse computes the distance and bearings between p1 and p2. Points
// that are nearly antipodal may fail with ErrNotConverged.
func (s *Solver) Inverse(p1, p2 ellipsoidal.LatLon) (InverseResult, error) {
	φ1, λ1 := p1.LatLng().Lat.Radians(), p1.LatLng().Lng.Radians()
	φ2, λ2 := p2.LatLng().Lat.Radians(), p2.LatLng().Lng.Radians()
	a, b, f := s.e.A, s.e.B, s.e.F

	L := λ2 - λ1
	tanU1 := (1 - f) * math.Tan(φ1)
	cosU1 := 1 / math.Sqrt(1+tanU1*tanU1)
	sinU1 := tanU1 * cosU1
	tanU2 := (1 - f) * math.Tan(φ2)
	cosU2 := 1 / math.Sqrt(1+tanU2*tanU2)
	sinU2 := tanU2 * cosU2

	antipodal := math.Abs(L) > math.Pi/2 || math.Abs(φ2-φ1) > math.Pi/2

	λ := L
	var sinλ, cosλ, sinSqσ float64
	σ, sinσ, cosσ := 0.0, 0.0, 1.0
	if antipodal {
		σ, cosσ = math.Pi, -1
	}
	cos2σm, cosSqα := 1.0, 1.0

	conv := convergence{opts: s.opts, best: math.Inf(1)}
	for {
		sinλ, cosλ = math.Sin(λ), math.Cos(λ)
		sinSqσ = (cosU2*sinλ)*(cosU2*sinλ) + (cosU1*sinU2-sinU1*cosU2*cosλ)*(cosU1*sinU2-sinU1*cosU2*cosλ)
		if math.Abs(sinSqσ) < 1e-24 {
			// co-incident or antipodal, σ < 0.006mm
			break
		}
		sinσ = math.Sqrt(sinSqσ)
		cosσ = sinU1*sinU2 + cosU1*cosU2*cosλ
		σ = math.Atan2(sinσ, cosσ)
		sinα := cosU1 * cosU2 * sinλ / sinσ
		cosSqα = 1 - sinα*sinα
		cos2σm = 0
		if cosSqα != 0 {
			// equatorial lines have cosSqα 0
			cos2σm = cosσ - 2*sinU1*sinU2/cosSqα
		}
		C := f / 16 * cosSqα * (4 + f*(4-3*cosSqα))
		λp := λ
		λ = L + (1-C)*f*sinα*(σ+C*sinσ*(cos2σm+C*cosσ*(-1+2*cos2σm*cos2σm)))

		check := math.Abs(λ)
		if antipodal {
			check -= math.Pi
		}
		if check > math.Pi {
			return InverseResult{}, errors.Wrapf(geodesy.ErrNotConverged, "λ > π after %d iterations", conv.n+1)
		}
		done, err := conv.converged(math.Abs(λ - λp))
		if err != nil {
			return InverseResult{}, err
		}
		if done {
			break
		}
	}

	uSq := cosSqα * (a*a - b*b) / (b * b)
	A := 1 + uSq/16384*(4096+uSq*(-768+uSq*(320-175*uSq)))
	B := uSq / 1024 * (256 + uSq*(-128+uSq*(74-47*uSq)))
	Δσ := B * sinσ * (cos2σm + B/4*(cosσ*(-1+2*cos2σm*cos2σm)-
		B/6*cos2σm*(-3+4*sinσ*sinσ)*(-3+4*cos2σm*cos2σm)))
	dist := b * A * (σ - Δσ)

	α1, α2 := 0.0, math.Pi
	if math.Abs(sinSqσ) >= epsilon {
		α1 = math.Atan2(cosU2*sinλ, cosU1*sinU2-sinU1*cosU2*cosλ)
		α2 = math.Atan2(cosU1*sinλ, -sinU1*cosU2+cosU1*sinU2*cosλ)
	}

	res := InverseResult{
		Distance:       math.Round(dist*1000) / 1000,
		InitialBearing: dms.Wrap360(α1 * 180 / math.Pi),
		FinalBearing:   dms.Wrap360(α2 * 180 / math.Pi),
		Iterations:     conv.n,
	}
	if math.Abs(dist) < epsilon {
		res.InitialBearing = math.NaN()
		res.FinalBearing = math.NaN()
	}
	return res, nil
}

const epsilon = 2.220446049250313e-16

// Direct computes the point reached by travelling distance metres from p
// along the geodesic with the given initial bearing in degrees. p must lie
// on the surface of the ellipsoid.
func (s *Solver) Direct(p ellipsoidal.LatLon, distance, bearing float64) (DirectResult, error) {
	if p.Height() != 0 {
		return DirectResult{}, errors.Wrapf(geodesy.ErrInvalidRange, "point must be on the surface of the ellipsoid, height is %g", p.Height())
	}
	if math.IsNaN(distance) || math.IsInf(distance, 0) || math.IsNaN(bearing) || math.IsInf(bearing, 0) {
		return DirectResult{}, errors.Wrap(geodesy.ErrInvalidArgument, "distance and bearing must be finite")
	}

	φ1, λ1 := p.LatLng().Lat.Radians(), p.LatLng().Lng.Radians()
	α1 := bearing * math.Pi / 180
	a, b, f := s.e.A, s.e.B, s.e.F

	sinα1, cosα1 := math.Sin(α1), math.Cos(α1)
	tanU1 := (1 - f) * math.Tan(φ1)
	cosU1 := 1 / math.Sqrt(1+tanU1*tanU1)
	sinU1 := tanU1 * cosU1
	σ1 := math.Atan2(tanU1, cosα1)
	sinα := cosU1 * sinα1
	cosSqα := 1 - sinα*sinα
	uSq := cosSqα * (a*a - b*b) / (b * b)
	A := 1 + uSq/16384*(4096+uSq*(-768+uSq*(320-175*uSq)))
	B := uSq / 1024 * (256 + uSq*(-128+uSq*(74-47*uSq)))

	σ := distance / (b * A)
	var sinσ, cosσ, cos2σm float64
	conv := convergence{opts: s.opts, best: math.Inf(1)}
	for {
		cos2σm = math.Cos(2*σ1 + σ)
		sinσ, cosσ = math.Sin(σ), math.Cos(σ)
		Δσ := B * sinσ * (cos2σm + B/4*(cosσ*(-1+2*cos2σm*cos2σm)-
			B/6*cos2σm*(-3+4*sinσ*sinσ)*(-3+4*cos2σm*cos2σm)))
		σp := σ
		σ = distance/(b*A) + Δσ
		done, err := conv.converged(math.Abs(σ - σp))
		if err != nil {
			return DirectResult{}, err
		}
		if done {
			break
		}
	}
	cos2σm = math.Cos(2*σ1 + σ)
	sinσ, cosσ = math.Sin(σ), math.Cos(σ)

	x := sinU1*sinσ - cosU1*cosσ*cosα1
	φ2 := math.Atan2(sinU1*cosσ+cosU1*sinσ*cosα1, (1-f)*math.Sqrt(sinα*sinα+x*x))
	λ := math.Atan2(sinσ*sinα1, cosU1*cosσ-sinU1*sinσ*cosα1)
	C := f / 16 * cosSqα * (4 + f*(4-3*cosSqα))
	L := λ - (1-C)*f*sinα*(σ+C*sinσ*(cos2σm+C*cosσ*(-1+2*cos2σm*cos2σm)))
	λ2 := λ1 + L
	α2 := math.Atan2(sinα, -x)

	return DirectResult{
		Point:        ellipsoidal.New(φ2*180/math.Pi, λ2*180/math.Pi, 0),
		FinalBearing: dms.Wrap360(α2 * 180 / math.Pi),
		Iterations:   conv.n,
	}, nil
}
