// Package ellipsoidal models points on an ellipsoid of revolution: geodetic
// latitude/longitude/height and earth-centred earth-fixed cartesian
// coordinates, and the conversions between them.
//
// Datum and reference frame aware points are built on these types in the
// datum and refframe packages.
package ellipsoidal

import (
	"sort"

	"github.com/pkg/errors"
	"github.com/tzneal/geodesy"
)

// Ellipsoid is an oblate model of the Earth.
type Ellipsoid struct {
	Name string
	A    float64 // semi-major axis in metres
	B    float64 // semi-minor axis in metres
	F    float64 // flattening
}

// Tabulated ellipsoids.
var (
	WGS84         = Ellipsoid{Name: "WGS84", A: 6378137, B: 6356752.314245, F: 1 / 298.257223563}
	GRS80         = Ellipsoid{Name: "GRS80", A: 6378137, B: 6356752.314140, F: 1 / 298.257222101}
	Airy1830      = Ellipsoid{Name: "Airy1830", A: 6377563.396, B: 6356256.909, F: 1 / 299.3249646}
	AiryModified  = Ellipsoid{Name: "AiryModified", A: 6377340.189, B: 6356034.448, F: 1 / 299.3249646}
	Bessel1841    = Ellipsoid{Name: "Bessel1841", A: 6377397.155, B: 6356078.962818, F: 1 / 299.1528128}
	Clarke1866    = Ellipsoid{Name: "Clarke1866", A: 6378206.4, B: 6356583.8, F: 1 / 294.978698214}
	Clarke1880IGN = Ellipsoid{Name: "Clarke1880IGN", A: 6378249.2, B: 6356515.0, F: 1 / 293.466021294}
	Intl1924      = Ellipsoid{Name: "Intl1924", A: 6378388, B: 6356911.946, F: 1 / 297.0}
	WGS72         = Ellipsoid{Name: "WGS72", A: 6378135, B: 6356750.52, F: 1 / 298.26}
)

var ellipsoids = map[string]Ellipsoid{}

func init() {
	for _, e := range []Ellipsoid{WGS84, GRS80, Airy1830, AiryModified, Bessel1841,
		Clarke1866, Clarke1880IGN, Intl1924, WGS72} {
		ellipsoids[e.Name] = e
	}
}

// NewEllipsoid constructs an ellipsoid from its semi-major axis and
// flattening; the semi-minor axis is derived.
func NewEllipsoid(name string, semiMajorAxis, flattening float64) (Ellipsoid, error) {
	if semiMajorAxis <= 0 {
		return Ellipsoid{}, errors.Wrap(geodesy.ErrInvalidArgument, "semi-major axis must be greater than zero")
	}
	if flattening <= 0 {
		return Ellipsoid{}, errors.Wrap(geodesy.ErrInvalidArgument, "flattening must be greater than zero")
	}
	invF := 1 / flattening
	if invF < 250 || invF > 350 {
		return Ellipsoid{}, errors.Wrap(geodesy.ErrInvalidArgument, "inverse flattening must be between 250 and 350")
	}
	return Ellipsoid{
		Name: name,
		A:    semiMajorAxis,
		B:    semiMajorAxis * (1 - flattening),
		F:    flattening,
	}, nil
}

// EllipsoidByName looks up a tabulated ellipsoid.
func EllipsoidByName(name string) (Ellipsoid, error) {
	e, ok := ellipsoids[name]
	if !ok {
		return Ellipsoid{}, errors.Wrapf(geodesy.ErrInvalidArgument, "unknown ellipsoid %q", name)
	}
	return e, nil
}

// Ellipsoids returns the tabulated ellipsoids ordered by name.
func Ellipsoids() []Ellipsoid {
	all := make([]Ellipsoid, 0, len(ellipsoids))
	for _, e := range ellipsoids {
		all = append(all, e)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Name < all[j].Name })
	return all
}

// E2 is the first eccentricity squared, (a²−b²)/a².
func (e Ellipsoid) E2() float64 { return 2*e.F - e.F*e.F }

// IsZero reports whether e is the zero value.
func (e Ellipsoid) IsZero() bool { return e.A == 0 }
