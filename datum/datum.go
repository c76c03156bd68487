// Package datum converts geodetic positions between historical datums using
// seven-parameter Helmert transforms through WGS84.
package datum

import (
	"math"
	"sort"

	"github.com/pkg/errors"
	"github.com/tzneal/geodesy"
	"github.com/tzneal/geodesy/ellipsoidal"
)

// Transform is a seven-parameter Helmert transform from WGS84 to a datum,
// in published units.
type Transform struct {
	Tx, Ty, Tz float64 // metres
	S          float64 // ppm
	Rx, Ry, Rz float64 // arc-seconds
}

// Negate returns the reverse transform.
func (t Transform) Negate() Transform {
	return Transform{Tx: -t.Tx, Ty: -t.Ty, Tz: -t.Tz, S: -t.S, Rx: -t.Rx, Ry: -t.Ry, Rz: -t.Rz}
}

// Helmert normalises t to metres, radians and a scale factor.
func (t Transform) Helmert() ellipsoidal.Helmert {
	const arcsec = math.Pi / 180 / 3600
	return ellipsoidal.Helmert{
		Tx: t.Tx, Ty: t.Ty, Tz: t.Tz,
		Rx: t.Rx * arcsec, Ry: t.Ry * arcsec, Rz: t.Rz * arcsec,
		S: 1 + t.S/1e6,
	}
}

// Datum is an ellipsoid plus the transform that takes WGS84 coordinates to
// it.
type Datum struct {
	Name      string
	Ellipsoid ellipsoidal.Ellipsoid
	Transform Transform
}

// Tabulated datums, in the order tx, ty, tz (m), s (ppm), rx, ry, rz
// (arc-seconds). Parameters follow the movable-type.co.uk datum table
// (www.movable-type.co.uk/scripts/latlong-convert-coords.html), which in
// turn cites epsg.io and the issuing agencies.
var (
	ED50       = Datum{"ED50", ellipsoidal.Intl1924, tf(89.5, 93.8, 123.1, -1.2, 0, 0, 0.156)}
	ETRS89     = Datum{"ETRS89", ellipsoidal.GRS80, tf(0, 0, 0, 0, 0, 0, 0)}
	Irl1975    = Datum{"Irl1975", ellipsoidal.AiryModified, tf(-482.530, 130.596, -564.557, -8.150, 1.042, 0.214, 0.631)}
	NAD27      = Datum{"NAD27", ellipsoidal.Clarke1866, tf(8, -160, -176, 0, 0, 0, 0)}
	NAD83      = Datum{"NAD83", ellipsoidal.GRS80, tf(1.004, -1.910, -0.515, -0.0015, 0.0267, 0.00034, 0.011)}
	NTF        = Datum{"NTF", ellipsoidal.Clarke1880IGN, tf(168, 60, -320, 0, 0, 0, 0)}
	OSGB36     = Datum{"OSGB36", ellipsoidal.Airy1830, tf(-446.448, 125.157, -542.060, 20.4894, -0.1502, -0.2470, -0.8421)}
	Potsdam    = Datum{"Potsdam", ellipsoidal.Bessel1841, tf(-582, -105, -414, -8.3, 1.04, 0.35, -3.08)}
	TokyoJapan = Datum{"TokyoJapan", ellipsoidal.Bessel1841, tf(148, -507, -685, 0, 0, 0, 0)}
	WGS72      = Datum{"WGS72", ellipsoidal.WGS72, tf(0, 0, -4.5, -0.22, 0, 0, 0.554)}
	WGS84      = Datum{"WGS84", ellipsoidal.WGS84, tf(0, 0, 0, 0, 0, 0, 0)}
)

func tf(tx, ty, tz, s, rx, ry, rz float64) Transform {
	return Transform{Tx: tx, Ty: ty, Tz: tz, S: s, Rx: rx, Ry: ry, Rz: rz}
}

var datums = map[string]Datum{}

func init() {
	for _, d := range []Datum{ED50, ETRS89, Irl1975, NAD27, NAD83, NTF, OSGB36, Potsdam, TokyoJapan, WGS72, WGS84} {
		datums[d.Name] = d
	}
}

// ByName looks up a tabulated datum.
func ByName(name string) (Datum, error) {
	d, ok := datums[name]
	if !ok {
		return Datum{}, errors.Wrapf(geodesy.ErrUnrecognisedDatum, "%q", name)
	}
	return d, nil
}

// Datums returns the tabulated datums ordered by name.
func Datums() []Datum {
	all := make([]Datum, 0, len(datums))
	for _, d := range datums {
		all = append(all, d)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Name < all[j].Name })
	return all
}

func (d Datum) validate() error {
	if d.Name == "" || d.Ellipsoid.IsZero() {
		return errors.Wrapf(geodesy.ErrUnrecognisedDatum, "%+v", d)
	}
	return nil
}

// String returns the datum name.
func (d Datum) String() string { return d.Name }
