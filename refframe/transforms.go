package refframe

import (
	"fmt"
	"math"
	"strings"

	"github.com/pkg/errors"
	"github.com/tzneal/geodesy"
	"github.com/tzneal/geodesy/ellipsoidal"
)

// Params are Helmert parameters or their annual rates in published units:
// translations in millimetres, scale in parts per billion and rotations in
// milli-arc-seconds.
type Params struct {
	Tx, Ty, Tz float64
	S          float64
	Rx, Ry, Rz float64
}

// Negate returns the parameters of the reverse transform.
func (p Params) Negate() Params {
	return Params{Tx: -p.Tx, Ty: -p.Ty, Tz: -p.Tz, S: -p.S, Rx: -p.Rx, Ry: -p.Ry, Rz: -p.Rz}
}

// Transform14 is a directed fourteen-parameter transform: Params at Epoch
// plus Rates per year.
type Transform14 struct {
	From, To string
	Epoch    float64
	Params   Params
	Rates    Params
}

// Reverse returns the transform in the opposite direction.
func (t Transform14) Reverse() Transform14 {
	return Transform14{From: t.To, To: t.From, Epoch: t.Epoch, Params: t.Params.Negate(), Rates: t.Rates.Negate()}
}

// Helmert returns the normalised seven-parameter transform for an
// observation epoch.
func (t Transform14) Helmert(epoch float64) ellipsoidal.Helmert {
	const mas = math.Pi / 180 / 3600 / 1000
	δt := epoch - t.Epoch
	p, r := t.Params, t.Rates
	return ellipsoidal.Helmert{
		Tx: (p.Tx + r.Tx*δt) / 1000,
		Ty: (p.Ty + r.Ty*δt) / 1000,
		Tz: (p.Tz + r.Tz*δt) / 1000,
		Rx: (p.Rx + r.Rx*δt) * mas,
		Ry: (p.Ry + r.Ry*δt) * mas,
		Rz: (p.Rz + r.Rz*δt) * mas,
		S:  1 + (p.S+r.S*δt)/1e9,
	}
}

func (t Transform14) String() string {
	return fmt.Sprintf("%s→%s@%g", t.From, t.To, t.Epoch)
}

func tx(from, to Frame, epoch float64, params, rates [7]float64) Transform14 {
	return Transform14{
		From:   from.Name,
		To:     to.Name,
		Epoch:  epoch,
		Params: Params{params[0], params[1], params[2], params[3], params[4], params[5], params[6]},
		Rates:  Params{rates[0], rates[1], rates[2], rates[3], rates[4], rates[5], rates[6]},
	}
}

// transforms are the published IERS, EUREF, NGS and Geoscience Australia
// parameters, ordered tx, ty, tz, s, rx, ry, rz.
var transforms = []Transform14{
	tx(ITRF2014, ITRF2008, 2010.0,
		[7]float64{1.6, 1.9, 2.4, -0.02, 0.00, 0.00, 0.00},
		[7]float64{0.0, 0.0, -0.1, 0.03, 0.00, 0.00, 0.00}),
	tx(ITRF2014, ITRF2005, 2010.0,
		[7]float64{2.6, 1.0, -2.3, 0.92, 0.00, 0.00, 0.00},
		[7]float64{0.3, 0.0, -0.1, 0.03, 0.00, 0.00, 0.00}),
	tx(ITRF2014, ITRF2000, 2010.0,
		[7]float64{0.7, 1.2, -26.1, 2.12, 0.00, 0.00, 0.00},
		[7]float64{0.1, 0.1, -1.9, 0.11, 0.00, 0.00, 0.00}),
	tx(ITRF2014, ITRF93, 2010.0,
		[7]float64{-50.4, 3.3, -60.2, 4.29, -2.81, -3.38, 0.40},
		[7]float64{-2.8, -0.1, -2.5, 0.12, -0.11, -0.19, 0.07}),
	tx(ITRF2014, ITRF91, 2010.0,
		[7]float64{27.4, 15.5, -76.8, 4.49, 0.00, 0.00, 0.26},
		[7]float64{0.1, -0.5, -3.3, 0.12, 0.00, 0.00, 0.02}),
	tx(ITRF2008, ITRF2005, 2000.0,
		[7]float64{-2.0, -0.9, -4.7, 0.94, 0.00, 0.00, 0.00},
		[7]float64{0.3, 0.0, 0.0, 0.00, 0.00, 0.00, 0.00}),
	tx(ITRF2008, ITRF2000, 2000.0,
		[7]float64{-1.9, -1.7, -10.5, 1.34, 0.00, 0.00, 0.00},
		[7]float64{0.1, 0.1, -1.8, 0.08, 0.00, 0.00, 0.00}),
	tx(ITRF2008, ITRF93, 2000.0,
		[7]float64{-24.0, 2.4, -38.6, 3.41, -1.71, -1.48, -0.30},
		[7]float64{-2.8, -0.1, -2.4, 0.09, -0.11, -0.19, 0.07}),
	tx(ITRF2008, ITRF91, 2000.0,
		[7]float64{24.8, 18.8, -47.2, 3.60, 0.00, 0.00, 0.06},
		[7]float64{0.1, -0.5, -3.2, 0.09, 0.00, 0.00, 0.02}),
	tx(ITRF2005, ITRF2000, 2000.0,
		[7]float64{0.1, -0.8, -5.8, 0.40, 0.000, 0.000, 0.000},
		[7]float64{-0.2, 0.1, -1.8, 0.08, 0.000, 0.000, 0.000}),
	tx(ITRF2000, ITRF93, 1988.0,
		[7]float64{12.7, 6.5, -20.9, 1.95, -0.39, 0.80, -1.14},
		[7]float64{-2.9, -0.2, -0.6, 0.01, -0.11, -0.19, 0.07}),
	tx(ITRF2000, ITRF91, 1988.0,
		[7]float64{26.7, 27.5, -19.9, 2.15, 0.00, 0.00, -0.18},
		[7]float64{0.0, -0.6, -1.4, 0.01, 0.00, 0.00, 0.02}),
	tx(ITRF2000, NAD83, 1997.0,
		[7]float64{995.6, -1901.3, -521.5, 0.62, 25.915, 9.426, 11.599},
		[7]float64{0.7, -0.7, 0.5, -0.18, 0.067, -0.757, -0.051}),
	tx(ITRF2014, ETRF2000, 2010.0,
		[7]float64{54.7, 52.2, -74.1, 2.12, 1.701, 10.290, -16.632},
		[7]float64{0.1, 0.1, -1.9, 0.11, 0.081, 0.490, -0.792}),
	tx(ITRF2008, ETRF2000, 2000.0,
		[7]float64{52.1, 49.3, -58.5, 1.34, 0.891, 5.390, -8.712},
		[7]float64{0.1, 0.1, -1.8, 0.08, 0.081, 0.490, -0.792}),
	tx(ITRF2005, ETRF2000, 2000.0,
		[7]float64{54.1, 50.2, -53.8, 0.40, 0.891, 5.390, -8.712},
		[7]float64{-0.2, 0.1, -1.8, 0.08, 0.081, 0.490, -0.792}),
	tx(ITRF2000, ETRF2000, 2000.0,
		[7]float64{54.0, 51.0, -48.0, 0.00, 0.891, 5.390, -8.712},
		[7]float64{0.0, 0.0, 0.0, 0.00, 0.081, 0.490, -0.792}),
	tx(ITRF2008, GDA94, 1994.0,
		[7]float64{-84.68, -19.42, 32.01, 9.710, -0.4254, 2.2578, 2.4015},
		[7]float64{1.42, 1.34, 0.90, 0.109, 1.5461, 1.1820, 1.1551}),
	tx(ITRF2005, GDA94, 1994.0,
		[7]float64{-79.73, -6.86, 38.03, 6.636, -0.0351, 2.1211, 2.1411},
		[7]float64{2.25, -0.62, -0.56, 0.294, -1.4707, 1.1443, 1.1701}),
	tx(ITRF2000, GDA94, 1994.0,
		[7]float64{-45.91, -29.85, -20.37, 7.070, -1.6705, 0.4594, 1.9356},
		[7]float64{-4.66, 3.55, 11.24, 0.249, 1.7454, 1.4868, 1.2240}),
}

type pair struct{ from, to string }

// routes maps every ordered pair of frames with a usable conversion to the
// transforms to apply in turn; an empty route is the identity.
var routes = map[pair][]Transform14{}

func init() {
	all := []Frame{ITRF2014, ITRF2008, ITRF2005, ITRF2000, ITRF93, ITRF91,
		WGS84g1762, WGS84g1674, WGS84g1150, ETRF2000, NAD83, GDA94}
	for _, f := range all {
		frames[f.Name] = f
	}

	direct := map[pair]Transform14{}
	for _, t := range transforms {
		if _, ok := frames[t.From]; !ok {
			panic(fmt.Sprintf("transform %s from untabulated frame", t))
		}
		if _, ok := frames[t.To]; !ok {
			panic(fmt.Sprintf("transform %s to untabulated frame", t))
		}
		direct[pair{t.From, t.To}] = t
	}

	// a single directed leg, reversing a tabulated transform if necessary
	leg := func(from, to string) (Transform14, bool) {
		if t, ok := direct[pair{from, to}]; ok {
			return t, true
		}
		if t, ok := direct[pair{to, from}]; ok {
			return t.Reverse(), true
		}
		return Transform14{}, false
	}

	for _, a := range all {
		for _, b := range all {
			if a == b {
				continue
			}
			if coincident(a.Name, b.Name) {
				routes[pair{a.Name, b.Name}] = nil
				continue
			}
			if t, ok := leg(a.Name, b.Name); ok {
				routes[pair{a.Name, b.Name}] = []Transform14{t}
				continue
			}
			// prefer an intermediate reached by two forward transforms
			// in table order, then any tabulated pair of legs
			var route []Transform14
			for _, t1 := range transforms {
				if t1.From != a.Name {
					continue
				}
				if t2, ok := direct[pair{t1.To, b.Name}]; ok {
					route = []Transform14{t1, t2}
					break
				}
			}
			for _, x := range all {
				if route != nil {
					break
				}
				if x == a || x == b {
					continue
				}
				t1, ok1 := leg(a.Name, x.Name)
				t2, ok2 := leg(x.Name, b.Name)
				if ok1 && ok2 {
					route = []Transform14{t1, t2}
				}
			}
			if route != nil {
				routes[pair{a.Name, b.Name}] = route
			}
		}
	}
}

func coincident(a, b string) bool {
	return strings.HasPrefix(a, "ITRF") && strings.HasPrefix(b, "WGS84") ||
		strings.HasPrefix(a, "WGS84") && strings.HasPrefix(b, "ITRF")
}

// Transform14Between returns the transforms applied, in order, to convert
// from one frame to another. An empty result means the frames are treated
// as coincident.
func Transform14Between(from, to Frame) ([]Transform14, error) {
	if err := from.validate(); err != nil {
		return nil, err
	}
	if err := to.validate(); err != nil {
		return nil, err
	}
	if from == to {
		return nil, nil
	}
	route, ok := routes[pair{from.Name, to.Name}]
	if !ok {
		return nil, errors.Wrapf(geodesy.ErrNotAvailable, "%s→%s", from, to)
	}
	return append([]Transform14(nil), route...), nil
}

// Transforms returns the tabulated transforms.
func Transforms() []Transform14 {
	return append([]Transform14(nil), transforms...)
}
