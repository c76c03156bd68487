package datum

import (
	"github.com/pkg/errors"
	"github.com/tzneal/geodesy/ellipsoidal"
	"github.com/tzneal/geodesy/literal"
)

// LatLon is a geodetic position on a datum.
type LatLon struct {
	ellipsoidal.LatLon
	datum Datum
}

// New returns the position (lat, lon, height) on d.
func New(lat, lon, height float64, d Datum) LatLon {
	return LatLon{LatLon: ellipsoidal.New(lat, lon, height), datum: d}
}

// Parse decodes a point literal as a position on d.
func Parse(l literal.Literal, d Datum) (LatLon, error) {
	if err := d.validate(); err != nil {
		return LatLon{}, err
	}
	p, err := ellipsoidal.Parse(l)
	if err != nil {
		return LatLon{}, err
	}
	return LatLon{LatLon: p, datum: d}, nil
}

// Datum is the datum p is expressed on.
func (p LatLon) Datum() Datum { return p.datum }

// WithLat returns p with its latitude replaced.
func (p LatLon) WithLat(lat float64) LatLon {
	return LatLon{LatLon: p.LatLon.WithLat(lat), datum: p.datum}
}

// WithLon returns p with its longitude replaced.
func (p LatLon) WithLon(lon float64) LatLon {
	return LatLon{LatLon: p.LatLon.WithLon(lon), datum: p.datum}
}

// WithHeight returns p with its height replaced.
func (p LatLon) WithHeight(height float64) LatLon {
	return LatLon{LatLon: p.LatLon.WithHeight(height), datum: p.datum}
}

// ToCartesian converts p to earth-centred earth-fixed coordinates on its
// datum's ellipsoid.
func (p LatLon) ToCartesian() Cartesian {
	return Cartesian{Cartesian: p.LatLon.ToCartesian(p.datum.Ellipsoid), datum: p.datum}
}

// ConvertDatum returns p expressed on another datum.
func (p LatLon) ConvertDatum(to Datum) (LatLon, error) {
	if err := p.datum.validate(); err != nil {
		return LatLon{}, err
	}
	c, err := p.ToCartesian().ConvertDatum(to)
	if err != nil {
		return LatLon{}, err
	}
	return c.ToLatLon(), nil
}

// Equals reports whether p and o are the same position on the same datum.
func (p LatLon) Equals(o LatLon) bool {
	return p.LatLon.Equals(o.LatLon) && p.datum.Name == o.datum.Name
}

// Cartesian is an earth-centred earth-fixed position on a datum.
type Cartesian struct {
	ellipsoidal.Cartesian
	datum Datum
}

// NewCartesian returns the position (x, y, z) on d.
func NewCartesian(x, y, z float64, d Datum) Cartesian {
	return Cartesian{Cartesian: ellipsoidal.NewCartesian(x, y, z), datum: d}
}

// Datum is the datum c is expressed on.
func (c Cartesian) Datum() Datum { return c.datum }

// ToLatLon converts c to geodetic coordinates on its datum's ellipsoid.
func (c Cartesian) ToLatLon() LatLon {
	return LatLon{LatLon: c.Cartesian.ToLatLon(c.datum.Ellipsoid), datum: c.datum}
}

// ConvertDatum returns c expressed on another datum. Conversions between
// two datums neither of which is WGS84 pass through WGS84.
func (c Cartesian) ConvertDatum(to Datum) (Cartesian, error) {
	if err := to.validate(); err != nil {
		return Cartesian{}, err
	}
	if err := c.datum.validate(); err != nil {
		return Cartesian{}, err
	}

	var t Transform
	switch {
	case c.datum == to:
		return c, nil
	case c.datum.Name == WGS84.Name:
		t = to.Transform
	case to.Name == WGS84.Name:
		t = c.datum.Transform.Negate()
	default:
		wgs, err := c.ConvertDatum(WGS84)
		if err != nil {
			return Cartesian{}, errors.Wrapf(err, "converting %s to WGS84", c.datum)
		}
		return wgs.ConvertDatum(to)
	}
	return Cartesian{Cartesian: t.Helmert().Apply(c.Cartesian), datum: to}, nil
}
