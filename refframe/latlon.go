package refframe

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/tzneal/geodesy/dms"
	"github.com/tzneal/geodesy/ellipsoidal"
	"github.com/tzneal/geodesy/literal"
)

// LatLon is a geodetic position in a reference frame, optionally tagged
// with the epoch it was observed at.
type LatLon struct {
	ellipsoidal.LatLon
	frame Frame
	epoch float64
}

// New returns the position (lat, lon, height) in f. An epoch of zero means
// the frame's reference epoch.
func New(lat, lon, height float64, f Frame, epoch float64) (LatLon, error) {
	if err := f.validate(); err != nil {
		return LatLon{}, err
	}
	return LatLon{LatLon: ellipsoidal.New(lat, lon, height), frame: f, epoch: epoch}, nil
}

// Parse decodes a point literal as a position in f.
func Parse(l literal.Literal, f Frame, epoch float64) (LatLon, error) {
	if err := f.validate(); err != nil {
		return LatLon{}, err
	}
	p, err := ellipsoidal.Parse(l)
	if err != nil {
		return LatLon{}, err
	}
	return LatLon{LatLon: p, frame: f, epoch: epoch}, nil
}

// Frame is the reference frame p is expressed in.
func (p LatLon) Frame() Frame { return p.frame }

// Epoch is the observation epoch of p, defaulting to its frame's reference
// epoch.
func (p LatLon) Epoch() float64 {
	if p.epoch == 0 {
		return p.frame.Epoch
	}
	return p.epoch
}

// WithHeight returns p with its height replaced, keeping frame and epoch.
func (p LatLon) WithHeight(height float64) LatLon {
	return LatLon{LatLon: p.LatLon.WithHeight(height), frame: p.frame, epoch: p.epoch}
}

func (p LatLon) WithLat(lat float64) LatLon {
	return LatLon{LatLon: p.LatLon.WithLat(lat), frame: p.frame, epoch: p.epoch}
}

func (p LatLon) WithLon(lon float64) LatLon {
	return LatLon{LatLon: p.LatLon.WithLon(lon), frame: p.frame, epoch: p.epoch}
}

// ToCartesian converts p to earth-centred earth-fixed coordinates.
func (p LatLon) ToCartesian() Cartesian {
	return Cartesian{Cartesian: p.LatLon.ToCartesian(p.frame.Ellipsoid), frame: p.frame, epoch: p.epoch}
}

// ConvertReferenceFrame returns p expressed in another frame. The result
// carries the observation epoch explicitly.
func (p LatLon) ConvertReferenceFrame(to Frame) (LatLon, error) {
	c, err := p.ToCartesian().ConvertReferenceFrame(to)
	if err != nil {
		return LatLon{}, err
	}
	return c.ToLatLon(), nil
}

// Equals reports whether p and o are the same position in the same frame
// at the same epoch.
func (p LatLon) Equals(o LatLon) bool {
	return p.LatLon.Equals(o.LatLon) && p.frame == o.frame && p.Epoch() == o.Epoch()
}

// FormatString renders p as FormatString on ellipsoidal.LatLon does,
// optionally followed by the frame and, when it differs from the frame's
// reference epoch, the observation epoch, for example "(ITRF2000@2012.0)".
func (p LatLon) FormatString(format dms.Format, dp, dph int, showFrame bool) (string, error) {
	s, err := p.LatLon.FormatString(format, dp, dph)
	if err != nil {
		return "", errors.Wrapf(err, "formatting %s position", p.frame)
	}
	if !showFrame {
		return s, nil
	}
	return s + " " + frameLabel(p.frame, p.Epoch()), nil
}

func (p LatLon) String() string {
	return p.LatLon.String() + " " + frameLabel(p.frame, p.Epoch())
}

func frameLabel(f Frame, epoch float64) string {
	if epoch == f.Epoch {
		return fmt.Sprintf("(%s)", f.Name)
	}
	e := strconv.FormatFloat(epoch, 'f', -1, 64)
	if !strings.Contains(e, ".") {
		e += ".0"
	}
	return fmt.Sprintf("(%s@%s)", f.Name, e)
}

// Cartesian is an earth-centred earth-fixed position in a reference frame.
type Cartesian struct {
	ellipsoidal.Cartesian
	frame Frame
	epoch float64
}

// NewCartesian returns the position (x, y, z) in f. An epoch of zero means
// the frame's reference epoch.
func NewCartesian(x, y, z float64, f Frame, epoch float64) (Cartesian, error) {
	if err := f.validate(); err != nil {
		return Cartesian{}, err
	}
	return Cartesian{Cartesian: ellipsoidal.NewCartesian(x, y, z), frame: f, epoch: epoch}, nil
}

// Frame is the reference frame c is expressed in.
func (c Cartesian) Frame() Frame { return c.frame }

// Epoch is the observation epoch of c, defaulting to its frame's reference
// epoch.
func (c Cartesian) Epoch() float64 {
	if c.epoch == 0 {
		return c.frame.Epoch
	}
	return c.epoch
}

// ToLatLon converts c to geodetic coordinates on its frame's ellipsoid.
func (c Cartesian) ToLatLon() LatLon {
	return LatLon{LatLon: c.Cartesian.ToLatLon(c.frame.Ellipsoid), frame: c.frame, epoch: c.epoch}
}

// ConvertReferenceFrame returns c expressed in another frame. Each
// transform on the route is evaluated at the observation epoch of c.
func (c Cartesian) ConvertReferenceFrame(to Frame) (Cartesian, error) {
	route, err := Transform14Between(c.frame, to)
	if err != nil {
		return Cartesian{}, err
	}
	epoch := c.Epoch()
	out := c.Cartesian
	for _, t := range route {
		out = t.Helmert(epoch).Apply(out)
	}
	if len(route) == 0 && c.frame == to {
		return c, nil
	}
	// the epoch stays fixed even though the target's reference epoch differs
	return Cartesian{Cartesian: out, frame: to, epoch: epoch}, nil
}

func (c Cartesian) String() string {
	return c.Cartesian.String() + " " + frameLabel(c.frame, c.Epoch())
}
