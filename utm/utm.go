// Package utm converts between geodetic positions and Universal Transverse
// Mercator coordinates, using a Krüger series transverse Mercator projection
// accurate to well under a millimetre within each zone.
package utm

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/golang/geo/s2"
	"github.com/pkg/errors"
	"github.com/tzneal/geodesy"
	"github.com/tzneal/geodesy/datum"
)

// Hemisphere is the hemisphere of a UTM coordinate, 'N' or 'S'.
type Hemisphere byte

// Hemispheres.
const (
	North Hemisphere = 'N'
	South Hemisphere = 'S'
)

func (h Hemisphere) String() string { return string(h) }

// Coord is a UTM coordinate.
type Coord struct {
	Zone       int
	Hemisphere Hemisphere
	Easting    float64
	Northing   float64
}

const (
	minLat      = -80.5 * math.Pi / 180
	maxLat      = 84.5 * math.Pi / 180
	minEasting  = 100000.0
	maxEasting  = 900000.0
	minNorthing = 0.0
	maxNorthing = 10000000.0

	falseEasting   = 500000.0
	southNorthing  = 10000000.0 // false northing in the southern hemisphere
	scaleFactor    = 0.9996
	epsilonRadians = 1.0e-9
)

// Converter converts positions on one datum to and from UTM.
type Converter struct {
	datum    datum.Datum
	override int
	zones    [61]*transverseMercator
}

// Default is a WGS84 converter with no zone override.
var Default *Converter

func init() {
	var err error
	Default, err = New(datum.WGS84, 0)
	if err != nil {
		panic(fmt.Sprintf("error constructing WGS84 UTM converter: %s", err))
	}
}

// New constructs a converter for datum d. A non-zero override forces every
// conversion into that zone, provided it is adjacent to the natural zone.
func New(d datum.Datum, override int) (*Converter, error) {
	e := d.Ellipsoid
	if e.A <= 0 {
		return nil, errors.Wrap(geodesy.ErrInvalidArgument, "Semi-major axis must be greater than zero")
	}
	if invF := 1 / e.F; invF < 250 || invF > 350 {
		return nil, errors.Wrap(geodesy.ErrInvalidArgument, "Inverse flattening must be between 250 and 350")
	}
	if override < 0 || override > 60 {
		return nil, errors.Wrapf(geodesy.ErrInvalidRange, "zone override %d out of range", override)
	}

	c := &Converter{datum: d, override: override}
	for zone := 1; zone <= 60; zone++ {
		tm, err := newTransverseMercator(e, centralMeridian(zone), falseEasting, 0, scaleFactor)
		if err != nil {
			return nil, errors.Wrapf(err, "zone %d", zone)
		}
		c.zones[zone] = tm
	}
	return c, nil
}

// Datum returns the datum the converter projects.
func (c *Converter) Datum() datum.Datum { return c.datum }

// centralMeridian of a zone, in radians in [0, 2π)
func centralMeridian(zone int) float64 {
	if zone >= 31 {
		return float64(6*zone-183) * math.Pi / 180
	}
	return float64(6*zone+177) * math.Pi / 180
}

// FromLatLon returns the UTM coordinate of p. Points on another datum are
// converted to the converter's datum first. A non-zero zoneOverride takes
// precedence over the converter's own; either must be within one zone of
// the natural zone. Without an override the southern Norway and Svalbard
// exceptions apply.
func (c *Converter) FromLatLon(p datum.LatLon, zoneOverride int) (Coord, error) {
	if p.Datum() != c.datum {
		q, err := p.ConvertDatum(c.datum)
		if err != nil {
			return Coord{}, errors.Wrapf(err, "converting to %s", c.datum)
		}
		p = q
	}
	return c.fromLatLng(p.LatLng(), zoneOverride)
}

func (c *Converter) fromLatLng(ll s2.LatLng, zoneOverride int) (Coord, error) {
	latitude := ll.Lat.Radians()
	longitude := ll.Lng.Radians()
	if latitude < minLat-epsilonRadians || latitude >= maxLat+epsilonRadians {
		return Coord{}, errors.Wrapf(geodesy.ErrInvalidRange, "latitude %.6f° outside UTM limits", ll.Lat.Degrees())
	}
	if longitude < -math.Pi-epsilonRadians || longitude > 2*math.Pi+epsilonRadians {
		return Coord{}, errors.Wrapf(geodesy.ErrInvalidRange, "longitude %.6f° out of range", ll.Lng.Degrees())
	}

	if latitude > -1.0e-9 && latitude < 0 {
		latitude = 0
	}
	if longitude < 0 {
		longitude += 2 * math.Pi
	}

	latDegrees := int(latitude * 180 / math.Pi)
	lonDegrees := int(longitude * 180 / math.Pi)

	var zone int
	if longitude < math.Pi {
		zone = int(31 + ((longitude+1.0e-10)*180/math.Pi)/6)
	} else {
		zone = int(((longitude+1.0e-10)*180/math.Pi)/6 - 29)
	}
	if zone > 60 {
		zone = 1
	}

	switch {
	case zoneOverride != 0:
		z, err := overrideZone(zone, zoneOverride)
		if err != nil {
			return Coord{}, err
		}
		zone = z
	case c.override != 0:
		z, err := overrideZone(zone, c.override)
		if err != nil {
			return Coord{}, err
		}
		zone = z
	default:
		// southern Norway
		if latDegrees > 55 && latDegrees < 64 && lonDegrees > -1 && lonDegrees < 3 {
			zone = 31
		}
		if latDegrees > 55 && latDegrees < 64 && lonDegrees > 2 && lonDegrees < 12 {
			zone = 32
		}
		// Svalbard
		if latDegrees > 71 && lonDegrees > -1 && lonDegrees < 9 {
			zone = 31
		}
		if latDegrees > 71 && lonDegrees > 8 && lonDegrees < 21 {
			zone = 33
		}
		if latDegrees > 71 && lonDegrees > 20 && lonDegrees < 33 {
			zone = 35
		}
		if latDegrees > 71 && lonDegrees > 32 && lonDegrees < 42 {
			zone = 37
		}
	}

	easting, northing, err := c.zones[zone].forward(latitude, longitude)
	if err != nil {
		return Coord{}, err
	}
	hemisphere := North
	if latitude < 0 {
		hemisphere = South
		northing += southNorthing
	}

	if easting < minEasting || easting > maxEasting {
		return Coord{}, errors.Wrapf(geodesy.ErrInvalidRange, "easting %.3f out of range in zone %d", easting, zone)
	}
	if northing < minNorthing || northing > maxNorthing {
		return Coord{}, errors.Wrapf(geodesy.ErrInvalidRange, "northing %.3f out of range", northing)
	}
	return Coord{Zone: zone, Hemisphere: hemisphere, Easting: easting, Northing: northing}, nil
}

// overrideZone allows an override up to one zone either side of the
// natural zone, wrapping between 60 and 1.
func overrideZone(zone, override int) (int, error) {
	switch {
	case zone == 1 && override == 60, zone == 60 && override == 1:
		return override, nil
	case zone-1 <= override && override <= zone+1:
		return override, nil
	}
	return 0, errors.Wrapf(geodesy.ErrInvalidRange, "zone override %d not adjacent to zone %d", override, zone)
}

// ToLatLon returns the position of u on the converter's datum, with zero
// height.
func (c *Converter) ToLatLon(u Coord) (datum.LatLon, error) {
	if u.Zone < 1 || u.Zone > 60 {
		return datum.LatLon{}, errors.Wrapf(geodesy.ErrInvalidRange, "zone %d out of range", u.Zone)
	}
	if u.Hemisphere != North && u.Hemisphere != South {
		return datum.LatLon{}, errors.Wrapf(geodesy.ErrInvalidArgument, "hemisphere %q", rune(u.Hemisphere))
	}
	if u.Easting < minEasting || u.Easting > maxEasting {
		return datum.LatLon{}, errors.Wrapf(geodesy.ErrInvalidRange, "easting %.3f out of range", u.Easting)
	}
	if u.Northing < minNorthing || u.Northing > maxNorthing {
		return datum.LatLon{}, errors.Wrapf(geodesy.ErrInvalidRange, "northing %.3f out of range", u.Northing)
	}

	northing := u.Northing
	if u.Hemisphere == South {
		northing -= southNorthing
	}
	φ, λ := c.zones[u.Zone].inverse(u.Easting, northing)
	if φ < minLat-epsilonRadians || φ >= maxLat+epsilonRadians {
		return datum.LatLon{}, errors.Wrapf(geodesy.ErrInvalidRange, "latitude %.6f° outside UTM limits", φ*180/math.Pi)
	}
	return datum.New(φ*180/math.Pi, λ*180/math.Pi, 0, c.datum), nil
}

// Format renders u as zone, hemisphere, easting and northing, with the
// zone padded to two digits and metres to dp decimal places, as in
// "31 N 448252 5411933".
func (u Coord) Format(dp int) string {
	return fmt.Sprintf("%02d %s %s %s", u.Zone, u.Hemisphere,
		strconv.FormatFloat(u.Easting, 'f', dp, 64),
		strconv.FormatFloat(u.Northing, 'f', dp, 64))
}

func (u Coord) String() string { return u.Format(0) }

// ParseCoord reads a coordinate in the form "31 N 448251.795 5411932.678".
// It does not check that the coordinate lies within its zone.
func ParseCoord(s string) (Coord, error) {
	fields := strings.Fields(s)
	if len(fields) != 4 {
		return Coord{}, errors.Wrapf(geodesy.ErrInvalidArgument, "invalid UTM coordinate %q", s)
	}
	zone, err := strconv.Atoi(fields[0])
	if err != nil || zone < 1 || zone > 60 {
		return Coord{}, errors.Wrapf(geodesy.ErrInvalidArgument, "invalid UTM zone %q", fields[0])
	}
	var h Hemisphere
	switch strings.ToUpper(fields[1]) {
	case "N":
		h = North
	case "S":
		h = South
	default:
		return Coord{}, errors.Wrapf(geodesy.ErrInvalidArgument, "invalid hemisphere %q", fields[1])
	}
	e, err := strconv.ParseFloat(fields[2], 64)
	if err != nil {
		return Coord{}, errors.Wrapf(geodesy.ErrInvalidArgument, "invalid easting %q", fields[2])
	}
	n, err := strconv.ParseFloat(fields[3], 64)
	if err != nil {
		return Coord{}, errors.Wrapf(geodesy.ErrInvalidArgument, "invalid northing %q", fields[3])
	}
	return Coord{Zone: zone, Hemisphere: h, Easting: e, Northing: n}, nil
}
