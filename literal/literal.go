// Package literal decodes the shapes a geographic point may be written in:
// a pair of numbers, a pair of deg/min/sec strings, a "lat, lon" string, a
// keyed object, or a GeoJSON Point.
package literal

import (
	"encoding/json"
	"math"
	"strings"

	"github.com/pkg/errors"
	"github.com/tzneal/geodesy"
	"github.com/tzneal/geodesy/dms"
)

// Coords is a decoded point in degrees and metres. Lat is wrapped to ±90°
// and Lon to ±180°.
type Coords struct {
	Lat, Lon, Height float64
}

// Literal is implemented by Pair, DMSPair, Text, Object and GeoJSON.
type Literal interface {
	coords() (Coords, error)
}

// Pair is a point given as numeric degrees.
type Pair struct {
	Lat, Lon, Height float64
}

// DMSPair is a point given as two strings in any form dms.Parse accepts,
// e.g. {"51°28′40″N", "000°00′05″W"}.
type DMSPair struct {
	Lat, Lon string
	Height   float64
}

// Text is a point given as a single comma-separated "lat, lon" string; each
// half may be in any form dms.Parse accepts.
type Text string

// Object is a point given as a keyed object. Latitude is read from lat or
// latitude, longitude from lon, lng or longitude, and height from height.
// Values may be numbers or strings.
type Object map[string]any

// GeoJSON is a GeoJSON Point: coordinates are [lon, lat] or
// [lon, lat, height].
type GeoJSON struct {
	Type        string    `json:"type"`
	Coordinates []float64 `json:"coordinates"`
}

// NewGeoJSON returns the GeoJSON Point for a position.
func NewGeoJSON(lat, lon, height float64) GeoJSON {
	g := GeoJSON{Type: "Point", Coordinates: []float64{lon, lat}}
	if height != 0 {
		g.Coordinates = append(g.Coordinates, height)
	}
	return g
}

// Decode converts a literal to wrapped coordinates. It fails with
// geodesy.ErrInvalidArgument if the latitude or longitude cannot be read.
func Decode(l Literal) (Coords, error) {
	if l == nil {
		return Coords{}, errors.Wrap(geodesy.ErrInvalidArgument, "empty point")
	}
	c, err := l.coords()
	if err != nil {
		return Coords{}, err
	}
	if !finite(c.Lat) || !finite(c.Lon) || !finite(c.Height) {
		return Coords{}, errors.Wrapf(geodesy.ErrInvalidArgument, "invalid point %v", l)
	}
	c.Lat = dms.Wrap90(c.Lat)
	c.Lon = dms.Wrap180(c.Lon)
	return c, nil
}

// Unmarshal decodes a JSON object, either a GeoJSON Point or a keyed
// object.
func Unmarshal(data []byte) (Coords, error) {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return Coords{}, errors.Wrapf(geodesy.ErrInvalidArgument, "invalid point json: %s", err)
	}
	if raw["type"] == "Point" {
		var g GeoJSON
		if err := json.Unmarshal(data, &g); err != nil {
			return Coords{}, errors.Wrapf(geodesy.ErrInvalidArgument, "invalid GeoJSON point: %s", err)
		}
		return Decode(g)
	}
	return Decode(Object(raw))
}

func (p Pair) coords() (Coords, error) {
	return Coords{Lat: p.Lat, Lon: p.Lon, Height: p.Height}, nil
}

func (p DMSPair) coords() (Coords, error) {
	return Coords{Lat: dms.Parse(p.Lat), Lon: dms.Parse(p.Lon), Height: p.Height}, nil
}

func (t Text) coords() (Coords, error) {
	parts := strings.Split(string(t), ",")
	if len(parts) != 2 {
		return Coords{}, errors.Wrapf(geodesy.ErrInvalidArgument, "invalid point %q", string(t))
	}
	return Coords{Lat: dms.Parse(parts[0]), Lon: dms.Parse(parts[1])}, nil
}

func (o Object) coords() (Coords, error) {
	c := Coords{Lat: math.NaN(), Lon: math.NaN()}
	for _, k := range []string{"latitude", "lat"} {
		if v, ok := o[k]; ok {
			c.Lat = value(v)
		}
	}
	for _, k := range []string{"longitude", "lng", "lon"} {
		if v, ok := o[k]; ok {
			c.Lon = value(v)
		}
	}
	if v, ok := o["height"]; ok {
		c.Height = value(v)
	}
	return c, nil
}

func (g GeoJSON) coords() (Coords, error) {
	if g.Type != "Point" || len(g.Coordinates) < 2 || len(g.Coordinates) > 3 {
		return Coords{}, errors.Wrapf(geodesy.ErrInvalidArgument, "invalid GeoJSON point %v", g)
	}
	c := Coords{Lon: g.Coordinates[0], Lat: g.Coordinates[1]}
	if len(g.Coordinates) == 3 {
		c.Height = g.Coordinates[2]
	}
	return c, nil
}

func value(v any) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case float32:
		return float64(n)
	case int:
		return float64(n)
	case int64:
		return float64(n)
	case json.Number:
		f, err := n.Float64()
		if err != nil {
			return math.NaN()
		}
		return f
	case string:
		return dms.Parse(n)
	}
	return math.NaN()
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
