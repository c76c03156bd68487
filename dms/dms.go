// Package dms parses, formats and wraps angles written in degrees, minutes
// and seconds.
//
// Parsing is forgiving: any run of non-numeric characters separates the
// degree, minute and second groups, and an unparseable string yields NaN
// rather than an error. Formatting pads degrees to two (latitude) or three
// (longitude, bearing) integer digits and separates the groups with a
// narrow no-break space unless a Formatter with a different separator is
// used.
package dms

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/golang/geo/s1"
)

var (
	groupSeparator = regexp.MustCompile(`[^0-9.,]+`)
	compassSuffix  = regexp.MustCompile(`(?i)[NSEW]$`)
	negative       = regexp.MustCompile(`(?i)^-|[WS]$`)
)

// Parse interprets a string as degrees. It accepts signed decimal degrees
// ("-3.62"), and degree/minute/second groups with any separators and an
// optional compass suffix ("3° 37′ 09″W", "51 28 40.37 n", "003 37 09W").
// A leading minus or a trailing S or W gives a negative result.
//
// Parse returns NaN if the string cannot be interpreted.
func Parse(s string) float64 {
	s = strings.TrimSpace(s)
	if v, err := strconv.ParseFloat(s, 64); err == nil && !math.IsInf(v, 0) && !math.IsNaN(v) {
		return v
	}

	body := strings.TrimPrefix(s, "-")
	body = compassSuffix.ReplaceAllString(body, "")
	parts := groupSeparator.Split(body, -1)
	if len(parts) > 0 && parts[len(parts)-1] == "" {
		parts = parts[:len(parts)-1]
	}
	if len(parts) == 0 || (len(parts) == 1 && parts[0] == "") {
		return math.NaN()
	}

	var deg float64
	switch len(parts) {
	case 3:
		deg = component(parts[0]) + component(parts[1])/60 + component(parts[2])/3600
	case 2:
		deg = component(parts[0]) + component(parts[1])/60
	case 1:
		deg = component(parts[0])
	default:
		return math.NaN()
	}
	if negative.MatchString(s) {
		deg = -deg
	}
	return deg
}

// ParseAngle is Parse returning an s1.Angle.
func ParseAngle(s string) s1.Angle {
	return s1.Angle(Parse(s)) * s1.Degree
}

// component converts one numeric group; an empty group counts as zero.
func component(s string) float64 {
	if s == "" {
		return 0
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return math.NaN()
	}
	return v
}

// Wrap90 constrains degrees to the range -90..+90 (e.g. for latitude);
// -91 becomes -89, 91 becomes 89.
func Wrap90(degrees float64) float64 {
	if -90 <= degrees && degrees <= 90 {
		return degrees
	}
	// triangle wave, period 360, amplitude 90
	const a, p = 90.0, 360.0
	return 4*a/p*math.Abs(mod(degrees-p/4, p)-p/2) - a
}

// Wrap180 constrains degrees to the range -180 exclusive..+180 inclusive
// (e.g. for longitude); -181 becomes 179, 181 becomes -179.
func Wrap180(degrees float64) float64 {
	if -180 < degrees && degrees <= 180 {
		return degrees
	}
	// sawtooth wave, period 360, amplitude 180
	const a, p = 180.0, 360.0
	w := mod(2*a*degrees/p-p/2, p) - a
	if w == -a {
		return a
	}
	return w
}

// Wrap360 constrains degrees to the range 0 inclusive..360 exclusive (e.g.
// for bearings); -1 becomes 359, 361 becomes 1.
func Wrap360(degrees float64) float64 {
	if 0 <= degrees && degrees < 360 {
		return degrees
	}
	// sawtooth wave with offset, period 360, amplitude 180
	const a, p = 180.0, 360.0
	w := mod(2*a*degrees/p, p)
	if w >= 360 {
		w = 0
	}
	return w
}

// mod is the true modulo: the result has the sign of n.
func mod(x, n float64) float64 {
	return math.Mod(math.Mod(x, n)+n, n)
}
