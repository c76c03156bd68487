package dms

import (
	"math"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/tzneal/geodesy"
)

// Format selects how an angle is rendered.
type Format string

// Supported formats. FormatN renders signed decimal degrees and is only
// meaningful for points; angle formatting treats it as FormatD.
const (
	FormatD   Format = "d"
	FormatDM  Format = "dm"
	FormatDMS Format = "dms"
	FormatN   Format = "n"
)

// DefaultPrecision asks for the per-format default number of decimal places:
// 4 for degrees, 2 for minutes, 0 for seconds.
const DefaultPrecision = -1

// DefaultSeparator separates degree, minute, second and compass groups: a
// narrow no-break space.
const DefaultSeparator = "\u202f"

// ParseFormat validates a format name. The long names deg, deg+min and
// deg+min+sec are accepted as aliases.
func ParseFormat(s string) (Format, error) {
	switch s {
	case "d", "deg":
		return FormatD, nil
	case "dm", "deg+min":
		return FormatDM, nil
	case "dms", "deg+min+sec":
		return FormatDMS, nil
	case "n":
		return FormatN, nil
	}
	return "", errors.Wrapf(geodesy.ErrInvalidRange, "invalid format %q", s)
}

// Formatter renders angles with a given group separator. The zero value
// separates nothing; use Default for the narrow no-break space.
type Formatter struct {
	Separator string
}

var defaultFormatter = Formatter{Separator: DefaultSeparator}

// Default returns the formatter used by the package-level functions.
func Default() Formatter { return defaultFormatter }

// ToDMS converts decimal degrees to an unsigned deg/min/sec string using
// the default separator. It returns the empty string if deg is not finite.
func ToDMS(deg float64, format Format, dp int) string {
	return defaultFormatter.ToDMS(deg, format, dp)
}

// ToLat converts a latitude to a string with a N/S suffix.
func ToLat(deg float64, format Format, dp int) string {
	return defaultFormatter.ToLat(deg, format, dp)
}

// ToLon converts a longitude to a string with an E/W suffix.
func ToLon(deg float64, format Format, dp int) string {
	return defaultFormatter.ToLon(deg, format, dp)
}

// ToBrng converts a bearing to a string in the range 0°..360°.
func ToBrng(deg float64, format Format, dp int) string {
	return defaultFormatter.ToBrng(deg, format, dp)
}

// ToDMS converts decimal degrees to an unsigned deg/min/sec string. Degrees
// are padded to three integer digits, and rounding carries into the next
// larger unit (59′59.999″ rounds to the next whole degree). Pass
// DefaultPrecision for dp to use the format's default.
func (f Formatter) ToDMS(deg float64, format Format, dp int) string {
	if math.IsNaN(deg) || math.IsInf(deg, 0) {
		return ""
	}
	switch format {
	case FormatD, FormatDM, FormatDMS:
	default:
		format = FormatD
	}
	if dp < 0 {
		switch format {
		case FormatDM:
			dp = 2
		case FormatDMS:
			dp = 0
		default:
			dp = 4
		}
	}

	deg = math.Abs(deg)
	switch format {
	case FormatDM:
		d := math.Floor(deg)
		m := fixed(math.Mod(deg*60, 60), dp)
		if parsed(m) == 60 {
			m = fixed(0, dp)
			d++
		}
		if parsed(m) < 10 {
			m = "0" + m
		}
		return pad3(d) + "°" + f.Separator + m + "′"
	case FormatDMS:
		d := math.Floor(deg)
		m := math.Mod(math.Floor(deg*3600/60), 60)
		s := fixed(math.Mod(deg*3600, 60), dp)
		if parsed(s) == 60 {
			s = fixed(0, dp)
			m++
		}
		if m == 60 {
			m = 0
			d++
		}
		if parsed(s) < 10 {
			s = "0" + s
		}
		ms := strconv.Itoa(int(m))
		if m < 10 {
			ms = "0" + ms
		}
		return pad3(d) + "°" + f.Separator + ms + "′" + f.Separator + s + "″"
	default:
		d := fixed(deg, dp)
		v := parsed(d)
		if v < 100 {
			d = "0" + d
		}
		if v < 10 {
			d = "0" + d
		}
		return d + "°"
	}
}

// ToLat formats a latitude, wrapped to ±90°, with two integer digits of
// degrees and a N or S suffix. Non-finite input gives "–".
func (f Formatter) ToLat(deg float64, format Format, dp int) string {
	deg = Wrap90(deg)
	lat := f.ToDMS(deg, format, dp)
	if lat == "" {
		return "–"
	}
	return lat[1:] + f.Separator + hemisphere(deg, "N", "S")
}

// ToLon formats a longitude, wrapped to ±180°, with a E or W suffix.
// Non-finite input gives "–".
func (f Formatter) ToLon(deg float64, format Format, dp int) string {
	deg = Wrap180(deg)
	lon := f.ToDMS(deg, format, dp)
	if lon == "" {
		return "–"
	}
	return lon + f.Separator + hemisphere(deg, "E", "W")
}

// ToBrng formats a bearing wrapped to 0..360°; a value that rounds up to
// 360° is shown as 0°. Non-finite input gives "–".
func (f Formatter) ToBrng(deg float64, format Format, dp int) string {
	brng := f.ToDMS(Wrap360(deg), format, dp)
	if brng == "" {
		return "–"
	}
	return strings.Replace(brng, "360", "0", 1)
}

func hemisphere(deg float64, pos, neg string) string {
	if deg < 0 {
		return neg
	}
	return pos
}

func fixed(v float64, dp int) string {
	return strconv.FormatFloat(v, 'f', dp, 64)
}

func parsed(s string) float64 {
	v, _ := strconv.ParseFloat(s, 64)
	return v
}

func pad3(d float64) string {
	s := strconv.Itoa(int(d))
	for len(s) < 3 {
		s = "0" + s
	}
	return s
}
