package dms

import (
	"strconv"

	"github.com/pkg/errors"
	"github.com/tzneal/geodesy"
)

// LatLon formats a latitude/longitude pair as "lat, lon". FormatN gives
// signed decimal degrees (4 places by default); the other formats give
// unsigned deg/min/sec values with compass suffixes.
func (f Formatter) LatLon(lat, lon float64, format Format, dp int) (string, error) {
	switch format {
	case FormatN:
		if dp < 0 {
			dp = 4
		}
		return fixed(lat, dp) + ", " + fixed(lon, dp), nil
	case FormatD, FormatDM, FormatDMS:
		return f.ToLat(lat, format, dp) + ", " + f.ToLon(lon, format, dp), nil
	}
	return "", errors.Wrapf(geodesy.ErrInvalidRange, "invalid format %q", string(format))
}

// HeightSuffix renders a height as " +12.30m" or " -4m" with dp decimal
// places; a negative dp gives the empty string.
func HeightSuffix(height float64, dp int) string {
	if dp < 0 {
		return ""
	}
	sign := " "
	if height >= 0 {
		sign = " +"
	}
	return sign + strconv.FormatFloat(height, 'f', dp, 64) + "m"
}
