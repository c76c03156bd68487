package dms

import (
	"math"

	"github.com/pkg/errors"
	"github.com/tzneal/geodesy"
)

var cardinals = [16]string{
	"N", "NNE", "NE", "ENE",
	"E", "ESE", "SE", "SSE",
	"S", "SSW", "SW", "WSW",
	"W", "WNW", "NW", "NNW",
}

// CompassPoint returns the compass point a bearing falls in. precision 1
// gives the four cardinal points, 2 adds the intercardinals and 3 the
// secondary intercardinals.
func CompassPoint(bearing float64, precision int) (string, error) {
	if precision < 1 || precision > 3 {
		return "", errors.Wrapf(geodesy.ErrInvalidRange, "invalid compass precision %d", precision)
	}
	bearing = Wrap360(bearing)
	n := 4 << (precision - 1) // 4, 8 or 16 points
	sector := int(math.Floor(bearing*float64(n)/360+0.5)) % n
	return cardinals[sector*16/n], nil
}
