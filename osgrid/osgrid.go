// Package osgrid converts between geodetic positions and Ordnance Survey
// National Grid references, the transverse Mercator projection of the
// Airy 1830 ellipsoid used across Great Britain.
package osgrid

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/tzneal/geodesy"
	"github.com/tzneal/geodesy/datum"
	"github.com/tzneal/geodesy/ellipsoidal"
)

// National Grid projection constants.
const (
	scaleFactor    = 0.9996012717 // F0, on the central meridian
	originLat      = 49.0         // φ0, true origin
	originLon      = -2.0         // λ0, true origin
	originEasting  = 400e3        // E0, easting of true origin
	originNorthing = -100e3       // N0, northing of true origin

	maxEasting  = 700e3
	maxNorthing = 1300e3
)

var airy = ellipsoidal.Airy1830

// GridRef is an Ordnance Survey grid reference in metres from the false
// origin south west of the Scilly Isles.
type GridRef struct {
	Easting, Northing float64
}

// NewGridRef returns the grid reference (easting, northing), which must lie
// within the grid.
func NewGridRef(easting, northing float64) (GridRef, error) {
	if !(easting >= 0 && easting <= maxEasting) {
		return GridRef{}, errors.Wrapf(geodesy.ErrInvalidGridRef, "invalid easting %g", easting)
	}
	if !(northing >= 0 && northing <= maxNorthing) {
		return GridRef{}, errors.Wrapf(geodesy.ErrInvalidGridRef, "invalid northing %g", northing)
	}
	return GridRef{Easting: easting, Northing: northing}, nil
}

// meridional arc from the true origin's latitude to φ, scaled by F0
func meridionalArc(φ, φ0 float64) float64 {
	a, b := airy.A, airy.B
	n := (a - b) / (a + b)
	n2, n3 := n*n, n*n*n

	Ma := (1 + n + (5.0/4)*n2 + (5.0/4)*n3) * (φ - φ0)
	Mb := (3*n + 3*n*n + (21.0/8)*n3) * math.Sin(φ-φ0) * math.Cos(φ+φ0)
	Mc := ((15.0/8)*n2 + (15.0/8)*n3) * math.Sin(2*(φ-φ0)) * math.Cos(2*(φ+φ0))
	Md := (35.0 / 24) * n3 * math.Sin(3*(φ-φ0)) * math.Cos(3*(φ+φ0))
	return b * scaleFactor * (Ma - Mb + Mc - Md)
}

// FromLatLon returns the grid reference of p, rounded to the millimetre.
// Points not on OSGB36 are converted to it first.
func FromLatLon(p datum.LatLon) (GridRef, error) {
	if p.Datum() != datum.OSGB36 {
		q, err := p.ConvertDatum(datum.OSGB36)
		if err != nil {
			return GridRef{}, errors.Wrap(err, "converting to OSGB36")
		}
		p = q
	}

	φ := p.Lat() * math.Pi / 180
	λ := p.Lon() * math.Pi / 180
	φ0 := originLat * math.Pi / 180
	λ0 := originLon * math.Pi / 180
	a, b := airy.A, airy.B
	F0 := scaleFactor
	e2 := 1 - (b*b)/(a*a)

	sinφ, cosφ := math.Sincos(φ)
	ν := a * F0 / math.Sqrt(1-e2*sinφ*sinφ)                // transverse radius of curvature
	ρ := a * F0 * (1 - e2) / math.Pow(1-e2*sinφ*sinφ, 1.5) // meridional radius of curvature
	η2 := ν/ρ - 1

	M := meridionalArc(φ, φ0)

	cos3φ := cosφ * cosφ * cosφ
	cos5φ := cos3φ * cosφ * cosφ
	tan2φ := math.Tan(φ) * math.Tan(φ)
	tan4φ := tan2φ * tan2φ

	I := M + originNorthing
	II := (ν / 2) * sinφ * cosφ
	III := (ν / 24) * sinφ * cos3φ * (5 - tan2φ + 9*η2)
	IIIA := (ν / 720) * sinφ * cos5φ * (61 - 58*tan2φ + tan4φ)
	IV := ν * cosφ
	V := (ν / 6) * cos3φ * (ν/ρ - tan2φ)
	VI := (ν / 120) * cos5φ * (5 - 18*tan2φ + tan4φ + 14*η2 - 58*tan2φ*η2)

	Δλ := λ - λ0
	Δλ2 := Δλ * Δλ
	Δλ3 := Δλ2 * Δλ
	Δλ4 := Δλ3 * Δλ
	Δλ5 := Δλ4 * Δλ
	Δλ6 := Δλ5 * Δλ

	N := I + II*Δλ2 + III*Δλ4 + IIIA*Δλ6
	E := originEasting + IV*Δλ + V*Δλ3 + VI*Δλ5

	return NewGridRef(math.Round(E*1000)/1000, math.Round(N*1000)/1000)
}

// ToLatLon returns the position of g on datum d. The height is zero on
// OSGB36; on other datums it is whatever the datum shift leaves.
func (g GridRef) ToLatLon(d datum.Datum) (datum.LatLon, error) {
	E, N := g.Easting, g.Northing
	a, b := airy.A, airy.B
	φ0 := originLat * math.Pi / 180
	λ0 := originLon * math.Pi / 180
	F0 := scaleFactor
	e2 := 1 - (b*b)/(a*a)

	φ, M := φ0, 0.0
	for {
		φ = (N-originNorthing-M)/(a*F0) + φ
		M = meridionalArc(φ, φ0)
		if math.Abs(N-originNorthing-M) < 0.00001 { // 0.01mm
			break
		}
	}

	sinφ, cosφ := math.Sincos(φ)
	ν := a * F0 / math.Sqrt(1-e2*sinφ*sinφ)
	ρ := a * F0 * (1 - e2) / math.Pow(1-e2*sinφ*sinφ, 1.5)
	η2 := ν/ρ - 1

	tanφ := math.Tan(φ)
	tan2φ := tanφ * tanφ
	tan4φ := tan2φ * tan2φ
	tan6φ := tan4φ * tan2φ
	secφ := 1 / cosφ
	ν3 := ν * ν * ν
	ν5 := ν3 * ν * ν
	ν7 := ν5 * ν * ν

	VII := tanφ / (2 * ρ * ν)
	VIII := tanφ / (24 * ρ * ν3) * (5 + 3*tan2φ + η2 - 9*tan2φ*η2)
	IX := tanφ / (720 * ρ * ν5) * (61 + 90*tan2φ + 45*tan4φ)
	X := secφ / ν
	XI := secφ / (6 * ν3) * (ν/ρ + 2*tan2φ)
	XII := secφ / (120 * ν5) * (5 + 28*tan2φ + 24*tan4φ)
	XIIA := secφ / (5040 * ν7) * (61 + 662*tan2φ + 1320*tan4φ + 720*tan6φ)

	dE := E - originEasting
	dE2 := dE * dE
	dE3 := dE2 * dE
	dE4 := dE2 * dE2
	dE5 := dE3 * dE2
	dE6 := dE4 * dE2
	dE7 := dE5 * dE2

	φ = φ - VII*dE2 + VIII*dE4 - IX*dE6
	λ := λ0 + X*dE - XI*dE3 + XII*dE5 - XIIA*dE7

	p := datum.New(φ*180/math.Pi, λ*180/math.Pi, 0, datum.OSGB36)
	if d == datum.OSGB36 {
		return p, nil
	}
	return p.ConvertDatum(d)
}

var (
	numericRef = regexp.MustCompile(`^(\d+(?:\.\d+)?),\s*(\d+(?:\.\d+)?)$`)
	lettersRef = regexp.MustCompile(`(?i)^[HNST][ABCDEFGHJKLMNOPQRSTUVWXYZ]\s*[0-9]+\s*[0-9]+$`)
	whitespace = regexp.MustCompile(`\s+`)
)

// Parse reads a grid reference in either of the forms "TG 51409 13177"
// (with 1 to 5 digits each for easting and northing, spaces optional) or
// "651409,313177" in metres.
func Parse(s string) (GridRef, error) {
	s = strings.TrimSpace(s)

	if m := numericRef.FindStringSubmatch(s); m != nil {
		e, err := strconv.ParseFloat(m[1], 64)
		if err != nil {
			return GridRef{}, errors.Wrapf(geodesy.ErrInvalidGridRef, "%q", s)
		}
		n, err := strconv.ParseFloat(m[2], 64)
		if err != nil {
			return GridRef{}, errors.Wrapf(geodesy.ErrInvalidGridRef, "%q", s)
		}
		return NewGridRef(e, n)
	}

	if !lettersRef.MatchString(s) {
		return GridRef{}, errors.Wrapf(geodesy.ErrInvalidGridRef, "%q", s)
	}

	// letters map A→0, B→1, ... skipping I
	upper := strings.ToUpper(s)
	l1 := int(upper[0] - 'A')
	l2 := int(upper[1] - 'A')
	if l1 > 7 {
		l1--
	}
	if l2 > 7 {
		l2--
	}

	// 100km square indexes from the false origin (square SV)
	e100km := ((l1-2)%5)*5 + l2%5
	n100km := (19 - (l1/5)*5) - l2/5

	digits := whitespace.Split(strings.TrimSpace(s[2:]), -1)
	if len(digits) == 1 {
		half := len(digits[0]) / 2
		digits = []string{digits[0][:half], digits[0][half:]}
	}
	if len(digits) != 2 || len(digits[0]) != len(digits[1]) || len(digits[0]) > 5 {
		return GridRef{}, errors.Wrapf(geodesy.ErrInvalidGridRef, "%q", s)
	}

	// standardise to metres
	e, _ := strconv.Atoi(digits[0] + strings.Repeat("0", 5-len(digits[0])))
	n, _ := strconv.Atoi(digits[1] + strings.Repeat("0", 5-len(digits[1])))

	g, err := NewGridRef(float64(e100km*100000+e), float64(n100km*100000+n))
	if err != nil {
		return GridRef{}, errors.Wrapf(err, "%q", s)
	}
	return g, nil
}

// Format renders g with the given number of digits, which must be one of
// 0, 2, 4, 6, 8 or 10. Zero gives the fully numeric form "651409.903,313177.27"
// with at least six integer digits each; otherwise the grid letters are
// followed by easting and northing truncated to digits/2 each, as in
// "TG 51409 13177".
func (g GridRef) Format(digits int) (string, error) {
	switch digits {
	case 0, 2, 4, 6, 8, 10:
	default:
		return "", errors.Wrapf(geodesy.ErrInvalidRange, "invalid precision %d", digits)
	}
	e, n := g.Easting, g.Northing

	if digits == 0 {
		return metres(e) + "," + metres(n), nil
	}

	e100km := int(math.Floor(e / 100000))
	n100km := int(math.Floor(n / 100000))

	// the 100km indexes as grid letters
	l1 := (19 - n100km) - (19-n100km)%5 + (e100km+10)/5
	l2 := (19-n100km)*5%25 + e100km%5
	if l1 > 7 {
		l1++
	}
	if l2 > 7 {
		l2++
	}
	letters := string([]byte{byte('A' + l1), byte('A' + l2)})

	scale := math.Pow(10, float64(5-digits/2))
	ee := int(math.Floor(math.Mod(e, 100000) / scale))
	nn := int(math.Floor(math.Mod(n, 100000) / scale))
	return letters + " " + pad(ee, digits/2) + " " + pad(nn, digits/2), nil
}

func pad(v, width int) string {
	s := strconv.Itoa(v)
	if len(s) < width {
		s = strings.Repeat("0", width-len(s)) + s
	}
	return s
}

// metres renders v to at most three decimals with six integer digits.
func metres(v float64) string {
	s := strconv.FormatFloat(math.Round(v*1000)/1000, 'f', -1, 64)
	intDigits := strings.IndexByte(s, '.')
	if intDigits < 0 {
		intDigits = len(s)
	}
	if intDigits < 6 {
		s = strings.Repeat("0", 6-intDigits) + s
	}
	return s
}

// String renders g as a ten-digit reference.
func (g GridRef) String() string {
	s, _ := g.Format(10)
	return s
}
