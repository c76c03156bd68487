package utm

import (
	"math"

	"github.com/pkg/errors"
	"github.com/tzneal/geodesy"
	"github.com/tzneal/geodesy/ellipsoidal"
)

// number of terms of the Krüger series used in each direction
const nTerms = 6

// Series coefficients in Helmert's n for the rectifying-to-conformal (alpha)
// and conformal-to-rectifying (beta) latitude transforms, developed to n⁸
// after C. Rollins (2006). Row k holds the coefficients of n¹..n⁸ for the
// 2(k+1) harmonic.
var (
	alphaSeries = [nTerms][8]float64{
		{1.0 / 2, -2.0 / 3, 5.0 / 16, 41.0 / 180, -127.0 / 288, 7891.0 / 37800, 72161.0 / 387072, -18975107.0 / 50803200},
		{0, 13.0 / 48, -3.0 / 5, 557.0 / 1440, 281.0 / 630, -1983433.0 / 1935360, 13769.0 / 28800, 148003883.0 / 174182400},
		{0, 0, 61.0 / 240, -103.0 / 140, 15061.0 / 26880, 167603.0 / 181440, -67102379.0 / 29030400, 79682431.0 / 79833600},
		{0, 0, 0, 49561.0 / 161280, -179.0 / 168, 6601661.0 / 7257600, 97445.0 / 49896, -40176129013.0 / 7664025600},
		{0, 0, 0, 0, 34729.0 / 80640, -3418889.0 / 1995840, 14644087.0 / 9123840, 2605413599.0 / 622702080},
		{0, 0, 0, 0, 0, 212378941.0 / 319334400, -30705481.0 / 10378368, 175214326799.0 / 58118860800},
	}
	betaSeries = [nTerms][8]float64{
		{-1.0 / 2, 2.0 / 3, -37.0 / 96, 1.0 / 360, 81.0 / 512, -96199.0 / 604800, 5406467.0 / 38707200, -7944359.0 / 67737600},
		{0, -1.0 / 48, -1.0 / 15, 437.0 / 1440, -46.0 / 105, 1118711.0 / 3870720, -51841.0 / 1209600, -24749483.0 / 348364800},
		{0, 0, -17.0 / 480, 37.0 / 840, 209.0 / 4480, -5569.0 / 90720, -9261899.0 / 58060800, 6457463.0 / 17740800},
		{0, 0, 0, -4397.0 / 161280, 11.0 / 504, 830251.0 / 7257600, -466511.0 / 2494800, -324154477.0 / 7664025600},
		{0, 0, 0, 0, -4583.0 / 161280, 108847.0 / 3991680, 8005831.0 / 63866880, -22894433.0 / 124540416},
		{0, 0, 0, 0, 0, -20648693.0 / 638668800, 16363163.0 / 518918400, 2204645983.0 / 12915302400},
	}
)

// transverseMercator projects one zone of an ellipsoid: a central meridian,
// the latitude of origin on the equator and the given false offsets.
type transverseMercator struct {
	centralMeridian float64 // radians
	falseEasting    float64 // metres
	falseNorthing   float64 // metres

	eps     float64 // eccentricity
	k0R4    float64 // scale factor times the meridional isoperimetric radius
	k0R4inv float64

	alpha [nTerms]float64
	beta  [nTerms]float64
}

func newTransverseMercator(e ellipsoidal.Ellipsoid, centralMeridian, falseEasting, falseNorthing, scaleFactor float64) (*transverseMercator, error) {
	if e.A <= 0 {
		return nil, errors.Wrap(geodesy.ErrInvalidArgument, "Semi-major axis must be greater than zero")
	}
	if invF := 1 / e.F; invF < 150 {
		return nil, errors.Wrapf(geodesy.ErrInvalidArgument, "inverse ellipsoid flattening %g out of range", invF)
	}
	if centralMeridian < -math.Pi || centralMeridian > 2*math.Pi {
		return nil, errors.Wrapf(geodesy.ErrInvalidRange, "central meridian %g out of range", centralMeridian)
	}
	const minScaleFactor, maxScaleFactor = 0.1, 10.0
	if scaleFactor < minScaleFactor || scaleFactor > maxScaleFactor {
		return nil, errors.Wrapf(geodesy.ErrInvalidRange, "scale factor %g out of range", scaleFactor)
	}
	if centralMeridian > math.Pi {
		centralMeridian -= 2 * math.Pi
	}

	t := &transverseMercator{
		centralMeridian: centralMeridian,
		falseEasting:    falseEasting,
		falseNorthing:   falseNorthing,
		eps:             math.Sqrt(2*e.F - e.F*e.F),
	}

	// Helmert's n and its powers
	n := e.F / (2 - e.F)
	var np [11]float64
	np[0] = 1
	for i := 1; i < len(np); i++ {
		np[i] = np[i-1] * n
	}
	for k := 0; k < nTerms; k++ {
		for p := 0; p < 8; p++ {
			t.alpha[k] += alphaSeries[k][p] * np[p+1]
			t.beta[k] += betaSeries[k][p] * np[p+1]
		}
	}

	R4oa := (1 + np[2]/4 + np[4]/64 + np[6]/256 + 25*np[8]/16384 + 49*np[10]/65536) / (1 + n)
	t.k0R4 = R4oa * scaleFactor * e.A
	t.k0R4inv = 1 / t.k0R4
	return t, nil
}

// lonFromCentralMeridian returns λ relative to the zone's central meridian
// in (-π, π].
func (t *transverseMercator) lonFromCentralMeridian(λ float64) float64 {
	λ -= t.centralMeridian
	if λ > math.Pi {
		λ -= 2 * math.Pi
	}
	if λ < -math.Pi {
		λ += 2 * math.Pi
	}
	return λ
}

// checkLatLon rejects points more than 70° from the central meridian, its
// antimeridian or the poles, where the series loses accuracy.
func checkLatLon(φ, Δλ float64) error {
	testAngle := math.Min(math.Abs(Δλ), math.Min(math.Abs(Δλ-math.Pi), math.Abs(Δλ+math.Pi)))
	testAngle = math.Min(testAngle, math.Min(math.Pi/2-φ, math.Pi/2+φ))

	const maxDeltaLon = 70 * math.Pi / 180
	if testAngle > maxDeltaLon {
		return errors.Wrapf(geodesy.ErrInvalidRange, "longitude %.6f° from central meridian", Δλ*180/math.Pi)
	}
	return nil
}

// forward projects (φ, λ), in radians, to easting and northing.
func (t *transverseMercator) forward(φ, λ float64) (easting, northing float64, err error) {
	Δλ := t.lonFromCentralMeridian(λ)
	if err := checkLatLon(φ, Δλ); err != nil {
		return 0, 0, err
	}

	sinλ, cosλ := math.Sincos(Δλ)
	sinφ, cosφ := math.Sincos(φ)

	// geodetic to conformal latitude χ
	P := math.Exp(t.eps * math.Atanh(t.eps*sinφ))
	part1 := (1 + sinφ) / P
	part2 := (1 - sinφ) * P
	denom := part1 + part2
	cosχ := 2 * cosφ / denom
	sinχ := (part1 - part2) / denom

	// spherical transverse Mercator on the conformal sphere
	U := math.Atanh(cosχ * sinλ)
	V := math.Atan2(sinχ, cosχ*cosλ)

	// conformal sphere to the rectifying plane
	xStar, yStar := U, V
	for k := nTerms - 1; k >= 0; k-- {
		j := float64(2 * (k + 1))
		xStar += t.alpha[k] * math.Sinh(j*U) * math.Cos(j*V)
		yStar += t.alpha[k] * math.Cosh(j*U) * math.Sin(j*V)
	}

	return t.k0R4*xStar + t.falseEasting, t.k0R4*yStar + t.falseNorthing, nil
}

// inverse returns (φ, λ), in radians, of easting and northing.
func (t *transverseMercator) inverse(easting, northing float64) (φ, λ float64) {
	xStar := t.k0R4inv * (easting - t.falseEasting)
	yStar := t.k0R4inv * (northing - t.falseNorthing)

	U, V := xStar, yStar
	for k := nTerms - 1; k >= 0; k-- {
		j := float64(2 * (k + 1))
		U += t.beta[k] * math.Sinh(j*xStar) * math.Cos(j*yStar)
		V += t.beta[k] * math.Cosh(j*xStar) * math.Sin(j*yStar)
	}

	coshU, sinhU := math.Cosh(U), math.Sinh(U)
	sinV, cosV := math.Sincos(V)

	var Δλ float64
	if math.Abs(cosV) >= 1e-11 || math.Abs(coshU) >= 1e-11 {
		Δλ = math.Atan2(sinhU, cosV)
	}

	φ = geodeticLat(sinV/coshU, t.eps)
	λ = t.centralMeridian + Δλ
	if λ > math.Pi {
		λ -= 2 * math.Pi
	}
	if λ <= -math.Pi {
		λ += 2 * math.Pi
	}
	return φ, λ
}

// geodeticLat recovers geodetic latitude from the sine of conformal
// latitude χ by fixed-point iteration.
func geodeticLat(sinχ, e float64) float64 {
	sOld := 1.0e99
	s := sinχ
	onePlus, oneMinus := 1+sinχ, 1-sinχ

	for n := 0; n < 30; n++ {
		p := math.Exp(e * math.Atanh(e*s))
		pSq := p * p
		s = (onePlus*pSq - oneMinus) / (onePlus*pSq + oneMinus)
		if math.Abs(s-sOld) < 1.0e-12 {
			break
		}
		sOld = s
	}
	return math.Asin(s)
}
