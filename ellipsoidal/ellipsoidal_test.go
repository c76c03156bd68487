package ellipsoidal_test

import (
	"fmt"
	"math"
	"testing"

	"github.com/golang/geo/s2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tzneal/geodesy"
	"github.com/tzneal/geodesy/dms"
	"github.com/tzneal/geodesy/ellipsoidal"
	"github.com/tzneal/geodesy/literal"
)

func TestEllipsoidTable(t *testing.T) {
	all := ellipsoidal.Ellipsoids()
	require.Len(t, all, 9)
	for _, e := range all {
		assert.InDelta(t, e.A*(1-e.F), e.B, 0.1, "semi-minor axis of %s", e.Name)
		got, err := ellipsoidal.EllipsoidByName(e.Name)
		require.NoError(t, err)
		assert.Equal(t, e, got)
	}

	_, err := ellipsoidal.EllipsoidByName("Everest")
	assert.ErrorIs(t, err, geodesy.ErrInvalidArgument)
}

func TestNewEllipsoid(t *testing.T) {
	e, err := ellipsoidal.NewEllipsoid("wgs", 6378137, 1/298.257223563)
	require.NoError(t, err)
	assert.InDelta(t, ellipsoidal.WGS84.B, e.B, 1e-6)

	_, err = ellipsoidal.NewEllipsoid("bad", 0, 1/298.257223563)
	assert.ErrorIs(t, err, geodesy.ErrInvalidArgument)
	_, err = ellipsoidal.NewEllipsoid("bad", 6378137, 1/100.0)
	assert.ErrorIs(t, err, geodesy.ErrInvalidArgument)
}

func TestLatLonWrap(t *testing.T) {
	p := ellipsoidal.New(91, 181, 10)
	assert.Equal(t, 89.0, p.Lat())
	assert.Equal(t, -179.0, p.Lon())
	assert.Equal(t, 10.0, p.Height())

	p = p.WithLat(-95).WithLon(360).WithHeight(-3)
	assert.Equal(t, -85.0, p.Lat())
	assert.Equal(t, 0.0, p.Lon())
	assert.Equal(t, -3.0, p.Height())
	assert.True(t, p.IsValid())
}

func TestToCartesian(t *testing.T) {
	c := ellipsoidal.New(45, 45, 0).ToCartesian(ellipsoidal.WGS84)
	assert.InDelta(t, 3194419.145, c.X, 1e-3)
	assert.InDelta(t, 3194419.145, c.Y, 1e-3)
	assert.InDelta(t, 4487348.409, c.Z, 1e-3)
}

func TestCartesianRoundTrip(t *testing.T) {
	for lat := -89.5; lat <= 90; lat += 17.9 {
		for lon := -179.0; lon <= 180; lon += 33.3 {
			for _, h := range []float64{0, 99, -40, 12000} {
				p := ellipsoidal.New(lat, lon, h)
				c := p.ToCartesian(ellipsoidal.WGS84)
				q := c.ToLatLon(ellipsoidal.WGS84)
				assert.InDelta(t, p.Lat(), q.Lat(), 1e-9)
				assert.InDelta(t, p.Lon(), q.Lon(), 1e-9)
				assert.InDelta(t, p.Height(), q.Height(), 1e-3)

				c2 := q.ToCartesian(ellipsoidal.WGS84)
				assert.InDelta(t, c.X, c2.X, 1e-5)
				assert.InDelta(t, c.Y, c2.Y, 1e-5)
				assert.InDelta(t, c.Z, c2.Z, 1e-5)
			}
		}
	}
}

func TestCartesianToLatLon_PolarAxis(t *testing.T) {
	// exactly on the axis the latitude falls back to zero rather than NaN
	p := ellipsoidal.NewCartesian(0, 0, ellipsoidal.WGS84.B+10).ToLatLon(ellipsoidal.WGS84)
	assert.Equal(t, 0.0, p.Lat())
	assert.Equal(t, 0.0, p.Lon())
	assert.False(t, math.IsNaN(p.Height()))

	// a metre off the axis the closed form resolves normally
	p = ellipsoidal.NewCartesian(1, 0, ellipsoidal.WGS84.B+10).ToLatLon(ellipsoidal.WGS84)
	assert.InDelta(t, 90, p.Lat(), 1e-4)
	assert.InDelta(t, 10, p.Height(), 1e-3)
}

func TestHelmertIdentity(t *testing.T) {
	c := ellipsoidal.NewCartesian(3980574.247, -102.127, 4966830.065)
	assert.Equal(t, c, ellipsoidal.Helmert{S: 1}.Apply(c))

	shifted := ellipsoidal.Helmert{Tx: 1, Ty: -2, Tz: 3, S: 1}.Apply(c)
	assert.InDelta(t, c.X+1, shifted.X, 1e-9)
	assert.InDelta(t, c.Y-2, shifted.Y, 1e-9)
	assert.InDelta(t, c.Z+3, shifted.Z, 1e-9)
}

func TestParse(t *testing.T) {
	p, err := ellipsoidal.Parse(literal.Text("51°28′40″N, 000°00′05″W"))
	require.NoError(t, err)
	assert.InDelta(t, 51.477778, p.Lat(), 1e-6)
	assert.InDelta(t, -0.001389, p.Lon(), 1e-6)

	_, err = ellipsoidal.Parse(literal.Text("north, west"))
	assert.ErrorIs(t, err, geodesy.ErrInvalidArgument)
}

func TestFormatString(t *testing.T) {
	p := ellipsoidal.New(51.47788, -0.00147, 12.3)
	s, err := p.FormatString(dms.FormatN, dms.DefaultPrecision, 2)
	require.NoError(t, err)
	assert.Equal(t, "51.4779, -0.0015 +12.30m", s)

	s, err = p.FormatString(dms.FormatD, 2, -1)
	require.NoError(t, err)
	assert.Equal(t, "51.48° N, 000.00° W", s)

	_, err = p.FormatString(dms.Format("deg"), 2, -1)
	assert.ErrorIs(t, err, geodesy.ErrInvalidRange)
}

func TestEqualsAndLatLng(t *testing.T) {
	p := ellipsoidal.New(52.205, 0.119, 0)
	assert.True(t, p.Equals(ellipsoidal.New(52.205, 0.119, 0)))
	assert.False(t, p.Equals(ellipsoidal.New(52.205, 0.119, 1)))

	ll := p.LatLng()
	assert.InDelta(t, 52.205, ll.Lat.Degrees(), 1e-12)
	q := ellipsoidal.FromLatLng(s2.LatLngFromDegrees(52.205, 0.119), 0)
	assert.InDelta(t, p.Lat(), q.Lat(), 1e-12)

	g := p.GeoJSON()
	assert.Equal(t, "Point", g.Type)
	assert.Equal(t, []float64{0.119, 52.205}, g.Coordinates)
}

func ExampleLatLon_ToCartesian() {
	c := ellipsoidal.New(45, 45, 0).ToCartesian(ellipsoidal.WGS84)
	fmt.Println(c)
	s, _ := c.ToLatLon(ellipsoidal.WGS84).FormatString(dms.FormatN, 6, -1)
	fmt.Println(s)
	// Output:
	// [3194419.145,3194419.145,4487348.409]
	// 45.000000, 45.000000
}
