package utm_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tzneal/geodesy"
	"github.com/tzneal/geodesy/datum"
	"github.com/tzneal/geodesy/ellipsoidal"
	"github.com/tzneal/geodesy/utm"
)

func TestFromLatLon(t *testing.T) {
	testCases := []struct {
		name       string
		lat, lon   float64
		zone       int
		hemisphere utm.Hemisphere
		e, n       float64
	}{
		{"eiffel tower", 48.8582, 2.2945, 31, utm.North, 448251.795, 5411932.678},
		{"origin", 0, 0, 31, utm.North, 166021.443, 0},
		{"sydney", -33.857, 151.215, 56, utm.South, 334873.199, 6252266.092},
		{"greenwich", 51.4778, -0.0016, 30, utm.North, 708207.008, 5707224.258},
		{"bergen", 60.39, 5.32, 32, utm.North, 297230.220, 6700510.175},
		{"svalbard", 78, 15, 33, utm.North, 500000, 8658369.586},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			u, err := utm.Default.FromLatLon(datum.New(tc.lat, tc.lon, 0, datum.WGS84), 0)
			require.NoError(t, err)
			assert.Equal(t, tc.zone, u.Zone)
			assert.Equal(t, tc.hemisphere, u.Hemisphere)
			assert.InDelta(t, tc.e, u.Easting, 0.001)
			assert.InDelta(t, tc.n, u.Northing, 0.001)
		})
	}
}

func TestToLatLon(t *testing.T) {
	u, err := utm.ParseCoord("31 N 448251.795 5411932.678")
	require.NoError(t, err)

	p, err := utm.Default.ToLatLon(u)
	require.NoError(t, err)
	assert.InDelta(t, 48.8582, p.Lat(), 1e-8)
	assert.InDelta(t, 2.2945, p.Lon(), 1e-8)
	assert.Equal(t, 0.0, p.Height())
	assert.Equal(t, datum.WGS84, p.Datum())

	p, err = utm.Default.ToLatLon(utm.Coord{Zone: 56, Hemisphere: utm.South, Easting: 334873.199, Northing: 6252266.092})
	require.NoError(t, err)
	assert.InDelta(t, -33.857, p.Lat(), 1e-7)
	assert.InDelta(t, 151.215, p.Lon(), 1e-7)
}

func TestZoneOverride(t *testing.T) {
	greenwich := datum.New(51.4778, -0.0016, 0, datum.WGS84)

	u, err := utm.Default.FromLatLon(greenwich, 31)
	require.NoError(t, err)
	assert.Equal(t, 31, u.Zone)
	assert.InDelta(t, 291570.831, u.Easting, 0.001)
	assert.InDelta(t, 5707233.367, u.Northing, 0.001)

	_, err = utm.Default.FromLatLon(greenwich, 33)
	assert.ErrorIs(t, err, geodesy.ErrInvalidRange)

	c, err := utm.New(datum.WGS84, 31)
	require.NoError(t, err)
	u, err = c.FromLatLon(greenwich, 0)
	require.NoError(t, err)
	assert.Equal(t, 31, u.Zone)

	// the override disables the Norway exception
	u, err = utm.Default.FromLatLon(datum.New(60.39, 5.32, 0, datum.WGS84), 31)
	require.NoError(t, err)
	assert.Equal(t, 31, u.Zone)

	// zones 60 and 1 are adjacent
	u, err = utm.Default.FromLatLon(datum.New(10, 179.5, 0, datum.WGS84), 1)
	require.NoError(t, err)
	assert.Equal(t, 1, u.Zone)
}

func TestOtherDatum(t *testing.T) {
	// Greenwich on OSGB36
	p := datum.New(51.47728415, 0.0000196, -45.905, datum.OSGB36)
	u, err := utm.Default.FromLatLon(p, 0)
	require.NoError(t, err)
	assert.Equal(t, 30, u.Zone)
	assert.InDelta(t, 708207.008, u.Easting, 0.05)
	assert.InDelta(t, 5707224.258, u.Northing, 0.05)

	c, err := utm.New(datum.ED50, 0)
	require.NoError(t, err)
	assert.Equal(t, datum.ED50, c.Datum())
	q, err := c.ToLatLon(u)
	require.NoError(t, err)
	assert.Equal(t, datum.ED50, q.Datum())
}

func TestRoundTrip(t *testing.T) {
	for lon := -177.0; lon < 180; lon += 3 {
		for lat := -80.0; lat <= 84; lat += 2 {
			p := datum.New(lat, lon, 0, datum.WGS84)
			u, err := utm.Default.FromLatLon(p, 0)
			require.NoError(t, err, "converting %s", p)

			q, err := utm.Default.ToLatLon(u)
			require.NoError(t, err, "converting %s", u)
			assert.InDelta(t, lat, q.Lat(), 1e-7, "round trip of %s", p)
			assert.InDelta(t, lon, q.Lon(), 1e-7, "round trip of %s", p)
		}
	}
}

func TestOutOfRange(t *testing.T) {
	_, err := utm.Default.FromLatLon(datum.New(85, 0, 0, datum.WGS84), 0)
	assert.ErrorIs(t, err, geodesy.ErrInvalidRange)
	_, err = utm.Default.FromLatLon(datum.New(-81, 0, 0, datum.WGS84), 0)
	assert.ErrorIs(t, err, geodesy.ErrInvalidRange)

	for _, u := range []utm.Coord{
		{Zone: 0, Hemisphere: utm.North, Easting: 500000, Northing: 0},
		{Zone: 61, Hemisphere: utm.North, Easting: 500000, Northing: 0},
		{Zone: 31, Hemisphere: utm.North, Easting: 50000, Northing: 0},
		{Zone: 31, Hemisphere: utm.South, Easting: 500000, Northing: 10000001},
	} {
		_, err := utm.Default.ToLatLon(u)
		assert.ErrorIs(t, err, geodesy.ErrInvalidRange, "converting %s", u)
	}
	_, err = utm.Default.ToLatLon(utm.Coord{Zone: 31, Hemisphere: 'X', Easting: 500000})
	assert.ErrorIs(t, err, geodesy.ErrInvalidArgument)
}

func TestNew(t *testing.T) {
	_, err := utm.New(datum.WGS84, 61)
	assert.ErrorIs(t, err, geodesy.ErrInvalidRange)

	bad := datum.Datum{Name: "bad", Ellipsoid: ellipsoidal.Ellipsoid{Name: "bad", A: 0, F: 1 / 298.257223563}}
	_, err = utm.New(bad, 0)
	assert.ErrorIs(t, err, geodesy.ErrInvalidArgument)

	flat := datum.Datum{Name: "flat", Ellipsoid: ellipsoidal.Ellipsoid{Name: "flat", A: 6378137, F: 1.0 / 100}}
	_, err = utm.New(flat, 0)
	assert.ErrorIs(t, err, geodesy.ErrInvalidArgument)
}

func TestFormatAndParse(t *testing.T) {
	u := utm.Coord{Zone: 31, Hemisphere: utm.North, Easting: 448251.795, Northing: 5411932.678}
	assert.Equal(t, "31 N 448252 5411933", u.String())
	assert.Equal(t, "31 N 448251.795 5411932.678", u.Format(3))
	assert.Equal(t, "01 S 500000 0", utm.Coord{Zone: 1, Hemisphere: utm.South, Easting: 500000}.String())

	p, err := utm.ParseCoord("  31 n   448251.795 5411932.678 ")
	require.NoError(t, err)
	assert.Equal(t, u, p)

	for _, in := range []string{"", "31 N 448251", "0 N 448251 5411932", "31 X 448251 5411932", "31 N east 5411932", "31 N 448251 north", "31N 448251 5411932"} {
		_, err := utm.ParseCoord(in)
		assert.ErrorIs(t, err, geodesy.ErrInvalidArgument, in)
	}
}

func ExampleConverter_FromLatLon() {
	u, err := utm.Default.FromLatLon(datum.New(48.8582, 2.2945, 0, datum.WGS84), 0)
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(u.Format(3))
	// Output: 31 N 448251.795 5411932.678
}
