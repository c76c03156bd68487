package ned_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tzneal/geodesy/datum"
	"github.com/tzneal/geodesy/ned"
)

var (
	origin = ned.New(49.66618, 3.45063, 99, datum.WGS84)
	target = ned.New(48.88667, 2.37472, 64, datum.WGS84)
)

func TestDeltaTo(t *testing.T) {
	d, err := origin.DeltaTo(target)
	require.NoError(t, err)
	assert.InDelta(t, -86127, d.North, 0.5)
	assert.InDelta(t, -78901, d.East, 0.5)
	assert.InDelta(t, 1104, d.Down, 0.5)
	assert.Equal(t, "[N:-86127,E:-78901,D:1104]", d.String())
	assert.Equal(t, "[N:-86126.7,E:-78900.9,D:1104.2]", d.Format(1))

	assert.InDelta(t, 116809.178, d.Length(), 0.001)
	assert.InDelta(t, 222.493, d.Bearing(), 0.001)
	assert.InDelta(t, -0.542, d.Elevation(), 0.001)
}

func TestDestinationPoint(t *testing.T) {
	d, err := origin.DeltaTo(target)
	require.NoError(t, err)

	p := origin.DestinationPoint(d)
	// a millimetre is about 1e-8°
	assert.InDelta(t, target.Lat(), p.Lat(), 1e-8)
	assert.InDelta(t, target.Lon(), p.Lon(), 1e-8)
	assert.InDelta(t, target.Height(), p.Height(), 0.001)
	assert.Equal(t, datum.WGS84, p.Datum())
}

func TestDeltaAcrossDatums(t *testing.T) {
	other, err := target.ConvertDatum(datum.OSGB36)
	require.NoError(t, err)

	d1, err := origin.DeltaTo(target)
	require.NoError(t, err)
	d2, err := origin.DeltaTo(ned.LatLon{LatLon: other})
	require.NoError(t, err)
	assert.InDelta(t, d1.North, d2.North, 0.05)
	assert.InDelta(t, d1.East, d2.East, 0.05)
	assert.InDelta(t, d1.Down, d2.Down, 0.05)
}

func TestDeltaFromDistanceBearingElevation(t *testing.T) {
	d := ned.DeltaFromDistanceBearingElevation(116809.178, 222.4929, -0.5416)
	assert.InDelta(t, -86127, d.North, 0.5)
	assert.InDelta(t, -78901, d.East, 0.5)
	assert.InDelta(t, 1104, d.Down, 0.5)

	up := ned.DeltaFromDistanceBearingElevation(100, 0, 90)
	assert.InDelta(t, 0, up.North, 1e-9)
	assert.InDelta(t, -100, up.Down, 1e-9)
	assert.InDelta(t, 90, up.Elevation(), 1e-9)
}

func TestNvector(t *testing.T) {
	p := ned.New(45, 45, 100, datum.WGS84)
	n := p.ToNvector()
	assert.InDelta(t, 0.5, n.X, 1e-15)
	assert.InDelta(t, 0.5, n.Y, 1e-15)
	assert.InDelta(t, 0.7071067811865475, n.Z, 1e-15)
	assert.Equal(t, 100.0, n.Height())
	assert.Equal(t, "[0.500,0.500,0.707,100.000m]", n.String())

	c := n.ToCartesian()
	assert.InDelta(t, 3194469.145, c.X, 0.001)
	assert.InDelta(t, 3194469.145, c.Y, 0.001)
	assert.InDelta(t, 4487419.120, c.Z, 0.001)

	q := n.ToLatLon()
	assert.InDelta(t, 45, q.Lat(), 1e-12)
	assert.InDelta(t, 45, q.Lon(), 1e-12)
	assert.Equal(t, 100.0, q.Height())
}

func TestFromCartesian(t *testing.T) {
	for _, p := range []ned.LatLon{
		ned.New(45, 45, 100, datum.WGS84),
		ned.New(-33.9, 151.2, 0, datum.WGS84),
		ned.New(52.65757, 1.71792, 1000, datum.OSGB36),
	} {
		n := ned.FromCartesian(p.ToCartesian())
		assert.InDelta(t, p.Height(), n.Height(), 1e-6)
		assert.Equal(t, p.Datum(), n.Datum())

		q := n.ToLatLon()
		assert.InDelta(t, p.Lat(), q.Lat(), 1e-12)
		assert.InDelta(t, p.Lon(), q.Lon(), 1e-12)
	}

	n := ned.NewNvector(1, 1, 0, 0, datum.WGS84)
	assert.InDelta(t, 0.7071067811865475, n.X, 1e-15)
	assert.InDelta(t, 45, n.ToLatLon().Lon(), 1e-12)
}

func ExampleLatLon_DeltaTo() {
	a := ned.New(49.66618, 3.45063, 99, datum.WGS84)
	b := ned.New(48.88667, 2.37472, 64, datum.WGS84)
	d, _ := a.DeltaTo(b)
	fmt.Println(d)
	// Output: [N:-86127,E:-78901,D:1104]
}
