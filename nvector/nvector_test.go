package nvector_test

import (
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tzneal/geodesy/literal"
	"github.com/tzneal/geodesy/nvector"
	"github.com/tzneal/geodesy/spherical"
)

const R = spherical.EarthRadius

var (
	cambridge = nvector.New(52.205, 0.119)
	paris     = nvector.New(48.857, 2.351)
)

func TestNvectorRoundTrip(t *testing.T) {
	for _, p := range []nvector.LatLon{cambridge, paris, nvector.New(-33.9, 151.2), nvector.New(0, 180), nvector.New(-89.5, -45)} {
		n := p.ToNvector()
		assert.InDelta(t, 1, n.Length(), 1e-15)
		q := n.ToLatLon()
		assert.InDelta(t, p.Lat(), q.Lat(), 1e-12)
		assert.InDelta(t, p.Lon(), q.Lon(), 1e-12)
	}

	n := nvector.NewNvector(0, 0, 2)
	assert.Equal(t, 1.0, n.Z)
	assert.InDelta(t, 90, n.ToLatLon().Lat(), 1e-12)
}

func TestAgreesWithSpherical(t *testing.T) {
	sc := spherical.New(52.205, 0.119)
	sp := spherical.New(48.857, 2.351)

	assert.InDelta(t, sc.DistanceTo(sp), cambridge.DistanceTo(paris, R), 1e-6)
	assert.InDelta(t, sc.InitialBearingTo(sp), cambridge.InitialBearingTo(paris), 1e-9)
	assert.InDelta(t, sc.FinalBearingTo(sp), cambridge.FinalBearingTo(paris), 1e-9)

	mid := cambridge.MidpointTo(paris)
	assert.InDelta(t, 50.5363, mid.Lat(), 1e-4)
	assert.InDelta(t, 1.2746, mid.Lon(), 1e-4)

	p := cambridge.IntermediatePointTo(paris, 0.25)
	assert.InDelta(t, 51.3721, p.Lat(), 1e-4)
	assert.InDelta(t, 0.7073, p.Lon(), 1e-4)

	d := nvector.New(51.4778, -0.0015).DestinationPoint(7794, 300.7, R)
	assert.InDelta(t, 51.5135, d.Lat(), 1e-4)
	assert.InDelta(t, -0.0983, d.Lon(), 1e-4)
}

func TestBearings(t *testing.T) {
	origin := nvector.New(0, 0)
	assert.InDelta(t, 90, origin.InitialBearingTo(nvector.New(0, 1)), 1e-9)
	assert.InDelta(t, 0, origin.InitialBearingTo(nvector.New(1, 0)), 1e-9)
	assert.InDelta(t, 270, origin.InitialBearingTo(nvector.New(0, -1)), 1e-9)
	assert.True(t, math.IsNaN(origin.InitialBearingTo(origin)))
}

func TestIntermediatePoints(t *testing.T) {
	same := cambridge.IntermediatePointTo(cambridge, 0.5)
	assert.InDelta(t, cambridge.Lat(), same.Lat(), 1e-12)
	assert.InDelta(t, cambridge.Lon(), same.Lon(), 1e-12)

	p := cambridge.IntermediatePointTo(paris, 0)
	assert.InDelta(t, cambridge.Lat(), p.Lat(), 1e-12)
	p = cambridge.IntermediatePointTo(paris, 1)
	assert.InDelta(t, paris.Lat(), p.Lat(), 1e-12)

	// the chord midpoint is the great-circle midpoint
	c := cambridge.IntermediatePointOnChordTo(paris, 0.5)
	m := cambridge.MidpointTo(paris)
	assert.InDelta(t, m.Lat(), c.Lat(), 1e-12)
	assert.InDelta(t, m.Lon(), c.Lon(), 1e-12)

	// elsewhere it is close to the great circle point
	c = cambridge.IntermediatePointOnChordTo(paris, 0.25)
	g := cambridge.IntermediatePointTo(paris, 0.25)
	assert.InDelta(t, g.Lat(), c.Lat(), 1e-3)
}

func TestIntersection(t *testing.T) {
	p1 := nvector.New(51.8853, 0.2545)
	p2 := nvector.New(49.0034, 2.5735)

	i, ok := nvector.Intersection(p1, nvector.Bearing(108.547), p2, nvector.Bearing(32.435))
	require.True(t, ok)
	assert.InDelta(t, 50.9078, i.Lat(), 1e-4)
	assert.InDelta(t, 4.5084, i.Lon(), 1e-4)

	i, ok = nvector.Intersection(p1, nvector.New(50.9, 4.5), p2, nvector.New(51.5, 5.5))
	require.True(t, ok)
	assert.InDelta(t, 50.849098, i.Lat(), 1e-6)
	assert.InDelta(t, 4.698366, i.Lon(), 1e-6)

	i, ok = nvector.Intersection(p1, nvector.Bearing(108.547), p2, nvector.New(51.5, 5.5))
	require.True(t, ok)
	assert.InDelta(t, 50.857061, i.Lat(), 1e-6)
	assert.InDelta(t, 4.707999, i.Lon(), 1e-6)

	i, ok = nvector.Intersection(p1, nvector.Bearing(10), p1, nvector.Bearing(20))
	require.True(t, ok)
	assert.True(t, i.Equals(p1))

	// along the equator in both directions
	_, ok = nvector.Intersection(nvector.New(0, 0), nvector.Bearing(90), nvector.New(0, 10), nvector.Bearing(270))
	assert.False(t, ok)
}

func TestCrossAndAlongTrack(t *testing.T) {
	p := nvector.New(53.2611, -0.7972)
	start := nvector.New(53.3206, -1.7297)
	end := nvector.New(53.1887, 0.1334)

	assert.InDelta(t, -307.5, p.CrossTrackDistanceTo(start, end, R), 0.1)
	assert.InDelta(t, -305.7, p.CrossTrackDistanceTo(start, nvector.Bearing(96), R), 0.1)
	assert.InDelta(t, 62331.49, p.AlongTrackDistanceTo(start, end, R), 0.01)

	// behind the start
	behind := nvector.New(53.33, -2.5)
	assert.Less(t, behind.AlongTrackDistanceTo(start, end, R), 0.0)
}

func TestNearestPointOnSegment(t *testing.T) {
	p1 := nvector.New(51.0, 1.0)
	p2 := nvector.New(51.0, 2.0)

	p := nvector.New(51.0, 1.9)
	assert.True(t, p.IsWithinExtent(p1, p2))
	n := p.NearestPointOnSegment(p1, p2)
	assert.InDelta(t, 51.000384, n.Lat(), 1e-6)
	assert.InDelta(t, 1.900003, n.Lon(), 1e-6)

	q := nvector.New(51.0, 2.1)
	assert.False(t, q.IsWithinExtent(p1, p2))
	assert.True(t, q.NearestPointOnSegment(p1, p2).Equals(p2))
	assert.True(t, nvector.New(51.0, 0.5).NearestPointOnSegment(p1, p2).Equals(p1))

	assert.True(t, p1.IsWithinExtent(p1, p1))
	assert.False(t, p.IsWithinExtent(p1, p1))
}

func TestTriangulate(t *testing.T) {
	p, ok := nvector.Triangulate(nvector.New(50.7175, 1.65139), 333.3508, nvector.New(50.9250, 1.7361), 310.1414)
	require.True(t, ok)
	assert.InDelta(t, 51.1539, p.Lat(), 1e-4)
	assert.InDelta(t, 1.3018, p.Lon(), 1e-4)

	// swapping the observers reverses c1×c2, which then points behind the
	// first observer; the same point in front is still chosen
	q, ok := nvector.Triangulate(nvector.New(50.9250, 1.7361), 310.1414, nvector.New(50.7175, 1.65139), 333.3508)
	require.True(t, ok)
	assert.InDelta(t, p.Lat(), q.Lat(), 1e-9)
	assert.InDelta(t, p.Lon(), q.Lon(), 1e-9)

	_, ok = nvector.Triangulate(nvector.New(0, 0), 90, nvector.New(0, 10), 90)
	assert.False(t, ok)
}

func TestTrilaterate(t *testing.T) {
	p, ok := nvector.Trilaterate(nvector.New(0, 0), 157249.6, nvector.New(0, 2), 157249.6, nvector.New(2, 1), 111194.9, R)
	require.True(t, ok)
	assert.InDelta(t, 1, p.Lat(), 1e-3)
	assert.InDelta(t, 1, p.Lon(), 1e-9)

	_, ok = nvector.Trilaterate(nvector.New(0, 0), 1, nvector.New(0, 0), 1, nvector.New(1, 1), 1, R)
	assert.False(t, ok)
}

func TestIsEnclosedBy(t *testing.T) {
	square := []nvector.LatLon{nvector.New(44, 0), nvector.New(46, 0), nvector.New(46, 2), nvector.New(44, 2)}
	assert.True(t, nvector.New(45, 1).IsEnclosedBy(square))
	assert.False(t, nvector.New(43, 1).IsEnclosedBy(square))
	assert.True(t, nvector.New(45, 1).IsEnclosedBy(append(square, square[0])))

	// concave
	vee := []nvector.LatLon{nvector.New(0, 0), nvector.New(2, 1), nvector.New(0, 2), nvector.New(1, 1)}
	assert.False(t, nvector.New(0.5, 1).IsEnclosedBy(vee))
	assert.True(t, nvector.New(1.5, 1).IsEnclosedBy(vee))

	polar := []nvector.LatLon{nvector.New(85, 0), nvector.New(85, 120), nvector.New(85, -120)}
	assert.True(t, nvector.New(90, 0).IsEnclosedBy(polar))
	assert.False(t, nvector.New(0, 0).IsEnclosedBy(polar))
}

func TestAreaOf(t *testing.T) {
	triangle := []nvector.LatLon{nvector.New(0, 0), nvector.New(1, 0), nvector.New(0, 1)}
	a := nvector.AreaOf(triangle, R)
	assert.InDelta(t, 6.18e9, a, 0.01e9)

	reversed := []nvector.LatLon{triangle[2], triangle[1], triangle[0]}
	assert.InDelta(t, a, nvector.AreaOf(reversed, R), 1e-3)

	// Girard and Karney agree
	sph := []spherical.LatLon{spherical.New(0, 0), spherical.New(1, 0), spherical.New(0, 1)}
	assert.InEpsilon(t, spherical.AreaOf(sph), a, 1e-4)

	polar := []nvector.LatLon{nvector.New(89, 0), nvector.New(89, 120), nvector.New(89, -120)}
	assert.InDelta(t, 16063139192, nvector.AreaOf(polar, R), 10)

	assert.Equal(t, 0.0, nvector.AreaOf(triangle[:2], R))
}

func TestCentreAndMean(t *testing.T) {
	square := []nvector.LatLon{nvector.New(0, 0), nvector.New(1, 0), nvector.New(1, 1), nvector.New(0, 1)}
	c := nvector.CentreOf(square)
	assert.InDelta(t, 0.500006, c.Lat(), 1e-6)
	assert.InDelta(t, 0.5, c.Lon(), 1e-9)

	// winding does not matter
	cw := []nvector.LatLon{square[0], square[3], square[2], square[1]}
	c = nvector.CentreOf(cw)
	assert.InDelta(t, 0.500006, c.Lat(), 1e-6)
	assert.InDelta(t, 0.5, c.Lon(), 1e-9)

	m := nvector.MeanOf(square)
	assert.InDelta(t, 0.500019, m.Lat(), 1e-6)
	assert.InDelta(t, 0.5, m.Lon(), 1e-9)
}

func TestParse(t *testing.T) {
	p, err := nvector.Parse(literal.GeoJSON{Type: "Point", Coordinates: []float64{0.119, 52.205}})
	require.NoError(t, err)
	assert.True(t, p.Equals(cambridge))
	assert.Equal(t, "52.2050°\u202fN, 000.1190°\u202fE", p.String())
}

func ExampleLatLon_IsEnclosedBy() {
	square := []nvector.LatLon{nvector.New(44, 0), nvector.New(46, 0), nvector.New(46, 2), nvector.New(44, 2)}
	fmt.Println(nvector.New(45, 1).IsEnclosedBy(square), nvector.New(43, 1).IsEnclosedBy(square))
	// Output: true false
}
