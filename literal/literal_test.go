package literal_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tzneal/geodesy"
	"github.com/tzneal/geodesy/literal"
)

func TestDecode(t *testing.T) {
	testCases := []struct {
		name string
		in   literal.Literal
		exp  literal.Coords
	}{
		{"pair", literal.Pair{Lat: 52.205, Lon: 0.119}, literal.Coords{Lat: 52.205, Lon: 0.119}},
		{"pair wraps", literal.Pair{Lat: 91, Lon: 181, Height: 5}, literal.Coords{Lat: 89, Lon: -179, Height: 5}},
		{"dms pair", literal.DMSPair{Lat: "51°28′40″N", Lon: "000°00′05″W"}, literal.Coords{Lat: 51.477778, Lon: -0.001389}},
		{"text", literal.Text("52.205, 0.119"), literal.Coords{Lat: 52.205, Lon: 0.119}},
		{"text dms", literal.Text("52°12′18″N, 0°07′08″E"), literal.Coords{Lat: 52.205, Lon: 0.118889}},
		{"object", literal.Object{"lat": 52.205, "lon": 0.119}, literal.Coords{Lat: 52.205, Lon: 0.119}},
		{"object long keys", literal.Object{"latitude": 52.205, "longitude": 0.119, "height": 10}, literal.Coords{Lat: 52.205, Lon: 0.119, Height: 10}},
		{"object lng", literal.Object{"lat": "52.205", "lng": 0.119}, literal.Coords{Lat: 52.205, Lon: 0.119}},
		{"geojson", literal.GeoJSON{Type: "Point", Coordinates: []float64{0.119, 52.205}}, literal.Coords{Lat: 52.205, Lon: 0.119}},
		{"geojson height", literal.GeoJSON{Type: "Point", Coordinates: []float64{0.119, 52.205, 12}}, literal.Coords{Lat: 52.205, Lon: 0.119, Height: 12}},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := literal.Decode(tc.in)
			require.NoError(t, err)
			assert.InDelta(t, tc.exp.Lat, got.Lat, 1e-6)
			assert.InDelta(t, tc.exp.Lon, got.Lon, 1e-6)
			assert.InDelta(t, tc.exp.Height, got.Height, 1e-9)
		})
	}
}

func TestDecode_Invalid(t *testing.T) {
	for _, in := range []literal.Literal{
		nil,
		literal.Text("52.205"),
		literal.Text("1, 2, 3"),
		literal.Text("foo, bar"),
		literal.Object{"lat": 52.205},
		literal.Object{"x": 1, "y": 2},
		literal.GeoJSON{Type: "LineString", Coordinates: []float64{1, 2}},
		literal.GeoJSON{Type: "Point", Coordinates: []float64{1}},
		literal.DMSPair{Lat: "north", Lon: "0"},
	} {
		_, err := literal.Decode(in)
		assert.ErrorIs(t, err, geodesy.ErrInvalidArgument, "decoding %v", in)
	}
}

func TestUnmarshal(t *testing.T) {
	c, err := literal.Unmarshal([]byte(`{"type":"Point","coordinates":[-0.0016,51.4778,45]}`))
	require.NoError(t, err)
	assert.Equal(t, literal.Coords{Lat: 51.4778, Lon: -0.0016, Height: 45}, c)

	c, err = literal.Unmarshal([]byte(`{"latitude":"51°28′40″N","lng":-0.0016}`))
	require.NoError(t, err)
	assert.InDelta(t, 51.477778, c.Lat, 1e-6)

	_, err = literal.Unmarshal([]byte(`[1,2]`))
	assert.ErrorIs(t, err, geodesy.ErrInvalidArgument)
}

func TestNewGeoJSON(t *testing.T) {
	assert.Equal(t, []float64{0.119, 52.205}, literal.NewGeoJSON(52.205, 0.119, 0).Coordinates)
	assert.Equal(t, []float64{0.119, 52.205, 3}, literal.NewGeoJSON(52.205, 0.119, 3).Coordinates)
}
