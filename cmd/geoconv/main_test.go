package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tzneal/geodesy"
	"github.com/tzneal/geodesy/internal/logging"
)

func runArgs(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	ctx := logging.ContextWithLogger(context.Background(), logging.Noop())
	err := run(ctx, args, &out, &errOut)
	return out.String(), err
}

func lines(s string) []string {
	return strings.Split(strings.TrimRight(s, "\n"), "\n")
}

func TestDistance(t *testing.T) {
	out, err := runArgs(t, "distance", "52.205,0.119", "48.857,2.351")
	require.NoError(t, err)
	l := lines(out)
	require.Len(t, l, 3)
	assert.True(t, strings.HasPrefix(l[0], "great circle  404279.164 m"), l[0])
	assert.True(t, strings.HasPrefix(l[1], "rhumb line    404294.404 m"), l[1])
	assert.True(t, strings.HasPrefix(l[2], "vincenty      404607.806 m"), l[2])
}

func TestDistance_Radius(t *testing.T) {
	t.Setenv("GEOCONV_RADIUS", "6378137")
	out, err := runArgs(t, "distance", "52.205,0.119", "48.857,2.351")
	require.NoError(t, err)
	assert.Contains(t, out, "great circle  404732.051 m")

	out, err = runArgs(t, "distance", "-radius", "6371000", "52.205,0.119", "48.857,2.351")
	require.NoError(t, err)
	assert.Contains(t, out, "great circle  404279.164 m")

	t.Setenv("GEOCONV_RADIUS", "big")
	_, err = runArgs(t, "distance", "52.205,0.119", "48.857,2.351")
	assert.ErrorIs(t, err, geodesy.ErrInvalidArgument)
}

func TestDistance_NotConverged(t *testing.T) {
	out, err := runArgs(t, "distance", "0,0", "0.5,179.7")
	require.NoError(t, err)
	assert.Contains(t, out, "vincenty      did not converge")
}

func TestGrid(t *testing.T) {
	out, err := runArgs(t, "grid", "51.4778,-0.0016")
	require.NoError(t, err)
	assert.Equal(t, "TQ 38876 77320\n", out)

	out, err = runArgs(t, "grid", "-digits", "6", "51.4778,-0.0016")
	require.NoError(t, err)
	assert.Equal(t, "TQ 388 773\n", out)

	out, err = runArgs(t, "grid", "-datum", "OSGB36", "52.65757,1.71792")
	require.NoError(t, err)
	assert.Equal(t, "TG 51409 13177\n", out)

	out, err = runArgs(t, "grid", "-datum", "OSGB36", "-format", "n", "TG", "51409", "13177")
	require.NoError(t, err)
	assert.Equal(t, "52.6576, 1.7179\n", out)

	out, err = runArgs(t, "grid", "-datum", "OSGB36", "-format", "n", "-ref", "651409,313177")
	require.NoError(t, err)
	assert.Equal(t, "52.6576, 1.7179\n", out)

	_, err = runArgs(t, "grid", "TI 51409 13177")
	assert.ErrorIs(t, err, geodesy.ErrInvalidGridRef)
	_, err = runArgs(t, "grid", "-datum", "Mars", "51.4778,-0.0016")
	assert.ErrorIs(t, err, geodesy.ErrUnrecognisedDatum)
}

func TestDatum(t *testing.T) {
	out, err := runArgs(t, "datum", "-format", "n", "-dph", "-1", "51.4778,-0.0016")
	require.NoError(t, err)
	assert.Equal(t, "51.4773, 0.0000\n", out)

	_, err = runArgs(t, "datum", "-format", "x", "51.4778,-0.0016")
	assert.ErrorIs(t, err, geodesy.ErrInvalidRange)
	_, err = runArgs(t, "datum", "-to", "Mars", "51.4778,-0.0016")
	assert.ErrorIs(t, err, geodesy.ErrUnrecognisedDatum)
}

func TestUTM(t *testing.T) {
	out, err := runArgs(t, "utm", "-precision", "3", "48.8582,2.2945")
	require.NoError(t, err)
	assert.Equal(t, "31 N 448251.795 5411932.678\n", out)

	out, err = runArgs(t, "utm", "--", "-33.857,151.215")
	require.NoError(t, err)
	assert.Equal(t, "56 S 334873 6252266\n", out)

	out, err = runArgs(t, "utm", "-format", "n", "31 N 448251.795 5411932.678")
	require.NoError(t, err)
	assert.Equal(t, "48.8582, 2.2945\n", out)

	_, err = runArgs(t, "utm", "-zone", "33", "51.4778,-0.0016")
	assert.ErrorIs(t, err, geodesy.ErrInvalidRange)
}

func TestPath(t *testing.T) {
	out, err := runArgs(t, "path", "-n", "4", "-format", "n", "52.205,0.119", "48.857,2.351")
	require.NoError(t, err)
	l := lines(out)
	require.Len(t, l, 5)
	assert.Equal(t, "  0  52.2050, 0.1190", l[0])
	assert.Equal(t, "  2  50.5363, 1.2746", l[2])
	assert.Equal(t, "  4  48.8570, 2.3510", l[4])

	out, err = runArgs(t, "path", "-n", "2", "-rhumb", "-format", "n", "52.205,0.119", "48.857,2.351")
	require.NoError(t, err)
	l = lines(out)
	require.Len(t, l, 3)
	assert.Equal(t, "  1  50.5310, 1.2548", l[1])

	_, err = runArgs(t, "path", "-n", "0", "52.205,0.119", "48.857,2.351")
	assert.ErrorIs(t, err, geodesy.ErrInvalidArgument)
}

func TestPath_CoincidentEnds(t *testing.T) {
	for _, mode := range [][]string{{"-rhumb"}, {}} {
		args := append([]string{"path", "-n", "2", "-format", "n"}, mode...)
		out, err := runArgs(t, append(args, "52.205,0.119", "52.205,0.119")...)
		require.NoError(t, err)
		l := lines(out)
		require.Len(t, l, 3)
		assert.Equal(t, "  1  52.2050, 0.1190", l[1])
		assert.NotContains(t, out, "NaN")
	}
}

func TestPath_KML(t *testing.T) {
	out, err := runArgs(t, "path", "-kml", "-", "-name", "Cambridge to Paris", "52.205,0.119", "48.857,2.351")
	require.NoError(t, err)
	assert.Contains(t, out, "<kml")
	assert.Contains(t, out, "<name>Cambridge to Paris</name>")
	assert.Contains(t, out, "<name>Start</name>")
	assert.Contains(t, out, "<LineString>")

	file := filepath.Join(t.TempDir(), "path.kml")
	out, err = runArgs(t, "path", "-n", "3", "-kml", file, "52.205,0.119", "48.857,2.351")
	require.NoError(t, err)
	assert.Len(t, lines(out), 4)
	data, err := os.ReadFile(file)
	require.NoError(t, err)
	assert.Contains(t, string(data), "<LineString>")
}

func TestLogging(t *testing.T) {
	var logs, out, errOut bytes.Buffer
	log := logging.New(logging.Config{Level: "debug", Format: "json", Output: &logs})
	ctx := logging.ContextWithLogger(context.Background(), log)

	require.NoError(t, run(ctx, []string{"grid", "51.4778,-0.0016"}, &out, &errOut))
	assert.Contains(t, logs.String(), `"command":"grid"`)
	assert.Contains(t, logs.String(), `"msg":"position to grid reference"`)
}

func TestUsage(t *testing.T) {
	_, err := runArgs(t)
	assert.ErrorIs(t, err, geodesy.ErrInvalidArgument)
	_, err = runArgs(t, "bogus")
	assert.ErrorIs(t, err, geodesy.ErrInvalidArgument)
	_, err = runArgs(t, "distance", "52.205,0.119")
	assert.ErrorIs(t, err, geodesy.ErrInvalidArgument)
	_, err = runArgs(t, "distance", "north,south", "48.857,2.351")
	assert.ErrorIs(t, err, geodesy.ErrInvalidArgument)

	out, err := runArgs(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, GitTag)
}
