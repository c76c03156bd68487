// Command geoconv computes distances and converts positions between
// coordinate systems from the command line.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/pkg/errors"
	"github.com/tzneal/geodesy"
	"github.com/tzneal/geodesy/dms"
	"github.com/tzneal/geodesy/internal/logging"
	"github.com/tzneal/geodesy/literal"
	"github.com/tzneal/geodesy/spherical"
)

var GitCommit = "local"
var GitTag = "0.0.0"

func getVersion() string {
	return fmt.Sprintf("%s %s commit:%s", filepath.Base(os.Args[0]), GitTag, GitCommit)
}

const usage = `Usage: %s <command> [options] args...

Commands:
  distance A B  great-circle, rhumb and Vincenty distances from A to B
  grid P        OSGB grid reference of P, or the position of a grid reference
  datum P       P converted between datums
  utm P         UTM coordinate of P, or the position of a UTM coordinate
  path A B      points along the path from A to B, optionally as KML
  version       print the version

Points may be decimal or deg/min/sec, e.g. "52.205,0.119" or
"52°12′18″N, 0°07′08″E". Run "%[1]s <command> -h" for a command's options.

Environment:
  LOG_LEVEL       debug, info, warn or error
  LOG_FORMAT      text or json
  GEOCONV_RADIUS  sphere radius in metres for distance and path
`

func main() {
	log := logging.NewFromEnv()
	ctx := logging.ContextWithLogger(context.Background(), log)

	if err := run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(2)
		}
		log.Error(ctx, "geoconv failed", logging.Err(err))
		os.Exit(1)
	}
}

// run dispatches args to a subcommand, which writes its results to out and
// its usage to errOut.
func run(ctx context.Context, args []string, out, errOut io.Writer) error {
	name := filepath.Base(os.Args[0])
	if len(args) == 0 {
		fmt.Fprintf(errOut, usage, name)
		return errors.Wrap(geodesy.ErrInvalidArgument, "no command given")
	}

	var cmd func(context.Context, *flag.FlagSet, []string, io.Writer) error
	switch args[0] {
	case "distance":
		cmd = runDistance
	case "grid":
		cmd = runGrid
	case "datum":
		cmd = runDatum
	case "utm":
		cmd = runUTM
	case "path":
		cmd = runPath
	case "version":
		fmt.Fprintln(out, getVersion())
		return nil
	case "-h", "-help", "--help", "help":
		fmt.Fprintf(errOut, usage, name)
		return flag.ErrHelp
	default:
		fmt.Fprintf(errOut, usage, name)
		return errors.Wrapf(geodesy.ErrInvalidArgument, "unknown command %q", args[0])
	}

	fs := flag.NewFlagSet(args[0], flag.ContinueOnError)
	fs.SetOutput(errOut)
	ctx = logging.ContextWithLogger(ctx, logging.FromContext(ctx).With(logging.String("command", args[0])))
	return cmd(ctx, fs, args[1:], out)
}

// parsePoint reads a "lat, lon" argument in any form dms.Parse accepts.
func parsePoint(s string) (literal.Coords, error) {
	c, err := literal.Decode(literal.Text(s))
	if err != nil {
		return literal.Coords{}, errors.Wrapf(err, "parsing point %q", s)
	}
	return c, nil
}

// sphereFromEnv returns the sphere for GEOCONV_RADIUS, or the mean earth
// sphere if it is unset.
func sphereFromEnv() (spherical.Sphere, error) {
	v := os.Getenv("GEOCONV_RADIUS")
	if v == "" {
		return spherical.Earth, nil
	}
	r, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return spherical.Sphere{}, errors.Wrapf(geodesy.ErrInvalidArgument, "GEOCONV_RADIUS %q", v)
	}
	return spherical.NewSphere(r)
}

// formatFlag registers the common -format and -dp options.
func formatFlag(fs *flag.FlagSet) (*string, *int) {
	format := fs.String("format", string(dms.FormatD), "angle format: d, dm, dms or n")
	dp := fs.Int("dp", dms.DefaultPrecision, "decimal places, -1 for the format's default")
	return format, dp
}
