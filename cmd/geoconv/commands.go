package main

import (
	"context"
	"flag"
	"fmt"
	"image/color"
	"io"
	"os"
	"strings"
	"unicode"
	"unicode/utf8"

	kml "github.com/twpayne/go-kml"

	"github.com/pkg/errors"
	"github.com/tzneal/geodesy"
	"github.com/tzneal/geodesy/datum"
	"github.com/tzneal/geodesy/dms"
	"github.com/tzneal/geodesy/ellipsoidal"
	"github.com/tzneal/geodesy/internal/logging"
	"github.com/tzneal/geodesy/osgrid"
	"github.com/tzneal/geodesy/spherical"
	"github.com/tzneal/geodesy/utm"
	"github.com/tzneal/geodesy/vincenty"
)

func runDistance(ctx context.Context, fs *flag.FlagSet, args []string, out io.Writer) error {
	log := logging.FromContext(ctx)
	sphere, err := sphereFromEnv()
	if err != nil {
		return err
	}
	radius := fs.Float64("radius", sphere.Radius, "sphere radius in metres for great-circle and rhumb figures")
	format, dp := formatFlag(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 2 {
		return errors.Wrap(geodesy.ErrInvalidArgument, "distance needs two points")
	}
	f, err := dms.ParseFormat(*format)
	if err != nil {
		return err
	}
	if sphere, err = spherical.NewSphere(*radius); err != nil {
		return err
	}
	a, err := parsePoint(fs.Arg(0))
	if err != nil {
		return err
	}
	b, err := parsePoint(fs.Arg(1))
	if err != nil {
		return err
	}

	p, q := spherical.New(a.Lat, a.Lon), spherical.New(b.Lat, b.Lon)
	gc := sphere.Distance(p, q)
	initial, final := p.InitialBearingTo(q), p.FinalBearingTo(q)
	fmt.Fprintf(out, "great circle  %.3f m  initial %s  final %s\n", gc, dms.ToBrng(initial, f, *dp), dms.ToBrng(final, f, *dp))
	log.Debug(ctx, "great circle", logging.Float64("metres", gc), logging.Float64("initial", initial), logging.Float64("final", final))

	rhumb, bearing := sphere.RhumbDistance(p, q), p.RhumbBearingTo(q)
	fmt.Fprintf(out, "rhumb line    %.3f m  bearing %s\n", rhumb, dms.ToBrng(bearing, f, *dp))
	log.Debug(ctx, "rhumb line", logging.Float64("metres", rhumb), logging.Float64("bearing", bearing))

	v, err := vincenty.WGS84.Inverse(ellipsoidal.New(a.Lat, a.Lon, 0), ellipsoidal.New(b.Lat, b.Lon, 0))
	if err != nil {
		if !errors.Is(err, geodesy.ErrNotConverged) {
			return err
		}
		log.Warn(ctx, "vincenty inverse", logging.Err(err))
		fmt.Fprintln(out, "vincenty      did not converge")
		return nil
	}
	fmt.Fprintf(out, "vincenty      %.3f m  initial %s  final %s\n", v.Distance,
		dms.ToBrng(v.InitialBearing, f, *dp), dms.ToBrng(v.FinalBearing, f, *dp))
	log.Debug(ctx, "vincenty", logging.Float64("metres", v.Distance), logging.Int("iterations", v.Iterations))
	return nil
}

// isGridRef reports whether s looks like a lettered grid reference rather
// than a position.
func isGridRef(s string) bool {
	r, _ := utf8.DecodeRuneInString(strings.TrimSpace(s))
	return unicode.IsLetter(r)
}

func runGrid(ctx context.Context, fs *flag.FlagSet, args []string, out io.Writer) error {
	log := logging.FromContext(ctx)
	datumName := fs.String("datum", datum.WGS84.Name, "datum of the position")
	digits := fs.Int("digits", 10, "digits in the grid reference: 0 (numeric), 2, 4, 6, 8 or 10")
	numeric := fs.Bool("ref", false, "read a numeric argument as an easting,northing grid reference")
	format, dp := formatFlag(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() == 0 {
		return errors.Wrap(geodesy.ErrInvalidArgument, "grid needs a position or grid reference")
	}
	d, err := datum.ByName(*datumName)
	if err != nil {
		return err
	}
	f, err := dms.ParseFormat(*format)
	if err != nil {
		return err
	}
	arg := strings.Join(fs.Args(), " ")

	if *numeric || isGridRef(arg) {
		g, err := osgrid.Parse(arg)
		if err != nil {
			return err
		}
		p, err := g.ToLatLon(d)
		if err != nil {
			return err
		}
		s, err := p.FormatString(f, *dp, -1)
		if err != nil {
			return err
		}
		fmt.Fprintln(out, s)
		log.Debug(ctx, "grid reference to position", logging.String("ref", g.String()), logging.String("position", s), logging.String("datum", d.Name))
		return nil
	}

	c, err := parsePoint(arg)
	if err != nil {
		return err
	}
	g, err := osgrid.FromLatLon(datum.New(c.Lat, c.Lon, c.Height, d))
	if err != nil {
		return err
	}
	s, err := g.Format(*digits)
	if err != nil {
		return err
	}
	fmt.Fprintln(out, s)
	log.Debug(ctx, "position to grid reference", logging.Float64("easting", g.Easting), logging.Float64("northing", g.Northing))
	return nil
}

func runDatum(ctx context.Context, fs *flag.FlagSet, args []string, out io.Writer) error {
	log := logging.FromContext(ctx)
	from := fs.String("from", datum.WGS84.Name, "datum of the position")
	to := fs.String("to", datum.OSGB36.Name, "datum to convert to")
	height := fs.Float64("height", 0, "ellipsoidal height in metres")
	dph := fs.Int("dph", 3, "decimal places for the height, -1 to omit it")
	format, dp := formatFlag(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() == 0 {
		return errors.Wrap(geodesy.ErrInvalidArgument, "datum needs a position")
	}
	fromDatum, err := datum.ByName(*from)
	if err != nil {
		return err
	}
	toDatum, err := datum.ByName(*to)
	if err != nil {
		return err
	}
	f, err := dms.ParseFormat(*format)
	if err != nil {
		return err
	}
	c, err := parsePoint(strings.Join(fs.Args(), " "))
	if err != nil {
		return err
	}

	p, err := datum.New(c.Lat, c.Lon, *height, fromDatum).ConvertDatum(toDatum)
	if err != nil {
		return err
	}
	s, err := p.FormatString(f, *dp, *dph)
	if err != nil {
		return err
	}
	fmt.Fprintln(out, s)
	log.Debug(ctx, "converted datum", logging.String("from", fromDatum.Name), logging.String("to", toDatum.Name), logging.String("position", s))
	return nil
}

func runUTM(ctx context.Context, fs *flag.FlagSet, args []string, out io.Writer) error {
	log := logging.FromContext(ctx)
	datumName := fs.String("datum", datum.WGS84.Name, "datum of the position and projection")
	zone := fs.Int("zone", 0, "force a zone adjacent to the natural zone, 0 for none")
	precision := fs.Int("precision", 0, "decimal places for easting and northing")
	format, dp := formatFlag(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() == 0 {
		return errors.Wrap(geodesy.ErrInvalidArgument, "utm needs a position or UTM coordinate")
	}
	d, err := datum.ByName(*datumName)
	if err != nil {
		return err
	}
	f, err := dms.ParseFormat(*format)
	if err != nil {
		return err
	}
	conv := utm.Default
	if d != datum.WGS84 {
		if conv, err = utm.New(d, 0); err != nil {
			return err
		}
	}
	arg := strings.Join(fs.Args(), " ")

	if u, err := utm.ParseCoord(arg); err == nil {
		p, err := conv.ToLatLon(u)
		if err != nil {
			return err
		}
		s, err := p.FormatString(f, *dp, -1)
		if err != nil {
			return err
		}
		fmt.Fprintln(out, s)
		log.Debug(ctx, "utm to position", logging.String("utm", u.Format(3)), logging.String("position", s))
		return nil
	}

	c, err := parsePoint(arg)
	if err != nil {
		return err
	}
	u, err := conv.FromLatLon(datum.New(c.Lat, c.Lon, 0, d), *zone)
	if err != nil {
		return err
	}
	fmt.Fprintln(out, u.Format(*precision))
	log.Debug(ctx, "position to utm", logging.Int("zone", u.Zone), logging.Float64("easting", u.Easting), logging.Float64("northing", u.Northing))
	return nil
}

func runPath(ctx context.Context, fs *flag.FlagSet, args []string, out io.Writer) error {
	log := logging.FromContext(ctx)
	sphere, err := sphereFromEnv()
	if err != nil {
		return err
	}
	radius := fs.Float64("radius", sphere.Radius, "sphere radius in metres")
	n := fs.Int("n", 10, "number of segments")
	rhumb := fs.Bool("rhumb", false, "follow the rhumb line instead of the great circle")
	kmlOut := fs.String("kml", "", "write the path as KML to this file, - for standard output")
	name := fs.String("name", "", "name of the path in the KML document")
	format, dp := formatFlag(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 2 {
		return errors.Wrap(geodesy.ErrInvalidArgument, "path needs two points")
	}
	if *n < 1 {
		return errors.Wrapf(geodesy.ErrInvalidArgument, "path needs at least one segment, got %d", *n)
	}
	f, err := dms.ParseFormat(*format)
	if err != nil {
		return err
	}
	if sphere, err = spherical.NewSphere(*radius); err != nil {
		return err
	}
	a, err := parsePoint(fs.Arg(0))
	if err != nil {
		return err
	}
	b, err := parsePoint(fs.Arg(1))
	if err != nil {
		return err
	}

	pts := pathPoints(sphere, spherical.New(a.Lat, a.Lon), spherical.New(b.Lat, b.Lon), *n, *rhumb)
	log.Debug(ctx, "computed path", logging.Int("points", len(pts)), logging.Any("rhumb", *rhumb))

	if *name == "" {
		*name = fmt.Sprintf("%s to %s", pts[0], pts[len(pts)-1])
	}
	switch *kmlOut {
	case "-":
		return writeKML(out, *name, pts)
	case "":
	default:
		w, err := os.Create(*kmlOut)
		if err != nil {
			return errors.Wrap(err, "creating KML file")
		}
		if err := writeKML(w, *name, pts); err != nil {
			w.Close()
			return err
		}
		if err := w.Close(); err != nil {
			return errors.Wrap(err, "closing KML file")
		}
		log.Info(ctx, "wrote KML", logging.String("path", *kmlOut))
	}

	for i, p := range pts {
		s, err := p.FormatString(f, *dp)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "%3d  %s\n", i, s)
	}
	return nil
}

// pathPoints divides the path from p to q into n segments. A path between
// coincident points has no bearing, so every point is p.
func pathPoints(sphere spherical.Sphere, p, q spherical.LatLon, n int, rhumb bool) []spherical.LatLon {
	pts := make([]spherical.LatLon, 0, n+1)
	if p.Equals(q) {
		for i := 0; i <= n; i++ {
			pts = append(pts, p)
		}
		return pts
	}
	distance, bearing := sphere.RhumbDistance(p, q), p.RhumbBearingTo(q)
	for i := 0; i <= n; i++ {
		fraction := float64(i) / float64(n)
		switch {
		case i == 0:
			pts = append(pts, p)
		case i == n:
			pts = append(pts, q)
		case rhumb:
			pts = append(pts, sphere.RhumbDestinationPoint(p, distance*fraction, bearing))
		default:
			pts = append(pts, p.IntermediatePointTo(q, fraction))
		}
	}
	return pts
}

func kmlCoordinate(p spherical.LatLon) kml.Coordinate {
	return kml.Coordinate{Lon: p.Lon(), Lat: p.Lat()}
}

// writeKML writes the path and its end points as a KML folder.
func writeKML(w io.Writer, name string, pts []spherical.LatLon) error {
	coords := make([]kml.Coordinate, len(pts))
	for i, p := range pts {
		coords[i] = kmlCoordinate(p)
	}

	d := kml.Folder(kml.Name(name)).Add(kml.Open(true))
	d.Add(
		kml.Placemark(
			kml.Name("Start"),
			kml.Description(pts[0].String()),
			kml.Point(kml.Coordinates(coords[0])),
		),
		kml.Placemark(
			kml.Name("End"),
			kml.Description(pts[len(pts)-1].String()),
			kml.Point(kml.Coordinates(coords[len(coords)-1])),
		),
		kml.Placemark(
			kml.Name(name),
			kml.Style(
				kml.LineStyle(
					kml.Color(color.RGBA{R: 0xff, G: 0x40, B: 0, A: 0xc0}),
					kml.Width(3),
				),
			),
			kml.LineString(
				kml.Tessellate(true),
				kml.Coordinates(coords...),
			),
		),
	)
	if err := kml.KML(d).WriteIndent(w, "", "  "); err != nil {
		return errors.Wrap(err, "writing KML")
	}
	return nil
}
