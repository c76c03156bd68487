package ellipsoidal

// Helmert is a linearised seven-parameter similarity transform with
// normalised parameters: translations in metres, rotations in radians and
// the scale as a factor (1 + s).
type Helmert struct {
	Tx, Ty, Tz float64
	Rx, Ry, Rz float64
	S          float64
}

// Apply transforms c.
func (h Helmert) Apply(c Cartesian) Cartesian {
	x, y, z := c.X, c.Y, c.Z
	return NewCartesian(
		h.Tx+x*h.S-y*h.Rz+z*h.Ry,
		h.Ty+x*h.Rz+y*h.S-z*h.Rx,
		h.Tz-x*h.Ry+y*h.Rx+z*h.S,
	)
}
