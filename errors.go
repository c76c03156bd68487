package geodesy

import "github.com/pkg/errors"

// Error kinds returned by the geodesy packages. Call sites wrap these with
// context; test for a kind with errors.Is.
var (
	// ErrInvalidArgument is returned for a non-numeric or malformed input
	// where a number or point is required.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrInvalidRange is returned for a precision or format outside its
	// permitted set.
	ErrInvalidRange = errors.New("invalid range")
	// ErrUnrecognisedDatum is returned for a datum that is not in the datum
	// table.
	ErrUnrecognisedDatum = errors.New("unrecognised datum")
	// ErrUnrecognisedFrame is returned for a reference frame that is not in
	// the frame table.
	ErrUnrecognisedFrame = errors.New("unrecognised reference frame")
	// ErrNotAvailable is returned when no direct or one-hop transform exists
	// between two reference frames.
	ErrNotAvailable = errors.New("transform not available")
	// ErrNotConverged is returned when an iterative solution reaches its
	// iteration limit.
	ErrNotConverged = errors.New("failed to converge")
	// ErrInvalidGridRef is returned for a grid reference that cannot be
	// parsed or lies outside the grid.
	ErrInvalidGridRef = errors.New("invalid grid reference")
)
