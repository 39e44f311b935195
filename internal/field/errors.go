package field

import "errors"

// Domain errors for field operations.
var (
	// ErrUnknownCharge indicates a move or remove referenced an id the
	// tracker does not hold.
	ErrUnknownCharge = errors.New("field: unknown charge id")

	// ErrSingularTransform indicates the composed view-projection matrix
	// could not be inverted.
	ErrSingularTransform = errors.New("field: singular view-projection matrix")

	// ErrCanvasBounds indicates a canvas dimension that is zero or negative.
	ErrCanvasBounds = errors.New("field: canvas dimensions must be positive")
)
