package gtmatrix

import "errors"

var (
	ErrInvalidThreshold  = errors.New("threshold must be within [0,1]")
	ErrEmptyMatrix       = errors.New("matrix has no rows")
	ErrNoSamplesSelected = errors.New("no requested sample is present in the matrix")
	ErrMalformedHeader   = errors.New("malformed header")
	ErrMalformedRow      = errors.New("malformed row")

	// Recognized by its signature, but not readable. Unix compress (.Z) is one.
	ErrUnsupportedCompression = errors.New("unsupported compression")
)
