package energy

import "errors"

var (
	// ErrInvalidParameter indicates a non-physical model parameter
	// (non-positive or non-finite where positivity is required).
	ErrInvalidParameter = errors.New("energy: invalid parameter")

	// ErrInvalidRange indicates a sweep called with min > max or a
	// non-positive batch bound.
	ErrInvalidRange = errors.New("energy: invalid batch range")

	// ErrExportFailed indicates an I/O failure while writing the sweep table.
	ErrExportFailed = errors.New("energy: export failed")
)
