package addressables

import "errors"

var (
	// ErrOperationExists is returned when a reference already has a valid operation.
	ErrOperationExists = errors.New("operation already exists for reference")
	// ErrAlreadyReleased is returned when an operation is released twice.
	ErrAlreadyReleased = errors.New("operation already released")
	// ErrInvalidReference is returned for references without an address.
	ErrInvalidReference = errors.New("invalid asset reference")
	// ErrNotFound is returned by sources when an address has no payload.
	ErrNotFound = errors.New("asset not found")
)
