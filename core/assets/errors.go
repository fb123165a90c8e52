package assets

import "errors"

var (
	// ErrUnsupportedKind is returned when no decoder is registered for a kind.
	ErrUnsupportedKind = errors.New("unsupported asset kind")
	// ErrDecode is returned when a payload cannot be decoded as the requested kind.
	ErrDecode = errors.New("failed to decode asset")
)
