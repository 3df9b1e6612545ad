package forecast

import "errors"

var (
	// ErrUnknownCode is returned for time slot or weather codes outside the
	// DataPoint tables.
	ErrUnknownCode = errors.New("unknown forecast code")

	// ErrUnknownAttribute is returned by Classify for unsupported attributes.
	ErrUnknownAttribute = errors.New("unknown forecast attribute")

	// ErrNotFound is returned by stores when no snapshot exists for a location.
	ErrNotFound = errors.New("no forecast for location")
)
