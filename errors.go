package hlog

import "github.com/pkg/errors"

var (
	// ErrInvalidArgument indicates a malformed logger name, a nil context or
	// a severity that is not valid where it was used.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrAllocationFailure indicates the allocator refused a required buffer.
	ErrAllocationFailure = errors.New("allocation failure")

	// ErrFormattingFailure indicates the message formatter reported an error.
	ErrFormattingFailure = errors.New("formatting failure")

	// ErrRegistryCorruption indicates the threshold registry returned a value
	// it could never have stored.
	ErrRegistryCorruption = errors.New("logger severity registry corrupted")
)
