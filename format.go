package hlog

import (
	"fmt"

	"github.com/pkg/errors"
)

// Formatter renders a printf-style format and its arguments into dst.
// It writes as much as fits and returns the length the full text requires, so
// a result larger than len(dst) means the output was truncated.
type Formatter interface {
	Format(dst []byte, format string, args []any) (int, error)
}

// FormatterFunc adapts an ordinary function to the Formatter interface.
type FormatterFunc func(dst []byte, format string, args []any) (int, error)

// Format calls f(dst, format, args).
func (f FormatterFunc) Format(dst []byte, format string, args []any) (int, error) {
	return f(dst, format, args)
}

// printfFormatter is the default Formatter built on fmt.Appendf.
type printfFormatter struct{}

func (printfFormatter) Format(dst []byte, format string, args []any) (int, error) {
	out := fmt.Appendf(dst[:0], format, args...)
	if len(out) > len(dst) {
		// Appendf moved to a fresh array; hand back the prefix that fits
		copy(dst, out)
	}
	return len(out), nil
}

// formatMessage formats into a buffer of InitialBufferSize bytes and, when the
// text does not fit, retries once into an allocation of exactly the required
// length.
func (c *Context) formatMessage(format string, args []any) (string, error) {
	b := getBuffer(c.allocator)
	defer putBuffer(b)

	n, err := c.formatter.Format(b.data, format, args)
	if err != nil || n < 0 {
		return "", errors.Wrapf(ErrFormattingFailure, "failed to format message: '%s'", format)
	}
	if n <= len(b.data) {
		return string(b.data[:n]), nil
	}

	dynamic := c.allocator.Allocate(n)
	if dynamic == nil {
		return "", errors.Wrapf(ErrAllocationFailure, "failed to allocate %d bytes for message: '%s'", n, format)
	}
	defer c.allocator.Deallocate(dynamic)

	written, err := c.formatter.Format(dynamic, format, args)
	if err != nil || written < 0 || written > len(dynamic) {
		return "", errors.Wrapf(ErrFormattingFailure,
			"failed to format message (using dynamically allocated memory): '%s'", format)
	}
	return string(dynamic[:written]), nil
}
