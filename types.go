package hlog

import (
	"io"
	"log/slog"
	"time"

	"github.com/sivaosorg/hlog/metrics"
)

// Severity defines the logging severity level. Higher values indicate more
// important messages; a record is admitted when its severity is at or above
// the effective threshold of its logger.
type Severity int32

// Location identifies the call site of a log statement. Any field may be empty.
type Location struct {
	FunctionName string // Name of the function containing the log call.
	FileName     string // Source file containing the log call.
	LineNumber   int    // Line of the log call.
}

// Record is a single log event handed to a Handler. It is built per call and
// must not be retained by handlers after Handle returns.
type Record struct {
	Name     string    // Logger name, dot-segmented; empty for the root logger.
	Severity Severity  // Severity of the event.
	Location *Location // Call site, or nil when unknown.
	Message  string    // Message already formatted from format and args.
	Time     time.Time // Moment the event was emitted.
}

// Handler consumes records that passed the severity filter.
type Handler interface {
	Handle(r *Record)
}

// HandlerFunc adapts an ordinary function to the Handler interface.
type HandlerFunc func(r *Record)

// Handle calls f(r).
func (f HandlerFunc) Handle(r *Record) {
	f(r)
}

// Context owns all logging state: the threshold registry, the default
// threshold, the installed handler and the output template. It performs no
// internal locking; callers sharing one Context across goroutines must
// serialise access themselves.
type Context struct {
	initialized      bool
	registry         *thresholdRegistry
	defaultThreshold Severity
	handler          Handler
	outputFormat     string

	config        *Config           // Explicit configuration; nil means read the environment.
	stdout        io.Writer         // Primary stream for DEBUG and INFO lines.
	stderr        io.Writer         // Diagnostic stream for WARN, ERROR and FATAL lines.
	allocator     Allocator         // Backing store for buffers growing past InitialBufferSize.
	formatter     Formatter         // Turns format and args into message text.
	diag          *slog.Logger      // Sink for the library's own diagnostics.
	metrics       metrics.Collector // Emission counters.
	clock         func() time.Time  // Time source for records.
	timeFormat    string            // Go layout for {time}; empty renders seconds.nanoseconds.
	useUTC        bool              // If true, {time} is rendered in UTC.
	severityNames []string          // Labels for Debug, Info, Warn, Error, Fatal.
}

// Option defines a functional option for configuring a Context during creation.
// Each Option is a function that accepts a pointer to a Context and modifies its configuration.
type Option func(*Context)

// Caller is a type alias for specifying the caller stack skip depth.
// It allows the developer to indicate how many stack frames to skip when reporting
// the source location (function, file and line number) of the log call.
type Caller int

// locker is an interface that defines basic locking operations.
// If an io.Writer implements this interface, it can be locked during writes to ensure thread safety.
type locker interface {
	Lock()
	Unlock()
}
