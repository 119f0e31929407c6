// Package hlog provides hierarchical, threshold-filtered logging rendered
// through a customisable text template.
//
// Key features:
//   - Dot-separated logger names whose thresholds are inherited from the closest ancestor
//   - Six severity values (Unset, Debug, Info, Warn, Error, Fatal) plus a Disable threshold
//   - Console output driven by a {token} template, seeded from HLOG_CONSOLE_OUTPUT_FORMAT
//   - Pluggable output handlers (console, slog bridge, or any Handler)
//   - Explicit Context objects, with a package-level Default for process-wide use
//
// A Context performs no internal locking. Share one across goroutines only
// behind an external lock.
package hlog

import (
	"io"
	"log/slog"
	"maps"
	"os"
	"slices"
	"time"

	"github.com/phsym/console-slog"
	"github.com/pkg/errors"

	"github.com/sivaosorg/hlog/metrics"
)

// New creates an uninitialised Context configured with the provided options.
// The Context initialises itself on first use, or explicitly via Initialize.
//
// Example:
//
//	ctx := New(WithWriters(os.Stdout, os.Stderr), WithUTC(true))
//	ctx.Emit(nil, WarnIssuer, "net.http", "retrying in %ds", 5)
func New(opts ...Option) *Context {
	c := &Context{
		stdout:        os.Stdout,
		stderr:        os.Stderr,
		allocator:     DefaultAllocator(),
		formatter:     printfFormatter{},
		metrics:       metrics.NewNopCollector(),
		clock:         time.Now,
		severityNames: defaultSeverityNames,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.diag == nil {
		c.diag = slog.New(console.NewHandler(c.stderr, &console.HandlerOptions{Level: slog.LevelDebug}))
	}
	return c
}

// WithConfig returns an Option that makes Initialize use cfg instead of
// reading the environment.
func WithConfig(cfg Config) Option {
	return func(c *Context) {
		c.config = &cfg
	}
}

// WithWriters returns an Option that sets the primary (DEBUG, INFO) and
// diagnostic (WARN, ERROR, FATAL) streams of the console handler. Nil writers
// are ignored.
func WithWriters(stdout, stderr io.Writer) Option {
	return func(c *Context) {
		if stdout != nil {
			c.stdout = stdout
		}
		if stderr != nil {
			c.stderr = stderr
		}
	}
}

// WithAllocator returns an Option that sets the allocator backing buffers
// which outgrow InitialBufferSize.
func WithAllocator(a Allocator) Option {
	return func(c *Context) {
		if a != nil {
			c.allocator = a
		}
	}
}

// WithFormatter returns an Option that replaces the printf-style message formatter.
func WithFormatter(f Formatter) Option {
	return func(c *Context) {
		if f != nil {
			c.formatter = f
		}
	}
}

// WithDiagnostics returns an Option that routes the library's own diagnostics
// (dropped records, unknown severities, write errors) to l.
func WithDiagnostics(l *slog.Logger) Option {
	return func(c *Context) {
		c.diag = l
	}
}

// WithMetrics returns an Option that records emission counters into m.
func WithMetrics(m metrics.Collector) Option {
	return func(c *Context) {
		if m != nil {
			c.metrics = m
		}
	}
}

// WithClock returns an Option that sets the time source stamped on records.
func WithClock(now func() time.Time) Option {
	return func(c *Context) {
		if now != nil {
			c.clock = now
		}
	}
}

// WithTimeFormat returns an Option that renders the {time} token with a Go
// reference-time layout instead of Unix seconds.
//
// Example:
//
//	ctx := New(WithTimeFormat("15:04:05"))
func WithTimeFormat(layout string) Option {
	return func(c *Context) {
		c.timeFormat = layout
	}
}

// WithUTC returns an Option that renders the {time} layout in UTC if set to
// true, or the local time zone if false.
func WithUTC(utc bool) Option {
	return func(c *Context) {
		c.useUTC = utc
	}
}

// WithSeverityNames returns an Option that sets the labels rendered by the
// {severity} token. The slice must hold exactly five labels, for Debug, Info,
// Warn, Error and Fatal; anything else is ignored.
//
// Example:
//
//	ctx := New(WithSeverityNames([]string{"DBG", "INF", "WRN", "ERR", "FTL"}))
func WithSeverityNames(names []string) Option {
	return func(c *Context) {
		if len(names) == len(defaultSeverityNames) {
			c.severityNames = slices.Clone(names)
		}
	}
}

// Initialize sets up the threshold registry, the default threshold, the
// output template and the console handler. Calling it on an initialised
// Context does nothing.
//
// Configuration comes from WithConfig when given, otherwise from the
// environment. A configuration error is returned, yet the Context is still
// initialised with defaults for whatever could not be applied; call Shutdown
// before retrying. When several errors occur the last one is returned.
func (c *Context) Initialize() error {
	if c == nil {
		return errors.Wrap(ErrInvalidArgument, "nil logging context")
	}
	if c.initialized {
		return nil
	}
	c.initialized = true
	c.registry = newThresholdRegistry()
	c.defaultThreshold = InfoIssuer
	c.outputFormat = DefaultOutputFormat
	c.handler = NewConsole(c)

	cfg, err := c.loadConfig()
	if cfg.OutputFormat != "" {
		c.outputFormat = cfg.OutputFormat
	}
	if cfg.DefaultSeverity != UnsetIssuer {
		if setErr := c.SetThreshold("", cfg.DefaultSeverity); setErr != nil {
			err = setErr
		}
	}
	for _, name := range slices.Sorted(maps.Keys(cfg.Levels)) {
		if setErr := c.SetThreshold(name, cfg.Levels[name]); setErr != nil {
			err = setErr
		}
	}
	return err
}

func (c *Context) loadConfig() (Config, error) {
	if c.config != nil {
		return *c.config, nil
	}
	return ReadEnvConfig()
}

// autoInitialize bootstraps the Context on first use so callers never fail
// merely for skipping Initialize.
func (c *Context) autoInitialize() {
	if c.initialized {
		return
	}
	if err := c.Initialize(); err != nil {
		c.diag.Warn("logging initialized with defaults", "error", err)
	}
}

// IsInitialized reports whether the Context is in the initialised state.
func (c *Context) IsInitialized() bool {
	return c != nil && c.initialized
}

// Shutdown releases the registry and returns the Context to its uninitialised
// state. A later Initialize (explicit or automatic) starts from scratch.
func (c *Context) Shutdown() error {
	if c == nil {
		return errors.Wrap(ErrInvalidArgument, "nil logging context")
	}
	if !c.initialized {
		return nil
	}
	c.registry.clear()
	c.registry = nil
	c.handler = nil
	c.outputFormat = ""
	c.defaultThreshold = UnsetIssuer
	c.initialized = false
	return nil
}

// SetDefaultThreshold changes the threshold applied to the root logger and to
// every logger without an explicit or inherited threshold. Values that are not
// valid thresholds, including UnsetIssuer, are ignored.
func (c *Context) SetDefaultThreshold(level Severity) {
	if c == nil {
		return
	}
	c.autoInitialize()
	if level != UnsetIssuer && level.IsThreshold() {
		c.defaultThreshold = level
	}
}

// GetDefaultThreshold returns the current default threshold.
func (c *Context) GetDefaultThreshold() Severity {
	if c == nil {
		return UnsetIssuer
	}
	c.autoInitialize()
	return c.defaultThreshold
}

// InstallHandler replaces the output handler. A nil handler drops every
// admitted record.
func (c *Context) InstallHandler(h Handler) {
	if c == nil {
		return
	}
	c.autoInitialize()
	c.handler = h
}

// GetHandler returns the installed output handler, which may be nil.
func (c *Context) GetHandler() Handler {
	if c == nil {
		return nil
	}
	c.autoInitialize()
	return c.handler
}

// SetOutputFormat replaces the console template. An empty format restores
// DefaultOutputFormat.
func (c *Context) SetOutputFormat(format string) {
	if c == nil {
		return
	}
	c.autoInitialize()
	if format == "" {
		format = DefaultOutputFormat
	}
	c.outputFormat = format
}

// GetOutputFormat returns the current console template.
func (c *Context) GetOutputFormat() string {
	if c == nil {
		return ""
	}
	c.autoInitialize()
	return c.outputFormat
}

// Render expands the current output template against r, without the
// trailing newline the console handler appends.
func (c *Context) Render(r *Record) (string, error) {
	if c == nil || r == nil {
		return "", errors.Wrap(ErrInvalidArgument, "nil logging context or record")
	}
	c.autoInitialize()
	rd := c.renderer()
	return rd.render(c.allocator, c.outputFormat, r)
}

func (c *Context) renderer() renderer {
	return renderer{
		severityNames: c.severityNames,
		timeFormat:    c.timeFormat,
		useUTC:        c.useUTC,
	}
}

// Emit logs a message from the named logger. Records below the logger's
// effective threshold are discarded before any formatting happens. Otherwise
// the message is formatted from format and args and the installed handler is
// invoked. Failures never reach the caller: the record is dropped and a
// diagnostic is written instead.
//
// Example:
//
//	ctx.Emit(&Location{FunctionName: "main", FileName: "main.go", LineNumber: 12},
//		ErrorIssuer, "a", "boom %d", 7)
func (c *Context) Emit(loc *Location, severity Severity, name, format string, args ...any) {
	if c == nil {
		return
	}
	c.autoInitialize()
	if !c.IsEnabledFor(name, severity) {
		c.metrics.RecordFiltered(severity.String())
		return
	}
	c.dispatch(loc, severity, name, format, args)
}

// dispatch formats an admitted record and hands it to the installed handler.
func (c *Context) dispatch(loc *Location, severity Severity, name, format string, args []any) {
	message, err := c.formatMessage(format, args)
	if err != nil {
		c.diag.Error("dropping log record", "logger", name, "error", err)
		c.metrics.RecordDropped(severity.String(), metrics.ReasonFormat)
		return
	}
	h := c.handler
	if h == nil {
		c.metrics.RecordDropped(severity.String(), metrics.ReasonNoHandler)
		return
	}
	r := Record{
		Name:     name,
		Severity: severity,
		Location: loc,
		Message:  message,
		Time:     c.clock(),
	}
	if c.handle(h, &r) {
		c.metrics.RecordEmitted(severity.String())
	}
}

// handle shields the caller from a panicking handler.
func (c *Context) handle(h Handler, r *Record) (ok bool) {
	defer func() {
		if p := recover(); p != nil {
			c.diag.Error("output handler panicked", "logger", r.Name, "panic", p)
			c.metrics.RecordDropped(r.Severity.String(), metrics.ReasonPanic)
			ok = false
		}
	}()
	h.Handle(r)
	return true
}
